package hub

import (
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"
)

type captureSink struct {
	mu       sync.Mutex
	payloads [][]byte
	ready    chan struct{}
}

func newCaptureSink(expected int) *captureSink {
	return &captureSink{ready: make(chan struct{}, expected)}
}

func (s *captureSink) Send(payload []byte) error {
	s.mu.Lock()
	s.payloads = append(s.payloads, payload)
	s.mu.Unlock()
	s.ready <- struct{}{}
	return nil
}

func (s *captureSink) wait(t *testing.T) {
	t.Helper()
	select {
	case <-s.ready:
	case <-time.After(2 * time.Second):
		t.Fatal("Timed out waiting for delivery")
	}
}

func (s *captureSink) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.payloads)
}

type blockingSink struct {
	release chan struct{}
}

func (s *blockingSink) Send(payload []byte) error {
	<-s.release
	return nil
}

type failingSink struct{}

func (s *failingSink) Send(payload []byte) error {
	return errors.New("connection gone")
}

func TestSubscribeAndBroadcast(t *testing.T) {
	h := New(time.Second)

	sink := newCaptureSink(1)
	sub := h.Subscribe(7, sink)
	if sub.GroupID != 7 || sub.ID == "" {
		t.Fatalf("Bad subscription handle: %+v", sub)
	}
	if h.SubscriberCount(7) != 1 {
		t.Errorf("SubscriberCount = %d, want 1", h.SubscriberCount(7))
	}

	h.Broadcast(7, map[string]string{"content": "hello"})
	sink.wait(t)

	var decoded map[string]string
	if err := json.Unmarshal(sink.payloads[0], &decoded); err != nil {
		t.Fatalf("Bad payload: %v", err)
	}
	if decoded["content"] != "hello" {
		t.Errorf("Payload content = %q, want %q", decoded["content"], "hello")
	}
}

func TestBroadcastReachesOnlyTargetGroup(t *testing.T) {
	h := New(time.Second)

	target := newCaptureSink(1)
	bystander := newCaptureSink(1)
	h.Subscribe(1, target)
	h.Subscribe(2, bystander)

	h.Broadcast(1, map[string]string{"content": "hi"})
	target.wait(t)

	time.Sleep(100 * time.Millisecond)
	if bystander.count() != 0 {
		t.Errorf("Bystander in another group received %d deliveries", bystander.count())
	}
}

func TestUnsubscribeIsIdempotent(t *testing.T) {
	h := New(time.Second)

	sink := newCaptureSink(1)
	sub := h.Subscribe(1, sink)

	h.Unsubscribe(sub)
	if h.SubscriberCount(1) != 0 {
		t.Errorf("SubscriberCount after unsubscribe = %d, want 0", h.SubscriberCount(1))
	}

	// Second call is a no-op, as is a nil handle.
	h.Unsubscribe(sub)
	h.Unsubscribe(nil)

	h.Broadcast(1, map[string]string{"content": "hi"})
	time.Sleep(100 * time.Millisecond)
	if sink.count() != 0 {
		t.Errorf("Unsubscribed sink received %d deliveries", sink.count())
	}
}

func TestSlowSubscriberMissesMessageOnly(t *testing.T) {
	h := New(50 * time.Millisecond)

	slow := &blockingSink{release: make(chan struct{})}
	fast := newCaptureSink(2)
	slowSub := h.Subscribe(1, slow)
	h.Subscribe(1, fast)

	h.Broadcast(1, map[string]string{"content": "first"})
	fast.wait(t)

	// The slow subscriber timed out but must stay registered.
	if h.SubscriberCount(1) != 2 {
		t.Errorf("SubscriberCount = %d, want 2", h.SubscriberCount(1))
	}
	if slowSub.Closed() {
		t.Error("Slow subscription was closed by a timeout")
	}

	close(slow.release)
	h.Broadcast(1, map[string]string{"content": "second"})
	fast.wait(t)
	if fast.count() != 2 {
		t.Errorf("Fast sink received %d deliveries, want 2", fast.count())
	}
}

func TestFailedDeliveryDoesNotAffectOthers(t *testing.T) {
	h := New(time.Second)

	h.Subscribe(1, &failingSink{})
	healthy := newCaptureSink(1)
	h.Subscribe(1, healthy)

	h.Broadcast(1, map[string]string{"content": "hi"})
	healthy.wait(t)

	if h.SubscriberCount(1) != 2 {
		t.Errorf("SubscriberCount = %d, want 2 (failures are dropped silently)", h.SubscriberCount(1))
	}
}
