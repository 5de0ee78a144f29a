package hub

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Sink accepts one serialized payload for a subscriber. The websocket layer
// and tests both plug in through this. Send must eventually return: the hub
// stops waiting after the send timeout, but the delivery goroutine itself
// is only reclaimed when Send does. ConnWriter meets this with a write
// deadline on the connection.
type Sink interface {
	Send(payload []byte) error
}

// Subscription is a live, non-owning registration of interest in one
// group's message stream. It routes delivery only; it never controls the
// lifecycle of the underlying connection.
type Subscription struct {
	ID      string
	GroupID uint

	sink   Sink
	closed bool
	mu     sync.Mutex
}

// Closed reports whether the subscription has been revoked.
func (s *Subscription) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

func (s *Subscription) close() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}
	s.closed = true
	return true
}

// Hub manages the per-group subscriber registry and fans published messages
// out to everyone currently registered.
type Hub struct {
	groups      map[uint]map[string]*Subscription
	groupsMux   sync.RWMutex
	sendTimeout time.Duration
}

const DefaultSendTimeout = 5 * time.Second

func New(sendTimeout time.Duration) *Hub {
	if sendTimeout <= 0 {
		sendTimeout = DefaultSendTimeout
	}
	return &Hub{
		groups:      make(map[uint]map[string]*Subscription),
		sendTimeout: sendTimeout,
	}
}

// Subscribe registers a delivery sink for a group and returns its handle.
func (h *Hub) Subscribe(groupID uint, sink Sink) *Subscription {
	sub := &Subscription{
		ID:      uuid.NewString(),
		GroupID: groupID,
		sink:    sink,
	}

	h.groupsMux.Lock()
	subs, ok := h.groups[groupID]
	if !ok {
		subs = make(map[string]*Subscription)
		h.groups[groupID] = subs
	}
	subs[sub.ID] = sub
	count := len(subs)
	h.groupsMux.Unlock()

	log.Printf("Subscription %s joined group %d (subscribers: %d)", sub.ID, groupID, count)
	return sub
}

// Unsubscribe drops the handle immediately. Calling it twice is a no-op.
func (h *Hub) Unsubscribe(sub *Subscription) {
	if sub == nil || !sub.close() {
		return
	}

	h.groupsMux.Lock()
	if subs, ok := h.groups[sub.GroupID]; ok {
		delete(subs, sub.ID)
		if len(subs) == 0 {
			delete(h.groups, sub.GroupID)
		}
	}
	h.groupsMux.Unlock()

	log.Printf("Subscription %s left group %d", sub.ID, sub.GroupID)
}

// SubscriberCount returns the number of live subscriptions for a group.
func (h *Hub) SubscriberCount(groupID uint) int {
	h.groupsMux.RLock()
	defer h.groupsMux.RUnlock()
	return len(h.groups[groupID])
}

// Broadcast delivers data to every current subscriber of the group. Each
// delivery is bounded by the send timeout; a subscriber that cannot accept
// in time misses this message only and stays registered. Failures are
// logged, never surfaced to the publisher.
func (h *Hub) Broadcast(groupID uint, data interface{}) {
	payload, err := json.Marshal(data)
	if err != nil {
		log.Printf("Error marshaling broadcast for group %d: %v", groupID, err)
		return
	}

	h.groupsMux.RLock()
	targets := make([]*Subscription, 0, len(h.groups[groupID]))
	for _, sub := range h.groups[groupID] {
		targets = append(targets, sub)
	}
	h.groupsMux.RUnlock()

	for _, sub := range targets {
		go h.deliver(sub, payload)
	}
}

func (h *Hub) deliver(sub *Subscription, payload []byte) {
	if sub.Closed() {
		return
	}

	done := make(chan error, 1)
	go func() {
		done <- sub.sink.Send(payload)
	}()

	select {
	case err := <-done:
		if err != nil {
			log.Printf("Delivery to subscription %s (group %d) failed: %v", sub.ID, sub.GroupID, err)
		}
	case <-time.After(h.sendTimeout):
		log.Printf("Delivery to subscription %s (group %d) timed out", sub.ID, sub.GroupID)
	}
}
