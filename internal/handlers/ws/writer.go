package ws

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gofiber/websocket/v2"
)

// ConnWriter serializes all writes to one websocket connection. The hub's
// fan-out goroutines and the read loop's acks share it, and the gorilla
// connection underneath allows only one writer at a time.
type ConnWriter struct {
	conn    *websocket.Conn
	timeout time.Duration
	mu      sync.Mutex
}

func NewConnWriter(conn *websocket.Conn, timeout time.Duration) *ConnWriter {
	return &ConnWriter{conn: conn, timeout: timeout}
}

// Send implements hub.Sink.
func (w *ConnWriter) Send(payload []byte) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.conn.SetWriteDeadline(time.Now().Add(w.timeout))
	return w.conn.WriteMessage(websocket.TextMessage, payload)
}

func (w *ConnWriter) WriteJSON(v interface{}) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return w.Send(payload)
}
