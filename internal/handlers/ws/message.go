package ws

import (
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/crewfit/crewfit-backend/internal/hub"
	"github.com/crewfit/crewfit-backend/internal/service"
)

// MessageContext provides all dependencies needed for frame processing.
// One context lives per connection; the read loop processes frames
// sequentially, so Subs needs no locking of its own.
type MessageContext struct {
	UserID      uint
	Writer      *ConnWriter
	ChatService *service.ChatService

	// Subs tracks this connection's live subscriptions by group id.
	Subs map[uint]*hub.Subscription
}

// Message interface for all WebSocket frame types
type Message interface {
	GetType() string
	Process(ctx *MessageContext) error
}

// SerializedMessage is the wire format wrapper
type SerializedMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// ErrorResponse is sent when frame processing fails
type ErrorResponse struct {
	Type    string `json:"type"`
	Error   string `json:"error"`
	Code    string `json:"code"`
	Details string `json:"details,omitempty"`
}

func ToJson(msg Message) ([]byte, error) {
	return json.Marshal(msg)
}

func FromJson(jsonBytes []byte, msg Message) error {
	// Frames like ping carry no payload at all; the zero value is fine.
	if len(jsonBytes) == 0 {
		return nil
	}
	return json.Unmarshal(jsonBytes, msg)
}

func CreateMessage(msgType string, typeRegistry map[string]reflect.Type) (Message, error) {
	msgTypeReflect, ok := typeRegistry[msgType]
	if !ok {
		return nil, fmt.Errorf("unknown message type: %s", msgType)
	}

	instance := reflect.New(msgTypeReflect).Interface()
	return instance.(Message), nil
}

// SendError sends an error response to the client
func SendError(w *ConnWriter, code, message, details string) error {
	return w.WriteJSON(ErrorResponse{
		Type:    "error",
		Error:   message,
		Code:    code,
		Details: details,
	})
}
