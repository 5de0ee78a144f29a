package ws

import (
	"errors"

	"github.com/crewfit/crewfit-backend/internal/service"
)

const (
	MsgSubscribe   = "subscribe"
	MsgUnsubscribe = "unsubscribe"
	MsgPublish     = "publish"
	MsgPing        = "ping"
)

// MessageSubscribe registers the connection for a group's stream.
type MessageSubscribe struct {
	GroupID uint `json:"group_id"`
}

func (msg *MessageSubscribe) GetType() string {
	return MsgSubscribe
}

func (msg *MessageSubscribe) Process(ctx *MessageContext) error {
	if _, ok := ctx.Subs[msg.GroupID]; !ok {
		sub, err := ctx.ChatService.Subscribe(msg.GroupID, ctx.Writer)
		if err != nil {
			return err
		}
		ctx.Subs[msg.GroupID] = sub
	}

	return ctx.Writer.WriteJSON(map[string]interface{}{
		"type":     "subscribed",
		"group_id": msg.GroupID,
	})
}

// MessageUnsubscribe revokes the connection's subscription for a group.
// Unsubscribing a group that was never subscribed is a no-op.
type MessageUnsubscribe struct {
	GroupID uint `json:"group_id"`
}

func (msg *MessageUnsubscribe) GetType() string {
	return MsgUnsubscribe
}

func (msg *MessageUnsubscribe) Process(ctx *MessageContext) error {
	if sub, ok := ctx.Subs[msg.GroupID]; ok {
		ctx.ChatService.Unsubscribe(sub)
		delete(ctx.Subs, msg.GroupID)
	}

	return ctx.Writer.WriteJSON(map[string]interface{}{
		"type":     "unsubscribed",
		"group_id": msg.GroupID,
	})
}

// MessagePublish stores a chat message and triggers fan-out. The ack carries
// the stored row, which is the authoritative ordering.
type MessagePublish struct {
	GroupID  uint   `json:"group_id"`
	Content  string `json:"content"`
	ClientID string `json:"client_id"`
}

func (msg *MessagePublish) GetType() string {
	return MsgPublish
}

func (msg *MessagePublish) Process(ctx *MessageContext) error {
	stored, err := ctx.ChatService.Publish(msg.GroupID, ctx.UserID, msg.Content, msg.ClientID)
	if err != nil {
		return SendError(ctx.Writer, errorCode(err), "Failed to publish message", err.Error())
	}

	return ctx.Writer.WriteJSON(map[string]interface{}{
		"type":    "ack",
		"message": stored.ToResponse(),
	})
}

// MessagePing keeps the connection warm.
type MessagePing struct{}

func (msg *MessagePing) GetType() string {
	return MsgPing
}

func (msg *MessagePing) Process(ctx *MessageContext) error {
	return ctx.Writer.WriteJSON(map[string]interface{}{"type": "pong"})
}

func errorCode(err error) string {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		return "invalid_input"
	case errors.Is(err, service.ErrNotFound):
		return "not_found"
	case errors.Is(err, service.ErrStorage):
		return "storage_failure"
	default:
		return "internal_error"
	}
}
