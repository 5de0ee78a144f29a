package handlers

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/crewfit/crewfit-backend/internal/handlers/ws"
	"github.com/crewfit/crewfit-backend/internal/hub"
	"github.com/crewfit/crewfit-backend/internal/service"
	"github.com/gofiber/websocket/v2"
)

type WebSocketHandler struct {
	chatService *service.ChatService
	sendTimeout time.Duration
}

func NewWebSocketHandler(chatService *service.ChatService) *WebSocketHandler {
	return &WebSocketHandler{
		chatService: chatService,
		sendTimeout: SendTimeoutFromEnv(),
	}
}

// SendTimeoutFromEnv reads WS_SEND_TIMEOUT_MS, falling back to the hub
// default.
func SendTimeoutFromEnv() time.Duration {
	if msStr := os.Getenv("WS_SEND_TIMEOUT_MS"); msStr != "" {
		if ms, err := strconv.Atoi(msStr); err == nil && ms > 0 {
			return time.Duration(ms) * time.Millisecond
		}
	}
	return hub.DefaultSendTimeout
}

// HandleWebSocket runs one connection's read loop. A connection starts with
// no subscriptions; subscribe/unsubscribe frames manage them, and everything
// left is revoked when the connection drops.
func (h *WebSocketHandler) HandleWebSocket(c *websocket.Conn) {
	userID, err := strconv.ParseUint(c.Query("user_id"), 10, 32)
	if err != nil || userID == 0 {
		log.Printf("WebSocket connection rejected: missing or invalid user_id")
		c.Close()
		return
	}

	writer := ws.NewConnWriter(c, h.sendTimeout)
	ctx := &ws.MessageContext{
		UserID:      uint(userID),
		Writer:      writer,
		ChatService: h.chatService,
		Subs:        make(map[uint]*hub.Subscription),
	}

	defer func() {
		for _, sub := range ctx.Subs {
			h.chatService.Unsubscribe(sub)
		}
	}()

	log.Printf("User %d connected via WebSocket", userID)

	for {
		_, messageBytes, err := c.ReadMessage()
		if err != nil {
			log.Printf("Error reading message from user %d: %v", userID, err)
			break
		}

		msg, err := ws.Deserialize(messageBytes)
		if err != nil {
			log.Printf("Error deserializing frame from user %d: %v", userID, err)
			ws.SendError(writer, "invalid_message", "Invalid message format", err.Error())
			continue
		}

		if err := msg.Process(ctx); err != nil {
			log.Printf("Error processing frame %s from user %d: %v", msg.GetType(), userID, err)
			ws.SendError(writer, "processing_failed", "Failed to process message", err.Error())
		}
	}

	log.Printf("User %d disconnected from WebSocket", userID)
}
