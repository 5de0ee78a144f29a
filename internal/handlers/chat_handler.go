package handlers

import (
	"github.com/crewfit/crewfit-backend/internal/httpx"
	"github.com/crewfit/crewfit-backend/internal/models"
	"github.com/crewfit/crewfit-backend/internal/service"
	"github.com/gofiber/fiber/v2"
)

type ChatHandler struct {
	chatService *service.ChatService
}

func NewChatHandler(chatService *service.ChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

type publishRequest struct {
	Content  string `json:"content"`
	ClientID string `json:"client_id"`
}

// PublishMessage handles POST /api/groups/:id/messages?user_id={id}
func (h *ChatHandler) PublishMessage(c *fiber.Ctx) error {
	groupID, err := httpx.ParamUint(c, "id")
	if err != nil {
		return httpx.BadRequest(c, "invalid_group_id", err.Error())
	}
	senderID, err := httpx.QueryUint(c, "user_id")
	if err != nil {
		return httpx.BadRequest(c, "invalid_user_id", err.Error())
	}

	var req publishRequest
	if err := c.BodyParser(&req); err != nil {
		return httpx.BadRequest(c, "invalid_body", "Invalid request body")
	}

	message, err := h.chatService.Publish(groupID, senderID, req.Content, req.ClientID)
	if err != nil {
		return httpx.FromServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(message.ToResponse())
}

// GetHistory handles GET /api/groups/:id/messages
func (h *ChatHandler) GetHistory(c *fiber.Ctx) error {
	groupID, err := httpx.ParamUint(c, "id")
	if err != nil {
		return httpx.BadRequest(c, "invalid_group_id", err.Error())
	}

	messages, err := h.chatService.History(groupID)
	if err != nil {
		return httpx.FromServiceError(c, err)
	}

	responses := make([]models.GroupMessageResponse, 0, len(messages))
	for i := range messages {
		responses = append(responses, messages[i].ToResponse())
	}
	return c.JSON(responses)
}
