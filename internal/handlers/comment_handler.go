package handlers

import (
	"github.com/crewfit/crewfit-backend/internal/httpx"
	"github.com/crewfit/crewfit-backend/internal/models"
	"github.com/crewfit/crewfit-backend/internal/service"
	"github.com/gofiber/fiber/v2"
)

type CommentHandler struct {
	commentService *service.CommentService
}

func NewCommentHandler(commentService *service.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

type postCommentRequest struct {
	Content string `json:"content"`
	Emoji   string `json:"emoji"`
}

// PostComment handles POST /api/checkins/:id/comments?user_id={id}. The
// body carries content XOR emoji; which one is set decides the variant.
func (h *CommentHandler) PostComment(c *fiber.Ctx) error {
	checkinID, err := httpx.ParamUint(c, "id")
	if err != nil {
		return httpx.BadRequest(c, "invalid_checkin_id", err.Error())
	}
	userID, err := httpx.QueryUint(c, "user_id")
	if err != nil {
		return httpx.BadRequest(c, "invalid_user_id", err.Error())
	}

	var req postCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return httpx.BadRequest(c, "invalid_body", "Invalid request body")
	}

	hasContent := req.Content != ""
	hasEmoji := req.Emoji != ""
	if hasContent == hasEmoji {
		return httpx.BadRequest(c, "invalid_input", "Exactly one of content or emoji must be set")
	}

	var comment *models.Comment
	if hasContent {
		comment, err = h.commentService.PostComment(checkinID, userID, req.Content)
	} else {
		comment, err = h.commentService.PostReaction(checkinID, userID, req.Emoji)
	}
	if err != nil {
		return httpx.FromServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(comment.ToResponse())
}

// ListComments handles GET /api/checkins/:id/comments
func (h *CommentHandler) ListComments(c *fiber.Ctx) error {
	checkinID, err := httpx.ParamUint(c, "id")
	if err != nil {
		return httpx.BadRequest(c, "invalid_checkin_id", err.Error())
	}

	comments, err := h.commentService.ListComments(checkinID)
	if err != nil {
		return httpx.FromServiceError(c, err)
	}

	responses := make([]models.CommentResponse, 0, len(comments))
	for i := range comments {
		responses = append(responses, comments[i].ToResponse())
	}
	return c.JSON(responses)
}

// RemoveReaction handles DELETE /api/checkins/:id/reactions?user_id={id}&emoji={e}
func (h *CommentHandler) RemoveReaction(c *fiber.Ctx) error {
	checkinID, err := httpx.ParamUint(c, "id")
	if err != nil {
		return httpx.BadRequest(c, "invalid_checkin_id", err.Error())
	}
	userID, err := httpx.QueryUint(c, "user_id")
	if err != nil {
		return httpx.BadRequest(c, "invalid_user_id", err.Error())
	}
	emoji := c.Query("emoji")

	if err := h.commentService.RemoveReaction(checkinID, userID, emoji); err != nil {
		return httpx.FromServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
