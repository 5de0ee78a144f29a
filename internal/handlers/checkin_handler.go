package handlers

import (
	"github.com/crewfit/crewfit-backend/internal/httpx"
	"github.com/crewfit/crewfit-backend/internal/models"
	"github.com/crewfit/crewfit-backend/internal/service"
	"github.com/gofiber/fiber/v2"
)

type CheckinHandler struct {
	checkinService *service.CheckinService
}

func NewCheckinHandler(checkinService *service.CheckinService) *CheckinHandler {
	return &CheckinHandler{checkinService: checkinService}
}

// PostCheckin handles POST /api/groups/:id/checkins?user_id={id}
func (h *CheckinHandler) PostCheckin(c *fiber.Ctx) error {
	groupID, err := httpx.ParamUint(c, "id")
	if err != nil {
		return httpx.BadRequest(c, "invalid_group_id", err.Error())
	}
	userID, err := httpx.QueryUint(c, "user_id")
	if err != nil {
		return httpx.BadRequest(c, "invalid_user_id", err.Error())
	}

	var input service.PostCheckinInput
	if err := c.BodyParser(&input); err != nil {
		return httpx.BadRequest(c, "invalid_body", "Invalid request body")
	}

	checkin, err := h.checkinService.PostCheckin(groupID, userID, input)
	if err != nil {
		return httpx.FromServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(checkin.ToResponse())
}

// ListCheckins handles GET /api/groups/:id/checkins
func (h *CheckinHandler) ListCheckins(c *fiber.Ctx) error {
	groupID, err := httpx.ParamUint(c, "id")
	if err != nil {
		return httpx.BadRequest(c, "invalid_group_id", err.Error())
	}

	checkins, err := h.checkinService.ListCheckins(groupID)
	if err != nil {
		return httpx.FromServiceError(c, err)
	}

	responses := make([]models.CheckinResponse, 0, len(checkins))
	for i := range checkins {
		responses = append(responses, checkins[i].ToResponse())
	}
	return c.JSON(responses)
}

// GetCheckin handles GET /api/checkins/:id
func (h *CheckinHandler) GetCheckin(c *fiber.Ctx) error {
	id, err := httpx.ParamUint(c, "id")
	if err != nil {
		return httpx.BadRequest(c, "invalid_checkin_id", err.Error())
	}

	checkin, err := h.checkinService.GetCheckin(id)
	if err != nil {
		return httpx.FromServiceError(c, err)
	}
	return c.JSON(checkin.ToResponse())
}
