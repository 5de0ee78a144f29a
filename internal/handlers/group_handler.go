package handlers

import (
	"github.com/crewfit/crewfit-backend/internal/httpx"
	"github.com/crewfit/crewfit-backend/internal/service"
	"github.com/gofiber/fiber/v2"
)

type GroupHandler struct {
	rankingService *service.RankingService
}

func NewGroupHandler(rankingService *service.RankingService) *GroupHandler {
	return &GroupHandler{rankingService: rankingService}
}

// GetRanking handles GET /api/groups/:id/ranking
func (h *GroupHandler) GetRanking(c *fiber.Ctx) error {
	groupID, err := httpx.ParamUint(c, "id")
	if err != nil {
		return httpx.BadRequest(c, "invalid_group_id", err.Error())
	}

	entries, err := h.rankingService.Rank(groupID)
	if err != nil {
		return httpx.FromServiceError(c, err)
	}
	return c.JSON(entries)
}

// GetStats handles GET /api/groups/:id/stats
func (h *GroupHandler) GetStats(c *fiber.Ctx) error {
	groupID, err := httpx.ParamUint(c, "id")
	if err != nil {
		return httpx.BadRequest(c, "invalid_group_id", err.Error())
	}

	stats, err := h.rankingService.Stats(groupID)
	if err != nil {
		return httpx.FromServiceError(c, err)
	}
	return c.JSON(stats)
}
