package httpx

import (
	"errors"
	"fmt"

	"github.com/crewfit/crewfit-backend/internal/service"
	"github.com/gofiber/fiber/v2"
)

type ErrorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

func requestID(c *fiber.Ctx) string {
	if v := c.Locals("requestid"); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

func Error(c *fiber.Ctx, status int, code string, message string) error {
	if message == "" {
		message = "Request failed"
	}
	return c.Status(status).JSON(ErrorResponse{
		Error:     message,
		Code:      code,
		RequestID: requestID(c),
	})
}

func BadRequest(c *fiber.Ctx, code string, message string) error {
	return Error(c, fiber.StatusBadRequest, code, message)
}

func NotFound(c *fiber.Ctx, code string, message string) error {
	return Error(c, fiber.StatusNotFound, code, message)
}

func Conflict(c *fiber.Ctx, code string, message string) error {
	return Error(c, fiber.StatusConflict, code, message)
}

func Internal(c *fiber.Ctx, code string) error {
	return Error(c, fiber.StatusInternalServerError, code, "Internal server error")
}

// FromServiceError maps the service error kinds onto HTTP statuses.
func FromServiceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		return BadRequest(c, "invalid_input", err.Error())
	case errors.Is(err, service.ErrNotFound):
		return NotFound(c, "not_found", err.Error())
	case errors.Is(err, service.ErrDuplicateReaction):
		return Conflict(c, "duplicate_reaction", err.Error())
	case errors.Is(err, service.ErrStorage):
		return Error(c, fiber.StatusInternalServerError, "storage_failure", "Storage unavailable")
	default:
		return Internal(c, "internal_error")
	}
}

func ParamUint(c *fiber.Ctx, key string) (uint, error) {
	id, err := c.ParamsInt(key)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return uint(id), nil
}

func QueryUint(c *fiber.Ctx, key string) (uint, error) {
	id := c.QueryInt(key)
	if id <= 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return uint(id), nil
}
