package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"alfredoptarigan/vela/internal/models"
	"alfredoptarigan/vela/internal/services"
)

func errorStatus(err error) int {
	switch {
	case errors.Is(err, models.ErrWorkspaceNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, models.ErrWorkspaceBusy):
		return fiber.StatusConflict
	case errors.Is(err, models.ErrNotReady),
		errors.Is(err, models.ErrNoContent),
		errors.Is(err, models.ErrInvalidDocumentType),
		errors.Is(err, models.ErrInvalidInputMode):
		return fiber.StatusBadRequest
	case errors.Is(err, models.ErrUnsupportedDocument):
		return fiber.StatusUnsupportedMediaType
	case errors.Is(err, services.ErrQueueFull), errors.Is(err, services.ErrWorkerStopped):
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusInternalServerError
	}
}

func respondError(c *fiber.Ctx, err error) error {
	code := errorStatus(err)
	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}

func parseWorkspaceID(c *fiber.Ctx) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

func invalidWorkspaceID(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": "Invalid workspace ID format",
	})
}

func invalidPayload(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": "Invalid request payload",
	})
}
