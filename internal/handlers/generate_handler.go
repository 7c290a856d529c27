package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/vela/internal/models"
	"alfredoptarigan/vela/internal/repositories"
	"alfredoptarigan/vela/internal/services"
)

const (
	statusGenerating = "generating"
	statusPolishing  = "polishing"
	statusCancelling = "cancelling"
)

type GenerateHandler struct {
	workspaceRepo repositories.WorkspaceRepository
	tailorService services.TailorService
	worker        services.Worker
}

func NewGenerateHandler(
	workspaceRepo repositories.WorkspaceRepository,
	tailorService services.TailorService,
	worker services.Worker,
) *GenerateHandler {
	return &GenerateHandler{
		workspaceRepo: workspaceRepo,
		tailorService: tailorService,
		worker:        worker,
	}
}

// HandleGenerate handles POST /workspaces/:id/generate
func (h *GenerateHandler) HandleGenerate(c *fiber.Ctx) error {
	id, ok := parseWorkspaceID(c)
	if !ok {
		return invalidWorkspaceID(c)
	}

	var req models.GenerateRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidPayload(c)
	}

	ws, err := h.tailorService.StartGeneration(id, req.Type)
	if err != nil {
		return respondError(c, err)
	}

	if err := h.worker.Enqueue(services.Job{WorkspaceID: id, Kind: services.JobGenerate}); err != nil {
		h.tailorService.Abandon(id, err)
		return respondError(c, err)
	}

	return c.Status(fiber.StatusAccepted).JSON(models.JobAcceptedResponse{
		ID:         id.String(),
		Status:     statusGenerating,
		ActiveView: ws.ActiveView,
		AcceptedAt: time.Now(),
	})
}

// HandlePolish handles POST /workspaces/:id/polish. The body is optional.
func (h *GenerateHandler) HandlePolish(c *fiber.Ctx) error {
	id, ok := parseWorkspaceID(c)
	if !ok {
		return invalidWorkspaceID(c)
	}

	var req models.PolishRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return invalidPayload(c)
		}
	}

	ws, err := h.tailorService.StartPolish(id)
	if err != nil {
		return respondError(c, err)
	}

	job := services.Job{WorkspaceID: id, Kind: services.JobPolish, Instruction: req.Instruction}
	if err := h.worker.Enqueue(job); err != nil {
		h.tailorService.Abandon(id, err)
		return respondError(c, err)
	}

	return c.Status(fiber.StatusAccepted).JSON(models.JobAcceptedResponse{
		ID:         id.String(),
		Status:     statusPolishing,
		ActiveView: ws.ActiveView,
		AcceptedAt: time.Now(),
	})
}

// HandleCancel handles POST /workspaces/:id/cancel
func (h *GenerateHandler) HandleCancel(c *fiber.Ctx) error {
	id, ok := parseWorkspaceID(c)
	if !ok {
		return invalidWorkspaceID(c)
	}

	ws, err := h.workspaceRepo.FindByID(id)
	if err != nil {
		return respondError(c, err)
	}

	if !h.worker.Cancel(id) {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "No generation or polish in progress",
		})
	}

	return c.Status(fiber.StatusAccepted).JSON(models.JobAcceptedResponse{
		ID:         id.String(),
		Status:     statusCancelling,
		ActiveView: ws.ActiveView,
		AcceptedAt: time.Now(),
	})
}
