package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"alfredoptarigan/vela/internal/models"
	"alfredoptarigan/vela/internal/repositories"
	"alfredoptarigan/vela/internal/services"
)

type WorkspaceHandler struct {
	workspaceRepo repositories.WorkspaceRepository
	worker        services.Worker
}

func NewWorkspaceHandler(workspaceRepo repositories.WorkspaceRepository, worker services.Worker) *WorkspaceHandler {
	return &WorkspaceHandler{
		workspaceRepo: workspaceRepo,
		worker:        worker,
	}
}

// HandleCreate handles POST /workspaces
func (h *WorkspaceHandler) HandleCreate(c *fiber.Ctx) error {
	ws := models.NewWorkspace()
	if err := h.workspaceRepo.Create(ws); err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(models.NewWorkspaceResponse(ws))
}

// HandleGet handles GET /workspaces/:id
func (h *WorkspaceHandler) HandleGet(c *fiber.Ctx) error {
	id, ok := parseWorkspaceID(c)
	if !ok {
		return invalidWorkspaceID(c)
	}

	ws, err := h.workspaceRepo.FindByID(id)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(models.NewWorkspaceResponse(ws))
}

// HandleDelete handles DELETE /workspaces/:id. The session and its uploaded
// document are dropped and a job still running for it is cancelled.
func (h *WorkspaceHandler) HandleDelete(c *fiber.Ctx) error {
	id, ok := parseWorkspaceID(c)
	if !ok {
		return invalidWorkspaceID(c)
	}

	if err := h.workspaceRepo.Delete(id); err != nil {
		return respondError(c, err)
	}

	if h.worker.Cancel(id) {
		log.Printf("🛑 Cancelled running job of deleted workspace %s", id)
	}
	log.Printf("🗑️  Workspace %s deleted", id)

	return c.SendStatus(fiber.StatusNoContent)
}

// HandleSetJobDescription handles PUT /workspaces/:id/job
func (h *WorkspaceHandler) HandleSetJobDescription(c *fiber.Ctx) error {
	id, ok := parseWorkspaceID(c)
	if !ok {
		return invalidWorkspaceID(c)
	}

	var req models.JobDescriptionRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidPayload(c)
	}

	return h.update(c, id, func(ws models.Workspace) (models.Workspace, error) {
		return ws.WithJobDescription(req.JobDescription), nil
	})
}

// HandleSetProfile handles PUT /workspaces/:id/profile
func (h *WorkspaceHandler) HandleSetProfile(c *fiber.Ctx) error {
	id, ok := parseWorkspaceID(c)
	if !ok {
		return invalidWorkspaceID(c)
	}

	var profile models.UserProfile
	if err := c.BodyParser(&profile); err != nil {
		return invalidPayload(c)
	}

	return h.update(c, id, func(ws models.Workspace) (models.Workspace, error) {
		return ws.WithProfile(profile), nil
	})
}

// HandleSetMode handles PUT /workspaces/:id/mode
func (h *WorkspaceHandler) HandleSetMode(c *fiber.Ctx) error {
	id, ok := parseWorkspaceID(c)
	if !ok {
		return invalidWorkspaceID(c)
	}

	var req models.ModeRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidPayload(c)
	}

	return h.update(c, id, func(ws models.Workspace) (models.Workspace, error) {
		return ws.WithMode(req.Mode)
	})
}

// HandleSetContent handles PUT /workspaces/:id/content
func (h *WorkspaceHandler) HandleSetContent(c *fiber.Ctx) error {
	id, ok := parseWorkspaceID(c)
	if !ok {
		return invalidWorkspaceID(c)
	}

	var req models.ContentRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidPayload(c)
	}

	return h.update(c, id, func(ws models.Workspace) (models.Workspace, error) {
		return ws.WithContent(req.Content)
	})
}

func (h *WorkspaceHandler) update(c *fiber.Ctx, id uuid.UUID, transition repositories.WorkspaceTransition) error {
	ws, err := h.workspaceRepo.Update(id, transition)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(models.NewWorkspaceResponse(ws))
}
