package handlers

import (
	"fmt"
	"io"
	"log"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/vela/internal/models"
	"alfredoptarigan/vela/internal/repositories"
	"alfredoptarigan/vela/internal/services"
)

type UploadHandler struct {
	workspaceRepo   repositories.WorkspaceRepository
	documentService services.DocumentService
	maxFileSize     int64
}

func NewUploadHandler(
	workspaceRepo repositories.WorkspaceRepository,
	documentService services.DocumentService,
	maxFileSize int64,
) *UploadHandler {
	return &UploadHandler{
		workspaceRepo:   workspaceRepo,
		documentService: documentService,
		maxFileSize:     maxFileSize,
	}
}

// HandleUpload handles POST /workspaces/:id/upload. The file is held in
// memory on the workspace and never written to disk.
func (h *UploadHandler) HandleUpload(c *fiber.Ctx) error {
	id, ok := parseWorkspaceID(c)
	if !ok {
		return invalidWorkspaceID(c)
	}

	if _, err := h.workspaceRepo.FindByID(id); err != nil {
		return respondError(c, err)
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No file uploaded. Please upload your resume as 'file'.",
		})
	}

	if fileHeader.Size > h.maxFileSize {
		return c.Status(fiber.StatusRequestEntityTooLarge).JSON(fiber.Map{
			"error": fmt.Sprintf("File too large. Max size: %d bytes", h.maxFileSize),
		})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to open uploaded file",
		})
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to read uploaded file",
		})
	}

	doc, err := h.documentService.Prepare(fileHeader.Filename, data)
	if err != nil {
		log.Printf("⚠️  Rejected upload %q: %v", fileHeader.Filename, err)
		return respondError(c, err)
	}

	ws, err := h.workspaceRepo.Update(id, func(ws models.Workspace) (models.Workspace, error) {
		return ws.WithDocument(doc), nil
	})
	if err != nil {
		return respondError(c, err)
	}

	log.Printf("📄 Document %q (%s) attached to workspace %s", doc.FileName, doc.MimeType, id)

	return c.Status(fiber.StatusCreated).JSON(models.NewWorkspaceResponse(ws))
}

// HandleClear handles DELETE /workspaces/:id/upload
func (h *UploadHandler) HandleClear(c *fiber.Ctx) error {
	id, ok := parseWorkspaceID(c)
	if !ok {
		return invalidWorkspaceID(c)
	}

	ws, err := h.workspaceRepo.Update(id, func(ws models.Workspace) (models.Workspace, error) {
		return ws.WithoutDocument(), nil
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(models.NewWorkspaceResponse(ws))
}
