package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Workspace *WorkspaceHandler
	Upload    *UploadHandler
	Generate  *GenerateHandler
	Export    *ExportHandler
	Theme     *ThemeHandler
}

// Endpoints is the route listing served at the root.
var Endpoints = []string{
	"GET /api/v1/health",
	"POST /api/v1/workspaces",
	"GET /api/v1/workspaces/:id",
	"DELETE /api/v1/workspaces/:id",
	"PUT /api/v1/workspaces/:id/job",
	"PUT /api/v1/workspaces/:id/profile",
	"PUT /api/v1/workspaces/:id/mode",
	"PUT /api/v1/workspaces/:id/content",
	"POST /api/v1/workspaces/:id/upload",
	"DELETE /api/v1/workspaces/:id/upload",
	"POST /api/v1/workspaces/:id/generate",
	"POST /api/v1/workspaces/:id/polish",
	"POST /api/v1/workspaces/:id/cancel",
	"GET /api/v1/workspaces/:id/export",
	"GET /api/v1/workspaces/:id/export.pdf",
	"GET /api/v1/theme",
	"PUT /api/v1/theme",
	"POST /api/v1/theme/toggle",
}

func RegisterRoutes(api fiber.Router, h *Handlers) {
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	workspaces := api.Group("/workspaces")
	workspaces.Post("/", h.Workspace.HandleCreate)
	workspaces.Get("/:id", h.Workspace.HandleGet)
	workspaces.Delete("/:id", h.Workspace.HandleDelete)
	workspaces.Put("/:id/job", h.Workspace.HandleSetJobDescription)
	workspaces.Put("/:id/profile", h.Workspace.HandleSetProfile)
	workspaces.Put("/:id/mode", h.Workspace.HandleSetMode)
	workspaces.Put("/:id/content", h.Workspace.HandleSetContent)

	workspaces.Post("/:id/upload", h.Upload.HandleUpload)
	workspaces.Delete("/:id/upload", h.Upload.HandleClear)

	workspaces.Post("/:id/generate", h.Generate.HandleGenerate)
	workspaces.Post("/:id/polish", h.Generate.HandlePolish)
	workspaces.Post("/:id/cancel", h.Generate.HandleCancel)

	workspaces.Get("/:id/export.pdf", h.Export.HandleExportPDF)
	workspaces.Get("/:id/export", h.Export.HandleExport)

	api.Get("/theme", h.Theme.HandleGet)
	api.Put("/theme", h.Theme.HandleSet)
	api.Post("/theme/toggle", h.Theme.HandleToggle)
}
