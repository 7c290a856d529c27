package handlers

import (
	"errors"
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/vela/internal/models"
	"alfredoptarigan/vela/internal/repositories"
	"alfredoptarigan/vela/internal/services"
)

type ExportHandler struct {
	workspaceRepo repositories.WorkspaceRepository
	exportService services.ExportService
	printer       services.PDFPrinter
}

func NewExportHandler(
	workspaceRepo repositories.WorkspaceRepository,
	exportService services.ExportService,
	printer services.PDFPrinter,
) *ExportHandler {
	return &ExportHandler{
		workspaceRepo: workspaceRepo,
		exportService: exportService,
		printer:       printer,
	}
}

// HandleExport handles GET /workspaces/:id/export. The document prints
// itself on load unless ?print=false.
func (h *ExportHandler) HandleExport(c *fiber.Ctx) error {
	ws, document, err := h.buildDocument(c, c.QueryBool("print", true))
	if err != nil {
		return h.exportError(c, err)
	}

	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`inline; filename="%s"`, exportFileName(ws, "html")))
	c.Type("html", "utf-8")
	return c.SendString(document)
}

// HandleExportPDF handles GET /workspaces/:id/export.pdf
func (h *ExportHandler) HandleExportPDF(c *fiber.Ctx) error {
	ws, document, err := h.buildDocument(c, false)
	if err != nil {
		return h.exportError(c, err)
	}

	pdfBytes, err := h.printer.Print(c.UserContext(), document)
	if err != nil {
		log.Printf("❌ PDF export failed for workspace %s: %v", ws.ID, err)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": "Failed to print PDF",
		})
	}

	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, exportFileName(ws, "pdf")))
	c.Type("pdf")
	return c.Send(pdfBytes)
}

func (h *ExportHandler) buildDocument(c *fiber.Ctx, autoPrint bool) (models.Workspace, string, error) {
	id, ok := parseWorkspaceID(c)
	if !ok {
		return models.Workspace{}, "", errInvalidID
	}

	ws, err := h.workspaceRepo.FindByID(id)
	if err != nil {
		return models.Workspace{}, "", err
	}

	document, err := h.exportService.BuildPrintDocument(ws.Content, ws.ActiveView, services.ExportOptions{AutoPrint: autoPrint})
	if err != nil {
		return ws, "", err
	}
	return ws, document, nil
}

var errInvalidID = errors.New("invalid workspace id")

// exportError treats an empty canvas as nothing to export.
func (h *ExportHandler) exportError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, errInvalidID):
		return invalidWorkspaceID(c)
	case errors.Is(err, models.ErrNoContent):
		return c.SendStatus(fiber.StatusNoContent)
	default:
		return respondError(c, err)
	}
}

func exportFileName(ws models.Workspace, ext string) string {
	return fmt.Sprintf("vela-%s.%s", ws.ActiveView, ext)
}
