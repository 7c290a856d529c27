package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/uuid"

	"alfredoptarigan/vela/internal/models"
	"alfredoptarigan/vela/internal/repositories"
)

const GenerationErrorMarkup = `<p class="text-red-500 p-4">Error generating content. Please check your API key and try again.</p>`

var ErrEmptyResponse = errors.New("model returned an empty response")

// TailorService drives generation and polish against a workspace. The Start
// methods flip the in-progress flag synchronously; the Complete methods do
// the model call and are meant to run on the worker.
type TailorService interface {
	StartGeneration(id uuid.UUID, docType models.DocumentType) (models.Workspace, error)
	CompleteGeneration(ctx context.Context, id uuid.UUID) error
	Generate(ctx context.Context, id uuid.UUID, docType models.DocumentType) (models.Workspace, error)

	StartPolish(id uuid.UUID) (models.Workspace, error)
	CompletePolish(ctx context.Context, id uuid.UUID, instruction string) error
	Polish(ctx context.Context, id uuid.UUID, instruction string) (models.Workspace, error)

	// Abandon releases a started job that never ran.
	Abandon(id uuid.UUID, reason error)
}

type tailorService struct {
	workspaceRepo repositories.WorkspaceRepository
	geminiService GeminiService
	promptBuilder *PromptBuilder
}

func NewTailorService(
	workspaceRepo repositories.WorkspaceRepository,
	geminiService GeminiService,
	temperatures Temperatures,
) TailorService {
	return &tailorService{
		workspaceRepo: workspaceRepo,
		geminiService: geminiService,
		promptBuilder: NewPromptBuilder(temperatures),
	}
}

// StartGeneration implements TailorService.
func (t *tailorService) StartGeneration(id uuid.UUID, docType models.DocumentType) (models.Workspace, error) {
	return t.workspaceRepo.Update(id, func(ws models.Workspace) (models.Workspace, error) {
		return ws.StartGeneration(docType)
	})
}

// CompleteGeneration implements TailorService. The workspace always leaves
// the generating state. It gets the rendered document, the markdown fallback
// or the inline error paragraph; a cancelled run keeps the previous content.
func (t *tailorService) CompleteGeneration(ctx context.Context, id uuid.UUID) error {
	ws, err := t.workspaceRepo.FindByID(id)
	if err != nil {
		return err
	}

	log.Printf("🤖 Generating %s for workspace %s", ws.ActiveView, id)

	content, genErr := t.generateContent(ctx, ws)
	cancelled := errors.Is(genErr, context.Canceled)
	switch {
	case cancelled:
		log.Printf("🛑 Generation cancelled for workspace %s", id)
	case genErr != nil:
		log.Printf("❌ Generation failed for workspace %s: %v", id, genErr)
		content = GenerationErrorMarkup
	}

	if _, err := t.workspaceRepo.Update(id, func(ws models.Workspace) (models.Workspace, error) {
		if cancelled {
			return ws.CancelGeneration(genErr), nil
		}
		return ws.FinishGeneration(content, genErr), nil
	}); err != nil {
		return fmt.Errorf("failed to save generation result: %w", err)
	}

	if genErr != nil {
		return genErr
	}

	log.Printf("✅ Generation completed for workspace %s", id)
	return nil
}

// Generate implements TailorService.
func (t *tailorService) Generate(ctx context.Context, id uuid.UUID, docType models.DocumentType) (models.Workspace, error) {
	if _, err := t.StartGeneration(id, docType); err != nil {
		return models.Workspace{}, err
	}
	genErr := t.CompleteGeneration(ctx, id)

	ws, err := t.workspaceRepo.FindByID(id)
	if err != nil {
		return models.Workspace{}, err
	}
	return ws, genErr
}

func (t *tailorService) generateContent(ctx context.Context, ws models.Workspace) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	req, err := t.promptBuilder.BuildGenerationRequest(ws.ActiveView, ws.JobDescription, ws.Source(), ws.Profile.Links)
	if err != nil {
		return "", err
	}

	raw, err := t.geminiService.Generate(ctx, req)
	if err != nil {
		return "", err
	}

	clean := SanitizeAIResponse(raw)

	if ws.ActiveView == models.DocumentResume {
		return renderResumeOrFallback(clean), nil
	}
	return ParseMarkdownToHTML(clean), nil
}

// renderResumeOrFallback renders structured output and drops to the prose
// path when the model did not return valid ResumeData.
func renderResumeOrFallback(clean string) string {
	data, err := ParseResumeData(clean)
	if err != nil {
		log.Printf("⚠️  Resume JSON rejected, using markdown fallback: %v", err)
		return ParseMarkdownToHTML(clean)
	}

	html, err := RenderResumeToHTML(*data)
	if err != nil {
		log.Printf("⚠️  Resume render failed, using markdown fallback: %v", err)
		return ParseMarkdownToHTML(clean)
	}
	return html
}

// StartPolish implements TailorService.
func (t *tailorService) StartPolish(id uuid.UUID) (models.Workspace, error) {
	return t.workspaceRepo.Update(id, func(ws models.Workspace) (models.Workspace, error) {
		return ws.StartPolish()
	})
}

// CompletePolish implements TailorService. On failure the held content is
// left as it was.
func (t *tailorService) CompletePolish(ctx context.Context, id uuid.UUID, instruction string) error {
	ws, err := t.workspaceRepo.FindByID(id)
	if err != nil {
		return err
	}

	log.Printf("✨ Polishing %s for workspace %s", ws.ActiveView, id)

	polished, polishErr := t.polishContent(ctx, ws, instruction)
	if polishErr != nil {
		log.Printf("❌ Polish failed for workspace %s: %v", id, polishErr)
	}

	if _, err := t.workspaceRepo.Update(id, func(ws models.Workspace) (models.Workspace, error) {
		return ws.FinishPolish(polished, polishErr), nil
	}); err != nil {
		return fmt.Errorf("failed to save polish result: %w", err)
	}

	if polishErr != nil {
		return polishErr
	}

	log.Printf("✅ Polish completed for workspace %s", id)
	return nil
}

// Polish implements TailorService.
func (t *tailorService) Polish(ctx context.Context, id uuid.UUID, instruction string) (models.Workspace, error) {
	if _, err := t.StartPolish(id); err != nil {
		return models.Workspace{}, err
	}
	polishErr := t.CompletePolish(ctx, id, instruction)

	ws, err := t.workspaceRepo.FindByID(id)
	if err != nil {
		return models.Workspace{}, err
	}
	return ws, polishErr
}

func (t *tailorService) polishContent(ctx context.Context, ws models.Workspace, instruction string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	req := t.promptBuilder.BuildPolishRequest(ws.Content, ws.JobDescription, instruction)

	raw, err := t.geminiService.Generate(ctx, req)
	if err != nil {
		return "", err
	}

	polished := SanitizeAIResponse(raw)
	if polished == "" {
		return "", ErrEmptyResponse
	}

	if !SameStructure(ws.Content, polished) {
		log.Printf("⚠️  Polish changed the markup structure of workspace %s", ws.ID)
	}

	return polished, nil
}

// Abandon implements TailorService.
func (t *tailorService) Abandon(id uuid.UUID, reason error) {
	if _, err := t.workspaceRepo.Update(id, func(ws models.Workspace) (models.Workspace, error) {
		return ws.Abandon(reason), nil
	}); err != nil {
		log.Printf("⚠️  Failed to release workspace %s: %v", id, err)
	}
}

// SameStructure reports whether two fragments have the same element
// skeleton, ignoring text and attribute values.
func SameStructure(before, after string) bool {
	a, errA := tagSkeleton(before)
	b, errB := tagSkeleton(after)
	if errA != nil || errB != nil {
		return false
	}
	return a == b
}

func tagSkeleton(markup string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return "", err
	}

	var tags []string
	doc.Find("body *").Each(func(_ int, s *goquery.Selection) {
		tags = append(tags, goquery.NodeName(s))
	})
	return strings.Join(tags, ","), nil
}
