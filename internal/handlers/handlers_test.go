package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/vela/internal/models"
	"alfredoptarigan/vela/internal/repositories"
	"alfredoptarigan/vela/internal/services"
)

type stubGemini struct {
	response string
	err      error
	block    chan struct{}

	// started and aborted, when set, are signalled once a blocked call
	// begins and once its context is cancelled.
	started chan struct{}
	aborted chan struct{}
}

func (s *stubGemini) Generate(ctx context.Context, _ *services.GenerationRequest) (string, error) {
	if s.block != nil {
		if s.started != nil {
			close(s.started)
		}
		select {
		case <-s.block:
		case <-ctx.Done():
			if s.aborted != nil {
				close(s.aborted)
			}
			return "", ctx.Err()
		}
	}
	return s.response, s.err
}

type stubPrinter struct {
	document string
}

func (p *stubPrinter) Print(_ context.Context, document string) ([]byte, error) {
	p.document = document
	return []byte("%PDF-1.7 stub"), nil
}

type testEnv struct {
	app     *fiber.App
	repo    repositories.WorkspaceRepository
	printer *stubPrinter
}

func newTestEnv(t *testing.T, gemini services.GeminiService) *testEnv {
	t.Helper()

	repo := repositories.NewWorkspaceRepository()
	tailor := services.NewTailorService(repo, gemini, services.DefaultTemperatures())
	worker := services.NewWorker(tailor, 1, 10)
	worker.Start(context.Background())
	t.Cleanup(worker.Stop)

	printer := &stubPrinter{}
	app := fiber.New()
	RegisterRoutes(app.Group("/api/v1"), &Handlers{
		Workspace: NewWorkspaceHandler(repo, worker),
		Upload:    NewUploadHandler(repo, services.NewDocumentService(), 1<<20),
		Generate:  NewGenerateHandler(repo, tailor, worker),
		Export:    NewExportHandler(repo, services.NewExportService(), printer),
		Theme:     NewThemeHandler("dark"),
	})

	return &testEnv{app: app, repo: repo, printer: printer}
}

func (e *testEnv) do(t *testing.T, method, path string, body any) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}

	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()

	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func (e *testEnv) createWorkspace(t *testing.T) uuid.UUID {
	t.Helper()
	resp := e.do(t, http.MethodPost, "/api/v1/workspaces", nil)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	return decode[models.WorkspaceResponse](t, resp).ID
}

// readyWorkspace returns a form-mode workspace that can generate.
func (e *testEnv) readyWorkspace(t *testing.T) uuid.UUID {
	t.Helper()
	id := e.createWorkspace(t)
	base := "/api/v1/workspaces/" + id.String()

	require.Equal(t, fiber.StatusOK, e.do(t, http.MethodPut, base+"/job", models.JobDescriptionRequest{JobDescription: "Go engineer"}).StatusCode)
	require.Equal(t, fiber.StatusOK, e.do(t, http.MethodPut, base+"/mode", models.ModeRequest{Mode: models.InputModeForm}).StatusCode)
	require.Equal(t, fiber.StatusOK, e.do(t, http.MethodPut, base+"/profile", models.UserProfile{Name: "Ada"}).StatusCode)
	return id
}

func (e *testEnv) waitIdle(t *testing.T, id uuid.UUID) models.Workspace {
	t.Helper()
	require.Eventually(t, func() bool {
		ws, err := e.repo.FindByID(id)
		return err == nil && !ws.Busy()
	}, 2*time.Second, 10*time.Millisecond)

	ws, err := e.repo.FindByID(id)
	require.NoError(t, err)
	return ws
}

func uploadRequest(t *testing.T, path, fileName string, data []byte) *http.Request {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", fileName)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set(fiber.HeaderContentType, writer.FormDataContentType())
	return req
}

func TestCreateAndGetWorkspace(t *testing.T) {
	env := newTestEnv(t, &stubGemini{})
	id := env.createWorkspace(t)

	resp := env.do(t, http.MethodGet, "/api/v1/workspaces/"+id.String(), nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	ws := decode[models.WorkspaceResponse](t, resp)
	assert.Equal(t, id, ws.ID)
	assert.Equal(t, models.InputModeUpload, ws.Mode)
	assert.Equal(t, models.DocumentResume, ws.ActiveView)
	assert.Nil(t, ws.Document)
}

func TestGetWorkspaceErrors(t *testing.T) {
	env := newTestEnv(t, &stubGemini{})

	assert.Equal(t, fiber.StatusBadRequest, env.do(t, http.MethodGet, "/api/v1/workspaces/not-a-uuid", nil).StatusCode)
	assert.Equal(t, fiber.StatusNotFound, env.do(t, http.MethodGet, "/api/v1/workspaces/"+uuid.NewString(), nil).StatusCode)
}

func TestSetProfileAssignsIDs(t *testing.T) {
	env := newTestEnv(t, &stubGemini{})
	id := env.createWorkspace(t)

	resp := env.do(t, http.MethodPut, "/api/v1/workspaces/"+id.String()+"/profile", models.UserProfile{
		Name:       "Ada",
		Experience: []models.Experience{{Company: "Acme"}, {Company: "Zeta"}},
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	ws := decode[models.WorkspaceResponse](t, resp)
	require.Len(t, ws.Profile.Experience, 2)
	assert.NotEmpty(t, ws.Profile.Experience[0].ID)
	assert.NotEqual(t, ws.Profile.Experience[0].ID, ws.Profile.Experience[1].ID)
}

func TestSetModeRejectsUnknown(t *testing.T) {
	env := newTestEnv(t, &stubGemini{})
	id := env.createWorkspace(t)

	resp := env.do(t, http.MethodPut, "/api/v1/workspaces/"+id.String()+"/mode", models.ModeRequest{Mode: "fax"})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestUploadTextDocument(t *testing.T) {
	env := newTestEnv(t, &stubGemini{})
	id := env.createWorkspace(t)
	path := "/api/v1/workspaces/" + id.String() + "/upload"

	resp, err := env.app.Test(uploadRequest(t, path, "resume.txt", []byte("Ada Lovelace\nEngineer at Acme")), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	ws := decode[models.WorkspaceResponse](t, resp)
	require.NotNil(t, ws.Document)
	assert.Equal(t, "resume.txt", ws.Document.FileName)
	assert.Equal(t, models.MimeTypeText, ws.Document.MimeType)
	assert.Equal(t, models.InputModeUpload, ws.Mode)

	cleared := env.do(t, http.MethodDelete, path, nil)
	require.Equal(t, fiber.StatusOK, cleared.StatusCode)
	assert.Nil(t, decode[models.WorkspaceResponse](t, cleared).Document)
}

func TestUploadRejectsUnsupportedType(t *testing.T) {
	env := newTestEnv(t, &stubGemini{})
	id := env.createWorkspace(t)

	png := append([]byte("\x89PNG\r\n\x1a\n"), make([]byte, 32)...)
	resp, err := env.app.Test(uploadRequest(t, "/api/v1/workspaces/"+id.String()+"/upload", "photo.png", png), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnsupportedMediaType, resp.StatusCode)
}

func TestUploadWithoutFile(t *testing.T) {
	env := newTestEnv(t, &stubGemini{})
	id := env.createWorkspace(t)

	resp := env.do(t, http.MethodPost, "/api/v1/workspaces/"+id.String()+"/upload", nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestGenerateNotReady(t *testing.T) {
	env := newTestEnv(t, &stubGemini{})
	id := env.createWorkspace(t)

	resp := env.do(t, http.MethodPost, "/api/v1/workspaces/"+id.String()+"/generate", models.GenerateRequest{Type: models.DocumentResume})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestGenerateCoverLetterFlow(t *testing.T) {
	env := newTestEnv(t, &stubGemini{response: "Dear team,\n\nI build **Go** services."})
	id := env.readyWorkspace(t)

	resp := env.do(t, http.MethodPost, "/api/v1/workspaces/"+id.String()+"/generate", models.GenerateRequest{Type: models.DocumentCoverLetter})
	require.Equal(t, fiber.StatusAccepted, resp.StatusCode)

	accepted := decode[models.JobAcceptedResponse](t, resp)
	assert.Equal(t, statusGenerating, accepted.Status)
	assert.Equal(t, models.DocumentCoverLetter, accepted.ActiveView)

	ws := env.waitIdle(t, id)
	assert.Contains(t, ws.Content, "<strong>Go</strong>")
	assert.Equal(t, models.DocumentCoverLetter, ws.ActiveView)
}

func TestGenerateWhileBusyConflicts(t *testing.T) {
	block := make(chan struct{})
	env := newTestEnv(t, &stubGemini{response: "done", block: block})
	id := env.readyWorkspace(t)
	base := "/api/v1/workspaces/" + id.String()

	require.Equal(t, fiber.StatusAccepted, env.do(t, http.MethodPost, base+"/generate", models.GenerateRequest{Type: models.DocumentResume}).StatusCode)

	assert.Equal(t, fiber.StatusConflict, env.do(t, http.MethodPost, base+"/generate", models.GenerateRequest{Type: models.DocumentCoverLetter}).StatusCode)
	assert.Equal(t, fiber.StatusConflict, env.do(t, http.MethodPost, base+"/polish", nil).StatusCode)
	assert.Equal(t, fiber.StatusConflict, env.do(t, http.MethodPut, base+"/content", models.ContentRequest{Content: "<p>edit</p>"}).StatusCode)

	close(block)
	env.waitIdle(t, id)
}

func TestCancelGeneration(t *testing.T) {
	env := newTestEnv(t, &stubGemini{block: make(chan struct{})})
	id := env.readyWorkspace(t)
	base := "/api/v1/workspaces/" + id.String()

	assert.Equal(t, fiber.StatusConflict, env.do(t, http.MethodPost, base+"/cancel", nil).StatusCode)

	require.Equal(t, fiber.StatusOK, env.do(t, http.MethodPut, base+"/content", models.ContentRequest{Content: "<p>prior work</p>"}).StatusCode)

	require.Equal(t, fiber.StatusAccepted, env.do(t, http.MethodPost, base+"/generate", models.GenerateRequest{Type: models.DocumentResume}).StatusCode)
	resp := env.do(t, http.MethodPost, base+"/cancel", nil)
	require.Equal(t, fiber.StatusAccepted, resp.StatusCode)
	assert.Equal(t, statusCancelling, decode[models.JobAcceptedResponse](t, resp).Status)

	ws := env.waitIdle(t, id)
	assert.Equal(t, "<p>prior work</p>", ws.Content)
	assert.NotEmpty(t, ws.LastError)
}

func TestDeleteWorkspace(t *testing.T) {
	env := newTestEnv(t, &stubGemini{})
	id := env.createWorkspace(t)
	base := "/api/v1/workspaces/" + id.String()

	resp, err := env.app.Test(uploadRequest(t, base+"/upload", "resume.txt", []byte("Ada Lovelace")), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	assert.Equal(t, fiber.StatusNoContent, env.do(t, http.MethodDelete, base, nil).StatusCode)

	_, err = env.repo.FindByID(id)
	assert.ErrorIs(t, err, models.ErrWorkspaceNotFound)
	assert.Equal(t, fiber.StatusNotFound, env.do(t, http.MethodGet, base, nil).StatusCode)
	assert.Equal(t, fiber.StatusNotFound, env.do(t, http.MethodDelete, base, nil).StatusCode)
	assert.Equal(t, fiber.StatusBadRequest, env.do(t, http.MethodDelete, "/api/v1/workspaces/not-a-uuid", nil).StatusCode)
}

func TestDeleteWorkspaceCancelsRunningJob(t *testing.T) {
	stub := &stubGemini{
		response: "never",
		block:    make(chan struct{}),
		started:  make(chan struct{}),
		aborted:  make(chan struct{}),
	}
	env := newTestEnv(t, stub)
	id := env.readyWorkspace(t)
	base := "/api/v1/workspaces/" + id.String()

	require.Equal(t, fiber.StatusAccepted, env.do(t, http.MethodPost, base+"/generate", models.GenerateRequest{Type: models.DocumentResume}).StatusCode)

	select {
	case <-stub.started:
	case <-time.After(2 * time.Second):
		t.Fatal("generation never reached the model")
	}

	require.Equal(t, fiber.StatusNoContent, env.do(t, http.MethodDelete, base, nil).StatusCode)

	select {
	case <-stub.aborted:
	case <-time.After(2 * time.Second):
		t.Fatal("running generation was not cancelled")
	}

	_, err := env.repo.FindByID(id)
	assert.ErrorIs(t, err, models.ErrWorkspaceNotFound)
}

func TestPolishFlow(t *testing.T) {
	env := newTestEnv(t, &stubGemini{response: "<p>Polished.</p>"})
	id := env.readyWorkspace(t)
	base := "/api/v1/workspaces/" + id.String()

	assert.Equal(t, fiber.StatusBadRequest, env.do(t, http.MethodPost, base+"/polish", nil).StatusCode, "nothing to polish yet")

	require.Equal(t, fiber.StatusOK, env.do(t, http.MethodPut, base+"/content", models.ContentRequest{Content: "<p>rough</p>"}).StatusCode)

	resp := env.do(t, http.MethodPost, base+"/polish", models.PolishRequest{Instruction: "Shorter"})
	require.Equal(t, fiber.StatusAccepted, resp.StatusCode)

	ws := env.waitIdle(t, id)
	assert.Equal(t, "<p>Polished.</p>", ws.Content)
}

func TestExportHTML(t *testing.T) {
	env := newTestEnv(t, &stubGemini{})
	id := env.createWorkspace(t)
	base := "/api/v1/workspaces/" + id.String()

	assert.Equal(t, fiber.StatusNoContent, env.do(t, http.MethodGet, base+"/export", nil).StatusCode)

	require.Equal(t, fiber.StatusOK, env.do(t, http.MethodPut, base+"/content", models.ContentRequest{Content: `<div class="resume-paper">Edited</div>`}).StatusCode)

	resp := env.do(t, http.MethodGet, base+"/export", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentType), "text/html")

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `<div class="resume-paper">Edited</div>`)
	assert.Contains(t, string(body), "window.print()")

	quiet := env.do(t, http.MethodGet, base+"/export?print=false", nil)
	quietBody, err := io.ReadAll(quiet.Body)
	require.NoError(t, err)
	assert.NotContains(t, string(quietBody), "window.print()")
}

func TestExportPDF(t *testing.T) {
	env := newTestEnv(t, &stubGemini{})
	id := env.createWorkspace(t)
	base := "/api/v1/workspaces/" + id.String()

	assert.Equal(t, fiber.StatusNoContent, env.do(t, http.MethodGet, base+"/export.pdf", nil).StatusCode)

	require.Equal(t, fiber.StatusOK, env.do(t, http.MethodPut, base+"/content", models.ContentRequest{Content: "<p>Letter</p>"}).StatusCode)

	resp := env.do(t, http.MethodGet, base+"/export.pdf", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get(fiber.HeaderContentType))
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), "vela-resume.pdf")

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.7 stub", string(body))
	assert.Contains(t, env.printer.document, "<p>Letter</p>")
	assert.NotContains(t, env.printer.document, "window.print()")
}

func TestThemeCookie(t *testing.T) {
	env := newTestEnv(t, &stubGemini{})

	resp := env.do(t, http.MethodGet, "/api/v1/theme", nil)
	assert.Equal(t, ThemeDark, decode[models.ThemeResponse](t, resp).Theme)

	toggle := env.do(t, http.MethodPost, "/api/v1/theme/toggle", nil)
	require.Equal(t, fiber.StatusOK, toggle.StatusCode)
	cookies := toggle.Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, ThemeCookie, cookies[0].Name)
	assert.Equal(t, ThemeLight, cookies[0].Value)
	assert.Equal(t, ThemeLight, decode[models.ThemeResponse](t, toggle).Theme)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/theme", nil)
	req.AddCookie(&http.Cookie{Name: ThemeCookie, Value: ThemeLight})
	withCookie, err := env.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, ThemeLight, decode[models.ThemeResponse](t, withCookie).Theme)

	assert.Equal(t, fiber.StatusBadRequest, env.do(t, http.MethodPut, "/api/v1/theme", models.ThemeRequest{Theme: "sepia"}).StatusCode)
	assert.Equal(t, fiber.StatusOK, env.do(t, http.MethodPut, "/api/v1/theme", models.ThemeRequest{Theme: ThemeLight}).StatusCode)
}
