package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type DocumentType string

const (
	DocumentResume      DocumentType = "resume"
	DocumentCoverLetter DocumentType = "cover-letter"
)

func (t DocumentType) Valid() bool {
	return t == DocumentResume || t == DocumentCoverLetter
}

// Title is the human readable name used in export document titles.
func (t DocumentType) Title() string {
	if t == DocumentCoverLetter {
		return "Cover Letter"
	}
	return "Resume"
}

type InputMode string

const (
	InputModeForm   InputMode = "form"
	InputModeUpload InputMode = "upload"
)

func (m InputMode) Valid() bool {
	return m == InputModeForm || m == InputModeUpload
}

// Workspace is one session's application state. It is treated as an
// immutable snapshot: every transition returns a new value and the
// repository swaps snapshots atomically.
type Workspace struct {
	ID             uuid.UUID         `json:"id"`
	JobDescription string            `json:"jobDescription"`
	Mode           InputMode         `json:"mode"`
	Profile        UserProfile       `json:"profile"`
	Document       *UploadedDocument `json:"-"`
	Content        string            `json:"content"`
	ActiveView     DocumentType      `json:"activeView"`
	IsGenerating   bool              `json:"isGenerating"`
	IsPolishing    bool              `json:"isPolishing"`
	LastError      string            `json:"lastError,omitempty"`
	CreatedAt      time.Time         `json:"createdAt"`
	UpdatedAt      time.Time         `json:"updatedAt"`
}

func NewWorkspace() Workspace {
	now := time.Now()
	return Workspace{
		ID:         uuid.New(),
		Mode:       InputModeUpload,
		Profile:    UserProfile{Experience: []Experience{}, Education: []Education{}, Links: []ExternalLink{}},
		ActiveView: DocumentResume,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

func (w Workspace) Busy() bool {
	return w.IsGenerating || w.IsPolishing
}

// CanGenerate reports whether the inputs for a generation are present.
func (w Workspace) CanGenerate() error {
	if w.JobDescription == "" {
		return fmt.Errorf("%w: job description is empty", ErrNotReady)
	}
	switch w.Mode {
	case InputModeUpload:
		if w.Document.IsEmpty() {
			return fmt.Errorf("%w: no document uploaded", ErrNotReady)
		}
	case InputModeForm:
		if w.Profile.Name == "" {
			return fmt.Errorf("%w: profile name is empty", ErrNotReady)
		}
	default:
		return fmt.Errorf("%w: %q", ErrInvalidInputMode, w.Mode)
	}
	return nil
}

// Source picks the uploaded document in upload mode and the typed profile
// otherwise.
func (w Workspace) Source() ProfileSource {
	if w.Mode == InputModeUpload && !w.Document.IsEmpty() {
		return ProfileSource{Document: w.Document}
	}
	profile := w.Profile.Clone()
	return ProfileSource{Profile: &profile}
}

func (w Workspace) WithJobDescription(jobDescription string) Workspace {
	w.JobDescription = jobDescription
	return w.touch()
}

func (w Workspace) WithProfile(profile UserProfile) Workspace {
	w.Profile = profile.EnsureIDs()
	return w.touch()
}

func (w Workspace) WithMode(mode InputMode) (Workspace, error) {
	if !mode.Valid() {
		return w, fmt.Errorf("%w: %q", ErrInvalidInputMode, mode)
	}
	w.Mode = mode
	return w.touch(), nil
}

func (w Workspace) WithDocument(doc *UploadedDocument) Workspace {
	w.Document = doc
	w.Mode = InputModeUpload
	return w.touch()
}

func (w Workspace) WithoutDocument() Workspace {
	w.Document = nil
	return w.touch()
}

func (w Workspace) StartGeneration(docType DocumentType) (Workspace, error) {
	if !docType.Valid() {
		return w, fmt.Errorf("%w: %q", ErrInvalidDocumentType, docType)
	}
	if w.Busy() {
		return w, ErrWorkspaceBusy
	}
	if err := w.CanGenerate(); err != nil {
		return w, err
	}
	w.IsGenerating = true
	w.ActiveView = docType
	w.LastError = ""
	return w.touch(), nil
}

// FinishGeneration always replaces the content: on failure the caller
// passes the inline error markup.
func (w Workspace) FinishGeneration(content string, genErr error) Workspace {
	w.IsGenerating = false
	w.Content = content
	w.LastError = ""
	if genErr != nil {
		w.LastError = genErr.Error()
	}
	return w.touch()
}

// CancelGeneration ends an aborted generation without touching the content.
func (w Workspace) CancelGeneration(err error) Workspace {
	w.IsGenerating = false
	w.LastError = ""
	if err != nil {
		w.LastError = err.Error()
	}
	return w.touch()
}

func (w Workspace) StartPolish() (Workspace, error) {
	if w.Busy() {
		return w, ErrWorkspaceBusy
	}
	if w.Content == "" {
		return w, ErrNoContent
	}
	if w.JobDescription == "" {
		return w, fmt.Errorf("%w: job description is empty", ErrNotReady)
	}
	w.IsPolishing = true
	w.LastError = ""
	return w.touch(), nil
}

// FinishPolish keeps the previous content when the polish failed.
func (w Workspace) FinishPolish(content string, polishErr error) Workspace {
	w.IsPolishing = false
	if polishErr != nil {
		w.LastError = polishErr.Error()
		return w.touch()
	}
	w.Content = content
	w.LastError = ""
	return w.touch()
}

// Abandon clears both in-progress flags and leaves content alone. Used when
// a started job could not be scheduled.
func (w Workspace) Abandon(err error) Workspace {
	w.IsGenerating = false
	w.IsPolishing = false
	if err != nil {
		w.LastError = err.Error()
	}
	return w.touch()
}

// WithContent records a canvas edit. Edits are refused while the model is
// writing the same register.
func (w Workspace) WithContent(content string) (Workspace, error) {
	if w.Busy() {
		return w, ErrWorkspaceBusy
	}
	w.Content = content
	return w.touch(), nil
}

func (w Workspace) touch() Workspace {
	w.Profile = w.Profile.Clone()
	w.UpdatedAt = time.Now()
	return w
}

// ProfileSource carries exactly one of Profile or Document.
type ProfileSource struct {
	Profile  *UserProfile
	Document *UploadedDocument
}

func (s ProfileSource) IsDocument() bool {
	return !s.Document.IsEmpty()
}
