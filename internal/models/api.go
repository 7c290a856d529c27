package models

import "time"

type JobDescriptionRequest struct {
	JobDescription string `json:"jobDescription"`
}

type ModeRequest struct {
	Mode InputMode `json:"mode"`
}

type GenerateRequest struct {
	Type DocumentType `json:"type"`
}

type PolishRequest struct {
	Instruction string `json:"instruction"`
}

type ContentRequest struct {
	Content string `json:"content"`
}

type ThemeRequest struct {
	Theme string `json:"theme"`
}

type ThemeResponse struct {
	Theme string `json:"theme"`
}

type DocumentInfo struct {
	FileName  string `json:"fileName"`
	MimeType  string `json:"mimeType"`
	Size      int    `json:"size"`
	PageCount int    `json:"pageCount,omitempty"`
}

type WorkspaceResponse struct {
	Workspace
	Document *DocumentInfo `json:"document,omitempty"`
}

func NewWorkspaceResponse(w Workspace) WorkspaceResponse {
	resp := WorkspaceResponse{Workspace: w}
	if !w.Document.IsEmpty() {
		resp.Document = &DocumentInfo{
			FileName:  w.Document.FileName,
			MimeType:  w.Document.MimeType,
			Size:      len(w.Document.Data),
			PageCount: w.Document.PageCount,
		}
	}
	return resp
}

type JobAcceptedResponse struct {
	ID         string       `json:"id"`
	Status     string       `json:"status"`
	ActiveView DocumentType `json:"activeView"`
	AcceptedAt time.Time    `json:"acceptedAt"`
}
