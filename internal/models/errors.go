package models

import "errors"

var (
	ErrWorkspaceNotFound   = errors.New("workspace not found")
	ErrWorkspaceBusy       = errors.New("a generation or polish is already in progress")
	ErrNotReady            = errors.New("workspace is not ready")
	ErrNoContent           = errors.New("no content has been generated yet")
	ErrUnsupportedDocument = errors.New("unsupported document type")
	ErrInvalidDocumentType = errors.New("invalid document type")
	ErrInvalidInputMode    = errors.New("invalid input mode")
)
