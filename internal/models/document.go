package models

const (
	MimeTypePDF  = "application/pdf"
	MimeTypeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	MimeTypeText = "text/plain"
)

// UploadedDocument is a profile source held fully in memory. Data is
// serialised as base64 by encoding/json.
type UploadedDocument struct {
	Data      []byte `json:"data"`
	MimeType  string `json:"mimeType"`
	FileName  string `json:"fileName,omitempty"`
	PageCount int    `json:"pageCount,omitempty"`
}

func (d *UploadedDocument) IsEmpty() bool {
	return d == nil || len(d.Data) == 0
}
