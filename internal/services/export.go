package services

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"alfredoptarigan/vela/internal/models"
)

const printDocumentTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Vela - {{.Title}}</title>
<script src="https://cdn.tailwindcss.com"></script>
<link href="https://fonts.googleapis.com/css2?family=Inter:wght@400;500;600;700&display=swap" rel="stylesheet">
<style>
@page {
  size: A4 portrait;
  margin: 0;
}
body {
  margin: 0;
  padding: 0;
  -webkit-print-color-adjust: exact;
  print-color-adjust: exact;
  background-color: white;
  font-family: {{.FontFamily}};
}
.resume-paper, .cover-letter-preview {
  width: 210mm;
  min-height: 297mm;
  padding: 20mm;
  background: white;
  box-sizing: border-box;
  margin: 0 auto;
}
.font-serif { font-family: serif; }
.font-sans { font-family: 'Inter', sans-serif; }
a {
  text-decoration: none;
  color: #2563eb !important;
  border-bottom: 1px solid #2563eb;
}
</style>
</head>
<body>
{{.Content}}
{{- if .AutoPrint}}
<script>
window.onafterprint = () => window.close();
window.onload = () => {
  setTimeout(() => {
    window.focus();
    window.print();
  }, 500);
};
</script>
{{- end}}
</body>
</html>
`

var printDocumentTmpl = template.Must(template.New("print").Parse(printDocumentTemplate))

type ExportOptions struct {
	// AutoPrint opens the browser print dialog once the document loads.
	AutoPrint bool
}

type printDocument struct {
	Title      string
	FontFamily template.CSS
	Content    template.HTML
	AutoPrint  bool
}

type ExportService interface {
	// BuildPrintDocument wraps the held markup in a standalone A4 page.
	// Empty content yields ErrNoContent.
	BuildPrintDocument(content string, view models.DocumentType, opts ExportOptions) (string, error)
}

type exportService struct{}

func NewExportService() ExportService {
	return &exportService{}
}

// BuildPrintDocument implements ExportService. The content is the canvas's
// own markup and is inserted as-is.
func (s *exportService) BuildPrintDocument(content string, view models.DocumentType, opts ExportOptions) (string, error) {
	if strings.TrimSpace(content) == "" {
		return "", models.ErrNoContent
	}

	font := template.CSS("serif")
	if view == models.DocumentCoverLetter {
		font = template.CSS("'Inter', sans-serif")
	}

	var buf bytes.Buffer
	if err := printDocumentTmpl.Execute(&buf, printDocument{
		Title:      view.Title(),
		FontFamily: font,
		Content:    template.HTML(content),
		AutoPrint:  opts.AutoPrint,
	}); err != nil {
		return "", fmt.Errorf("failed to build print document: %w", err)
	}

	return buf.String(), nil
}
