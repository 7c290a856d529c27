package services

import (
	"bytes"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"

	"alfredoptarigan/vela/internal/models"
)

type DocumentService interface {
	// Prepare turns an uploaded file into a profile source the model
	// can read inline.
	Prepare(fileName string, data []byte) (*models.UploadedDocument, error)
}

type documentService struct{}

func NewDocumentService() DocumentService {
	return &documentService{}
}

// Prepare implements DocumentService. PDFs are passed through after a page
// count, DOCX files are flattened to plain text because the provider does
// not accept them as inline data.
func (s *documentService) Prepare(fileName string, data []byte) (*models.UploadedDocument, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty file", models.ErrUnsupportedDocument)
	}

	mimeType := DetectMimeType(fileName, data)

	switch mimeType {
	case models.MimeTypePDF:
		pages, err := countPDFPages(data)
		if err != nil {
			return nil, err
		}
		return &models.UploadedDocument{Data: data, MimeType: mimeType, FileName: fileName, PageCount: pages}, nil

	case models.MimeTypeDOCX:
		text, err := extractDocxText(data)
		if err != nil {
			return nil, err
		}
		return &models.UploadedDocument{Data: []byte(text), MimeType: models.MimeTypeText, FileName: fileName}, nil

	case models.MimeTypeText:
		return &models.UploadedDocument{Data: data, MimeType: mimeType, FileName: fileName}, nil

	default:
		return nil, fmt.Errorf("%w: %s", models.ErrUnsupportedDocument, mimeType)
	}
}

// DetectMimeType sniffs the content and falls back to the file extension,
// since DOCX sniffs as a generic zip archive.
func DetectMimeType(fileName string, data []byte) string {
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".docx":
		return models.MimeTypeDOCX
	case ".pdf":
		return models.MimeTypePDF
	case ".txt", ".md":
		return models.MimeTypeText
	}

	sniffed := http.DetectContentType(data)
	if i := strings.Index(sniffed, ";"); i >= 0 {
		sniffed = sniffed[:i]
	}
	return sniffed
}

func countPDFPages(data []byte) (int, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return 0, fmt.Errorf("failed to open PDF: %w", err)
	}
	return r.NumPage(), nil
}

func extractDocxText(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to parse docx: %w", err)
	}
	defer doc.Close()

	text, err := documentXMLText(doc.Editable().GetContent())
	if err != nil {
		return "", err
	}
	if text == "" {
		return "", fmt.Errorf("%w: no text content found in docx", models.ErrUnsupportedDocument)
	}
	return text, nil
}

// documentXMLText flattens WordprocessingML to text, one line per paragraph.
func documentXMLText(xml string) (string, error) {
	xml = strings.ReplaceAll(xml, "</w:p>", "</w:p>\n")

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(xml))
	if err != nil {
		return "", fmt.Errorf("failed to read docx content: %w", err)
	}

	var lines []string
	for _, line := range strings.Split(doc.Text(), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n"), nil
}
