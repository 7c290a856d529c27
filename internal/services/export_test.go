package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/vela/internal/models"
)

func TestBuildPrintDocumentResume(t *testing.T) {
	content, err := RenderResumeToHTML(sampleResume())
	require.NoError(t, err)

	out, err := NewExportService().BuildPrintDocument(content, models.DocumentResume, ExportOptions{})
	require.NoError(t, err)

	doc := parseHTML(t, out)
	assert.Equal(t, "Vela - Resume", doc.Find("title").Text())
	assert.Equal(t, 1, doc.Find("body .resume-paper").Length())
	assert.Equal(t, "Ada Lovelace", doc.Find(`body [data-section="header"] h1`).Text())

	style := doc.Find("style").Text()
	assert.Contains(t, style, "size: A4 portrait;")
	assert.Contains(t, style, "margin: 0;")
	assert.Contains(t, style, "print-color-adjust: exact;")
	assert.Contains(t, style, "font-family: serif;")
	assert.NotContains(t, out, "window.print()")
	assert.NotContains(t, out, "onafterprint")
}

func TestBuildPrintDocumentCoverLetterAutoPrint(t *testing.T) {
	content := ParseMarkdownToHTML("Dear team,\n\nThanks.")

	out, err := NewExportService().BuildPrintDocument(content, models.DocumentCoverLetter, ExportOptions{AutoPrint: true})
	require.NoError(t, err)

	doc := parseHTML(t, out)
	assert.Equal(t, "Vela - Cover Letter", doc.Find("title").Text())
	assert.Equal(t, 2, doc.Find("body .cover-letter-preview p").Length())
	assert.Contains(t, doc.Find("style").Text(), "font-family: 'Inter', sans-serif;")
	assert.Contains(t, out, "window.print()")
	assert.Contains(t, out, "window.onafterprint = () => window.close();")
}

func TestBuildPrintDocumentKeepsCanvasMarkup(t *testing.T) {
	edited := `<div class="resume-paper"><h1 contenteditable="true">Edited <em>by hand</em></h1></div>`

	out, err := NewExportService().BuildPrintDocument(edited, models.DocumentResume, ExportOptions{})
	require.NoError(t, err)

	assert.True(t, strings.Contains(out, edited))
}

func TestBuildPrintDocumentEmptyContent(t *testing.T) {
	_, err := NewExportService().BuildPrintDocument("  \n", models.DocumentResume, ExportOptions{AutoPrint: true})
	assert.ErrorIs(t, err, models.ErrNoContent)
}
