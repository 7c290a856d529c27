package main

import (
	"context"
	"flag"
	"log"
	"os"
	"strings"

	"alfredoptarigan/vela/internal/config"
	"alfredoptarigan/vela/internal/models"
	"alfredoptarigan/vela/internal/services"
)

// Renders a ResumeData JSON file into the printable document, and optionally
// a PDF, without calling the model.
//
//	go run ./scripts/render_resume.go -in resume.json -pdf
func main() {
	in := flag.String("in", "resume.json", "ResumeData JSON file")
	out := flag.String("out", "", "output base name (defaults to the input name)")
	withPDF := flag.Bool("pdf", false, "also print a PDF with headless Chrome")
	flag.Parse()

	log.Println("🚀 Rendering resume...")

	cfg := config.Load()

	raw, err := os.ReadFile(*in)
	if err != nil {
		log.Fatalf("❌ Failed to read %s: %v", *in, err)
	}

	data, err := services.ParseResumeData(services.SanitizeAIResponse(string(raw)))
	if err != nil {
		log.Fatalf("❌ Invalid resume data: %v", err)
	}

	content, err := services.RenderResumeToHTML(*data)
	if err != nil {
		log.Fatalf("❌ Failed to render resume: %v", err)
	}

	document, err := services.NewExportService().BuildPrintDocument(content, models.DocumentResume, services.ExportOptions{})
	if err != nil {
		log.Fatalf("❌ Failed to build print document: %v", err)
	}

	base := *out
	if base == "" {
		base = strings.TrimSuffix(*in, ".json")
	}

	htmlPath := base + ".html"
	if err := os.WriteFile(htmlPath, []byte(document), 0o644); err != nil {
		log.Fatalf("❌ Failed to write %s: %v", htmlPath, err)
	}
	log.Printf("✅ Wrote %s", htmlPath)

	if !*withPDF {
		return
	}

	pdfBytes, err := services.NewPDFPrinter(cfg.Export.ChromePath).Print(context.Background(), document)
	if err != nil {
		log.Fatalf("❌ Failed to print PDF: %v", err)
	}

	pdfPath := base + ".pdf"
	if err := os.WriteFile(pdfPath, pdfBytes, 0o644); err != nil {
		log.Fatalf("❌ Failed to write %s: %v", pdfPath, err)
	}
	log.Printf("✅ Wrote %s (%d bytes)", pdfPath, len(pdfBytes))
}
