package services

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

const printTimeout = 60 * time.Second

type PDFPrinter interface {
	// Print renders a standalone HTML document to PDF bytes. Nothing is
	// kept once it returns.
	Print(ctx context.Context, document string) ([]byte, error)
}

type chromePrinter struct {
	chromePath string
}

func NewPDFPrinter(chromePath string) PDFPrinter {
	return &chromePrinter{chromePath: chromePath}
}

// Print implements PDFPrinter. The page is written to a scratch directory so
// Chrome loads it like a file and the CDN stylesheet resolves.
func (p *chromePrinter) Print(ctx context.Context, document string) ([]byte, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if p.chromePath != "" {
		opts = append(opts, chromedp.ExecPath(p.chromePath))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	runCtx, cancelRun := context.WithTimeout(browserCtx, printTimeout)
	defer cancelRun()

	tmpDir, err := os.MkdirTemp("", "vela-print-")
	if err != nil {
		return nil, fmt.Errorf("failed to create print directory: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	htmlPath := filepath.Join(tmpDir, "index.html")
	if err := os.WriteFile(htmlPath, []byte(document), 0o600); err != nil {
		return nil, fmt.Errorf("failed to write print document: %w", err)
	}

	var pdfBuf []byte
	err = chromedp.Run(runCtx,
		chromedp.Navigate("file://"+htmlPath),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			// A4 in inches; the @page rule wins when present.
			pdfBuf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(8.27).
				WithPaperHeight(11.69).
				WithMarginTop(0).
				WithMarginBottom(0).
				WithMarginLeft(0).
				WithMarginRight(0).
				WithPreferCSSPageSize(true).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to print PDF: %w", err)
	}

	log.Printf("🖨️  Printed PDF: %d bytes", len(pdfBuf))
	return pdfBuf, nil
}
