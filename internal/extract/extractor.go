// ABOUTME: PDF text extraction with a two-stage strategy
// ABOUTME: Embedded text per page first, external OCR fallback for scanned documents
package extract

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/ThyagoSnt/articlestore/internal/models"
)

// OCREngine converts a scanned PDF into plain text. Implementations may
// shell out to external tools; a nil engine disables the fallback.
type OCREngine interface {
	ExtractText(ctx context.Context, path string) (string, error)
}

// Extractor pulls plain text out of PDF files.
type Extractor struct {
	ocr         OCREngine
	ocrMaxChars int
}

// New creates an Extractor. ocr may be nil to disable the OCR fallback;
// ocrMaxChars caps OCR output length (0 means no cap).
func New(ocr OCREngine, ocrMaxChars int) *Extractor {
	return &Extractor{ocr: ocr, ocrMaxChars: ocrMaxChars}
}

// Extract returns the text content of the PDF at path.
//
// Pages that fail embedded-text extraction are treated as empty rather
// than failing the document. If the whole document yields no embedded
// text, the OCR engine is tried. When both paths come up empty the result
// is ErrNoExtractableText.
func (e *Extractor) Extract(ctx context.Context, path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return "", fmt.Errorf("%w: pdf file %s", models.ErrNotFound, path)
	}
	if strings.ToLower(filepath.Ext(path)) != ".pdf" {
		return "", fmt.Errorf("%w: file is not a PDF: %s", models.ErrInvalidFormat, path)
	}

	text := embeddedText(path)
	if text != "" {
		return text, nil
	}
	log.Printf("no embedded text in %s, likely a scanned PDF", path)

	if e.ocr != nil {
		ocrText, err := e.ocr.ExtractText(ctx, path)
		if err != nil {
			log.Printf("OCR extraction failed for %s: %v", path, err)
		} else if ocrText = strings.TrimSpace(ocrText); ocrText != "" {
			if e.ocrMaxChars > 0 {
				ocrText = truncateChars(ocrText, e.ocrMaxChars)
			}
			return ocrText, nil
		}
	}

	return "", fmt.Errorf("%w: %s", models.ErrNoExtractableText, path)
}

// embeddedText extracts and concatenates per-page text, joining pages with
// a blank line. Any per-page or whole-document parse failure degrades to
// empty text so the OCR path can take over.
func embeddedText(path string) (text string) {
	// pdf.Open panics on some malformed cross-reference tables.
	defer func() {
		if r := recover(); r != nil {
			log.Printf("could not parse %s: %v", path, r)
			text = ""
		}
	}()

	f, reader, err := pdf.Open(path)
	if err != nil {
		log.Printf("could not parse %s: %v", path, err)
		return ""
	}
	defer func() { _ = f.Close() }()

	var pages []string
	for i := 1; i <= reader.NumPage(); i++ {
		pageText := extractPage(reader, i, path)
		if pageText != "" {
			pages = append(pages, pageText)
		}
	}

	return strings.TrimSpace(strings.Join(pages, "\n\n"))
}

// extractPage isolates a single page. The pdf library panics on some
// malformed content streams, so the recover turns a bad page into an
// empty one instead of killing the build.
func extractPage(reader *pdf.Reader, num int, path string) (text string) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("could not extract page %d of %s: %v", num, path, r)
			text = ""
		}
	}()

	page := reader.Page(num)
	if page.V.IsNull() {
		return ""
	}

	content, err := page.GetPlainText(nil)
	if err != nil {
		log.Printf("could not extract page %d of %s: %v", num, path, err)
		return ""
	}
	return strings.TrimSpace(content)
}

// truncateChars caps s at max characters, counting runes so multi-byte
// text is not cut mid-character.
func truncateChars(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	log.Printf("OCR output truncated from %d to %d chars", len(runes), max)
	return string(runes[:max])
}
