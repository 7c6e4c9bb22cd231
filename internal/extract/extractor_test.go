// ABOUTME: Tests for PDF extraction and the OCR fallback path
// ABOUTME: Uses fake OCR engines and command runners; no real PDFs required
package extract

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ThyagoSnt/articlestore/internal/models"
)

// fakeOCR is a test double for OCREngine.
type fakeOCR struct {
	text string
	err  error
}

func (f *fakeOCR) ExtractText(_ context.Context, _ string) (string, error) {
	return f.text, f.err
}

func TestExtractMissingFile(t *testing.T) {
	e := New(nil, 0)

	_, err := e.Extract(context.Background(), filepath.Join(t.TempDir(), "missing.pdf"))
	if !errors.Is(err, models.ErrNotFound) {
		t.Errorf("Extract() error = %v, want ErrNotFound", err)
	}
}

func TestExtractWrongExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	if err := os.WriteFile(path, []byte("plain text"), 0o644); err != nil {
		t.Fatalf("writing file: %v", err)
	}

	e := New(nil, 0)
	_, err := e.Extract(context.Background(), path)
	if !errors.Is(err, models.ErrInvalidFormat) {
		t.Errorf("Extract() error = %v, want ErrInvalidFormat", err)
	}
}

func TestExtractDirectory(t *testing.T) {
	dir := t.TempDir()

	e := New(nil, 0)
	_, err := e.Extract(context.Background(), dir)
	if !errors.Is(err, models.ErrNotFound) {
		t.Errorf("Extract() error = %v, want ErrNotFound", err)
	}
}

// writeFakePDF writes a file with a .pdf extension whose content the pdf
// library cannot parse, forcing the embedded-text path to come up empty.
func writeFakePDF(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scanned.pdf")
	if err := os.WriteFile(path, []byte("%PDF-1.4 garbage"), 0o644); err != nil {
		t.Fatalf("writing fake pdf: %v", err)
	}
	return path
}

func TestExtractNoTextNoOCR(t *testing.T) {
	path := writeFakePDF(t)

	e := New(nil, 0)
	_, err := e.Extract(context.Background(), path)
	if !errors.Is(err, models.ErrNoExtractableText) {
		t.Errorf("Extract() error = %v, want ErrNoExtractableText", err)
	}
}

func TestExtractOCRFallback(t *testing.T) {
	path := writeFakePDF(t)

	e := New(&fakeOCR{text: "  recognised scan text  "}, 0)
	text, err := e.Extract(context.Background(), path)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if text != "recognised scan text" {
		t.Errorf("Extract() = %q, want trimmed OCR text", text)
	}
}

func TestExtractOCRTruncation(t *testing.T) {
	path := writeFakePDF(t)

	e := New(&fakeOCR{text: strings.Repeat("x", 100)}, 10)
	text, err := e.Extract(context.Background(), path)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if len(text) != 10 {
		t.Errorf("Extract() returned %d chars, want 10", len(text))
	}
}

func TestExtractOCREmptyOutput(t *testing.T) {
	path := writeFakePDF(t)

	e := New(&fakeOCR{text: "   "}, 0)
	_, err := e.Extract(context.Background(), path)
	if !errors.Is(err, models.ErrNoExtractableText) {
		t.Errorf("Extract() error = %v, want ErrNoExtractableText", err)
	}
}

func TestExtractOCRFailureIsNoText(t *testing.T) {
	path := writeFakePDF(t)

	e := New(&fakeOCR{err: errors.New("tool crashed")}, 0)
	_, err := e.Extract(context.Background(), path)
	if !errors.Is(err, models.ErrNoExtractableText) {
		t.Errorf("Extract() error = %v, want ErrNoExtractableText", err)
	}
}

func TestTruncateCharsMultibyte(t *testing.T) {
	s := strings.Repeat("é", 20)
	got := truncateChars(s, 5)
	if got != strings.Repeat("é", 5) {
		t.Errorf("truncateChars() = %q, want 5 runes", got)
	}
}

// mockRunner is a test double for CommandRunner that writes the sidecar
// file ocrmypdf would produce.
type mockRunner struct {
	sidecarText string
	err         error
}

func (m *mockRunner) Run(_ context.Context, _ string, args ...string) ([]byte, error) {
	if m.err != nil {
		return []byte("boom"), m.err
	}
	// args: --force-ocr --sidecar <sidecar> <in> <out>
	for i, a := range args {
		if a == "--sidecar" && i+1 < len(args) {
			if err := os.WriteFile(args[i+1], []byte(m.sidecarText), 0o644); err != nil {
				return nil, err
			}
		}
	}
	return nil, nil
}

func TestOCRmyPDFSidecar(t *testing.T) {
	engine := &OCRmyPDF{runner: &mockRunner{sidecarText: "ocr result"}}

	text, err := engine.ExtractText(context.Background(), "input.pdf")
	if err != nil {
		t.Fatalf("ExtractText() error = %v", err)
	}
	if text != "ocr result" {
		t.Errorf("ExtractText() = %q, want %q", text, "ocr result")
	}
}

func TestOCRmyPDFCommandFailure(t *testing.T) {
	engine := &OCRmyPDF{runner: &mockRunner{err: errors.New("exit status 1")}}

	_, err := engine.ExtractText(context.Background(), "input.pdf")
	if err == nil {
		t.Fatal("ExtractText() = nil error, want failure")
	}
	if !strings.Contains(err.Error(), "ocrmypdf failed") {
		t.Errorf("ExtractText() error = %v, want ocrmypdf failure", err)
	}
}
