// ABOUTME: OCR fallback engine shelling out to ocrmypdf
// ABOUTME: Uses the sidecar text output; the command runner is mockable in tests
package extract

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
)

// ErrOCRUnavailable means the ocrmypdf binary is not installed.
var ErrOCRUnavailable = errors.New("ocrmypdf not found in PATH (install ocrmypdf to enable OCR fallback)")

// CommandRunner executes an external command and returns its combined
// output. It exists so tests can fake the OCR tool.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// ExecRunner runs commands with os/exec.
type ExecRunner struct{}

// Run executes the command and returns combined stdout/stderr.
func (ExecRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).CombinedOutput()
}

// OCRmyPDF extracts text from scanned PDFs by running ocrmypdf with a
// sidecar text file.
type OCRmyPDF struct {
	runner CommandRunner
}

// NewOCRmyPDF returns an OCR engine, or ErrOCRUnavailable when the binary
// is missing. Callers treat the latter as "OCR disabled", not a failure.
func NewOCRmyPDF() (*OCRmyPDF, error) {
	if _, err := exec.LookPath("ocrmypdf"); err != nil {
		return nil, ErrOCRUnavailable
	}
	return &OCRmyPDF{runner: ExecRunner{}}, nil
}

// ExtractText OCRs the PDF and returns the recognised text.
func (o *OCRmyPDF) ExtractText(ctx context.Context, path string) (string, error) {
	tmpDir, err := os.MkdirTemp("", "articlestore-ocr-*")
	if err != nil {
		return "", fmt.Errorf("creating OCR temp dir: %w", err)
	}
	defer func() { _ = os.RemoveAll(tmpDir) }()

	sidecar := filepath.Join(tmpDir, "sidecar.txt")
	outPDF := filepath.Join(tmpDir, "ocr.pdf")

	output, err := o.runner.Run(ctx, "ocrmypdf", "--force-ocr", "--sidecar", sidecar, path, outPDF)
	if err != nil {
		return "", fmt.Errorf("ocrmypdf failed: %w (output: %s)", err, output)
	}

	text, err := os.ReadFile(sidecar)
	if err != nil {
		return "", fmt.Errorf("reading OCR sidecar: %w", err)
	}

	return string(text), nil
}
