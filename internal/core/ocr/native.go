package ocr

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/joseph-ayodele/docsorter/internal/common"
	"github.com/joseph-ayodele/docsorter/internal/settings"
)

// NativeReader pulls text from a PDF's embedded text layer. When the pure-Go
// reader finds nothing and a poppler directory is configured, pdftotext is tried.
type NativeReader struct {
	cfg    Config
	tools  settings.Settings
	runner Runner
	logger *slog.Logger
}

func NewNativeReader(cfg Config, tools settings.Settings, logger *slog.Logger) *NativeReader {
	return &NativeReader{cfg: cfg.withDefaults(), tools: tools, runner: execRunner{}, logger: defaultLogger(logger)}
}

// WithRunner replaces the command runner used for the pdftotext fallback.
func (n *NativeReader) WithRunner(r Runner) *NativeReader {
	n.runner = r
	return n
}

// Text returns best-effort text of up to maxPages leading pages, "" on any failure.
func (n *NativeReader) Text(ctx context.Context, path string, maxPages int) string {
	if maxPages <= 0 {
		maxPages = n.cfg.MaxPages
	}
	text, err := readTextLayer(path, maxPages)
	if err != nil {
		n.logger.Debug("text layer unreadable", "path", path, "error", err)
	}
	if strings.TrimSpace(text) != "" {
		return text
	}
	if strings.TrimSpace(n.tools.PopplerPath) == "" {
		return ""
	}
	return n.pdfToText(ctx, path, maxPages)
}

func (n *NativeReader) pdfToText(ctx context.Context, path string, maxPages int) string {
	ctx, cancel := common.WithOptionalTimeout(ctx, n.cfg.Timeout)
	defer cancel()
	// pdftotext -f 1 -l N -layout -enc UTF-8 -eol unix <path> -
	out, _, err := n.runner.Run(ctx, n.logger, popplerTool(n.tools.PopplerPath, "pdftotext"),
		"-f", "1", "-l", fmt.Sprintf("%d", maxPages), "-layout", "-enc", "UTF-8", "-eol", "unix", path, "-")
	if err != nil {
		return ""
	}
	return string(out)
}

// readTextLayer recovers from panics inside the PDF parser; malformed files
// must degrade to empty text.
func readTextLayer(path string, maxPages int) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("pdf reader panic: %v", r)
		}
	}()

	f, r, err := pdf.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	var sb strings.Builder
	for i := 1; i <= r.NumPage() && i <= maxPages; i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		t, err := p.GetPlainText(nil)
		if err != nil {
			continue
		}
		if t != "" {
			sb.WriteString(t)
			sb.WriteString(" ")
		}
	}
	return sb.String(), nil
}
