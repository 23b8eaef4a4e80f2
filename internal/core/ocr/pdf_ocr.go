package ocr

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/joseph-ayodele/docsorter/internal/common"
	"github.com/joseph-ayodele/docsorter/internal/settings"
)

var reBoxNoise = regexp.MustCompile(`(?m)^\s*[_\-]{3,}\s*$`)

// Bridge is the OCR fallback: rasterize the first pages with pdftoppm and
// recognize them with tesseract. Tool paths are fixed at construction.
type Bridge struct {
	cfg    Config
	tools  settings.Settings
	runner Runner
	logger *slog.Logger
}

func NewBridge(cfg Config, tools settings.Settings, logger *slog.Logger) *Bridge {
	return &Bridge{cfg: cfg.withDefaults(), tools: tools, runner: execRunner{}, logger: defaultLogger(logger)}
}

// WithRunner replaces the command runner.
func (b *Bridge) WithRunner(r Runner) *Bridge {
	b.runner = r
	return b
}

// FirstPages returns the upper-cased recognized text of up to maxPages leading
// pages (maxPages <= 0 uses the configured bound). It returns ErrEngineNotFound
// or ErrRasterizerNotFound when the tool settings are unusable; any failure
// while rasterizing or recognizing yields "" and a nil error.
func (b *Bridge) FirstPages(ctx context.Context, path string, maxPages int) (string, error) {
	if err := checkTools(b.tools); err != nil {
		b.logger.Warn("ocr unavailable", "path", path, "error", err,
			"tesseract_cmd", b.tools.TesseractCmd, "poppler_path", b.tools.PopplerPath)
		return "", err
	}
	if maxPages <= 0 {
		maxPages = b.cfg.MaxPages
	}

	ctx, cancel := common.WithOptionalTimeout(ctx, b.cfg.Timeout)
	defer cancel()

	text, err := b.recognize(ctx, path, b.lastPage(path, maxPages))
	if err != nil {
		b.logger.Warn("ocr failed", "path", path, "error", err)
		return "", nil
	}
	return strings.ToUpper(text), nil
}

// lastPage clamps the rasterized range to the document's page count when pdfcpu can read it.
func (b *Bridge) lastPage(path string, maxPages int) int {
	count, err := pageCount(path)
	if err != nil {
		b.logger.Debug("page count unavailable, using page bound", "path", path, "error", err)
		return maxPages
	}
	if count > 0 && count < maxPages {
		return count
	}
	return maxPages
}

func pageCount(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return api.PageCount(f, conf)
}

func (b *Bridge) recognize(ctx context.Context, path string, lastPage int) (string, error) {
	tmpDir, err := os.MkdirTemp("", "docsorter-pp-*")
	if err != nil {
		return "", err
	}
	defer func() {
		if err := os.RemoveAll(tmpDir); err != nil {
			b.logger.Warn("failed to remove temp dir", "dir", tmpDir, "error", err)
		}
	}()

	prefix := filepath.Join(tmpDir, "page")
	// pdftoppm -r 300 -png -f 1 -l N <in.pdf> <tmp/page>
	_, errb, err := b.runner.Run(ctx, b.logger, popplerTool(b.tools.PopplerPath, "pdftoppm"),
		"-r", fmt.Sprintf("%d", b.cfg.DPI), "-png", "-f", "1", "-l", fmt.Sprintf("%d", lastPage), path, prefix)
	if err != nil {
		return "", fmt.Errorf("pdftoppm: %w: %s", err, truncate(string(errb), 512))
	}

	matches, _ := filepath.Glob(prefix + "-*.png")
	sort.Strings(matches)
	if len(matches) > lastPage {
		matches = matches[:lastPage]
	}
	if len(matches) == 0 {
		return "", fmt.Errorf("pdftoppm produced no images")
	}

	var sb strings.Builder
	for _, img := range matches {
		// tesseract <img> stdout -l ell+eng
		out, errb, err := b.runner.Run(ctx, b.logger, b.tools.TesseractCmd, img, "stdout", "-l", b.cfg.Lang)
		if err != nil {
			return "", fmt.Errorf("tesseract %s: %w: %s", filepath.Base(img), err, truncate(string(errb), 512))
		}
		sb.WriteString(reBoxNoise.ReplaceAllString(string(out), ""))
		sb.WriteString("\n")
	}
	b.logger.Debug("ocr done", "path", path, "pages", len(matches), "bytes", sb.Len())
	return sb.String(), nil
}
