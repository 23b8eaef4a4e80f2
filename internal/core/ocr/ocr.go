// Package ocr reads text out of PDFs: the embedded text layer first, and
// page rasterization plus tesseract recognition as the fallback.
package ocr

import (
	"errors"
	"log/slog"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/joseph-ayodele/docsorter/internal/settings"
)

// Tool configuration failures. They are distinct from "no text found": callers
// must not feed them to extraction as if they were document text.
var (
	ErrEngineNotFound     = errors.New("ocr engine not found")
	ErrRasterizerNotFound = errors.New("pdf rasterizer not found")
)

type Config struct {
	MaxPages int           // leading pages to inspect, default 2
	DPI      int           // rasterization DPI, default 300
	Lang     string        // tesseract languages, default "ell+eng"
	Timeout  time.Duration // per-document bound on external tools; 0 = none
}

func (c Config) withDefaults() Config {
	if c.MaxPages <= 0 {
		c.MaxPages = 2
	}
	if c.DPI <= 0 {
		c.DPI = 300
	}
	if c.Lang == "" {
		c.Lang = "ell+eng"
	}
	return c
}

// checkTools validates both external tool locations from settings.
func checkTools(s settings.Settings) error {
	if !engineUsable(s.TesseractCmd) {
		return ErrEngineNotFound
	}
	if strings.TrimSpace(s.PopplerPath) == "" {
		return ErrRasterizerNotFound
	}
	if _, err := os.Stat(s.PopplerPath); err != nil {
		return ErrRasterizerNotFound
	}
	return nil
}

func engineUsable(cmd string) bool {
	if strings.TrimSpace(cmd) == "" {
		return false
	}
	if _, err := os.Stat(cmd); err == nil {
		return true
	}
	_, err := exec.LookPath(cmd)
	return err == nil
}

func defaultLogger(l *slog.Logger) *slog.Logger {
	if l == nil {
		return slog.Default()
	}
	return l
}
