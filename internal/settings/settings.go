// Package settings persists the locations of the external OCR tools.
package settings

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"

	"github.com/joseph-ayodele/docsorter/internal/common"
)

// Settings is the on-disk tool configuration.
type Settings struct {
	TesseractCmd string `json:"tesseract_cmd"`
	PopplerPath  string `json:"poppler_path"`
}

// Defaults returns the platform default tool locations.
func Defaults() Settings {
	if runtime.GOOS == "windows" {
		return Settings{
			TesseractCmd: `C:\Program Files\Tesseract-OCR\tesseract.exe`,
			PopplerPath:  `C:\Program Files\poppler-24.02.0\Library\bin`,
		}
	}
	return Settings{
		TesseractCmd: "/usr/bin/tesseract",
		PopplerPath:  "/usr/bin",
	}
}

type Store struct {
	path   string
	logger *slog.Logger
}

func NewStore(path string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{path: path, logger: logger}
}

func (s *Store) Path() string { return s.path }

// Load reads the settings file. A missing file is created with defaults; an
// unreadable or malformed one yields defaults without touching the file.
// Missing keys keep their default values.
func (s *Store) Load() Settings {
	def := Defaults()

	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		if err := s.Save(def); err != nil {
			s.logger.Warn("could not persist default settings", "path", s.path, "error", err)
		}
		return def
	}
	if err != nil {
		s.logger.Warn("settings unreadable, using defaults", "path", s.path, "error", err)
		return def
	}

	out := def
	if err := json.Unmarshal(data, &out); err != nil {
		s.logger.Warn("settings malformed, using defaults", "path", s.path, "error", err)
		return def
	}
	return out
}

// Save writes settings as indented JSON.
func (s *Store) Save(v Settings) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return common.NewAppError(common.CodeSettings, "encode settings", err)
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return common.NewAppError(common.CodeSettings, fmt.Sprintf("create settings dir %s", dir), err)
		}
	}
	if err := os.WriteFile(s.path, append(data, '\n'), 0o644); err != nil {
		return common.NewAppError(common.CodeSettings, fmt.Sprintf("write settings %s", s.path), err)
	}
	return nil
}

// Set updates a single key ("tesseract_cmd" or "poppler_path") and persists the result.
func (s *Store) Set(key, value string) (Settings, error) {
	cur := s.Load()
	switch key {
	case "tesseract_cmd":
		cur.TesseractCmd = value
	case "poppler_path":
		cur.PopplerPath = value
	default:
		return cur, common.NewAppError(common.CodeSettings, fmt.Sprintf("unknown settings key %q", key), common.ErrInvalidInput)
	}
	if err := s.Save(cur); err != nil {
		return cur, err
	}
	return cur, nil
}
