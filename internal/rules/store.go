// Package rules loads and edits the externally maintained classification rule file.
//
// The file is a top-level object with a "groups" array; the order of groups is
// the match priority used by the extraction engine.
package rules

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/joseph-ayodele/docsorter/internal/common"
)

// ErrInvalidRuleFile is returned when the rule file cannot be decoded or fails validation.
var ErrInvalidRuleFile = errors.New("invalid rule file")

// Group is one classification rule: a category name, a filename type prefix and its keywords.
type Group struct {
	Name     string   `json:"name" yaml:"name"`
	Type     string   `json:"type" yaml:"type"`
	Keywords []string `json:"keywords" yaml:"keywords"`
}

// File is the on-disk document.
type File struct {
	Groups []Group `json:"groups" yaml:"groups"`
}

// Store reads and writes the rule file at a fixed path. It never caches:
// every Load re-reads the file.
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

// Path returns the backing file path.
func (s *Store) Path() string { return s.path }

// Load reads the rule file and returns its groups in file order.
func (s *Store) Load() ([]Group, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, common.NewAppError(common.CodeRules, "read rule file", err)
	}
	f, err := decode(s.path, data)
	if err != nil {
		return nil, common.NewAppError(common.CodeRules, "decode rule file", err)
	}
	s.logger.Debug("rules loaded", "path", s.path, "groups", len(f.Groups))
	return f.Groups, nil
}

// LoadOrEmpty is Load for callers that treat an unreadable rule file as "no rules".
// The error is still returned so the caller can decide whether that is fatal.
func (s *Store) LoadOrEmpty() ([]Group, error) {
	groups, err := s.Load()
	if err != nil {
		s.logger.Warn("rules unavailable, classifying with an empty rule set", "path", s.path, "error", err)
		return []Group{}, err
	}
	return groups, nil
}

// Save writes groups back in the same structure, 2-space indented, non-ASCII kept as-is.
func (s *Store) Save(groups []Group) error {
	if groups == nil {
		groups = []Group{}
	}
	for i := range groups {
		if groups[i].Keywords == nil {
			groups[i].Keywords = []string{}
		}
	}
	data, err := encode(s.path, File{Groups: groups})
	if err != nil {
		return common.NewAppError(common.CodeRules, "encode rule file", err)
	}
	if dir := filepath.Dir(s.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return common.NewAppError(common.CodeRules, "create rule dir", err)
		}
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return common.NewAppError(common.CodeRules, "write rule file", err)
	}
	s.logger.Info("rules saved", "path", s.path, "groups", len(groups))
	return nil
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// decode validates data against the schema and decodes it. YAML documents are
// re-encoded as JSON first so both formats go through the same schema.
func decode(path string, data []byte) (File, error) {
	if isYAML(path) {
		var raw any
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return File{}, fmt.Errorf("%w: %v", ErrInvalidRuleFile, err)
		}
		b, err := json.Marshal(raw)
		if err != nil {
			return File{}, fmt.Errorf("%w: %v", ErrInvalidRuleFile, err)
		}
		data = b
	}
	if err := validateDocument(data); err != nil {
		return File{}, fmt.Errorf("%w: %v", ErrInvalidRuleFile, err)
	}
	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return File{}, fmt.Errorf("%w: %v", ErrInvalidRuleFile, err)
	}
	return f, nil
}

func encode(path string, f File) ([]byte, error) {
	if isYAML(path) {
		return yaml.Marshal(f)
	}
	var b strings.Builder
	enc := json.NewEncoder(&b)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(f); err != nil {
		return nil, err
	}
	return []byte(b.String()), nil
}
