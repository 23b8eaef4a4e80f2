package ingest

import (
	"path/filepath"
	"strings"
)

// IsHidden checks if a file or directory is hidden (starts with '.').
func IsHidden(path string) bool {
	base := filepath.Base(path)
	return strings.HasPrefix(base, ".")
}

// IsPartial reports names browsers and copy tools use for files still being written.
func IsPartial(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".part", ".crdownload", ".tmp", ".download":
		return true
	}
	return strings.HasPrefix(filepath.Base(path), "~$")
}
