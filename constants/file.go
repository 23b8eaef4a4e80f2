package constants

import "strings"

// PDF is the only extension that goes through classification; everything else is filed as-is.
const PDF = "pdf"

// FilenameIllegalChars are stripped from extracted document numbers before they become part of a filename.
const FilenameIllegalChars = `\/*?:"<>|`

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// IsPDFExt reports whether ext (with or without the leading dot) names a PDF.
func IsPDFExt(ext string) bool {
	return NormalizeExt(ext) == PDF
}
