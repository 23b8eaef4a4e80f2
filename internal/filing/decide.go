package filing

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joseph-ayodele/docsorter/constants"
	"github.com/joseph-ayodele/docsorter/internal/core/dates"
	"github.com/joseph-ayodele/docsorter/internal/core/extract"
)

// Decision is where one file goes. Dir is absolute or relative to the
// working directory; Rel is Dir relative to the output root, for display.
type Decision struct {
	Category string
	Dir      string
	Rel      string
	Filename string
	Accepted bool // PDF identified; false for Unsorted and non-PDF files
}

// Target is the full destination path.
func (d Decision) Target() string { return filepath.Join(d.Dir, d.Filename) }

// Accepted reports whether an extraction result identifies the document.
func Accepted(r extract.Result, threshold float64) bool {
	return !r.Unknown() && r.DateToken != "" && r.Confidence >= threshold
}

// DecideOther files a non-PDF unchanged under the catch-all category.
func DecideOther(outputDir, name string) Decision {
	return Decision{
		Category: constants.CategoryOther,
		Dir:      filepath.Join(outputDir, constants.CategoryOther),
		Rel:      constants.CategoryOther,
		Filename: name,
	}
}

// DecidePDF maps an extraction result to a category directory and a synthesized filename.
// now supplies the year for documents whose date would not parse.
func DecidePDF(outputDir, name string, r extract.Result, threshold float64, now time.Time) Decision {
	if !Accepted(r, threshold) {
		return Decision{
			Category: constants.CategoryUnsorted,
			Dir:      filepath.Join(outputDir, constants.CategoryUnsorted),
			Rel:      constants.CategoryUnsorted,
			Filename: constants.UnsortedPrefix + name,
		}
	}

	var category, year, month string
	if dt, ok := dates.Parse(r.DateToken); ok {
		category = r.GroupName
		if category == "" {
			category = constants.CategoryGeneral
		}
		year = fmt.Sprintf("%04d", dt.Year())
		month = fmt.Sprintf("%02d", int(dt.Month()))
	} else {
		category = constants.CategoryUncertainDate
		year = fmt.Sprintf("%04d", now.Year())
		month = constants.UnknownMonth
	}

	rel := filepath.Join(category, year, month)
	return Decision{
		Category: category,
		Dir:      filepath.Join(outputDir, rel),
		Rel:      rel,
		Filename: fmt.Sprintf("%s-%s_%s_%s.pdf", year, month, r.DocType, SanitizeNumber(r.NumberToken)),
		Accepted: true,
	}
}

// SanitizeNumber strips filename-illegal characters; an absent number becomes the placeholder.
func SanitizeNumber(n string) string {
	if n == "" {
		n = constants.NoNumber
	}
	return strings.Map(func(r rune) rune {
		if strings.ContainsRune(constants.FilenameIllegalChars, r) {
			return -1
		}
		return r
	}, n)
}

// UniqueName returns filename when dir has no entry of that name, otherwise the
// first free "<stem>_<n><ext>" for n = 1, 2, ...
func UniqueName(dir, filename string) string {
	if !exists(filepath.Join(dir, filename)) {
		return filename
	}
	ext := filepath.Ext(filename)
	stem := strings.TrimSuffix(filename, ext)
	for i := 1; ; i++ {
		candidate := fmt.Sprintf("%s_%d%s", stem, i, ext)
		if !exists(filepath.Join(dir, candidate)) {
			return candidate
		}
	}
}

func exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}
