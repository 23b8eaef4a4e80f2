// Package dates turns noisy date tokens from extracted text into calendar dates.
package dates

import (
	"regexp"
	"strings"
	"time"
)

// zeroLookalikes are letters OCR confuses with the digit 0 (Latin and Greek omicron, both cases).
var zeroLookalikes = strings.NewReplacer(
	"O", "0", "o", "0",
	"Ο", "0", "ο", "0",
)

var separators = strings.NewReplacer(".", "/", "-", "/")

var reEmbeddedDate = regexp.MustCompile(`(\d{1,2})/(\d{1,2})/(\d{4})`)

// layouts are tried in order: day/month/year, year/month/day, day/month/2-digit year.
var layouts = []string{"2/1/2006", "2006/1/2", "2/1/06"}

// Parse repairs separator and letter-for-zero noise in raw, re-anchors a
// D/M/YYYY date found anywhere inside it, and parses the result. ok is false
// for empty input or when no layout parses; neither is an error.
func Parse(raw string) (t time.Time, ok bool) {
	d := strings.TrimSpace(raw)
	if d == "" {
		return time.Time{}, false
	}
	d = separators.Replace(d)
	d = zeroLookalikes.Replace(d)

	if m := reEmbeddedDate.FindStringSubmatch(d); m != nil {
		d = m[1] + "/" + m[2] + "/" + m[3]
	}

	for _, layout := range layouts {
		if parsed, err := time.ParseInLocation(layout, d, time.Local); err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}
