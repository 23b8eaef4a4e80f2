package extract

import "regexp"

var reDateToken = regexp.MustCompile(`(\d{1,2}[/\-.]\d{1,2}[/\-.]\d{4})`)

// numberPatterns are tried strictly in order; the first one that matches wins.
var numberPatterns = []*regexp.Regexp{
	regexp.MustCompile(`ΑΡΙΘΜΟΣ\s+(\d+)`),
	regexp.MustCompile(`ΑΡΙΘΜΙΟΣ\s+(\d+)`),
	regexp.MustCompile(`ΠΑΡΑΣΤΑΤΙΚΟ\s*[:\-]?\s*([A-Z0-9]+)`),
	regexp.MustCompile(`ΤΙΜΟΛΟΓΙΟ.*?(\d{3,})`),
}

// ExtractDateToken returns the first day/month/4-digit-year token, unparsed.
func ExtractDateToken(text string) string {
	m := reDateToken.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return m[1]
}

// ExtractNumberToken returns the capture of the first document-number pattern that matches.
func ExtractNumberToken(text string) string {
	for _, re := range numberPatterns {
		if m := re.FindStringSubmatch(text); m != nil {
			return m[1]
		}
	}
	return ""
}
