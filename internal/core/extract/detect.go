package extract

import (
	"strings"

	"github.com/joseph-ayodele/docsorter/constants"
	"github.com/joseph-ayodele/docsorter/internal/rules"
)

// KeywordMatch reports whether keyword, with periods and surrounding space
// removed, occurs in text. Plain substring containment, no word boundaries.
func KeywordMatch(text, keyword string) bool {
	k := strings.TrimSpace(strings.ReplaceAll(keyword, ".", ""))
	return strings.Contains(text, k)
}

// DetectType walks groups in order and each group's keywords in order; the
// first hit wins. text is expected to be normalized already.
func DetectType(text string, groups []rules.Group) (docType, groupName string, confidence float64) {
	for _, g := range groups {
		for _, kw := range g.Keywords {
			if KeywordMatch(text, kw) {
				return g.Type, g.Name, constants.MatchConfidence
			}
		}
	}
	return constants.DocTypeUnknown, constants.GroupUncertain, constants.NoMatchConfidence
}

// Analyze runs type detection and both token extractors over text.
func Analyze(text string, groups []rules.Group) Result {
	docType, group, conf := DetectType(text, groups)
	return Result{
		DocType:     docType,
		GroupName:   group,
		Confidence:  conf,
		DateToken:   ExtractDateToken(text),
		NumberToken: ExtractNumberToken(text),
	}
}
