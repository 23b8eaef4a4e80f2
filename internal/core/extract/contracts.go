// Package extract detects document type, date and number from normalized text.
package extract

import "github.com/joseph-ayodele/docsorter/constants"

// Result is the outcome of running extraction over one text source.
// Empty DateToken / NumberToken mean "not found".
type Result struct {
	DocType     string
	GroupName   string
	Confidence  float64
	DateToken   string
	NumberToken string
}

// Unknown reports whether no rule matched.
func (r Result) Unknown() bool { return r.DocType == constants.DocTypeUnknown }

// Complete reports whether the result has a type, a date and a number; native
// results that are not complete trigger the OCR fallback.
func (r Result) Complete() bool {
	return !r.Unknown() && r.DateToken != "" && r.NumberToken != ""
}

// Merge combines a native result with an OCR result. The OCR type/group/confidence
// replace the native ones only when OCR matched a rule; date and number each fall
// back to the OCR value independently when the native one is missing.
func Merge(native, ocr Result) Result {
	out := native
	if !ocr.Unknown() {
		out.DocType = ocr.DocType
		out.GroupName = ocr.GroupName
		out.Confidence = ocr.Confidence
	}
	if out.DateToken == "" {
		out.DateToken = ocr.DateToken
	}
	if out.NumberToken == "" {
		out.NumberToken = ocr.NumberToken
	}
	return out
}
