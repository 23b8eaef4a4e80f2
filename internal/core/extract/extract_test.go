package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/joseph-ayodele/docsorter/constants"
	"github.com/joseph-ayodele/docsorter/internal/core/textnorm"
	"github.com/joseph-ayodele/docsorter/internal/rules"
)

var testGroups = []rules.Group{
	{Name: "Invoices", Type: "TIM", Keywords: []string{"ΤΙΜΟΛΟΓΙΟ", "Τ.Π.Υ."}},
	{Name: "Receipts", Type: "APOD", Keywords: []string{"ΑΠΟΔΕΙΞΗ"}},
}

func TestKeywordMatch(t *testing.T) {
	assert.True(t, KeywordMatch("ΤΠΥ 0042", "Τ.Π.Υ."), "periods are stripped from the keyword")
	assert.True(t, KeywordMatch("ΤΙΜΟΛΟΓΙΟ", "  ΤΙΜΟΛΟΓΙΟ  "))
	assert.True(t, KeywordMatch("ΑΝΤΙΤΙΜΟΛΟΓΙΟΥ", "ΤΙΜΟΛΟΓΙΟ"), "substring, not word boundary")
	assert.False(t, KeywordMatch("ΤΙΜΟΛΟΓΙΟ", "Τιμολόγιο"), "keywords are not normalized")
}

func TestDetectType(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		groups    []rules.Group
		wantType  string
		wantGroup string
		wantConf  float64
	}{
		{
			name:      "first rule",
			text:      textnorm.Normalize("Τιμολόγιο Πώλησης"),
			groups:    testGroups,
			wantType:  "TIM",
			wantGroup: "Invoices",
			wantConf:  0.9,
		},
		{
			name:      "second rule",
			text:      "ΑΠΟΔΕΙΞΗ ΛΙΑΝΙΚΗΣ",
			groups:    testGroups,
			wantType:  "APOD",
			wantGroup: "Receipts",
			wantConf:  0.9,
		},
		{
			name:      "both match, load order wins",
			text:      "ΑΠΟΔΕΙΞΗ ΚΑΙ ΤΙΜΟΛΟΓΙΟ",
			groups:    testGroups,
			wantType:  "TIM",
			wantGroup: "Invoices",
			wantConf:  0.9,
		},
		{
			name:      "reversed order flips the winner",
			text:      "ΑΠΟΔΕΙΞΗ ΚΑΙ ΤΙΜΟΛΟΓΙΟ",
			groups:    []rules.Group{testGroups[1], testGroups[0]},
			wantType:  "APOD",
			wantGroup: "Receipts",
			wantConf:  0.9,
		},
		{
			name:      "no match",
			text:      "ΣΥΜΒΑΣΗ ΕΡΓΟΥ",
			groups:    testGroups,
			wantType:  constants.DocTypeUnknown,
			wantGroup: constants.GroupUncertain,
		},
		{
			name:      "no rules",
			text:      "ΤΙΜΟΛΟΓΙΟ",
			groups:    nil,
			wantType:  constants.DocTypeUnknown,
			wantGroup: constants.GroupUncertain,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			typ, group, conf := DetectType(tt.text, tt.groups)
			assert.Equal(t, tt.wantType, typ)
			assert.Equal(t, tt.wantGroup, group)
			assert.InDelta(t, tt.wantConf, conf, 1e-9)
		})
	}
}

func TestExtractDateToken(t *testing.T) {
	assert.Equal(t, "15/03/2024", ExtractDateToken("ΗΜΕΡΟΜΗΝΙΑ 15/03/2024 ΩΡΑ 10:22"))
	assert.Equal(t, "1-3-2024", ExtractDateToken("ΗΜ 1-3-2024"))
	assert.Equal(t, "01.12.2023", ExtractDateToken("01.12.2023 και 02.12.2023"))
	assert.Empty(t, ExtractDateToken("15/03/24"))
	assert.Empty(t, ExtractDateToken(""))
}

func TestExtractNumberToken(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"ΑΡΙΘΜΟΣ 4521 ΗΜΕΡΟΜΗΝΙΑ", "4521"},
		{"ΑΡΙΘΜΙΟΣ 77", "77"},
		{"ΠΑΡΑΣΤΑΤΙΚΟ: AB123 ΣΥΝΟΛΟ", "AB123"},
		{"ΠΑΡΑΣΤΑΤΙΚΟ-XY9", "XY9"},
		{"ΤΙΜΟΛΟΓΙΟ ΠΩΛΗΣΗΣ ΝΟ 12 ΣΕΙΡΑ 000345", "000345"},
		{"ΤΙΜΟΛΟΓΙΟ ΑΡΙΘΜΟΣ 12", "12"},
		{"ΤΙΜΟΛΟΓΙΟ 12", ""},
		{"ΤΙΠΟΤΑ", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ExtractNumberToken(tt.text), tt.text)
	}
}

func TestMerge(t *testing.T) {
	unknown := Result{DocType: constants.DocTypeUnknown, GroupName: constants.GroupUncertain}

	t.Run("ocr type overrides", func(t *testing.T) {
		native := Result{DocType: "APOD", GroupName: "Receipts", Confidence: 0.9, NumberToken: "1"}
		ocr := Result{DocType: "TIM", GroupName: "Invoices", Confidence: 0.9, DateToken: "15/03/2024", NumberToken: "2"}
		got := Merge(native, ocr)
		assert.Equal(t, "TIM", got.DocType)
		assert.Equal(t, "Invoices", got.GroupName)
		assert.Equal(t, "15/03/2024", got.DateToken)
		assert.Equal(t, "1", got.NumberToken, "native number wins when present")
	})

	t.Run("unknown ocr keeps native even when native is unknown", func(t *testing.T) {
		native := unknown
		native.DateToken = "01/01/2024"
		ocr := unknown
		ocr.NumberToken = "99"
		got := Merge(native, ocr)
		assert.True(t, got.Unknown())
		assert.Equal(t, "01/01/2024", got.DateToken)
		assert.Equal(t, "99", got.NumberToken)
	})

	t.Run("unknown ocr does not erase native type", func(t *testing.T) {
		native := Result{DocType: "TIM", GroupName: "Invoices", Confidence: 0.9}
		got := Merge(native, unknown)
		assert.Equal(t, "TIM", got.DocType)
		assert.InDelta(t, 0.9, got.Confidence, 1e-9)
	})
}

func TestAnalyze(t *testing.T) {
	text := textnorm.Normalize("Τιμολόγιο\nΑριθμός 4521\nΗμερομηνία 15/03/2024")
	got := Analyze(text, testGroups)
	assert.Equal(t, Result{
		DocType:     "TIM",
		GroupName:   "Invoices",
		Confidence:  0.9,
		DateToken:   "15/03/2024",
		NumberToken: "4521",
	}, got)
	assert.True(t, got.Complete())
}
