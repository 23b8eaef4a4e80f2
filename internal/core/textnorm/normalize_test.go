package textnorm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "empty", in: "", want: ""},
		{name: "greek accents", in: "Τιμολόγιο Παροχής", want: "ΤΙΜΟΛΟΓΙΟ ΠΑΡΟΧΗΣ"},
		{name: "diaeresis", in: "προϊόν", want: "ΠΡΟΙΟΝ"},
		{name: "latin accents", in: "Café déjà vu", want: "CAFE DEJA VU"},
		{name: "newlines and tabs", in: "a\n\n b\t\tc", want: "A B C"},
		{name: "surrounding space kept as single", in: "  x  ", want: " X "},
		{name: "non-breaking space", in: "a\u00a0\u00a0b", want: "A B"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	samples := []string{
		"",
		"ΑΠΟΔΕΙΞΗ ΛΙΑΝΙΚΗΣ\nΑρ. 0042   15/03/2024",
		"Ένα   κείμενο\r\nμε τόνους ΐ ΰ",
		"Straße Œuvre ñandú",
		"\t\tleading",
	}
	for _, s := range samples {
		once := Normalize(s)
		assert.Equal(t, once, Normalize(once), "input %q", s)
	}
}
