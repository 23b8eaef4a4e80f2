package dates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ymd(t *testing.T, got time.Time) string {
	t.Helper()
	return got.Format("2006-01-02")
}

func TestParseVariants(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"12/03/2024", "2024-03-12"},
		{"12.O3.2024", "2024-03-12"},
		{"12-03-2024", "2024-03-12"},
		{"12.o3.2024", "2024-03-12"},
		{"12/Ο3/2024", "2024-03-12"}, // Greek capital omicron
		{"1/3/2024", "2024-03-01"},
		{"  15/03/2024  ", "2024-03-15"},
		{"ΗΜ:15/03/2024ΩΡΑ", "2024-03-15"},
		{"2024/03/15", "2024-03-15"},
		{"2024-3-5", "2024-03-05"},
		{"15/03/24", "2024-03-15"},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, ok := Parse(tt.raw)
			require.True(t, ok)
			assert.Equal(t, tt.want, ymd(t, got))
		})
	}
}

func TestParseNoisyMatchesCanonical(t *testing.T) {
	canonical, ok := Parse("12/03/2024")
	require.True(t, ok)
	for _, raw := range []string{"12.O3.2024", "12-03-2024"} {
		got, ok := Parse(raw)
		require.True(t, ok, raw)
		assert.True(t, canonical.Equal(got), raw)
	}
}

func TestParseAbsent(t *testing.T) {
	for _, raw := range []string{"", "   ", "31/02/2024", "hello", "15/13/2024", "2024"} {
		_, ok := Parse(raw)
		assert.False(t, ok, "%q", raw)
	}
}
