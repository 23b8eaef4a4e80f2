package common

import (
	"errors"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg := LoadConfig(viper.New())

	assert.Equal(t, "groups.json", cfg.Rules.Path)
	assert.Equal(t, "settings.json", cfg.Settings.Path)
	assert.InDelta(t, 0.5, cfg.Classify.ConfidenceThreshold, 1e-9)
	assert.Equal(t, 2, cfg.OCR.MaxPages)
	assert.Equal(t, 300, cfg.OCR.DPI)
	assert.Equal(t, "ell+eng", cfg.OCR.Lang)
	assert.Zero(t, cfg.OCR.Timeout)
	assert.Equal(t, 2*time.Second, cfg.Watch.Debounce)
	assert.Empty(t, cfg.Journal.DSN)
	require.NoError(t, cfg.Validate())
}

func TestLoadConfigOverrides(t *testing.T) {
	v := viper.New()
	v.Set("classify.confidence_threshold", 0.8)
	v.Set("ocr.timeout", "45s")
	v.Set("rules.path", "/etc/docsorter/rules.yaml")

	cfg := LoadConfig(v)

	assert.InDelta(t, 0.8, cfg.Classify.ConfidenceThreshold, 1e-9)
	assert.Equal(t, 45*time.Second, cfg.OCR.Timeout)
	assert.Equal(t, "/etc/docsorter/rules.yaml", cfg.Rules.Path)
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{name: "threshold above one", mutate: func(c *Config) { c.Classify.ConfidenceThreshold = 1.5 }, field: "classify.confidence_threshold"},
		{name: "negative threshold", mutate: func(c *Config) { c.Classify.ConfidenceThreshold = -0.1 }, field: "classify.confidence_threshold"},
		{name: "zero pages", mutate: func(c *Config) { c.OCR.MaxPages = 0 }, field: "ocr.max_pages"},
		{name: "zero dpi", mutate: func(c *Config) { c.OCR.DPI = 0 }, field: "ocr.dpi"},
		{name: "missing rules path", mutate: func(c *Config) { c.Rules.Path = " " }, field: "rules.path"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := LoadConfig(viper.New())
			tt.mutate(cfg)

			err := cfg.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidInput))
			assert.True(t, HasCode(err, CodeConfig))
			assert.Contains(t, err.Error(), tt.field)
		})
	}
}

func TestParseLevel(t *testing.T) {
	_, err := ParseLevel("loud")
	assert.Error(t, err)

	lvl, err := ParseLevel("WARN")
	require.NoError(t, err)
	assert.Equal(t, "WARN", lvl.String())
}
