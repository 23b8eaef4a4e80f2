package common

import (
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	Rules    RulesConfig
	Settings SettingsConfig
	Classify ClassifyConfig
	OCR      OCRConfig
	Journal  JournalConfig
	Metrics  MetricsConfig
	Watch    WatchConfig
	Logging  LoggingConfig
}

// RulesConfig points at the externally maintained rule file
type RulesConfig struct {
	Path    string
	Require bool // abort a pass instead of filing everything as Unsorted when rules cannot be read
}

// SettingsConfig points at the tool-path settings file
type SettingsConfig struct {
	Path string
}

// ClassifyConfig holds classification acceptance configuration
type ClassifyConfig struct {
	ConfidenceThreshold float64
}

// OCRConfig holds OCR-related configuration
type OCRConfig struct {
	MaxPages int
	DPI      int
	Lang     string
	Timeout  time.Duration
}

// JournalConfig holds journal database configuration
type JournalConfig struct {
	DSN string // empty disables the journal; postgres:// uses pgx, anything else sqlite
}

// MetricsConfig holds the metrics listener configuration
type MetricsConfig struct {
	Addr string
}

// WatchConfig holds watch-mode configuration
type WatchConfig struct {
	Debounce time.Duration
}

// LoggingConfig holds logger configuration
type LoggingConfig struct {
	Level  string
	Format string
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("rules.path", "groups.json")
	v.SetDefault("rules.require", false)
	v.SetDefault("settings.path", "settings.json")
	v.SetDefault("classify.confidence_threshold", 0.5)
	v.SetDefault("ocr.max_pages", 2)
	v.SetDefault("ocr.dpi", 300)
	v.SetDefault("ocr.lang", "ell+eng")
	v.SetDefault("ocr.timeout", time.Duration(0))
	v.SetDefault("journal.dsn", "")
	v.SetDefault("metrics.addr", "")
	v.SetDefault("watch.debounce", 2*time.Second)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
}

// LoadConfig loads configuration from viper (file, env and bound flags)
func LoadConfig(v *viper.Viper) *Config {
	SetDefaults(v)
	return &Config{
		Rules: RulesConfig{
			Path:    v.GetString("rules.path"),
			Require: v.GetBool("rules.require"),
		},
		Settings: SettingsConfig{
			Path: v.GetString("settings.path"),
		},
		Classify: ClassifyConfig{
			ConfidenceThreshold: v.GetFloat64("classify.confidence_threshold"),
		},
		OCR: OCRConfig{
			MaxPages: v.GetInt("ocr.max_pages"),
			DPI:      v.GetInt("ocr.dpi"),
			Lang:     v.GetString("ocr.lang"),
			Timeout:  v.GetDuration("ocr.timeout"),
		},
		Journal: JournalConfig{
			DSN: v.GetString("journal.dsn"),
		},
		Metrics: MetricsConfig{
			Addr: v.GetString("metrics.addr"),
		},
		Watch: WatchConfig{
			Debounce: v.GetDuration("watch.debounce"),
		},
		Logging: LoggingConfig{
			Level:  v.GetString("logging.level"),
			Format: v.GetString("logging.format"),
		},
	}
}

// Validate validates the loaded configuration
func (c *Config) Validate() error {
	return NewValidator().
		Field("rules.path", c.Rules.Path, Required).
		Field("settings.path", c.Settings.Path, Required).
		Field("classify.confidence_threshold", c.Classify.ConfidenceThreshold, Between(0, 1)).
		Field("ocr.max_pages", c.OCR.MaxPages, AtLeast(1)).
		Field("ocr.dpi", c.OCR.DPI, AtLeast(1)).
		Field("ocr.lang", c.OCR.Lang, Required).
		Err(CodeConfig)
}
