package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// flagKeys maps command-local flags to config keys. They are bound only for the
// command being executed, so commands sharing a flag name do not shadow each other.
var flagKeys = map[string]string{
	"threshold":     "classify.confidence_threshold",
	"require-rules": "rules.require",
	"max-pages":     "ocr.max_pages",
	"dpi":           "ocr.dpi",
	"lang":          "ocr.lang",
	"ocr-timeout":   "ocr.timeout",
	"metrics-addr":  "metrics.addr",
	"debounce":      "watch.debounce",
}

func bindLocalFlags(cmd *cobra.Command) {
	cmd.LocalFlags().VisitAll(func(f *pflag.Flag) {
		if key, ok := flagKeys[f.Name]; ok {
			_ = viper.BindPFlag(key, f)
		}
	})
}

// addClassifyFlags registers the flags shared by commands that run organize passes.
func addClassifyFlags(cmd *cobra.Command) {
	cmd.Flags().Float64("threshold", 0.5, "classification confidence acceptance threshold")
	cmd.Flags().Bool("require-rules", false, "abort instead of filing everything as Unsorted when the rule file cannot be read")
	addOCRFlags(cmd)
}

func addOCRFlags(cmd *cobra.Command) {
	cmd.Flags().Int("max-pages", 2, "leading pages inspected per PDF")
	cmd.Flags().Int("dpi", 300, "rasterization DPI for OCR")
	cmd.Flags().String("lang", "ell+eng", "tesseract language set")
	cmd.Flags().Duration("ocr-timeout", 0, "bound on external tool calls per document (0 = none)")
}
