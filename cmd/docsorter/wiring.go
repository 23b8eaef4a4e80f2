package main

import (
	"context"
	"log/slog"

	"github.com/joseph-ayodele/docsorter/internal/core"
	"github.com/joseph-ayodele/docsorter/internal/core/ocr"
	"github.com/joseph-ayodele/docsorter/internal/filing"
	"github.com/joseph-ayodele/docsorter/internal/journal"
	"github.com/joseph-ayodele/docsorter/internal/metrics"
	"github.com/joseph-ayodele/docsorter/internal/rules"
	"github.com/joseph-ayodele/docsorter/internal/settings"
)

func ocrConfig() ocr.Config {
	return ocr.Config{
		MaxPages: cfg.OCR.MaxPages,
		DPI:      cfg.OCR.DPI,
		Lang:     cfg.OCR.Lang,
		Timeout:  cfg.OCR.Timeout,
	}
}

// newProcessor wires the native reader and OCR bridge for one set of tool settings.
func newProcessor(tools settings.Settings, l *slog.Logger) *core.Processor {
	oc := ocrConfig()
	return core.NewProcessor(
		ocr.NewNativeReader(oc, tools, l),
		ocr.NewBridge(oc, tools, l),
		cfg.OCR.MaxPages,
		l,
	)
}

// app holds the pieces shared by organize and watch.
type app struct {
	engine  *filing.Engine
	journal *journal.Journal
	metrics *metrics.Collector
}

func newApp(ctx context.Context, withMetrics bool) (*app, error) {
	a := &app{}
	a.engine = filing.NewEngine(
		filing.Config{
			ConfidenceThreshold: cfg.Classify.ConfidenceThreshold,
			RequireRules:        cfg.Rules.Require,
		},
		rules.NewStore(cfg.Rules.Path, logger),
		settings.NewStore(cfg.Settings.Path, logger),
		func(tools settings.Settings) filing.Analyzer { return newProcessor(tools, logger) },
		logger,
	)

	if cfg.Journal.DSN != "" {
		j, err := journal.Open(ctx, cfg.Journal.DSN, logger)
		if err != nil {
			return nil, err
		}
		a.journal = j
		a.engine.WithRecorder(j)
	}
	if withMetrics {
		a.metrics = metrics.New()
		a.engine.WithMetrics(a.metrics)
	}
	return a, nil
}

func (a *app) Close() {
	if a.journal != nil {
		a.journal.Close()
	}
}
