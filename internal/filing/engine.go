// Package filing moves classified documents into a category and date
// partitioned tree, one file at a time, reporting through an event channel.
package filing

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/h2non/filetype"

	"github.com/joseph-ayodele/docsorter/constants"
	"github.com/joseph-ayodele/docsorter/internal/common"
	"github.com/joseph-ayodele/docsorter/internal/core"
	"github.com/joseph-ayodele/docsorter/internal/journal"
	"github.com/joseph-ayodele/docsorter/internal/rules"
	"github.com/joseph-ayodele/docsorter/internal/settings"
)

// RuleSource yields the rule set for a pass; on failure it returns an empty
// set along with the error.
type RuleSource interface {
	LoadOrEmpty() ([]rules.Group, error)
}

type SettingsSource interface {
	Load() settings.Settings
}

// Analyzer extracts classification data from one PDF.
type Analyzer interface {
	Analyze(ctx context.Context, path string, groups []rules.Group) core.Analysis
}

// AnalyzerFactory builds the pass analyzer from the tool settings loaded for that pass.
type AnalyzerFactory func(tools settings.Settings) Analyzer

// Recorder persists per-file outcomes.
type Recorder interface {
	Record(ctx context.Context, e journal.Entry) error
}

// Metrics observes a pass.
type Metrics interface {
	FileFiled(outcome constants.Outcome)
	OCRFallback()
	BatchFinished(d time.Duration)
}

type Config struct {
	ConfidenceThreshold float64
	RequireRules        bool // fail the pass when the rule file cannot be loaded
}

// Engine is the filing worker. It is safe to reuse across passes but two
// passes must not share an output tree concurrently.
type Engine struct {
	cfg       Config
	rules     RuleSource
	settings  SettingsSource
	analyzers AnalyzerFactory
	recorder  Recorder
	metrics   Metrics
	now       func() time.Time
	logger    *slog.Logger
}

func NewEngine(cfg Config, rulesSrc RuleSource, settingsSrc SettingsSource, analyzers AnalyzerFactory, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		cfg:       cfg,
		rules:     rulesSrc,
		settings:  settingsSrc,
		analyzers: analyzers,
		now:       time.Now,
		logger:    logger,
	}
}

func (e *Engine) WithRecorder(r Recorder) *Engine {
	e.recorder = r
	return e
}

func (e *Engine) WithMetrics(m Metrics) *Engine {
	e.metrics = m
	return e
}

// WithClock overrides the clock used for the uncertain-date year.
func (e *Engine) WithClock(now func() time.Time) *Engine {
	e.now = now
	return e
}

// Request describes one organize pass. When Events is nil, log events go to
// the engine logger. The engine never closes Events.
type Request struct {
	InputDir  string
	OutputDir string
	DryRun    bool
	Events    chan<- Event
}

// Start runs Organize on its own goroutine. The returned channel carries every
// event of the pass and is closed after the terminal done or failed event.
func (e *Engine) Start(ctx context.Context, req Request) <-chan Event {
	ch := make(chan Event, 64)
	req.Events = ch
	go func() {
		defer close(ch)
		_, _ = e.Organize(ctx, req)
	}()
	return ch
}

// Organize files every regular file directly inside req.InputDir and returns
// once the whole batch is done. Only a failure to list the input directory
// (or, with RequireRules, to load the rules) aborts the pass; per-file
// failures are reported and skipped.
func (e *Engine) Organize(ctx context.Context, req Request) (Summary, error) {
	start := time.Now()
	runID := uuid.NewString()
	ctx = common.WithRunID(ctx, runID)
	logger := e.logger.With("run_id", runID)
	em := emitter{ch: req.Events, logger: logger}
	sum := Summary{RunID: runID, DryRun: req.DryRun}

	files, err := listFiles(req.InputDir)
	if err != nil {
		err = common.NewAppError(common.CodeInput, fmt.Sprintf("list input directory %s", req.InputDir), err)
		logger.Error("organize aborted", "input_dir", req.InputDir, "error", err)
		em.send(Event{Kind: EventFailed, Err: err})
		return sum, err
	}

	groups, err := e.rules.LoadOrEmpty()
	if err != nil {
		if e.cfg.RequireRules {
			err = common.NewAppError(common.CodeRules, "rules required but unavailable", fmt.Errorf("%w: %w", common.ErrRulesUnavailable, err))
			logger.Error("organize aborted", "error", err)
			em.send(Event{Kind: EventFailed, Err: err})
			return sum, err
		}
		em.log(fmt.Sprintf("rules unavailable (%v); PDFs will go to %s", err, constants.CategoryUnsorted))
	}
	analyzer := e.analyzers(e.settings.Load())

	sum.Total = len(files)
	logger.Info("organize started",
		"input_dir", req.InputDir, "output_dir", req.OutputDir,
		"files", len(files), "rules", len(groups), "dry_run", req.DryRun)
	em.send(Event{Kind: EventStarted, Total: len(files)})
	if req.DryRun {
		em.log("DRY RUN: no file will be moved")
	}

	p := pass{Engine: e, req: req, runID: runID, groups: groups, analyzer: analyzer, em: em, logger: logger}
	for i, name := range files {
		ent := p.file(ctx, name)
		sum.add(ent.Outcome)
		e.observe(ctx, logger, ent)
		em.send(Event{Kind: EventFile, Source: ent.Source, Target: ent.Target, Outcome: ent.Outcome, Err: entryErr(ent)})
		em.send(Event{Kind: EventProgress, Done: i + 1})
	}

	dur := time.Since(start)
	if e.metrics != nil {
		e.metrics.BatchFinished(dur)
	}
	logger.Info("organize finished",
		"duration_ms", dur.Milliseconds(),
		"moved", sum.Moved, "simulated", sum.Simulated, "unsorted", sum.Unsorted, "failed", sum.Failed)
	em.log("done")
	em.send(Event{Kind: EventDone, Summary: sum})
	return sum, nil
}

func (e *Engine) observe(ctx context.Context, logger *slog.Logger, ent journal.Entry) {
	if e.metrics != nil {
		e.metrics.FileFiled(ent.Outcome)
		if ent.UsedOCR {
			e.metrics.OCRFallback()
		}
	}
	if e.recorder != nil {
		if err := e.recorder.Record(ctx, ent); err != nil {
			logger.Warn("journal write failed", "file", ent.Source, "error", err)
		}
	}
}

// pass holds the state shared by every file of one Organize call.
type pass struct {
	*Engine
	req          Request
	runID        string
	groups       []rules.Group
	analyzer     Analyzer
	em           emitter
	logger       *slog.Logger
	ocrWarnShown bool
}

// file classifies and files one input; it never panics or returns an error,
// failures become an OutcomeError entry.
func (p *pass) file(ctx context.Context, name string) (ent journal.Entry) {
	src := filepath.Join(p.req.InputDir, name)
	ent = journal.Entry{RunID: p.runID, Source: src, DryRun: p.req.DryRun}
	defer func() {
		if r := recover(); r != nil {
			ent.Outcome = constants.OutcomeError
			ent.Error = fmt.Sprintf("panic: %v", r)
			p.logger.Error("file failed", "file", name, "error", ent.Error)
			p.em.log(fmt.Sprintf("ERROR %s: %s", name, ent.Error))
		}
	}()

	var d Decision
	if constants.IsPDFExt(filepath.Ext(name)) {
		p.sniff(src, name)
		a := p.analyzer.Analyze(common.WithFile(ctx, name), src, p.groups)
		if a.OCRError != nil && !p.ocrWarnShown {
			p.ocrWarnShown = true
			p.em.log(fmt.Sprintf("OCR unavailable (%v); using embedded text only", a.OCRError))
		}
		ent.UsedOCR = a.UsedOCR && a.OCRError == nil
		ent.DocType = a.DocType
		ent.Number = a.NumberToken
		ent.DateToken = a.DateToken
		d = DecidePDF(p.req.OutputDir, name, a.Result, p.cfg.ConfidenceThreshold, p.now())
	} else {
		d = DecideOther(p.req.OutputDir, name)
	}

	final := UniqueName(d.Dir, d.Filename)
	ent.Category = d.Category
	ent.Target = filepath.Join(d.Dir, final)
	rel := filepath.Join(d.Rel, final)

	if p.req.DryRun {
		ent.Outcome = constants.OutcomeSimulated
		p.logger.Debug("file simulated", "file", name, "target", ent.Target)
		p.em.log(fmt.Sprintf("[DRY RUN] %s -> %s", name, rel))
		return ent
	}

	if err := moveFile(src, ent.Target); err != nil {
		ent.Outcome = constants.OutcomeError
		ent.Error = err.Error()
		p.logger.Error("file failed", "file", name, "target", ent.Target, "error", err)
		p.em.log(fmt.Sprintf("ERROR %s: %v", name, err))
		return ent
	}

	ent.Outcome = constants.OutcomeMoved
	if d.Category == constants.CategoryUnsorted {
		ent.Outcome = constants.OutcomeUnsorted
	}
	p.logger.Debug("file moved", "file", name, "category", d.Category, "target", ent.Target)
	p.em.log(fmt.Sprintf("%s: %s", d.Category, final))
	return ent
}

// sniff warns when a .pdf file's content is recognizably something else.
func (p *pass) sniff(path, name string) {
	kind, err := filetype.MatchFile(path)
	if err != nil || kind == filetype.Unknown || kind.Extension == constants.PDF {
		return
	}
	p.logger.Warn("pdf extension but different content", "file", name, "detected", kind.MIME.Value)
	p.em.log(fmt.Sprintf("warning: %s looks like %s, not PDF", name, kind.MIME.Value))
}

func entryErr(ent journal.Entry) error {
	if ent.Error == "" {
		return nil
	}
	return common.NewAppError(common.CodeFiling, ent.Source, errors.New(ent.Error))
}

// listFiles returns the names of regular files (following symlinks) directly inside dir.
func listFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, de := range entries {
		if de.Type().IsRegular() {
			out = append(out, de.Name())
			continue
		}
		if de.Type()&os.ModeSymlink != 0 {
			if info, err := os.Stat(filepath.Join(dir, de.Name())); err == nil && info.Mode().IsRegular() {
				out = append(out, de.Name())
			}
		}
	}
	return out, nil
}

type emitter struct {
	ch     chan<- Event
	logger *slog.Logger
}

func (m emitter) send(ev Event) {
	if m.ch != nil {
		m.ch <- ev
		return
	}
	if ev.Kind == EventLog {
		m.logger.Info(ev.Message)
	}
}

func (m emitter) log(msg string) { m.send(Event{Kind: EventLog, Message: msg}) }
