package main

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"

	"github.com/joseph-ayodele/docsorter/internal/filing"
)

var (
	colorRed    = color.New(color.FgRed, color.Bold)
	colorGreen  = color.New(color.FgGreen)
	colorYellow = color.New(color.FgYellow)
	colorCyan   = color.New(color.FgCyan)
	colorBold   = color.New(color.Bold)
)

// presenter renders filing events on a terminal: a progress bar plus colored log lines.
type presenter struct {
	w     io.Writer
	bar   *progressbar.ProgressBar
	noBar bool
}

func newPresenter(w io.Writer, noBar bool) *presenter {
	return &presenter{w: w, noBar: noBar}
}

func (p *presenter) callbacks() filing.Callbacks {
	return filing.Callbacks{
		Log:      p.log,
		Progress: p.progress,
		Done:     p.done,
		Failed: func(err error) {
			p.println(colorRed, "failed: "+err.Error())
		},
	}
}

func (p *presenter) log(msg string) {
	switch {
	case strings.HasPrefix(msg, "ERROR"):
		p.println(colorRed, msg)
	case strings.HasPrefix(msg, "warning"), strings.HasPrefix(msg, "rules unavailable"), strings.HasPrefix(msg, "OCR unavailable"):
		p.println(colorYellow, msg)
	case strings.HasPrefix(msg, "[DRY RUN]"), strings.HasPrefix(msg, "DRY RUN"):
		p.println(colorCyan, msg)
	default:
		p.println(colorGreen, msg)
	}
}

func (p *presenter) progress(done, total int) {
	if p.noBar || total == 0 {
		return
	}
	if p.bar == nil {
		p.bar = progressbar.NewOptions(total,
			progressbar.OptionSetWriter(p.w),
			progressbar.OptionEnableColorCodes(true),
			progressbar.OptionShowCount(),
			progressbar.OptionShowElapsedTimeOnFinish(),
			progressbar.OptionSetWidth(40),
			progressbar.OptionSetDescription("[cyan][bold]Filing documents...[reset]"),
			progressbar.OptionSetTheme(progressbar.Theme{
				Saucer:        "[green]=[reset]",
				SaucerHead:    "[green]>[reset]",
				SaucerPadding: " ",
				BarStart:      "[",
				BarEnd:        "]",
			}),
			progressbar.OptionOnCompletion(func() {
				if _, err := fmt.Fprintln(p.w); err != nil {
					slog.Warn("Failed to write newline after progress bar", "error", err)
				}
			}),
		)
	}
	if err := p.bar.Set(done); err != nil {
		slog.Warn("Failed to update progress bar", "error", err)
	}
}

func (p *presenter) done(s filing.Summary) {
	p.bar = nil
	line := fmt.Sprintf("%d files: %d moved, %d unsorted, %d simulated, %d failed (run %s)",
		s.Total, s.Moved, s.Unsorted, s.Simulated, s.Failed, s.RunID)
	if s.Failed > 0 {
		p.println(colorYellow, line)
		return
	}
	p.println(colorBold, line)
}

func (p *presenter) println(c *color.Color, msg string) {
	if p.bar != nil {
		_ = p.bar.Clear()
	}
	if _, err := c.Fprintln(p.w, msg); err != nil {
		slog.Warn("Failed to write output", "error", err)
	}
	if p.bar != nil && !p.bar.IsFinished() {
		_ = p.bar.RenderBlank()
	}
}
