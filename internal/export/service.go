// Package export renders the filing journal as an XLSX workbook.
package export

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/joseph-ayodele/docsorter/constants"
	"github.com/joseph-ayodele/docsorter/internal/common"
	"github.com/joseph-ayodele/docsorter/internal/journal"
)

// Lister reads journal entries.
type Lister interface {
	List(ctx context.Context, f journal.Filter) ([]journal.Entry, error)
}

// Service is a tiny façade over the journal that produces XLSX bytes.
type Service struct {
	journal Lister
	logger  *slog.Logger
}

func NewService(j Lister, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{journal: j, logger: logger}
}

const (
	sheetFiles   = "Files"
	sheetSummary = "Summary"
)

// ExportJournalXLSX returns a workbook with one row per journal entry matching
// f and a per-category outcome summary.
func (s *Service) ExportJournalXLSX(ctx context.Context, f journal.Filter) ([]byte, error) {
	start := time.Now()

	entries, err := s.journal.List(ctx, f)
	if err != nil {
		return nil, common.WrapError(err, "query journal")
	}

	x := excelize.NewFile()
	defer func() { _ = x.Close() }()
	// the default "Sheet1" becomes the file list
	if err := x.SetSheetName("Sheet1", sheetFiles); err != nil {
		return nil, err
	}
	if _, err := x.NewSheet(sheetSummary); err != nil {
		return nil, err
	}
	idx, _ := x.GetSheetIndex(sheetFiles)
	x.SetActiveSheet(idx)

	headers := []string{
		"Time", "Run", "Outcome", "Category", "Type", "Number",
		"Date", "Source", "Target", "OCR", "Dry Run", "Error",
	}
	if err := writeRow(x, sheetFiles, 1, toAny(headers)); err != nil {
		return nil, err
	}
	for i, e := range entries {
		row := []any{
			e.CreatedAt.Format("2006-01-02 15:04:05"),
			e.RunID,
			string(e.Outcome),
			e.Category,
			e.DocType,
			e.Number,
			e.DateToken,
			e.Source,
			e.Target,
			yesNo(e.UsedOCR),
			yesNo(e.DryRun),
			truncate(e.Error, 200),
		}
		if err := writeRow(x, sheetFiles, i+2, row); err != nil {
			return nil, err
		}
	}
	_ = x.SetColWidth(sheetFiles, "A", "A", 20) // time
	_ = x.SetColWidth(sheetFiles, "B", "B", 38) // run id
	_ = x.SetColWidth(sheetFiles, "C", "G", 14)
	_ = x.SetColWidth(sheetFiles, "H", "I", 60) // paths
	_ = x.SetColWidth(sheetFiles, "L", "L", 48) // error
	if len(entries) > 0 {
		_ = x.AutoFilter(sheetFiles, fmt.Sprintf("A1:L%d", len(entries)+1), nil)
	}

	if err := writeSummary(x, entries); err != nil {
		return nil, err
	}

	buf, err := x.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	s.logger.Info("export.xlsx.ok",
		"run_id", f.RunID,
		"rows", len(entries),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}

// writeSummary lays out categories as rows and outcomes as columns.
func writeSummary(x *excelize.File, entries []journal.Entry) error {
	counts := map[string]map[constants.Outcome]int{}
	for _, e := range entries {
		cat := e.Category
		if cat == "" {
			cat = "-"
		}
		if counts[cat] == nil {
			counts[cat] = map[constants.Outcome]int{}
		}
		counts[cat][e.Outcome]++
	}
	cats := make([]string, 0, len(counts))
	for c := range counts {
		cats = append(cats, c)
	}
	sort.Strings(cats)

	header := []any{"Category"}
	for _, o := range constants.AllOutcomes {
		header = append(header, string(o))
	}
	header = append(header, "Total")
	if err := writeRow(x, sheetSummary, 1, header); err != nil {
		return err
	}
	for i, c := range cats {
		row := []any{c}
		total := 0
		for _, o := range constants.AllOutcomes {
			row = append(row, counts[c][o])
			total += counts[c][o]
		}
		row = append(row, total)
		if err := writeRow(x, sheetSummary, i+2, row); err != nil {
			return err
		}
	}
	_ = x.SetColWidth(sheetSummary, "A", "A", 24)
	return nil
}

func writeRow(x *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return x.SetSheetRow(sheet, cell, &values)
}

func toAny(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func truncate(s string, n int) string {
	if n <= 0 || len(s) <= n {
		return s
	}
	if n <= 1 {
		return s[:n]
	}
	return s[:n-1] + "…"
}
