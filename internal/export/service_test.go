package export

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/joseph-ayodele/docsorter/constants"
	"github.com/joseph-ayodele/docsorter/internal/journal"
)

type fakeJournal struct {
	entries []journal.Entry
	err     error
	got     journal.Filter
}

func (f *fakeJournal) List(_ context.Context, flt journal.Filter) ([]journal.Entry, error) {
	f.got = flt
	return f.entries, f.err
}

func TestExportJournalXLSX(t *testing.T) {
	at := time.Date(2024, 3, 20, 10, 0, 0, 0, time.UTC)
	j := &fakeJournal{entries: []journal.Entry{
		{RunID: "r1", Source: "in/invoice1.pdf", Target: "out/Invoices/2024/03/2024-03_TIM_4521.pdf",
			Category: "Invoices", DocType: "TIM", Number: "4521", DateToken: "15/03/2024",
			Outcome: constants.OutcomeMoved, CreatedAt: at},
		{RunID: "r1", Source: "in/x.pdf", Target: "out/Unsorted/CHECK_x.pdf",
			Category: constants.CategoryUnsorted, Outcome: constants.OutcomeUnsorted, UsedOCR: true, CreatedAt: at},
		{RunID: "r1", Source: "in/y.pdf", Outcome: constants.OutcomeError, Error: "permission denied", CreatedAt: at},
	}}

	data, err := NewService(j, nil).ExportJournalXLSX(context.Background(), journal.Filter{RunID: "r1"})
	require.NoError(t, err)
	assert.Equal(t, "r1", j.got.RunID)

	x, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer x.Close()

	rows, err := x.GetRows(sheetFiles)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, "Outcome", rows[0][2])
	assert.Equal(t, "MOVED", rows[1][2])
	assert.Equal(t, "4521", rows[1][5])
	assert.Equal(t, "yes", rows[2][9])
	assert.Equal(t, "permission denied", rows[3][11])

	summary, err := x.GetRows(sheetSummary)
	require.NoError(t, err)
	require.Len(t, summary, 4) // header + "-", Invoices, Unsorted
	assert.Equal(t, []string{"Category", "MOVED", "UNSORTED", "SIMULATED", "ERROR", "Total"}, summary[0])
	assert.Equal(t, "-", summary[1][0])
	assert.Equal(t, "Invoices", summary[2][0])
	assert.Equal(t, "1", summary[2][1])
	assert.Equal(t, "1", summary[2][5])
}

func TestExportJournalXLSX_ListError(t *testing.T) {
	_, err := NewService(&fakeJournal{err: errors.New("boom")}, nil).ExportJournalXLSX(context.Background(), journal.Filter{})
	assert.ErrorContains(t, err, "boom")
}
