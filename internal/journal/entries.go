package journal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/joseph-ayodele/docsorter/constants"
	"github.com/joseph-ayodele/docsorter/internal/common"
)

// Entry is one filed (or simulated, or failed) document.
type Entry struct {
	ID        int64
	RunID     string
	Source    string
	Target    string // empty when the file failed before a target was computed
	Category  string
	DocType   string
	Number    string
	DateToken string
	Outcome   constants.Outcome
	DryRun    bool
	UsedOCR   bool
	Error     string
	CreatedAt time.Time
}

// Filter narrows List; zero values mean "no restriction".
type Filter struct {
	RunID   string
	Outcome constants.Outcome
	Limit   int
}

// Record inserts e. CreatedAt defaults to now.
func (j *Journal) Record(ctx context.Context, e Entry) error {
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}
	q := j.rebind(`INSERT INTO filing_journal
	(run_id, source, target, category, doc_type, doc_number, doc_date, outcome, dry_run, used_ocr, error, created_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	_, err := j.db.ExecContext(ctx, q,
		e.RunID, e.Source, e.Target, e.Category, e.DocType, e.Number, e.DateToken,
		string(e.Outcome), e.DryRun, e.UsedOCR, e.Error, e.CreatedAt.UnixMilli(),
	)
	if err != nil {
		return common.NewAppError(common.CodeJournal, fmt.Sprintf("record %s", e.Source), err)
	}
	return nil
}

// List returns entries in insertion order.
func (j *Journal) List(ctx context.Context, f Filter) ([]Entry, error) {
	q := `SELECT id, run_id, source, target, category, doc_type, doc_number, doc_date, outcome, dry_run, used_ocr, error, created_at
	FROM filing_journal WHERE 1=1`
	var args []any
	if f.RunID != "" {
		q += ` AND run_id = ?`
		args = append(args, f.RunID)
	}
	if f.Outcome != "" {
		q += ` AND outcome = ?`
		args = append(args, string(f.Outcome))
	}
	q += ` ORDER BY id`
	if f.Limit > 0 {
		q += fmt.Sprintf(` LIMIT %d`, f.Limit)
	}

	rows, err := j.db.QueryContext(ctx, j.rebind(q), args...)
	if err != nil {
		return nil, common.NewAppError(common.CodeJournal, "list journal", err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var (
			e       Entry
			outcome string
			created int64
		)
		if err := rows.Scan(&e.ID, &e.RunID, &e.Source, &e.Target, &e.Category, &e.DocType, &e.Number,
			&e.DateToken, &outcome, &e.DryRun, &e.UsedOCR, &e.Error, &created); err != nil {
			return nil, common.NewAppError(common.CodeJournal, "scan journal row", err)
		}
		e.Outcome = constants.Outcome(outcome)
		e.CreatedAt = time.UnixMilli(created)
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, common.NewAppError(common.CodeJournal, "iterate journal", err)
	}
	return out, nil
}

// LastRunID returns the run id of the most recent entry, "" when the journal is empty.
func (j *Journal) LastRunID(ctx context.Context) (string, error) {
	var id string
	err := j.db.QueryRowContext(ctx, `SELECT run_id FROM filing_journal ORDER BY id DESC LIMIT 1`).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil
		}
		return "", common.NewAppError(common.CodeJournal, "last run id", err)
	}
	return id, nil
}
