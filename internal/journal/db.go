// Package journal records every per-file outcome of an organize pass in a
// SQL database: sqlite for local use, postgres when the DSN says so.
package journal

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"github.com/joseph-ayodele/docsorter/internal/common"
)

type dialect int

const (
	dialectSQLite dialect = iota
	dialectPostgres
)

// Journal is a handle on the journal database.
type Journal struct {
	db      *sql.DB
	pool    *pgxpool.Pool
	dialect dialect
	logger  *slog.Logger
}

func isPostgres(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://")
}

// Open connects to dsn and creates the journal table if needed. A postgres://
// DSN goes through a pgx pool; anything else is treated as a sqlite path.
func Open(ctx context.Context, dsn string, logger *slog.Logger) (*Journal, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if strings.TrimSpace(dsn) == "" {
		return nil, common.NewAppError(common.CodeJournal, "empty journal dsn", common.ErrInvalidConfig)
	}

	j := &Journal{logger: logger}
	if isPostgres(dsn) {
		logger.Info("connecting to journal database", "driver", "pgx")
		pc, err := pgxpool.ParseConfig(dsn)
		if err != nil {
			return nil, common.NewAppError(common.CodeJournal, "parse postgres dsn", err)
		}
		pc.ConnConfig.RuntimeParams["application_name"] = "docsorter"

		dialCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		pool, err := pgxpool.NewWithConfig(dialCtx, pc)
		if err != nil {
			return nil, common.NewAppError(common.CodeJournal, "connect postgres", err)
		}
		j.pool = pool
		j.db = stdlib.OpenDBFromPool(pool)
		j.dialect = dialectPostgres
	} else {
		logger.Info("opening journal database", "driver", "sqlite", "path", dsn)
		db, err := sql.Open("sqlite", strings.TrimPrefix(dsn, "sqlite://"))
		if err != nil {
			return nil, common.NewAppError(common.CodeJournal, "open sqlite", err)
		}
		// one writer; sqlite serializes anyway
		db.SetMaxOpenConns(1)
		j.db = db
		j.dialect = dialectSQLite
	}

	if err := j.migrate(ctx); err != nil {
		j.Close()
		return nil, err
	}
	return j, nil
}

// Close releases the database handles.
func (j *Journal) Close() {
	if j.db != nil {
		if err := j.db.Close(); err != nil {
			j.logger.Error("failed to close journal database", "error", err)
		}
	}
	if j.pool != nil {
		j.pool.Close()
	}
}

// HealthCheck pings the database.
func (j *Journal) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := j.db.PingContext(ctx); err != nil {
		return common.NewAppError(common.CodeJournal, "ping journal", err)
	}
	return nil
}

func (j *Journal) migrate(ctx context.Context) error {
	idCol := "INTEGER PRIMARY KEY AUTOINCREMENT"
	if j.dialect == dialectPostgres {
		idCol = "BIGSERIAL PRIMARY KEY"
	}
	stmts := []string{
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS filing_journal (
	id %s,
	run_id TEXT NOT NULL,
	source TEXT NOT NULL,
	target TEXT NOT NULL,
	category TEXT NOT NULL,
	doc_type TEXT NOT NULL,
	doc_number TEXT NOT NULL,
	doc_date TEXT NOT NULL,
	outcome TEXT NOT NULL,
	dry_run BOOLEAN NOT NULL,
	used_ocr BOOLEAN NOT NULL,
	error TEXT NOT NULL,
	created_at BIGINT NOT NULL
)`, idCol),
		`CREATE INDEX IF NOT EXISTS filing_journal_run_id ON filing_journal (run_id)`,
	}
	for _, s := range stmts {
		if _, err := j.db.ExecContext(ctx, s); err != nil {
			return common.NewAppError(common.CodeJournal, "create journal schema", err)
		}
	}
	return nil
}

// rebind rewrites ? placeholders to $n for postgres.
func (j *Journal) rebind(q string) string {
	if j.dialect != dialectPostgres {
		return q
	}
	var sb strings.Builder
	n := 0
	for _, r := range q {
		if r == '?' {
			n++
			sb.WriteByte('$')
			sb.WriteString(strconv.Itoa(n))
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}
