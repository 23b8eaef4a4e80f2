package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/joseph-ayodele/docsorter/constants"
	"github.com/joseph-ayodele/docsorter/internal/export"
	"github.com/joseph-ayodele/docsorter/internal/journal"
)

func reportCmd() *cobra.Command {
	var (
		out     string
		runID   string
		last    bool
		outcome string
	)
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Write the filing journal to an XLSX workbook",
		Example: `  docsorter --journal journal.db report --out filed.xlsx --last
  docsorter --journal postgres://user@host/docs report --out unsorted.xlsx --outcome UNSORTED`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cfg.Journal.DSN == "" {
				return fmt.Errorf("no journal configured: pass --journal or set journal.dsn")
			}
			ctx := cmd.Context()
			j, err := journal.Open(ctx, cfg.Journal.DSN, logger)
			if err != nil {
				return err
			}
			defer j.Close()

			if last {
				if runID, err = j.LastRunID(ctx); err != nil {
					return err
				}
				if runID == "" {
					colorYellow.Println("journal is empty")
					return nil
				}
			}
			f := journal.Filter{RunID: runID, Outcome: constants.Outcome(outcome)}
			data, err := export.NewService(j, logger).ExportJournalXLSX(ctx, f)
			if err != nil {
				return err
			}
			if err := os.WriteFile(out, data, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", out, err)
			}
			colorGreen.Println("report written to", out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "docsorter-report.xlsx", "output workbook")
	cmd.Flags().StringVar(&runID, "run", "", "only entries of this run id")
	cmd.Flags().BoolVar(&last, "last", false, "only entries of the most recent run")
	cmd.Flags().StringVar(&outcome, "outcome", "", "only entries with this outcome (MOVED, UNSORTED, SIMULATED, ERROR)")
	cmd.MarkFlagsMutuallyExclusive("run", "last")
	return cmd
}
