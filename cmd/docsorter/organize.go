package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/joseph-ayodele/docsorter/internal/filing"
)

func organizeCmd() *cobra.Command {
	var (
		dryRun bool
		noBar  bool
	)
	cmd := &cobra.Command{
		Use:   "organize <input-dir> <output-dir>",
		Short: "Classify and move every file in input-dir into output-dir",
		Long: `Classify every regular file directly inside input-dir and move it into
output-dir. PDFs are filed under <category>/<year>/<month>, unidentified PDFs
under Unsorted/ and any other file under Λοιπά/. With --dry-run nothing is moved;
the would-be destinations are printed instead.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx, false)
			if err != nil {
				return err
			}
			defer a.Close()

			var failure error
			p := newPresenter(os.Stdout, noBar)
			cb := p.callbacks()
			onFailed := cb.Failed
			cb.Failed = func(err error) {
				failure = err
				onFailed(err)
			}
			filing.Pump(a.engine.Start(ctx, filing.Request{
				InputDir:  args[0],
				OutputDir: args[1],
				DryRun:    dryRun,
			}), cb)
			if failure != nil {
				return fmt.Errorf("organize: %w", failure)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "print destinations without moving anything")
	cmd.Flags().BoolVar(&noBar, "no-progress", false, "disable the progress bar")
	addClassifyFlags(cmd)
	return cmd
}
