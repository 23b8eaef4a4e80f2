package main

import (
	"context"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/joseph-ayodele/docsorter/internal/async"
	"github.com/joseph-ayodele/docsorter/internal/filing"
	"github.com/joseph-ayodele/docsorter/internal/ingest"
	"github.com/joseph-ayodele/docsorter/internal/server"
)

func watchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch <input-dir> <output-dir>",
		Short: "Organize input-dir every time new files land in it",
		Long: `Watch input-dir and run an organize pass after each burst of new files
(once the folder has been quiet for --debounce). Files already present are
filed on start. With --metrics-addr an HTTP listener serves /metrics, /healthz
and /status.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd.Context(), args[0], args[1])
		},
	}
	cmd.Flags().Duration("debounce", 2*time.Second, "quiet period before a pass starts")
	cmd.Flags().String("metrics-addr", "", "listen address for /metrics, /healthz and /status (empty disables)")
	addClassifyFlags(cmd)
	return cmd
}

func runWatch(ctx context.Context, inputDir, outputDir string) error {
	a, err := newApp(ctx, cfg.Metrics.Addr != "")
	if err != nil {
		return err
	}
	defer a.Close()

	var srv *server.Server
	if cfg.Metrics.Addr != "" {
		var health server.Pinger
		if a.journal != nil {
			health = a.journal
		}
		srv = server.New(cfg.Metrics.Addr, a.metrics.Handler(), health, logger)
	}

	p := newPresenter(os.Stdout, true)
	queue := async.NewPassQueue(func(ctx context.Context, job async.Job) {
		logger.Info("organize pass triggered", "trigger", job.Trigger, "paths", len(job.Paths), "trace_id", job.TraceID)
		if srv != nil {
			srv.PassStarted()
		}
		cb := p.callbacks()
		cb.Done = func(s filing.Summary) {
			if s.Total > 0 {
				p.done(s)
			}
			if srv != nil {
				srv.PassFinished(s)
			}
		}
		filing.Pump(a.engine.Start(ctx, filing.Request{InputDir: inputDir, OutputDir: outputDir}), cb)
	}, logger)
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		queue.Shutdown(shutdownCtx)
	}()

	batches, errs, err := ingest.StartWatcher(ctx, ingest.WatchConfig{
		Dir:         inputDir,
		InitialScan: true,
		Debounce:    cfg.Watch.Debounce,
	}, logger)
	if err != nil {
		return err
	}
	logger.Info("watching for new documents", "input_dir", inputDir, "output_dir", outputDir, "debounce", cfg.Watch.Debounce)

	g, gctx := errgroup.WithContext(ctx)
	if srv != nil {
		g.Go(func() error { return srv.Run(gctx) })
	}
	g.Go(func() error {
		for {
			select {
			case <-gctx.Done():
				return nil
			case batch, ok := <-batches:
				if !ok {
					return nil
				}
				if err := queue.Enqueue(gctx, async.Job{Trigger: "fsnotify", Paths: batch}); err != nil {
					return err
				}
			case err, ok := <-errs:
				if !ok {
					errs = nil
					continue
				}
				logger.Warn("watch error", "error", err)
			}
		}
	})
	return g.Wait()
}
