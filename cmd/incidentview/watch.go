package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/fsnotify/fsnotify"
	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"

	"github.com/sznuper/incidentview/internal/runner"
	"github.com/sznuper/incidentview/internal/snapshot"
)

var watchCmd = &cobra.Command{
	Use:   "watch [source]",
	Short: "Re-render a snapshot whenever it changes",
	Long: "Renders the snapshot, then renders it again when a file:// source is written and on " +
		"every tick of the options.refresh schedule (cron syntax or @every <duration>).",
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		logger := setupLogger(cfg.Options.LogLevel)

		tmpl, _ := cmd.Flags().GetString("template")
		if tmpl == "" {
			tmpl = cfg.Template
		}
		uri := cfg.Options.Snapshot
		if len(args) == 1 {
			uri = args[0]
		}
		if uri == "-" {
			return fmt.Errorf("watch cannot read from stdin")
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		w := &watcher{
			runner:  runner.New(cfg, logger),
			printer: newPrinter(os.Stdout, cfg.Options.Format, useColor(os.Stdout, cfg.Options.Color)),
			logger:  logger,
			uri:     uri,
			tmpl:    tmpl,
		}
		return w.run(ctx, cfg.Options.Refresh, cfg.Options.SnapshotsDir)
	},
}

func init() {
	watchCmd.Flags().String("template", "", "output template (overrides the config template)")
	rootCmd.AddCommand(watchCmd)
}

type watcher struct {
	runner  *runner.Runner
	printer *printer
	logger  *slog.Logger
	uri     string
	tmpl    string
}

// run renders once, then on every trigger until ctx is done. Renders are
// serialised through the loop goroutine.
func (w *watcher) run(ctx context.Context, refresh, dir string) error {
	triggers := make(chan string, 1)
	fire := func(reason string) {
		select {
		case triggers <- reason:
		default:
		}
	}

	if refresh != "" {
		c := cron.New()
		if _, err := c.AddFunc(refresh, func() { fire("refresh") }); err != nil {
			return fmt.Errorf("invalid refresh schedule %q: %w", refresh, err)
		}
		c.Start()
		defer c.Stop()
	}

	var events <-chan fsnotify.Event
	var errs <-chan error
	if src, err := snapshot.Resolve(w.uri, dir); err == nil && src.Scheme == snapshot.SchemeFile {
		fw, err := fsnotify.NewWatcher()
		if err != nil {
			return fmt.Errorf("creating file watcher: %w", err)
		}
		defer func() { _ = fw.Close() }()
		// Watch the directory so editors that replace the file are seen.
		if err := fw.Add(filepath.Dir(src.Path)); err != nil {
			return fmt.Errorf("watching %s: %w", src.Path, err)
		}
		events, errs = fw.Events, fw.Errors
		w.logger.Info("watching snapshot file", "path", src.Path)

		go func() {
			for {
				select {
				case ev, ok := <-events:
					if !ok {
						return
					}
					if filepath.Clean(ev.Name) == filepath.Clean(src.Path) && ev.Op&(fsnotify.Write|fsnotify.Create) != 0 {
						fire("write")
					}
				case err, ok := <-errs:
					if !ok {
						return
					}
					w.logger.Warn("file watcher", "error", err)
				case <-ctx.Done():
					return
				}
			}
		}()
	}

	w.render(ctx, "start")
	for {
		select {
		case reason := <-triggers:
			w.render(ctx, reason)
		case <-ctx.Done():
			return nil
		}
	}
}

func (w *watcher) render(ctx context.Context, reason string) {
	w.logger.Debug("rendering", "reason", reason)
	res := w.runner.RunSource(ctx, w.uri, w.tmpl)
	if err := w.printer.Print(res); err != nil {
		w.logger.Error("printing result", "error", err)
	}
}
