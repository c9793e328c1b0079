package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"

	"github.com/spf13/cobra"

	"mercator-hq/provconf/pkg/cli"
	"mercator-hq/provconf/pkg/provconf"
	"mercator-hq/provconf/pkg/server"
	"mercator-hq/provconf/pkg/source"
	"mercator-hq/provconf/pkg/telemetry/health"
)

type validateOptions struct {
	watch       bool
	metricsFile string
	progress    bool
}

func newValidateCmd(root *rootOptions) *cobra.Command {
	opts := &validateOptions{}

	cmd := &cobra.Command{
		Use:   "validate <path>...",
		Short: "Validate providers documents",
		Long: `Validate one or more providers documents.

A path can be a file (.json, .jsonc, .yaml, .yml) or a directory, in which
case every supported file below it is validated in lexical order.

Examples:
  # Validate one document
  provconf validate providers.json

  # Validate a directory with full error detail
  provconf validate ./providers --mode development

  # Machine readable output
  provconf validate providers.yaml --format json

  # Re-validate on change and serve metrics
  provconf validate providers.yaml --watch`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, root, opts, args)
		},
	}

	cmd.Flags().BoolVarP(&opts.watch, "watch", "w", false, "re-validate whenever the document changes")
	cmd.Flags().StringVar(&opts.metricsFile, "metrics-file", "", "write metrics in Prometheus text format to this file")
	cmd.Flags().BoolVar(&opts.progress, "progress", false, "show progress on stderr")
	return cmd
}

// validateReport is the outcome of one validate run.
type validateReport struct {
	Valid bool                  `json:"valid"`
	Files []provconf.FileReport `json:"files"`
}

func (r validateReport) errorCount() int {
	n := 0
	for _, f := range r.Files {
		n += len(f.Errors)
	}
	return n
}

// RenderText writes one block per file.
func (r validateReport) RenderText(w io.Writer) error {
	for _, f := range r.Files {
		if err := f.RenderText(w); err != nil {
			return err
		}
	}
	if len(r.Files) > 1 {
		_, err := fmt.Fprintf(w, "\n%d file(s) checked, %d error(s)\n", len(r.Files), r.errorCount())
		return err
	}
	return nil
}

func runValidate(cmd *cobra.Command, root *rootOptions, opts *validateOptions, args []string) error {
	if opts.watch && len(args) != 1 {
		return cli.NewConfigError("watch", "--watch takes exactly one path")
	}

	a, err := newApp(cmd, root)
	if err != nil {
		return err
	}

	paths, err := collectPaths(a.ctx, a, args)
	if err != nil {
		return cli.NewCommandError("validate", err)
	}

	var progress cli.ProgressReporter = cli.NopProgress{}
	if opts.progress && len(paths) > 1 {
		progress = cli.NewProgressReporter(cmd.ErrOrStderr())
	}

	report := checkPaths(a, paths, progress)
	if err := a.output.FormatTo(cmd.OutOrStdout(), report); err != nil {
		return cli.NewCommandError("validate", err)
	}
	a.writeMetrics(opts.metricsFile)

	if opts.watch {
		return watch(cmd, a, args[0], opts.metricsFile, report)
	}
	if !report.Valid {
		return &cli.InvalidError{Count: report.errorCount()}
	}
	return nil
}

// collectPaths expands every argument into the document files it names.
func collectPaths(ctx context.Context, a *app, args []string) ([]string, error) {
	var paths []string
	for _, arg := range args {
		found, err := source.NewFileSource(arg, a.logger.Slog()).Paths(ctx)
		if errors.Is(err, fs.ErrNotExist) {
			// Reported as a read error of the document itself.
			paths = append(paths, arg)
			continue
		}
		if err != nil {
			return nil, err
		}
		if len(found) == 0 {
			a.logger.Warn("no documents found", "path", arg)
		}
		paths = append(paths, found...)
	}
	return paths, nil
}

func checkPaths(a *app, paths []string, progress cli.ProgressReporter) validateReport {
	report := validateReport{Valid: true, Files: make([]provconf.FileReport, 0, len(paths))}

	progress.Start(len(paths))
	for i, path := range paths {
		file := a.engine.CheckFile(path)
		a.logger.Info("document checked",
			"path", path,
			"valid", file.Valid,
			"errors", len(file.Errors),
			"duration_ms", file.Duration.Milliseconds(),
		)
		report.Files = append(report.Files, file)
		report.Valid = report.Valid && file.Valid
		progress.Update(i + 1)
	}
	progress.Finish()
	return report
}

// watch re-validates path on every change until the context is cancelled.
// When a metrics listen address is configured, metrics and health endpoints
// are served meanwhile; /ready fails while a watched document is invalid.
func watch(cmd *cobra.Command, a *app, path, metricsFile string, initial validateReport) error {
	watcher, err := source.NewWatcher(source.WatcherConfig{
		Path:             path,
		DebounceInterval: a.cfg.Watch.Debounce,
		SkipHidden:       a.cfg.Watch.SkipHidden,
	}, a.logger.Slog())
	if err != nil {
		return cli.NewCommandError("validate", err)
	}
	defer watcher.Stop()

	state := health.NewDocumentState()
	for _, f := range initial.Files {
		state.Set(f.Path, f.Valid, len(f.Errors))
	}

	if addr := a.cfg.Telemetry.Metrics.ListenAddress; addr != "" {
		checker := health.New(0)
		checker.RegisterCheck("documents", state.Check)

		var metricsHandler http.Handler
		if a.metrics.Enabled() {
			metricsHandler = a.metrics.Handler()
		}
		srv := server.New(server.Config{
			Address:     addr,
			MetricsPath: a.cfg.Telemetry.Metrics.Path,
			Version: health.VersionInfo{
				Version:       Version,
				Commit:        GitCommit,
				BuildTime:     BuildDate,
				SchemaVersion: a.engine.CurrentVersion(),
			},
		}, metricsHandler, checker, a.logger.Slog())

		go func() {
			if err := srv.Start(a.ctx); err != nil {
				a.logger.Error("status server failed", "error", err)
			}
		}()
	}

	out := cmd.OutOrStdout()
	return watcher.Watch(a.ctx, func(changed string) error {
		if _, err := source.FormatFor(changed); err != nil {
			return nil
		}
		file := a.engine.CheckFile(changed)
		state.Set(file.Path, file.Valid, len(file.Errors))
		a.metrics.RecordReload(file.Valid)
		a.logger.Info("document revalidated", "path", changed, "valid", file.Valid)

		defer a.writeMetrics(metricsFile)
		return a.output.FormatTo(out, validateReport{Valid: file.Valid, Files: []provconf.FileReport{file}})
	})
}
