package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"mercator-hq/provconf/pkg/cli"
	"mercator-hq/provconf/pkg/config"
	"mercator-hq/provconf/pkg/format"
	"mercator-hq/provconf/pkg/provconf"
	"mercator-hq/provconf/pkg/telemetry/logging"
	"mercator-hq/provconf/pkg/telemetry/metrics"
)

// rootOptions holds the persistent flags shared by every subcommand.
type rootOptions struct {
	configFile string
	logLevel   string
	mode       string
	maxErrors  int
	output     string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "provconf",
		Short: "Validate LLM provider declarations and configuration values",
		Long: `provconf checks the declarations that describe LLM providers and the
configuration values users enter for them.

It validates:
  - providers documents (JSON, JSONC or YAML) against the document schema
  - configuration values against the fields a provider declares
  - the built-in provider catalog

Errors are reported in development mode (full detail) or production mode
(values hidden, list truncated).`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&opts.configFile, "config", "c", config.DefaultPath, "config file path")
	flags.StringVar(&opts.logLevel, "log-level", "", "override log level (debug, info, warn, error)")
	flags.StringVar(&opts.mode, "mode", "", "error detail: development or production (default from config)")
	flags.IntVar(&opts.maxErrors, "max-errors", 0, "maximum errors reported per document (default from config)")
	flags.StringVarP(&opts.output, "format", "o", "text", "output format: text, json")

	cmd.AddCommand(
		newValidateCmd(opts),
		newValuesCmd(opts),
		newInspectCmd(opts),
		newCatalogCmd(opts),
		newVersionCmd(),
	)
	return cmd
}

// Execute runs the root command and exits with the status matching its
// outcome.
func Execute() {
	ctx, stop := cli.SetupSignalHandler(context.Background())
	err := newRootCmd().ExecuteContext(ctx)
	stop()

	var invalid *cli.InvalidError
	if err != nil && !errors.As(err, &invalid) {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	os.Exit(cli.ExitCode(err))
}

// app is the wiring shared by the commands that validate.
type app struct {
	cfg     *config.Config
	logger  *logging.Logger
	metrics *metrics.Collector
	engine  *provconf.Engine
	output  cli.Formatter
	ctx     context.Context
}

// newApp loads the configuration, applies flag overrides and builds the
// logger, metrics collector and engine. Each invocation gets its own run id.
func newApp(cmd *cobra.Command, opts *rootOptions) (*app, error) {
	output, err := cli.ParseOutputFormat(opts.output)
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(opts.configFile, !cmd.Flags().Changed("config"))
	if err != nil {
		return nil, cli.NewConfigError(opts.configFile, err.Error())
	}
	if err := applyFlagOverrides(cfg, opts); err != nil {
		return nil, err
	}

	mode, err := format.ParseMode(cfg.Format.Mode)
	if err != nil {
		return nil, cli.NewConfigError("mode", err.Error())
	}

	logger, err := logging.NewFromConfig(cfg.Telemetry.Logging, cmd.ErrOrStderr())
	if err != nil {
		return nil, cli.NewConfigError("telemetry.logging", err.Error())
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = logging.WithRunID(ctx, uuid.NewString())
	logger = logger.WithContext(ctx)

	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, nil)
	engine := provconf.New(provconf.Options{
		CurrentVersion: cfg.Schema.CurrentVersion,
		Formatter:      format.New(format.Config{Mode: mode, MaxErrorCount: cfg.Format.MaxErrorCount}),
		Logger:         logger.Slog(),
		Metrics:        collector,
	})

	logger.Debug("configuration loaded",
		"config", opts.configFile,
		"mode", mode,
		"max_errors", cfg.Format.MaxErrorCount,
	)

	return &app{
		cfg:     cfg,
		logger:  logger,
		metrics: collector,
		engine:  engine,
		output:  cli.NewFormatter(output),
		ctx:     ctx,
	}, nil
}

func applyFlagOverrides(cfg *config.Config, opts *rootOptions) error {
	if opts.mode != "" {
		if _, err := format.ParseMode(opts.mode); err != nil {
			return cli.NewConfigError("mode", err.Error())
		}
		cfg.Format.Mode = opts.mode
	}
	if opts.maxErrors < 0 {
		return cli.NewConfigError("max-errors", "must be at least 1")
	}
	if opts.maxErrors > 0 {
		cfg.Format.MaxErrorCount = opts.maxErrors
	}
	if opts.logLevel != "" {
		if _, err := logging.ParseLevel(opts.logLevel); err != nil {
			return cli.NewConfigError("log-level", err.Error())
		}
		cfg.Telemetry.Logging.Level = opts.logLevel
	}
	return nil
}

// writeMetrics writes the textfile export when a path is configured.
func (a *app) writeMetrics(path string) {
	if path == "" {
		path = a.cfg.Telemetry.Metrics.TextfilePath
	}
	if path == "" || !a.metrics.Enabled() {
		return
	}
	if err := a.metrics.WriteTextfile(path); err != nil {
		a.logger.Warn("failed to write metrics textfile", "path", path, "error", err)
	}
}
