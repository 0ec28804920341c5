package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/IvanShishkin/ngenctl/internal/config"
	"github.com/IvanShishkin/ngenctl/internal/core"
	"github.com/IvanShishkin/ngenctl/internal/ngen"
	"github.com/IvanShishkin/ngenctl/internal/report"
)

// run holds everything one command invocation needs
type run struct {
	cfg    *config.Config
	logger *zap.Logger
	engine *core.Engine
	obs    *consoleObserver
	out    io.Writer
	start  time.Time
}

// newRun sets up logging, configuration and the engine. configure applies
// command flags on top of the loaded configuration before it is validated.
func newRun(cmd *cobra.Command, opts *globalOptions, configure func(cfg *config.Config)) (*run, error) {
	logger, err := newLogger(opts.verbose)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		return nil, err
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		logger.Error("Failed to load config", zap.Error(err))
		return nil, err
	}
	if configure != nil {
		configure(cfg)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	out := cmd.OutOrStdout()
	obs := newConsoleObserver(out)

	return &run{
		cfg:    cfg,
		logger: logger,
		engine: newEngine(cfg, logger, obs),
		obs:    obs,
		out:    out,
		start:  time.Now(),
	}, nil
}

func (r *run) close() {
	_ = r.logger.Sync()
}

// writeReport snapshots the tracked files and hands them to the report generator
func (r *run) writeReport(ctx context.Context, action, jobID string, paths []string) error {
	rep := report.Build(action, jobID, paths, r.engine.Items(), r.start, time.Now())
	rep.Stopped = r.obs.wasStopped()
	for _, err := range r.obs.errors() {
		rep.AddError(err)
	}
	rep.Host = report.CollectHost(ctx, r.cfg.WorkerCount(), ngen.IsElevated())

	gen, err := report.NewGenerator(r.cfg, r.logger)
	if err != nil {
		return err
	}
	gen.SetOutput(r.out)

	reportPath, err := gen.Generate(rep)
	if err != nil {
		r.logger.Error("Failed to generate report", zap.Error(err))
		return err
	}
	if reportPath != "" {
		fmt.Fprintf(r.out, "  %sReport:%s    %s%s%s\n\n", colorGray, colorReset, colorOrange, reportPath, colorReset)
	}
	return nil
}
