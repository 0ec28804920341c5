package main

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/IvanShishkin/ngenctl/internal/config"
	"github.com/IvanShishkin/ngenctl/internal/core"
	"github.com/IvanShishkin/ngenctl/internal/ngen"
)

// newLogger builds a development logger when verbose, otherwise a silent
// JSON logger that only reports errors
func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.Config{
		Level:            zap.NewAtomicLevelAt(zapcore.ErrorLevel),
		Encoding:         "json",
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
		EncoderConfig:    zap.NewProductionEncoderConfig(),
	}
	return cfg.Build()
}

// loadConfig loads the configuration and applies the global flag overrides
func loadConfig(opts *globalOptions) (*config.Config, error) {
	cfg, err := config.LoadConfig(opts.configFile)
	if err != nil {
		return nil, err
	}
	if opts.workers > 0 {
		cfg.Workers = opts.workers
	}
	return cfg, nil
}

// newEngine wires the ngen invoker into a batch engine
func newEngine(cfg *config.Config, logger *zap.Logger, obs core.Observer) *core.Engine {
	locator := ngen.NewLocator(ngen.DefaultRoots(cfg), cfg.ToolName)
	invoker := ngen.NewInvoker(locator, ngen.ExecRunner{}, logger)

	engine := core.NewEngine(cfg, invoker, logger)
	engine.SetObserver(obs)
	return engine
}

// stopOnSignal stops the engine on SIGINT or SIGTERM until the returned
// function is called
func stopOnSignal(engine *core.Engine, logger *zap.Logger) func() {
	sigs := make(chan os.Signal, 1)
	done := make(chan struct{})
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)

	go func() {
		select {
		case sig := <-sigs:
			logger.Info("Received signal, stopping", zap.String("signal", sig.String()))
			engine.Stop()
		case <-done:
		}
	}()

	return func() {
		signal.Stop(sigs)
		close(done)
	}
}

// validateFlags validates CLI flag values
func validateFlags(reportFormat string, workers int) error {
	if reportFormat != "" {
		validFormats := []string{"text", "txt", "json", "yaml", "yml", "md", "markdown"}
		if !contains(validFormats, reportFormat) {
			return fmt.Errorf("--report must be one of: %s (got: %s)", strings.Join(validFormats, ", "), reportFormat)
		}
	}

	if workers < 0 {
		return fmt.Errorf("--workers must not be negative (got: %d)", workers)
	}

	return nil
}

// contains checks if a slice contains a string
func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
