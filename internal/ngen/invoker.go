// Package ngen drives the .NET native image generator.
package ngen

import (
	"fmt"

	"github.com/IvanShishkin/ngenctl/pkg/models"
	"go.uber.org/zap"
)

// Action is an ngen subcommand
type Action string

const (
	ActionDisplay   Action = "display"
	ActionInstall   Action = "install"
	ActionUninstall Action = "uninstall"
)

const noLogo = "/nologo"

// Invoker checks, installs and removes native images for assemblies
type Invoker struct {
	locator *Locator
	runner  Runner
	logger  *zap.Logger
}

// NewInvoker creates a new invoker
func NewInvoker(locator *Locator, runner Runner, logger *zap.Logger) *Invoker {
	return &Invoker{
		locator: locator,
		runner:  runner,
		logger:  logger,
	}
}

// Check reports whether a native image is installed for the assembly
func (i *Invoker) Check(asm *models.Assembly) (bool, error) {
	return i.run(asm, ActionDisplay)
}

// Install generates the native image unless one is already installed
func (i *Invoker) Install(asm *models.Assembly) (bool, error) {
	installed, err := i.Check(asm)
	if err != nil {
		return false, err
	}
	if installed {
		return true, nil
	}
	return i.run(asm, ActionInstall)
}

// Uninstall removes the native image unless none is installed
func (i *Invoker) Uninstall(asm *models.Assembly) (bool, error) {
	installed, err := i.Check(asm)
	if err != nil {
		return false, err
	}
	if !installed {
		return true, nil
	}
	return i.run(asm, ActionUninstall)
}

// run invokes the tool once and classifies its output
func (i *Invoker) run(asm *models.Assembly, action Action) (bool, error) {
	tool, err := i.locator.Locate(asm)
	if err != nil {
		return false, err
	}

	out, err := i.runner.Run(tool, string(action), asm.Path, noLogo)
	if err != nil {
		return false, err
	}

	ok, err := classifyOutput(out)
	if err != nil {
		return false, fmt.Errorf("ngen %s %s: %w", action, asm.Path, err)
	}

	i.logger.Debug("ngen finished",
		zap.String("action", string(action)),
		zap.String("path", asm.Path),
		zap.String("tool", tool),
		zap.Int("exit_code", out.ExitCode),
		zap.Bool("ok", ok))

	return ok, nil
}
