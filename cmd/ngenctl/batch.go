package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/IvanShishkin/ngenctl/internal/config"
	"github.com/IvanShishkin/ngenctl/internal/core"
	"github.com/IvanShishkin/ngenctl/internal/filesystem"
	"github.com/IvanShishkin/ngenctl/internal/ngen"
)

const (
	actionInstall   = "install"
	actionUninstall = "uninstall"
)

// batchCmd creates the install or uninstall command
func batchCmd(opts *globalOptions, action string) *cobra.Command {
	var (
		subdirs      bool
		reportFormat string
		outputFile   string
	)

	short := "Generate native images for assemblies"
	phase := "Installing:"
	if action == actionUninstall {
		short = "Remove native images of assemblies"
		phase = "Removing:"
	}

	cmd := &cobra.Command{
		Use:   action + " <path>...",
		Short: short,
		Long: fmt.Sprintf(`Run ngen %s for every managed assembly among the given files and
directories. Assemblies already in the requested state are left alone.`, action),
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFlags(reportFormat, opts.workers); err != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "\n  %s✗ Invalid parameter:%s %s\n\n", colorRed, colorReset, err.Error())
				return err
			}

			files, dirs, err := splitTargets(args)
			if err != nil {
				return err
			}

			r, err := newRun(cmd, opts, func(cfg *config.Config) {
				// The batch checks every file itself
				cfg.VerifyOnAdd = false
				if reportFormat != "" {
					cfg.ReportFormat = reportFormat
				}
				if outputFile != "" {
					cfg.OutputFile = outputFile
				}
			})
			if err != nil {
				return err
			}
			defer r.close()

			printBanner(r.out, capitalize(action), args)

			if !ngen.IsElevated() {
				fmt.Fprintf(r.out, "  %s⚠ Not running elevated; ngen will likely refuse to %s.%s\n\n", colorYellow, action, colorReset)
			}

			lock, err := filesystem.AcquireLock(r.cfg.LockFile)
			if err != nil {
				if errors.Is(err, filesystem.ErrLocked) {
					return fmt.Errorf("another ngenctl install or uninstall is running: %w", err)
				}
				return err
			}
			defer lock.Release()

			stop := stopOnSignal(r.engine, r.logger)
			defer stop()

			for _, dir := range dirs {
				if err := r.engine.AddDirectory(dir, subdirs).Wait(); err != nil {
					return err
				}
			}
			if len(files) > 0 {
				if err := r.engine.AddFiles(files).Wait(); err != nil {
					return err
				}
			}

			var task *core.Task
			if !r.obs.wasStopped() {
				r.obs.setPhase(phase)
				if action == actionInstall {
					task = r.engine.Install()
				} else {
					task = r.engine.Uninstall()
				}
				if err := task.Wait(); err != nil {
					r.logger.Error("Batch failed", zap.Error(err))
					return err
				}
			}

			jobID := ""
			if task != nil {
				jobID = task.ID()
			}
			if err := r.writeReport(cmd.Context(), action, jobID, args); err != nil {
				return err
			}

			return summarizeErrors(r, action)
		},
	}

	cmd.Flags().BoolVarP(&subdirs, "subdirs", "s", false, "Include subdirectories of directory arguments")
	cmd.Flags().StringVarP(&reportFormat, "report", "r", "", "Report format: text, json, yaml, md (default: console output)")
	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file path")

	return cmd
}

// splitTargets separates file and directory arguments
func splitTargets(paths []string) (files, dirs []string, err error) {
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid path %s: %w", path, err)
		}
		if info.IsDir() {
			dirs = append(dirs, path)
		} else {
			files = append(files, path)
		}
	}
	return files, dirs, nil
}

// summarizeErrors turns reported errors into the command result
func summarizeErrors(r *run, action string) error {
	errs := r.obs.errors()
	if len(errs) == 0 {
		return nil
	}

	for _, err := range errs {
		if errors.Is(err, ngen.ErrPermissionDenied) {
			fmt.Fprintf(r.out, "  %sTip:%s re-run from an elevated prompt to %s native images\n\n", colorGray, colorReset, action)
			break
		}
	}
	return fmt.Errorf("%s finished with %d error(s)", action, len(errs))
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
