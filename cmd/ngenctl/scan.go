package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/IvanShishkin/ngenctl/internal/config"
)

// scanCmd creates the scan command
func scanCmd(opts *globalOptions) *cobra.Command {
	var (
		pathFlag     string
		subdirs      bool
		noVerify     bool
		reportFormat string
		outputFile   string
	)

	cmd := &cobra.Command{
		Use:   "scan [path]",
		Short: "Find managed assemblies and show their native image status",
		Long: `List the managed assemblies in a directory with their architecture, runtime
version and native image status.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := pathFlag
			if len(args) == 1 {
				path = args[0]
			}
			if path == "" {
				return fmt.Errorf("a path is required")
			}

			if err := validateFlags(reportFormat, opts.workers); err != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "\n  %s✗ Invalid parameter:%s %s\n\n", colorRed, colorReset, err.Error())
				return err
			}

			r, err := newRun(cmd, opts, func(cfg *config.Config) {
				if noVerify {
					cfg.VerifyOnAdd = false
				}
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

			printBanner(r.out, "Scanning", []string{path})

			stop := stopOnSignal(r.engine, r.logger)
			defer stop()

			r.obs.setPhase("Checking:")
			task := r.engine.AddDirectory(path, subdirs)
			if err := task.Wait(); err != nil {
				r.logger.Error("Scan failed", zap.Error(err))
				return err
			}

			return r.writeReport(cmd.Context(), "scan", task.ID(), []string{path})
		},
	}

	cmd.Flags().StringVar(&pathFlag, "path", "", "Directory to scan (alternative to the positional argument)")
	cmd.Flags().BoolVarP(&subdirs, "subdirs", "s", false, "Include subdirectories")
	cmd.Flags().BoolVar(&noVerify, "no-verify", false, "Do not query the native image status")
	cmd.Flags().StringVarP(&reportFormat, "report", "r", "", "Report format: text, json, yaml, md (default: console output)")
	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file path")

	return cmd
}
