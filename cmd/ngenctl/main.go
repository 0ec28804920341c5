package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

// ANSI colors
const (
	colorReset  = "\033[0m"
	colorBold   = "\033[1m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorOrange = "\033[38;5;208m"
	colorYellow = "\033[38;5;220m"
	colorGray   = "\033[38;5;245m"
	colorCyan   = "\033[36m"
)

var version = "0.1.0"

// globalOptions holds the persistent flags shared by every command
type globalOptions struct {
	verbose    bool
	configFile string
	workers    int
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:   "ngenctl",
		Short: "ngenctl - native image manager for .NET Framework assemblies",
		Long: `Inspect managed assemblies and install or remove their native images
with the .NET Framework native image generator (ngen.exe).`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Run: func(cmd *cobra.Command, args []string) {
			printMainBanner(cmd.OutOrStdout())
			cmd.Help()
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&opts.configFile, "config", "", "Config file (YAML)")
	rootCmd.PersistentFlags().IntVar(&opts.workers, "workers", 0, "Number of parallel ngen invocations (default: CPU cores)")

	// Disable built-in help command
	rootCmd.SetHelpCommand(&cobra.Command{Hidden: true})

	rootCmd.AddCommand(scanCmd(opts))
	rootCmd.AddCommand(inspectCmd(opts))
	rootCmd.AddCommand(batchCmd(opts, actionInstall))
	rootCmd.AddCommand(batchCmd(opts, actionUninstall))
	rootCmd.AddCommand(helpCmd())

	return rootCmd
}

// printMainBanner prints the main banner
func printMainBanner(w io.Writer) {
	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s%sngenctl%s %sv%s%s\n", colorBold, colorOrange, colorReset, colorGray, version, colorReset)
	fmt.Fprintf(w, "%sNative image manager for .NET Framework assemblies%s\n", colorGray, colorReset)
	fmt.Fprintln(w)
}

// printBanner prints the startup banner for a run
func printBanner(w io.Writer, action string, paths []string) {
	printMainBanner(w)
	label := action + ":"
	for _, path := range paths {
		fmt.Fprintf(w, "  %s%-10s%s %s\n", colorGray, label, colorReset, path)
		label = ""
	}
	fmt.Fprintln(w)
}
