package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// helpCmd creates a detailed help command
func helpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "help",
		Short: "Show detailed help and documentation",
		Long:  `Display complete documentation including all commands, flags, and examples.`,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			printMainBanner(out)

			fmt.Fprintf(out, "%s%sABOUT%s\n\n", colorBold, colorOrange, colorReset)
			fmt.Fprintf(out, "  ngenctl reads the CLI header of .NET Framework assemblies to find the\n")
			fmt.Fprintf(out, "  runtime and platform they target, and drives the matching ngen.exe to\n")
			fmt.Fprintf(out, "  install or remove their native images in parallel.\n\n")

			fmt.Fprintf(out, "%s%sCOMMANDS%s\n\n", colorBold, colorOrange, colorReset)

			fmt.Fprintf(out, "  %sscan <path>%s            List assemblies and their native image status\n", colorBold, colorReset)
			fmt.Fprintf(out, "  %sinspect <file>...%s      Show CLI header details of single files\n", colorBold, colorReset)
			fmt.Fprintf(out, "  %sinstall <path>...%s      Generate native images\n", colorBold, colorReset)
			fmt.Fprintf(out, "  %suninstall <path>...%s    Remove native images\n", colorBold, colorReset)

			fmt.Fprintf(out, "\n%s%sSCAN FLAGS%s\n\n", colorBold, colorOrange, colorReset)

			fmt.Fprintf(out, "  %s-s, --subdirs%s        Include subdirectories\n", colorBold, colorReset)
			fmt.Fprintf(out, "  %s--path%s <dir>         Directory to scan instead of the positional argument\n", colorBold, colorReset)
			fmt.Fprintf(out, "  %s--no-verify%s          Do not query ngen for the native image status\n", colorBold, colorReset)

			fmt.Fprintf(out, "\n%s%sINSTALL / UNINSTALL FLAGS%s\n\n", colorBold, colorOrange, colorReset)

			fmt.Fprintf(out, "  %s-s, --subdirs%s        Include subdirectories of directory arguments\n", colorBold, colorReset)

			fmt.Fprintf(out, "\n%s%sREPORT FLAGS%s\n\n", colorBold, colorOrange, colorReset)

			fmt.Fprintf(out, "  %s-r, --report%s <fmt>   Report format: %stext%s, %sjson%s, %syaml%s, %smd%s\n",
				colorBold, colorReset, colorCyan, colorReset, colorCyan, colorReset, colorCyan, colorReset, colorCyan, colorReset)
			fmt.Fprintf(out, "  %s-o, --output%s <file>  Output file path\n", colorBold, colorReset)

			fmt.Fprintf(out, "\n%s%sGLOBAL FLAGS%s\n\n", colorBold, colorOrange, colorReset)

			fmt.Fprintf(out, "  %s-v, --verbose%s        Enable verbose logging\n", colorBold, colorReset)
			fmt.Fprintf(out, "  %s--config%s <file>      YAML config file (env: NGENCTL_*)\n", colorBold, colorReset)
			fmt.Fprintf(out, "  %s--workers%s <n>        Parallel ngen invocations (default: CPU cores)\n", colorBold, colorReset)
			fmt.Fprintf(out, "  %s-h, --help%s           Show help for any command\n", colorBold, colorReset)
			fmt.Fprintf(out, "  %s--version%s            Show version\n", colorBold, colorReset)

			fmt.Fprintf(out, "\n%s%sEXAMPLES%s\n\n", colorBold, colorOrange, colorReset)

			fmt.Fprintf(out, "  %s# Status of every assembly under a directory tree%s\n", colorGray, colorReset)
			fmt.Fprintf(out, "  ngenctl scan -s \"C:\\Program Files\\MyApp\"\n\n")

			fmt.Fprintf(out, "  %s# Pre-compile an application%s\n", colorGray, colorReset)
			fmt.Fprintf(out, "  ngenctl install -s \"C:\\Program Files\\MyApp\"\n\n")

			fmt.Fprintf(out, "  %s# Remove native images of two assemblies%s\n", colorGray, colorReset)
			fmt.Fprintf(out, "  ngenctl uninstall App.exe Lib.dll\n\n")

			fmt.Fprintf(out, "  %s# JSON report%s\n", colorGray, colorReset)
			fmt.Fprintf(out, "  ngenctl scan --report=json --output=report.json C:\\MyApp\n\n")

			fmt.Fprintf(out, "  %sInstall and uninstall need an elevated prompt. Press Ctrl+C to stop%s\n", colorGray, colorReset)
			fmt.Fprintf(out, "  %safter the files already in progress.%s\n\n", colorGray, colorReset)
		},
	}
}
