package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/IvanShishkin/ngenctl/internal/assembly"
	"github.com/IvanShishkin/ngenctl/internal/ngen"
	"github.com/IvanShishkin/ngenctl/pkg/models"
)

// inspectCmd creates the inspect command
func inspectCmd(opts *globalOptions) *cobra.Command {
	var status bool

	cmd := &cobra.Command{
		Use:   "inspect <file>...",
		Short: "Show the CLI header details of assemblies",
		Long:  `Read the PE and CLI headers of each file and print its architecture, runtime version and strong name flag.`,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			var invoker *ngen.Invoker
			if status {
				logger, err := newLogger(opts.verbose)
				if err != nil {
					return err
				}
				defer logger.Sync()

				cfg, err := loadConfig(opts)
				if err != nil {
					return err
				}
				locator := ngen.NewLocator(ngen.DefaultRoots(cfg), cfg.ToolName)
				invoker = ngen.NewInvoker(locator, ngen.ExecRunner{}, logger)
			}

			failed := 0
			for _, path := range args {
				asm, err := assembly.Read(path)
				if errors.Is(err, assembly.ErrNotManaged) {
					fmt.Fprintf(out, "\n  %s%s%s\n", colorBold, path, colorReset)
					fmt.Fprintf(out, "    %snot a managed assembly%s\n", colorGray, colorReset)
					continue
				}
				if err != nil {
					fmt.Fprintf(out, "\n  %s%s%s\n", colorBold, path, colorReset)
					fmt.Fprintf(out, "    %s✗ %v%s\n", colorRed, err, colorReset)
					failed++
					continue
				}

				printAssembly(cmd, asm)

				if invoker != nil {
					installed, err := invoker.Check(asm)
					switch {
					case err != nil:
						fmt.Fprintf(out, "    %sNative:%s       %s✗ %v%s\n", colorGray, colorReset, colorRed, err, colorReset)
						failed++
					case installed:
						fmt.Fprintf(out, "    %sNative:%s       %sinstalled%s\n", colorGray, colorReset, colorGreen, colorReset)
					default:
						fmt.Fprintf(out, "    %sNative:%s       not installed\n", colorGray, colorReset)
					}
				}
			}
			fmt.Fprintln(out)

			if failed > 0 {
				return fmt.Errorf("%d of %d files could not be inspected", failed, len(args))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&status, "status", false, "Also query the native image status with ngen")

	return cmd
}

func printAssembly(cmd *cobra.Command, asm *models.Assembly) {
	out := cmd.OutOrStdout()
	strong := "no"
	if asm.StrongName {
		strong = "yes"
	}

	fmt.Fprintf(out, "\n  %s%s%s\n", colorBold, asm.Name, colorReset)
	fmt.Fprintf(out, "    %sPath:%s         %s\n", colorGray, colorReset, asm.Path)
	fmt.Fprintf(out, "    %sArchitecture:%s %s%s%s\n", colorGray, colorReset, colorCyan, asm.Architecture, colorReset)
	fmt.Fprintf(out, "    %sRuntime:%s      %s\n", colorGray, colorReset, asm.RuntimeVersion)
	fmt.Fprintf(out, "    %sStrong name:%s  %s\n", colorGray, colorReset, strong)
	fmt.Fprintf(out, "    %sLinked:%s       %s\n", colorGray, colorReset, asm.LinkerTime.Format("2006-01-02 15:04:05"))
}
