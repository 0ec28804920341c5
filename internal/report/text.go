package report

import (
	"fmt"
	"os"
	"strings"

	"github.com/IvanShishkin/ngenctl/pkg/models"
)

// generateText generates a text report
func (g *Generator) generateText(report *models.JobReport, outputFile string) error {
	var sb strings.Builder

	// Header
	sb.WriteString("=" + strings.Repeat("=", 78) + "\n")
	sb.WriteString(fmt.Sprintf("  NGENCTL %s REPORT\n", strings.ToUpper(report.Action)))
	sb.WriteString("=" + strings.Repeat("=", 78) + "\n\n")

	// Summary
	sb.WriteString("SUMMARY\n")
	sb.WriteString(strings.Repeat("-", 79) + "\n")
	sb.WriteString(fmt.Sprintf("Job ID:           %s\n", report.JobID))
	sb.WriteString(fmt.Sprintf("Paths:            %s\n", strings.Join(report.Paths, ", ")))
	sb.WriteString(fmt.Sprintf("Start Time:       %s\n", report.StartTime.Format("2006-01-02 15:04:05")))
	sb.WriteString(fmt.Sprintf("End Time:         %s\n", report.EndTime.Format("2006-01-02 15:04:05")))
	sb.WriteString(fmt.Sprintf("Duration:         %s\n", FormatDuration(report.Duration)))
	sb.WriteString(fmt.Sprintf("Total Files:      %d\n", report.TotalItems))
	sb.WriteString(fmt.Sprintf("Stopped:          %t\n", report.Stopped))
	if len(report.RuntimeVersions) > 0 {
		sb.WriteString(fmt.Sprintf("Runtimes:         %s\n", strings.Join(report.RuntimeVersions, ", ")))
	}
	sb.WriteString("\n")

	if report.Host != nil {
		sb.WriteString("HOST\n")
		sb.WriteString(strings.Repeat("-", 79) + "\n")
		sb.WriteString(fmt.Sprintf("Hostname:         %s\n", report.Host.Hostname))
		sb.WriteString(fmt.Sprintf("Platform:         %s\n", report.Host.Platform))
		sb.WriteString(fmt.Sprintf("Kernel Arch:      %s\n", report.Host.KernelArch))
		sb.WriteString(fmt.Sprintf("Elevated:         %t\n", report.Host.Elevated))
		sb.WriteString(fmt.Sprintf("Workers:          %d\n", report.Host.Workers))
		sb.WriteString("\n")
	}

	if report.TotalItems > 0 {
		sb.WriteString("FILES BY STATUS\n")
		sb.WriteString(strings.Repeat("-", 79) + "\n")
		for _, status := range statusOrder {
			if n := report.ByStatus[status]; n > 0 {
				sb.WriteString(fmt.Sprintf("  %-12s: %d\n", strings.ToUpper(string(status)), n))
			}
		}
		sb.WriteString("\n")

		sb.WriteString("FILES\n")
		sb.WriteString(strings.Repeat("=", 79) + "\n\n")

		for i, item := range report.Items {
			sb.WriteString(fmt.Sprintf("[%d] %s\n", i+1, item.Name))
			sb.WriteString(strings.Repeat("-", 79) + "\n")
			sb.WriteString(fmt.Sprintf("File:         %s\n", item.Path))
			sb.WriteString(fmt.Sprintf("Status:       %s\n", strings.ToUpper(string(item.Status))))
			sb.WriteString(fmt.Sprintf("Architecture: %s\n", item.Architecture))
			sb.WriteString(fmt.Sprintf("Runtime:      %s\n", item.RuntimeVersion))
			sb.WriteString(fmt.Sprintf("Strong Name:  %t\n", item.StrongName))
			if !item.LinkerTime.IsZero() {
				sb.WriteString(fmt.Sprintf("Linked:       %s\n", item.LinkerTime.Format("2006-01-02 15:04:05")))
			}
			sb.WriteString("\n")
		}
	} else {
		sb.WriteString("No managed assemblies found.\n\n")
	}

	if len(report.Errors) > 0 {
		sb.WriteString("ERRORS\n")
		sb.WriteString(strings.Repeat("-", 79) + "\n")
		for _, msg := range report.Errors {
			sb.WriteString(fmt.Sprintf("  - %s\n", msg))
		}
		sb.WriteString("\n")
	}

	// Footer
	sb.WriteString(strings.Repeat("=", 79) + "\n")
	sb.WriteString("End of Report\n")
	sb.WriteString(strings.Repeat("=", 79) + "\n")

	return os.WriteFile(outputFile, []byte(sb.String()), 0644)
}
