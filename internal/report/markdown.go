package report

import (
	"fmt"
	"os"
	"strings"

	"github.com/IvanShishkin/ngenctl/pkg/models"
)

// generateMarkdown generates a Markdown report
func (g *Generator) generateMarkdown(report *models.JobReport, outputFile string) error {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("# ngenctl %s report\n\n", report.Action))

	// Summary
	sb.WriteString("## Summary\n\n")
	sb.WriteString("| Parameter | Value |\n")
	sb.WriteString("|-----------|-------|\n")
	sb.WriteString(fmt.Sprintf("| Job ID | `%s` |\n", report.JobID))
	sb.WriteString(fmt.Sprintf("| Paths | `%s` |\n", strings.Join(report.Paths, "`, `")))
	sb.WriteString(fmt.Sprintf("| Start Time | %s |\n", report.StartTime.Format("2006-01-02 15:04:05")))
	sb.WriteString(fmt.Sprintf("| Duration | %s |\n", FormatDuration(report.Duration)))
	sb.WriteString(fmt.Sprintf("| Files | %d |\n", report.TotalItems))
	if report.Stopped {
		sb.WriteString("| **Stopped** | **yes** |\n")
	}
	if report.Host != nil {
		sb.WriteString(fmt.Sprintf("| Host | %s (%s, %s) |\n", report.Host.Hostname, report.Host.Platform, report.Host.KernelArch))
	}
	sb.WriteString("\n")

	if report.TotalItems == 0 {
		sb.WriteString("> No managed assemblies found\n\n")
		return os.WriteFile(outputFile, []byte(sb.String()), 0644)
	}

	sb.WriteString("## Files by Status\n\n")
	sb.WriteString("| Status | Count |\n")
	sb.WriteString("|--------|-------|\n")
	for _, status := range statusOrder {
		if n := report.ByStatus[status]; n > 0 {
			sb.WriteString(fmt.Sprintf("| %s | %d |\n", strings.ToUpper(string(status)), n))
		}
	}
	sb.WriteString("\n")

	sb.WriteString("## Files\n\n")
	sb.WriteString("| # | File | Status | Architecture | Runtime | Strong Name |\n")
	sb.WriteString("|---|------|--------|--------------|---------|-------------|\n")
	for i, item := range report.Items {
		sb.WriteString(fmt.Sprintf("| %d | `%s` | %s | %s | %s | %s |\n",
			i+1,
			escapeMarkdown(item.Path),
			item.Status,
			item.Architecture,
			item.RuntimeVersion,
			yesNo(item.StrongName)))
	}
	sb.WriteString("\n")

	if len(report.Errors) > 0 {
		sb.WriteString("## Errors\n\n")
		for _, msg := range report.Errors {
			sb.WriteString(fmt.Sprintf("- %s\n", escapeMarkdown(msg)))
		}
		sb.WriteString("\n")
	}

	return os.WriteFile(outputFile, []byte(sb.String()), 0644)
}

// escapeMarkdown escapes pipe characters that would break a table row
func escapeMarkdown(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
