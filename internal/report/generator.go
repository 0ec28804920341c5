package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/IvanShishkin/ngenctl/internal/config"
	"github.com/IvanShishkin/ngenctl/pkg/models"
)

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorBold   = "\033[1m"
	colorDim    = "\033[2m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorBlue   = "\033[34m"
	colorCyan   = "\033[36m"
	colorWhite  = "\033[37m"
	colorOrange = "\033[38;5;208m"
	colorGray   = "\033[38;5;245m"
)

// statusOrder is the order statuses are listed in summaries
var statusOrder = []models.FileStatus{
	models.StatusInstalled,
	models.StatusDeinstalled,
	models.StatusUnknown,
	models.StatusPending,
	models.StatusInProgress,
}

// FormatDuration formats duration to a human-readable string with max 2 decimal places
func FormatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%.2fms", float64(d.Nanoseconds())/1e6)
	} else if d < time.Minute {
		return fmt.Sprintf("%.2fs", d.Seconds())
	} else if d < time.Hour {
		mins := int(d.Minutes())
		secs := d.Seconds() - float64(mins*60)
		return fmt.Sprintf("%dm%.2fs", mins, secs)
	}
	hours := int(d.Hours())
	mins := int(d.Minutes()) - hours*60
	secs := d.Seconds() - float64(hours*3600) - float64(mins*60)
	return fmt.Sprintf("%dh%dm%.2fs", hours, mins, secs)
}

// Generator writes job reports in various formats
type Generator struct {
	config *config.Config
	logger *zap.Logger
	out    io.Writer
}

// NewGenerator creates a new report generator
func NewGenerator(cfg *config.Config, logger *zap.Logger) (*Generator, error) {
	switch cfg.ReportFormat {
	case "", "text", "txt", "json", "yaml", "yml", "markdown", "md":
	default:
		return nil, fmt.Errorf("unknown report format: %s", cfg.ReportFormat)
	}
	return &Generator{
		config: cfg,
		logger: logger,
		out:    os.Stdout,
	}, nil
}

// SetOutput sets where the console summary is printed
func (g *Generator) SetOutput(w io.Writer) {
	g.out = w
}

// Generate writes the report. Without a format it prints a console summary
// and returns an empty path; otherwise it returns the absolute report path.
func (g *Generator) Generate(report *models.JobReport) (string, error) {
	format := g.config.ReportFormat
	outputFile := g.config.OutputFile

	if format == "" {
		g.printConsole(report)
		return "", nil
	}

	if outputFile == "" {
		timestamp := time.Now().Format("20060102-150405")
		outputFile = fmt.Sprintf("NGENCTL-REPORT-%s.%s", timestamp, extension(format))
	}

	g.logger.Info("Generating report",
		zap.String("format", format),
		zap.String("output", outputFile))

	var err error
	switch format {
	case "json":
		err = g.generateJSON(report, outputFile)
	case "txt", "text":
		err = g.generateText(report, outputFile)
	case "yaml", "yml":
		err = g.generateYAML(report, outputFile)
	case "md", "markdown":
		err = g.generateMarkdown(report, outputFile)
	}

	if err != nil {
		return "", fmt.Errorf("failed to generate %s report: %w", format, err)
	}

	absPath, _ := filepath.Abs(outputFile)
	report.ReportPath = absPath
	return absPath, nil
}

func extension(format string) string {
	switch format {
	case "text":
		return "txt"
	case "yml":
		return "yaml"
	case "markdown":
		return "md"
	}
	return format
}

// printConsole prints the summary with colors
func (g *Generator) printConsole(report *models.JobReport) {
	w := g.out
	title := strings.ToUpper(report.Action) + " COMPLETE"
	if report.Stopped {
		title = strings.ToUpper(report.Action) + " STOPPED"
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s%s%s%s\n", colorBold, colorOrange, title, colorReset)
	fmt.Fprintln(w)

	fmt.Fprintf(w, "  %sPath:%s      %s\n", colorGray, colorReset, strings.Join(report.Paths, ", "))
	fmt.Fprintf(w, "  %sFiles:%s     %d\n", colorGray, colorReset, report.TotalItems)
	fmt.Fprintf(w, "  %sDuration:%s  %s\n", colorGray, colorReset, FormatDuration(report.Duration))
	if len(report.RuntimeVersions) > 0 {
		fmt.Fprintf(w, "  %sRuntimes:%s  %s\n", colorGray, colorReset, strings.Join(report.RuntimeVersions, ", "))
	}
	fmt.Fprintln(w)

	if report.TotalItems == 0 {
		fmt.Fprintf(w, "  %s%sNo managed assemblies found%s\n", colorBold, colorYellow, colorReset)
		fmt.Fprintln(w)
	} else {
		fmt.Fprintf(w, "%s───────────────────────────────────────────────────────────────%s\n", colorGray, colorReset)
		for _, item := range report.Items {
			strong := ""
			if item.StrongName {
				strong = " strong-named"
			}
			fmt.Fprintf(w, "  %s%-12s%s %s\n", getStatusColor(item.Status), strings.ToUpper(string(item.Status)), colorReset, item.Path)
			fmt.Fprintf(w, "  %s             %s %s%s%s\n", colorDim, item.Architecture, item.RuntimeVersion, strong, colorReset)
		}
		fmt.Fprintf(w, "%s───────────────────────────────────────────────────────────────%s\n", colorGray, colorReset)
		fmt.Fprintln(w)

		for _, status := range statusOrder {
			if n := report.ByStatus[status]; n > 0 {
				fmt.Fprintf(w, "  %s%-12s%s %d\n", getStatusColor(status), strings.ToUpper(string(status)), colorReset, n)
			}
		}
		fmt.Fprintln(w)
	}

	if len(report.Errors) > 0 {
		fmt.Fprintf(w, "  %s%sERRORS: %d%s\n", colorBold, colorRed, len(report.Errors), colorReset)
		for _, msg := range report.Errors {
			fmt.Fprintf(w, "  %s-%s %s\n", colorRed, colorReset, msg)
		}
		fmt.Fprintln(w)
	}
}

// getStatusColor returns ANSI color for a file status
func getStatusColor(status models.FileStatus) string {
	switch status {
	case models.StatusInstalled:
		return colorGreen + colorBold
	case models.StatusDeinstalled:
		return colorCyan
	case models.StatusPending, models.StatusInProgress:
		return colorBlue
	case models.StatusUnknown:
		return colorYellow
	default:
		return colorWhite
	}
}
