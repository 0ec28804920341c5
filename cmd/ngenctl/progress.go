package main

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/IvanShishkin/ngenctl/pkg/models"
)

// consoleObserver draws engine progress as a bar and collects errors
type consoleObserver struct {
	mu      sync.Mutex
	out     io.Writer
	label   string
	drawn   bool
	stopped bool
	errs    []error
}

func newConsoleObserver(out io.Writer) *consoleObserver {
	return &consoleObserver{out: out, label: "Checking:"}
}

// setPhase changes the progress label for the next operation
func (o *consoleObserver) setPhase(label string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.label = label
	o.drawn = false
}

func (o *consoleObserver) StatusChanged(status models.AppStatus) {
	if status != models.AppStopping {
		return
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	o.stopped = true
	fmt.Fprintf(o.out, "\n  %s⊘ Stopping after the files in progress...%s\n", colorYellow, colorReset)
	o.drawn = false
}

func (o *consoleObserver) ProgressChanged(completed, total int) {
	if total <= 0 {
		return
	}
	o.mu.Lock()
	defer o.mu.Unlock()

	// Redraw over the previous bar
	if o.drawn {
		fmt.Fprint(o.out, "\033[1A\033[K")
	}
	pct := float64(completed) / float64(total) * 100
	barWidth := 30
	filled := barWidth * completed / total
	bar := strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
	fmt.Fprintf(o.out, "  %s%-10s%s [%s%s%s] %s%.1f%%%s (%d/%d)\n",
		colorGray, o.label, colorReset, colorOrange, bar, colorReset, colorOrange, pct, colorReset, completed, total)
	o.drawn = true
}

func (o *consoleObserver) ExceptionOccurred(err error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.errs = append(o.errs, err)
	fmt.Fprintf(o.out, "  %s⚠ %v%s\n", colorYellow, err, colorReset)
	o.drawn = false
}

func (o *consoleObserver) errors() []error {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]error(nil), o.errs...)
}

func (o *consoleObserver) wasStopped() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.stopped
}
