package ngen

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// Output is what a finished tool run printed, in order, plus its exit code
type Output struct {
	Lines    []string
	ExitCode int
}

// Runner starts the tool and waits for it to exit
type Runner interface {
	Run(path string, args ...string) (*Output, error)
}

// ExecRunner runs the tool as a child process
type ExecRunner struct{}

// Run executes path with args, capturing stdout and stderr into one stream.
// It blocks until the process exits; there is no timeout.
func (ExecRunner) Run(path string, args ...string) (*Output, error) {
	var buf bytes.Buffer

	//nolint:gosec // G204: the tool path comes from the locator
	cmd := exec.Command(path, args...)
	cmd.Stdout = &buf
	cmd.Stderr = &buf
	hideWindow(cmd)

	out := &Output{}
	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return nil, fmt.Errorf("failed to run %s: %w", path, err)
		}
		out.ExitCode = exitErr.ExitCode()
	}

	out.Lines = splitLines(buf.String())
	return out, nil
}

// splitLines returns the non-empty lines of s
func splitLines(s string) []string {
	var lines []string
	scanner := bufio.NewScanner(strings.NewReader(s))
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}
