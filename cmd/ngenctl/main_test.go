package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/IvanShishkin/ngenctl/internal/testutil"
)

// execute runs the CLI in-process and returns its output
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func readReport(t *testing.T, path string) map[string]any {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read report: %v", err)
	}
	var report map[string]any
	if err := json.Unmarshal(data, &report); err != nil {
		t.Fatalf("Failed to parse report: %v", err)
	}
	return report
}

func TestValidateFlags(t *testing.T) {
	tests := []struct {
		name    string
		format  string
		workers int
		wantErr bool
	}{
		{"Defaults", "", 0, false},
		{"JSON", "json", 4, false},
		{"Markdown", "md", 0, false},
		{"HTML", "html", 0, true},
		{"Negative workers", "", -2, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateFlags(tt.format, tt.workers)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateFlags() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSplitTargets(t *testing.T) {
	dir := t.TempDir()
	file := testutil.WriteAssembly(t, dir, "App.exe", testutil.DefaultAssembly())

	files, dirs, err := splitTargets([]string{dir, file})
	if err != nil {
		t.Fatalf("splitTargets() error = %v", err)
	}
	if len(files) != 1 || files[0] != file {
		t.Errorf("files = %v, want [%s]", files, file)
	}
	if len(dirs) != 1 || dirs[0] != dir {
		t.Errorf("dirs = %v, want [%s]", dirs, dir)
	}

	if _, _, err := splitTargets([]string{filepath.Join(dir, "missing")}); err == nil {
		t.Error("splitTargets() expected error for missing path, got nil")
	}
}

func TestInspectCommand(t *testing.T) {
	dir := t.TempDir()
	opts := testutil.DefaultAssembly()
	opts.Flags = 0x2 | 0x8
	asm := testutil.WriteAssembly(t, dir, "App.exe", opts)
	text := testutil.WriteFile(t, dir, "notes.txt", []byte("hello"))

	output, err := execute(t, "inspect", asm, text)
	if err != nil {
		t.Fatalf("inspect failed: %v\n%s", err, output)
	}

	for _, want := range []string{"App.exe", "x86", "v4.0.30319", "not a managed assembly"} {
		if !strings.Contains(output, want) {
			t.Errorf("Expected %q in output, got:\n%s", want, output)
		}
	}
}

func TestInspectCommand_FileNotFound(t *testing.T) {
	output, err := execute(t, "inspect", filepath.Join(t.TempDir(), "missing.dll"))
	if err == nil {
		t.Error("Expected error for nonexistent file, got nil")
	}
	if !strings.Contains(output, "failed to open file") {
		t.Errorf("Expected open error in output, got:\n%s", output)
	}
}

func TestScanCommand_JSONReport(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteAssembly(t, dir, "One.dll", testutil.DefaultAssembly())
	testutil.WriteAssembly(t, dir, "Two.exe", testutil.DefaultAssembly())
	testutil.WriteFile(t, dir, "readme.txt", []byte("not a binary"))
	testutil.WriteAssembly(t, filepath.Join(dir, "nested"), "Three.dll", testutil.DefaultAssembly())
	out := filepath.Join(t.TempDir(), "report.json")

	output, err := execute(t, "scan", dir, "--no-verify", "-r", "json", "-o", out)
	if err != nil {
		t.Fatalf("scan failed: %v\n%s", err, output)
	}

	report := readReport(t, out)
	if report["total_items"] != float64(2) {
		t.Errorf("total_items = %v, want 2", report["total_items"])
	}
	for _, raw := range report["items"].([]any) {
		item := raw.(map[string]any)
		if item["status"] != "unknown" {
			t.Errorf("status of %v = %v, want unknown", item["path"], item["status"])
		}
	}
	if !strings.Contains(output, out) {
		t.Errorf("Expected report path in output, got:\n%s", output)
	}
}

func TestScanCommand_PathFlagWithSubdirs(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteAssembly(t, dir, "One.dll", testutil.DefaultAssembly())
	testutil.WriteAssembly(t, filepath.Join(dir, "nested"), "Two.dll", testutil.DefaultAssembly())
	out := filepath.Join(t.TempDir(), "report.json")

	output, err := execute(t, "scan", "--path", dir, "-s", "--no-verify", "-r", "json", "-o", out)
	if err != nil {
		t.Fatalf("scan failed: %v\n%s", err, output)
	}

	if report := readReport(t, out); report["total_items"] != float64(2) {
		t.Errorf("total_items = %v, want 2", report["total_items"])
	}
}

func TestScanCommand_NoPath(t *testing.T) {
	if _, err := execute(t, "scan"); err == nil {
		t.Error("Expected error without a path, got nil")
	}
}

func TestScanCommand_InvalidReport(t *testing.T) {
	output, err := execute(t, "scan", t.TempDir(), "-r", "html")
	if err == nil {
		t.Error("Expected error for invalid report format, got nil")
	}
	if !strings.Contains(output, "Invalid parameter") {
		t.Errorf("Expected invalid parameter message, got:\n%s", output)
	}
}

func TestInstallCommand_MissingPath(t *testing.T) {
	_, err := execute(t, "install", filepath.Join(t.TempDir(), "missing"))
	if err == nil || !strings.Contains(err.Error(), "invalid path") {
		t.Errorf("Expected invalid path error, got %v", err)
	}
}

func TestHelpCommand(t *testing.T) {
	output, err := execute(t, "help")
	if err != nil {
		t.Fatalf("help failed: %v", err)
	}
	for _, want := range []string{"scan <path>", "install <path>...", "--subdirs"} {
		if !strings.Contains(output, want) {
			t.Errorf("Expected %q in help output", want)
		}
	}
}
