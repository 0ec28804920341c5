package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestIsAssemblyExtension(t *testing.T) {
	tests := []struct {
		name       string
		extensions []string
		extension  string
		expected   bool
	}{
		{"DLL", []string{"dll", "exe"}, "dll", true},
		{"EXE", []string{"dll", "exe"}, "exe", true},
		{"Upper case", []string{"dll", "exe"}, "DLL", true},
		{"Dotted config", []string{".dll"}, "dll", true},
		{"TXT", []string{"dll", "exe"}, "txt", false},
		{"No extension", []string{"dll", "exe"}, "", false},
		{"Custom list", []string{"winmd"}, "dll", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{Extensions: tt.extensions}
			if got := cfg.IsAssemblyExtension(tt.extension); got != tt.expected {
				t.Errorf("IsAssemblyExtension(%q) = %v, want %v", tt.extension, got, tt.expected)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{Extensions: []string{"dll"}, ToolName: "ngen.exe", Workers: 2}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"Valid", func(c *Config) {}, false},
		{"Zero workers", func(c *Config) { c.Workers = 0 }, false},
		{"Negative workers", func(c *Config) { c.Workers = -1 }, true},
		{"No extensions", func(c *Config) { c.Extensions = nil }, true},
		{"Empty tool", func(c *Config) { c.ToolName = " " }, true},
		{"JSON report", func(c *Config) { c.ReportFormat = "json" }, false},
		{"YAML report", func(c *Config) { c.ReportFormat = "yaml" }, false},
		{"Markdown report", func(c *Config) { c.ReportFormat = "md" }, false},
		{"Unknown report", func(c *Config) { c.ReportFormat = "xml" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestWorkerCount(t *testing.T) {
	if got := (&Config{Workers: 3}).WorkerCount(); got != 3 {
		t.Errorf("WorkerCount() = %d, want 3", got)
	}
	if got := (&Config{}).WorkerCount(); got != runtime.NumCPU() {
		t.Errorf("WorkerCount() = %d, want %d", got, runtime.NumCPU())
	}
}

func TestLoadConfig(t *testing.T) {
	// Test default config loading (without config file)
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	// Check defaults
	if len(cfg.Extensions) != 2 || cfg.Extensions[0] != "dll" || cfg.Extensions[1] != "exe" {
		t.Errorf("Default extensions = %v, want [dll exe]", cfg.Extensions)
	}

	if cfg.ToolName != "ngen.exe" {
		t.Errorf("Default tool_name = %v, want %v", cfg.ToolName, "ngen.exe")
	}

	if cfg.VerifyOnAdd != true {
		t.Errorf("Default verify_on_add = %v, want %v", cfg.VerifyOnAdd, true)
	}

	if cfg.Workers != runtime.NumCPU() {
		t.Errorf("Default workers = %v, want %v", cfg.Workers, runtime.NumCPU())
	}

	if cfg.ReportFormat != "" {
		t.Errorf("Default report_format = %v, want %v", cfg.ReportFormat, "")
	}

	if cfg.LockFile == "" {
		t.Error("Default lock_file is empty")
	}
}

func TestLoadConfig_Env(t *testing.T) {
	t.Setenv("NGENCTL_WORKERS", "7")
	t.Setenv("NGENCTL_INSTALL_ROOT_64", `C:\Windows\Microsoft.NET\Framework64`)

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Workers != 7 {
		t.Errorf("workers = %v, want 7", cfg.Workers)
	}
	if cfg.InstallRoot64 != `C:\Windows\Microsoft.NET\Framework64` {
		t.Errorf("install_root_64 = %q", cfg.InstallRoot64)
	}
}

func TestLoadConfig_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ngenctl.yaml")
	content := "workers: 3\ntool_name: ngen-test.exe\nverify_on_add: false\nextensions:\n  - dll\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Workers != 3 {
		t.Errorf("workers = %v, want 3", cfg.Workers)
	}
	if cfg.ToolName != "ngen-test.exe" {
		t.Errorf("tool_name = %v, want ngen-test.exe", cfg.ToolName)
	}
	if cfg.VerifyOnAdd {
		t.Error("verify_on_add = true, want false")
	}
	if len(cfg.Extensions) != 1 {
		t.Errorf("extensions = %v, want [dll]", cfg.Extensions)
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("LoadConfig() expected error for missing file, got nil")
	}
}
