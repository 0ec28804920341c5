package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/viper"
)

// Config represents the ngenctl configuration
type Config struct {
	// Discovery settings
	Extensions  []string `mapstructure:"extensions"`    // file extensions treated as assemblies
	Exclude     []string `mapstructure:"exclude"`       // directories to skip when recursing
	VerifyOnAdd bool     `mapstructure:"verify_on_add"` // check native image status of newly added files

	// Batch settings
	Workers  int    `mapstructure:"workers"`   // parallel ngen invocations
	LockFile string `mapstructure:"lock_file"` // cross-process lock held during install/uninstall

	// Tool settings
	ToolName      string `mapstructure:"tool_name"`       // native image generator executable
	InstallRoot32 string `mapstructure:"install_root_32"` // framework root for x86/AnyCPU, registry if empty
	InstallRoot64 string `mapstructure:"install_root_64"` // framework root for x64, registry if empty

	// Report settings
	ReportFormat string `mapstructure:"report_format"` // text, json, yaml, markdown
	OutputFile   string `mapstructure:"output_file"`   // output file path
}

// LoadConfig loads configuration from environment variables, an optional
// config file and defaults
func LoadConfig(configFile string) (*Config, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("extensions", []string{"dll", "exe"})
	v.SetDefault("exclude", []string{})
	v.SetDefault("verify_on_add", true)
	v.SetDefault("workers", runtime.NumCPU())
	v.SetDefault("lock_file", filepath.Join(os.TempDir(), "ngenctl.lock"))
	v.SetDefault("tool_name", "ngen.exe")
	v.SetDefault("install_root_32", "")
	v.SetDefault("install_root_64", "")
	v.SetDefault("report_format", "")
	v.SetDefault("output_file", "")

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Read environment variables
	v.SetEnvPrefix("NGENCTL")
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks settings that would otherwise fail halfway through a batch
func (c *Config) Validate() error {
	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative (got: %d)", c.Workers)
	}
	if len(c.Extensions) == 0 {
		return fmt.Errorf("at least one extension is required")
	}
	if strings.TrimSpace(c.ToolName) == "" {
		return fmt.Errorf("tool_name must not be empty")
	}
	switch c.ReportFormat {
	case "", "text", "txt", "json", "yaml", "yml", "markdown", "md":
	default:
		return fmt.Errorf("report_format must be one of: text, json, yaml, markdown (got: %s)", c.ReportFormat)
	}
	return nil
}

// WorkerCount returns the configured worker count, defaulting to the number of CPUs
func (c *Config) WorkerCount() int {
	if c.Workers <= 0 {
		return runtime.NumCPU()
	}
	return c.Workers
}

// IsAssemblyExtension determines if a file extension (without dot) is scanned
func (c *Config) IsAssemblyExtension(extension string) bool {
	for _, ext := range c.Extensions {
		if strings.EqualFold(strings.TrimPrefix(ext, "."), extension) {
			return true
		}
	}
	return false
}
