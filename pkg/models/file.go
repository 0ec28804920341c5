package models

import (
	"path/filepath"
	"strings"
	"time"
)

// Assembly describes a managed binary as read from its PE and CLI headers
type Assembly struct {
	Path           string       `json:"path" yaml:"path"`                       // Full file path
	Name           string       `json:"name" yaml:"name"`                       // File name
	Architecture   Architecture `json:"architecture" yaml:"architecture"`       // Target platform
	RuntimeVersion string       `json:"runtime_version" yaml:"runtime_version"` // Metadata root version, e.g. v4.0.30319
	StrongName     bool         `json:"strong_name" yaml:"strong_name"`         // Strong name signature flag is set
	LinkerTime     time.Time    `json:"linker_time" yaml:"linker_time"`         // COFF TimeDateStamp
}

// Key returns the normalized path used to compare assemblies
func (a *Assembly) Key() string {
	return NormalizePath(a.Path)
}

// Is64Bit reports whether the assembly needs the 64-bit toolchain
func (a *Assembly) Is64Bit() bool {
	return a.Architecture == ArchX64
}

// String returns the assembly path
func (a *Assembly) String() string {
	return a.Path
}

// NormalizePath cleans a path and folds its case for identity comparison
func NormalizePath(path string) string {
	return strings.ToLower(filepath.Clean(path))
}

// Architecture represents the platform an assembly was compiled for
type Architecture string

const (
	ArchAnyCPU Architecture = "AnyCPU"
	ArchX86    Architecture = "x86"
	ArchX64    Architecture = "x64"
)
