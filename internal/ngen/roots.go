package ngen

import (
	"errors"
	"fmt"

	"github.com/IvanShishkin/ngenctl/internal/config"
	"github.com/IvanShishkin/ngenctl/pkg/models"
)

// RootResolver returns the framework install root for an architecture,
// e.g. C:\Windows\Microsoft.NET\Framework64\
type RootResolver interface {
	InstallRoot(arch models.Architecture) (string, error)
}

// StaticRoots resolves install roots from fixed paths
type StaticRoots struct {
	Root32 string
	Root64 string
}

// InstallRoot returns Root64 for x64 and Root32 otherwise
func (s StaticRoots) InstallRoot(arch models.Architecture) (string, error) {
	root := s.Root32
	if arch == models.ArchX64 {
		root = s.Root64
	}
	if root == "" {
		return "", fmt.Errorf("%w: no static root for %s", ErrNoInstallRoot, arch)
	}
	return root, nil
}

// FallbackRoots tries each resolver in order
type FallbackRoots []RootResolver

// InstallRoot returns the first root found
func (f FallbackRoots) InstallRoot(arch models.Architecture) (string, error) {
	var errs []error
	for _, r := range f {
		root, err := r.InstallRoot(arch)
		if err == nil {
			return root, nil
		}
		errs = append(errs, err)
	}
	if len(errs) == 0 {
		return "", ErrNoInstallRoot
	}
	return "", errors.Join(errs...)
}

// DefaultRoots prefers configured roots and falls back to the registry
func DefaultRoots(cfg *config.Config) RootResolver {
	return FallbackRoots{
		StaticRoots{Root32: cfg.InstallRoot32, Root64: cfg.InstallRoot64},
		RegistryRoots{},
	}
}
