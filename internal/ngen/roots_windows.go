//go:build windows

package ngen

import (
	"fmt"

	"github.com/IvanShishkin/ngenctl/pkg/models"
	"golang.org/x/sys/windows/registry"
)

const (
	frameworkKey     = `SOFTWARE\Microsoft\.NETFramework`
	installRootValue = "InstallRoot"
)

// RegistryRoots reads InstallRoot from the 32- or 64-bit registry view
type RegistryRoots struct{}

// InstallRoot reads HKLM\SOFTWARE\Microsoft\.NETFramework\InstallRoot
func (RegistryRoots) InstallRoot(arch models.Architecture) (string, error) {
	access := uint32(registry.QUERY_VALUE | registry.WOW64_32KEY)
	if arch == models.ArchX64 {
		access = registry.QUERY_VALUE | registry.WOW64_64KEY
	}

	k, err := registry.OpenKey(registry.LOCAL_MACHINE, frameworkKey, access)
	if err != nil {
		return "", fmt.Errorf("%w: open %s: %v", ErrNoInstallRoot, frameworkKey, err)
	}
	defer k.Close()

	root, _, err := k.GetStringValue(installRootValue)
	if err != nil {
		return "", fmt.Errorf("%w: read %s: %v", ErrNoInstallRoot, installRootValue, err)
	}
	return root, nil
}
