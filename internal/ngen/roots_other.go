//go:build !windows

package ngen

import (
	"fmt"

	"github.com/IvanShishkin/ngenctl/pkg/models"
)

// RegistryRoots is only functional on Windows
type RegistryRoots struct{}

// InstallRoot always fails outside Windows
func (RegistryRoots) InstallRoot(arch models.Architecture) (string, error) {
	return "", fmt.Errorf("%w: no registry on this platform (set install_root_32/install_root_64)", ErrNoInstallRoot)
}
