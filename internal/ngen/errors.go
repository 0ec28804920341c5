package ngen

import "errors"

var (
	// ErrToolNotFound is returned when ngen.exe is missing for a runtime
	ErrToolNotFound = errors.New("native image generator not found")

	// ErrPermissionDenied is returned when ngen reports missing administrator rights
	ErrPermissionDenied = errors.New("administrator permissions are needed")

	// ErrNoInstallRoot is returned when no framework install root can be resolved
	ErrNoInstallRoot = errors.New("framework install root not found")
)
