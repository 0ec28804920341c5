package ngen

import "strings"

const (
	// Printed when ngen runs without elevation
	permissionSentinel = "Administrator permissions"

	// "display" prints this header before listing images. When it is the
	// last line nothing was listed even though the exit code may be 0.
	// This depends on ngen's message format.
	nativeImagesSentinel = "Native Images"
)

// classifyOutput turns a finished run into success or failure
func classifyOutput(out *Output) (bool, error) {
	emptyListing := false
	for _, line := range out.Lines {
		emptyListing = false
		if strings.Contains(line, permissionSentinel) {
			return false, ErrPermissionDenied
		}
		if strings.Contains(line, nativeImagesSentinel) {
			emptyListing = true
		}
	}
	if emptyListing {
		return false, nil
	}
	return out.ExitCode == 0, nil
}
