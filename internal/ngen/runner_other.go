//go:build !windows

package ngen

import "os/exec"

func hideWindow(*exec.Cmd) {}
