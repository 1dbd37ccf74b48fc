//go:build windows

package runner

import (
	"errors"
	"os/exec"
)

func setProcessGroup(*exec.Cmd) {}

func killGroup(*exec.Cmd) error {
	return errors.New("process groups unsupported")
}
