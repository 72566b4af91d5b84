// Package console launches the Hasura console as a detached process.
package console

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"nhost/pkg/logging"
)

// ErrSpawn is returned when the console process cannot be started.
var ErrSpawn = errors.New("failed to launch console")

// For mocking in tests
var execCommand = exec.Command

// ProcessHandle identifies a launched process. The launcher keeps no other
// reference to it.
type ProcessHandle struct {
	ID int
}

// Spec describes the console invocation.
type Spec struct {
	// Command is the executable and its leading arguments, e.g. ["hasura", "console"].
	Command     []string
	Endpoint    string
	AdminSecret string
	// Dir is the working directory of the console (the project directory).
	Dir string
}

// NewSpec builds a Spec for `<binary> console --endpoint=... --admin-secret=...`.
func NewSpec(binary, endpoint, adminSecret, dir string) Spec {
	if strings.TrimSpace(binary) == "" {
		binary = "hasura"
	}
	return Spec{
		Command:     []string{binary, "console"},
		Endpoint:    endpoint,
		AdminSecret: adminSecret,
		Dir:         dir,
	}
}

// Args returns the arguments passed after the executable.
func (s Spec) Args() []string {
	args := append([]string{}, s.Command[1:]...)
	return append(args,
		"--endpoint="+s.Endpoint,
		"--admin-secret="+s.AdminSecret,
	)
}

// ProcessLauncher starts a process and immediately gives up ownership of it.
type ProcessLauncher interface {
	Launch(spec Spec) (ProcessHandle, error)
}

// ExecLauncher starts the console in its own session with no standard
// streams attached, so it keeps running after nhost exits.
type ExecLauncher struct{}

// Launch spawns the console and releases it.
func (ExecLauncher) Launch(spec Spec) (ProcessHandle, error) {
	if len(spec.Command) == 0 {
		return ProcessHandle{}, fmt.Errorf("%w: no command configured", ErrSpawn)
	}

	cmd := execCommand(spec.Command[0], spec.Args()...)
	cmd.Dir = spec.Dir
	// Nil streams are connected to the null device.
	cmd.Stdin = nil
	cmd.Stdout = nil
	cmd.Stderr = nil
	cmd.SysProcAttr = detachedProcAttr()

	if err := cmd.Start(); err != nil {
		return ProcessHandle{}, fmt.Errorf("%w: %s: %v", ErrSpawn, spec.Command[0], err)
	}

	handle := ProcessHandle{ID: cmd.Process.Pid}
	if err := cmd.Process.Release(); err != nil {
		logging.Warn("Console", "Failed to release console process %d: %v", handle.ID, err)
	}
	logging.Debug("Console", "Console started as PID %d", handle.ID)
	return handle, nil
}
