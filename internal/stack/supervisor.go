// Package stack brings the service group up through the container runtime.
package stack

import (
	"context"
	"errors"
	"io/fs"
	"os"

	"nhost/internal/containerizer"
	"nhost/pkg/logging"
)

// Supervisor validates and starts the rendered service group.
type Supervisor struct {
	runtime    containerizer.ServiceGroupRuntime
	storageDir string
}

// NewSupervisor creates a Supervisor. storageDir is the persistent data
// directory whose absence marks a first run.
func NewSupervisor(runtime containerizer.ServiceGroupRuntime, storageDir string) *Supervisor {
	return &Supervisor{
		runtime:    runtime,
		storageDir: storageDir,
	}
}

// Up validates the definition, records whether this is a first run and
// asks the runtime to start the group detached. A rejected definition is
// fatal and the start call is never made. Nothing is rolled back when the
// start call fails.
func (s *Supervisor) Up(ctx context.Context, definitionPath string) (firstRun bool, err error) {
	if err := s.runtime.Validate(ctx, definitionPath); err != nil {
		logging.Error("Stack", err, "Service-group definition rejected")
		return false, err
	}
	logging.Debug("Stack", "Service-group definition %s is valid", definitionPath)

	// Must be checked before the start call creates the directory.
	firstRun = IsFirstRun(s.storageDir)
	logging.Debug("Stack", "First run: %t (storage dir %s)", firstRun, s.storageDir)

	if err := s.runtime.StartDetached(ctx, definitionPath); err != nil {
		logging.Error("Stack", err, "Service group was not accepted for startup")
		return firstRun, err
	}
	logging.Debug("Stack", "Service group accepted for startup")
	return firstRun, nil
}

// IsFirstRun reports whether the persistent storage directory is absent.
func IsFirstRun(storageDir string) bool {
	_, err := os.Stat(storageDir)
	return errors.Is(err, fs.ErrNotExist)
}
