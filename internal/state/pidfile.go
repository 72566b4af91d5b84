// Package state persists the identity of processes that outlive nhost.
package state

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// ErrPersist is returned when the PID file cannot be written.
var ErrPersist = errors.New("failed to record console process id")

// PIDFile is a single-integer text file. It is the only record of the
// console process; the teardown command reads it to stop the console.
type PIDFile struct {
	Path string
}

// NewPIDFile returns a PIDFile at path.
func NewPIDFile(path string) *PIDFile {
	return &PIDFile{Path: path}
}

// Record writes pid as decimal text, replacing any previous content.
func (f *PIDFile) Record(pid int) error {
	if pid <= 0 {
		return fmt.Errorf("%w: invalid pid %d", ErrPersist, pid)
	}
	if err := os.WriteFile(f.Path, []byte(strconv.Itoa(pid)), 0644); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrPersist, f.Path, err)
	}
	return nil
}

// Read returns the recorded pid. Surrounding whitespace is tolerated so
// files edited by hand still parse.
func (f *PIDFile) Read() (int, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return 0, err
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0, fmt.Errorf("malformed pid file %s: %w", f.Path, err)
	}
	return pid, nil
}

// ProcessAlive reports whether a process with the given pid exists.
func ProcessAlive(pid int) bool {
	if pid <= 0 {
		return false
	}
	return processAlive(pid)
}
