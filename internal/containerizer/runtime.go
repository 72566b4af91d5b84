package containerizer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"

	"nhost/pkg/logging"
)

var (
	// ErrInvalidServiceDefinition is returned when the runtime rejects the
	// rendered definition. The runtime's own output is included verbatim.
	ErrInvalidServiceDefinition = errors.New("invalid service-group definition")
	// ErrStartFailed is returned when the runtime does not accept the group for startup.
	ErrStartFailed = errors.New("failed to start service group")
	// ErrRuntimeNotFound is returned when the compose executable cannot be found.
	ErrRuntimeNotFound = errors.New("container runtime not found")
)

// For mocking in tests
var execCommand = exec.CommandContext

// ServiceGroupRuntime is the container runtime as seen by the stack
// supervisor. Implementations treat the runtime as a black box: they report
// whether a call was accepted, never the health of individual services.
type ServiceGroupRuntime interface {
	// Validate syntax-checks the definition without starting anything.
	Validate(ctx context.Context, definitionPath string) error
	// StartDetached brings the service group up in the background.
	StartDetached(ctx context.Context, definitionPath string) error
}

// ComposeRuntime drives docker-compose (or the `docker compose` plugin).
type ComposeRuntime struct {
	// Command is the executable and any leading arguments,
	// e.g. ["docker-compose"] or ["docker", "compose"].
	Command []string
	// Dir is the working directory for compose invocations. Compose derives
	// the project name from it.
	Dir string
}

// NewComposeRuntime parses a command line such as "docker compose" into a ComposeRuntime.
func NewComposeRuntime(command, dir string) *ComposeRuntime {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		fields = []string{"docker-compose"}
	}
	return &ComposeRuntime{Command: fields, Dir: dir}
}

// Validate runs `compose -f <definition> config --quiet`.
func (r *ComposeRuntime) Validate(ctx context.Context, definitionPath string) error {
	_, stderr, err := r.run(ctx, "-f", definitionArg(definitionPath), "config", "--quiet")
	if err != nil {
		if errors.Is(err, ErrRuntimeNotFound) {
			return err
		}
		return fmt.Errorf("%w: %s: %v%s", ErrInvalidServiceDefinition, definitionPath, err, stderrSuffix(stderr))
	}
	return nil
}

// StartDetached runs `compose -f <definition> up -d`.
func (r *ComposeRuntime) StartDetached(ctx context.Context, definitionPath string) error {
	_, stderr, err := r.run(ctx, "-f", definitionArg(definitionPath), "up", "-d")
	if err != nil {
		if errors.Is(err, ErrRuntimeNotFound) {
			return err
		}
		return fmt.Errorf("%w: %v%s", ErrStartFailed, err, stderrSuffix(stderr))
	}
	return nil
}

// String returns the compose command line.
func (r *ComposeRuntime) String() string {
	return strings.Join(r.Command, " ")
}

func (r *ComposeRuntime) run(ctx context.Context, args ...string) (string, string, error) {
	fullArgs := append(append([]string{}, r.Command[1:]...), args...)
	cmd := execCommand(ctx, r.Command[0], fullArgs...)
	cmd.Dir = r.Dir

	var stdoutBuf, stderrBuf bytes.Buffer
	cmd.Stdout = &stdoutBuf
	cmd.Stderr = &stderrBuf

	logging.Debug("ComposeRuntime", "Running %s %s", r.Command[0], strings.Join(fullArgs, " "))
	runErr := cmd.Run()
	if runErr != nil && errors.Is(runErr, exec.ErrNotFound) {
		return "", "", fmt.Errorf("%w: %s: %v", ErrRuntimeNotFound, r.Command[0], runErr)
	}
	return stdoutBuf.String(), stderrBuf.String(), runErr
}

// definitionArg resolves definitionPath against the current directory, since
// compose runs with Dir as its working directory.
func definitionArg(definitionPath string) string {
	abs, err := filepath.Abs(definitionPath)
	if err != nil {
		return definitionPath
	}
	return abs
}

func stderrSuffix(stderr string) string {
	stderr = strings.TrimSpace(stderr)
	if stderr == "" {
		return ""
	}
	return ". Stderr: " + stderr
}
