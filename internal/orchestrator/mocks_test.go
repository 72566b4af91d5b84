package orchestrator

import (
	"context"
	"errors"
	"os"
	"sync"
	"time"

	"nhost/internal/console"
	"nhost/internal/health"
)

// mockRuntime records calls made to the container runtime.
type mockRuntime struct {
	mu          sync.Mutex
	calls       []string
	validateErr error
	startErr    error
	// storageDir is created on start, like the database container would.
	storageDir string
}

func (m *mockRuntime) Validate(ctx context.Context, path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, "validate "+path)
	return m.validateErr
}

func (m *mockRuntime) StartDetached(ctx context.Context, path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, "up "+path)
	if m.startErr != nil {
		return m.startErr
	}
	if m.storageDir != "" {
		return os.MkdirAll(m.storageDir, 0755)
	}
	return nil
}

func (m *mockRuntime) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string{}, m.calls...)
}

// mockLauncher records the console spec instead of spawning anything.
type mockLauncher struct {
	pid      int
	err      error
	launched []console.Spec
}

func (m *mockLauncher) Launch(spec console.Spec) (console.ProcessHandle, error) {
	m.launched = append(m.launched, spec)
	if m.err != nil {
		return console.ProcessHandle{}, m.err
	}
	return console.ProcessHandle{ID: m.pid}, nil
}

// mockChecker fails a fixed number of times before succeeding.
type mockChecker struct {
	failures int
	calls    int
	port     int
}

func (m *mockChecker) CheckHealth(ctx context.Context) error {
	m.calls++
	if m.calls <= m.failures {
		return errors.New("connection refused")
	}
	return nil
}

func (m *mockChecker) factory() func(int, time.Duration) health.ServiceHealthChecker {
	return func(port int, _ time.Duration) health.ServiceHealthChecker {
		m.port = port
		return m
	}
}

// recordingReporter keeps every message in order.
type recordingReporter struct {
	events []string
}

func (r *recordingReporter) Guidance()               { r.events = append(r.events, "guidance") }
func (r *recordingReporter) Launching()              { r.events = append(r.events, "launching") }
func (r *recordingReporter) FirstRun()               { r.events = append(r.events, "first-run") }
func (r *recordingReporter) Ready(consoleURL string) { r.events = append(r.events, "ready "+consoleURL) }
func (r *recordingReporter) TeardownHint()           { r.events = append(r.events, "teardown") }
func (r *recordingReporter) Warning(msg string)      { r.events = append(r.events, "warning "+msg) }
