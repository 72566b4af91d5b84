package app

import (
	"fmt"
	"io"
	"os"
	"time"

	"nhost/internal/config"
)

// Default readiness tunables for `nhost dev`.
const (
	DefaultProbeInterval = 250 * time.Millisecond
	DefaultProbeTimeout  = 2 * time.Second
)

// Config holds the application configuration
type Config struct {
	// Project
	ProjectDir string

	// Debug settings
	Debug bool

	// External commands
	ComposeCommand string
	ConsoleCommand string

	// Readiness
	ProbeInterval time.Duration
	ProbeTimeout  time.Duration
	ReadyTimeout  time.Duration

	// CopyURL copies the console URL to the clipboard once ready.
	CopyURL bool

	// Output streams. Progress goes to Stdout, logs to Stderr.
	Stdout io.Writer
	Stderr io.Writer
}

// NewConfig creates a new application configuration with defaults for
// everything but the project directory and debug flag.
func NewConfig(projectDir string, debug bool) *Config {
	return &Config{
		ProjectDir:     projectDir,
		Debug:          debug,
		ComposeCommand: config.DefaultComposeBinary,
		ConsoleCommand: config.DefaultConsoleBinary,
		ProbeInterval:  DefaultProbeInterval,
		ProbeTimeout:   DefaultProbeTimeout,
		Stdout:         os.Stdout,
		Stderr:         os.Stderr,
	}
}

// Validate rejects flag combinations that cannot work.
func (c *Config) Validate() error {
	if c.ProbeInterval < 0 {
		return fmt.Errorf("probe interval must not be negative, got %s", c.ProbeInterval)
	}
	if c.ProbeTimeout < 0 {
		return fmt.Errorf("probe timeout must not be negative, got %s", c.ProbeTimeout)
	}
	if c.ReadyTimeout < 0 {
		return fmt.Errorf("ready timeout must not be negative, got %s", c.ReadyTimeout)
	}
	return nil
}
