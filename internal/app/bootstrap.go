package app

import (
	"context"
	"fmt"

	"nhost/internal/orchestrator"
	"nhost/pkg/logging"

	"github.com/atotto/clipboard"
)

// For mocking in tests
var clipboardWriteAll = clipboard.WriteAll

// Application is the main application structure that bootstraps and runs `nhost dev`
type Application struct {
	config   *Config
	services *Services
}

// NewApplication creates and initializes a new application instance
func NewApplication(cfg *Config) (*Application, error) {
	// Configure logging based on debug flag
	appLogLevel := logging.LevelInfo
	if cfg.Debug {
		appLogLevel = logging.LevelDebug
	}
	// Logs share stderr so stdout only carries progress messages.
	logging.InitForCLI(appLogLevel, cfg.Stderr)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	services, err := InitializeServices(cfg)
	if err != nil {
		logging.Error("Bootstrap", err, "Failed to initialize services")
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}
	logging.Debug("Bootstrap", "Project directory %s, compose command %q", services.Layout.Dir, services.Runtime.String())

	return &Application{
		config:   cfg,
		services: services,
	}, nil
}

// Run executes the bring-up and the optional post-ready actions.
func (a *Application) Run(ctx context.Context) (orchestrator.Result, error) {
	result, err := a.services.Orchestrator.Run(ctx)
	if err != nil {
		logging.Error("Bootstrap", err, "Development environment failed to start")
		return result, err
	}

	if a.config.CopyURL && result.ConsoleURL != "" {
		if err := clipboardWriteAll(result.ConsoleURL); err != nil {
			logging.Warn("Bootstrap", "Could not copy console URL to clipboard: %v", err)
			a.services.Reporter.Warning(fmt.Sprintf("could not copy %s to the clipboard", result.ConsoleURL))
		} else {
			logging.Debug("Bootstrap", "Copied %s to clipboard", result.ConsoleURL)
		}
	}
	return result, nil
}
