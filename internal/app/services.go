package app

import (
	"context"
	"os"

	"nhost/internal/color"
	"nhost/internal/config"
	"nhost/internal/console"
	"nhost/internal/containerizer"
	"nhost/internal/orchestrator"
	"nhost/internal/reporting"

	"github.com/charmbracelet/lipgloss"
)

// Runner runs one bring-up of the development environment.
type Runner interface {
	Run(ctx context.Context) (orchestrator.Result, error)
}

// Services holds all the initialized collaborators of a run
type Services struct {
	Layout       config.Layout
	Runtime      *containerizer.ComposeRuntime
	Reporter     reporting.Reporter
	Orchestrator Runner
}

// InitializeServices wires the real compose runtime, console launcher and
// terminal reporter into an orchestrator.
func InitializeServices(cfg *Config) (*Services, error) {
	layout := config.NewLayout(cfg.ProjectDir)
	runtime := containerizer.NewComposeRuntime(cfg.ComposeCommand, layout.Dir)

	styled := false
	if f, ok := cfg.Stdout.(*os.File); ok {
		styled = color.Enabled(f)
	}
	if styled {
		color.Initialize(lipgloss.HasDarkBackground())
	}
	reporter := reporting.NewConsoleReporter(cfg.Stdout, styled)

	orch := orchestrator.New(orchestrator.Config{
		Layout:        layout,
		Runtime:       runtime,
		Launcher:      console.ExecLauncher{},
		Reporter:      reporter,
		ConsoleBinary: cfg.ConsoleCommand,
		ProbeInterval: cfg.ProbeInterval,
		ProbeTimeout:  cfg.ProbeTimeout,
		ReadyTimeout:  cfg.ReadyTimeout,
	})

	return &Services{
		Layout:       layout,
		Runtime:      runtime,
		Reporter:     reporter,
		Orchestrator: orch,
	}, nil
}
