package orchestrator

import (
	"context"
	"fmt"
	"strings"
	"time"

	"nhost/internal/compose"
	"nhost/internal/config"
	"nhost/internal/console"
	"nhost/internal/containerizer"
	"nhost/internal/health"
	"nhost/internal/reporting"
	"nhost/internal/secret"
	"nhost/internal/stack"
	"nhost/internal/state"
	"nhost/pkg/logging"
)

// Stage names a step of the bring-up sequence.
type Stage string

const (
	StagePrerequisites Stage = "prerequisites"
	StageLoad          Stage = "load"
	StageRender        Stage = "render"
	StageStack         Stage = "stack"
	StageReadiness     Stage = "readiness"
	StageConsole       Stage = "console"
	StageRecord        Stage = "record"
)

// StageError reports which stage of the run failed.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("stage %s failed: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// Result describes a finished run.
type Result struct {
	// Aborted is true when prerequisites were missing and nothing was done.
	Aborted bool
	// FirstRun is true when the storage directory did not exist before start.
	FirstRun bool
	// ConsoleURL is the endpoint the console was pointed at.
	ConsoleURL string
	// ConsolePID is the recorded console process id.
	ConsolePID int
	// Attempts is the number of readiness probes made.
	Attempts int
}

// Config holds the collaborators and tunables of a run.
type Config struct {
	Layout   config.Layout
	Runtime  containerizer.ServiceGroupRuntime
	Launcher console.ProcessLauncher
	Reporter reporting.Reporter

	// ConsoleBinary is the console executable. Defaults to hasura.
	ConsoleBinary string

	ProbeInterval time.Duration
	ProbeTimeout  time.Duration
	ReadyTimeout  time.Duration

	// NewChecker builds the readiness check for the configured port.
	// Defaults to a health.VersionChecker.
	NewChecker func(port int, timeout time.Duration) health.ServiceHealthChecker
	// GenerateSecret defaults to secret.Generate.
	GenerateSecret func() (string, error)
}

// Orchestrator runs the bring-up sequence once per call to Run.
type Orchestrator struct {
	cfg Config
}

// New creates an Orchestrator, filling in defaults for unset fields.
func New(cfg Config) *Orchestrator {
	if cfg.Layout.Dir == "" {
		cfg.Layout = config.NewLayout("")
	}
	if cfg.ConsoleBinary == "" {
		cfg.ConsoleBinary = config.DefaultConsoleBinary
	}
	if cfg.NewChecker == nil {
		cfg.NewChecker = func(port int, timeout time.Duration) health.ServiceHealthChecker {
			return health.NewVersionChecker(port, timeout)
		}
	}
	if cfg.GenerateSecret == nil {
		cfg.GenerateSecret = secret.Generate
	}
	if cfg.Launcher == nil {
		cfg.Launcher = console.ExecLauncher{}
	}
	return &Orchestrator{cfg: cfg}
}

// Run brings the development environment up. Missing prerequisites are not
// an error: the guidance message is printed and Result.Aborted is set.
func (o *Orchestrator) Run(ctx context.Context) (Result, error) {
	var result Result
	layout := o.cfg.Layout
	reporter := o.cfg.Reporter

	if missing := layout.MissingPrerequisites(); len(missing) > 0 {
		logging.Debug("Orchestrator", "Missing prerequisite files: %s", strings.Join(missing, ", "))
		reporter.Guidance()
		result.Aborted = true
		return result, nil
	}

	configPath := layout.ConfigPath()
	logging.Debug("Orchestrator", "Loading project config from %s", configPath)
	projectCfg, err := config.Load(configPath)
	if err != nil {
		return result, &StageError{Stage: StageLoad, Err: err}
	}
	if err := projectCfg.Validate(); err != nil {
		return result, &StageError{Stage: StageLoad, Err: err}
	}
	port, _ := projectCfg.Port()
	adminSecret, _ := projectCfg.AdminSecret()

	jwtKey, err := o.cfg.GenerateSecret()
	if err != nil {
		return result, &StageError{Stage: StageRender, Err: err}
	}
	// In memory only; the config file is never written back.
	projectCfg.Set(config.KeyJWTKey, jwtKey)

	if err := compose.RenderFile(layout.TemplatePath(), layout.DefinitionPath(), projectCfg); err != nil {
		return result, &StageError{Stage: StageRender, Err: err}
	}
	logging.Debug("Orchestrator", "Rendered %s", layout.DefinitionPath())

	supervisor := stack.NewSupervisor(o.cfg.Runtime, layout.StorageDir())
	firstRun, err := supervisor.Up(ctx, layout.DefinitionPath())
	if err != nil {
		return result, &StageError{Stage: StageStack, Err: err}
	}
	result.FirstRun = firstRun

	reporter.Launching()
	if firstRun {
		reporter.FirstRun()
	}

	poller := &health.Poller{
		Checker:  o.cfg.NewChecker(port, o.cfg.ProbeTimeout),
		Interval: o.cfg.ProbeInterval,
		Timeout:  o.cfg.ReadyTimeout,
	}
	attempts, err := poller.WaitUntilReady(ctx)
	result.Attempts = attempts
	if err != nil {
		return result, &StageError{Stage: StageReadiness, Err: err}
	}

	result.ConsoleURL = health.EndpointURL(port)
	reporter.Ready(result.ConsoleURL)

	spec := console.NewSpec(o.cfg.ConsoleBinary, result.ConsoleURL, adminSecret, layout.Dir)
	handle, err := o.cfg.Launcher.Launch(spec)
	if err != nil {
		return result, &StageError{Stage: StageConsole, Err: err}
	}
	logging.Debug("Orchestrator", "Console started with pid %d", handle.ID)

	if err := state.NewPIDFile(layout.PIDFilePath()).Record(handle.ID); err != nil {
		return result, &StageError{Stage: StageRecord, Err: err}
	}
	result.ConsolePID = handle.ID

	reporter.TeardownHint()
	return result, nil
}
