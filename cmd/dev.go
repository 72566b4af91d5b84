package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"nhost/internal/app"
	"nhost/internal/config"

	"github.com/spf13/cobra"
)

type devOptions struct {
	composeCommand string
	consoleCommand string
	probeInterval  time.Duration
	probeTimeout   time.Duration
	readyTimeout   time.Duration
	copyURL        bool
}

func newDevCmd() *cobra.Command {
	opts := &devOptions{}

	cmd := &cobra.Command{
		Use:   "dev",
		Short: "Start a local development environment",
		Long: `Renders docker-compose.yaml from docker-compose.example and config.yaml,
starts the service group detached, waits for the GraphQL engine to answer and
then launches the Hasura console in the background.

A new JWT secret is generated on every run, so tokens issued by a previous
run stop working. The console keeps running after this command exits; its
process id is stored in .console.pid.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDev(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.composeCommand, "compose-command", config.DefaultComposeBinary, `Container runtime command, e.g. "docker compose"`)
	cmd.Flags().StringVar(&opts.consoleCommand, "console-command", config.DefaultConsoleBinary, "Hasura CLI executable used to run the console")
	cmd.Flags().DurationVar(&opts.probeInterval, "probe-interval", app.DefaultProbeInterval, "Pause between readiness probes (0 retries immediately)")
	cmd.Flags().DurationVar(&opts.probeTimeout, "probe-timeout", app.DefaultProbeTimeout, "Timeout of a single readiness probe")
	cmd.Flags().DurationVar(&opts.readyTimeout, "ready-timeout", 0, "Give up waiting for the GraphQL engine after this long (0 waits forever)")
	cmd.Flags().BoolVar(&opts.copyURL, "copy-url", false, "Copy the console URL to the clipboard once ready")

	return cmd
}

func runDev(cmd *cobra.Command, opts *devOptions) error {
	cfg := app.NewConfig(projectDir, debugMode)
	cfg.ComposeCommand = opts.composeCommand
	cfg.ConsoleCommand = opts.consoleCommand
	cfg.ProbeInterval = opts.probeInterval
	cfg.ProbeTimeout = opts.probeTimeout
	cfg.ReadyTimeout = opts.readyTimeout
	cfg.CopyURL = opts.copyURL
	cfg.Stdout = cmd.OutOrStdout()
	cfg.Stderr = cmd.ErrOrStderr()

	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	application, err := app.NewApplication(cfg)
	if err != nil {
		return err
	}
	_, err = application.Run(ctx)
	return err
}
