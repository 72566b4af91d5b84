package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/exec"
	"strings"
	"time"

	"nhost/internal/color"
	"nhost/internal/compose"
	"nhost/internal/config"
	"nhost/internal/containerizer"
	"nhost/internal/state"

	"github.com/spf13/cobra"
)

// For mocking in tests
var (
	lookPath   = exec.LookPath
	pingDaemon = containerizer.PingDaemon
)

const daemonPingTimeout = 5 * time.Second

// doctorCheck is one line of the doctor report.
type doctorCheck struct {
	Name   string
	OK     bool
	Detail string
	// Informational checks never fail the command.
	Informational bool
}

type doctorOptions struct {
	composeCommand string
	consoleCommand string
	dockerHost     string
}

func newDoctorCmd() *cobra.Command {
	opts := &doctorOptions{}

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check that nhost dev can run in this project",
		Long: `Checks the tools and files nhost dev depends on without starting anything:
the container runtime and Hasura CLI on PATH, a reachable Docker daemon,
the project files, template placeholders the config cannot resolve, and
whether a previously launched console is still running.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			checks := runDoctorChecks(ctx, config.NewLayout(projectDir), opts)
			return printDoctorReport(cmd.OutOrStdout(), checks, styledOutput(cmd.OutOrStdout()))
		},
	}

	cmd.Flags().StringVar(&opts.composeCommand, "compose-command", config.DefaultComposeBinary, "Container runtime command to look for")
	cmd.Flags().StringVar(&opts.consoleCommand, "console-command", config.DefaultConsoleBinary, "Hasura CLI executable to look for")
	cmd.Flags().StringVar(&opts.dockerHost, "docker-host", "", "Docker daemon address (defaults to DOCKER_HOST)")

	return cmd
}

func styledOutput(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && color.Enabled(f)
}

func runDoctorChecks(ctx context.Context, layout config.Layout, opts *doctorOptions) []doctorCheck {
	var checks []doctorCheck

	checks = append(checks, binaryCheck("container runtime", opts.composeCommand))
	checks = append(checks, binaryCheck("hasura cli", opts.consoleCommand))

	pingCtx, cancel := context.WithTimeout(ctx, daemonPingTimeout)
	info, err := pingDaemon(pingCtx, opts.dockerHost)
	cancel()
	if err != nil {
		checks = append(checks, doctorCheck{Name: "docker daemon", Detail: err.Error()})
	} else {
		checks = append(checks, doctorCheck{Name: "docker daemon", OK: true, Detail: fmt.Sprintf("API %s (%s)", info.APIVersion, info.OSType)})
	}

	missing := layout.MissingPrerequisites()
	if len(missing) > 0 {
		checks = append(checks, doctorCheck{
			Name:   "project files",
			Detail: "missing " + strings.Join(missing, ", ") + "; run `nhost init`",
		})
	} else {
		checks = append(checks, doctorCheck{Name: "project files", OK: true, Detail: layout.ConfigPath()})
		checks = append(checks, templateCheck(layout))
	}

	checks = append(checks, consoleCheck(layout))
	return checks
}

func binaryCheck(name, command string) doctorCheck {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return doctorCheck{Name: name, Detail: "no command configured"}
	}
	path, err := lookPath(fields[0])
	if err != nil {
		return doctorCheck{Name: name, Detail: fmt.Sprintf("%s not found on PATH", fields[0])}
	}
	return doctorCheck{Name: name, OK: true, Detail: path}
}

func templateCheck(layout config.Layout) doctorCheck {
	const name = "template placeholders"

	cfg, err := config.Load(layout.ConfigPath())
	if err != nil {
		return doctorCheck{Name: name, Detail: err.Error()}
	}
	if err := cfg.Validate(); err != nil {
		return doctorCheck{Name: name, Detail: err.Error()}
	}
	// Injected by nhost dev on every run.
	cfg.Set(config.KeyJWTKey, "")

	data, err := os.ReadFile(layout.TemplatePath())
	if err != nil {
		return doctorCheck{Name: name, Detail: err.Error()}
	}
	if missing := compose.MissingVariables(string(data), cfg); len(missing) > 0 {
		return doctorCheck{Name: name, Detail: "not found in config: " + strings.Join(missing, ", ")}
	}
	return doctorCheck{Name: name, OK: true, Detail: "all resolved"}
}

func consoleCheck(layout config.Layout) doctorCheck {
	const name = "console process"

	pid, err := state.NewPIDFile(layout.PIDFilePath()).Read()
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return doctorCheck{Name: name, OK: true, Informational: true, Detail: "none recorded"}
	case err != nil:
		return doctorCheck{Name: name, Informational: true, Detail: err.Error()}
	case state.ProcessAlive(pid):
		return doctorCheck{Name: name, OK: true, Informational: true, Detail: fmt.Sprintf("pid %d is running", pid)}
	default:
		return doctorCheck{Name: name, Informational: true, Detail: fmt.Sprintf("pid %d is not running", pid)}
	}
}

func printDoctorReport(w io.Writer, checks []doctorCheck, styled bool) error {
	failed := 0
	for _, c := range checks {
		mark := "ok"
		style := color.SuccessStyle
		switch {
		case !c.OK && c.Informational:
			mark, style = "--", color.WarningStyle
		case !c.OK:
			mark, style = "!!", color.ErrorStyle
			failed++
		}
		if styled {
			mark = style.Render(mark)
		}
		fmt.Fprintf(w, "[%s] %-22s %s\n", mark, c.Name, c.Detail)
	}
	if failed > 0 {
		return fmt.Errorf("doctor found %d problem(s)", failed)
	}
	return nil
}
