package reporting

import (
	"fmt"
	"io"

	"nhost/internal/color"

	"github.com/charmbracelet/lipgloss"
)

// Messages printed by `nhost dev`. Scripts and docs match on them, so they
// are kept byte-for-byte stable.
const (
	MsgGuidance     = "Please run `nhost init` before starting a development environment."
	MsgLaunching    = "development environment is launching..."
	MsgFirstRun     = "This seems to be the first time running nhost dev in this project so it might take longer to start..."
	MsgReadyFormat  = "ready...console is running at %s"
	MsgTeardownHint = "to tear down your environment simply issue 'nhost destroy'"
)

// Reporter receives the human-facing progress of a bring-up run.
type Reporter interface {
	// Guidance explains that the project has not been initialised.
	Guidance()
	// Launching announces that the service group was started.
	Launching()
	// FirstRun warns that a first start takes longer.
	FirstRun()
	// Ready announces the console URL.
	Ready(consoleURL string)
	// TeardownHint tells the developer how to stop everything.
	TeardownHint()
	// Warning reports a non-fatal problem.
	Warning(msg string)
}

// ConsoleReporter writes progress lines to a terminal or any other writer.
type ConsoleReporter struct {
	out    io.Writer
	styled bool
}

// NewConsoleReporter creates a ConsoleReporter. Styling should only be
// enabled for terminals (see color.Enabled).
func NewConsoleReporter(out io.Writer, styled bool) *ConsoleReporter {
	return &ConsoleReporter{out: out, styled: styled}
}

func (c *ConsoleReporter) println(style lipgloss.Style, msg string) {
	if c.styled {
		msg = style.Render(msg)
	}
	fmt.Fprintln(c.out, msg)
}

func (c *ConsoleReporter) Guidance() {
	c.println(color.WarningStyle, MsgGuidance)
}

func (c *ConsoleReporter) Launching() {
	c.println(color.InfoStyle, MsgLaunching)
}

func (c *ConsoleReporter) FirstRun() {
	c.println(color.WarningStyle, MsgFirstRun)
}

func (c *ConsoleReporter) Ready(consoleURL string) {
	if c.styled {
		fmt.Fprintln(c.out, color.SuccessStyle.Render("ready...console is running at ")+color.URLStyle.Render(consoleURL))
		return
	}
	fmt.Fprintf(c.out, MsgReadyFormat+"\n", consoleURL)
}

func (c *ConsoleReporter) TeardownHint() {
	c.println(color.MutedStyle, MsgTeardownHint)
}

func (c *ConsoleReporter) Warning(msg string) {
	c.println(color.WarningStyle, msg)
}
