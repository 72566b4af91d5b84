// Package color provides the terminal styles used for nhost's progress output.
//
// Styles are lipgloss styles with adaptive light and dark variants. Callers
// decide whether to apply them with Enabled, which turns styling off when
// NO_COLOR is set or the output is not a terminal (for example when the
// output of `nhost dev` is piped into a file).
//
// # Usage Example
//
//	if color.Enabled(os.Stdout) {
//	    fmt.Println(color.SuccessStyle.Render("ready"))
//	}
package color
