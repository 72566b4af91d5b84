//go:build !windows

package console

import "syscall"

// A new session detaches the console from the terminal's process group,
// so Ctrl+C in the shell that ran nhost does not reach it.
func detachedProcAttr() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{Setsid: true}
}
