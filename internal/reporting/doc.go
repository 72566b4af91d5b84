// Package reporting prints the developer-facing progress of `nhost dev`.
//
// Progress messages are separate from logs: logs go through pkg/logging to
// stderr and are meant for troubleshooting, while the Reporter prints the
// short status lines a developer watches for on stdout.
package reporting
