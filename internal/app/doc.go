// Package app wires the real collaborators of `nhost dev` together: the
// compose runtime, the console launcher, the terminal reporter and the
// orchestrator that sequences them.
package app
