// Package containerizer wraps the container runtime that runs the service
// group. The runtime is an opaque collaborator: the compose CLI is asked to
// validate a definition and to start it detached, and its output is passed
// through unmodified when it refuses. PingDaemon uses the Docker SDK to
// check that a daemon is reachable at all.
package containerizer
