// Package health gates console startup on the GraphQL engine being reachable.
//
// VersionChecker performs a single GET against /v1/version; Poller repeats
// it until the first success. The default wait has no upper bound, matching
// how `nhost dev` behaves when the engine is slow to boot: the developer
// interrupts the command if it never comes up.
package health
