// Package orchestrator drives `nhost dev` from a project directory to a
// running development environment.
//
// # Stages
//
// A run walks through a fixed, linear sequence. Each stage blocks until it
// completes and feeds the next; no stage is retried and nothing is rolled
// back when a later stage fails:
//
//  1. prerequisites: the service-group template and the project config must
//     exist. If either is missing the run prints guidance and stops without
//     touching the filesystem or the container runtime.
//  2. load: the project config is read and validated.
//  3. render: a fresh JWT secret is injected into the in-memory config and
//     the template is rendered to docker-compose.yaml.
//  4. stack: the rendered definition is validated and the group is started
//     detached. The first-run flag is taken before the start call.
//  5. readiness: the GraphQL engine version endpoint is polled until it
//     answers.
//  6. console: the Hasura console is spawned detached and forgotten.
//  7. record: the console PID is written to .console.pid for `nhost destroy`.
//
// Failures from stage 2 onwards are returned as *StageError.
package orchestrator
