// Package config loads the project configuration that drives `nhost dev`.
//
// A project is a directory initialised by `nhost init`. It contains the
// service-group template and the project configuration; the bring-up
// sequence writes the rendered definition and the console PID file next to
// them. Layout resolves all of these paths against a project directory.
//
// # Configuration File
//
// The configuration is a flat YAML mapping (config.yaml). A TOML file
// (config.toml) with the same keys is accepted when no YAML file exists.
//
//	graphql_server_port: 8080
//	graphql_admin_secret: "${HASURA_ADMIN_SECRET:-123456}"
//	postgres_user: postgres
//	hasura:
//	  version: v1.3.3
//
// Two keys are required:
//
//   - graphql_server_port: the port the GraphQL engine is published on
//   - graphql_admin_secret: the admin secret passed to the console
//
// graphql_jwt_key is always overwritten in memory with a freshly generated
// key before the template is rendered. The file on disk is never modified.
//
// # Environment Variable Expansion
//
// String values support ${NAME} and ${NAME:-default}. Variables are looked
// up in an optional .env file next to the configuration first, then in the
// process environment.
//
// # Errors
//
// Load reports ErrConfigMissing when the file does not exist and
// ErrConfigParse when it cannot be decoded. ProjectConfig.Validate reports
// ErrConfigInvalid for missing or malformed required keys.
package config
