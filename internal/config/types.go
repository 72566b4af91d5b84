package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrConfigMissing is returned when the project configuration file does not exist.
	ErrConfigMissing = errors.New("project configuration not found")
	// ErrConfigParse is returned when the project configuration cannot be decoded.
	ErrConfigParse = errors.New("project configuration could not be parsed")
	// ErrConfigInvalid is returned when a required key is absent or malformed.
	ErrConfigInvalid = errors.New("project configuration is invalid")
)

const (
	// KeyServerPort holds the port the GraphQL engine is published on.
	KeyServerPort = "graphql_server_port"
	// KeyAdminSecret holds the admin secret handed to the console.
	KeyAdminSecret = "graphql_admin_secret"
	// KeyJWTKey receives the freshly generated JWT signing key on every run.
	KeyJWTKey = "graphql_jwt_key"
)

// ProjectConfig is the decoded project configuration. Values keep the types
// produced by the decoder (string, int, int64, float64, bool, nested maps).
type ProjectConfig map[string]interface{}

// Lookup resolves a key, following dots through nested maps
// ("hasura.version" looks up "version" inside the "hasura" map).
// A literal key containing dots takes precedence over the nested path.
func (c ProjectConfig) Lookup(path string) (interface{}, bool) {
	if c == nil {
		return nil, false
	}
	if v, ok := c[path]; ok {
		return v, true
	}

	parts := strings.Split(path, ".")
	if len(parts) < 2 {
		return nil, false
	}

	var current interface{} = map[string]interface{}(c)
	for _, part := range parts {
		m, ok := asMap(current)
		if !ok {
			return nil, false
		}
		current, ok = m[part]
		if !ok {
			return nil, false
		}
	}
	return current, true
}

// Set stores a top-level value. It is the only mutation the orchestrator
// performs on a loaded configuration.
func (c ProjectConfig) Set(key string, value interface{}) {
	c[key] = value
}

// Port returns the configured GraphQL engine port.
func (c ProjectConfig) Port() (int, error) {
	raw, ok := c.Lookup(KeyServerPort)
	if !ok || raw == nil {
		return 0, fmt.Errorf("%w: %s is required", ErrConfigInvalid, KeyServerPort)
	}

	var port int
	switch v := raw.(type) {
	case int:
		port = v
	case int64:
		port = int(v)
	case float64:
		if v != float64(int(v)) {
			return 0, fmt.Errorf("%w: %s must be a whole number, got %v", ErrConfigInvalid, KeyServerPort, v)
		}
		port = int(v)
	case string:
		p, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0, fmt.Errorf("%w: %s must be numeric, got %q", ErrConfigInvalid, KeyServerPort, v)
		}
		port = p
	default:
		return 0, fmt.Errorf("%w: %s has unsupported type %T", ErrConfigInvalid, KeyServerPort, raw)
	}

	if port < 1 || port > 65535 {
		return 0, fmt.Errorf("%w: %s out of range: %d", ErrConfigInvalid, KeyServerPort, port)
	}
	return port, nil
}

// AdminSecret returns the configured admin secret as text. Numeric secrets
// written unquoted in YAML are accepted.
func (c ProjectConfig) AdminSecret() (string, error) {
	raw, ok := c.Lookup(KeyAdminSecret)
	if !ok || raw == nil {
		return "", fmt.Errorf("%w: %s is required", ErrConfigInvalid, KeyAdminSecret)
	}
	secret, err := ScalarString(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrConfigInvalid, KeyAdminSecret, err)
	}
	if secret == "" {
		return "", fmt.Errorf("%w: %s must not be empty", ErrConfigInvalid, KeyAdminSecret)
	}
	return secret, nil
}

// Validate checks the keys the bring-up sequence depends on.
func (c ProjectConfig) Validate() error {
	if _, err := c.Port(); err != nil {
		return err
	}
	if _, err := c.AdminSecret(); err != nil {
		return err
	}
	return nil
}

// ScalarString converts a decoded scalar to its text form. Maps and lists
// are rejected since they have no single textual rendering.
func ScalarString(value interface{}) (string, error) {
	switch v := value.(type) {
	case string:
		return v, nil
	case int:
		return strconv.Itoa(v), nil
	case int32:
		return strconv.FormatInt(int64(v), 10), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case uint64:
		return strconv.FormatUint(v, 10), nil
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32), nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	case bool:
		return strconv.FormatBool(v), nil
	case nil:
		return "", nil
	case fmt.Stringer:
		return v.String(), nil
	default:
		return "", fmt.Errorf("value of type %T cannot be rendered as text", value)
	}
}

func asMap(v interface{}) (map[string]interface{}, bool) {
	switch m := v.(type) {
	case map[string]interface{}:
		return m, true
	case ProjectConfig:
		return m, true
	default:
		return nil, false
	}
}
