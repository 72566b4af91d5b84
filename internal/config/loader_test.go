package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Helper function to create a temporary config file
func createTempConfigFile(t *testing.T, dir string, filename string, content string) string {
	t.Helper()
	tempFilePath := filepath.Join(dir, filename)
	err := os.WriteFile(tempFilePath, []byte(content), 0644)
	require.NoError(t, err)
	return tempFilePath
}

func withEnv(t *testing.T, vars map[string]string) {
	t.Helper()
	original := osLookupEnv
	osLookupEnv = func(name string) (string, bool) {
		v, ok := vars[name]
		return v, ok
	}
	t.Cleanup(func() { osLookupEnv = original })
}

func TestLoad_YAML(t *testing.T) {
	withEnv(t, nil)
	dir := t.TempDir()
	path := createTempConfigFile(t, dir, ConfigFileName, `
graphql_server_port: 1337
graphql_admin_secret: abc123
postgres_user: postgres
hasura:
  version: v1.3.3
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	port, err := cfg.Port()
	require.NoError(t, err)
	assert.Equal(t, 1337, port)

	secret, err := cfg.AdminSecret()
	require.NoError(t, err)
	assert.Equal(t, "abc123", secret)

	version, ok := cfg.Lookup("hasura.version")
	assert.True(t, ok)
	assert.Equal(t, "v1.3.3", version)
}

func TestLoad_TOML(t *testing.T) {
	withEnv(t, nil)
	dir := t.TempDir()
	path := createTempConfigFile(t, dir, TOMLConfigFileName, `
graphql_server_port = 8080
graphql_admin_secret = "s3cret"

[hasura]
version = "v2.0.0"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	port, err := cfg.Port()
	require.NoError(t, err)
	assert.Equal(t, 8080, port)

	version, ok := cfg.Lookup("hasura.version")
	assert.True(t, ok)
	assert.Equal(t, "v2.0.0", version)
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), ConfigFileName))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConfigMissing)
}

func TestLoad_ParseErrors(t *testing.T) {
	withEnv(t, nil)
	tests := []struct {
		name     string
		filename string
		content  string
	}{
		{name: "malformed yaml", filename: ConfigFileName, content: "graphql_server_port: [1337\n"},
		{name: "top-level list", filename: ConfigFileName, content: "- a\n- b\n"},
		{name: "top-level scalar", filename: ConfigFileName, content: "just a string\n"},
		{name: "malformed toml", filename: TOMLConfigFileName, content: "graphql_server_port = \n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := createTempConfigFile(t, t.TempDir(), tt.filename, tt.content)
			_, err := Load(path)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrConfigParse)
		})
	}
}

func TestLoad_EmptyDocumentFailsValidation(t *testing.T) {
	withEnv(t, nil)
	path := createTempConfigFile(t, t.TempDir(), ConfigFileName, "")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.ErrorIs(t, cfg.Validate(), ErrConfigInvalid)
}

func TestLoad_ExpandsEnvironment(t *testing.T) {
	withEnv(t, map[string]string{
		"ADMIN_SECRET": "from-process",
		"DB_USER":      "from-process",
	})
	dir := t.TempDir()
	createTempConfigFile(t, dir, DotEnvFileName, "DB_USER=from-dotenv\n")
	path := createTempConfigFile(t, dir, ConfigFileName, `
graphql_server_port: "${PORT:-9090}"
graphql_admin_secret: "${ADMIN_SECRET}"
postgres_user: "${DB_USER}"
nested:
  items: ["${DB_USER}-a", "plain"]
unset: "x${NOT_SET}y"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	port, err := cfg.Port()
	require.NoError(t, err)
	assert.Equal(t, 9090, port)

	secret, err := cfg.AdminSecret()
	require.NoError(t, err)
	assert.Equal(t, "from-process", secret)

	assert.Equal(t, "from-dotenv", cfg["postgres_user"], ".env takes precedence over the process environment")
	assert.Equal(t, "xy", cfg["unset"])

	items, ok := cfg.Lookup("nested.items")
	require.True(t, ok)
	assert.Equal(t, []interface{}{"from-dotenv-a", "plain"}, items)
}

func TestLoad_DoesNotModifyFile(t *testing.T) {
	withEnv(t, nil)
	content := "graphql_server_port: 1337\ngraphql_admin_secret: abc123\n"
	path := createTempConfigFile(t, t.TempDir(), ConfigFileName, content)

	cfg, err := Load(path)
	require.NoError(t, err)
	cfg.Set(KeyJWTKey, "injected")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, content, string(data))
}
