package compose

import (
	"os"
	"path/filepath"
	"testing"

	"nhost/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	tests := []struct {
		name     string
		template string
		bindings config.ProjectConfig
		want     string
		wantErr  string
	}{
		{
			name:     "simple template replacement",
			template: "port: {{ graphql_server_port }}",
			bindings: config.ProjectConfig{"graphql_server_port": 1337},
			want:     "port: 1337",
		},
		{
			name:     "template without spaces",
			template: "user: {{postgres_user}}",
			bindings: config.ProjectConfig{"postgres_user": "postgres"},
			want:     "user: postgres",
		},
		{
			name:     "template with extra spaces",
			template: "Value: {{   spaced   }}",
			bindings: config.ProjectConfig{"spaced": "test"},
			want:     "Value: test",
		},
		{
			name:     "repeated and multiple placeholders",
			template: "{{ a }}-{{ b }}-{{ a }}",
			bindings: config.ProjectConfig{"a": "x", "b": true},
			want:     "x-true-x",
		},
		{
			name:     "dotted path",
			template: "image: hasura/graphql-engine:{{ hasura.version }}",
			bindings: config.ProjectConfig{"hasura": map[string]interface{}{"version": "v1.3.3"}},
			want:     "image: hasura/graphql-engine:v1.3.3",
		},
		{
			name:     "no templates",
			template: "services:\n  db:\n    image: postgres\n",
			bindings: config.ProjectConfig{},
			want:     "services:\n  db:\n    image: postgres\n",
		},
		{
			name:     "compose interpolation left alone",
			template: "password: ${POSTGRES_PASSWORD}",
			bindings: config.ProjectConfig{},
			want:     "password: ${POSTGRES_PASSWORD}",
		},
		{
			name:     "substituted values are not re-expanded",
			template: "{{ a }}",
			bindings: config.ProjectConfig{"a": "{{ b }}", "b": "nope"},
			want:     "{{ b }}",
		},
		{
			name:     "missing variable",
			template: "secret: {{ missing }}",
			bindings: config.ProjectConfig{},
			wantErr:  "template variable 'missing' not found",
		},
		{
			name:     "unsupported filter expression",
			template: "{{ name | upper }}",
			bindings: config.ProjectConfig{"name": "x"},
			wantErr:  "unsupported expression",
		},
		{
			name:     "placeholder spanning lines",
			template: "port: {{\n  graphql_server_port\n}}",
			bindings: config.ProjectConfig{"graphql_server_port": 1337},
			want:     "port: 1337",
		},
		{
			name:     "missing variable spanning lines",
			template: "port: {{\n missing \n}}",
			bindings: config.ProjectConfig{},
			wantErr:  "template variable 'missing' not found",
		},
		{
			name:     "statement tag",
			template: "{% if port %}x{% endif %}",
			bindings: config.ProjectConfig{"port": 1},
			wantErr:  "unsupported template tag '{% if port %}'",
		},
		{
			name:     "comment tag",
			template: "a: 1\n{# comment #}\n",
			bindings: config.ProjectConfig{},
			wantErr:  "unsupported template tag '{# comment #}'",
		},
		{
			name:     "map value is not renderable",
			template: "{{ hasura }}",
			bindings: config.ProjectConfig{"hasura": map[string]interface{}{"version": "v1"}},
			wantErr:  "cannot convert variable 'hasura'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Render(tt.template, tt.bindings)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrTemplateRender)
				assert.Contains(t, err.Error(), tt.wantErr)
				assert.Empty(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRender_ReportsAllMissingKeys(t *testing.T) {
	_, err := Render("{{ one }} {{ two }} {{ one }}", config.ProjectConfig{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "'one'")
	assert.Contains(t, err.Error(), "'two'")
}

func TestRender_Deterministic(t *testing.T) {
	template := "a={{ a }} b={{ b }} c={{ c.d }}"
	bindings := config.ProjectConfig{"a": 1, "b": "two", "c": map[string]interface{}{"d": 3.5}}

	first, err := Render(template, bindings)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := Render(template, bindings)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestRender_EveryPlaceholderResolved(t *testing.T) {
	template := `version: "3.6"
services:
  graphql-engine:
    ports:
      - "{{ graphql_server_port }}:8080"
    environment:
      HASURA_GRAPHQL_ADMIN_SECRET: {{ graphql_admin_secret }}
      HASURA_GRAPHQL_JWT_SECRET: '{"type":"HS256", "key": "{{ graphql_jwt_key }}"}'
`
	bindings := config.ProjectConfig{
		"graphql_server_port":  1337,
		"graphql_admin_secret": "abc123",
		"graphql_jwt_key":      "deadbeef",
	}

	rendered, err := Render(template, bindings)
	require.NoError(t, err)
	assert.NotContains(t, rendered, "{{")
	assert.Contains(t, rendered, `"1337:8080"`)
	assert.Contains(t, rendered, `"key": "deadbeef"`)
}

func TestExtractVariables(t *testing.T) {
	got := ExtractVariables("{{ b }} {{a}} {{ b }} {{ c.d }} {{ x | y }}")
	assert.Equal(t, []string{"b", "a", "c.d"}, got)
	assert.Empty(t, ExtractVariables("plain"))
}

func TestMissingVariables(t *testing.T) {
	bindings := config.ProjectConfig{"a": 1}
	assert.Equal(t, []string{"b"}, MissingVariables("{{ a }} {{ b }}", bindings))
	assert.Empty(t, MissingVariables("{{ a }}", bindings))
}

func TestRenderFile(t *testing.T) {
	dir := t.TempDir()
	templatePath := filepath.Join(dir, config.TemplateFileName)
	outPath := filepath.Join(dir, config.DefinitionFileName)
	require.NoError(t, os.WriteFile(templatePath, []byte("port: {{ p }}\n"), 0644))
	require.NoError(t, os.WriteFile(outPath, []byte("stale content that is much longer than the new one\n"), 0644))

	err := RenderFile(templatePath, outPath, config.ProjectConfig{"p": 1337})
	require.NoError(t, err)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Equal(t, "port: 1337\n", string(data))
}

func TestRenderFile_FailureDoesNotWrite(t *testing.T) {
	dir := t.TempDir()
	templatePath := filepath.Join(dir, config.TemplateFileName)
	outPath := filepath.Join(dir, config.DefinitionFileName)
	require.NoError(t, os.WriteFile(templatePath, []byte("port: {{ missing }}\n"), 0644))

	err := RenderFile(templatePath, outPath, config.ProjectConfig{})
	assert.ErrorIs(t, err, ErrTemplateRender)
	_, statErr := os.Stat(outPath)
	assert.True(t, os.IsNotExist(statErr))
}

func TestRenderFile_MissingTemplate(t *testing.T) {
	dir := t.TempDir()
	err := RenderFile(filepath.Join(dir, "nope"), filepath.Join(dir, "out"), config.ProjectConfig{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read service-group template")
}
