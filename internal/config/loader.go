package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// For mocking in tests
var osReadFile = os.ReadFile

// Load reads and decodes the project configuration at path. The decoder is
// chosen by extension: .toml uses TOML, everything else is YAML. String
// values have ${VAR} references expanded (see expandValues).
func Load(path string) (ProjectConfig, error) {
	data, err := osReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrConfigMissing, path)
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	cfg, err := decode(path, data)
	if err != nil {
		return nil, err
	}

	lookup, err := newEnvLookup(filepath.Join(filepath.Dir(path), DotEnvFileName))
	if err != nil {
		return nil, err
	}
	expanded, ok := expandValues(map[string]interface{}(cfg), lookup).(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("%w: %s: unexpected document shape", ErrConfigParse, path)
	}
	return ProjectConfig(expanded), nil
}

func decode(path string, data []byte) (ProjectConfig, error) {
	cfg := ProjectConfig{}

	if strings.EqualFold(filepath.Ext(path), ".toml") {
		if err := toml.Unmarshal(data, (*map[string]interface{})(&cfg)); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrConfigParse, path, err)
		}
		return cfg, nil
	}

	// Decode into a node first so a top-level list or scalar is reported
	// as a parse error instead of a confusing type mismatch.
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrConfigParse, path, err)
	}
	if len(doc.Content) == 0 {
		// Empty document: nothing to decode, Validate will report missing keys.
		return cfg, nil
	}
	if doc.Content[0].Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: %s: top-level value must be a mapping", ErrConfigParse, path)
	}
	if err := doc.Content[0].Decode((*map[string]interface{})(&cfg)); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrConfigParse, path, err)
	}
	return cfg, nil
}
