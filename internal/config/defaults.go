package config

import (
	"os"
	"path/filepath"
)

// File and directory names inside a project, relative to the project root.
const (
	TemplateFileName     = "docker-compose.example"
	ConfigFileName       = "config.yaml"
	TOMLConfigFileName   = "config.toml"
	DefinitionFileName   = "docker-compose.yaml"
	StorageDirName       = "db_data"
	ConsolePIDFileName   = ".console.pid"
	DotEnvFileName       = ".env"
	DefaultConsoleBinary = "hasura"
	DefaultComposeBinary = "docker-compose"
)

// Layout resolves the well-known project paths against a project directory.
type Layout struct {
	Dir string
}

// NewLayout returns a Layout rooted at dir, or at the working directory
// when dir is empty.
func NewLayout(dir string) Layout {
	if dir == "" {
		dir = "."
	}
	return Layout{Dir: dir}
}

func (l Layout) path(name string) string {
	return filepath.Join(l.Dir, name)
}

// TemplatePath is the unrendered service-group template.
func (l Layout) TemplatePath() string { return l.path(TemplateFileName) }

// DefinitionPath is the rendered service-group definition.
func (l Layout) DefinitionPath() string { return l.path(DefinitionFileName) }

// StorageDir is the database data directory created by the first start.
func (l Layout) StorageDir() string { return l.path(StorageDirName) }

// PIDFilePath is where the console process id is recorded.
func (l Layout) PIDFilePath() string { return l.path(ConsolePIDFileName) }

// DotEnvPath is the optional file consulted for ${VAR} expansion.
func (l Layout) DotEnvPath() string { return l.path(DotEnvFileName) }

// ConfigPath returns the project configuration file. config.yaml is
// preferred; config.toml is used only when the YAML file is absent.
// When neither exists the YAML path is returned so errors name it.
func (l Layout) ConfigPath() string {
	yamlPath := l.path(ConfigFileName)
	if fileExists(yamlPath) {
		return yamlPath
	}
	tomlPath := l.path(TOMLConfigFileName)
	if fileExists(tomlPath) {
		return tomlPath
	}
	return yamlPath
}

// MissingPrerequisites lists the input files that must exist before a run.
// An empty result means the project has been initialised.
func (l Layout) MissingPrerequisites() []string {
	var missing []string
	if !fileExists(l.TemplatePath()) {
		missing = append(missing, l.TemplatePath())
	}
	if !fileExists(l.ConfigPath()) {
		missing = append(missing, l.ConfigPath())
	}
	return missing
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
