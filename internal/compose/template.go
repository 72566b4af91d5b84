package compose

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"

	"nhost/internal/config"
)

// ErrTemplateRender is returned when a template references a key that is
// absent from the bindings or uses an expression the renderer does not support.
var ErrTemplateRender = errors.New("failed to render service-group template")

var (
	// Matches any {{ ... }} block, non-greedy, including ones spanning lines.
	placeholderPattern = regexp.MustCompile(`(?s)\{\{(.*?)\}\}`)
	// Statement and comment blocks are not supported and must not pass through.
	tagPattern = regexp.MustCompile(`(?s)\{%.*?%\}|\{#.*?#\}`)
	// Valid placeholder bodies: a key or a dotted path of keys.
	keyPattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*(\.[a-zA-Z_][a-zA-Z0-9_]*)*$`)
)

// Bindings resolves placeholder keys. config.ProjectConfig implements it.
type Bindings interface {
	Lookup(key string) (interface{}, bool)
}

// Render replaces every {{ key }} placeholder in template with the bound
// value. It has no side effects: identical inputs always produce identical
// output. Substituted values are not scanned for further placeholders.
//
// Every unresolvable placeholder is reported in a single error so a broken
// template can be fixed in one pass.
func Render(template string, bindings Bindings) (string, error) {
	var (
		b        strings.Builder
		problems []string
		seen     = make(map[string]bool)
		last     int
	)

	for _, tag := range tagPattern.FindAllString(template, -1) {
		if !seen[tag] {
			seen[tag] = true
			problems = append(problems, fmt.Sprintf("unsupported template tag '%s'", strings.Join(strings.Fields(tag), " ")))
		}
	}

	for _, loc := range placeholderPattern.FindAllStringSubmatchIndex(template, -1) {
		b.WriteString(template[last:loc[0]])
		last = loc[1]

		fullMatch := template[loc[0]:loc[1]]
		key := strings.TrimSpace(template[loc[2]:loc[3]])

		value, problem := resolve(key, bindings)
		if problem != "" {
			if !seen[fullMatch] {
				seen[fullMatch] = true
				problems = append(problems, problem)
			}
			continue
		}
		b.WriteString(value)
	}
	b.WriteString(template[last:])

	if len(problems) > 0 {
		return "", fmt.Errorf("%w: %s", ErrTemplateRender, strings.Join(problems, "; "))
	}
	return b.String(), nil
}

func resolve(key string, bindings Bindings) (string, string) {
	if !keyPattern.MatchString(key) {
		return "", fmt.Sprintf("unsupported expression '{{ %s }}'", key)
	}
	if bindings == nil {
		return "", fmt.Sprintf("template variable '%s' not found in config", key)
	}
	raw, ok := bindings.Lookup(key)
	if !ok {
		return "", fmt.Sprintf("template variable '%s' not found in config", key)
	}
	value, err := config.ScalarString(raw)
	if err != nil {
		return "", fmt.Sprintf("cannot convert variable '%s' to string: %v", key, err)
	}
	return value, ""
}

// ExtractVariables returns the unique placeholder keys of template in order
// of first appearance. Unsupported expressions are skipped.
func ExtractVariables(template string) []string {
	var keys []string
	seen := make(map[string]bool)
	for _, match := range placeholderPattern.FindAllStringSubmatch(template, -1) {
		key := strings.TrimSpace(match[1])
		if !keyPattern.MatchString(key) || seen[key] {
			continue
		}
		seen[key] = true
		keys = append(keys, key)
	}
	return keys
}

// MissingVariables lists the template keys that bindings cannot resolve.
func MissingVariables(template string, bindings Bindings) []string {
	var missing []string
	for _, key := range ExtractVariables(template) {
		if _, ok := bindings.Lookup(key); !ok {
			missing = append(missing, key)
		}
	}
	return missing
}

// WriteDefinition writes rendered text to path, replacing any previous content.
func WriteDefinition(path, rendered string) error {
	if err := os.WriteFile(path, []byte(rendered), 0644); err != nil {
		return fmt.Errorf("failed to write service-group definition %s: %w", path, err)
	}
	return nil
}

// RenderFile reads the template at templatePath, renders it with bindings
// and writes the result to outPath. Nothing is written when rendering fails.
func RenderFile(templatePath, outPath string, bindings Bindings) error {
	data, err := os.ReadFile(templatePath)
	if err != nil {
		return fmt.Errorf("failed to read service-group template %s: %w", templatePath, err)
	}
	rendered, err := Render(string(data), bindings)
	if err != nil {
		return err
	}
	return WriteDefinition(outPath, rendered)
}
