package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"regexp"

	"github.com/joho/godotenv"
)

// For mocking in tests
var osLookupEnv = os.LookupEnv

var envRefPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)(?::-([^}]*))?\}`)

type envLookup func(string) (string, bool)

// newEnvLookup returns a lookup that consults the dotenv file at path first
// and then the process environment. A missing dotenv file is not an error.
func newEnvLookup(path string) (envLookup, error) {
	fileVars, err := godotenv.Read(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s: %v", ErrConfigParse, path, err)
		}
		fileVars = nil
	}

	return func(name string) (string, bool) {
		if v, ok := fileVars[name]; ok {
			return v, true
		}
		return osLookupEnv(name)
	}, nil
}

// expandValues walks decoded configuration values and expands ${VAR} and
// ${VAR:-default} references in strings. Unset variables without a default
// expand to the empty string.
func expandValues(value interface{}, lookup envLookup) interface{} {
	switch v := value.(type) {
	case string:
		return expandString(v, lookup)
	case map[string]interface{}:
		out := make(map[string]interface{}, len(v))
		for key, inner := range v {
			out[key] = expandValues(inner, lookup)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(v))
		for i, inner := range v {
			out[i] = expandValues(inner, lookup)
		}
		return out
	default:
		return value
	}
}

func expandString(s string, lookup envLookup) string {
	return envRefPattern.ReplaceAllStringFunc(s, func(ref string) string {
		m := envRefPattern.FindStringSubmatch(ref)
		if val, ok := lookup(m[1]); ok && val != "" {
			return val
		}
		return m[2]
	})
}
