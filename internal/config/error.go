// internal/config/error.go
package config

import (
	"fmt"
	"strings"
)

// ConfigError collects everything wrong with one config file so that it
// can be reported in one go.
type ConfigError struct {
	Path    string
	Legacy  bool     // file was read as INI
	Missing []string // unresolved references, "NAME" or "NAME: message"
	Errors  []string // "section.key: problem"
}

func (e *ConfigError) Error() string {
	if !e.HasErrors() {
		return ""
	}

	var b strings.Builder
	if e.Path != "" {
		fmt.Fprintf(&b, "config %s", e.Path)
		if e.Legacy {
			b.WriteString(" (legacy INI)")
		}
		b.WriteString(":\n")
	}
	if len(e.Missing) > 0 {
		fmt.Fprintf(&b, "missing environment variables: %s\n", strings.Join(e.Missing, ", "))
	}
	if len(e.Errors) > 0 {
		b.WriteString("validation failed:\n")
		for _, msg := range e.Errors {
			fmt.Fprintf(&b, "  - %s\n", msg)
		}
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// HasErrors reports whether anything was collected.
func (e *ConfigError) HasErrors() bool {
	return len(e.Missing) > 0 || len(e.Errors) > 0
}

// Keys returns the config keys that failed validation, in order and
// without repeats, e.g. ["server.url", "naming.preset"].
func (e *ConfigError) Keys() []string {
	var keys []string
	seen := make(map[string]bool, len(e.Errors))
	for _, msg := range e.Errors {
		key, _, ok := strings.Cut(msg, ":")
		if !ok || seen[key] {
			continue
		}
		seen[key] = true
		keys = append(keys, key)
	}
	return keys
}
