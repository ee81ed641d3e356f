// internal/config/error_test.go
package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestConfigError_Error_Empty(t *testing.T) {
	e := &ConfigError{Path: "/etc/episoder/config.toml"}
	if got := e.Error(); got != "" {
		t.Errorf("expected empty string for no errors, got %q", got)
	}
}

func TestConfigError_Error_MissingVars(t *testing.T) {
	e := &ConfigError{
		Path:    "/etc/episoder/config.toml",
		Missing: []string{"OPENLIST_PASSWORD", "SECRET"},
	}
	got := e.Error()
	if !strings.Contains(got, "missing environment variables") {
		t.Errorf("expected 'missing environment variables', got %q", got)
	}
	if !strings.Contains(got, "OPENLIST_PASSWORD") || !strings.Contains(got, "SECRET") {
		t.Errorf("expected var names in error, got %q", got)
	}
	if !strings.Contains(got, "/etc/episoder/config.toml") {
		t.Errorf("expected path in error, got %q", got)
	}
}

func TestConfigError_Error_ValidationErrors(t *testing.T) {
	e := &ConfigError{
		Errors: []string{"server.url: required", "log.level: invalid"},
	}
	got := e.Error()
	if !strings.Contains(got, "validation failed") {
		t.Errorf("expected 'validation failed', got %q", got)
	}
	if !strings.Contains(got, "server.url") || !strings.Contains(got, "log.level") {
		t.Errorf("expected field names in error, got %q", got)
	}
}

func TestConfigError_Error_Both(t *testing.T) {
	e := &ConfigError{
		Missing: []string{"OPENLIST_PASSWORD"},
		Errors:  []string{"server.url: invalid"},
	}
	got := e.Error()
	if !strings.Contains(got, "missing environment variables") {
		t.Errorf("expected missing vars section, got %q", got)
	}
	if !strings.Contains(got, "validation failed") {
		t.Errorf("expected validation section, got %q", got)
	}
}

func TestConfigError_Error_Legacy(t *testing.T) {
	e := &ConfigError{Path: "/nas/episode_renamer.conf", Legacy: true, Errors: []string{"server.url: required"}}
	got := e.Error()
	if !strings.HasPrefix(got, "config /nas/episode_renamer.conf (legacy INI):\n") {
		t.Errorf("expected legacy path header, got %q", got)
	}
	if strings.HasSuffix(got, "\n") {
		t.Errorf("expected no trailing newline, got %q", got)
	}
}

func TestConfigError_Keys(t *testing.T) {
	e := &ConfigError{Errors: []string{
		`server.url: scheme must be http or https, got "ftp"`,
		"naming.video_extensions: \"mkv\" must start with a dot",
		"naming.video_extensions: \"avi\" must start with a dot",
		"no key here",
	}}
	got := e.Keys()
	want := []string{"server.url", "naming.video_extensions"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("Keys() = %v, want %v", got, want)
	}
}

func TestLoad_LegacyErrorIsMarked(t *testing.T) {
	path := filepath.Join(t.TempDir(), "episode_renamer.conf")
	if err := os.WriteFile(path, []byte("[DEFAULT]\nbase_url = ftp://nas\n"), 0600); err != nil {
		t.Fatal(err)
	}

	_, err := Load(path)
	var configErr *ConfigError
	if !errors.As(err, &configErr) {
		t.Fatalf("expected *ConfigError, got %v", err)
	}
	if !configErr.Legacy {
		t.Error("expected Legacy to be set for an INI file")
	}
}
