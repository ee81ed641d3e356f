// internal/config/write.go
package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

//go:embed default_config.toml
var defaultConfig string

// writeHeader starts every file written by Write.
const writeHeader = "# episoder configuration, written by `episoder config init`.\n# See `episoder config init --defaults` for every option.\n\n"

// WriteDefault writes the commented example config to path, creating
// parent directories. The file may later hold a password, so it is only
// readable by its owner.
func WriteDefault(path string) error {
	if IsLegacy(path) {
		return legacyWriteError(path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(defaultConfig), 0600)
}

// Write saves the config as TOML with owner-only permissions. A token file
// at its default location is left out, so the written config keeps
// following EPISODER_HOME and XDG_STATE_HOME.
func (c *Config) Write(path string) error {
	if IsLegacy(path) {
		return legacyWriteError(path)
	}

	out := *c
	if out.Auth.TokenFile == DefaultTokenFile() {
		out.Auth.TokenFile = ""
	}

	var buf bytes.Buffer
	buf.WriteString(writeHeader)
	if err := toml.NewEncoder(&buf).Encode(out); err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0600)
}

func legacyWriteError(path string) error {
	return fmt.Errorf("%s: legacy INI configs are read only, write a .toml file instead", path)
}
