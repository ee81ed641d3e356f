// Package config handles configuration loading with environment variable substitution.
// TOML is the native format; legacy INI files from older installs are still read.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

const (
	DefaultServerURL = "http://192.168.1.1:5244"
	DefaultTimeout   = 30 * time.Second
	DefaultLogLevel  = "info"
)

// Config is the root configuration structure.
type Config struct {
	Server ServerConfig `toml:"server"`
	Auth   AuthConfig   `toml:"auth"`
	Naming NamingConfig `toml:"naming"`
	Log    LogConfig    `toml:"log"`
}

type ServerConfig struct {
	URL      string        `toml:"url"`
	Username string        `toml:"username"`
	Password string        `toml:"password,omitempty"`
	Timeout  time.Duration `toml:"timeout"`
}

type AuthConfig struct {
	TokenFile string `toml:"token_file,omitempty"`
}

type NamingConfig struct {
	Preset          string   `toml:"preset,omitempty"`
	Template        string   `toml:"template,omitempty"`
	AllFiles        bool     `toml:"all_files"`
	VideoExtensions []string `toml:"video_extensions,omitempty"`
}

type LogConfig struct {
	Level string `toml:"level"`
}

// Default returns a config with every default applied.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads, parses and validates the configuration file.
// Files ending in .conf or .ini are read as legacy INI.
func Load(path string) (*Config, error) {
	cfg, err := LoadWithoutValidation(path)
	if err != nil {
		return nil, err
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, &ConfigError{Path: path, Legacy: IsLegacy(path), Errors: errs}
	}
	return cfg, nil
}

// LoadWithoutValidation reads and parses the configuration file, applying
// defaults but skipping Validate.
func LoadWithoutValidation(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	content, missing := substituteEnvVars(string(data))
	if len(missing) > 0 {
		return nil, &ConfigError{Path: path, Legacy: IsLegacy(path), Missing: missing}
	}

	var cfg *Config
	if IsLegacy(path) {
		cfg, err = parseINI([]byte(content))
	} else {
		cfg, err = parseTOML(content)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	cfg.applyDefaults()
	return cfg, nil
}

// IsLegacy reports whether path names an INI config.
func IsLegacy(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".conf", ".ini":
		return true
	}
	return false
}

func parseTOML(content string) (*Config, error) {
	var cfg Config
	if _, err := toml.Decode(content, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.URL == "" {
		c.Server.URL = DefaultServerURL
	}
	c.Server.URL = strings.TrimRight(c.Server.URL, "/")
	if c.Server.Timeout == 0 {
		c.Server.Timeout = DefaultTimeout
	}
	if c.Auth.TokenFile == "" {
		c.Auth.TokenFile = DefaultTokenFile()
	}
	c.Auth.TokenFile = expandHome(c.Auth.TokenFile)
	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
}

// DefaultTokenFile is where the token is kept when auth.token_file is unset.
func DefaultTokenFile() string {
	return filepath.Join(StateDir(), "token")
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

// ${VAR}, ${VAR:-default} and ${VAR:?message}.
var envVarPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)(?:(:-|:\?)([^}]*))?\}`)

// substituteEnvVars replaces environment references in content. Unresolved
// references are left in place and reported in missing. Comment lines are
// copied untouched.
func substituteEnvVars(content string) (string, []string) {
	var missing []string

	lines := strings.SplitAfter(content, "\n")
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "#") || strings.HasPrefix(trimmed, ";") {
			continue
		}
		lines[i] = envVarPattern.ReplaceAllStringFunc(line, func(match string) string {
			m := envVarPattern.FindStringSubmatch(match)
			name, op, arg := m[1], m[2], m[3]
			value, ok := os.LookupEnv(name)

			switch op {
			case ":-":
				if !ok || value == "" {
					return arg
				}
				return value
			case ":?":
				if !ok || value == "" {
					missing = append(missing, name+": "+arg)
					return match
				}
				return value
			default:
				if !ok {
					missing = append(missing, name)
					return match
				}
				return value
			}
		})
	}

	return strings.Join(lines, ""), missing
}
