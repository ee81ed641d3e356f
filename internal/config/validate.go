// internal/config/validate.go
package config

import (
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/vmunix/episoder/pkg/episode"
)

var validLogLevels = map[string]bool{
	"debug": true, "info": true, "warn": true, "error": true, "": true,
}

// Validate checks the configuration for errors.
// Returns a slice of error messages (empty if valid).
func (c *Config) Validate() []string {
	var errs []string

	u, err := url.Parse(c.Server.URL)
	switch {
	case c.Server.URL == "":
		errs = append(errs, "server.url: required")
	case err != nil:
		errs = append(errs, fmt.Sprintf("server.url: %v", err))
	case u.Scheme != "http" && u.Scheme != "https":
		errs = append(errs, fmt.Sprintf("server.url: scheme must be http or https, got %q", u.Scheme))
	case u.Host == "":
		errs = append(errs, "server.url: missing host")
	}
	if c.Server.Timeout < 0 {
		errs = append(errs, fmt.Sprintf("server.timeout: must not be negative, got %s", c.Server.Timeout))
	}

	if !validLogLevels[c.Log.Level] {
		errs = append(errs, fmt.Sprintf("log.level: must be one of debug, info, warn, error; got %q", c.Log.Level))
	}

	if c.Naming.Preset != "" {
		if _, ok := episode.Presets[c.Naming.Preset]; !ok {
			errs = append(errs, fmt.Sprintf("naming.preset: must be one of %s; got %q", presetNames(), c.Naming.Preset))
		}
	}
	if c.Naming.Template != "" {
		if _, err := episode.ParseTemplate(c.Naming.Template); err != nil {
			errs = append(errs, fmt.Sprintf("naming.template: %v", err))
		}
	}
	for _, ext := range c.Naming.VideoExtensions {
		if !strings.HasPrefix(ext, ".") || len(ext) < 2 {
			errs = append(errs, fmt.Sprintf("naming.video_extensions: %q must start with a dot", ext))
		}
	}

	return errs
}

// NamingTemplate returns the template to render names with: the explicit
// template, else the preset, else the default.
func (c *Config) NamingTemplate() string {
	if c.Naming.Template != "" {
		return c.Naming.Template
	}
	if t, ok := episode.Presets[c.Naming.Preset]; ok {
		return t
	}
	return episode.DefaultTemplate
}

func presetNames() string {
	names := make([]string, 0, len(episode.Presets))
	for name := range episode.Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}
