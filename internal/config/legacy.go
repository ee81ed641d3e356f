package config

import (
	"time"

	"gopkg.in/ini.v1"
)

// parseINI reads the flat key=value format older installs wrote, e.g.
//
//	[DEFAULT]
//	base_url = http://192.168.1.1:5244
func parseINI(data []byte) (*Config, error) {
	f, err := ini.Load(data)
	if err != nil {
		return nil, err
	}

	sec := f.Section(ini.DefaultSection)
	cfg := &Config{
		Server: ServerConfig{
			URL:      sec.Key("base_url").String(),
			Username: sec.Key("username").String(),
			Password: sec.Key("password").String(),
		},
		Auth: AuthConfig{
			TokenFile: sec.Key("token_file").String(),
		},
		Naming: NamingConfig{
			Preset:   sec.Key("preset").String(),
			Template: sec.Key("template").String(),
			AllFiles: sec.Key("all_files").MustBool(false),
		},
		Log: LogConfig{
			Level: sec.Key("log_level").String(),
		},
	}

	if sec.HasKey("timeout") {
		d, err := time.ParseDuration(sec.Key("timeout").String())
		if err != nil {
			// Older files hold plain seconds.
			secs, err := sec.Key("timeout").Int()
			if err != nil {
				return nil, err
			}
			d = time.Duration(secs) * time.Second
		}
		cfg.Server.Timeout = d
	}
	if sec.HasKey("video_extensions") {
		cfg.Naming.VideoExtensions = sec.Key("video_extensions").Strings(",")
	}

	return cfg, nil
}
