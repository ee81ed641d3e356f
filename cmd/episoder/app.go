package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"github.com/vmunix/episoder/internal/config"
	"github.com/vmunix/episoder/internal/openlist"
)

// app is what every server-facing command needs: config, logger, client
// and the token store.
type app struct {
	cfg    *config.Config
	log    *slog.Logger
	client *openlist.Client
	tokens openlist.TokenStore
	out    io.Writer
}

func newApp(cmd *cobra.Command) (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	if serverURL != "" {
		cfg.Server.URL = strings.TrimRight(serverURL, "/")
	}
	if username != "" {
		cfg.Server.Username = username
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}

	log := newLogger(cmd.ErrOrStderr(), cfg.Log.Level)
	return &app{
		cfg: cfg,
		log: log,
		client: openlist.New(cfg.Server.URL,
			openlist.WithLogger(log),
			openlist.WithTimeout(cfg.Server.Timeout),
		),
		tokens: openlist.TokenStore{Path: cfg.Auth.TokenFile},
		out:    cmd.OutOrStdout(),
	}, nil
}

// loadConfig loads --config, or the discovered config file. With no
// config file anywhere the defaults are used.
func loadConfig() (*config.Config, error) {
	path := configPath
	if path == "" {
		found, err := config.Discover()
		if errors.Is(err, config.ErrNotFound) {
			return config.Default(), nil
		}
		if err != nil {
			return nil, err
		}
		path = found
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

func newLogger(w io.Writer, level string) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: parseLogLevel(level),
	}))
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// connect makes sure the client holds a working token, reusing the saved
// one when it was issued to the same user on the same server.
func (a *app) connect(ctx context.Context) error {
	tok, err := a.tokens.Load()
	if err != nil && !errors.Is(err, openlist.ErrNoToken) {
		a.log.Warn("ignoring unreadable token", "path", a.tokens.Path, "error", err)
	}
	if tok != nil && a.cfg.Server.Username == "" && tok.Server == a.cfg.Server.URL {
		a.cfg.Server.Username = tok.Username
	}

	if tok.Matches(a.cfg.Server.URL, a.cfg.Server.Username) {
		a.client.SetToken(tok.Token)
		ok, err := a.client.ValidateUser(ctx, a.cfg.Server.Username)
		if err != nil {
			return err
		}
		if ok {
			a.log.Debug("reusing saved token", "username", a.cfg.Server.Username)
			return nil
		}
		a.log.Info("saved token no longer valid, logging in again")
		a.client.SetToken("")
	}

	return a.login(ctx)
}

// login authenticates with the configured credentials, prompting for
// whatever is missing, and saves the token.
func (a *app) login(ctx context.Context) error {
	user := a.cfg.Server.Username
	if user == "" {
		var err error
		if user, err = promptRequired("Username"); err != nil {
			return err
		}
		a.cfg.Server.Username = user
	}

	password := a.cfg.Server.Password
	if password == "" {
		var err error
		if password, err = promptPassword(fmt.Sprintf("Password for %s@%s", user, a.cfg.Server.URL)); err != nil {
			return err
		}
	}

	token, err := a.client.Login(ctx, user, password)
	if err != nil {
		return err
	}

	saved := &openlist.Token{Server: a.cfg.Server.URL, Username: user, Token: token}
	if err := a.tokens.Save(saved); err != nil {
		a.log.Warn("could not save token", "path", a.tokens.Path, "error", err)
	}
	return nil
}
