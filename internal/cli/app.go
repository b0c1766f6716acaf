// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/jeranaias/nightowl-tui/internal/config"
	"github.com/jeranaias/nightowl-tui/internal/gemini"
	"github.com/jeranaias/nightowl-tui/internal/history"
	"github.com/jeranaias/nightowl-tui/internal/logging"
	"github.com/jeranaias/nightowl-tui/internal/prefs"
	"github.com/jeranaias/nightowl-tui/internal/session"
	"github.com/jeranaias/nightowl-tui/internal/theme"
)

// globalFlags are the persistent flags shared by every command.
type globalFlags struct {
	configPath string
	model      string
	logLevel   string
}

// loadConfig resolves configuration from the file, environment and flags.
func (f *globalFlags) loadConfig() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if f.configPath != "" {
		cfg, err = config.LoadFromPath(f.configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}

	if f.model != "" {
		cfg.API.Model = f.model
	}
	if f.logLevel != "" {
		cfg.Log.Level = f.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid flags: %w", err)
	}
	return cfg, nil
}

// app bundles the long-lived components a command needs.
type app struct {
	cfg     *config.Config
	log     *logrus.Logger
	prefs   prefs.Store
	theme   *theme.Store
	client  *gemini.Client
	session *session.Controller

	logCloser io.Closer
}

// newApp opens logging and storage and wires the session. Close releases
// them.
func newApp(cfg *config.Config) (*app, error) {
	log, closer, err := logging.Setup(cfg)
	if err != nil {
		return nil, err
	}

	store, err := prefs.Open(cfg)
	if err != nil {
		closer.Close()
		return nil, fmt.Errorf("failed to open preferences: %w", err)
	}

	themeStore := theme.New(store, cfg.UI.DefaultDark, log)
	if _, err := themeStore.Load(); err != nil {
		log.WithError(err).Warn("using default theme")
	}

	client := gemini.NewFromConfig(cfg.API, log)
	if !client.IsConfigured() {
		log.Warn("no API key configured; requests will fail")
	}

	a := &app{
		cfg:       cfg,
		log:       log,
		prefs:     store,
		theme:     themeStore,
		client:    client,
		session:   session.NewController(client, history.New(cfg.History.MaxEntries), log),
		logCloser: closer,
	}

	log.WithFields(logrus.Fields{
		"model":   client.Model(),
		"storage": cfg.Storage.Backend,
	}).Info("nightowl started")
	return a, nil
}

// Close cancels any request and closes storage and the log file.
func (a *app) Close() error {
	a.session.Close()
	return errors.Join(a.prefs.Close(), a.logCloser.Close())
}
