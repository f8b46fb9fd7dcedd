package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/memoria/internal/api"
	"github.com/alexisbeaulieu97/memoria/internal/auth"
	"github.com/alexisbeaulieu97/memoria/internal/config"
	"github.com/alexisbeaulieu97/memoria/internal/images"
	"github.com/alexisbeaulieu97/memoria/internal/leaderboard"
	"github.com/alexisbeaulieu97/memoria/internal/logger"
	"github.com/alexisbeaulieu97/memoria/internal/preferences"
	"github.com/alexisbeaulieu97/memoria/internal/storage"
)

// AppContext bundles long-lived services created on first use by a command.
type AppContext struct {
	flags *rootFlags

	Config *config.Config
	Logger *logger.Logger
	Store  *storage.Store
	Client *api.Client
	Auth   *auth.Service
	Prefs  *preferences.Store
	Scores *leaderboard.Service
	Images *images.Provider

	logFile io.Closer
}

// Load reads configuration and wires the services. Calling it again is a no-op.
func (a *AppContext) Load() error {
	if a.Config != nil {
		return nil
	}

	dir, err := resolveHomeDir(a.flags.home)
	if err != nil {
		return newCommandError("start", "determining the memoria directory", err, "Ensure your HOME directory is set correctly or pass --home.")
	}
	if err := config.LoadEnvFile(filepath.Join(dir, envFileName)); err != nil {
		return newCommandError("start", "loading environment overrides", err, "Fix or remove the .env file in your memoria directory.")
	}

	configPath := resolveConfigPath(a.flags.configPath, dir)
	cfg, err := config.Load(configPath, dir)
	if err != nil {
		return newCommandError("start", fmt.Sprintf("loading configuration %q", configPath), err, "Fix the configuration errors shown above and try again.")
	}
	if a.flags.verbose {
		cfg.Log.Level = "debug"
	}

	log, closer, err := openLogger(cfg.Log)
	if err != nil {
		return newCommandError("start", "opening the log file", err, "Check that the log directory is writable or set log.file in the config.")
	}

	store, err := storage.Open(cfg.Storage.Path)
	if err != nil {
		closeQuietly(closer)
		return newCommandError("start", "opening local storage", err, "Check that the storage path is writable.")
	}

	client, err := api.NewClient(api.Options{
		BaseURL: cfg.API.BaseURL,
		Timeout: cfg.API.Timeout,
		Store:   store,
		Logger:  log.With("component", "api"),
	})
	if err != nil {
		closeQuietly(closer)
		return newCommandError("start", "creating the API client", err, "Set api.base_url in the config or MEMORIA_API_URL.")
	}

	a.Config = cfg
	a.Logger = log
	a.logFile = closer
	a.Store = store
	a.Client = client
	a.Auth = auth.NewService(client, log.With("component", "auth"))
	a.Prefs = preferences.NewStore(client, store, log.With("component", "preferences"))
	a.Scores = leaderboard.NewService(client, log.With("component", "leaderboard"))
	a.Images = images.NewProvider(images.Options{
		PotterURL:  cfg.Providers.PotterURL,
		PokemonURL: cfg.Providers.PokemonURL,
		CatURL:     cfg.Providers.CatURL,
		Logger:     log.With("component", "images"),
	})
	return nil
}

// CommandContext returns the command's context tagged with a fresh
// correlation id, and the logger scoped to the command.
func (a *AppContext) CommandContext(cmd *cobra.Command, name string) (context.Context, *logger.Logger) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = logger.WithCorrelationID(ctx, logger.NewCorrelationID())
	return ctx, a.Logger.With("command", name)
}

// Close releases the log file.
func (a *AppContext) Close() {
	closeQuietly(a.logFile)
	a.logFile = nil
}

// openLogger writes JSON lines to the configured file, or discards
// everything when no file is set. The terminal is left to the UI.
func openLogger(settings config.LogSettings) (*logger.Logger, io.Closer, error) {
	if settings.File == "" {
		log, err := logger.New(logger.Options{Level: settings.Level, Writer: io.Discard})
		return log, nil, err
	}

	if err := os.MkdirAll(filepath.Dir(settings.File), 0o755); err != nil {
		return nil, nil, err
	}
	file, err := os.OpenFile(settings.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}

	log, err := logger.New(logger.Options{Level: settings.Level, Writer: file, Component: "memoria"})
	if err != nil {
		_ = file.Close()
		return nil, nil, err
	}
	return log, file, nil
}

func closeQuietly(c io.Closer) {
	if c != nil {
		_ = c.Close()
	}
}
