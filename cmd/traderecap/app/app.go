// Package app provides the application context and dependency management for
// the traderecap CLI. It centralizes configuration, logging, and the export
// store, following the dependency injection pattern.
package app

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/traderecap/traderecap/pkg/exports"
)

// App represents the traderecap application with all its dependencies. It
// provides a centralized place for configuration, logging, and the export
// store shared by every command.
type App struct {
	// Version information
	version string
	commit  string
	date    string

	// Configuration
	config *Config

	// Logger
	logger *zerolog.Logger

	// Export store (lazy-initialized, singleton)
	storeOnce sync.Once
	store     *exports.Store
}

// New creates a new App instance with the given version information.
func New(version, commit, date string) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
	}

	config, err := LoadConfig()
	if err != nil {
		return nil, err
	}
	app.config = config

	logger := NewLogger(config)
	app.logger = &logger

	return app, nil
}

// Version returns the version information.
func (a *App) Version() string {
	return a.version
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// Store returns the export store, creating it on first use.
func (a *App) Store() *exports.Store {
	a.storeOnce.Do(func() {
		a.store = exports.NewStore(a.config.ExportsDir, exports.WithLogger(a.logger))
	})
	return a.store
}
