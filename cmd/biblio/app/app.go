// Package app provides the application context and dependency management
// for the biblio CLI. It centralizes configuration, logging and the library
// client behind one App value so commands share a single live archive.
package app

import (
	"sync"

	"github.com/rs/zerolog"

	library "github.com/mattiajb/library-management-system-sub000"
	"github.com/mattiajb/library-management-system-sub000/pkg/errors"
)

// App represents the biblio application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string

	// Configuration
	config *Config

	// Logger
	logger *zerolog.Logger

	// Library client (lazy-initialized, singleton)
	mu      sync.RWMutex
	library library.Client
}

// New creates a new App instance with the given version information.
func New(version, commit, date string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
	}

	config, err := LoadConfig()
	if err != nil {
		return nil, errors.WrapIO("load", "config", err)
	}
	app.config = config

	logger := NewLogger(config)
	app.logger = &logger

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

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

// Library returns the library client, creating it lazily on first use.
// This is thread-safe and ensures only one client is created.
func (a *App) Library() (library.Client, error) {
	a.mu.RLock()
	if a.library != nil {
		lib := a.library
		a.mu.RUnlock()
		return lib, nil
	}
	a.mu.RUnlock()

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.library != nil {
		return a.library, nil
	}

	lib, err := library.New(a.buildLibraryOptions()...)
	if err != nil {
		return nil, err
	}

	a.library = lib
	return lib, nil
}

// buildLibraryOptions constructs library options from the app configuration.
func (a *App) buildLibraryOptions() []library.Option {
	var opts []library.Option

	if a.config.ArchivePath != "" {
		opts = append(opts, library.WithPath(a.config.ArchivePath))
	}
	if a.config.EmailSuffix != "" {
		opts = append(opts, library.WithEmailSuffix(a.config.EmailSuffix))
	}

	return opts
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		a.config = config
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}

// WithLibrary sets a custom library client (useful for testing).
func WithLibrary(lib library.Client) Option {
	return func(a *App) error {
		a.library = lib
		return nil
	}
}
