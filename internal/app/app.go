package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-git/go-billy/v5"
	"github.com/specialistvlad/scenepack/internal/ctxlog"
	"github.com/specialistvlad/scenepack/internal/metrics"
	"github.com/specialistvlad/scenepack/internal/registry"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW       io.Writer
	logger     *slog.Logger
	ctx        context.Context
	config     *Config
	fs         billy.Filesystem
	registry   *registry.Registry
	metrics    *metrics.Metrics
	httpServer *http.Server
}

// NewApp is the constructor for the main application. It returns an App
// with its own isolated logger, metrics and registry. Every path of config
// is resolved inside fsys. Without modules, the core extensions are
// registered.
func NewApp(outW io.Writer, config *Config, fsys billy.Filesystem, modules ...registry.Module) (*App, error) {
	if config == nil || fsys == nil {
		return nil, fmt.Errorf("config and filesystem must not be nil")
	}
	logger := newLogger(config.LogLevel, config.LogFormat, outW)
	logger.Debug("Logger configured successfully.")

	if len(modules) == 0 {
		modules = coreModules()
	}
	reg := registry.NewWithModules(modules...)
	logger.Debug("All Go modules registered.", "count", len(modules), "extensions", reg.Extensions())

	return &App{
		outW:     outW,
		logger:   logger,
		ctx:      ctxlog.WithLogger(context.Background(), logger),
		config:   config,
		fs:       fsys,
		registry: reg,
		metrics:  metrics.New(),
	}, nil
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}

// Metrics returns the application's metrics.
func (a *App) Metrics() *metrics.Metrics {
	return a.metrics
}
