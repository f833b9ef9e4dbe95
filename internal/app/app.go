package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/vk/gridfinitygo/internal/config"
	"github.com/vk/gridfinitygo/internal/ctxlog"
	"github.com/vk/gridfinitygo/modeler"
	"github.com/vk/gridfinitygo/modeler/planner"
)

// ModelerFactory creates a fresh modeler backend for one part build. Each
// part gets its own backend so operation traces never mix.
type ModelerFactory func() modeler.Modeler

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW       io.Writer
	logger     *slog.Logger
	model      *config.Model
	newModeler ModelerFactory
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance with its own isolated logger and the loaded
// part model. A nil factory selects the planning backend.
func NewApp(outW io.Writer, appConfig *Config, loader config.Loader, factory ModelerFactory) *App {
	logger, err := newLogger(appConfig.LogLevel, appConfig.LogFormat, outW)
	if err != nil {
		// A misconfigured logger is a fatal startup error.
		panic(fmt.Errorf("failed to configure logger: %w", err))
	}
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	model, err := loader.Load(ctx, appConfig.PartPath)
	if err != nil {
		// A failure to load config is a fatal startup error.
		panic(fmt.Errorf("failed to load configuration: %w", err))
	}
	logger.Debug("Part definitions loaded into unified model.", "parts", len(model.Parts))

	if factory == nil {
		factory = func() modeler.Modeler { return planner.New() }
	}

	return &App{
		outW:       outW,
		logger:     logger,
		model:      model,
		newModeler: factory,
	}
}

// Model returns the loaded part model. This is primarily for testing.
func (a *App) Model() *config.Model {
	return a.model
}
