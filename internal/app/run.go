package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vk/gridfinitygo/internal/builder"
	"github.com/vk/gridfinitygo/internal/ctxlog"
)

// Run builds every loaded part and exports its build plan into the output
// directory.
func (a *App) Run(ctx context.Context, appConfig *Config) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	if len(a.model.Parts) == 0 {
		a.logger.Warn("No parts found in definitions, nothing to build.")
		return nil
	}

	if err := os.MkdirAll(appConfig.OutputDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	a.logger.Info("Starting part builds.", "count", len(a.model.Parts))
	for _, part := range a.model.Parts {
		m := a.newModeler()

		solid, err := builder.Build(ctx, m, part)
		if err != nil {
			return fmt.Errorf("failed to build part %q: %w", part.Name, err)
		}

		path := filepath.Join(appConfig.OutputDir, part.Name+".plan.json")
		if err := m.Export(ctx, solid, path, appConfig.Format); err != nil {
			return fmt.Errorf("failed to export part %q: %w", part.Name, err)
		}

		size := solid.Bounds().Size()
		a.logger.Info("Part built.",
			"name", part.Name,
			"kind", part.Kind,
			"size_x", size.X,
			"size_y", size.Y,
			"size_z", size.Z,
			"path", path,
		)
	}

	a.logger.Info("All parts built.")
	a.logger.Debug("App.Run method finished.")
	return nil
}
