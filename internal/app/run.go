package app

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/specialistvlad/scenepack/internal/ctxlog"
	"github.com/specialistvlad/scenepack/internal/exporter"
	"github.com/specialistvlad/scenepack/internal/hcl"
	"github.com/specialistvlad/scenepack/internal/progress"
	"github.com/specialistvlad/scenepack/internal/publish"
)

// Run loads the project, exports it and, when configured, serves the
// bundle until ctx is done.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.ctx = ctx
	a.logger.Debug("App.Run method started.")

	res, err := a.export(ctx)
	if a.config.MetricsFile != "" {
		if werr := a.metrics.WriteToTextfile(a.config.MetricsFile); werr != nil {
			a.logger.Error("Failed to write metrics file.", "path", a.config.MetricsFile, "error", werr)
		}
	}
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	a.logger.Info("🏁 Bundle ready.", "out", res.OutDir, "includes", len(res.Includes), "minified", res.Minified, "warnings", len(res.Warnings))
	if res.Location != "" {
		a.logger.Info("Bundle published.", "location", res.Location)
	}

	if a.config.ServePort > 0 {
		return a.servePreview(ctx, res.OutDir)
	}
	a.logger.Debug("App.Run method finished.")
	return nil
}

func (a *App) export(ctx context.Context) (*exporter.Result, error) {
	s, err := a.loadSettings(ctx)
	if err != nil {
		return nil, err
	}
	s.options.RunID = uuid.NewString()

	if s.definitions != "" {
		if err := a.registry.LoadDefinitions(ctx, a.fs, s.definitions); err != nil {
			return nil, fmt.Errorf("failed to load extension definitions: %w", err)
		}
	}
	if err := a.registry.Validate(); err != nil {
		return nil, err
	}
	a.logger.Debug("Registry validation passed.", "extensions", a.registry.Extensions())

	p, err := hcl.NewLoader(a.fs).Load(ctx, a.config.ProjectPath)
	if err != nil {
		return nil, err
	}
	a.logger.Info("Project loaded.", "name", p.Name, "layouts", len(p.Layouts))

	observers := []progress.Observer{progress.Log{Logger: a.logger}}
	if s.progress != nil {
		sio, err := progress.DialSocketIO(ctx, *s.progress, s.options.RunID)
		if err != nil {
			a.logger.Warn("Progress reporting over socket.io disabled.", "error", err)
		} else {
			defer sio.Close()
			observers = append(observers, sio)
		}
	}

	options := []exporter.Option{
		exporter.WithObserver(progress.Multi(observers...)),
		exporter.WithMetrics(a.metrics),
	}
	if s.publish != nil {
		pub, err := publish.NewS3(ctx, *s.publish)
		if err != nil {
			return nil, err
		}
		options = append(options, exporter.WithPublisher(pub))
	}

	exp, err := exporter.New(a.fs, a.registry, s.options, options...)
	if err != nil {
		return nil, err
	}
	if a.config.PreviewLayout != "" {
		return exp.ExportLayoutForPreview(ctx, p, a.config.PreviewLayout, exp.Options().OutDir)
	}
	return exp.Export(ctx, p)
}
