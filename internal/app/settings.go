package app

import (
	"context"
	"errors"
	"fmt"
	"path"

	"github.com/specialistvlad/scenepack/internal/exporter"
	"github.com/specialistvlad/scenepack/internal/hcl"
	"github.com/specialistvlad/scenepack/internal/progress"
	"github.com/specialistvlad/scenepack/internal/publish"
	"github.com/specialistvlad/scenepack/internal/schema"
)

// settings is the export configuration file merged with the command line.
type settings struct {
	options     exporter.Options
	definitions string
	publish     *publish.Config
	progress    *progress.SocketIOConfig
}

// loadSettings reads the export configuration file, if any, and applies
// the command line on top of it. Relative paths of the file are resolved
// against the file's directory.
func (a *App) loadSettings(ctx context.Context) (*settings, error) {
	s := &settings{options: exporter.Options{
		ProjectDir: path.Dir(a.config.ProjectPath),
		PrettyData: a.config.PrettyData,
	}}

	if a.config.ConfigPath != "" {
		file, err := hcl.LoadExportConfig(ctx, a.fs, a.config.ConfigPath)
		if err != nil {
			return nil, err
		}
		if err := s.applyFile(file, path.Dir(a.config.ConfigPath)); err != nil {
			return nil, err
		}
	}

	c := a.config
	if c.Target != "" {
		s.options.Target = exporter.Target(c.Target)
	}
	if c.OutDir != "" {
		s.options.OutDir = c.OutDir
	}
	if c.RuntimeDir != "" {
		s.options.RuntimeDir = c.RuntimeDir
	}
	if c.DefinitionsPath != "" {
		s.definitions = c.DefinitionsPath
	}
	if c.Minify != nil {
		s.options.Minify = *c.Minify
	}
	if c.Archive != nil {
		s.options.Archive = *c.Archive
	}

	if s.options.OutDir == "" {
		return nil, errors.New("output directory must be set with --out or in the export configuration")
	}
	if s.options.RuntimeDir == "" {
		return nil, errors.New("runtime directory must be set with --runtime-dir or in the export configuration")
	}
	return s, nil
}

func (s *settings) applyFile(file *schema.ExportFile, base string) error {
	rel := func(p string) string {
		if p == "" || path.IsAbs(p) {
			return p
		}
		return path.Join(base, p)
	}

	s.options.Target = exporter.Target(file.Target)
	s.options.OutDir = rel(file.Out)
	if rt := file.Runtime; rt != nil {
		s.options.RuntimeDir = rel(rt.Dir)
		s.options.ExtensionsDir = rel(rt.ExtensionsDir)
		s.options.IndexTemplate = rel(rt.IndexTemplate)
		s.definitions = rel(rt.Definitions)
	}
	if m := file.Minify; m != nil {
		s.options.Minify = m.Enabled
		s.options.Java = m.Java
		s.options.CompilerJar = rel(m.CompilerJar)
		if m.Timeout != "" {
			d, err := hcl.ParseDuration(m.Timeout)
			if err != nil {
				return fmt.Errorf("invalid minify timeout: %w", err)
			}
			s.options.MinifyTimeout = d
		}
	}
	if file.Archive != nil {
		s.options.Archive = file.Archive.Enabled
	}
	if p := file.Publish; p != nil {
		s.options.PublishKey = p.Key
		s.publish = &publish.Config{
			Bucket:    p.Bucket,
			Region:    p.Region,
			Endpoint:  p.Endpoint,
			PathStyle: p.PathStyle,
		}
	}
	if p := file.Progress; p != nil {
		s.progress = &progress.SocketIOConfig{
			URL:       p.SocketIOURL,
			Namespace: p.Namespace,
			Event:     p.Event,
		}
	}
	return nil
}
