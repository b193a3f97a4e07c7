package hcl

import (
	"context"
	"fmt"

	"github.com/go-git/go-billy/v5"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/specialistvlad/scenepack/internal/ctxlog"
	"github.com/specialistvlad/scenepack/internal/fsutil"
	"github.com/specialistvlad/scenepack/internal/project"
	"github.com/specialistvlad/scenepack/internal/schema"
)

// Loader is the HCL-specific implementation of the project.Loader interface.
type Loader struct {
	fs billy.Filesystem
}

var _ project.Loader = (*Loader)(nil)

// NewLoader creates a loader reading project files from fsys.
func NewLoader(fsys billy.Filesystem) *Loader {
	return &Loader{fs: fsys}
}

// Load parses the project file at path and translates it into the project
// model.
func (l *Loader) Load(ctx context.Context, path string) (*project.Project, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL project loader started.", "path", path)

	var file schema.ProjectFile
	if err := decodeFile(l.fs, path, &file); err != nil {
		return nil, err
	}

	p, err := translateProject(&file)
	if err != nil {
		return nil, fmt.Errorf("invalid project %s: %w", path, err)
	}

	logger.Debug("HCL project loading complete.",
		"project", p.Name,
		"layouts", len(p.Layouts),
		"resources", len(p.Resources),
		"external_events", len(p.ExternalEvents),
	)
	return p, nil
}

// LoadExportConfig reads the export configuration file at path.
func LoadExportConfig(ctx context.Context, fsys billy.Filesystem, path string) (*schema.ExportFile, error) {
	ctxlog.FromContext(ctx).Debug("Loading export configuration.", "path", path)
	var file schema.ExportFile
	if err := decodeFile(fsys, path, &file); err != nil {
		return nil, err
	}
	if file.Minify != nil && file.Minify.Timeout != "" {
		if _, err := ParseDuration(file.Minify.Timeout); err != nil {
			return nil, fmt.Errorf("invalid minify timeout in %s: %w", path, err)
		}
	}
	return &file, nil
}

func decodeFile(fsys billy.Filesystem, path string, target any) error {
	src, err := fsutil.ReadFile(fsys, path)
	if err != nil {
		return err
	}
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, path)
	if diags.HasErrors() {
		return fmt.Errorf("failed to parse HCL file %s: %w", path, diags)
	}
	if diags := gohcl.DecodeBody(file.Body, nil, target); diags.HasErrors() {
		return fmt.Errorf("failed to decode HCL file %s: %w", path, diags)
	}
	return nil
}
