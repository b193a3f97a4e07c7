package registry

import (
	"context"
	"fmt"

	"github.com/go-git/go-billy/v5"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/specialistvlad/scenepack/internal/ctxlog"
	"github.com/specialistvlad/scenepack/internal/fsutil"
	"github.com/specialistvlad/scenepack/internal/schema"
)

// LoadDefinitions reads every .hcl extension definition file under dir and
// merges the declared extensions into the registry.
func (r *Registry) LoadDefinitions(ctx context.Context, fsys billy.Filesystem, dir string) error {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Registry loading extension definitions...", "path", dir)

	filePaths, err := fsutil.FindFilesByExtension(fsys, dir, ".hcl")
	if err != nil {
		logger.Error("Failed to walk definitions directory", "path", dir, "error", err)
		return err
	}
	if len(filePaths) == 0 {
		logger.Warn("No .hcl definition files found in path", "path", dir)
		return nil
	}

	parser := hclparse.NewParser()
	loaded := 0
	for _, filePath := range filePaths {
		src, err := fsutil.ReadFile(fsys, filePath)
		if err != nil {
			return err
		}
		file, diags := parser.ParseHCL(src, filePath)
		if diags.HasErrors() {
			return fmt.Errorf("failed to parse HCL file %s: %w", filePath, diags)
		}

		var defs schema.DefinitionFile
		if diags := gohcl.DecodeBody(file.Body, nil, &defs); diags.HasErrors() {
			return fmt.Errorf("failed to decode definitions in %s: %w", filePath, diags)
		}

		for _, def := range defs.Extensions {
			ext, err := extensionFromDefinition(def)
			if err != nil {
				return fmt.Errorf("extension %q in %s: %w", def.Name, filePath, err)
			}
			r.AddExtension(ext)
			logger.Debug("Registered extension.", "name", ext.Name, "entries", ext.Len())
			loaded++
		}
		logger.Debug("Successfully loaded definitions from HCL file", "file", filePath)
	}

	logger.Info("Extension definitions loaded.", "extensions", loaded)
	return nil
}

func extensionFromDefinition(def *schema.ExtensionDefinition) (*Extension, error) {
	ext := NewExtension(def.Name)
	groups := []struct {
		kind    Kind
		entries []*schema.EntryDefinition
	}{
		{Condition, def.Conditions},
		{Action, def.Actions},
		{Expression, def.Expressions},
		{StrExpression, def.StrExpressions},
	}
	for _, g := range groups {
		for _, e := range g.entries {
			if e.Function == "" {
				return nil, fmt.Errorf("%s %q: function must not be empty", g.kind, e.ID)
			}
			var params []Parameter
			for _, p := range e.Parameters {
				params = append(params, Parameter{Type: p.Type, CodeOnly: p.CodeOnly, Extra: p.ObjectType})
			}
			var d *Descriptor
			if e.ObjectType != "" {
				d = ext.DeclareForObject(e.ObjectType, g.kind, e.ID, params...)
			} else {
				d = ext.Declare(g.kind, e.ID, params...)
			}
			d.SetFunctionName(e.Function)
			if e.Getter != "" {
				d.SetAssociatedGetter(e.Getter)
			}
			for _, f := range def.IncludeFiles {
				d.AddIncludeFile(f)
			}
			for _, f := range e.IncludeFiles {
				d.AddIncludeFile(f)
			}
		}
	}
	return ext, nil
}
