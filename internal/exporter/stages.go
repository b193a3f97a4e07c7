package exporter

import (
	"bytes"
	"fmt"
	"path"
	"strconv"
	"strings"

	"github.com/go-git/go-billy/v5/util"
	"github.com/specialistvlad/scenepack/internal/codegen"
	"github.com/specialistvlad/scenepack/internal/document"
	"github.com/specialistvlad/scenepack/internal/fsutil"
)

// ProjectDataVar is the global the serialized project is assigned to.
const ProjectDataVar = "gdjs.projectData"

func (r *run) prepareDir() error {
	if err := fsutil.ClearDir(r.fs, r.opts.OutDir); err != nil {
		return err
	}
	for _, dir := range []string{"libs", "Extensions"} {
		if err := r.fs.MkdirAll(path.Join(r.opts.OutDir, dir), 0o755); err != nil {
			return fmt.Errorf("mkdir %q: %w", dir, err)
		}
	}
	if err := r.fs.MkdirAll(r.opts.WorkRoot, 0o755); err != nil {
		return fmt.Errorf("mkdir %q: %w", r.opts.WorkRoot, err)
	}
	dir, err := util.TempDir(r.fs, r.opts.WorkRoot, "scenepack-")
	if err != nil {
		return fmt.Errorf("create work directory: %w", err)
	}
	r.workDir = dir
	r.logger.Debug("Work directory created.", "dir", dir)
	return nil
}

func (r *run) cleanup() {
	if r.workDir == "" {
		return
	}
	if err := util.RemoveAll(r.fs, r.workDir); err != nil {
		r.logger.Warn("Failed to remove work directory.", "dir", r.workDir, "error", err)
	}
}

// cloneProject makes the working copy every later stage mutates. The
// caller's project is never touched.
func (r *run) cloneProject() error {
	r.project = r.source.Clone()
	return nil
}

func (r *run) exportResources() error {
	warnings, err := r.copier.CopyResources(r.ctx, r.fs, r.project, r.opts.ProjectDir, r.opts.OutDir,
		func(done, total int) {
			if total > 0 {
				r.observer.Update(done*50/total, "Exporting resources...")
			}
		})
	for _, w := range warnings {
		r.warn(StageExportResources, "%s", w)
	}
	return err
}

func (r *run) generateEventsCode() error {
	r.observer.Update(50, "Exporting events...")
	for i, layout := range r.project.Layouts {
		scene, err := codegen.GenerateSceneCode(r.reg, r.project, layout)
		if err != nil {
			return fmt.Errorf("layout %q: %w", layout.Name, err)
		}
		file := path.Join(r.workDir, "code"+strconv.Itoa(i)+".js")
		if err := fsutil.WriteFile(r.fs, file, []byte(scene.Code)); err != nil {
			return err
		}
		r.includes.Add(scene.Includes...)
		r.includes.Add(file)

		for _, u := range scene.Unresolved {
			kind, name, _ := strings.Cut(u, ":")
			r.logger.Debug("Identifier generated no code.", "layout", layout.Name, "kind", kind, "name", name)
			if r.metrics != nil {
				r.metrics.Unresolved(kind)
			}
		}
		r.result.Scenes = append(r.result.Scenes, scene)
	}
	return nil
}

func (r *run) stripProject() error {
	r.observer.Update(60, "Preparing the project...")
	r.project.Strip()
	if r.firstLayout != "" {
		r.project.FirstLayout = r.firstLayout
	}
	return nil
}

func (r *run) serializeProjectData() error {
	var buf bytes.Buffer
	if err := document.Serialize(&buf, r.project, ProjectDataVar, r.opts.PrettyData); err != nil {
		return err
	}
	file := path.Join(r.workDir, "data.js")
	if err := fsutil.WriteFile(r.fs, file, buf.Bytes()); err != nil {
		return err
	}
	r.includes.Add(file)
	return nil
}
