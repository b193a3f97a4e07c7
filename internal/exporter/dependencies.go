package exporter

import (
	"path"

	"github.com/specialistvlad/scenepack/internal/fsutil"
	"github.com/specialistvlad/scenepack/internal/includes"
)

// resolvedFile is an include found on disk.
type resolvedFile struct {
	// Source is the path the file is read from.
	Source string
	// Target is the bundle-relative path, also the final include name.
	Target string
}

// resolveDependencies finds every include in the runtime directory, then
// the extensions directory, then as a literal path. Unresolvable includes
// are dropped with a warning.
func (r *run) resolveDependencies() error {
	r.observer.Update(70, "Exporting files...")
	targets := includes.New()
	r.resolved = r.resolved[:0]
	for _, inc := range r.includes.Files() {
		f, ok := r.resolve(inc)
		if !ok {
			r.warn(StageResolveDependencies, "could not find include file %q", inc)
			continue
		}
		if targets.Contains(f.Target) {
			r.warn(StageResolveDependencies, "include file %q would be exported as %q, which is already taken; it is skipped", inc, f.Target)
			continue
		}
		targets.Add(f.Target)
		r.resolved = append(r.resolved, f)
	}
	r.logger.Debug("Includes resolved.", "count", targets.Len())
	r.result.Includes = targets.Files()
	return nil
}

func (r *run) resolve(inc string) (resolvedFile, bool) {
	if src := path.Join(r.opts.RuntimeDir, inc); fsutil.IsFile(r.fs, src) {
		return resolvedFile{Source: src, Target: inc}, true
	}
	if src := path.Join(r.opts.ExtensionsDir, inc); fsutil.IsFile(r.fs, src) {
		return resolvedFile{Source: src, Target: path.Join("Extensions", inc)}, true
	}
	if fsutil.IsFile(r.fs, inc) {
		return resolvedFile{Source: inc, Target: path.Base(inc)}, true
	}
	return resolvedFile{}, false
}

// copyIncludes copies the resolved includes into the bundle unless they
// were minified.
func (r *run) copyIncludes() error {
	if r.result.Minified {
		return nil
	}
	if !r.opts.Minify {
		r.observer.Update(80, "Exporting files...")
	}
	for _, f := range r.resolved {
		if err := r.ctx.Err(); err != nil {
			return err
		}
		if err := fsutil.CopyFile(r.fs, f.Source, path.Join(r.opts.OutDir, f.Target)); err != nil {
			return err
		}
	}
	return nil
}
