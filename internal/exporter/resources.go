package exporter

import (
	"context"
	"fmt"
	"path"
	"strconv"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/specialistvlad/scenepack/internal/fsutil"
	"github.com/specialistvlad/scenepack/internal/project"
)

// ResourceCopier copies the resource files of p into dstDir and rewrites
// every Resource.File to its bundle-relative name. Relative resource files
// are resolved against srcDir. report is called after each resource.
// Returned warnings describe resources that could not be copied.
type ResourceCopier interface {
	CopyResources(ctx context.Context, fsys billy.Filesystem, p *project.Project, srcDir, dstDir string, report func(done, total int)) ([]string, error)
}

// FlatCopier copies every resource into the bundle root. Name clashes get
// a numeric suffix: hero.png, hero2.png, hero3.png.
type FlatCopier struct{}

func (FlatCopier) CopyResources(ctx context.Context, fsys billy.Filesystem, p *project.Project, srcDir, dstDir string, report func(done, total int)) ([]string, error) {
	var warnings []string
	used := make(map[string]bool)
	copied := make(map[string]string)

	total := len(p.Resources)
	for i, res := range p.Resources {
		if err := ctx.Err(); err != nil {
			return warnings, err
		}
		if res.File != "" {
			src := res.File
			if !path.IsAbs(src) && srcDir != "" {
				src = path.Join(srcDir, src)
			}
			switch name, ok := copied[src]; {
			case ok:
				res.File = name
			case !fsutil.IsFile(fsys, src):
				warnings = append(warnings, fmt.Sprintf("resource %q: file %q not found", res.Name, src))
			default:
				name := uniqueName(used, path.Base(src))
				if err := fsutil.CopyFile(fsys, src, path.Join(dstDir, name)); err != nil {
					return warnings, fmt.Errorf("resource %q: %w", res.Name, err)
				}
				copied[src] = name
				res.File = name
			}
		}
		if report != nil {
			report(i+1, total)
		}
	}
	return warnings, nil
}

func uniqueName(used map[string]bool, name string) string {
	ext := path.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	candidate := name
	for n := 2; used[strings.ToLower(candidate)]; n++ {
		candidate = stem + strconv.Itoa(n) + ext
	}
	used[strings.ToLower(candidate)] = true
	return candidate
}
