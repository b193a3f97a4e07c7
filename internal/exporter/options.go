package exporter

import (
	"errors"
	"fmt"
	"os"
	"path"
	"time"
)

// Target selects what the bundle is built for.
type Target string

const (
	// TargetWeb produces an index.html loading every include.
	TargetWeb Target = "web"
	// TargetUpload produces a gd_metadata.json descriptor and always zips
	// the bundle.
	TargetUpload Target = "upload"
)

// DefaultMinifyTimeout bounds the external minifier.
const DefaultMinifyTimeout = 5 * time.Minute

// Options configures an Exporter. Every path is a path of the exporter's
// filesystem.
type Options struct {
	// RunID identifies the exports in logs, metrics and progress events. A
	// random UUID is generated per export when empty.
	RunID string

	Target Target
	// OutDir is the bundle directory. It is cleared by every export.
	OutDir string
	// ProjectDir is the base of relative resource files.
	ProjectDir string

	// RuntimeDir holds the runtime library files and index.html.
	RuntimeDir string
	// ExtensionsDir defaults to RuntimeDir/Extensions.
	ExtensionsDir string
	// IndexTemplate defaults to RuntimeDir/index.html.
	IndexTemplate string
	// WorkRoot is where the temporary work directory is created. It
	// defaults to the system temporary directory.
	WorkRoot string

	Minify bool
	// Java defaults to "java" looked up in PATH.
	Java string
	// CompilerJar defaults to RuntimeDir/../Tools/compiler.jar.
	CompilerJar   string
	MinifyTimeout time.Duration

	Archive bool
	// PublishKey is the object key of the published archive. It defaults
	// to <project>/<run id>/zipped_project.zip.
	PublishKey string

	// PrettyData indents data.js.
	PrettyData bool
}

// withDefaults validates o and fills the defaults in.
func (o Options) withDefaults() (Options, error) {
	switch o.Target {
	case "":
		o.Target = TargetWeb
	case TargetWeb, TargetUpload:
	default:
		return o, fmt.Errorf("unknown target %q (valid targets: web, upload)", o.Target)
	}
	if o.OutDir == "" {
		return o, errors.New("output directory must be set")
	}
	if o.RuntimeDir == "" {
		return o, errors.New("runtime directory must be set")
	}
	if o.ExtensionsDir == "" {
		o.ExtensionsDir = path.Join(o.RuntimeDir, "Extensions")
	}
	if o.IndexTemplate == "" {
		o.IndexTemplate = path.Join(o.RuntimeDir, "index.html")
	}
	if o.WorkRoot == "" {
		o.WorkRoot = os.TempDir()
	}
	if o.Java == "" {
		o.Java = "java"
	}
	if o.CompilerJar == "" {
		o.CompilerJar = path.Join(path.Dir(path.Clean(o.RuntimeDir)), "Tools", "compiler.jar")
	}
	if o.MinifyTimeout <= 0 {
		o.MinifyTimeout = DefaultMinifyTimeout
	}
	if o.Target == TargetUpload {
		o.Archive = true
	}
	return o, nil
}
