package exporter

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/go-git/go-billy/v5"
	"github.com/google/uuid"
	"github.com/specialistvlad/scenepack/internal/codegen"
	"github.com/specialistvlad/scenepack/internal/ctxlog"
	"github.com/specialistvlad/scenepack/internal/includes"
	"github.com/specialistvlad/scenepack/internal/metrics"
	"github.com/specialistvlad/scenepack/internal/progress"
	"github.com/specialistvlad/scenepack/internal/project"
	"github.com/specialistvlad/scenepack/internal/registry"
)

var errNilProject = errors.New("project must not be nil")

// Publisher uploads the archived bundle and returns where it went.
type Publisher interface {
	Publish(ctx context.Context, key string, r io.Reader) (string, error)
}

// Result describes a finished export.
type Result struct {
	RunID  string
	OutDir string
	// Includes lists the files the bundle loads, bundle-relative, in load
	// order.
	Includes []string
	Scenes   []*codegen.SceneCode
	Minified bool
	// Archive is the bundle path of the zip file, if one was made.
	Archive string
	// Location is where the archive was published, if it was.
	Location string
	Warnings []Warning
}

// Exporter runs exports. Exports of one Exporter must not run concurrently.
type Exporter struct {
	fs   billy.Filesystem
	reg  *registry.Registry
	opts Options

	copier    ResourceCopier
	archiver  Archiver
	runner    CommandRunner
	publisher Publisher
	observer  progress.Observer
	metrics   *metrics.Metrics

	mu        sync.Mutex
	lastError string
}

// Option customizes an Exporter.
type Option func(*Exporter)

// WithResourceCopier replaces the default flat resource copier.
func WithResourceCopier(c ResourceCopier) Option { return func(e *Exporter) { e.copier = c } }

// WithArchiver replaces the default zip archiver.
func WithArchiver(a Archiver) Option { return func(e *Exporter) { e.archiver = a } }

// WithCommandRunner replaces the os/exec runner used by the minifier.
func WithCommandRunner(r CommandRunner) Option { return func(e *Exporter) { e.runner = r } }

// WithPublisher enables publishing of the archive. Exports always archive
// when a publisher is set.
func WithPublisher(p Publisher) Option { return func(e *Exporter) { e.publisher = p } }

// WithObserver sets the progress observer.
func WithObserver(o progress.Observer) Option { return func(e *Exporter) { e.observer = o } }

// WithMetrics records stage metrics into m.
func WithMetrics(m *metrics.Metrics) Option { return func(e *Exporter) { e.metrics = m } }

// New creates an exporter working on fsys.
func New(fsys billy.Filesystem, reg *registry.Registry, opts Options, options ...Option) (*Exporter, error) {
	if fsys == nil || reg == nil {
		return nil, errors.New("filesystem and registry must not be nil")
	}
	opts, err := opts.withDefaults()
	if err != nil {
		return nil, err
	}
	e := &Exporter{
		fs:       fsys,
		reg:      reg,
		opts:     opts,
		copier:   FlatCopier{},
		archiver: ZipArchiver{},
		runner:   ExecRunner{},
		observer: progress.Nop{},
	}
	for _, o := range options {
		o(e)
	}
	if e.publisher != nil {
		e.opts.Archive = true
	}
	return e, nil
}

// Options returns the effective options.
func (e *Exporter) Options() Options {
	return e.opts
}

// LastError returns the message of the last failed export, or "" when the
// last export succeeded.
func (e *Exporter) LastError() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.lastError
}

// Export exports the whole project into the output directory.
func (e *Exporter) Export(ctx context.Context, p *project.Project) (*Result, error) {
	if p == nil {
		return nil, errNilProject
	}
	r := e.newRun(ctx, p, e.opts)
	steps := []step{
		{StagePrepareDir, r.prepareDir},
		{StageCloneProject, r.cloneProject},
		{StageExportResources, r.exportResources},
		{StageGenerateEventsCode, r.generateEventsCode},
		{StageStripProject, r.stripProject},
		{StageSerializeProjectData, r.serializeProjectData},
		{StageResolveDependencies, r.resolveDependencies},
	}
	if r.opts.Minify {
		steps = append(steps, step{StageMinify, r.minify})
	}
	steps = append(steps, step{StageCopyIncludes, r.copyIncludes})
	if r.opts.Target == TargetUpload {
		steps = append(steps, step{StageEmitMetadata, r.emitMetadata})
	} else {
		steps = append(steps, step{StageEmitIndex, r.emitIndex})
	}
	if r.opts.Archive {
		steps = append(steps, step{StageArchive, r.archive})
	}
	if e.publisher != nil {
		steps = append(steps, step{StagePublish, r.publish})
	}
	return e.execute(r, steps)
}

// ExportLayoutForPreview exports a web bundle into dir starting on the
// named layout. It never minifies, archives or publishes.
func (e *Exporter) ExportLayoutForPreview(ctx context.Context, p *project.Project, layout, dir string) (*Result, error) {
	if p == nil {
		return nil, errNilProject
	}
	var invalid error
	switch {
	case dir == "":
		invalid = errors.New("preview directory must be set")
	case !p.HasLayout(layout):
		invalid = fmt.Errorf("layout %q does not exist", layout)
	}
	if invalid != nil {
		err := &StageError{Stage: StagePrepareDir, Err: invalid}
		e.setLastError(err)
		return nil, err
	}
	opts := e.opts
	opts.Target = TargetWeb
	opts.OutDir = dir
	opts.Minify = false
	opts.Archive = false

	r := e.newRun(ctx, p, opts)
	r.firstLayout = layout
	steps := []step{
		{StagePrepareDir, r.prepareDir},
		{StageCloneProject, r.cloneProject},
		{StageExportResources, r.exportResources},
		{StageGenerateEventsCode, r.generateEventsCode},
		{StageStripProject, r.stripProject},
		{StageSerializeProjectData, r.serializeProjectData},
		{StageResolveDependencies, r.resolveDependencies},
		{StageCopyIncludes, r.copyIncludes},
		{StageEmitIndex, r.emitIndex},
	}
	return e.execute(r, steps)
}

type step struct {
	stage Stage
	fn    func() error
}

// run is the state of one export.
type run struct {
	*Exporter
	ctx    context.Context
	logger *slog.Logger
	opts   Options

	source      *project.Project
	project     *project.Project
	firstLayout string

	workDir  string
	includes *includes.List
	resolved []resolvedFile
	result   *Result
}

func (e *Exporter) newRun(ctx context.Context, p *project.Project, opts Options) *run {
	runID := opts.RunID
	if runID == "" {
		runID = uuid.NewString()
	}
	logger := ctxlog.FromContext(ctx).With("run_id", runID)
	return &run{
		Exporter: e,
		ctx:      ctxlog.WithLogger(ctx, logger),
		logger:   logger,
		opts:     opts,
		source:   p,
		includes: includes.NewRuntime(),
		result:   &Result{RunID: runID, OutDir: opts.OutDir},
	}
}

func (e *Exporter) execute(r *run, steps []step) (*Result, error) {
	r.logger.Info("Export started.", "project", r.source.Name, "out", r.opts.OutDir, "target", r.opts.Target)
	defer r.cleanup()

	for _, s := range steps {
		if err := r.ctx.Err(); err != nil {
			return nil, e.fail(r, s.stage, err)
		}
		r.logger.Debug("Stage started.", "stage", s.stage)
		start := time.Now()
		err := s.fn()
		if e.metrics != nil {
			e.metrics.ObserveStage(string(s.stage), time.Since(start))
		}
		if err != nil {
			return nil, e.fail(r, s.stage, err)
		}
	}

	r.observer.Update(100, "Export finished.")
	if e.metrics != nil {
		e.metrics.Export(metrics.OutcomeSuccess)
		e.metrics.Includes(len(r.result.Includes))
	}
	e.setLastError(nil)
	r.logger.Info("Export finished.", "includes", len(r.result.Includes), "warnings", len(r.result.Warnings))
	return r.result, nil
}

func (e *Exporter) fail(r *run, stage Stage, err error) error {
	stageErr := &StageError{Stage: stage, Err: err}
	r.logger.Error("Export failed.", "stage", stage, "error", err)
	if e.metrics != nil {
		e.metrics.Export(metrics.OutcomeFailure)
	}
	e.setLastError(stageErr)
	return stageErr
}

func (e *Exporter) setLastError(err error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err == nil {
		e.lastError = ""
		return
	}
	e.lastError = err.Error()
}

// warn records a degraded outcome.
func (r *run) warn(stage Stage, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	r.logger.Warn(msg, "stage", stage)
	r.result.Warnings = append(r.result.Warnings, Warning{Stage: stage, Message: msg})
	if r.metrics != nil {
		r.metrics.Warning(string(stage))
	}
}
