package exporter_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/klauspost/compress/zip"
	promtestutil "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/specialistvlad/scenepack/internal/exporter"
	"github.com/specialistvlad/scenepack/internal/fsutil"
	"github.com/specialistvlad/scenepack/internal/includes"
	"github.com/specialistvlad/scenepack/internal/metrics"
	"github.com/specialistvlad/scenepack/internal/progress"
	"github.com/specialistvlad/scenepack/internal/project"
	"github.com/specialistvlad/scenepack/internal/registry"
	"github.com/specialistvlad/scenepack/internal/testutil"
	"github.com/stretchr/testify/require"
)

const (
	runtimeDir = "/gd/Runtime"
	outDir     = "/out"
)

type fixture struct {
	ctx  context.Context
	logs *testutil.SafeBuffer
	fs   billy.Filesystem
	reg  *registry.Registry
	p    *project.Project
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx, logs := testutil.Context(t)
	fs := memfs.New()
	testutil.WriteRuntime(t, fs, runtimeDir)
	require.NoError(t, fsutil.WriteFile(fs, "/game/img/hero.png", []byte("png")))
	require.NoError(t, fsutil.WriteFile(fs, "/game/other/hero.png", []byte("png2")))
	require.NoError(t, fsutil.WriteFile(fs, "/game/fonts/Title.TTF", []byte("ttf")))

	reg := testutil.Registry()
	reg.Register(registry.Action, "ApplyForce",
		registry.NewDescriptor().SetFunctionName("gdjs.physics.applyForce").AddIncludeFile(testutil.ExtensionFile))
	reg.Register(registry.Action, "Haunt",
		registry.NewDescriptor().SetFunctionName("gdjs.ghost.haunt").AddIncludeFile("ghost/ghost.js"))

	p, main := testutil.NewProject()
	p.Resources = []*project.Resource{
		{Name: "hero", Kind: "image", File: "img/hero.png"},
		{Name: "hero-alt", Kind: "image", File: "other/hero.png"},
		{Name: "title", Kind: "font", File: "fonts/Title.TTF"},
		{Name: "gone", Kind: "audio", File: "sfx/gone.ogg"},
	}
	main.Variables.Set("X", "5")
	main.Events = []*project.Event{
		testutil.Event(
			[]*project.Instruction{testutil.Cond("VarScene", "X", "=", "5")},
			[]*project.Instruction{testutil.Act("ApplyForce"), testutil.Act("Haunt")},
		),
	}
	p.AddLayout(project.NewLayout("Menu"))
	return &fixture{ctx: ctx, logs: logs, fs: fs, reg: reg, p: p}
}

func (f *fixture) exporter(t *testing.T, opts exporter.Options, options ...exporter.Option) *exporter.Exporter {
	t.Helper()
	if opts.OutDir == "" {
		opts.OutDir = outDir
	}
	opts.RuntimeDir = runtimeDir
	opts.ProjectDir = "/game"
	opts.WorkRoot = "/tmp"
	e, err := exporter.New(f.fs, f.reg, opts, options...)
	require.NoError(t, err)
	return e
}

func (f *fixture) read(t *testing.T, p string) string {
	t.Helper()
	data, err := fsutil.ReadFile(f.fs, p)
	require.NoError(t, err)
	return string(data)
}

func rawIncludes() []string {
	files := append([]string(nil), includes.Runtime...)
	return append(files, "Extensions/"+testutil.ExtensionFile, "code0.js", "code1.js", "data.js")
}

func hasWarning(warnings []exporter.Warning, stage exporter.Stage, substr string) bool {
	for _, w := range warnings {
		if w.Stage == stage && strings.Contains(w.Message, substr) {
			return true
		}
	}
	return false
}

// runner is a scripted CommandRunner.
type runner struct {
	calls [][]string
	fn    func(ctx context.Context, args []string) (*exporter.RunResult, error)
}

func (r *runner) Run(ctx context.Context, name string, args ...string) (*exporter.RunResult, error) {
	r.calls = append(r.calls, append([]string{name}, args...))
	return r.fn(ctx, args)
}

func writingMinifier(fs billy.Filesystem) func(context.Context, []string) (*exporter.RunResult, error) {
	return func(_ context.Context, args []string) (*exporter.RunResult, error) {
		for i, a := range args {
			if a == "--js_output_file" {
				if err := fsutil.WriteFile(fs, args[i+1], []byte("minified")); err != nil {
					return nil, err
				}
			}
		}
		return &exporter.RunResult{}, nil
	}
}

type failingArchiver struct{}

func (failingArchiver) Archive(context.Context, billy.Filesystem, string, string) error {
	return errors.New("disk full")
}

type publisher struct {
	key  string
	data []byte
	err  error
}

func (p *publisher) Publish(_ context.Context, key string, r io.Reader) (string, error) {
	if p.err != nil {
		return "", p.err
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	p.key, p.data = key, data
	return "s3://games/" + key, nil
}

func TestExport_Web(t *testing.T) {
	// --- Arrange ---
	f := newFixture(t)
	rec := &progress.Recorder{}
	e := f.exporter(t, exporter.Options{}, exporter.WithObserver(rec))

	// --- Act ---
	res, err := e.Export(f.ctx, f.p)

	// --- Assert ---
	require.NoError(t, err)
	require.Empty(t, e.LastError())
	require.NotEmpty(t, res.RunID)
	require.False(t, res.Minified)
	require.Equal(t, rawIncludes(), res.Includes)

	// Every include is in the bundle and loaded by the index in order.
	index := f.read(t, "/out/index.html")
	last := -1
	for _, inc := range res.Includes {
		require.True(t, fsutil.IsFile(f.fs, "/out/"+inc), inc)
		pos := strings.Index(index, `<script src="`+inc+`"></script>`)
		require.Greater(t, pos, last, inc)
		last = pos
	}
	require.NotContains(t, index, "GDJS_")
	require.Contains(t, index, `@font-face{ font-family : "gdjs_font_Title.TTF"; src : url('Title.TTF') format('truetype'); }`)
	require.Contains(t, index, `<div style="font-family: 'gdjs_font_Title.TTF';">.</div>`)

	// Generated code and project data.
	require.Len(t, res.Scenes, 2)
	require.Equal(t, res.Scenes[0].Code, f.read(t, "/out/code0.js"))
	require.Contains(t, res.Scenes[0].Code, "gdjs.physics.applyForce();")
	data := f.read(t, "/out/data.js")
	require.True(t, strings.HasPrefix(data, exporter.ProjectDataVar+" = {"))
	require.NotContains(t, data, "VarScene", "event trees are stripped")
	require.Contains(t, data, `"file":"hero2.png"`)

	// Resources are flattened with clash renames.
	require.Equal(t, "png", f.read(t, "/out/hero.png"))
	require.Equal(t, "png2", f.read(t, "/out/hero2.png"))
	require.True(t, fsutil.IsFile(f.fs, "/out/Title.TTF"))

	// Degraded outcomes are warnings.
	require.True(t, hasWarning(res.Warnings, exporter.StageExportResources, "sfx/gone.ogg"))
	require.True(t, hasWarning(res.Warnings, exporter.StageResolveDependencies, "ghost/ghost.js"))
	require.Contains(t, f.logs.String(), "ghost/ghost.js")

	// The caller's project is untouched.
	require.Equal(t, "img/hero.png", f.p.Resources[0].File)
	main, _ := f.p.Layout("Main")
	require.Len(t, main.Events, 1)

	require.Equal(t, []int{12, 25, 37, 50, 50, 60, 70, 80, 100}, rec.Percents())

	// The work directory is gone.
	entries, err := f.fs.ReadDir("/tmp")
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestExport_ClearsPreviousOutput(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, fsutil.WriteFile(f.fs, "/out/stale.js", []byte("old")))

	_, err := f.exporter(t, exporter.Options{}).Export(f.ctx, f.p)

	require.NoError(t, err)
	require.False(t, fsutil.IsFile(f.fs, "/out/stale.js"))
}

func TestExport_IsDeterministic(t *testing.T) {
	f := newFixture(t)
	e := f.exporter(t, exporter.Options{})

	first, err := e.Export(f.ctx, f.p)
	require.NoError(t, err)
	firstIndex := f.read(t, "/out/index.html")
	second, err := e.Export(f.ctx, f.p)
	require.NoError(t, err)

	require.Equal(t, first.Includes, second.Includes)
	require.Equal(t, firstIndex, f.read(t, "/out/index.html"))
}

func TestExport_Minify(t *testing.T) {
	// --- Arrange ---
	f := newFixture(t)
	r := &runner{fn: writingMinifier(f.fs)}
	e := f.exporter(t, exporter.Options{Minify: true}, exporter.WithCommandRunner(r))

	// --- Act ---
	res, err := e.Export(f.ctx, f.p)

	// --- Assert ---
	require.NoError(t, err)
	require.True(t, res.Minified)
	require.Equal(t, []string{exporter.MinifiedFile}, res.Includes)
	require.False(t, fsutil.IsFile(f.fs, "/out/libs/pixi.js"), "minified bundles carry no raw includes")

	require.Len(t, r.calls, 1)
	call := r.calls[0]
	require.Equal(t, []string{"java", "-jar", "/gd/Tools/compiler.jar", "--js", runtimeDir + "/libs/pixi.js"}, call[:5])
	require.Equal(t, []string{"--js_output_file", "/out/code.js"}, call[len(call)-2:])
	require.Equal(t, 2*len(rawIncludes())+5, len(call))

	index := f.read(t, "/out/index.html")
	require.Equal(t, 1, strings.Count(index, "<script "))
	require.Contains(t, index, `<script src="code.js"></script>`)
}

func TestExport_MinifyFallsBackToRawCopy(t *testing.T) {
	testCases := []struct {
		name    string
		timeout time.Duration
		fn      func(fs billy.Filesystem) func(context.Context, []string) (*exporter.RunResult, error)
		warning string
	}{
		{
			name: "java missing",
			fn: func(billy.Filesystem) func(context.Context, []string) (*exporter.RunResult, error) {
				return func(context.Context, []string) (*exporter.RunResult, error) {
					return nil, errors.New(`exec: "java": executable file not found in $PATH`)
				}
			},
			warning: "could not run",
		},
		{
			name: "non-zero exit",
			fn: func(billy.Filesystem) func(context.Context, []string) (*exporter.RunResult, error) {
				return func(context.Context, []string) (*exporter.RunResult, error) {
					return &exporter.RunResult{ExitCode: 2, Stderr: "ERROR - parse error"}, nil
				}
			},
			warning: "exited with code 2: ERROR - parse error",
		},
		{
			name: "out of memory",
			fn: func(billy.Filesystem) func(context.Context, []string) (*exporter.RunResult, error) {
				return func(context.Context, []string) (*exporter.RunResult, error) {
					return &exporter.RunResult{ExitCode: 1, Stdout: "java.lang.OutOfMemoryError: Java heap space"}, nil
				}
			},
			warning: "ran out of memory",
		},
		{
			name: "no output",
			fn: func(billy.Filesystem) func(context.Context, []string) (*exporter.RunResult, error) {
				return func(context.Context, []string) (*exporter.RunResult, error) {
					return &exporter.RunResult{}, nil
				}
			},
			warning: "produced no code.js",
		},
		{
			name:    "timeout",
			timeout: 10 * time.Millisecond,
			fn: func(billy.Filesystem) func(context.Context, []string) (*exporter.RunResult, error) {
				return func(ctx context.Context, _ []string) (*exporter.RunResult, error) {
					<-ctx.Done()
					return nil, ctx.Err()
				}
			},
			warning: "did not finish within 10ms",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// --- Arrange ---
			f := newFixture(t)
			r := &runner{fn: tc.fn(f.fs)}
			e := f.exporter(t, exporter.Options{Minify: true, MinifyTimeout: tc.timeout}, exporter.WithCommandRunner(r))

			// --- Act ---
			res, err := e.Export(f.ctx, f.p)

			// --- Assert ---
			require.NoError(t, err)
			require.False(t, res.Minified)
			require.Equal(t, rawIncludes(), res.Includes)
			require.True(t, hasWarning(res.Warnings, exporter.StageMinify, tc.warning), res.Warnings)
			require.True(t, fsutil.IsFile(f.fs, "/out/libs/pixi.js"))
			require.False(t, fsutil.IsFile(f.fs, "/out/code.js"))
		})
	}
}

func TestExport_IndexMarkersAreRequired(t *testing.T) {
	testCases := []struct {
		name     string
		template string
	}{
		{name: "missing marker", template: "<html><!-- GDJS_CUSTOM_STYLE --><!-- GDJS_CUSTOM_HTML --></html>"},
		{name: "duplicate marker", template: strings.Replace(testutil.IndexTemplate, "</html>", "<!-- GDJS_CODE_FILES --></html>", 1)},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// --- Arrange ---
			f := newFixture(t)
			require.NoError(t, fsutil.WriteFile(f.fs, runtimeDir+"/index.html", []byte(tc.template)))
			m := metrics.New()
			e := f.exporter(t, exporter.Options{}, exporter.WithMetrics(m))

			// --- Act ---
			res, err := e.Export(f.ctx, f.p)

			// --- Assert ---
			require.Nil(t, res)
			var stageErr *exporter.StageError
			require.ErrorAs(t, err, &stageErr)
			require.Equal(t, exporter.StageEmitIndex, stageErr.Stage)
			require.Contains(t, err.Error(), exporter.MarkerCodeFiles)
			require.Equal(t, err.Error(), e.LastError())

			count, gerr := promtestutil.GatherAndCount(m.Registry(), "scenepack_exports_total")
			require.NoError(t, gerr)
			require.Equal(t, 1, count)
		})
	}
}

func TestExport_LastErrorClearedBySuccess(t *testing.T) {
	f := newFixture(t)
	e := f.exporter(t, exporter.Options{})

	_, err := e.Export(f.ctx, nil)
	require.Error(t, err)
	_, err = e.ExportLayoutForPreview(f.ctx, f.p, "Nope", "/preview")
	require.Error(t, err)
	require.NotEmpty(t, e.LastError())

	_, err = e.Export(f.ctx, f.p)
	require.NoError(t, err)
	require.Empty(t, e.LastError())
}

func TestExport_CancelledContext(t *testing.T) {
	f := newFixture(t)
	ctx, cancel := context.WithCancel(f.ctx)
	cancel()

	_, err := f.exporter(t, exporter.Options{}).Export(ctx, f.p)

	var stageErr *exporter.StageError
	require.ErrorAs(t, err, &stageErr)
	require.Equal(t, exporter.StagePrepareDir, stageErr.Stage)
	require.ErrorIs(t, err, context.Canceled)
}

func TestExport_UploadTarget(t *testing.T) {
	// --- Arrange ---
	f := newFixture(t)
	f.p.WindowWidth, f.p.WindowHeight = 1024, 768
	pub := &publisher{}
	rec := &progress.Recorder{}
	e := f.exporter(t, exporter.Options{Target: exporter.TargetUpload},
		exporter.WithPublisher(pub), exporter.WithObserver(rec))

	// --- Act ---
	res, err := e.Export(f.ctx, f.p)

	// --- Assert ---
	require.NoError(t, err)
	require.Equal(t, exporter.ArchiveFile, res.Archive)
	require.Equal(t, "s3://games/Game/"+res.RunID+"/zipped_project.zip", res.Location)
	require.Equal(t, []int{90, 95, 100}, rec.Percents()[len(rec.Percents())-3:])

	infos, err := f.fs.ReadDir(outDir)
	require.NoError(t, err)
	require.Len(t, infos, 1, "the bundle holds only the archive")

	archive := f.read(t, "/out/"+exporter.ArchiveFile)
	require.Equal(t, archive, string(pub.data))
	zr, err := zip.NewReader(bytes.NewReader(pub.data), int64(len(pub.data)))
	require.NoError(t, err)
	entries := make(map[string]*zip.File)
	for _, zf := range zr.File {
		entries[zf.Name] = zf
	}
	require.Contains(t, entries, "libs/pixi.js")
	require.Contains(t, entries, "hero2.png")
	require.NotContains(t, entries, "index.html")

	rc, err := entries[exporter.MetadataFile].Open()
	require.NoError(t, err)
	defer rc.Close()
	var md struct {
		Fonts []struct {
			FamilyName string `json:"ffamilyname"`
			Filename   string `json:"filename"`
			Format     string `json:"format"`
		} `json:"fonts"`
		Scripts    []string       `json:"scripts"`
		WindowSize map[string]int `json:"windowSize"`
	}
	require.NoError(t, json.NewDecoder(rc).Decode(&md))
	require.Equal(t, rawIncludes(), md.Scripts)
	require.Equal(t, map[string]int{"w": 1024, "h": 768}, md.WindowSize)
	require.Len(t, md.Fonts, 1)
	require.Equal(t, "gdjs_font_Title.TTF", md.Fonts[0].FamilyName)
	require.Equal(t, "truetype", md.Fonts[0].Format)
}

func TestExport_ArchiveFailureIsAWarning(t *testing.T) {
	f := newFixture(t)
	e := f.exporter(t, exporter.Options{Archive: true}, exporter.WithArchiver(failingArchiver{}))

	res, err := e.Export(f.ctx, f.p)

	require.NoError(t, err)
	require.Empty(t, res.Archive)
	require.True(t, hasWarning(res.Warnings, exporter.StageArchive, "disk full"))
	require.True(t, fsutil.IsFile(f.fs, "/out/index.html"), "the bundle stays unzipped")
}

func TestExport_PublishFailureIsFatal(t *testing.T) {
	f := newFixture(t)
	e := f.exporter(t, exporter.Options{Archive: true, PublishKey: "builds/game.zip"},
		exporter.WithPublisher(&publisher{err: errors.New("access denied")}))

	_, err := e.Export(f.ctx, f.p)

	var stageErr *exporter.StageError
	require.ErrorAs(t, err, &stageErr)
	require.Equal(t, exporter.StagePublish, stageErr.Stage)
	require.ErrorContains(t, err, "builds/game.zip")
	require.ErrorContains(t, err, "access denied")
}

func TestExport_PublisherForcesArchive(t *testing.T) {
	// --- Arrange ---
	f := newFixture(t)
	pub := &publisher{}
	e := f.exporter(t, exporter.Options{}, exporter.WithPublisher(pub))

	// --- Act ---
	res, err := e.Export(f.ctx, f.p)

	// --- Assert ---
	require.NoError(t, err)
	require.True(t, e.Options().Archive)
	require.Equal(t, exporter.ArchiveFile, res.Archive)
	require.Equal(t, "Game/"+res.RunID+"/zipped_project.zip", pub.key)
	require.NotEmpty(t, pub.data)
}

func TestExport_IncludeNameCollisionIsAWarning(t *testing.T) {
	// --- Arrange ---
	f := newFixture(t)
	require.NoError(t, fsutil.WriteFile(f.fs, "/vendor/a/util.js", []byte("// a")))
	require.NoError(t, fsutil.WriteFile(f.fs, "/vendor/b/util.js", []byte("// b")))
	f.reg.Register(registry.Action, "UtilA",
		registry.NewDescriptor().SetFunctionName("gdjs.a.run").AddIncludeFile("/vendor/a/util.js"))
	f.reg.Register(registry.Action, "UtilB",
		registry.NewDescriptor().SetFunctionName("gdjs.b.run").AddIncludeFile("/vendor/b/util.js"))
	main, _ := f.p.Layout("Main")
	main.Events = append(main.Events, testutil.Event(nil, []*project.Instruction{testutil.Act("UtilA"), testutil.Act("UtilB")}))
	e := f.exporter(t, exporter.Options{})

	// --- Act ---
	res, err := e.Export(f.ctx, f.p)

	// --- Assert ---
	require.NoError(t, err)
	count := 0
	for _, inc := range res.Includes {
		if inc == "util.js" {
			count++
		}
	}
	require.Equal(t, 1, count)
	require.Equal(t, "// a", f.read(t, "/out/util.js"))
	require.True(t, hasWarning(res.Warnings, exporter.StageResolveDependencies, `"/vendor/b/util.js"`))
}

func TestExportLayoutForPreview(t *testing.T) {
	// --- Arrange ---
	f := newFixture(t)
	r := &runner{fn: writingMinifier(f.fs)}
	e := f.exporter(t, exporter.Options{Minify: true, Archive: true}, exporter.WithCommandRunner(r))

	// --- Act ---
	res, err := e.ExportLayoutForPreview(f.ctx, f.p, "Menu", "/preview")

	// --- Assert ---
	require.NoError(t, err)
	require.Equal(t, "/preview", res.OutDir)
	require.Empty(t, r.calls, "previews are never minified")
	require.Empty(t, res.Archive)
	require.Contains(t, f.read(t, "/preview/data.js"), `"firstLayout":"Menu"`)
	require.True(t, fsutil.IsFile(f.fs, "/preview/index.html"))
	require.Equal(t, "Main", f.p.FirstLayout)
	require.False(t, fsutil.IsFile(f.fs, "/out/index.html"))
}

func TestExportLayoutForPreview_UnknownLayout(t *testing.T) {
	f := newFixture(t)
	e := f.exporter(t, exporter.Options{})

	_, err := e.ExportLayoutForPreview(f.ctx, f.p, "Nope", "/preview")

	require.ErrorContains(t, err, `layout "Nope" does not exist`)
	require.NotEmpty(t, e.LastError())
}

func TestNew_ValidatesOptions(t *testing.T) {
	fs := memfs.New()
	reg := testutil.Registry()

	_, err := exporter.New(fs, reg, exporter.Options{RuntimeDir: runtimeDir})
	require.ErrorContains(t, err, "output directory")

	_, err = exporter.New(fs, reg, exporter.Options{OutDir: outDir})
	require.ErrorContains(t, err, "runtime directory")

	_, err = exporter.New(fs, reg, exporter.Options{OutDir: outDir, RuntimeDir: runtimeDir, Target: "desktop"})
	require.ErrorContains(t, err, `unknown target "desktop"`)

	e, err := exporter.New(fs, reg, exporter.Options{OutDir: outDir, RuntimeDir: runtimeDir, Target: exporter.TargetUpload})
	require.NoError(t, err)
	opts := e.Options()
	require.True(t, opts.Archive)
	require.Equal(t, "/gd/Runtime/Extensions", opts.ExtensionsDir)
	require.Equal(t, "/gd/Runtime/index.html", opts.IndexTemplate)
	require.Equal(t, "/gd/Tools/compiler.jar", opts.CompilerJar)
	require.Equal(t, exporter.DefaultMinifyTimeout, opts.MinifyTimeout)
}
