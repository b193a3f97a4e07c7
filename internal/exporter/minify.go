package exporter

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"path"
	"strings"

	"github.com/specialistvlad/scenepack/internal/fsutil"
)

// MinifiedFile is the single include of a minified bundle.
const MinifiedFile = "code.js"

// RunResult is the outcome of an external command that ran to completion.
type RunResult struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// CommandRunner runs external programs. A non-zero exit is reported through
// RunResult.ExitCode; err is reserved for commands that could not run or
// were killed.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) (*RunResult, error)
}

// ExecRunner runs commands with os/exec.
type ExecRunner struct{}

func (ExecRunner) Run(ctx context.Context, name string, args ...string) (*RunResult, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	res := &RunResult{Stdout: stdout.String(), Stderr: stderr.String()}
	if ctx.Err() != nil {
		return res, ctx.Err()
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		res.ExitCode = exitErr.ExitCode()
		return res, nil
	}
	return res, err
}

// minify compiles every resolved include into a single code.js. Any
// failure leaves the include list untouched so copyIncludes ships the
// files unminified.
func (r *run) minify() error {
	r.observer.Update(80, "Exporting files and minifying them...")
	out := path.Join(r.opts.OutDir, MinifiedFile)

	args := []string{"-jar", r.opts.CompilerJar}
	for _, f := range r.resolved {
		args = append(args, "--js", f.Source)
	}
	args = append(args, "--js_output_file", out)

	ctx, cancel := context.WithTimeout(r.ctx, r.opts.MinifyTimeout)
	defer cancel()
	r.logger.Debug("Running minifier.", "java", r.opts.Java, "files", len(r.resolved))
	res, err := r.runner.Run(ctx, r.opts.Java, args...)

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		r.minifyFailed("the minifier did not finish within %s", r.opts.MinifyTimeout)
	case err != nil:
		if r.ctx.Err() != nil {
			return r.ctx.Err()
		}
		r.minifyFailed("the minifier could not run: %v", err)
	case outOfMemory(res):
		r.minifyFailed("the minifier ran out of memory, try exporting without minification")
	case res.ExitCode != 0:
		r.minifyFailed("the minifier exited with code %d: %s", res.ExitCode, strings.TrimSpace(res.Stderr))
	case !fsutil.IsFile(r.fs, out):
		r.minifyFailed("the minifier produced no %s", MinifiedFile)
	default:
		r.result.Minified = true
		r.result.Includes = []string{MinifiedFile}
	}
	return nil
}

func (r *run) minifyFailed(format string, args ...any) {
	r.warn(StageMinify, format+"; files are exported without minification", args...)
	_ = r.fs.Remove(path.Join(r.opts.OutDir, MinifiedFile))
}

func outOfMemory(res *RunResult) bool {
	return res != nil && (strings.Contains(res.Stdout, "OutOfMemoryError") || strings.Contains(res.Stderr, "OutOfMemoryError"))
}
