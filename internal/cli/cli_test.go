package cli_test

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/specialistvlad/scenepack/internal/cli"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	// --- Arrange ---
	out := &bytes.Buffer{}
	args := []string{
		"--out", "/tmp/bundle",
		"--target", "UPLOAD",
		"--minify",
		"--runtime-dir", "/opt/gd/Runtime",
		"--log-level", "debug",
		"--serve", "8080",
		"/games/platformer/project.hcl",
	}

	// --- Act ---
	cfg, shouldExit, err := cli.Parse(args, out)

	// --- Assert ---
	require.NoError(t, err)
	require.False(t, shouldExit)
	require.Equal(t, "/games/platformer/project.hcl", filepath.ToSlash(cfg.ProjectPath))
	require.Equal(t, "/tmp/bundle", filepath.ToSlash(cfg.OutDir))
	require.Equal(t, "upload", cfg.Target)
	require.NotNil(t, cfg.Minify)
	require.True(t, *cfg.Minify)
	require.Nil(t, cfg.Archive, "flags not given leave the configuration file in charge")
	require.Equal(t, 8080, cfg.ServePort)
	require.Equal(t, "debug", cfg.LogLevel)
	require.Equal(t, "text", cfg.LogFormat)
}

func TestParse_RelativePathsBecomeAbsolute(t *testing.T) {
	cfg, _, err := cli.Parse([]string{"-o", "bundle", "project.hcl"}, &bytes.Buffer{})

	require.NoError(t, err)
	require.True(t, filepath.IsAbs(cfg.ProjectPath))
	require.True(t, filepath.IsAbs(cfg.OutDir))
	require.Equal(t, "bundle", filepath.Base(cfg.OutDir))
}

func TestParse_ExitsCleanly(t *testing.T) {
	testCases := []struct {
		name string
		args []string
	}{
		{name: "help", args: []string{"-h"}},
		{name: "no project", args: []string{"--minify"}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			out := &bytes.Buffer{}

			cfg, shouldExit, err := cli.Parse(tc.args, out)

			require.NoError(t, err)
			require.True(t, shouldExit)
			require.Nil(t, cfg)
			require.Contains(t, out.String(), "Usage:")
		})
	}
}

func TestParse_Errors(t *testing.T) {
	testCases := []struct {
		name   string
		args   []string
		errMsg string
	}{
		{name: "unknown flag", args: []string{"--nope", "p.hcl"}, errMsg: "flag provided but not defined: -nope"},
		{name: "log format", args: []string{"--log-format", "xml", "p.hcl"}, errMsg: "invalid log-format"},
		{name: "log level", args: []string{"--log-level", "trace", "p.hcl"}, errMsg: "invalid log-level"},
		{name: "target", args: []string{"--target", "desktop", "p.hcl"}, errMsg: `invalid target "desktop"`},
		{name: "port", args: []string{"--serve", "70000", "p.hcl"}, errMsg: "invalid serve port"},
		{name: "two projects", args: []string{"a.hcl", "b.hcl"}, errMsg: "expected a single project path"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := cli.Parse(tc.args, &bytes.Buffer{})

			var exitErr *cli.ExitError
			require.ErrorAs(t, err, &exitErr)
			require.Equal(t, 2, exitErr.Code)
			require.Contains(t, exitErr.Message, tc.errMsg)
		})
	}
}
