package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/specialistvlad/scenepack/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("scenepack", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
scenepack - Exports a game project into a runnable web bundle.

Usage:
  scenepack [options] PROJECT_PATH

Arguments:
  PROJECT_PATH
    Path to the project .hcl file.

Options:
`)
		flagSet.PrintDefaults()
	}

	outFlag := flagSet.String("out", "", "Bundle output directory. It is cleared before every export.")
	oFlag := flagSet.String("o", "", "Bundle output directory (shorthand).")
	targetFlag := flagSet.String("target", "", "Bundle target. Options: 'web' or 'upload'. Defaults to 'web'.")
	minifyFlag := flagSet.Bool("minify", false, "Minify the includes into a single code.js with the external compiler.")
	archiveFlag := flagSet.Bool("archive", false, "Zip the bundle into zipped_project.zip.")
	prettyFlag := flagSet.Bool("pretty-data", false, "Indent the serialized project data.")
	previewFlag := flagSet.String("preview", "", "Export a preview starting on the named layout.")
	serveFlag := flagSet.Int("serve", 0, "Serve the bundle over HTTP on this port after the export. 0 is disabled.")
	runtimeDirFlag := flagSet.String("runtime-dir", "", "Directory holding the runtime library and index.html.")
	definitionsFlag := flagSet.String("definitions", "", "Directory of extension definition .hcl files.")
	configFlag := flagSet.String("config", "", "Path to the export configuration .hcl file.")
	metricsFileFlag := flagSet.String("metrics-file", "", "Write export metrics in the Prometheus text format to this file.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	if flagSet.NArg() == 0 {
		slog.Debug("No project path provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}
	if flagSet.NArg() > 1 {
		return nil, false, &ExitError{Code: 2, Message: fmt.Sprintf("expected a single project path, got %d arguments", flagSet.NArg())}
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}

	out := *outFlag
	if out == "" {
		out = *oFlag
	}

	// Booleans only override the configuration file when given.
	set := make(map[string]bool)
	flagSet.Visit(func(f *flag.Flag) { set[f.Name] = true })
	var minify, archive *bool
	if set["minify"] {
		minify = minifyFlag
	}
	if set["archive"] {
		archive = archiveFlag
	}
	slog.Debug("CLI parameter validation complete.")

	config, err := app.NewConfig(app.Config{
		ProjectPath:     flagSet.Arg(0),
		ConfigPath:      *configFlag,
		OutDir:          out,
		Target:          strings.ToLower(*targetFlag),
		RuntimeDir:      *runtimeDirFlag,
		DefinitionsPath: *definitionsFlag,
		Minify:          minify,
		Archive:         archive,
		PrettyData:      *prettyFlag,
		PreviewLayout:   *previewFlag,
		ServePort:       *serveFlag,
		MetricsFile:     *metricsFileFlag,
		LogFormat:       logFormat,
		LogLevel:        logLevel,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}
