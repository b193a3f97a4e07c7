package app

import (
	"errors"
	"fmt"
	"path/filepath"
)

// Config holds all the necessary configuration for an App instance to run.
// Zero values mean "not set on the command line" so the export
// configuration file can supply them.
type Config struct {
	ProjectPath string // project .hcl file
	ConfigPath  string // optional export .hcl file

	OutDir          string
	Target          string
	RuntimeDir      string
	DefinitionsPath string // extension definition .hcl files
	Minify          *bool
	Archive         *bool
	PrettyData      bool

	// PreviewLayout exports only a preview starting on that layout.
	PreviewLayout string
	// ServePort serves the bundle over HTTP after the export. 0 is disabled.
	ServePort   int
	MetricsFile string

	LogFormat string
	LogLevel  string
}

// NewConfig validates cfg and makes every path absolute.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.ProjectPath == "" {
		return nil, errors.New("ProjectPath is a required configuration field and cannot be empty")
	}
	switch cfg.Target {
	case "", "web", "upload":
	default:
		return nil, fmt.Errorf("invalid target %q: must be 'web' or 'upload'", cfg.Target)
	}
	if cfg.ServePort < 0 || cfg.ServePort > 65535 {
		return nil, fmt.Errorf("invalid serve port %d", cfg.ServePort)
	}

	for _, p := range []*string{&cfg.ProjectPath, &cfg.ConfigPath, &cfg.OutDir, &cfg.RuntimeDir, &cfg.DefinitionsPath, &cfg.MetricsFile} {
		abs, err := absPath(*p)
		if err != nil {
			return nil, err
		}
		*p = abs
	}
	return &cfg, nil
}

func absPath(p string) (string, error) {
	if p == "" {
		return "", nil
	}
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", fmt.Errorf("resolve path %q: %w", p, err)
	}
	return filepath.ToSlash(abs), nil
}
