package project

import "context"

// Loader is the interface for a format-specific project reader.
type Loader interface {
	// Load reads the project stored at path and translates it into the
	// format-agnostic model.
	Load(ctx context.Context, path string) (*Project, error)
}
