package exporter

import "fmt"

// Stage names a step of the export pipeline.
type Stage string

const (
	StagePrepareDir           Stage = "prepare_dir"
	StageCloneProject         Stage = "clone_project"
	StageExportResources      Stage = "export_resources"
	StageGenerateEventsCode   Stage = "generate_events_code"
	StageStripProject         Stage = "strip_project"
	StageSerializeProjectData Stage = "serialize_project_data"
	StageResolveDependencies  Stage = "resolve_dependencies"
	StageMinify               Stage = "minify"
	StageCopyIncludes         Stage = "copy_includes"
	StageEmitIndex            Stage = "emit_index"
	StageEmitMetadata         Stage = "emit_metadata"
	StageArchive              Stage = "archive"
	StagePublish              Stage = "publish"
)

// StageError is returned when a stage fails and the export stops.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("export failed at stage %s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// Warning is a degraded outcome that did not stop the export.
type Warning struct {
	Stage   Stage
	Message string
}

func (w Warning) String() string {
	return string(w.Stage) + ": " + w.Message
}
