// Package exporter turns a project into a runnable bundle.
//
// An export runs strictly sequential stages over a working copy of the
// project:
//
//	PrepareDir → CloneProject → ExportResources → GenerateEventsCode →
//	StripProject → SerializeProjectData → ResolveDependencies →
//	(Minify | CopyIncludes) → EmitIndex | EmitMetadata → [Archive] → [Publish]
//
// A failing stage stops the export with a *StageError. Degraded outcomes
// (missing include, minifier failure, archive failure) are recorded as
// warnings on the Result and never stop the export. The output directory is
// cleared at the start of every export, so a failed export may leave
// partial output behind until the next attempt.
package exporter
