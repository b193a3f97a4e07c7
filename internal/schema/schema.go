// Package schema holds the gohcl decoding targets for every HCL file the
// tool reads: project files, export configuration and extension
// definitions.
package schema

import "github.com/hashicorp/hcl/v2"

// --- Project files ---

// ProjectFile is the top-level structure of a project file.
type ProjectFile struct {
	Name           string                 `hcl:"name"`
	Author         string                 `hcl:"author,optional"`
	FirstLayout    string                 `hcl:"first_layout,optional"`
	Window         *Window                `hcl:"window,block"`
	Variables      []*Variable            `hcl:"variable,block"`
	Objects        []*Object              `hcl:"object,block"`
	Groups         []*Group               `hcl:"group,block"`
	Resources      []*Resource            `hcl:"resource,block"`
	Layouts        []*Layout              `hcl:"layout,block"`
	ExternalEvents []*ExternalEventsBlock `hcl:"external_events,block"`
}

// Window holds the game window size.
type Window struct {
	Width  int `hcl:"width,optional"`
	Height int `hcl:"height,optional"`
}

// Variable declares a variable. Nested variable blocks make a structure.
type Variable struct {
	Name     string         `hcl:"name,label"`
	Value    hcl.Expression `hcl:"value,optional"`
	Children []*Variable    `hcl:"variable,block"`
}

// Object declares an object and its type.
type Object struct {
	Name string `hcl:"name,label"`
	Type string `hcl:"type"`
}

// Group declares an object group.
type Group struct {
	Name    string   `hcl:"name,label"`
	Objects []string `hcl:"objects"`
}

// Resource declares a file used by the game.
type Resource struct {
	Name string `hcl:"name,label"`
	Kind string `hcl:"kind,optional"`
	File string `hcl:"file"`
}

// Layout is a scene with its own variables, objects, groups and events.
type Layout struct {
	Name      string      `hcl:"name,label"`
	Variables []*Variable `hcl:"variable,block"`
	Objects   []*Object   `hcl:"object,block"`
	Groups    []*Group    `hcl:"group,block"`
	Events    []*Event    `hcl:"event,block"`
}

// ExternalEventsBlock is an event sheet shared between layouts.
type ExternalEventsBlock struct {
	Name   string   `hcl:"name,label"`
	Layout string   `hcl:"layout,optional"`
	Events []*Event `hcl:"event,block"`
}

// Event is a node of an event tree.
type Event struct {
	Disabled   bool           `hcl:"disabled,optional"`
	Link       string         `hcl:"link,optional"`
	Conditions []*Instruction `hcl:"condition,block"`
	Actions    []*Instruction `hcl:"action,block"`
	SubEvents  []*Event       `hcl:"event,block"`
}

// Instruction references a catalog entry by identifier.
type Instruction struct {
	Type     string   `hcl:"type,label"`
	Params   []string `hcl:"params,optional"`
	Inverted bool     `hcl:"inverted,optional"`
}

// --- Export configuration ---

// ExportFile is the optional export configuration file.
type ExportFile struct {
	Target   string         `hcl:"target,optional"`
	Out      string         `hcl:"out,optional"`
	Runtime  *RuntimeBlock  `hcl:"runtime,block"`
	Minify   *MinifyBlock   `hcl:"minify,block"`
	Archive  *ArchiveBlock  `hcl:"archive,block"`
	Publish  *PublishBlock  `hcl:"publish,block"`
	Progress *ProgressBlock `hcl:"progress,block"`
}

// RuntimeBlock locates the runtime library.
type RuntimeBlock struct {
	Dir           string `hcl:"dir,optional"`
	ExtensionsDir string `hcl:"extensions_dir,optional"`
	IndexTemplate string `hcl:"index_template,optional"`
	// Definitions is a directory of extension definition files.
	Definitions string `hcl:"definitions,optional"`
}

// MinifyBlock configures the external minifier.
type MinifyBlock struct {
	Enabled     bool   `hcl:"enabled,optional"`
	Java        string `hcl:"java,optional"`
	CompilerJar string `hcl:"compiler_jar,optional"`
	Timeout     string `hcl:"timeout,optional"`
}

// ArchiveBlock toggles zipping of the bundle.
type ArchiveBlock struct {
	Enabled bool `hcl:"enabled,optional"`
}

// PublishBlock configures the upload of the archived bundle.
type PublishBlock struct {
	Bucket    string `hcl:"bucket"`
	Key       string `hcl:"key,optional"`
	Region    string `hcl:"region,optional"`
	Endpoint  string `hcl:"endpoint,optional"`
	PathStyle bool   `hcl:"path_style,optional"`
}

// ProgressBlock configures the socket.io progress reporter.
type ProgressBlock struct {
	SocketIOURL string `hcl:"socketio_url"`
	Namespace   string `hcl:"namespace,optional"`
	Event       string `hcl:"event,optional"`
}

// --- Extension definitions ---

// DefinitionFile declares extensions implemented by runtime files.
type DefinitionFile struct {
	Extensions []*ExtensionDefinition `hcl:"extension,block"`
	Body       hcl.Body               `hcl:",remain"`
}

// ExtensionDefinition groups entries sharing include files.
type ExtensionDefinition struct {
	Name           string             `hcl:"name,label"`
	IncludeFiles   []string           `hcl:"include_files,optional"`
	Conditions     []*EntryDefinition `hcl:"condition,block"`
	Actions        []*EntryDefinition `hcl:"action,block"`
	Expressions    []*EntryDefinition `hcl:"expression,block"`
	StrExpressions []*EntryDefinition `hcl:"str_expression,block"`
}

// EntryDefinition maps one identifier onto a runtime function.
type EntryDefinition struct {
	ID           string                 `hcl:"id,label"`
	ObjectType   string                 `hcl:"object_type,optional"`
	Function     string                 `hcl:"function"`
	Getter       string                 `hcl:"getter,optional"`
	IncludeFiles []string               `hcl:"include_files,optional"`
	Parameters   []*ParameterDefinition `hcl:"parameter,block"`
}

// ParameterDefinition declares one parameter slot.
type ParameterDefinition struct {
	Type       string `hcl:"type,label"`
	CodeOnly   bool   `hcl:"code_only,optional"`
	ObjectType string `hcl:"object_type,optional"`
}
