// Package project defines the format-agnostic model of an authored project:
// layouts (scenes), their event trees, variables, objects, object groups and
// resources.
//
// The model is the single input of the code generator and the export
// pipeline. Concrete loaders, such as the HCL one, live in separate packages
// and only have to satisfy the Loader interface.
package project
