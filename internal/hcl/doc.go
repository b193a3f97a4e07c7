// Package hcl provides the HCL implementation of project.Loader and the
// reader of the export configuration file. It is responsible for file
// parsing, schema decoding and the translation of the HCL schema into the
// format-agnostic project model.
package hcl
