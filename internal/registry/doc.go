// Package registry holds the instruction metadata catalog.
//
// Every condition, action and expression an event sheet can reference is
// described by a Descriptor stored under its identifier. A descriptor either
// maps the instruction onto a runtime function (FunctionMapping) or carries a
// Custom generator that writes the code itself. Built-in extensions under
// modules/ populate the registry through the Module interface; user
// extensions can be declared in HCL files and loaded with LoadDefinitions.
//
// A Registry is built once per export run and passed explicitly to the code
// generator. Registration is additive and the last write for an identifier
// wins.
package registry
