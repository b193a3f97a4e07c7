// Package expr compiles authored expressions into runtime code.
//
// Expressions are parsed with the HCL native syntax parser. Object method
// calls written as Object.Method(args) are rewritten to the namespaced call
// form Object::Method(args) first, so the whole authoring syntax maps onto
// hclsyntax nodes. Function calls resolve through the registry's expression
// tables. Compilation never fails: anything that cannot be compiled yields
// the zero value of the expected type.
package expr
