// Package document converts the structured document form of a project into
// the JSON data bundle loaded by the runtime.
//
// The conversion goes through a generic tree of keyed nodes. A node holds
// either a scalar value or children, never both once normalized; children
// with an empty key are the elements of an array.
package document
