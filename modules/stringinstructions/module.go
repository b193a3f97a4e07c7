// Package stringinstructions declares the text manipulation expressions.
// None of them has a runtime implementation yet, so the extension registers
// nothing.
package stringinstructions

import "github.com/specialistvlad/scenepack/internal/registry"

// Module implements the registry.Module interface for this package.
type Module struct{}

var (
	number = registry.Parameter{Type: registry.ParamExpression}
	text   = registry.Parameter{Type: registry.ParamString}
)

func catalog() *registry.Extension {
	ext := registry.NewExtension("BuiltinStringInstructions")
	ext.Declare(registry.StrExpression, "NewLine")
	ext.Declare(registry.StrExpression, "FromCodePoint", number)
	ext.Declare(registry.StrExpression, "ToUpperCase", text)
	ext.Declare(registry.StrExpression, "ToLowerCase", text)
	ext.Declare(registry.StrExpression, "SubStr", text, number, number)
	ext.Declare(registry.StrExpression, "StrAt", text, number)
	ext.Declare(registry.Expression, "StrLength", text)
	ext.Declare(registry.Expression, "StrFind", text, text)
	ext.Declare(registry.Expression, "StrRFind", text, text)
	ext.Declare(registry.Expression, "StrFindFrom", text, text, number)
	ext.Declare(registry.Expression, "StrRFindFrom", text, text, number)
	return ext
}

// Register adds the (empty) string instructions extension to the registry.
func (m *Module) Register(r *registry.Registry) {
	ext := catalog().Clone("BuiltinStringInstructions")
	// TODO: map the expressions onto stringtools.js once the runtime exposes them.
	ext.StripUnimplemented()
	r.AddExtension(ext)
}
