// Package mathtools maps the mathematical expressions onto the runtime's
// Math object.
package mathtools

import "github.com/specialistvlad/scenepack/internal/registry"

// Module implements the registry.Module interface for this package.
type Module struct{}

var number = registry.Parameter{Type: registry.ParamExpression}

func catalog() *registry.Extension {
	ext := registry.NewExtension("BuiltinMathematicalTools")
	for _, id := range []string{"cos", "sin", "tan", "acos", "asin", "atan", "abs", "sqrt", "exp", "log", "ceil", "floor", "int", "sign", "cosh", "sinh", "tanh"} {
		ext.Declare(registry.Expression, id, number)
	}
	for _, id := range []string{"min", "max", "atan2", "pow", "mod"} {
		ext.Declare(registry.Expression, id, number, number)
	}
	ext.Declare(registry.Expression, "Random", number)
	ext.Declare(registry.Expression, "round", number)
	return ext
}

// Register adds the mathematical tools extension to the registry.
func (m *Module) Register(r *registry.Registry) {
	ext := catalog().Clone("BuiltinMathematicalTools")
	for _, id := range []string{"cos", "sin", "abs", "min", "max", "sqrt"} {
		ext.Entry(registry.Expression, id).SetFunctionName("Math." + id)
	}
	ext.StripUnimplemented()
	r.AddExtension(ext)
}
