// Package externallayouts implements the instructions related to external
// layouts.
package externallayouts

import "github.com/specialistvlad/scenepack/internal/registry"

// Module implements the registry.Module interface for this package.
type Module struct{}

// ParamExternalLayoutName is the parameter naming an external layout.
const ParamExternalLayoutName = "externalLayoutName"

func catalog() *registry.Extension {
	ext := registry.NewExtension("BuiltinExternalLayouts")
	ext.Declare(registry.Action, "BuiltinExternalLayouts::CreateObjectsFromExternalLayout",
		registry.Parameter{Type: registry.ParamCurrentScene, CodeOnly: true},
		registry.Parameter{Type: ParamExternalLayoutName},
		registry.Parameter{Type: registry.ParamExpression},
		registry.Parameter{Type: registry.ParamExpression},
	)
	return ext
}

// Register adds the external layouts extension to the registry.
func (m *Module) Register(r *registry.Registry) {
	ext := catalog().Clone("BuiltinExternalLayouts")
	ext.Entry(registry.Action, "BuiltinExternalLayouts::CreateObjectsFromExternalLayout").
		SetFunctionName("gdjs.evtTools.runtimeScene.createObjectsFromExternalLayout")
	ext.StripUnimplemented()
	r.AddExtension(ext)
}
