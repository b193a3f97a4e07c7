// Package mouse implements the mouse conditions, actions and expressions
// on top of the runtime input tools.
package mouse

import "github.com/specialistvlad/scenepack/internal/registry"

// Module implements the registry.Module interface for this package.
type Module struct{}

const includeFile = "inputtools.js"

var (
	scene  = registry.Parameter{Type: registry.ParamCurrentScene, CodeOnly: true}
	relOp  = registry.Parameter{Type: registry.ParamRelationalOperator}
	number = registry.Parameter{Type: registry.ParamExpression}
	layer  = registry.Parameter{Type: registry.ParamLayout}
	button = registry.Parameter{Type: registry.ParamMouseButton}
)

func catalog() *registry.Extension {
	ext := registry.NewExtension("BuiltinMouse")
	ext.Declare(registry.Condition, "SourisX", scene, relOp, number, layer, number)
	ext.Declare(registry.Condition, "SourisY", scene, relOp, number, layer, number)
	ext.Declare(registry.Condition, "SourisBouton", scene, button)
	ext.Declare(registry.Action, "CacheSouris", scene)
	ext.Declare(registry.Action, "MontreSouris", scene)
	ext.Declare(registry.Action, "CentreSourisX", scene)
	ext.Declare(registry.Action, "CentreSourisY", scene)
	ext.Declare(registry.Action, "CentreSouris", scene)
	ext.Declare(registry.Action, "SetSourisXY", scene, number, number)
	for _, id := range []string{"MouseX", "SourisX", "MouseY", "SourisY"} {
		ext.Declare(registry.Expression, id, scene, layer, number)
	}
	ext.Declare(registry.Expression, "MouseWheelDelta", scene)
	return ext
}

// Register adds the mouse extension to the registry.
func (m *Module) Register(r *registry.Registry) {
	ext := catalog().Clone("BuiltinMouse")
	set := func(kind registry.Kind, id, fn string) {
		ext.Entry(kind, id).SetFunctionName(fn).AddIncludeFile(includeFile)
	}

	set(registry.Condition, "SourisX", "gdjs.evtTools.input.getMouseX")
	set(registry.Condition, "SourisY", "gdjs.evtTools.input.getMouseY")
	set(registry.Condition, "SourisBouton", "gdjs.evtTools.input.isMouseButtonPressed")
	set(registry.Action, "CacheSouris", "gdjs.evtTools.input.hideCursor")
	set(registry.Action, "MontreSouris", "gdjs.evtTools.input.showCursor")
	set(registry.Expression, "MouseX", "gdjs.evtTools.input.getMouseX")
	set(registry.Expression, "SourisX", "gdjs.evtTools.input.getMouseX")
	set(registry.Expression, "MouseY", "gdjs.evtTools.input.getMouseY")
	set(registry.Expression, "SourisY", "gdjs.evtTools.input.getMouseY")

	ext.StripUnimplemented()
	r.AddExtension(ext)
}
