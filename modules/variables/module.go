// Package variables implements the built-in scene and global variable
// instructions and expressions.
package variables

import (
	"github.com/specialistvlad/scenepack/internal/registry"
	"github.com/specialistvlad/scenepack/internal/varaccess"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

var (
	scene    = registry.Parameter{Type: registry.ParamCurrentScene, CodeOnly: true}
	sceneVar = registry.Parameter{Type: registry.ParamSceneVariable}
	gameVar  = registry.Parameter{Type: registry.ParamGlobalVariable}
	relOp    = registry.Parameter{Type: registry.ParamRelationalOperator}
	op       = registry.Parameter{Type: registry.ParamOperator}
	number   = registry.Parameter{Type: registry.ParamExpression}
	text     = registry.Parameter{Type: registry.ParamString}
)

// catalog declares every variable entry without code.
func catalog() *registry.Extension {
	ext := registry.NewExtension("BuiltinVariables")
	ext.Declare(registry.Condition, "VarScene", scene, sceneVar, relOp, number)
	ext.Declare(registry.Condition, "VarSceneTxt", scene, sceneVar, relOp, text)
	ext.Declare(registry.Condition, "VarSceneDef", scene, sceneVar)
	ext.Declare(registry.Condition, "VarGlobal", scene, gameVar, relOp, number)
	ext.Declare(registry.Condition, "VarGlobalTxt", scene, gameVar, relOp, text)
	ext.Declare(registry.Condition, "VarGlobalDef", scene, gameVar)
	ext.Declare(registry.Action, "ModVarScene", scene, sceneVar, op, number)
	ext.Declare(registry.Action, "ModVarSceneTxt", scene, sceneVar, op, text)
	ext.Declare(registry.Action, "ModVarGlobal", scene, gameVar, op, number)
	ext.Declare(registry.Action, "ModVarGlobalTxt", scene, gameVar, op, text)
	ext.Declare(registry.Expression, "Variable", scene, sceneVar)
	ext.Declare(registry.StrExpression, "VariableString", scene, sceneVar)
	ext.Declare(registry.Expression, "GlobalVariable", scene, gameVar)
	ext.Declare(registry.StrExpression, "GlobalVariableString", scene, gameVar)
	ext.Declare(registry.Expression, "VariableChildCount", scene, sceneVar)
	return ext
}

// Parameter positions shared by every generator of this package.
const (
	paramVariable = 1
	paramOperator = 2
	paramValue    = 3
)

func accessor(gc registry.GenerationContext, scope varaccess.Scope, name string) string {
	return varaccess.Accessor(gc.Project(), gc.Layout(), scope, name)
}

func compare(scope varaccess.Scope, textual bool) func([]string, registry.GenerationContext) string {
	return func(params []string, gc registry.GenerationContext) string {
		var value string
		if textual {
			value = gc.CompileString(params[paramValue])
		} else {
			value = gc.CompileNumber(params[paramValue])
		}
		result := gc.BooleanFullName("conditionTrue") + ".val"
		return varaccess.Compare(result, accessor(gc, scope, params[paramVariable]), params[paramOperator], value, textual)
	}
}

func defined(scope varaccess.Scope) func([]string, registry.GenerationContext) string {
	return func(params []string, gc registry.GenerationContext) string {
		return gc.BooleanFullName("conditionTrue") + ".val = " + varaccess.Has(scope, params[paramVariable]) + ";"
	}
}

func modify(scope varaccess.Scope, textual bool) func([]string, registry.GenerationContext) string {
	return func(params []string, gc registry.GenerationContext) string {
		var value string
		if textual {
			value = gc.CompileString(params[paramValue])
		} else {
			value = gc.CompileNumber(params[paramValue])
		}
		return varaccess.Modify(accessor(gc, scope, params[paramVariable]), params[paramOperator], value, textual)
	}
}

func read(scope varaccess.Scope, textual bool) func([]string, registry.GenerationContext) string {
	return func(params []string, gc registry.GenerationContext) string {
		return varaccess.Value(accessor(gc, scope, params[paramVariable]), textual)
	}
}

// Register adds the variables extension to the registry.
func (m *Module) Register(r *registry.Registry) {
	ext := catalog().Clone("BuiltinVariables")

	ext.Entry(registry.Condition, "VarScene").SetCustom(compare(varaccess.Scene, false))
	ext.Entry(registry.Condition, "VarSceneTxt").SetCustom(compare(varaccess.Scene, true))
	ext.Entry(registry.Condition, "VarSceneDef").SetCustom(defined(varaccess.Scene))
	ext.Entry(registry.Condition, "VarGlobal").SetCustom(compare(varaccess.Global, false))
	ext.Entry(registry.Condition, "VarGlobalTxt").SetCustom(compare(varaccess.Global, true))
	ext.Entry(registry.Condition, "VarGlobalDef").SetCustom(defined(varaccess.Global))

	ext.Entry(registry.Action, "ModVarScene").SetCustom(modify(varaccess.Scene, false))
	ext.Entry(registry.Action, "ModVarSceneTxt").SetCustom(modify(varaccess.Scene, true))
	ext.Entry(registry.Action, "ModVarGlobal").SetCustom(modify(varaccess.Global, false))
	ext.Entry(registry.Action, "ModVarGlobalTxt").SetCustom(modify(varaccess.Global, true))

	ext.Entry(registry.Expression, "Variable").SetCustom(read(varaccess.Scene, false))
	ext.Entry(registry.StrExpression, "VariableString").SetCustom(read(varaccess.Scene, true))
	ext.Entry(registry.Expression, "GlobalVariable").SetCustom(read(varaccess.Global, false))
	ext.Entry(registry.StrExpression, "GlobalVariableString").SetCustom(read(varaccess.Global, true))

	ext.StripUnimplemented()
	r.AddExtension(ext)
}
