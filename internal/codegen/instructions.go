package codegen

import (
	"strings"

	"github.com/specialistvlad/scenepack/internal/expr"
	"github.com/specialistvlad/scenepack/internal/project"
	"github.com/specialistvlad/scenepack/internal/registry"
	"github.com/specialistvlad/scenepack/internal/varaccess"
)

var relationalOps = map[string]string{
	"":   "===",
	"=":  "===",
	"!=": "!==",
	">":  ">",
	"<":  "<",
	">=": ">=",
	"<=": "<=",
}

// resolve finds the descriptor of an instruction. An instruction whose
// first parameter names an object with an entry for the object's type is
// object-bound.
func (g *generator) resolve(kind registry.Kind, in *project.Instruction) (*registry.Descriptor, string, bool) {
	if len(in.Parameters) > 0 {
		object := in.Parameters[0]
		if t, ok := g.project.ResolvedObjectType(g.layout, object); ok {
			if d, ok := g.reg.LookupForObject(t, kind, in.Type); ok {
				return d, object, true
			}
		}
	}
	if d, ok := g.reg.Lookup(kind, in.Type); ok {
		return d, "", false
	}
	return nil, "", false
}

func (g *generator) condition(in *project.Instruction) (string, bool) {
	d, object, objectBound := g.resolve(registry.Condition, in)
	if d == nil {
		g.unresolved.Add("condition:" + in.Type)
		return "", false
	}
	g.includes.Add(d.IncludeFiles...)
	params := d.Expand(in.Parameters)
	result := g.BooleanFullName("conditionTrue") + ".val"

	switch code := d.Code.(type) {
	case registry.Custom:
		out := code.Generate(params, g)
		// Nothing generated leaves the temporary false.
		if in.Inverted && out != "" {
			out += "\n" + result + " = !" + result + ";"
		}
		return out + "\n", true

	case registry.FunctionMapping:
		if objectBound {
			slots, values := objectSlots(d, params)
			g.object, g.objectAccess = object, "obj"
			predicate := g.predicate(code, slots, values, "obj.")
			g.object, g.objectAccess = "", ""
			if in.Inverted {
				predicate = "!(" + predicate + ")"
			}
			return result + " = " + g.objectList(object) + ".some(function(obj) { return " + predicate + "; });\n", true
		}
		predicate := g.predicate(code, d.Parameters, params, "")
		if in.Inverted {
			predicate = "!(" + predicate + ")"
		}
		return result + " = " + predicate + ";\n", true
	}
	g.unresolved.Add("condition:" + in.Type)
	return "", false
}

func (g *generator) action(in *project.Instruction) (string, bool) {
	d, object, objectBound := g.resolve(registry.Action, in)
	if d == nil {
		g.unresolved.Add("action:" + in.Type)
		return "", false
	}
	g.includes.Add(d.IncludeFiles...)
	params := d.Expand(in.Parameters)

	switch code := d.Code.(type) {
	case registry.Custom:
		out := code.Generate(params, g)
		if out != "" && !strings.HasSuffix(out, "\n") {
			out += "\n"
		}
		return out, true

	case registry.FunctionMapping:
		if objectBound {
			slots, values := objectSlots(d, params)
			g.object, g.objectAccess = object, "objs[i]"
			stmt := g.call(code, slots, values, "objs[i].")
			g.object, g.objectAccess = "", ""
			if stmt == "" {
				return "", true
			}
			return "for (var i = 0, objs = " + g.objectList(object) + "; i < objs.length; ++i) {\n" + stmt + "}\n", true
		}
		return g.call(code, d.Parameters, params, ""), true
	}
	g.unresolved.Add("action:" + in.Type)
	return "", false
}

// objectSlots drops the leading object parameter of an object-bound entry.
func objectSlots(d *registry.Descriptor, params []string) ([]registry.Parameter, []string) {
	if len(d.Parameters) > 0 && d.Parameters[0].Type == registry.ParamObject {
		return d.Parameters[1:], params[1:]
	}
	return d.Parameters, params
}

// operatorSplit converts every argument except the operator at index op and
// the value following it. It returns the converted base arguments and the
// value.
func (g *generator) operatorSplit(slots []registry.Parameter, values []string, op int) ([]string, string) {
	var base []string
	value := ""
	for i, p := range slots {
		switch {
		case i == op:
		case i == op+1:
			value = g.convert(p, values[i])
		default:
			base = append(base, g.convert(p, values[i]))
		}
	}
	if op+1 >= len(slots) {
		value = "0"
	}
	return base, value
}

func indexOfType(slots []registry.Parameter, typ string) int {
	for i, p := range slots {
		if p.Type == typ {
			return i
		}
	}
	return -1
}

// predicate returns the boolean expression of a mapped condition.
func (g *generator) predicate(code registry.FunctionMapping, slots []registry.Parameter, values []string, receiver string) string {
	op := indexOfType(slots, registry.ParamRelationalOperator)
	if op < 0 {
		return receiver + code.FunctionName + "(" + strings.Join(g.convertAll(slots, values), ", ") + ")"
	}
	base, value := g.operatorSplit(slots, values, op)
	jsOp, ok := relationalOps[strings.TrimSpace(values[op])]
	if !ok {
		jsOp = "==="
	}
	return receiver + code.FunctionName + "(" + strings.Join(base, ", ") + ") " + jsOp + " " + value
}

// call returns the statement of a mapped action. Actions with an operator
// parameter read the current value through the associated getter.
func (g *generator) call(code registry.FunctionMapping, slots []registry.Parameter, values []string, receiver string) string {
	op := indexOfType(slots, registry.ParamOperator)
	if op < 0 {
		return receiver + code.FunctionName + "(" + strings.Join(g.convertAll(slots, values), ", ") + ");\n"
	}
	base, value := g.operatorSplit(slots, values, op)
	args := append([]string(nil), base...)
	switch operator := strings.TrimSpace(values[op]); operator {
	case "=":
		args = append(args, value)
	case "+", "-", "*", "/":
		if code.AssociatedGetter == "" {
			return ""
		}
		getter := receiver + code.AssociatedGetter + "(" + strings.Join(base, ", ") + ")"
		args = append(args, getter+" "+operator+" "+value)
	default:
		return ""
	}
	return receiver + code.FunctionName + "(" + strings.Join(args, ", ") + ");\n"
}

func (g *generator) convertAll(slots []registry.Parameter, values []string) []string {
	out := make([]string, len(slots))
	for i, p := range slots {
		out[i] = g.convert(p, values[i])
	}
	return out
}

// convert turns the authored text of a parameter into code.
func (g *generator) convert(p registry.Parameter, raw string) string {
	if p.CodeOnly {
		return expr.CodeOnlyToken(p.Type)
	}
	switch p.Type {
	case registry.ParamExpression:
		return g.CompileNumber(raw)
	case registry.ParamString:
		return g.CompileString(raw)
	case registry.ParamObject:
		return g.objectList(raw)
	}
	return expr.Literal(p.Type, raw, g)
}

// objectList returns the code of the instances of an object, or of every
// object of a group.
func (g *generator) objectList(name string) string {
	names := g.project.ResolveObjects(g.layout, name)
	if len(names) == 0 {
		return "[]"
	}
	lists := make([]string, len(names))
	for i, n := range names {
		lists[i] = `runtimeScene.getObjects("` + varaccess.Escape(n) + `")`
	}
	if len(lists) == 1 {
		return lists[0]
	}
	return lists[0] + ".concat(" + strings.Join(lists[1:], ", ") + ")"
}
