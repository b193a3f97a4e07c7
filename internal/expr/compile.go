package expr

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/specialistvlad/scenepack/internal/registry"
	"github.com/zclconf/go-cty/cty"
)

// Type is the type an expression must evaluate to.
type Type int

const (
	Number Type = iota
	String
)

// Fallback is the code used when an expression cannot be compiled.
func (t Type) Fallback() string {
	if t == String {
		return `""`
	}
	return "0"
}

func (t Type) kind() registry.Kind {
	if t == String {
		return registry.StrExpression
	}
	return registry.Expression
}

// Context resolves the symbols an expression references.
type Context interface {
	registry.GenerationContext
	Registry() *registry.Registry
	// ObjectAccess returns the code of the instance an object expression
	// applies to.
	ObjectAccess(object string) string
}

var errUnsupported = errors.New("unsupported expression")

var binaryOps = map[*hclsyntax.Operation]string{
	hclsyntax.OpAdd:                "+",
	hclsyntax.OpSubtract:           "-",
	hclsyntax.OpMultiply:           "*",
	hclsyntax.OpDivide:             "/",
	hclsyntax.OpModulo:             "%",
	hclsyntax.OpEqual:              "===",
	hclsyntax.OpNotEqual:           "!==",
	hclsyntax.OpGreaterThan:        ">",
	hclsyntax.OpGreaterThanOrEqual: ">=",
	hclsyntax.OpLessThan:           "<",
	hclsyntax.OpLessThanOrEqual:    "<=",
	hclsyntax.OpLogicalAnd:         "&&",
	hclsyntax.OpLogicalOr:          "||",
}

// Compile compiles text into code evaluating to typ. It returns the
// fallback of typ when text is empty, does not parse, references unknown
// functions or mixes types.
func Compile(text string, typ Type, ctx Context) string {
	if strings.TrimSpace(text) == "" {
		return typ.Fallback()
	}
	src := []byte(rewriteObjectCalls(text))
	e, diags := hclsyntax.ParseExpression(src, "expression", hcl.Pos{Line: 1, Column: 1})
	if diags.HasErrors() {
		return typ.Fallback()
	}

	c := &compiler{ctx: ctx, src: src}
	code, err := c.compile(e, typ)
	if err != nil || code == "" {
		return typ.Fallback()
	}
	for _, inc := range c.includes {
		ctx.AddInclude(inc)
	}
	return code
}

type compiler struct {
	ctx      Context
	src      []byte
	includes []string
}

func (c *compiler) compile(expr hclsyntax.Expression, typ Type) (string, error) {
	switch e := expr.(type) {
	case *hclsyntax.LiteralValueExpr:
		return c.literal(e.Val, typ)

	case *hclsyntax.TemplateExpr:
		if typ != String {
			return "", errUnsupported
		}
		if len(e.Parts) == 0 {
			return `""`, nil
		}
		// Escaped template sequences split a literal into several parts.
		var parts []string
		var literal strings.Builder
		pending := false
		for _, part := range e.Parts {
			if lit, ok := part.(*hclsyntax.LiteralValueExpr); ok && lit.Val.Type() == cty.String && lit.Val.IsKnown() && !lit.Val.IsNull() {
				literal.WriteString(lit.Val.AsString())
				pending = true
				continue
			}
			if pending {
				parts = append(parts, `"`+c.ctx.ConvertToString(literal.String())+`"`)
				literal.Reset()
				pending = false
			}
			code, err := c.compile(part, String)
			if err != nil {
				return "", err
			}
			parts = append(parts, code)
		}
		if pending {
			parts = append(parts, `"`+c.ctx.ConvertToString(literal.String())+`"`)
		}
		return strings.Join(parts, " + "), nil

	case *hclsyntax.TemplateWrapExpr:
		return c.compile(e.Wrapped, typ)

	case *hclsyntax.ParenthesesExpr:
		inner, err := c.compile(e.Expression, typ)
		if err != nil {
			return "", err
		}
		return "(" + inner + ")", nil

	case *hclsyntax.UnaryOpExpr:
		if typ != Number {
			return "", errUnsupported
		}
		val, err := c.compile(e.Val, Number)
		if err != nil {
			return "", err
		}
		switch e.Op {
		case hclsyntax.OpNegate:
			return "-" + val, nil
		case hclsyntax.OpLogicalNot:
			return "!" + val, nil
		}
		return "", errUnsupported

	case *hclsyntax.BinaryOpExpr:
		op, ok := binaryOps[e.Op]
		if !ok || (typ == String && e.Op != hclsyntax.OpAdd) {
			return "", errUnsupported
		}
		lhs, err := c.compile(e.LHS, typ)
		if err != nil {
			return "", err
		}
		rhs, err := c.compile(e.RHS, typ)
		if err != nil {
			return "", err
		}
		return lhs + " " + op + " " + rhs, nil

	case *hclsyntax.ConditionalExpr:
		cond, err := c.compile(e.Condition, Number)
		if err != nil {
			return "", err
		}
		yes, err := c.compile(e.TrueResult, typ)
		if err != nil {
			return "", err
		}
		no, err := c.compile(e.FalseResult, typ)
		if err != nil {
			return "", err
		}
		return "(" + cond + " ? " + yes + " : " + no + ")", nil

	case *hclsyntax.FunctionCallExpr:
		return c.call(e, typ)

	case *hclsyntax.ScopeTraversalExpr:
		// A bare word is plain text in a textual context.
		if typ == String {
			return `"` + c.ctx.ConvertToString(c.raw(e)) + `"`, nil
		}
	}
	return "", errUnsupported
}

func (c *compiler) literal(val cty.Value, typ Type) (string, error) {
	if val.IsNull() || !val.IsKnown() {
		return "", errUnsupported
	}
	switch {
	case typ == Number && val.Type() == cty.Number:
		return val.AsBigFloat().Text('g', -1), nil
	case typ == String && val.Type() == cty.String:
		return `"` + c.ctx.ConvertToString(val.AsString()) + `"`, nil
	}
	return "", errUnsupported
}

func (c *compiler) call(e *hclsyntax.FunctionCallExpr, typ Type) (string, error) {
	reg := c.ctx.Registry()
	if object, method, ok := strings.Cut(e.Name, "::"); ok {
		if c.ctx.Project().IsObjectOrGroup(c.ctx.Layout(), object) {
			return c.objectCall(object, method, e.Args, typ)
		}
	}

	d, ok := reg.Lookup(typ.kind(), e.Name)
	if !ok {
		return "", fmt.Errorf("unknown %s %q", typ.kind(), e.Name)
	}
	c.includes = append(c.includes, d.IncludeFiles...)

	switch code := d.Code.(type) {
	case registry.Custom:
		return code.Generate(d.Expand(c.raws(e.Args)), c.ctx), nil
	case registry.FunctionMapping:
		args := c.arguments(d.Parameters, e.Args)
		return code.FunctionName + "(" + strings.Join(args, ", ") + ")", nil
	}
	return "", errUnsupported
}

func (c *compiler) objectCall(object, method string, args []hclsyntax.Expression, typ Type) (string, error) {
	objectType, ok := c.ctx.Project().ResolvedObjectType(c.ctx.Layout(), object)
	if !ok {
		return "", fmt.Errorf("unknown type for object %q", object)
	}
	d, ok := c.ctx.Registry().LookupForObject(objectType, typ.kind(), method)
	if !ok {
		return "", fmt.Errorf("unknown %s %q for %s", typ.kind(), method, objectType)
	}
	c.includes = append(c.includes, d.IncludeFiles...)

	switch code := d.Code.(type) {
	case registry.Custom:
		return code.Generate(d.Expand(append([]string{object}, c.raws(args)...)), c.ctx), nil
	case registry.FunctionMapping:
		params := d.Parameters
		if len(params) > 0 && params[0].Type == registry.ParamObject {
			params = params[1:]
		}
		compiled := c.arguments(params, args)
		return c.ctx.ObjectAccess(object) + "." + code.FunctionName + "(" + strings.Join(compiled, ", ") + ")", nil
	}
	return "", errUnsupported
}

// arguments converts authored arguments according to the parameter
// slots. Each argument falls back on its own.
func (c *compiler) arguments(params []registry.Parameter, args []hclsyntax.Expression) []string {
	out := make([]string, 0, len(params))
	next := 0
	for _, p := range params {
		if p.CodeOnly {
			out = append(out, CodeOnlyToken(p.Type))
			continue
		}
		var arg hclsyntax.Expression
		if next < len(args) {
			arg = args[next]
		}
		next++
		out = append(out, c.argument(p, arg))
	}
	return out
}

func (c *compiler) argument(p registry.Parameter, arg hclsyntax.Expression) string {
	switch p.Type {
	case registry.ParamExpression:
		return c.compileOrFallback(arg, Number)
	case registry.ParamString:
		return c.compileOrFallback(arg, String)
	}
	raw := ""
	if arg != nil {
		raw = c.plain(arg)
	}
	return Literal(p.Type, raw, c.ctx)
}

func (c *compiler) compileOrFallback(arg hclsyntax.Expression, typ Type) string {
	if arg == nil {
		return typ.Fallback()
	}
	code, err := c.compile(arg, typ)
	if err != nil || code == "" {
		return typ.Fallback()
	}
	return code
}

func (c *compiler) raw(e hclsyntax.Expression) string {
	return strings.TrimSpace(string(e.Range().SliceBytes(c.src)))
}

// plain returns the authored text of an argument, unquoting string literals.
func (c *compiler) plain(e hclsyntax.Expression) string {
	t, ok := e.(*hclsyntax.TemplateExpr)
	if ok && len(t.Parts) == 0 {
		return ""
	}
	if ok && t.IsStringLiteral() {
		if v, diags := t.Value(nil); !diags.HasErrors() && v.Type() == cty.String {
			return v.AsString()
		}
	}
	return c.raw(e)
}

func (c *compiler) raws(args []hclsyntax.Expression) []string {
	out := make([]string, len(args))
	for i, a := range args {
		out[i] = c.plain(a)
	}
	return out
}

// CodeOnlyToken is the fixed code passed for a code-only parameter.
func CodeOnlyToken(paramType string) string {
	if paramType == registry.ParamCurrentScene {
		return "runtimeScene"
	}
	return "null"
}

// Literal converts the plain text of a parameter that is not an expression
// into code.
func Literal(paramType, raw string, gc registry.GenerationContext) string {
	switch paramType {
	case registry.ParamObject:
		return `runtimeScene.getObjects("` + gc.ConvertToString(raw) + `")`
	case registry.ParamYesOrNo:
		switch strings.ToLower(raw) {
		case "yes", "true", "1":
			return "true"
		}
		return "false"
	}
	return `"` + gc.ConvertToString(raw) + `"`
}
