package registry

import "github.com/specialistvlad/scenepack/internal/project"

// Kind separates the identifier namespaces of the catalog.
type Kind int

const (
	Condition Kind = iota
	Action
	Expression
	StrExpression
)

func (k Kind) String() string {
	switch k {
	case Condition:
		return "condition"
	case Action:
		return "action"
	case Expression:
		return "expression"
	case StrExpression:
		return "str_expression"
	}
	return "unknown"
}

// Parameter types understood by the code generator.
const (
	ParamObject             = "object"
	ParamExpression         = "expression"
	ParamString             = "string"
	ParamOperator           = "operator"
	ParamRelationalOperator = "relationalOperator"
	ParamSceneVariable      = "scenevar"
	ParamGlobalVariable     = "globalvar"
	ParamYesOrNo            = "yesorno"
	ParamCurrentScene       = "currentScene"
	ParamLayout             = "layout"
	ParamMouseButton        = "mouse"
	ParamKey                = "key"
)

// Parameter describes one slot of an instruction or expression.
// CodeOnly slots are never authored: the generator fills them itself.
type Parameter struct {
	Type     string
	CodeOnly bool
	// Extra is the object type for object parameters.
	Extra string
}

// Code is the implementation attached to a descriptor: either a
// FunctionMapping or a Custom generator.
type Code interface {
	isCode()
}

// FunctionMapping maps an instruction onto a runtime function. For actions
// using an operator parameter, AssociatedGetter names the function reading
// the current value so that "+ 5" becomes setX(getX() + 5).
type FunctionMapping struct {
	FunctionName     string
	AssociatedGetter string
}

// Custom generates the whole code of an instruction or expression.
// Params holds the authored text at every position, with code-only slots
// left empty.
type Custom struct {
	Generate func(params []string, gc GenerationContext) string
}

func (FunctionMapping) isCode() {}
func (Custom) isCode()          {}

// GenerationContext is what custom generators can see of the generator
// that invokes them.
type GenerationContext interface {
	Project() *project.Project
	Layout() *project.Layout
	// CompileNumber and CompileString compile an authored expression; they
	// never fail and fall back to 0 and "".
	CompileNumber(text string) string
	CompileString(text string) string
	// BooleanFullName returns the full name of a boolean temporary of the
	// current scope, e.g. gdjs.SceneCode.conditionTrue_0.
	BooleanFullName(prefix string) string
	ConvertToString(s string) string
	AddInclude(file string)
}

// Descriptor is the metadata of one catalog entry. A nil Code means the
// entry is declared but not implemented.
type Descriptor struct {
	Parameters   []Parameter
	IncludeFiles []string
	Code         Code
}

// NewDescriptor declares an entry with the given parameters and no code.
func NewDescriptor(params ...Parameter) *Descriptor {
	return &Descriptor{Parameters: append([]Parameter(nil), params...)}
}

// SetFunctionName maps the entry onto a runtime function.
func (d *Descriptor) SetFunctionName(name string) *Descriptor {
	fm, _ := d.Code.(FunctionMapping)
	fm.FunctionName = name
	d.Code = fm
	return d
}

// SetAssociatedGetter sets the getter used to expand operator actions.
func (d *Descriptor) SetAssociatedGetter(name string) *Descriptor {
	fm, _ := d.Code.(FunctionMapping)
	fm.AssociatedGetter = name
	d.Code = fm
	return d
}

// SetCustom replaces the code with a custom generator.
func (d *Descriptor) SetCustom(gen func(params []string, gc GenerationContext) string) *Descriptor {
	d.Code = Custom{Generate: gen}
	return d
}

// AddIncludeFile records a runtime file the generated code depends on.
func (d *Descriptor) AddIncludeFile(file string) *Descriptor {
	for _, f := range d.IncludeFiles {
		if f == file {
			return d
		}
	}
	d.IncludeFiles = append(d.IncludeFiles, file)
	return d
}

// AddParameter appends an authored parameter.
func (d *Descriptor) AddParameter(typ, extra string) *Descriptor {
	d.Parameters = append(d.Parameters, Parameter{Type: typ, Extra: extra})
	return d
}

// AddCodeOnlyParameter appends a parameter filled by the generator.
func (d *Descriptor) AddCodeOnlyParameter(typ string) *Descriptor {
	d.Parameters = append(d.Parameters, Parameter{Type: typ, CodeOnly: true})
	return d
}

// Implemented reports whether the entry carries usable code.
func (d *Descriptor) Implemented() bool {
	switch c := d.Code.(type) {
	case FunctionMapping:
		return c.FunctionName != ""
	case Custom:
		return c.Generate != nil
	}
	return false
}

// Clone returns a copy that can be modified without touching d.
func (d *Descriptor) Clone() *Descriptor {
	return &Descriptor{
		Parameters:   append([]Parameter(nil), d.Parameters...),
		IncludeFiles: append([]string(nil), d.IncludeFiles...),
		Code:         d.Code,
	}
}

// AuthoredCount returns the number of parameters an author supplies.
func (d *Descriptor) AuthoredCount() int {
	n := 0
	for _, p := range d.Parameters {
		if !p.CodeOnly {
			n++
		}
	}
	return n
}

// Expand spreads authored parameters over every slot, leaving code-only
// positions empty. Missing authored values are empty too.
func (d *Descriptor) Expand(authored []string) []string {
	out := make([]string, len(d.Parameters))
	next := 0
	for i, p := range d.Parameters {
		if p.CodeOnly {
			continue
		}
		if next < len(authored) {
			out[i] = authored[next]
		}
		next++
	}
	return out
}
