package codegen

import (
	"strconv"

	"github.com/specialistvlad/scenepack/internal/expr"
	"github.com/specialistvlad/scenepack/internal/includes"
	"github.com/specialistvlad/scenepack/internal/project"
	"github.com/specialistvlad/scenepack/internal/registry"
	"github.com/specialistvlad/scenepack/internal/varaccess"
)

// scope mirrors one nesting level of the event tree.
type scope struct {
	depth int
}

func (s *scope) child() *scope {
	return &scope{depth: s.depth + 1}
}

// generator is the generation context of one layout. It implements
// expr.Context so that custom generators and the expression compiler can
// call back into it.
type generator struct {
	reg       *registry.Registry
	project   *project.Project
	layout    *project.Layout
	namespace string

	scope *scope
	// header lists every temporary in declaration order, sceneDeclared
	// dedupes it.
	header        []string
	sceneDeclared map[string]struct{}

	includes   *includes.List
	unresolved *includes.List

	// object currently iterated by an object instruction and the code
	// addressing its instance.
	object       string
	objectAccess string
}

var _ expr.Context = (*generator)(nil)

func newGenerator(reg *registry.Registry, p *project.Project, l *project.Layout) *generator {
	return &generator{
		reg:           reg,
		project:       p,
		layout:        l,
		namespace:     Namespace(l.Name),
		scope:         &scope{},
		sceneDeclared: make(map[string]struct{}),
		includes:      includes.New(),
		unresolved:    includes.New(),
	}
}

func (g *generator) Project() *project.Project    { return g.project }
func (g *generator) Layout() *project.Layout      { return g.layout }
func (g *generator) Registry() *registry.Registry { return g.reg }
func (g *generator) AddInclude(file string)       { g.includes.Add(file) }

func (g *generator) ConvertToString(s string) string {
	return varaccess.Escape(s)
}

func (g *generator) CompileNumber(text string) string {
	g.checkExpression(text)
	return expr.Compile(text, expr.Number, g)
}

func (g *generator) CompileString(text string) string {
	g.checkExpression(text)
	return expr.Compile(text, expr.String, g)
}

// BooleanFullName declares prefix_<depth> in the current scope and returns
// its full name.
func (g *generator) BooleanFullName(prefix string) string {
	name := prefix + "_" + strconv.Itoa(g.scope.depth)
	g.declare(name)
	return g.namespace + "." + name
}

func (g *generator) declare(name string) {
	if _, ok := g.sceneDeclared[name]; ok {
		return
	}
	g.sceneDeclared[name] = struct{}{}
	g.header = append(g.header, name)
}

// conditionTemp returns the full name of the temporary of the i-th
// condition of the current scope.
func (g *generator) conditionTemp(i int) string {
	return g.BooleanFullName("condition" + strconv.Itoa(i) + "IsTrue")
}

// ObjectAccess addresses the instance being iterated when the expression
// belongs to an instruction on the same object, the first instance
// otherwise.
func (g *generator) ObjectAccess(object string) string {
	if object == g.object && g.objectAccess != "" {
		return g.objectAccess
	}
	return `runtimeScene.getObjects("` + varaccess.Escape(object) + `")[0]`
}

// checkExpression records functions an expression calls that nothing in
// the registry can resolve.
func (g *generator) checkExpression(text string) {
	for _, name := range expr.CalledFunctions(text) {
		if _, ok := g.reg.Lookup(registry.Expression, name); ok {
			continue
		}
		if _, ok := g.reg.Lookup(registry.StrExpression, name); ok {
			continue
		}
		if g.resolvesAsObjectExpression(name) {
			continue
		}
		g.unresolved.Add("expression:" + name)
	}
}

func (g *generator) resolvesAsObjectExpression(name string) bool {
	for i := 0; i+1 < len(name); i++ {
		if name[i] != ':' || name[i+1] != ':' {
			continue
		}
		t, ok := g.project.ResolvedObjectType(g.layout, name[:i])
		if !ok {
			return false
		}
		method := name[i+2:]
		if _, ok := g.reg.LookupForObject(t, registry.Expression, method); ok {
			return true
		}
		_, ok = g.reg.LookupForObject(t, registry.StrExpression, method)
		return ok
	}
	return false
}
