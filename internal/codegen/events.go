package codegen

import (
	"strings"

	"github.com/specialistvlad/scenepack/internal/project"
)

func (g *generator) events(b *strings.Builder, events []*project.Event, visiting map[string]bool) {
	for _, e := range events {
		if e.Disabled {
			continue
		}
		if e.Link != "" {
			g.link(b, e.Link, visiting)
			continue
		}
		g.event(b, e, visiting)
	}
}

// link inlines the events of external events or of another layout.
// Links forming a cycle are dropped.
func (g *generator) link(b *strings.Builder, target string, visiting map[string]bool) {
	var key string
	var events []*project.Event
	found := false
	for _, ext := range g.project.ExternalEvents {
		if ext.Name == target {
			key, events, found = "external:"+target, ext.Events, true
			break
		}
	}
	if !found {
		if l, ok := g.project.Layout(target); ok {
			key, events, found = "layout:"+target, l.Events, true
		}
	}
	if !found || visiting[key] {
		g.unresolved.Add("link:" + target)
		return
	}
	visiting[key] = true
	g.events(b, events, visiting)
	delete(visiting, key)
}

func (g *generator) event(b *strings.Builder, e *project.Event, visiting map[string]bool) {
	b.WriteString("\n{\n")

	var temps, codes []string
	var trueName string
	for _, c := range e.Conditions {
		code, ok := g.condition(c)
		if !ok {
			continue
		}
		trueName = g.BooleanFullName("conditionTrue")
		temps = append(temps, g.conditionTemp(len(temps)))
		codes = append(codes, code)
	}

	for _, t := range temps {
		b.WriteString(t + ".val = false;\n")
	}
	for i, code := range codes {
		b.WriteString("{\n")
		b.WriteString(trueName + " = " + temps[i] + ";\n")
		b.WriteString(code)
		b.WriteString("}")
		if i < len(codes)-1 {
			b.WriteString("if ( " + temps[i] + ".val ) {\n")
		}
	}
	if len(codes) > 0 {
		b.WriteString(strings.Repeat("}", len(codes)-1) + "\n")
		b.WriteString("if (" + temps[len(temps)-1] + ".val) {\n")
	}

	for _, a := range e.Actions {
		if code, ok := g.action(a); ok {
			b.WriteString(code)
		}
	}

	if len(e.SubEvents) > 0 {
		parent := g.scope
		g.scope = parent.child()
		g.events(b, e.SubEvents, visiting)
		g.scope = parent
	}

	if len(codes) > 0 {
		b.WriteString("}\n")
	}
	b.WriteString("}\n")
}
