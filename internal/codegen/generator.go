package codegen

import (
	"errors"
	"fmt"
	"strings"

	"github.com/specialistvlad/scenepack/internal/project"
	"github.com/specialistvlad/scenepack/internal/registry"
)

// SceneCode is the generated code of one layout.
type SceneCode struct {
	Layout    string
	Namespace string
	Code      string
	// Includes lists the runtime files the code needs beyond the runtime
	// prerequisites, in first-use order.
	Includes []string
	// Unresolved lists the identifiers that generated no code, prefixed
	// with their kind (condition:, action:, expression:, link:).
	Unresolved []string
}

// GenerateSceneCode generates the code of layout l of project p.
func GenerateSceneCode(reg *registry.Registry, p *project.Project, l *project.Layout) (*SceneCode, error) {
	if reg == nil {
		return nil, errors.New("registry must not be nil")
	}
	if p == nil || l == nil {
		return nil, errors.New("project and layout must not be nil")
	}
	if own, ok := p.Layout(l.Name); !ok || own != l {
		return nil, fmt.Errorf("layout %q does not belong to project %q", l.Name, p.Name)
	}

	g := newGenerator(reg, p, l)
	var body strings.Builder
	g.events(&body, l.Events, map[string]bool{"layout:" + l.Name: true})

	var out strings.Builder
	out.WriteString(g.namespace + " = {};\n")
	for _, name := range g.header {
		out.WriteString(g.namespace + "." + name + " = {val:false};\n")
	}
	out.WriteString("\n")
	out.WriteString(g.namespace + ".func = function(runtimeScene) {\n")
	out.WriteString(body.String())
	out.WriteString("return;\n}\n")

	return &SceneCode{
		Layout:     l.Name,
		Namespace:  g.namespace,
		Code:       out.String(),
		Includes:   g.includes.Files(),
		Unresolved: g.unresolved.Files(),
	}, nil
}
