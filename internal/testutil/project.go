package testutil

import (
	"github.com/specialistvlad/scenepack/internal/project"
	"github.com/specialistvlad/scenepack/internal/registry"
	"github.com/specialistvlad/scenepack/modules"
)

// Registry returns a registry holding every built-in extension.
func Registry() *registry.Registry {
	return registry.NewWithModules(modules.Core()...)
}

// NewProject returns a project named "Game" with one empty layout "Main".
func NewProject() (*project.Project, *project.Layout) {
	p := project.New("Game")
	l := p.AddLayout(project.NewLayout("Main"))
	p.FirstLayout = l.Name
	return p, l
}

// Cond builds a condition.
func Cond(typ string, params ...string) *project.Instruction {
	return &project.Instruction{Type: typ, Parameters: params}
}

// NotCond builds an inverted condition.
func NotCond(typ string, params ...string) *project.Instruction {
	return &project.Instruction{Type: typ, Parameters: params, Inverted: true}
}

// Act builds an action.
func Act(typ string, params ...string) *project.Instruction {
	return &project.Instruction{Type: typ, Parameters: params}
}

// Event builds an event from its conditions and actions.
func Event(conditions []*project.Instruction, actions []*project.Instruction, subEvents ...*project.Event) *project.Event {
	return &project.Event{Conditions: conditions, Actions: actions, SubEvents: subEvents}
}
