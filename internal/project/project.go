package project

// Project is the root aggregate of an authored game.
type Project struct {
	Name         string
	Author       string
	FirstLayout  string
	WindowWidth  int
	WindowHeight int

	Layouts        []*Layout
	Variables      *Variables
	Objects        []Object
	ObjectGroups   []ObjectGroup
	Resources      []*Resource
	ExternalEvents []*ExternalEvents
}

// Layout is a scene: one event tree plus its own variable scope.
type Layout struct {
	Name         string
	Events       []*Event
	Variables    *Variables
	Objects      []Object
	ObjectGroups []ObjectGroup
}

// Event is a node of an event tree. Actions and sub-events only run when
// every condition of the event is true. A link event has no instructions of
// its own and inserts the events of the named external events or layout.
type Event struct {
	Disabled   bool
	Link       string
	Conditions []*Instruction
	Actions    []*Instruction
	SubEvents  []*Event
}

// Instruction references an operation by its stable identifier.
type Instruction struct {
	Type       string
	Inverted   bool
	Parameters []string
}

// Object is an object declared in a layout or globally in the project.
type Object struct {
	Name string
	Type string
}

// ObjectGroup lets events address several objects under one name.
type ObjectGroup struct {
	Name    string
	Objects []string
}

// Resource is a file used by the game (image, audio, font...).
type Resource struct {
	Name string
	Kind string
	File string
}

// ExternalEvents are event sheets that can be included into layouts.
type ExternalEvents struct {
	Name             string
	AssociatedLayout string
	Events           []*Event
}

// New returns an empty project with initialized variable containers.
func New(name string) *Project {
	return &Project{
		Name:         name,
		WindowWidth:  800,
		WindowHeight: 600,
		Variables:    NewVariables(),
	}
}

// NewLayout returns an empty layout with an initialized variable container.
func NewLayout(name string) *Layout {
	return &Layout{Name: name, Variables: NewVariables()}
}

// AddLayout appends a layout to the project and returns it.
func (p *Project) AddLayout(l *Layout) *Layout {
	if l.Variables == nil {
		l.Variables = NewVariables()
	}
	p.Layouts = append(p.Layouts, l)
	return l
}

// Layout returns the layout with the given name.
func (p *Project) Layout(name string) (*Layout, bool) {
	for _, l := range p.Layouts {
		if l.Name == name {
			return l, true
		}
	}
	return nil, false
}

// HasLayout reports whether a layout with the given name exists.
func (p *Project) HasLayout(name string) bool {
	_, ok := p.Layout(name)
	return ok
}

// ObjectType returns the type of the named object, looking at the layout
// first and then at the project's global objects.
func (p *Project) ObjectType(l *Layout, name string) (string, bool) {
	if l != nil {
		for _, o := range l.Objects {
			if o.Name == name {
				return o.Type, true
			}
		}
	}
	for _, o := range p.Objects {
		if o.Name == name {
			return o.Type, true
		}
	}
	return "", false
}

// ResolveObjects expands name into the list of object names it designates.
// A group name expands to its members (layout groups shadow global ones),
// anything else designates itself.
func (p *Project) ResolveObjects(l *Layout, name string) []string {
	if l != nil {
		for _, g := range l.ObjectGroups {
			if g.Name == name {
				return append([]string(nil), g.Objects...)
			}
		}
	}
	for _, g := range p.ObjectGroups {
		if g.Name == name {
			return append([]string(nil), g.Objects...)
		}
	}
	return []string{name}
}

// IsObjectOrGroup reports whether name is a known object or object group.
func (p *Project) IsObjectOrGroup(l *Layout, name string) bool {
	if _, ok := p.ObjectType(l, name); ok {
		return true
	}
	if l != nil {
		for _, g := range l.ObjectGroups {
			if g.Name == name {
				return true
			}
		}
	}
	for _, g := range p.ObjectGroups {
		if g.Name == name {
			return true
		}
	}
	return false
}

// Resource returns the resource with the given name.
func (p *Project) Resource(name string) (*Resource, bool) {
	for _, r := range p.Resources {
		if r.Name == name {
			return r, true
		}
	}
	return nil, false
}

// ResolvedObjectType returns the type of an object, or for a group the type
// of its first member with a known type.
func (p *Project) ResolvedObjectType(l *Layout, name string) (string, bool) {
	if t, ok := p.ObjectType(l, name); ok {
		return t, true
	}
	for _, member := range p.ResolveObjects(l, name) {
		if member == name {
			continue
		}
		if t, ok := p.ObjectType(l, member); ok {
			return t, true
		}
	}
	return "", false
}
