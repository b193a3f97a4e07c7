package project

// Clone returns a deep copy of the project. The copy shares no mutable state
// with the receiver, so stripping or renaming resources on it leaves the
// authored project untouched.
func (p *Project) Clone() *Project {
	out := &Project{
		Name:         p.Name,
		Author:       p.Author,
		FirstLayout:  p.FirstLayout,
		WindowWidth:  p.WindowWidth,
		WindowHeight: p.WindowHeight,
		Variables:    p.Variables.Clone(),
		Objects:      append([]Object(nil), p.Objects...),
		ObjectGroups: cloneGroups(p.ObjectGroups),
	}
	for _, l := range p.Layouts {
		out.Layouts = append(out.Layouts, l.Clone())
	}
	for _, r := range p.Resources {
		res := *r
		out.Resources = append(out.Resources, &res)
	}
	for _, e := range p.ExternalEvents {
		out.ExternalEvents = append(out.ExternalEvents, &ExternalEvents{
			Name:             e.Name,
			AssociatedLayout: e.AssociatedLayout,
			Events:           cloneEvents(e.Events),
		})
	}
	return out
}

// Clone returns a deep copy of the layout.
func (l *Layout) Clone() *Layout {
	return &Layout{
		Name:         l.Name,
		Events:       cloneEvents(l.Events),
		Variables:    l.Variables.Clone(),
		Objects:      append([]Object(nil), l.Objects...),
		ObjectGroups: cloneGroups(l.ObjectGroups),
	}
}

func cloneGroups(groups []ObjectGroup) []ObjectGroup {
	if groups == nil {
		return nil
	}
	out := make([]ObjectGroup, len(groups))
	for i, g := range groups {
		out[i] = ObjectGroup{Name: g.Name, Objects: append([]string(nil), g.Objects...)}
	}
	return out
}

func cloneEvents(events []*Event) []*Event {
	if events == nil {
		return nil
	}
	out := make([]*Event, len(events))
	for i, e := range events {
		out[i] = &Event{
			Disabled:   e.Disabled,
			Link:       e.Link,
			Conditions: cloneInstructions(e.Conditions),
			Actions:    cloneInstructions(e.Actions),
			SubEvents:  cloneEvents(e.SubEvents),
		}
	}
	return out
}

func cloneInstructions(instrs []*Instruction) []*Instruction {
	if instrs == nil {
		return nil
	}
	out := make([]*Instruction, len(instrs))
	for i, in := range instrs {
		out[i] = &Instruction{
			Type:       in.Type,
			Inverted:   in.Inverted,
			Parameters: append([]string(nil), in.Parameters...),
		}
	}
	return out
}
