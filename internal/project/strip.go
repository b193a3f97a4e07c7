package project

// Strip removes authoring-only data: global and per-layout object groups,
// external events and every event tree. It must only be called on a working
// copy, after the events code has been generated.
func (p *Project) Strip() {
	p.ObjectGroups = nil
	p.ExternalEvents = nil
	for _, l := range p.Layouts {
		l.ObjectGroups = nil
		l.Events = nil
	}
}
