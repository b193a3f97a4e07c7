package project

import (
	"encoding/xml"
	"fmt"
)

// Document renders the project in its structured document form: an XML
// tree whose shape is what the runtime expects once converted to JSON.
// Elements carry attributes, text, or both, and lists are written as
// repeated siblings.
func (p *Project) Document() ([]byte, error) {
	out, err := xml.Marshal(newXMLProject(p))
	if err != nil {
		return nil, fmt.Errorf("failed to render project %q as a document: %w", p.Name, err)
	}
	return out, nil
}

type xmlProject struct {
	XMLName        xml.Name           `xml:"project"`
	Properties     xmlProperties      `xml:"properties"`
	Resources      *xmlResourceList   `xml:"resources,omitempty"`
	Variables      *xmlVariableList   `xml:"variables,omitempty"`
	Objects        *xmlObjectList     `xml:"objects,omitempty"`
	ObjectGroups   *xmlGroupList      `xml:"objectsGroups,omitempty"`
	Layouts        *xmlLayoutList     `xml:"layouts,omitempty"`
	ExternalEvents *xmlExternalEvents `xml:"externalEvents,omitempty"`
}

type xmlProperties struct {
	Name         string `xml:"name"`
	Author       string `xml:"author,omitempty"`
	FirstLayout  string `xml:"firstLayout"`
	WindowWidth  int    `xml:"windowWidth"`
	WindowHeight int    `xml:"windowHeight"`
}

// List wrappers are pointers so that an empty list leaves no element behind.

type xmlResourceList struct {
	Items []xmlResource `xml:"resource"`
}

type xmlVariableList struct {
	Items []xmlVariable `xml:"variable"`
}

type xmlObjectList struct {
	Items []xmlObject `xml:"object"`
}

type xmlGroupList struct {
	Items []xmlGroup `xml:"group"`
}

type xmlLayoutList struct {
	Items []xmlLayout `xml:"layout"`
}

type xmlExternalEvents struct {
	Items []xmlEventSheet `xml:"externalEvents"`
}

type xmlEventList struct {
	Items []xmlEvent `xml:"event"`
}

type xmlInstructionList struct {
	Items []xmlInstruction `xml:"instruction"`
}

type xmlResource struct {
	Name string `xml:"name,attr"`
	Kind string `xml:"kind,attr"`
	File string `xml:"file,attr"`
}

// xmlVariable holds its value as text next to its name attribute, and its
// children as nested variables.
type xmlVariable struct {
	Name     string        `xml:"name,attr"`
	Value    string        `xml:",chardata"`
	Children []xmlVariable `xml:"variable,omitempty"`
}

type xmlObject struct {
	Name string `xml:"name,attr"`
	Type string `xml:"type,attr"`
}

type xmlGroup struct {
	Name    string   `xml:"name,attr"`
	Objects []string `xml:"object"`
}

type xmlLayout struct {
	Name         string           `xml:"name,attr"`
	Variables    *xmlVariableList `xml:"variables,omitempty"`
	Objects      *xmlObjectList   `xml:"objects,omitempty"`
	ObjectGroups *xmlGroupList    `xml:"objectsGroups,omitempty"`
	Events       *xmlEventList    `xml:"events,omitempty"`
}

type xmlEventSheet struct {
	Name             string        `xml:"name,attr"`
	AssociatedLayout string        `xml:"associatedLayout,attr,omitempty"`
	Events           *xmlEventList `xml:"events,omitempty"`
}

type xmlEvent struct {
	Disabled   bool                `xml:"disabled,attr,omitempty"`
	Link       string              `xml:"link,attr,omitempty"`
	Conditions *xmlInstructionList `xml:"conditions,omitempty"`
	Actions    *xmlInstructionList `xml:"actions,omitempty"`
	SubEvents  *xmlEventList       `xml:"events,omitempty"`
}

type xmlInstruction struct {
	Type       string   `xml:"type,attr"`
	Inverted   bool     `xml:"inverted,attr,omitempty"`
	Parameters []string `xml:"parameter"`
}

func newXMLProject(p *Project) xmlProject {
	doc := xmlProject{
		Properties: xmlProperties{
			Name:         p.Name,
			Author:       p.Author,
			FirstLayout:  p.FirstLayout,
			WindowWidth:  p.WindowWidth,
			WindowHeight: p.WindowHeight,
		},
		Variables:    xmlVariables(p.Variables),
		Objects:      xmlObjects(p.Objects),
		ObjectGroups: xmlGroups(p.ObjectGroups),
	}
	if len(p.Resources) > 0 {
		doc.Resources = &xmlResourceList{}
		for _, r := range p.Resources {
			doc.Resources.Items = append(doc.Resources.Items, xmlResource{Name: r.Name, Kind: r.Kind, File: r.File})
		}
	}
	if len(p.Layouts) > 0 {
		doc.Layouts = &xmlLayoutList{}
		for _, l := range p.Layouts {
			doc.Layouts.Items = append(doc.Layouts.Items, xmlLayout{
				Name:         l.Name,
				Variables:    xmlVariables(l.Variables),
				Objects:      xmlObjects(l.Objects),
				ObjectGroups: xmlGroups(l.ObjectGroups),
				Events:       xmlEvents(l.Events),
			})
		}
	}
	if len(p.ExternalEvents) > 0 {
		doc.ExternalEvents = &xmlExternalEvents{}
		for _, e := range p.ExternalEvents {
			doc.ExternalEvents.Items = append(doc.ExternalEvents.Items, xmlEventSheet{
				Name:             e.Name,
				AssociatedLayout: e.AssociatedLayout,
				Events:           xmlEvents(e.Events),
			})
		}
	}
	return doc
}

func xmlVariables(vars *Variables) *xmlVariableList {
	if vars == nil || vars.Count() == 0 {
		return nil
	}
	out := &xmlVariableList{}
	for _, v := range vars.All() {
		out.Items = append(out.Items, xmlVariableOf(v))
	}
	return out
}

func xmlVariableOf(v *Variable) xmlVariable {
	out := xmlVariable{Name: v.Name, Value: v.Value}
	for _, c := range v.Children {
		out.Children = append(out.Children, xmlVariableOf(c))
	}
	return out
}

func xmlObjects(objects []Object) *xmlObjectList {
	if len(objects) == 0 {
		return nil
	}
	out := &xmlObjectList{}
	for _, o := range objects {
		out.Items = append(out.Items, xmlObject{Name: o.Name, Type: o.Type})
	}
	return out
}

func xmlGroups(groups []ObjectGroup) *xmlGroupList {
	if len(groups) == 0 {
		return nil
	}
	out := &xmlGroupList{}
	for _, g := range groups {
		out.Items = append(out.Items, xmlGroup{Name: g.Name, Objects: g.Objects})
	}
	return out
}

func xmlEvents(events []*Event) *xmlEventList {
	if len(events) == 0 {
		return nil
	}
	out := &xmlEventList{}
	for _, e := range events {
		out.Items = append(out.Items, xmlEvent{
			Disabled:   e.Disabled,
			Link:       e.Link,
			Conditions: xmlInstructions(e.Conditions),
			Actions:    xmlInstructions(e.Actions),
			SubEvents:  xmlEvents(e.SubEvents),
		})
	}
	return out
}

func xmlInstructions(instrs []*Instruction) *xmlInstructionList {
	if len(instrs) == 0 {
		return nil
	}
	out := &xmlInstructionList{}
	for _, in := range instrs {
		out.Items = append(out.Items, xmlInstruction{Type: in.Type, Inverted: in.Inverted, Parameters: in.Parameters})
	}
	return out
}
