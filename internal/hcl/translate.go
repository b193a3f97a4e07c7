package hcl

import (
	"fmt"
	"time"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/scenepack/internal/project"
	"github.com/specialistvlad/scenepack/internal/schema"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

// translateProject converts the HCL-specific project schema into the
// agnostic model.
func translateProject(f *schema.ProjectFile) (*project.Project, error) {
	p := project.New(f.Name)
	p.Author = f.Author
	if f.Window != nil {
		if f.Window.Width > 0 {
			p.WindowWidth = f.Window.Width
		}
		if f.Window.Height > 0 {
			p.WindowHeight = f.Window.Height
		}
	}

	vars, err := translateVariables(f.Variables)
	if err != nil {
		return nil, fmt.Errorf("global variables: %w", err)
	}
	p.Variables = vars
	p.Objects = translateObjects(f.Objects)
	p.ObjectGroups = translateGroups(f.Groups)

	for _, r := range f.Resources {
		if _, ok := p.Resource(r.Name); ok {
			return nil, fmt.Errorf("resource %q declared twice", r.Name)
		}
		p.Resources = append(p.Resources, &project.Resource{Name: r.Name, Kind: r.Kind, File: r.File})
	}

	for _, sl := range f.Layouts {
		if p.HasLayout(sl.Name) {
			return nil, fmt.Errorf("layout %q declared twice", sl.Name)
		}
		l := project.NewLayout(sl.Name)
		if l.Variables, err = translateVariables(sl.Variables); err != nil {
			return nil, fmt.Errorf("layout %q: %w", sl.Name, err)
		}
		l.Objects = translateObjects(sl.Objects)
		l.ObjectGroups = translateGroups(sl.Groups)
		l.Events = translateEvents(sl.Events)
		p.AddLayout(l)
	}

	for _, se := range f.ExternalEvents {
		p.ExternalEvents = append(p.ExternalEvents, &project.ExternalEvents{
			Name:             se.Name,
			AssociatedLayout: se.Layout,
			Events:           translateEvents(se.Events),
		})
	}

	switch {
	case f.FirstLayout != "":
		if !p.HasLayout(f.FirstLayout) {
			return nil, fmt.Errorf("first layout %q does not exist", f.FirstLayout)
		}
		p.FirstLayout = f.FirstLayout
	case len(p.Layouts) > 0:
		p.FirstLayout = p.Layouts[0].Name
	}
	return p, nil
}

func translateVariables(vars []*schema.Variable) (*project.Variables, error) {
	out := project.NewVariables()
	for _, sv := range vars {
		v, err := translateVariable(sv)
		if err != nil {
			return nil, err
		}
		if err := out.Add(v); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func translateVariable(sv *schema.Variable) (*project.Variable, error) {
	value, err := valueString(sv.Value)
	if err != nil {
		return nil, fmt.Errorf("variable %q: %w", sv.Name, err)
	}
	v := &project.Variable{Name: sv.Name, Value: value}
	seen := make(map[string]struct{})
	for _, c := range sv.Children {
		if _, dup := seen[c.Name]; dup {
			return nil, fmt.Errorf("variable %q: child %q declared twice", sv.Name, c.Name)
		}
		seen[c.Name] = struct{}{}
		child, err := translateVariable(c)
		if err != nil {
			return nil, err
		}
		v.Children = append(v.Children, child)
	}
	return v, nil
}

// valueString evaluates a variable value and converts it into its textual
// form. Values are constants: no variables or functions are available.
func valueString(expr hcl.Expression) (string, error) {
	if expr == nil {
		return "", nil
	}
	v, diags := expr.Value(nil)
	if diags.HasErrors() {
		return "", diags
	}
	if v.IsNull() {
		return "", nil
	}
	s, err := convert.Convert(v, cty.String)
	if err != nil {
		return "", fmt.Errorf("value must be a number, a string or a bool: %w", err)
	}
	if !s.IsKnown() || s.IsNull() {
		return "", nil
	}
	return s.AsString(), nil
}

func translateObjects(objects []*schema.Object) []project.Object {
	var out []project.Object
	for _, o := range objects {
		out = append(out, project.Object{Name: o.Name, Type: o.Type})
	}
	return out
}

func translateGroups(groups []*schema.Group) []project.ObjectGroup {
	var out []project.ObjectGroup
	for _, g := range groups {
		out = append(out, project.ObjectGroup{Name: g.Name, Objects: append([]string(nil), g.Objects...)})
	}
	return out
}

func translateEvents(events []*schema.Event) []*project.Event {
	var out []*project.Event
	for _, e := range events {
		out = append(out, &project.Event{
			Disabled:   e.Disabled,
			Link:       e.Link,
			Conditions: translateInstructions(e.Conditions),
			Actions:    translateInstructions(e.Actions),
			SubEvents:  translateEvents(e.SubEvents),
		})
	}
	return out
}

func translateInstructions(instrs []*schema.Instruction) []*project.Instruction {
	var out []*project.Instruction
	for _, in := range instrs {
		out = append(out, &project.Instruction{
			Type:       in.Type,
			Inverted:   in.Inverted,
			Parameters: append([]string(nil), in.Params...),
		})
	}
	return out
}

// ParseDuration parses a timeout such as "90s" or "5m".
func ParseDuration(s string) (time.Duration, error) {
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, err
	}
	if d <= 0 {
		return 0, fmt.Errorf("duration %q must be positive", s)
	}
	return d, nil
}
