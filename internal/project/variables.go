package project

import "fmt"

// Variable is a named value holder. Children make it a structure.
type Variable struct {
	Name     string
	Value    string
	Children []*Variable
}

// Variables is an ordered container of uniquely named variables.
//
// Positions returned by Position are only meaningful while the set of
// declared variables is unchanged.
type Variables struct {
	vars []*Variable
}

// NewVariables creates an empty container.
func NewVariables() *Variables {
	return &Variables{}
}

// Add appends a variable. Names must be unique inside a container.
func (v *Variables) Add(variable *Variable) error {
	if variable == nil {
		return fmt.Errorf("variable must not be nil")
	}
	if v.Has(variable.Name) {
		return fmt.Errorf("variable %q already declared", variable.Name)
	}
	v.vars = append(v.vars, variable)
	return nil
}

// Set declares or updates a plain variable.
func (v *Variables) Set(name, value string) {
	if existing, ok := v.Get(name); ok {
		existing.Value = value
		return
	}
	v.vars = append(v.vars, &Variable{Name: name, Value: value})
}

// Remove deletes the named variable. It reports whether it existed.
func (v *Variables) Remove(name string) bool {
	for i, variable := range v.vars {
		if variable.Name == name {
			v.vars = append(v.vars[:i], v.vars[i+1:]...)
			return true
		}
	}
	return false
}

// Get returns the named variable.
func (v *Variables) Get(name string) (*Variable, bool) {
	if i, ok := v.Position(name); ok {
		return v.vars[i], true
	}
	return nil, false
}

// Has reports whether the named variable is declared.
func (v *Variables) Has(name string) bool {
	_, ok := v.Position(name)
	return ok
}

// Position returns the static index of the named variable.
func (v *Variables) Position(name string) (int, bool) {
	if v == nil {
		return 0, false
	}
	for i, variable := range v.vars {
		if variable.Name == name {
			return i, true
		}
	}
	return 0, false
}

// At returns the variable stored at index i.
func (v *Variables) At(i int) *Variable {
	return v.vars[i]
}

// Count returns the number of declared variables.
func (v *Variables) Count() int {
	if v == nil {
		return 0
	}
	return len(v.vars)
}

// All returns the variables in declaration order.
func (v *Variables) All() []*Variable {
	if v == nil {
		return nil
	}
	return append([]*Variable(nil), v.vars...)
}

// Clone returns a deep copy of the container.
func (v *Variables) Clone() *Variables {
	out := NewVariables()
	if v == nil {
		return out
	}
	for _, variable := range v.vars {
		out.vars = append(out.vars, variable.Clone())
	}
	return out
}

// Clone returns a deep copy of the variable and its children.
func (v *Variable) Clone() *Variable {
	out := &Variable{Name: v.Name, Value: v.Value}
	for _, child := range v.Children {
		out.Children = append(out.Children, child.Clone())
	}
	return out
}
