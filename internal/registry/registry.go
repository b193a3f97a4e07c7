package registry

import (
	"fmt"
	"sort"
)

// Module is the interface built-in extensions implement to be registered.
type Module interface {
	Register(r *Registry)
}

type table map[Kind]map[string]*Descriptor

func (t table) get(kind Kind, id string) (*Descriptor, bool) {
	d, ok := t[kind][id]
	return d, ok
}

func (t table) set(kind Kind, id string, d *Descriptor) {
	if t[kind] == nil {
		t[kind] = make(map[string]*Descriptor)
	}
	t[kind][id] = d
}

// Registry maps instruction identifiers to their descriptors, for free
// entries and for entries bound to an object type.
type Registry struct {
	free       table
	objects    map[string]table
	extensions []string
}

// New creates an empty Registry.
func New() *Registry {
	return &Registry{
		free:    make(table),
		objects: make(map[string]table),
	}
}

// NewWithModules creates a registry populated by the given modules.
func NewWithModules(modules ...Module) *Registry {
	r := New()
	for _, m := range modules {
		m.Register(r)
	}
	return r
}

// Register stores a free entry. An existing entry is overwritten.
func (r *Registry) Register(kind Kind, id string, d *Descriptor) {
	if d == nil {
		panic(fmt.Sprintf("descriptor for %s %q must not be nil", kind, id))
	}
	r.free.set(kind, id, d)
}

// RegisterForObject stores an entry bound to objectType.
func (r *Registry) RegisterForObject(objectType string, kind Kind, id string, d *Descriptor) {
	if d == nil {
		panic(fmt.Sprintf("descriptor for %s %s %q must not be nil", objectType, kind, id))
	}
	t, ok := r.objects[objectType]
	if !ok {
		t = make(table)
		r.objects[objectType] = t
	}
	t.set(kind, id, d)
}

// Lookup returns the free entry registered under id.
func (r *Registry) Lookup(kind Kind, id string) (*Descriptor, bool) {
	return r.free.get(kind, id)
}

// LookupForObject returns the entry registered for objectType under id.
func (r *Registry) LookupForObject(objectType string, kind Kind, id string) (*Descriptor, bool) {
	t, ok := r.objects[objectType]
	if !ok {
		return nil, false
	}
	return t.get(kind, id)
}

// AddExtension merges every entry of e into the registry.
func (r *Registry) AddExtension(e *Extension) {
	for _, k := range e.order {
		d := e.entries[k]
		if k.objectType == "" {
			r.Register(k.kind, k.id, d)
		} else {
			r.RegisterForObject(k.objectType, k.kind, k.id, d)
		}
	}
	r.extensions = append(r.extensions, e.Name)
}

// Extensions returns the names of the merged extensions in merge order.
func (r *Registry) Extensions() []string {
	return append([]string(nil), r.extensions...)
}

// Identifiers lists the free identifiers of a kind, sorted.
func (r *Registry) Identifiers(kind Kind) []string {
	ids := make([]string, 0, len(r.free[kind]))
	for id := range r.free[kind] {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
