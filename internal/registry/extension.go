package registry

import "sort"

type entryKey struct {
	objectType string
	kind       Kind
	id         string
}

// Extension is a named group of catalog entries. Extensions usually start
// from a base catalog declaring every entry without code, clone it, set the
// code of what they implement and strip the rest.
type Extension struct {
	Name string

	entries map[entryKey]*Descriptor
	order   []entryKey
}

// NewExtension creates an empty extension.
func NewExtension(name string) *Extension {
	return &Extension{Name: name, entries: make(map[entryKey]*Descriptor)}
}

// Declare adds a free entry and returns it for further configuration.
func (e *Extension) Declare(kind Kind, id string, params ...Parameter) *Descriptor {
	return e.put(entryKey{kind: kind, id: id}, NewDescriptor(params...))
}

// DeclareForObject adds an entry bound to an object type.
func (e *Extension) DeclareForObject(objectType string, kind Kind, id string, params ...Parameter) *Descriptor {
	return e.put(entryKey{objectType: objectType, kind: kind, id: id}, NewDescriptor(params...))
}

func (e *Extension) put(k entryKey, d *Descriptor) *Descriptor {
	if _, exists := e.entries[k]; !exists {
		e.order = append(e.order, k)
	}
	e.entries[k] = d
	return d
}

// Entry returns a free entry, or nil when it is not declared.
func (e *Extension) Entry(kind Kind, id string) *Descriptor {
	return e.entries[entryKey{kind: kind, id: id}]
}

// EntryForObject returns an object-bound entry, or nil.
func (e *Extension) EntryForObject(objectType string, kind Kind, id string) *Descriptor {
	return e.entries[entryKey{objectType: objectType, kind: kind, id: id}]
}

// Clone copies every entry into a new extension with the given name.
func (e *Extension) Clone(name string) *Extension {
	out := NewExtension(name)
	for _, k := range e.order {
		out.put(k, e.entries[k].Clone())
	}
	return out
}

// StripUnimplemented drops entries whose code was never set and returns
// their identifiers, sorted.
func (e *Extension) StripUnimplemented() []string {
	var removed []string
	kept := e.order[:0]
	for _, k := range e.order {
		if e.entries[k].Implemented() {
			kept = append(kept, k)
			continue
		}
		delete(e.entries, k)
		removed = append(removed, k.id)
	}
	e.order = kept
	sort.Strings(removed)
	return removed
}

// Len returns the number of entries.
func (e *Extension) Len() int {
	return len(e.order)
}
