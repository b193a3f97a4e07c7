package registry

import (
	"fmt"
	"sort"
	"strings"
)

// Validate checks that every registered descriptor is usable by the code
// generator: code is set, operator actions mapped onto a function have a
// getter, and object-bound entries start with an object parameter.
func (r *Registry) Validate() error {
	var errs []string

	check := func(where string, kind Kind, id string, d *Descriptor, objectBound bool) {
		if !d.Implemented() {
			errs = append(errs, fmt.Sprintf("%s %s '%s': no code attached", where, kind, id))
			return
		}
		if objectBound && kind != Expression && kind != StrExpression {
			if len(d.Parameters) == 0 || d.Parameters[0].Type != ParamObject {
				errs = append(errs, fmt.Sprintf("%s %s '%s': first parameter must be an object", where, kind, id))
			}
		}
		fm, ok := d.Code.(FunctionMapping)
		if !ok || kind != Action {
			return
		}
		for _, p := range d.Parameters {
			if p.Type == ParamOperator && fm.AssociatedGetter == "" {
				errs = append(errs, fmt.Sprintf("%s %s '%s': operator parameter requires an associated getter", where, kind, id))
			}
		}
	}

	for kind, entries := range r.free {
		for id, d := range entries {
			check("free", kind, id, d, false)
		}
	}
	for objectType, t := range r.objects {
		for kind, entries := range t {
			for id, d := range entries {
				check(objectType, kind, id, d, true)
			}
		}
	}

	if len(errs) > 0 {
		sort.Strings(errs)
		return fmt.Errorf("registry validation failed:\n- %s", strings.Join(errs, "\n- "))
	}
	return nil
}
