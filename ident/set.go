package ident

import "github.com/dszilagyiques/CloneCoCo/coco"

// Set is a collection of module identifiers used to exclude values from
// generation. The zero value is not usable; construct with NewSet.
type Set map[coco.ModuleID]struct{}

// NewSet builds a Set from the given identifiers.
func NewSet(ids ...coco.ModuleID) Set {
	s := make(Set, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Add inserts an identifier into the set.
func (s Set) Add(id coco.ModuleID) {
	s[id] = struct{}{}
}

// Has reports whether the identifier is in the set.
func (s Set) Has(id coco.ModuleID) bool {
	_, ok := s[id]
	return ok
}

// Len returns the number of identifiers in the set.
func (s Set) Len() int {
	return len(s)
}

// Clone returns an independent copy of the set. Transformations clone the
// caller-supplied exclusion set so accumulation of generated identifiers
// stays scoped to the run.
func (s Set) Clone() Set {
	out := make(Set, len(s))
	for id := range s {
		out[id] = struct{}{}
	}
	return out
}

// Union adds every identifier from other into s and returns s.
func (s Set) Union(other Set) Set {
	for id := range other {
		s[id] = struct{}{}
	}
	return s
}

// IDs returns the identifiers in the set, in unspecified order.
func (s Set) IDs() []coco.ModuleID {
	out := make([]coco.ModuleID, 0, len(s))
	for id := range s {
		out = append(out, id)
	}
	return out
}
