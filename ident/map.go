package ident

import "github.com/dszilagyiques/CloneCoCo/coco"

// Map is the old-to-new identifier assignment built while filtering a source
// document. One entry is recorded per surviving module, in source order.
type Map struct {
	entries map[coco.ModuleID]coco.ModuleID
	order   []coco.ModuleID
}

// NewMap returns an empty identifier map.
func NewMap() *Map {
	return &Map{entries: make(map[coco.ModuleID]coco.ModuleID)}
}

// Record stores the assignment oldID -> newID. Recording the same old
// identifier twice overwrites the earlier assignment; the filter never does
// this for a well-formed document.
func (m *Map) Record(oldID, newID coco.ModuleID) {
	if _, ok := m.entries[oldID]; !ok {
		m.order = append(m.order, oldID)
	}
	m.entries[oldID] = newID
}

// Lookup returns the new identifier assigned to oldID.
func (m *Map) Lookup(oldID coco.ModuleID) (coco.ModuleID, bool) {
	newID, ok := m.entries[oldID]
	return newID, ok
}

// Len returns the number of recorded assignments.
func (m *Map) Len() int {
	return len(m.entries)
}

// OldIDs returns the recorded source identifiers in insertion order.
func (m *Map) OldIDs() []coco.ModuleID {
	out := make([]coco.ModuleID, len(m.order))
	copy(out, m.order)
	return out
}

// NewIDs returns the assigned identifiers in insertion order.
func (m *Map) NewIDs() []coco.ModuleID {
	out := make([]coco.ModuleID, 0, len(m.order))
	for _, oldID := range m.order {
		out = append(out, m.entries[oldID])
	}
	return out
}

// Pairs returns the assignments as a plain map for callers that only need
// lookup semantics.
func (m *Map) Pairs() map[coco.ModuleID]coco.ModuleID {
	out := make(map[coco.ModuleID]coco.ModuleID, len(m.entries))
	for k, v := range m.entries {
		out[k] = v
	}
	return out
}
