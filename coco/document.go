package coco

import (
	"encoding/json"
	"fmt"
)

// ModuleID identifies a module within a CoCo document. Source identifiers are
// six-digit integers; replacement identifiers generated during cloning occupy
// the same space.
type ModuleID int64

// String returns the decimal representation of the identifier.
func (id ModuleID) String() string {
	return fmt.Sprintf("%d", int64(id))
}

// PhaseID identifies a workflow phase, the destination context in which a
// CoCo can exist.
type PhaseID int64

// String returns the decimal representation of the identifier.
func (id PhaseID) String() string {
	return fmt.Sprintf("%d", int64(id))
}

// metaParentKey is the meta object key holding a module's parent reference.
const metaParentKey = "parentModuleId"

// Document is a server-shaped CoCo as returned by the backend. It is the
// read-only input to the transformation engine.
type Document struct {
	// ID is the server-side identifier of this CoCo. It must never be
	// echoed into a creation payload.
	ID int64 `json:"id,omitempty"`

	// Name is the collection name, carried verbatim into the payload.
	Name string `json:"name,omitempty"`

	// PhaseExportType records what kind of phase this CoCo was exported
	// from. Compatibility checks against it are the caller's concern.
	PhaseExportType string `json:"phaseExportType,omitempty"`

	// ProjectID is the owning project. Payload modules are stamped with it
	// unless the caller overrides the value.
	ProjectID int64 `json:"projectId,omitempty"`

	// Modules are the configurable units of this CoCo, in server order.
	Modules []Module `json:"modules"`
}

// Validate checks that the document is structurally usable by the engine.
// It returns a *ValidationError for the first module lacking a moduleId.
func (d *Document) Validate() error {
	for i := range d.Modules {
		if err := d.Modules[i].Validate(); err != nil {
			return fmt.Errorf("module %d: %w", i, err)
		}
	}
	return nil
}

// ModuleByID returns the module with the given identifier, or nil when the
// document declares no such module.
func (d *Document) ModuleByID(id ModuleID) *Module {
	for i := range d.Modules {
		if d.Modules[i].ModuleID == id {
			return &d.Modules[i]
		}
	}
	return nil
}

// Module is one configurable unit within a CoCo.
type Module struct {
	// ModuleID is the module's identifier, unique within the document.
	ModuleID ModuleID

	// ParentModuleID references another module's ModuleID, forming a
	// tree/forest. Nil for root modules. The server keeps this inside the
	// module's meta object; it is lifted out on parse and folded back in
	// on payload assembly.
	ParentModuleID *ModuleID

	// IsPreloaded marks a module tied to phase-specific data. Preloaded
	// modules are never carried into a creation payload.
	IsPreloaded bool

	// Type is the module type (e.g. "Text").
	Type string

	// Ordinal is the module's position within its phase.
	Ordinal int

	// Rules are ordered rule directives. A rule may encode a
	// cross-reference of the form "module|<phaseId>.<moduleId>".
	Rules []string

	// Meta holds the remaining meta object keys, excluding the parent
	// reference. Carried into the payload untouched.
	Meta map[string]any

	// Columns is the module's column substructure, kept opaque. It is
	// phase-specific and never copied into a creation payload.
	Columns json.RawMessage
}

// moduleJSON is the wire shape of a module in a server document.
type moduleJSON struct {
	ModuleID    *ModuleID       `json:"moduleId"`
	Type        string          `json:"type,omitempty"`
	Ordinal     int             `json:"ordinal,omitempty"`
	IsPreloaded bool            `json:"isPreloaded,omitempty"`
	Meta        map[string]any  `json:"meta,omitempty"`
	Rules       []string        `json:"rules,omitempty"`
	Columns     json.RawMessage `json:"columns,omitempty"`
}

// UnmarshalJSON decodes a server-shaped module, lifting the parent reference
// out of the meta object. A missing moduleId is tolerated here and rejected
// by Validate, so callers get a positional error instead of a decode failure.
func (m *Module) UnmarshalJSON(data []byte) error {
	var raw moduleJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*m = Module{
		Type:        raw.Type,
		Ordinal:     raw.Ordinal,
		IsPreloaded: raw.IsPreloaded,
		Rules:       raw.Rules,
		Columns:     raw.Columns,
	}
	if raw.ModuleID != nil {
		m.ModuleID = *raw.ModuleID
	} else {
		m.ModuleID = 0
	}

	if raw.Meta != nil {
		meta := make(map[string]any, len(raw.Meta))
		for k, v := range raw.Meta {
			if k == metaParentKey {
				continue
			}
			meta[k] = v
		}
		m.Meta = meta

		if v, ok := raw.Meta[metaParentKey]; ok && v != nil {
			parent, ok := asModuleID(v)
			if !ok {
				return fmt.Errorf("module %s: %s is not an identifier: %v", m.ModuleID, metaParentKey, v)
			}
			m.ParentModuleID = &parent
		}
	}

	return nil
}

// Validate checks the module's required fields.
func (m *Module) Validate() error {
	if m.ModuleID == 0 {
		return &ValidationError{Field: "moduleId", Message: "module is missing its moduleId"}
	}
	return nil
}

// asModuleID coerces a decoded JSON value into a ModuleID. JSON numbers decode
// as float64 inside map[string]any; server responses occasionally carry
// identifiers through json.Number as well.
func asModuleID(v any) (ModuleID, bool) {
	switch n := v.(type) {
	case float64:
		return ModuleID(int64(n)), true
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, false
		}
		return ModuleID(i), true
	case int64:
		return ModuleID(n), true
	case int:
		return ModuleID(n), true
	default:
		return 0, false
	}
}

// ValidationError reports a structurally invalid field in a source document.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}
