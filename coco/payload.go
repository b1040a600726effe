package coco

// Payload is the minimal CoCo creation document submitted to the destination
// phase. It carries only what the create operation accepts: the target phase,
// whitelisted metadata copied from the source, and the rewritten modules.
type Payload struct {
	// WorkflowPhaseID is the destination phase this CoCo is created in.
	WorkflowPhaseID PhaseID `json:"workflowPhaseId"`

	// IsLocationCollectionConfiguration is always false for cloned
	// configurations; the backend requires the field to be present.
	IsLocationCollectionConfiguration bool `json:"isLocationCollectionConfiguration"`

	// Name is the collection name copied from the source document.
	Name string `json:"name,omitempty"`

	// PhaseExportType is copied from the source document.
	PhaseExportType string `json:"phaseExportType,omitempty"`

	// Modules are the surviving modules, rewritten to their new
	// identifiers, in source order.
	Modules []PayloadModule `json:"modules"`
}

// PayloadModule is the creation-side shape of a module. The backend expects
// the new identifier in both id and moduleId.
type PayloadModule struct {
	ID        ModuleID       `json:"id"`
	ModuleID  ModuleID       `json:"moduleId"`
	ProjectID int64          `json:"projectId"`
	Type      string         `json:"type"`
	Ordinal   int            `json:"ordinal"`
	Meta      map[string]any `json:"meta"`
	Rules     []string       `json:"rules"`
}
