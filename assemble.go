package clonecoco

import "github.com/dszilagyiques/CloneCoCo/coco"

// defaultModuleType is stamped on payload modules whose source entry carries
// no type, matching the backend's default.
const defaultModuleType = "Text"

// assemble composes the final creation payload from the rewritten modules and
// the whitelisted source metadata. The source document's own identifier is
// never echoed back — the destination would reject it as a collision with the
// existing record — and no columns substructure survives.
func (t *Transformer) assemble(rewritten []coco.Module, doc *coco.Document, targetPhase coco.PhaseID) *coco.Payload {
	projectID := doc.ProjectID
	if t.projectID != nil {
		projectID = *t.projectID
	}

	payload := &coco.Payload{
		WorkflowPhaseID:                   targetPhase,
		IsLocationCollectionConfiguration: false,
		Name:                              doc.Name,
		PhaseExportType:                   doc.PhaseExportType,
		Modules:                           make([]coco.PayloadModule, 0, len(rewritten)),
	}

	for i := range rewritten {
		m := &rewritten[i]

		moduleType := m.Type
		if moduleType == "" {
			moduleType = defaultModuleType
		}

		// The meta object is rebuilt with the rewritten parent
		// reference folded back in. A nil parent is serialized as an
		// explicit null; the create endpoint expects the key to be
		// present.
		meta := make(map[string]any, len(m.Meta)+1)
		for k, v := range m.Meta {
			meta[k] = v
		}
		if m.ParentModuleID != nil {
			meta["parentModuleId"] = int64(*m.ParentModuleID)
		} else {
			meta["parentModuleId"] = nil
		}

		rules := m.Rules
		if rules == nil {
			rules = []string{}
		}

		payload.Modules = append(payload.Modules, coco.PayloadModule{
			ID:        m.ModuleID,
			ModuleID:  m.ModuleID,
			ProjectID: projectID,
			Type:      moduleType,
			Ordinal:   m.Ordinal,
			Meta:      meta,
			Rules:     rules,
		})
	}

	return payload
}
