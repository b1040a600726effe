package clonecoco

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"github.com/dszilagyiques/CloneCoCo/coco"
	"github.com/dszilagyiques/CloneCoCo/ident"
)

// filter decides which modules survive into the payload and assigns each
// survivor a new identifier.
//
// Preloaded modules are dropped unconditionally; every other module survives,
// in source order. Each generated identifier is fed back into exclude so
// later calls within the run cannot collide. An empty result (zero modules,
// or all preloaded) is a valid outcome, not an error.
func (t *Transformer) filter(ctx context.Context, doc *coco.Document, exclude ident.Set) ([]coco.Module, *ident.Map, error) {
	const op = "Transformer.filter"

	_, span := t.startSpan(ctx, "clonecoco.filter",
		attribute.Int("coco.source_modules", len(doc.Modules)))
	defer span.End()

	ids := ident.NewMap()
	survivors := make([]coco.Module, 0, len(doc.Modules))

	for i := range doc.Modules {
		m := doc.Modules[i]
		if m.IsPreloaded {
			continue
		}

		newID, err := t.generator.Generate(exclude)
		if err != nil {
			return nil, nil, NewIdentifierSpaceError(op, err).WithContext(map[string]any{
				"module_id": m.ModuleID,
				"assigned":  ids.Len(),
			})
		}
		exclude.Add(newID)
		ids.Record(m.ModuleID, newID)
		survivors = append(survivors, m)
	}

	span.SetAttributes(attribute.Int("coco.surviving_modules", len(survivors)))
	return survivors, ids, nil
}
