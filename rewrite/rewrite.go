// Package rewrite patches internal references in filtered CoCo modules so the
// creation payload is internally consistent.
//
// Rewriting is a pure function of the identifier map, the surviving module
// sequence, and the target phase: it never mutates its input and produces
// byte-identical output for a fixed map. Parent references to dropped modules
// are demoted to nil rather than left dangling; rule cross-references are
// rewritten best-effort and never invented.
package rewrite

import (
	"github.com/dszilagyiques/CloneCoCo/coco"
	"github.com/dszilagyiques/CloneCoCo/ident"
	"github.com/dszilagyiques/CloneCoCo/modref"
)

// Warning reports a rule whose cross-reference points at a module identifier
// declared nowhere in the source document. The rule is left unmodified — a
// missing downstream reference may be a legitimate cross-phase pointer rather
// than corrupt data — and the condition is surfaced to the caller alongside
// the successful result.
type Warning struct {
	// ModuleID is the source identifier of the module carrying the rule.
	ModuleID coco.ModuleID `json:"moduleId"`

	// Rule is the rule string, unmodified.
	Rule string `json:"rule"`

	// Referenced is the module identifier the rule points at.
	Referenced coco.ModuleID `json:"referenced"`
}

// Rewriter patches parent links and rule cross-references using the
// old-to-new assignment built during filtering.
type Rewriter struct {
	ids    *ident.Map
	target coco.PhaseID
	known  ident.Set
}

// New creates a Rewriter. known is the set of every module identifier
// declared in the source document, including dropped modules; it is used only
// to distinguish references to dropped modules from references to modules the
// source never declared.
func New(ids *ident.Map, target coco.PhaseID, known ident.Set) *Rewriter {
	return &Rewriter{ids: ids, target: target, known: known}
}

// Rewrite returns rewritten copies of the surviving modules, in order. Each
// copy carries its new identifier, a parent reference that is either nil or a
// mapped new identifier, and rules with in-document cross-references retargeted
// to the destination phase.
func (r *Rewriter) Rewrite(modules []coco.Module) ([]coco.Module, []Warning) {
	out := make([]coco.Module, 0, len(modules))
	var warnings []Warning

	for i := range modules {
		m := &modules[i]

		rewritten := coco.Module{
			IsPreloaded: m.IsPreloaded,
			Type:        m.Type,
			Ordinal:     m.Ordinal,
			Meta:        m.Meta,
			Columns:     m.Columns,
		}

		if newID, ok := r.ids.Lookup(m.ModuleID); ok {
			rewritten.ModuleID = newID
		} else {
			// Survivors are always mapped; keep the old identifier
			// rather than invent one if the invariant is broken.
			rewritten.ModuleID = m.ModuleID
		}

		rewritten.ParentModuleID = r.rewriteParent(m.ParentModuleID)

		rules, ruleWarnings := r.rewriteRules(m.ModuleID, m.Rules)
		rewritten.Rules = rules
		warnings = append(warnings, ruleWarnings...)

		out = append(out, rewritten)
	}

	return out, warnings
}

// rewriteParent maps a parent reference to its new identifier. References to
// modules that were dropped (or never existed) are demoted to nil so the
// payload never carries a dangling pointer.
func (r *Rewriter) rewriteParent(parent *coco.ModuleID) *coco.ModuleID {
	if parent == nil {
		return nil
	}
	newID, ok := r.ids.Lookup(*parent)
	if !ok {
		return nil
	}
	return &newID
}

// rewriteRules retargets module cross-references in the rule sequence.
// Rules that are not references, or that reference modules outside the
// identifier map, pass through byte-identical in their original order.
func (r *Rewriter) rewriteRules(owner coco.ModuleID, rules []string) ([]string, []Warning) {
	if rules == nil {
		return nil, nil
	}

	out := make([]string, len(rules))
	var warnings []Warning

	for i, rule := range rules {
		ref, ok := modref.Parse(rule)
		if !ok {
			out[i] = rule
			continue
		}

		newID, mapped := r.ids.Lookup(ref.Module)
		if !mapped {
			out[i] = rule
			if !r.known.Has(ref.Module) {
				warnings = append(warnings, Warning{
					ModuleID:   owner,
					Rule:       rule,
					Referenced: ref.Module,
				})
			}
			continue
		}

		out[i] = modref.Ref{Phase: r.target, Module: newID}.String()
	}

	return out, warnings
}
