// Package modref implements the string-encoded module cross-reference used
// inside CoCo rule directives.
//
// A reference has the form "module|<phaseId>.<moduleId>" and points at a
// module in a specific workflow phase. Rather than patching rule strings with
// raw text substitution, callers parse a rule into a Ref, rewrite its fields,
// and serialize it back — malformed or partial matches never round-trip into
// a different string.
package modref

import (
	"strconv"
	"strings"

	"github.com/dszilagyiques/CloneCoCo/coco"
)

// Prefix marks a rule string as a module cross-reference.
const Prefix = "module|"

// Ref is a parsed module cross-reference.
type Ref struct {
	// Phase is the workflow phase the referenced module lives in.
	Phase coco.PhaseID

	// Module is the referenced module's identifier.
	Module coco.ModuleID
}

// Parse decodes a rule string of the form "module|<phaseId>.<moduleId>".
// The boolean result is false when the string is not a module reference or is
// malformed; such rules pass through the rewriter untouched.
func Parse(s string) (Ref, bool) {
	rest, ok := strings.CutPrefix(s, Prefix)
	if !ok {
		return Ref{}, false
	}

	phasePart, modulePart, ok := strings.Cut(rest, ".")
	if !ok {
		return Ref{}, false
	}

	phase, err := strconv.ParseInt(phasePart, 10, 64)
	if err != nil {
		return Ref{}, false
	}
	module, err := strconv.ParseInt(modulePart, 10, 64)
	if err != nil {
		return Ref{}, false
	}

	return Ref{Phase: coco.PhaseID(phase), Module: coco.ModuleID(module)}, true
}

// String serializes the reference back to its rule-string form.
func (r Ref) String() string {
	return Prefix + strconv.FormatInt(int64(r.Phase), 10) + "." + strconv.FormatInt(int64(r.Module), 10)
}
