// Package clonecoco clones Collection Configurations (CoCos) between workflow
// phases.
//
// A CoCo exported from one phase is server-shaped: it carries server-side
// identifiers, phase-specific substructures, and preloaded modules that make
// no sense at a destination phase. The engine in this package turns such a
// document into a minimal creation payload with every internal identifier
// remapped, every internal reference rewritten consistently, and every
// non-portable substructure excluded.
//
// # Architecture
//
// The engine is composed of four passes, leaves first:
//
//   - Identifier generation (package ident): fresh identifiers disjoint from
//     a caller-supplied exclusion set and from every identifier produced in
//     the same run.
//   - Module filtering: preloaded modules are dropped, every other module
//     survives and is assigned a new identifier.
//   - Reference rewriting (package rewrite): parent links and rule-encoded
//     cross-references (package modref) are patched through the old-to-new
//     identifier map; references to dropped modules are demoted rather than
//     left dangling.
//   - Payload assembly: whitelisted metadata and the rewritten modules are
//     composed into the creation document for the target phase.
//
// The engine performs no network I/O and no user interaction: it consumes a
// parsed document (package coco) and a target phase identifier, and returns
// the payload together with the identifier map and any reference warnings.
// Authentication, phase discovery, and submission live in package qtm;
// sharing destination-side identifier exclusions between cloning runs lives
// in package exclusion.
//
// # Usage
//
//	doc, err := coco.ParseDocument(raw)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	tr, err := clonecoco.NewTransformer(
//	    clonecoco.WithLogger(logger),
//	    clonecoco.WithExclusions(inUse),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := tr.Transform(ctx, doc, targetPhase)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, w := range result.Warnings {
//	    // rule left unmodified; may be a legitimate cross-phase pointer
//	}
//	// result.Payload is ready to serialize and submit.
//
// # Error Handling
//
// Structural failures — a module without its moduleId, or identifier
// generation exhausting its attempt budget — abort the transformation and
// return a *Error carrying the operation and error kind; no partial payload
// is ever returned. Reference anomalies degrade gracefully: the affected rule
// is carried through unchanged and reported as a warning on the result.
//
// # Concurrency
//
// Transform is synchronous and leaves no shared state behind; concurrent
// transformations of independent documents are safe. When a single exclusion
// set is shared across concurrent calls, synchronizing access to it is the
// caller's responsibility.
package clonecoco
