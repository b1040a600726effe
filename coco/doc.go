// Package coco defines the data model for Collection Configuration (CoCo)
// documents: the server-shaped source document exported from a workflow phase,
// and the minimal creation payload submitted when cloning one into another
// phase.
//
// # Core Concepts
//
// A CoCo is a hierarchical configuration object made of modules. Modules may
// nest through a parent reference kept inside their meta object, and may carry
// rule strings that encode cross-references to other modules in the form
// "module|<phaseId>.<moduleId>".
//
// The source Document is read-only: the transformation engine never mutates
// it. The Payload is the creation-side counterpart — it carries only the
// fields the destination create operation accepts. In particular it never
// contains a module's columns substructure, never contains preloaded modules,
// and never echoes the source document's own identifier.
//
// # Parsing
//
// Source documents are constructed from server JSON with ParseDocument or
// DecodeDocument:
//
//	doc, err := coco.ParseDocument(raw)
//	if err != nil {
//	    // the document is structurally unusable
//	}
//
// Both entry points validate the document shape; a module without a moduleId
// is rejected with a *ValidationError.
package coco
