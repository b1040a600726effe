// Package ident provides identifier generation and bookkeeping for CoCo
// cloning.
//
// Each surviving module in a cloned configuration receives a fresh identifier
// drawn from the same six-digit space the backend uses. Uniqueness is an
// explicit contract rather than a probabilistic side effect: a Generator is
// handed the full exclusion Set — identifiers already in use at the
// destination plus every identifier produced earlier in the same run — and
// must return a value outside it or fail with ErrSpaceExhausted after a
// bounded number of attempts.
//
// The Map records the old-to-new assignment built during filtering. It is
// injective by construction (new identifiers are drawn against an exclusion
// set containing all previous assignments) and preserves insertion order so
// rewriting is deterministic for a fixed map.
//
// Generators hold no state that outlives a call; sharing one Set across
// concurrent runs requires caller-side synchronization.
package ident
