// Package exclusion supplies the identifiers already in use at a cloning
// destination.
//
// The transformation engine guarantees that generated identifiers are
// disjoint from an exclusion set, but it does not know where that set comes
// from. This package provides the sources: a Static set for callers that
// already hold the identifiers, and a Redis-backed store for sharing the set
// of assigned identifiers between independent cloning runs against the same
// destination.
//
// The Redis store keeps all identifiers in a single set key. A typical flow
// fetches the set before transforming, and reserves the newly assigned
// identifiers after the create call succeeds:
//
//	store, err := exclusion.NewRedisStore(exclusion.RedisOptions{URL: url})
//	if err != nil { ... }
//	defer store.Close()
//
//	inUse, err := store.Fetch(ctx)
//	// transform with clonecoco.WithExclusions(inUse) ...
//	err = store.Reserve(ctx, result.IDs.NewIDs()...)
package exclusion
