// Package cache provides a small keyed read-through cache with optional expiry.
//
// It is the generalised form of the index cache used by the reconciliation
// engine: entries are replaced wholesale (never patched in place), lookups take
// a read lock, and concurrent misses for the same key are collapsed with
// singleflight so a value is only computed once.
//
// # Expiry
//
// A Store created with a positive TTL expires entries TTL after they were built.
// A zero TTL keeps entries until Invalidate or Clear is called, which is what the
// aggregate player caches need.
//
// # Usage
//
//	players := cache.New[string, *models.Player](0)
//	p, err := players.GetOrBuild(ctx, oid, func(ctx context.Context) (*models.Player, error) {
//	    return merge(oid)
//	})
package cache
