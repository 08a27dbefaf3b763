// Package cache provides a generic key-value cache with TTL expiration.
//
// The Cache interface is generic over the value type, so callers get
// compile-time type safety without assertions:
//
//	c := cache.NewMemory[User](cache.WithDefaultTTL(10 * time.Minute))
//	defer c.Close()
//
//	if err := c.Set(ctx, "user:42", user, 0); err != nil { ... }
//	user, err := c.Get(ctx, "user:42")
//
// # TTL Semantics
//
// Set interprets its TTL argument in three ways:
//   - positive: the entry expires after that duration
//   - zero: the cache's configured default TTL applies
//   - negative: the entry never expires
//
// # LRU Eviction
//
// The in-memory backend optionally caps the number of entries. When the
// cap is reached, the least recently used entry is evicted to make room.
// Get refreshes recency; Has does not.
//
//	c := cache.NewMemory[string](cache.WithMaxEntries(1000))
//
// Register an eviction callback to observe entries leaving the cache:
//
//	c.SetEvictCallback(func(key string, value string) {
//	    log.Printf("evicted %s", key)
//	})
//
// # Cache Stampede Protection
//
// GetOrSet computes missing values through singleflight, so concurrent
// misses on the same key run the loader once and share the result:
//
//	page, err := cache.GetOrSet(ctx, c, "page:home",
//	    func(ctx context.Context) (string, time.Duration, error) {
//	        html, err := render(ctx)
//	        return html, 5 * time.Minute, err
//	    })
package cache
