// Package ratelimiter implements a token bucket limiter.
//
// A Bucket grants up to Config.Capacity requests at once per key and hands
// back Config.RefillRate tokens every Config.RefillInterval. Denied requests
// do not spend tokens. State lives in a Store; MemoryStore keeps it in a
// bounded LRU and forgets buckets that have been idle long enough to be full
// again.
//
//	limiter, err := ratelimiter.NewBucket(ratelimiter.NewMemoryStore(cfg), cfg)
//	if err != nil {
//		return err
//	}
//	res, err := limiter.Allow(ctx, sessionID)
//	if err == nil && !res.Allowed() {
//		// retry after res.RetryAfter(time.Now())
//	}
package ratelimiter
