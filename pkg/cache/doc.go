// Package cache provides a bounded, thread-safe LRU with optional idle
// expiry. regform keeps one live form per browser session in it.
//
//	sessions := cache.NewLRU[string, *Session](1024,
//	    cache.WithTTL[string, *Session](30*time.Minute),
//	)
//	s, _ := sessions.GetOrPut(id, newSession)
//
// An entry expires when it has not been read or written for longer than the
// TTL. Expired entries are dropped lazily on access, or in bulk by
// DeleteExpired. The eviction callback fires for capacity evictions,
// expiry and explicit removal.
package cache
