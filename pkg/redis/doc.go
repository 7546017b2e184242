// Package redis opens a go-redis client with startup retries and exposes a
// readiness check for it.
package redis
