// Package cache stores raw shop responses keyed by request URL.
//
// # Overview
//
// The wps client consults the cache before every request and stores successful
// response bodies after it. Error statuses are never cached.
//
//	Search(url) ──Key(url)──> Get ── hit ──> decode cached body
//	                           └── miss ──> HTTP GET ──2xx──> Set
//
// # Backends
//
//   - Memory: in-process map with a TTL and an entry bound. When full, expired
//     entries are evicted first, then the oldest one.
//   - Redis: shared between shelf instances through go-redis, expiry handled by
//     the server.
//
// New selects the backend from Options: a zero TTL disables caching (nil Cache),
// a RedisURL selects Redis after a successful PING, otherwise Memory.
//
// # Keys
//
// Key hashes the full request URL with SHA-256 under the "shelf:shop:" prefix.
// URLs are deterministic for equal filter states, so equal states share entries.
package cache
