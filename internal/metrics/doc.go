// Package metrics instruments shop requests with Prometheus collectors.
//
// # Collectors
//
//   - shelf_search_requests_total{outcome}: completed, cancelled or failed requests
//   - shelf_search_request_duration_seconds{outcome}: request latency
//   - shelf_search_result_total: total matches of the last applied response
//   - shelf_cache_lookups_total{result}: response cache hits and misses
//
// # Registry
//
// Each Recorder owns a private registry with the Go runtime collector, so
// tests can create as many as they like. Handler serves it in the text format;
// the app mounts it on /metrics when metrics_addr is configured.
//
// A nil *Recorder is valid and records nothing.
package metrics
