// Package config loads shelf's TOML configuration.
//
// Load reads ~/.config/shelf/config.toml unless a path is given. A missing file
// is not an error: every field has a default, and empty fields keep theirs.
//
// Example config.toml:
//
//	endpoint = "https://demo.itthinx.com/wps"
//	query_delay = "500ms"
//	endpoint_delay = "1s"
//	page_size = 10
//	request_timeout = "10s"
//	log_file = "~/.local/state/shelf/shelf.log"
//	log_level = "info"
//	metrics_addr = "127.0.0.1:9464"
//
//	[cache]
//	ttl = "30s"
//	max_entries = 128
//	redis_url = "redis://localhost:6379/0"
//
// Durations use Go syntax. A cache ttl of "0s" disables response caching, and
// an empty redis_url keeps the cache in process. Paths starting with ~ are
// expanded to the home directory.
package config
