// Package config loads receipt's TOML configuration file.
//
// # Configuration Discovery
//
// Load follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/receipt/config.toml
//  3. If the file doesn't exist, fall back to defaults
//  4. If the file exists but fields are missing or blank, use defaults
//
// # TOML Format
//
//	api_url = "http://localhost:8080"
//	api_prefix = "/api"
//	min_busy_ms = 500
//	log_path = "~/.local/state/receipt/receipt.log"
//	history_limit = 50
//	timeout_seconds = 0
//
// api_url accepts either a full URL or a bare host:port. api_prefix is joined
// in front of every endpoint path; set it to "" to talk to the server root.
// min_busy_ms is the minimum time a submission keeps the UI busy, so quick
// responses still give visible feedback. timeout_seconds of 0 disables the
// client-side timeout entirely.
//
// Missing config files are not an error. Tilde expansion is performed on
// paths.
package config
