// Package config loads galley's TOML configuration.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/galley/config.toml (default)
//  3. If the config file doesn't exist, fall back to Default()
//  4. If the file exists but fields are missing/empty, use defaults
//
// # TOML Format
//
//	api_base_url = "https://themealdb.com/api/json/v1/1/"
//	ingredient_image_base_url = "https://themealdb.com/images/ingredients/"
//	default_category = "dessert"
//	log_dir = "~/.local/share/galley/logs"
//	log_level = "info"
//	cache_dir = "~/.cache/galley"   # "off" disables the response cache
//	cache_ttl = "24h"
//	request_timeout = "10s"
//
// Every field is optional. Tilde expansion is performed on log_dir and
// cache_dir. Durations use Go syntax and must be positive.
//
// # Error Handling
//
// Load returns errors for path expansion failures, read errors other than
// os.ErrNotExist, TOML syntax errors and unparseable durations. A missing
// file is not an error.
package config
