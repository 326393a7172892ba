// Package app is the composition root for galley.
//
// # Overview
//
// Run wires configuration, logging, the MealDB network stack, the shared
// state.Store and the TUI together:
//
//	┌──────────────┐
//	│   Run()      │
//	└──────┬───────┘
//	       ├─────> config.Load()            Read ~/.config/galley/config.toml
//	       ├─────> prefs.Load()             Theme and last category
//	       ├─────> newLogger()              logrus JSON into <log_dir>/galley.log
//	       ├─────> newServices()            HTTPTransport → CachingTransport → Client → Orchestrator
//	       ├─────> Dump()                   -dump: one fetch, JSON to stdout, exit
//	       ├─────> NewLoader().Load()       First category fetch in the background
//	       └─────> ui.Run()                 Start TUI (blocks)
//
// # Loader
//
// Loader owns at most one in-flight fetch. Load cancels the previous fetch's
// context before starting the next one, and the store's tickets make sure a
// late result for an abandoned category is dropped. Close cancels and joins.
//
// # Error Handling
//
// Fatal errors (returned from Run):
//   - Configuration file invalid
//   - Log file cannot be created
//   - Invalid api_base_url
//   - Fetch failure in -dump mode
//
// Recoverable errors (logged, shown in the TUI):
//   - Response cache cannot be opened (galley runs uncached)
//   - Any fetch failure while the TUI is running
package app
