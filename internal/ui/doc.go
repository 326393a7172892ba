// Package ui provides the terminal interface for galley.
//
// The interface is a Bubble Tea program. A single Model owns all view state
// and polls the shared state.Store on a ticker, so fetches running in the
// background never touch the UI directly.
//
// # Views
//
//   - Grid (1): recipe cards for the current category, one to three columns
//     depending on terminal width. Only recipes that carry both ingredients
//     and instructions are shown, ordered by name.
//   - Detail (enter): ingredients with measurements and numbered steps for the
//     selected recipe, in a scrollable viewport.
//   - Logs (l): the tail of galley.log parsed by logtail, with follow mode.
//
// # Actions
//
// The category prompt (c or /) starts a new fetch through the Loader and
// remembers the choice in prefs. r reloads the current category and X purges
// the response cache before reloading. T cycles themes.
//
// Failed fetches are shown with copy from describeError, which maps each
// mealdb error kind onto a message and a recovery hint.
package ui
