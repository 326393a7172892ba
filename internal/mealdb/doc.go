// Package mealdb provides an HTTP client for TheMealDB JSON API.
//
// # Overview
//
// The package covers the two read-only endpoints galley needs and the fetch
// cycle built on top of them:
//
//   - GET filter.php?c=<category>: summary listing (id, name, thumbnail)
//   - GET lookup.php?i=<id>: full details for one meal
//
// Responses are decoded by recipe.Codec. The package owns transport, status
// handling, error classification and concurrency.
//
// # Architecture
//
//   - endpoint.go: Endpoint descriptors and base URL handling
//   - transport.go: Transport interface and the net/http implementation
//   - cache.go: BadgerDB-backed CachingTransport
//   - client.go: Client (RecipeSource) combining transport and codec
//   - fetch.go: Orchestrator running the list-then-lookup cycle
//   - errors.go: Error and Kind taxonomy
//
// # Fetch Cycle
//
//	FetchWithDetails(ctx, "Dessert")
//	  ├─> FetchRecipes        one listing request
//	  └─> errgroup            one FetchRecipe per distinct id
//	        ├─ first failure cancels the group context
//	        └─ Wait() joins every goroutine before returning
//
// The cycle is all-or-nothing: either every lookup succeeds and the full list
// is returned, or the first error is returned and nothing else.
//
// # Error Handling
//
// Every failure surfaces as *Error with a Kind:
//
//   - KindInvalidRequestTarget: base URL or endpoint does not form an http(s) URL
//   - KindTransport: the request never produced a response
//   - KindServer: non-2xx status, carried in StatusCode
//   - KindDecoding: body is not the expected JSON shape
//   - KindMalformedID: idMeal missing or not an integer string
//   - KindNotFound: a lookup returned no meal
//
// Use KindOf to classify any error in the chain and errors.Is with
// &Error{Kind: ...} to match by kind.
//
// # Caching
//
// CachingTransport wraps any Transport and keeps successful GET bodies in a
// BadgerDB directory with a TTL. Error responses are never cached, and a
// broken cache degrades to a pass-through.
//
// # Thread Safety
//
// Client, HTTPTransport, CachingTransport and Orchestrator are safe for
// concurrent use.
package mealdb
