// Package server provides HTTP routing, middleware and the JSON handlers of the local preview server.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (last added executes first), following the standard Go pattern.
//
// The [BasicRouter] implementation uses [http.ServeMux] internally; routes are registered with method
// patterns so other methods get 405 from the mux.
//
// # Middleware
//
//   - [Recover] turns handler panics into a JSON 500
//   - [RequestID] assigns a uuid per request (or reuses X-Request-ID)
//   - [Logging] writes one charm log line per request, at warn for 4xx and error for 5xx
//
// # Preview API
//
//	GET  /api/playlists               → playlists with their raw components
//	GET  /api/playlists/{id}/sequence → assembled card sequence (skips counted, empty state named)
//	GET  /api/videos                  → videos available for assembly
//	POST /api/playlists               → create a playlist from {"name", "videoIds"}
//	GET  /health                      → liveness and backing service name
//
// Errors are written as {"error": {"status", "message"}}; CMS request errors keep their status and message.
//
// # Handler Interface
//
// Custom handlers implement the [Handler] interface, which wraps the stdlib handler interface and adds routes,
// allowing handlers to register multiple routes to encapsulate route definitions within the implementation.
package server
