// Package services defines the [Service] interface for talking to the content CMS and implements it
// for a Strapi backend and for offline sample data.
//
// # Service Interface
//
// Playlists, uploaded videos and playlist creation go through one abstraction so the CLI, the TUI and
// the preview server work the same against a live CMS or sample data.
//
// # Strapi Implementation
//
// [StrapiService] authenticates with a static bearer token through an [oauth2.StaticTokenSource] client.
// Every request passes through a [rate.Limiter]. Playlist responses must use the
// {"data": ...} envelope; the envelope is checked with a JSON schema before decoding.
//
// # Sample Implementation
//
// [SampleService] is used when no token is configured. It serves a fixed catalogue and a pair of
// demonstration playlists, and acknowledges created playlists without sending anything.
//
// # Error Handling
//
// CMS failures are returned as [*RequestError] carrying the status, URL and decoded response body.
// RequestError unwraps to [shared.ErrAPIRequest]; 401 responses also match [shared.ErrAuthFailed]
// and 404 responses [shared.ErrPlaylistNotFound] or [shared.ErrVideoNotFound].
//
// # Raw API
//
// [APIService] issues arbitrary authenticated GET and POST calls for debugging.
package services
