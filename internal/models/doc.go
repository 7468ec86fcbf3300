// Package models defines the CMS records consumed by playdeck.
//
// The types mirror the subset of the Strapi response shapes the client reads:
//
//   - [Playlist] : a playlist entry with its ordered [Components]
//   - [ComponentRecord] : one tagged-union component, discriminated by its __component field
//   - [MediaRef] : a media relation reachable through optional wrappers (url, data, data.attributes)
//   - [Video] : an uploaded video file offered in the assembly board
//   - [Created] : the acknowledgment returned after publishing a playlist
//
// Every field below the top level is optional. Decoding never fails because a nested
// wrapper is absent, and a single malformed component does not prevent its siblings from decoding.
package models
