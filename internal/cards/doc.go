// Package cards turns CMS component records into render requests.
//
// The pipeline has three parts:
//
//  1. [Registry] : maps a discriminant ("video", "link-card", ...) to a [Spec] declaring the fields a
//     renderer consumes and a Normalize function producing a default-filled [Request]
//  2. [Dispatcher] : looks a record up in the registry and normalizes it, or skips it with a
//     diagnostic when the record is absent, untagged, unknown, or lacks required media
//  3. [Assemble] : dispatches a playlist's records in order and drops the skipped ones, yielding a
//     [Sequence] keyed by record id
//
// Skipping is an outcome, not an error: one bad record never prevents its siblings from rendering.
// New kinds are added by registering a [Spec]; the dispatcher does not change.
package cards
