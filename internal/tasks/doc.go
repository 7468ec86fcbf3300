// Package tasks holds the stateful operations behind the CLI, the TUI and the preview server.
//
// # Assembly Board
//
// A [Board] pairs the available videos with the playlist being assembled. [Board.Drop] applies a
// drag gesture with [ordered.Move] and returns a new board; cancelled or invalid gestures return the
// board unchanged.
//
// # Publishing
//
// [PublishRequest] is validated before anything is sent: the name must not be blank and at least one
// video must be selected. [Engine.Publish] creates the playlist and returns a board with the playlist
// pane cleared.
//
// # Stale Responses
//
// A [Tracker] hands out increasing [Ticket]s. A playlist fetch records the ticket it was started
// with, and its result is applied only while that ticket is still current, so a slow response for an
// earlier selection never overwrites a later one.
//
// # Engine
//
// [Engine] loads playlists and videos concurrently, assembles sequences, and exports many playlists
// with a bounded worker pool. Operations emit [ProgressUpdate]s on an optional channel without
// blocking.
package tasks
