// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI has three views:
//  1. [BrowseView] : Browse playlists and preview the assembled card sequence of the selected one
//  2. [AssembleView] : Move videos between the available list and a new playlist
//  3. [PublishView] : Name the new playlist and create it in the CMS
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern, receiving messages via the Msg union type.
// Fetches run as commands; a playlist response is applied only while its [tasks.Ticket] is current, so
// quickly changing the selection never shows an older playlist.
//
// On the board, space grabs the video under the cursor and space again drops it at the cursor, in
// either pane. esc cancels a grab. Failed requests are reported in the status line and leave the
// board untouched; r reloads everything.
package ui
