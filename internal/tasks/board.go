package tasks

import (
	"fmt"

	"github.com/desertthunder/playdeck/internal/models"
	"github.com/desertthunder/playdeck/internal/ordered"
)

// Pane identifies one of the two lists on the assembly board.
type Pane int

const (
	PaneAvailable Pane = iota
	PanePlaylist
)

func (p Pane) String() string {
	switch p {
	case PaneAvailable:
		return "available"
	case PanePlaylist:
		return "playlist"
	default:
		return fmt.Sprintf("pane(%d)", int(p))
	}
}

// Location is a position in a pane.
type Location struct {
	Pane  Pane
	Index int
}

// Drag is a completed drag gesture. A nil Destination means the drop was cancelled.
type Drag struct {
	Source      Location
	Destination *Location
}

// Board is the assembly state: videos still available and the playlist being built.
//
// Boards are values over immutable lists; every change returns a new Board.
type Board struct {
	Available *ordered.List[models.Video]
	Playlist  *ordered.List[models.Video]
}

// NewBoard starts a board with every video available and an empty playlist.
func NewBoard(videos []models.Video) Board {
	return Board{
		Available: ordered.New(videos...),
		Playlist:  ordered.New[models.Video](),
	}
}

func (b Board) list(p Pane) *ordered.List[models.Video] {
	switch p {
	case PaneAvailable:
		return b.Available
	case PanePlaylist:
		return b.Playlist
	default:
		return nil
	}
}

// Pane returns the list shown in p.
func (b Board) Pane(p Pane) *ordered.List[models.Video] { return b.list(p) }

// Drop applies d. Drops onto the source position, cancelled drops, unknown panes and out-of-range
// indices leave the board unchanged.
func (b Board) Drop(d Drag) Board {
	if d.Destination == nil {
		return b
	}
	src := b.list(d.Source.Pane)
	dst := b.list(d.Destination.Pane)
	if src == nil || dst == nil {
		return b
	}

	newSrc, newDst := ordered.Move(src, dst, d.Source.Index, d.Destination.Index)

	next := b
	switch d.Source.Pane {
	case PaneAvailable:
		next.Available = newSrc
	case PanePlaylist:
		next.Playlist = newSrc
	}
	switch d.Destination.Pane {
	case PaneAvailable:
		next.Available = newDst
	case PanePlaylist:
		next.Playlist = newDst
	}
	return next
}

// Add moves the available video at index to the end of the playlist.
func (b Board) Add(index int) Board {
	return b.Drop(Drag{
		Source:      Location{Pane: PaneAvailable, Index: index},
		Destination: &Location{Pane: PanePlaylist, Index: b.Playlist.Len()},
	})
}

// Remove moves the playlist video at index back to the end of the available list.
func (b Board) Remove(index int) Board {
	return b.Drop(Drag{
		Source:      Location{Pane: PanePlaylist, Index: index},
		Destination: &Location{Pane: PaneAvailable, Index: b.Available.Len()},
	})
}

// VideoIDs returns the playlist's video IDs in order.
func (b Board) VideoIDs() []models.ID {
	items := b.Playlist.Items()
	ids := make([]models.ID, len(items))
	for i, v := range items {
		ids[i] = v.ID
	}
	return ids
}

// ClearPlaylist returns the board with an empty playlist. Available videos are untouched.
func (b Board) ClearPlaylist() Board {
	b.Playlist = ordered.New[models.Video]()
	return b
}
