package tasks

import (
	"testing"

	"github.com/desertthunder/playdeck/internal/models"
	"github.com/google/go-cmp/cmp"
)

func testVideos(ids ...string) []models.Video {
	videos := make([]models.Video, len(ids))
	for i, id := range ids {
		videos[i] = models.Video{ID: models.ID(id), Title: "video " + id}
	}
	return videos
}

func keys(b Board) (available, playlist []string) {
	return b.Available.Keys(), b.Playlist.Keys()
}

func TestBoard(t *testing.T) {
	t.Run("NewBoard", func(t *testing.T) {
		b := NewBoard(testVideos("1", "2", "3"))
		avail, pl := keys(b)
		if diff := cmp.Diff([]string{"1", "2", "3"}, avail); diff != "" {
			t.Errorf("available mismatch (-want +got):\n%s", diff)
		}
		if len(pl) != 0 {
			t.Errorf("expected empty playlist, got %v", pl)
		}
	})

	t.Run("Drop", func(t *testing.T) {
		at := func(p Pane, i int) *Location { return &Location{Pane: p, Index: i} }

		tc := []struct {
			name     string
			start    func() Board
			drag     Drag
			wantAvl  []string
			wantList []string
		}{
			{
				name:     "available to playlist",
				start:    func() Board { return NewBoard(testVideos("1", "2", "3")) },
				drag:     Drag{Source: Location{PaneAvailable, 1}, Destination: at(PanePlaylist, 0)},
				wantAvl:  []string{"1", "3"},
				wantList: []string{"2"},
			},
			{
				name: "reorder playlist",
				start: func() Board {
					return NewBoard(testVideos("1", "2", "3")).Add(0).Add(0).Add(0)
				},
				drag:     Drag{Source: Location{PanePlaylist, 0}, Destination: at(PanePlaylist, 2)},
				wantAvl:  []string{},
				wantList: []string{"2", "3", "1"},
			},
			{
				name:     "playlist back to available",
				start:    func() Board { return NewBoard(testVideos("1", "2")).Add(1) },
				drag:     Drag{Source: Location{PanePlaylist, 0}, Destination: at(PaneAvailable, 0)},
				wantAvl:  []string{"2", "1"},
				wantList: []string{},
			},
			{
				name:     "cancelled",
				start:    func() Board { return NewBoard(testVideos("1", "2")) },
				drag:     Drag{Source: Location{PaneAvailable, 0}},
				wantAvl:  []string{"1", "2"},
				wantList: []string{},
			},
			{
				name:     "same position",
				start:    func() Board { return NewBoard(testVideos("1", "2")) },
				drag:     Drag{Source: Location{PaneAvailable, 1}, Destination: at(PaneAvailable, 1)},
				wantAvl:  []string{"1", "2"},
				wantList: []string{},
			},
			{
				name:     "source out of range",
				start:    func() Board { return NewBoard(testVideos("1")) },
				drag:     Drag{Source: Location{PaneAvailable, 5}, Destination: at(PanePlaylist, 0)},
				wantAvl:  []string{"1"},
				wantList: []string{},
			},
			{
				name:     "destination out of range",
				start:    func() Board { return NewBoard(testVideos("1")) },
				drag:     Drag{Source: Location{PaneAvailable, 0}, Destination: at(PanePlaylist, 3)},
				wantAvl:  []string{"1"},
				wantList: []string{},
			},
			{
				name:     "unknown pane",
				start:    func() Board { return NewBoard(testVideos("1")) },
				drag:     Drag{Source: Location{PaneAvailable, 0}, Destination: at(Pane(9), 0)},
				wantAvl:  []string{"1"},
				wantList: []string{},
			},
		}

		for _, tt := range tc {
			t.Run(tt.name, func(t *testing.T) {
				before := tt.start()
				beforeAvl, beforeList := keys(before)

				after := before.Drop(tt.drag)
				avl, list := keys(after)
				if diff := cmp.Diff(tt.wantAvl, avl); diff != "" {
					t.Errorf("available mismatch (-want +got):\n%s", diff)
				}
				if diff := cmp.Diff(tt.wantList, list); diff != "" {
					t.Errorf("playlist mismatch (-want +got):\n%s", diff)
				}

				againAvl, againList := keys(before)
				if !cmp.Equal(beforeAvl, againAvl) || !cmp.Equal(beforeList, againList) {
					t.Error("Drop mutated the original board")
				}
			})
		}
	})

	t.Run("Conservation", func(t *testing.T) {
		b := NewBoard(testVideos("1", "2", "3", "4"))
		b = b.Add(3).Add(0).Remove(1).Add(1)
		if total := b.Available.Len() + b.Playlist.Len(); total != 4 {
			t.Errorf("expected 4 videos across panes, got %d", total)
		}
	})

	t.Run("VideoIDs And ClearPlaylist", func(t *testing.T) {
		b := NewBoard(testVideos("1", "2", "3")).Add(2).Add(0)
		if diff := cmp.Diff([]models.ID{"3", "1"}, b.VideoIDs()); diff != "" {
			t.Errorf("ids mismatch (-want +got):\n%s", diff)
		}

		cleared := b.ClearPlaylist()
		if cleared.Playlist.Len() != 0 || cleared.Available.Len() != 1 {
			t.Errorf("unexpected cleared board %v / %v", cleared.Available.Keys(), cleared.Playlist.Keys())
		}
		if b.Playlist.Len() != 2 {
			t.Error("ClearPlaylist mutated the original board")
		}
	})

	t.Run("Pane String", func(t *testing.T) {
		if PaneAvailable.String() != "available" || PanePlaylist.String() != "playlist" {
			t.Error("unexpected pane names")
		}
	})
}

func TestTracker(t *testing.T) {
	var tr Tracker

	if tr.Current(0) {
		t.Error("zero ticket should never be current")
	}

	first := tr.Next()
	if !tr.Current(first) {
		t.Error("expected first ticket to be current")
	}

	second := tr.Next()
	if tr.Current(first) {
		t.Error("expected first ticket to be stale after Next")
	}
	if !tr.Current(second) {
		t.Error("expected second ticket to be current")
	}

	tr.Invalidate()
	if tr.Current(second) {
		t.Error("expected Invalidate to supersede the second ticket")
	}
}
