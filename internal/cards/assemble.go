package cards

import "github.com/desertthunder/playdeck/internal/models"

// Placeholder is a named empty state shown instead of a sequence.
type Placeholder struct {
	Name  string `json:"name"`
	Title string `json:"title"`
	Hint  string `json:"hint"`
}

var (
	// NoSelection is shown before a playlist has been chosen.
	NoSelection = Placeholder{
		Name:  "no-selection",
		Title: "No playlist selected",
		Hint:  "Select a playlist from the list",
	}
	// EmptyState is shown when a playlist has nothing renderable.
	EmptyState = Placeholder{
		Name:  "empty",
		Title: "Nothing to show",
		Hint:  "This playlist has no renderable components",
	}
)

// Sequence is the ordered, render-ready content of one playlist.
type Sequence struct {
	Items   []Request `json:"items"`
	Skipped int       `json:"skipped"`
}

// Empty reports whether there is nothing to render.
func (s Sequence) Empty() bool { return len(s.Items) == 0 }

// Placeholder returns the empty state to show, or false when the sequence has items.
func (s Sequence) Placeholder() (Placeholder, bool) {
	if s.Empty() {
		return EmptyState, true
	}
	return Placeholder{}, false
}

// Keys returns the item keys in render order.
func (s Sequence) Keys() []string {
	keys := make([]string, len(s.Items))
	for i, item := range s.Items {
		keys[i] = item.Key()
	}
	return keys
}

// Assemble dispatches records in order, keeping the ones that render.
func Assemble(d *Dispatcher, records []*models.ComponentRecord) Sequence {
	seq := Sequence{Items: make([]Request, 0, len(records))}
	for _, rec := range records {
		req, ok := d.Dispatch(rec)
		if !ok {
			seq.Skipped++
			continue
		}
		seq.Items = append(seq.Items, req)
	}
	return seq
}

// AssemblePlaylist assembles the components of p.
func AssemblePlaylist(d *Dispatcher, p models.Playlist) Sequence {
	return Assemble(d, p.Attributes.Components)
}
