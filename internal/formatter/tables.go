package formatter

import (
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/desertthunder/playdeck/internal/cards"
	"github.com/desertthunder/playdeck/internal/models"
	"github.com/desertthunder/playdeck/internal/shared"
)

var headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#B77BF3")).Padding(0, 1)
var cellStyle = lipgloss.NewStyle().Padding(0, 1)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers(headers...)
}

// PlaylistsTable lists playlists with the number of cards each one renders.
func PlaylistsTable(playlists []models.Playlist, d *cards.Dispatcher) string {
	t := newTable("ID", "Title", "Cards", "Skipped", "Updated")
	for _, p := range playlists {
		seq := cards.AssemblePlaylist(d, p)
		t.Row(
			p.ID.String(),
			shared.Truncate(p.Title(), 40),
			strconv.Itoa(len(seq.Items)),
			strconv.Itoa(seq.Skipped),
			p.Attributes.UpdatedAt,
		)
	}
	return t.String()
}

// VideosTable lists videos available for assembly.
func VideosTable(videos []models.Video) string {
	t := newTable("ID", "Title", "Duration", "Label", "URL")
	for _, v := range videos {
		t.Row(v.ID.String(), shared.Truncate(v.Title, 40), v.Duration, v.Label, shared.Truncate(v.VideoURL, 60))
	}
	return t.String()
}

// KindsTable lists the registered card kinds and their field declarations.
func KindsTable(r *cards.Registry) string {
	aliases := map[string][]string{}
	for alias, kind := range r.Aliases() {
		aliases[kind] = append(aliases[kind], alias)
	}
	for _, names := range aliases {
		slices.Sort(names)
	}

	t := newTable("Kind", "Required", "Optional", "Aliases")
	for _, kind := range r.Kinds() {
		spec, _ := r.Lookup(kind)
		t.Row(kind, strings.Join(spec.Required(), ", "), strings.Join(spec.Optional(), ", "), strings.Join(aliases[kind], ", "))
	}
	return t.String()
}
