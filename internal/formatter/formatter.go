// package formatter exports assembled playlist sequences to files (plain text, Markdown, CSV, JSON)
// and renders cards and tables for the terminal.
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/desertthunder/playdeck/internal/cards"
	"github.com/desertthunder/playdeck/internal/models"
	"github.com/desertthunder/playdeck/internal/shared"
)

// Format is an export file format.
type Format string

const (
	FormatText     Format = "txt"
	FormatMarkdown Format = "markdown"
	FormatCSV      Format = "csv"
	FormatJSON     Format = "json"
)

// Formats lists the supported export formats.
var Formats = []Format{FormatText, FormatMarkdown, FormatCSV, FormatJSON}

// ParseFormat maps a user-supplied name onto a [Format].
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "txt", "text", "":
		return FormatText, nil
	case "md", "markdown":
		return FormatMarkdown, nil
	case "csv":
		return FormatCSV, nil
	case "json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: unknown format %q", shared.ErrInvalidFlag, name)
	}
}

// Extension returns the file extension for f, including the dot.
func (f Format) Extension() string {
	switch f {
	case FormatMarkdown:
		return ".md"
	case FormatCSV:
		return ".csv"
	case FormatJSON:
		return ".json"
	default:
		return ".txt"
	}
}

// PlaylistInfo is the playlist metadata carried by an export.
type PlaylistInfo struct {
	ID          models.ID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	UpdatedAt   string    `json:"updatedAt,omitempty"`
}

// Export is an assembled playlist ready to be written out.
type Export struct {
	Playlist PlaylistInfo       `json:"playlist"`
	Items    []cards.Request    `json:"items"`
	Skipped  int                `json:"skipped"`
	Empty    *cards.Placeholder `json:"empty,omitempty"`
}

// NewExport pairs playlist metadata with its assembled sequence.
func NewExport(p models.Playlist, seq cards.Sequence) *Export {
	e := &Export{
		Playlist: PlaylistInfo{
			ID:          p.ID,
			Title:       p.Attributes.Title,
			Description: p.Attributes.Description,
			UpdatedAt:   p.Attributes.UpdatedAt,
		},
		Items:   seq.Items,
		Skipped: seq.Skipped,
	}
	if placeholder, ok := seq.Placeholder(); ok {
		e.Empty = &placeholder
	}
	return e
}

// Summary returns the one-line description of a card used by the text and CSV exports.
func Summary(req cards.Request) string {
	switch req.Kind {
	case cards.KindSubSectionCard:
		return strings.TrimSpace(shared.PadNumber(req.Number) + " " + req.Title)
	case cards.KindCompanyCard:
		if req.LabelText != "" {
			return req.LabelText
		}
		return "Company"
	default:
		if req.Title != "" {
			return req.Title
		}
		return "(untitled)"
	}
}

// ExportToText converts an export to plain text
func ExportToText(e *Export) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Playlist: %s\n", e.Playlist.Title))
	if e.Playlist.Description != "" {
		buf.WriteString(fmt.Sprintf("Description: %s\n", e.Playlist.Description))
	}
	buf.WriteString(fmt.Sprintf("Cards: %d\n\n", len(e.Items)))

	if e.Empty != nil {
		buf.WriteString(fmt.Sprintf("%s\n%s\n", e.Empty.Title, e.Empty.Hint))
		return buf.Bytes(), nil
	}

	for i, req := range e.Items {
		line := fmt.Sprintf("%d. [%s] %s", i+1, req.Kind, Summary(req))
		if req.LabelText != "" && req.Kind != cards.KindCompanyCard {
			line += fmt.Sprintf(" (%s)", req.LabelText)
		}
		buf.WriteString(line + "\n")

		if req.Description != "" {
			buf.WriteString(fmt.Sprintf("   %s\n", req.Description))
		}
		if url := req.MediaURL(); url != "" {
			buf.WriteString(fmt.Sprintf("   media: %s\n", url))
		}
		if req.Kind == cards.KindLinkCard {
			buf.WriteString(fmt.Sprintf("   cta: %s\n", req.CTAText))
		}
		for _, f := range req.Fields {
			buf.WriteString(fmt.Sprintf("   - %s\n", fieldLine(f)))
		}
	}

	return buf.Bytes(), nil
}

func fieldLine(f cards.Field) string {
	line := fmt.Sprintf("%s (%s)", f.Label, f.Type)
	if f.Required {
		line += " *"
	}
	if f.Placeholder != "" {
		line += ": " + f.Placeholder
	}
	return line
}

// ExportToMarkdown converts an export to Markdown with one section per card
func ExportToMarkdown(e *Export) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("# %s\n\n", e.Playlist.Title))

	if e.Playlist.Description != "" {
		buf.WriteString(fmt.Sprintf("%s\n\n", e.Playlist.Description))
	}

	buf.WriteString(fmt.Sprintf("**Cards**: %d\n\n", len(e.Items)))

	if e.Empty != nil {
		buf.WriteString(fmt.Sprintf("> **%s**\n>\n> %s\n", e.Empty.Title, e.Empty.Hint))
		return buf.Bytes(), nil
	}

	for i, req := range e.Items {
		buf.WriteString(CardMarkdown(i+1, req))
		buf.WriteString("\n")
	}

	return buf.Bytes(), nil
}

// CardMarkdown renders a single card as a level-two Markdown section.
func CardMarkdown(position int, req cards.Request) string {
	var b strings.Builder

	fmt.Fprintf(&b, "## %d. %s\n\n", position, Summary(req))

	meta := "`" + req.Kind + "`"
	if req.LabelText != "" {
		meta += " · " + req.LabelText
	}
	b.WriteString(meta + "\n\n")

	if req.Description != "" {
		b.WriteString(req.Description + "\n\n")
	}

	switch req.Kind {
	case cards.KindVideo:
		if req.VideoURL != "" {
			fmt.Fprintf(&b, "[Watch video](%s)\n\n", req.VideoURL)
		}
	case cards.KindLinkCard:
		if req.ImageURL != "" {
			fmt.Fprintf(&b, "![%s](%s)\n\n", req.Title, req.ImageURL)
		}
		fmt.Fprintf(&b, "**%s →**\n\n", req.CTAText)
	case cards.KindInputCard:
		for _, f := range req.Fields {
			fmt.Fprintf(&b, "- %s\n", fieldLine(f))
		}
		if len(req.Fields) > 0 {
			b.WriteString("\n")
		}
	default:
		if req.ImageURL != "" {
			fmt.Fprintf(&b, "![%s](%s)\n\n", Summary(req), req.ImageURL)
		}
	}

	return b.String()
}

// ExportToCSV converts an export to CSV with one row per card
func ExportToCSV(e *Export) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"Position", "ID", "Kind", "Title", "Description", "Label", "LabelColor", "Media", "CTA", "Number", "Fields"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for i, req := range e.Items {
		fields := make([]string, len(req.Fields))
		for j, f := range req.Fields {
			fields[j] = f.Label
		}

		number := ""
		if req.Kind == cards.KindSubSectionCard {
			number = shared.PadNumber(req.Number)
		}

		record := []string{
			strconv.Itoa(i + 1),
			req.ID.String(),
			req.Kind,
			req.Title,
			req.Description,
			req.LabelText,
			req.LabelColor,
			req.MediaURL(),
			req.CTAText,
			number,
			strings.Join(fields, "; "),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToJSON converts an export to indented JSON
func ExportToJSON(e *Export) ([]byte, error) {
	return shared.MarshalJSON(e, true)
}

// Render encodes e in the given format.
func Render(e *Export, f Format) ([]byte, error) {
	switch f {
	case FormatMarkdown:
		return ExportToMarkdown(e)
	case FormatCSV:
		return ExportToCSV(e)
	case FormatJSON:
		return ExportToJSON(e)
	case FormatText:
		return ExportToText(e)
	default:
		return nil, fmt.Errorf("%w: unknown format %q", shared.ErrInvalidFlag, f)
	}
}

// DefaultFilename returns {playlist id}_sequence{ext}.
func DefaultFilename(e *Export, f Format) string {
	return fmt.Sprintf("%s_sequence%s", e.Playlist.ID, f.Extension())
}

// WriteExport writes e to path in format f, creating parent directories.
//
// An empty path defaults to [DefaultFilename] in the working directory.
func WriteExport(e *Export, f Format, path string) (string, error) {
	if path == "" {
		path = DefaultFilename(e, f)
	}

	data, err := Render(e, f)
	if err != nil {
		return "", fmt.Errorf("failed to render %s export: %w", f, err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", fmt.Errorf("failed to create directory: %w", err)
		}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write export file: %w", err)
	}

	return path, nil
}

// WriteManifest writes v as indented JSON to path.
func WriteManifest(v any, path string) error {
	data, err := shared.MarshalJSON(v, true)
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	return nil
}
