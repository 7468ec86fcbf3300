package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// ID is an opaque record identifier. The CMS sends numbers; locally created records use strings.
type ID string

// String returns the identifier text.
func (id ID) String() string { return string(id) }

// IsZero reports whether the identifier is absent.
func (id ID) IsZero() bool { return strings.TrimSpace(string(id)) == "" }

// UnmarshalJSON accepts JSON numbers, strings, and null.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("id must be a number or string: %w", err)
	}
	*id = ID(n.String())
	return nil
}

// MarshalJSON writes integer identifiers as JSON numbers so the CMS receives the type it issued.
func (id ID) MarshalJSON() ([]byte, error) {
	if _, err := strconv.ParseInt(string(id), 10, 64); err == nil {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

// Playlist is a playlist entry as returned by GET /playlists.
type Playlist struct {
	ID         ID                 `json:"id"`
	Attributes PlaylistAttributes `json:"attributes"`
}

// PlaylistAttributes holds the playlist fields nested under "attributes".
type PlaylistAttributes struct {
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Components  Components `json:"Components"`
	CreatedAt   string     `json:"createdAt,omitempty"`
	UpdatedAt   string     `json:"updatedAt,omitempty"`
	PublishedAt string     `json:"publishedAt,omitempty"`
}

// Title returns the playlist title.
func (p Playlist) Title() string { return p.Attributes.Title }

// Video is an uploaded video file offered for playlist assembly.
type Video struct {
	ID          ID     `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Duration    string `json:"duration"`
	VideoURL    string `json:"videoUrl,omitempty"`
	Label       string `json:"label,omitempty"`
}

// Key returns the stable identity used when the video sits in an ordered list.
func (v Video) Key() string { return v.ID.String() }

// Created acknowledges a playlist created in the CMS.
type Created struct {
	ID         ID     `json:"id"`
	Title      string `json:"title"`
	Components int    `json:"components"`
}
