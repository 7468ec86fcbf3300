package models

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// ComponentRecord is one entry of a playlist's Components array.
//
// The discriminant lives in Component (the CMS "__component" field); which of the remaining
// fields carry meaning depends on it.
type ComponentRecord struct {
	ID          ID     `json:"id"`
	Component   string `json:"__component"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	LabelText   string `json:"label_text,omitempty"`
	LabelColour string `json:"label_colour,omitempty"`

	Video       *MediaRef    `json:"video,omitempty"`
	Image       *MediaRef    `json:"image,omitempty"`
	ImageSource *MediaRef    `json:"image_source,omitempty"`
	InputFields []InputField `json:"input_fields,omitempty"`
	Number      *int         `json:"number,omitempty"`

	CTAText          string `json:"cta_text,omitempty"`
	BackgroundColour string `json:"background_colour,omitempty"`
	TextColour       string `json:"text_colour,omitempty"`
}

// Kind returns the discriminant without its namespace, e.g.
// "playlist-components.link-card" becomes "link-card".
func (c *ComponentRecord) Kind() string {
	if c == nil {
		return ""
	}
	kind := strings.TrimSpace(c.Component)
	if i := strings.LastIndex(kind, "."); i >= 0 {
		kind = kind[i+1:]
	}
	return strings.ToLower(kind)
}

// UnmarshalJSON decodes the record, tolerating a number sent as a string or of the wrong
// type. An unusable number is left unset instead of failing the whole record.
func (c *ComponentRecord) UnmarshalJSON(data []byte) error {
	type plain ComponentRecord
	aux := struct {
		*plain
		Number json.RawMessage `json:"number,omitempty"`
	}{plain: (*plain)(c)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	c.Number = lenientInt(aux.Number)
	return nil
}

// lenientInt reads a JSON number or numeric string, returning nil for anything else.
func lenientInt(data json.RawMessage) *int {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	text := string(data)
	if data[0] == '"' {
		if err := json.Unmarshal(data, &text); err != nil {
			return nil
		}
	}

	f, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	n := int(f)
	return &n
}

// InputField describes one field of an input-card form.
type InputField struct {
	Label       string `json:"label"`
	Type        string `json:"type,omitempty"`
	IsRequired  bool   `json:"is_required"`
	Placeholder string `json:"placeholder,omitempty"`
}

// MediaRef is a media relation. Depending on the CMS version and populate query the URL
// sits at url, data.url or data.attributes.url; any wrapper may be missing.
type MediaRef struct {
	URL  string     `json:"url,omitempty"`
	Data *MediaData `json:"data,omitempty"`
}

// MediaData is the "data" wrapper of a media relation.
type MediaData struct {
	ID         ID               `json:"id,omitempty"`
	URL        string           `json:"url,omitempty"`
	Attributes *MediaAttributes `json:"attributes,omitempty"`
}

// MediaAttributes carries the uploaded file metadata.
type MediaAttributes struct {
	URL             string  `json:"url"`
	Name            string  `json:"name,omitempty"`
	AlternativeText string  `json:"alternativeText,omitempty"`
	Caption         string  `json:"caption,omitempty"`
	Width           int     `json:"width,omitempty"`
	Height          int     `json:"height,omitempty"`
	Hash            string  `json:"hash,omitempty"`
	Ext             string  `json:"ext,omitempty"`
	Mime            string  `json:"mime,omitempty"`
	Size            float64 `json:"size,omitempty"`
}

// ResolveURL returns the deepest non-empty URL of the relation, or "" when none is set.
// Safe to call on a nil receiver.
func (m *MediaRef) ResolveURL() string {
	if m == nil {
		return ""
	}
	if m.Data != nil {
		if m.Data.Attributes != nil && strings.TrimSpace(m.Data.Attributes.URL) != "" {
			return m.Data.Attributes.URL
		}
		if strings.TrimSpace(m.Data.URL) != "" {
			return m.Data.URL
		}
	}
	if strings.TrimSpace(m.URL) != "" {
		return m.URL
	}
	return ""
}

// Components is a playlist's ordered component list.
//
// Entries that are null or fail to decode are kept as nil so the positions of their siblings
// are preserved and the failure stays local to one record.
type Components []*ComponentRecord

// UnmarshalJSON decodes each element independently. A value that is not an array decodes as an empty list.
func (c *Components) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*c = nil
		return nil
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		*c = nil
		return nil
	}

	out := make(Components, len(raw))
	for i, item := range raw {
		if bytes.Equal(bytes.TrimSpace(item), []byte("null")) {
			continue
		}
		var rec ComponentRecord
		if err := json.Unmarshal(item, &rec); err != nil {
			continue
		}
		out[i] = &rec
	}
	*c = out
	return nil
}
