package cards

import "github.com/desertthunder/playdeck/internal/models"

// DefaultLabelColor is used for label badges when a record carries no colour.
const DefaultLabelColor = "#4CAF50"

// DefaultCTAText is the call-to-action of a link card without one.
const DefaultCTAText = "View More"

// DefaultFieldType is the input type assigned to form fields.
const DefaultFieldType = "text"

// Request is the flattened, default-filled view of one component, ready for a renderer.
//
// Fields a kind does not declare stay at their zero value.
type Request struct {
	ID              models.ID `json:"id"`
	Kind            string    `json:"kind"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	LabelText       string    `json:"labelText,omitempty"`
	LabelColor      string    `json:"labelColor,omitempty"`
	VideoURL        string    `json:"videoUrl,omitempty"`
	ImageURL        string    `json:"imageUrl,omitempty"`
	CTAText         string    `json:"ctaText,omitempty"`
	BackgroundColor string    `json:"backgroundColor,omitempty"`
	TextColor       string    `json:"textColor,omitempty"`
	Number          int       `json:"number"`
	Fields          []Field   `json:"fields,omitempty"`
}

// Field is a normalized input-card form field.
type Field struct {
	Label       string `json:"label"`
	Type        string `json:"type"`
	Required    bool   `json:"required"`
	Placeholder string `json:"placeholder,omitempty"`
}

// Key returns the record id, the stable rendering key.
func (r Request) Key() string { return r.ID.String() }

// MediaURL returns the request's media reference, whichever kind of media it carries.
func (r Request) MediaURL() string {
	if r.ImageURL != "" {
		return r.ImageURL
	}
	return r.VideoURL
}
