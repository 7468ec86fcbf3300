package cards

import (
	"strings"

	"github.com/desertthunder/playdeck/internal/models"
)

// Built-in discriminants.
const (
	KindVideo          = "video"
	KindCompanyCard    = "company-card"
	KindImageCard      = "image-card"
	KindLinkCard       = "link-card"
	KindSectionCard    = "section-card"
	KindSubSectionCard = "sub-section-card"
	KindInputCard      = "input-card"
)

// KindVideoComponent is the discriminant the CMS stores for videos attached by playlist creation.
const KindVideoComponent = "video-component"

func required(name string) FieldSpec { return FieldSpec{Name: name, Required: true} }

func optional(name string, def any) FieldSpec { return FieldSpec{Name: name, Default: def} }

// Builtins returns the specs for the component kinds the CMS ships with.
func Builtins() []Spec {
	return []Spec{
		{
			Kind: KindVideo,
			Fields: []FieldSpec{
				required("id"),
				optional("title", ""),
				optional("description", ""),
				optional("videoUrl", ""),
				optional("labelText", ""),
				optional("labelColor", DefaultLabelColor),
			},
			Normalize: normalizeVideo,
		},
		{
			Kind: KindCompanyCard,
			Fields: []FieldSpec{
				required("id"),
				optional("imageUrl", ""),
				optional("labelText", ""),
				optional("labelColor", DefaultLabelColor),
			},
			SkipWithoutMedia: true,
			Normalize:        normalizeCompanyCard,
		},
		{
			Kind: KindImageCard,
			Fields: []FieldSpec{
				required("id"),
				optional("title", ""),
				optional("imageUrl", ""),
				optional("description", ""),
				optional("labelText", ""),
				optional("labelColor", DefaultLabelColor),
			},
			Normalize: normalizeImageCard,
		},
		{
			Kind: KindLinkCard,
			Fields: []FieldSpec{
				required("id"),
				optional("title", ""),
				optional("description", ""),
				optional("imageUrl", ""),
				optional("ctaText", DefaultCTAText),
				optional("labelText", ""),
				optional("labelColor", DefaultLabelColor),
				optional("backgroundColor", ""),
				optional("textColor", ""),
			},
			Normalize: normalizeLinkCard,
		},
		{
			Kind: KindSectionCard,
			Fields: []FieldSpec{
				required("id"),
				optional("title", ""),
				optional("labelText", ""),
				optional("description", ""),
			},
			Normalize: normalizeSectionCard,
		},
		{
			Kind: KindSubSectionCard,
			Fields: []FieldSpec{
				required("id"),
				optional("title", ""),
				optional("number", 0),
			},
			Normalize: normalizeSubSectionCard,
		},
		{
			Kind: KindInputCard,
			Fields: []FieldSpec{
				required("id"),
				optional("title", ""),
				optional("description", ""),
				optional("labelText", ""),
				optional("labelColor", DefaultLabelColor),
				optional("fields", []Field{}),
			},
			Normalize: normalizeInputCard,
		},
	}
}

// DefaultRegistry returns a registry holding [Builtins] plus the video-component alias.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	for _, spec := range Builtins() {
		if err := r.Register(spec); err != nil {
			panic(err)
		}
	}
	if err := r.Alias(KindVideoComponent, KindVideo); err != nil {
		panic(err)
	}
	return r
}

func labelColor(rec *models.ComponentRecord) string {
	if c := strings.TrimSpace(rec.LabelColour); c != "" {
		return c
	}
	return DefaultLabelColor
}

func normalizeVideo(rec *models.ComponentRecord) Request {
	return Request{
		ID:          rec.ID,
		Kind:        KindVideo,
		Title:       rec.Title,
		Description: rec.Description,
		VideoURL:    rec.Video.ResolveURL(),
		LabelText:   rec.LabelText,
		LabelColor:  labelColor(rec),
	}
}

func normalizeCompanyCard(rec *models.ComponentRecord) Request {
	image := rec.ImageSource.ResolveURL()
	if image == "" {
		image = rec.Image.ResolveURL()
	}
	return Request{
		ID:         rec.ID,
		Kind:       KindCompanyCard,
		ImageURL:   image,
		LabelText:  rec.LabelText,
		LabelColor: labelColor(rec),
	}
}

func normalizeImageCard(rec *models.ComponentRecord) Request {
	return Request{
		ID:          rec.ID,
		Kind:        KindImageCard,
		Title:       rec.Title,
		Description: rec.Description,
		ImageURL:    rec.Image.ResolveURL(),
		LabelText:   rec.LabelText,
		LabelColor:  labelColor(rec),
	}
}

func normalizeLinkCard(rec *models.ComponentRecord) Request {
	cta := strings.TrimSpace(rec.CTAText)
	if cta == "" {
		cta = DefaultCTAText
	}
	return Request{
		ID:              rec.ID,
		Kind:            KindLinkCard,
		Title:           rec.Title,
		Description:     rec.Description,
		ImageURL:        rec.Image.ResolveURL(),
		CTAText:         cta,
		LabelText:       rec.LabelText,
		LabelColor:      labelColor(rec),
		BackgroundColor: rec.BackgroundColour,
		TextColor:       rec.TextColour,
	}
}

func normalizeSectionCard(rec *models.ComponentRecord) Request {
	return Request{
		ID:          rec.ID,
		Kind:        KindSectionCard,
		Title:       rec.Title,
		Description: rec.Description,
		LabelText:   rec.LabelText,
	}
}

func normalizeSubSectionCard(rec *models.ComponentRecord) Request {
	n := 0
	if rec.Number != nil {
		n = *rec.Number
	}
	return Request{
		ID:     rec.ID,
		Kind:   KindSubSectionCard,
		Title:  rec.Title,
		Number: n,
	}
}

func normalizeInputCard(rec *models.ComponentRecord) Request {
	fields := make([]Field, 0, len(rec.InputFields))
	for _, f := range rec.InputFields {
		typ := strings.TrimSpace(f.Type)
		if typ == "" {
			typ = DefaultFieldType
		}
		fields = append(fields, Field{
			Label:       f.Label,
			Type:        typ,
			Required:    f.IsRequired,
			Placeholder: f.Placeholder,
		})
	}
	return Request{
		ID:          rec.ID,
		Kind:        KindInputCard,
		Title:       rec.Title,
		Description: rec.Description,
		LabelText:   rec.LabelText,
		LabelColor:  labelColor(rec),
		Fields:      fields,
	}
}
