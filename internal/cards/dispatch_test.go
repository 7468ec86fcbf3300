package cards

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/playdeck/internal/models"
	"github.com/google/go-cmp/cmp"
)

func newTestDispatcher() (*Dispatcher, *bytes.Buffer) {
	var buf bytes.Buffer
	return NewDispatcher(nil, log.NewWithOptions(&buf, log.Options{})), &buf
}

func diagnostics(buf *bytes.Buffer) int {
	return strings.Count(buf.String(), "skipping component")
}

func decode(t *testing.T, data string) *models.ComponentRecord {
	t.Helper()
	var rec models.ComponentRecord
	if err := json.Unmarshal([]byte(data), &rec); err != nil {
		t.Fatalf("failed to decode record: %v", err)
	}
	return &rec
}

func TestDispatch(t *testing.T) {
	t.Run("Minimal Records Get Defaults", func(t *testing.T) {
		tc := []struct {
			kind string
			want Request
		}{
			{KindVideo, Request{ID: "1", Kind: KindVideo, LabelColor: DefaultLabelColor}},
			{KindImageCard, Request{ID: "1", Kind: KindImageCard, LabelColor: DefaultLabelColor}},
			{KindLinkCard, Request{ID: "1", Kind: KindLinkCard, LabelColor: DefaultLabelColor, CTAText: DefaultCTAText}},
			{KindSectionCard, Request{ID: "1", Kind: KindSectionCard}},
			{KindSubSectionCard, Request{ID: "1", Kind: KindSubSectionCard, Number: 0}},
			{KindInputCard, Request{ID: "1", Kind: KindInputCard, LabelColor: DefaultLabelColor, Fields: []Field{}}},
		}

		for _, tt := range tc {
			t.Run(tt.kind, func(t *testing.T) {
				d, buf := newTestDispatcher()
				got, ok := d.Dispatch(&models.ComponentRecord{ID: "1", Component: "playlist-components." + tt.kind})
				if !ok {
					t.Fatalf("expected %s to render", tt.kind)
				}
				if diff := cmp.Diff(tt.want, got); diff != "" {
					t.Errorf("request mismatch (-want +got):\n%s", diff)
				}
				if diagnostics(buf) != 0 {
					t.Errorf("expected no diagnostics, got %q", buf.String())
				}
			})
		}
	})

	t.Run("Minimal Company Card Is Skipped", func(t *testing.T) {
		d, buf := newTestDispatcher()
		rec := &models.ComponentRecord{ID: "1", Component: "playlist-components.company-card"}
		if _, ok := d.Dispatch(rec); ok {
			t.Error("expected company card without media to be skipped")
		}
		if !errors.Is(d.Explain(rec), ErrMissingMedia) {
			t.Errorf("expected ErrMissingMedia, got %v", d.Explain(rec))
		}
		if diagnostics(buf) != 1 {
			t.Errorf("expected one diagnostic, got %d", diagnostics(buf))
		}
	})

	t.Run("Unknown Or Missing Discriminant", func(t *testing.T) {
		tc := []struct {
			name string
			rec  *models.ComponentRecord
			want error
		}{
			{"nil record", nil, ErrMissingRecord},
			{"no discriminant", &models.ComponentRecord{ID: "2", Title: "orphan"}, ErrMissingKind},
			{"blank discriminant", &models.ComponentRecord{ID: "2", Component: "   "}, ErrMissingKind},
			{"namespace only", &models.ComponentRecord{ID: "2", Component: "playlist-components."}, ErrMissingKind},
			{"unknown kind", &models.ComponentRecord{Component: "mystery-widget"}, ErrUnknownKind},
			{"unknown namespaced kind", &models.ComponentRecord{Component: "playlist-components.quiz"}, ErrUnknownKind},
		}

		for _, tt := range tc {
			t.Run(tt.name, func(t *testing.T) {
				d, buf := newTestDispatcher()
				got, ok := d.Dispatch(tt.rec)
				if ok {
					t.Fatalf("expected skip, got %+v", got)
				}
				if diagnostics(buf) != 1 {
					t.Errorf("expected exactly one diagnostic, got %d: %q", diagnostics(buf), buf.String())
				}
				if err := d.Explain(tt.rec); !errors.Is(err, tt.want) {
					t.Errorf("expected %v, got %v", tt.want, err)
				}
				if diagnostics(buf) != 1 {
					t.Error("Explain should not emit diagnostics")
				}
			})
		}
	})

	t.Run("Mystery Widget", func(t *testing.T) {
		d, buf := newTestDispatcher()
		if _, ok := d.Dispatch(decode(t, `{"__component":"mystery-widget"}`)); ok {
			t.Fatal("expected skip")
		}
		if diagnostics(buf) != 1 {
			t.Errorf("expected one diagnostic, got %d", diagnostics(buf))
		}
		if !strings.Contains(buf.String(), "mystery-widget") {
			t.Errorf("expected diagnostic to name the kind, got %q", buf.String())
		}
	})

	t.Run("Link Card Without Image Or CTA", func(t *testing.T) {
		d, _ := newTestDispatcher()
		got, ok := d.Dispatch(decode(t, `{"id":5,"__component":"playlist-components.link-card","title":"Resources"}`))
		if !ok {
			t.Fatal("expected link card to render")
		}
		want := Request{
			ID:         "5",
			Kind:       KindLinkCard,
			Title:      "Resources",
			CTAText:    "View More",
			LabelColor: DefaultLabelColor,
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("request mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("Company Card Media At Any Depth", func(t *testing.T) {
		tc := []struct {
			name string
			json string
			want string
		}{
			{"attributes", `{"id":1,"__component":"playlist-components.company-card","image_source":{"data":{"attributes":{"url":"https://cdn/deep.png"}}}}`, "https://cdn/deep.png"},
			{"data url", `{"id":1,"__component":"playlist-components.company-card","image_source":{"data":{"url":"https://cdn/data.png"}}}`, "https://cdn/data.png"},
			{"flat url", `{"id":1,"__component":"playlist-components.company-card","image_source":{"url":"https://cdn/flat.png"}}`, "https://cdn/flat.png"},
			{"deepest wins", `{"id":1,"__component":"playlist-components.company-card","image_source":{"url":"https://cdn/flat.png","data":{"attributes":{"url":"https://cdn/deep.png"}}}}`, "https://cdn/deep.png"},
			{"image fallback", `{"id":1,"__component":"playlist-components.company-card","image":{"data":{"attributes":{"url":"https://cdn/image.png"}}}}`, "https://cdn/image.png"},
		}

		for _, tt := range tc {
			t.Run(tt.name, func(t *testing.T) {
				d, _ := newTestDispatcher()
				got, ok := d.Dispatch(decode(t, tt.json))
				if !ok {
					t.Fatal("expected company card to render")
				}
				if got.ImageURL != tt.want {
					t.Errorf("ImageURL = %q, want %q", got.ImageURL, tt.want)
				}
			})
		}
	})

	t.Run("Company Card Without Resolvable Media", func(t *testing.T) {
		tc := []string{
			`{"id":1,"__component":"playlist-components.company-card"}`,
			`{"id":1,"__component":"playlist-components.company-card","image_source":null}`,
			`{"id":1,"__component":"playlist-components.company-card","image_source":{}}`,
			`{"id":1,"__component":"playlist-components.company-card","image_source":{"data":null}}`,
			`{"id":1,"__component":"playlist-components.company-card","image_source":{"data":{"attributes":null}}}`,
			`{"id":1,"__component":"playlist-components.company-card","image_source":{"data":{"attributes":{"url":""}}}}`,
			`{"id":1,"__component":"playlist-components.company-card","image_source":{"data":{"attributes":{"url":"   "}}}}`,
		}

		for _, data := range tc {
			d, _ := newTestDispatcher()
			if got, ok := d.Dispatch(decode(t, data)); ok {
				t.Errorf("expected skip for %s, got %+v", data, got)
			}
		}
	})

	t.Run("Other Kinds Render Without Media", func(t *testing.T) {
		d, _ := newTestDispatcher()
		for _, kind := range []string{KindVideo, KindImageCard, KindLinkCard} {
			rec := decode(t, `{"id":9,"__component":"playlist-components.`+kind+`","video":{"data":null},"image":{"data":{"attributes":null}}}`)
			if _, ok := d.Dispatch(rec); !ok {
				t.Errorf("expected %s to render without media", kind)
			}
		}
	})

	t.Run("Full Records", func(t *testing.T) {
		d, _ := newTestDispatcher()

		video, _ := d.Dispatch(decode(t, `{"id":2,"__component":"playlist-components.video","title":"Intro","description":"Welcome","label_text":"INTRO","label_colour":"#2196F3","video":{"data":{"attributes":{"url":"https://cdn/intro.mp4"}}}}`))
		wantVideo := Request{ID: "2", Kind: KindVideo, Title: "Intro", Description: "Welcome", LabelText: "INTRO", LabelColor: "#2196F3", VideoURL: "https://cdn/intro.mp4"}
		if diff := cmp.Diff(wantVideo, video); diff != "" {
			t.Errorf("video mismatch (-want +got):\n%s", diff)
		}

		sub, _ := d.Dispatch(decode(t, `{"id":6,"__component":"playlist-components.sub-section-card","title":"Step","number":3}`))
		if sub.Number != 3 || sub.Title != "Step" {
			t.Errorf("unexpected sub-section %+v", sub)
		}

		form, _ := d.Dispatch(decode(t, `{"id":4,"__component":"playlist-components.input-card","title":"User Information","input_fields":[{"label":"Full Name","is_required":true,"placeholder":"Enter your full name"},{"label":"Bio","type":"textarea"}]}`))
		wantFields := []Field{
			{Label: "Full Name", Type: "text", Required: true, Placeholder: "Enter your full name"},
			{Label: "Bio", Type: "textarea"},
		}
		if diff := cmp.Diff(wantFields, form.Fields); diff != "" {
			t.Errorf("fields mismatch (-want +got):\n%s", diff)
		}

		link, _ := d.Dispatch(decode(t, `{"id":5,"__component":"playlist-components.link-card","cta_text":"Learn More","background_colour":"#FFF3E0","text_colour":"#E65100"}`))
		if link.CTAText != "Learn More" || link.BackgroundColor != "#FFF3E0" || link.TextColor != "#E65100" {
			t.Errorf("unexpected link card %+v", link)
		}
	})

	t.Run("Video Component Alias", func(t *testing.T) {
		d, _ := newTestDispatcher()
		got, ok := d.Dispatch(decode(t, `{"id":11,"__component":"playlist-components.video-component","video":{"data":{"id":3,"attributes":{"url":"/uploads/a.mp4"}}}}`))
		if !ok {
			t.Fatal("expected video-component to render")
		}
		if got.Kind != KindVideo || got.VideoURL != "/uploads/a.mp4" {
			t.Errorf("unexpected request %+v", got)
		}
	})

	t.Run("Registered Kind Needs No Dispatcher Change", func(t *testing.T) {
		r := DefaultRegistry()
		err := r.Register(Spec{
			Kind:   "quote-card",
			Fields: []FieldSpec{required("id"), optional("title", "")},
			Normalize: func(rec *models.ComponentRecord) Request {
				return Request{Title: strings.ToUpper(rec.Title)}
			},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		d := NewDispatcher(r, nil)
		got, ok := d.Dispatch(&models.ComponentRecord{ID: "8", Component: "playlist-components.quote-card", Title: "hi"})
		if !ok {
			t.Fatal("expected new kind to render")
		}
		if got.ID != "8" || got.Kind != "quote-card" || got.Title != "HI" {
			t.Errorf("unexpected request %+v", got)
		}
	})
}
