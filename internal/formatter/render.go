package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/desertthunder/playdeck/internal/cards"
	"github.com/desertthunder/playdeck/internal/shared"
)

const defaultCardWidth = 72

var (
	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#B77BF3")).
			Padding(0, 1)
	sectionStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("#B77BF3")).
			PaddingLeft(1)
	titleStyle    = lipgloss.NewStyle().Bold(true)
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#9CA3AF"))
	numberStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#B77BF3"))
	ctaStyle      = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	requiredStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444"))
	badgeStyle    = lipgloss.NewStyle().Bold(true).Padding(0, 1).Foreground(lipgloss.Color("#FFFFFF"))
	emptyStyle    = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#6B7280")).
			Padding(1, 2).
			Align(lipgloss.Center)
)

// Renderer draws cards for the terminal. Descriptions are rendered as Markdown.
type Renderer struct {
	width int
	md    *glamour.TermRenderer
}

// NewRenderer creates a renderer for cards width columns wide.
//
// style is a glamour standard style name ("dark", "light", "notty", ...); empty selects one from the terminal.
func NewRenderer(width int, style string) *Renderer {
	if width <= 0 {
		width = defaultCardWidth
	}

	opts := []glamour.TermRendererOption{glamour.WithWordWrap(max(width-6, 20))}
	if style == "" {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStandardStyle(style))
	}

	md, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		md = nil
	}
	return &Renderer{width: width, md: md}
}

// Width returns the card width.
func (r *Renderer) Width() int { return r.width }

func (r *Renderer) markdown(text string) string {
	text = strings.TrimSpace(text)
	if text == "" || r.md == nil {
		return text
	}
	out, err := r.md.Render(text)
	if err != nil {
		return text
	}
	return strings.Trim(out, "\n")
}

// Badge renders label text on its label colour.
func Badge(text, color string) string {
	if color == "" {
		color = cards.DefaultLabelColor
	}
	return badgeStyle.Background(lipgloss.Color(color)).Render(text)
}

// RenderCard draws one card.
func (r *Renderer) RenderCard(req cards.Request) string {
	var parts []string

	if req.LabelText != "" {
		parts = append(parts, Badge(req.LabelText, req.LabelColor))
	}

	switch req.Kind {
	case cards.KindSectionCard:
		body := []string{titleStyle.Render(req.Title)}
		if req.Description != "" {
			body = append(body, r.markdown(req.Description))
		}
		parts = append(parts, body...)
		return sectionStyle.Width(r.width).Render(strings.Join(parts, "\n"))

	case cards.KindSubSectionCard:
		line := numberStyle.Render(shared.PadNumber(req.Number)) + "  " + titleStyle.Render(req.Title)
		return sectionStyle.Width(r.width).Render(line)

	case cards.KindCompanyCard:
		parts = append(parts, mutedStyle.Render("image: "+req.ImageURL))

	case cards.KindVideo:
		parts = append(parts, titleStyle.Render(req.Title))
		if req.Description != "" {
			parts = append(parts, r.markdown(req.Description))
		}
		if req.VideoURL != "" {
			parts = append(parts, mutedStyle.Render("▶ "+req.VideoURL))
		}

	case cards.KindImageCard:
		parts = append(parts, titleStyle.Render(req.Title))
		if req.Description != "" {
			parts = append(parts, r.markdown(req.Description))
		}
		if req.ImageURL != "" {
			parts = append(parts, mutedStyle.Render("image: "+req.ImageURL))
		}

	case cards.KindLinkCard:
		parts = append(parts, titleStyle.Render(req.Title))
		if req.Description != "" {
			parts = append(parts, r.markdown(req.Description))
		}
		if req.ImageURL != "" {
			parts = append(parts, mutedStyle.Render("image: "+req.ImageURL))
		}
		cta := ctaStyle
		if req.BackgroundColor != "" {
			cta = cta.Background(lipgloss.Color(req.BackgroundColor))
		}
		if req.TextColor != "" {
			cta = cta.Foreground(lipgloss.Color(req.TextColor))
		}
		parts = append(parts, cta.Render(req.CTAText+" →"))

	case cards.KindInputCard:
		parts = append(parts, titleStyle.Render(req.Title))
		if req.Description != "" {
			parts = append(parts, r.markdown(req.Description))
		}
		for _, f := range req.Fields {
			label := f.Label
			if f.Required {
				label += requiredStyle.Render(" *")
			}
			line := fmt.Sprintf("%s [%s]", label, f.Type)
			if f.Placeholder != "" {
				line += " " + mutedStyle.Render(f.Placeholder)
			}
			parts = append(parts, line)
		}

	default:
		parts = append(parts, titleStyle.Render(Summary(req)))
		if req.Description != "" {
			parts = append(parts, r.markdown(req.Description))
		}
	}

	return cardStyle.Width(r.width).Render(strings.Join(parts, "\n"))
}

// RenderPlaceholder draws a named empty state.
func (r *Renderer) RenderPlaceholder(p cards.Placeholder) string {
	return emptyStyle.Width(r.width).Render(titleStyle.Render(p.Title) + "\n" + mutedStyle.Render(p.Hint))
}

// RenderSequence draws every card of seq in order, or its empty state.
func (r *Renderer) RenderSequence(seq cards.Sequence) string {
	if placeholder, ok := seq.Placeholder(); ok {
		return r.RenderPlaceholder(placeholder)
	}

	rendered := make([]string, len(seq.Items))
	for i, req := range seq.Items {
		rendered[i] = r.RenderCard(req)
	}
	return strings.Join(rendered, "\n")
}
