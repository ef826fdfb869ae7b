package ui

import (
	"image/color"

	"charm.land/lipgloss/v2"

	"surveydeck/internal/render"
)

type Theme struct {
	Header       lipgloss.Style
	Badge        lipgloss.Style
	Status       lipgloss.Style
	PanelBorder  lipgloss.Style
	PanelBody    lipgloss.Style
	OverlayTitle lipgloss.Style
	Eyebrow      lipgloss.Style
	Title        lipgloss.Style
	Subtitle     lipgloss.Style
	Accent       lipgloss.Style
	Control      lipgloss.Style
	Focused      lipgloss.Style
	Pitch        lipgloss.Style
	Pass         lipgloss.Style
	Fail         lipgloss.Style
	Pending      lipgloss.Style
	Muted        lipgloss.Style
	Card         lipgloss.Style
}

type palette struct {
	ink, slate, text, muted    color.Color
	accent, eyebrow, border    color.Color
	pass, fail, pending, pitch color.Color
	cardBorder                 lipgloss.Border
}

func ThemeForVariant(variant string) Theme {
	switch variant {
	case "cozy_clean":
		return themeFrom(palette{
			ink:        lipgloss.Color("#1E2430"),
			slate:      lipgloss.Color("#30394A"),
			text:       lipgloss.Color("#F4F6FA"),
			muted:      lipgloss.Color("#A3ACC2"),
			accent:     lipgloss.Color("#86B6F6"),
			eyebrow:    lipgloss.Color("#F2B872"),
			border:     lipgloss.Color("#4A5972"),
			pass:       lipgloss.Color("#80C4A3"),
			fail:       lipgloss.Color("#D17A86"),
			pending:    lipgloss.Color("#F2B872"),
			pitch:      lipgloss.Color("#5E9E7A"),
			cardBorder: lipgloss.RoundedBorder(),
		})
	case "retro_terminal":
		return themeFrom(palette{
			ink:        lipgloss.Color("#07150A"),
			slate:      lipgloss.Color("#12301A"),
			text:       lipgloss.Color("#C5F7C4"),
			muted:      lipgloss.Color("#73A17A"),
			accent:     lipgloss.Color("#9CF5A2"),
			eyebrow:    lipgloss.Color("#E5D47A"),
			border:     lipgloss.Color("#1F5C2F"),
			pass:       lipgloss.Color("#9CF5A2"),
			fail:       lipgloss.Color("#FF6B6B"),
			pending:    lipgloss.Color("#E5D47A"),
			pitch:      lipgloss.Color("#2E7D32"),
			cardBorder: lipgloss.DoubleBorder(),
		})
	default:
		return themeFrom(palette{
			ink:        lipgloss.Color("#0E1420"),
			slate:      lipgloss.Color("#1B2740"),
			text:       lipgloss.Color("#EAF2FF"),
			muted:      lipgloss.Color("#9CAAC6"),
			accent:     lipgloss.Color("#5EEBFF"),
			eyebrow:    lipgloss.Color("#EC4899"),
			border:     lipgloss.Color("#4B5F8A"),
			pass:       lipgloss.Color("#67F0A8"),
			fail:       lipgloss.Color("#FF6F91"),
			pending:    lipgloss.Color("#FFC857"),
			pitch:      lipgloss.Color("#22C55E"),
			cardBorder: lipgloss.RoundedBorder(),
		})
	}
}

func themeFrom(p palette) Theme {
	return Theme{
		Header:       lipgloss.NewStyle().Background(p.ink).Foreground(p.text).Padding(0, 1),
		Badge:        lipgloss.NewStyle().Background(p.eyebrow).Foreground(p.ink).Bold(true).Padding(0, 1),
		Status:       lipgloss.NewStyle().Background(p.slate).Foreground(p.text).Padding(0, 1),
		PanelBorder:  lipgloss.NewStyle().Foreground(p.border),
		PanelBody:    lipgloss.NewStyle().Foreground(p.text),
		OverlayTitle: lipgloss.NewStyle().Foreground(p.accent).Bold(true),
		Eyebrow:      lipgloss.NewStyle().Foreground(p.eyebrow).Bold(true),
		Title:        lipgloss.NewStyle().Foreground(p.text).Bold(true),
		Subtitle:     lipgloss.NewStyle().Foreground(p.muted),
		Accent:       lipgloss.NewStyle().Foreground(p.accent).Bold(true),
		Control:      lipgloss.NewStyle().Foreground(p.text),
		Focused:      lipgloss.NewStyle().Foreground(p.ink).Background(p.accent).Bold(true),
		Pitch:        lipgloss.NewStyle().Foreground(p.pitch),
		Pass:         lipgloss.NewStyle().Foreground(p.pass).Bold(true),
		Fail:         lipgloss.NewStyle().Foreground(p.fail).Bold(true),
		Pending:      lipgloss.NewStyle().Foreground(p.pending),
		Muted:        lipgloss.NewStyle().Foreground(p.muted),
		Card:         lipgloss.NewStyle().BorderStyle(p.cardBorder).BorderForeground(p.border).Padding(0, 1),
	}
}

// Slide maps the theme onto the styles slide views draw with.
func (t Theme) Slide() render.Styles {
	return render.Styles{
		Eyebrow:  t.Eyebrow,
		Title:    t.Title,
		Subtitle: t.Subtitle,
		Body:     t.PanelBody,
		Muted:    t.Muted,
		Accent:   t.Accent,
		Card:     t.Card,
		Warning:  t.Fail,
	}
}
