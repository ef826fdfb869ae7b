package render

import (
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/glamour"
	"github.com/muesli/reflow/wordwrap"

	"surveydeck/internal/deck"
)

// FallbackText is shown for any slide whose kind has no view.
const FallbackText = "Slide not found"

const defaultWidth = 80

// Renderer turns one slide record into a styled block of text.
type Renderer interface {
	Render(s deck.Slide, ctx Context) string
}

// Context carries what a view needs besides the slide record.
type Context struct {
	Width  int
	ASCII  bool
	Styles Styles
	// Markdown is optional. Without it narrative text is plain wrapped.
	Markdown *glamour.TermRenderer
	Authors  []string
}

type Styles struct {
	Eyebrow  lipgloss.Style
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Body     lipgloss.Style
	Muted    lipgloss.Style
	Accent   lipgloss.Style
	Card     lipgloss.Style
	Warning  lipgloss.Style
}

func DefaultStyles() Styles {
	return Styles{
		Eyebrow:  lipgloss.NewStyle().Foreground(lipgloss.Color("#EC4899")).Bold(true),
		Title:    lipgloss.NewStyle().Foreground(lipgloss.Color("#EAF2FF")).Bold(true),
		Subtitle: lipgloss.NewStyle().Foreground(lipgloss.Color("#9CAAC6")),
		Body:     lipgloss.NewStyle().Foreground(lipgloss.Color("#EAF2FF")),
		Muted:    lipgloss.NewStyle().Foreground(lipgloss.Color("#9CAAC6")),
		Accent:   lipgloss.NewStyle().Foreground(lipgloss.Color("#5EEBFF")).Bold(true),
		Card: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			Padding(0, 1),
		Warning: lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6F91")).Bold(true),
	}
}

// For returns the view for k. Kinds without a view get FallbackView.
func For(k deck.Kind) Renderer {
	switch k {
	case deck.KindTitle:
		return TitleView{}
	case deck.KindIntroduction:
		return IntroductionView{}
	case deck.KindBarChart:
		return ChartView{Shape: ShapeBar}
	case deck.KindPieChart:
		return ChartView{Shape: ShapePie}
	case deck.KindProgressBars:
		return ProgressView{}
	case deck.KindComparison:
		return ComparisonView{}
	case deck.KindConclusion:
		return ConclusionView{}
	case deck.KindFinal:
		return FinalView{}
	default:
		return FallbackView{}
	}
}

func Dispatch(s deck.Slide, ctx Context) string {
	return For(s.Kind).Render(s, ctx)
}

type FallbackView struct{}

func (FallbackView) Render(s deck.Slide, ctx Context) string {
	lines := []string{ctx.Styles.Warning.Render(FallbackText)}
	if s.RawKind != "" {
		lines = append(lines, ctx.Styles.Muted.Render("kind: "+s.RawKind))
	}
	return strings.Join(lines, "\n")
}

func (c Context) width() int {
	if c.Width < 20 {
		return defaultWidth
	}
	return c.Width
}

func heading(s deck.Slide, ctx Context) string {
	var lines []string
	if s.Eyebrow != "" {
		lines = append(lines, ctx.Styles.Eyebrow.Render(strings.ToUpper(s.Eyebrow)))
	}
	title := s.Question
	if strings.TrimSpace(title) == "" {
		title = s.Title
	}
	lines = append(lines, ctx.Styles.Title.Render(wrap(title, ctx.width())))
	return strings.Join(lines, "\n")
}

func wrap(text string, width int) string {
	return wordwrap.String(text, max(1, width))
}

// markdown renders md through glamour when available.
func markdown(md string, ctx Context) string {
	if ctx.Markdown != nil {
		if out, err := ctx.Markdown.Render(md); err == nil {
			return strings.Trim(out, "\n")
		}
	}
	plain := strings.ReplaceAll(md, "**", "")
	return ctx.Styles.Body.Render(wrap(plain, ctx.width()))
}

func joinBlocks(blocks ...string) string {
	out := make([]string, 0, len(blocks))
	for _, b := range blocks {
		if strings.TrimSpace(b) == "" {
			continue
		}
		out = append(out, b)
	}
	return strings.Join(out, "\n\n")
}
