package render

import (
	"strconv"

	"charm.land/lipgloss/v2"

	"surveydeck/internal/deck"
)

// ComparisonView draws the head-to-head slide: two cards, a VS badge and the
// undecided count. Entries missing from the series render blank.
type ComparisonView struct{}

func (ComparisonView) Render(s deck.Slide, ctx Context) string {
	w := ctx.width()
	rules := s.Rules()
	left, right, undecided := deck.ComparisonEntries(s.Series, rules)

	cardW := min(30, max(16, (w-10)/2))
	l := comparisonCard(rules.Left, left, barColorEven, cardW, ctx)
	r := comparisonCard(rules.Right, right, barColorOdd, cardW, ctx)
	vs := lipgloss.NewStyle().Padding(0, 2).Render(ctx.Styles.Accent.Render("VS"))
	row := lipgloss.JoinHorizontal(lipgloss.Center, l, vs, r)

	footer := ctx.Styles.Muted.Render("Undecided: ") + ctx.Styles.Title.Render(CountText(undecided)) + ctx.Styles.Muted.Render(" students")
	return joinBlocks(heading(s, ctx), row, footer)
}

// CountText is the displayed count of an optional entry.
func CountText(p *deck.DataPoint) string {
	if p == nil {
		return ""
	}
	return strconv.Itoa(p.Count)
}

func comparisonCard(name string, p *deck.DataPoint, fallback string, width int, ctx Context) string {
	color := fallback
	if p != nil && p.Color != "" {
		color = p.Color
	}
	style := ctx.Styles.Card.
		Width(width).
		Align(lipgloss.Center).
		BorderForeground(lipgloss.Color(color))
	if ctx.ASCII {
		style = style.Border(lipgloss.ASCIIBorder())
	}
	body := lipgloss.JoinVertical(lipgloss.Center,
		ctx.Styles.Title.Render(name),
		"",
		lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Bold(true).Render(CountText(p)),
		ctx.Styles.Muted.Render("VOTES"),
	)
	return style.Render(body)
}
