package render

import (
	"strings"

	"charm.land/lipgloss/v2"

	"surveydeck/internal/deck"
)

type TitleView struct{}

func (TitleView) Render(s deck.Slide, ctx Context) string {
	w := ctx.width()
	lines := []string{}
	if s.Eyebrow != "" {
		lines = append(lines, ctx.Styles.Eyebrow.Render(strings.ToUpper(s.Eyebrow)), "")
	}
	lines = append(lines, ctx.Styles.Title.Render(wrap(s.Title, w)))
	if s.Subtitle != "" {
		lines = append(lines, "", ctx.Styles.Subtitle.Render(wrap(s.Subtitle, w)))
	}
	return lipgloss.PlaceHorizontal(w, lipgloss.Center, lipgloss.JoinVertical(lipgloss.Center, lines...))
}

type IntroductionView struct{}

func (IntroductionView) Render(s deck.Slide, ctx Context) string {
	var md strings.Builder
	for _, p := range s.Points {
		md.WriteString(p)
		md.WriteString("\n\n")
	}
	if s.Quote != "" {
		md.WriteString("> " + s.Quote + "\n")
	}
	intro := ""
	if strings.TrimSpace(md.String()) != "" {
		intro = markdown(md.String(), ctx)
	}
	desc := ""
	if s.Description != "" {
		desc = ctx.Styles.Muted.Render(wrap(s.Description, ctx.width()))
	}
	return joinBlocks(heading(s, ctx), desc, intro)
}

type ConclusionView struct{}

func (ConclusionView) Render(s deck.Slide, ctx Context) string {
	w := ctx.width()
	sub := ""
	if s.Subtitle != "" {
		sub = ctx.Styles.Subtitle.Render(s.Subtitle)
	}
	if len(s.Cards) == 0 {
		return joinBlocks(heading(s, ctx), sub)
	}

	perRow := 3
	if w < 90 {
		perRow = 1
	}
	cardW := max(20, (w-2*(perRow-1))/perRow)
	style := ctx.Styles.Card.Width(cardW)
	if ctx.ASCII {
		style = style.Border(lipgloss.ASCIIBorder())
	}

	var rows []string
	var row []string
	for _, c := range s.Cards {
		title := strings.TrimSpace(c.Icon + " " + c.Title)
		body := ctx.Styles.Accent.Render(title) + "\n" + ctx.Styles.Body.Render(wrap(c.Text, max(1, cardW-4)))
		row = append(row, style.Render(body))
		if len(row) == perRow {
			rows = append(rows, joinCards(row))
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, joinCards(row))
	}
	return joinBlocks(heading(s, ctx), sub, strings.Join(rows, "\n"))
}

func joinCards(cards []string) string {
	parts := make([]string, 0, 2*len(cards))
	for i, c := range cards {
		if i > 0 {
			parts = append(parts, "  ")
		}
		parts = append(parts, c)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

// FinalView is the static part of the closing slide. The penalty game and
// the surprise button are interactive and drawn by the UI below it.
type FinalView struct{}

func (FinalView) Render(s deck.Slide, ctx Context) string {
	w := ctx.width()
	trophy := "🏆"
	sep := " • "
	if ctx.ASCII {
		trophy = "\\_/"
		sep = " * "
	}
	lines := []string{
		trophy,
		"",
		ctx.Styles.Title.Render("Thank You!"),
		ctx.Styles.Subtitle.Render("Any Questions?"),
	}
	if len(ctx.Authors) > 0 {
		lines = append(lines,
			"",
			ctx.Styles.Muted.Render("PROJECT AUTHORS"),
			ctx.Styles.Body.Bold(true).Render(wrap(strings.Join(ctx.Authors, sep), w)),
		)
	}
	return lipgloss.PlaceHorizontal(w, lipgloss.Center, lipgloss.JoinVertical(lipgloss.Center, lines...))
}
