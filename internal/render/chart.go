package render

import (
	"fmt"
	"math"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/dustin/go-humanize"
	"github.com/mattn/go-runewidth"

	"surveydeck/internal/deck"
)

// ChartShape selects how ChartView draws a series.
type ChartShape int

const (
	ShapeBar ChartShape = iota
	ShapePie
)

const (
	barColorEven    = "#3b82f6"
	barColorOdd     = "#8b5cf6"
	pieDefaultColor = "#3b82f6"

	// Pie shares at or below this are left unlabelled.
	minLabelledShare = 0.05
)

// ChartView draws bar and pie slides. Both share the heading, the analysis
// text and the vote total; only the series drawing differs.
type ChartView struct {
	Shape ChartShape
}

func (v ChartView) Render(s deck.Slide, ctx Context) string {
	w := ctx.width()
	var chart string
	switch v.Shape {
	case ShapePie:
		chart = pieChart(s.Series, ctx, w)
	default:
		chart = barChart(s.Series, ctx, w)
	}
	analysis := ""
	if strings.TrimSpace(s.Description) != "" {
		analysis = ctx.Styles.Accent.Render("Analysis") + "\n" + ctx.Styles.Body.Render(wrap(s.Description, w))
	}
	return joinBlocks(heading(s, ctx), chart, analysis, TotalLine(s.Series, ctx))
}

// TotalLine is the "Total Votes" footer of a chart slide.
func TotalLine(series []deck.DataPoint, ctx Context) string {
	return ctx.Styles.Muted.Render("Total Votes ") + ctx.Styles.Accent.Render(humanize.Comma(int64(deck.TotalVotes(series))))
}

func chartColor(shape ChartShape, p deck.DataPoint, i int) string {
	if p.Color != "" {
		return p.Color
	}
	if shape == ShapePie {
		return pieDefaultColor
	}
	if i%2 == 0 {
		return barColorEven
	}
	return barColorOdd
}

func labelWidth(series []deck.DataPoint) int {
	w := 0
	for _, p := range series {
		w = max(w, runewidth.StringWidth(p.Label))
	}
	return w
}

func barChart(series []deck.DataPoint, ctx Context, width int) string {
	full := "█"
	if ctx.ASCII {
		full = "#"
	}
	labelW := labelWidth(series)
	peak := deck.MaxCount(series)
	countW := len(fmt.Sprint(peak))
	barW := max(4, width-labelW-countW-4)

	rows := make([]string, 0, len(series))
	for i, p := range series {
		n := 0
		if peak > 0 {
			n = int(math.Round(float64(p.Count) / float64(peak) * float64(barW)))
		}
		bar := lipgloss.NewStyle().Foreground(lipgloss.Color(chartColor(ShapeBar, p, i))).Render(strings.Repeat(full, n))
		rows = append(rows, fmt.Sprintf("%s  %s%s %*d",
			runewidth.FillRight(p.Label, labelW), bar, strings.Repeat(" ", barW-n), countW, p.Count))
	}
	return strings.Join(rows, "\n")
}

// Share is the fraction of the series total held by p, zero for an empty total.
func Share(p deck.DataPoint, series []deck.DataPoint) float64 {
	total := deck.TotalVotes(series)
	if total == 0 {
		return 0
	}
	return float64(p.Count) / float64(total)
}

// ShareLabel is the percentage printed next to a pie slice, blank for slices
// too small to label.
func ShareLabel(share float64) string {
	if share <= minLabelledShare {
		return ""
	}
	return fmt.Sprintf("%.0f%%", share*100)
}

func pieChart(series []deck.DataPoint, ctx Context, width int) string {
	block, dot := "█", "●"
	if ctx.ASCII {
		block, dot = "#", "o"
	}
	stripW := max(10, min(width, 60))

	var strip strings.Builder
	used := 0
	for i, p := range series {
		n := int(math.Round(Share(p, series) * float64(stripW)))
		if i == len(series)-1 {
			n = stripW - used
		}
		n = max(0, min(n, stripW-used))
		used += n
		strip.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(chartColor(ShapePie, p, i))).Render(strings.Repeat(block, n)))
	}

	labelW := labelWidth(series)
	legend := make([]string, 0, len(series))
	for i, p := range series {
		swatch := lipgloss.NewStyle().Foreground(lipgloss.Color(chartColor(ShapePie, p, i))).Render(dot)
		legend = append(legend, fmt.Sprintf("%s %s %3d  %4s",
			swatch, runewidth.FillRight(p.Label, labelW), p.Count, ShareLabel(Share(p, series))))
	}
	return strip.String() + "\n\n" + strings.Join(legend, "\n")
}
