package render

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/progress"
	"charm.land/lipgloss/v2"
	"github.com/mattn/go-runewidth"

	"surveydeck/internal/deck"
)

// ProgressScale is the vote count drawn as a full bar.
const ProgressScale = 20

type ProgressView struct{}

// ProgressFraction maps a vote count onto the fixed scale, clamped to [0, 1].
func ProgressFraction(count int) float64 {
	f := float64(count) / ProgressScale
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

func (ProgressView) Render(s deck.Slide, ctx Context) string {
	w := ctx.width()
	labelW := labelWidth(s.Series)
	barW := min(48, max(10, w-labelW-14))

	rows := make([]string, 0, len(s.Series))
	for _, p := range s.Series {
		color := p.Color
		if color == "" {
			color = pieDefaultColor
		}
		opts := []progress.Option{
			progress.WithWidth(barW),
			progress.WithColors(lipgloss.Color(color)),
			progress.WithoutPercentage(),
		}
		if ctx.ASCII {
			opts = append(opts, progress.WithFillCharacters('#', '.'))
		}
		bar := progress.New(opts...)
		rows = append(rows, fmt.Sprintf("%s  %s  %s",
			runewidth.FillRight(p.Label, labelW), bar.ViewAs(ProgressFraction(p.Count)),
			ctx.Styles.Muted.Render(fmt.Sprintf("%d votes", p.Count))))
	}

	desc := ""
	if strings.TrimSpace(s.Description) != "" {
		desc = ctx.Styles.Muted.Italic(true).Render(wrap(s.Description, w))
	}
	return joinBlocks(heading(s, ctx), strings.Join(rows, "\n"), desc)
}
