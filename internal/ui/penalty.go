package ui

import (
	"fmt"
	"math"
	"strings"

	"charm.land/lipgloss/v2"

	"surveydeck/internal/penalty"
)

const (
	fieldCols   = 29
	fieldRows   = 7
	fieldCenter = fieldCols / 2
	postOffset  = 10
	trackWidth  = 25
	keeperRow   = 2
)

func (r *Root) renderPenaltyPanel() string {
	if r.engine == nil {
		return ""
	}
	st := r.engine.Snapshot()
	lines := []string{
		r.theme.OverlayTitle.Render("Penalty Kick Minigame"),
		"",
		r.renderField(st),
		"",
	}

	switch st.Phase {
	case penalty.PhaseIdle:
		lines = append(lines,
			r.renderSlider(ControlDirection, st.Direction, penalty.MinDirection, penalty.MaxDirection, "Left", "Center", "Right"),
			"",
			r.renderSlider(ControlPower, st.Power, penalty.MinPower, penalty.MaxPower, "Weak", "Perfect", "Too High"),
			"",
		)
	case penalty.PhaseShooting:
		lines = append(lines, r.theme.Pending.Render(strings.TrimSpace(r.shotSpin.View())+" Shooting..."), "")
	case penalty.PhaseScored:
		lines = append(lines, r.theme.Pass.Render("GOOOAL!"), "")
	case penalty.PhaseMissed:
		lines = append(lines, r.theme.Fail.Render("MISS!"), "")
	}
	lines = append(lines,
		r.controlText(ControlShoot),
		r.theme.Muted.Render(fmt.Sprintf("Goals %d / %d", st.Goals, st.Attempts)),
	)

	style := r.theme.Card.Width(fieldCols + 6)
	if r.ascii {
		style = style.Border(lipgloss.ASCIIBorder())
	}
	return style.Render(lipgloss.JoinVertical(lipgloss.Center, lines...))
}

// ballCell is where the ball sits for the given phase once its flight is
// complete.
func ballCell(st penalty.State) (row, col int) {
	switch st.Phase {
	case penalty.PhaseShooting, penalty.PhaseScored:
		return keeperRow, fieldCenter + st.Shot.Direction
	case penalty.PhaseMissed:
		return 0, fieldCenter + st.Shot.Direction*3/2
	}
	return fieldRows - 1, fieldCenter
}

func (r *Root) renderField(st penalty.State) string {
	crossbar, post, keeper, ball, turf := "━", "┃", "█", "●", "·"
	if r.ascii {
		crossbar, post, keeper, ball, turf = "=", "|", "K", "o", "."
	}

	grid := make([][]string, fieldRows)
	for y := range grid {
		grid[y] = make([]string, fieldCols)
		for x := range grid[y] {
			grid[y][x] = r.theme.Pitch.Render(turf)
		}
	}
	left, right := fieldCenter-postOffset, fieldCenter+postOffset
	for x := left; x <= right; x++ {
		grid[1][x] = r.theme.Title.Render(crossbar)
	}
	for y := 2; y <= 3; y++ {
		grid[y][left] = r.theme.Title.Render(post)
		grid[y][right] = r.theme.Title.Render(post)
	}

	keeperCol := fieldCenter
	if st.Phase != penalty.PhaseIdle {
		keeperCol += st.Keeper
	}
	grid[keeperRow][clampCol(keeperCol)] = r.theme.Fail.Render(keeper)

	endRow, endCol := ballCell(st)
	pos := min(1, max(0, r.ballPos))
	row := fieldRows - 1 - int(math.Round(pos*float64(fieldRows-1-endRow)))
	col := fieldCenter + int(math.Round(pos*float64(endCol-fieldCenter)))
	grid[row][clampCol(col)] = r.theme.Title.Render(ball)

	out := make([]string, fieldRows)
	for y := range grid {
		out[y] = strings.Join(grid[y], "")
	}
	return strings.Join(out, "\n")
}

func (r *Root) renderSlider(id string, value, lo, hi int, legend ...string) string {
	track, knob := "─", "●"
	if r.ascii {
		track, knob = "-", "O"
	}
	pos := (value - lo) * (trackWidth - 1) / max(1, hi-lo)
	bar := strings.Repeat(track, pos) + knob + strings.Repeat(track, trackWidth-1-pos)

	head := fmt.Sprintf("%s %4d", r.controlText(id), value)
	return lipgloss.JoinVertical(lipgloss.Left,
		head,
		r.theme.Accent.Render(bar),
		r.theme.Muted.Render(spreadLegend(legend, trackWidth)),
	)
}

// spreadLegend places the first label at the left edge, the last at the
// right edge and any others centered in between.
func spreadLegend(labels []string, width int) string {
	if len(labels) == 0 {
		return ""
	}
	if len(labels) == 1 {
		return lipgloss.PlaceHorizontal(width, lipgloss.Center, labels[0])
	}
	first, last := labels[0], labels[len(labels)-1]
	middle := strings.Join(labels[1:len(labels)-1], " ")
	inner := max(0, width-lipgloss.Width(first)-lipgloss.Width(last))
	return first + lipgloss.PlaceHorizontal(inner, lipgloss.Center, middle) + last
}

func (r *Root) renderSurprise() string {
	if !r.surpriseOpen {
		gift := "🎁"
		if r.ascii {
			gift = "[*]"
		}
		return lipgloss.JoinVertical(lipgloss.Center, gift, "", r.controlText(ControlSurprise))
	}
	face := "🤡"
	if r.ascii {
		face = ":o)"
	}
	body := lipgloss.JoinVertical(lipgloss.Center,
		face,
		"",
		r.theme.Badge.Render("Whoever reads this is a fool!"),
		r.theme.Muted.Render("(JAJAJAJ)"),
	)
	style := r.theme.Card
	if r.ascii {
		style = style.Border(lipgloss.ASCIIBorder())
	}
	return style.Render(body)
}

func clampCol(c int) int {
	return min(fieldCols-1, max(0, c))
}
