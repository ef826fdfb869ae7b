package ui

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"
	"runtime/debug"
	"strings"
	"sync"
	"time"

	"charm.land/bubbles/v2/help"
	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/progress"
	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/harmonica"
	clog "github.com/charmbracelet/log"
	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"

	"surveydeck/internal/deck"
	"surveydeck/internal/input"
	"surveydeck/internal/nav"
	"surveydeck/internal/penalty"
	"surveydeck/internal/render"
)

var ErrNoSlides = errors.New("ui: deck has no slides")

type applyMsg struct {
	fn func(*Root)
}

type animateMsg time.Time

type hitBox struct {
	id     string
	y      int
	x0, x1 int
}

func (h hitBox) contains(x, y int) bool {
	return y == h.y && x >= h.x0 && x < h.x1
}

type Root struct {
	theme        Theme
	ascii        bool
	debug        bool
	ctrl         Controller
	styleVariant string
	motionLevel  string
	mouseScope   string

	mu      sync.Mutex
	program *tea.Program
	running bool

	layout LayoutMode
	cols   int
	rows   int

	deck       *deck.Deck
	kinds      []deck.Kind
	nav        *nav.Controller
	menu       *nav.Menu
	dispatcher *input.Dispatcher
	router     *input.Router
	focus      *input.FocusRing

	scheduler    penalty.Scheduler
	rng          *rand.Rand
	engine       *penalty.Engine
	surpriseOpen bool

	altScreen  bool
	fullscreen bool

	overviewCursor int
	overviewTop    int
	overviewLeft   int
	overviewRight  int
	overviewBottom int
	scroll         int
	overflow       bool
	statusFlash    string

	help      help.Model
	keymap    deckKeyMap
	deckBar   progress.Model
	shotSpin  spinner.Model
	markdown  *glamour.TermRenderer
	logger    *clog.Logger
	spring    harmonica.Spring
	ballPos   float64
	ballVel   float64
	animating bool

	hits []hitBox

	lastInputEvent string
}

type Options struct {
	Deck         *deck.Deck
	ASCIIOnly    bool
	Debug        bool
	StyleVariant string
	MotionLevel  string
	MouseScope   string
	StartSlide   int
	// Dispatcher is the process-wide key listener registry. Nil creates a
	// private one.
	Dispatcher *input.Dispatcher
	// Scheduler and Rand are handed to every penalty engine the view mounts.
	Scheduler penalty.Scheduler
	Rand      *rand.Rand
	LogOutput io.Writer
}

func New(opts Options) (*Root, error) {
	if opts.Deck == nil || opts.Deck.Len() == 0 {
		return nil, ErrNoSlides
	}
	ctrl, err := nav.NewController(opts.Deck.Len())
	if err != nil {
		return nil, err
	}

	out := opts.LogOutput
	if out == nil {
		out = os.Stderr
	}
	logger := clog.NewWithOptions(out, clog.Options{Prefix: "survey-deck-ui", Level: clog.WarnLevel})
	if opts.Debug {
		logger.SetLevel(clog.DebugLevel)
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(78),
	)
	if err != nil {
		logger.Warn("markdown renderer unavailable", "err", err)
		renderer = nil
	}

	h := help.New()
	h.Styles = help.DefaultDarkStyles()
	motionLevel := normalizeMotionLevel(opts.MotionLevel)
	mouseScope := normalizeMouseScope(opts.MouseScope)
	styleVariant := normalizeStyleVariant(opts.StyleVariant)
	theme := ThemeForVariant(styleVariant)
	spring := harmonica.NewSpring(harmonica.FPS(60), 10.0, 0.8)
	switch motionLevel {
	case "reduced":
		spring = harmonica.NewSpring(harmonica.FPS(30), 9.0, 0.92)
	case "off":
		spring = harmonica.NewSpring(harmonica.FPS(60), 1000.0, 1.0)
	}
	deckBar := progress.New(
		progress.WithWidth(20),
		progress.WithColors(lipgloss.Color("#3B82F6"), lipgloss.Color("#8B5CF6"), lipgloss.Color("#EC4899")),
		progress.WithScaled(true),
		progress.WithoutPercentage(),
	)
	if opts.ASCIIOnly {
		deckBar = progress.New(progress.WithWidth(20), progress.WithFillCharacters('#', '.'), progress.WithoutPercentage())
	}
	shotSpin := spinner.New(
		spinner.WithSpinner(spinner.MiniDot),
		spinner.WithStyle(theme.Pending),
	)
	dispatcher := opts.Dispatcher
	if dispatcher == nil {
		dispatcher = input.NewDispatcher()
	}
	scheduler := opts.Scheduler
	if scheduler == nil {
		scheduler = penalty.ClockScheduler{}
	}

	r := &Root{
		theme:        theme,
		ascii:        opts.ASCIIOnly,
		debug:        opts.Debug,
		styleVariant: styleVariant,
		motionLevel:  motionLevel,
		mouseScope:   mouseScope,
		layout:       LayoutWide,
		cols:         120,
		rows:         36,
		deck:         opts.Deck,
		nav:          ctrl,
		menu:         nav.NewMenu(ctrl, opts.Deck),
		dispatcher:   dispatcher,
		focus:        input.NewFocusRing(),
		scheduler:    scheduler,
		rng:          opts.Rand,
		help:         h,
		keymap:       newDeckKeyMap(),
		deckBar:      deckBar,
		shotSpin:     shotSpin,
		markdown:     renderer,
		logger:       logger,
		spring:       spring,
	}
	for _, s := range opts.Deck.Slides() {
		r.kinds = append(r.kinds, s.Kind)
	}
	r.router = input.NewRouter(ctrl, r.focus)
	ctrl.OnChange(r.onSlideChange)
	if opts.StartSlide != 0 && !ctrl.Jump(opts.StartSlide) {
		logger.Warn("start slide out of range", "slide", opts.StartSlide, "slides", ctrl.Len())
	}
	if r.isFinal(ctrl.Index()) && r.engine == nil {
		r.mountFinal()
	}
	r.syncControls()
	return r, nil
}

func (r *Root) Init() tea.Cmd {
	return spinnerTickCmd(r.shotSpin)
}

func (r *Root) Update(msg tea.Msg) (model tea.Model, cmd tea.Cmd) {
	defer func() {
		if rec := recover(); rec != nil {
			r.onModelPanic("update", rec, msg)
			model = r
			cmd = nil
		}
	}()

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		r.cols = msg.Width
		r.rows = msg.Height
		r.layout = DetermineLayoutMode(r.cols, r.rows)
		r.help.SetWidth(max(1, r.cols-2))
		return r, nil
	case applyMsg:
		if msg.fn != nil {
			msg.fn(r)
		}
		return r, r.animateIfNeeded()
	case animateMsg:
		target := r.ballTarget()
		r.ballPos, r.ballVel = r.spring.Update(r.ballPos, r.ballVel, target)
		if r.shouldAnimate(target) {
			return r, animateTickCmd()
		}
		r.ballPos = target
		r.ballVel = 0
		r.animating = false
		return r, nil
	case spinner.TickMsg:
		var cmd tea.Cmd
		r.shotSpin, cmd = r.shotSpin.Update(msg)
		return r, cmd
	case tea.MouseClickMsg:
		return r.handleMouseClick(msg)
	case tea.MouseWheelMsg:
		return r.handleMouseWheel(msg)
	case tea.KeyPressMsg:
		return r.handleKey(msg)
	}
	return r, nil
}

func (r *Root) View() (view tea.View) {
	defer func() {
		if rec := recover(); rec != nil {
			r.onModelPanic("view", rec, nil)
			width := max(1, r.cols)
			msg := "UI recovered from a rendering panic. Check logs."
			view = tea.NewView(r.theme.Fail.Width(width).Render(trimForWidth(msg, max(1, width-1))))
		}
	}()

	v := tea.NewView(r.render())
	v.AltScreen = r.altScreen
	v.MouseMode = r.currentMouseMode()
	return v
}

func (r *Root) render() string {
	if r.cols < 1 {
		r.cols = 120
	}
	if r.rows < 1 {
		r.rows = 36
	}
	r.layout = DetermineLayoutMode(r.cols, r.rows)
	if r.layout == LayoutTooSmall {
		r.hits = r.hits[:0]
		msg := []string{
			"Terminal too small",
			fmt.Sprintf("Current: %dx%d", r.cols, r.rows),
			fmt.Sprintf("Minimum: %dx%d", minCols, minRows),
			"Resize the terminal to continue.",
		}
		panel := r.drawPanel("Resize Required", msg, min(50, r.cols), min(8, r.rows))
		return lipgloss.Place(r.cols, r.rows, lipgloss.Center, lipgloss.Center, panel)
	}

	base := r.renderDeck()
	if r.menu.IsOpen() {
		r.hits = r.hits[:0]
		return composeOverlay(base, r.renderOverview(), r.cols, r.rows)
	}
	r.locateControls(base)
	return base
}

func (r *Root) Run() error {
	r.mu.Lock()
	if r.running {
		r.mu.Unlock()
		return nil
	}
	p := tea.NewProgram(r)
	r.program = p
	r.running = true
	r.mu.Unlock()

	r.router.Mount(r.dispatcher)
	defer r.router.Unmount()

	_, err := p.Run()

	r.mu.Lock()
	r.program = nil
	r.running = false
	r.mu.Unlock()
	return err
}

func (r *Root) Stop() {
	r.mu.Lock()
	p := r.program
	r.mu.Unlock()
	if p != nil {
		p.Quit()
	}
}

func (r *Root) Running() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.running && r.program != nil
}

func (r *Root) SetController(c Controller) {
	r.ctrl = c
}

// SetFullscreen mirrors the fullscreen state reported by the capability.
func (r *Root) SetFullscreen(active bool) {
	r.apply(func(m *Root) {
		m.fullscreen = active
	})
}

// SetAltScreen switches the alternate screen and reports the adopted mode
// once the model holds it.
func (r *Root) SetAltScreen(on bool, applied func(bool)) {
	r.apply(func(m *Root) {
		m.altScreen = on
		if applied != nil {
			applied(on)
		}
	})
}

func (r *Root) FlashStatus(msg string) {
	r.apply(func(m *Root) {
		m.statusFlash = msg
	})
}

// Penalty returns the engine of the mounted closing slide, or nil.
func (r *Root) Penalty() *penalty.Engine {
	return r.engine
}

// Navigator exposes the slide controller to scenario setup.
func (r *Root) Navigator() *nav.Controller {
	return r.nav
}

func (r *Root) OpenOverview() {
	r.apply(func(m *Root) { m.openOverview() })
}

func (r *Root) OpenSurprise() {
	r.apply(func(m *Root) { m.activate(ControlSurprise) })
}

func (r *Root) FocusControl(id string) {
	r.apply(func(m *Root) { m.focus.Focus(id) })
}

func (r *Root) apply(fn func(*Root)) {
	if fn == nil {
		return
	}
	r.mu.Lock()
	p := r.program
	running := r.running
	if !running || p == nil {
		fn(r)
		r.mu.Unlock()
		return
	}
	r.mu.Unlock()
	p.Send(applyMsg{fn: fn})
}

func (r *Root) dispatchController(fn func(Controller)) {
	if fn == nil || r.ctrl == nil {
		return
	}
	ctrl := r.ctrl
	go fn(ctrl)
}

func (r *Root) isFinal(i int) bool {
	return i >= 0 && i < len(r.kinds) && r.kinds[i] == deck.KindFinal
}

func (r *Root) onSlideChange(from, to int) {
	r.scroll = 0
	r.statusFlash = ""
	switch {
	case r.isFinal(to) && (!r.isFinal(from) || r.engine == nil):
		r.mountFinal()
	case !r.isFinal(to):
		r.engine = nil
		r.surpriseOpen = false
	}
	r.syncControls()
	r.dispatchController(func(c Controller) { c.OnSlideChanged(from, to) })
}

// mountFinal starts a fresh penalty game for a new visit to the closing slide.
func (r *Root) mountFinal() {
	r.surpriseOpen = false
	r.ballPos, r.ballVel = 0, 0
	var eng *penalty.Engine
	eng = penalty.New(penalty.Options{
		Scheduler: r.scheduler,
		Rand:      r.rng,
		OnResolve: func(st penalty.State) {
			r.apply(func(m *Root) { m.onShotResolved(eng, st) })
		},
	})
	r.engine = eng
}

func (r *Root) onShotResolved(eng *penalty.Engine, st penalty.State) {
	if r.engine != eng {
		return
	}
	switch st.Phase {
	case penalty.PhaseScored:
		r.statusFlash = "GOOOAL!"
	case penalty.PhaseMissed:
		r.statusFlash = "MISS!"
	}
	r.syncControls()
	r.dispatchController(func(c Controller) { c.OnShotResolved(st) })
}

func (r *Root) syncControls() {
	var controls []input.Control
	if r.engine != nil {
		if r.engine.Phase() == penalty.PhaseIdle {
			controls = append(controls,
				input.Control{ID: ControlDirection, Kind: input.FocusSlider},
				input.Control{ID: ControlPower, Kind: input.FocusSlider},
			)
		}
		controls = append(controls, input.Control{ID: ControlShoot, Kind: input.FocusButton})
		if !r.surpriseOpen {
			controls = append(controls, input.Control{ID: ControlSurprise, Kind: input.FocusButton})
		}
	}
	controls = append(controls,
		input.Control{ID: ControlPrev, Kind: input.FocusButton},
		input.Control{ID: ControlNext, Kind: input.FocusButton},
		input.Control{ID: ControlMap, Kind: input.FocusButton},
		input.Control{ID: ControlFull, Kind: input.FocusButton},
	)
	r.focus.SetControls(controls)
}

func (r *Root) activate(id string) {
	switch id {
	case ControlPrev:
		r.nav.Previous()
	case ControlNext:
		r.nav.Next()
	case ControlMap:
		r.openOverview()
	case ControlFull:
		r.toggleFullscreen()
	case ControlShoot:
		if r.engine == nil {
			return
		}
		r.engine.Shoot()
		r.statusFlash = ""
		r.syncControls()
	case ControlSurprise:
		if r.engine == nil {
			return
		}
		r.surpriseOpen = true
		r.syncControls()
	}
}

func (r *Root) openOverview() {
	r.menu.Open()
	r.overviewCursor = r.nav.Index()
}

func (r *Root) toggleFullscreen() {
	active := r.fullscreen
	r.dispatchController(func(c Controller) { c.OnToggleFullscreen(active) })
}

func (r *Root) adjustSlider(id string, delta int) {
	if r.engine == nil {
		return
	}
	switch id {
	case ControlDirection:
		r.engine.NudgeDirection(delta)
	case ControlPower:
		r.engine.NudgePower(delta)
	}
}

func (r *Root) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	name := msg.String()
	r.recordInputEvent(fmt.Sprintf("key:%s", name))

	if key.Matches(msg, r.keymap.Quit) {
		r.dispatchController(func(c Controller) { c.OnQuit() })
		return r, nil
	}
	if r.menu.IsOpen() {
		return r.handleOverviewKey(name)
	}

	switch {
	case key.Matches(msg, r.keymap.Help):
		r.help.ShowAll = !r.help.ShowAll
		return r, nil
	case key.Matches(msg, r.keymap.Overview):
		r.openOverview()
		return r, nil
	case key.Matches(msg, r.keymap.Fullscreen):
		r.toggleFullscreen()
		return r, nil
	case key.Matches(msg, r.keymap.Clear):
		r.focus.Clear()
		return r, nil
	case name == "tab":
		r.focus.Next()
		return r, nil
	case name == "shift+tab":
		r.focus.Prev()
		return r, nil
	}

	if r.focus.Focused() == input.FocusSlider {
		if delta, ok := sliderStep(name); ok {
			r.adjustSlider(r.focus.FocusedID(), delta)
			return r, nil
		}
	}

	ev := input.NewKeyEvent(name)
	r.dispatcher.Dispatch(ev)

	if r.focus.Focused() == input.FocusButton && (name == input.KeySpace || name == input.KeyEnter) {
		r.activate(r.focus.FocusedID())
		return r, r.animateIfNeeded()
	}

	switch name {
	case input.KeySpace:
		if !ev.DefaultPrevented() {
			r.scrollBy(r.pageSize())
		}
	case "pgdown":
		r.scrollBy(r.pageSize())
	case "pgup":
		r.scrollBy(-r.pageSize())
	case "down":
		r.scrollBy(1)
	case "up":
		r.scrollBy(-1)
	}
	return r, nil
}

func (r *Root) handleOverviewKey(name string) (tea.Model, tea.Cmd) {
	n := r.nav.Len()
	switch name {
	case "esc", "m":
		r.menu.Close()
	case "up", "k", "shift+tab":
		r.overviewCursor = wrapIndex(r.overviewCursor-1, n)
	case "down", "j", "tab":
		r.overviewCursor = wrapIndex(r.overviewCursor+1, n)
	case input.KeyEnter, input.KeySpace:
		r.menu.SelectSlide(r.overviewCursor)
	default:
		if len(name) == 1 && name[0] >= '1' && name[0] <= '9' {
			r.menu.SelectSlide(int(name[0] - '1'))
		}
	}
	return r, r.animateIfNeeded()
}

func (r *Root) handleMouseClick(msg tea.MouseClickMsg) (tea.Model, tea.Cmd) {
	m := msg.Mouse()
	r.recordInputEvent(fmt.Sprintf("mouse_click:%d,%d button:%v", m.X, m.Y, m.Button))

	if r.mouseScope == "off" || m.Button != tea.MouseLeft {
		return r, nil
	}
	if r.menu.IsOpen() {
		return r.handleOverviewClick(m.X, m.Y)
	}
	for _, h := range r.hits {
		if !h.contains(m.X, m.Y) {
			continue
		}
		r.focus.Focus(h.id)
		r.activate(h.id)
		return r, r.animateIfNeeded()
	}
	return r, nil
}

func (r *Root) handleOverviewClick(x, y int) (tea.Model, tea.Cmd) {
	if x < r.overviewLeft || x >= r.overviewRight || y < r.overviewTop-3 || y >= r.overviewBottom {
		r.menu.Close()
		return r, nil
	}
	idx := y - r.overviewTop
	if idx >= 0 && idx < r.nav.Len() {
		r.menu.SelectSlide(idx)
	}
	return r, r.animateIfNeeded()
}

func (r *Root) handleMouseWheel(msg tea.MouseWheelMsg) (tea.Model, tea.Cmd) {
	m := msg.Mouse()
	if r.mouseScope != "full" || r.menu.IsOpen() {
		return r, nil
	}
	switch m.Button {
	case tea.MouseWheelUp:
		r.scrollBy(-3)
	case tea.MouseWheelDown:
		r.scrollBy(3)
	}
	return r, nil
}

func (r *Root) scrollBy(delta int) {
	r.scroll = max(0, r.scroll+delta)
}

func (r *Root) pageSize() int {
	return max(1, r.rows-6)
}

func (r *Root) renderDeck() string {
	header := r.headerText()
	footer := r.footerText()
	bodyH := max(3, r.rows-1-lipgloss.Height(footer))
	return header + "\n" + r.renderBody(bodyH) + "\n" + footer
}

func (r *Root) renderBody(height int) string {
	slide, _ := r.deck.At(r.nav.Index())
	width := min(max(20, r.cols-4), 110)
	ctx := render.Context{
		Width:    width,
		ASCII:    r.ascii,
		Styles:   r.theme.Slide(),
		Markdown: r.markdown,
		Authors:  r.deck.Authors(),
	}
	content := render.Dispatch(slide, ctx)
	if r.engine != nil {
		games := []string{r.renderPenaltyPanel(), r.renderSurprise()}
		var row string
		if r.layout == LayoutWide {
			row = lipgloss.JoinHorizontal(lipgloss.Center, games[0], "      ", games[1])
		} else {
			row = lipgloss.JoinVertical(lipgloss.Center, games[0], "", games[1])
		}
		content = lipgloss.JoinVertical(lipgloss.Center, content, "", row)
	}

	lines := strings.Split(content, "\n")
	maxScroll := max(0, len(lines)-height)
	r.scroll = min(r.scroll, maxScroll)
	r.overflow = r.scroll < maxScroll
	visible := lines[r.scroll:min(len(lines), r.scroll+height)]
	return lipgloss.Place(r.cols, height, lipgloss.Center, lipgloss.Center, strings.Join(visible, "\n"))
}

func (r *Root) headerText() string {
	badge := ""
	if b := strings.TrimSpace(r.deck.Badge()); b != "" {
		badge = r.theme.Badge.Render(b)
	}
	width := max(1, r.cols-lipgloss.Width(badge))
	txt := fmt.Sprintf("%s | Slide %d / %d", r.deck.Title(), r.nav.Index()+1, r.nav.Len())
	if r.fullscreen {
		txt += " | fullscreen"
	}
	if r.debug {
		txt = fmt.Sprintf("%s | %dx%d %v", txt, r.cols, r.rows, r.layout)
	}
	txt = trimForWidth(txt, max(1, width-2))
	return badge + r.theme.Header.Width(width).Render(txt)
}

func (r *Root) footerText() string {
	controls := strings.Join([]string{
		r.controlText(ControlPrev),
		r.controlText(ControlNext),
		r.controlText(ControlMap),
		r.controlText(ControlFull),
	}, " ")
	bar := r.deckBar
	bar.SetWidth(min(24, max(8, r.cols/5)))
	counter := fmt.Sprintf("%d/%d", r.nav.Index()+1, r.nav.Len())
	line := controls + "   " + bar.ViewAs(r.nav.Progress()) + " " + r.theme.Muted.Render(counter)

	status := r.help.View(r.keymap)
	if r.engine != nil && r.engine.Phase() == penalty.PhaseShooting {
		status = strings.TrimSpace(r.shotSpin.View()) + " Shooting... | " + status
	}
	if r.statusFlash != "" {
		status = r.statusFlash + " | " + status
	}
	if r.overflow {
		status = "PgDn: more | " + status
	}
	var statusLines []string
	for _, l := range strings.Split(status, "\n") {
		statusLines = append(statusLines, r.theme.Status.Width(max(1, r.cols)).Render(trimForWidth(l, max(1, r.cols-2))))
	}
	return " " + line + "\n" + strings.Join(statusLines, "\n")
}

func (r *Root) controlLabel(id string) string {
	switch id {
	case ControlPrev:
		if r.ascii {
			return "[< Prev]"
		}
		return "[◀ Prev]"
	case ControlNext:
		if r.ascii {
			return "[Next >]"
		}
		return "[Next ▶]"
	case ControlMap:
		return "[Map]"
	case ControlFull:
		if r.fullscreen {
			return "[Exit Full]"
		}
		return "[Full]"
	case ControlDirection:
		return "Direction"
	case ControlPower:
		return "Power"
	case ControlShoot:
		if r.engine != nil && r.engine.Phase() != penalty.PhaseIdle {
			return "[Reset Game]"
		}
		return "[SHOOT!]"
	case ControlSurprise:
		return "[OPEN SURPRISE]"
	}
	return id
}

func (r *Root) controlStyle(id string) lipgloss.Style {
	if r.focus.FocusedID() == id {
		return r.theme.Focused
	}
	if r.controlDisabled(id) {
		return r.theme.Muted
	}
	return r.theme.Control
}

// controlDisabled reports whether a navigation button has nowhere to go.
func (r *Root) controlDisabled(id string) bool {
	switch id {
	case ControlPrev:
		return r.nav.AtStart()
	case ControlNext:
		return r.nav.AtEnd()
	}
	return false
}

func (r *Root) controlText(id string) string {
	return r.controlStyle(id).Render(r.controlLabel(id))
}

// locateControls records where each focusable control landed on screen so
// clicks can be matched to it.
func (r *Root) locateControls(screen string) {
	r.hits = r.hits[:0]
	lines := strings.Split(ansi.Strip(screen), "\n")
	for _, c := range r.focus.Controls() {
		label := r.controlLabel(c.ID)
		for y := len(lines) - 1; y >= 0; y-- {
			idx := strings.Index(lines[y], label)
			if idx < 0 {
				continue
			}
			x := runewidth.StringWidth(lines[y][:idx])
			r.hits = append(r.hits, hitBox{id: c.ID, y: y, x0: x, x1: x + runewidth.StringWidth(label)})
			break
		}
	}
}

func (r *Root) renderOverview() string {
	entries := r.menu.Entries()
	lines := []string{"Jump to a slide (1-9, Enter, Esc)", ""}
	for i, e := range entries {
		cursor := "  "
		if i == r.overviewCursor {
			cursor = "> "
		}
		mark := " "
		if e.Current {
			mark = "*"
		}
		lines = append(lines, fmt.Sprintf("%s%s%2d. %s - %s", cursor, mark, e.Index+1, e.Title, e.Teaser))
	}
	w := min(max(56, r.cols-12), r.cols)
	h := min(len(lines)+2, r.rows)
	startRow := (r.rows - h) / 2
	startCol := (r.cols - w) / 2
	r.overviewTop = startRow + 1 + 2
	r.overviewLeft = startCol
	r.overviewRight = startCol + w
	r.overviewBottom = startRow + h
	return r.drawPanel("Slide Overview", lines, w, h)
}

func (r *Root) drawPanel(title string, lines []string, width, height int) string {
	width = max(4, width)
	height = max(3, height)
	innerW := width - 2
	innerH := height - 2

	h, v := "─", "│"
	tl, tr, bl, br := "┌", "┐", "└", "┘"
	if r.ascii {
		h, v = "-", "|"
		tl, tr, bl, br = "+", "+", "+", "+"
	}

	top := tl + strings.Repeat(h, innerW) + tr
	if title != "" && innerW > 2 {
		t := trimForWidth(" "+title+" ", innerW-1)
		top = tl + h + t + strings.Repeat(h, max(0, innerW-1-runewidth.StringWidth(t))) + tr
	}

	out := make([]string, 0, height)
	out = append(out, r.theme.PanelBorder.Render(top))
	for row := 0; row < innerH; row++ {
		line := ""
		if row < len(lines) {
			line = lines[row]
		}
		out = append(out, r.theme.PanelBorder.Render(v)+r.theme.PanelBody.Render(padCells(line, innerW))+r.theme.PanelBorder.Render(v))
	}
	out = append(out, r.theme.PanelBorder.Render(bl+strings.Repeat(h, innerW)+br))
	return strings.Join(out, "\n")
}

func (r *Root) ballTarget() float64 {
	if r.engine == nil || r.engine.Phase() == penalty.PhaseIdle {
		return 0
	}
	return 1
}

func (r *Root) animateIfNeeded() tea.Cmd {
	if r.animating || !r.shouldAnimate(r.ballTarget()) {
		return nil
	}
	r.animating = true
	return animateTickCmd()
}

func (r *Root) shouldAnimate(target float64) bool {
	if r.motionLevel == "off" {
		r.ballPos = target
		r.ballVel = 0
		return false
	}
	return abs(r.ballPos-target) > 0.001 || abs(r.ballVel) > 0.001
}

func (r *Root) currentMouseMode() tea.MouseMode {
	if r.mouseScope == "off" {
		return tea.MouseModeNone
	}
	return tea.MouseModeCellMotion
}

func animateTickCmd() tea.Cmd {
	return tea.Tick(time.Second/60, func(t time.Time) tea.Msg { return animateMsg(t) })
}

func spinnerTickCmd(model spinner.Model) tea.Cmd {
	return func() tea.Msg {
		return model.Tick()
	}
}

func wrapIndex(i, n int) int {
	if n <= 0 {
		return 0
	}
	if i < 0 {
		i = n - 1
	}
	if i >= n {
		i = 0
	}
	return i
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

// padCells pads or cuts s to exactly width terminal cells.
func padCells(s string, width int) string {
	if width <= 0 {
		return ""
	}
	s = runewidth.Truncate(strings.ReplaceAll(s, "\t", "    "), width, "")
	return runewidth.FillRight(s, width)
}

func composeOverlay(base, overlay string, cols, rows int) string {
	if cols <= 0 || rows <= 0 {
		return base
	}
	baseLines := strings.Split(ansi.Strip(base), "\n")
	for len(baseLines) < rows {
		baseLines = append(baseLines, "")
	}
	baseLines = baseLines[:rows]
	overlayLines := strings.Split(strings.TrimRight(ansi.Strip(overlay), "\n"), "\n")

	ow := 1
	for _, line := range overlayLines {
		ow = max(ow, runewidth.StringWidth(line))
	}
	ow = min(ow, cols)
	oh := min(len(overlayLines), rows)
	startRow := max(0, (rows-oh)/2)
	startCol := max(0, (cols-ow)/2)

	for i := 0; i < oh; i++ {
		row := startRow + i
		line := padCells(baseLines[row], cols)
		left := runewidth.Truncate(line, startCol, "")
		rest := padCells(overlayLines[i], ow)
		right := ""
		if startCol+ow < cols {
			right = cutLeft(line, startCol+ow)
		}
		baseLines[row] = left + rest + right
	}
	return strings.Join(baseLines, "\n")
}

// cutLeft drops the first n cells of s.
func cutLeft(s string, n int) string {
	w := 0
	for i, ch := range s {
		if w >= n {
			return s[i:]
		}
		w += runewidth.RuneWidth(ch)
	}
	return ""
}

func trimForWidth(s string, width int) string {
	if width <= 0 {
		return ""
	}
	s = strings.ReplaceAll(ansi.Strip(s), "\n", " ")
	if runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, "…")
}

func normalizeStyleVariant(v string) string {
	switch strings.TrimSpace(v) {
	case "cozy_clean", "retro_terminal", "modern_arcade":
		return strings.TrimSpace(v)
	default:
		return "modern_arcade"
	}
}

func normalizeMotionLevel(v string) string {
	switch strings.TrimSpace(v) {
	case "off", "reduced", "full":
		return strings.TrimSpace(v)
	default:
		return "full"
	}
}

func normalizeMouseScope(v string) string {
	switch strings.TrimSpace(v) {
	case "off", "scoped", "full":
		return strings.TrimSpace(v)
	default:
		return "scoped"
	}
}

func (r *Root) recordInputEvent(event string) {
	r.lastInputEvent = trimForWidth(strings.TrimSpace(event), 160)
	r.logger.Debug("input", "event", r.lastInputEvent)
}

func (r *Root) onModelPanic(where string, recovered any, msg tea.Msg) {
	if r.statusFlash == "" {
		r.statusFlash = "Recovered UI panic"
	}
	msgType := ""
	if msg != nil {
		msgType = fmt.Sprintf("%T", msg)
	}
	r.logger.Error("ui.panic_recovered",
		"where", where,
		"panic", fmt.Sprint(recovered),
		"message_type", msgType,
		"slide", r.nav.Index(),
		"layout", r.layout,
		"cols", r.cols,
		"rows", r.rows,
		"last_input", r.lastInputEvent,
		"stack", string(debug.Stack()),
	)
}

var _ tea.Model = (*Root)(nil)
var _ View = (*Root)(nil)
