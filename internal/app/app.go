package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"surveydeck/internal/deck"
	"surveydeck/internal/devtools"
	"surveydeck/internal/penalty"
	"surveydeck/internal/telemetry"
	"surveydeck/internal/ui"
)

type App struct {
	cfg Config

	logger *telemetry.JSONLogger
	uiLog  io.Closer
	deck   *deck.Deck
	view   *ui.Root
	fs     Fullscreen
	demo   *devtools.Manager

	sessionID string
	scenario  string

	mu     sync.Mutex
	moves  int
	goals  int
	shots  int
	closed bool

	// stateMu orders dev_state.json snapshots.
	stateMu sync.Mutex
}

// New loads the deck and builds the view. Deck errors are the only fatal
// ones.
func New(ctx context.Context, cfg Config, loader DeckLoader) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if loader == nil {
		loader = deck.NewLoader()
	}
	d, err := loader.Load(ctx, cfg.DeckPath)
	if err != nil {
		return nil, fmt.Errorf("load deck: %w", err)
	}

	logger, err := telemetry.NewJSONLogger(cfg.LogPath)
	if err != nil {
		return nil, err
	}
	sessionID := uuid.NewString()
	logger = logger.With(map[string]any{"session": sessionID})

	var uiOut io.Writer = io.Discard
	var uiLog io.Closer
	if cfg.LogPath != "" {
		f, err := os.OpenFile(strings.TrimSuffix(cfg.LogPath, ".jsonl")+".ui.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err == nil {
			uiOut, uiLog = f, f
		}
	}

	start := cfg.StartSlide
	if start >= d.Len() {
		logger.Error("config.start_slide_out_of_range", map[string]any{"start": start, "slides": d.Len()})
		start = 0
	}
	view, err := ui.New(ui.Options{
		Deck:         d,
		ASCIIOnly:    cfg.ASCIIOnly,
		Debug:        cfg.Debug,
		StyleVariant: cfg.UI.StyleVariant,
		MotionLevel:  cfg.UI.MotionLevel,
		MouseScope:   cfg.UI.MouseScope,
		StartSlide:   start,
		LogOutput:    uiOut,
	})
	if err != nil {
		_ = logger.Close()
		if uiLog != nil {
			_ = uiLog.Close()
		}
		return nil, err
	}

	a := &App{
		cfg:       cfg,
		logger:    logger,
		uiLog:     uiLog,
		deck:      d,
		view:      view,
		fs:        NewAltScreen(view),
		demo:      devtools.NewManager(),
		sessionID: sessionID,
	}
	view.SetController(a)
	return a, nil
}

func (a *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	a.logger.Info("app.start", map[string]any{
		"deck":   firstNonEmpty(a.cfg.DeckPath, deck.BuiltinSource),
		"slides": a.deck.Len(),
		"ascii":  a.cfg.ASCIIOnly,
		"style":  a.cfg.UI.StyleVariant,
	})
	for _, w := range a.deck.Warnings() {
		a.logger.Info("deck.warning", map[string]any{"warning": w})
	}
	if a.cfg.DemoScenario != "" {
		a.applyDemoScenario(ctx, a.cfg.DemoScenario)
	}

	go a.watch(ctx)
	err := a.view.Run()

	a.mu.Lock()
	fields := map[string]any{"moves": a.moves, "shots": a.shots, "goals": a.goals}
	a.mu.Unlock()
	if err != nil {
		fields["error"] = err.Error()
		a.logger.Error("app.stop", fields)
		return err
	}
	a.logger.Info("app.stop", fields)
	return nil
}

// watch forwards fullscreen changes into the view until ctx ends, and stops
// the program when ctx is cancelled from outside.
func (a *App) watch(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			a.view.Stop()
			return
		case on := <-a.fs.Changes():
			a.logger.Info("fullscreen.changed", map[string]any{"active": on})
			a.view.SetFullscreen(on)
		}
	}
}

func (a *App) Close() {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return
	}
	a.closed = true
	a.mu.Unlock()

	a.view.Stop()
	_ = a.logger.Close()
	if a.uiLog != nil {
		_ = a.uiLog.Close()
	}
}

func (a *App) OnQuit() {
	a.logger.Info("app.quit", nil)
	a.view.Stop()
}

func (a *App) OnToggleFullscreen(active bool) {
	var err error
	if active {
		err = a.fs.Exit()
	} else {
		err = a.fs.Request()
	}
	if err != nil {
		a.logger.Error("fullscreen.request_failed", map[string]any{"exit": active, "error": err.Error()})
		a.view.FlashStatus("Fullscreen unavailable")
	}
}

func (a *App) OnSlideChanged(from, to int) {
	a.mu.Lock()
	a.moves++
	a.mu.Unlock()
	a.logger.Info("nav.move", map[string]any{"from": from, "to": to})
	a.writeDevState(to)
}

func (a *App) OnShotResolved(st penalty.State) {
	a.mu.Lock()
	a.shots = st.Attempts
	a.goals = st.Goals
	a.mu.Unlock()
	a.logger.Info("penalty.resolved", map[string]any{
		"outcome":   st.Phase.String(),
		"direction": st.Shot.Direction,
		"power":     st.Shot.Power,
		"goals":     st.Goals,
		"attempts":  st.Attempts,
	})
}

// applyDemoScenario positions the view before the program starts.
func (a *App) applyDemoScenario(ctx context.Context, name string) {
	sc := a.demo.Resolve(name)
	a.scenario = sc.Name
	a.logger.Info("dev.demo.apply", map[string]any{"requested": name, "resolved": sc.Name})

	a.view.Navigator().Jump(sc.Slide(a.deck.Len()))
	if eng := a.view.Penalty(); eng != nil && sc.Shot != nil {
		eng.SetDirection(sc.Shot.Direction)
		eng.SetPower(sc.Shot.Power)
		eng.Shoot()
	}
	if sc.SurpriseOpen {
		a.view.OpenSurprise()
	}
	if sc.Focus != "" {
		a.view.FocusControl(sc.Focus)
	}
	if sc.OverviewOpen {
		a.view.OpenOverview()
	}
	a.writeDevStateCtx(ctx, a.view.Navigator().Index())
}

func (a *App) writeDevState(slide int) {
	if a.cfg.DevStateDir == "" {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	a.writeDevStateCtx(ctx, slide)
}

func (a *App) writeDevStateCtx(ctx context.Context, slide int) {
	if a.cfg.DevStateDir == "" {
		return
	}
	a.stateMu.Lock()
	defer a.stateMu.Unlock()
	err := a.demo.SetState(ctx, a.cfg.DevStateDir, devtools.State{
		Session:  a.sessionID,
		Scenario: a.scenario,
		Slide:    slide,
		Slides:   a.deck.Len(),
		Rendered: a.view.Running(),
	})
	if err != nil {
		a.logger.Error("dev.state_write_failed", map[string]any{"error": err.Error()})
	}
}

func firstNonEmpty(a, b string) string {
	if strings.TrimSpace(a) != "" {
		return a
	}
	return b
}

var _ ui.Controller = (*App)(nil)
