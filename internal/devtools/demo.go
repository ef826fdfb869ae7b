package devtools

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"surveydeck/internal/penalty"
)

// LastSlide stands for the final slide of whatever deck is loaded.
const LastSlide = -1

const DefaultScenario = "title"

// Scenario pre-positions the deck for screenshots and manual checks.
type Scenario struct {
	Name         string
	StartSlide   int
	OverviewOpen bool
	Focus        string
	// Shot, when set, is taken on the final slide as soon as the scenario
	// is applied.
	Shot         *penalty.Shot
	SurpriseOpen bool
}

// Slide resolves StartSlide against a deck of n slides.
func (s Scenario) Slide(n int) int {
	if s.StartSlide == LastSlide || s.StartSlide >= n {
		return max(0, n-1)
	}
	return max(0, s.StartSlide)
}

var scenarios = map[string]Scenario{
	"title":        {StartSlide: 0},
	"introduction": {StartSlide: 1},
	"bar_chart":    {StartSlide: 2},
	"pie_chart":    {StartSlide: 3},
	"progress":     {StartSlide: 4},
	"comparison":   {StartSlide: 5},
	"conclusion":   {StartSlide: 8},
	"overview":     {StartSlide: 0, OverviewOpen: true},
	"focus_next":   {StartSlide: 0, Focus: "next"},
	"final":        {StartSlide: LastSlide},
	"final_goal":   {StartSlide: LastSlide, Shot: &penalty.Shot{Direction: 0, Power: 65}},
	"final_miss":   {StartSlide: LastSlide, Shot: &penalty.Shot{Direction: 10, Power: 65}},
	"surprise":     {StartSlide: LastSlide, SurpriseOpen: true},
}

type Manager struct{}

func NewManager() *Manager { return &Manager{} }

// Resolve maps a scenario name, or one of its aliases, to a scenario.
// Unknown names resolve to the title slide.
func (m *Manager) Resolve(name string) Scenario {
	name = strings.ToLower(strings.TrimSpace(name))
	switch name {
	case "menu", "map":
		name = "overview"
	case "goal":
		name = "final_goal"
	case "miss":
		name = "final_miss"
	case "", "start":
		name = DefaultScenario
	}
	sc, ok := scenarios[name]
	if !ok {
		name = DefaultScenario
		sc = scenarios[name]
	}
	sc.Name = name
	if sc.Shot != nil {
		shot := *sc.Shot
		sc.Shot = &shot
	}
	return sc
}

// Names lists the known scenarios in order.
func (m *Manager) Names() []string {
	out := make([]string, 0, len(scenarios))
	for k := range scenarios {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// State is the snapshot written to dev_state.json.
type State struct {
	Session  string    `json:"session"`
	Scenario string    `json:"scenario"`
	Slide    int       `json:"slide"`
	Slides   int       `json:"slides"`
	Rendered bool      `json:"rendered"`
	Updated  time.Time `json:"updated"`
}

// SetState writes st to dev_state.json under cacheDir, defaulting to the
// user cache directory.
func (m *Manager) SetState(ctx context.Context, cacheDir string, st State) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if cacheDir == "" {
		base, err := os.UserCacheDir()
		if err != nil {
			return err
		}
		cacheDir = filepath.Join(base, "survey-deck")
	}
	if err := os.MkdirAll(cacheDir, 0o755); err != nil {
		return err
	}
	if st.Updated.IsZero() {
		st.Updated = time.Now().UTC()
	}
	st.Scenario = strings.TrimSpace(st.Scenario)
	b, err := json.Marshal(st)
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(cacheDir, StateFile+".*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return err
	}
	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), filepath.Join(cacheDir, StateFile))
}

const StateFile = "dev_state.json"

// ReadState loads the snapshot written by SetState.
func ReadState(cacheDir string) (State, error) {
	var st State
	b, err := os.ReadFile(filepath.Join(cacheDir, StateFile))
	if err != nil {
		return st, err
	}
	err = json.Unmarshal(b, &st)
	return st, err
}
