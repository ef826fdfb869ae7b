package deck

import (
	"errors"
	"fmt"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"
)

const (
	DeckKind               = "deck"
	SupportedSchemaVersion = 1
)

var ErrEmptyDeck = errors.New("deck has no slides")

// Kind is the closed set of slide variants.
type Kind int

const (
	KindUnknown Kind = iota - 1
	KindTitle
	KindIntroduction
	KindBarChart
	KindPieChart
	KindProgressBars
	KindComparison
	KindConclusion
	KindFinal
)

var kindNames = map[Kind]string{
	KindTitle:        "title",
	KindIntroduction: "introduction",
	KindBarChart:     "bar_chart",
	KindPieChart:     "pie_chart",
	KindProgressBars: "progress_bars",
	KindComparison:   "comparison",
	KindConclusion:   "conclusion",
	KindFinal:        "final",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Known reports whether k is one of the eight declared variants.
func (k Kind) Known() bool {
	_, ok := kindNames[k]
	return ok
}

// UsesSeries reports whether the variant renders a data series.
func (k Kind) UsesSeries() bool {
	switch k {
	case KindBarChart, KindPieChart, KindProgressBars, KindComparison:
		return true
	default:
		return false
	}
}

func ParseKind(raw string) Kind {
	norm := strings.ToLower(strings.TrimSpace(raw))
	norm = strings.NewReplacer("-", "_", " ", "_").Replace(norm)
	for k, name := range kindNames {
		if name == norm {
			return k
		}
	}
	switch norm {
	case "intro":
		return KindIntroduction
	case "bar", "chart_bar":
		return KindBarChart
	case "pie", "chart_pie":
		return KindPieChart
	case "progress":
		return KindProgressBars
	}
	return KindUnknown
}

// UnmarshalYAML keeps unrecognised kinds as KindUnknown so they render the
// fallback instead of failing the whole deck.
func (k *Kind) UnmarshalYAML(node *yaml.Node) error {
	var raw string
	if err := node.Decode(&raw); err != nil {
		return err
	}
	*k = ParseKind(raw)
	return nil
}

type file struct {
	Kind          string   `yaml:"kind"`
	SchemaVersion int      `yaml:"schema_version"`
	Title         string   `yaml:"title"`
	Badge         string   `yaml:"badge"`
	Authors       []string `yaml:"authors"`
	Slides        []Slide  `yaml:"slides"`
}

// Slide is one record of the deck. Optional fields are empty when a variant
// does not use them.
type Slide struct {
	ID          int              `yaml:"id"`
	Kind        Kind             `yaml:"kind"`
	RawKind     string           `yaml:"-"`
	Title       string           `yaml:"title"`
	Subtitle    string           `yaml:"subtitle"`
	Question    string           `yaml:"question"`
	Description string           `yaml:"description"`
	Eyebrow     string           `yaml:"eyebrow"`
	Series      []DataPoint      `yaml:"series"`
	Points      []string         `yaml:"points"`
	Quote       string           `yaml:"quote"`
	Cards       []Card           `yaml:"cards"`
	Comparison  *ComparisonRules `yaml:"comparison"`
}

type DataPoint struct {
	Label string `yaml:"label"`
	Count int    `yaml:"count"`
	Color string `yaml:"color"`
}

type Card struct {
	Icon  string `yaml:"icon"`
	Title string `yaml:"title"`
	Text  string `yaml:"text"`
}

// ComparisonRules names the three entries a comparison slide pulls out of
// its series: two exact labels and one substring.
type ComparisonRules struct {
	Left              string `yaml:"left"`
	Right             string `yaml:"right"`
	UndecidedContains string `yaml:"undecided_contains"`
}

func DefaultComparisonRules() ComparisonRules {
	return ComparisonRules{
		Left:              "Messi",
		Right:             "Cristiano Ronaldo",
		UndecidedContains: "Don't",
	}
}

func (s *Slide) UnmarshalYAML(node *yaml.Node) error {
	type plain Slide
	if err := node.Decode((*plain)(s)); err != nil {
		return err
	}
	var raw struct {
		Kind string `yaml:"kind"`
	}
	if err := node.Decode(&raw); err != nil {
		return err
	}
	s.RawKind = raw.Kind
	if strings.TrimSpace(raw.Kind) == "" {
		s.Kind = KindUnknown
	}
	return nil
}

// Teaser is the one-line summary shown in the slide overview.
func (s Slide) Teaser() string {
	for _, v := range []string{s.Question, s.Subtitle, s.Description} {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return "Presentation Slide"
}

func (f file) Validate() error {
	if f.Kind != "" && f.Kind != DeckKind {
		return fmt.Errorf("kind must be %q", DeckKind)
	}
	if f.SchemaVersion > SupportedSchemaVersion {
		return fmt.Errorf("unsupported deck schema_version %d (max supported %d)", f.SchemaVersion, SupportedSchemaVersion)
	}
	if len(f.Slides) == 0 {
		return ErrEmptyDeck
	}
	for i, s := range f.Slides {
		if err := s.validate(i); err != nil {
			return err
		}
	}
	return nil
}

func (s Slide) validate(pos int) error {
	if s.ID != pos {
		return fmt.Errorf("slides[%d].id is %d, want %d", pos, s.ID, pos)
	}
	if strings.TrimSpace(s.Title) == "" {
		return fmt.Errorf("slides[%d].title is required", pos)
	}
	if s.Kind.UsesSeries() && len(s.Series) == 0 {
		return fmt.Errorf("slides[%d] (%s) requires a non-empty series", pos, s.Kind)
	}
	if s.Series != nil && len(s.Series) == 0 {
		return fmt.Errorf("slides[%d].series must not be empty when present", pos)
	}
	seen := map[string]struct{}{}
	for j, p := range s.Series {
		if strings.TrimSpace(p.Label) == "" {
			return fmt.Errorf("slides[%d].series[%d].label is required", pos, j)
		}
		if _, ok := seen[p.Label]; ok {
			return fmt.Errorf("slides[%d] duplicate series label %q", pos, p.Label)
		}
		seen[p.Label] = struct{}{}
		if p.Count < 0 {
			return fmt.Errorf("slides[%d].series[%d].count must be >= 0", pos, j)
		}
		if p.Color != "" {
			if _, err := colorful.Hex(p.Color); err != nil {
				return fmt.Errorf("slides[%d].series[%d].color %q: %w", pos, j, p.Color, err)
			}
		}
	}
	return nil
}
