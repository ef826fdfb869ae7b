package deck

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"strings"

	"github.com/agnivade/levenshtein"
	"gopkg.in/yaml.v3"
)

//go:embed decks/survey.yaml
var builtinDeck []byte

const BuiltinSource = "builtin:survey"

type FSLoader struct{}

func NewLoader() *FSLoader { return &FSLoader{} }

// Load reads the deck at path, or the built-in survey deck when path is
// empty.
func (l *FSLoader) Load(ctx context.Context, path string) (*Deck, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(path) == "" {
		return Parse(builtinDeck, BuiltinSource)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(b, path)
}

// Parse decodes and validates a deck document.
func Parse(b []byte, source string) (*Deck, error) {
	var f file
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("parse %s: %w", source, err)
	}
	if err := f.Validate(); err != nil {
		return nil, fmt.Errorf("validate %s: %w", source, err)
	}
	applyDefaults(&f)

	d := &Deck{
		title:   f.Title,
		badge:   f.Badge,
		authors: append([]string(nil), f.Authors...),
		slides:  make([]Slide, len(f.Slides)),
	}
	for i, s := range f.Slides {
		d.slides[i] = cloneSlide(s)
	}
	d.warnings = diagnose(d.slides)
	return d, nil
}

func applyDefaults(f *file) {
	if strings.TrimSpace(f.Title) == "" {
		f.Title = f.Slides[0].Title
	}
	for i := range f.Slides {
		s := &f.Slides[i]
		if s.Kind != KindComparison {
			continue
		}
		def := DefaultComparisonRules()
		if s.Comparison == nil {
			s.Comparison = &def
			continue
		}
		if s.Comparison.Left == "" {
			s.Comparison.Left = def.Left
		}
		if s.Comparison.Right == "" {
			s.Comparison.Right = def.Right
		}
		if s.Comparison.UndecidedContains == "" {
			s.Comparison.UndecidedContains = def.UndecidedContains
		}
	}
}

func diagnose(slides []Slide) []string {
	var out []string
	for i, s := range slides {
		if !s.Kind.Known() && strings.TrimSpace(s.RawKind) == "" {
			out = append(out, fmt.Sprintf("slide %d: missing kind, rendering fallback", i))
			continue
		}
		if !s.Kind.Known() {
			out = append(out, fmt.Sprintf("slide %d: unknown kind %q, rendering fallback", i, s.RawKind))
			continue
		}
		if s.Kind != KindComparison {
			continue
		}
		rules := s.Rules()
		left, right, undecided := ComparisonEntries(s.Series, rules)
		if left == nil {
			out = append(out, missingLabel(i, rules.Left, s.Series))
		}
		if right == nil {
			out = append(out, missingLabel(i, rules.Right, s.Series))
		}
		if undecided == nil {
			out = append(out, fmt.Sprintf("slide %d: no label contains %q, undecided count will be blank", i, rules.UndecidedContains))
		}
	}
	return out
}

func missingLabel(slide int, want string, series []DataPoint) string {
	if alt := nearestLabel(want, series); alt != "" {
		return fmt.Sprintf("slide %d: no label %q (did you mean %q?)", slide, want, alt)
	}
	return fmt.Sprintf("slide %d: no label %q, value will be blank", slide, want)
}

func nearestLabel(want string, series []DataPoint) string {
	best := ""
	bestDist := -1
	compare := strings.ToLower(want)
	for _, p := range series {
		dist := levenshtein.ComputeDistance(compare, strings.ToLower(p.Label))
		if dist > levenshteinLimit(len(want)) {
			continue
		}
		if bestDist < 0 || dist < bestDist {
			best = p.Label
			bestDist = dist
		}
	}
	return best
}

func levenshteinLimit(length int) int {
	switch {
	case length <= 4:
		return 1
	default:
		return 2
	}
}
