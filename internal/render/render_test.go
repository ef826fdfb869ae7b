package render

import (
	"context"
	"regexp"
	"strings"
	"testing"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/x/ansi"

	"surveydeck/internal/deck"
)

func builtinDeck(t *testing.T) *deck.Deck {
	t.Helper()
	d, err := deck.NewLoader().Load(context.Background(), "")
	if err != nil {
		t.Fatalf("load builtin deck: %v", err)
	}
	return d
}

func slideAt(t *testing.T, d *deck.Deck, i int) deck.Slide {
	t.Helper()
	s, ok := d.At(i)
	if !ok {
		t.Fatalf("missing slide %d", i)
	}
	return s
}

func plain(s deck.Slide, ctx Context) string {
	return ansi.Strip(Dispatch(s, ctx))
}

func testContext() Context {
	return Context{Width: 100, Styles: DefaultStyles(), Authors: []string{"Mohamed", "Hajar"}}
}

func TestDispatchFallsBackForUnknownKinds(t *testing.T) {
	for _, k := range []deck.Kind{deck.KindUnknown, deck.Kind(99)} {
		out := plain(deck.Slide{Kind: k, Title: "x"}, testContext())
		if !strings.Contains(out, FallbackText) {
			t.Fatalf("kind %v: expected fallback, got %q", k, out)
		}
	}
	out := plain(deck.Slide{Kind: deck.KindUnknown, RawKind: "hologram"}, testContext())
	if !strings.Contains(out, "hologram") {
		t.Fatalf("expected raw kind in fallback, got %q", out)
	}
}

func TestSlideWithoutKindFallsBack(t *testing.T) {
	d, err := deck.Parse([]byte("slides:\n  - id: 0\n    title: Lost slide\n"), "test")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	out := plain(slideAt(t, d, 0), testContext())
	if !strings.Contains(out, FallbackText) || strings.Contains(out, "Lost slide") {
		t.Fatalf("expected fallback instead of a title view, got %q", out)
	}
}

func TestEveryBuiltinSlideHasAView(t *testing.T) {
	d := builtinDeck(t)
	for _, ascii := range []bool{false, true} {
		ctx := testContext()
		ctx.ASCII = ascii
		for i, s := range d.Slides() {
			out := plain(s, ctx)
			if strings.Contains(out, FallbackText) {
				t.Fatalf("slide %d (%v) fell back", i, s.Kind)
			}
			if strings.TrimSpace(out) == "" {
				t.Fatalf("slide %d rendered empty", i)
			}
		}
	}
}

func TestChartShowsTotalAndKeepsOrder(t *testing.T) {
	s := slideAt(t, builtinDeck(t), 2)
	out := plain(s, testContext())
	if !regexp.MustCompile(`Total Votes\s*28`).MatchString(out) {
		t.Fatalf("expected total of 28, got %q", out)
	}
	last := -1
	for _, label := range []string{"PSOE", "PP", "VOX", "PODEMOS", "SUMAR", "No Vote"} {
		idx := strings.Index(out, label)
		if idx <= last {
			t.Fatalf("label %q missing or out of order", label)
		}
		last = idx
	}
}

func TestChartColorDefaults(t *testing.T) {
	p := deck.DataPoint{Label: "a"}
	if got := chartColor(ShapeBar, p, 0); got != "#3b82f6" {
		t.Fatalf("unexpected even bar color %s", got)
	}
	if got := chartColor(ShapeBar, p, 1); got != "#8b5cf6" {
		t.Fatalf("unexpected odd bar color %s", got)
	}
	if got := chartColor(ShapePie, p, 1); got != "#3b82f6" {
		t.Fatalf("unexpected pie color %s", got)
	}
	p.Color = "#ef4444"
	if got := chartColor(ShapePie, p, 3); got != "#ef4444" {
		t.Fatalf("explicit color should win, got %s", got)
	}
}

func TestPieLabelsSkipSmallShares(t *testing.T) {
	tests := []struct {
		share float64
		want  string
	}{
		{share: 0.357, want: "36%"},
		{share: 0.05, want: ""},
		{share: 0.036, want: ""},
		{share: 0, want: ""},
		{share: 1, want: "100%"},
	}
	for _, tt := range tests {
		if got := ShareLabel(tt.share); got != tt.want {
			t.Fatalf("share %v: got %q want %q", tt.share, got, tt.want)
		}
	}

	s := slideAt(t, builtinDeck(t), 3)
	out := plain(s, testContext())
	if !strings.Contains(out, "36%") || strings.Contains(out, "4%") {
		t.Fatalf("unexpected pie legend %q", out)
	}
}

func TestShareOfEmptySeriesIsZero(t *testing.T) {
	series := []deck.DataPoint{{Label: "a"}, {Label: "b"}}
	if got := Share(series[0], series); got != 0 {
		t.Fatalf("expected zero share, got %v", got)
	}
}

func TestProgressFractionClamps(t *testing.T) {
	if got := ProgressFraction(3); got != 0.15 {
		t.Fatalf("expected 0.15, got %v", got)
	}
	if got := ProgressFraction(25); got != 1 {
		t.Fatalf("expected clamp to 1, got %v", got)
	}
	if got := ProgressFraction(0); got != 0 {
		t.Fatalf("expected 0, got %v", got)
	}
}

func TestProgressBarsKeepInputOrder(t *testing.T) {
	s := slideAt(t, builtinDeck(t), 4)
	out := plain(s, testContext())
	in, against, neutral := strings.Index(out, "In Favor"), strings.Index(out, "Against"), strings.Index(out, "Neutral")
	if in < 0 || !(in < against && against < neutral) {
		t.Fatalf("expected input order, got %q", out)
	}
	if !strings.Contains(out, "16 votes") {
		t.Fatalf("expected vote count, got %q", out)
	}
}

func TestComparisonShowsCounts(t *testing.T) {
	s := slideAt(t, builtinDeck(t), 5)
	out := plain(s, testContext())
	for _, want := range []string{"Messi", "Cristiano Ronaldo", "VS", "15", "7"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in %q", want, out)
		}
	}
	if !regexp.MustCompile(`Undecided:\s*3\s*students`).MatchString(out) {
		t.Fatalf("expected undecided count, got %q", out)
	}
}

func TestComparisonLeavesMissingEntriesBlank(t *testing.T) {
	s := deck.Slide{
		Kind:     deck.KindComparison,
		Question: "Messi vs Cristiano Ronaldo",
		Series:   []deck.DataPoint{{Label: "Cristiano Ronaldo", Count: 15}},
	}
	out := plain(s, testContext())
	if !regexp.MustCompile(`Undecided:\s*students`).MatchString(out) {
		t.Fatalf("expected blank undecided count, got %q", out)
	}
	if CountText(nil) != "" {
		t.Fatalf("expected blank text for a missing entry")
	}
	if !strings.Contains(out, "15") {
		t.Fatalf("expected present entry to render, got %q", out)
	}
}

func TestFinalListsAuthors(t *testing.T) {
	d := builtinDeck(t)
	ctx := testContext()
	ctx.Authors = d.Authors()
	out := plain(slideAt(t, d, d.Len()-1), ctx)
	for _, want := range []string{"Thank You!", "Mohamed", "Cam", "PROJECT AUTHORS"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in %q", want, out)
		}
	}
}

func TestNarrativeUsesMarkdownWhenAvailable(t *testing.T) {
	md, err := glamour.NewTermRenderer(glamour.WithStandardStyle("dark"), glamour.WithWordWrap(78))
	if err != nil {
		t.Fatalf("glamour: %v", err)
	}
	s := slideAt(t, builtinDeck(t), 1)
	ctx := testContext()
	ctx.Markdown = md
	withMD := plain(s, ctx)
	if strings.Contains(withMD, "**") {
		t.Fatalf("expected markdown emphasis to be rendered, got %q", withMD)
	}
	if !strings.Contains(withMD, "anonymous") {
		t.Fatalf("expected introduction text, got %q", withMD)
	}

	ctx.Markdown = nil
	plainOut := plain(s, ctx)
	if strings.Contains(plainOut, "**") || !strings.Contains(plainOut, "anonymous") {
		t.Fatalf("unexpected plain narrative %q", plainOut)
	}
}
