package deck

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestBuiltinDeckLoads(t *testing.T) {
	d, err := NewLoader().Load(context.Background(), "")
	if err != nil {
		t.Fatalf("load builtin deck: %v", err)
	}
	if d.Len() != 10 {
		t.Fatalf("expected 10 slides, got %d", d.Len())
	}
	for i, s := range d.Slides() {
		if s.ID != i {
			t.Fatalf("slide %d has id %d", i, s.ID)
		}
	}
	last, _ := d.At(d.Len() - 1)
	if last.Kind != KindFinal {
		t.Fatalf("expected final slide last, got %v", last.Kind)
	}
	if len(d.Warnings()) != 0 {
		t.Fatalf("expected clean builtin deck, got warnings %v", d.Warnings())
	}
	if d.Badge() != "1 BC A" || len(d.Authors()) != 4 {
		t.Fatalf("unexpected deck metadata: %q %v", d.Badge(), d.Authors())
	}
}

func TestTotalVotesKeepsZeroEntries(t *testing.T) {
	series := []DataPoint{
		{Label: "PSOE", Count: 6},
		{Label: "PP", Count: 0},
		{Label: "VOX", Count: 10},
		{Label: "PODEMOS", Count: 0},
		{Label: "SUMAR", Count: 0},
		{Label: "No Vote", Count: 12},
	}
	if got := TotalVotes(series); got != 28 {
		t.Fatalf("expected 28 total votes, got %d", got)
	}
	if got := TotalVotes(nil); got != 0 {
		t.Fatalf("expected 0 for empty series, got %d", got)
	}
}

func TestComparisonEntriesMatchesLabels(t *testing.T) {
	series := []DataPoint{
		{Label: "Messi", Count: 7},
		{Label: "Cristiano Ronaldo", Count: 15},
		{Label: "Don't know", Count: 3},
	}
	left, right, undecided := ComparisonEntries(series, DefaultComparisonRules())
	if left == nil || left.Count != 7 {
		t.Fatalf("unexpected left entry %#v", left)
	}
	if right == nil || right.Count != 15 {
		t.Fatalf("unexpected right entry %#v", right)
	}
	if undecided == nil || undecided.Count != 3 {
		t.Fatalf("unexpected undecided entry %#v", undecided)
	}
}

func TestComparisonEntriesMissingIsNil(t *testing.T) {
	series := []DataPoint{{Label: "messi", Count: 7}, {Label: "Ronaldo", Count: 1}}
	left, right, undecided := ComparisonEntries(series, DefaultComparisonRules())
	if left != nil || right != nil || undecided != nil {
		t.Fatalf("expected exact, case-sensitive matching to miss all entries")
	}
}

func TestParseWarnsOnNearMissAndUnknownKind(t *testing.T) {
	doc := `
slides:
  - id: 0
    kind: hologram
    title: Odd
  - id: 1
    kind: comparison
    title: Rivalry
    series:
      - {label: "Mesi", count: 7}
      - {label: "Cristiano Ronaldo", count: 15}
`
	d, err := Parse([]byte(doc), "test")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	s, _ := d.At(0)
	if s.Kind != KindUnknown || s.RawKind != "hologram" {
		t.Fatalf("expected unknown kind to be kept, got %v %q", s.Kind, s.RawKind)
	}
	warnings := strings.Join(d.Warnings(), "\n")
	if !strings.Contains(warnings, `unknown kind "hologram"`) {
		t.Fatalf("expected unknown kind warning, got %q", warnings)
	}
	if !strings.Contains(warnings, `did you mean "Mesi"`) {
		t.Fatalf("expected near-miss suggestion, got %q", warnings)
	}
	if !strings.Contains(warnings, `no label contains "Don't"`) {
		t.Fatalf("expected undecided warning, got %q", warnings)
	}
}

func TestSlideWithoutKindRendersFallback(t *testing.T) {
	d, err := Parse([]byte("slides:\n  - id: 0\n    title: Lost slide\n"), "test")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	s, _ := d.At(0)
	if s.Kind != KindUnknown || s.Kind.Known() {
		t.Fatalf("expected missing kind to decode as unknown, got %v", s.Kind)
	}
	if !strings.Contains(strings.Join(d.Warnings(), "\n"), "slide 0: missing kind") {
		t.Fatalf("expected missing kind warning, got %q", d.Warnings())
	}
}

func TestNearMissSuggestionStopsAtDistanceTwo(t *testing.T) {
	series := []DataPoint{{Label: "Cristiano Ronaldo", Count: 1}}
	if got := nearestLabel("Cristiano Ronal", series); got != "Cristiano Ronaldo" {
		t.Fatalf("expected distance 2 to suggest, got %q", got)
	}
	if got := nearestLabel("Cristiano Rona", series); got != "" {
		t.Fatalf("expected distance 3 to be rejected, got %q", got)
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "deck.yaml")
	doc := "title: Tiny\nslides:\n  - id: 0\n    kind: title\n    title: Hello\n"
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}
	d, err := NewLoader().Load(context.Background(), path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if d.Title() != "Tiny" || d.Len() != 1 {
		t.Fatalf("unexpected deck %q/%d", d.Title(), d.Len())
	}
}

func TestAtReturnsCopies(t *testing.T) {
	d, err := NewLoader().Load(context.Background(), "")
	if err != nil {
		t.Fatal(err)
	}
	s, _ := d.At(2)
	s.Series[0].Count = 999
	again, _ := d.At(2)
	if again.Series[0].Count == 999 {
		t.Fatalf("expected deck to be immutable through At")
	}
	if _, ok := d.At(d.Len()); ok {
		t.Fatalf("expected out of range At to fail")
	}
}
