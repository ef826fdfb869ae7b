package deck

import "strings"

// Deck is the immutable, validated slide sequence. It is built once by the
// loader and only read afterwards.
type Deck struct {
	title    string
	badge    string
	authors  []string
	slides   []Slide
	warnings []string
}

func (d *Deck) Title() string { return d.title }
func (d *Deck) Badge() string { return d.badge }
func (d *Deck) Len() int      { return len(d.slides) }

func (d *Deck) Authors() []string {
	return append([]string(nil), d.authors...)
}

// Warnings lists non-fatal findings from loading, such as unknown kinds or
// comparison labels that almost match.
func (d *Deck) Warnings() []string {
	return append([]string(nil), d.warnings...)
}

// At returns a copy of the slide at index i.
func (d *Deck) At(i int) (Slide, bool) {
	if i < 0 || i >= len(d.slides) {
		return Slide{}, false
	}
	return cloneSlide(d.slides[i]), true
}

// Slides returns copies of every slide in order.
func (d *Deck) Slides() []Slide {
	out := make([]Slide, len(d.slides))
	for i, s := range d.slides {
		out[i] = cloneSlide(s)
	}
	return out
}

func cloneSlide(s Slide) Slide {
	if s.Series != nil {
		s.Series = append([]DataPoint(nil), s.Series...)
	}
	if s.Points != nil {
		s.Points = append([]string(nil), s.Points...)
	}
	if s.Cards != nil {
		s.Cards = append([]Card(nil), s.Cards...)
	}
	if s.Comparison != nil {
		rules := *s.Comparison
		s.Comparison = &rules
	}
	return s
}

// TotalVotes sums every count in the series. Zero entries count as zero;
// they are never dropped.
func TotalVotes(series []DataPoint) int {
	total := 0
	for _, p := range series {
		total += p.Count
	}
	return total
}

// MaxCount is the largest count in the series, 0 for an empty one.
func MaxCount(series []DataPoint) int {
	best := 0
	for _, p := range series {
		if p.Count > best {
			best = p.Count
		}
	}
	return best
}

// ComparisonEntries picks the left, right and undecided entries out of a
// comparison series. A missing entry is nil.
func ComparisonEntries(series []DataPoint, rules ComparisonRules) (left, right, undecided *DataPoint) {
	for i := range series {
		p := &series[i]
		if left == nil && p.Label == rules.Left {
			left = p
		}
		if right == nil && p.Label == rules.Right {
			right = p
		}
		if undecided == nil && rules.UndecidedContains != "" && strings.Contains(p.Label, rules.UndecidedContains) {
			undecided = p
		}
	}
	return left, right, undecided
}

// Rules returns the slide's comparison rules, or the defaults.
func (s Slide) Rules() ComparisonRules {
	if s.Comparison == nil {
		return DefaultComparisonRules()
	}
	return *s.Comparison
}
