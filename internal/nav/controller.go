package nav

import "fmt"

// Controller owns the current slide index. The index always stays inside
// [0, n-1] and n never changes after construction.
type Controller struct {
	n        int
	index    int
	onChange func(from, to int)
}

func NewController(n int) (*Controller, error) {
	if n < 1 {
		return nil, fmt.Errorf("cannot navigate a deck of %d slides", n)
	}
	return &Controller{n: n}, nil
}

// OnChange registers an observer called after every move that changed the
// index. No-op moves do not notify.
func (c *Controller) OnChange(fn func(from, to int)) {
	c.onChange = fn
}

func (c *Controller) Index() int { return c.index }
func (c *Controller) Len() int   { return c.n }

func (c *Controller) AtStart() bool { return c.index == 0 }
func (c *Controller) AtEnd() bool   { return c.index == c.n-1 }

// Progress is the fraction of the deck shown so far, counting the current
// slide.
func (c *Controller) Progress() float64 {
	return float64(c.index+1) / float64(c.n)
}

func (c *Controller) Next() {
	c.set(min(c.index+1, c.n-1))
}

func (c *Controller) Previous() {
	c.set(max(c.index-1, 0))
}

// Jump moves to target when it is a valid index. Anything else is ignored;
// the return value only reports whether the index was accepted.
func (c *Controller) Jump(target int) bool {
	if target < 0 || target >= c.n {
		return false
	}
	c.set(target)
	return true
}

func (c *Controller) set(to int) {
	from := c.index
	if from == to {
		return
	}
	c.index = to
	if c.onChange != nil {
		c.onChange(from, to)
	}
}
