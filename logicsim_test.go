package logicsim_test

import (
	"testing"

	ls "github.com/db47h/logicsim"
	"github.com/pkg/errors"
)

func trace(t *testing.T, err error) {
	t.Helper()
	if err, ok := err.(interface {
		StackTrace() errors.StackTrace
	}); ok {
		for _, f := range err.StackTrace() {
			t.Logf("%+v ", f)
		}
	}
}

func push(t *testing.T, c *ls.Chip, cs ...*ls.Component) {
	t.Helper()
	for _, cc := range cs {
		if _, err := c.PushComponent(cc); err != nil {
			trace(t, err)
			t.Fatal(err)
		}
	}
}

func wire(t *testing.T, c *ls.Chip, x0, y0, x1, y1 int) ls.WireStatus {
	t.Helper()
	st, err := c.PushWire(ls.NewWire(ls.Pt(x0, y0), ls.Pt(x1, y1)))
	if err != nil {
		trace(t, err)
		t.Fatal(err)
	}
	return st
}

// gateChip builds two switches feeding a two-input gate of kind k, probed by
// an output:
//
//	a(0,0) -> (1,0) \
//	                 gate(2,1) -> (3,1) -> out(4,1)
//	b(0,2) -> (1,2) /
//
func gateChip(t *testing.T, k ls.Kind) (c *ls.Chip, a, b, out *ls.Component) {
	t.Helper()
	c = ls.NewChip(k.String())
	a, b = ls.NewSwitch(ls.Pt(0, 0)), ls.NewSwitch(ls.Pt(0, 2))
	g, _ := ls.New(k, ls.Pt(2, 1))
	out = ls.NewOutput(ls.Pt(4, 1))
	push(t, c, a, b, g, out)
	return c, a, b, out
}

type pinState struct {
	Active, Visited bool
}

type componentState struct {
	Kind    ls.Kind
	Visited bool
	In, Out []pinState
}

type wireState struct {
	From, To        ls.Point
	Active, Visited bool
}

type chipState struct {
	Components map[int]componentState
	Wires      map[int]wireState
}

func snapshot(c *ls.Chip) chipState {
	s := chipState{Components: map[int]componentState{}, Wires: map[int]wireState{}}
	pins := func(ps []ls.Pin) []pinState {
		var r []pinState
		for _, p := range ps {
			r = append(r, pinState{p.Active, p.Visited})
		}
		return r
	}
	c.Components(func(id int, cc *ls.Component) bool {
		s.Components[id] = componentState{cc.Kind(), cc.Visited(), pins(cc.Inputs()), pins(cc.Outputs())}
		return true
	})
	c.Wires(func(id int, w *ls.Wire) bool {
		s.Wires[id] = wireState{w.From, w.To, w.Active, w.Visited}
		return true
	})
	return s
}

func checkWorkBound(t *testing.T, c *ls.Chip) {
	t.Helper()
	nc, nw := c.Len()
	if w := c.LastTickWork(); w > 2*(nc+nw) {
		t.Errorf("tick processed %d items, bound is %d", w, 2*(nc+nw))
	}
}
