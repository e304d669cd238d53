// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package logicsim

// Kind is a component variant.
//
type Kind int

// Component variants.
//
const (
	Switch Kind = iota
	Not
	And
	Or
	Xor
	Output
	ChipKind
)

var kindNames = [...]string{
	Switch:   "SwitchComponent",
	Not:      "NotComponent",
	And:      "AndComponent",
	Or:       "OrComponent",
	Xor:      "XorComponent",
	Output:   "OutputComponent",
	ChipKind: "ChipComponent",
}

// String returns the persisted type name of k.
//
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "UnknownComponent"
	}
	return kindNames[k]
}

// KindOf returns the Kind for a persisted type name.
//
func KindOf(name string) (Kind, bool) {
	for k, n := range kindNames {
		if n == name {
			return Kind(k), true
		}
	}
	return 0, false
}

// Category tells whether a component is a propagation source.
//
type Category int

// Component categories.
//
const (
	Gate Category = iota
	Input
)

// A Component is a unit of a circuit with input and output pins.
//
// The set of variants is closed; see Kind. Components are created with one of
// the New* functions and handed over to a Chip with PushComponent.
//
type Component struct {
	kind      Kind
	pos       Point
	in        []Pin
	out       []Pin
	visited   bool
	deletable bool

	on   bool    // Switch state
	sock *socket // ChipComponent binding
}

func newComponent(k Kind, p Point, ins, outs []Point) *Component {
	c := &Component{kind: k, pos: p, deletable: true}
	for _, pt := range ins {
		c.in = append(c.in, newPin(pt))
	}
	for _, pt := range outs {
		c.out = append(c.out, newPin(pt))
	}
	return c
}

// NewSwitch returns a manually toggled input.
//
//	Outputs: (x+1, y)
//
func NewSwitch(p Point) *Component {
	return newComponent(Switch, p, nil, []Point{p.Add(1, 0)})
}

// NewNot returns a NOT gate.
//
//	Inputs: (x-1, y)
//	Outputs: (x+1, y)
//	Function: out = !in
//
func NewNot(p Point) *Component {
	return newComponent(Not, p, []Point{p.Add(-1, 0)}, []Point{p.Add(1, 0)})
}

func newGate(k Kind, p Point) *Component {
	return newComponent(k, p, []Point{p.Add(-1, -1), p.Add(-1, 1)}, []Point{p.Add(1, 0)})
}

// NewAnd returns an AND gate.
//
//	Inputs: (x-1, y-1), (x-1, y+1)
//	Outputs: (x+1, y)
//	Function: out = a && b
//
func NewAnd(p Point) *Component { return newGate(And, p) }

// NewOr returns an OR gate. Pins are laid out like NewAnd.
//
func NewOr(p Point) *Component { return newGate(Or, p) }

// NewXor returns a XOR gate. Pins are laid out like NewAnd.
//
func NewXor(p Point) *Component { return newGate(Xor, p) }

// NewOutput returns a probe. Outputs are not deletable by default.
//
//	Inputs: (x-1, y)
//
func NewOutput(p Point) *Component {
	c := newComponent(Output, p, []Point{p.Add(-1, 0)}, nil)
	c.deletable = false
	return c
}

// New returns a new primitive component of kind k. ChipKind components need a
// nested chip and must be created with NewChipComponent.
//
func New(k Kind, p Point) (*Component, bool) {
	switch k {
	case Switch:
		return NewSwitch(p), true
	case Not:
		return NewNot(p), true
	case And, Or, Xor:
		return newGate(k, p), true
	case Output:
		return NewOutput(p), true
	}
	return nil, false
}

// NewChipComponent wraps chip c into a component. The chip's live switches
// become the component inputs and its outputs the component outputs, in slot
// order. c is shared, not copied: every component wrapping c sees the same
// circuit.
//
// The boundary is captured here. If a boundary switch or output is later
// removed from c, the matching output reads low and Chip.Stale counts the
// component after each tick.
//
//	Inputs: (x-1, y+i)
//	Outputs: (x+1, y+i)
//
func NewChipComponent(p Point, c *Chip) *Component {
	s := newSocket(c)
	ins := make([]Point, len(s.ins))
	for i := range ins {
		ins[i] = p.Add(-1, i)
	}
	outs := make([]Point, len(s.outs))
	for i := range outs {
		outs[i] = p.Add(1, i)
	}
	cc := newComponent(ChipKind, p, ins, outs)
	cc.sock = s
	return cc
}

// Kind returns the component variant.
//
func (c *Component) Kind() Kind { return c.kind }

// Position returns the component position.
//
func (c *Component) Position() Point { return c.pos }

// Inputs returns the input pins.
//
func (c *Component) Inputs() []Pin { return c.in }

// Outputs returns the output pins.
//
func (c *Component) Outputs() []Pin { return c.out }

// Category returns Input for switches and Gate for anything else.
//
func (c *Component) Category() Category {
	if c.kind == Switch {
		return Input
	}
	return Gate
}

// Visited reports whether the last tick evaluated the component.
//
func (c *Component) Visited() bool { return c.visited }

// Deletable reports whether Chip.RemoveComponent may remove c.
//
func (c *Component) Deletable() bool { return c.deletable }

// SetDeletable sets the deletable flag.
//
func (c *Component) SetDeletable(v bool) { c.deletable = v }

// On returns the state of a switch.
//
func (c *Component) On() bool { return c.on }

// SetOn sets the state of a switch. It does nothing for other kinds. The new
// state is visible on the output pin after the next tick.
//
func (c *Component) SetOn(v bool) {
	if c.kind == Switch {
		c.on = v
	}
}

// Click toggles a switch. Other kinds ignore clicks.
//
func (c *Component) Click() {
	if c.kind == Switch {
		c.on = !c.on
	}
}

// Nested returns the chip wrapped by a ChipComponent, nil otherwise.
//
func (c *Component) Nested() *Chip {
	if c.sock == nil {
		return nil
	}
	return c.sock.chip
}

// ResetVisited clears the visited flags of c and its pins.
//
func (c *Component) ResetVisited() {
	c.visited = false
	for i := range c.in {
		c.in[i].Visited = false
	}
	for i := range c.out {
		c.out[i].Visited = false
	}
}

// AllInputsVisited reports whether every input pin has been reached.
//
func (c *Component) AllInputsVisited() bool {
	for i := range c.in {
		if !c.in[i].Visited {
			return false
		}
	}
	return true
}

// Update recomputes the outputs from the current input states. It returns
// false if a ChipComponent boundary no longer matches its nested chip.
//
func (c *Component) Update() bool {
	switch c.kind {
	case Switch:
		c.out[0].Active = c.on
	case Not:
		c.out[0].Active = !c.in[0].Active
	case And:
		c.out[0].Active = c.in[0].Active && c.in[1].Active
	case Or:
		c.out[0].Active = c.in[0].Active || c.in[1].Active
	case Xor:
		c.out[0].Active = c.in[0].Active != c.in[1].Active
	case Output:
	case ChipKind:
		return c.sock.update(c.in, c.out)
	}
	return true
}

// Level returns the value shown by a probe or switch: the input state of an
// Output, the output state of a Switch, and the first output of other kinds.
//
func (c *Component) Level() bool {
	switch {
	case c.kind == Output:
		return c.in[0].High()
	case c.kind == Switch:
		return c.on
	case len(c.out) > 0:
		return c.out[0].High()
	}
	return false
}
