// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package logicsim

import (
	"github.com/pkg/errors"
)

// A Chip is an editable circuit: components and wires joined by nets.
//
// Every mutating method runs Tick before returning, so the active and visited
// flags of pins and wires always reflect the current structure. Component and
// wire slots are never reindexed: removed slots are tombstoned and reused by
// later insertions.
//
// A Chip is not safe for concurrent use.
//
type Chip struct {
	name       string
	components []*Component
	wires      []Wire
	graph      *ConnectionGraph

	refs     int // ChipComponents wrapping this chip
	lastWork int // work items processed by the last tick
	stale    int // ChipComponents with a stale boundary in the last tick
}

// NewChip returns an empty chip.
//
func NewChip(name string) *Chip {
	return &Chip{name: name, graph: NewConnectionGraph()}
}

// Name returns the chip name.
//
func (c *Chip) Name() string { return c.name }

// SetName renames the chip.
//
func (c *Chip) SetName(name string) { c.name = name }

// Refs returns the number of live ChipComponents wrapping c.
//
func (c *Chip) Refs() int { return c.refs }

// Graph returns the chip's connection graph.
//
func (c *Chip) Graph() *ConnectionGraph { return c.graph }

// Len returns the number of live components and wires.
//
func (c *Chip) Len() (components, wires int) {
	for _, cc := range c.components {
		if cc != nil {
			components++
		}
	}
	for i := range c.wires {
		if !c.wires[i].free {
			wires++
		}
	}
	return components, wires
}

// Component returns the live component in slot id.
//
func (c *Chip) Component(id int) (*Component, bool) {
	if id < 0 || id >= len(c.components) || c.components[id] == nil {
		return nil, false
	}
	return c.components[id], true
}

// Components calls fn for every live component in slot order until fn
// returns false.
//
func (c *Chip) Components(fn func(id int, cc *Component) bool) {
	for i, cc := range c.components {
		if cc == nil {
			continue
		}
		if !fn(i, cc) {
			return
		}
	}
}

// ComponentAt returns the slot of the live component at p.
//
func (c *Chip) ComponentAt(p Point) (int, bool) {
	for i, cc := range c.components {
		if cc != nil && cc.pos.Eq(p) {
			return i, true
		}
	}
	return -1, false
}

// Wire returns a copy of the wire in slot id. Reading a tombstoned or out of
// range slot is an invariant violation.
//
func (c *Chip) Wire(id int) (Wire, error) {
	if id < 0 || id >= len(c.wires) {
		return Wire{}, invariantf("wire %d out of range", id)
	}
	if c.wires[id].free {
		return Wire{}, invariantf("wire %d is free", id)
	}
	return c.wires[id], nil
}

// Wires calls fn for every live wire in slot order until fn returns false.
//
func (c *Chip) Wires(fn func(id int, w *Wire) bool) {
	for i := range c.wires {
		if c.wires[i].free {
			continue
		}
		if !fn(i, &c.wires[i]) {
			return
		}
	}
}

// NetAt returns the id of the net at p.
//
func (c *Chip) NetAt(p Point) (NetID, bool) {
	return c.graph.Lookup(p)
}

// Switches returns the slots of the live switches, in slot order.
//
func (c *Chip) Switches() []int { return newSocket(c).ins }

// Probes returns the slots of the live outputs, in slot order.
//
func (c *Chip) Probes() []int { return newSocket(c).outs }

// Contains reports whether c is sub or wraps sub at any nesting depth.
//
func (c *Chip) Contains(sub *Chip) bool {
	return c.contains(sub, make(map[*Chip]bool))
}

func (c *Chip) contains(sub *Chip, seen map[*Chip]bool) bool {
	if c == sub {
		return true
	}
	if seen[c] {
		return false
	}
	seen[c] = true
	for _, cc := range c.components {
		if cc != nil && cc.sock != nil && cc.sock.chip.contains(sub, seen) {
			return true
		}
	}
	return false
}

// PushComponent adds cc to the chip and returns its slot.
//
// It fails with ErrPositionTaken if a live component already sits at
// cc.Position(), and with ErrChipCycle if cc wraps a chip that contains c. On
// error, the chip is left unchanged.
//
func (c *Chip) PushComponent(cc *Component) (int, error) {
	if _, ok := c.ComponentAt(cc.pos); ok {
		return -1, errors.Wrap(ErrPositionTaken, cc.pos.String())
	}
	if n := cc.Nested(); n != nil && n.Contains(c) {
		return -1, errors.Wrap(ErrChipCycle, cc.Nested().name+" in "+c.name)
	}

	id := len(c.components)
	for i, slot := range c.components {
		if slot == nil {
			id = i
			break
		}
	}

	for i := range cc.in {
		cc.in[i].Net, _ = c.graph.JoinOrCreate(cc.in[i].Position, componentTerminal(id, i, false))
	}
	for i := range cc.out {
		cc.out[i].Net, _ = c.graph.JoinOrCreate(cc.out[i].Position, componentTerminal(id, i, true))
	}

	if id == len(c.components) {
		c.components = append(c.components, cc)
	} else {
		c.components[id] = cc
	}
	if cc.sock != nil {
		cc.sock.chip.refs++
	}
	c.Tick()
	return id, nil
}

// RemoveComponent removes the component at p. It returns false if there is
// none or if it is not deletable.
//
func (c *Chip) RemoveComponent(p Point) bool {
	id, ok := c.ComponentAt(p)
	if !ok {
		return false
	}
	cc := c.components[id]
	if !cc.deletable {
		return false
	}
	own := func(t Terminal) bool {
		return t.Kind == TerminalComponent && t.Index == id
	}
	for i := range cc.in {
		c.graph.Detach(cc.in[i].Net, own)
		cc.in[i].Net = NoNet
	}
	for i := range cc.out {
		c.graph.Detach(cc.out[i].Net, own)
		cc.out[i].Net = NoNet
	}
	if cc.sock != nil {
		cc.sock.chip.refs--
	}
	c.components[id] = nil
	c.Tick()
	return true
}

// PushWire adds w to the chip.
//
// A wire whose ends are the same point is ignored and reported as
// WireConnected. A wire that is not axis aligned is rejected with WireInvalid
// and an ErrInvariantViolation error. Otherwise the result is WireConnected if
// w.To already touched a net, WireValid if not.
//
func (c *Chip) PushWire(w Wire) (WireStatus, error) {
	if w.Degenerate() {
		return WireConnected, nil
	}
	if !w.AxisAligned() {
		return WireInvalid, invariantf("wire %v-%v is not axis aligned", w.From, w.To)
	}
	_, connected := c.graph.Lookup(w.To)

	w.normalize()
	w.Active, w.Visited, w.free = false, false, false

	id := len(c.wires)
	for i := range c.wires {
		if c.wires[i].free {
			id = i
			break
		}
	}
	w.Nets[0], _ = c.graph.JoinOrCreate(w.From, wireTerminal(id))
	w.Nets[1], _ = c.graph.JoinOrCreate(w.To, wireTerminal(id))

	if id == len(c.wires) {
		c.wires = append(c.wires, w)
	} else {
		c.wires[id] = w
	}
	c.Tick()
	if connected {
		return WireConnected, nil
	}
	return WireValid, nil
}

// RemoveWire removes every wire running through p and returns how many were
// removed.
//
func (c *Chip) RemoveWire(p Point) int {
	n := 0
	for i := range c.wires {
		w := &c.wires[i]
		if w.free || !w.Contains(p) {
			continue
		}
		id := i
		own := func(t Terminal) bool {
			return t.Kind == TerminalWire && t.Index == id
		}
		c.graph.Detach(w.Nets[0], own)
		c.graph.Detach(w.Nets[1], own)
		*w = Wire{From: w.From, To: w.To, Nets: [2]NetID{NoNet, NoNet}, free: true}
		n++
	}
	if n > 0 {
		c.Tick()
	}
	return n
}

// Click clicks the component at p and ticks the chip. It returns false if
// there is no component at p.
//
func (c *Chip) Click(p Point) bool {
	id, ok := c.ComponentAt(p)
	if !ok {
		return false
	}
	return c.ClickComponent(id)
}

// ClickComponent clicks the component in slot id and ticks the chip.
//
func (c *Chip) ClickComponent(id int) bool {
	cc, ok := c.Component(id)
	if !ok {
		return false
	}
	cc.Click()
	c.Tick()
	return true
}

// State is the aggregated state of the sources on a net.
//
type State struct {
	Active  bool
	Visited bool
}

// ConnectionState aggregates the state of the sources of net id as seen from
// terminal self: terminals of the component (or wire) self belongs to are
// ignored. Sources are component output pins and wires.
//
func (c *Chip) ConnectionState(id NetID, self Terminal) (State, error) {
	var s State
	for _, t := range c.graph.Net(id) {
		if t.Kind == self.Kind && t.Index == self.Index {
			continue
		}
		var active, visited bool
		switch t.Kind {
		case TerminalComponent:
			cc, ok := c.Component(t.Index)
			if !ok {
				return State{}, invariantf("net %d references free component %d", id, t.Index)
			}
			if !t.Output {
				continue
			}
			p := &cc.out[t.Pin]
			active, visited = p.Active, p.Visited
		case TerminalWire:
			if t.Index >= len(c.wires) || c.wires[t.Index].free {
				return State{}, invariantf("net %d references free wire %d", id, t.Index)
			}
			w := &c.wires[t.Index]
			active, visited = w.Active, w.Visited
		default:
			return State{}, invariantf("net %d: unknown terminal kind %v", id, t.Kind)
		}
		s.Visited = s.Visited || visited
		s.Active = s.Active || active && visited
	}
	return s, nil
}
