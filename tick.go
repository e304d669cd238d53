// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package logicsim

// A work item of the propagation queue.
type item struct {
	kind     TerminalKind
	index    int
	activate bool
	retried  bool
}

// queue is a two-level FIFO: fresh items always come out before retried ones.
type queue struct {
	fresh, retried []item
	fh, rh         int
}

func (q *queue) push(it item) {
	if it.retried {
		q.retried = append(q.retried, it)
	} else {
		q.fresh = append(q.fresh, it)
	}
}

func (q *queue) pop() (item, bool) {
	if q.fh < len(q.fresh) {
		it := q.fresh[q.fh]
		q.fh++
		return it, true
	}
	if q.rh < len(q.retried) {
		it := q.retried[q.rh]
		q.rh++
		return it, true
	}
	return item{}, false
}

// tickState tracks per node attempts so that every component is evaluated at
// most once fresh and once retried, and every wire once.
type tickState struct {
	c      *Chip
	q      queue
	done   [2][]bool // [retried][component slot]
	parked []int
	isPark []bool
	work   int
	stale  int
}

// Tick recomputes the active and visited flags of every pin, component and
// wire reachable from the chip's switches.
//
// Components are evaluated once all their inputs have been reached. A
// component with an input that has not been reached yet is deferred once,
// behind every fresh work item. A deferred component that still misses inputs
// waits until one of its sources is reached. Whatever is still waiting when
// no work is left is settled with the inputs it has, reached or not, and is
// not evaluated. This bounds the work to twice the number of live components
// and wires; the components of a combinational feedback loop are left
// unevaluated.
//
// Nodes that cannot be reached from a switch keep Visited == false and must be
// read as low.
//
func (c *Chip) Tick() {
	t := &tickState{c: c}
	n := len(c.components)
	t.done[0] = make([]bool, n)
	t.done[1] = make([]bool, n)
	t.isPark = make([]bool, n)

	for _, cc := range c.components {
		if cc != nil {
			cc.ResetVisited()
		}
	}
	for i := range c.wires {
		if !c.wires[i].free {
			c.wires[i].Visited = false
			c.wires[i].Active = false
		}
	}

	for i, cc := range c.components {
		if cc != nil && cc.Category() == Input {
			t.q.push(item{kind: TerminalComponent, index: i, activate: true})
		}
	}

	for {
		for it, ok := t.q.pop(); ok; it, ok = t.q.pop() {
			switch it.kind {
			case TerminalComponent:
				t.component(it)
			case TerminalWire:
				t.wire(it)
			}
		}
		if !t.settle() {
			break
		}
	}
	c.lastWork, c.stale = t.work, t.stale
}

// LastTickWork returns the number of work items processed by the last tick.
//
func (c *Chip) LastTickWork() int { return c.lastWork }

// Stale returns the number of ChipComponents evaluated by the last tick whose
// boundary no longer matches their nested chip. Their missing outputs read
// low.
//
func (c *Chip) Stale() int { return c.stale }

func (t *tickState) enqueueNet(id NetID, activate bool) {
	for _, term := range t.c.graph.Net(id) {
		it := item{kind: term.Kind, index: term.Index, activate: activate}
		switch term.Kind {
		case TerminalComponent:
			switch {
			case t.c.components[term.Index].visited:
				continue
			case t.done[0][term.Index]:
				if t.done[1][term.Index] {
					continue
				}
				it.retried = true
			}
		case TerminalWire:
			if t.c.wires[term.Index].Visited {
				continue
			}
		}
		t.q.push(it)
	}
}

// inputState returns the state of the net feeding input pin i of component id.
func (t *tickState) inputState(id int, cc *Component, i int) State {
	// nets only reference live slots, so this cannot fail.
	s, _ := t.c.ConnectionState(cc.in[i].Net, componentTerminal(id, i, false))
	return s
}

func (t *tickState) component(it item) {
	cc := t.c.components[it.index]
	if cc.visited {
		return
	}
	if it.retried {
		t.retry(it, cc)
		return
	}
	if t.done[0][it.index] {
		return
	}
	t.done[0][it.index] = true
	t.work++

	cc.visited = true
	for i := range cc.in {
		pin := &cc.in[i]
		if pin.Visited {
			continue
		}
		s := t.inputState(it.index, cc, i)
		if !s.Visited {
			cc.visited = false
			it.retried = true
			t.q.push(it)
			return
		}
		pin.Visited, pin.Active = s.Visited, s.Active
	}
	t.evaluate(cc)
}

func (t *tickState) retry(it item, cc *Component) {
	if t.done[1][it.index] {
		return
	}
	for i := range cc.in {
		if !cc.in[i].Visited && !t.inputState(it.index, cc, i).Visited {
			if !t.isPark[it.index] {
				t.isPark[it.index] = true
				t.parked = append(t.parked, it.index)
			}
			return
		}
	}
	t.done[1][it.index] = true
	t.work++
	t.assignInputs(it.index, cc)
	t.evaluate(cc)
}

// settle gives their last attempt to parked components. It returns true if
// this produced new work.
func (t *tickState) settle() bool {
	parked := t.parked
	t.parked = nil
	for _, id := range parked {
		t.isPark[id] = false
		cc := t.c.components[id]
		if cc.visited || t.done[1][id] {
			continue
		}
		t.done[1][id] = true
		t.work++
		t.assignInputs(id, cc)
		t.evaluate(cc)
	}
	return t.q.fh < len(t.q.fresh) || t.q.rh < len(t.q.retried)
}

func (t *tickState) assignInputs(id int, cc *Component) {
	cc.visited = true
	for i := range cc.in {
		pin := &cc.in[i]
		if pin.Visited {
			continue
		}
		s := t.inputState(id, cc, i)
		pin.Visited, pin.Active = s.Visited, s.Active
	}
}

// evaluate updates a visited component whose inputs have all been reached and
// propagates its outputs.
func (t *tickState) evaluate(cc *Component) {
	if !cc.AllInputsVisited() {
		return
	}
	if !cc.Update() {
		t.stale++
	}
	for i := range cc.out {
		pin := &cc.out[i]
		pin.Visited = true
		t.enqueueNet(pin.Net, pin.Active)
	}
}

func (t *tickState) wire(it item) {
	w := &t.c.wires[it.index]
	if w.Visited {
		return
	}
	t.work++
	w.Visited = true
	w.Active = it.activate
	t.enqueueNet(w.Nets[0], w.Active)
	t.enqueueNet(w.Nets[1], w.Active)
}
