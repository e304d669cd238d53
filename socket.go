// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package logicsim

// A socket binds the pins of a ChipComponent to the boundary components of
// its nested chip: ins[i] is the slot of the switch driven by input pin i and
// outs[i] the slot of the output feeding output pin i.
//
type socket struct {
	chip *Chip
	ins  []int
	outs []int
}

func newSocket(c *Chip) *socket {
	s := &socket{chip: c}
	for i, cc := range c.components {
		if cc == nil {
			continue
		}
		switch cc.kind {
		case Switch:
			s.ins = append(s.ins, i)
		case Output:
			s.outs = append(s.outs, i)
		}
	}
	return s
}

// boundary returns the component at slot i if it still has kind k.
func (s *socket) boundary(i int, k Kind) *Component {
	if i >= len(s.chip.components) {
		return nil
	}
	c := s.chip.components[i]
	if c == nil || c.kind != k {
		return nil
	}
	return c
}

// update sends in to the nested switches, ticks the nested chip and reads the
// nested outputs back into out. Stale boundary slots read as low and make
// update return false.
func (s *socket) update(in, out []Pin) bool {
	ok := true
	for i, n := range s.ins {
		sw := s.boundary(n, Switch)
		if sw == nil {
			ok = false
			continue
		}
		sw.on = in[i].Active
	}
	s.chip.Tick()
	for i, n := range s.outs {
		o := s.boundary(n, Output)
		if o == nil {
			out[i].Active = false
			ok = false
			continue
		}
		out[i].Active = o.in[0].High()
	}
	return ok
}
