/*
Package logicsim provides an editable digital logic circuit and its simulator.

A Chip holds components (switches, gates, probes and nested chips) and the
wires joining them on an integer grid. Terminals sitting on the same grid
point share a net. Every edit re-runs the propagation pass (Chip.Tick) which
evaluates components in dependency order starting from the chip's switches:

	c := logicsim.NewChip("demo")
	a := logicsim.NewSwitch(logicsim.Pt(0, 0))  // output at (1, 0)
	b := logicsim.NewSwitch(logicsim.Pt(0, 2))  // output at (1, 2)
	and := logicsim.NewAnd(logicsim.Pt(2, 1))   // inputs at (1, 0), (1, 2), output at (3, 1)
	out := logicsim.NewOutput(logicsim.Pt(4, 1)) // input at (3, 1)
	for _, cc := range []*logicsim.Component{a, b, and, out} {
		c.PushComponent(cc)
	}
	c.Click(a.Position())
	c.Click(b.Position())
	fmt.Println(out.Level()) // true

A saved chip can be placed in another chip with NewChipComponent: its
switches become the component inputs and its outputs the component outputs.

A Board groups chip definitions and handles their JSON persistence.

*/
package logicsim
