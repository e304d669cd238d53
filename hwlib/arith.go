// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwlib

import (
	ls "github.com/db47h/logicsim"
)

// HalfAdder returns a half adder.
//
//	Inputs: a, b
//	Outputs: s, c
//	Function: s = lsb(a + b)
//	          c = msb(a + b)
//
func HalfAdder() (*ls.Chip, error) {
	b := newBuilder("HalfAdder")
	b.add(
		ls.NewSwitch(ls.Pt(0, 0)), // a
		ls.NewSwitch(ls.Pt(0, 2)), // b
		ls.NewXor(ls.Pt(2, 1)),
		ls.NewOutput(ls.Pt(4, 1)), // s
		ls.NewAnd(ls.Pt(2, 3)),
		ls.NewOutput(ls.Pt(4, 3)), // c
	)
	// a goes around b to reach the lower input of the AND
	b.wire(ls.Pt(1, 0), ls.Pt(1, -1), ls.Pt(-1, -1), ls.Pt(-1, 4), ls.Pt(1, 4))
	return b.chip()
}

// FullAdder returns a full adder built from two half adders.
//
//	Inputs: a, b, cin
//	Outputs: s, cout
//	Function: s = lsb(a + b + cin)
//	          cout = msb(a + b + cin)
//
func FullAdder() (*ls.Chip, error) {
	ha, err := HalfAdder()
	if err != nil {
		return nil, err
	}
	return fullAdder(ha)
}

// fullAdder wraps ha twice. Both components share the same nested chip.
func fullAdder(ha *ls.Chip) (*ls.Chip, error) {
	b := newBuilder("FullAdder")
	b.add(
		ls.NewSwitch(ls.Pt(0, 0)),             // a
		ls.NewSwitch(ls.Pt(0, 1)),             // b
		ls.NewSwitch(ls.Pt(0, -1)),            // cin
		ls.NewChipComponent(ls.Pt(2, 0), ha),  // a + b
		ls.NewChipComponent(ls.Pt(5, -1), ha), // cin + s1
		ls.NewOutput(ls.Pt(7, -1)),            // s
		ls.NewOr(ls.Pt(8, 1)),
		ls.NewOutput(ls.Pt(10, 1)), // cout
	)
	b.wire(ls.Pt(1, -1), ls.Pt(4, -1))
	b.wire(ls.Pt(3, 0), ls.Pt(4, 0))
	b.wire(ls.Pt(6, 0), ls.Pt(7, 0))
	b.wire(ls.Pt(3, 1), ls.Pt(3, 2), ls.Pt(7, 2))
	return b.chip()
}
