// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwlib

import (
	ls "github.com/db47h/logicsim"
)

// Mux returns a multiplexer.
//
//	Inputs: a, b, sel
//	Outputs: out
//	Function: if sel == 0 { out = a } else { out = b }
//
func Mux() (*ls.Chip, error) {
	b := newBuilder("MUX")
	b.add(
		ls.NewSwitch(ls.Pt(2, 2)), // a
		ls.NewSwitch(ls.Pt(2, 6)), // b
		ls.NewSwitch(ls.Pt(0, 0)), // sel
		ls.NewNot(ls.Pt(2, 0)),
		ls.NewAnd(ls.Pt(4, 1)), // !sel && a
		ls.NewAnd(ls.Pt(4, 5)), // sel && b
		ls.NewOr(ls.Pt(6, 3)),
		ls.NewOutput(ls.Pt(8, 3)),
	)
	b.wire(ls.Pt(1, 0), ls.Pt(1, 4), ls.Pt(3, 4))
	b.wire(ls.Pt(5, 1), ls.Pt(5, 2))
	b.wire(ls.Pt(5, 5), ls.Pt(5, 4))
	return b.chip()
}

// DMux returns a demultiplexer.
//
//	Inputs: in, sel
//	Outputs: a, b
//	Function: if sel == 0 { a = in; b = 0 } else { a = 0; b = in }
//
func DMux() (*ls.Chip, error) {
	b := newBuilder("DMUX")
	b.add(
		ls.NewSwitch(ls.Pt(2, 2)), // in
		ls.NewSwitch(ls.Pt(0, 0)), // sel
		ls.NewNot(ls.Pt(2, 0)),
		ls.NewAnd(ls.Pt(4, 1)),
		ls.NewAnd(ls.Pt(4, 3)),
		ls.NewOutput(ls.Pt(6, 1)), // a
		ls.NewOutput(ls.Pt(6, 3)), // b
	)
	b.wire(ls.Pt(1, 0), ls.Pt(1, 4), ls.Pt(3, 4))
	return b.chip()
}
