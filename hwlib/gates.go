// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package hwlib provides a library of prebuilt chips for logicsim.
//
// Every function returns a new chip built from the primitive components.
// Chip inputs are its switches and chip outputs its Output components, both
// in the order listed in the function documentation. Any chip can be placed in
// another one with logicsim.NewChipComponent.
//
package hwlib

import (
	ls "github.com/db47h/logicsim"
)

// negated builds a two input gate followed by a NOT:
//
//	a(0,0) ---+
//	          gate(2,1) -> not(4,1) -> out(6,1)
//	b(0,2) ---+
//
func negated(name string, k ls.Kind) (*ls.Chip, error) {
	b := newBuilder(name)
	g, _ := ls.New(k, ls.Pt(2, 1))
	b.add(
		ls.NewSwitch(ls.Pt(0, 0)),
		ls.NewSwitch(ls.Pt(0, 2)),
		g,
		ls.NewNot(ls.Pt(4, 1)),
		ls.NewOutput(ls.Pt(6, 1)),
	)
	return b.chip()
}

// Nand returns a NAND chip.
//
//	Inputs: a, b
//	Outputs: out
//	Function: out = !(a && b)
//
func Nand() (*ls.Chip, error) { return negated("NAND", ls.And) }

// Nor returns a NOR chip.
//
//	Inputs: a, b
//	Outputs: out
//	Function: out = !(a || b)
//
func Nor() (*ls.Chip, error) { return negated("NOR", ls.Or) }

// Xnor returns a XNOR chip.
//
//	Inputs: a, b
//	Outputs: out
//	Function: out = a && b || !a && !b
//
func Xnor() (*ls.Chip, error) { return negated("XNOR", ls.Xor) }
