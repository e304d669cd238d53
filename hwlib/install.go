// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwlib

import (
	ls "github.com/db47h/logicsim"
)

// Install adds every library chip to b and returns their board index by chip
// name. The FullAdder wraps the installed HalfAdder. If any chip fails to
// build, b is left unchanged.
//
func Install(b *ls.Board) (map[string]int, error) {
	var chips []*ls.Chip
	for _, fn := range []func() (*ls.Chip, error){Nand, Nor, Xnor, Mux, DMux, HalfAdder} {
		c, err := fn()
		if err != nil {
			return nil, err
		}
		chips = append(chips, c)
	}
	fa, err := fullAdder(chips[len(chips)-1])
	if err != nil {
		return nil, err
	}
	chips = append(chips, fa)

	idx := make(map[string]int, len(chips))
	for _, c := range chips {
		idx[c.Name()] = b.Add(c)
	}
	return idx, nil
}
