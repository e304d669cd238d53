// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package hwtest provides utility functions for testing chips.
//
package hwtest

import (
	"fmt"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/db47h/logicsim"
)

// Eval sets the switches of c to in, in slot order, ticks the chip and returns
// the levels of its outputs in slot order.
//
func Eval(c *logicsim.Chip, in []bool) []bool {
	for i, id := range c.Switches() {
		if i >= len(in) {
			break
		}
		if sw, ok := c.Component(id); ok {
			sw.SetOn(in[i])
		}
	}
	c.Tick()
	var out []bool
	for _, id := range c.Probes() {
		o, _ := c.Component(id)
		out = append(out, o.Level())
	}
	return out
}

func fmtBits(v []bool) string {
	var b strings.Builder
	for _, x := range v {
		if x {
			b.WriteByte('1')
		} else {
			b.WriteByte('0')
		}
	}
	return b.String()
}

// setBits sets in to the binary representation of n, in[0] being the most
// significant bit.
func setBits(in []bool, n int) {
	for bit := range in {
		in[len(in)-bit-1] = n&(1<<uint(bit)) != 0
	}
}

// TruthTable checks the outputs of c against fn for every combination of its
// switches. The first switch is the most significant bit of the combination.
//
func TruthTable(t *testing.T, c *logicsim.Chip, fn func(in []bool) []bool) {
	t.Helper()
	in := make([]bool, len(c.Switches()))
	for i := 0; i < 1<<uint(len(in)); i++ {
		setBits(in, i)
		got, want := Eval(c, in), fn(in)
		if fmtBits(got) != fmtBits(want) {
			t.Errorf("%s(%s) = %s, expected %s", c.Name(), fmtBits(in), fmtBits(got), fmtBits(want))
		}
	}
}

// wrap places c in a new chip, with one switch per input of c and one output
// per output of c.
func wrap(c *logicsim.Chip) (*logicsim.Chip, error) {
	w := logicsim.NewChip("wrapper:" + c.Name())
	cc := logicsim.NewChipComponent(logicsim.Pt(2, 0), c)
	for i := range cc.Inputs() {
		if _, err := w.PushComponent(logicsim.NewSwitch(logicsim.Pt(0, i))); err != nil {
			return nil, err
		}
	}
	if _, err := w.PushComponent(cc); err != nil {
		return nil, err
	}
	for i := range cc.Outputs() {
		if _, err := w.PushComponent(logicsim.NewOutput(logicsim.Pt(4, i))); err != nil {
			return nil, err
		}
	}
	return w, nil
}

// ComparePart takes two chips and compares their outputs given the same
// inputs. Both chips must have the same number of switches and outputs.
//
// Chips with up to 12 inputs are tested exhaustively. Larger chips are tested
// with all inputs low, all inputs high, and 4096 random input combinations.
//
func ComparePart(t *testing.T, c1, c2 *logicsim.Chip) {
	t.Helper()

	w1, err := wrap(c1)
	if err != nil {
		t.Fatal(err)
	}
	defer w1.RemoveComponent(logicsim.Pt(2, 0))
	w2, err := wrap(c2)
	if err != nil {
		t.Fatal(err)
	}
	defer w2.RemoveComponent(logicsim.Pt(2, 0))

	n1, n2 := len(w1.Switches()), len(w2.Switches())
	if n1 != n2 {
		t.Fatalf("%s has %d inputs, %s has %d", c1.Name(), n1, c2.Name(), n2)
	}
	if o1, o2 := len(w1.Probes()), len(w2.Probes()); o1 != o2 {
		t.Fatalf("%s has %d outputs, %s has %d", c1.Name(), o1, c2.Name(), o2)
	}

	in := make([]bool, n1)
	check := func() {
		t.Helper()
		r1, r2 := Eval(w1, in), Eval(w2, in)
		if fmtBits(r1) != fmtBits(r2) {
			t.Fatal(fmt.Sprintf("\ninputs %s\n%s => %s\n%s => %s", fmtBits(in), c1.Name(), fmtBits(r1), c2.Name(), fmtBits(r2)))
		}
	}

	start := time.Now()
	iter := 0
	if n1 <= 12 {
		for i := 0; i < 1<<uint(n1); i++ {
			setBits(in, i)
			check()
			iter++
		}
	} else {
		rnd := rand.New(rand.NewSource(time.Now().UnixNano()))
		check()
		for i := range in {
			in[i] = true
		}
		check()
		for iter = 2; iter < 4098; iter++ {
			for i := range in {
				in[i] = rnd.Int63()&(1<<62) != 0
			}
			check()
		}
	}
	t.Logf("%d input combinations in %v", iter, time.Since(start))
}
