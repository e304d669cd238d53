package hwlib_test

import (
	"bytes"
	"testing"
	"testing/quick"

	ls "github.com/db47h/logicsim"
	hl "github.com/db47h/logicsim/hwlib"
	"github.com/db47h/logicsim/hwtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustChip(t *testing.T, fn func() (*ls.Chip, error)) *ls.Chip {
	t.Helper()
	c, err := fn()
	require.NoError(t, err)
	return c
}

func TestGates(t *testing.T) {
	data := []struct {
		name string
		fn   func() (*ls.Chip, error)
		gate func(a, b bool) bool
	}{
		{"NAND", hl.Nand, func(a, b bool) bool { return !(a && b) }},
		{"NOR", hl.Nor, func(a, b bool) bool { return !(a || b) }},
		{"XNOR", hl.Xnor, func(a, b bool) bool { return a == b }},
	}
	for _, d := range data {
		t.Run(d.name, func(t *testing.T) {
			c := mustChip(t, d.fn)
			assert.Equal(t, d.name, c.Name())
			hwtest.TruthTable(t, c, func(in []bool) []bool {
				return []bool{d.gate(in[0], in[1])}
			})
		})
	}
}

func TestMux(t *testing.T) {
	hwtest.TruthTable(t, mustChip(t, hl.Mux), func(in []bool) []bool {
		a, b, sel := in[0], in[1], in[2]
		if sel {
			return []bool{b}
		}
		return []bool{a}
	})
}

func TestDMux(t *testing.T) {
	hwtest.TruthTable(t, mustChip(t, hl.DMux), func(in []bool) []bool {
		v, sel := in[0], in[1]
		return []bool{v && !sel, v && sel}
	})
}

func TestHalfAdder(t *testing.T) {
	hwtest.TruthTable(t, mustChip(t, hl.HalfAdder), func(in []bool) []bool {
		return []bool{in[0] != in[1], in[0] && in[1]}
	})
}

func TestFullAdder(t *testing.T) {
	fa := mustChip(t, hl.FullAdder)
	n := 0
	fa.Components(func(_ int, cc *ls.Component) bool {
		if cc.Kind() == ls.ChipKind {
			n++
		}
		return true
	})
	assert.Equal(t, 2, n)

	f := func(a, b, cin bool) bool {
		sum := 0
		for _, v := range []bool{a, b, cin} {
			if v {
				sum++
			}
		}
		out := hwtest.Eval(fa, []bool{a, b, cin})
		return out[0] == (sum&1 != 0) && out[1] == (sum&2 != 0)
	}
	if err := quick.Check(f, nil); err != nil {
		t.Fatal(err)
	}
}

// A XOR built out of NAND chips behaves like the XOR primitive.
func TestCompare_xorFromNand(t *testing.T) {
	nand := mustChip(t, hl.Nand)
	xor := ls.NewChip("xor")
	for _, cc := range []*ls.Component{
		ls.NewSwitch(ls.Pt(0, 0)), // a
		ls.NewSwitch(ls.Pt(0, 2)), // b
		ls.NewXor(ls.Pt(2, 1)),
		ls.NewOutput(ls.Pt(4, 1)),
	} {
		_, err := xor.PushComponent(cc)
		require.NoError(t, err)
	}

	// out = nand(nand(a, n), nand(n, b)) with n = nand(a, b)
	custom := ls.NewChip("custom_xor")
	for _, cc := range []*ls.Component{
		ls.NewSwitch(ls.Pt(0, 0)), // a
		ls.NewSwitch(ls.Pt(0, 3)), // b
		ls.NewChipComponent(ls.Pt(3, 1), nand),
		ls.NewChipComponent(ls.Pt(6, 0), nand),
		ls.NewChipComponent(ls.Pt(6, 3), nand),
		ls.NewChipComponent(ls.Pt(9, 1), nand),
		ls.NewOutput(ls.Pt(11, 1)),
	} {
		_, err := custom.PushComponent(cc)
		require.NoError(t, err)
	}
	for _, w := range [][2]ls.Point{
		{ls.Pt(1, 0), ls.Pt(2, 0)}, // a
		{ls.Pt(2, 0), ls.Pt(2, 1)},
		{ls.Pt(2, 0), ls.Pt(5, 0)},
		{ls.Pt(1, 3), ls.Pt(2, 3)}, // b
		{ls.Pt(2, 3), ls.Pt(2, 2)},
		{ls.Pt(2, 3), ls.Pt(2, 4)},
		{ls.Pt(2, 4), ls.Pt(5, 4)},
		{ls.Pt(4, 1), ls.Pt(5, 1)}, // n
		{ls.Pt(4, 1), ls.Pt(4, 3)},
		{ls.Pt(4, 3), ls.Pt(5, 3)},
		{ls.Pt(7, 0), ls.Pt(8, 0)},
		{ls.Pt(8, 0), ls.Pt(8, 1)},
		{ls.Pt(7, 3), ls.Pt(8, 3)},
		{ls.Pt(8, 3), ls.Pt(8, 2)},
	} {
		_, err := custom.PushWire(ls.NewWire(w[0], w[1]))
		require.NoError(t, err)
	}
	assert.Equal(t, 4, nand.Refs())

	hwtest.ComparePart(t, xor, custom)
}

func TestInstall(t *testing.T) {
	b := ls.NewBoard()
	idx, err := hl.Install(b)
	require.NoError(t, err)
	assert.Len(t, idx, 7)
	assert.Equal(t, 8, b.Len())
	assert.Equal(t, 0, b.CurrentIndex())

	ha, _ := b.Chip(idx["HalfAdder"])
	assert.Equal(t, 2, ha.Refs(), "the full adder uses the installed half adder twice")

	// library chips survive a save
	var buf bytes.Buffer
	require.NoError(t, b.Encode(&buf))
	nb, err := ls.DecodeBoard(&buf)
	require.NoError(t, err)
	fa, _ := nb.Chip(idx["FullAdder"])
	assert.Equal(t, []bool{false, true}, hwtest.Eval(fa, []bool{true, true, false}))
}
