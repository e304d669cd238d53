package logicsim_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	ls "github.com/db47h/logicsim"
	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// andBoard returns a board where chip 0 wraps an AND chip (chip 1).
func andBoard(t *testing.T) (b *ls.Board, a, bb, out *ls.Component) {
	t.Helper()
	b = ls.NewBoard()
	i := b.NewChip("and")
	and, _ := b.Chip(i)
	push(t, and,
		ls.NewSwitch(ls.Pt(0, 0)), ls.NewSwitch(ls.Pt(0, 2)),
		ls.NewAnd(ls.Pt(2, 1)), ls.NewOutput(ls.Pt(4, 1)))

	main := b.Current()
	a, bb = ls.NewSwitch(ls.Pt(0, 0)), ls.NewSwitch(ls.Pt(0, 2))
	out = ls.NewOutput(ls.Pt(6, 0))
	push(t, main, a, bb, out)
	if _, err := b.Instantiate(i, ls.Pt(3, 0)); err != nil {
		t.Fatal(err)
	}
	wire(t, main, 1, 0, 2, 0)
	wire(t, main, 1, 2, 1, 1)
	wire(t, main, 1, 1, 2, 1)
	wire(t, main, 4, 0, 5, 0)
	return b, a, bb, out
}

type compDesc struct {
	Kind     ls.Kind
	Position ls.Point
	On       bool
	Nested   string
}

func describe(c *ls.Chip) (comps []compDesc, wires [][2]ls.Point) {
	c.Components(func(_ int, cc *ls.Component) bool {
		d := compDesc{Kind: cc.Kind(), Position: cc.Position(), On: cc.On()}
		if n := cc.Nested(); n != nil {
			d.Nested = n.Name()
		}
		comps = append(comps, d)
		return true
	})
	c.Wires(func(_ int, w *ls.Wire) bool {
		wires = append(wires, [2]ls.Point{w.From, w.To})
		return true
	})
	return comps, wires
}

func TestBoard_roundTrip(t *testing.T) {
	b, a, bb, out := andBoard(t)
	b.Current().Click(a.Position())
	b.Current().Click(bb.Position())
	require.True(t, out.Level())

	var buf bytes.Buffer
	require.NoError(t, b.Encode(&buf))

	nb, err := ls.DecodeBoard(&buf)
	if err != nil {
		trace(t, err)
		t.Fatal(err)
	}
	require.Equal(t, b.Len(), nb.Len())
	assert.Equal(t, b.CurrentIndex(), nb.CurrentIndex())
	for i := 0; i < b.Len(); i++ {
		c0, _ := b.Chip(i)
		c1, _ := nb.Chip(i)
		assert.Equal(t, c0.Name(), c1.Name())
		comps0, wires0 := describe(c0)
		comps1, wires1 := describe(c1)
		if diff := cmp.Diff(comps0, comps1); diff != "" {
			t.Errorf("chip %d components (-saved +loaded):\n%s", i, diff)
		}
		if diff := cmp.Diff(wires0, wires1); diff != "" {
			t.Errorf("chip %d wires (-saved +loaded):\n%s", i, diff)
		}
	}

	// the loaded circuit computes the same thing
	nested, _ := nb.Chip(1)
	assert.Equal(t, 1, nested.Refs())
	probes := nb.Current().Probes()
	require.Len(t, probes, 1)
	o, _ := nb.Current().Component(probes[0])
	assert.True(t, o.Level())
	nb.Current().Click(ls.Pt(0, 0))
	assert.False(t, o.Level())
}

func TestBoard_encodeFormat(t *testing.T) {
	b := ls.NewBoard()
	c := b.Current()
	sw := ls.NewSwitch(ls.Pt(1, 2))
	push(t, c, sw, ls.NewOutput(ls.Pt(5, 2)))
	c.Click(sw.Position())
	wire(t, c, 2, 2, 4, 2)

	var buf bytes.Buffer
	require.NoError(t, b.EncodeChip(&buf, 0))
	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))

	want := map[string]interface{}{
		"name":  "main",
		"wires": []interface{}{[]interface{}{[]interface{}{2.0, 2.0}, []interface{}{4.0, 2.0}}},
		"components": []interface{}{
			map[string]interface{}{"type": "SwitchComponent", "position": []interface{}{1.0, 2.0}, "active": true},
			map[string]interface{}{"type": "OutputComponent", "position": []interface{}{5.0, 2.0}},
		},
	}
	if diff := cmp.Diff(want, doc); diff != "" {
		t.Errorf("encoded chip (-want +got):\n%s", diff)
	}
}

func TestBoard_decodeChip(t *testing.T) {
	b, _, _, _ := andBoard(t)
	var buf bytes.Buffer
	require.NoError(t, b.EncodeChip(&buf, 0))

	i, err := b.DecodeChip(&buf)
	require.NoError(t, err)
	assert.Equal(t, 2, i)
	nested, _ := b.Chip(1)
	assert.Equal(t, 2, nested.Refs())
}

func TestBoard_decodeChipAtomic(t *testing.T) {
	b, _, _, _ := andBoard(t)
	doc := `{
		"name": "broken",
		"wires": [],
		"components": [
			{"type": "ChipComponent", "position": [0, 0], "chip": 1},
			{"type": "NandComponent", "position": [4, 0]}
		]
	}`
	_, err := b.DecodeChip(strings.NewReader(doc))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "NandComponent")
	assert.Equal(t, 2, b.Len())
	nested, _ := b.Chip(1)
	assert.Equal(t, 1, nested.Refs())
}

func TestDecodeBoard_errors(t *testing.T) {
	data := []struct {
		name  string
		doc   string
		cause error
	}{
		{"cycle", `{"current": 0, "chips": [
			{"name": "a", "wires": [], "components": [{"type": "ChipComponent", "position": [0, 0], "chip": 1}]},
			{"name": "b", "wires": [], "components": [{"type": "ChipComponent", "position": [0, 0], "chip": 0}]}
		]}`, ls.ErrChipCycle},
		{"self", `{"current": 0, "chips": [
			{"name": "a", "wires": [], "components": [{"type": "ChipComponent", "position": [0, 0], "chip": 0}]}
		]}`, ls.ErrChipCycle},
		{"dangling", `{"current": 0, "chips": [
			{"name": "a", "wires": [], "components": [{"type": "ChipComponent", "position": [0, 0], "chip": 3}]}
		]}`, ls.ErrNotFound},
		{"collision", `{"current": 0, "chips": [
			{"name": "a", "wires": [], "components": [
				{"type": "AndComponent", "position": [0, 0]},
				{"type": "OrComponent", "position": [0, 0]}
			]}
		]}`, ls.ErrPositionTaken},
		{"diagonal", `{"current": 0, "chips": [
			{"name": "a", "wires": [[[0, 0], [2, 2]]], "components": []}
		]}`, ls.ErrInvariantViolation},
		{"unknown_type", `{"current": 0, "chips": [
			{"name": "a", "wires": [], "components": [{"type": "FlipFlop", "position": [0, 0]}]}
		]}`, nil},
		{"no_name", `{"current": 0, "chips": [{"wires": [], "components": []}]}`, nil},
		{"bad_point", `{"current": 0, "chips": [
			{"name": "a", "wires": [[[0, 0, 1], [2, 0]]], "components": []}
		]}`, nil},
		{"current", `{"current": 1, "chips": [{"name": "a", "wires": [], "components": []}]}`, nil},
		{"empty", `{"current": 0, "chips": []}`, nil},
	}
	for _, d := range data {
		t.Run(d.name, func(t *testing.T) {
			_, err := ls.DecodeBoard(strings.NewReader(d.doc))
			require.Error(t, err)
			if d.cause != nil {
				assert.Equal(t, d.cause, errors.Cause(err), "%v", err)
			}
		})
	}
}
