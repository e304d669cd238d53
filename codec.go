// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package logicsim

import (
	"encoding/json"
	"io"
	"strconv"

	"github.com/pkg/errors"
)

type boardDoc struct {
	Current int       `json:"current"`
	Chips   []chipDoc `json:"chips"`
}

type chipDoc struct {
	Name       *string        `json:"name"`
	Wires      [][]Point      `json:"wires"`
	Components []componentDoc `json:"components"`
}

type componentDoc struct {
	Type      string `json:"type"`
	Position  *Point `json:"position"`
	Active    *bool  `json:"active,omitempty"`
	Deletable *bool  `json:"deletable,omitempty"`
	Chip      *int   `json:"chip,omitempty"`
}

func boolPtr(v bool) *bool { return &v }

func encodeChip(c *Chip, index func(*Chip) int) (chipDoc, error) {
	name := c.name
	d := chipDoc{Name: &name, Wires: [][]Point{}, Components: []componentDoc{}}
	c.Wires(func(_ int, w *Wire) bool {
		d.Wires = append(d.Wires, []Point{w.From, w.To})
		return true
	})
	var err error
	c.Components(func(id int, cc *Component) bool {
		pos := cc.pos
		cd := componentDoc{Type: cc.kind.String(), Position: &pos}
		switch cc.kind {
		case Switch:
			cd.Active = boolPtr(cc.on)
		case Output:
			if cc.deletable {
				cd.Deletable = boolPtr(true)
			}
		case ChipKind:
			i := index(cc.sock.chip)
			if i < 0 {
				err = errors.Wrapf(ErrNotFound, "component %d: nested chip %q is not on the board", id, cc.sock.chip.name)
				return false
			}
			cd.Chip = &i
		}
		d.Components = append(d.Components, cd)
		return true
	})
	return d, err
}

// decodeChip replays d through the chip mutation methods.
func decodeChip(d *chipDoc, resolve func(int) (*Chip, bool)) (_ *Chip, err error) {
	if d.Name == nil {
		return nil, errors.New("missing chip name")
	}
	c := NewChip(*d.Name)
	defer func() {
		if err != nil {
			c.release()
		}
	}()
	for i, w := range d.Wires {
		if len(w) != 2 {
			return nil, errors.Errorf("wire %d: expected 2 points, got %d", i, len(w))
		}
		if _, err := c.PushWire(NewWire(w[0], w[1])); err != nil {
			return nil, errors.Wrapf(err, "wire %d", i)
		}
	}
	for i := range d.Components {
		cd := &d.Components[i]
		if cd.Position == nil {
			return nil, errors.Errorf("component %d: missing position", i)
		}
		k, ok := KindOf(cd.Type)
		if !ok {
			return nil, errors.Errorf("component %d: unknown type %q", i, cd.Type)
		}
		var cc *Component
		if k == ChipKind {
			if cd.Chip == nil {
				return nil, errors.Errorf("component %d: missing chip index", i)
			}
			sub, ok := resolve(*cd.Chip)
			if !ok {
				return nil, errors.Wrapf(ErrNotFound, "component %d: chip %d", i, *cd.Chip)
			}
			cc = NewChipComponent(*cd.Position, sub)
		} else {
			cc, _ = New(k, *cd.Position)
		}
		if cd.Active != nil {
			cc.SetOn(*cd.Active)
		}
		if cd.Deletable != nil {
			cc.SetDeletable(*cd.Deletable)
		}
		if _, err := c.PushComponent(cc); err != nil {
			return nil, errors.Wrapf(err, "component %d", i)
		}
	}
	return c, nil
}

// release drops the references c holds on nested chips.
func (c *Chip) release() {
	for _, cc := range c.components {
		if cc != nil && cc.sock != nil {
			cc.sock.chip.refs--
		}
	}
}

// Encode writes the board as JSON to w.
//
func (b *Board) Encode(w io.Writer) error {
	d := boardDoc{Current: b.current, Chips: make([]chipDoc, len(b.chips))}
	for i, c := range b.chips {
		cd, err := encodeChip(c, b.Index)
		if err != nil {
			return errors.Wrapf(err, "chip %d", i)
		}
		d.Chips[i] = cd
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return errors.Wrap(enc.Encode(&d), "encode board")
}

// EncodeChip writes chip i alone as JSON to w. Nested chip references are
// board indices.
//
func (b *Board) EncodeChip(w io.Writer, i int) error {
	c, ok := b.Chip(i)
	if !ok {
		return errors.Wrap(ErrNotFound, "chip "+strconv.Itoa(i))
	}
	d, err := encodeChip(c, b.Index)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return errors.Wrap(enc.Encode(&d), "encode chip")
}

// DecodeChip reads a single chip document, as written by EncodeChip, and
// adds it to the board. Nested chip references resolve against the board.
// On error the board is left unchanged.
//
func (b *Board) DecodeChip(r io.Reader) (int, error) {
	var d chipDoc
	if err := json.NewDecoder(r).Decode(&d); err != nil {
		return -1, errors.Wrap(err, "decode chip")
	}
	c, err := decodeChip(&d, b.Chip)
	if err != nil {
		return -1, err
	}
	return b.Add(c), nil
}

// DecodeBoard reads a board written by Encode.
//
// Chips are rebuilt in dependency order so that nested chips exist before
// the chips wrapping them. Reference cycles, dangling chip indices and any
// malformed chip fail the whole document.
//
func DecodeBoard(r io.Reader) (*Board, error) {
	var d boardDoc
	if err := json.NewDecoder(r).Decode(&d); err != nil {
		return nil, errors.Wrap(err, "decode board")
	}
	if len(d.Chips) == 0 {
		return nil, errors.New("board has no chips")
	}
	if d.Current < 0 || d.Current >= len(d.Chips) {
		return nil, errors.Errorf("current chip %d out of range", d.Current)
	}

	order, err := chipOrder(d.Chips)
	if err != nil {
		return nil, err
	}
	chips := make([]*Chip, len(d.Chips))
	resolve := func(i int) (*Chip, bool) {
		if i < 0 || i >= len(chips) || chips[i] == nil {
			return nil, false
		}
		return chips[i], true
	}
	for _, i := range order {
		c, err := decodeChip(&d.Chips[i], resolve)
		if err != nil {
			return nil, errors.Wrapf(err, "chip %d", i)
		}
		chips[i] = c
	}
	return &Board{chips: chips, current: d.Current}, nil
}

// chipOrder returns chip indices sorted so that every chip comes after the
// chips it wraps.
func chipOrder(docs []chipDoc) ([]int, error) {
	const (
		white = iota
		grey
		black
	)
	color := make([]int, len(docs))
	order := make([]int, 0, len(docs))

	var visit func(i int) error
	visit = func(i int) error {
		switch color[i] {
		case grey:
			return errors.Wrapf(ErrChipCycle, "chip %d", i)
		case black:
			return nil
		}
		color[i] = grey
		for j, cd := range docs[i].Components {
			if cd.Chip == nil || cd.Type != ChipKind.String() {
				continue
			}
			n := *cd.Chip
			if n < 0 || n >= len(docs) {
				return errors.Wrapf(ErrNotFound, "chip %d, component %d: chip %d", i, j, n)
			}
			if err := visit(n); err != nil {
				return err
			}
		}
		color[i] = black
		order = append(order, i)
		return nil
	}
	for i := range docs {
		if err := visit(i); err != nil {
			return nil, err
		}
	}
	return order, nil
}
