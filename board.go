// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package logicsim

import (
	"strconv"

	"github.com/pkg/errors"
)

// A Board is a set of chip definitions with one of them being edited. Chip
// definitions can be instantiated as components in other chips of the same
// board.
//
type Board struct {
	chips   []*Chip
	current int
}

// NewBoard returns a board with a single empty chip.
//
func NewBoard() *Board {
	b := &Board{}
	b.NewChip("main")
	return b
}

// NewChip adds an empty chip definition and returns its index. The current
// chip is not changed.
//
func (b *Board) NewChip(name string) int {
	return b.Add(NewChip(name))
}

// Add adds c to the board and returns its index.
//
func (b *Board) Add(c *Chip) int {
	b.chips = append(b.chips, c)
	return len(b.chips) - 1
}

// Len returns the number of chips.
//
func (b *Board) Len() int { return len(b.chips) }

// Chip returns the chip at index i.
//
func (b *Board) Chip(i int) (*Chip, bool) {
	if i < 0 || i >= len(b.chips) {
		return nil, false
	}
	return b.chips[i], true
}

// Chips returns all chip definitions.
//
func (b *Board) Chips() []*Chip { return b.chips }

// Index returns the index of c in the board, or -1.
//
func (b *Board) Index(c *Chip) int {
	for i, cc := range b.chips {
		if cc == c {
			return i
		}
	}
	return -1
}

// Current returns the chip being edited.
//
func (b *Board) Current() *Chip { return b.chips[b.current] }

// CurrentIndex returns the index of the chip being edited.
//
func (b *Board) CurrentIndex() int { return b.current }

// Select makes chip i the current chip.
//
func (b *Board) Select(i int) error {
	if i < 0 || i >= len(b.chips) {
		return errors.Wrap(ErrNotFound, "chip "+strconv.Itoa(i))
	}
	b.current = i
	return nil
}

// Instantiate places chip i as a component at p in the current chip.
//
func (b *Board) Instantiate(i int, p Point) (*Component, error) {
	sub, ok := b.Chip(i)
	if !ok {
		return nil, errors.Wrap(ErrNotFound, "chip "+strconv.Itoa(i))
	}
	cc := NewChipComponent(p, sub)
	if _, err := b.Current().PushComponent(cc); err != nil {
		return nil, errors.Wrapf(err, "instantiate %q", sub.Name())
	}
	return cc, nil
}

// RemoveChip removes chip i and drops the references it holds on the chips it
// wraps. Chips still wrapped by a component and the last chip of the board
// cannot be removed.
//
func (b *Board) RemoveChip(i int) error {
	c, ok := b.Chip(i)
	if !ok {
		return errors.Wrap(ErrNotFound, "chip "+strconv.Itoa(i))
	}
	if len(b.chips) == 1 {
		return errors.New("cannot remove the last chip")
	}
	if c.Refs() > 0 {
		return errors.Errorf("chip %q is used by %d component(s)", c.Name(), c.Refs())
	}
	c.release()
	b.chips = append(b.chips[:i], b.chips[i+1:]...)
	if b.current > i || b.current == len(b.chips) {
		b.current--
	}
	return nil
}
