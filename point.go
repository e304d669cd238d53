// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package logicsim

import (
	"encoding/json"
	"strconv"

	"github.com/pkg/errors"
)

// A Point is an integer grid coordinate. Z is only used as a layering hint by
// renderers; two points are the same grid point when X and Y match.
//
type Point struct {
	X, Y, Z int
}

// Pt returns the point (x, y).
//
func Pt(x, y int) Point { return Point{X: x, Y: y} }

// Eq reports whether p and q are the same grid point.
//
func (p Point) Eq(q Point) bool {
	return p.X == q.X && p.Y == q.Y
}

// key drops Z so that points can be used as map keys.
func (p Point) key() Point {
	return Point{X: p.X, Y: p.Y}
}

// Add returns p translated by (dx, dy).
//
func (p Point) Add(dx, dy int) Point {
	return Point{X: p.X + dx, Y: p.Y + dy, Z: p.Z}
}

func (p Point) String() string {
	return "(" + strconv.Itoa(p.X) + "," + strconv.Itoa(p.Y) + ")"
}

// MarshalJSON encodes p as a flat [x, y] array.
//
func (p Point) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]int{p.X, p.Y})
}

// UnmarshalJSON decodes a [x, y] array.
//
func (p *Point) UnmarshalJSON(b []byte) error {
	var v []int
	if err := json.Unmarshal(b, &v); err != nil {
		return errors.Wrap(err, "point")
	}
	if len(v) != 2 {
		return errors.Errorf("point: expected 2 coordinates, got %d", len(v))
	}
	*p = Point{X: v[0], Y: v[1]}
	return nil
}

// NetID identifies a net in a chip's connection graph.
//
type NetID int

// NoNet is the NetID of a pin that has not been connected yet.
//
const NoNet NetID = -1

// A Pin is a component terminal. Its state is only written by Chip.Tick.
//
type Pin struct {
	Position Point
	Net      NetID
	Active   bool
	Visited  bool
}

func newPin(p Point) Pin {
	return Pin{Position: p, Net: NoNet}
}

// High reports whether the pin carries a signal: pins that the last tick did
// not reach are low regardless of their last active value.
//
func (p *Pin) High() bool {
	return p.Active && p.Visited
}
