// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package logicsim

// WireStatus is the outcome of Chip.PushWire.
//
type WireStatus int

// Wire push outcomes.
//
// WireConnected tells an editor that the wire ended on an existing net, so
// that it can stop a multi-segment wire drawing.
//
const (
	WireValid WireStatus = iota
	WireConnected
	WireInvalid
)

func (s WireStatus) String() string {
	switch s {
	case WireValid:
		return "valid"
	case WireConnected:
		return "connected"
	case WireInvalid:
		return "invalid"
	}
	return "unknown"
}

// A Wire is an axis aligned conductor between two grid points. Its state is
// whatever was last propagated into it by Chip.Tick.
//
type Wire struct {
	From, To Point
	Nets     [2]NetID
	Active   bool
	Visited  bool

	free bool
}

// NewWire returns a wire from a to b.
//
func NewWire(a, b Point) Wire {
	return Wire{From: a, To: b, Nets: [2]NetID{NoNet, NoNet}}
}

// Degenerate reports whether both ends are the same point.
//
func (w *Wire) Degenerate() bool {
	return w.From.Eq(w.To)
}

// AxisAligned reports whether the wire is strictly horizontal or vertical.
//
func (w *Wire) AxisAligned() bool {
	return (w.From.X == w.To.X) != (w.From.Y == w.To.Y)
}

// normalize swaps coordinates so that From <= To on both axes.
func (w *Wire) normalize() {
	if w.From.X > w.To.X {
		w.From.X, w.To.X = w.To.X, w.From.X
	}
	if w.From.Y > w.To.Y {
		w.From.Y, w.To.Y = w.To.Y, w.From.Y
	}
}

// Contains reports whether p lies on the wire span, ends included. The wire
// must be normalized.
//
func (w *Wire) Contains(p Point) bool {
	switch {
	case w.From.X == w.To.X:
		return p.X == w.From.X && w.From.Y <= p.Y && p.Y <= w.To.Y
	case w.From.Y == w.To.Y:
		return p.Y == w.From.Y && w.From.X <= p.X && p.X <= w.To.X
	}
	return false
}

// Len returns the wire length in grid cells.
//
func (w *Wire) Len() int {
	return w.To.X - w.From.X + w.To.Y - w.From.Y
}

// High reports whether the wire carries a signal after the last tick.
//
func (w *Wire) High() bool {
	return w.Active && w.Visited
}
