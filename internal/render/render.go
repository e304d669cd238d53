// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package render draws chips, either as a PNG image or as styled text for a
// terminal.
//
package render

import (
	"strings"

	ls "github.com/db47h/logicsim"
)

// Config holds the rendering settings. Colors are "#rrggbb" strings.
//
type Config struct {
	CellSize   int // PNG pixels per grid cell
	ShowGrid   bool
	Active     string
	Inactive   string
	Wire       string
	Grid       string
	Body       string
	Background string
}

// DefaultConfig returns the default rendering settings.
//
func DefaultConfig() Config {
	return Config{
		CellSize:   16,
		ShowGrid:   true,
		Active:     "#e05050",
		Inactive:   "#505050",
		Wire:       "#8080a0",
		Grid:       "#303030",
		Body:       "#d0d0d0",
		Background: "#101010",
	}
}

// Bounds returns the smallest rectangle holding every live component, pin and
// wire of c. ok is false for an empty chip.
//
func Bounds(c *ls.Chip) (min, max ls.Point, ok bool) {
	add := func(p ls.Point) {
		if !ok {
			min, max, ok = ls.Pt(p.X, p.Y), ls.Pt(p.X, p.Y), true
			return
		}
		if p.X < min.X {
			min.X = p.X
		}
		if p.Y < min.Y {
			min.Y = p.Y
		}
		if p.X > max.X {
			max.X = p.X
		}
		if p.Y > max.Y {
			max.Y = p.Y
		}
	}
	c.Components(func(_ int, cc *ls.Component) bool {
		add(cc.Position())
		for _, p := range cc.Inputs() {
			add(p.Position)
		}
		for _, p := range cc.Outputs() {
			add(p.Position)
		}
		return true
	})
	c.Wires(func(_ int, w *ls.Wire) bool {
		add(w.From)
		add(w.To)
		return true
	})
	return min, max, ok
}

// height returns the number of rows covered by the body of cc.
func height(cc *ls.Component) int {
	h := len(cc.Inputs())
	if n := len(cc.Outputs()); n > h {
		h = n
	}
	if cc.Kind() != ls.ChipKind || h < 1 {
		h = 1
	}
	return h
}

// label returns the IEC symbol of a gate or the name of a nested chip.
func label(cc *ls.Component) string {
	switch cc.Kind() {
	case ls.Not:
		return "1"
	case ls.And:
		return "&"
	case ls.Or:
		return "≥1"
	case ls.Xor:
		return "=1"
	case ls.ChipKind:
		return cc.Nested().Name()
	}
	return ""
}

// glyph returns the single character shown for cc in a text grid.
func glyph(cc *ls.Component) string {
	switch cc.Kind() {
	case ls.Switch:
		if cc.On() {
			return "◉"
		}
		return "○"
	case ls.Output:
		if cc.Level() {
			return "▮"
		}
		return "▯"
	case ls.Not:
		return "¬"
	case ls.And:
		return "∧"
	case ls.Or:
		return "∨"
	case ls.Xor:
		return "⊕"
	case ls.ChipKind:
		if n := cc.Nested().Name(); n != "" {
			return strings.ToUpper(string([]rune(n)[:1]))
		}
		return "C"
	}
	return "?"
}
