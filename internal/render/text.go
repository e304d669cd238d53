// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	ls "github.com/db47h/logicsim"
)

// View is the part of the grid shown by Text, one terminal cell per grid
// cell.
//
type View struct {
	Origin     ls.Point // top-left cell
	Width      int
	Height     int
	Cursor     ls.Point
	ShowCursor bool
}

// Contains reports whether p is visible.
//
func (v *View) Contains(p ls.Point) bool {
	return p.X >= v.Origin.X && p.X < v.Origin.X+v.Width &&
		p.Y >= v.Origin.Y && p.Y < v.Origin.Y+v.Height
}

type style int

const (
	styleGrid style = iota
	styleWire
	styleActive
	styleInactive
	styleBody
	styleCount
)

type cell struct {
	glyph  string
	style  style
	hw, vw bool // horizontal, vertical wire
}

type textGrid struct {
	v     View
	cells [][]cell
}

func (g *textGrid) at(p ls.Point) *cell {
	if !g.v.Contains(p) {
		return nil
	}
	return &g.cells[p.Y-g.v.Origin.Y][p.X-g.v.Origin.X]
}

func pinStyle(high bool) style {
	if high {
		return styleActive
	}
	return styleInactive
}

func wireStyle(w *ls.Wire) style {
	if !w.Visited {
		return styleWire
	}
	return pinStyle(w.High())
}

// Text draws the part of c selected by v. Rows are separated by newlines.
//
func Text(c *ls.Chip, cfg Config, v View) string {
	if v.Width <= 0 || v.Height <= 0 {
		return ""
	}
	empty := " "
	if cfg.ShowGrid {
		empty = "·"
	}
	g := &textGrid{v: v, cells: make([][]cell, v.Height)}
	for y := range g.cells {
		g.cells[y] = make([]cell, v.Width)
		for x := range g.cells[y] {
			g.cells[y][x] = cell{glyph: empty, style: styleGrid}
		}
	}

	c.Wires(func(_ int, w *ls.Wire) bool {
		st := wireStyle(w)
		horizontal := w.From.Y == w.To.Y
		for p := w.From; ; {
			if cl := g.at(p); cl != nil {
				if horizontal {
					cl.hw = true
				} else {
					cl.vw = true
				}
				// a live signal wins over a dead one on crossings
				if cl.style != styleActive {
					cl.style = st
				}
			}
			if p.Eq(w.To) {
				break
			}
			if horizontal {
				p = p.Add(1, 0)
			} else {
				p = p.Add(0, 1)
			}
		}
		return true
	})
	for y := range g.cells {
		for x := range g.cells[y] {
			cl := &g.cells[y][x]
			switch {
			case cl.hw && cl.vw:
				cl.glyph = "┼"
			case cl.hw:
				cl.glyph = "─"
			case cl.vw:
				cl.glyph = "│"
			}
		}
	}

	c.Components(func(_ int, cc *ls.Component) bool {
		pins := func(ps []ls.Pin) {
			for i := range ps {
				if cl := g.at(ps[i].Position); cl != nil && !cl.hw && !cl.vw {
					cl.glyph, cl.style = "•", pinStyle(ps[i].High())
				}
			}
		}
		pins(cc.Inputs())
		pins(cc.Outputs())

		p := cc.Position()
		if cl := g.at(p); cl != nil {
			cl.glyph, cl.style = glyph(cc), styleBody
			switch cc.Kind() {
			case ls.Switch:
				cl.style = pinStyle(cc.On())
			case ls.Output:
				cl.style = pinStyle(cc.Level())
			}
		}
		for i := 1; i < height(cc); i++ {
			if cl := g.at(p.Add(0, i)); cl != nil {
				cl.glyph, cl.style = "▒", styleBody
			}
		}
		return true
	})

	return g.render(cfg)
}

func (g *textGrid) render(cfg Config) string {
	var styles [styleCount]lipgloss.Style
	fg := func(c string) lipgloss.Style {
		return lipgloss.NewStyle().Foreground(lipgloss.Color(c))
	}
	styles[styleGrid] = fg(cfg.Grid)
	styles[styleWire] = fg(cfg.Wire)
	styles[styleActive] = fg(cfg.Active).Bold(true)
	styles[styleInactive] = fg(cfg.Inactive)
	styles[styleBody] = fg(cfg.Body)

	var b strings.Builder
	for y, row := range g.cells {
		if y > 0 {
			b.WriteByte('\n')
		}
		for x := range row {
			st := styles[row[x].style]
			if g.v.ShowCursor && g.v.Cursor.Eq(g.v.Origin.Add(x, y)) {
				st = st.Copy().Reverse(true)
			}
			b.WriteString(st.Render(row[x].glyph))
		}
	}
	return b.String()
}
