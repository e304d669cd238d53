// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package editor

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	ls "github.com/db47h/logicsim"
	"github.com/db47h/logicsim/internal/render"
)

var (
	tabStyle       = lipgloss.NewStyle().Padding(0, 1)
	activeTabStyle = tabStyle.Copy().Reverse(true)
	statusStyle    = lipgloss.NewStyle().Bold(true)
	modeStyle      = lipgloss.NewStyle().Reverse(true).Padding(0, 1)
)

// View implements tea.Model.
//
func (m *Model) View() string {
	w, h := m.gridSize()
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	grid := render.Text(m.board.Current(), m.opts.Config.Render, render.View{
		Origin:     m.origin,
		Width:      w,
		Height:     h,
		Cursor:     m.cursor,
		ShowCursor: true,
	})
	return m.tabs() + "\n" + grid + "\n" + m.statusLine()
}

func (m *Model) tabs() string {
	var b strings.Builder
	for i, c := range m.board.Chips() {
		st := tabStyle
		if i == m.board.CurrentIndex() {
			st = activeTabStyle
		}
		b.WriteString(st.Render(c.Name()))
	}
	return b.String()
}

func (m *Model) statusLine() string {
	md := "EDIT"
	if m.mode == modeWire {
		md = "WIRE"
	}
	place := m.palette.kind.String()
	if m.palette.kind == ls.ChipKind {
		if c, ok := m.board.Chip(m.palette.chip); ok {
			place = c.Name()
		}
	}
	comps, wires := m.board.Current().Len()
	info := m.cursor.String() + " " + place +
		" c:" + strconv.Itoa(comps) + " w:" + strconv.Itoa(wires)
	if n := m.board.Current().Stale(); n > 0 {
		info += " stale:" + strconv.Itoa(n)
	}
	if m.dirty {
		info += " *"
	}
	if m.status != "" {
		info += "  " + m.status
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, modeStyle.Render(md), " ", statusStyle.Render(info))
}
