// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package editor

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	ls "github.com/db47h/logicsim"
	"github.com/db47h/logicsim/internal/render"
	"github.com/pkg/errors"
)

func (m *Model) clickOrPlace() {
	c := m.board.Current()
	if c.Click(m.cursor) {
		m.status = "click " + m.cursor.String()
		return
	}

	var (
		cc  *ls.Component
		err error
	)
	if m.palette.kind == ls.ChipKind {
		cc, err = m.board.Instantiate(m.palette.chip, m.cursor)
	} else {
		cc, _ = ls.New(m.palette.kind, m.cursor)
		if m.palette.kind == ls.Output {
			cc.SetDeletable(true)
		}
		_, err = c.PushComponent(cc)
	}
	if err != nil {
		m.fail("place", err)
		return
	}
	m.dirty = true
	m.status = "placed " + cc.Kind().String() + " at " + m.cursor.String()
	m.log.Debug("component placed", "chip", c.Name(), "kind", cc.Kind().String(), "at", m.cursor.String())
}

// wireTarget returns the end of the segment drawn from the wire start to the
// cursor, locked on the dominant axis.
func (m *Model) wireTarget() ls.Point {
	dx, dy := m.cursor.X-m.wireStart.X, m.cursor.Y-m.wireStart.Y
	if abs(dx) >= abs(dy) {
		return ls.Pt(m.cursor.X, m.wireStart.Y)
	}
	return ls.Pt(m.wireStart.X, m.cursor.Y)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func (m *Model) wireSegment() {
	to := m.wireTarget()
	st, err := m.board.Current().PushWire(ls.NewWire(m.wireStart, to))
	if err != nil {
		m.fail("wire", err)
		m.mode = modeNormal
		return
	}
	if !m.wireStart.Eq(to) {
		m.dirty = true
		m.log.Debug("wire added", "from", m.wireStart.String(), "to", to.String(), "status", st.String())
	}
	if st == ls.WireConnected {
		m.mode = modeNormal
		m.status = "wire connected at " + to.String()
		return
	}
	m.wireStart = to
	m.status = "wire from " + to.String()
}

func (m *Model) delete() {
	c := m.board.Current()
	if c.RemoveComponent(m.cursor) {
		m.dirty = true
		m.status = "deleted component at " + m.cursor.String()
		return
	}
	if n := c.RemoveWire(m.cursor); n > 0 {
		m.dirty = true
		m.status = "deleted wires at " + m.cursor.String()
		return
	}
	m.status = "nothing to delete"
}

func (m *Model) save() {
	var buf bytes.Buffer
	if err := m.board.Encode(&buf); err != nil {
		m.fail("save", err)
		return
	}
	if err := writeFile(m.opts.Path, buf.Bytes()); err != nil {
		m.fail("save", err)
		return
	}
	m.dirty = false
	m.status = "saved " + m.opts.Path
	m.log.Info("board saved", "path", m.opts.Path, "chips", m.board.Len())
}

func (m *Model) exportPNG() {
	c := m.board.Current()
	var buf bytes.Buffer
	if err := render.PNG(&buf, c, m.opts.Config.Render); err != nil {
		m.fail("export", err)
		return
	}
	path := m.opts.Config.SavePath(fileName(c.Name()) + ".png")
	if err := writeFile(path, buf.Bytes()); err != nil {
		m.fail("export", err)
		return
	}
	m.status = "exported " + path
	m.log.Info("chip exported", "chip", c.Name(), "path", path)
}

func (m *Model) copyChip() {
	var buf bytes.Buffer
	if err := m.board.EncodeChip(&buf, m.board.CurrentIndex()); err != nil {
		m.fail("copy", err)
		return
	}
	if err := m.opts.Clipboard.WriteAll(buf.String()); err != nil {
		m.fail("copy", errors.Wrap(err, "clipboard"))
		return
	}
	m.status = "copied " + m.board.Current().Name()
}

func (m *Model) pasteChip() {
	s, err := m.opts.Clipboard.ReadAll()
	if err != nil {
		m.fail("paste", errors.Wrap(err, "clipboard"))
		return
	}
	i, err := m.board.DecodeChip(strings.NewReader(s))
	if err != nil {
		m.fail("paste", err)
		return
	}
	m.dirty = true
	m.selectChip(i)
	m.status = "pasted " + m.board.Current().Name()
}

func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrap(err, "create directory")
		}
	}
	return errors.Wrap(os.WriteFile(path, data, 0o644), "write file")
}

// fileName maps a chip name to something usable as a file name.
func fileName(name string) string {
	if name == "" {
		return "chip"
	}
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', ' ':
			return '_'
		}
		return r
	}, name)
}
