// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package editor implements the terminal chip editor as a bubbletea model.
//
// Keys:
//
//	arrows, hjkl  move the cursor
//	s n a o x u   select Switch, Not, And, Or, Xor or Output for placement
//	c             select the next chip of the board for placement
//	enter, space  click the component under the cursor, or place one
//	w             start a wire at the cursor; enter adds a segment, esc ends it
//	d, delete     delete the component, or the wires, under the cursor
//	tab           edit the next chip
//	ctrl+n        add a new chip and edit it
//	ctrl+s        save the board
//	ctrl+p        export the current chip as PNG
//	y, p          copy the current chip to the clipboard, paste a chip
//	q, ctrl+c     quit
//
package editor

import (
	"log/slog"
	"strconv"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	ls "github.com/db47h/logicsim"
	"github.com/db47h/logicsim/internal/config"
)

// Clipboard is the system clipboard.
//
type Clipboard interface {
	ReadAll() (string, error)
	WriteAll(text string) error
}

type systemClipboard struct{}

func (systemClipboard) ReadAll() (string, error)   { return clipboard.ReadAll() }
func (systemClipboard) WriteAll(text string) error { return clipboard.WriteAll(text) }

// Options configure a Model.
//
type Options struct {
	Config    config.Config
	Path      string       // board file; defaults to board.json in the save directory
	Logger    *slog.Logger // defaults to a discarding logger
	Clipboard Clipboard    // defaults to the system clipboard
}

type mode int

const (
	modeNormal mode = iota
	modeWire
)

// palette is what enter places on an empty cell.
type palette struct {
	kind ls.Kind
	chip int // board index when kind is ChipKind
}

// Model is the editor state.
//
type Model struct {
	board *ls.Board
	opts  Options
	log   *slog.Logger

	width, height int
	cursor        ls.Point
	origin        ls.Point

	mode      mode
	wireStart ls.Point
	palette   palette

	status string
	dirty  bool
}

// New returns an editor for board b.
//
func New(b *ls.Board, opts Options) *Model {
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	if opts.Clipboard == nil {
		opts.Clipboard = systemClipboard{}
	}
	if opts.Path == "" {
		opts.Path = opts.Config.SavePath("board.json")
	}
	return &Model{
		board:   b,
		opts:    opts,
		log:     opts.Logger,
		width:   opts.Config.Width,
		height:  opts.Config.Height,
		palette: palette{kind: ls.Switch},
	}
}

// Board returns the edited board.
//
func (m *Model) Board() *ls.Board { return m.board }

// Cursor returns the cursor position.
//
func (m *Model) Cursor() ls.Point { return m.cursor }

// Status returns the last status message.
//
func (m *Model) Status() string { return m.status }

// Init implements tea.Model.
//
func (m *Model) Init() tea.Cmd { return nil }

// Update implements tea.Model.
//
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.scroll()
	case tea.KeyMsg:
		return m, m.key(msg.String())
	}
	return m, nil
}

func (m *Model) key(k string) tea.Cmd {
	switch k {
	case "q", "ctrl+c":
		if m.dirty {
			m.log.Warn("quitting with unsaved changes", "path", m.opts.Path)
		}
		return tea.Quit
	case "up", "k":
		m.move(0, -1)
	case "down", "j":
		m.move(0, 1)
	case "left", "h":
		m.move(-1, 0)
	case "right", "l":
		m.move(1, 0)
	case "esc":
		if m.mode == modeWire {
			m.mode = modeNormal
			m.status = "wire done"
		}
	case "s", "n", "a", "o", "x", "u":
		m.palette = palette{kind: paletteKeys[k]}
		m.status = "placing " + m.palette.kind.String()
	case "c":
		m.nextChipPalette()
	case "enter", " ":
		if m.mode == modeWire {
			m.wireSegment()
		} else {
			m.clickOrPlace()
		}
	case "w":
		if m.mode == modeNormal {
			m.mode, m.wireStart = modeWire, m.cursor
			m.status = "wire from " + m.cursor.String()
		}
	case "d", "delete", "backspace":
		m.delete()
	case "tab":
		m.selectChip((m.board.CurrentIndex() + 1) % m.board.Len())
	case "ctrl+n":
		i := m.board.NewChip("chip" + strconv.Itoa(m.board.Len()))
		m.selectChip(i)
		m.dirty = true
	case "ctrl+s":
		m.save()
	case "ctrl+p":
		m.exportPNG()
	case "y":
		m.copyChip()
	case "p":
		m.pasteChip()
	}
	return nil
}

var paletteKeys = map[string]ls.Kind{
	"s": ls.Switch,
	"n": ls.Not,
	"a": ls.And,
	"o": ls.Or,
	"x": ls.Xor,
	"u": ls.Output,
}

func (m *Model) gridSize() (w, h int) {
	// one line for the chip tabs, one for the status bar
	return m.width, m.height - 2
}

func (m *Model) move(dx, dy int) {
	m.cursor = m.cursor.Add(dx, dy)
	m.scroll()
}

// scroll moves the view so that the cursor stays visible.
func (m *Model) scroll() {
	w, h := m.gridSize()
	if w < 1 || h < 1 {
		return
	}
	switch {
	case m.cursor.X < m.origin.X:
		m.origin.X = m.cursor.X
	case m.cursor.X >= m.origin.X+w:
		m.origin.X = m.cursor.X - w + 1
	}
	switch {
	case m.cursor.Y < m.origin.Y:
		m.origin.Y = m.cursor.Y
	case m.cursor.Y >= m.origin.Y+h:
		m.origin.Y = m.cursor.Y - h + 1
	}
}

func (m *Model) selectChip(i int) {
	if err := m.board.Select(i); err != nil {
		m.fail("select chip", err)
		return
	}
	m.mode = modeNormal
	m.status = "editing " + m.board.Current().Name()
	m.log.Debug("chip selected", "index", i, "name", m.board.Current().Name())
}

func (m *Model) nextChipPalette() {
	n := m.board.Len()
	start := 0
	if m.palette.kind == ls.ChipKind {
		start = m.palette.chip + 1
	}
	for i := 0; i < n; i++ {
		j := (start + i) % n
		if j == m.board.CurrentIndex() {
			continue
		}
		c, _ := m.board.Chip(j)
		if c.Contains(m.board.Current()) {
			continue
		}
		m.palette = palette{kind: ls.ChipKind, chip: j}
		m.status = "placing chip " + c.Name()
		return
	}
	m.status = "no chip to place"
}

func (m *Model) fail(op string, err error) {
	m.status = op + ": " + err.Error()
	m.log.Error(op+" failed", "error", err)
}
