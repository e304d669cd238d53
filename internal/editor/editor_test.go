package editor_test

import (
	"bytes"
	"image/png"
	"os"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	ls "github.com/db47h/logicsim"
	"github.com/db47h/logicsim/internal/config"
	"github.com/db47h/logicsim/internal/editor"
	"github.com/muesli/termenv"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	lipgloss.SetColorProfile(termenv.Ascii)
	os.Exit(m.Run())
}

type fakeClipboard struct {
	text string
	err  error
}

func (c *fakeClipboard) ReadAll() (string, error) { return c.text, c.err }
func (c *fakeClipboard) WriteAll(s string) error {
	if c.err != nil {
		return c.err
	}
	c.text = s
	return nil
}

var specialKeys = map[string]tea.KeyType{
	"enter":  tea.KeyEnter,
	"esc":    tea.KeyEsc,
	"tab":    tea.KeyTab,
	"up":     tea.KeyUp,
	"down":   tea.KeyDown,
	"left":   tea.KeyLeft,
	"right":  tea.KeyRight,
	"delete": tea.KeyDelete,
	"ctrl+n": tea.KeyCtrlN,
	"ctrl+s": tea.KeyCtrlS,
	"ctrl+p": tea.KeyCtrlP,
}

func key(k string) tea.KeyMsg {
	if t, ok := specialKeys[k]; ok {
		return tea.KeyMsg{Type: t}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

// press sends keys to m. A key followed by *n is repeated n times.
func press(m *editor.Model, keys ...string) tea.Cmd {
	var cmd tea.Cmd
	for _, k := range keys {
		n := 1
		if i := strings.IndexByte(k, '*'); i > 0 {
			n = int(k[i+1] - '0')
			k = k[:i]
		}
		for ; n > 0; n-- {
			_, cmd = m.Update(key(k))
		}
	}
	return cmd
}

func newEditor(t *testing.T) (*editor.Model, *fakeClipboard) {
	t.Helper()
	cfg := config.Default()
	cfg.SaveDir = t.TempDir()
	clip := &fakeClipboard{}
	return editor.New(ls.NewBoard(), editor.Options{Config: cfg, Clipboard: clip}), clip
}

func componentAt(t *testing.T, c *ls.Chip, p ls.Point) *ls.Component {
	t.Helper()
	id, ok := c.ComponentAt(p)
	require.True(t, ok, "no component at %v", p)
	cc, _ := c.Component(id)
	return cc
}

func TestEditor_passthrough(t *testing.T) {
	m, _ := newEditor(t)
	press(m,
		"s", "enter", // switch at (0,0)
		"l*4", "u", "enter", // output at (4,0)
		"h*3", "w", "l*2", "enter", // wire (1,0)-(3,0)
	)
	c := m.Board().Current()
	comps, wires := c.Len()
	assert.Equal(t, 2, comps)
	assert.Equal(t, 1, wires)
	assert.Contains(t, m.Status(), "connected")

	out := componentAt(t, c, ls.Pt(4, 0))
	assert.True(t, out.Deletable())
	assert.False(t, out.Level())

	press(m, "h*3", "enter")
	assert.Equal(t, ls.Pt(0, 0), m.Cursor())
	assert.True(t, out.Level())
}

func TestEditor_wireAxisLock(t *testing.T) {
	m, _ := newEditor(t)
	press(m, "w", "l*3", "j", "enter")
	c := m.Board().Current()
	w, err := c.Wire(0)
	require.NoError(t, err)
	assert.Equal(t, ls.Pt(0, 0), w.From)
	assert.Equal(t, ls.Pt(3, 0), w.To)

	// still drawing from (3,0): a vertical segment down to the cursor
	press(m, "j*2", "enter")
	w, err = c.Wire(1)
	require.NoError(t, err)
	assert.Equal(t, ls.Pt(3, 0), w.From)
	assert.Equal(t, ls.Pt(3, 3), w.To)

	// back in normal mode, enter places a component
	press(m, "esc", "enter")
	componentAt(t, c, ls.Pt(3, 3))
}

func TestEditor_delete(t *testing.T) {
	m, _ := newEditor(t)
	c := m.Board().Current()

	press(m, "n", "enter", "d")
	comps, _ := c.Len()
	assert.Equal(t, 0, comps)

	press(m, "u", "enter", "delete")
	comps, _ = c.Len()
	assert.Equal(t, 0, comps)

	press(m, "w", "l*2", "enter", "esc", "d")
	_, wires := c.Len()
	assert.Equal(t, 0, wires)

	press(m, "d")
	assert.Equal(t, "nothing to delete", m.Status())
}

func TestEditor_chips(t *testing.T) {
	m, _ := newEditor(t)
	b := m.Board()

	press(m, "ctrl+n")
	require.Equal(t, 2, b.Len())
	assert.Equal(t, 1, b.CurrentIndex())
	assert.Equal(t, "chip1", b.Current().Name())

	press(m, "tab")
	assert.Equal(t, 0, b.CurrentIndex())

	press(m, "c", "l*2", "enter")
	sub, _ := b.Chip(1)
	assert.Equal(t, 1, sub.Refs())
	assert.Equal(t, ls.ChipKind, componentAt(t, b.Current(), ls.Pt(2, 0)).Kind())

	// main wraps chip1, so chip1 has nothing it may place
	press(m, "tab", "c")
	assert.Equal(t, 1, b.CurrentIndex())
	assert.Equal(t, "no chip to place", m.Status())
}

func TestEditor_clickOccupied(t *testing.T) {
	m, _ := newEditor(t)
	// an And gate may sit on a pin of the Not gate
	press(m, "n", "enter", "l", "a", "enter")
	componentAt(t, m.Board().Current(), ls.Pt(1, 0))

	press(m, "enter")
	comps, _ := m.Board().Current().Len()
	assert.Equal(t, 2, comps)
}

func TestEditor_save(t *testing.T) {
	cfg := config.Default()
	cfg.SaveDir = t.TempDir()
	m := editor.New(ls.NewBoard(), editor.Options{Config: cfg, Clipboard: &fakeClipboard{}})
	press(m, "s", "enter", "l*4", "u", "enter", "h*3", "w", "l*2", "enter", "ctrl+s")

	f, err := os.Open(cfg.SavePath("board.json"))
	require.NoError(t, err)
	defer f.Close()
	b, err := ls.DecodeBoard(f)
	require.NoError(t, err)
	comps, wires := b.Current().Len()
	assert.Equal(t, 2, comps)
	assert.Equal(t, 1, wires)

	press(m, "ctrl+p")
	data, err := os.ReadFile(cfg.SavePath("main.png"))
	require.NoError(t, err)
	_, err = png.Decode(bytes.NewReader(data))
	assert.NoError(t, err)
}

func TestEditor_exportEmpty(t *testing.T) {
	m, _ := newEditor(t)
	press(m, "ctrl+p")
	assert.True(t, strings.HasPrefix(m.Status(), "export:"), m.Status())
}

func TestEditor_clipboard(t *testing.T) {
	m, clip := newEditor(t)
	press(m, "s", "enter", "y")
	require.NotEmpty(t, clip.text)

	press(m, "p")
	b := m.Board()
	require.Equal(t, 2, b.Len())
	assert.Equal(t, 1, b.CurrentIndex())
	comps, _ := b.Current().Len()
	assert.Equal(t, 1, comps)

	clip.text = "not json"
	press(m, "p")
	assert.Equal(t, 2, b.Len())
	assert.True(t, strings.HasPrefix(m.Status(), "paste:"), m.Status())

	clip.err = errors.New("no clipboard")
	press(m, "y")
	assert.Contains(t, m.Status(), "no clipboard")
}

func TestEditor_quit(t *testing.T) {
	m, _ := newEditor(t)
	cmd := press(m, "q")
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Nil(t, m.Init())
}

func TestEditor_view(t *testing.T) {
	m, _ := newEditor(t)
	m.Update(tea.WindowSizeMsg{Width: 10, Height: 5})
	press(m, "s", "enter")

	v := m.View()
	lines := strings.Split(v, "\n")
	require.Len(t, lines, 5)
	assert.Contains(t, lines[0], "main")
	assert.Contains(t, lines[1], "○")
	assert.Contains(t, lines[4], "EDIT")

	press(m, "enter")
	assert.Contains(t, m.View(), "◉")

	// the switch scrolls out of view
	press(m, "j*5")
	assert.NotContains(t, m.View(), "◉")

	press(m, "w")
	assert.Contains(t, m.View(), "WIRE")
}

func TestEditor_staleStatus(t *testing.T) {
	b := ls.NewBoard()
	i := b.NewChip("sub")
	sub, _ := b.Chip(i)
	led := ls.NewOutput(ls.Pt(2, 0))
	for _, cc := range []*ls.Component{ls.NewSwitch(ls.Pt(0, 0)), led} {
		_, err := sub.PushComponent(cc)
		require.NoError(t, err)
	}
	_, err := b.Current().PushComponent(ls.NewSwitch(ls.Pt(0, 0)))
	require.NoError(t, err)
	_, err = b.Instantiate(i, ls.Pt(2, 0))
	require.NoError(t, err)

	m := editor.New(b, editor.Options{Config: config.Default(), Clipboard: &fakeClipboard{}})
	assert.NotContains(t, m.View(), "stale")

	led.SetDeletable(true)
	require.True(t, sub.RemoveComponent(led.Position()))
	b.Current().Tick()
	assert.Contains(t, m.View(), "stale:1")
}
