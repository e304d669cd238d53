// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package logicsim

// TerminalKind tells what a Terminal refers to.
//
type TerminalKind int

// Terminal kinds.
const (
	TerminalComponent TerminalKind = iota
	TerminalWire
)

func (k TerminalKind) String() string {
	switch k {
	case TerminalComponent:
		return "component"
	case TerminalWire:
		return "wire"
	}
	return "unknown"
}

// A Terminal is a reference into a net. For component terminals, Index is the
// component slot, Pin the pin number and Output tells which pin list Pin
// indexes. For wire terminals, Index is the wire slot.
//
type Terminal struct {
	Kind   TerminalKind
	Index  int
	Pin    int
	Output bool
}

func componentTerminal(index, pin int, output bool) Terminal {
	return Terminal{Kind: TerminalComponent, Index: index, Pin: pin, Output: output}
}

func wireTerminal(index int) Terminal {
	return Terminal{Kind: TerminalWire, Index: index}
}

// A Net is the list of terminals occupying the same grid point.
//
type Net []Terminal

// ConnectionGraph maps grid points to nets.
//
// Nets are never merged nor split: a net is created the first time a terminal
// lands on a point and lives as long as the graph, possibly empty.
//
type ConnectionGraph struct {
	nets    []Net
	byPoint map[Point]NetID
}

// NewConnectionGraph returns an empty graph.
//
func NewConnectionGraph() *ConnectionGraph {
	return &ConnectionGraph{byPoint: make(map[Point]NetID)}
}

// JoinOrCreate appends t to the net at p, creating that net if needed. It
// returns the net id and whether the net already existed.
//
func (g *ConnectionGraph) JoinOrCreate(p Point, t Terminal) (id NetID, existed bool) {
	if id, ok := g.byPoint[p.key()]; ok {
		g.nets[id] = append(g.nets[id], t)
		return id, true
	}
	id = NetID(len(g.nets))
	g.nets = append(g.nets, Net{t})
	g.byPoint[p.key()] = id
	return id, false
}

// Lookup returns the id of the net at p.
//
func (g *ConnectionGraph) Lookup(p Point) (NetID, bool) {
	id, ok := g.byPoint[p.key()]
	return id, ok
}

// Net returns the terminals of net id. The returned slice must not be
// modified.
//
func (g *ConnectionGraph) Net(id NetID) Net {
	if id < 0 || int(id) >= len(g.nets) {
		return nil
	}
	return g.nets[id]
}

// Len returns the number of nets, empty ones included.
//
func (g *ConnectionGraph) Len() int { return len(g.nets) }

// Detach removes from net id every terminal for which match returns true.
//
func (g *ConnectionGraph) Detach(id NetID, match func(t Terminal) bool) {
	if id < 0 || int(id) >= len(g.nets) {
		return
	}
	n := g.nets[id]
	j := 0
	for _, t := range n {
		if !match(t) {
			n[j] = t
			j++
		}
	}
	g.nets[id] = n[:j]
}
