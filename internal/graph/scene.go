package graph

import "math/rand/v2"

// Scene is the explicit state behind the visible graph: the immutable full
// graph, the current selection, the active (simulated) graph and the
// continuity table. It is not safe for concurrent use; one owner drives it.
type Scene struct {
	full      *Graph
	active    *Graph
	selection Selection
	sim       *Simulator
	table     StateTable
	rng       *rand.Rand
	bounds    Bounds
}

// NewScene builds the full graph from items and activates an unfiltered copy
func NewScene(items []*Item, build BuildOptions, layout LayoutConfig, rng *rand.Rand) *Scene {
	full := BuildWith(items, rng, build)
	s := &Scene{
		full:   full,
		active: full.Clone(),
		sim:    NewSimulator(layout),
		table:  make(StateTable, len(items)),
		rng:    rng,
		bounds: layout.Bounds,
	}
	s.table.Capture(s.active)
	return s
}

// Full returns the unfiltered graph as built. Callers must not mutate it.
func (s *Scene) Full() *Graph { return s.full }

// Active returns the graph currently being simulated
func (s *Scene) Active() *Graph { return s.active }

// Bounds returns the layout box
func (s *Scene) Bounds() Bounds { return s.bounds }

// Selection returns the current filter selection
func (s *Scene) Selection() Selection { return s.selection }

// SetSelection re-derives the active graph from the full graph. Items visible
// before and after keep their simulated position and velocity; items entering
// view are placed at random. Returns how many nodes were carried over.
func (s *Scene) SetSelection(sel Selection) int {
	s.table.Capture(s.active)

	next := Project(s.full, sel)
	if next == s.full {
		next = s.full.Clone()
	}
	carried := s.table.Apply(next, s.rng, s.bounds)

	s.selection = sel
	s.active = next
	s.table.Capture(s.active)
	return carried
}

// Reset clears every dimension of the selection
func (s *Scene) Reset() int {
	return s.SetSelection(Selection{})
}

// Tick advances the active graph by dt frames and records the new state
func (s *Scene) Tick(dt float64) {
	s.sim.Advance(s.active, dt)
	s.table.Capture(s.active)
}

// Pick resolves a node index of the active graph to its item
func (s *Scene) Pick(index int) (*Item, bool) {
	if index < 0 || index >= len(s.active.Nodes) {
		return nil, false
	}
	return s.active.Nodes[index].Item, true
}

// Pause freezes the layout, e.g. while a detail view is open
func (s *Scene) Pause() { s.sim.Pause() }

// Resume restarts the layout
func (s *Scene) Resume() { s.sim.Resume() }

// Paused reports whether the layout is frozen
func (s *Scene) Paused() bool { return s.sim.Paused() }
