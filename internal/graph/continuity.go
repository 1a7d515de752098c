package graph

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/spatial/r3"
)

// NodeState is the last simulated position and velocity of an item
type NodeState struct {
	Pos r3.Vec
	Vel r3.Vec
}

// StateTable maps an item's stable key to its last known NodeState.
// It survives graph rebuilds; node indices do not.
type StateTable map[string]NodeState

// Capture replaces the table contents with the state of every node in g
func (t StateTable) Capture(g *Graph) {
	clear(t)
	for _, n := range g.Nodes {
		t[n.Item.Key] = NodeState{Pos: n.Pos, Vel: n.Vel}
	}
}

// Apply carries known state into g by item key. Nodes whose key is absent
// get a fresh random position inside bounds and zero velocity.
// It returns how many nodes were carried over.
func (t StateTable) Apply(g *Graph, rng *rand.Rand, bounds Bounds) int {
	carried := 0
	for _, n := range g.Nodes {
		if st, ok := t[n.Item.Key]; ok {
			n.Pos, n.Vel = st.Pos, st.Vel
			carried++
			continue
		}
		n.Pos = bounds.RandomPos(rng)
		n.Vel = r3.Vec{}
	}
	return carried
}
