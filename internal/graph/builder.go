package graph

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/spatial/r3"
)

const (
	// ConnectionThreshold is the minimum shared-tag count that produces an edge
	ConnectionThreshold = 2
	// StrengthScale normalizes shared-tag counts into edge strengths.
	// Strength is not capped, so counts above the scale give springs stronger than 1.
	StrengthScale = 10.0
)

// Node is the simulation-time wrapper around an Item.
// Index is only meaningful inside the Graph that owns the node.
type Node struct {
	Index int
	Item  *Item
	Pos   r3.Vec
	Vel   r3.Vec
}

// Edge connects two nodes of the same Graph, Source < Target
type Edge struct {
	Source   int
	Target   int
	Strength float64
}

// Graph is the unit of simulation. Nodes and edges are always rebuilt together.
type Graph struct {
	Nodes []*Node
	Edges []Edge
}

// Bounds is the half-extent of the axis-aligned layout box centred on the origin
type Bounds struct {
	X float64 `toml:"x" json:"x" yaml:"x"`
	Y float64 `toml:"y" json:"y" yaml:"y"`
	Z float64 `toml:"z" json:"z" yaml:"z"`
}

// DefaultBounds is ±100 on x and y, ±50 on z
var DefaultBounds = Bounds{X: 100, Y: 100, Z: 50}

// RandomPos draws a position uniformly inside b
func (b Bounds) RandomPos(rng *rand.Rand) r3.Vec {
	return r3.Vec{
		X: (rng.Float64()*2 - 1) * b.X,
		Y: (rng.Float64()*2 - 1) * b.Y,
		Z: (rng.Float64()*2 - 1) * b.Z,
	}
}

// Clamp pulls p back inside b component-wise
func (b Bounds) Clamp(p r3.Vec) r3.Vec {
	return r3.Vec{
		X: clamp(p.X, -b.X, b.X),
		Y: clamp(p.Y, -b.Y, b.Y),
		Z: clamp(p.Z, -b.Z, b.Z),
	}
}

// Contains reports whether p lies inside b (boundary included)
func (b Bounds) Contains(p r3.Vec) bool {
	return p.X >= -b.X && p.X <= b.X &&
		p.Y >= -b.Y && p.Y <= b.Y &&
		p.Z >= -b.Z && p.Z <= b.Z
}

// BuildOptions tunes edge derivation and initial placement
type BuildOptions struct {
	Threshold     int
	StrengthScale float64
	Bounds        Bounds
}

// DefaultBuildOptions returns the reference constants
func DefaultBuildOptions() BuildOptions {
	return BuildOptions{
		Threshold:     ConnectionThreshold,
		StrengthScale: StrengthScale,
		Bounds:        DefaultBounds,
	}
}

// Build derives the full graph from items with the default options
func Build(items []*Item, rng *rand.Rand) *Graph {
	return BuildWith(items, rng, DefaultBuildOptions())
}

// BuildWith derives one node per item (index = input position, random position
// inside opts.Bounds, zero velocity) and one edge per pair whose shared-tag
// count reaches opts.Threshold. Pairs are visited in ascending (i, j) order.
// Cost is quadratic in len(items), which is fine for hundreds of episodes but
// not for tens of thousands.
func BuildWith(items []*Item, rng *rand.Rand, opts BuildOptions) *Graph {
	g := &Graph{
		Nodes: make([]*Node, len(items)),
		Edges: make([]Edge, 0),
	}
	for i, it := range items {
		g.Nodes[i] = &Node{
			Index: i,
			Item:  it,
			Pos:   opts.Bounds.RandomPos(rng),
		}
	}

	for i := 0; i < len(items); i++ {
		for j := i + 1; j < len(items); j++ {
			shared := SharedCount(items[i], items[j])
			if shared >= opts.Threshold {
				g.Edges = append(g.Edges, Edge{
					Source:   i,
					Target:   j,
					Strength: float64(shared) / opts.StrengthScale,
				})
			}
		}
	}
	return g
}

// Items returns the owning items in node order
func (g *Graph) Items() []*Item {
	out := make([]*Item, len(g.Nodes))
	for i, n := range g.Nodes {
		out[i] = n.Item
	}
	return out
}

// Clone deep-copies node state; items are shared since they are immutable
func (g *Graph) Clone() *Graph {
	c := &Graph{
		Nodes: make([]*Node, len(g.Nodes)),
		Edges: make([]Edge, len(g.Edges)),
	}
	for i, n := range g.Nodes {
		cp := *n
		c.Nodes[i] = &cp
	}
	copy(c.Edges, g.Edges)
	return c
}

// Neighbors returns the edges touching node index i
func (g *Graph) Neighbors(i int) []Edge {
	var out []Edge
	for _, e := range g.Edges {
		if e.Source == i || e.Target == i {
			out = append(out, e)
		}
	}
	return out
}

func clamp(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
