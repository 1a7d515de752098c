package engine

import "episodemap/galaxy/internal/graph"

// FrameNode is one node as the renderer sees it
type FrameNode struct {
	Index int        `json:"index" yaml:"index"`
	Key   string     `json:"key" yaml:"key"`
	Pos   [3]float64 `json:"pos" yaml:"pos,flow"`
}

// FrameEdge mirrors graph.Edge with wire tags
type FrameEdge struct {
	Source   int     `json:"source" yaml:"source"`
	Target   int     `json:"target" yaml:"target"`
	Strength float64 `json:"strength" yaml:"strength"`
}

// Frame is an immutable copy of the active graph. Node indices are only
// stable for a given Revision; a new revision means the graph was rebuilt.
type Frame struct {
	Revision  string          `json:"revision" yaml:"revision"`
	Tick      uint64          `json:"tick" yaml:"tick"`
	Paused    bool            `json:"paused" yaml:"paused"`
	Selection graph.Selection `json:"selection" yaml:"selection"`
	Bounds    graph.Bounds    `json:"bounds" yaml:"bounds"`
	Nodes     []FrameNode     `json:"nodes" yaml:"nodes"`
	Edges     []FrameEdge     `json:"edges" yaml:"edges"`
}

// Snapshot copies the scene's active graph into a Frame
func Snapshot(s *graph.Scene, revision string, tick uint64) *Frame {
	g := s.Active()
	f := &Frame{
		Revision:  revision,
		Tick:      tick,
		Paused:    s.Paused(),
		Selection: s.Selection(),
		Bounds:    s.Bounds(),
		Nodes:     make([]FrameNode, len(g.Nodes)),
		Edges:     make([]FrameEdge, len(g.Edges)),
	}
	for i, n := range g.Nodes {
		f.Nodes[i] = FrameNode{Index: n.Index, Key: n.Item.Key, Pos: [3]float64{n.Pos.X, n.Pos.Y, n.Pos.Z}}
	}
	for i, e := range g.Edges {
		f.Edges[i] = FrameEdge{Source: e.Source, Target: e.Target, Strength: e.Strength}
	}
	return f
}
