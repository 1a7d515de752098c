package graph

// Selection holds the filter UI's chosen tags per dimension.
// An empty dimension places no constraint.
type Selection struct {
	Categories []string `json:"categories"`
	Functions  []string `json:"functions"`
	Audiences  []string `json:"audiences"`
}

// IsEmpty reports whether no dimension constrains the graph
func (sel Selection) IsEmpty() bool {
	return len(sel.Categories) == 0 && len(sel.Functions) == 0 && len(sel.Audiences) == 0
}

// Matches is AND across dimensions and OR within a dimension
func (sel Selection) Matches(it *Item) bool {
	return matchDimension(sel.Categories, it.Categories) &&
		matchDimension(sel.Functions, it.Functions) &&
		matchDimension(sel.Audiences, it.Audiences)
}

func matchDimension(selected []string, tags TagSet) bool {
	if len(selected) == 0 {
		return true
	}
	for _, t := range selected {
		if tags.Has(t) {
			return true
		}
	}
	return false
}

// Project returns the subgraph induced by sel. With an empty selection the
// input graph itself is returned. Otherwise surviving nodes are copied into a
// new graph, re-indexed densely in their original order, keeping their
// position and velocity; an edge survives when both endpoints do and keeps
// its strength. The input graph is never mutated.
func Project(g *Graph, sel Selection) *Graph {
	if sel.IsEmpty() {
		return g
	}

	remap := make([]int, len(g.Nodes))
	out := &Graph{
		Nodes: make([]*Node, 0, len(g.Nodes)),
		Edges: make([]Edge, 0),
	}
	for i, n := range g.Nodes {
		if !sel.Matches(n.Item) {
			remap[i] = -1
			continue
		}
		remap[i] = len(out.Nodes)
		out.Nodes = append(out.Nodes, &Node{
			Index: len(out.Nodes),
			Item:  n.Item,
			Pos:   n.Pos,
			Vel:   n.Vel,
		})
	}

	for _, e := range g.Edges {
		src, dst := remap[e.Source], remap[e.Target]
		if src < 0 || dst < 0 {
			continue
		}
		out.Edges = append(out.Edges, Edge{Source: src, Target: dst, Strength: e.Strength})
	}
	return out
}
