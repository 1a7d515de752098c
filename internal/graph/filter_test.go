package graph

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

func keys(g *Graph) []string {
	out := make([]string, len(g.Nodes))
	for i, n := range g.Nodes {
		out[i] = n.Item.Key
	}
	return out
}

func TestProject_EmptySelectionIsIdentity(t *testing.T) {
	g := Build(threeEpisodes(), testRNG())
	assert.Same(t, g, Project(g, Selection{}))
	assert.Same(t, g, Project(g, Selection{Categories: []string{}}))
}

func TestProject_ThreeEpisodeScenario(t *testing.T) {
	g := Build(threeEpisodes(), testRNG())
	sub := Project(g, Selection{Categories: []string{"Growth"}})
	checkGraph(t, sub)

	assert.Equal(t, []string{"ep1", "ep2"}, keys(sub))
	require.Len(t, sub.Edges, 1)
	assert.Equal(t, Edge{Source: 0, Target: 1, Strength: 0.2}, sub.Edges[0])
}

func TestProject_PreservesStateOfSurvivors(t *testing.T) {
	g := Build(threeEpisodes(), testRNG())
	for i, n := range g.Nodes {
		n.Vel = r3.Vec{X: float64(i), Y: 1, Z: -1}
	}
	sub := Project(g, Selection{Categories: []string{"Growth"}})
	for _, n := range sub.Nodes {
		var orig *Node
		for _, o := range g.Nodes {
			if o.Item.Key == n.Item.Key {
				orig = o
			}
		}
		require.NotNil(t, orig)
		assert.Equal(t, orig.Pos, n.Pos)
		assert.Equal(t, orig.Vel, n.Vel)
	}
}

func TestProject_DoesNotMutateInput(t *testing.T) {
	g := Build(threeEpisodes(), testRNG())
	before := g.Clone()
	sub := Project(g, Selection{Categories: []string{"Growth"}})
	sub.Nodes[0].Pos = r3.Vec{X: 99}

	require.Len(t, g.Nodes, len(before.Nodes))
	for i := range g.Nodes {
		assert.Equal(t, before.Nodes[i].Index, g.Nodes[i].Index)
		assert.Equal(t, before.Nodes[i].Pos, g.Nodes[i].Pos)
	}
	assert.Equal(t, before.Edges, g.Edges)
}

func TestProject_AndAcrossOrWithin(t *testing.T) {
	items := []*Item{
		item("a", []string{"Growth"}, []string{"Product"}, []string{"B2B"}),
		item("b", []string{"Design"}, []string{"Product"}, []string{"B2C"}),
		item("c", []string{"Growth"}, []string{"Eng"}, []string{"B2B"}),
		item("d", []string{"Design", "Growth"}, nil, []string{"B2B"}),
	}
	g := Build(items, testRNG())

	tests := []struct {
		name string
		sel  Selection
		want []string
	}{
		{"or within categories", Selection{Categories: []string{"Growth", "Design"}}, []string{"a", "b", "c", "d"}},
		{"and across dimensions", Selection{Categories: []string{"Growth"}, Functions: []string{"Product"}}, []string{"a"}},
		{"audience only", Selection{Audiences: []string{"B2B"}}, []string{"a", "c", "d"}},
		{"no match", Selection{Functions: []string{"Sales"}}, []string{}},
		{"empty tags fail a constrained dimension", Selection{Functions: []string{"Product", "Eng"}}, []string{"a", "b", "c"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sub := Project(g, tt.sel)
			checkGraph(t, sub)
			assert.Equal(t, tt.want, keys(sub))
		})
	}
}

func TestProject_EmptyResultIsValid(t *testing.T) {
	g := Build(threeEpisodes(), testRNG())
	sub := Project(g, Selection{Audiences: []string{"nobody"}})
	require.NotNil(t, sub)
	assert.Empty(t, sub.Nodes)
	assert.Empty(t, sub.Edges)
}

func TestProject_EdgesMatchInducedSubgraph(t *testing.T) {
	var items []*Item
	for i := 0; i < 20; i++ {
		items = append(items, item(fmt.Sprintf("ep%d", i),
			[]string{fmt.Sprintf("c%d", i%3), "shared"},
			[]string{fmt.Sprintf("f%d", i%2)}, nil))
	}
	g := Build(items, testRNG())
	sel := Selection{Categories: []string{"c1"}}
	sub := Project(g, sel)
	checkGraph(t, sub)

	// rebuilding from the surviving items gives the same edges
	rebuilt := Build(sub.Items(), testRNG())
	assert.Equal(t, rebuilt.Edges, sub.Edges)
}

func TestProject_Idempotent(t *testing.T) {
	g := Build(threeEpisodes(), testRNG())
	sel := Selection{Categories: []string{"Growth"}}
	once := Project(g, sel)
	twice := Project(once, sel)
	assert.Equal(t, keys(once), keys(twice))
	assert.Equal(t, once.Edges, twice.Edges)
}
