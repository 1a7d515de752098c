package graph

import (
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

func testRNG() *rand.Rand { return rand.New(rand.NewPCG(1, 2)) }

func item(key string, cats, funcs, auds []string) *Item {
	return &Item{
		Key:        key,
		Categories: NewTagSet(cats...),
		Functions:  NewTagSet(funcs...),
		Audiences:  NewTagSet(auds...),
	}
}

// threeEpisodes: ep1 and ep2 share {Product, Growth}; ep3 shares only Product
func threeEpisodes() []*Item {
	return []*Item{
		item("ep1", []string{"Product", "Growth"}, nil, nil),
		item("ep2", []string{"Product", "Growth"}, nil, nil),
		item("ep3", []string{"Product"}, nil, nil),
	}
}

// checkGraph fails the test on a dangling or misordered edge or a gap in node indices
func checkGraph(t *testing.T, g *Graph) {
	t.Helper()
	for i, n := range g.Nodes {
		require.Equal(t, i, n.Index, "node index must equal its position")
	}
	for _, e := range g.Edges {
		require.True(t, e.Source >= 0 && e.Target < len(g.Nodes), "dangling edge %+v", e)
		require.Less(t, e.Source, e.Target, "edge must satisfy source < target")
	}
}

func TestBuild_Empty(t *testing.T) {
	g := Build(nil, testRNG())
	assert.Empty(t, g.Nodes)
	assert.Empty(t, g.Edges)
}

func TestBuild_OneNodePerItemInOrder(t *testing.T) {
	items := threeEpisodes()
	g := Build(items, testRNG())
	checkGraph(t, g)

	require.Len(t, g.Nodes, len(items))
	for i, n := range g.Nodes {
		assert.Same(t, items[i], n.Item)
		assert.Equal(t, r3.Vec{}, n.Vel, "initial velocity must be zero")
		assert.True(t, DefaultBounds.Contains(n.Pos), "initial position %v outside box", n.Pos)
	}
}

func TestBuild_ThreeEpisodeScenario(t *testing.T) {
	items := threeEpisodes()
	assert.Equal(t, 2, SharedCount(items[0], items[1]))
	assert.Equal(t, 1, SharedCount(items[0], items[2]))
	assert.Equal(t, 1, SharedCount(items[1], items[2]))

	g := Build(items, testRNG())
	require.Len(t, g.Edges, 1)
	assert.Equal(t, Edge{Source: 0, Target: 1, Strength: 0.2}, g.Edges[0])
}

func TestSharedCount_SumsDimensionsIndependently(t *testing.T) {
	a := item("a", []string{"Growth"}, []string{"Growth"}, []string{"B2B"})
	b := item("b", []string{"Growth"}, []string{"Growth"}, []string{"B2C"})
	// "Growth" counts once per dimension it appears in
	assert.Equal(t, 2, SharedCount(a, b))
	assert.Equal(t, SharedCount(a, b), SharedCount(b, a))
}

func TestBuild_EdgeIffThresholdAndExactStrength(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 7))
	pool := []string{"a", "b", "c", "d", "e"}
	pick := func() []string {
		var out []string
		for _, p := range pool {
			if rng.IntN(2) == 0 {
				out = append(out, p)
			}
		}
		return out
	}
	var items []*Item
	for i := 0; i < 30; i++ {
		items = append(items, item(fmt.Sprintf("ep%d", i), pick(), pick(), pick()))
	}

	g := Build(items, testRNG())
	checkGraph(t, g)

	edges := make(map[[2]int]float64, len(g.Edges))
	for _, e := range g.Edges {
		edges[[2]int{e.Source, e.Target}] = e.Strength
	}
	for i := range items {
		for j := i + 1; j < len(items); j++ {
			shared := SharedCount(items[i], items[j])
			require.Equal(t, shared, SharedCount(items[j], items[i]))
			strength, ok := edges[[2]int{i, j}]
			if shared >= ConnectionThreshold {
				require.True(t, ok, "expected edge %d-%d (shared=%d)", i, j, shared)
				assert.Equal(t, float64(shared)/10, strength)
			} else {
				assert.False(t, ok, "unexpected edge %d-%d (shared=%d)", i, j, shared)
			}
		}
	}
}

func TestBuild_StrengthNotCapped(t *testing.T) {
	tags := []string{"t1", "t2", "t3", "t4"}
	a := item("a", tags, tags, tags)
	b := item("b", tags, tags, tags)
	g := Build([]*Item{a, b}, testRNG())
	require.Len(t, g.Edges, 1)
	assert.InDelta(t, 1.2, g.Edges[0].Strength, 1e-12)
}

func TestClone_IsIndependent(t *testing.T) {
	g := Build(threeEpisodes(), testRNG())
	c := g.Clone()
	c.Nodes[0].Pos = r3.Vec{X: 1, Y: 2, Z: 3}
	assert.NotEqual(t, c.Nodes[0].Pos, g.Nodes[0].Pos)
	assert.Same(t, g.Nodes[0].Item, c.Nodes[0].Item)
	assert.Equal(t, g.Edges, c.Edges)
}
