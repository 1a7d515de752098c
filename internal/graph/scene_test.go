package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

func newTestScene(items []*Item) *Scene {
	return NewScene(items, DefaultBuildOptions(), DefaultLayoutConfig(), testRNG())
}

func stateByKey(g *Graph) map[string]NodeState {
	out := make(map[string]NodeState, len(g.Nodes))
	for _, n := range g.Nodes {
		out[n.Item.Key] = NodeState{Pos: n.Pos, Vel: n.Vel}
	}
	return out
}

func TestScene_StartsUnfiltered(t *testing.T) {
	s := newTestScene(threeEpisodes())
	assert.True(t, s.Selection().IsEmpty())
	assert.Equal(t, keys(s.Full()), keys(s.Active()))
	assert.NotSame(t, s.Full(), s.Active(), "simulation must not mutate the full graph")
}

func TestScene_FilterCarriesSurvivorState(t *testing.T) {
	s := newTestScene(threeEpisodes())
	for i := 0; i < 30; i++ {
		s.Tick(1)
	}
	before := stateByKey(s.Active())

	carried := s.SetSelection(Selection{Categories: []string{"Growth"}})
	assert.Equal(t, 2, carried)
	require.Equal(t, []string{"ep1", "ep2"}, keys(s.Active()))
	checkGraph(t, s.Active())
	for _, n := range s.Active().Nodes {
		assert.Equal(t, before[n.Item.Key].Pos, n.Pos, "position of %s", n.Item.Key)
		assert.Equal(t, before[n.Item.Key].Vel, n.Vel, "velocity of %s", n.Item.Key)
	}
}

func TestScene_ReenteringItemGetsFreshState(t *testing.T) {
	s := newTestScene(threeEpisodes())
	for i := 0; i < 10; i++ {
		s.Tick(1)
	}
	s.SetSelection(Selection{Categories: []string{"Growth"}})
	for i := 0; i < 10; i++ {
		s.Tick(1)
	}
	visible := stateByKey(s.Active())

	carried := s.Reset()
	assert.Equal(t, 2, carried)
	require.Len(t, s.Active().Nodes, 3)
	for _, n := range s.Active().Nodes {
		if n.Item.Key == "ep3" {
			assert.Equal(t, r3.Vec{}, n.Vel, "re-entering item starts at rest")
			assert.True(t, DefaultBounds.Contains(n.Pos))
			continue
		}
		assert.Equal(t, visible[n.Item.Key].Pos, n.Pos)
	}
}

func TestScene_ResetRestoresFullEdges(t *testing.T) {
	s := newTestScene(threeEpisodes())
	s.SetSelection(Selection{Audiences: []string{"nobody"}})
	assert.Empty(t, s.Active().Nodes)
	s.Tick(1) // ticking an empty graph is a no-op

	s.Reset()
	assert.True(t, s.Selection().IsEmpty())
	assert.Equal(t, s.Full().Edges, s.Active().Edges)
}

func TestScene_PausedTickKeepsPositions(t *testing.T) {
	s := newTestScene(threeEpisodes())
	s.Tick(1)
	before := stateByKey(s.Active())

	s.Pause()
	for i := 0; i < 40; i++ {
		s.Tick(1)
	}
	for _, n := range s.Active().Nodes {
		assert.Equal(t, before[n.Item.Key].Pos, n.Pos)
	}
	s.Resume()
	assert.False(t, s.Paused())
}

func TestScene_Pick(t *testing.T) {
	s := newTestScene(threeEpisodes())
	s.SetSelection(Selection{Categories: []string{"Growth"}})

	it, ok := s.Pick(1)
	require.True(t, ok)
	assert.Equal(t, "ep2", it.Key)

	_, ok = s.Pick(2)
	assert.False(t, ok, "index 2 no longer exists in the filtered graph")
	_, ok = s.Pick(-1)
	assert.False(t, ok)
}

func TestScene_FullGraphUntouchedByTicks(t *testing.T) {
	s := newTestScene(threeEpisodes())
	before := stateByKey(s.Full())
	for i := 0; i < 20; i++ {
		s.Tick(1)
	}
	assert.Equal(t, before, stateByKey(s.Full()))
}
