package routing

import (
	"testing"

	"github.com/kotarute/kotarute/pkg"
	da "github.com/kotarute/kotarute/pkg/datastructure"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShortestPathDriving(t *testing.T) {
	g := newTestGraph(t)

	leg, ok := NewDijkstra(g).ShortestPath(handleOf(t, g, 1), handleOf(t, g, 4), pkg.DRIVING, nil)
	require.True(t, ok)
	assert.Equal(t, []int32{1, 2, 4}, leg.GetVertexIDs())
	assert.InDelta(t, 10.0, leg.GetTime(), 1e-9)
	assert.Len(t, leg.GetEdges(), 2)
}

func TestShortestPathWalkingSkipsNonTraversable(t *testing.T) {
	g := newTestGraph(t)

	// walking may use C-D, driving may not
	leg, ok := NewDijkstra(g).ShortestPath(handleOf(t, g, 1), handleOf(t, g, 4), pkg.WALKING, nil)
	require.True(t, ok)
	assert.Equal(t, []int32{1, 3, 4}, leg.GetVertexIDs())
	assert.InDelta(t, 10.0, leg.GetTime(), 1e-9)
}

func TestShortestPathSameOriginDestination(t *testing.T) {
	g := newTestGraph(t)
	a := handleOf(t, g, 1)

	leg, ok := NewDijkstra(g).ShortestPath(a, a, pkg.DRIVING, nil)
	require.True(t, ok)
	assert.Empty(t, leg.GetEdges())
	assert.Equal(t, []int32{1}, leg.GetVertexIDs())
	assert.Zero(t, leg.GetTime())
}

func TestShortestPathUnreachable(t *testing.T) {
	g := newTestGraph(t)

	leg, ok := NewDijkstra(g).ShortestPath(handleOf(t, g, 1), handleOf(t, g, 5), pkg.DRIVING, nil)
	assert.False(t, ok)
	assert.Nil(t, leg)
}

func TestShortestPathHonorsAvailability(t *testing.T) {
	g := newTestGraph(t)
	g.GetVertex(handleOf(t, g, 2)).SetAvailable(false)

	leg, ok := NewDijkstra(g).ShortestPath(handleOf(t, g, 1), handleOf(t, g, 4), pkg.DRIVING, nil)
	require.True(t, ok)
	assert.Equal(t, []int32{1, 4}, leg.GetVertexIDs(), "detour around the unavailable vertex")
	assert.InDelta(t, 12.0, leg.GetTime(), 1e-9)
}

func TestShortestPathHonorsEdgeAvailability(t *testing.T) {
	g := newTestGraph(t)
	a := handleOf(t, g, 1)
	b := handleOf(t, g, 2)
	g.ForOutEdgesOf(a, func(eId da.Index, e *da.Edge) {
		if e.GetHead() == b {
			e.SetAvailable(false)
		}
	})

	leg, ok := NewDijkstra(g).ShortestPath(a, handleOf(t, g, 4), pkg.DRIVING, nil)
	require.True(t, ok)
	assert.Equal(t, []int32{1, 4}, leg.GetVertexIDs())
	assert.InDelta(t, 12.0, leg.GetTime(), 1e-9)
}

func TestShortestPathFilter(t *testing.T) {
	g := newTestGraph(t)
	b := handleOf(t, g, 2)

	noB := func(eId da.Index, e *da.Edge) bool {
		return e.GetHead() != b
	}

	leg, ok := NewDijkstra(g).ShortestPath(handleOf(t, g, 1), handleOf(t, g, 4), pkg.DRIVING, noB)
	require.True(t, ok)
	assert.Equal(t, []int32{1, 4}, leg.GetVertexIDs())
	assert.InDelta(t, 12.0, leg.GetTime(), 1e-9)
}

func TestShortestPathAfterVertexRemoval(t *testing.T) {
	g := newTestGraph(t)
	require.True(t, g.RemoveVertex(2))

	leg, ok := NewDijkstra(g).ShortestPath(handleOf(t, g, 1), handleOf(t, g, 4), pkg.DRIVING, nil)
	require.True(t, ok)
	assert.Equal(t, []int32{1, 4}, leg.GetVertexIDs(), "the removed vertex's edges are gone")
	assert.InDelta(t, 12.0, leg.GetTime(), 1e-9)
}

func TestShortestPathSearchesAreIndependent(t *testing.T) {
	g := newTestGraph(t)
	a := handleOf(t, g, 1)
	d := handleOf(t, g, 4)

	first := NewDijkstra(g)
	leg1, ok := first.ShortestPath(a, d, pkg.DRIVING, nil)
	require.True(t, ok)

	// a second search over the same graph sees no state from the first
	leg2, ok := NewDijkstra(g).ShortestPath(a, d, pkg.WALKING, nil)
	require.True(t, ok)

	assert.Equal(t, []int32{1, 2, 4}, leg1.GetVertexIDs())
	assert.Equal(t, []int32{1, 3, 4}, leg2.GetVertexIDs())
}
