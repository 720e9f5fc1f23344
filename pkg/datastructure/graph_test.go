package datastructure

import (
	"testing"

	"github.com/kotarute/kotarute/pkg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddVertexRejectsDuplicates(t *testing.T) {
	g := NewGraph()

	require.True(t, g.AddVertex(1, "AM", false))
	assert.False(t, g.AddVertex(1, "XX", false), "duplicate id must be rejected")
	assert.False(t, g.AddVertex(2, "AM", false), "duplicate code must be rejected")
	assert.Equal(t, 1, g.NumberOfVertices())

	_, ok := g.FindVertex(2)
	assert.False(t, ok, "rejected insert must not leave an index entry")
}

func TestFindVertexByCode(t *testing.T) {
	g := NewGraph()
	require.True(t, g.AddVertex(7, "CS", true))

	handle, ok := g.FindVertexByCode("CS")
	require.True(t, ok)
	assert.Equal(t, int32(7), g.GetVertex(handle).GetID())
	assert.True(t, g.GetVertex(handle).HasParking())

	_, ok = g.FindVertexByCode("NOPE")
	assert.False(t, ok)
}

func TestAddBidirectionalEdge(t *testing.T) {
	g := NewGraph()
	require.True(t, g.AddVertex(1, "A", false))
	require.True(t, g.AddVertex(2, "B", false))

	require.True(t, g.AddBidirectionalEdge(1, 2, 10, 5))
	assert.Equal(t, 2, g.NumberOfEdges(), "one street is two directed halves")

	a, _ := g.FindVertex(1)
	b, _ := g.FindVertex(2)

	var forward, backward *Edge
	g.ForOutEdgesOf(a, func(eId Index, e *Edge) { forward = e })
	g.ForOutEdgesOf(b, func(eId Index, e *Edge) { backward = e })

	require.NotNil(t, forward)
	require.NotNil(t, backward)
	assert.Equal(t, b, forward.GetHead())
	assert.Equal(t, a, backward.GetHead())

	assert.Equal(t, g.GetEdge(forward.GetReverse()), backward)
	assert.Equal(t, g.GetEdge(backward.GetReverse()), forward)

	assert.Equal(t, 5.0, forward.Weight(pkg.DRIVING))
	assert.Equal(t, 10.0, forward.Weight(pkg.WALKING))
}

func TestAddBidirectionalEdgeIsAtomic(t *testing.T) {
	g := NewGraph()
	require.True(t, g.AddVertex(1, "A", false))

	assert.False(t, g.AddBidirectionalEdge(1, 99, 10, 5))
	assert.Equal(t, 0, g.NumberOfEdges(), "missing endpoint must add neither half")
}

func TestRemoveEdgeMultigraph(t *testing.T) {
	g := NewGraph()
	require.True(t, g.AddVertex(1, "A", false))
	require.True(t, g.AddVertex(2, "B", false))

	require.True(t, g.AddBidirectionalEdge(1, 2, 10, 5))
	require.True(t, g.AddEdge(1, 2, 8, 4)) // parallel one-way
	require.Equal(t, 3, g.NumberOfEdges())

	require.True(t, g.RemoveEdge(1, 2))
	assert.Equal(t, 1, g.NumberOfEdges(), "every parallel 1->2 edge goes")

	a, _ := g.FindVertex(1)
	b, _ := g.FindVertex(2)

	outOfA := 0
	g.ForOutEdgesOf(a, func(eId Index, e *Edge) { outOfA++ })
	assert.Equal(t, 0, outOfA)

	// the reverse half survives and is unlinked from its removed partner
	var backward *Edge
	g.ForOutEdgesOf(b, func(eId Index, e *Edge) { backward = e })
	require.NotNil(t, backward)
	assert.Equal(t, INVALID_EDGE_ID, backward.GetReverse())

	assert.False(t, g.RemoveEdge(1, 2), "second removal finds nothing")
}

func TestRemoveVertexDetachesEdges(t *testing.T) {
	g := NewGraph()
	require.True(t, g.AddVertex(1, "A", false))
	require.True(t, g.AddVertex(2, "B", false))
	require.True(t, g.AddVertex(3, "C", false))
	require.True(t, g.AddBidirectionalEdge(1, 2, 10, 5))
	require.True(t, g.AddBidirectionalEdge(2, 3, 10, 5))

	handles := g.NumberOfHandles()

	require.True(t, g.RemoveVertex(2))
	assert.Equal(t, 2, g.NumberOfVertices())
	assert.Equal(t, 0, g.NumberOfEdges(), "every edge touching the vertex goes")
	assert.Equal(t, handles, g.NumberOfHandles(), "arena never shrinks")

	_, ok := g.FindVertex(2)
	assert.False(t, ok)
	_, ok = g.FindVertexByCode("B")
	assert.False(t, ok)

	a, _ := g.FindVertex(1)
	g.ForOutEdgesOf(a, func(eId Index, e *Edge) {
		t.Errorf("vertex 1 still reaches removed edge %d", eId)
	})

	assert.False(t, g.RemoveVertex(2), "already removed")

	// the freed id and code may be reused
	assert.True(t, g.AddVertex(2, "B", false))
}

func TestParkingVertices(t *testing.T) {
	g := NewGraph()
	require.True(t, g.AddVertex(1, "A", false))
	require.True(t, g.AddVertex(2, "B", true))
	require.True(t, g.AddVertex(3, "C", true))
	require.True(t, g.RemoveVertex(3))

	parks := g.ParkingVertices()
	require.Len(t, parks, 1)
	assert.Equal(t, int32(2), g.GetVertex(parks[0]).GetID())
}

func TestHasCoordinates(t *testing.T) {
	g := NewGraph()
	assert.False(t, g.HasCoordinates(), "empty graph has no usable coordinates")

	require.True(t, g.AddVertex(1, "A", false))
	require.True(t, g.AddVertex(2, "B", false))
	assert.False(t, g.HasCoordinates())

	a, _ := g.FindVertex(1)
	g.SetVertexCoordinates(a, 52.0, 4.3)
	assert.False(t, g.HasCoordinates(), "partial coverage is not enough")

	b, _ := g.FindVertex(2)
	g.SetVertexCoordinates(b, 52.1, 4.4)
	assert.True(t, g.HasCoordinates())

	lat, lon := g.GetVertexCoordinates(a)
	assert.Equal(t, 52.0, lat)
	assert.Equal(t, 4.3, lon)
}
