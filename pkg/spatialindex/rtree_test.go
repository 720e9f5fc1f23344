package spatialindex

import (
	"testing"

	da "github.com/kotarute/kotarute/pkg/datastructure"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newIndexedGraph(t *testing.T) (*da.Graph, *Rtree) {
	t.Helper()
	g := da.NewGraph()

	coords := []struct {
		id       int32
		code     string
		lat, lon float64
	}{
		{1, "A", 52.000, 4.300},
		{2, "B", 52.010, 4.300},
		{3, "C", 52.020, 4.300},
	}
	for _, c := range coords {
		require.True(t, g.AddVertex(c.id, c.code, false))
		vId, _ := g.FindVertex(c.id)
		g.SetVertexCoordinates(vId, c.lat, c.lon)
	}

	rt := NewRtree()
	rt.Build(g, 0.1, zap.NewNop())
	return g, rt
}

func TestNearestVertex(t *testing.T) {
	g, rt := newIndexedGraph(t)

	vId, ok := rt.NearestVertex(g, 52.0001, 4.3001)
	require.True(t, ok)
	assert.Equal(t, int32(1), g.GetVertex(vId).GetID())

	vId, ok = rt.NearestVertex(g, 52.0199, 4.3)
	require.True(t, ok)
	assert.Equal(t, int32(3), g.GetVertex(vId).GetID())
}

func TestNearestVertexPrefersIncidentStreet(t *testing.T) {
	g := da.NewGraph()

	// A and B are joined by a street running along latitude 52.0; C sits
	// north of that street with no edges at all.
	coords := []struct {
		id       int32
		code     string
		lat, lon float64
	}{
		{1, "A", 52.000, 4.300},
		{2, "B", 52.000, 4.320},
		{3, "C", 52.002, 4.310},
	}
	for _, c := range coords {
		require.True(t, g.AddVertex(c.id, c.code, false))
		vId, _ := g.FindVertex(c.id)
		g.SetVertexCoordinates(vId, c.lat, c.lon)
	}
	require.True(t, g.AddBidirectionalEdge(1, 2, 10, 5))

	rt := NewRtree()
	rt.Build(g, 2.0, zap.NewNop())

	// the query is closer to C as a point, but the A-B street passes
	// right by it
	vId, ok := rt.NearestVertex(g, 52.0005, 4.310)
	require.True(t, ok)
	id := g.GetVertex(vId).GetID()
	assert.Contains(t, []int32{1, 2}, id, "snap to the street's intersection, not the stray vertex")
	assert.NotEqual(t, int32(3), id)
}

func TestNearestVertexNothingNearby(t *testing.T) {
	g, rt := newIndexedGraph(t)

	_, ok := rt.NearestVertex(g, 53.5, 5.5)
	assert.False(t, ok, "no leaf bounding box covers a far away point")
}
