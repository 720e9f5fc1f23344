package routing

import (
	"testing"

	"github.com/kotarute/kotarute/pkg"
	da "github.com/kotarute/kotarute/pkg/datastructure"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// newTestGraph builds the small city used across the routing tests.
//
//	1(A) --- 2(B)   walk 10 / drive 5 each half of A-B and B-D
//	 | \      |
//	 |  4(D)--+     A-D directly: walk 24 / drive 12
//	 | /
//	3(C, parking)   A-C: walk 6 / drive 3; C-D: walk 4, not drivable
//
// Vertex 5(E) is isolated. Fastest drive A->D is A,B,D at 10; fastest walk
// is A,C,D at 10.
func newTestGraph(t *testing.T) *da.Graph {
	t.Helper()
	g := da.NewGraph()

	require.True(t, g.AddVertex(1, "A", false))
	require.True(t, g.AddVertex(2, "B", false))
	require.True(t, g.AddVertex(3, "C", true))
	require.True(t, g.AddVertex(4, "D", false))
	require.True(t, g.AddVertex(5, "E", false))

	require.True(t, g.AddBidirectionalEdge(1, 2, 10, 5))
	require.True(t, g.AddBidirectionalEdge(2, 4, 10, 5))
	require.True(t, g.AddBidirectionalEdge(1, 3, 6, 3))
	require.True(t, g.AddBidirectionalEdge(3, 4, 4, pkg.INF_WEIGHT))
	require.True(t, g.AddBidirectionalEdge(1, 4, 24, 12))

	return g
}

func handleOf(t *testing.T, g *da.Graph, id int32) da.Index {
	t.Helper()
	handle, ok := g.FindVertex(id)
	require.True(t, ok)
	return handle
}

func newTestPlanner(t *testing.T) *RoutePlanner {
	t.Helper()
	return NewRoutePlanner(newTestGraph(t), zap.NewNop())
}
