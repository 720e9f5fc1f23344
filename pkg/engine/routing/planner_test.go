package routing

import (
	"errors"
	"testing"

	"github.com/kotarute/kotarute/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFastestDrivingRoute(t *testing.T) {
	p := newTestPlanner(t)

	route, err := p.FastestDrivingRoute(1, 4)
	require.NoError(t, err)
	require.NotNil(t, route.Best)
	assert.Equal(t, []int32{1, 2, 4}, route.Best.GetVertexIDs())
	assert.InDelta(t, 10.0, route.Best.GetTime(), 1e-9)

	require.NotNil(t, route.Alternative, "the direct street is free of the best path's edges")
	assert.Equal(t, []int32{1, 4}, route.Alternative.GetVertexIDs())
	assert.InDelta(t, 12.0, route.Alternative.GetTime(), 1e-9)
}

func TestFastestDrivingRouteAlternativeIsEdgeDisjoint(t *testing.T) {
	p := newTestPlanner(t)

	route, err := p.FastestDrivingRoute(1, 4)
	require.NoError(t, err)
	require.NotNil(t, route.Alternative)

	used := make(map[uint32]struct{})
	for _, eId := range route.Best.GetEdges() {
		used[uint32(eId)] = struct{}{}
	}
	for _, eId := range route.Alternative.GetEdges() {
		_, shared := used[uint32(eId)]
		assert.False(t, shared, "alternative reuses edge %d of the best path", eId)
	}
}

func TestFastestDrivingRouteUnreachable(t *testing.T) {
	p := newTestPlanner(t)

	route, err := p.FastestDrivingRoute(1, 5)
	require.NoError(t, err)
	assert.Nil(t, route.Best)
	assert.Nil(t, route.Alternative)
}

func TestFastestDrivingRouteUnknownVertex(t *testing.T) {
	p := newTestPlanner(t)

	_, err := p.FastestDrivingRoute(1, 999)
	require.Error(t, err)

	var domainErr *util.Error
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, util.ErrNotFound, domainErr.Code())
}

func TestRestrictedDrivingRouteAvoidNode(t *testing.T) {
	p := newTestPlanner(t)

	leg, err := p.RestrictedDrivingRoute(1, 4, []int32{2}, nil, nil)
	require.NoError(t, err)
	require.NotNil(t, leg)
	assert.Equal(t, []int32{1, 4}, leg.GetVertexIDs())
	assert.InDelta(t, 12.0, leg.GetTime(), 1e-9)
}

func TestRestrictedDrivingRouteAvoidSegment(t *testing.T) {
	p := newTestPlanner(t)

	leg, err := p.RestrictedDrivingRoute(1, 4, nil, [][2]int32{{1, 2}}, nil)
	require.NoError(t, err)
	require.NotNil(t, leg)
	assert.Equal(t, []int32{1, 4}, leg.GetVertexIDs())
}

func TestRestrictedDrivingRouteSkipsUnknownAvoidEntries(t *testing.T) {
	p := newTestPlanner(t)

	leg, err := p.RestrictedDrivingRoute(1, 4, []int32{999}, [][2]int32{{77, 88}}, nil)
	require.NoError(t, err)
	require.NotNil(t, leg)
	assert.Equal(t, []int32{1, 2, 4}, leg.GetVertexIDs(), "typos restrict nothing")
}

func TestRestrictedDrivingRouteWaypoint(t *testing.T) {
	p := newTestPlanner(t)

	waypoint := int32(2)
	leg, err := p.RestrictedDrivingRoute(1, 4, nil, nil, &waypoint)
	require.NoError(t, err)
	require.NotNil(t, leg)
	assert.Equal(t, []int32{1, 2, 4}, leg.GetVertexIDs())
	assert.InDelta(t, 10.0, leg.GetTime(), 1e-9)
}

func TestRestrictedDrivingRouteWaypointMayRevisit(t *testing.T) {
	p := newTestPlanner(t)

	// C-D is not drivable, so the second leg drives back through A
	waypoint := int32(3)
	leg, err := p.RestrictedDrivingRoute(1, 4, nil, nil, &waypoint)
	require.NoError(t, err)
	require.NotNil(t, leg)
	assert.Equal(t, []int32{1, 3, 1, 2, 4}, leg.GetVertexIDs())
	assert.InDelta(t, 16.0, leg.GetTime(), 1e-9)
}

func TestRestrictedDrivingRouteUnreachable(t *testing.T) {
	p := newTestPlanner(t)

	leg, err := p.RestrictedDrivingRoute(1, 5, nil, nil, nil)
	require.NoError(t, err, "unreachable is an outcome, not an error")
	assert.Nil(t, leg)
}

func TestRestrictedDrivingRouteRestoresAvailability(t *testing.T) {
	p := newTestPlanner(t)

	_, err := p.RestrictedDrivingRoute(1, 4, []int32{2}, [][2]int32{{1, 3}}, nil)
	require.NoError(t, err)

	// an error exit must restore too
	_, err = p.RestrictedDrivingRoute(1, 999, []int32{3}, nil, nil)
	require.Error(t, err)

	route, err := p.FastestDrivingRoute(1, 4)
	require.NoError(t, err)
	require.NotNil(t, route.Best)
	assert.Equal(t, []int32{1, 2, 4}, route.Best.GetVertexIDs(),
		"restrictions must not leak into later queries")
}

func TestEnvironmentalRouteWithinBudget(t *testing.T) {
	p := newTestPlanner(t)

	route, err := p.EnvironmentalRoute(1, 4, 4.0, nil, nil)
	require.NoError(t, err)
	require.NotNil(t, route.Best)
	assert.True(t, route.Found())

	assert.Equal(t, int32(3), route.Best.ParkingNode)
	assert.Equal(t, []int32{1, 3}, route.Best.Drive.GetVertexIDs())
	assert.Equal(t, []int32{3, 4}, route.Best.Walk.GetVertexIDs())
	assert.InDelta(t, 7.0, route.Best.TotalTime(), 1e-9)
	assert.Empty(t, route.Approximate)
}

func TestEnvironmentalRouteBudgetInfeasible(t *testing.T) {
	p := newTestPlanner(t)

	route, err := p.EnvironmentalRoute(1, 4, 3.0, nil, nil)
	require.NoError(t, err)
	assert.Nil(t, route.Best)
	require.Len(t, route.Approximate, 1, "the near-best cluster is reported instead")
	assert.Equal(t, int32(3), route.Approximate[0].ParkingNode)
	assert.True(t, route.Found())
}

func TestEnvironmentalRouteAvoidListKillsOnlyCandidate(t *testing.T) {
	p := newTestPlanner(t)

	route, err := p.EnvironmentalRoute(1, 4, 10.0, []int32{3}, nil)
	require.NoError(t, err)
	assert.False(t, route.Found())
	assert.Nil(t, route.Best)
	assert.Empty(t, route.Approximate)
}

func TestEnvironmentalRouteParkingAtEndpointDoesNotCount(t *testing.T) {
	p := newTestPlanner(t)

	// C as origin: the only parking vertex is excluded, no candidate remains
	route, err := p.EnvironmentalRoute(3, 4, 10.0, nil, nil)
	require.NoError(t, err)
	assert.False(t, route.Found())
}
