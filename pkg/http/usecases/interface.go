package usecases

import (
	"github.com/kotarute/kotarute/pkg/datastructure"
)

type RoutePlanner interface {
	GetGraph() *datastructure.Graph
	FastestDrivingRoute(originId, destinationId int32) (*datastructure.DrivingRoute, error)
	RestrictedDrivingRoute(originId, destinationId int32, avoidNodes []int32,
		avoidSegments [][2]int32, includeNode *int32) (*datastructure.RouteLeg, error)
	EnvironmentalRoute(originId, destinationId int32, maxWalkTime float64,
		avoidNodes []int32, avoidSegments [][2]int32) (*datastructure.EnvironmentalRoute, error)
}

type SpatialIndex interface {
	NearestVertex(graph *datastructure.Graph, lat, lon float64) (datastructure.Index, bool)
}
