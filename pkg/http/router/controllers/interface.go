package controllers

import (
	"github.com/kotarute/kotarute/pkg/datastructure"
)

type RoutingService interface {
	FastestRoute(origin, destination string) (*datastructure.DrivingRoute, error)
	RestrictedRoute(origin, destination string, avoidNodes []int32,
		avoidSegments [][2]int32, includeNode *int32) (*datastructure.RouteLeg, error)
	EnvironmentalRoute(origin, destination string, maxWalkTime float64,
		avoidNodes []int32, avoidSegments [][2]int32) (*datastructure.EnvironmentalRoute, error)
	NearestVertex(lat, lon float64) (int32, string, error)
	LegGeometry(leg *datastructure.RouteLeg) string
}
