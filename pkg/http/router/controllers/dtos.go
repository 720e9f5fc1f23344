package controllers

import (
	"github.com/kotarute/kotarute/pkg/datastructure"
)

type restrictedRouteRequest struct {
	Origin        string     `json:"origin" validate:"required"`
	Destination   string     `json:"destination" validate:"required"`
	AvoidNodes    []int32    `json:"avoid_nodes"`
	AvoidSegments [][2]int32 `json:"avoid_segments"`
	IncludeNode   *int32     `json:"include_node"`
}

type environmentalRouteRequest struct {
	Origin        string     `json:"origin" validate:"required"`
	Destination   string     `json:"destination" validate:"required"`
	MaxWalkTime   float64    `json:"max_walk_time" validate:"gte=0"`
	AvoidNodes    []int32    `json:"avoid_nodes"`
	AvoidSegments [][2]int32 `json:"avoid_segments"`
}

type routeLegResponse struct {
	Path     []int32 `json:"path"`
	Time     float64 `json:"time"`
	Geometry string  `json:"geometry,omitempty"`
}

func newRouteLegResponse(svc RoutingService, leg *datastructure.RouteLeg) *routeLegResponse {
	if leg == nil {
		return nil
	}
	return &routeLegResponse{
		Path:     leg.GetVertexIDs(),
		Time:     leg.GetTime(),
		Geometry: svc.LegGeometry(leg),
	}
}

type drivingRouteResponse struct {
	Found       bool              `json:"found"`
	Best        *routeLegResponse `json:"best,omitempty"`
	Alternative *routeLegResponse `json:"alternative,omitempty"`
}

func NewDrivingRouteResponse(svc RoutingService, route *datastructure.DrivingRoute) drivingRouteResponse {
	return drivingRouteResponse{
		Found:       route.Best != nil,
		Best:        newRouteLegResponse(svc, route.Best),
		Alternative: newRouteLegResponse(svc, route.Alternative),
	}
}

type restrictedRouteResponse struct {
	Found bool              `json:"found"`
	Route *routeLegResponse `json:"route,omitempty"`
}

func NewRestrictedRouteResponse(svc RoutingService, leg *datastructure.RouteLeg) restrictedRouteResponse {
	return restrictedRouteResponse{
		Found: leg != nil,
		Route: newRouteLegResponse(svc, leg),
	}
}

type parkAndWalkResponse struct {
	ParkingNode int32             `json:"parking_node"`
	Drive       *routeLegResponse `json:"drive"`
	Walk        *routeLegResponse `json:"walk"`
	TotalTime   float64           `json:"total_time"`
}

func newParkAndWalkResponse(svc RoutingService, cand *datastructure.ParkAndWalkCandidate) *parkAndWalkResponse {
	if cand == nil {
		return nil
	}
	return &parkAndWalkResponse{
		ParkingNode: cand.ParkingNode,
		Drive:       newRouteLegResponse(svc, cand.Drive),
		Walk:        newRouteLegResponse(svc, cand.Walk),
		TotalTime:   cand.TotalTime(),
	}
}

type environmentalRouteResponse struct {
	Found       bool                   `json:"found"`
	Best        *parkAndWalkResponse   `json:"best,omitempty"`
	Approximate []*parkAndWalkResponse `json:"approximate,omitempty"`
}

func NewEnvironmentalRouteResponse(svc RoutingService, route *datastructure.EnvironmentalRoute) environmentalRouteResponse {
	resp := environmentalRouteResponse{
		Found: route.Found(),
		Best:  newParkAndWalkResponse(svc, route.Best),
	}
	for _, cand := range route.Approximate {
		resp.Approximate = append(resp.Approximate, newParkAndWalkResponse(svc, cand))
	}
	return resp
}

type nearestVertexResponse struct {
	Id   int32  `json:"id"`
	Code string `json:"code"`
}

func NewNearestVertexResponse(id int32, code string) nearestVertexResponse {
	return nearestVertexResponse{
		Id:   id,
		Code: code,
	}
}
