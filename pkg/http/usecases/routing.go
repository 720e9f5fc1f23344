package usecases

import (
	"strconv"

	"github.com/kotarute/kotarute/pkg/datastructure"
	"github.com/kotarute/kotarute/pkg/geo"
	"github.com/kotarute/kotarute/pkg/util"
	"go.uber.org/zap"
)

// RoutingService adapts the planner to the HTTP surface: endpoints arrive as
// strings (numeric id or junction code) and leave with optional polyline
// geometry when the map carries coordinates.
type RoutingService struct {
	log          *zap.Logger
	planner      RoutePlanner
	spatialIndex SpatialIndex
}

func NewRoutingService(log *zap.Logger, planner RoutePlanner, spatialIndex SpatialIndex) *RoutingService {
	return &RoutingService{
		log:          log,
		planner:      planner,
		spatialIndex: spatialIndex,
	}
}

// resolveEndpoint accepts either a numeric vertex id or a junction code.
func (rs *RoutingService) resolveEndpoint(endpoint string) (int32, error) {
	if id, err := strconv.ParseInt(endpoint, 10, 32); err == nil {
		return int32(id), nil
	}

	vId, ok := rs.planner.GetGraph().FindVertexByCode(endpoint)
	if !ok {
		return 0, util.WrapErrorf(nil, util.ErrNotFound,
			"vertex with code %q not found", endpoint)
	}
	return rs.planner.GetGraph().GetVertex(vId).GetID(), nil
}

func (rs *RoutingService) FastestRoute(origin, destination string) (*datastructure.DrivingRoute, error) {
	originId, err := rs.resolveEndpoint(origin)
	if err != nil {
		return nil, err
	}
	destinationId, err := rs.resolveEndpoint(destination)
	if err != nil {
		return nil, err
	}

	return rs.planner.FastestDrivingRoute(originId, destinationId)
}

func (rs *RoutingService) RestrictedRoute(origin, destination string, avoidNodes []int32,
	avoidSegments [][2]int32, includeNode *int32) (*datastructure.RouteLeg, error) {
	originId, err := rs.resolveEndpoint(origin)
	if err != nil {
		return nil, err
	}
	destinationId, err := rs.resolveEndpoint(destination)
	if err != nil {
		return nil, err
	}

	return rs.planner.RestrictedDrivingRoute(originId, destinationId,
		avoidNodes, avoidSegments, includeNode)
}

func (rs *RoutingService) EnvironmentalRoute(origin, destination string, maxWalkTime float64,
	avoidNodes []int32, avoidSegments [][2]int32) (*datastructure.EnvironmentalRoute, error) {
	originId, err := rs.resolveEndpoint(origin)
	if err != nil {
		return nil, err
	}
	destinationId, err := rs.resolveEndpoint(destination)
	if err != nil {
		return nil, err
	}

	return rs.planner.EnvironmentalRoute(originId, destinationId, maxWalkTime,
		avoidNodes, avoidSegments)
}

// NearestVertex snaps a raw coordinate to the closest intersection.
func (rs *RoutingService) NearestVertex(lat, lon float64) (int32, string, error) {
	graph := rs.planner.GetGraph()

	if rs.spatialIndex == nil || !graph.HasCoordinates() {
		return 0, "", util.WrapErrorf(nil, util.ErrBadParamInput,
			"the loaded map carries no coordinates")
	}

	vId, ok := rs.spatialIndex.NearestVertex(graph, lat, lon)
	if !ok {
		return 0, "", util.WrapErrorf(nil, util.ErrNotFound,
			"no intersection near %f,%f", lat, lon)
	}

	v := graph.GetVertex(vId)
	return v.GetID(), v.GetCode(), nil
}

// LegGeometry encodes the leg's vertex coordinates as a google polyline.
// Empty when the map carries no coordinates.
func (rs *RoutingService) LegGeometry(leg *datastructure.RouteLeg) string {
	graph := rs.planner.GetGraph()
	if leg == nil || !graph.HasCoordinates() {
		return ""
	}

	coords := make([]geo.Coordinate, 0, len(leg.GetVertexIDs()))
	for _, id := range leg.GetVertexIDs() {
		vId, ok := graph.FindVertex(id)
		if !ok {
			continue
		}
		lat, lon := graph.GetVertexCoordinates(vId)
		coords = append(coords, geo.Coordinate{Lat: lat, Lon: lon})
	}
	return geo.PolylineFromCoords(coords)
}
