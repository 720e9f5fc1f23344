package spatialindex

import (
	"math"

	da "github.com/kotarute/kotarute/pkg/datastructure"
	"github.com/kotarute/kotarute/pkg/geo"
	"github.com/tidwall/rtree"
	"go.uber.org/zap"
)

// Rtree indexes intersection coordinates so callers can snap a raw
// lat/lon to the nearest vertex of the city graph. Only built when the
// map file carries coordinates.
type Rtree struct {
	tr *rtree.RTreeG[da.Index]
}

func NewRtree() *Rtree {
	var tr rtree.RTreeG[da.Index]
	return &Rtree{
		tr: &tr,
	}
}

// Build inserts every live vertex with a leaf bounding box of radius
// boundingBoxRadius (in km) around its coordinate.
func (rt *Rtree) Build(graph *da.Graph, boundingBoxRadius float64, log *zap.Logger) {
	log.Info("building r-tree spatial index",
		zap.Int("vertices", graph.NumberOfVertices()))

	for _, vId := range graph.GetVertexSet() {
		lat, lon := graph.GetVertexCoordinates(vId)

		lowerLat, lowerLon := geo.GetDestinationPoint(lat, lon, 225, boundingBoxRadius)
		upperLat, upperLon := geo.GetDestinationPoint(lat, lon, 45, boundingBoxRadius)

		rt.tr.Insert([2]float64{lowerLon, lowerLat}, [2]float64{upperLon, upperLat}, vId)
	}

	log.Info("r-tree spatial index built")
}

// NearestVertex returns the handle of the vertex closest to the query
// point among the bounding boxes that contain it. Candidates are ranked
// by how close the query lies to the vertex's incident streets, so a
// point alongside a street snaps to that street's intersection rather
// than to a nearer but disconnected vertex. Returns false when no leaf
// covers the point.
func (rt *Rtree) NearestVertex(graph *da.Graph, lat, lon float64) (da.Index, bool) {
	query := geo.NewCoordinate(lat, lon)
	best := da.INVALID_VERTEX_ID
	bestDist := math.MaxFloat64

	rt.tr.Search([2]float64{lon, lat}, [2]float64{lon, lat},
		func(min, max [2]float64, vId da.Index) bool {
			dist := snapDistance(graph, query, vId)
			if dist < bestDist {
				bestDist = dist
				best = vId
			}
			return true
		})

	if best == da.INVALID_VERTEX_ID {
		return da.INVALID_VERTEX_ID, false
	}
	return best, true
}

// snapDistance scores a candidate vertex in meters: the perpendicular
// distance from the query to the nearest outgoing street segment, or the
// plain point distance for a vertex with no usable segment.
func snapDistance(graph *da.Graph, query geo.Coordinate, vId da.Index) float64 {
	vLat, vLon := graph.GetVertexCoordinates(vId)
	tail := geo.NewCoordinate(vLat, vLon)

	dist := geo.CalculateHaversineDistance(query.GetLat(), query.GetLon(), vLat, vLon) * 1000

	graph.ForOutEdgesOf(vId, func(eId da.Index, e *da.Edge) {
		head := graph.GetVertex(e.GetHead())
		if !head.HasCoordinates() {
			return
		}
		segDist := geo.PointLinePerpendicularDistance(tail,
			geo.NewCoordinate(head.GetLat(), head.GetLon()), query)
		if segDist < dist {
			dist = segDist
		}
	})
	return dist
}
