package routing

import (
	"runtime"
	"sort"
	"sync"

	"github.com/kotarute/kotarute/pkg"
	"github.com/kotarute/kotarute/pkg/concurrent"
	da "github.com/kotarute/kotarute/pkg/datastructure"
	"github.com/kotarute/kotarute/pkg/util"
	"go.uber.org/zap"
)

// RoutePlanner builds the user-facing route products on top of the Dijkstra
// engine. Plain searches take the read lock; only the restricted product
// mutates shared availability flags through the overlay and therefore takes
// the write lock, so no other search ever observes overlay state.
type RoutePlanner struct {
	mu    sync.RWMutex
	graph *da.Graph
	log   *zap.Logger
}

func NewRoutePlanner(graph *da.Graph, log *zap.Logger) *RoutePlanner {
	return &RoutePlanner{
		graph: graph,
		log:   log,
	}
}

func (p *RoutePlanner) GetGraph() *da.Graph {
	return p.graph
}

// resolve maps an external vertex id to its handle. A primary endpoint that
// does not resolve makes the whole query ill-formed, distinct from the
// "no path" outcome.
func (p *RoutePlanner) resolve(id int32) (da.Index, error) {
	vId, ok := p.graph.FindVertex(id)
	if !ok {
		return da.INVALID_VERTEX_ID, util.WrapErrorf(nil, util.ErrNotFound,
			"vertex with id %d not found", id)
	}
	return vId, nil
}

// FastestDrivingRoute computes the best driving path and a best-effort
// edge-disjoint alternative: the second search may not reuse any directed
// edge of the best path, but its reverse edges stay usable. This is a
// deliberate heuristic, not a k-shortest-paths guarantee.
func (p *RoutePlanner) FastestDrivingRoute(originId, destinationId int32) (*da.DrivingRoute, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	origin, err := p.resolve(originId)
	if err != nil {
		return nil, err
	}
	destination, err := p.resolve(destinationId)
	if err != nil {
		return nil, err
	}

	best, ok := NewDijkstra(p.graph).ShortestPath(origin, destination, pkg.DRIVING, nil)
	if !ok {
		return &da.DrivingRoute{}, nil
	}

	banned := make(map[da.Index]struct{}, len(best.GetEdges()))
	for _, eId := range best.GetEdges() {
		banned[eId] = struct{}{}
	}
	disjoint := func(eId da.Index, e *da.Edge) bool {
		_, used := banned[eId]
		return !used
	}

	alternative, ok := NewDijkstra(p.graph).ShortestPath(origin, destination, pkg.DRIVING, disjoint)
	if !ok {
		return &da.DrivingRoute{Best: best}, nil
	}

	return &da.DrivingRoute{Best: best, Alternative: alternative}, nil
}

// RestrictedDrivingRoute computes the fastest driving path while avoiding
// the given vertices and directed segments, optionally forced through a
// mandatory waypoint (two concatenated searches). Unresolvable avoid-list
// entries are skipped; an unresolvable endpoint or waypoint aborts the
// query with the overlay already restored. Unreachable is a nil leg, not an
// error.
func (p *RoutePlanner) RestrictedDrivingRoute(originId, destinationId int32,
	avoidNodes []int32, avoidSegments [][2]int32, includeNode *int32) (*da.RouteLeg, error) {

	p.mu.Lock()
	defer p.mu.Unlock()

	overlay := NewAvailabilityOverlay(p.graph)
	overlay.Apply(avoidNodes, avoidSegments)
	defer overlay.Restore()

	origin, err := p.resolve(originId)
	if err != nil {
		return nil, err
	}
	destination, err := p.resolve(destinationId)
	if err != nil {
		return nil, err
	}

	if includeNode == nil {
		leg, ok := NewDijkstra(p.graph).ShortestPath(origin, destination, pkg.DRIVING, nil)
		if !ok {
			return nil, nil
		}
		return leg, nil
	}

	waypoint, err := p.resolve(*includeNode)
	if err != nil {
		return nil, err
	}

	firstHalf, ok := NewDijkstra(p.graph).ShortestPath(origin, waypoint, pkg.DRIVING, nil)
	if !ok {
		// second leg is pointless when the first already failed
		return nil, nil
	}

	secondHalf, ok := NewDijkstra(p.graph).ShortestPath(waypoint, destination, pkg.DRIVING, nil)
	if !ok {
		return nil, nil
	}

	return concatLegs(firstHalf, secondHalf), nil
}

// concatLegs joins two legs that share a pivot vertex; total cost is the
// sum of the two final distances.
func concatLegs(first, second *da.RouteLeg) *da.RouteLeg {
	edges := make([]da.Index, 0, len(first.GetEdges())+len(second.GetEdges()))
	edges = append(edges, first.GetEdges()...)
	edges = append(edges, second.GetEdges()...)

	vertexIds := make([]int32, 0, len(edges)+1)
	vertexIds = append(vertexIds, first.GetVertexIDs()...)
	vertexIds = append(vertexIds, second.GetVertexIDs()[1:]...)

	return da.NewRouteLeg(edges, vertexIds, first.GetTime()+second.GetTime())
}

// buildAvoidFilter turns avoid-lists into an edge predicate so searches can
// honor restrictions without flipping shared flags. Unresolvable entries
// are skipped, same leniency as the overlay.
func (p *RoutePlanner) buildAvoidFilter(avoidNodes []int32, avoidSegments [][2]int32) EdgeFilter {
	if len(avoidNodes) == 0 && len(avoidSegments) == 0 {
		return nil
	}

	avoidV := make(map[da.Index]struct{}, len(avoidNodes))
	for _, id := range avoidNodes {
		if vId, ok := p.graph.FindVertex(id); ok {
			avoidV[vId] = struct{}{}
		}
	}

	avoidE := make(map[da.Index]struct{}, len(avoidSegments))
	for _, seg := range avoidSegments {
		srcId, ok := p.graph.FindVertex(seg[0])
		if !ok {
			continue
		}
		dstId, ok := p.graph.FindVertex(seg[1])
		if !ok {
			continue
		}
		p.graph.ForOutEdgesOf(srcId, func(eId da.Index, e *da.Edge) {
			if e.GetHead() == dstId {
				avoidE[eId] = struct{}{}
			}
		})
	}

	return func(eId da.Index, e *da.Edge) bool {
		if _, banned := avoidE[eId]; banned {
			return false
		}
		_, banned := avoidV[e.GetHead()]
		return !banned
	}
}

// EnvironmentalRoute computes the drive-park-walk product: for every
// parking vertex other than the endpoints, a driving leg to the parking
// pivot plus a walking leg onward. Candidates are evaluated concurrently;
// avoid-lists are honored through predicates so the graph stays read-only.
//
// Selection is three-tiered: the cheapest candidate whose walking leg fits
// the budget wins; with no in-budget candidate, every over-budget candidate
// within pkg.ENV_TOTAL_TIME_TOLERANCE of the best total is reported; with
// no feasible candidate at all the result is an explicit no-route.
func (p *RoutePlanner) EnvironmentalRoute(originId, destinationId int32, maxWalkTime float64,
	avoidNodes []int32, avoidSegments [][2]int32) (*da.EnvironmentalRoute, error) {

	p.mu.RLock()
	defer p.mu.RUnlock()

	origin, err := p.resolve(originId)
	if err != nil {
		return nil, err
	}
	destination, err := p.resolve(destinationId)
	if err != nil {
		return nil, err
	}

	filter := p.buildAvoidFilter(avoidNodes, avoidSegments)

	parkings := make([]da.Index, 0)
	for _, vId := range p.graph.ParkingVertices() {
		if vId == origin || vId == destination {
			continue
		}
		parkings = append(parkings, vId)
	}

	candidates := p.evaluateParkings(origin, destination, parkings, filter)
	if len(candidates) == 0 {
		return &da.EnvironmentalRoute{}, nil
	}

	sort.Slice(candidates, func(i, j int) bool {
		ci, cj := candidates[i], candidates[j]
		if !da.Eq(ci.TotalTime(), cj.TotalTime()) {
			return da.Lt(ci.TotalTime(), cj.TotalTime())
		}
		if !da.Eq(ci.Walk.GetTime(), cj.Walk.GetTime()) {
			return da.Lt(ci.Walk.GetTime(), cj.Walk.GetTime())
		}
		return ci.ParkingNode < cj.ParkingNode
	})

	for _, cand := range candidates {
		if da.Le(cand.Walk.GetTime(), maxWalkTime) {
			// cheapest in-budget candidate: the sort order already ranks by
			// total time
			return &da.EnvironmentalRoute{Best: cand}, nil
		}
	}

	// budget infeasible: surface the near-best over-budget cluster instead
	// of a bare failure
	bestTotal := candidates[0].TotalTime()
	approximate := make([]*da.ParkAndWalkCandidate, 0)
	for _, cand := range candidates {
		if da.Le(cand.TotalTime(), bestTotal+pkg.ENV_TOTAL_TIME_TOLERANCE) {
			approximate = append(approximate, cand)
		}
	}

	p.log.Debug("environmental walking budget infeasible",
		zap.Float64("maxWalkTime", maxWalkTime),
		zap.Int("approximateCandidates", len(approximate)))

	return &da.EnvironmentalRoute{Approximate: approximate}, nil
}

// evaluateParkings runs the two legs of every parking candidate on the
// worker pool and keeps those where both legs are reachable.
func (p *RoutePlanner) evaluateParkings(origin, destination da.Index, parkings []da.Index,
	filter EdgeFilter) []*da.ParkAndWalkCandidate {

	if len(parkings) == 0 {
		return nil
	}

	numWorkers := util.Min(runtime.NumCPU(), len(parkings))
	pool := concurrent.NewWorkerPool[da.Index, *da.ParkAndWalkCandidate](numWorkers, len(parkings))

	pool.Start(func(parking da.Index) *da.ParkAndWalkCandidate {
		drive, ok := NewDijkstra(p.graph).ShortestPath(origin, parking, pkg.DRIVING, filter)
		if !ok {
			return nil
		}
		walk, ok := NewDijkstra(p.graph).ShortestPath(parking, destination, pkg.WALKING, filter)
		if !ok {
			return nil
		}
		return &da.ParkAndWalkCandidate{
			ParkingNode: p.graph.GetVertex(parking).GetID(),
			Drive:       drive,
			Walk:        walk,
		}
	})

	for _, parking := range parkings {
		pool.AddJob(parking)
	}
	pool.Close()
	pool.Wait()

	candidates := make([]*da.ParkAndWalkCandidate, 0, len(parkings))
	for cand := range pool.CollectResults() {
		if cand != nil {
			candidates = append(candidates, cand)
		}
	}
	return candidates
}
