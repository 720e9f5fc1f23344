package datastructure

// RouteLeg is one contiguous walk over the graph: an ordered edge sequence
// where each edge's tail equals the previous edge's head, plus the summed
// traversal time of the active travel mode. A leg with no edges is the
// zero-cost origin==destination case, not "no path".
type RouteLeg struct {
	edges     []Index
	vertexIds []int32 // external ids, origin first, destination last
	time      float64
}

func NewRouteLeg(edges []Index, vertexIds []int32, time float64) *RouteLeg {
	return &RouteLeg{
		edges:     edges,
		vertexIds: vertexIds,
		time:      time,
	}
}

func (l *RouteLeg) GetEdges() []Index {
	return l.edges
}

func (l *RouteLeg) GetVertexIDs() []int32 {
	return l.vertexIds
}

func (l *RouteLeg) GetTime() float64 {
	return l.time
}

// DrivingRoute is the fastest driving path together with a best-effort
// edge-disjoint alternative. Alternative is nil when rerunning the search
// with the best path's edges banned reaches nothing.
type DrivingRoute struct {
	Best        *RouteLeg
	Alternative *RouteLeg
}

// ParkAndWalkCandidate is one parking pivot evaluated by the environmental
// search: a driving leg to the parking vertex and a walking leg onward.
type ParkAndWalkCandidate struct {
	ParkingNode int32
	Drive       *RouteLeg
	Walk        *RouteLeg
}

func (c *ParkAndWalkCandidate) TotalTime() float64 {
	return c.Drive.GetTime() + c.Walk.GetTime()
}

// EnvironmentalRoute is the drive-park-walk product. Exactly one of the
// three shapes holds:
//   - Best != nil: an in-budget candidate was selected.
//   - len(Approximate) > 0: no candidate met the walking budget; the
//     near-best over-budget candidates are reported instead.
//   - neither: no parking vertex yields a feasible pair of legs.
type EnvironmentalRoute struct {
	Best        *ParkAndWalkCandidate
	Approximate []*ParkAndWalkCandidate
}

func (r *EnvironmentalRoute) Found() bool {
	return r.Best != nil || len(r.Approximate) > 0
}
