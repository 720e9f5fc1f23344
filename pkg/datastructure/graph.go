package datastructure

import (
	"math"

	"github.com/kotarute/kotarute/pkg"
)

type Index uint32

const (
	INVALID_VERTEX_ID Index = math.MaxUint32
	INVALID_EDGE_ID   Index = math.MaxUint32
)

// Vertex is one intersection. Vertices live in the graph's arena and are
// referred to by their arena handle, never by pointer.
type Vertex struct {
	id        int32  // external id from the map file
	code      string // unique human-readable code
	lat       float64
	lon       float64
	parking   bool
	available bool
	hasCoords bool
	removed   bool

	outEdges []Index // handles into graph.edges, this vertex is the tail
	inEdges  []Index // handles into graph.edges, this vertex is the head
}

func NewVertex(id int32, code string, parking bool) *Vertex {
	return &Vertex{
		id:        id,
		code:      code,
		parking:   parking,
		available: true,
		outEdges:  make([]Index, 0),
		inEdges:   make([]Index, 0),
	}
}

func (v *Vertex) GetID() int32 {
	return v.id
}

func (v *Vertex) GetCode() string {
	return v.code
}

func (v *Vertex) SetCode(code string) {
	v.code = code
}

func (v *Vertex) HasParking() bool {
	return v.parking
}

func (v *Vertex) SetParking(parking bool) {
	v.parking = parking
}

func (v *Vertex) IsAvailable() bool {
	return v.available
}

func (v *Vertex) SetAvailable(available bool) {
	v.available = available
}

func (v *Vertex) HasCoordinates() bool {
	return v.hasCoords
}

func (v *Vertex) GetLat() float64 {
	return v.lat
}

func (v *Vertex) GetLon() float64 {
	return v.lon
}

func (v *Vertex) OutEdges() []Index {
	return v.outEdges
}

func (v *Vertex) InEdges() []Index {
	return v.inEdges
}

// Edge is one directed street segment. A bidirectional street is two edges
// linked through reverse handles; the halves carry independent weights and
// availability.
type Edge struct {
	tail      Index   // arena handle of the origin vertex
	head      Index   // arena handle of the destination vertex
	walkTime  float64 // minute, pkg.INF_WEIGHT if not walkable
	driveTime float64 // minute, pkg.INF_WEIGHT if not drivable
	available bool
	removed   bool
	reverse   Index // handle of the opposite half of a bidirectional pair
}

func NewEdge(tail, head Index, walkTime, driveTime float64) *Edge {
	return &Edge{
		tail:      tail,
		head:      head,
		walkTime:  walkTime,
		driveTime: driveTime,
		available: true,
		reverse:   INVALID_EDGE_ID,
	}
}

func (e *Edge) GetTail() Index {
	return e.tail
}

func (e *Edge) GetHead() Index {
	return e.head
}

func (e *Edge) GetWalkTime() float64 {
	return e.walkTime
}

func (e *Edge) GetDriveTime() float64 {
	return e.driveTime
}

// Weight returns the traversal time for the requested travel mode.
func (e *Edge) Weight(mode pkg.TravelMode) float64 {
	if mode == pkg.WALKING {
		return e.walkTime
	}
	return e.driveTime
}

func (e *Edge) IsAvailable() bool {
	return e.available
}

func (e *Edge) SetAvailable(available bool) {
	e.available = available
}

func (e *Edge) GetReverse() Index {
	return e.reverse
}

func (e *Edge) setReverse(reverse Index) {
	e.reverse = reverse
}

// Graph owns every vertex and edge of the city map. Vertices and edges live
// in append-only arenas; removal tombstones the slot so handles held by
// other edges stay valid. Two lookup indices (by external id and by code)
// are kept in sync with the vertex set at all times.
type Graph struct {
	vertices []*Vertex
	edges    []*Edge

	idToVertex   map[int32]Index
	codeToVertex map[string]Index

	numVertices int
	numEdges    int
}

func NewGraph() *Graph {
	return &Graph{
		vertices:     make([]*Vertex, 0),
		edges:        make([]*Edge, 0),
		idToVertex:   make(map[int32]Index),
		codeToVertex: make(map[string]Index),
	}
}

func (g *Graph) NumberOfVertices() int {
	return g.numVertices
}

func (g *Graph) NumberOfEdges() int {
	return g.numEdges
}

// NumberOfHandles is the arena size, used to size per-search side tables.
// It only grows; tombstoned slots count.
func (g *Graph) NumberOfHandles() int {
	return len(g.vertices)
}

// AddVertex inserts a new intersection. It fails without mutation when the
// id or the code is already indexed.
func (g *Graph) AddVertex(id int32, code string, parking bool) bool {
	if _, ok := g.idToVertex[id]; ok {
		return false
	}
	if _, ok := g.codeToVertex[code]; ok {
		return false
	}

	handle := Index(len(g.vertices))
	g.vertices = append(g.vertices, NewVertex(id, code, parking))
	g.idToVertex[id] = handle
	g.codeToVertex[code] = handle
	g.numVertices++
	return true
}

// RemoveVertex detaches every incoming and outgoing edge of the vertex and
// drops both index entries. Returns false when the id does not resolve.
func (g *Graph) RemoveVertex(id int32) bool {
	handle, ok := g.idToVertex[id]
	if !ok {
		return false
	}
	v := g.vertices[handle]

	for _, eId := range v.outEdges {
		g.detachEdge(eId)
	}
	for _, eId := range v.inEdges {
		if !g.edges[eId].removed {
			g.detachEdge(eId)
		}
	}
	v.outEdges = v.outEdges[:0]
	v.inEdges = v.inEdges[:0]

	delete(g.idToVertex, id)
	delete(g.codeToVertex, v.code)
	v.removed = true
	g.numVertices--
	return true
}

// AddEdge appends a directed segment to the tail's outgoing list and the
// head's incoming list. Parallel edges between the same pair are permitted.
func (g *Graph) AddEdge(srcId, dstId int32, walkTime, driveTime float64) bool {
	eId, ok := g.addEdgeInternal(srcId, dstId, walkTime, driveTime)
	_ = eId
	return ok
}

func (g *Graph) addEdgeInternal(srcId, dstId int32, walkTime, driveTime float64) (Index, bool) {
	src, ok := g.idToVertex[srcId]
	if !ok {
		return INVALID_EDGE_ID, false
	}
	dst, ok := g.idToVertex[dstId]
	if !ok {
		return INVALID_EDGE_ID, false
	}

	eId := Index(len(g.edges))
	g.edges = append(g.edges, NewEdge(src, dst, walkTime, driveTime))
	g.vertices[src].outEdges = append(g.vertices[src].outEdges, eId)
	g.vertices[dst].inEdges = append(g.vertices[dst].inEdges, eId)
	g.numEdges++
	return eId, true
}

// AddBidirectionalEdge adds the two directed halves of an undirected street
// and links them through reverse handles. Atomic: when either endpoint is
// missing, neither half is added.
func (g *Graph) AddBidirectionalEdge(srcId, dstId int32, walkTime, driveTime float64) bool {
	if _, ok := g.idToVertex[srcId]; !ok {
		return false
	}
	if _, ok := g.idToVertex[dstId]; !ok {
		return false
	}

	e1, _ := g.addEdgeInternal(srcId, dstId, walkTime, driveTime)
	e2, _ := g.addEdgeInternal(dstId, srcId, walkTime, driveTime)
	g.edges[e1].setReverse(e2)
	g.edges[e2].setReverse(e1)
	return true
}

// RemoveEdge removes every parallel src->dst edge (multigraph semantics)
// and reports whether at least one was removed. The reverse half of a
// bidirectional pair stays intact and traversable.
func (g *Graph) RemoveEdge(srcId, dstId int32) bool {
	src, ok := g.idToVertex[srcId]
	if !ok {
		return false
	}
	dst, ok := g.idToVertex[dstId]
	if !ok {
		return false
	}

	removed := false
	for _, eId := range g.vertices[src].outEdges {
		e := g.edges[eId]
		if e.removed || e.head != dst {
			continue
		}
		g.detachEdge(eId)
		removed = true
	}
	if removed {
		g.compactAdjacency(src)
		g.compactAdjacency(dst)
	}
	return removed
}

// detachEdge tombstones the edge and unlinks any reverse back-reference.
func (g *Graph) detachEdge(eId Index) {
	e := g.edges[eId]
	if e.removed {
		return
	}
	e.removed = true
	g.numEdges--
	if e.reverse != INVALID_EDGE_ID {
		g.edges[e.reverse].setReverse(INVALID_EDGE_ID)
		e.setReverse(INVALID_EDGE_ID)
	}
}

// compactAdjacency drops tombstoned handles from both adjacency lists of a
// vertex so traversals never revisit removed edges.
func (g *Graph) compactAdjacency(vId Index) {
	v := g.vertices[vId]
	out := v.outEdges[:0]
	for _, eId := range v.outEdges {
		if !g.edges[eId].removed {
			out = append(out, eId)
		}
	}
	v.outEdges = out

	in := v.inEdges[:0]
	for _, eId := range v.inEdges {
		if !g.edges[eId].removed {
			in = append(in, eId)
		}
	}
	v.inEdges = in
}

// FindVertex resolves an external id to an arena handle. Borrow-only: no
// allocation, no mutation.
func (g *Graph) FindVertex(id int32) (Index, bool) {
	handle, ok := g.idToVertex[id]
	return handle, ok
}

// FindVertexByCode resolves a human-readable code to an arena handle.
func (g *Graph) FindVertexByCode(code string) (Index, bool) {
	handle, ok := g.codeToVertex[code]
	return handle, ok
}

func (g *Graph) GetVertex(handle Index) *Vertex {
	return g.vertices[handle]
}

func (g *Graph) GetEdge(handle Index) *Edge {
	return g.edges[handle]
}

// ForOutEdgesOf visits every live outgoing edge of a vertex.
func (g *Graph) ForOutEdgesOf(vId Index, fn func(eId Index, e *Edge)) {
	for _, eId := range g.vertices[vId].outEdges {
		e := g.edges[eId]
		if e.removed {
			continue
		}
		fn(eId, e)
	}
}

// GetVertexSet returns the handles of every live vertex.
func (g *Graph) GetVertexSet() []Index {
	set := make([]Index, 0, g.numVertices)
	for i, v := range g.vertices {
		if !v.removed {
			set = append(set, Index(i))
		}
	}
	return set
}

// ParkingVertices returns the handles of every live vertex flagged as
// offering parking.
func (g *Graph) ParkingVertices() []Index {
	parks := make([]Index, 0)
	for i, v := range g.vertices {
		if !v.removed && v.parking {
			parks = append(parks, Index(i))
		}
	}
	return parks
}

func (g *Graph) SetVertexCoordinates(vId Index, lat, lon float64) {
	v := g.vertices[vId]
	v.lat = lat
	v.lon = lon
	v.hasCoords = true
}

func (g *Graph) GetVertexCoordinates(vId Index) (float64, float64) {
	v := g.vertices[vId]
	return v.lat, v.lon
}

// HasCoordinates reports whether every live vertex carries a coordinate,
// which is what the spatial index needs to be useful.
func (g *Graph) HasCoordinates() bool {
	if g.numVertices == 0 {
		return false
	}
	for _, v := range g.vertices {
		if !v.removed && !v.hasCoords {
			return false
		}
	}
	return true
}
