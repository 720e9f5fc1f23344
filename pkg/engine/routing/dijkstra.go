package routing

import (
	"github.com/kotarute/kotarute/pkg"
	da "github.com/kotarute/kotarute/pkg/datastructure"
	"github.com/kotarute/kotarute/pkg/util"
)

// EdgeFilter rejects edges for a single search without touching shared
// state. A nil filter accepts everything. Returning false skips the edge.
type EdgeFilter func(eId da.Index, e *da.Edge) bool

// Dijkstra is a single label-setting search over one weight dimension.
// All scratch state (distance labels, parent edges, settled flags) lives on
// the search object, not on the graph, so any number of searches may run
// concurrently over the same graph as long as nobody mutates it.
type Dijkstra struct {
	graph *da.Graph

	dist       []float64
	parentEdge []da.Index
	visited    []bool
	heapNodes  []*da.PriorityQueueNode[da.Index]

	pq *da.MinHeap[da.Index]

	numSettledNodes int
}

func NewDijkstra(graph *da.Graph) *Dijkstra {
	return &Dijkstra{
		graph: graph,
		pq:    da.NewFourAryHeap[da.Index](),
	}
}

func (d *Dijkstra) preallocate() {
	n := d.graph.NumberOfHandles()
	d.dist = make([]float64, n)
	d.parentEdge = make([]da.Index, n)
	d.visited = make([]bool, n)
	d.heapNodes = make([]*da.PriorityQueueNode[da.Index], n)
	for i := 0; i < n; i++ {
		d.dist[i] = pkg.INF_WEIGHT
		d.parentEdge[i] = da.INVALID_EDGE_ID
	}
	d.pq.Clear()
	d.pq.Preallocate(n)
	d.numSettledNodes = 0
}

// ShortestPath runs a single-pair search from origin to destination using
// the weight of the given travel mode. It returns the route leg and true on
// success, or nil and false when the destination is unreachable.
// origin == destination is a zero-cost success with an empty edge list.
func (d *Dijkstra) ShortestPath(origin, destination da.Index, mode pkg.TravelMode, filter EdgeFilter) (*da.RouteLeg, bool) {
	d.preallocate()

	if origin == destination {
		originId := d.graph.GetVertex(origin).GetID()
		return da.NewRouteLeg([]da.Index{}, []int32{originId}, 0), true
	}

	d.dist[origin] = 0
	sNode := da.NewPriorityQueueNode(0, origin)
	d.heapNodes[origin] = sNode
	d.pq.Insert(sNode)

	for !d.pq.IsEmpty() {
		node, _ := d.pq.ExtractMin()
		uId := node.GetItem()

		if d.visited[uId] {
			continue
		}
		d.visited[uId] = true
		d.numSettledNodes++

		if uId == destination {
			// label is final for a single-pair query, stop early
			break
		}

		d.relaxOutEdges(uId, mode, filter)
	}

	return d.reconstructPath(origin, destination)
}

func (d *Dijkstra) relaxOutEdges(uId da.Index, mode pkg.TravelMode, filter EdgeFilter) {
	d.graph.ForOutEdgesOf(uId, func(eId da.Index, e *da.Edge) {
		weight := e.Weight(mode)
		if da.Ge(weight, pkg.INF_WEIGHT) {
			// segment not traversable in this mode
			return
		}
		if !e.IsAvailable() {
			return
		}

		vId := e.GetHead()
		if !d.graph.GetVertex(vId).IsAvailable() {
			return
		}
		if filter != nil && !filter(eId, e) {
			return
		}
		if d.visited[vId] {
			return
		}

		newDist := d.dist[uId] + weight
		if !da.Lt(newDist, d.dist[vId]) {
			return
		}

		d.dist[vId] = newDist
		d.parentEdge[vId] = eId

		if vNode := d.heapNodes[vId]; vNode != nil && vNode.GetPos() >= 0 {
			d.pq.DecreaseKey(vNode, newDist)
		} else {
			vNode := da.NewPriorityQueueNode(newDist, vId)
			d.heapNodes[vId] = vNode
			d.pq.Insert(vNode)
		}
	})
}

func (d *Dijkstra) reconstructPath(origin, destination da.Index) (*da.RouteLeg, bool) {
	if d.parentEdge[destination] == da.INVALID_EDGE_ID {
		return nil, false
	}

	edges := make([]da.Index, 0)
	for eId := d.parentEdge[destination]; eId != da.INVALID_EDGE_ID; {
		edges = append(edges, eId)
		eId = d.parentEdge[d.graph.GetEdge(eId).GetTail()]
	}
	edges = util.ReverseG(edges)

	vertexIds := make([]int32, 0, len(edges)+1)
	vertexIds = append(vertexIds, d.graph.GetVertex(origin).GetID())
	for _, eId := range edges {
		head := d.graph.GetEdge(eId).GetHead()
		vertexIds = append(vertexIds, d.graph.GetVertex(head).GetID())
	}

	return da.NewRouteLeg(edges, vertexIds, d.dist[destination]), true
}
