package routing

import (
	da "github.com/kotarute/kotarute/pkg/datastructure"
)

// AvailabilityOverlay temporarily excludes vertices and directed segments
// from searches by flipping their available flags, without touching the
// graph's topology. It records exactly what it flipped so Restore can undo
// the pass unconditionally, whatever way the enclosed search ends.
//
// Avoid-list entries that do not resolve are treated as caller typos and
// skipped silently. A segment pair disables only the matching directed
// edges, never their reverses.
type AvailabilityOverlay struct {
	graph *da.Graph

	flippedVertices []da.Index
	flippedEdges    []da.Index
}

func NewAvailabilityOverlay(graph *da.Graph) *AvailabilityOverlay {
	return &AvailabilityOverlay{
		graph:           graph,
		flippedVertices: make([]da.Index, 0),
		flippedEdges:    make([]da.Index, 0),
	}
}

// Apply marks the resolved avoid vertices and avoid segments unavailable.
// Only flags that were actually flipped are recorded, so Restore leaves
// every availability bit exactly as it was before Apply.
func (o *AvailabilityOverlay) Apply(avoidNodes []int32, avoidSegments [][2]int32) {
	for _, id := range avoidNodes {
		vId, ok := o.graph.FindVertex(id)
		if !ok {
			continue // assume typo
		}
		v := o.graph.GetVertex(vId)
		if !v.IsAvailable() {
			continue
		}
		v.SetAvailable(false)
		o.flippedVertices = append(o.flippedVertices, vId)
	}

	for _, seg := range avoidSegments {
		srcId, ok := o.graph.FindVertex(seg[0])
		if !ok {
			continue
		}
		dstId, ok := o.graph.FindVertex(seg[1])
		if !ok {
			continue
		}

		o.graph.ForOutEdgesOf(srcId, func(eId da.Index, e *da.Edge) {
			if e.GetHead() != dstId || !e.IsAvailable() {
				return
			}
			e.SetAvailable(false)
			o.flippedEdges = append(o.flippedEdges, eId)
		})
	}
}

// Restore flips back everything Apply touched. Idempotent: a second call is
// a no-op.
func (o *AvailabilityOverlay) Restore() {
	for _, vId := range o.flippedVertices {
		o.graph.GetVertex(vId).SetAvailable(true)
	}
	o.flippedVertices = o.flippedVertices[:0]

	for _, eId := range o.flippedEdges {
		o.graph.GetEdge(eId).SetAvailable(true)
	}
	o.flippedEdges = o.flippedEdges[:0]
}
