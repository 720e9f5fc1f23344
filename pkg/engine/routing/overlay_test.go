package routing

import (
	"testing"

	da "github.com/kotarute/kotarute/pkg/datastructure"
	"github.com/stretchr/testify/assert"
)

type availabilitySnapshot struct {
	vertices map[da.Index]bool
	edges    map[da.Index]bool
}

func snapshotAvailability(g *da.Graph) availabilitySnapshot {
	snap := availabilitySnapshot{
		vertices: make(map[da.Index]bool),
		edges:    make(map[da.Index]bool),
	}
	for _, vId := range g.GetVertexSet() {
		snap.vertices[vId] = g.GetVertex(vId).IsAvailable()
		g.ForOutEdgesOf(vId, func(eId da.Index, e *da.Edge) {
			snap.edges[eId] = e.IsAvailable()
		})
	}
	return snap
}

func TestOverlayApplyAndRestore(t *testing.T) {
	g := newTestGraph(t)
	before := snapshotAvailability(g)

	overlay := NewAvailabilityOverlay(g)
	overlay.Apply([]int32{2, 999}, [][2]int32{{1, 3}, {77, 88}})

	assert.False(t, g.GetVertex(handleOf(t, g, 2)).IsAvailable())

	overlay.Restore()
	assert.Equal(t, before, snapshotAvailability(g), "every flag back to its pre-apply state")

	// second restore is a no-op
	overlay.Restore()
	assert.Equal(t, before, snapshotAvailability(g))
}

func TestOverlaySegmentIsDirected(t *testing.T) {
	g := newTestGraph(t)
	a := handleOf(t, g, 1)
	b := handleOf(t, g, 2)

	overlay := NewAvailabilityOverlay(g)
	overlay.Apply(nil, [][2]int32{{1, 2}})

	g.ForOutEdgesOf(a, func(eId da.Index, e *da.Edge) {
		if e.GetHead() == b {
			assert.False(t, e.IsAvailable(), "the 1->2 half must be disabled")
		}
	})
	g.ForOutEdgesOf(b, func(eId da.Index, e *da.Edge) {
		if e.GetHead() == a {
			assert.True(t, e.IsAvailable(), "the 2->1 half must stay usable")
		}
	})

	overlay.Restore()
}

func TestOverlayRestoreKeepsPriorUnavailability(t *testing.T) {
	g := newTestGraph(t)
	b := handleOf(t, g, 2)
	g.GetVertex(b).SetAvailable(false) // unavailable before the overlay runs

	overlay := NewAvailabilityOverlay(g)
	overlay.Apply([]int32{2, 3}, nil)
	overlay.Restore()

	assert.False(t, g.GetVertex(b).IsAvailable(),
		"a flag the overlay never flipped must not be restored")
	assert.True(t, g.GetVertex(handleOf(t, g, 3)).IsAvailable())
}
