package community

import (
	"fmt"

	"github.com/dd0wney/cluso-community/pkg/graph"
)

// verifyInvariants checks the structural invariants that must hold between
// merges. Returns the first violation found.
func (e *engine) verifyInvariants(g *graph.Graph) error {
	// Degree sums are conserved across merges
	wantDegree := 0
	for _, v := range g.Vertices() {
		adj, _ := g.AdjacentVertices(v.ID)
		wantDegree += len(adj)
	}
	gotDegree := 0
	gotVertices := 0
	for _, c := range e.live {
		gotDegree += c.degree
		gotVertices += len(c.vertices)
	}
	if gotDegree != wantDegree {
		return fmt.Errorf("degree sum %d, want %d", gotDegree, wantDegree)
	}

	// The partition covers every vertex exactly once
	if gotVertices != g.VertexCount() {
		return fmt.Errorf("vertex sum %d, want %d", gotVertices, g.VertexCount())
	}
	seen := make(map[uint64]bool)
	for _, c := range e.live {
		for _, v := range c.vertices {
			if seen[v.ID] {
				return fmt.Errorf("vertex %d appears in two communities", v.ID)
			}
			seen[v.ID] = true
		}
	}

	heapSize := 0
	for _, c := range e.live {
		// No self-pairs
		if _, ok := c.row.Get(c.id); ok {
			return fmt.Errorf("community %d contains itself as a neighbor", c.id)
		}

		// Rows reference live communities and are symmetric with equal deltaQ
		for i := 0; i < c.row.Len(); i++ {
			entry := c.row.At(i)
			if entry.community.id != entry.id {
				return fmt.Errorf("community %d: entry key %d references community %d", c.id, entry.id, entry.community.id)
			}
			if _, ok := e.live[entry.id]; !ok {
				return fmt.Errorf("community %d references retired community %d", c.id, entry.id)
			}
			back, ok := entry.community.row.Get(c.id)
			if !ok {
				return fmt.Errorf("pair %d->%d has no back entry", c.id, entry.id)
			}
			if back.deltaQ != entry.deltaQ {
				return fmt.Errorf("pair %d<->%d deltaQ mismatch: %v vs %v", c.id, entry.id, entry.deltaQ, back.deltaQ)
			}
		}

		// best tracks the row maximum
		if c.row.Len() == 0 {
			if c.best != nil {
				return fmt.Errorf("community %d: non-nil best on empty row", c.id)
			}
			continue
		}
		heapSize++
		if c.best == nil {
			return fmt.Errorf("community %d: nil best on non-empty row", c.id)
		}
		if _, ok := c.row.Get(c.best.id); !ok {
			return fmt.Errorf("community %d: best entry %d not in row", c.id, c.best.id)
		}
		if max := c.row.Max(); c.best.deltaQ != max.deltaQ {
			return fmt.Errorf("community %d: best deltaQ %v, row max %v", c.id, c.best.deltaQ, max.deltaQ)
		}

		// Heap holds exactly this community at its best value
		slot, ok := e.heap.index[c]
		if !ok {
			return fmt.Errorf("community %d with neighbors missing from heap", c.id)
		}
		if got := e.heap.entries[slot].value; got != c.best.deltaQ {
			return fmt.Errorf("community %d: heap value %v, best %v", c.id, got, c.best.deltaQ)
		}
	}

	if e.heap.Len() != heapSize {
		return fmt.Errorf("heap size %d, want %d", e.heap.Len(), heapSize)
	}

	// The heap top is the global maximum
	if heapSize > 0 {
		_, top, _ := e.heap.Peek()
		var want float32
		first := true
		for _, c := range e.live {
			if c.best == nil {
				continue
			}
			if first || c.best.deltaQ > want {
				want = c.best.deltaQ
				first = false
			}
		}
		if top != want {
			return fmt.Errorf("heap top %v, want global max %v", top, want)
		}
	}

	return nil
}
