package community

import (
	"github.com/dd0wney/cluso-community/pkg/graph"
)

// engine holds the mutable agglomeration state: the live communities, their
// neighbor rows, and the global heap of per-community best deltaQ values.
//
// The two-level arrangement (each community caches its best neighbor pair,
// the global heap holds one entry per community) is what keeps finding the
// global maximum at O(1) and a merge at O((|rowA|+|rowB|) log n).
type engine struct {
	m      int     // |E| of the input graph
	twoM   float32 // 2m, precomputed once
	ids    *idGenerator
	live   map[uint64]*Community
	heap   *pairHeap
	merges int
}

// newEngine builds the initial state: one singleton community per vertex,
// neighbor rows wired from adjacency, initial deltaQ values, and the seeded
// global heap.
func newEngine(g *graph.Graph) *engine {
	e := &engine{
		m:    g.EdgeCount(),
		twoM: 2 * float32(g.EdgeCount()),
		ids:  newIDGenerator(),
		live: make(map[uint64]*Community, g.VertexCount()),
		heap: newPairHeap(),
	}

	vertices := g.Vertices()
	created := make([]*Community, 0, len(vertices))
	byVertex := make(map[uint64]*Community, len(vertices))

	for _, v := range vertices {
		adj, _ := g.AdjacentVertices(v.ID)
		c := newCommunity(e.ids.Next(), len(adj))
		c.vertices = []*graph.Vertex{v}
		e.live[c.id] = c
		created = append(created, c)
		byVertex[v.ID] = c
	}

	// Wire rows. Self-loops never produce an entry; parallel edges collapse
	// onto the existing entry (the row is a set of distinct neighbors).
	for _, v := range vertices {
		c := byVertex[v.ID]
		adj, _ := g.AdjacentVertices(v.ID)
		for _, u := range adj {
			if u == v.ID {
				continue
			}
			n := byVertex[u]
			if _, ok := c.row.Get(n.id); ok {
				continue
			}
			c.row.Insert(&pairEntry{id: n.id, community: n})
		}
	}

	// Seed deltaQ for every connected singleton pair:
	// deltaQ_ij = 1/(2m) - k_i*k_j/(2m)^2. The formula is symmetric, so the
	// two sides of each pair come out bit-identical without cross-lookups.
	if e.m > 0 {
		inv := 1 / e.twoM
		for _, c := range created {
			k := float32(c.degree)
			for i := 0; i < c.row.Len(); i++ {
				entry := c.row.At(i)
				entry.deltaQ = inv - k*float32(entry.community.degree)*inv*inv
			}
		}
	}

	for _, c := range created {
		c.best = c.row.Max()
		if c.best != nil {
			e.heap.Add(c, c.best.deltaQ)
		}
	}

	return e
}

// step performs one merge of the globally best pair. It returns false when
// no merge happened: the heap is empty, or the best deltaQ is negative
// (exactly zero still merges).
func (e *engine) step() bool {
	top, q, ok := e.heap.Peek()
	if !ok {
		return false
	}
	if q < 0 {
		return false
	}
	e.merge(top, top.best.community)
	e.merges++
	return true
}

// merge replaces communities a and b with their union n, splicing their rows
// with a parallel cursor and applying the Clauset-Newman-Moore update rules:
//
//	both connected to k:  q' = q_ak + q_bk            (10a)
//	only a connected:     q' = q_ak - 2*b_deg/(2m) * k_deg/(2m)  (10b)
//	only b connected:     q' = q_bk - 2*a_deg/(2m) * k_deg/(2m)  (10c)
//
// Every third community k touched has its row edited in place (entries for a
// and b replaced by one for n) and its global heap value refreshed.
func (e *engine) merge(a, b *Community) {
	n := newCommunity(e.ids.Next(), a.degree+b.degree)
	n.vertices = make([]*graph.Vertex, 0, len(a.vertices)+len(b.vertices))
	n.vertices = append(n.vertices, a.vertices...)
	n.vertices = append(n.vertices, b.vertices...)

	inv := 1 / e.twoM
	aFrac := float32(a.degree) * inv
	bFrac := float32(b.degree) * inv

	var best *pairEntry
	ra, rb := a.row, b.row
	i, j := 0, 0
	for i < ra.Len() || j < rb.Len() {
		// The pair between a and b becomes internal and disappears.
		if i < ra.Len() && ra.At(i).id == b.id {
			i++
			continue
		}
		if j < rb.Len() && rb.At(j).id == a.id {
			j++
			continue
		}

		var k *Community
		var q float32
		switch {
		case j >= rb.Len() || (i < ra.Len() && ra.At(i).id < rb.At(j).id):
			ea := ra.At(i)
			k = ea.community
			q = ea.deltaQ - 2*bFrac*(float32(k.degree)*inv)
			i++
		case i >= ra.Len() || rb.At(j).id < ra.At(i).id:
			eb := rb.At(j)
			k = eb.community
			q = eb.deltaQ - 2*aFrac*(float32(k.degree)*inv)
			j++
		default:
			ea, eb := ra.At(i), rb.At(j)
			k = ea.community
			q = ea.deltaQ + eb.deltaQ
			i++
			j++
		}

		// The cursor visits keys in ascending order, so this insert appends;
		// n.id exceeds every key in k's row, so k's insert below appends too.
		entry := &pairEntry{id: k.id, community: k, deltaQ: q}
		n.row.Insert(entry)
		if best == nil || entry.deltaQ > best.deltaQ {
			best = entry
		}

		k.removeNeighbor(a.id)
		k.removeNeighbor(b.id)
		k.insertNeighbor(&pairEntry{id: n.id, community: n, deltaQ: q})
		e.heap.Update(k, k.best.deltaQ)
	}
	n.best = best

	delete(e.live, a.id)
	delete(e.live, b.id)
	e.live[n.id] = n

	e.heap.Remove(a)
	e.heap.Remove(b)
	if n.best != nil {
		e.heap.Add(n, n.best.deltaQ)
	}
}

// communities returns the live communities ordered by ID.
func (e *engine) communities() []*Community {
	out := make([]*Community, 0, len(e.live))
	for id := uint64(1); id < e.ids.next; id++ {
		if c, ok := e.live[id]; ok {
			out = append(out, c)
		}
	}
	return out
}
