// Package community implements agglomerative community detection on
// undirected graphs: greedy modularity maximization in the style of
// Clauset-Newman-Moore, with per-community neighbor rows and a global
// max-heap of best pair gains so each merge costs O(row log n).
package community

import "github.com/dd0wney/cluso-community/pkg/graph"

// Community is a set of vertices treated as a single node during
// agglomeration. ID, Vertices, Size and Degree are exported; the neighbor row
// and cached best pair are internal to the engine.
//
// A community is live from creation until the merger consumes it as one of
// the two merge inputs. Retirement is final: the merger removes every
// reference to it from other rows and from the global heap.
type Community struct {
	id       uint64
	vertices []*graph.Vertex
	degree   int // sum of member vertex degrees in the original graph
	row      *neighborRow
	best     *pairEntry // max-deltaQ entry in row; nil when row is empty
}

func newCommunity(id uint64, degree int) *Community {
	return &Community{
		id:     id,
		degree: degree,
		row:    newNeighborRow(),
	}
}

// ID returns the community's unique identifier.
func (c *Community) ID() uint64 {
	return c.id
}

// Vertices returns the member vertices in agglomeration order.
func (c *Community) Vertices() []*graph.Vertex {
	return c.vertices
}

// Size returns the number of member vertices.
func (c *Community) Size() int {
	return len(c.vertices)
}

// Degree returns the sum of member vertex degrees.
func (c *Community) Degree() int {
	return c.degree
}

// insertNeighbor adds an entry to the row, raising best when the new entry
// beats it.
func (c *Community) insertNeighbor(e *pairEntry) {
	c.row.Insert(e)
	if c.best == nil || e.deltaQ > c.best.deltaQ {
		c.best = e
	}
}

// removeNeighbor drops the entry keyed by id. Losing the best entry forces a
// rescan; everything else leaves best untouched.
func (c *Community) removeNeighbor(id uint64) {
	e, ok := c.row.Remove(id)
	if !ok {
		return
	}
	if e == c.best {
		c.best = c.row.Max()
	}
}
