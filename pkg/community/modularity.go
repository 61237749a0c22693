package community

import "github.com/dd0wney/cluso-community/pkg/graph"

// Modularity computes Newman's modularity Q of the given partition:
//
//	Q = sum over communities of (l_c/m - (d_c/2m)^2)
//
// where l_c counts edges with both endpoints inside the community (self-loops
// count once) and d_c is the community's degree sum. Degrees follow the
// graph's adjacency-length convention, so self-loops contribute 1, not 2.
//
// Vertices not covered by the partition contribute nothing.
func Modularity(g *graph.Graph, communities []*Community) float64 {
	m := float64(g.EdgeCount())
	if m == 0 {
		return 0
	}

	member := make(map[uint64]uint64)
	for _, c := range communities {
		for _, v := range c.vertices {
			member[v.ID] = c.id
		}
	}

	intra := make(map[uint64]int)
	for _, e := range g.Edges() {
		cf, okf := member[e.FromID]
		ct, okt := member[e.ToID]
		if okf && okt && cf == ct {
			intra[cf]++
		}
	}

	var q float64
	for _, c := range communities {
		share := float64(c.degree) / (2 * m)
		q += float64(intra[c.id])/m - share*share
	}
	return q
}
