package community

import (
	"math/rand"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/dd0wney/cluso-community/pkg/graph"
)

// randomGraph builds a reproducible multigraph with n vertices and up to 3n
// edges, allowing parallel edges and self-loops.
func randomGraph(n int, seed int64) *graph.Graph {
	g := graph.New()
	if n == 0 {
		return g
	}

	rng := rand.New(rand.NewSource(seed))
	ids := make([]uint64, n)
	for i := 0; i < n; i++ {
		ids[i] = g.AddVertex(nil, nil).ID
	}
	edges := rng.Intn(3*n + 1)
	for i := 0; i < edges; i++ {
		g.AddEdge(ids[rng.Intn(n)], ids[rng.Intn(n)])
	}
	return g
}

// TestEngineInvariants uses property-based testing to verify the structural
// invariants of the agglomeration state. These properties should ALWAYS hold
// after initialization and after every merge, for any graph.
func TestEngineInvariants(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50

	properties := gopter.NewProperties(parameters)

	// Property 1: rows, bests, and heap stay consistent through every merge
	properties.Property("invariants hold after every merge", prop.ForAll(
		func(n int, seed int64) bool {
			g := randomGraph(n, seed)
			e := newEngine(g)
			if err := e.verifyInvariants(g); err != nil {
				t.Logf("init: %v", err)
				return false
			}
			for e.step() {
				if err := e.verifyInvariants(g); err != nil {
					t.Logf("after merge %d: %v", e.merges, err)
					return false
				}
			}
			return true
		},
		gen.IntRange(0, 40),
		gen.Int64(),
	))

	// Property 2: the output is always a partition of the vertex set
	properties.Property("output partitions the vertices", prop.ForAll(
		func(n int, seed int64) bool {
			g := randomGraph(n, seed)
			result, err := Detect(g, Options{})
			if err != nil {
				return false
			}
			seen := make(map[uint64]bool)
			for _, c := range result.Communities {
				for _, v := range c.Vertices() {
					if seen[v.ID] {
						return false
					}
					seen[v.ID] = true
				}
			}
			return len(seen) == g.VertexCount()
		},
		gen.IntRange(0, 40),
		gen.Int64(),
	))

	// Property 3: modularity never decreases while merges are accepted
	properties.Property("modularity is monotonic during the run", prop.ForAll(
		func(n int, seed int64) bool {
			g := randomGraph(n, seed)
			e := newEngine(g)
			prev := Modularity(g, e.communities())
			for e.step() {
				q := Modularity(g, e.communities())
				// float32 deltaQ vs float64 recomputation leaves a little slack
				if q < prev-1e-4 {
					t.Logf("modularity fell from %v to %v at merge %d", prev, q, e.merges)
					return false
				}
				prev = q
			}
			return true
		},
		gen.IntRange(0, 40),
		gen.Int64(),
	))

	// Property 4: community count shrinks by exactly one per merge
	properties.Property("each merge retires exactly one community", prop.ForAll(
		func(n int, seed int64) bool {
			g := randomGraph(n, seed)
			e := newEngine(g)
			for {
				before := len(e.live)
				if !e.step() {
					return true
				}
				if len(e.live) != before-1 {
					return false
				}
			}
		},
		gen.IntRange(0, 40),
		gen.Int64(),
	))

	properties.TestingRun(t)
}
