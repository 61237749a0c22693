package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/dd0wney/cluso-community/pkg/community"
	"github.com/dd0wney/cluso-community/pkg/graph"
)

func main() {
	vertices := flag.Int("vertices", 10000, "Number of vertices to create")
	edges := flag.Int("edges", 30000, "Number of edges to create")
	seed := flag.Int64("seed", 42, "Random seed")
	flag.Parse()

	fmt.Printf("🔥 Cluso Community - Detection Benchmark\n")
	fmt.Printf("========================================\n\n")
	fmt.Printf("Configuration:\n")
	fmt.Printf("  Vertices: %d\n", *vertices)
	fmt.Printf("  Edges:    %d\n", *edges)
	fmt.Printf("  Seed:     %d\n\n", *seed)

	rng := rand.New(rand.NewSource(*seed))

	fmt.Printf("📝 Building random graph...\n")
	start := time.Now()

	g := graph.New()
	ids := make([]uint64, *vertices)
	for i := 0; i < *vertices; i++ {
		v := g.AddVertex([]string{"Node"}, map[string]graph.Value{
			"index": graph.IntValue(int64(i)),
		})
		ids[i] = v.ID
	}
	for i := 0; i < *edges; i++ {
		from := ids[rng.Intn(len(ids))]
		to := ids[rng.Intn(len(ids))]
		if err := g.AddEdge(from, to); err != nil {
			log.Fatalf("Failed to create edge: %v", err)
		}
	}

	fmt.Printf("✅ Built graph in %v\n\n", time.Since(start))

	fmt.Printf("🔍 Detecting communities...\n")
	start = time.Now()

	result, err := community.Detect(g, community.Options{
		OnProgress: func(done, total int) {
			fmt.Printf("\r   %d/%d merges", done, total)
		},
	})
	if err != nil {
		log.Fatalf("Detection failed: %v", err)
	}
	elapsed := time.Since(start)

	fmt.Printf("\r✅ Detection finished in %v\n\n", elapsed)
	fmt.Printf("Results:\n")
	fmt.Printf("  Communities: %d\n", len(result.Communities))
	fmt.Printf("  Merges:      %d\n", result.Merges)
	fmt.Printf("  Modularity:  %.4f\n", result.Modularity)
	if elapsed > 0 {
		fmt.Printf("  Rate:        %.0f merges/sec\n", float64(result.Merges)/elapsed.Seconds())
	}
}
