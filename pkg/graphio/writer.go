package graphio

import (
	"bufio"
	"fmt"
	"io"

	"github.com/dd0wney/cluso-community/pkg/community"
	"github.com/dd0wney/cluso-community/pkg/graph"
)

// WriteCommunities writes one line per community:
//
//	community <id>: v1 v2 ...
//
// Vertices print their SourceIDKey metadata when present, falling back to the
// internal vertex ID.
func WriteCommunities(w io.Writer, communities []*community.Community) error {
	bw := bufio.NewWriter(w)
	for _, c := range communities {
		if _, err := fmt.Fprintf(bw, "community %d:", c.ID()); err != nil {
			return fmt.Errorf("failed to write community: %w", err)
		}
		for _, v := range c.Vertices() {
			if _, err := fmt.Fprintf(bw, " %s", vertexLabel(v)); err != nil {
				return fmt.Errorf("failed to write community: %w", err)
			}
		}
		if _, err := fmt.Fprintln(bw); err != nil {
			return fmt.Errorf("failed to write community: %w", err)
		}
	}
	return bw.Flush()
}

func vertexLabel(v *graph.Vertex) string {
	if val, ok := v.GetMetadata(SourceIDKey); ok {
		if id, err := val.AsInt(); err == nil {
			return fmt.Sprintf("%d", id)
		}
	}
	return fmt.Sprintf("%d", v.ID)
}
