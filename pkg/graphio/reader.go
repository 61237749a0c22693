// Package graphio reads edge-list graphs and writes detected partitions.
package graphio

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/golang/snappy"

	"github.com/dd0wney/cluso-community/pkg/graph"
)

// SourceIDKey is the vertex metadata key holding the vertex identifier from
// the input file.
const SourceIDKey = "source_id"

// ReadEdgeList reads a whitespace-separated edge list from path and builds an
// undirected multigraph. Each non-empty line is "u v"; lines starting with
// '#' are comments. Duplicate lines become parallel edges and u == v becomes
// a self-loop, both preserved. Files ending in ".sz" are snappy-framed.
//
// Every vertex carries its file identifier under the SourceIDKey metadata
// key. Vertices are created in order of first appearance.
func ReadEdgeList(path string) (*graph.Graph, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open edge list: %w", err)
	}
	defer file.Close()

	var r io.Reader = file
	if strings.HasSuffix(path, ".sz") {
		r = snappy.NewReader(file)
	}

	return ParseEdgeList(r)
}

// ParseEdgeList reads an edge list from r. See ReadEdgeList for the format.
func ParseEdgeList(r io.Reader) (*graph.Graph, error) {
	g := graph.New()
	bySource := make(map[int64]uint64) // source ID -> internal vertex ID

	intern := func(sourceID int64) uint64 {
		if id, ok := bySource[sourceID]; ok {
			return id
		}
		v := g.AddVertex(nil, map[string]graph.Value{
			SourceIDKey: graph.IntValue(sourceID),
		})
		bySource[sourceID] = v.ID
		return v.ID
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) != 2 {
			return nil, fmt.Errorf("line %d: expected 2 columns, got %d", lineNum, len(fields))
		}

		from, err := strconv.ParseInt(fields[0], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("line %d, column 1: invalid integer: %w", lineNum, err)
		}
		to, err := strconv.ParseInt(fields[1], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("line %d, column 2: invalid integer: %w", lineNum, err)
		}

		if err := g.AddEdge(intern(from), intern(to)); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read edge list: %w", err)
	}

	return g, nil
}
