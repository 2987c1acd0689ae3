// Package edgeio handles the external I/O the core graph engine stays free
// of: reading an edge list from disk and dumping a built CSR or a completed
// BFS tree back out as compressed JSON, grounded on the teacher's
// pkg/writer and pkg/compression helpers.
package edgeio

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/csrbfs/bfs500/internal/graph"
)

// ReadEdgeList parses a plain-text edge list from path: one edge per line,
// vertex ids separated by whitespace or a comma, blank lines and lines
// starting with '#' ignored.
func ReadEdgeList(path string) (graph.EdgeList, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("edgeio: open %s: %w", path, err)
	}
	defer f.Close()

	return ParseEdgeList(f)
}

// ParseEdgeList reads an edge list in the format ReadEdgeList expects from r.
func ParseEdgeList(r io.Reader) (graph.EdgeList, error) {
	var edges graph.EdgeList

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 16*1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.FieldsFunc(line, func(r rune) bool {
			return r == ' ' || r == '\t' || r == ','
		})
		if len(fields) < 2 {
			return nil, fmt.Errorf("edgeio: line %d: expected 2 vertex ids, got %q", lineNo, line)
		}

		u, err := strconv.ParseInt(fields[0], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("edgeio: line %d: invalid u: %w", lineNo, err)
		}
		v, err := strconv.ParseInt(fields[1], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("edgeio: line %d: invalid v: %w", lineNo, err)
		}

		edges = append(edges, graph.Edge{U: u, V: v})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("edgeio: scan: %w", err)
	}

	return edges, nil
}

// WriteEdgeList writes edges to path as plain-text "u v" lines, one per
// edge, in the format ReadEdgeList accepts.
func WriteEdgeList(path string, edges graph.EdgeList) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("edgeio: create %s: %w", path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, e := range edges {
		if _, err := fmt.Fprintf(w, "%d %d\n", e.U, e.V); err != nil {
			return fmt.Errorf("edgeio: write: %w", err)
		}
	}
	return w.Flush()
}
