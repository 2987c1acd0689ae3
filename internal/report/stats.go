package report

import (
	"time"

	"github.com/csrbfs/bfs500/internal/bfs"
	"github.com/csrbfs/bfs500/internal/graph"
)

// Stats summarizes a single make_bfs_tree run for benchmarking and storage.
type Stats struct {
	NumVertices       int64
	EdgeCount         int64
	SourceVertex      int64
	Workers           int
	VisitedCount      int64
	UnreachedCount    int64
	LevelsReached     int64
	EdgesTraversed    int64
	DirectionSwitches int
	Elapsed           time.Duration
	TEPS              float64
}

// ComputeStats walks tree and the originating CSR to produce a Stats record.
// EdgesTraversed sums the degree of every visited vertex, matching the
// graph500 reference's nedge_traversed accounting (edges examined by the
// BFS, not just the tree edges retained in the parent array).
func ComputeStats(c *graph.CSR, tree *bfs.Tree, edgeCount int64, workers int, elapsed time.Duration) *Stats {
	st := &Stats{
		NumVertices:       tree.NV,
		EdgeCount:         edgeCount,
		SourceVertex:      tree.Source,
		Workers:           workers,
		Elapsed:           elapsed,
		DirectionSwitches: tree.DirectionSwitches,
	}

	depth := make(map[int64]int64, tree.NV)
	for v := int64(0); v < tree.NV; v++ {
		if tree.Parent[v] == -1 {
			st.UnreachedCount++
			continue
		}
		st.VisitedCount++
		st.EdgesTraversed += c.Degree(v)
		d := depthOf(tree, depth, v)
		if d > st.LevelsReached {
			st.LevelsReached = d
		}
	}

	if elapsed > 0 {
		st.TEPS = float64(st.EdgesTraversed) / elapsed.Seconds()
	}

	return st
}
