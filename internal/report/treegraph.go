// Package report computes summary statistics for a completed BFS run,
// validates its invariants, and exports the parent tree as a node/edge JSON
// document, adapted from the teacher's call-graph visualization model.
package report

import "github.com/csrbfs/bfs500/internal/bfs"

// Node is one vertex of an exported BFS tree.
type Node struct {
	ID     int64 `json:"id"`
	Parent int64 `json:"parent"`
	Depth  int64 `json:"depth"`
	Root   bool  `json:"root,omitempty"`
}

// Edge is one parent-to-child tree edge.
type Edge struct {
	Source int64 `json:"source"`
	Target int64 `json:"target"`
}

// TreeGraph is a completed BFS parent tree, shaped as nodes+edges for JSON
// export — the same shape the teacher used to visualize call graphs, now
// visualizing BFS trees instead.
type TreeGraph struct {
	Source        int64   `json:"source"`
	VisitedCount  int64   `json:"visitedCount"`
	UnreachedCount int64  `json:"unreachedCount"`
	Nodes         []*Node `json:"nodes"`
	Edges         []*Edge `json:"edges"`
}

// BuildTreeGraph walks tree.Parent and produces a TreeGraph: one Node per
// visited vertex (with its depth from the source) and one Edge per
// parent-child relationship.
func BuildTreeGraph(tree *bfs.Tree) *TreeGraph {
	depth := make(map[int64]int64, tree.NV)
	tg := &TreeGraph{
		Source: tree.Source,
		Nodes:  make([]*Node, 0, tree.NV),
		Edges:  make([]*Edge, 0, tree.NV),
	}

	for v := int64(0); v < tree.NV; v++ {
		if tree.Parent[v] == -1 {
			tg.UnreachedCount++
			continue
		}
		depth[v] = depthOf(tree, depth, v)
	}

	for v := int64(0); v < tree.NV; v++ {
		p := tree.Parent[v]
		if p == -1 {
			continue
		}
		tg.VisitedCount++
		tg.Nodes = append(tg.Nodes, &Node{
			ID:     v,
			Parent: p,
			Depth:  depth[v],
			Root:   v == tree.Source,
		})
		if v != tree.Source {
			tg.Edges = append(tg.Edges, &Edge{Source: p, Target: v})
		}
	}

	return tg
}

// depthOf returns v's hop count from the tree's source, memoizing into
// memo as it walks the parent chain.
func depthOf(tree *bfs.Tree, memo map[int64]int64, v int64) int64 {
	if v == tree.Source {
		return 0
	}
	if d, ok := memo[v]; ok {
		return d
	}
	d := 1 + depthOf(tree, memo, tree.Parent[v])
	memo[v] = d
	return d
}
