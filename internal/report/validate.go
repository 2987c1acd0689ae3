package report

import (
	"fmt"
	"sort"

	"github.com/csrbfs/bfs500/internal/bfs"
	"github.com/csrbfs/bfs500/internal/graph"
	"github.com/csrbfs/bfs500/pkg/collections"
)

// ValidateCSR checks that every adjacency list in c is sorted, free of
// duplicates and self-loops, and symmetric (u in neighbors(v) implies
// v in neighbors(u)). It returns the first violation found, or nil.
func ValidateCSR(c *graph.CSR) error {
	for v := int64(0); v < c.NV(); v++ {
		nbrs := c.Neighbors(v)
		if !sort.SliceIsSorted(nbrs, func(i, j int) bool { return nbrs[i] < nbrs[j] }) {
			return fmt.Errorf("vertex %d: adjacency list is not sorted", v)
		}
		for i, u := range nbrs {
			if u == v {
				return fmt.Errorf("vertex %d: self-loop survived packing", v)
			}
			if i > 0 && nbrs[i-1] == u {
				return fmt.Errorf("vertex %d: duplicate neighbor %d", v, u)
			}
			if !hasNeighbor(c, u, v) {
				return fmt.Errorf("edge (%d,%d) is not symmetric: %d missing from neighbors(%d)", v, u, v, u)
			}
		}
	}
	return nil
}

func hasNeighbor(c *graph.CSR, v, target int64) bool {
	nbrs := c.Neighbors(v)
	i := sort.Search(len(nbrs), func(i int) bool { return nbrs[i] >= target })
	return i < len(nbrs) && nbrs[i] == target
}

// ValidateTree checks that tree obeys the graph500 BFS contract against the
// CSR it was computed from: every visited vertex's parent chain terminates
// at the source, every tree edge corresponds to a real graph edge, and every
// reachable vertex (per a reference scan of c) is marked visited.
func ValidateTree(c *graph.CSR, tree *bfs.Tree) error {
	if tree.NV != c.NV() {
		return fmt.Errorf("tree covers %d vertices, CSR has %d", tree.NV, c.NV())
	}

	for v := int64(0); v < tree.NV; v++ {
		p := tree.Parent[v]
		if p == -1 {
			continue
		}
		if v == tree.Source {
			if p != tree.Source {
				return fmt.Errorf("source %d has parent %d, want itself", tree.Source, p)
			}
			continue
		}
		if !hasNeighbor(c, v, p) {
			return fmt.Errorf("tree edge (%d,%d) is not a graph edge", v, p)
		}
		if err := walksToSource(tree, v); err != nil {
			return err
		}
	}

	return validateReachability(c, tree)
}

// walksToSource follows v's parent chain and fails if it does not reach the
// source within NV steps (which would indicate a cycle or a dangling chain).
func walksToSource(tree *bfs.Tree, v int64) error {
	cur := v
	for steps := int64(0); steps <= tree.NV; steps++ {
		if cur == tree.Source {
			return nil
		}
		next := tree.Parent[cur]
		if next == -1 {
			return fmt.Errorf("vertex %d: parent chain dangles at %d", v, cur)
		}
		cur = next
	}
	return fmt.Errorf("vertex %d: parent chain does not terminate at source %d (cycle?)", v, tree.Source)
}

// validateReachability does a reference BFS/DFS over c from tree.Source and
// confirms every vertex it reaches is marked visited in tree, and vice versa.
func validateReachability(c *graph.CSR, tree *bfs.Tree) error {
	seen := collections.NewBitset(int(c.NV()))
	stack := collections.NewStack[int64](int(c.NV()))
	stack.Push(tree.Source)
	seen.Set(int(tree.Source))

	for !stack.IsEmpty() {
		v, _ := stack.Pop()
		for _, u := range c.Neighbors(v) {
			if !seen.Test(int(u)) {
				seen.Set(int(u))
				stack.Push(u)
			}
		}
	}

	for v := int64(0); v < c.NV(); v++ {
		visited := tree.Parent[v] != -1
		if seen.Test(int(v)) != visited {
			return fmt.Errorf("vertex %d: reachable=%v but tree visited=%v", v, seen.Test(int(v)), visited)
		}
	}

	return nil
}
