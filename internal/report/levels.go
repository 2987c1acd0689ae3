package report

import (
	"github.com/csrbfs/bfs500/internal/bfs"
	"github.com/csrbfs/bfs500/pkg/collections"
)

// LevelCounts computes the number of vertices at each hop distance from
// tree's source, re-deriving level order with a fresh queue-driven BFS over
// the parent tree rather than trusting any level bookkeeping from the
// driver itself.
func LevelCounts(tree *bfs.Tree) []int64 {
	children := make(map[int64][]int64, tree.NV)
	for v := int64(0); v < tree.NV; v++ {
		p := tree.Parent[v]
		if p == -1 || v == tree.Source {
			continue
		}
		children[p] = append(children[p], v)
	}

	var counts []int64
	q := collections.NewQueue[levelVertex](16)
	q.Enqueue(levelVertex{id: tree.Source, level: 0})

	for !q.IsEmpty() {
		lv, _ := q.Dequeue()
		for len(counts) <= int(lv.level) {
			counts = append(counts, 0)
		}
		counts[lv.level]++

		for _, c := range children[lv.id] {
			q.Enqueue(levelVertex{id: c, level: lv.level + 1})
		}
	}

	return counts
}

type levelVertex struct {
	id    int64
	level int64
}
