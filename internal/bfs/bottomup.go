package bfs

import (
	"sync/atomic"

	"github.com/csrbfs/bfs500/internal/bitmap"
	"github.com/csrbfs/bfs500/internal/graph"
	"github.com/csrbfs/bfs500/pkg/atomics"
	"github.com/csrbfs/bfs500/pkg/parallel"
)

// bottomUpStep swaps past and next (the previous step's output becomes this
// step's input), resets next, then has every unvisited vertex scan its
// neighbor slice for the first one present in past — the tie-break is the
// first neighbor in ascending-ID order. It returns the size of the new
// frontier (awake_count).
func bottomUpStep(c *graph.CSR, tree []int64, past, next *bitmap.Bitmap, workers int) int64 {
	bitmap.Swap(past, next)

	nv := c.NV()
	parallel.Region(workers, func(ctx *parallel.WorkerCtx) {
		lo, hi := ctx.Range(nv)
		next.ResetRange(lo, hi)
	})

	var awake int64
	parallel.Region(workers, func(ctx *parallel.WorkerCtx) {
		lo, hi := ctx.Range(nv)
		var local int64
		for i := lo; i < hi; i++ {
			if atomic.LoadInt64(&tree[i]) != -1 {
				continue
			}
			for _, j := range c.Neighbors(i) {
				if past.Get(j) {
					tree[i] = j
					next.Set(i)
					local++
					break
				}
			}
		}
		atomics.FetchAddInt64(&awake, local)
	})

	return awake
}
