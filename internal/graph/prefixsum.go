package graph

import "github.com/csrbfs/bfs500/pkg/parallel"

// PrefixSum computes the in-place exclusive prefix sum of a, using workers
// parallel workers, and returns the total sum. Each worker sums its
// contiguous slice of a (see parallel.WorkerCtx.Range) into a shared
// per-worker buffer; a single worker performs the sequential scan of that
// buffer under a barrier; each worker then rewrites its slice, seeding from
// the predecessor's cumulative total. Two barriers total.
func PrefixSum(a []int64, workers int) int64 {
	n := int64(len(a))
	if n == 0 {
		return 0
	}
	partial := make([]int64, workers)
	var total int64

	parallel.Region(workers, func(ctx *parallel.WorkerCtx) {
		lo, hi := ctx.Range(n)
		var sum int64
		for i := lo; i < hi; i++ {
			sum += a[i]
		}
		partial[ctx.ID] = sum

		ctx.Single(func() {
			var running int64
			for i := range partial {
				s := partial[i]
				partial[i] = running
				running += s
			}
			total = running
		})

		lo, hi = ctx.Range(n)
		running := partial[ctx.ID]
		for i := lo; i < hi; i++ {
			v := a[i]
			a[i] = running
			running += v
		}
	})

	return total
}
