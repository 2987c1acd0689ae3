// Package bfs implements the direction-optimizing BFS driver: frontier to
// bitmap conversions, the top-down and bottom-up steps, and the heuristic
// that switches between them, grounded on the reference implementation's
// bfs_bottom_up_step/bfs_top_down_step/make_bfs_tree.
package bfs

import (
	"github.com/csrbfs/bfs500/internal/bitmap"
	"github.com/csrbfs/bfs500/pkg/atomics"
	"github.com/csrbfs/bfs500/pkg/collections"
	"github.com/csrbfs/bfs500/pkg/parallel"
)

// ThreadBufLen is the default per-worker scratch buffer capacity used to
// amortize the cost of fetch-add queue reservation. Tunables.ThreadBufLen
// overrides it when positive.
const ThreadBufLen = 16384

// fillBitmapFromQueue atomic-sets bm[vlist[q]] for every q in [out, in).
// bm must be zero on entry.
func fillBitmapFromQueue(bm *bitmap.Bitmap, vlist []int64, out, in int64, workers int) {
	parallel.Region(workers, func(ctx *parallel.WorkerCtx) {
		lo, hi := ctx.Range(in - out)
		for idx := lo; idx < hi; idx++ {
			bm.SetAtomic(vlist[out+idx])
		}
	})
}

// fillQueueFromBitmap partitions [0, nv) into contiguous per-worker windows,
// walks each window's set bits via NextSetBit, buffers them into a
// thread-local scratch of capacity threadBufLen, and reserves queue space
// via fetch-add whenever the buffer fills. It returns the resulting queue
// bounds [0, in); vlist[0:in) contains exactly the set bits, unordered.
func fillQueueFromBitmap(bm *bitmap.Bitmap, vlist []int64, nv int64, workers int, threadBufLen int) (out, in int64) {
	var inCounter int64

	parallel.Region(workers, func(ctx *parallel.WorkerCtx) {
		lo, hi := ctx.Range(nv)
		bufp := collections.GetInt64Slice()
		buf := *bufp
		pos := lo - 1
		for {
			pos = bm.NextSetBit(pos)
			if pos == -1 || pos >= hi {
				break
			}
			buf = append(buf, pos)
			if len(buf) == threadBufLen {
				base := atomics.FetchAddInt64(&inCounter, int64(threadBufLen))
				copy(vlist[base:base+int64(threadBufLen)], buf)
				buf = buf[:0]
			}
		}
		if len(buf) > 0 {
			base := atomics.FetchAddInt64(&inCounter, int64(len(buf)))
			copy(vlist[base:base+int64(len(buf))], buf)
		}
		*bufp = buf
		collections.PutInt64Slice(bufp)
	})

	return 0, inCounter
}
