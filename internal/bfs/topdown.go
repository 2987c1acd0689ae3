package bfs

import (
	"fmt"
	"sync/atomic"

	"github.com/csrbfs/bfs500/internal/graph"
	"github.com/csrbfs/bfs500/pkg/atomics"
	"github.com/csrbfs/bfs500/pkg/collections"
	appErrors "github.com/csrbfs/bfs500/pkg/errors"
	"github.com/csrbfs/bfs500/pkg/parallel"
)

// topDownStep expands the frontier vlist[k1:oldk2) in parallel: for every
// unclaimed neighbor, the first successful CAS on tree[j] wins the parent
// claim, and the claiming worker appends j to its scratch buffer, flushing
// to vlist via fetch-add reservation when the buffer fills. k2 is advanced
// in place; the caller is responsible for setting k1 = oldk2 afterward.
func topDownStep(c *graph.CSR, tree []int64, vlist []int64, k1, oldk2 int64, k2 *int64, workers int, threadBufLen int) {
	nv := c.NV()
	parallel.Region(workers, func(ctx *parallel.WorkerCtx) {
		lo, hi := ctx.Range(oldk2 - k1)
		bufp := collections.GetInt64Slice()
		defer collections.PutInt64Slice(bufp)
		buf := *bufp

		flush := func() {
			n := int64(len(buf))
			base := atomics.FetchAddInt64(k2, n)
			if base+n > nv {
				panic(fmt.Sprintf("bfs: top-down queue overflow: %s", appErrors.ErrInvariant))
			}
			copy(vlist[base:base+n], buf)
			buf = buf[:0]
		}

		for idx := lo; idx < hi; idx++ {
			v := vlist[k1+idx]
			for _, j := range c.Neighbors(v) {
				if atomic.LoadInt64(&tree[j]) != -1 {
					continue
				}
				if atomics.CasBoolInt64(&tree[j], -1, v) {
					buf = append(buf, j)
					if len(buf) == threadBufLen {
						flush()
					}
				}
			}
		}
		if len(buf) > 0 {
			flush()
		}
		*bufp = buf
	})
}
