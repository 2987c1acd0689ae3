// Package graph implements parallel construction of a compressed sparse-row
// (CSR) representation from an unordered edge list, grounded on the
// reference implementation's create_graph_from_edgelist pipeline.
package graph

import (
	"context"
	"fmt"
	"sort"
	"sync/atomic"

	"go.opentelemetry.io/otel"

	"github.com/csrbfs/bfs500/pkg/atomics"
	appErrors "github.com/csrbfs/bfs500/pkg/errors"
	"github.com/csrbfs/bfs500/pkg/parallel"
)

var tracer = otel.Tracer("bfs500/graph")

// MinVectSize is the default minimum neighbor-slice capacity reserved per
// vertex, regardless of its actual degree. Tunables.MinVectSize overrides it
// when positive.
const MinVectSize = 2

// Tunables holds CSR construction parameters that can be overridden from
// pkg/config.GraphConfig; a zero Tunables falls back to the package defaults.
type Tunables struct {
	MinVectSize int64
}

// CSR is a compressed sparse-row graph: xoff holds interleaved (start, end)
// cursor pairs per vertex, xadj holds the flat neighbor storage.
type CSR struct {
	nv        int64
	xoff      []int64
	xadjstore []int64
	xadj      []int64 // xadjstore[MinVectSize:]; the sentinel prefix is reachable only through xadjstore
	workers   int
}

// NV returns the number of vertices (1 + max vertex ID seen).
func (c *CSR) NV() int64 { return c.nv }

// Workers returns the worker count the graph was built with. BFS does not
// read it: bfs.MakeBFSTree takes its own worker count.
func (c *CSR) Workers() int { return c.workers }

// XOFF returns the start cursor for vertex k's neighbor slice.
func (c *CSR) XOFF(k int64) int64 { return c.xoff[2*k] }

// XENDOFF returns the current (exclusive) end cursor for vertex k.
func (c *CSR) XENDOFF(k int64) int64 { return c.xoff[2*k+1] }

func (c *CSR) setXOFF(k, v int64)    { c.xoff[2*k] = v }
func (c *CSR) setXENDOFF(k, v int64) { c.xoff[2*k+1] = v }

// fetchAddXENDOFF atomically advances vertex k's end cursor by delta and
// returns the cursor value immediately before the advance — the reserved
// write index used by scatter.
func (c *CSR) fetchAddXENDOFF(k, delta int64) int64 {
	return atomics.FetchAddInt64(&c.xoff[2*k+1], delta)
}

// Degree returns vertex k's current neighbor count.
func (c *CSR) Degree(k int64) int64 { return c.XENDOFF(k) - c.XOFF(k) }

// Neighbors returns the (already sorted, deduplicated) neighbor slice of
// vertex k. The returned slice aliases CSR storage; callers must not retain
// it past Destroy.
func (c *CSR) Neighbors(k int64) []int64 {
	return c.xadj[c.XOFF(k):c.XENDOFF(k)]
}

// TotalCapacity returns the total allocated neighbor-slot capacity, xoff[2*nv].
func (c *CSR) TotalCapacity() int64 { return c.xoff[2*c.nv] }

// Build runs the eight-phase CSR construction pipeline over edges, using
// workers goroutines per parallel phase.
func Build(ctx context.Context, edges EdgeList, workers int, tunables Tunables) (*CSR, error) {
	ctx, span := tracer.Start(ctx, "graph.build")
	defer span.End()

	if len(edges) == 0 {
		return nil, appErrors.Wrap(appErrors.CodeInvalidEdgeList, "edge list is empty", nil)
	}
	if workers < 1 {
		workers = 1
	}
	minVectSize := tunables.MinVectSize
	if minVectSize <= 0 {
		minVectSize = MinVectSize
	}

	// Phase 1: vertex-count discovery.
	var maxvtx int64 = -1
	parallel.Region(workers, func(ctx *parallel.WorkerCtx) {
		lo, hi := ctx.Range(int64(len(edges)))
		var localMax int64 = -1
		for i := lo; i < hi; i++ {
			e := edges[i]
			if e.U > localMax {
				localMax = e.U
			}
			if e.V > localMax {
				localMax = e.V
			}
		}
		if localMax >= 0 {
			atomics.MaxInt64(&maxvtx, localMax)
		}
	})
	if maxvtx < 0 {
		return nil, appErrors.Wrap(appErrors.CodeInvalidEdgeList, "no valid vertex found in edge list", nil)
	}
	nv := maxvtx + 1

	// Phase 2: allocate xoff.
	c := &CSR{
		nv:      nv,
		xoff:    make([]int64, 2*nv+2),
		workers: workers,
	}

	func() {
		_, degreeSpan := tracer.Start(ctx, "graph.build.degree")
		defer degreeSpan.End()

		// Phase 3: degree counting.
		parallel.Region(workers, func(wc *parallel.WorkerCtx) {
			lo, hi := wc.Range(int64(len(edges)))
			for i := lo; i < hi; i++ {
				e := edges[i]
				if !e.Valid() {
					continue
				}
				atomic.AddInt64(&c.xoff[2*e.U], 1)
				atomic.AddInt64(&c.xoff[2*e.V], 1)
			}
		})

		// Phase 4: degree floor.
		parallel.Region(workers, func(wc *parallel.WorkerCtx) {
			lo, hi := wc.Range(nv)
			for k := lo; k < hi; k++ {
				if c.XOFF(k) < minVectSize {
					c.setXOFF(k, minVectSize)
				}
			}
		})
	}()

	// Phase 5: offset assignment via parallel prefix-sum.
	deg := make([]int64, nv)
	for k := int64(0); k < nv; k++ {
		deg[k] = c.XOFF(k)
	}
	total := PrefixSum(deg, workers)
	parallel.Region(workers, func(ctx *parallel.WorkerCtx) {
		lo, hi := ctx.Range(nv)
		for k := lo; k < hi; k++ {
			c.setXOFF(k, deg[k])
			c.setXENDOFF(k, deg[k])
		}
	})
	c.xoff[2*nv] = total

	// Phase 6: allocate xadjstore.
	c.xadjstore = make([]int64, total+minVectSize)
	for i := range c.xadjstore {
		c.xadjstore[i] = -1
	}
	c.xadj = c.xadjstore[minVectSize:]

	// Phase 7: scatter.
	func() {
		_, scatterSpan := tracer.Start(ctx, "graph.build.scatter")
		defer scatterSpan.End()

		parallel.Region(workers, func(wc *parallel.WorkerCtx) {
			lo, hi := wc.Range(int64(len(edges)))
			for i := lo; i < hi; i++ {
				e := edges[i]
				if !e.Valid() {
					continue
				}
				c.scatterHalfEdge(e.U, e.V)
				c.scatterHalfEdge(e.V, e.U)
			}
		})
	}()

	// Phase 8: per-vertex pack (sort + dedup).
	parallel.Region(workers, func(ctx *parallel.WorkerCtx) {
		lo, hi := ctx.Range(nv)
		for k := lo; k < hi; k++ {
			c.packVertex(k)
		}
	})

	return c, nil
}

// scatterHalfEdge reserves the next write slot in owner's neighbor slice
// via fetch-add on XENDOFF and stores target there.
func (c *CSR) scatterHalfEdge(owner, target int64) {
	idx := c.fetchAddXENDOFF(owner, 1)
	if idx >= c.XOFF(owner+1) {
		panic(fmt.Sprintf("graph: scatter offset overflow for vertex %d: %s", owner, appErrors.ErrInvariant))
	}
	c.xadj[idx] = target
}

// packVertex sorts and deduplicates vertex k's (possibly duplicate-laden)
// neighbor slice in place, moving XENDOFF down to the new end and filling
// the vacated tail with -1.
func (c *CSR) packVertex(k int64) {
	start, end := c.XOFF(k), c.XENDOFF(k)
	if end-start <= 1 {
		return
	}
	slice := c.xadj[start:end]
	sort.Slice(slice, func(i, j int) bool { return slice[i] < slice[j] })

	w := 1
	for r := 1; r < len(slice); r++ {
		if slice[r] != slice[w-1] {
			slice[w] = slice[r]
			w++
		}
	}
	for i := w; i < len(slice); i++ {
		slice[i] = -1
	}
	c.setXENDOFF(k, start+int64(w))
}

// Destroy releases the CSR's backing storage. A destroyed CSR must not be
// used for further BFS traversal.
func (c *CSR) Destroy() {
	c.xadjstore = nil
	c.xadj = nil
	c.xoff = nil
}
