package bfs

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"

	"github.com/csrbfs/bfs500/internal/bitmap"
	"github.com/csrbfs/bfs500/internal/graph"
	"github.com/csrbfs/bfs500/pkg/atomics"
	appErrors "github.com/csrbfs/bfs500/pkg/errors"
	"github.com/csrbfs/bfs500/pkg/parallel"
)

var tracer = otel.Tracer("bfs500/bfs")

// Alpha and Beta are the default direction-optimizing heuristic thresholds:
// Alpha governs the top-down/bottom-up switch, Beta sets the bottom-up
// repeat cutoff (down_cutoff = nv / Beta). Tunables overrides them when set.
const (
	Alpha = 14
	Beta  = 24
)

// Tunables holds BFS driver parameters that can be overridden from
// pkg/config.GraphConfig; a zero Tunables falls back to the package
// defaults (Alpha, Beta, ThreadBufLen, and down_cutoff = nv/Beta).
type Tunables struct {
	Alpha             int64
	Beta              int64
	ThreadBufLen      int
	DownCutoffDivisor int64
}

// resolve fills in zero fields with the package defaults.
func (t Tunables) resolve() Tunables {
	if t.Alpha <= 0 {
		t.Alpha = Alpha
	}
	if t.Beta <= 0 {
		t.Beta = Beta
	}
	if t.ThreadBufLen <= 0 {
		t.ThreadBufLen = ThreadBufLen
	}
	if t.DownCutoffDivisor <= 0 {
		t.DownCutoffDivisor = t.Beta
	}
	return t
}

// Tree is the result of a single make_bfs_tree invocation: a parent array
// indexed by vertex ID. Parent[Source] == Source; Parent[v] == -1 means v
// is unreachable from Source.
type Tree struct {
	Parent []int64
	NV     int64
	Source int64

	// DirectionSwitches counts how many times the driver alternated
	// between the top-down and bottom-up step across the whole run.
	DirectionSwitches int
}

// MakeBFSTree builds a direction-optimizing BFS tree from source over c,
// using workers goroutines per parallel phase. It allocates the parent array
// itself and returns it in Tree.Parent (no caller-supplied array is taken),
// alternating between the top-down and bottom-up steps based
// on the scout-count/edges-to-check heuristic until the frontier empties.
func MakeBFSTree(ctx context.Context, c *graph.CSR, source int64, workers int, tunables Tunables) (*Tree, error) {
	ctx, rootSpan := tracer.Start(ctx, "bfs.tree")
	defer rootSpan.End()

	nv := c.NV()
	if source < 0 || source >= nv {
		return nil, appErrors.Wrap(appErrors.CodeSourceOutOfRange,
			fmt.Sprintf("source %d out of range [0,%d)", source, nv), nil)
	}
	if workers < 1 {
		workers = 1
	}
	tunables = tunables.resolve()

	tree := make([]int64, nv)
	vlist := make([]int64, nv)
	past := bitmap.Init(nv)
	next := bitmap.Init(nv)

	parallel.Region(workers, func(ctx *parallel.WorkerCtx) {
		lo, hi := ctx.Range(nv)
		for i := lo; i < hi; i++ {
			tree[i] = -1
		}
	})

	tree[source] = source
	vlist[0] = source
	k1, k2 := int64(0), int64(1)

	scoutCount := c.Degree(source)
	edgesToCheck := c.TotalCapacity()
	awakeCount := int64(1)
	downCutoff := nv / tunables.DownCutoffDivisor

	const (
		dirNone = iota
		dirTopDown
		dirBottomUp
	)
	lastDir := dirNone
	switches := 0

	for awakeCount > 0 {
		_, levelSpan := tracer.Start(ctx, "bfs.level")

		if scoutCount < (edgesToCheck-scoutCount)/tunables.Alpha {
			if lastDir == dirBottomUp {
				switches++
			}
			lastDir = dirTopDown

			oldk2 := k2
			topDownStep(c, tree, vlist, k1, oldk2, &k2, workers, tunables.ThreadBufLen)
			edgesToCheck -= scoutCount
			k1 = oldk2
			awakeCount = k2 - k1
		} else {
			if lastDir == dirTopDown {
				switches++
			}
			lastDir = dirBottomUp

			fillBitmapFromQueue(next, vlist, k1, k2, workers)
			for {
				awakeCount = bottomUpStep(c, tree, past, next, workers)
				if awakeCount <= downCutoff {
					break
				}
			}
			k1, k2 = fillQueueFromBitmap(next, vlist, nv, workers, tunables.ThreadBufLen)
		}

		scoutCount = recomputeScout(c, vlist, k1, k2, workers)
		levelSpan.End()
	}

	return &Tree{Parent: tree, NV: nv, Source: source, DirectionSwitches: switches}, nil
}

// recomputeScout sums the out-degree of every vertex currently in
// vlist[k1:k2), the estimate of next level's top-down work.
func recomputeScout(c *graph.CSR, vlist []int64, k1, k2 int64, workers int) int64 {
	var scout int64
	parallel.Region(workers, func(ctx *parallel.WorkerCtx) {
		lo, hi := ctx.Range(k2 - k1)
		var local int64
		for idx := lo; idx < hi; idx++ {
			local += c.Degree(vlist[k1+idx])
		}
		atomics.FetchAddInt64(&scout, local)
	})
	return scout
}
