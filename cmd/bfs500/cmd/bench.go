package cmd

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/spf13/cobra"

	"github.com/csrbfs/bfs500/internal/bfs"
	"github.com/csrbfs/bfs500/internal/edgeio"
	"github.com/csrbfs/bfs500/internal/graph"
	"github.com/csrbfs/bfs500/internal/report"
	"github.com/csrbfs/bfs500/pkg/parallel"
)

var (
	benchInput      string
	benchSources    int
	benchWorkers    int
	benchPoolSize   int
	benchSourceSeed int64
)

// benchCmd sweeps make_bfs_tree across multiple random sources and reports
// mean TEPS, standing in for the graph500 driver's search-phase loop: this
// module is the harness and the kernel combined, so the sweep is a
// subcommand rather than a separate program.
var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Sweep BFS from N random sources and report mean TEPS",
	Long: `Build a CSR from the given edge list, pick N random non-isolated source
vertices, run make_bfs_tree from each, and report per-run and mean TEPS.`,
	RunE: runBench,
}

func init() {
	rootCmd.AddCommand(benchCmd)

	benchCmd.Flags().StringVarP(&benchInput, "input", "i", "", "Input edge list file (required)")
	benchCmd.Flags().IntVarP(&benchSources, "num-sources", "n", 16, "Number of random source vertices to sweep")
	benchCmd.Flags().IntVarP(&benchWorkers, "workers", "w", 0, "Worker goroutines per BFS run (defaults to config)")
	benchCmd.Flags().IntVar(&benchPoolSize, "pool-size", 0, "Concurrent BFS runs in flight (defaults to min(num-sources, NumCPU clamped to [2, 8]))")
	benchCmd.Flags().Int64Var(&benchSourceSeed, "seed", 1, "Random seed for source vertex selection")
	benchCmd.MarkFlagRequired("input")
}

func runBench(cmd *cobra.Command, args []string) error {
	log := GetLogger()
	cfg := GetConfig()

	workers := benchWorkers
	if workers <= 0 {
		workers = cfg.Graph.Workers
	}
	if workers < 1 {
		workers = 1
	}

	edges, err := edgeio.ReadEdgeList(benchInput)
	if err != nil {
		return fmt.Errorf("failed to read edge list: %w", err)
	}

	c, err := graph.Build(cmd.Context(), edges, workers, graph.Tunables{MinVectSize: cfg.Graph.MinVectorSize})
	if err != nil {
		return fmt.Errorf("failed to build CSR: %w", err)
	}
	defer c.Destroy()

	sources := pickSources(c, benchSources, benchSourceSeed)
	if len(sources) == 0 {
		return fmt.Errorf("no non-isolated vertices to sample sources from")
	}

	poolCfg := parallel.DefaultPoolConfig()
	if benchPoolSize > 0 {
		poolCfg = poolCfg.WithWorkers(benchPoolSize)
	}
	pool := parallel.NewWorkerPool[int64, *report.Stats](poolCfg)

	results := pool.ExecuteFunc(cmd.Context(), sources, func(ctx context.Context, source int64) (*report.Stats, error) {
		start := time.Now()
		tree, err := bfs.MakeBFSTree(ctx, c, source, workers, bfs.Tunables{Alpha: cfg.Graph.Alpha, Beta: cfg.Graph.Beta, ThreadBufLen: cfg.Graph.ThreadBufLen, DownCutoffDivisor: cfg.Graph.DownCutoffDivisor})
		if err != nil {
			return nil, err
		}
		elapsed := time.Since(start)
		return report.ComputeStats(c, tree, int64(len(edges)), workers, elapsed), nil
	})

	var sumTEPS float64
	var ok int
	for _, r := range results {
		if r.Error != nil {
			log.Warn("bfs from source %d failed: %v", r.Input, r.Error)
			continue
		}
		stats := r.Result
		fmt.Printf("source=%-10d visited=%-10d levels=%-4d switches=%-3d teps=%.2f\n",
			stats.SourceVertex, stats.VisitedCount, stats.LevelsReached,
			stats.DirectionSwitches, stats.TEPS)
		sumTEPS += stats.TEPS
		ok++
	}

	if ok == 0 {
		return fmt.Errorf("every BFS run in the sweep failed")
	}

	fmt.Printf("\nmean TEPS over %d runs: %.2f\n", ok, sumTEPS/float64(ok))
	return nil
}

// pickSources samples up to n distinct vertices with nonzero degree, so the
// sweep doesn't waste runs on isolated vertices whose tree is trivially just
// the source itself.
func pickSources(c *graph.CSR, n int, seed int64) []int64 {
	rng := rand.New(rand.NewSource(seed))
	nv := c.NV()

	candidates := make([]int64, 0, nv)
	for v := int64(0); v < nv; v++ {
		if c.Degree(v) > 0 {
			candidates = append(candidates, v)
		}
	}
	rng.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})

	if n > len(candidates) {
		n = len(candidates)
	}
	return candidates[:n]
}
