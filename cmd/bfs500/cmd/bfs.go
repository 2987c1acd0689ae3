package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/csrbfs/bfs500/internal/bfs"
	"github.com/csrbfs/bfs500/internal/edgeio"
	"github.com/csrbfs/bfs500/internal/graph"
	"github.com/csrbfs/bfs500/internal/report"
	"github.com/csrbfs/bfs500/pkg/utils"
)

var (
	bfsInput    string
	bfsSource   int64
	bfsWorkers  int
	bfsValidate bool
	bfsTreeOut  string
)

// bfsCmd represents the bfs command.
var bfsCmd = &cobra.Command{
	Use:   "bfs",
	Short: "Run make_bfs_tree once from a source vertex",
	Long: `Build a CSR from the given edge list and run the direction-optimizing
BFS driver once, from the given source vertex, printing summary statistics.`,
	RunE: runBFS,
}

func init() {
	rootCmd.AddCommand(bfsCmd)

	bfsCmd.Flags().StringVarP(&bfsInput, "input", "i", "", "Input edge list file (required)")
	bfsCmd.Flags().Int64VarP(&bfsSource, "source", "s", 0, "Source vertex")
	bfsCmd.Flags().IntVarP(&bfsWorkers, "workers", "w", 0, "Worker goroutines (defaults to config)")
	bfsCmd.Flags().BoolVar(&bfsValidate, "validate", false, "Validate the CSR and the resulting tree")
	bfsCmd.Flags().StringVar(&bfsTreeOut, "tree-out", "", "Write a gzipped JSON dump of the BFS tree to this path")
	bfsCmd.MarkFlagRequired("input")
}

func runBFS(cmd *cobra.Command, args []string) error {
	log := GetLogger()
	cfg := GetConfig()

	workers := bfsWorkers
	if workers <= 0 {
		workers = cfg.Graph.Workers
	}
	if workers < 1 {
		workers = 1
	}

	edges, err := edgeio.ReadEdgeList(bfsInput)
	if err != nil {
		return fmt.Errorf("failed to read edge list: %w", err)
	}

	timer := utils.NewTimer("bfs500 bfs", utils.WithLogger(log))

	pt := timer.Start("build")
	c, err := graph.Build(cmd.Context(), edges, workers, graph.Tunables{MinVectSize: cfg.Graph.MinVectorSize})
	pt.Stop()
	if err != nil {
		return fmt.Errorf("failed to build CSR: %w", err)
	}
	defer c.Destroy()

	if bfsValidate {
		pt = timer.Start("validate-csr")
		err := report.ValidateCSR(c)
		pt.Stop()
		if err != nil {
			return fmt.Errorf("CSR validation failed: %w", err)
		}
		log.Info("CSR validation passed")
	}

	pt = timer.Start("bfs")
	tree, err := bfs.MakeBFSTree(cmd.Context(), c, bfsSource, workers, bfs.Tunables{Alpha: cfg.Graph.Alpha, Beta: cfg.Graph.Beta, ThreadBufLen: cfg.Graph.ThreadBufLen, DownCutoffDivisor: cfg.Graph.DownCutoffDivisor})
	elapsed := pt.Stop()
	if err != nil {
		return fmt.Errorf("bfs failed: %w", err)
	}

	if bfsValidate {
		pt = timer.Start("validate-tree")
		err := report.ValidateTree(c, tree)
		pt.Stop()
		if err != nil {
			return fmt.Errorf("tree validation failed: %w", err)
		}
		log.Info("tree validation passed")
	}

	stats := report.ComputeStats(c, tree, int64(len(edges)), workers, elapsed)

	fmt.Printf("source:             %d\n", stats.SourceVertex)
	fmt.Printf("vertices:           %d\n", stats.NumVertices)
	fmt.Printf("edges:              %d\n", stats.EdgeCount)
	fmt.Printf("workers:            %d\n", stats.Workers)
	fmt.Printf("visited:            %d\n", stats.VisitedCount)
	fmt.Printf("unreached:          %d\n", stats.UnreachedCount)
	fmt.Printf("levels reached:     %d\n", stats.LevelsReached)
	fmt.Printf("direction switches: %d\n", stats.DirectionSwitches)
	fmt.Printf("elapsed:            %s\n", stats.Elapsed)
	fmt.Printf("TEPS:               %.2f\n", stats.TEPS)

	for level, count := range report.LevelCounts(tree) {
		fmt.Printf("  level %-3d: %d vertices\n", level, count)
	}

	timer.PrintSummary()

	if bfsTreeOut == "" {
		return nil
	}

	if err := edgeio.NewTreeWriter().WriteToFile(tree, bfsTreeOut); err != nil {
		return fmt.Errorf("failed to write tree dump: %w", err)
	}
	log.Info("Wrote BFS tree dump to %s", bfsTreeOut)

	return nil
}
