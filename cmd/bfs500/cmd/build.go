package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/csrbfs/bfs500/internal/edgeio"
	"github.com/csrbfs/bfs500/internal/graph"
	"github.com/csrbfs/bfs500/internal/storage"
)

var (
	buildInput   string
	buildOutput  string
	buildWorkers int
	buildArchive bool
	buildKey     string
)

// buildCmd represents the build command.
var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Ingest an edge list and construct a CSR graph",
	Long: `Read an edge list (whitespace or comma separated "u v" pairs, one per
line), construct a compressed sparse row graph from it, and optionally write
a gzipped JSON dump and archive it to object storage.`,
	RunE: runBuild,
}

func init() {
	rootCmd.AddCommand(buildCmd)

	buildCmd.Flags().StringVarP(&buildInput, "input", "i", "", "Input edge list file (required)")
	buildCmd.Flags().StringVarP(&buildOutput, "output", "o", "", "Write a gzipped JSON CSR dump to this path")
	buildCmd.Flags().IntVarP(&buildWorkers, "workers", "w", 0, "Worker goroutines for the parallel build (defaults to config)")
	buildCmd.Flags().BoolVar(&buildArchive, "archive", false, "Upload the CSR dump to configured object storage")
	buildCmd.Flags().StringVar(&buildKey, "archive-key", "", "Storage key for the archived dump (defaults to the --output path)")
	buildCmd.MarkFlagRequired("input")
}

func runBuild(cmd *cobra.Command, args []string) error {
	log := GetLogger()
	cfg := GetConfig()

	workers := buildWorkers
	if workers <= 0 {
		workers = cfg.Graph.Workers
	}
	if workers < 1 {
		workers = 1
	}

	log.Info("Reading edge list from %s", buildInput)
	edges, err := edgeio.ReadEdgeList(buildInput)
	if err != nil {
		return fmt.Errorf("failed to read edge list: %w", err)
	}
	log.Info("Read %d edges", len(edges))

	c, err := graph.Build(cmd.Context(), edges, workers, graph.Tunables{MinVectSize: cfg.Graph.MinVectorSize})
	if err != nil {
		return fmt.Errorf("failed to build CSR: %w", err)
	}
	defer c.Destroy()

	log.Info("Built CSR with %d vertices using %d workers", c.NV(), workers)

	if buildOutput == "" {
		return nil
	}

	dump := edgeio.DumpCSR(c)
	if err := edgeio.NewCSRWriter().WriteToFile(dump, buildOutput); err != nil {
		return fmt.Errorf("failed to write CSR dump: %w", err)
	}
	log.Info("Wrote CSR dump to %s", buildOutput)

	if !buildArchive {
		return nil
	}

	store, err := storage.NewStorage(&cfg.Storage)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}

	key := buildKey
	if key == "" {
		key = buildOutput
	}

	f, err := os.Open(buildOutput)
	if err != nil {
		return fmt.Errorf("failed to open dump for archival: %w", err)
	}
	defer f.Close()

	if err := store.Upload(context.Background(), key, f); err != nil {
		return fmt.Errorf("failed to archive CSR dump: %w", err)
	}
	log.Info("Archived CSR dump to %s", store.GetURL(key))

	return nil
}
