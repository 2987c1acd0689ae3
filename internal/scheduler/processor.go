package scheduler

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/csrbfs/bfs500/internal/bfs"
	"github.com/csrbfs/bfs500/internal/edgeio"
	"github.com/csrbfs/bfs500/internal/graph"
	"github.com/csrbfs/bfs500/internal/report"
	"github.com/csrbfs/bfs500/internal/repository"
	"github.com/csrbfs/bfs500/pkg/config"
	"github.com/csrbfs/bfs500/pkg/utils"
)

// JobProcessor runs a single queued benchmark job to completion.
type JobProcessor interface {
	Process(ctx context.Context, job *repository.BenchmarkJob) error
}

// DefaultJobProcessor loads the job's edge list, builds a CSR once, and runs
// make_bfs_tree RepeatCount times from SourceVertex, recording one
// BenchmarkRun per repetition.
type DefaultJobProcessor struct {
	config *config.Config
	repos  *repository.Repositories
	logger utils.Logger
	clock  utils.Clock
}

// ProcessorConfig holds processor configuration.
type ProcessorConfig struct {
	Config *config.Config
	Repos  *repository.Repositories
	Logger utils.Logger

	// Clock overrides the wall clock used to time each BFS run; defaults to
	// utils.NewRealClock(). Tests inject a utils.MockClock for deterministic
	// ElapsedMillis values.
	Clock utils.Clock
}

// NewDefaultJobProcessor creates a new DefaultJobProcessor.
func NewDefaultJobProcessor(cfg *ProcessorConfig) *DefaultJobProcessor {
	if cfg.Logger == nil {
		cfg.Logger = utils.NewDefaultLogger(utils.LevelInfo, nil)
	}
	if cfg.Clock == nil {
		cfg.Clock = utils.NewRealClock()
	}
	return &DefaultJobProcessor{
		config: cfg.Config,
		repos:  cfg.Repos,
		logger: cfg.Logger,
		clock:  cfg.Clock,
	}
}

// Process builds the graph described by job and runs BFS from its source
// vertex RepeatCount times, persisting one BenchmarkRun row per repetition.
func (p *DefaultJobProcessor) Process(ctx context.Context, job *repository.BenchmarkJob) error {
	p.logger.Info("Starting benchmark job %s (edges: %s, source: %d, repeats: %d)",
		job.JobUUID, job.EdgeListPath, job.SourceVertex, job.RepeatCount)

	edges, err := edgeio.ReadEdgeList(job.EdgeListPath)
	if err != nil {
		return fmt.Errorf("failed to read edge list: %w", err)
	}

	workers := p.config.Graph.Workers
	if workers < 1 {
		workers = 1
	}

	c, err := graph.Build(ctx, edges, workers, graph.Tunables{MinVectSize: p.config.Graph.MinVectorSize})
	if err != nil {
		return fmt.Errorf("failed to build CSR: %w", err)
	}
	defer c.Destroy()

	repeats := job.RepeatCount
	if repeats < 1 {
		repeats = 1
	}

	for i := 0; i < repeats; i++ {
		start := p.clock.Now()
		tree, err := bfs.MakeBFSTree(ctx, c, job.SourceVertex, workers, bfs.Tunables{Alpha: p.config.Graph.Alpha, Beta: p.config.Graph.Beta, ThreadBufLen: p.config.Graph.ThreadBufLen, DownCutoffDivisor: p.config.Graph.DownCutoffDivisor})
		if err != nil {
			return fmt.Errorf("bfs run %d/%d failed: %w", i+1, repeats, err)
		}
		elapsed := p.clock.Since(start)

		stats := report.ComputeStats(c, tree, int64(len(edges)), workers, elapsed)

		jobUUID := job.JobUUID
		run := &repository.BenchmarkRun{
			RunUUID:           uuid.NewString(),
			JobUUID:           &jobUUID,
			EdgeCount:         stats.EdgeCount,
			NumVertices:       stats.NumVertices,
			SourceVertex:      stats.SourceVertex,
			Workers:           stats.Workers,
			ElapsedMillis:     float64(stats.Elapsed.Microseconds()) / 1000.0,
			LevelsReached:     int(stats.LevelsReached),
			VisitedCount:      stats.VisitedCount,
			TEPS:              stats.TEPS,
			DirectionSwitches: stats.DirectionSwitches,
		}
		if err := p.repos.Run.SaveRun(ctx, run); err != nil {
			return fmt.Errorf("failed to save run %d/%d: %w", i+1, repeats, err)
		}

		p.logger.Info("Job %s run %d/%d: TEPS=%.2f levels=%d visited=%d",
			job.JobUUID, i+1, repeats, stats.TEPS, stats.LevelsReached, stats.VisitedCount)
	}

	p.logger.Info("Benchmark job %s completed successfully", job.JobUUID)
	return nil
}
