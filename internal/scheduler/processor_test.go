package scheduler

import (
	"context"
	"io"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/csrbfs/bfs500/internal/edgeio"
	"github.com/csrbfs/bfs500/internal/graph"
	"github.com/csrbfs/bfs500/internal/repository"
	"github.com/csrbfs/bfs500/pkg/config"
	"github.com/csrbfs/bfs500/pkg/utils"
)

func newTestRepos(t *testing.T) *repository.Repositories {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&repository.BenchmarkRun{}, &repository.BenchmarkJob{}))

	return repository.NewRepositories(db, "sqlite")
}

func TestDefaultJobProcessor_ProcessSavesRuns(t *testing.T) {
	dir := t.TempDir()
	edgesPath := filepath.Join(dir, "edges.txt")
	require.NoError(t, edgeio.WriteEdgeList(edgesPath, graph.EdgeList{
		{U: 0, V: 1}, {U: 1, V: 2}, {U: 2, V: 3}, {U: 3, V: 4},
	}))

	repos := newTestRepos(t)
	cfg := &config.Config{Graph: config.GraphConfig{Workers: 2}}
	proc := NewDefaultJobProcessor(&ProcessorConfig{
		Config: cfg,
		Repos:  repos,
		Logger: utils.NewDefaultLogger(utils.LevelDebug, io.Discard),
	})

	job := &repository.BenchmarkJob{
		JobUUID:      "job-xyz",
		EdgeListPath: edgesPath,
		SourceVertex: 0,
		RepeatCount:  3,
	}

	require.NoError(t, proc.Process(context.Background(), job))

	runs, err := repos.Run.ListRunsByJob(context.Background(), "job-xyz")
	require.NoError(t, err)
	assert.Len(t, runs, 3)
	for _, r := range runs {
		assert.Equal(t, int64(5), r.NumVertices)
		assert.Equal(t, int64(4), r.EdgeCount)
	}
}

func TestDefaultJobProcessor_UsesInjectedClock(t *testing.T) {
	dir := t.TempDir()
	edgesPath := filepath.Join(dir, "edges.txt")
	require.NoError(t, edgeio.WriteEdgeList(edgesPath, graph.EdgeList{
		{U: 0, V: 1}, {U: 1, V: 2},
	}))

	repos := newTestRepos(t)
	cfg := &config.Config{Graph: config.GraphConfig{Workers: 1}}
	clock := utils.NewMockClock(time.Unix(0, 0))
	proc := NewDefaultJobProcessor(&ProcessorConfig{
		Config: cfg,
		Repos:  repos,
		Logger: utils.NewDefaultLogger(utils.LevelDebug, io.Discard),
		Clock:  clock,
	})

	job := &repository.BenchmarkJob{
		JobUUID:      "job-clock",
		EdgeListPath: edgesPath,
		SourceVertex: 0,
		RepeatCount:  1,
	}

	require.NoError(t, proc.Process(context.Background(), job))

	runs, err := repos.Run.ListRunsByJob(context.Background(), "job-clock")
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, float64(0), runs[0].ElapsedMillis, "a clock that never advances must report zero elapsed time")
}

func TestDefaultJobProcessor_MissingEdgeListFails(t *testing.T) {
	repos := newTestRepos(t)
	cfg := &config.Config{Graph: config.GraphConfig{Workers: 1}}
	proc := NewDefaultJobProcessor(&ProcessorConfig{Config: cfg, Repos: repos})

	job := &repository.BenchmarkJob{
		JobUUID:      "job-missing",
		EdgeListPath: "/nonexistent/edges.txt",
		RepeatCount:  1,
	}

	err := proc.Process(context.Background(), job)
	assert.Error(t, err)
}
