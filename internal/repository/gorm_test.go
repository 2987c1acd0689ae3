package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&BenchmarkRun{}, &BenchmarkJob{}))

	return db
}

func TestGormBenchmarkRunRepository_SaveAndGet(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormBenchmarkRunRepository(db)
	ctx := context.Background()

	run := &BenchmarkRun{
		RunUUID:      "run-1",
		EdgeCount:    10,
		NumVertices:  6,
		SourceVertex: 0,
		Workers:      4,
		TEPS:         1234.5,
	}
	require.NoError(t, repo.SaveRun(ctx, run))

	got, err := repo.GetRunByUUID(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, int64(6), got.NumVertices)
	assert.Equal(t, 1234.5, got.TEPS)
}

func TestGormBenchmarkRunRepository_NotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormBenchmarkRunRepository(db)

	_, err := repo.GetRunByUUID(context.Background(), "missing")
	assert.Error(t, err)
}

func TestGormBenchmarkRunRepository_ListAndRecent(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormBenchmarkRunRepository(db)
	ctx := context.Background()
	job := "job-1"

	for i := 0; i < 3; i++ {
		require.NoError(t, repo.SaveRun(ctx, &BenchmarkRun{
			RunUUID: string(rune('a' + i)),
			JobUUID: &job,
		}))
	}

	runs, err := repo.ListRunsByJob(ctx, "job-1")
	require.NoError(t, err)
	assert.Len(t, runs, 3)

	recent, err := repo.RecentRuns(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, recent, 2)
}

func TestGormBenchmarkJobRepository_EnqueueAndClaim(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormBenchmarkJobRepository(db)
	ctx := context.Background()

	job := &BenchmarkJob{
		JobUUID:      "job-1",
		EdgeListPath: "/tmp/edges.txt",
		SourceVertex: 0,
		RepeatCount:  3,
	}
	require.NoError(t, repo.EnqueueJob(ctx, job))

	claimed, err := repo.ClaimNextPending(ctx)
	require.NoError(t, err)
	require.NotNil(t, claimed)
	assert.Equal(t, "job-1", claimed.JobUUID)
	assert.Equal(t, JobStatusRunning, claimed.Status)

	again, err := repo.ClaimNextPending(ctx)
	require.NoError(t, err)
	assert.Nil(t, again)
}

func TestGormBenchmarkJobRepository_CompleteAndFail(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormBenchmarkJobRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.EnqueueJob(ctx, &BenchmarkJob{JobUUID: "job-done"}))
	require.NoError(t, repo.CompleteJob(ctx, "job-done"))

	got, err := repo.GetJobByUUID(ctx, "job-done")
	require.NoError(t, err)
	assert.Equal(t, JobStatusCompleted, got.Status)

	require.NoError(t, repo.EnqueueJob(ctx, &BenchmarkJob{JobUUID: "job-fail"}))
	require.NoError(t, repo.FailJob(ctx, "job-fail", "boom"))

	got, err = repo.GetJobByUUID(ctx, "job-fail")
	require.NoError(t, err)
	assert.Equal(t, JobStatusFailed, got.Status)
	assert.Equal(t, "boom", got.ErrorInfo)
}

func TestGormBenchmarkJobRepository_NotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormBenchmarkJobRepository(db)

	err := repo.CompleteJob(context.Background(), "missing")
	assert.Error(t, err)
}
