package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormBenchmarkRunRepository implements BenchmarkRunRepository using GORM.
type GormBenchmarkRunRepository struct {
	db *gorm.DB
}

// NewGormBenchmarkRunRepository creates a new GormBenchmarkRunRepository.
func NewGormBenchmarkRunRepository(db *gorm.DB) *GormBenchmarkRunRepository {
	return &GormBenchmarkRunRepository{db: db}
}

// SaveRun records a completed make_bfs_tree invocation.
func (r *GormBenchmarkRunRepository) SaveRun(ctx context.Context, run *BenchmarkRun) error {
	if err := r.db.WithContext(ctx).Create(run).Error; err != nil {
		return fmt.Errorf("failed to save benchmark run: %w", err)
	}
	return nil
}

// GetRunByUUID retrieves a run by its UUID.
func (r *GormBenchmarkRunRepository) GetRunByUUID(ctx context.Context, runUUID string) (*BenchmarkRun, error) {
	var run BenchmarkRun
	err := r.db.WithContext(ctx).Where("run_uuid = ?", runUUID).First(&run).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("benchmark run not found: %s", runUUID)
		}
		return nil, fmt.Errorf("failed to get benchmark run: %w", err)
	}
	return &run, nil
}

// ListRunsByJob retrieves every run recorded against a job.
func (r *GormBenchmarkRunRepository) ListRunsByJob(ctx context.Context, jobUUID string) ([]*BenchmarkRun, error) {
	var runs []*BenchmarkRun
	err := r.db.WithContext(ctx).Where("job_uuid = ?", jobUUID).Order("id ASC").Find(&runs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list benchmark runs: %w", err)
	}
	return runs, nil
}

// RecentRuns retrieves the most recent runs, newest first.
func (r *GormBenchmarkRunRepository) RecentRuns(ctx context.Context, limit int) ([]*BenchmarkRun, error) {
	var runs []*BenchmarkRun
	err := r.db.WithContext(ctx).Order("id DESC").Limit(limit).Find(&runs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list recent benchmark runs: %w", err)
	}
	return runs, nil
}

// GormBenchmarkJobRepository implements BenchmarkJobRepository using GORM.
type GormBenchmarkJobRepository struct {
	db *gorm.DB
}

// NewGormBenchmarkJobRepository creates a new GormBenchmarkJobRepository.
func NewGormBenchmarkJobRepository(db *gorm.DB) *GormBenchmarkJobRepository {
	return &GormBenchmarkJobRepository{db: db}
}

// EnqueueJob inserts a new pending job.
func (r *GormBenchmarkJobRepository) EnqueueJob(ctx context.Context, job *BenchmarkJob) error {
	job.Status = JobStatusPending
	if err := r.db.WithContext(ctx).Create(job).Error; err != nil {
		return fmt.Errorf("failed to enqueue benchmark job: %w", err)
	}
	return nil
}

// ClaimNextPending locks and returns the oldest pending job, transitioning
// it to running. Returns nil, nil if no job is pending.
func (r *GormBenchmarkJobRepository) ClaimNextPending(ctx context.Context) (*BenchmarkJob, error) {
	var job BenchmarkJob

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("status = ?", JobStatusPending).
			Order("id ASC").
			First(&job).Error
		if err != nil {
			return err
		}

		now := time.Now()
		job.Status = JobStatusRunning
		job.StartedAt = &now
		return tx.Model(&BenchmarkJob{}).
			Where("id = ?", job.ID).
			Updates(map[string]interface{}{
				"status":     JobStatusRunning,
				"started_at": now,
			}).Error
	})

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to claim benchmark job: %w", err)
	}

	return &job, nil
}

// CompleteJob marks a job completed.
func (r *GormBenchmarkJobRepository) CompleteJob(ctx context.Context, jobUUID string) error {
	now := time.Now()
	result := r.db.WithContext(ctx).
		Model(&BenchmarkJob{}).
		Where("job_uuid = ?", jobUUID).
		Updates(map[string]interface{}{
			"status":       JobStatusCompleted,
			"completed_at": now,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to complete benchmark job: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("benchmark job not found: %s", jobUUID)
	}
	return nil
}

// FailJob marks a job failed with the given error info.
func (r *GormBenchmarkJobRepository) FailJob(ctx context.Context, jobUUID string, errInfo string) error {
	now := time.Now()
	result := r.db.WithContext(ctx).
		Model(&BenchmarkJob{}).
		Where("job_uuid = ?", jobUUID).
		Updates(map[string]interface{}{
			"status":       JobStatusFailed,
			"error_info":   errInfo,
			"completed_at": now,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to fail benchmark job: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("benchmark job not found: %s", jobUUID)
	}
	return nil
}

// GetJobByUUID retrieves a job by its UUID.
func (r *GormBenchmarkJobRepository) GetJobByUUID(ctx context.Context, jobUUID string) (*BenchmarkJob, error) {
	var job BenchmarkJob
	err := r.db.WithContext(ctx).Where("job_uuid = ?", jobUUID).First(&job).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("benchmark job not found: %s", jobUUID)
		}
		return nil, fmt.Errorf("failed to get benchmark job: %w", err)
	}
	return &job, nil
}
