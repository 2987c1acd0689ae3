// Package scheduler polls the benchmark job queue and runs each job through
// the CSR builder and BFS driver on a worker pool, adapted from the
// teacher's poll/fetch/process task scheduler.
package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/csrbfs/bfs500/internal/repository"
	"github.com/csrbfs/bfs500/pkg/config"
	"github.com/csrbfs/bfs500/pkg/utils"
)

// SchedulerConfig holds scheduler configuration.
type SchedulerConfig struct {
	PollInterval time.Duration // How often to poll for new jobs
	WorkerCount  int           // Number of concurrent job workers
}

// DefaultSchedulerConfig returns default scheduler configuration.
func DefaultSchedulerConfig() *SchedulerConfig {
	return &SchedulerConfig{
		PollInterval: 2 * time.Second,
		WorkerCount:  5,
	}
}

// FromConfig creates scheduler config from application config.
func FromConfig(cfg *config.SchedulerConfig) *SchedulerConfig {
	return &SchedulerConfig{
		PollInterval: time.Duration(cfg.PollInterval) * time.Second,
		WorkerCount:  cfg.WorkerCount,
	}
}

// Scheduler polls repository.BenchmarkJobRepository for queued jobs and
// runs them on a bounded worker pool.
type Scheduler struct {
	config    *SchedulerConfig
	jobRepo   repository.BenchmarkJobRepository
	processor JobProcessor
	logger    utils.Logger

	workerPool chan struct{} // Semaphore for worker count
	wg         sync.WaitGroup

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
}

// New creates a new Scheduler.
func New(cfg *SchedulerConfig, jobRepo repository.BenchmarkJobRepository, processor JobProcessor, logger utils.Logger) *Scheduler {
	if cfg == nil {
		cfg = DefaultSchedulerConfig()
	}
	if logger == nil {
		logger = utils.NewDefaultLogger(utils.LevelInfo, nil)
	}

	return &Scheduler{
		config:     cfg,
		jobRepo:    jobRepo,
		processor:  processor,
		logger:     logger,
		workerPool: make(chan struct{}, cfg.WorkerCount),
		stopCh:     make(chan struct{}),
	}
}

// Start begins polling for queued jobs.
func (s *Scheduler) Start(ctx context.Context) error {
	s.logger.Info("Starting benchmark scheduler with %d workers, poll interval %s",
		s.config.WorkerCount, s.config.PollInterval)

	s.mu.Lock()
	s.running = true
	s.mu.Unlock()

	for i := 0; i < s.config.WorkerCount; i++ {
		s.workerPool <- struct{}{}
	}

	go s.pollLoop(ctx)

	return nil
}

// Stop stops the scheduler gracefully, waiting for in-flight jobs.
func (s *Scheduler) Stop() {
	s.logger.Info("Stopping benchmark scheduler...")
	close(s.stopCh)
	s.wg.Wait()

	s.mu.Lock()
	s.running = false
	s.mu.Unlock()

	s.logger.Info("Benchmark scheduler stopped")
}

// pollLoop claims and dispatches one job per tick, per free worker slot.
func (s *Scheduler) pollLoop(ctx context.Context) {
	ticker := time.NewTicker(s.config.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-s.stopCh:
			return
		case <-ticker.C:
			s.claimAndDispatch(ctx)
		}
	}
}

// claimAndDispatch claims as many pending jobs as there are free worker
// slots, without blocking the poll loop on job execution.
func (s *Scheduler) claimAndDispatch(ctx context.Context) {
	for {
		select {
		case <-s.workerPool:
		default:
			return // no free slot, try again next tick
		}

		job, err := s.jobRepo.ClaimNextPending(ctx)
		if err != nil {
			s.logger.Error("Failed to claim pending job: %v", err)
			s.workerPool <- struct{}{}
			return
		}
		if job == nil {
			s.workerPool <- struct{}{}
			return // queue empty
		}

		s.wg.Add(1)
		go s.runJob(ctx, job)
	}
}

// runJob processes a single job and records its outcome.
func (s *Scheduler) runJob(ctx context.Context, job *repository.BenchmarkJob) {
	defer func() {
		s.workerPool <- struct{}{}
		s.wg.Done()
	}()

	start := time.Now()
	err := s.processor.Process(ctx, job)
	duration := time.Since(start)

	if err != nil {
		s.logger.Error("Job %s failed after %v: %v", job.JobUUID, duration, err)
		if failErr := s.jobRepo.FailJob(ctx, job.JobUUID, err.Error()); failErr != nil {
			s.logger.Error("Failed to mark job %s as failed: %v", job.JobUUID, failErr)
		}
		return
	}

	if err := s.jobRepo.CompleteJob(ctx, job.JobUUID); err != nil {
		s.logger.Error("Failed to mark job %s as completed: %v", job.JobUUID, err)
		return
	}

	s.logger.Info("Job %s completed successfully in %v", job.JobUUID, duration)
}

// Stats returns current scheduler statistics.
func (s *Scheduler) Stats() SchedulerStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	active := 0
	if s.running {
		active = s.config.WorkerCount - len(s.workerPool)
	}
	return SchedulerStats{
		ActiveWorkers: active,
		TotalWorkers:  s.config.WorkerCount,
		Running:       s.running,
	}
}

// SchedulerStats holds scheduler statistics.
type SchedulerStats struct {
	ActiveWorkers int  `json:"active_workers"`
	TotalWorkers  int  `json:"total_workers"`
	Running       bool `json:"running"`
}
