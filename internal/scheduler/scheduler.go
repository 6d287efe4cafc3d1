package scheduler

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TaskFunc performs one unit of work for workerID. It reports whether it found
// anything to do; idle workers sleep for the poll interval before the next call.
type TaskFunc func(ctx context.Context, workerID string) (bool, error)

// Scheduler runs a fixed pool of workers that poll taskFunc.
type Scheduler struct {
	logger     *zap.Logger
	interval   time.Duration
	workers    int
	instanceID string
	taskFunc   TaskFunc
	cancel     context.CancelFunc
	doneCh     chan struct{}
	isRunning  bool
	mu         sync.RWMutex
}

// NewScheduler creates a new scheduler instance.
func NewScheduler(logger *zap.Logger, interval time.Duration, workers int, taskFunc TaskFunc) *Scheduler {
	if workers < 1 {
		workers = 1
	}

	host, err := os.Hostname()
	if err != nil || host == "" {
		host = "worker"
	}

	return &Scheduler{
		logger:     logger,
		interval:   interval,
		workers:    workers,
		instanceID: fmt.Sprintf("%s-%s", host, uuid.NewString()[:8]),
		taskFunc:   taskFunc,
	}
}

// WorkerIDs returns the ids the pool hands to taskFunc. They are unique per process instance.
func (s *Scheduler) WorkerIDs() []string {
	ids := make([]string, s.workers)
	for i := range ids {
		ids[i] = fmt.Sprintf("%s-%d", s.instanceID, i)
	}
	return ids
}

// Start begins the scheduler.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return ErrSchedulerAlreadyRunning
	}

	runCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.doneCh = make(chan struct{})
	s.isRunning = true

	var wg sync.WaitGroup
	for _, id := range s.WorkerIDs() {
		wg.Add(1)
		go func(workerID string) {
			defer wg.Done()
			s.run(runCtx, workerID)
		}(id)
	}

	go func(done chan struct{}) {
		wg.Wait()
		s.mu.Lock()
		s.isRunning = false
		s.mu.Unlock()
		close(done)
	}(s.doneCh)

	s.logger.Info("Scheduler started",
		zap.Duration("interval", s.interval),
		zap.Int("workers", s.workers))
	return nil
}

// Stop cancels all workers and waits for them to return.
func (s *Scheduler) Stop() error {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return ErrSchedulerNotRunning
	}
	cancel, done := s.cancel, s.doneCh
	s.mu.Unlock()

	cancel()
	<-done

	s.logger.Info("Scheduler stopped")
	return nil
}

// IsRunning returns whether the scheduler is currently running.
func (s *Scheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

func (s *Scheduler) run(ctx context.Context, workerID string) {
	logger := s.logger.With(zap.String("worker_id", workerID))
	logger.Debug("Worker started")

	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Debug("Worker stopped")
			return
		case <-timer.C:
		}

		worked, err := s.executeTask(ctx, workerID)
		if err != nil {
			logger.Error("Task execution failed", zap.Error(err))
		}

		next := s.interval
		if worked && err == nil {
			next = 0
		}
		timer.Reset(next)
	}
}

// executeTask runs taskFunc, turning a panic into an error so one bad campaign
// does not take the worker down.
func (s *Scheduler) executeTask(ctx context.Context, workerID string) (worked bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			worked = false
			err = fmt.Errorf("task panicked: %v", r)
		}
	}()

	return s.taskFunc(ctx, workerID)
}
