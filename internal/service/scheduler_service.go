package service

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/AdrianD28/whatsapp-marketing/internal/config"
	"github.com/AdrianD28/whatsapp-marketing/internal/scheduler"
)

// schedulerService runs the dispatch worker pool and the control bus relay together.
type schedulerService struct {
	scheduler *scheduler.Scheduler
	bus       ControlBus
	logger    *zap.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

func NewSchedulerService(
	cfg *config.DispatchConfig,
	dispatch DispatchService,
	bus ControlBus,
	logger *zap.Logger,
) SchedulerService {
	return &schedulerService{
		scheduler: scheduler.NewScheduler(logger, cfg.PollInterval(), cfg.Workers, dispatch.ProcessNext),
		bus:       bus,
		logger:    logger,
	}
}

func (s *schedulerService) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.scheduler.Start(context.Background()); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	s.cancel = cancel
	s.done = done

	go func() {
		defer close(done)
		if err := s.bus.Run(ctx); err != nil && ctx.Err() == nil {
			s.logger.Error("Control bus stopped", zap.Error(err))
		}
	}()

	return nil
}

func (s *schedulerService) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.scheduler.Stop(); err != nil {
		return err
	}

	if s.cancel != nil {
		s.cancel()
		<-s.done
		s.cancel = nil
		s.done = nil
	}

	return nil
}

func (s *schedulerService) IsRunning() bool {
	return s.scheduler.IsRunning()
}
