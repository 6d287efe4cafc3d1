package service

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/sony/gobreaker"

	"github.com/AdrianD28/whatsapp-marketing/internal/repository"
)

const redisPingTimeout = 2 * time.Second

type healthService struct {
	repo             repository.Repository
	redisClient      *redis.Client
	schedulerService SchedulerService
	breakers         BreakerReporter
}

func NewHealthService(
	repo repository.Repository,
	redisClient *redis.Client,
	schedulerService SchedulerService,
	breakers BreakerReporter,
) HealthService {
	return &healthService{
		repo:             repo,
		redisClient:      redisClient,
		schedulerService: schedulerService,
		breakers:         breakers,
	}
}

func (s *healthService) GetHealth(ctx context.Context) *HealthStatus {
	status := &HealthStatus{
		Status:    HealthStatusHealthy,
		Timestamp: time.Now().UTC(),
	}

	if s.schedulerService.IsRunning() {
		status.SchedulerStatus = SchedulerRunning
	} else {
		status.SchedulerStatus = SchedulerStopped
	}

	status.DatabaseStatus = s.checkDatabaseHealth()
	status.RedisStatus = s.checkRedisHealth(ctx)

	anyOpen := false
	if states := s.breakers.States(); len(states) > 0 {
		status.CircuitBreakers = make(map[string]string, len(states))
		for phoneID, state := range states {
			status.CircuitBreakers[phoneID] = state.String()
			if state == gobreaker.StateOpen {
				anyOpen = true
			}
		}
	}

	// Storage outages dominate; an open breaker only degrades one tenant's sends.
	switch {
	case status.DatabaseStatus != ComponentConnected || status.RedisStatus != ComponentConnected:
		status.Status = HealthStatusUnhealthy
	case anyOpen:
		status.Status = HealthStatusDegraded
	}

	return status
}

func (s *healthService) checkDatabaseHealth() string {
	if err := s.repo.Ping(); err != nil {
		return ComponentDisconnected
	}
	return ComponentConnected
}

func (s *healthService) checkRedisHealth(ctx context.Context) string {
	ctx, cancel := context.WithTimeout(ctx, redisPingTimeout)
	defer cancel()

	if err := s.redisClient.Ping(ctx).Err(); err != nil {
		return ComponentDisconnected
	}
	return ComponentConnected
}
