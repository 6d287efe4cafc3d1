package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/go-redis/redis/v8"
	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/AdrianD28/whatsapp-marketing/internal/repository/mocks"
	"github.com/AdrianD28/whatsapp-marketing/internal/service"
	servicemocks "github.com/AdrianD28/whatsapp-marketing/internal/service/mocks"
)

// A real client pointing to a non-existent server simulates a disconnected redis.
func disconnectedRedis() *redis.Client {
	return redis.NewClient(&redis.Options{Addr: "localhost:9999"})
}

func TestHealthService_GetHealth(t *testing.T) {
	tests := []struct {
		name              string
		running           bool
		pingErr           error
		breakers          map[string]gobreaker.State
		expectedStatus    string
		expectedScheduler string
		expectedDatabase  string
	}{
		{
			name:              "redis disconnected",
			running:           true,
			breakers:          map[string]gobreaker.State{"phone-1": gobreaker.StateClosed},
			expectedStatus:    service.HealthStatusUnhealthy,
			expectedScheduler: service.SchedulerRunning,
			expectedDatabase:  service.ComponentConnected,
		},
		{
			name:              "database disconnected",
			running:           false,
			pingErr:           errors.New("connection failed"),
			expectedStatus:    service.HealthStatusUnhealthy,
			expectedScheduler: service.SchedulerStopped,
			expectedDatabase:  service.ComponentDisconnected,
		},
		{
			name:              "storage outage outranks open breaker",
			running:           true,
			breakers:          map[string]gobreaker.State{"phone-1": gobreaker.StateOpen, "phone-2": gobreaker.StateHalfOpen},
			expectedStatus:    service.HealthStatusUnhealthy,
			expectedScheduler: service.SchedulerRunning,
			expectedDatabase:  service.ComponentConnected,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			// Create mocks
			mockRepo := mocks.NewMockRepository(ctrl)
			mockScheduler := servicemocks.NewMockSchedulerService(ctrl)
			mockBreakers := servicemocks.NewMockBreakerReporter(ctrl)

			mockScheduler.EXPECT().IsRunning().Return(tt.running)
			mockRepo.EXPECT().Ping().Return(tt.pingErr)
			mockBreakers.EXPECT().States().Return(tt.breakers)

			healthService := service.NewHealthService(mockRepo, disconnectedRedis(), mockScheduler, mockBreakers)

			status := healthService.GetHealth(context.Background())

			require.NotNil(t, status)
			assert.Equal(t, tt.expectedStatus, status.Status)
			assert.Equal(t, tt.expectedScheduler, status.SchedulerStatus)
			assert.Equal(t, tt.expectedDatabase, status.DatabaseStatus)
			assert.Equal(t, service.ComponentDisconnected, status.RedisStatus)
			assert.False(t, status.Timestamp.IsZero())
			assert.Len(t, status.CircuitBreakers, len(tt.breakers))
		})
	}
}

func TestHealthService_GetHealth_BreakerStates(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockRepository(ctrl)
	mockScheduler := servicemocks.NewMockSchedulerService(ctrl)
	mockBreakers := servicemocks.NewMockBreakerReporter(ctrl)

	mockScheduler.EXPECT().IsRunning().Return(true)
	mockRepo.EXPECT().Ping().Return(nil)
	mockBreakers.EXPECT().States().Return(map[string]gobreaker.State{
		"phone-1": gobreaker.StateOpen,
		"phone-2": gobreaker.StateClosed,
	})

	status := service.NewHealthService(mockRepo, disconnectedRedis(), mockScheduler, mockBreakers).
		GetHealth(context.Background())

	assert.Equal(t, map[string]string{"phone-1": "open", "phone-2": "closed"}, status.CircuitBreakers)
}
