package service_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	"github.com/AdrianD28/whatsapp-marketing/internal/config"
	"github.com/AdrianD28/whatsapp-marketing/internal/service"
	"github.com/AdrianD28/whatsapp-marketing/internal/service/mocks"
)

func newSchedulerMocks(t *testing.T) (*mocks.MockDispatchService, *mocks.MockControlBus, *config.DispatchConfig) {
	ctrl := gomock.NewController(t)

	mockDispatch := mocks.NewMockDispatchService(ctrl)
	mockBus := mocks.NewMockControlBus(ctrl)

	// The bus relay blocks until the scheduler service stops it.
	mockBus.EXPECT().Run(gomock.Any()).
		DoAndReturn(func(ctx context.Context) error {
			<-ctx.Done()
			return nil
		}).AnyTimes()

	cfg := &config.DispatchConfig{Workers: 2, PollIntervalSeconds: 1}
	return mockDispatch, mockBus, cfg
}

func TestSchedulerService_StartStop(t *testing.T) {
	mockDispatch, mockBus, cfg := newSchedulerMocks(t)
	mockDispatch.EXPECT().ProcessNext(gomock.Any(), gomock.Any()).Return(false, nil).AnyTimes()

	schedulerService := service.NewSchedulerService(cfg, mockDispatch, mockBus, zap.NewNop())

	assert.False(t, schedulerService.IsRunning())

	require.NoError(t, schedulerService.Start())
	assert.True(t, schedulerService.IsRunning())

	// Starting twice is rejected
	err := schedulerService.Start()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already running")

	require.NoError(t, schedulerService.Stop())
	assert.False(t, schedulerService.IsRunning())
}

func TestSchedulerService_Stop_NotRunning(t *testing.T) {
	mockDispatch, mockBus, cfg := newSchedulerMocks(t)

	schedulerService := service.NewSchedulerService(cfg, mockDispatch, mockBus, zap.NewNop())

	err := schedulerService.Stop()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not running")
}

func TestSchedulerService_RunsDispatchOnEveryWorker(t *testing.T) {
	mockDispatch, mockBus, cfg := newSchedulerMocks(t)

	var calls atomic.Int32
	seen := make(chan string, 16)
	mockDispatch.EXPECT().ProcessNext(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, workerID string) (bool, error) {
			calls.Add(1)
			select {
			case seen <- workerID:
			default:
			}
			return false, nil
		}).MinTimes(2)

	schedulerService := service.NewSchedulerService(cfg, mockDispatch, mockBus, zap.NewNop())
	require.NoError(t, schedulerService.Start())

	assert.Eventually(t, func() bool { return calls.Load() >= 2 }, time.Second, 10*time.Millisecond)
	require.NoError(t, schedulerService.Stop())

	workers := map[string]bool{}
	close(seen)
	for id := range seen {
		workers[id] = true
	}
	assert.Len(t, workers, 2)
}

func TestSchedulerService_MultipleStartStop(t *testing.T) {
	mockDispatch, mockBus, cfg := newSchedulerMocks(t)
	mockDispatch.EXPECT().ProcessNext(gomock.Any(), gomock.Any()).Return(false, nil).AnyTimes()

	schedulerService := service.NewSchedulerService(cfg, mockDispatch, mockBus, zap.NewNop())

	for i := 0; i < 3; i++ {
		require.NoError(t, schedulerService.Start())
		assert.True(t, schedulerService.IsRunning())

		require.NoError(t, schedulerService.Stop())
		assert.False(t, schedulerService.IsRunning())
	}
}
