package service_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"

	"github.com/AdrianD28/whatsapp-marketing/internal/models"
	"github.com/AdrianD28/whatsapp-marketing/internal/service"
)

func setupTestRedis(t *testing.T) *redis.Client {
	if testing.Short() {
		t.Skip("skipping redis container test in short mode")
	}
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(30 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "6379/tcp")
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{Addr: fmt.Sprintf("%s:%s", host, port.Port())})
	t.Cleanup(func() {
		_ = client.Close()
		_ = container.Terminate(ctx)
	})

	require.NoError(t, client.Ping(ctx).Err())
	return client
}

func TestRedisProgressStore(t *testing.T) {
	client := setupTestRedis(t)
	ctx := context.Background()
	store := service.NewRedisProgressStore(client, time.Minute)

	live, err := store.Get(ctx, "c1")
	require.NoError(t, err)
	assert.Nil(t, live)

	heartbeat := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	require.NoError(t, store.Save(ctx, "c1", service.LiveProgress{
		WorkerID:         "w1",
		Index:            7,
		CurrentRecipient: "573001111",
		Language:         "es",
		Heartbeat:        heartbeat,
	}))

	live, err = store.Get(ctx, "c1")
	require.NoError(t, err)
	require.NotNil(t, live)
	assert.Equal(t, "w1", live.WorkerID)
	assert.Equal(t, 7, live.Index)
	assert.Equal(t, "573001111", live.CurrentRecipient)
	assert.True(t, heartbeat.Equal(live.Heartbeat))

	ttl, err := client.TTL(ctx, "campaign:live:c1").Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))

	require.NoError(t, store.Delete(ctx, "c1"))
	live, err = store.Get(ctx, "c1")
	require.NoError(t, err)
	assert.Nil(t, live)
}

func TestRedisControlBus_WakesRemoteSubscribers(t *testing.T) {
	client := setupTestRedis(t)

	publisher := service.NewRedisControlBus(client, zap.NewNop())
	worker := service.NewRedisControlBus(client, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = worker.Run(ctx) }()

	wake, unsubscribe := worker.Subscribe("c1")
	defer unsubscribe()

	// The relay subscribes asynchronously; keep publishing until it is listening.
	assert.Eventually(t, func() bool {
		if err := publisher.Publish(context.Background(), "c1", models.CampaignStatusPaused); err != nil {
			return false
		}
		select {
		case <-wake:
			return true
		case <-time.After(50 * time.Millisecond):
			return false
		}
	}, 5*time.Second, 100*time.Millisecond)
}

func TestRedisControlBus_LocalPublishAndUnsubscribe(t *testing.T) {
	client := setupTestRedis(t)
	bus := service.NewRedisControlBus(client, zap.NewNop())

	wake, unsubscribe := bus.Subscribe("c1")
	other, unsubscribeOther := bus.Subscribe("c2")
	defer unsubscribeOther()

	require.NoError(t, bus.Publish(context.Background(), "c1", models.CampaignStatusCancelled))

	select {
	case <-wake:
	case <-time.After(time.Second):
		t.Fatal("local subscriber was not woken")
	}
	select {
	case <-other:
		t.Fatal("unrelated campaign was woken")
	default:
	}

	unsubscribe()
	require.NoError(t, bus.Publish(context.Background(), "c1", models.CampaignStatusCancelled))
	select {
	case <-wake:
		t.Fatal("unsubscribed channel was woken")
	case <-time.After(50 * time.Millisecond):
	}
}
