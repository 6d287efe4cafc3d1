package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/AdrianD28/whatsapp-marketing/internal/models"
)

const controlChannel = "campaign:control"

type controlMessage struct {
	CampaignID string                `json:"campaign_id"`
	Status     models.CampaignStatus `json:"status"`
}

// redisControlBus fans pause/cancel commands out to every worker process so a
// campaign sleeping between contacts wakes up and re-reads its status.
type redisControlBus struct {
	client  *redis.Client
	logger  *zap.Logger
	mu      sync.Mutex
	waiters map[string][]chan struct{}
}

func NewRedisControlBus(client *redis.Client, logger *zap.Logger) ControlBus {
	return &redisControlBus{
		client:  client,
		logger:  logger,
		waiters: make(map[string][]chan struct{}),
	}
}

// Publish wakes local waiters immediately and broadcasts to other instances.
func (b *redisControlBus) Publish(ctx context.Context, campaignID string, status models.CampaignStatus) error {
	b.notify(campaignID)

	payload, err := json.Marshal(controlMessage{CampaignID: campaignID, Status: status})
	if err != nil {
		return fmt.Errorf("failed to marshal control message: %w", err)
	}
	if err := b.client.Publish(ctx, controlChannel, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish control message: %w", err)
	}
	return nil
}

// Subscribe returns a channel that receives a value whenever campaignID is
// commanded. The returned func must be called to unregister.
func (b *redisControlBus) Subscribe(campaignID string) (<-chan struct{}, func()) {
	ch := make(chan struct{}, 1)

	b.mu.Lock()
	b.waiters[campaignID] = append(b.waiters[campaignID], ch)
	b.mu.Unlock()

	return ch, func() {
		b.mu.Lock()
		defer b.mu.Unlock()

		list := b.waiters[campaignID]
		for i, c := range list {
			if c == ch {
				list = append(list[:i], list[i+1:]...)
				break
			}
		}
		if len(list) == 0 {
			delete(b.waiters, campaignID)
		} else {
			b.waiters[campaignID] = list
		}
	}
}

func (b *redisControlBus) notify(campaignID string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, ch := range b.waiters[campaignID] {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

// Run relays messages from the redis channel until ctx is done.
func (b *redisControlBus) Run(ctx context.Context) error {
	pubsub := b.client.Subscribe(ctx, controlChannel)
	defer func() {
		if err := pubsub.Close(); err != nil {
			b.logger.Warn("Failed to close control subscription", zap.Error(err))
		}
	}()

	messages := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-messages:
			if !ok {
				return nil
			}

			var cm controlMessage
			if err := json.Unmarshal([]byte(msg.Payload), &cm); err != nil || cm.CampaignID == "" {
				b.logger.Warn("Dropping malformed control message", zap.String("payload", msg.Payload))
				continue
			}
			b.notify(cm.CampaignID)
		}
	}
}
