package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
)

const liveProgressKeyPrefix = "campaign:live:"

// LiveProgress is what a worker is doing right now on a campaign. It is not
// durable; the campaign row remains the source of truth for counters.
type LiveProgress struct {
	WorkerID         string    `json:"worker_id"`
	Index            int       `json:"index"`
	CurrentRecipient string    `json:"current_recipient"`
	Language         string    `json:"language"`
	Heartbeat        time.Time `json:"heartbeat"`
}

type redisProgressStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisProgressStore(client *redis.Client, ttl time.Duration) ProgressStore {
	return &redisProgressStore{
		client: client,
		ttl:    ttl,
	}
}

func liveProgressKey(campaignID string) string {
	return liveProgressKeyPrefix + campaignID
}

func (s *redisProgressStore) Save(ctx context.Context, campaignID string, p LiveProgress) error {
	key := liveProgressKey(campaignID)

	pipe := s.client.TxPipeline()
	pipe.HSet(ctx, key,
		"worker_id", p.WorkerID,
		"index", p.Index,
		"current_recipient", p.CurrentRecipient,
		"language", p.Language,
		"heartbeat", p.Heartbeat.UTC().Format(time.RFC3339Nano),
	)
	pipe.Expire(ctx, key, s.ttl)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save live progress: %w", err)
	}
	return nil
}

// Get returns nil when no worker is holding the campaign.
func (s *redisProgressStore) Get(ctx context.Context, campaignID string) (*LiveProgress, error) {
	fields, err := s.client.HGetAll(ctx, liveProgressKey(campaignID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read live progress: %w", err)
	}
	if len(fields) == 0 {
		return nil, nil
	}

	p := &LiveProgress{
		WorkerID:         fields["worker_id"],
		CurrentRecipient: fields["current_recipient"],
		Language:         fields["language"],
	}
	p.Index, _ = strconv.Atoi(fields["index"])
	p.Heartbeat, _ = time.Parse(time.RFC3339Nano, fields["heartbeat"])

	return p, nil
}

func (s *redisProgressStore) Delete(ctx context.Context, campaignID string) error {
	if err := s.client.Del(ctx, liveProgressKey(campaignID)).Err(); err != nil {
		return fmt.Errorf("failed to delete live progress: %w", err)
	}
	return nil
}
