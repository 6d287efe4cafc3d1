package models_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AdrianD28/whatsapp-marketing/internal/models"
)

func permutations(events []models.StatusEvent) [][]models.StatusEvent {
	if len(events) <= 1 {
		return [][]models.StatusEvent{events}
	}
	var out [][]models.StatusEvent
	for i := range events {
		rest := make([]models.StatusEvent, 0, len(events)-1)
		rest = append(rest, events[:i]...)
		rest = append(rest, events[i+1:]...)
		for _, p := range permutations(rest) {
			out = append(out, append([]models.StatusEvent{events[i]}, p...))
		}
	}
	return out
}

func TestMessageEvent_Apply_AnyOrder(t *testing.T) {
	base := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	t1, t2, t3, t4 := base, base.Add(time.Minute), base.Add(2*time.Minute), base.Add(3*time.Minute)

	events := []models.StatusEvent{
		{MessageID: "wamid.1", Status: models.DeliveryStatusSent, Timestamp: t1, Recipient: "573001112233"},
		{MessageID: "wamid.1", Status: models.DeliveryStatusDelivered, Timestamp: t2, Recipient: "573001112233"},
		{MessageID: "wamid.1", Status: models.DeliveryStatusSent, Timestamp: t3, Recipient: "573001112233"},
		{MessageID: "wamid.1", Status: models.DeliveryStatusRead, Timestamp: t4, Recipient: "573001112233"},
	}

	for _, order := range permutations(events) {
		ev := &models.MessageEvent{MessageID: "wamid.1"}
		for _, e := range order {
			ev.Apply(e, base)
		}

		assert.Equal(t, models.DeliveryStatusRead, ev.Status)
		assert.Equal(t, t1, ev.StatusTimestamps[models.DeliveryStatusSent])
		assert.Equal(t, t2, ev.StatusTimestamps[models.DeliveryStatusDelivered])
		assert.Equal(t, t4, ev.StatusTimestamps[models.DeliveryStatusRead])
		assert.Len(t, ev.StatusTimestamps, 3)
	}
}

func TestMessageEvent_Apply_DuplicateSentKeepsFirstTimestamp(t *testing.T) {
	t1 := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	t3 := t1.Add(2 * time.Minute)

	ev := &models.MessageEvent{}
	ev.Apply(models.StatusEvent{Status: models.DeliveryStatusSent, Timestamp: t1}, t1)
	ev.Apply(models.StatusEvent{Status: models.DeliveryStatusSent, Timestamp: t3}, t3)

	assert.Equal(t, t1, ev.StatusTimestamps[models.DeliveryStatusSent])
	assert.Equal(t, t3, ev.UpdatedAt)
}

func TestMessageEvent_Apply_Failed(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name     string
		events   []models.DeliveryStatus
		expected models.DeliveryStatus
	}{
		{
			name:     "failed after delivered wins",
			events:   []models.DeliveryStatus{models.DeliveryStatusSent, models.DeliveryStatusDelivered, models.DeliveryStatusFailed},
			expected: models.DeliveryStatusFailed,
		},
		{
			name:     "delivered after failed stays failed",
			events:   []models.DeliveryStatus{models.DeliveryStatusFailed, models.DeliveryStatusDelivered},
			expected: models.DeliveryStatusFailed,
		},
		{
			name:     "read after failed stays failed",
			events:   []models.DeliveryStatus{models.DeliveryStatusSent, models.DeliveryStatusFailed, models.DeliveryStatusRead},
			expected: models.DeliveryStatusFailed,
		},
		{
			name:     "failed after read wins",
			events:   []models.DeliveryStatus{models.DeliveryStatusRead, models.DeliveryStatusFailed},
			expected: models.DeliveryStatusFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev := &models.MessageEvent{}
			for i, s := range tt.events {
				se := models.StatusEvent{Status: s, Timestamp: now.Add(time.Duration(i) * time.Second)}
				if s == models.DeliveryStatusFailed {
					se.Error = "Message undeliverable"
					se.ErrorCode = "131026"
				}
				ev.Apply(se, now)
			}
			assert.Equal(t, tt.expected, ev.Status)
			require.True(t, ev.ErrorCode.Valid)
			assert.Equal(t, "131026", ev.ErrorCode.String)
		})
	}
}

func TestDeliveryStatus_AtLeast(t *testing.T) {
	assert.True(t, models.DeliveryStatusRead.AtLeast(models.DeliveryStatusDelivered))
	assert.True(t, models.DeliveryStatusDelivered.AtLeast(models.DeliveryStatusDelivered))
	assert.False(t, models.DeliveryStatusSent.AtLeast(models.DeliveryStatusDelivered))
	assert.False(t, models.DeliveryStatusFailed.AtLeast(models.DeliveryStatusDelivered))
	assert.True(t, models.DeliveryStatusFailed.AtLeast(models.DeliveryStatusFailed))

	_, ok := models.ParseDeliveryStatus("deleted")
	assert.False(t, ok)
}
