package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/AdrianD28/whatsapp-marketing/internal/models"
)

const messageEventColumns = `tenant_id, message_id, status, status_timestamps, last_recipient,
		error, error_code, error_type, created_at, updated_at`

type messageEventRepository struct {
	db DBTX
}

func NewMessageEventRepository(db DBTX) MessageEventRepository {
	return &messageEventRepository{
		db: db,
	}
}

// Apply creates the event row on first sight, then merges ev under a row lock.
func (r *messageEventRepository) Apply(ctx context.Context, ev models.StatusEvent) (*models.MessageEvent, error) {
	var current models.MessageEvent

	err := withTx(ctx, r.db, func(tx DBTX) error {
		insert := `
			INSERT INTO message_events (tenant_id, message_id, status, last_recipient, created_at, updated_at)
			VALUES ($1, $2, $3, $4, NOW(), NOW())
			ON CONFLICT (tenant_id, message_id) DO NOTHING
		`
		if _, err := tx.ExecContext(ctx, insert, ev.TenantID, ev.MessageID, ev.Status, ev.Recipient); err != nil {
			return fmt.Errorf("failed to insert message event: %w", err)
		}

		selectQuery := `SELECT ` + messageEventColumns + ` FROM message_events
			WHERE tenant_id = $1 AND message_id = $2 FOR UPDATE`
		if err := tx.GetContext(ctx, &current, selectQuery, ev.TenantID, ev.MessageID); err != nil {
			return fmt.Errorf("failed to lock message event: %w", err)
		}

		current.Apply(ev, time.Now().UTC())

		update := `
			UPDATE message_events
			SET status = $3,
			    status_timestamps = $4,
			    last_recipient = $5,
			    error = $6,
			    error_code = $7,
			    error_type = $8,
			    updated_at = $9
			WHERE tenant_id = $1 AND message_id = $2
		`
		_, err := tx.ExecContext(ctx, update,
			current.TenantID, current.MessageID, current.Status, current.StatusTimestamps,
			current.LastRecipient, current.Error, current.ErrorCode, current.ErrorType, current.UpdatedAt)
		if err != nil {
			return fmt.Errorf("failed to update message event: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &current, nil
}
