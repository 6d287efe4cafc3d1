package repository

import (
	"context"
	"fmt"

	"github.com/AdrianD28/whatsapp-marketing/internal/models"
)

type sendLogRepository struct {
	db DBTX
}

func NewSendLogRepository(db DBTX) SendLogRepository {
	return &sendLogRepository{
		db: db,
	}
}

// Append writes one dispatch attempt. Rows are never updated.
func (r *sendLogRepository) Append(ctx context.Context, e *models.SendLogEntry) error {
	query := `
		INSERT INTO send_logs (tenant_id, batch_id, campaign_id, recipient, message_id, language,
			status, error, error_code, error_type, real_message, sent_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW())
		RETURNING id, sent_at
	`

	row := r.db.QueryRowxContext(ctx, query,
		e.TenantID, e.BatchID, e.CampaignID, e.Recipient, e.MessageID, e.Language,
		e.Status, e.Error, e.ErrorCode, e.ErrorType, e.RealMessage)
	if err := row.Scan(&e.ID, &e.Time); err != nil {
		return fmt.Errorf("failed to append send log: %w", err)
	}

	return nil
}
