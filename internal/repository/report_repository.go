package repository

import (
	"context"
	"fmt"

	"github.com/AdrianD28/whatsapp-marketing/internal/models"
)

type reportRepository struct {
	db DBTX
}

func NewReportRepository(db DBTX) ReportRepository {
	return &reportRepository{
		db: db,
	}
}

// BatchRows returns every send log row of a batch joined with its delivery state, in send order.
func (r *reportRepository) BatchRows(ctx context.Context, tenantID, batchID string) ([]*models.ReportRow, error) {
	query := `
		SELECT s.id, s.tenant_id, s.batch_id, s.campaign_id, s.recipient, s.message_id, s.language,
		       s.status, s.error, s.error_code, s.error_type, s.real_message, s.sent_at,
		       e.status AS event_status,
		       e.status_timestamps,
		       e.error AS event_error,
		       e.error_code AS event_error_code,
		       e.error_type AS event_error_type
		FROM send_logs s
		LEFT JOIN message_events e ON e.tenant_id = s.tenant_id AND e.message_id = s.message_id
		WHERE s.tenant_id = $1 AND s.batch_id = $2
		ORDER BY s.sent_at ASC, s.id ASC
	`

	rows := []*models.ReportRow{}
	if err := r.db.SelectContext(ctx, &rows, query, tenantID, batchID); err != nil {
		return nil, fmt.Errorf("failed to get batch rows: %w", err)
	}

	return rows, nil
}

// ListSummaries aggregates per batch, most recent first. The date filter applies to the
// batch's first send.
func (r *reportRepository) ListSummaries(ctx context.Context, tenantID string, filter models.ReportFilter, offset, limit int) ([]*models.BatchSummary, int, error) {
	having := ""
	args := []interface{}{tenantID}
	argPos := 2

	if filter.From != nil {
		having += fmt.Sprintf(" AND MIN(s.sent_at) >= $%d", argPos)
		args = append(args, *filter.From)
		argPos++
	}
	if filter.To != nil {
		having += fmt.Sprintf(" AND MIN(s.sent_at) <= $%d", argPos)
		args = append(args, *filter.To)
		argPos++
	}

	countQuery := `
		SELECT COUNT(*) FROM (
			SELECT s.batch_id FROM send_logs s
			WHERE s.tenant_id = $1
			GROUP BY s.batch_id
			HAVING TRUE` + having + `
		) b`

	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to count batches: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT s.batch_id,
		       COALESCE(MAX(c.name), '') AS campaign_name,
		       COUNT(*) AS total,
		       COUNT(*) FILTER (WHERE e.status IN ('delivered', 'read')) AS delivered,
		       COUNT(*) FILTER (WHERE e.status = 'read') AS "read",
		       COUNT(*) FILTER (WHERE s.status = 'failed' OR e.status = 'failed') AS failed,
		       COUNT(*) FILTER (WHERE s.status = 'failed') AS send_errors,
		       MIN(s.sent_at) AS first_sent_at,
		       MAX(s.sent_at) AS last_sent_at
		FROM send_logs s
		LEFT JOIN message_events e ON e.tenant_id = s.tenant_id AND e.message_id = s.message_id
		LEFT JOIN campaigns c ON c.id = s.campaign_id
		WHERE s.tenant_id = $1
		GROUP BY s.batch_id
		HAVING TRUE%s
		ORDER BY MAX(s.sent_at) DESC
		LIMIT $%d OFFSET $%d`, having, argPos, argPos+1)
	args = append(args, limit, offset)

	summaries := []*models.BatchSummary{}
	if err := r.db.SelectContext(ctx, &summaries, query, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to list batch summaries: %w", err)
	}

	return summaries, total, nil
}
