package service

import (
	"context"
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/AdrianD28/whatsapp-marketing/internal/models"
	"github.com/AdrianD28/whatsapp-marketing/internal/repository"
)

const (
	defaultReportLimit = 20
	maxReportLimit     = 100

	// RecipientError statuses.
	errorStatusSend     = "send_failed"
	errorStatusProvider = "failed"
)

type reportService struct {
	repo   repository.Repository
	logger *zap.Logger
}

func NewReportService(repo repository.Repository, logger *zap.Logger) ReportService {
	return &reportService{
		repo:   repo,
		logger: logger,
	}
}

func (s *reportService) Summarize(ctx context.Context, tenantID, batchID string) (*BatchReport, error) {
	rows, err := s.repo.Report().BatchRows(ctx, tenantID, batchID)
	if err != nil {
		return nil, fmt.Errorf("failed to load batch rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, ErrReportNotFound
	}

	report := Summarize(batchID, rows)
	return report, nil
}

// Summarize aggregates the send log rows of one batch. failed counts both
// send-time failures and messages the provider later reported as failed.
func Summarize(batchID string, rows []*models.ReportRow) *BatchReport {
	report := &BatchReport{
		BatchID: batchID,
		Total:   len(rows),
		Errors:  []models.RecipientError{},
		Rows:    rows,
	}

	for _, row := range rows {
		if row.Status == models.SendStatusFailed {
			report.SendErrors++
			report.Failed++
			report.Errors = append(report.Errors, models.RecipientError{
				Recipient: row.Recipient,
				Time:      row.Time,
				Status:    errorStatusSend,
				Error:     row.Error.String,
				ErrorCode: row.ErrorCode.String,
				ErrorType: row.ErrorType.String,
			})
			continue
		}

		if !row.EventStatus.Valid {
			continue
		}
		status := models.DeliveryStatus(row.EventStatus.String)
		if status == models.DeliveryStatusFailed {
			report.Failed++
			at := row.Time
			if ts, ok := row.StatusTimestamps[models.DeliveryStatusFailed]; ok {
				at = ts
			}
			report.Errors = append(report.Errors, models.RecipientError{
				Recipient: row.Recipient,
				Time:      at,
				Status:    errorStatusProvider,
				Error:     row.EventError.String,
				ErrorCode: row.EventErrorCode.String,
				ErrorType: row.EventErrorType.String,
			})
			continue
		}
		if status.AtLeast(models.DeliveryStatusDelivered) {
			report.Delivered++
		}
		if status.AtLeast(models.DeliveryStatusRead) {
			report.Read++
		}
	}

	report.DeliveryRate = Rate(report.Delivered, report.Total)
	report.ReadRate = Rate(report.Read, report.Total)
	return report
}

// Rate is part/total as a whole percentage, 0 when total is 0.
func Rate(part, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(part) * 100 / float64(total)))
}

func (s *reportService) List(ctx context.Context, tenantID string, filter models.ReportFilter, page, limit int) (*ReportPage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultReportLimit
	}
	if limit > maxReportLimit {
		limit = maxReportLimit
	}
	if filter.From != nil && filter.To != nil && filter.From.After(*filter.To) {
		return nil, invalid("from", "must not be after to")
	}

	offset := (page - 1) * limit
	summaries, total, err := s.repo.Report().ListSummaries(ctx, tenantID, filter, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list batch summaries: %w", err)
	}

	items := make([]BatchSummaryView, 0, len(summaries))
	for _, summary := range summaries {
		items = append(items, BatchSummaryView{
			BatchSummary: summary,
			DeliveryRate: Rate(summary.Delivered, summary.Total),
			ReadRate:     Rate(summary.Read, summary.Total),
		})
	}

	totalPages := (total + limit - 1) / limit

	return &ReportPage{
		Items:      items,
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
	}, nil
}
