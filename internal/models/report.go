package models

import (
	"database/sql"
	"time"
)

// ReportRow is a send log entry joined with the delivery state of its message.
type ReportRow struct {
	SendLogEntry
	EventStatus      sql.NullString   `db:"event_status" json:"delivery_status,omitempty"`
	StatusTimestamps StatusTimestamps `db:"status_timestamps" json:"status_timestamps,omitempty"`
	EventError       sql.NullString   `db:"event_error" json:"delivery_error,omitempty"`
	EventErrorCode   sql.NullString   `db:"event_error_code" json:"delivery_error_code,omitempty"`
	EventErrorType   sql.NullString   `db:"event_error_type" json:"delivery_error_type,omitempty"`
}

// BatchSummary is the aggregated outcome of one campaign batch.
type BatchSummary struct {
	BatchID      string    `db:"batch_id" json:"batch_id"`
	CampaignName string    `db:"campaign_name" json:"campaign_name"`
	Total        int       `db:"total" json:"total"`
	Delivered    int       `db:"delivered" json:"delivered"`
	Read         int       `db:"read" json:"read"`
	Failed       int       `db:"failed" json:"failed"`
	SendErrors   int       `db:"send_errors" json:"send_errors"`
	FirstSentAt  time.Time `db:"first_sent_at" json:"first_sent_at"`
	LastSentAt   time.Time `db:"last_sent_at" json:"last_sent_at"`
}

// RecipientError describes one failed recipient for operator diagnosis.
type RecipientError struct {
	Recipient string    `json:"recipient"`
	Time      time.Time `json:"time"`
	Status    string    `json:"status"`
	Error     string    `json:"error,omitempty"`
	ErrorCode string    `json:"error_code,omitempty"`
	ErrorType string    `json:"error_type,omitempty"`
}

type ReportFilter struct {
	From *time.Time
	To   *time.Time
}
