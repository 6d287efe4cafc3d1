package models

import (
	"database/sql"
	"time"
)

type SendStatus string

const (
	SendStatusSent   SendStatus = "sent"
	SendStatusFailed SendStatus = "failed"
)

// SendLogEntry is one dispatch attempt for one contact.
type SendLogEntry struct {
	ID          int64          `db:"id" json:"id"`
	TenantID    string         `db:"tenant_id" json:"tenant_id"`
	BatchID     string         `db:"batch_id" json:"batch_id"`
	CampaignID  string         `db:"campaign_id" json:"campaign_id"`
	Recipient   string         `db:"recipient" json:"recipient"`
	MessageID   sql.NullString `db:"message_id" json:"message_id,omitempty"`
	Language    string         `db:"language" json:"language"`
	Status      SendStatus     `db:"status" json:"status"`
	Error       sql.NullString `db:"error" json:"error,omitempty"`
	ErrorCode   sql.NullString `db:"error_code" json:"error_code,omitempty"`
	ErrorType   sql.NullString `db:"error_type" json:"error_type,omitempty"`
	RealMessage string         `db:"real_message" json:"real_message"`
	Time        time.Time      `db:"sent_at" json:"time"`
}
