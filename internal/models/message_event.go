package models

import (
	"database/sql"
	"database/sql/driver"
	"time"
)

// DeliveryStatus is the provider-reported state of a dispatched message.
type DeliveryStatus string

const (
	DeliveryStatusSent      DeliveryStatus = "sent"
	DeliveryStatusDelivered DeliveryStatus = "delivered"
	DeliveryStatusRead      DeliveryStatus = "read"
	DeliveryStatusFailed    DeliveryStatus = "failed"
)

// Rank orders statuses: sent < delivered < read < failed. Unknown statuses rank 0.
func (s DeliveryStatus) Rank() int {
	switch s {
	case DeliveryStatusSent:
		return 1
	case DeliveryStatusDelivered:
		return 2
	case DeliveryStatusRead:
		return 3
	case DeliveryStatusFailed:
		return 4
	}
	return 0
}

// AtLeast reports whether s has reached other on the non-terminal ladder.
// A failed message has not been delivered or read.
func (s DeliveryStatus) AtLeast(other DeliveryStatus) bool {
	if s == DeliveryStatusFailed {
		return other == DeliveryStatusFailed
	}
	return s.Rank() >= other.Rank()
}

func ParseDeliveryStatus(v string) (DeliveryStatus, bool) {
	s := DeliveryStatus(v)
	return s, s.Rank() > 0
}

// StatusTimestamps maps each status to the time it was first seen.
type StatusTimestamps map[DeliveryStatus]time.Time

func (t StatusTimestamps) Value() (driver.Value, error) {
	if t == nil {
		return "{}", nil
	}
	return marshalJSON(t)
}

func (t *StatusTimestamps) Scan(src interface{}) error {
	return scanJSON(src, t)
}

// StatusEvent is one inbound delivery webhook entry.
type StatusEvent struct {
	TenantID  string
	MessageID string
	Status    DeliveryStatus
	Timestamp time.Time
	Recipient string
	Error     string
	ErrorCode string
	ErrorType string
}

// MessageEvent is the merged delivery state of one provider message.
type MessageEvent struct {
	TenantID         string           `db:"tenant_id" json:"tenant_id"`
	MessageID        string           `db:"message_id" json:"message_id"`
	Status           DeliveryStatus   `db:"status" json:"status"`
	StatusTimestamps StatusTimestamps `db:"status_timestamps" json:"status_timestamps"`
	LastRecipient    string           `db:"last_recipient" json:"last_recipient"`
	Error            sql.NullString   `db:"error" json:"error,omitempty"`
	ErrorCode        sql.NullString   `db:"error_code" json:"error_code,omitempty"`
	ErrorType        sql.NullString   `db:"error_type" json:"error_type,omitempty"`
	CreatedAt        time.Time        `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time        `db:"updated_at" json:"updated_at"`
}

// Apply merges ev into m. Status only moves up the rank order, failed wins over
// everything and is never downgraded, and each status keeps the earliest timestamp
// reported for it, so replays never shift a recorded time.
// It returns true when the recorded status changed.
func (m *MessageEvent) Apply(ev StatusEvent, now time.Time) bool {
	if m.StatusTimestamps == nil {
		m.StatusTimestamps = StatusTimestamps{}
	}

	changed := false
	if ev.Status == DeliveryStatusFailed || ev.Status.Rank() >= m.Status.Rank() {
		changed = m.Status != ev.Status
		m.Status = ev.Status
	}

	if seen, ok := m.StatusTimestamps[ev.Status]; !ok || ev.Timestamp.Before(seen) {
		m.StatusTimestamps[ev.Status] = ev.Timestamp
	}

	if ev.Status == DeliveryStatusFailed {
		m.Error = nullString(ev.Error)
		m.ErrorCode = nullString(ev.ErrorCode)
		m.ErrorType = nullString(ev.ErrorType)
	}

	if ev.Recipient != "" {
		m.LastRecipient = ev.Recipient
	}
	m.UpdatedAt = now
	return changed
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
