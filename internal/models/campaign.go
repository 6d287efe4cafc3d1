// Package models defines data structures used throughout the application.
package models

import (
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

type CampaignStatus string

const (
	CampaignStatusPending    CampaignStatus = "pending"
	CampaignStatusProcessing CampaignStatus = "processing"
	CampaignStatusPaused     CampaignStatus = "paused"
	CampaignStatusCompleted  CampaignStatus = "completed"
	CampaignStatusCancelled  CampaignStatus = "cancelled"
	CampaignStatusFailed     CampaignStatus = "failed"
)

// IsTerminal reports whether no further transitions are allowed.
func (s CampaignStatus) IsTerminal() bool {
	switch s {
	case CampaignStatusCompleted, CampaignStatusCancelled, CampaignStatusFailed:
		return true
	}
	return false
}

func (s CampaignStatus) IsLive() bool {
	switch s {
	case CampaignStatusPending, CampaignStatusProcessing, CampaignStatusPaused:
		return true
	}
	return false
}

func (s CampaignStatus) IsValid() bool {
	return s.IsLive() || s.IsTerminal()
}

// TransitionSources returns the statuses an operator command may move from to reach target.
func TransitionSources(target CampaignStatus) []CampaignStatus {
	switch target {
	case CampaignStatusPaused:
		return []CampaignStatus{CampaignStatusProcessing}
	case CampaignStatusProcessing:
		return []CampaignStatus{CampaignStatusPaused}
	case CampaignStatusCancelled:
		return []CampaignStatus{CampaignStatusPending, CampaignStatusProcessing, CampaignStatusPaused}
	}
	return nil
}

// CanTransition reports whether an operator command may move a campaign from -> to.
func CanTransition(from, to CampaignStatus) bool {
	for _, s := range TransitionSources(to) {
		if s == from {
			return true
		}
	}
	return false
}

// Contact is a single recipient of a campaign.
type Contact struct {
	Phone string `json:"phone"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

type Contacts []Contact

func (c Contacts) Value() (driver.Value, error) {
	if c == nil {
		return "[]", nil
	}
	return marshalJSON(c)
}

func (c *Contacts) Scan(src interface{}) error {
	return scanJSON(src, c)
}

// TemplateComponent is one block of an approved template layout.
// Parameters hold literal values or contact field references ({{name}}, {{phone}}, {{email}}).
type TemplateComponent struct {
	Type       string   `json:"type"`
	SubType    string   `json:"sub_type,omitempty"`
	Index      int      `json:"index,omitempty"`
	Text       string   `json:"text,omitempty"`
	Parameters []string `json:"parameters,omitempty"`
}

// TemplateRef identifies an approved provider template and its component layout.
type TemplateRef struct {
	Name       string              `json:"name"`
	Language   string              `json:"language"`
	Components []TemplateComponent `json:"components,omitempty"`
}

func (t TemplateRef) Value() (driver.Value, error) {
	return marshalJSON(t)
}

func (t *TemplateRef) Scan(src interface{}) error {
	return scanJSON(src, t)
}

// Campaign represents a bulk send in the database.
type Campaign struct {
	ID            string         `db:"id" json:"id"`
	TenantID      string         `db:"tenant_id" json:"tenant_id"`
	BatchID       string         `db:"batch_id" json:"batch_id"`
	Name          string         `db:"name" json:"name"`
	Template      TemplateRef    `db:"template" json:"template"`
	Contacts      Contacts       `db:"contacts" json:"-"`
	ContactsCount int            `db:"contacts_count" json:"contacts_count"`
	DelaySeconds  int            `db:"delay_seconds" json:"delay_seconds"`
	Processed     int            `db:"processed" json:"processed"`
	SuccessCount  int            `db:"success_count" json:"success_count"`
	FailedCount   int            `db:"failed_count" json:"failed_count"`
	Status        CampaignStatus `db:"status" json:"status"`
	Error         sql.NullString `db:"error" json:"error,omitempty"`
	ClaimedBy     sql.NullString `db:"claimed_by" json:"-"`
	ClaimedAt     sql.NullTime   `db:"claimed_at" json:"-"`
	CreatedAt     time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time      `db:"updated_at" json:"updated_at"`
	CompletedAt   sql.NullTime   `db:"completed_at" json:"completed_at,omitempty"`
}

// Done reports whether every contact has been attempted.
func (c *Campaign) Done() bool {
	return c.Processed >= c.ContactsCount
}

// NextContact returns the first unattempted contact.
func (c *Campaign) NextContact() (Contact, bool) {
	if c.Processed < 0 || c.Processed >= len(c.Contacts) {
		return Contact{}, false
	}
	return c.Contacts[c.Processed], true
}

// Consistent checks processed == success + failed <= contacts.
func (c *Campaign) Consistent() bool {
	return c.Processed == c.SuccessCount+c.FailedCount && c.Processed <= c.ContactsCount
}

// AttemptOutcome is the per-contact result recorded on a campaign.
type AttemptOutcome int

const (
	OutcomeSuccess AttemptOutcome = iota + 1
	OutcomeFailure
)

// marshalJSON returns text so lib/pq sends it as json rather than bytea.
func marshalJSON(v interface{}) (driver.Value, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

func scanJSON(src interface{}, dest interface{}) error {
	var data []byte
	switch v := src.(type) {
	case nil:
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported type %T for json column", src)
	}
	if len(data) == 0 {
		return errors.New("empty json column")
	}
	return json.Unmarshal(data, dest)
}
