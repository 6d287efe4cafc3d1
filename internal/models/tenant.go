package models

import (
	"database/sql"
	"time"
)

// TenantAccount holds the provider credentials of one tenant.
type TenantAccount struct {
	TenantID      string         `db:"tenant_id" json:"tenant_id"`
	PhoneNumberID string         `db:"phone_number_id" json:"phone_number_id"`
	AccessToken   string         `db:"access_token" json:"-"`
	WABAID        sql.NullString `db:"waba_id" json:"waba_id,omitempty"`
	CreatedAt     time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time      `db:"updated_at" json:"updated_at"`
}

type CreditBalance struct {
	TenantID  string    `db:"tenant_id" json:"tenant_id"`
	Balance   int64     `db:"balance" json:"balance"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
