package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/AdrianD28/whatsapp-marketing/internal/models"
)

const accountColumns = `tenant_id, phone_number_id, access_token, waba_id, created_at, updated_at`

type accountRepository struct {
	db DBTX
}

func NewAccountRepository(db DBTX) AccountRepository {
	return &accountRepository{
		db: db,
	}
}

// Upsert stores or rotates a tenant's provider credentials.
func (r *accountRepository) Upsert(ctx context.Context, a *models.TenantAccount) error {
	query := `
		INSERT INTO tenant_accounts (tenant_id, phone_number_id, access_token, waba_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		ON CONFLICT (tenant_id) DO UPDATE
		SET phone_number_id = EXCLUDED.phone_number_id,
		    access_token = EXCLUDED.access_token,
		    waba_id = EXCLUDED.waba_id,
		    updated_at = NOW()
		RETURNING created_at, updated_at
	`

	row := r.db.QueryRowxContext(ctx, query, a.TenantID, a.PhoneNumberID, a.AccessToken, a.WABAID)
	if err := row.Scan(&a.CreatedAt, &a.UpdatedAt); err != nil {
		return fmt.Errorf("failed to upsert tenant account: %w", err)
	}

	return nil
}

func (r *accountRepository) GetByTenant(ctx context.Context, tenantID string) (*models.TenantAccount, error) {
	return r.get(ctx, `SELECT `+accountColumns+` FROM tenant_accounts WHERE tenant_id = $1`, tenantID)
}

func (r *accountRepository) GetByPhoneNumberID(ctx context.Context, phoneNumberID string) (*models.TenantAccount, error) {
	return r.get(ctx, `SELECT `+accountColumns+` FROM tenant_accounts WHERE phone_number_id = $1`, phoneNumberID)
}

func (r *accountRepository) get(ctx context.Context, query string, arg string) (*models.TenantAccount, error) {
	var a models.TenantAccount
	if err := r.db.GetContext(ctx, &a, query, arg); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to get tenant account: %w", err)
	}
	return &a, nil
}
