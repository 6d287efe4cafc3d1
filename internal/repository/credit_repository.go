package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

type creditRepository struct {
	db DBTX
}

func NewCreditRepository(db DBTX) CreditRepository {
	return &creditRepository{
		db: db,
	}
}

// Balance returns 0 for tenants that were never credited.
func (r *creditRepository) Balance(ctx context.Context, tenantID string) (int64, error) {
	var balance int64
	query := `SELECT balance FROM credit_ledgers WHERE tenant_id = $1`

	if err := r.db.GetContext(ctx, &balance, query, tenantID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to get credit balance: %w", err)
	}

	return balance, nil
}

// Debit decrements the balance only if it stays non-negative.
func (r *creditRepository) Debit(ctx context.Context, tenantID string, amount int64) (int64, error) {
	var balance int64
	query := `
		UPDATE credit_ledgers
		SET balance = balance - $2, updated_at = NOW()
		WHERE tenant_id = $1 AND balance >= $2
		RETURNING balance
	`

	if err := r.db.GetContext(ctx, &balance, query, tenantID, amount); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrInsufficientBalance
		}
		return 0, fmt.Errorf("failed to debit credits: %w", err)
	}

	return balance, nil
}

func (r *creditRepository) Credit(ctx context.Context, tenantID string, amount int64) (int64, error) {
	var balance int64
	query := `
		INSERT INTO credit_ledgers (tenant_id, balance, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (tenant_id) DO UPDATE
		SET balance = credit_ledgers.balance + EXCLUDED.balance, updated_at = NOW()
		RETURNING balance
	`

	if err := r.db.GetContext(ctx, &balance, query, tenantID, amount); err != nil {
		return 0, fmt.Errorf("failed to credit tenant: %w", err)
	}

	return balance, nil
}
