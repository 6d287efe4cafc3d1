package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/AdrianD28/whatsapp-marketing/internal/repository"
)

type creditService struct {
	repo   repository.Repository
	logger *zap.Logger
}

func NewCreditService(repo repository.Repository, logger *zap.Logger) CreditService {
	return &creditService{
		repo:   repo,
		logger: logger,
	}
}

// Authorize checks the balance covers required credits. Nothing is reserved.
func (s *creditService) Authorize(ctx context.Context, tenantID string, required int64) error {
	balance, err := s.repo.Credit().Balance(ctx, tenantID)
	if err != nil {
		return fmt.Errorf("failed to read credit balance: %w", err)
	}

	if balance < required {
		return &InsufficientCreditsError{
			Required:  required,
			Available: balance,
			Missing:   required - balance,
		}
	}

	return nil
}

func (s *creditService) Credit(ctx context.Context, tenantID string, amount int64) (int64, error) {
	if amount <= 0 {
		return 0, invalid("amount", "must be greater than zero")
	}

	balance, err := s.repo.Credit().Credit(ctx, tenantID, amount)
	if err != nil {
		return 0, fmt.Errorf("failed to credit tenant: %w", err)
	}

	s.logger.Info("Tenant credited",
		zap.String("tenant_id", tenantID),
		zap.Int64("amount", amount),
		zap.Int64("balance", balance))

	return balance, nil
}

func (s *creditService) Balance(ctx context.Context, tenantID string) (int64, error) {
	balance, err := s.repo.Credit().Balance(ctx, tenantID)
	if err != nil {
		return 0, fmt.Errorf("failed to read credit balance: %w", err)
	}
	return balance, nil
}
