package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/AdrianD28/whatsapp-marketing/internal/models"
	"github.com/AdrianD28/whatsapp-marketing/internal/repository"
)

type accountService struct {
	repo   repository.Repository
	logger *zap.Logger
}

func NewAccountService(repo repository.Repository, logger *zap.Logger) AccountService {
	return &accountService{
		repo:   repo,
		logger: logger,
	}
}

// Configure stores or replaces the provider credentials of a tenant.
func (s *accountService) Configure(ctx context.Context, account *models.TenantAccount) error {
	if account == nil {
		return invalid("body", "is required")
	}
	account.TenantID = strings.TrimSpace(account.TenantID)
	account.PhoneNumberID = strings.TrimSpace(account.PhoneNumberID)
	account.AccessToken = strings.TrimSpace(account.AccessToken)

	switch {
	case account.TenantID == "":
		return invalid("tenant_id", "is required")
	case account.PhoneNumberID == "":
		return invalid("phone_number_id", "is required")
	case account.AccessToken == "":
		return invalid("access_token", "is required")
	}

	if err := s.repo.Account().Upsert(ctx, account); err != nil {
		return fmt.Errorf("failed to save tenant account: %w", err)
	}

	s.logger.Info("Tenant account configured",
		zap.String("tenant_id", account.TenantID),
		zap.String("phone_number_id", account.PhoneNumberID))

	return nil
}
