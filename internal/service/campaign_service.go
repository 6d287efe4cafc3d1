package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/AdrianD28/whatsapp-marketing/internal/config"
	"github.com/AdrianD28/whatsapp-marketing/internal/models"
	"github.com/AdrianD28/whatsapp-marketing/internal/repository"
)

type campaignService struct {
	cfg      *config.DispatchConfig
	repo     repository.Repository
	credits  CreditService
	progress ProgressStore
	bus      ControlBus
	logger   *zap.Logger
}

func NewCampaignService(
	cfg *config.DispatchConfig,
	repo repository.Repository,
	credits CreditService,
	progress ProgressStore,
	bus ControlBus,
	logger *zap.Logger,
) CampaignService {
	return &campaignService{
		cfg:      cfg,
		repo:     repo,
		credits:  credits,
		progress: progress,
		bus:      bus,
		logger:   logger,
	}
}

// Create admits a campaign: validate, check the tenant can send, check credits
// cover every contact, then persist it as pending.
func (s *campaignService) Create(ctx context.Context, tenantID string, req *CreateCampaignRequest) (*models.Campaign, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}

	if _, err := s.repo.Account().GetByTenant(ctx, tenantID); err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return nil, ErrAccountNotConfigured
		}
		return nil, fmt.Errorf("failed to load tenant account: %w", err)
	}

	if err := s.credits.Authorize(ctx, tenantID, int64(len(req.Contacts))); err != nil {
		return nil, err
	}

	delay := s.cfg.DefaultDelaySeconds
	if req.DelaySeconds != nil {
		delay = *req.DelaySeconds
	}

	batchID := strings.TrimSpace(req.BatchID)
	if batchID == "" {
		batchID = uuid.NewString()
	}

	campaign := &models.Campaign{
		ID:           uuid.NewString(),
		TenantID:     tenantID,
		BatchID:      batchID,
		Name:         strings.TrimSpace(req.Name),
		Template:     req.Template,
		Contacts:     req.Contacts,
		DelaySeconds: delay,
	}

	if err := s.repo.Campaign().Create(ctx, campaign); err != nil {
		if errors.Is(err, repository.ErrDuplicateBatch) {
			return nil, ErrDuplicateBatch
		}
		return nil, fmt.Errorf("failed to create campaign: %w", err)
	}

	s.logger.Info("Campaign created",
		zap.String("campaign_id", campaign.ID),
		zap.String("batch_id", campaign.BatchID),
		zap.String("tenant_id", tenantID),
		zap.Int("contacts", campaign.ContactsCount))

	return campaign, nil
}

func (s *campaignService) validate(req *CreateCampaignRequest) error {
	if req == nil {
		return invalid("body", "is required")
	}
	if strings.TrimSpace(req.Name) == "" {
		return invalid("name", "is required")
	}
	if strings.TrimSpace(req.Template.Name) == "" {
		return invalid("template.name", "is required")
	}
	if strings.TrimSpace(req.Template.Language) == "" {
		return invalid("template.language", "is required")
	}
	if len(req.Template.Language) > config.MaxLanguageLength {
		return invalid("template.language", "must be at most %d characters", config.MaxLanguageLength)
	}
	if len(req.Contacts) == 0 {
		return invalid("contacts", "at least one contact is required")
	}
	if s.cfg.MaxContacts > 0 && len(req.Contacts) > s.cfg.MaxContacts {
		return invalid("contacts", "at most %d contacts are allowed", s.cfg.MaxContacts)
	}
	for i, c := range req.Contacts {
		switch digits := NormalizePhone(c.Phone); {
		case digits == "":
			return invalid(fmt.Sprintf("contacts[%d].phone", i), "must contain digits")
		case len(digits) > maxPhoneDigits:
			return invalid(fmt.Sprintf("contacts[%d].phone", i), "must have at most %d digits", maxPhoneDigits)
		}
	}
	if req.DelaySeconds != nil && *req.DelaySeconds < 0 {
		return invalid("delay_seconds", "must not be negative")
	}
	return nil
}

func (s *campaignService) List(ctx context.Context, tenantID string, status *models.CampaignStatus) ([]*models.Campaign, error) {
	if status != nil && !status.IsValid() {
		return nil, invalid("status", "unknown status %q", *status)
	}

	campaigns, err := s.repo.Campaign().List(ctx, tenantID, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list campaigns: %w", err)
	}
	return campaigns, nil
}

// Get merges the persisted record with live worker progress when available.
func (s *campaignService) Get(ctx context.Context, tenantID, campaignID string) (*CampaignDetail, error) {
	campaign, err := s.repo.Campaign().GetByID(ctx, tenantID, campaignID)
	if err != nil {
		return nil, err
	}

	detail := &CampaignDetail{Campaign: campaign}
	if campaign.Status.IsLive() {
		live, err := s.progress.Get(ctx, campaignID)
		if err != nil {
			s.logger.Warn("Failed to read live progress",
				zap.String("campaign_id", campaignID),
				zap.Error(err))
		}
		detail.Live = live
	}

	return detail, nil
}

func (s *campaignService) Pause(ctx context.Context, tenantID, campaignID string) (*models.Campaign, error) {
	return s.transition(ctx, tenantID, campaignID, models.CampaignStatusPaused)
}

func (s *campaignService) Resume(ctx context.Context, tenantID, campaignID string) (*models.Campaign, error) {
	return s.transition(ctx, tenantID, campaignID, models.CampaignStatusProcessing)
}

func (s *campaignService) Cancel(ctx context.Context, tenantID, campaignID string) (*models.Campaign, error) {
	return s.transition(ctx, tenantID, campaignID, models.CampaignStatusCancelled)
}

func (s *campaignService) transition(ctx context.Context, tenantID, campaignID string, to models.CampaignStatus) (*models.Campaign, error) {
	campaign, err := s.repo.Campaign().Transition(ctx, tenantID, campaignID, to)
	if err != nil {
		return nil, err
	}

	logger := s.logger.With(
		zap.String("campaign_id", campaign.ID),
		zap.String("batch_id", campaign.BatchID),
		zap.String("tenant_id", tenantID))
	logger.Info("Campaign status changed", zap.String("status", string(to)))

	if to != models.CampaignStatusProcessing {
		if err := s.bus.Publish(ctx, campaignID, to); err != nil {
			logger.Warn("Failed to publish control signal", zap.Error(err))
		}
	}

	return campaign, nil
}
