package service

import (
	"context"

	"github.com/sony/gobreaker"

	"github.com/AdrianD28/whatsapp-marketing/internal/models"
	"github.com/AdrianD28/whatsapp-marketing/internal/whatsapp"
)

type CreditService interface {
	Authorize(ctx context.Context, tenantID string, required int64) error
	Credit(ctx context.Context, tenantID string, amount int64) (int64, error)
	Balance(ctx context.Context, tenantID string) (int64, error)
}

type CampaignService interface {
	Create(ctx context.Context, tenantID string, req *CreateCampaignRequest) (*models.Campaign, error)
	List(ctx context.Context, tenantID string, status *models.CampaignStatus) ([]*models.Campaign, error)
	Get(ctx context.Context, tenantID, campaignID string) (*CampaignDetail, error)
	Pause(ctx context.Context, tenantID, campaignID string) (*models.Campaign, error)
	Resume(ctx context.Context, tenantID, campaignID string) (*models.Campaign, error)
	Cancel(ctx context.Context, tenantID, campaignID string) (*models.Campaign, error)
}

// DispatchService processes claimed campaigns. ProcessNext reports whether the
// worker should poll again at once: false when nothing was claimable or the
// claimed campaign is blocked on its provider number.
type DispatchService interface {
	ProcessNext(ctx context.Context, workerID string) (bool, error)
}

type ReconcilerService interface {
	HandleWebhook(ctx context.Context, body []byte, signature string) ReconcileResult
	VerifySubscription(mode, token, challenge string) (string, bool)
}

type ReportService interface {
	Summarize(ctx context.Context, tenantID, batchID string) (*BatchReport, error)
	List(ctx context.Context, tenantID string, filter models.ReportFilter, page, limit int) (*ReportPage, error)
}

type AccountService interface {
	Configure(ctx context.Context, account *models.TenantAccount) error
}

type SchedulerService interface {
	Start() error
	Stop() error
	IsRunning() bool
}

type HealthService interface {
	GetHealth(ctx context.Context) *HealthStatus
}

// MessageSender delivers one template message and returns the provider message id.
type MessageSender interface {
	SendTemplate(ctx context.Context, creds whatsapp.Credentials, msg *whatsapp.TemplateMessage) (string, error)
}

// BreakerReporter exposes provider circuit breaker state per phone number id.
type BreakerReporter interface {
	States() map[string]gobreaker.State
}

type ProgressStore interface {
	Save(ctx context.Context, campaignID string, p LiveProgress) error
	Get(ctx context.Context, campaignID string) (*LiveProgress, error)
	Delete(ctx context.Context, campaignID string) error
}

type ControlBus interface {
	Publish(ctx context.Context, campaignID string, status models.CampaignStatus) error
	Subscribe(campaignID string) (<-chan struct{}, func())
	Run(ctx context.Context) error
}
