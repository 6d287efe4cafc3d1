package repository

import (
	"context"
	"time"

	"github.com/AdrianD28/whatsapp-marketing/internal/models"
)

// Repository interface defines all repository operations.
type Repository interface {
	// Ping checks database connectivity
	Ping() error

	Campaign() CampaignRepository
	SendLog() SendLogRepository
	MessageEvent() MessageEventRepository
	Credit() CreditRepository
	Account() AccountRepository
	Report() ReportRepository

	// WithTx runs fn against a repository bound to one transaction. It commits
	// when fn returns nil and rolls back otherwise. Nested calls join the outer transaction.
	WithTx(ctx context.Context, fn func(tx Repository) error) error
}

// CampaignRepository persists campaigns and their lifecycle.
type CampaignRepository interface {
	Create(ctx context.Context, c *models.Campaign) error
	GetByID(ctx context.Context, tenantID, id string) (*models.Campaign, error)
	// Load reads a campaign without tenant scoping; only the dispatch worker uses it.
	Load(ctx context.Context, id string) (*models.Campaign, error)
	List(ctx context.Context, tenantID string, status *models.CampaignStatus) ([]*models.Campaign, error)

	ClaimNext(ctx context.Context, workerID string, staleAfter time.Duration) (*models.Campaign, error)
	RefreshClaim(ctx context.Context, id, workerID string) error
	ReleaseClaim(ctx context.Context, id, workerID string) error
	// DeferClaim releases the claim and hides the campaign from ClaimNext for retryAfter.
	DeferClaim(ctx context.Context, id, workerID string, retryAfter time.Duration) error

	Transition(ctx context.Context, tenantID, id string, to models.CampaignStatus) (*models.Campaign, error)
	RecordAttempt(ctx context.Context, id, workerID string, outcome models.AttemptOutcome) (*models.Campaign, error)
	MarkTerminal(ctx context.Context, id string, status models.CampaignStatus, errMsg *string) error
}

// SendLogRepository is the append-only dispatch audit trail.
type SendLogRepository interface {
	Append(ctx context.Context, entry *models.SendLogEntry) error
}

// MessageEventRepository stores merged delivery state per provider message.
type MessageEventRepository interface {
	Apply(ctx context.Context, ev models.StatusEvent) (*models.MessageEvent, error)
}

// CreditRepository holds per-tenant balances. All mutations are atomic at the storage layer.
type CreditRepository interface {
	Balance(ctx context.Context, tenantID string) (int64, error)
	Debit(ctx context.Context, tenantID string, amount int64) (int64, error)
	Credit(ctx context.Context, tenantID string, amount int64) (int64, error)
}

type AccountRepository interface {
	Upsert(ctx context.Context, account *models.TenantAccount) error
	GetByTenant(ctx context.Context, tenantID string) (*models.TenantAccount, error)
	GetByPhoneNumberID(ctx context.Context, phoneNumberID string) (*models.TenantAccount, error)
}

// ReportRepository joins send logs with message events.
type ReportRepository interface {
	BatchRows(ctx context.Context, tenantID, batchID string) ([]*models.ReportRow, error)
	ListSummaries(ctx context.Context, tenantID string, filter models.ReportFilter, offset, limit int) ([]*models.BatchSummary, int, error)
}
