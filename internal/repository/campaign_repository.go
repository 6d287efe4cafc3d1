package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/AdrianD28/whatsapp-marketing/internal/models"
)

const campaignColumns = `id, tenant_id, batch_id, name, template, contacts, contacts_count, delay_seconds,
		processed, success_count, failed_count, status, error, claimed_by, claimed_at,
		created_at, updated_at, completed_at`

type campaignRepository struct {
	db DBTX
}

func NewCampaignRepository(db DBTX) CampaignRepository {
	return &campaignRepository{
		db: db,
	}
}

// Create inserts a pending campaign with zeroed counters.
func (r *campaignRepository) Create(ctx context.Context, c *models.Campaign) error {
	query := `
		INSERT INTO campaigns (id, tenant_id, batch_id, name, template, contacts, contacts_count,
			delay_seconds, processed, success_count, failed_count, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, 0, 0, 0, $9, $10, $10)
	`

	now := time.Now().UTC()
	c.ContactsCount = len(c.Contacts)
	c.Processed, c.SuccessCount, c.FailedCount = 0, 0, 0
	c.Status = models.CampaignStatusPending
	c.CreatedAt, c.UpdatedAt = now, now

	_, err := r.db.ExecContext(ctx, query,
		c.ID, c.TenantID, c.BatchID, c.Name, c.Template, c.Contacts, c.ContactsCount,
		c.DelaySeconds, c.Status, now)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return ErrDuplicateBatch
		}
		return fmt.Errorf("failed to create campaign: %w", err)
	}

	return nil
}

// GetByID retrieves a campaign scoped to its tenant.
func (r *campaignRepository) GetByID(ctx context.Context, tenantID, id string) (*models.Campaign, error) {
	query := `SELECT ` + campaignColumns + ` FROM campaigns WHERE id = $1 AND tenant_id = $2`

	var c models.Campaign
	if err := r.db.GetContext(ctx, &c, query, id, tenantID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCampaignNotFound
		}
		return nil, fmt.Errorf("failed to get campaign: %w", err)
	}

	return &c, nil
}

func (r *campaignRepository) Load(ctx context.Context, id string) (*models.Campaign, error) {
	query := `SELECT ` + campaignColumns + ` FROM campaigns WHERE id = $1`

	var c models.Campaign
	if err := r.db.GetContext(ctx, &c, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCampaignNotFound
		}
		return nil, fmt.Errorf("failed to load campaign: %w", err)
	}

	return &c, nil
}

// List returns the tenant's campaigns, newest first, optionally filtered by status.
func (r *campaignRepository) List(ctx context.Context, tenantID string, status *models.CampaignStatus) ([]*models.Campaign, error) {
	query := `SELECT ` + campaignColumns + ` FROM campaigns WHERE tenant_id = $1`
	args := []interface{}{tenantID}

	if status != nil {
		query += ` AND status = $2`
		args = append(args, *status)
	}
	query += ` ORDER BY created_at DESC`

	campaigns := []*models.Campaign{}
	if err := r.db.SelectContext(ctx, &campaigns, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list campaigns: %w", err)
	}

	return campaigns, nil
}

// ClaimNext atomically takes one unclaimed (or stale-claimed) pending/processing campaign.
// It returns nil when nothing is claimable.
func (r *campaignRepository) ClaimNext(ctx context.Context, workerID string, staleAfter time.Duration) (*models.Campaign, error) {
	query := `
		UPDATE campaigns c
		SET claimed_by = $1,
		    claimed_at = NOW(),
		    updated_at = NOW(),
		    status = CASE WHEN c.status = 'pending' THEN 'processing' ELSE c.status END
		WHERE c.id = (
			SELECT id FROM campaigns
			WHERE status IN ('pending', 'processing')
			  AND (claimed_by IS NULL OR claimed_at < NOW() - make_interval(secs => $2))
			  AND (not_before IS NULL OR not_before <= NOW())
			ORDER BY created_at ASC
			LIMIT 1
			FOR UPDATE SKIP LOCKED
		)
		AND c.status IN ('pending', 'processing')
		AND (c.claimed_by IS NULL OR c.claimed_at < NOW() - make_interval(secs => $2))
		AND (c.not_before IS NULL OR c.not_before <= NOW())
		RETURNING ` + campaignColumns

	var c models.Campaign
	if err := r.db.GetContext(ctx, &c, query, workerID, staleAfter.Seconds()); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to claim campaign: %w", err)
	}

	return &c, nil
}

// RefreshClaim extends the lease held by workerID.
func (r *campaignRepository) RefreshClaim(ctx context.Context, id, workerID string) error {
	query := `UPDATE campaigns SET claimed_at = NOW() WHERE id = $1 AND claimed_by = $2`

	res, err := r.db.ExecContext(ctx, query, id, workerID)
	if err != nil {
		return fmt.Errorf("failed to refresh claim: %w", err)
	}
	return requireRow(res, ErrClaimLost)
}

func (r *campaignRepository) ReleaseClaim(ctx context.Context, id, workerID string) error {
	query := `UPDATE campaigns SET claimed_by = NULL, claimed_at = NULL WHERE id = $1 AND claimed_by = $2`

	if _, err := r.db.ExecContext(ctx, query, id, workerID); err != nil {
		return fmt.Errorf("failed to release claim: %w", err)
	}
	return nil
}

// DeferClaim hands the campaign back but keeps every worker off it until retryAfter elapses.
func (r *campaignRepository) DeferClaim(ctx context.Context, id, workerID string, retryAfter time.Duration) error {
	query := `
		UPDATE campaigns
		SET claimed_by = NULL,
		    claimed_at = NULL,
		    not_before = NOW() + make_interval(secs => $3)
		WHERE id = $1 AND claimed_by = $2
	`

	res, err := r.db.ExecContext(ctx, query, id, workerID, retryAfter.Seconds())
	if err != nil {
		return fmt.Errorf("failed to defer claim: %w", err)
	}
	return requireRow(res, ErrClaimLost)
}

// Transition applies an operator lifecycle command with a conditional update on the current status.
func (r *campaignRepository) Transition(ctx context.Context, tenantID, id string, to models.CampaignStatus) (*models.Campaign, error) {
	sources := TransitionSourceStrings(to)
	if len(sources) == 0 {
		return nil, fmt.Errorf("unsupported transition target %q", to)
	}

	query := `
		UPDATE campaigns
		SET status = $3,
		    updated_at = NOW(),
		    completed_at = CASE WHEN $3::text = 'cancelled' THEN NOW() ELSE completed_at END
		WHERE id = $1 AND tenant_id = $2 AND status = ANY($4)
		RETURNING ` + campaignColumns

	var c models.Campaign
	err := r.db.GetContext(ctx, &c, query, id, tenantID, to, pq.Array(sources))
	if err == nil {
		return &c, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("failed to update campaign status: %w", err)
	}

	current, getErr := r.GetByID(ctx, tenantID, id)
	if getErr != nil {
		return nil, getErr
	}
	return nil, &InvalidTransitionError{From: current.Status, To: to}
}

// RecordAttempt increments processed and one outcome counter in a single statement.
func (r *campaignRepository) RecordAttempt(ctx context.Context, id, workerID string, outcome models.AttemptOutcome) (*models.Campaign, error) {
	success, failed := 0, 0
	switch outcome {
	case models.OutcomeSuccess:
		success = 1
	case models.OutcomeFailure:
		failed = 1
	default:
		return nil, fmt.Errorf("unknown attempt outcome %d", outcome)
	}

	query := `
		UPDATE campaigns
		SET processed = processed + 1,
		    success_count = success_count + $3,
		    failed_count = failed_count + $4,
		    claimed_at = NOW(),
		    updated_at = NOW()
		WHERE id = $1 AND claimed_by = $2 AND processed < contacts_count
		RETURNING ` + campaignColumns

	var c models.Campaign
	if err := r.db.GetContext(ctx, &c, query, id, workerID, success, failed); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrClaimLost
		}
		return nil, fmt.Errorf("failed to record attempt: %w", err)
	}

	return &c, nil
}

// MarkTerminal finalizes a live campaign and drops its claim. Already terminal campaigns are left untouched.
func (r *campaignRepository) MarkTerminal(ctx context.Context, id string, status models.CampaignStatus, errMsg *string) error {
	if !status.IsTerminal() {
		return fmt.Errorf("status %q is not terminal", status)
	}

	query := `
		UPDATE campaigns
		SET status = $2,
		    error = $3,
		    completed_at = NOW(),
		    updated_at = NOW(),
		    claimed_by = NULL,
		    claimed_at = NULL
		WHERE id = $1 AND status IN ('pending', 'processing', 'paused')
	`

	var msg sql.NullString
	if errMsg != nil {
		msg = sql.NullString{String: *errMsg, Valid: true}
	}

	if _, err := r.db.ExecContext(ctx, query, id, status, msg); err != nil {
		return fmt.Errorf("failed to mark campaign %s: %w", status, err)
	}

	return nil
}

func TransitionSourceStrings(to models.CampaignStatus) []string {
	sources := models.TransitionSources(to)
	out := make([]string, len(sources))
	for i, s := range sources {
		out[i] = string(s)
	}
	return out
}

func requireRow(res sql.Result, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return notFound
	}
	return nil
}
