package repository_test

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AdrianD28/whatsapp-marketing/internal/models"
	"github.com/AdrianD28/whatsapp-marketing/internal/repository"
)

func TestCampaignRepository_Create(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	repo := repository.NewCampaignRepository(db)
	ctx := context.Background()

	tests := []struct {
		name    string
		setup   func()
		tenant  string
		batch   string
		wantErr error
	}{
		{
			name:   "new batch is created pending",
			tenant: "tenant-1",
			batch:  "batch-1",
		},
		{
			name: "duplicate batch for same tenant",
			setup: func() {
				require.NoError(t, repo.Create(ctx, newTestCampaign("tenant-1", "batch-1", 2)))
			},
			tenant:  "tenant-1",
			batch:   "batch-1",
			wantErr: repository.ErrDuplicateBatch,
		},
		{
			name: "same batch for another tenant",
			setup: func() {
				require.NoError(t, repo.Create(ctx, newTestCampaign("tenant-1", "batch-1", 2)))
			},
			tenant: "tenant-2",
			batch:  "batch-1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer cleanupTestData(t, db)
			if tt.setup != nil {
				tt.setup()
			}

			c := newTestCampaign(tt.tenant, tt.batch, 3)
			err := repo.Create(ctx, c)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)

			stored, err := repo.GetByID(ctx, tt.tenant, c.ID)
			require.NoError(t, err)
			assert.Equal(t, models.CampaignStatusPending, stored.Status)
			assert.Equal(t, 3, stored.ContactsCount)
			assert.Len(t, stored.Contacts, 3)
			assert.Equal(t, "spring_promo", stored.Template.Name)
			assert.Zero(t, stored.Processed)
		})
	}
}

func TestCampaignRepository_GetByID_TenantScoped(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	repo := repository.NewCampaignRepository(db)
	ctx := context.Background()

	c := newTestCampaign("tenant-1", "batch-1", 1)
	require.NoError(t, repo.Create(ctx, c))

	_, err := repo.GetByID(ctx, "tenant-2", c.ID)
	assert.ErrorIs(t, err, repository.ErrCampaignNotFound)

	loaded, err := repo.Load(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "tenant-1", loaded.TenantID)
}

func TestCampaignRepository_ClaimNext_SingleClaim(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	repo := repository.NewCampaignRepository(db)
	ctx := context.Background()

	c := newTestCampaign("tenant-1", "batch-1", 5)
	require.NoError(t, repo.Create(ctx, c))

	const workers = 8
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		claimed []string
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(workerID string) {
			defer wg.Done()
			got, err := repo.ClaimNext(ctx, workerID, time.Minute)
			assert.NoError(t, err)
			if got != nil {
				mu.Lock()
				claimed = append(claimed, workerID)
				mu.Unlock()
			}
		}(fmt.Sprintf("worker-%d", i))
	}
	wg.Wait()

	require.Len(t, claimed, 1)

	stored, err := repo.GetByID(ctx, "tenant-1", c.ID)
	require.NoError(t, err)
	assert.Equal(t, models.CampaignStatusProcessing, stored.Status)
	assert.Equal(t, claimed[0], stored.ClaimedBy.String)
}

func TestCampaignRepository_ClaimNext_SkipsPausedAndStale(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	repo := repository.NewCampaignRepository(db)
	ctx := context.Background()

	c := newTestCampaign("tenant-1", "batch-1", 5)
	require.NoError(t, repo.Create(ctx, c))

	got, err := repo.ClaimNext(ctx, "worker-a", time.Minute)
	require.NoError(t, err)
	require.NotNil(t, got)

	got, err = repo.ClaimNext(ctx, "worker-b", time.Minute)
	require.NoError(t, err)
	assert.Nil(t, got, "claim is still fresh")

	_, err = db.Exec(`UPDATE campaigns SET claimed_at = NOW() - INTERVAL '10 minutes' WHERE id = $1`, c.ID)
	require.NoError(t, err)

	got, err = repo.ClaimNext(ctx, "worker-b", time.Minute)
	require.NoError(t, err)
	require.NotNil(t, got, "stale claim is taken over")
	assert.Equal(t, "worker-b", got.ClaimedBy.String)

	_, err = repo.Transition(ctx, "tenant-1", c.ID, models.CampaignStatusPaused)
	require.NoError(t, err)
	require.NoError(t, repo.ReleaseClaim(ctx, c.ID, "worker-b"))

	got, err = repo.ClaimNext(ctx, "worker-c", time.Minute)
	require.NoError(t, err)
	assert.Nil(t, got, "paused campaigns are not claimable")
}

func TestCampaignRepository_DeferClaim(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	repo := repository.NewCampaignRepository(db)
	ctx := context.Background()

	c := newTestCampaign("tenant-1", "batch-1", 3)
	require.NoError(t, repo.Create(ctx, c))

	_, err := repo.ClaimNext(ctx, "worker-a", time.Minute)
	require.NoError(t, err)

	assert.ErrorIs(t, repo.DeferClaim(ctx, c.ID, "worker-b", time.Minute), repository.ErrClaimLost)
	require.NoError(t, repo.DeferClaim(ctx, c.ID, "worker-a", time.Minute))

	got, err := repo.ClaimNext(ctx, "worker-b", time.Minute)
	require.NoError(t, err)
	assert.Nil(t, got, "deferred campaign is hidden")

	loaded, err := repo.Load(ctx, c.ID)
	require.NoError(t, err)
	assert.False(t, loaded.ClaimedBy.Valid)
	assert.Equal(t, models.CampaignStatusProcessing, loaded.Status)

	_, err = db.Exec(`UPDATE campaigns SET not_before = NOW() - INTERVAL '1 second' WHERE id = $1`, c.ID)
	require.NoError(t, err)

	got, err = repo.ClaimNext(ctx, "worker-b", time.Minute)
	require.NoError(t, err)
	require.NotNil(t, got, "claimable again once the deferral elapses")
	assert.Equal(t, "worker-b", got.ClaimedBy.String)
}

func TestCampaignRepository_RecordAttempt(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	repo := repository.NewCampaignRepository(db)
	ctx := context.Background()

	c := newTestCampaign("tenant-1", "batch-1", 3)
	require.NoError(t, repo.Create(ctx, c))
	_, err := repo.ClaimNext(ctx, "worker-a", time.Minute)
	require.NoError(t, err)

	_, err = repo.RecordAttempt(ctx, c.ID, "worker-b", models.OutcomeSuccess)
	assert.ErrorIs(t, err, repository.ErrClaimLost)

	outcomes := []models.AttemptOutcome{models.OutcomeSuccess, models.OutcomeFailure, models.OutcomeSuccess}
	var last *models.Campaign
	for _, o := range outcomes {
		last, err = repo.RecordAttempt(ctx, c.ID, "worker-a", o)
		require.NoError(t, err)
		assert.True(t, last.Consistent())
	}
	assert.Equal(t, 3, last.Processed)
	assert.Equal(t, 2, last.SuccessCount)
	assert.Equal(t, 1, last.FailedCount)

	_, err = repo.RecordAttempt(ctx, c.ID, "worker-a", models.OutcomeSuccess)
	assert.ErrorIs(t, err, repository.ErrClaimLost, "processed never exceeds contacts_count")
}

func TestCampaignRepository_Transition(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	repo := repository.NewCampaignRepository(db)
	ctx := context.Background()

	tests := []struct {
		name     string
		claim    bool
		steps    []models.CampaignStatus
		target   models.CampaignStatus
		wantFrom models.CampaignStatus
		wantErr  bool
	}{
		{name: "pause processing", claim: true, target: models.CampaignStatusPaused},
		{name: "pause pending", target: models.CampaignStatusPaused, wantErr: true, wantFrom: models.CampaignStatusPending},
		{name: "resume paused", claim: true, steps: []models.CampaignStatus{models.CampaignStatusPaused}, target: models.CampaignStatusProcessing},
		{name: "resume processing", claim: true, target: models.CampaignStatusProcessing, wantErr: true, wantFrom: models.CampaignStatusProcessing},
		{name: "cancel pending", target: models.CampaignStatusCancelled},
		{name: "cancel paused", claim: true, steps: []models.CampaignStatus{models.CampaignStatusPaused}, target: models.CampaignStatusCancelled},
		{name: "cancel cancelled", steps: []models.CampaignStatus{models.CampaignStatusCancelled}, target: models.CampaignStatusCancelled, wantErr: true, wantFrom: models.CampaignStatusCancelled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer cleanupTestData(t, db)

			c := newTestCampaign("tenant-1", "batch-1", 2)
			require.NoError(t, repo.Create(ctx, c))
			if tt.claim {
				_, err := repo.ClaimNext(ctx, "worker-a", time.Minute)
				require.NoError(t, err)
			}
			for _, s := range tt.steps {
				_, err := repo.Transition(ctx, "tenant-1", c.ID, s)
				require.NoError(t, err)
			}

			got, err := repo.Transition(ctx, "tenant-1", c.ID, tt.target)
			if tt.wantErr {
				var transitionErr *repository.InvalidTransitionError
				require.True(t, errors.As(err, &transitionErr))
				assert.Equal(t, tt.wantFrom, transitionErr.From)
				assert.Equal(t, tt.target, transitionErr.To)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.target, got.Status)
			if tt.target == models.CampaignStatusCancelled {
				assert.True(t, got.CompletedAt.Valid)
			}
		})
	}

	_, err := repo.Transition(ctx, "tenant-1", "00000000-0000-0000-0000-000000000000", models.CampaignStatusPaused)
	assert.ErrorIs(t, err, repository.ErrCampaignNotFound)
}

func TestCampaignRepository_MarkTerminal(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	repo := repository.NewCampaignRepository(db)
	ctx := context.Background()

	c := newTestCampaign("tenant-1", "batch-1", 2)
	require.NoError(t, repo.Create(ctx, c))
	_, err := repo.ClaimNext(ctx, "worker-a", time.Minute)
	require.NoError(t, err)

	require.NoError(t, repo.MarkTerminal(ctx, c.ID, models.CampaignStatusFailed, ptr("access token expired")))

	stored, err := repo.GetByID(ctx, "tenant-1", c.ID)
	require.NoError(t, err)
	assert.Equal(t, models.CampaignStatusFailed, stored.Status)
	assert.Equal(t, "access token expired", stored.Error.String)
	assert.True(t, stored.CompletedAt.Valid)
	assert.False(t, stored.ClaimedBy.Valid)

	require.NoError(t, repo.MarkTerminal(ctx, c.ID, models.CampaignStatusCompleted, nil))
	stored, err = repo.GetByID(ctx, "tenant-1", c.ID)
	require.NoError(t, err)
	assert.Equal(t, models.CampaignStatusFailed, stored.Status, "terminal campaigns are immutable")

	assert.Error(t, repo.MarkTerminal(ctx, c.ID, models.CampaignStatusPaused, nil))
}

func TestCampaignRepository_List(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	repo := repository.NewCampaignRepository(db)
	ctx := context.Background()

	first := newTestCampaign("tenant-1", "batch-1", 1)
	require.NoError(t, repo.Create(ctx, first))
	time.Sleep(5 * time.Millisecond)
	second := newTestCampaign("tenant-1", "batch-2", 1)
	require.NoError(t, repo.Create(ctx, second))
	require.NoError(t, repo.Create(ctx, newTestCampaign("tenant-2", "batch-3", 1)))
	_, err := repo.Transition(ctx, "tenant-1", second.ID, models.CampaignStatusCancelled)
	require.NoError(t, err)

	all, err := repo.List(ctx, "tenant-1", nil)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, second.ID, all[0].ID)

	status := models.CampaignStatusPending
	pending, err := repo.List(ctx, "tenant-1", &status)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, first.ID, pending[0].ID)
}

func TestCampaignRepository_Transition_InvalidFromCurrentStatus(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(regexp.QuoteMeta(`UPDATE campaigns`)).
		WithArgs("campaign-1", "tenant-1", models.CampaignStatusPaused, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery(regexp.QuoteMeta(`FROM campaigns WHERE id = $1 AND tenant_id = $2`)).
		WithArgs("campaign-1", "tenant-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "tenant_id", "status"}).
			AddRow("campaign-1", "tenant-1", "completed"))

	_, err := repository.NewCampaignRepository(db).Transition(context.Background(), "tenant-1", "campaign-1", models.CampaignStatusPaused)

	var transitionErr *repository.InvalidTransitionError
	require.True(t, errors.As(err, &transitionErr))
	assert.Equal(t, models.CampaignStatusCompleted, transitionErr.From)
	assert.Equal(t, models.CampaignStatusPaused, transitionErr.To)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCampaignRepository_DeferClaim_Args(t *testing.T) {
	tests := []struct {
		name     string
		affected int64
		wantErr  error
	}{
		{name: "claim held", affected: 1},
		{name: "claim lost", affected: 0, wantErr: repository.ErrClaimLost},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMockDB(t)
			mock.ExpectExec(regexp.QuoteMeta(`not_before = NOW() + make_interval(secs => $3)`)).
				WithArgs("campaign-1", "worker-a", float64(30)).
				WillReturnResult(sqlmock.NewResult(0, tt.affected))

			err := repository.NewCampaignRepository(db).DeferClaim(context.Background(), "campaign-1", "worker-a", 30*time.Second)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
