package repository_test

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AdrianD28/whatsapp-marketing/internal/repository"
)

func TestRepositoryImpl_SubRepositories(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	tests := []struct {
		name     string
		validate func(t *testing.T, repo repository.Repository)
	}{
		{
			name: "sub repositories are not nil",
			validate: func(t *testing.T, repo repository.Repository) {
				assert.NotNil(t, repo.Campaign())
				assert.NotNil(t, repo.SendLog())
				assert.NotNil(t, repo.MessageEvent())
				assert.NotNil(t, repo.Credit())
				assert.NotNil(t, repo.Account())
				assert.NotNil(t, repo.Report())
			},
		},
		{
			name: "sub repositories return same instance",
			validate: func(t *testing.T, repo repository.Repository) {
				assert.Equal(t, repo.Campaign(), repo.Campaign())
				assert.Equal(t, repo.Credit(), repo.Credit())
			},
		},
		{
			name: "ping succeeds",
			validate: func(t *testing.T, repo repository.Repository) {
				assert.NoError(t, repo.Ping())
			},
		},
		{
			name: "campaign repository is callable",
			validate: func(t *testing.T, repo repository.Repository) {
				campaigns, err := repo.Campaign().List(context.Background(), "tenant-1", nil)
				require.NoError(t, err)
				assert.Empty(t, campaigns)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := repository.NewRepository(db)
			tt.validate(t, repo)
			cleanupTestData(t, db)
		})
	}
}

func TestRepositoryImpl_Ping_Failure(t *testing.T) {
	db, cleanup := setupTestDB(t)
	cleanup()

	repo := repository.NewRepository(db)
	assert.Error(t, repo.Ping())
}

func TestRepositoryImpl_WithTx(t *testing.T) {
	debit := regexp.QuoteMeta(`UPDATE credit_ledgers`)
	boom := errors.New("boom")

	tests := []struct {
		name    string
		setup   func(mock sqlmock.Sqlmock)
		fn      func(tx repository.Repository) error
		wantErr error
	}{
		{
			name: "commits when fn succeeds",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery(debit).WithArgs("tenant-1", int64(1)).
					WillReturnRows(sqlmock.NewRows([]string{"balance"}).AddRow(9))
				mock.ExpectCommit()
			},
			fn: func(tx repository.Repository) error {
				_, err := tx.Credit().Debit(context.Background(), "tenant-1", 1)
				return err
			},
		},
		{
			name: "rolls back when fn fails",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery(debit).WithArgs("tenant-1", int64(1)).
					WillReturnRows(sqlmock.NewRows([]string{"balance"}).AddRow(9))
				mock.ExpectRollback()
			},
			fn: func(tx repository.Repository) error {
				if _, err := tx.Credit().Debit(context.Background(), "tenant-1", 1); err != nil {
					return err
				}
				return boom
			},
			wantErr: boom,
		},
		{
			name: "nested call joins the outer transaction",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery(debit).WithArgs("tenant-1", int64(1)).
					WillReturnRows(sqlmock.NewRows([]string{"balance"}).AddRow(9))
				mock.ExpectCommit()
			},
			fn: func(tx repository.Repository) error {
				return tx.WithTx(context.Background(), func(inner repository.Repository) error {
					_, err := inner.Credit().Debit(context.Background(), "tenant-1", 1)
					return err
				})
			},
		},
		{
			name: "begin failure is returned",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin().WillReturnError(boom)
			},
			fn:      func(tx repository.Repository) error { return nil },
			wantErr: boom,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMockDB(t)
			tt.setup(mock)

			err := repository.NewRepository(db).WithTx(context.Background(), tt.fn)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
