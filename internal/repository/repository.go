package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// DBTX is satisfied by both *sqlx.DB and *sqlx.Tx.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	QueryRowxContext(ctx context.Context, query string, args ...interface{}) *sqlx.Row
}

// repositoryImpl is the concrete implementation of Repository interface.
type repositoryImpl struct {
	db           DBTX
	campaign     CampaignRepository
	sendLog      SendLogRepository
	messageEvent MessageEventRepository
	credit       CreditRepository
	account      AccountRepository
	report       ReportRepository
}

// NewRepository creates a new repository instance.
func NewRepository(db *sqlx.DB) Repository {
	return newRepository(db)
}

func newRepository(db DBTX) *repositoryImpl {
	return &repositoryImpl{
		db:           db,
		campaign:     NewCampaignRepository(db),
		sendLog:      NewSendLogRepository(db),
		messageEvent: NewMessageEventRepository(db),
		credit:       NewCreditRepository(db),
		account:      NewAccountRepository(db),
		report:       NewReportRepository(db),
	}
}

func (r *repositoryImpl) Campaign() CampaignRepository { return r.campaign }

func (r *repositoryImpl) SendLog() SendLogRepository { return r.sendLog }

func (r *repositoryImpl) MessageEvent() MessageEventRepository { return r.messageEvent }

func (r *repositoryImpl) Credit() CreditRepository { return r.credit }

func (r *repositoryImpl) Account() AccountRepository { return r.account }

func (r *repositoryImpl) Report() ReportRepository { return r.report }

// WithTx runs fn against a repository bound to one transaction. fn's error
// rolls everything back. Nested calls join the enclosing transaction.
func (r *repositoryImpl) WithTx(ctx context.Context, fn func(Repository) error) error {
	return withTx(ctx, r.db, func(tx DBTX) error {
		return fn(newRepository(tx))
	})
}

// Ping checks if the database connection is healthy.
func (r *repositoryImpl) Ping() error {
	db, ok := r.db.(*sqlx.DB)
	if !ok {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	return db.PingContext(ctx)
}

func withTx(ctx context.Context, db DBTX, fn func(DBTX) error) error {
	conn, ok := db.(*sqlx.DB)
	if !ok {
		return fn(db)
	}

	tx, err := conn.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			return fmt.Errorf("%w (rollback failed: %v)", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
