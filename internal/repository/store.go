package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Matilda0841/AccountSystem-ZB/internal/models"
)

// DBTX is satisfied by both *sql.DB and *sql.Tx, so every query method works
// inside and outside an explicit transaction.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Querier is the read/write contract the services require from the ledger
// store: lookup by id, by natural key and by owner relationship, plus the
// append and update operations.
type Querier interface {
	GetOwner(ctx context.Context, id int64) (*models.AccountOwner, error)
	GetAccountByID(ctx context.Context, id int64) (*models.Account, error)
	GetAccountByNumber(ctx context.Context, accountNumber string) (*models.Account, error)
	ListAccountsByOwner(ctx context.Context, ownerID int64) ([]models.Account, error)
	CountAccountsByOwner(ctx context.Context, ownerID int64) (int, error)
	LatestAccountNumber(ctx context.Context) (string, error)
	CreateAccount(ctx context.Context, account *models.Account) error
	UpdateAccount(ctx context.Context, account *models.Account) error
	CreateTransaction(ctx context.Context, transaction *models.Transaction) error
	GetTransactionByTransactionID(ctx context.Context, transactionID string) (*models.Transaction, error)
}

// Store is a Querier that can also run a function inside one database
// transaction. Every read-validate-mutate-append sequence in the services runs
// through ExecTx so a crash can never leave a debited balance without its
// audit record.
type Store interface {
	Querier
	ExecTx(ctx context.Context, fn func(Querier) error) error
}

// Queries runs the ledger SQL against any DBTX.
type Queries struct {
	db DBTX
}

// SQLStore implements Store on top of PostgreSQL.
type SQLStore struct {
	*Queries
	db *sql.DB
}

func NewStore(db *sql.DB) *SQLStore {
	return &SQLStore{Queries: &Queries{db: db}, db: db}
}

func (s *SQLStore) ExecTx(ctx context.Context, fn func(Querier) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	if err := fn(&Queries{db: tx}); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("tx error: %v, rollback error: %w", err, rbErr)
		}
		return err
	}
	return tx.Commit()
}
