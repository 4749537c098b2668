package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Matilda0841/AccountSystem-ZB/internal/models"
)

const accountColumns = `id, owner_id, account_number, status, balance, registered_at, unregistered_at`

func scanAccount(row *sql.Row) (*models.Account, error) {
	var account models.Account
	var unregisteredAt sql.NullTime
	err := row.Scan(
		&account.ID, &account.OwnerID, &account.AccountNumber, &account.Status,
		&account.Balance, &account.RegisteredAt, &unregisteredAt,
	)
	if err != nil {
		return nil, err
	}
	if unregisteredAt.Valid {
		account.UnregisteredAt = &unregisteredAt.Time
	}
	return &account, nil
}

func (q *Queries) GetAccountByID(ctx context.Context, id int64) (*models.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1`
	account, err := scanAccount(q.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, models.ErrAccountNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return account, nil
}

func (q *Queries) GetAccountByNumber(ctx context.Context, accountNumber string) (*models.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_number = $1`
	account, err := scanAccount(q.db.QueryRowContext(ctx, query, accountNumber))
	if err == sql.ErrNoRows {
		return nil, models.ErrAccountNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return account, nil
}

// ListAccountsByOwner returns the owner's accounts in insertion order.
func (q *Queries) ListAccountsByOwner(ctx context.Context, ownerID int64) ([]models.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE owner_id = $1 ORDER BY id`
	rows, err := q.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	defer rows.Close()

	var accounts []models.Account
	for rows.Next() {
		var account models.Account
		var unregisteredAt sql.NullTime
		if err := rows.Scan(
			&account.ID, &account.OwnerID, &account.AccountNumber, &account.Status,
			&account.Balance, &account.RegisteredAt, &unregisteredAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		if unregisteredAt.Valid {
			account.UnregisteredAt = &unregisteredAt.Time
		}
		accounts = append(accounts, account)
	}
	return accounts, rows.Err()
}

// CountAccountsByOwner counts the owner's accounts regardless of status;
// closed accounts still count against the per-owner cap.
func (q *Queries) CountAccountsByOwner(ctx context.Context, ownerID int64) (int, error) {
	query := `SELECT COUNT(*) FROM accounts WHERE owner_id = $1`
	var count int
	if err := q.db.QueryRowContext(ctx, query, ownerID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count accounts: %w", err)
	}
	return count, nil
}

// LatestAccountNumber returns the number of the most recently created account,
// or "" when no account exists anywhere. Allocation is monotonic, so the
// latest row also carries the highest number.
func (q *Queries) LatestAccountNumber(ctx context.Context) (string, error) {
	query := `SELECT account_number FROM accounts ORDER BY id DESC LIMIT 1`
	var accountNumber string
	err := q.db.QueryRowContext(ctx, query).Scan(&accountNumber)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get latest account number: %w", err)
	}
	return accountNumber, nil
}

func (q *Queries) CreateAccount(ctx context.Context, account *models.Account) error {
	query := `
		INSERT INTO accounts (owner_id, account_number, status, balance, registered_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	err := q.db.QueryRowContext(ctx, query,
		account.OwnerID, account.AccountNumber, account.Status,
		account.Balance, account.RegisteredAt,
	).Scan(&account.ID)
	if err != nil {
		return fmt.Errorf("failed to create account: %w", err)
	}
	return nil
}

// UpdateAccount persists balance, status and the unregistered timestamp.
// Accounts are never deleted; closure is a status transition.
func (q *Queries) UpdateAccount(ctx context.Context, account *models.Account) error {
	query := `
		UPDATE accounts
		SET status = $2, balance = $3, unregistered_at = $4
		WHERE id = $1
	`
	var unregisteredAt sql.NullTime
	if account.UnregisteredAt != nil {
		unregisteredAt = sql.NullTime{Time: *account.UnregisteredAt, Valid: true}
	}
	result, err := q.db.ExecContext(ctx, query, account.ID, account.Status, account.Balance, unregisteredAt)
	if err != nil {
		return fmt.Errorf("failed to update account: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rows == 0 {
		return models.ErrAccountNotFound
	}
	return nil
}
