package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Matilda0841/AccountSystem-ZB/internal/models"
)

// CreateTransaction appends one audit record. Transactions are immutable once
// written; there is no update or delete path.
func (q *Queries) CreateTransaction(ctx context.Context, transaction *models.Transaction) error {
	query := `
		INSERT INTO transactions (transaction_id, account_id, type, result, amount, balance_snapshot, transacted_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	err := q.db.QueryRowContext(ctx, query,
		transaction.TransactionID, transaction.AccountID, transaction.Type,
		transaction.Result, transaction.Amount, transaction.BalanceSnapshot,
		transaction.TransactedAt,
	).Scan(&transaction.ID)
	if err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	return nil
}

func (q *Queries) GetTransactionByTransactionID(ctx context.Context, transactionID string) (*models.Transaction, error) {
	query := `
		SELECT id, transaction_id, account_id, type, result, amount, balance_snapshot, transacted_at
		FROM transactions
		WHERE transaction_id = $1
	`
	var transaction models.Transaction
	err := q.db.QueryRowContext(ctx, query, transactionID).Scan(
		&transaction.ID, &transaction.TransactionID, &transaction.AccountID,
		&transaction.Type, &transaction.Result, &transaction.Amount,
		&transaction.BalanceSnapshot, &transaction.TransactedAt,
	)
	if err == sql.ErrNoRows {
		return nil, models.ErrTransactionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}
	return &transaction, nil
}
