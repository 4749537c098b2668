package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Matilda0841/AccountSystem-ZB/internal/models"
)

func (q *Queries) GetOwner(ctx context.Context, id int64) (*models.AccountOwner, error) {
	query := `
		SELECT id, name, created_at
		FROM account_owners
		WHERE id = $1
	`
	var owner models.AccountOwner
	err := q.db.QueryRowContext(ctx, query, id).Scan(&owner.ID, &owner.Name, &owner.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, models.ErrOwnerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get owner: %w", err)
	}
	return &owner, nil
}
