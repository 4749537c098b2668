package models

import "time"

// AccountView is the read-optimised projection of an account kept in Redis.
// OwnerID is populated for ownership checks but never serialised to the API
// response.
type AccountView struct {
	ID             int64      `json:"id"`
	OwnerID        int64      `json:"-"`
	AccountNumber  string     `json:"accountNumber"`
	Status         string     `json:"status"`
	Balance        int64      `json:"balance"`
	RegisteredAt   time.Time  `json:"registeredTimestamp"`
	UnregisteredAt *time.Time `json:"unregisteredTimestamp,omitempty"`
}

// AccountToView converts the Postgres write model to the Redis read view.
func AccountToView(a *Account) *AccountView {
	return &AccountView{
		ID:             a.ID,
		OwnerID:        a.OwnerID,
		AccountNumber:  a.AccountNumber,
		Status:         string(a.Status),
		Balance:        a.Balance,
		RegisteredAt:   a.RegisteredAt,
		UnregisteredAt: a.UnregisteredAt,
	}
}
