package models

import "time"

type AccountStatus string

const (
	AccountInUse        AccountStatus = "IN_USE"
	AccountUnregistered AccountStatus = "UNREGISTERED"
)

type TransactionType string

const (
	TransactionUse    TransactionType = "USE"
	TransactionCancel TransactionType = "CANCEL"
)

type TransactionResult string

const (
	ResultSuccess TransactionResult = "SUCCESS"
	ResultFailure TransactionResult = "FAILURE"
)

// AccountOwner is provisioned out of band; the service only reads it.
type AccountOwner struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdTimestamp"`
}

type Account struct {
	ID             int64         `json:"id"`
	OwnerID        int64         `json:"-"`
	AccountNumber  string        `json:"accountNumber"`
	Status         AccountStatus `json:"status"`
	Balance        int64         `json:"balance"`
	RegisteredAt   time.Time     `json:"registeredTimestamp"`
	UnregisteredAt *time.Time    `json:"unregisteredTimestamp,omitempty"`
}

// Transaction is an append-only audit record of one balance-affecting attempt,
// successful or not. BalanceSnapshot is the account balance after a successful
// operation, or the unchanged balance at the time of a failed one.
type Transaction struct {
	ID              int64             `json:"-"`
	TransactionID   string            `json:"transactionId"`
	AccountID       int64             `json:"-"`
	Type            TransactionType   `json:"type"`
	Result          TransactionResult `json:"result"`
	Amount          int64             `json:"amount"`
	BalanceSnapshot int64             `json:"balanceSnapshot"`
	TransactedAt    time.Time         `json:"transactedTimestamp"`
}
