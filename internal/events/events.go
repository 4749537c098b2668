package events

import "time"

// Event types
const (
	AccountOpened    = "account.opened"
	AccountClosed    = "account.closed"
	BalanceUsed      = "balance.used"
	BalanceCancelled = "balance.cancelled"
)

// Stream names
const (
	AccountEventsStream     = "account.events"
	TransactionEventsStream = "transaction.events"
)

// Base event structure
type Event struct {
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data"`
}

// Account events
type AccountOpenedEvent struct {
	AccountNumber string `json:"accountNumber"`
	OwnerID       int64  `json:"ownerId"`
	Balance       int64  `json:"balance"`
}

type AccountClosedEvent struct {
	AccountNumber string `json:"accountNumber"`
	OwnerID       int64  `json:"ownerId"`
}

// Transaction events
type BalanceChangedEvent struct {
	TransactionID string `json:"transactionId"`
	AccountNumber string `json:"accountNumber"`
	Amount        int64  `json:"amount"`
	NewBalance    int64  `json:"newBalance"`
}
