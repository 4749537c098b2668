package service

import (
	"context"
	"log"
	"time"

	"github.com/Matilda0841/AccountSystem-ZB/internal/events"
	"github.com/Matilda0841/AccountSystem-ZB/internal/lock"
	"github.com/Matilda0841/AccountSystem-ZB/internal/models"
	"github.com/Matilda0841/AccountSystem-ZB/internal/repository"
)

// cancelCutoff returns the oldest transacted-at still cancellable: exactly one
// year before now. A transaction timestamped on the cutoff itself is allowed.
func cancelCutoff(now time.Time) time.Time {
	return now.AddDate(-1, 0, 0)
}

// TransactionService owns balance mutation: it validates and applies use
// (debit) and cancel (credit) operations, and appends audit transactions for
// both successful and failed attempts. The debit/credit and the SUCCESS audit
// append run inside one database transaction under the per-account lock.
type TransactionService struct {
	store     repository.Store
	guard     lock.Guard
	cache     AccountCache
	publisher EventPublisher
}

func NewTransactionService(
	store repository.Store,
	guard lock.Guard,
	cache AccountCache,
	publisher EventPublisher,
) *TransactionService {
	return &TransactionService{
		store:     store,
		guard:     guard,
		cache:     cache,
		publisher: publisher,
	}
}

// UseBalance debits the account. Validation order: owner exists, account
// exists, ownership, account in use, sufficient balance — first violation
// aborts before any mutation.
func (s *TransactionService) UseBalance(ctx context.Context, ownerID int64, accountNumber string, amount int64) (*models.Transaction, error) {
	if _, err := s.store.GetOwner(ctx, ownerID); err != nil {
		return nil, err
	}

	var account *models.Account
	var transaction *models.Transaction
	err := s.guard.WithLock(ctx, accountLockKey(accountNumber), func() error {
		return s.store.ExecTx(ctx, func(q repository.Querier) error {
			var err error
			account, err = q.GetAccountByNumber(ctx, accountNumber)
			if err != nil {
				return err
			}
			if account.OwnerID != ownerID {
				return models.ErrOwnershipMismatch
			}
			if account.Status != models.AccountInUse {
				return models.ErrAccountClosed
			}
			if account.Balance < amount {
				return models.ErrInsufficientBalance
			}

			account.Balance -= amount
			if err := q.UpdateAccount(ctx, account); err != nil {
				return err
			}
			transaction = newTransaction(models.TransactionUse, models.ResultSuccess, amount, account)
			return q.CreateTransaction(ctx, transaction)
		})
	})
	if err != nil {
		return nil, err
	}

	s.cache.Put(ctx, models.AccountToView(account))
	if err := s.publisher.PublishBalanceUsed(ctx, events.BalanceChangedEvent{
		TransactionID: transaction.TransactionID,
		AccountNumber: account.AccountNumber,
		Amount:        amount,
		NewBalance:    account.Balance,
	}); err != nil {
		log.Printf("Failed to publish balance.used event: %v", err)
	}
	return transaction, nil
}

// CancelBalance reverses a prior use in full. Validation order: prior
// transaction exists, account exists, transaction belongs to the account,
// amount equals the original amount, original is within the cancel window.
// Repeated cancels of the same transaction id are not deduplicated here.
func (s *TransactionService) CancelBalance(ctx context.Context, transactionID, accountNumber string, amount int64) (*models.Transaction, error) {
	prior, err := s.store.GetTransactionByTransactionID(ctx, transactionID)
	if err != nil {
		return nil, err
	}

	var account *models.Account
	var transaction *models.Transaction
	err = s.guard.WithLock(ctx, accountLockKey(accountNumber), func() error {
		return s.store.ExecTx(ctx, func(q repository.Querier) error {
			var err error
			account, err = q.GetAccountByNumber(ctx, accountNumber)
			if err != nil {
				return err
			}
			if prior.AccountID != account.ID {
				return models.ErrTransactionAccountMismatch
			}
			if prior.Amount != amount {
				return models.ErrCancelMustBeFull
			}
			if prior.TransactedAt.Before(cancelCutoff(time.Now().UTC())) {
				return models.ErrCancelWindowExpired
			}

			account.Balance += amount
			if err := q.UpdateAccount(ctx, account); err != nil {
				return err
			}
			transaction = newTransaction(models.TransactionCancel, models.ResultSuccess, amount, account)
			return q.CreateTransaction(ctx, transaction)
		})
	})
	if err != nil {
		return nil, err
	}

	s.cache.Put(ctx, models.AccountToView(account))
	if err := s.publisher.PublishBalanceCancelled(ctx, events.BalanceChangedEvent{
		TransactionID: transaction.TransactionID,
		AccountNumber: account.AccountNumber,
		Amount:        amount,
		NewBalance:    account.Balance,
	}); err != nil {
		log.Printf("Failed to publish balance.cancelled event: %v", err)
	}
	return transaction, nil
}

// RecordFailedUse appends a FAILURE audit record after a rejected use. It is a
// pure audit append: no ownership or sufficiency re-validation, no balance
// mutation, no balance lock.
func (s *TransactionService) RecordFailedUse(ctx context.Context, accountNumber string, amount int64) (*models.Transaction, error) {
	return s.recordFailure(ctx, models.TransactionUse, accountNumber, amount)
}

// RecordFailedCancel appends a FAILURE audit record after a rejected cancel.
func (s *TransactionService) RecordFailedCancel(ctx context.Context, accountNumber string, amount int64) (*models.Transaction, error) {
	return s.recordFailure(ctx, models.TransactionCancel, accountNumber, amount)
}

func (s *TransactionService) recordFailure(ctx context.Context, txType models.TransactionType, accountNumber string, amount int64) (*models.Transaction, error) {
	account, err := s.store.GetAccountByNumber(ctx, accountNumber)
	if err != nil {
		return nil, err
	}
	// BalanceSnapshot records the unchanged balance at the time of the failed
	// attempt.
	transaction := newTransaction(txType, models.ResultFailure, amount, account)
	if err := s.store.CreateTransaction(ctx, transaction); err != nil {
		return nil, err
	}
	return transaction, nil
}

func newTransaction(txType models.TransactionType, result models.TransactionResult, amount int64, account *models.Account) *models.Transaction {
	return &models.Transaction{
		TransactionID:   newTransactionID(),
		AccountID:       account.ID,
		Type:            txType,
		Result:          result,
		Amount:          amount,
		BalanceSnapshot: account.Balance,
		TransactedAt:    time.Now().UTC(),
	}
}
