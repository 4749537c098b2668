package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/Matilda0841/AccountSystem-ZB/internal/events"
	"github.com/Matilda0841/AccountSystem-ZB/internal/lock"
	"github.com/Matilda0841/AccountSystem-ZB/internal/models"
	"github.com/Matilda0841/AccountSystem-ZB/internal/repository"
)

const (
	// MaxAccountsPerOwner caps accounts per owner, counted regardless of status.
	MaxAccountsPerOwner = 10

	// BaseAccountNumber is allocated when no account exists anywhere.
	BaseAccountNumber = 1000000000

	// allocationLockKey serializes account-number allocation system-wide.
	allocationLockKey = "lock:account-number"
)

func accountLockKey(accountNumber string) string {
	return "lock:account:" + accountNumber
}

// EventPublisher publishes domain events after successful mutations.
// Publish failures are logged by the services and never fail the operation.
type EventPublisher interface {
	PublishAccountOpened(ctx context.Context, event events.AccountOpenedEvent) error
	PublishAccountClosed(ctx context.Context, event events.AccountClosedEvent) error
	PublishBalanceUsed(ctx context.Context, event events.BalanceChangedEvent) error
	PublishBalanceCancelled(ctx context.Context, event events.BalanceChangedEvent) error
}

// AccountCache is the write-through read-model cache for account views.
type AccountCache interface {
	Put(ctx context.Context, view *models.AccountView)
	Get(ctx context.Context, id int64) (*models.AccountView, bool)
}

// AccountService owns the account lifecycle: opening, closing and listing
// accounts, and allocating account numbers. Balance mutation lives in
// TransactionService.
type AccountService struct {
	store             repository.Store
	guard             lock.Guard
	cache             AccountCache
	publisher         EventPublisher
	minInitialBalance int64
}

func NewAccountService(
	store repository.Store,
	guard lock.Guard,
	cache AccountCache,
	publisher EventPublisher,
	minInitialBalance int64,
) *AccountService {
	return &AccountService{
		store:             store,
		guard:             guard,
		cache:             cache,
		publisher:         publisher,
		minInitialBalance: minInitialBalance,
	}
}

// Open creates an account for the owner with the given initial balance.
// The next account number is the latest allocated number plus one, starting
// from BaseAccountNumber; the read-increment-write sequence runs under the
// global allocation lock so concurrent openers can never collide.
func (s *AccountService) Open(ctx context.Context, ownerID, initialBalance int64) (*models.Account, error) {
	if _, err := s.store.GetOwner(ctx, ownerID); err != nil {
		return nil, err
	}
	if initialBalance < s.minInitialBalance {
		return nil, models.ErrInitialBalanceTooSmall
	}

	var account *models.Account
	err := s.guard.WithLock(ctx, allocationLockKey, func() error {
		return s.store.ExecTx(ctx, func(q repository.Querier) error {
			count, err := q.CountAccountsByOwner(ctx, ownerID)
			if err != nil {
				return err
			}
			if count >= MaxAccountsPerOwner {
				return models.ErrAccountLimitExceeded
			}

			accountNumber, err := s.nextAccountNumber(ctx, q)
			if err != nil {
				return err
			}

			account = &models.Account{
				OwnerID:       ownerID,
				AccountNumber: accountNumber,
				Status:        models.AccountInUse,
				Balance:       initialBalance,
				RegisteredAt:  time.Now().UTC(),
			}
			return q.CreateAccount(ctx, account)
		})
	})
	if err != nil {
		return nil, err
	}

	s.cache.Put(ctx, models.AccountToView(account))
	if err := s.publisher.PublishAccountOpened(ctx, events.AccountOpenedEvent{
		AccountNumber: account.AccountNumber,
		OwnerID:       account.OwnerID,
		Balance:       account.Balance,
	}); err != nil {
		log.Printf("Failed to publish account.opened event: %v", err)
	}
	return account, nil
}

func (s *AccountService) nextAccountNumber(ctx context.Context, q repository.Querier) (string, error) {
	latest, err := q.LatestAccountNumber(ctx)
	if err != nil {
		return "", err
	}
	next := int64(BaseAccountNumber)
	if latest != "" {
		parsed, err := parseAccountNumber(latest)
		if err != nil {
			return "", err
		}
		next = parsed + 1
	}
	return fmt.Sprintf("%010d", next), nil
}

// Close unregisters the account. Validation order is fixed: ownership,
// then already-closed, then balance-empty.
func (s *AccountService) Close(ctx context.Context, ownerID int64, accountNumber string) (*models.Account, error) {
	if _, err := s.store.GetOwner(ctx, ownerID); err != nil {
		return nil, err
	}

	var account *models.Account
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
			if account.Status == models.AccountUnregistered {
				return models.ErrAccountAlreadyClosed
			}
			if account.Balance > 0 {
				return models.ErrBalanceNotEmpty
			}

			now := time.Now().UTC()
			account.Status = models.AccountUnregistered
			account.UnregisteredAt = &now
			return q.UpdateAccount(ctx, account)
		})
	})
	if err != nil {
		return nil, err
	}

	s.cache.Put(ctx, models.AccountToView(account))
	if err := s.publisher.PublishAccountClosed(ctx, events.AccountClosedEvent{
		AccountNumber: account.AccountNumber,
		OwnerID:       account.OwnerID,
	}); err != nil {
		log.Printf("Failed to publish account.closed event: %v", err)
	}
	return account, nil
}

// ListByOwner returns the owner's accounts in storage-insertion order.
func (s *AccountService) ListByOwner(ctx context.Context, ownerID int64) ([]models.Account, error) {
	if _, err := s.store.GetOwner(ctx, ownerID); err != nil {
		return nil, err
	}
	return s.store.ListAccountsByOwner(ctx, ownerID)
}

// GetByID returns an account snapshot by internal id, consulting the view
// cache first and warming it on a miss.
func (s *AccountService) GetByID(ctx context.Context, id int64) (*models.AccountView, error) {
	if view, ok := s.cache.Get(ctx, id); ok {
		return view, nil
	}
	account, err := s.store.GetAccountByID(ctx, id)
	if err != nil {
		return nil, err
	}
	view := models.AccountToView(account)
	s.cache.Put(ctx, view)
	return view, nil
}
