package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/Matilda0841/AccountSystem-ZB/internal/events"
	"github.com/Matilda0841/AccountSystem-ZB/internal/models"
	"github.com/Matilda0841/AccountSystem-ZB/internal/repository"
)

// memStore is an in-memory repository.Store. It returns copies so service
// mutations only become visible through UpdateAccount/CreateTransaction, like
// the real store.
type memStore struct {
	owners        map[int64]models.AccountOwner
	accounts      map[int64]models.Account
	transactions  []models.Transaction
	nextAccountID int64
	nextRowID     int64
}

func newMemStore() *memStore {
	return &memStore{
		owners:   make(map[int64]models.AccountOwner),
		accounts: make(map[int64]models.Account),
	}
}

func (m *memStore) addOwner(id int64, name string) {
	m.owners[id] = models.AccountOwner{ID: id, Name: name, CreatedAt: time.Now().UTC()}
}

func (m *memStore) addAccount(account models.Account) models.Account {
	m.nextAccountID++
	account.ID = m.nextAccountID
	m.accounts[account.ID] = account
	return account
}

func (m *memStore) addTransaction(transaction models.Transaction) models.Transaction {
	m.nextRowID++
	transaction.ID = m.nextRowID
	m.transactions = append(m.transactions, transaction)
	return transaction
}

func (m *memStore) GetOwner(ctx context.Context, id int64) (*models.AccountOwner, error) {
	owner, ok := m.owners[id]
	if !ok {
		return nil, models.ErrOwnerNotFound
	}
	return &owner, nil
}

func (m *memStore) GetAccountByID(ctx context.Context, id int64) (*models.Account, error) {
	account, ok := m.accounts[id]
	if !ok {
		return nil, models.ErrAccountNotFound
	}
	return &account, nil
}

func (m *memStore) GetAccountByNumber(ctx context.Context, accountNumber string) (*models.Account, error) {
	for _, account := range m.accounts {
		if account.AccountNumber == accountNumber {
			account := account
			return &account, nil
		}
	}
	return nil, models.ErrAccountNotFound
}

func (m *memStore) ListAccountsByOwner(ctx context.Context, ownerID int64) ([]models.Account, error) {
	var accounts []models.Account
	for _, account := range m.accounts {
		if account.OwnerID == ownerID {
			accounts = append(accounts, account)
		}
	}
	sort.Slice(accounts, func(i, j int) bool { return accounts[i].ID < accounts[j].ID })
	return accounts, nil
}

func (m *memStore) CountAccountsByOwner(ctx context.Context, ownerID int64) (int, error) {
	count := 0
	for _, account := range m.accounts {
		if account.OwnerID == ownerID {
			count++
		}
	}
	return count, nil
}

func (m *memStore) LatestAccountNumber(ctx context.Context) (string, error) {
	var latest models.Account
	for _, account := range m.accounts {
		if account.ID > latest.ID {
			latest = account
		}
	}
	return latest.AccountNumber, nil
}

func (m *memStore) CreateAccount(ctx context.Context, account *models.Account) error {
	created := m.addAccount(*account)
	account.ID = created.ID
	return nil
}

func (m *memStore) UpdateAccount(ctx context.Context, account *models.Account) error {
	if _, ok := m.accounts[account.ID]; !ok {
		return models.ErrAccountNotFound
	}
	m.accounts[account.ID] = *account
	return nil
}

func (m *memStore) CreateTransaction(ctx context.Context, transaction *models.Transaction) error {
	created := m.addTransaction(*transaction)
	transaction.ID = created.ID
	return nil
}

func (m *memStore) GetTransactionByTransactionID(ctx context.Context, transactionID string) (*models.Transaction, error) {
	for _, transaction := range m.transactions {
		if transaction.TransactionID == transactionID {
			transaction := transaction
			return &transaction, nil
		}
	}
	return nil, models.ErrTransactionNotFound
}

func (m *memStore) ExecTx(ctx context.Context, fn func(repository.Querier) error) error {
	return fn(m)
}

// rollbackStore adds transaction semantics on top of memStore: when the
// ExecTx callback fails, every account and transaction mutation made inside
// it is discarded, like a rolled-back SQL transaction. failTransactionWrite
// makes CreateTransaction fail inside the callback only.
type rollbackStore struct {
	*memStore
	failTransactionWrite bool
}

func (s *rollbackStore) ExecTx(ctx context.Context, fn func(repository.Querier) error) error {
	accounts := make(map[int64]models.Account, len(s.accounts))
	for id, account := range s.accounts {
		accounts[id] = account
	}
	transactions := append([]models.Transaction(nil), s.transactions...)

	var q repository.Querier = s.memStore
	if s.failTransactionWrite {
		q = &brokenTransactionWriter{s.memStore}
	}
	if err := fn(q); err != nil {
		s.accounts = accounts
		s.transactions = transactions
		return err
	}
	return nil
}

type brokenTransactionWriter struct {
	*memStore
}

func (q *brokenTransactionWriter) CreateTransaction(ctx context.Context, transaction *models.Transaction) error {
	return errors.New("insert failed")
}

// ---- no-op collaborators ----

type memPublisher struct {
	published      []string
	accountOpened  []events.AccountOpenedEvent
	accountClosed  []events.AccountClosedEvent
	balanceChanged []events.BalanceChangedEvent
}

func (p *memPublisher) PublishAccountOpened(ctx context.Context, event events.AccountOpenedEvent) error {
	p.published = append(p.published, events.AccountOpened)
	p.accountOpened = append(p.accountOpened, event)
	return nil
}

func (p *memPublisher) PublishAccountClosed(ctx context.Context, event events.AccountClosedEvent) error {
	p.published = append(p.published, events.AccountClosed)
	p.accountClosed = append(p.accountClosed, event)
	return nil
}

func (p *memPublisher) PublishBalanceUsed(ctx context.Context, event events.BalanceChangedEvent) error {
	p.published = append(p.published, events.BalanceUsed)
	p.balanceChanged = append(p.balanceChanged, event)
	return nil
}

func (p *memPublisher) PublishBalanceCancelled(ctx context.Context, event events.BalanceChangedEvent) error {
	p.published = append(p.published, events.BalanceCancelled)
	p.balanceChanged = append(p.balanceChanged, event)
	return nil
}

type memCache struct {
	views map[int64]*models.AccountView
}

func newMemCache() *memCache {
	return &memCache{views: make(map[int64]*models.AccountView)}
}

func (c *memCache) Put(ctx context.Context, view *models.AccountView) {
	c.views[view.ID] = view
}

func (c *memCache) Get(ctx context.Context, id int64) (*models.AccountView, bool) {
	view, ok := c.views[id]
	return view, ok
}
