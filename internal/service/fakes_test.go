package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"fintrack/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// memStore is a map-backed stand-in for the Postgres repositories. It
// implements AccountStore, TransactionStore, ChainStore and CategoryStore so
// one instance can back every service in a test, the way one database does
// in production.
type memStore struct {
	mu           sync.Mutex
	accounts     map[uuid.UUID]*models.Account
	transactions map[uuid.UUID]*models.Transaction
	chains       map[uuid.UUID]*models.ChainRecord
	categories   map[string]*models.Category
}

func newMemStore() *memStore {
	return &memStore{
		accounts:     make(map[uuid.UUID]*models.Account),
		transactions: make(map[uuid.UUID]*models.Transaction),
		chains:       make(map[uuid.UUID]*models.ChainRecord),
		categories:   make(map[string]*models.Category),
	}
}

func (m *memStore) Create(ctx context.Context, account *models.Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *account
	m.accounts[account.ID] = &cp
	return nil
}

func (m *memStore) GetByID(ctx context.Context, id uuid.UUID) (*models.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	account, ok := m.accounts[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *account
	return &cp, nil
}

func (m *memStore) ListByOwner(ctx context.Context, userID uuid.UUID) ([]*models.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*models.Account
	for _, account := range m.accounts {
		if account.UserID == userID && !account.IsArchived {
			cp := *account
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (m *memStore) NameExists(ctx context.Context, userID uuid.UUID, name string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, account := range m.accounts {
		if account.UserID == userID && !account.IsArchived && account.Name == name {
			return true, nil
		}
	}
	return false, nil
}

func (m *memStore) Update(ctx context.Context, account *models.Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *account
	m.accounts[account.ID] = &cp
	return nil
}

func (m *memStore) Archive(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	account, ok := m.accounts[id]
	if !ok {
		return pgx.ErrNoRows
	}
	account.IsArchived = true
	return nil
}

// TransactionStore

type txStoreView struct{ *memStore }

// TxStore exposes the transaction half of the store under method names that
// collide with the account half.
func (m *memStore) TxStore() TransactionStore { return txStoreView{m} }

func (v txStoreView) Create(ctx context.Context, tx *models.Transaction) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	cp := *tx
	v.transactions[tx.ID] = &cp
	return nil
}

func (v txStoreView) GetByID(ctx context.Context, id uuid.UUID) (*models.Transaction, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	tx, ok := v.transactions[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *tx
	return &cp, nil
}

func (v txStoreView) ListByAccount(ctx context.Context, accountID uuid.UUID, from, to *time.Time) ([]*models.Transaction, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	var out []*models.Transaction
	for _, tx := range v.transactions {
		if tx.AccountID != accountID {
			continue
		}
		if from != nil && tx.Date.Before(*from) {
			continue
		}
		if to != nil && tx.Date.After(*to) {
			continue
		}
		cp := *tx
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (v txStoreView) ListByChain(ctx context.Context, chainID uuid.UUID) ([]*models.Transaction, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	var out []*models.Transaction
	for _, tx := range v.transactions {
		if tx.ChainID != nil && *tx.ChainID == chainID {
			cp := *tx
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (v txStoreView) Update(ctx context.Context, tx *models.Transaction) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if _, ok := v.transactions[tx.ID]; !ok {
		return pgx.ErrNoRows
	}
	cp := *tx
	v.transactions[tx.ID] = &cp
	return nil
}

func (v txStoreView) Delete(ctx context.Context, id uuid.UUID) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	delete(v.transactions, id)
	return nil
}

// ChainStore

type chainStoreView struct{ *memStore }

func (m *memStore) ChainStore() ChainStore { return chainStoreView{m} }

func (v chainStoreView) CreateTransfer(ctx context.Context, legs []*models.Transaction, record *models.ChainRecord) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	for _, leg := range legs {
		cp := *leg
		v.transactions[leg.ID] = &cp
	}
	cp := *record
	v.chains[record.ID] = &cp
	return nil
}

func (v chainStoreView) GetByID(ctx context.Context, chainID uuid.UUID) (*models.ChainRecord, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	record, ok := v.chains[chainID]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *record
	return &cp, nil
}

func (v chainStoreView) DeleteCascade(ctx context.Context, chainID uuid.UUID) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	for id, tx := range v.transactions {
		if tx.ChainID != nil && *tx.ChainID == chainID {
			delete(v.transactions, id)
		}
	}
	delete(v.chains, chainID)
	return nil
}

// CategoryStore

type categoryStoreView struct{ *memStore }

func (m *memStore) CategoryStore() CategoryStore { return categoryStoreView{m} }

func (v categoryStoreView) Create(ctx context.Context, cat *models.Category) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	cp := *cat
	v.categories[cat.ID] = &cp
	return nil
}

func (v categoryStoreView) GetByID(ctx context.Context, id string) (*models.Category, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	cat, ok := v.categories[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *cat
	return &cp, nil
}

func (v categoryStoreView) ListByOwnerAndType(ctx context.Context, userID string, catType models.CategoryType) ([]*models.Category, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	var out []*models.Category
	for _, cat := range v.categories {
		if cat.UserID == userID && cat.Type == catType {
			cp := *cat
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (v categoryStoreView) Update(ctx context.Context, cat *models.Category) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if _, ok := v.categories[cat.ID]; !ok {
		return pgx.ErrNoRows
	}
	cp := *cat
	v.categories[cat.ID] = &cp
	return nil
}

func (v categoryStoreView) Delete(ctx context.Context, id string) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	delete(v.categories, id)
	return nil
}
