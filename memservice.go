package balance

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// MemService is an in-memory TransactionService. It stands in for the remote
// API in tests and previews: ids are assigned sequentially, updatedAt is
// bumped on every update, and unknown ids fail with ErrNotFound just like
// the backend.
type MemService struct {
	mu         sync.Mutex
	accounts   map[int]BankAccount
	categories map[int]Category
	txs        []Transaction
	nextID     int
	now        func() time.Time
}

// NewMemService builds a service that resolves embedded snapshots from the
// given account and category registries.
func NewMemService(accounts []BankAccount, categories []Category) *MemService {
	s := &MemService{
		accounts:   make(map[int]BankAccount, len(accounts)),
		categories: make(map[int]Category, len(categories)),
		nextID:     1,
		now:        time.Now,
	}
	for _, a := range accounts {
		s.accounts[a.ID] = a
	}
	for _, c := range categories {
		s.categories[c.ID] = c
	}
	return s
}

// Seed preloads transactions, typically fixtures. The id sequence continues
// after the highest seeded id.
func (s *MemService) Seed(txs ...Transaction) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range txs {
		s.txs = append(s.txs, t)
		if t.ID >= s.nextID {
			s.nextID = t.ID + 1
		}
	}
}

// SetClock overrides the timestamp source, for tests.
func (s *MemService) SetClock(now func() time.Time) { s.now = now }

func (s *MemService) Fetch(ctx context.Context, criteria FetchCriteria) ([]Transaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []Transaction
	for _, t := range s.txs {
		if criteria.Matches(t) {
			out = append(out, t)
		}
	}
	return out, nil
}

func (s *MemService) Create(ctx context.Context, fields TransactionFields) (Transaction, error) {
	if err := ctx.Err(); err != nil {
		return Transaction{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	account, ok := s.accounts[fields.AccountID]
	if !ok {
		return Transaction{}, fmt.Errorf("%w: account id %d", ErrNotFound, fields.AccountID)
	}
	category, ok := s.categories[fields.CategoryID]
	if !ok {
		return Transaction{}, fmt.Errorf("%w: category id %d", ErrNotFound, fields.CategoryID)
	}
	now := s.now()
	tx := Transaction{
		ID:              s.nextID,
		Account:         account,
		Category:        category,
		Amount:          fields.Amount,
		TransactionDate: fields.TransactionDate,
		Comment:         fields.Comment,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	s.nextID++
	s.txs = append(s.txs, tx)
	return tx, nil
}

func (s *MemService) Update(ctx context.Context, tx Transaction) (Transaction, error) {
	if err := ctx.Err(); err != nil {
		return Transaction{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.txs {
		if s.txs[i].ID == tx.ID {
			tx.UpdatedAt = s.now()
			s.txs[i] = tx
			return tx, nil
		}
	}
	return Transaction{}, fmt.Errorf("%w: transaction id %d", ErrNotFound, tx.ID)
}

func (s *MemService) Delete(ctx context.Context, id int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.txs {
		if s.txs[i].ID == id {
			s.txs = append(s.txs[:i], s.txs[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: transaction id %d", ErrNotFound, id)
}

var _ TransactionService = (*MemService)(nil)
