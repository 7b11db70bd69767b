// Package memory implements the store ports on plain in-process maps.
// It backs local development and tests; durability comes from the sqlite
// backend.
package memory

import (
	"context"
	"sync"

	"fintrack/internal/core"
)

type Store struct {
	mu       sync.Mutex
	users    map[string]core.User
	incomes  map[string]core.Transaction
	expenses map[string]core.Transaction
}

func New() *Store {
	return &Store{
		users:    make(map[string]core.User),
		incomes:  make(map[string]core.Transaction),
		expenses: make(map[string]core.Transaction),
	}
}

func (s *Store) PutUser(_ context.Context, u core.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[u.ID] = u
	return nil
}

func (s *Store) GetUser(_ context.Context, id string) (core.User, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	return u, ok, nil
}

func (s *Store) AllUsers(_ context.Context) ([]core.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, u)
	}
	return out, nil
}

func (s *Store) PutTransaction(_ context.Context, kind core.Kind, t core.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.table(kind)[t.ID] = t
	return nil
}

func (s *Store) GetTransaction(_ context.Context, kind core.Kind, id string) (core.Transaction, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.table(kind)[id]
	return t, ok, nil
}

func (s *Store) AllTransactions(_ context.Context, kind core.Kind) ([]core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	table := s.table(kind)
	out := make([]core.Transaction, 0, len(table))
	for _, t := range table {
		out = append(out, t)
	}
	return out, nil
}

func (s *Store) table(kind core.Kind) map[string]core.Transaction {
	if kind == core.KindIncome {
		return s.incomes
	}
	return s.expenses
}
