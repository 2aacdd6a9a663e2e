// Package memory provides an in-memory store, used as the deterministic
// fake in tests and as a throwaway backend.
package memory

import (
	"context"
	"sync"

	"logbook/internal/core"
	"logbook/internal/store"
)

var _ store.Store = (*Store)(nil)

type Store struct {
	mu           sync.Mutex
	persons      []core.Person
	transactions []core.Transaction
}

func New() *Store {
	return &Store{}
}

func (s *Store) LoadPersons(_ context.Context) ([]core.Person, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Person(nil), s.persons...), nil
}

func (s *Store) SavePersons(_ context.Context, persons []core.Person) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.persons = append([]core.Person(nil), persons...)
	return nil
}

func (s *Store) LoadTransactions(_ context.Context) ([]core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Transaction(nil), s.transactions...), nil
}

func (s *Store) SaveTransactions(_ context.Context, transactions []core.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transactions = append([]core.Transaction(nil), transactions...)
	return nil
}

func (s *Store) Close() error {
	return nil
}
