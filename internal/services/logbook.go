// Package services contains the Logbook coordinator. It owns the person
// registry and the transaction ledger, keeps them consistent (cascade
// delete), and writes every successful mutation through to the injected
// store.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"logbook/internal/core"
	"logbook/internal/ledger"
	"logbook/internal/store"
)

// RemovalResult reports the outcome of a person removal so callers can
// surface "N transactions also removed".
type RemovalResult struct {
	Person                 core.Person
	CascadedTransactionIDs []string
}

// Logbook coordinates the two owned collections and the persistence
// write-through. Persistence is best-effort: a failed save is logged and
// the in-memory state stays authoritative.
type Logbook struct {
	registry *ledger.Registry
	ledger   *ledger.Ledger
	store    store.Store
}

func New(st store.Store) *Logbook {
	return &Logbook{
		registry: ledger.NewRegistry(),
		ledger:   ledger.NewLedger(),
		store:    st,
	}
}

// Load populates both collections from the store. The two collections load
// concurrently; a store that reports an error leaves the corresponding
// collection empty rather than failing startup.
func (b *Logbook) Load(ctx context.Context) error {
	var (
		persons      []core.Person
		transactions []core.Transaction
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		persons, err = b.store.LoadPersons(gctx)
		if err != nil {
			slog.WarnContext(gctx, "Loading persons failed, starting empty", "error", err)
			persons = nil
		}
		return nil
	})
	g.Go(func() error {
		var err error
		transactions, err = b.store.LoadTransactions(gctx)
		if err != nil {
			slog.WarnContext(gctx, "Loading transactions failed, starting empty", "error", err)
			transactions = nil
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return fmt.Errorf("load logbook: %w", err)
	}

	b.registry.Replace(persons)
	b.ledger.Replace(transactions)

	slog.InfoContext(ctx, "Logbook loaded",
		"persons", len(persons),
		"transactions", len(transactions))
	return nil
}

// AddPerson registers a new person and persists the registry.
func (b *Logbook) AddPerson(ctx context.Context, name string) (core.Person, error) {
	p, err := b.registry.Add(name)
	if err != nil {
		return core.Person{}, err
	}
	b.persistPersons(ctx)

	slog.InfoContext(ctx, "Person added", "person_id", p.ID, "name", p.Name)
	return p, nil
}

// RenamePerson changes a person's display name and persists the registry.
// The new name is reflected everywhere the id is resolved.
func (b *Logbook) RenamePerson(ctx context.Context, id, newName string) error {
	if err := b.registry.Rename(id, newName); err != nil {
		return err
	}
	b.persistPersons(ctx)

	slog.InfoContext(ctx, "Person renamed", "person_id", id)
	return nil
}

// RemovePerson removes a person and purges every transaction referencing it,
// as one logical step. After it returns, no transaction carries the removed
// id.
func (b *Logbook) RemovePerson(ctx context.Context, id string) (RemovalResult, error) {
	p, err := b.registry.Remove(id)
	if err != nil {
		return RemovalResult{}, err
	}
	cascaded := b.ledger.PurgeByPerson(id)

	b.persistPersons(ctx)
	b.persistTransactions(ctx)

	slog.InfoContext(ctx, "Person removed",
		"person_id", id,
		"name", p.Name,
		"cascaded_transactions", len(cascaded))
	return RemovalResult{Person: p, CascadedTransactionIDs: cascaded}, nil
}

// LookupName resolves a person id to a display name, with the Unknown
// sentinel for dangling references.
func (b *Logbook) LookupName(id string) string {
	return b.registry.LookupName(id)
}

// AddTransaction validates and records a new transaction at the front of
// the ledger, then persists it.
func (b *Logbook) AddTransaction(ctx context.Context, in ledger.Input) (core.Transaction, error) {
	tx, err := b.ledger.Add(in)
	if err != nil {
		return core.Transaction{}, err
	}
	b.persistTransactions(ctx)

	slog.InfoContext(ctx, "Transaction added",
		"transaction_id", tx.ID,
		"entry_type", string(tx.Type),
		"amount", tx.Amount.String(),
		"date", tx.Date.String())
	return tx, nil
}

// RemoveTransaction deletes one transaction. A stale id is tolerated as a
// no-op so that delete stays idempotent.
func (b *Logbook) RemoveTransaction(ctx context.Context, id string) error {
	if err := b.ledger.Remove(id); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			slog.DebugContext(ctx, "Transaction already gone", "transaction_id", id)
			return nil
		}
		return err
	}
	b.persistTransactions(ctx)

	slog.InfoContext(ctx, "Transaction removed", "transaction_id", id)
	return nil
}

// ClearTransactions empties the ledger. Confirmation of destructive intent
// is the caller's responsibility.
func (b *Logbook) ClearTransactions(ctx context.Context) {
	b.ledger.Clear()
	b.persistTransactions(ctx)

	slog.InfoContext(ctx, "All transactions cleared")
}

// Query applies a filter to the ledger and returns the projected view plus
// aggregates. Person names resolve through the registry.
func (b *Logbook) Query(filter core.Filter) core.Projection {
	return core.Project(b.ledger.Transactions(), b.registry.LookupName, filter)
}

// Persons returns a snapshot of the registry.
func (b *Logbook) Persons() []core.Person {
	return b.registry.Persons()
}

// Transactions returns a snapshot of the ledger, newest-first.
func (b *Logbook) Transactions() []core.Transaction {
	return b.ledger.Transactions()
}

func (b *Logbook) persistPersons(ctx context.Context) {
	if err := b.store.SavePersons(ctx, b.registry.Persons()); err != nil {
		slog.ErrorContext(ctx, "Persisting persons failed", "error", err)
	}
}

func (b *Logbook) persistTransactions(ctx context.Context) {
	if err := b.store.SaveTransactions(ctx, b.ledger.Transactions()); err != nil {
		slog.ErrorContext(ctx, "Persisting transactions failed", "error", err)
	}
}
