// Package store defines the persistence port of the logbook and is
// implemented by the file, sqlite and memory backends.
package store

import (
	"context"

	"logbook/internal/core"
)

// Store persists the two collections as whole snapshots.
//
// Loads follow a never-fail contract for data problems: missing or corrupt
// data yields an empty slice, not an error. An error from a load or save
// means the underlying medium failed; callers log it and keep the in-memory
// state authoritative.
type Store interface {
	LoadPersons(ctx context.Context) ([]core.Person, error)
	SavePersons(ctx context.Context, persons []core.Person) error

	LoadTransactions(ctx context.Context) ([]core.Transaction, error)
	SaveTransactions(ctx context.Context, transactions []core.Transaction) error

	Close() error
}
