// Package file persists the logbook as two JSON documents in a data
// directory: persons.json and transactions.json. The documents are flat
// arrays using the stable field names (id, name; id, description, amount,
// type, person, date) so previously persisted data keeps loading across
// releases.
package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"logbook/internal/core"
	"logbook/internal/store"
)

const (
	personsFile      = "persons.json"
	transactionsFile = "transactions.json"
)

var _ store.Store = (*Store)(nil)

type Store struct {
	dir string
}

// New creates a file store rooted at dir, creating the directory if needed.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

func (s *Store) LoadPersons(ctx context.Context) ([]core.Person, error) {
	var persons []core.Person
	if err := s.load(ctx, personsFile, &persons); err != nil {
		return nil, err
	}
	if persons == nil {
		persons = []core.Person{}
	}
	return persons, nil
}

func (s *Store) SavePersons(ctx context.Context, persons []core.Person) error {
	if persons == nil {
		persons = []core.Person{}
	}
	return s.save(ctx, personsFile, persons)
}

func (s *Store) LoadTransactions(ctx context.Context) ([]core.Transaction, error) {
	var transactions []core.Transaction
	if err := s.load(ctx, transactionsFile, &transactions); err != nil {
		return nil, err
	}
	if transactions == nil {
		transactions = []core.Transaction{}
	}
	return transactions, nil
}

func (s *Store) SaveTransactions(ctx context.Context, transactions []core.Transaction) error {
	if transactions == nil {
		transactions = []core.Transaction{}
	}
	return s.save(ctx, transactionsFile, transactions)
}

func (s *Store) Close() error {
	return nil
}

// load reads one document into out. A missing file or undecodable content
// leaves out empty: the store contract treats both as an empty collection.
func (s *Store) load(ctx context.Context, name string, out any) error {
	path := filepath.Join(s.dir, name)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read %s: %w", name, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		slog.WarnContext(ctx, "Discarding corrupt data file", "file", name, "error", err)
		return nil
	}
	return nil
}

// save writes one document atomically via a temp file and rename, so a
// crash mid-write never corrupts the previous snapshot.
func (s *Store) save(ctx context.Context, name string, in any) error {
	data, err := json.MarshalIndent(in, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}

	path := filepath.Join(s.dir, name)
	tmp, err := os.CreateTemp(s.dir, name+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", name, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("replace %s: %w", name, err)
	}

	slog.DebugContext(ctx, "Snapshot written", "file", name, "bytes", len(data))
	return nil
}
