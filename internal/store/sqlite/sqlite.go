// Package sqlite persists the logbook in a local SQLite database using the
// pure Go driver, with schema managed by embedded migrations.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"

	"logbook/internal/core"
	"logbook/internal/store"
)

var _ store.Store = (*Store)(nil)

type Store struct {
	db *sql.DB
}

func New(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *Store) LoadPersons(ctx context.Context) ([]core.Person, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name FROM persons ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("query persons: %w", err)
	}
	defer rows.Close()

	persons := []core.Person{}
	for rows.Next() {
		var p core.Person
		if err := rows.Scan(&p.ID, &p.Name); err != nil {
			return nil, fmt.Errorf("scan person: %w", err)
		}
		persons = append(persons, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate persons: %w", err)
	}
	return persons, nil
}

// SavePersons replaces the persisted registry snapshot in one transaction.
func (s *Store) SavePersons(ctx context.Context, persons []core.Person) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM persons`); err != nil {
		return fmt.Errorf("clear persons: %w", err)
	}
	for i, p := range persons {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO persons (id, name, position) VALUES (?, ?, ?)`,
			p.ID, p.Name, i,
		); err != nil {
			return fmt.Errorf("insert person: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit persons: %w", err)
	}

	slog.DebugContext(ctx, "Persons snapshot written", "count", len(persons))
	return nil
}

func (s *Store) LoadTransactions(ctx context.Context) ([]core.Transaction, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, description, amount, type, person, date FROM transactions ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()

	transactions := []core.Transaction{}
	for rows.Next() {
		var (
			t            core.Transaction
			amount, date string
		)
		if err := rows.Scan(&t.ID, &t.Description, &amount, &t.Type, &t.Person, &date); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		t.Amount, err = decimal.NewFromString(amount)
		if err != nil {
			// Tolerate a bad row rather than refuse the whole ledger.
			slog.WarnContext(ctx, "Discarding transaction with unreadable amount",
				"id", t.ID, "amount", amount, "error", err)
			continue
		}
		t.Date, err = core.ParseDate(date)
		if err != nil {
			slog.WarnContext(ctx, "Discarding transaction with unreadable date",
				"id", t.ID, "date", date, "error", err)
			continue
		}
		transactions = append(transactions, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}
	return transactions, nil
}

// SaveTransactions replaces the persisted ledger snapshot in one
// transaction. The position column preserves the newest-first order of the
// in-memory sequence.
func (s *Store) SaveTransactions(ctx context.Context, transactions []core.Transaction) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM transactions`); err != nil {
		return fmt.Errorf("clear transactions: %w", err)
	}
	for i, t := range transactions {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO transactions (id, description, amount, type, person, date, position)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			t.ID, t.Description, t.Amount.String(), string(t.Type), t.Person, t.Date.String(), i,
		); err != nil {
			return fmt.Errorf("insert transaction: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transactions: %w", err)
	}

	slog.DebugContext(ctx, "Transactions snapshot written", "count", len(transactions))
	return nil
}
