package ledger

import (
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"logbook/internal/core"
)

// Input carries the caller-supplied fields for a new transaction.
// A zero Date defaults to today.
type Input struct {
	Description string
	Amount      decimal.Decimal
	Type        core.EntryType
	Person      string
	Date        core.Date
}

// Ledger is the owning, ordered collection of transactions. The sequence is
// kept newest-first: Add prepends and removals preserve relative order.
type Ledger struct {
	mu      sync.Mutex
	entries []core.Transaction
}

func NewLedger() *Ledger {
	return &Ledger{}
}

// Add validates the input and prepends a new transaction. Validation happens
// before any mutation, so a rejected input leaves the ledger unchanged.
func (l *Ledger) Add(in Input) (core.Transaction, error) {
	date := in.Date
	if date.IsZero() {
		date = core.Today()
	}

	tx := core.Transaction{
		ID:          uuid.NewString(),
		Description: strings.TrimSpace(in.Description),
		Amount:      in.Amount,
		Type:        in.Type,
		Person:      in.Person,
		Date:        date,
	}
	if err := tx.Validate(); err != nil {
		return core.Transaction{}, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append([]core.Transaction{tx}, l.entries...)
	return tx, nil
}

// Remove deletes the single transaction with the given id, preserving the
// relative order of the rest.
func (l *Ledger) Remove(id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i, tx := range l.entries {
		if tx.ID == id {
			l.entries = append(l.entries[:i], l.entries[i+1:]...)
			return nil
		}
	}
	return core.ErrNotFound
}

// Clear empties the ledger unconditionally. Confirming destructive intent
// is the caller's responsibility.
func (l *Ledger) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = nil
}

// PurgeByPerson removes every transaction referencing the given person id
// and returns the removed ids, in ledger order. Calling it again with no
// matches returns an empty slice, not an error.
func (l *Ledger) PurgeByPerson(personID string) []string {
	l.mu.Lock()
	defer l.mu.Unlock()

	removed := []string{}
	kept := l.entries[:0]
	for _, tx := range l.entries {
		if tx.Person == personID {
			removed = append(removed, tx.ID)
			continue
		}
		kept = append(kept, tx)
	}
	l.entries = kept
	return removed
}

// Transactions returns a copy of the ledger contents, newest-first.
func (l *Ledger) Transactions() []core.Transaction {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]core.Transaction, len(l.entries))
	copy(out, l.entries)
	return out
}

// Replace swaps the ledger contents, used when loading from storage.
func (l *Ledger) Replace(transactions []core.Transaction) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append([]core.Transaction(nil), transactions...)
}

// Len returns the number of transactions.
func (l *Ledger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}
