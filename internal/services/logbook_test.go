package services

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"logbook/internal/core"
	"logbook/internal/ledger"
	"logbook/internal/store/memory"
)

func newTestLogbook(t *testing.T) (*Logbook, *memory.Store) {
	t.Helper()
	st := memory.New()
	book := New(st)
	if err := book.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}
	return book, st
}

func addTransaction(t *testing.T, book *Logbook, desc, amount string, entryType core.EntryType, person string, date core.Date) core.Transaction {
	t.Helper()
	tx, err := book.AddTransaction(context.Background(), ledger.Input{
		Description: desc,
		Amount:      decimal.RequireFromString(amount),
		Type:        entryType,
		Person:      person,
		Date:        date,
	})
	if err != nil {
		t.Fatalf("add transaction %q: %v", desc, err)
	}
	return tx
}

func TestSingleExpenseTotals(t *testing.T) {
	book, _ := newTestLogbook(t)
	ctx := context.Background()

	alice, err := book.AddPerson(ctx, "Alice")
	if err != nil {
		t.Fatalf("add person: %v", err)
	}
	addTransaction(t, book, "Lunch", "12.50", core.Expense, alice.ID, core.NewDate(2024, 1, 5))

	p := book.Query(core.Filter{})
	if got := p.Totals.Expense.String(); got != "12.5" {
		t.Fatalf("total expense = %s", got)
	}
	if got := p.Totals.Balance.String(); got != "-12.5" {
		t.Fatalf("balance = %s", got)
	}
}

func TestIncomeAndExpenseBalance(t *testing.T) {
	book, _ := newTestLogbook(t)
	ctx := context.Background()

	alice, _ := book.AddPerson(ctx, "Alice")
	addTransaction(t, book, "Lunch", "12.50", core.Expense, alice.ID, core.NewDate(2024, 1, 5))
	addTransaction(t, book, "Salary", "1000", core.Income, alice.ID, core.NewDate(2024, 1, 6))

	p := book.Query(core.Filter{})
	if got := p.Totals.Balance.String(); got != "987.5" {
		t.Fatalf("balance = %s", got)
	}
}

func TestRemovePersonCascades(t *testing.T) {
	book, st := newTestLogbook(t)
	ctx := context.Background()

	alice, _ := book.AddPerson(ctx, "Alice")
	addTransaction(t, book, "Lunch", "12.50", core.Expense, alice.ID, core.NewDate(2024, 1, 5))
	addTransaction(t, book, "Salary", "1000", core.Income, alice.ID, core.NewDate(2024, 1, 6))

	removal, err := book.RemovePerson(ctx, alice.ID)
	if err != nil {
		t.Fatalf("remove person: %v", err)
	}
	if len(removal.CascadedTransactionIDs) != 2 {
		t.Fatalf("expected 2 cascaded ids, got %d", len(removal.CascadedTransactionIDs))
	}
	if removal.Person.Name != "Alice" {
		t.Fatalf("unexpected removed person: %+v", removal.Person)
	}
	if len(book.Transactions()) != 0 {
		t.Fatalf("ledger must be empty after cascade")
	}
	for _, tx := range book.Transactions() {
		if tx.Person == alice.ID {
			t.Fatalf("dangling reference survived: %+v", tx)
		}
	}

	// Cascade is written through to the store.
	persisted, _ := st.LoadTransactions(ctx)
	if len(persisted) != 0 {
		t.Fatalf("store still holds %d transactions", len(persisted))
	}

	if _, err := book.RemovePerson(ctx, alice.ID); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestAddTransactionRejectsNonPositiveAmount(t *testing.T) {
	book, _ := newTestLogbook(t)
	ctx := context.Background()

	_, err := book.AddTransaction(ctx, ledger.Input{
		Description: "Nothing",
		Amount:      decimal.Zero,
		Type:        core.Expense,
		Person:      "p1",
	})
	if !errors.Is(err, core.ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}
	if len(book.Transactions()) != 0 {
		t.Fatalf("ledger length changed on rejected add")
	}
}

func TestRemoveTransactionIsIdempotent(t *testing.T) {
	book, _ := newTestLogbook(t)
	ctx := context.Background()

	alice, _ := book.AddPerson(ctx, "Alice")
	tx := addTransaction(t, book, "Lunch", "12.50", core.Expense, alice.ID, core.NewDate(2024, 1, 5))

	if err := book.RemoveTransaction(ctx, tx.ID); err != nil {
		t.Fatalf("remove: %v", err)
	}
	// A stale id is tolerated as a no-op.
	if err := book.RemoveTransaction(ctx, tx.ID); err != nil {
		t.Fatalf("second remove must be a no-op, got %v", err)
	}
}

func TestRenameReflectedInQuery(t *testing.T) {
	book, _ := newTestLogbook(t)
	ctx := context.Background()

	alice, _ := book.AddPerson(ctx, "Alice")
	addTransaction(t, book, "Lunch", "12.50", core.Expense, alice.ID, core.NewDate(2024, 1, 5))

	if err := book.RenamePerson(ctx, alice.ID, "Alicia"); err != nil {
		t.Fatalf("rename: %v", err)
	}

	if p := book.Query(core.Filter{Term: "alici"}); len(p.View) != 1 {
		t.Fatalf("search must see the new name, got %d entries", len(p.View))
	}
	if p := book.Query(core.Filter{Term: "alice"}); len(p.View) != 0 {
		t.Fatalf("old name must no longer match, got %d entries", len(p.View))
	}
}

func TestQueryResolvesUnknownForDanglingReference(t *testing.T) {
	book, _ := newTestLogbook(t)

	addTransaction(t, book, "Orphan", "5", core.Expense, "ghost", core.NewDate(2024, 1, 5))

	if got := book.LookupName("ghost"); got != core.UnknownPersonName {
		t.Fatalf("expected %q, got %q", core.UnknownPersonName, got)
	}
	if p := book.Query(core.Filter{Term: "unknown"}); len(p.View) != 1 {
		t.Fatalf("search must match the Unknown sentinel, got %d", len(p.View))
	}
}

func TestClearTransactions(t *testing.T) {
	book, st := newTestLogbook(t)
	ctx := context.Background()

	alice, _ := book.AddPerson(ctx, "Alice")
	addTransaction(t, book, "Lunch", "12.50", core.Expense, alice.ID, core.NewDate(2024, 1, 5))

	book.ClearTransactions(ctx)
	if len(book.Transactions()) != 0 {
		t.Fatalf("ledger not cleared")
	}
	persisted, _ := st.LoadTransactions(ctx)
	if len(persisted) != 0 {
		t.Fatalf("store not cleared")
	}
	// Persons survive a transaction clear.
	if len(book.Persons()) != 1 {
		t.Fatalf("persons must survive clear")
	}
}

func TestLoadRestoresState(t *testing.T) {
	st := memory.New()
	ctx := context.Background()

	first := New(st)
	if err := first.Load(ctx); err != nil {
		t.Fatalf("load: %v", err)
	}
	alice, _ := first.AddPerson(ctx, "Alice")
	addTransaction(t, first, "Lunch", "12.50", core.Expense, alice.ID, core.NewDate(2024, 1, 5))

	second := New(st)
	if err := second.Load(ctx); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if len(second.Persons()) != 1 || len(second.Transactions()) != 1 {
		t.Fatalf("state not restored: %d persons, %d transactions",
			len(second.Persons()), len(second.Transactions()))
	}
	if got := second.LookupName(alice.ID); got != "Alice" {
		t.Fatalf("lookup after reload: %q", got)
	}
}

// failingStore errors on every operation, standing in for broken media.
type failingStore struct{}

var errBroken = errors.New("disk on fire")

func (failingStore) LoadPersons(context.Context) ([]core.Person, error) { return nil, errBroken }
func (failingStore) SavePersons(context.Context, []core.Person) error   { return errBroken }
func (failingStore) LoadTransactions(context.Context) ([]core.Transaction, error) {
	return nil, errBroken
}
func (failingStore) SaveTransactions(context.Context, []core.Transaction) error { return errBroken }
func (failingStore) Close() error                                               { return nil }

func TestPersistenceFailureDoesNotBlockMutations(t *testing.T) {
	book := New(failingStore{})
	ctx := context.Background()

	if err := book.Load(ctx); err != nil {
		t.Fatalf("load must tolerate a broken store, got %v", err)
	}

	alice, err := book.AddPerson(ctx, "Alice")
	if err != nil {
		t.Fatalf("add person must succeed in memory, got %v", err)
	}
	if _, err := book.AddTransaction(ctx, ledger.Input{
		Description: "Lunch",
		Amount:      decimal.RequireFromString("12.50"),
		Type:        core.Expense,
		Person:      alice.ID,
	}); err != nil {
		t.Fatalf("add transaction must succeed in memory, got %v", err)
	}
	if len(book.Transactions()) != 1 {
		t.Fatalf("in-memory state lost")
	}
}
