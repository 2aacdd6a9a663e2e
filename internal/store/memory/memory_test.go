package memory

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	"logbook/internal/core"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	st := New()
	ctx := context.Background()

	if err := st.SavePersons(ctx, []core.Person{{ID: "p1", Name: "Alice"}}); err != nil {
		t.Fatalf("save persons: %v", err)
	}
	if err := st.SaveTransactions(ctx, []core.Transaction{{
		ID:          "t1",
		Description: "Lunch",
		Amount:      decimal.RequireFromString("12.50"),
		Type:        core.Expense,
		Person:      "p1",
		Date:        core.NewDate(2024, 1, 5),
	}}); err != nil {
		t.Fatalf("save transactions: %v", err)
	}

	persons, err := st.LoadPersons(ctx)
	if err != nil || len(persons) != 1 || persons[0].Name != "Alice" {
		t.Fatalf("unexpected persons: %v, %v", persons, err)
	}
	transactions, err := st.LoadTransactions(ctx)
	if err != nil || len(transactions) != 1 || transactions[0].ID != "t1" {
		t.Fatalf("unexpected transactions: %v, %v", transactions, err)
	}
}

func TestMemoryStoreEmptyByDefault(t *testing.T) {
	st := New()
	ctx := context.Background()

	persons, err := st.LoadPersons(ctx)
	if err != nil || len(persons) != 0 {
		t.Fatalf("expected empty persons, got %v, %v", persons, err)
	}
	transactions, err := st.LoadTransactions(ctx)
	if err != nil || len(transactions) != 0 {
		t.Fatalf("expected empty transactions, got %v, %v", transactions, err)
	}
}

func TestMemoryStoreSnapshotsAreIsolated(t *testing.T) {
	st := New()
	ctx := context.Background()

	saved := []core.Person{{ID: "p1", Name: "Alice"}}
	st.SavePersons(ctx, saved)
	saved[0].Name = "mutated"

	persons, _ := st.LoadPersons(ctx)
	if persons[0].Name != "Alice" {
		t.Fatalf("store aliased the caller's slice: %+v", persons)
	}

	persons[0].Name = "mutated again"
	again, _ := st.LoadPersons(ctx)
	if again[0].Name != "Alice" {
		t.Fatalf("load leaked internal state: %+v", again)
	}
}
