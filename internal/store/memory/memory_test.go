package memory

import (
	"context"
	"testing"

	"fintrack/internal/core"
)

func TestUserRoundTrip(t *testing.T) {
	s := New()
	ctx := context.Background()

	if err := s.PutUser(ctx, core.User{ID: "u1", Username: "alice", Password: "pw"}); err != nil {
		t.Fatalf("put user: %v", err)
	}

	u, ok, err := s.GetUser(ctx, "u1")
	if err != nil || !ok {
		t.Fatalf("get user: ok=%v err=%v", ok, err)
	}
	if u.Username != "alice" {
		t.Fatalf("expected alice, got %s", u.Username)
	}

	if _, ok, _ := s.GetUser(ctx, "missing"); ok {
		t.Fatalf("expected miss for unknown id")
	}

	all, err := s.AllUsers(ctx)
	if err != nil || len(all) != 1 {
		t.Fatalf("all users: len=%d err=%v", len(all), err)
	}
}

func TestTransactionTablesAreIndependent(t *testing.T) {
	s := New()
	ctx := context.Background()

	in := core.Transaction{ID: "t1", UserID: "u1", Name: "Salary", Amount: 100, Description: "pay", Location: "work"}
	out := core.Transaction{ID: "t2", UserID: "u1", Name: "Lunch", Amount: 12.5, Description: "meal", Location: "cafe"}

	if err := s.PutTransaction(ctx, core.KindIncome, in); err != nil {
		t.Fatalf("put income: %v", err)
	}
	if err := s.PutTransaction(ctx, core.KindExpense, out); err != nil {
		t.Fatalf("put expense: %v", err)
	}

	incomes, _ := s.AllTransactions(ctx, core.KindIncome)
	expenses, _ := s.AllTransactions(ctx, core.KindExpense)
	if len(incomes) != 1 || len(expenses) != 1 {
		t.Fatalf("expected 1+1 rows, got %d incomes %d expenses", len(incomes), len(expenses))
	}

	if _, ok, _ := s.GetTransaction(ctx, core.KindIncome, "t2"); ok {
		t.Fatalf("expense id must not resolve in the income table")
	}

	got, ok, _ := s.GetTransaction(ctx, core.KindExpense, "t2")
	if !ok || got != out {
		t.Fatalf("expense round trip mismatch: %+v", got)
	}
}
