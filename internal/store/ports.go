// Package store defines the ports the tracker persists through.
//
// The backing model is three append-only tables (users, incomes, expenses),
// each row keyed by an opaque unique id assigned at creation. There are no
// update or delete operations; reads are either by key or full-table scans.
package store

import (
	"context"

	"fintrack/internal/core"
)

type (
	// UserStore persists account records.
	UserStore interface {
		PutUser(ctx context.Context, u core.User) error
		GetUser(ctx context.Context, id string) (core.User, bool, error)
		// AllUsers scans the whole table; order is unspecified.
		AllUsers(ctx context.Context) ([]core.User, error)
	}

	// LedgerStore persists income and expense transactions, selected by kind.
	LedgerStore interface {
		PutTransaction(ctx context.Context, kind core.Kind, t core.Transaction) error
		GetTransaction(ctx context.Context, kind core.Kind, id string) (core.Transaction, bool, error)
		// AllTransactions scans the whole table for the kind; order is unspecified.
		AllTransactions(ctx context.Context, kind core.Kind) ([]core.Transaction, error)
	}

	// Store is the full persistence surface of the tracker.
	Store interface {
		UserStore
		LedgerStore
	}
)
