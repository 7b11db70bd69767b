// Package sqlite implements the store ports on a SQLite database.
//
// All three tables are append-only from the tracker's point of view: rows
// are inserted once and never rewritten. The only update is the synced flag
// on transactions, driven by the export worker.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"fintrack/internal/core"

	_ "modernc.org/sqlite"
)

type Store struct {
	db *sql.DB
}

func New(dbPath string) (*Store, error) {
	if dir := filepath.Dir(dbPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	// Single writer; one pooled connection also keeps :memory: databases stable.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := runMigrations(db); err != nil {
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

func (s *Store) PutUser(ctx context.Context, u core.User) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO users (id, username, password) VALUES (?, ?, ?)`,
		u.ID, u.Username, u.Password)
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}

	slog.InfoContext(ctx, "User saved to SQLite", "id", u.ID, "username", u.Username)
	return nil
}

func (s *Store) GetUser(ctx context.Context, id string) (core.User, bool, error) {
	var u core.User
	err := s.db.QueryRowContext(ctx,
		`SELECT id, username, password FROM users WHERE id = ?`, id).
		Scan(&u.ID, &u.Username, &u.Password)
	if err == sql.ErrNoRows {
		return core.User{}, false, nil
	}
	if err != nil {
		return core.User{}, false, fmt.Errorf("get user: %w", err)
	}
	return u, true, nil
}

func (s *Store) AllUsers(ctx context.Context) ([]core.User, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, username, password FROM users`)
	if err != nil {
		return nil, fmt.Errorf("scan users: %w", err)
	}
	defer rows.Close()

	var users []core.User
	for rows.Next() {
		var u core.User
		if err := rows.Scan(&u.ID, &u.Username, &u.Password); err != nil {
			return nil, fmt.Errorf("scan user row: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (s *Store) PutTransaction(ctx context.Context, kind core.Kind, t core.Transaction) error {
	table, err := tableFor(kind)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO `+table+` (id, user_id, name, amount, description, location, timestamp_ns)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.UserID, t.Name, t.Amount, t.Description, t.Location, t.Timestamp)
	if err != nil {
		return fmt.Errorf("insert %s: %w", kind, err)
	}

	slog.InfoContext(ctx, "Transaction saved to SQLite",
		"kind", kind,
		"id", t.ID,
		"name", t.Name,
		"amount", t.Amount)
	return nil
}

func (s *Store) GetTransaction(ctx context.Context, kind core.Kind, id string) (core.Transaction, bool, error) {
	table, err := tableFor(kind)
	if err != nil {
		return core.Transaction{}, false, err
	}

	var t core.Transaction
	err = s.db.QueryRowContext(ctx,
		`SELECT id, user_id, name, amount, description, location, timestamp_ns FROM `+table+` WHERE id = ?`, id).
		Scan(&t.ID, &t.UserID, &t.Name, &t.Amount, &t.Description, &t.Location, &t.Timestamp)
	if err == sql.ErrNoRows {
		return core.Transaction{}, false, nil
	}
	if err != nil {
		return core.Transaction{}, false, fmt.Errorf("get %s: %w", kind, err)
	}
	return t, true, nil
}

func (s *Store) AllTransactions(ctx context.Context, kind core.Kind) ([]core.Transaction, error) {
	table, err := tableFor(kind)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, name, amount, description, location, timestamp_ns FROM `+table)
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", kind, err)
	}
	defer rows.Close()

	var out []core.Transaction
	for rows.Next() {
		var t core.Transaction
		if err := rows.Scan(&t.ID, &t.UserID, &t.Name, &t.Amount, &t.Description, &t.Location, &t.Timestamp); err != nil {
			return nil, fmt.Errorf("scan %s row: %w", kind, err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// PendingTransaction identifies a row the export worker has not yet written out.
type PendingTransaction struct {
	Kind      core.Kind
	ID        string
	CreatedAt time.Time
}

// PendingSync returns up to limit unsynced transactions across both ledger
// tables. This is the backfill source for messages lost between publish and
// consume.
func (s *Store) PendingSync(ctx context.Context, limit int) ([]PendingTransaction, error) {
	var out []PendingTransaction
	for _, kind := range []core.Kind{core.KindIncome, core.KindExpense} {
		table, err := tableFor(kind)
		if err != nil {
			return nil, err
		}

		rows, err := s.db.QueryContext(ctx,
			`SELECT id, timestamp_ns FROM `+table+` WHERE synced = 0 ORDER BY timestamp_ns LIMIT ?`, limit)
		if err != nil {
			return nil, fmt.Errorf("scan pending %s: %w", kind, err)
		}

		for rows.Next() {
			var id string
			var ts int64
			if err := rows.Scan(&id, &ts); err != nil {
				rows.Close()
				return nil, fmt.Errorf("scan pending %s row: %w", kind, err)
			}
			out = append(out, PendingTransaction{Kind: kind, ID: id, CreatedAt: time.Unix(0, ts)})
		}
		if err := rows.Err(); err != nil {
			rows.Close()
			return nil, err
		}
		rows.Close()
	}
	return out, nil
}

// MarkSynced flags a transaction as exported.
func (s *Store) MarkSynced(ctx context.Context, kind core.Kind, id string) error {
	table, err := tableFor(kind)
	if err != nil {
		return err
	}

	if _, err := s.db.ExecContext(ctx, `UPDATE `+table+` SET synced = 1 WHERE id = ?`, id); err != nil {
		return fmt.Errorf("mark %s synced: %w", kind, err)
	}

	slog.InfoContext(ctx, "Transaction marked as synced", "kind", kind, "id", id)
	return nil
}

func tableFor(kind core.Kind) (string, error) {
	switch kind {
	case core.KindIncome:
		return "incomes", nil
	case core.KindExpense:
		return "expenses", nil
	default:
		return "", fmt.Errorf("unknown transaction kind: %s", kind)
	}
}
