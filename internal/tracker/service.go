// Package tracker implements the operations the finance tracker exposes:
// registration and authentication, the income/expense ledger, and the
// time-windowed aggregations derived from it.
package tracker

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"fintrack/internal/core"
	"fintrack/internal/log"
	"fintrack/internal/session"
	"fintrack/internal/store"
)

// Publisher emits an event after a transaction has been persisted.
// The export worker picks these up asynchronously.
type Publisher interface {
	PublishTransactionRecorded(ctx context.Context, kind core.Kind, id string) error
}

// Service carries the tracker's full operation surface. Every exposed
// operation runs to completion without interleaving with another one; the
// internal mutex provides that guarantee under a concurrent host.
type Service struct {
	mu      sync.Mutex
	store   store.Store
	session *session.Holder
	pub     Publisher
	now     func() time.Time
	newID   func() string
}

// Option configures a Service.
type Option func(*Service)

// WithClock replaces the wall-clock source. Tests supply fixed timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithIDGenerator replaces the unique-id source.
func WithIDGenerator(newID func() string) Option {
	return func(s *Service) { s.newID = newID }
}

// WithPublisher attaches an event publisher for recorded transactions.
func WithPublisher(p Publisher) Option {
	return func(s *Service) { s.pub = p }
}

func New(st store.Store, sess *session.Holder, opts ...Option) *Service {
	s := &Service{
		store:   st,
		session: sess,
		now:     time.Now,
		newID:   uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register creates a new user. Usernames must be unique across all existing
// users; the check is a linear scan since the store has no secondary index.
func (s *Service) Register(ctx context.Context, username, password string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := core.ValidateCredentials(username, password); err != nil {
		return "", err
	}

	users, err := s.store.AllUsers(ctx)
	if err != nil {
		return "", fmt.Errorf("scan users: %w", err)
	}
	for _, u := range users {
		if u.Username == username {
			return "", core.ErrDuplicateUser
		}
	}

	u := core.User{
		ID:       s.newID(),
		Username: username,
		Password: password,
	}
	if err := s.store.PutUser(ctx, u); err != nil {
		return "", fmt.Errorf("persist user: %w", err)
	}

	slog.InfoContext(ctx, "User registered", "id", u.ID, "username", u.Username)
	return fmt.Sprintf("%s added successfully.", u.Username), nil
}

// Authenticate verifies the credentials and makes the matching user the
// active session. A prior session, if any, is silently replaced.
// Passwords are compared in plain text.
func (s *Service) Authenticate(ctx context.Context, username, password string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := core.ValidateCredentials(username, password); err != nil {
		return "", err
	}

	users, err := s.store.AllUsers(ctx)
	if err != nil {
		return "", fmt.Errorf("scan users: %w", err)
	}

	for _, u := range users {
		if u.Username != username {
			continue
		}
		if u.Password != password {
			return "", core.ErrInvalidCredentials
		}
		s.session.Set(u)
		slog.InfoContext(ctx, "User logged in", "id", u.ID, "username", u.Username)
		return "Logged in", nil
	}

	return "", core.ErrUserNotFound
}

// Logout clears the active session.
func (s *Service) Logout(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.session.Clear(); err != nil {
		return "", err
	}

	slog.InfoContext(ctx, "User logged out")
	return "Logged out successfully.", nil
}

// CurrentUsername returns the username of the active session.
func (s *Service) CurrentUsername(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, err := s.session.Current()
	if err != nil {
		return "", err
	}
	return u.Username, nil
}

// AddIncome appends an income entry for the active session's user.
func (s *Service) AddIncome(ctx context.Context, p core.TransactionPayload) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.addTransaction(ctx, core.KindIncome, p); err != nil {
		return "", err
	}
	return "Income added successfully.", nil
}

// AddExpense appends an expense entry for the active session's user.
func (s *Service) AddExpense(ctx context.Context, p core.TransactionPayload) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.addTransaction(ctx, core.KindExpense, p); err != nil {
		return "", err
	}
	return "Expense added successfully.", nil
}

func (s *Service) addTransaction(ctx context.Context, kind core.Kind, p core.TransactionPayload) error {
	u, err := s.session.Current()
	if err != nil {
		return err
	}
	if err := p.Validate(); err != nil {
		return err
	}

	t := core.Transaction{
		ID:          s.newID(),
		UserID:      u.ID,
		Name:        p.Name,
		Amount:      p.Amount,
		Description: p.Description,
		Location:    p.Location,
		Timestamp:   s.now().UnixNano(),
	}
	if err := s.store.PutTransaction(ctx, kind, t); err != nil {
		return fmt.Errorf("persist %s: %w", kind, err)
	}

	log.NewStructuredLogger(log.FromContext(ctx)).
		LogTransactionRecorded(ctx, string(kind), t.ID, t.Amount)

	// The record is durable at this point; a lost event only delays export
	// until the worker's periodic backfill.
	if s.pub != nil {
		if err := s.pub.PublishTransactionRecorded(ctx, kind, t.ID); err != nil {
			slog.ErrorContext(ctx, "Failed to publish transaction event",
				"kind", kind, "id", t.ID, "error", err)
		}
	}

	return nil
}
