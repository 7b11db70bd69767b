package session

import (
	"errors"
	"testing"

	"fintrack/internal/core"
)

func TestHolderLifecycle(t *testing.T) {
	h := NewHolder()

	if _, err := h.Current(); !errors.Is(err, core.ErrNoSession) {
		t.Fatalf("expected ErrNoSession, got %v", err)
	}
	if err := h.Clear(); !errors.Is(err, core.ErrNoSession) {
		t.Fatalf("expected ErrNoSession on clear, got %v", err)
	}

	h.Set(core.User{ID: "u1", Username: "alice"})
	u, err := h.Current()
	if err != nil {
		t.Fatalf("expected session, got %v", err)
	}
	if u.Username != "alice" {
		t.Fatalf("expected alice, got %s", u.Username)
	}

	// A second Set silently replaces the identity.
	h.Set(core.User{ID: "u2", Username: "bob"})
	u, _ = h.Current()
	if u.Username != "bob" {
		t.Fatalf("expected bob, got %s", u.Username)
	}

	if err := h.Clear(); err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	if err := h.Clear(); !errors.Is(err, core.ErrNoSession) {
		t.Fatalf("second clear should fail with ErrNoSession, got %v", err)
	}
}
