// Package session holds the single process-wide authenticated user.
//
// At most one session exists at a time: a successful authentication replaces
// whatever session was active before, and logout clears it. The holder is
// injected into the services that need it rather than living in a package
// global, so tests can reset state between cases.
package session

import (
	"sync"

	"fintrack/internal/core"
)

// Holder is the mutable record of which user, if any, is logged in.
// It is not persisted: a process restart starts logged out.
type Holder struct {
	mu      sync.Mutex
	current *core.User
}

func NewHolder() *Holder {
	return &Holder{}
}

// Set replaces the active session with the given user.
func (h *Holder) Set(u core.User) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.current = &u
}

// Clear ends the active session. Returns core.ErrNoSession if none is active.
func (h *Holder) Clear() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.current == nil {
		return core.ErrNoSession
	}
	h.current = nil
	return nil
}

// Current returns the logged-in user, or core.ErrNoSession.
func (h *Holder) Current() (core.User, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.current == nil {
		return core.User{}, core.ErrNoSession
	}
	return *h.current, nil
}

// Active reports whether a session exists without returning the user.
func (h *Holder) Active() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.current != nil
}
