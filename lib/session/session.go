// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package session holds the signed-in user's bearer token.
//
// A [Session] is created once per process and passed explicitly to
// the API client and to every screen or command that needs to know
// whether the user is signed in. There is no package-level session.
// The token is persisted through a [Store] so that it survives
// restarts: [FileStore] for real use, [MemoryStore] for tests.
//
// Tokens never expire client-side. A 401 from the backend is the only
// signal that a token is no longer good, and callers handle it by
// sending the user back to login.
package session

import (
	"fmt"
	"sync"
)

// State is the persisted form of a session.
type State struct {
	// Token is the bearer token returned by login.
	Token string `json:"token"`

	// Email is the address the user signed in with. Informational
	// only; the backend identifies the user from the token.
	Email string `json:"email,omitempty"`
}

// Store persists session state. Load returns the zero State (and no
// error) when nothing has been saved.
type Store interface {
	Load() (State, error)
	Save(State) error
	Clear() error
}

// Session is the in-process view of the authentication state. It is
// safe for concurrent use: API calls run on background goroutines
// while the UI reads Authenticated from its event loop.
type Session struct {
	mu    sync.RWMutex
	state State
	store Store
}

// New returns a signed-out session that persists through store. A nil
// store keeps the session in memory only.
func New(store Store) *Session {
	if store == nil {
		store = &MemoryStore{}
	}
	return &Session{store: store}
}

// Open returns a session initialized from whatever store last saved.
func Open(store Store) (*Session, error) {
	session := New(store)
	state, err := session.store.Load()
	if err != nil {
		return nil, fmt.Errorf("loading session: %w", err)
	}
	session.state = state
	return session, nil
}

// Token returns the bearer token, or "" when signed out.
func (session *Session) Token() string {
	session.mu.RLock()
	defer session.mu.RUnlock()
	return session.state.Token
}

// Email returns the address the current token was issued for.
func (session *Session) Email() string {
	session.mu.RLock()
	defer session.mu.RUnlock()
	return session.state.Email
}

// Authenticated reports whether a token is present. It says nothing
// about whether the backend still accepts the token.
func (session *Session) Authenticated() bool {
	return session.Token() != ""
}

// SignIn records a freshly issued token and persists it. The in-memory
// state is updated even when persisting fails, so the current process
// stays signed in; the error tells the caller the next run will not be.
func (session *Session) SignIn(token, email string) error {
	if token == "" {
		return fmt.Errorf("session: empty token")
	}

	session.mu.Lock()
	session.state = State{Token: token, Email: email}
	state := session.state
	session.mu.Unlock()

	if err := session.store.Save(state); err != nil {
		return fmt.Errorf("saving session: %w", err)
	}
	return nil
}

// SignOut forgets the token and removes the persisted copy. Like
// SignIn, the in-memory state is cleared regardless of store errors.
func (session *Session) SignOut() error {
	session.mu.Lock()
	session.state = State{}
	session.mu.Unlock()

	if err := session.store.Clear(); err != nil {
		return fmt.Errorf("clearing session: %w", err)
	}
	return nil
}
