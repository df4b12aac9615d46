// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/bureau-foundation/tripswap/lib/secret"
)

// FilePath returns the default session file location. Checks the
// TRIPSWAP_SESSION_FILE environment variable first, then
// $XDG_CONFIG_HOME/tripswap/session.json, then
// ~/.config/tripswap/session.json.
func FilePath() string {
	if envPath := os.Getenv("TRIPSWAP_SESSION_FILE"); envPath != "" {
		return envPath
	}

	configDirectory := os.Getenv("XDG_CONFIG_HOME")
	if configDirectory == "" {
		homeDirectory, err := os.UserHomeDir()
		if err != nil {
			return filepath.Join(os.TempDir(), "tripswap-session.json")
		}
		configDirectory = filepath.Join(homeDirectory, ".config")
	}
	return filepath.Join(configDirectory, "tripswap", "session.json")
}

// FileStore keeps the session as a JSON file readable only by the
// owner, since it contains a bearer token.
type FileStore struct {
	Path string
}

// NewFileStore returns a store at path, or at [FilePath] when path is
// empty.
func NewFileStore(path string) *FileStore {
	if path == "" {
		path = FilePath()
	}
	return &FileStore{Path: path}
}

// Load reads the session file. A missing file is a signed-out session.
func (store *FileStore) Load() (State, error) {
	data, err := os.ReadFile(store.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return State{}, nil
		}
		return State{}, fmt.Errorf("reading session file %s: %w", store.Path, err)
	}
	defer secret.Zero(data)

	var state State
	if err := json.Unmarshal(data, &state); err != nil {
		return State{}, fmt.Errorf("parsing session file %s: %w", store.Path, err)
	}
	return state, nil
}

// Save writes the session file, creating the parent directory with
// mode 0700 if needed. The file itself is mode 0600.
func (store *FileStore) Save(state State) error {
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling session: %w", err)
	}
	data = append(data, '\n')
	defer secret.Zero(data)

	directory := filepath.Dir(store.Path)
	if err := os.MkdirAll(directory, 0700); err != nil {
		return fmt.Errorf("creating session directory %s: %w", directory, err)
	}
	if err := os.WriteFile(store.Path, data, 0600); err != nil {
		return fmt.Errorf("writing session file %s: %w", store.Path, err)
	}
	// WriteFile keeps the mode of an existing file.
	if err := os.Chmod(store.Path, 0600); err != nil {
		return fmt.Errorf("restricting session file %s: %w", store.Path, err)
	}
	return nil
}

// Clear deletes the session file. Deleting a file that does not exist
// is not an error.
func (store *FileStore) Clear() error {
	if err := os.Remove(store.Path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("removing session file %s: %w", store.Path, err)
	}
	return nil
}

// MemoryStore keeps the session in memory. Used by tests and by
// processes that should not touch the user's session file.
type MemoryStore struct {
	mu    sync.Mutex
	state State
	saves int
}

// Load returns the last saved state.
func (store *MemoryStore) Load() (State, error) {
	store.mu.Lock()
	defer store.mu.Unlock()
	return store.state, nil
}

// Save records state.
func (store *MemoryStore) Save(state State) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.state = state
	store.saves++
	return nil
}

// Clear forgets the saved state.
func (store *MemoryStore) Clear() error {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.state = State{}
	return nil
}

// Saves returns how many times Save has been called.
func (store *MemoryStore) Saves() int {
	store.mu.Lock()
	defer store.mu.Unlock()
	return store.saves
}
