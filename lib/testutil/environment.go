// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/bureau-foundation/tripswap/lib/session"
)

// PointAt isolates a CLI test from the developer's machine and points
// it at backend: the API URL and session file come from the
// environment, TRIPSWAP_CONFIG is cleared, and the working directory
// is an empty temp dir so no .env is picked up. It returns the session
// file path.
func PointAt(t *testing.T, backend *Backend) string {
	t.Helper()
	directory := t.TempDir()
	sessionFile := filepath.Join(directory, "session.json")
	t.Setenv("TRIPSWAP_API_URL", backend.URL())
	t.Setenv("TRIPSWAP_SESSION_FILE", sessionFile)
	t.Setenv("TRIPSWAP_CONFIG", "")
	t.Chdir(directory)
	return sessionFile
}

// SignIn writes a session file holding token for email, as
// "tripswap login" would.
func SignIn(t *testing.T, sessionFile, token, email string) {
	t.Helper()
	if err := session.New(session.NewFileStore(sessionFile)).SignIn(token, email); err != nil {
		t.Fatalf("writing session: %v", err)
	}
}

// WriteFile writes content to a new file in a temp dir and returns its
// path.
func WriteFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
	return path
}
