// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package account

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"testing"

	"github.com/bureau-foundation/tripswap/cmd/tripswap/cli"
	"github.com/bureau-foundation/tripswap/lib/market"
	"github.com/bureau-foundation/tripswap/lib/session"
	"github.com/bureau-foundation/tripswap/lib/testutil"
)

const (
	email    = "asha@example.com"
	password = "correct horse"
)

func run(t *testing.T, command *cli.Command, args ...string) (string, error) {
	t.Helper()
	var output bytes.Buffer
	ctx := cli.WithOutput(context.Background(), &output)
	err := command.Execute(ctx, args, slog.New(slog.DiscardHandler))
	return output.String(), err
}

func newBackend(t *testing.T) (*testutil.Backend, string, string) {
	t.Helper()
	backend := testutil.NewBackend(t)
	token := backend.AddAccount(market.Profile{
		Name:   "Asha Rao",
		Email:  email,
		Phone:  "5551234",
		Gender: market.GenderFemale,
	}, password)
	return backend, testutil.PointAt(t, backend), token
}

func storedSession(t *testing.T, sessionFile string) *session.Session {
	t.Helper()
	stored, err := session.Open(session.NewFileStore(sessionFile))
	if err != nil {
		t.Fatalf("opening session: %v", err)
	}
	return stored
}

func categoryOf(t *testing.T, err error) cli.ErrorCategory {
	t.Helper()
	var toolErr *cli.ToolError
	if !errors.As(err, &toolErr) {
		t.Fatalf("error %v (%T) is not a ToolError", err, err)
	}
	return toolErr.Category
}

func TestLoginSavesSession(t *testing.T) {
	_, sessionFile, _ := newBackend(t)
	passwordFile := testutil.WriteFile(t, "password", password+"\n")

	output, err := run(t, LoginCommand(), email, "--password-file", passwordFile)
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if !strings.Contains(output, "Signed in as "+email) {
		t.Errorf("output = %q", output)
	}

	stored := storedSession(t, sessionFile)
	if !stored.Authenticated() || stored.Email() != email {
		t.Errorf("session = (%v, %q), want signed in as %s", stored.Authenticated(), stored.Email(), email)
	}
}

func TestLoginRejectedCredentials(t *testing.T) {
	_, sessionFile, _ := newBackend(t)
	passwordFile := testutil.WriteFile(t, "password", "wrong")

	_, err := run(t, LoginCommand(), email, "--password-file", passwordFile)
	if err == nil {
		t.Fatal("login with a wrong password succeeded")
	}
	if err.Error() != "Invalid credentials" {
		t.Errorf("error = %q, want the backend's message", err.Error())
	}
	if categoryOf(t, err) != cli.CategoryValidation {
		t.Errorf("category = %s", categoryOf(t, err))
	}
	if _, statErr := os.Stat(sessionFile); !errors.Is(statErr, os.ErrNotExist) {
		t.Errorf("session file written after a failed login: %v", statErr)
	}
}

func TestLoginRequiresEmail(t *testing.T) {
	newBackend(t)
	_, err := run(t, LoginCommand())
	if err == nil || categoryOf(t, err) != cli.CategoryValidation {
		t.Errorf("err = %v, want a validation error", err)
	}
}

func TestLoginNetworkFailure(t *testing.T) {
	newBackend(t)
	t.Setenv("TRIPSWAP_API_URL", "http://127.0.0.1:1")
	passwordFile := testutil.WriteFile(t, "password", password)

	_, err := run(t, LoginCommand(), email, "--password-file", passwordFile)
	if err == nil || categoryOf(t, err) != cli.CategoryTransient {
		t.Fatalf("err = %v, want a transient error", err)
	}
	if !strings.Contains(err.Error(), "Network error") {
		t.Errorf("error = %q, want the network message", err.Error())
	}
}

func TestLogoutClearsSessionEvenWhenBackendFails(t *testing.T) {
	backend, sessionFile, token := newBackend(t)
	testutil.SignIn(t, sessionFile, token, email)
	backend.Fail(testutil.RouteLogout, http.StatusInternalServerError, "boom")

	output, err := run(t, LogoutCommand())
	if err != nil {
		t.Fatalf("logout: %v", err)
	}
	if !strings.Contains(output, "Signed out.") {
		t.Errorf("output = %q", output)
	}
	if storedSession(t, sessionFile).Authenticated() {
		t.Error("session still present after logout")
	}
}

func TestLogoutWhenSignedOut(t *testing.T) {
	backend, _, _ := newBackend(t)
	output, err := run(t, LogoutCommand())
	if err != nil {
		t.Fatalf("logout: %v", err)
	}
	if !strings.Contains(output, "Not signed in.") {
		t.Errorf("output = %q", output)
	}
	if count := backend.RequestCount(testutil.RouteLogout); count != 0 {
		t.Errorf("logout requests = %d, want 0", count)
	}
}

func TestSignupCreatesAccount(t *testing.T) {
	backend, _, _ := newBackend(t)
	passwordFile := testutil.WriteFile(t, "password", "hunter22")

	output, err := run(t, SignupCommand(),
		"--name", "Ravi", "--email", "ravi@example.com", "--phone", "5550000",
		"--gender", "Male", "--password-file", passwordFile)
	if err != nil {
		t.Fatalf("signup: %v", err)
	}
	if !strings.Contains(output, "tripswap login ravi@example.com") {
		t.Errorf("output = %q", output)
	}
	if count := backend.RequestCount(testutil.RouteSignup); count != 1 {
		t.Errorf("signup requests = %d, want 1", count)
	}
}

func TestSignupValidatesLocally(t *testing.T) {
	backend, _, _ := newBackend(t)
	passwordFile := testutil.WriteFile(t, "password", "hunter22")

	_, err := run(t, SignupCommand(), "--email", "not-an-address", "--password-file", passwordFile)
	if err == nil {
		t.Fatal("signup without a name succeeded")
	}
	for _, want := range []string{"name is required", "invalid email", "phone is required"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q lacks %q", err.Error(), want)
		}
	}
	if count := backend.RequestCount(testutil.RouteSignup); count != 0 {
		t.Errorf("signup requests = %d, want 0", count)
	}
}

func TestSignupExistingAccount(t *testing.T) {
	newBackend(t)
	passwordFile := testutil.WriteFile(t, "password", "hunter22")

	_, err := run(t, SignupCommand(),
		"--name", "Asha", "--email", email, "--phone", "5551234",
		"--gender", "female", "--password-file", passwordFile)
	var toolErr *cli.ToolError
	if !errors.As(err, &toolErr) {
		t.Fatalf("err = %v, want a ToolError", err)
	}
	if toolErr.Error() != "User already exists" || toolErr.Hint == "" {
		t.Errorf("got (%q, hint %q)", toolErr.Error(), toolErr.Hint)
	}
}

func TestProfileShow(t *testing.T) {
	_, sessionFile, token := newBackend(t)
	testutil.SignIn(t, sessionFile, token, email)

	output, err := run(t, ProfileCommand(), "show")
	if err != nil {
		t.Fatalf("profile show: %v", err)
	}
	for _, want := range []string{"Asha Rao", "5551234", "Female", "March 2024", "Tickets sold:"} {
		if !strings.Contains(output, want) {
			t.Errorf("output lacks %q:\n%s", want, output)
		}
	}
}

func TestProfileShowRequiresSession(t *testing.T) {
	backend, _, _ := newBackend(t)
	_, err := run(t, ProfileCommand(), "show")
	if err == nil || categoryOf(t, err) != cli.CategoryUnauthorized {
		t.Fatalf("err = %v, want unauthorized", err)
	}
	if count := backend.RequestCount(testutil.RouteProfile); count != 0 {
		t.Errorf("profile requests = %d, want 0", count)
	}
}

func TestProfileShowRevokedToken(t *testing.T) {
	backend, sessionFile, token := newBackend(t)
	testutil.SignIn(t, sessionFile, token, email)
	backend.RevokeTokens()

	_, err := run(t, ProfileCommand(), "show")
	if err == nil || categoryOf(t, err) != cli.CategoryUnauthorized {
		t.Fatalf("err = %v, want unauthorized", err)
	}
}

func TestProfileEditChangesOnlyGivenFields(t *testing.T) {
	_, sessionFile, token := newBackend(t)
	testutil.SignIn(t, sessionFile, token, email)

	output, err := run(t, ProfileCommand(), "edit", "--phone", "5559876", "--json")
	if err != nil {
		t.Fatalf("profile edit: %v", err)
	}
	if !strings.Contains(output, `"phone": "5559876"`) || !strings.Contains(output, `"name": "Asha Rao"`) {
		t.Errorf("output = %s", output)
	}
}

func TestProfileEditNeedsAChange(t *testing.T) {
	backend, sessionFile, token := newBackend(t)
	testutil.SignIn(t, sessionFile, token, email)

	_, err := run(t, ProfileCommand(), "edit")
	if err == nil || categoryOf(t, err) != cli.CategoryValidation {
		t.Fatalf("err = %v, want a validation error", err)
	}
	if count := backend.RequestCount(testutil.RouteEditProfile); count != 0 {
		t.Errorf("edit requests = %d, want 0", count)
	}
}
