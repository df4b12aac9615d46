// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package marketui

import (
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"

	"github.com/bureau-foundation/tripswap/lib/apiclient"
	"github.com/bureau-foundation/tripswap/lib/clock"
	"github.com/bureau-foundation/tripswap/lib/market"
	"github.com/bureau-foundation/tripswap/lib/session"
	"github.com/bureau-foundation/tripswap/lib/testutil"
)

const (
	sellerEmail    = "asha@example.com"
	sellerPassword = "correct horse"
)

// harness is a client wired to a fake backend with one account.
type harness struct {
	backend *testutil.Backend
	session *session.Session
	client  *apiclient.Client
	clock   *clock.FakeClock
	token   string
}

func newHarness(t *testing.T, signedIn bool) *harness {
	t.Helper()
	backend := testutil.NewBackend(t)
	token := backend.AddAccount(market.Profile{
		Name:   "Asha Rao",
		Email:  sellerEmail,
		Phone:  "+15550100",
		Gender: market.GenderFemale,
	}, sellerPassword)

	sess := session.New(&session.MemoryStore{})
	if signedIn {
		if err := sess.SignIn(token, sellerEmail); err != nil {
			t.Fatalf("SignIn: %v", err)
		}
	}
	client, err := apiclient.New(apiclient.Config{
		BaseURL: backend.URL(),
		Session: sess,
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	if err != nil {
		t.Fatalf("apiclient.New: %v", err)
	}
	return &harness{
		backend: backend,
		session: sess,
		client:  client,
		clock:   clock.Fake(time.Date(2026, time.October, 19, 9, 0, 0, 0, time.UTC)),
		token:   token,
	}
}

func (h *harness) options() Options {
	return Options{Client: h.client, Clock: h.clock}
}

// env returns the screen environment NewModel would build.
func (h *harness) env() *env {
	return NewModel(h.options()).env
}

// trip returns a complete listing for seat on the Paris to Rome train.
func trip(seat string) market.TicketInput {
	return market.TicketInput{
		Name:        "Asha Rao",
		Email:       sellerEmail,
		Phone:       "+15550100",
		Gender:      market.GenderFemale,
		Departure:   "Paris",
		Destination: "Rome",
		Date:        market.MustParseDate("2026-11-02"),
		Time:        "08:15",
		Seat:        seat,
		Class:       market.ClassEconomy,
		Price:       decimal.NewFromInt(120),
	}
}

// runCmd executes cmd, expanding batches, and delivers every result on
// the returned channel. Commands that block (notice fades, the
// redirect timer) deliver late or never; callers wait only for what
// they need.
func runCmd(cmd tea.Cmd) <-chan tea.Msg {
	messages := make(chan tea.Msg, 64)
	var launch func(tea.Cmd)
	launch = func(cmd tea.Cmd) {
		if cmd == nil {
			return
		}
		go func() {
			message := cmd()
			if batch, ok := message.(tea.BatchMsg); ok {
				for _, inner := range batch {
					launch(inner)
				}
				return
			}
			if message != nil {
				messages <- message
			}
		}()
	}
	launch(cmd)
	return messages
}

// awaitMsg runs cmd and returns its first result of type T.
func awaitMsg[T tea.Msg](t *testing.T, cmd tea.Cmd) T {
	t.Helper()
	if cmd == nil {
		var zero T
		t.Fatalf("expected a command producing %T, got nil", zero)
	}
	messages := runCmd(cmd)
	deadline := time.After(5 * time.Second)
	for {
		select {
		case message := <-messages:
			if typed, ok := message.(T); ok {
				return typed
			}
		case <-deadline:
			var zero T
			t.Fatalf("no %T within 5s", zero)
		}
	}
}

func send(model Model, message tea.Msg) (Model, tea.Cmd) {
	next, cmd := model.Update(message)
	return next.(Model), cmd
}

func runes(text string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)}
}

func TestNewModelStartsOnLoginWhenSignedOut(t *testing.T) {
	h := newHarness(t, false)
	if route := NewModel(h.options()).Route(); route != "login" {
		t.Errorf("Route() = %q, want login", route)
	}
}

func TestNewModelStartsOnHomeWhenSignedIn(t *testing.T) {
	h := newHarness(t, true)
	if route := NewModel(h.options()).Route(); route != "home" {
		t.Errorf("Route() = %q, want home", route)
	}
}

func TestLoginStoresTokenAndGoesHome(t *testing.T) {
	h := newHarness(t, false)
	model := NewModel(h.options())
	model.Init()

	model, _ = send(model, runes(sellerEmail))
	model, _ = send(model, tea.KeyMsg{Type: tea.KeyTab})
	model, _ = send(model, runes(sellerPassword))
	model, cmd := send(model, tea.KeyMsg{Type: tea.KeyEnter})

	result := awaitMsg[loginResultMsg](t, cmd)
	if result.err != nil {
		t.Fatalf("login failed: %v", result.err)
	}
	model, cmd = send(model, result)
	model, _ = send(model, awaitMsg[navigateMsg](t, cmd))

	if route := model.Route(); route != "home" {
		t.Errorf("Route() = %q, want home", route)
	}
	if !h.session.Authenticated() || h.session.Email() != sellerEmail {
		t.Errorf("session = (%q, %v), want signed in as %s", h.session.Email(), h.session.Authenticated(), sellerEmail)
	}
	if model.notice != "Welcome back." {
		t.Errorf("notice = %q, want %q", model.notice, "Welcome back.")
	}
}

func TestLoginFailureShowsServerMessage(t *testing.T) {
	h := newHarness(t, false)
	model := NewModel(h.options())
	model.Init()

	model, _ = send(model, runes(sellerEmail))
	model, _ = send(model, tea.KeyMsg{Type: tea.KeyTab})
	model, _ = send(model, runes("wrong"))
	model, cmd := send(model, tea.KeyMsg{Type: tea.KeyEnter})
	model, _ = send(model, awaitMsg[loginResultMsg](t, cmd))

	if route := model.Route(); route != "login" {
		t.Errorf("Route() = %q, want login", route)
	}
	if h.session.Authenticated() {
		t.Error("session should not be signed in after a failed login")
	}
	if !strings.Contains(model.View(), "Invalid credentials") {
		t.Errorf("view does not show the server message:\n%s", model.View())
	}
}

func TestLoginValidatesLocally(t *testing.T) {
	h := newHarness(t, false)
	model := NewModel(h.options())
	model.Init()

	model, _ = send(model, tea.KeyMsg{Type: tea.KeyTab})
	_, cmd := send(model, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Error("empty credentials should not produce a request")
	}
	if count := h.backend.RequestCount(testutil.RouteLogin); count != 0 {
		t.Errorf("login requests = %d, want 0", count)
	}
}

func TestGlobalNavigationRequiresSession(t *testing.T) {
	h := newHarness(t, false)
	model := NewModel(h.options())
	model, _ = send(model, tea.KeyMsg{Type: tea.KeyF2})
	if route := model.Route(); route != "login" {
		t.Errorf("F2 while signed out moved to %q", route)
	}
}

func TestGlobalNavigationSwitchesScreens(t *testing.T) {
	h := newHarness(t, true)
	model := NewModel(h.options())

	model, cmd := send(model, tea.KeyMsg{Type: tea.KeyF3})
	if route := model.Route(); route != "my-tickets" {
		t.Fatalf("Route() = %q, want my-tickets", route)
	}
	if model.myTickets == nil {
		t.Fatal("my-tickets screen not retained")
	}
	awaitMsg[myTicketsLoadedMsg](t, cmd)

	model, _ = send(model, tea.KeyMsg{Type: tea.KeyF4})
	if route := model.Route(); route != "create-ticket" {
		t.Errorf("Route() = %q, want create-ticket", route)
	}
}

func TestTypedLettersReachFocusedForm(t *testing.T) {
	h := newHarness(t, true)
	model := NewModel(h.options())
	model.Init()

	// "q" and "b" are global bindings, but the home form has focus.
	model, _ = send(model, runes("qb"))
	if route := model.Route(); route != "home" {
		t.Fatalf("Route() = %q, want home", route)
	}
	home := model.current.(*homeScreen)
	if got := home.form.value(home.from); got != "qb" {
		t.Errorf("from = %q, want qb", got)
	}
}

func TestLogoutClearsSessionAndReturnsToLogin(t *testing.T) {
	h := newHarness(t, true)
	model := NewModel(h.options())

	model, cmd := send(model, tea.KeyMsg{Type: tea.KeyF10})
	model, _ = send(model, awaitMsg[logoutResultMsg](t, cmd))

	if route := model.Route(); route != "login" {
		t.Errorf("Route() = %q, want login", route)
	}
	if h.session.Authenticated() {
		t.Error("session still authenticated after logout")
	}
	if count := h.backend.RequestCount(testutil.RouteLogout); count != 1 {
		t.Errorf("logout requests = %d, want 1", count)
	}
}

func TestNoticeFadesOnlyForItsGeneration(t *testing.T) {
	h := newHarness(t, true)
	model := NewModel(h.options())

	model, _ = send(model, noticeMsg{text: "first"})
	model, _ = send(model, noticeMsg{text: "second"})
	model, _ = send(model, noticeFadeMsg{generation: 1})
	if model.notice != "second" {
		t.Fatalf("stale fade cleared the notice: %q", model.notice)
	}
	model, _ = send(model, noticeFadeMsg{generation: 2})
	if model.notice != "" {
		t.Errorf("notice = %q after its fade, want empty", model.notice)
	}
}

func TestLogRecordsBecomeNotices(t *testing.T) {
	h := newHarness(t, true)
	model := NewModel(h.options())

	model, _ = send(model, logRecordMsg{Summary: "listing fetch failed", Level: slog.LevelError})
	if model.notice != "listing fetch failed" || !model.noticeIsError {
		t.Errorf("notice = (%q, error=%v)", model.notice, model.noticeIsError)
	}
	model, _ = send(model, logRecordMsg{Summary: "ticket listed", Level: slog.LevelInfo})
	if model.noticeIsError {
		t.Error("info record shown as an error")
	}
}

func TestViewFitsWindow(t *testing.T) {
	h := newHarness(t, true)
	model := NewModel(h.options())
	model, _ = send(model, tea.WindowSizeMsg{Width: 80, Height: 24})

	lines := strings.Split(model.View(), "\n")
	if len(lines) != 24 {
		t.Errorf("view has %d lines, want 24", len(lines))
	}
	if !strings.Contains(lines[0], "tripswap") || !strings.Contains(lines[0], sellerEmail) {
		t.Errorf("header = %q", lines[0])
	}
}
