// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"

	"github.com/bureau-foundation/tripswap/lib/market"
	"github.com/bureau-foundation/tripswap/lib/session"
)

// newTestClient returns a client pointed at handler with a signed-in
// session holding "test-token".
func newTestClient(t *testing.T, handler http.Handler) (*Client, *session.Session) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	sess := session.New(&session.MemoryStore{})
	if err := sess.SignIn("test-token", "tester@example.com"); err != nil {
		t.Fatalf("SignIn: %v", err)
	}

	client, err := New(Config{
		BaseURL: server.URL + "/",
		Session: sess,
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return client, sess
}

func writeJSON(t *testing.T, writer http.ResponseWriter, status int, body any) {
	t.Helper()
	writer.Header().Set("Content-Type", "application/json")
	writer.WriteHeader(status)
	if err := json.NewEncoder(writer).Encode(body); err != nil {
		t.Errorf("encoding response: %v", err)
	}
}

func TestNewValidatesConfig(t *testing.T) {
	sess := session.New(nil)
	tests := []struct {
		name   string
		config Config
	}{
		{"missing base URL", Config{Session: sess}},
		{"bad scheme", Config{BaseURL: "ftp://example.com", Session: sess}},
		{"missing session", Config{BaseURL: "http://example.com"}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if _, err := New(test.config); err == nil {
				t.Fatal("New succeeded, want error")
			}
		})
	}
}

func TestListTicketsSendsBearerTokenAndRequestID(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if request.Method != http.MethodGet || request.URL.Path != "/api/v1/tickets/all" {
			t.Errorf("got %s %s, want GET /api/v1/tickets/all", request.Method, request.URL.Path)
		}
		if got := request.Header.Get("Authorization"); got != "Bearer test-token" {
			t.Errorf("Authorization = %q, want %q", got, "Bearer test-token")
		}
		if _, err := uuid.Parse(request.Header.Get(RequestIDHeader)); err != nil {
			t.Errorf("%s = %q is not a UUID: %v", RequestIDHeader, request.Header.Get(RequestIDHeader), err)
		}
		writeJSON(t, writer, http.StatusOK, map[string]any{
			"success": true,
			"data": []map[string]any{
				{"_id": "b", "departure": "Delhi", "class": "economy", "price": "100"},
				{"_id": "a", "departure": "Agra", "classType": "first", "price": "250"},
			},
		})
	}))

	tickets, err := client.ListTickets(context.Background())
	if err != nil {
		t.Fatalf("ListTickets: %v", err)
	}
	if len(tickets) != 2 {
		t.Fatalf("got %d tickets, want 2", len(tickets))
	}
	if tickets[0].ID != "b" || tickets[1].ID != "a" {
		t.Errorf("order = [%s %s], want backend order [b a]", tickets[0].ID, tickets[1].ID)
	}
	if tickets[1].Class != market.ClassFirst {
		t.Errorf("tickets[1].Class = %q, want first", tickets[1].Class)
	}
}

func TestListTicketsEmptyDataIsEmptySlice(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writeJSON(t, writer, http.StatusOK, map[string]any{"success": true, "data": nil})
	}))

	tickets, err := client.ListTickets(context.Background())
	if err != nil {
		t.Fatalf("ListTickets: %v", err)
	}
	if tickets == nil || len(tickets) != 0 {
		t.Errorf("ListTickets() = %#v, want empty non-nil slice", tickets)
	}
}

func TestListTicketsToleratesBlankPrice(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writer.Header().Set("Content-Type", "application/json")
		io.WriteString(writer, `{"success": true, "data": [
			{"_id": "a", "departure": "Paris", "class": "economy", "price": "80"},
			{"_id": "b", "departure": "Lyon", "class": "first", "price": ""}
		]}`)
	}))

	tickets, err := client.ListTickets(context.Background())
	if err != nil {
		t.Fatalf("ListTickets: %v", err)
	}
	if len(tickets) != 2 {
		t.Fatalf("got %d tickets, want 2", len(tickets))
	}
	if !tickets[0].Price.Equal(decimal.NewFromInt(80)) || !tickets[1].Price.IsZero() {
		t.Errorf("prices = %s, %s; want 80, 0", tickets[0].Price, tickets[1].Price)
	}
}

func TestErrorClassification(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantKind    Kind
		wantMessage string
	}{
		{"401", http.StatusUnauthorized, `{"message":"jwt expired"}`, KindUnauthorized, "jwt expired"},
		{"409", http.StatusConflict, `{"success":false,"message":"Ticket already exists"}`, KindConflict, "Ticket already exists"},
		{"500 with message", http.StatusInternalServerError, `{"message":"db down"}`, KindApplication, "db down"},
		{"502 html body", http.StatusBadGateway, `<html>bad gateway</html>`, KindApplication, FetchFailedMessage},
		{"200 success false", http.StatusOK, `{"success":false,"message":"not allowed"}`, KindApplication, "not allowed"},
		{"200 success false without message", http.StatusOK, `{"success":false}`, KindApplication, FetchFailedMessage},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			client, _ := newTestClient(t, http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
				writer.WriteHeader(test.status)
				io.WriteString(writer, test.body)
			}))

			_, err := client.ListTickets(context.Background())
			var apiErr *Error
			if !errors.As(err, &apiErr) {
				t.Fatalf("ListTickets error = %v, want *Error", err)
			}
			if apiErr.Kind != test.wantKind {
				t.Errorf("Kind = %s, want %s", apiErr.Kind, test.wantKind)
			}
			if got := apiErr.UserMessage(FetchFailedMessage); got != test.wantMessage {
				t.Errorf("UserMessage() = %q, want %q", got, test.wantMessage)
			}
		})
	}
}

func TestNetworkError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	baseURL := server.URL
	server.Close()

	client, err := New(Config{BaseURL: baseURL, Session: session.New(nil)})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	_, err = client.ListTickets(context.Background())
	if !IsNetwork(err) {
		t.Fatalf("ListTickets against closed server = %v, want network error", err)
	}
	if got := UserMessage(err, FetchFailedMessage); got != NetworkMessage {
		t.Errorf("UserMessage() = %q, want %q", got, NetworkMessage)
	}
	if IsUnauthorized(err) || IsConflict(err) {
		t.Error("network error also classified as unauthorized or conflict")
	}
}

func TestCreateTicketConflict(t *testing.T) {
	receivedPayloads := make(chan market.TicketInput, 1)
	client, _ := newTestClient(t, http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if request.Method != http.MethodPost || request.URL.Path != "/api/v1/tickets" {
			t.Errorf("got %s %s, want POST /api/v1/tickets", request.Method, request.URL.Path)
		}
		var payload market.TicketInput
		if err := json.NewDecoder(request.Body).Decode(&payload); err != nil {
			t.Errorf("decoding body: %v", err)
		}
		receivedPayloads <- payload
		writeJSON(t, writer, http.StatusConflict, map[string]any{"success": false, "message": "Duplicate ticket"})
	}))

	input := market.TicketInput{
		Departure:   "Kochi",
		Destination: "Mysuru",
		Date:        market.MustParseDate("2025-02-14"),
		Class:       market.ClassBusiness,
		Price:       decimal.RequireFromString("410.25"),
	}
	_, err := client.CreateTicket(context.Background(), input)
	if !IsConflict(err) {
		t.Fatalf("CreateTicket = %v, want conflict", err)
	}
	received := <-receivedPayloads
	if received.Departure != "Kochi" || !received.Price.Equal(input.Price) || received.Class != market.ClassBusiness {
		t.Errorf("server received %+v, want the submitted payload", received)
	}
}

func TestUpdateAndDeleteTicketPaths(t *testing.T) {
	var (
		mutex sync.Mutex
		paths []string
	)
	client, _ := newTestClient(t, http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		mutex.Lock()
		paths = append(paths, request.Method+" "+request.URL.EscapedPath())
		mutex.Unlock()
		switch request.Method {
		case http.MethodPut:
			writeJSON(t, writer, http.StatusOK, map[string]any{
				"success": true,
				"data":    map[string]any{"_id": "t/1", "departure": "Updated"},
			})
		case http.MethodDelete:
			writeJSON(t, writer, http.StatusOK, map[string]any{"success": true})
		}
	}))

	updated, err := client.UpdateTicket(context.Background(), "t/1", market.TicketInput{Departure: "Updated"})
	if err != nil {
		t.Fatalf("UpdateTicket: %v", err)
	}
	if updated.Departure != "Updated" || updated.ID != "t/1" {
		t.Errorf("UpdateTicket() = %+v", updated)
	}
	if err := client.DeleteTicket(context.Background(), "t/1"); err != nil {
		t.Fatalf("DeleteTicket: %v", err)
	}

	mutex.Lock()
	defer mutex.Unlock()
	want := []string{"PUT /api/v1/update/tickets/t%2F1", "DELETE /api/v1/remove/tickets/t%2F1"}
	if strings.Join(paths, ",") != strings.Join(want, ",") {
		t.Errorf("paths = %v, want %v", paths, want)
	}
}

func TestLoginDoesNotTouchSession(t *testing.T) {
	client, sess := newTestClient(t, http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if request.Header.Get("Authorization") != "" {
			t.Error("login request carried an Authorization header")
		}
		var credentials market.Credentials
		if err := json.NewDecoder(request.Body).Decode(&credentials); err != nil {
			t.Errorf("decoding body: %v", err)
		}
		if credentials.Email != "new@example.com" || credentials.Password != "pw" {
			t.Errorf("credentials = %+v", credentials)
		}
		writeJSON(t, writer, http.StatusOK, map[string]any{"token": "fresh-token"})
	}))

	response, err := client.Login(context.Background(), market.Credentials{Email: "new@example.com", Password: "pw"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if response.Token != "fresh-token" {
		t.Errorf("Token = %q, want fresh-token", response.Token)
	}
	if sess.Token() != "test-token" {
		t.Errorf("session token changed to %q by Login", sess.Token())
	}
}

func TestLoginFailureMessage(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writer.WriteHeader(http.StatusBadRequest)
		io.WriteString(writer, `{}`)
	}))

	_, err := client.Login(context.Background(), market.Credentials{Email: "x", Password: "y"})
	if got := UserMessage(err, LoginFailedMessage); got != LoginFailedMessage {
		t.Errorf("UserMessage() = %q, want %q", got, LoginFailedMessage)
	}
}

func TestLogoutClearsSessionEvenOnFailure(t *testing.T) {
	client, sess := newTestClient(t, http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if request.Method != http.MethodGet || request.URL.Path != "/api/v1/logout" {
			t.Errorf("got %s %s, want GET /api/v1/logout", request.Method, request.URL.Path)
		}
		writer.WriteHeader(http.StatusInternalServerError)
	}))

	if err := client.Logout(context.Background()); err == nil {
		t.Error("Logout returned nil, want the endpoint failure")
	}
	if sess.Authenticated() {
		t.Error("session still authenticated after failed logout")
	}
}

func TestProfileRoundTrip(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		switch request.URL.Path {
		case "/api/v1/profile/get":
			writeJSON(t, writer, http.StatusOK, map[string]any{
				"success": true,
				"data":    map[string]any{"name": "Noor", "email": "noor@example.com", "ticketsBought": 2},
			})
		case "/api/v1/profile/edit":
			if request.Method != http.MethodPut {
				t.Errorf("edit method = %s, want PUT", request.Method)
			}
			var update market.ProfileUpdate
			if err := json.NewDecoder(request.Body).Decode(&update); err != nil {
				t.Errorf("decoding body: %v", err)
			}
			writeJSON(t, writer, http.StatusOK, map[string]any{
				"success": true,
				"data":    map[string]any{"name": update.Name, "email": "noor@example.com"},
			})
		default:
			t.Errorf("unexpected path %s", request.URL.Path)
		}
	}))

	profile, err := client.Profile(context.Background())
	if err != nil {
		t.Fatalf("Profile: %v", err)
	}
	if profile.Name != "Noor" || profile.TicketsBought != 2 {
		t.Errorf("Profile() = %+v", profile)
	}

	update := profile.Update()
	update.Name = "Noor A."
	edited, err := client.EditProfile(context.Background(), update)
	if err != nil {
		t.Fatalf("EditProfile: %v", err)
	}
	if edited.Name != "Noor A." {
		t.Errorf("EditProfile().Name = %q", edited.Name)
	}
}

func TestMetricsRecordOutcomes(t *testing.T) {
	var status atomic.Int32
	status.Store(http.StatusOK)
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		code := int(status.Load())
		writeJSON(t, writer, code, map[string]any{"success": code == http.StatusOK, "data": []any{}})
	}))
	t.Cleanup(server.Close)

	registry := prometheus.NewRegistry()
	metrics := NewMetrics(registry)
	client, err := New(Config{BaseURL: server.URL, Session: session.New(nil), Metrics: metrics})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if _, err := client.ListTickets(context.Background()); err != nil {
		t.Fatalf("ListTickets: %v", err)
	}
	status.Store(http.StatusUnauthorized)
	if _, err := client.ListTickets(context.Background()); !IsUnauthorized(err) {
		t.Fatalf("ListTickets = %v, want unauthorized", err)
	}

	if got := testutil.ToFloat64(metrics.requests.WithLabelValues("list tickets", "ok")); got != 1 {
		t.Errorf("ok count = %v, want 1", got)
	}
	if got := testutil.ToFloat64(metrics.requests.WithLabelValues("list tickets", "unauthorized")); got != 1 {
		t.Errorf("unauthorized count = %v, want 1", got)
	}
	if count := testutil.CollectAndCount(metrics.duration, "tripswap_api_request_duration_seconds"); count != 1 {
		t.Errorf("duration series = %d, want 1", count)
	}
}
