// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/bureau-foundation/tripswap/lib/market"
)

func sampleInput() market.TicketInput {
	return market.TicketInput{
		Name:        "Asha",
		Email:       "asha@example.com",
		Phone:       "5550100",
		Gender:      market.GenderFemale,
		Departure:   "Pune",
		Destination: "Goa",
		Date:        market.MustParseDate("2026-11-02"),
		Time:        "08:30",
		Seat:        "4A",
		Class:       market.ClassEconomy,
		Price:       decimal.NewFromInt(42),
	}
}

func doRequest(t *testing.T, backend *Backend, method, path, token string, body any) (int, map[string]any) {
	t.Helper()
	var reader *strings.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		reader = strings.NewReader(string(encoded))
	} else {
		reader = strings.NewReader("")
	}
	request, err := http.NewRequest(method, backend.URL()+path, reader)
	if err != nil {
		t.Fatal(err)
	}
	if token != "" {
		request.Header.Set("Authorization", "Bearer "+token)
	}
	response, err := http.DefaultClient.Do(request)
	if err != nil {
		t.Fatal(err)
	}
	defer response.Body.Close()
	var decoded map[string]any
	if err := json.NewDecoder(response.Body).Decode(&decoded); err != nil {
		t.Fatalf("decoding %s %s response: %v", method, path, err)
	}
	return response.StatusCode, decoded
}

func TestBackendRequiresToken(t *testing.T) {
	backend := NewBackend(t)
	status, body := doRequest(t, backend, http.MethodGet, "/api/v1/tickets/all", "", nil)
	if status != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", status)
	}
	if body["message"] != "Unauthorized" {
		t.Errorf("message = %v", body["message"])
	}
}

func TestBackendDuplicateListingConflicts(t *testing.T) {
	backend := NewBackend(t)
	token := backend.AddAccount(market.Profile{Name: "Asha", Email: "asha@example.com"}, "pw")

	status, _ := doRequest(t, backend, http.MethodPost, "/api/v1/tickets", token, sampleInput())
	if status != http.StatusCreated {
		t.Fatalf("first create status = %d, want 201", status)
	}
	status, body := doRequest(t, backend, http.MethodPost, "/api/v1/tickets", token, sampleInput())
	if status != http.StatusConflict {
		t.Fatalf("second create status = %d, want 409", status)
	}
	if body["success"] != false {
		t.Errorf("success = %v, want false", body["success"])
	}
	if got := len(backend.Tickets()); got != 1 {
		t.Errorf("stored %d tickets, want 1", got)
	}
}

func TestBackendFailIsOneShot(t *testing.T) {
	backend := NewBackend(t)
	token := backend.AddAccount(market.Profile{Name: "Asha", Email: "asha@example.com"}, "pw")
	backend.Fail(RouteListAll, http.StatusInternalServerError, "database unavailable")

	status, body := doRequest(t, backend, http.MethodGet, "/api/v1/tickets/all", token, nil)
	if status != http.StatusInternalServerError || body["message"] != "database unavailable" {
		t.Fatalf("first request = %d %v", status, body)
	}
	status, _ = doRequest(t, backend, http.MethodGet, "/api/v1/tickets/all", token, nil)
	if status != http.StatusOK {
		t.Fatalf("second request status = %d, want 200", status)
	}
	if got := backend.RequestCount(RouteListAll); got != 2 {
		t.Errorf("RequestCount = %d, want 2", got)
	}
}

func TestBackendDeleteChecksOwner(t *testing.T) {
	backend := NewBackend(t)
	backend.AddAccount(market.Profile{Name: "Asha", Email: "asha@example.com"}, "pw")
	otherToken := backend.AddAccount(market.Profile{Name: "Ravi", Email: "ravi@example.com"}, "pw")
	ticket := backend.AddTicket("asha@example.com", sampleInput())

	status, _ := doRequest(t, backend, http.MethodDelete, "/api/v1/remove/tickets/"+ticket.ID, otherToken, nil)
	if status != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", status)
	}
	if got := len(backend.Tickets()); got != 1 {
		t.Errorf("ticket was removed by a non-owner")
	}
}
