// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/bureau-foundation/tripswap/lib/market"
)

// Route names accepted by [Backend.Fail]. They match the ServeMux
// patterns the backend registers.
const (
	RouteLogin       = "POST /api/v1/login"
	RouteSignup      = "POST /api/v1/signup"
	RouteLogout      = "GET /api/v1/logout"
	RouteProfile     = "GET /api/v1/profile/get"
	RouteEditProfile = "PUT /api/v1/profile/edit"
	RouteCreate      = "POST /api/v1/tickets"
	RouteListAll     = "GET /api/v1/tickets/all"
	RouteListMine    = "GET /api/v1/user/tickets"
	RouteUpdate      = "PUT /api/v1/update/tickets/{id}"
	RouteDelete      = "DELETE /api/v1/remove/tickets/{id}"
)

// Request is one request the backend received.
type Request struct {
	Route         string
	Path          string
	Authorization string
	Body          []byte
}

type account struct {
	profile  market.Profile
	password string
}

type failure struct {
	status  int
	message string
}

// Backend is an in-memory ticket exchange served over httptest.
// Safe for concurrent use.
type Backend struct {
	server *httptest.Server

	mu       sync.Mutex
	accounts map[string]*account
	tokens   map[string]string
	tickets  []market.Ticket
	owners   map[string]string
	nextID   int
	nextTok  int
	failures map[string][]failure
	requests []Request
}

// NewBackend starts a backend and registers its shutdown with
// t.Cleanup.
func NewBackend(t testing.TB) *Backend {
	t.Helper()
	backend := &Backend{
		accounts: make(map[string]*account),
		tokens:   make(map[string]string),
		owners:   make(map[string]string),
		failures: make(map[string][]failure),
	}

	mux := http.NewServeMux()
	backend.handle(mux, RouteLogin, false, backend.login)
	backend.handle(mux, RouteSignup, false, backend.signup)
	backend.handle(mux, RouteLogout, true, backend.logout)
	backend.handle(mux, RouteProfile, true, backend.profile)
	backend.handle(mux, RouteEditProfile, true, backend.editProfile)
	backend.handle(mux, RouteCreate, true, backend.createTicket)
	backend.handle(mux, RouteListAll, true, backend.listAll)
	backend.handle(mux, RouteListMine, true, backend.listMine)
	backend.handle(mux, RouteUpdate, true, backend.updateTicket)
	backend.handle(mux, RouteDelete, true, backend.deleteTicket)

	backend.server = httptest.NewServer(mux)
	t.Cleanup(backend.server.Close)
	return backend
}

// URL returns the backend origin.
func (b *Backend) URL() string {
	return b.server.URL
}

// AddAccount registers an account and returns a valid token for it.
func (b *Backend) AddAccount(profile market.Profile, password string) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	if profile.CreatedAt.IsZero() {
		profile.CreatedAt = time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	}
	b.accounts[profile.Email] = &account{profile: profile, password: password}
	return b.issueTokenLocked(profile.Email)
}

// AddTicket lists a ticket on behalf of owner and returns the stored
// record. It bypasses validation and duplicate detection.
func (b *Backend) AddTicket(owner string, input market.TicketInput) market.Ticket {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.insertLocked(owner, input)
}

// Tickets returns every stored ticket in listing order.
func (b *Backend) Tickets() []market.Ticket {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]market.Ticket(nil), b.tickets...)
}

// RevokeTokens invalidates every issued token, so the next
// authenticated request fails with 401.
func (b *Backend) RevokeTokens() {
	b.mu.Lock()
	defer b.mu.Unlock()
	clear(b.tokens)
}

// Fail makes the next request to route respond with status and an
// envelope carrying message. Calls queue: each one fails exactly one
// request.
func (b *Backend) Fail(route string, status int, message string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failures[route] = append(b.failures[route], failure{status: status, message: message})
}

// Requests returns every request received so far.
func (b *Backend) Requests() []Request {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]Request(nil), b.requests...)
}

// RequestCount returns how many requests hit route.
func (b *Backend) RequestCount(route string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	count := 0
	for _, request := range b.requests {
		if request.Route == route {
			count++
		}
	}
	return count
}

// handlerFunc serves one route with b.mu held. owner is the email of
// the authenticated account, or "" for public routes.
type handlerFunc func(owner string, request *http.Request, body []byte) (int, any)

func (b *Backend) handle(mux *http.ServeMux, route string, authenticated bool, handler handlerFunc) {
	mux.HandleFunc(route, func(writer http.ResponseWriter, request *http.Request) {
		body, _ := io.ReadAll(request.Body)

		b.mu.Lock()
		b.requests = append(b.requests, Request{
			Route:         route,
			Path:          request.URL.Path,
			Authorization: request.Header.Get("Authorization"),
			Body:          body,
		})
		if queued := b.failures[route]; len(queued) > 0 {
			b.failures[route] = queued[1:]
			b.mu.Unlock()
			writeJSON(writer, queued[0].status, market.Envelope[any]{Message: queued[0].message})
			return
		}

		owner := ""
		if authenticated {
			token, ok := strings.CutPrefix(request.Header.Get("Authorization"), "Bearer ")
			owner = b.tokens[token]
			if !ok || owner == "" {
				b.mu.Unlock()
				writeJSON(writer, http.StatusUnauthorized, market.Envelope[any]{Message: "Unauthorized"})
				return
			}
		}
		status, response := handler(owner, request, body)
		b.mu.Unlock()
		writeJSON(writer, status, response)
	})
}

func writeJSON(writer http.ResponseWriter, status int, value any) {
	writer.Header().Set("Content-Type", "application/json")
	writer.WriteHeader(status)
	json.NewEncoder(writer).Encode(value)
}

func fail(status int, message string) (int, any) {
	return status, market.Envelope[any]{Message: message}
}

func ok[T any](status int, data T, message string) (int, any) {
	return status, market.Envelope[T]{Success: true, Data: data, Message: message}
}

func (b *Backend) issueTokenLocked(email string) string {
	b.nextTok++
	token := fmt.Sprintf("token-%d", b.nextTok)
	b.tokens[token] = email
	return token
}

func (b *Backend) insertLocked(owner string, input market.TicketInput) market.Ticket {
	b.nextID++
	ticket := market.Ticket{ID: fmt.Sprintf("ticket-%03d", b.nextID), TicketInput: input}
	b.tickets = append(b.tickets, ticket)
	b.owners[ticket.ID] = owner
	return ticket
}

// duplicateLocked reports whether owner already lists a ticket for the
// same trip and seat, ignoring the ticket with id skip.
func (b *Backend) duplicateLocked(owner string, input market.TicketInput, skip string) bool {
	for _, existing := range b.tickets {
		if existing.ID == skip || b.owners[existing.ID] != owner {
			continue
		}
		if strings.EqualFold(existing.Departure, input.Departure) &&
			strings.EqualFold(existing.Destination, input.Destination) &&
			existing.Date == input.Date &&
			existing.Time == input.Time &&
			strings.EqualFold(existing.Seat, input.Seat) {
			return true
		}
	}
	return false
}

func (b *Backend) indexLocked(id string) int {
	for index, ticket := range b.tickets {
		if ticket.ID == id {
			return index
		}
	}
	return -1
}

func (b *Backend) login(_ string, _ *http.Request, body []byte) (int, any) {
	var credentials market.Credentials
	if err := json.Unmarshal(body, &credentials); err != nil {
		return fail(http.StatusBadRequest, "Malformed request")
	}
	existing := b.accounts[credentials.Email]
	if existing == nil || existing.password != credentials.Password {
		return fail(http.StatusBadRequest, "Invalid credentials")
	}
	return http.StatusOK, market.LoginResponse{
		Token:   b.issueTokenLocked(credentials.Email),
		Message: "Login successful",
	}
}

func (b *Backend) signup(_ string, _ *http.Request, body []byte) (int, any) {
	var request market.SignupRequest
	if err := json.Unmarshal(body, &request); err != nil {
		return fail(http.StatusBadRequest, "Malformed request")
	}
	if err := request.Validate(); err != nil {
		return fail(http.StatusBadRequest, err.Error())
	}
	if b.accounts[request.Email] != nil {
		return fail(http.StatusBadRequest, "User already exists")
	}
	b.accounts[request.Email] = &account{
		profile: market.Profile{
			Name:      request.Name,
			Email:     request.Email,
			Phone:     request.Phone,
			Gender:    request.Gender,
			CreatedAt: time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC),
		},
		password: request.Password,
	}
	return ok[any](http.StatusCreated, nil, "User registered successfully")
}

func (b *Backend) logout(owner string, request *http.Request, _ []byte) (int, any) {
	token, _ := strings.CutPrefix(request.Header.Get("Authorization"), "Bearer ")
	delete(b.tokens, token)
	return ok[any](http.StatusOK, nil, "Logged out")
}

func (b *Backend) profileLocked(owner string) market.Profile {
	profile := b.accounts[owner].profile
	profile.TicketsSold = 0
	for _, ticket := range b.tickets {
		if b.owners[ticket.ID] == owner {
			profile.TicketsSold++
		}
	}
	return profile
}

func (b *Backend) profile(owner string, _ *http.Request, _ []byte) (int, any) {
	if b.accounts[owner] == nil {
		return fail(http.StatusNotFound, "User not found")
	}
	return ok(http.StatusOK, b.profileLocked(owner), "")
}

func (b *Backend) editProfile(owner string, _ *http.Request, body []byte) (int, any) {
	existing := b.accounts[owner]
	if existing == nil {
		return fail(http.StatusNotFound, "User not found")
	}
	var update market.ProfileUpdate
	if err := json.Unmarshal(body, &update); err != nil {
		return fail(http.StatusBadRequest, "Malformed request")
	}
	if err := update.Validate(); err != nil {
		return fail(http.StatusBadRequest, err.Error())
	}
	existing.profile.Name = update.Name
	existing.profile.Phone = update.Phone
	existing.profile.Gender = update.Gender
	existing.profile.ProfileImage = update.ProfileImage
	return ok(http.StatusOK, b.profileLocked(owner), "Profile updated")
}

func (b *Backend) createTicket(owner string, _ *http.Request, body []byte) (int, any) {
	var input market.TicketInput
	if err := json.Unmarshal(body, &input); err != nil {
		return fail(http.StatusBadRequest, "Malformed request")
	}
	if err := input.Validate(); err != nil {
		return fail(http.StatusBadRequest, err.Error())
	}
	if b.duplicateLocked(owner, input, "") {
		return fail(http.StatusConflict, "Ticket already exists")
	}
	return ok(http.StatusCreated, b.insertLocked(owner, input), "Ticket created")
}

func (b *Backend) listAll(_ string, _ *http.Request, _ []byte) (int, any) {
	return ok(http.StatusOK, append([]market.Ticket{}, b.tickets...), "")
}

func (b *Backend) listMine(owner string, _ *http.Request, _ []byte) (int, any) {
	mine := []market.Ticket{}
	for _, ticket := range b.tickets {
		if b.owners[ticket.ID] == owner {
			mine = append(mine, ticket)
		}
	}
	return ok(http.StatusOK, mine, "")
}

func (b *Backend) updateTicket(owner string, request *http.Request, body []byte) (int, any) {
	id := request.PathValue("id")
	index := b.indexLocked(id)
	if index < 0 {
		return fail(http.StatusNotFound, "Ticket not found")
	}
	if b.owners[id] != owner {
		return fail(http.StatusForbidden, "Not your ticket")
	}
	var input market.TicketInput
	if err := json.Unmarshal(body, &input); err != nil {
		return fail(http.StatusBadRequest, "Malformed request")
	}
	if err := input.Validate(); err != nil {
		return fail(http.StatusBadRequest, err.Error())
	}
	if b.duplicateLocked(owner, input, id) {
		return fail(http.StatusConflict, "Ticket already exists")
	}
	b.tickets[index].TicketInput = input
	return ok(http.StatusOK, b.tickets[index], "Ticket updated")
}

func (b *Backend) deleteTicket(owner string, request *http.Request, _ []byte) (int, any) {
	id := request.PathValue("id")
	index := b.indexLocked(id)
	if index < 0 {
		return fail(http.StatusNotFound, "Ticket not found")
	}
	if b.owners[id] != owner {
		return fail(http.StatusForbidden, "Not your ticket")
	}
	b.tickets = append(b.tickets[:index], b.tickets[index+1:]...)
	delete(b.owners, id)
	return ok[any](http.StatusOK, nil, "Ticket deleted")
}
