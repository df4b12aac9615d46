// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package marketui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/bureau-foundation/tripswap/lib/listing"
	"github.com/bureau-foundation/tripswap/lib/market"
)

func TestProfileShowsAccount(t *testing.T) {
	h := newHarness(t, true)
	h.backend.AddTicket(sellerEmail, trip("12A"))

	screen := newProfileScreen(h.env())
	screen.update(awaitMsg[profileLoadedMsg](t, screen.init()))
	if !screen.loaded {
		t.Fatalf("profile not loaded: %q", screen.err)
	}
	view := screen.view(100, 24)
	for _, want := range []string{"Asha Rao", sellerEmail, "March 2024", "Female"} {
		if !strings.Contains(view, want) {
			t.Errorf("profile view lacks %q:\n%s", want, view)
		}
	}
	if screen.profile.TicketsSold != 1 {
		t.Errorf("TicketsSold = %d, want 1", screen.profile.TicketsSold)
	}

	navigation := awaitMsg[navigateMsg](t, screen.update(runes("e")))
	if navigation.to != routeProfileEdit || navigation.profile.Email != sellerEmail {
		t.Errorf("navigation = %+v, want edit with the loaded profile", navigation)
	}
}

func TestProfileUnauthorizedRedirects(t *testing.T) {
	h := newHarness(t, true)
	h.backend.RevokeTokens()

	screen := newProfileScreen(h.env())
	cmd := screen.update(awaitMsg[profileLoadedMsg](t, screen.init()))
	if cmd == nil || screen.err != listing.RedirectingMessage {
		t.Fatalf("err = %q, want the redirecting message and a redirect", screen.err)
	}
	if !strings.Contains(screen.view(100, 24), listing.RedirectingMessage) {
		t.Error("redirecting message not rendered")
	}
}

func TestProfileEditSaves(t *testing.T) {
	h := newHarness(t, true)
	environment := h.env()

	profile := market.Profile{Name: "Asha Rao", Email: sellerEmail, Phone: "+15550100", Gender: market.GenderFemale}
	screen := newProfileEditScreen(environment, profile)
	screen.init()
	screen.form.set(screen.name, "Asha R.")

	saved := awaitMsg[profileSavedMsg](t, screen.update(tea.KeyMsg{Type: tea.KeyCtrlS}))
	if saved.err != nil {
		t.Fatalf("EditProfile: %v", saved.err)
	}
	navigation := awaitMsg[navigateMsg](t, screen.update(saved))
	if navigation.to != routeProfile || navigation.notice != "Profile updated." {
		t.Errorf("navigation = %+v", navigation)
	}

	fetched, err := h.client.Profile(environment.ctx)
	if err != nil {
		t.Fatalf("Profile: %v", err)
	}
	if fetched.Name != "Asha R." {
		t.Errorf("stored name = %q, want %q", fetched.Name, "Asha R.")
	}
}

func TestProfileEditRequiresName(t *testing.T) {
	h := newHarness(t, true)
	screen := newProfileEditScreen(h.env(), market.Profile{Email: sellerEmail})
	if cmd := screen.update(tea.KeyMsg{Type: tea.KeyCtrlS}); cmd != nil {
		t.Error("missing name should not produce a request")
	}
	if !strings.Contains(screen.form.err, "name is required") {
		t.Errorf("form error = %q", screen.form.err)
	}
}
