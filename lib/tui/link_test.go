// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"strings"
	"testing"
)

func TestHyperlink(t *testing.T) {
	linked := Hyperlink("https://instagram.com/asha", "asha")
	if !strings.Contains(linked, "\x1b]8;;https://instagram.com/asha") {
		t.Errorf("Hyperlink did not emit OSC 8: %q", linked)
	}
	if !strings.Contains(linked, "asha") {
		t.Errorf("Hyperlink dropped the text: %q", linked)
	}

	if got := Hyperlink("not a url", "text"); got != "text" {
		t.Errorf("Hyperlink for a non-URL = %q, want plain text", got)
	}
	if got := Hyperlink("javascript:alert(1)", "x"); got != "x" {
		t.Errorf("Hyperlink for a script URL = %q, want plain text", got)
	}
}

func TestWhatsAppURL(t *testing.T) {
	if got := WhatsAppURL("+91 98765-43210"); got != "https://wa.me/919876543210" {
		t.Errorf("WhatsAppURL = %q", got)
	}
	if got := WhatsAppURL("n/a"); got != "" {
		t.Errorf("WhatsAppURL without digits = %q, want empty", got)
	}
}
