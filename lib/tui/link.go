// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"net/url"
	"strings"

	"github.com/muesli/termenv"
)

// Hyperlink renders text as an OSC 8 hyperlink to target. Terminals
// without OSC 8 support show the text alone. An empty or non-web
// target renders the text unlinked.
func Hyperlink(target, text string) string {
	if !IsWebURL(target) {
		return text
	}
	if text == "" {
		text = target
	}
	return termenv.Hyperlink(target, text)
}

// IsWebURL reports whether target is an absolute http or https URL.
func IsWebURL(target string) bool {
	parsed, err := url.Parse(strings.TrimSpace(target))
	if err != nil || parsed.Host == "" {
		return false
	}
	return parsed.Scheme == "http" || parsed.Scheme == "https"
}

// WhatsAppURL returns the wa.me chat link for a phone number, keeping
// only its digits. It returns "" when no digits remain.
func WhatsAppURL(number string) string {
	var digits strings.Builder
	for _, character := range number {
		if character >= '0' && character <= '9' {
			digits.WriteRune(character)
		}
	}
	if digits.Len() == 0 {
		return ""
	}
	return "https://wa.me/" + digits.String()
}
