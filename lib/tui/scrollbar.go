// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// RenderScrollbar produces a one-column scrollbar of the given height.
// The thumb marks the visible window [offset, offset+visible) within
// total rows; when everything fits the thumb fills the track.
func RenderScrollbar(theme Theme, height, total, visible, offset int) string {
	if height <= 0 {
		return ""
	}
	trackStyle := lipgloss.NewStyle().Foreground(theme.BorderColor)
	thumbStyle := lipgloss.NewStyle().Foreground(theme.AccentForeground)

	thumbSize, thumbOffset := height, 0
	if total > visible && total > 0 {
		thumbSize = max(height*visible/total, 1)
		if scrollable, track := total-visible, height-thumbSize; scrollable > 0 && track > 0 {
			thumbOffset = min(offset*track/scrollable, track)
		}
	}

	lines := make([]string, height)
	for index := range lines {
		if index >= thumbOffset && index < thumbOffset+thumbSize {
			lines[index] = thumbStyle.Render("┃")
		} else {
			lines[index] = trackStyle.Render("│")
		}
	}
	return strings.Join(lines, "\n")
}
