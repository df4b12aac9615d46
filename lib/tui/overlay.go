// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// SpliceOverlay replaces a rectangular region of a rendered view with
// overlay lines placed at (anchorX, anchorY). Truncation is ANSI-aware
// so styling on either side of the overlay survives.
func SpliceOverlay(view string, overlayLines []string, anchorX, anchorY int) string {
	if len(overlayLines) == 0 {
		return view
	}

	viewLines := strings.Split(view, "\n")
	for index, overlayLine := range overlayLines {
		row := anchorY + index
		if row < 0 || row >= len(viewLines) {
			continue
		}
		line := viewLines[row]
		lineWidth := ansi.StringWidth(line)

		var builder strings.Builder
		if anchorX > 0 {
			prefix := ansi.Truncate(line, anchorX, "")
			builder.WriteString(prefix)
			// Short lines are padded so the overlay lands at anchorX.
			if gap := anchorX - ansi.StringWidth(prefix); gap > 0 {
				builder.WriteString(strings.Repeat(" ", gap))
			}
		}
		builder.WriteString("\x1b[0m")
		builder.WriteString(overlayLine)
		builder.WriteString("\x1b[0m")

		if end := anchorX + ansi.StringWidth(overlayLine); end < lineWidth {
			builder.WriteString(ansi.TruncateLeft(line, end, ""))
		}
		viewLines[row] = builder.String()
	}
	return strings.Join(viewLines, "\n")
}

// CenterOverlay splices a rendered box into the middle of a view of
// the given screen size.
func CenterOverlay(view, box string, screenWidth, screenHeight int) string {
	boxLines := strings.Split(box, "\n")
	boxWidth := 0
	for _, line := range boxLines {
		boxWidth = max(boxWidth, ansi.StringWidth(line))
	}
	anchorX := max((screenWidth-boxWidth)/2, 0)
	anchorY := max((screenHeight-len(boxLines))/2, 0)
	return SpliceOverlay(view, boxLines, anchorX, anchorY)
}

// PadLine pads styled content to width with background-colored
// spaces. Content wider than width is truncated with an ellipsis.
func PadLine(styledContent string, width int, background lipgloss.Style) string {
	contentWidth := ansi.StringWidth(styledContent)
	if contentWidth > width {
		return ansi.Truncate(styledContent, width, "…")
	}
	return styledContent + background.Render(strings.Repeat(" ", width-contentWidth))
}

// FitHeight pads or clips a block of lines to exactly height lines.
func FitHeight(block string, height int) string {
	if height <= 0 {
		return ""
	}
	lines := strings.Split(block, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}
