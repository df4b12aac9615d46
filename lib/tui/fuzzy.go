// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"strings"
	"sync"

	"github.com/junegunn/fzf/src/algo"
	"github.com/junegunn/fzf/src/util"
)

var initScoring sync.Once

// FuzzyResult is the outcome of matching one text against a pattern.
type FuzzyResult struct {
	Matched bool
	Score   int
	// Positions are rune offsets of the matched characters, for
	// highlighting.
	Positions []int
}

// NewSlab allocates scratch space for [FuzzyMatch]. One slab may be
// reused across calls from a single goroutine.
func NewSlab() *util.Slab {
	return util.MakeSlab(100*1024, 2048)
}

// FuzzyMatch runs fzf's V2 algorithm over text. Matching is
// case-insensitive; pattern must already be lower case. An empty
// pattern matches everything with score zero.
func FuzzyMatch(text string, pattern []rune, slab *util.Slab) FuzzyResult {
	if len(pattern) == 0 {
		return FuzzyResult{Matched: true}
	}
	initScoring.Do(func() { algo.Init("default") })

	chars := util.ToChars([]byte(text))
	result, positions := algo.FuzzyMatchV2(false, true, true, &chars, pattern, true, slab)
	if result.Start < 0 {
		return FuzzyResult{}
	}
	match := FuzzyResult{Matched: true, Score: result.Score}
	if positions != nil {
		match.Positions = append([]int(nil), *positions...)
	}
	return match
}

// FuzzyPattern normalizes user input into a pattern for FuzzyMatch.
func FuzzyPattern(query string) []rune {
	return []rune(strings.ToLower(strings.TrimSpace(query)))
}
