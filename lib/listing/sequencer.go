// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package listing

import "sync/atomic"

// Sequencer tags outgoing fetches so that a response can be matched
// against the most recent request. When the user navigates twice in
// quick succession, two fetches are in flight; only the response to
// the second may update the view, whichever arrives last.
//
// The zero value is ready to use. Tags start at 1, so tag 0 never
// counts as latest.
type Sequencer struct {
	latest atomic.Uint64
}

// Next issues a new tag, superseding every tag issued before it.
func (sequencer *Sequencer) Next() uint64 {
	return sequencer.latest.Add(1)
}

// IsLatest reports whether tag is the most recently issued one.
func (sequencer *Sequencer) IsLatest(tag uint64) bool {
	return tag != 0 && tag == sequencer.latest.Load()
}
