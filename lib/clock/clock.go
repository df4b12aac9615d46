// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package clock lets the client's time-dependent behavior be driven
// deterministically in tests.
//
// Two things in the client depend on wall time: the search form's
// default date (today) and the pause between a rejected token and the
// jump back to login. Both read time through a [Clock]. Production
// code passes [Real]; tests pass a [FakeClock] and move it forward
// with Advance:
//
//	fake := clock.Fake(time.Date(2026, 3, 20, 9, 0, 0, 0, time.UTC))
//	go func() { done <- run(fake) }()
//	fake.WaitForTimers(1)            // run has started waiting
//	fake.Advance(1500 * time.Millisecond)
package clock

import "time"

// Clock is the subset of the time package the client uses.
type Clock interface {
	// Now returns the current time.
	Now() time.Time

	// After returns a channel that receives the current time once d
	// has elapsed. If d <= 0 the channel is ready immediately.
	After(d time.Duration) <-chan time.Time
}

// Real returns a Clock backed by the time package.
func Real() Clock { return realClock{} }

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

func (realClock) After(d time.Duration) <-chan time.Time { return time.After(d) }

// Today returns the calendar day of clock.Now() in the local zone, as
// midnight.
func Today(clock Clock) time.Time {
	now := clock.Now()
	year, month, day := now.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, now.Location())
}
