// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package journal

import (
	"sync"
	"time"
)

// =============================================================================
// Clock Interface
// =============================================================================

// Clock provides the current time to the journal's coalescing logic.
//
// # Description
//
// The coalescing window in UpdateOrAdd compares the current time against
// the timestamp of the most recent append or merge. Injecting the time
// source lets tests drive the window deterministically instead of
// sleeping through real wall-clock durations.
//
// # Thread Safety
//
// Implementations must be safe for concurrent use.
type Clock interface {
	// Now returns the current time.
	Now() time.Time
}

// =============================================================================
// System Clock
// =============================================================================

// systemClock reads the wall clock via time.Now.
type systemClock struct{}

// NewSystemClock returns the production clock backed by time.Now.
//
// # Outputs
//
//   - Clock: Wall-clock time source. Never nil.
func NewSystemClock() Clock {
	return systemClock{}
}

// Now returns the current wall-clock time.
func (systemClock) Now() time.Time {
	return time.Now()
}

// =============================================================================
// Manual Clock (for testing)
// =============================================================================

// ManualClock is a settable time source for tests and demos.
//
// # Description
//
// ManualClock returns a fixed instant until explicitly moved with
// Advance or Set. Use it to verify coalescing-window behavior without
// real sleeps:
//
//	clock := journal.NewManualClock(time.Unix(0, 0))
//	j, _ := journal.New(8, &journal.Options{Clock: clock})
//	j.UpdateOrAdd(first)
//	clock.Advance(300 * time.Millisecond) // window expired
//	j.UpdateOrAdd(second)                 // appends instead of merging
//
// # Thread Safety
//
// Safe for concurrent use. Reads and writes are mutex-protected.
type ManualClock struct {
	mu  sync.Mutex
	now time.Time
}

// NewManualClock creates a manual clock frozen at start.
func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{now: start}
}

// Now returns the clock's current instant.
func (c *ManualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by d. Negative d moves it backward.
func (c *ManualClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// Set moves the clock to the given instant.
func (c *ManualClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

// Compile-time interface satisfaction checks
var (
	_ Clock = systemClock{}
	_ Clock = (*ManualClock)(nil)
)
