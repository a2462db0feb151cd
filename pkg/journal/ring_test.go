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

import "testing"

// =============================================================================
// Constructor Tests
// =============================================================================

// TestNewRing verifies initial state.
func TestNewRing(t *testing.T) {
	r := newRing[int](5)

	if r.capacity() != 5 {
		t.Errorf("capacity() = %d, want 5", r.capacity())
	}
	if r.size() != 0 {
		t.Errorf("size() = %d, want 0", r.size())
	}
}

// =============================================================================
// Push Tests
// =============================================================================

// TestRing_Push verifies append order and eviction on overflow.
func TestRing_Push(t *testing.T) {
	r := newRing[int](3)

	for i := 1; i <= 3; i++ {
		if _, evicted := r.push(i); evicted {
			t.Errorf("push(%d) should not have evicted", i)
		}
	}
	if r.size() != 3 {
		t.Errorf("size() = %d, want 3", r.size())
	}

	// 4th push evicts the oldest
	removed, evicted := r.push(4)
	if !evicted {
		t.Error("push(4) should have evicted")
	}
	if removed != 1 {
		t.Errorf("evicted element = %d, want 1", removed)
	}
	if r.size() != 3 {
		t.Errorf("size() after eviction = %d, want 3", r.size())
	}

	// Remaining elements are [2, 3, 4]
	expected := []int{2, 3, 4}
	for i, want := range expected {
		if got := r.at(i); got != want {
			t.Errorf("at(%d) = %d, want %d", i, got, want)
		}
	}
}

// TestRing_PushWraparound verifies indexed access across the wrap point.
func TestRing_PushWraparound(t *testing.T) {
	r := newRing[int](3)

	// Push 1..7: final contents should be [5, 6, 7]
	for i := 1; i <= 7; i++ {
		r.push(i)
	}

	expected := []int{5, 6, 7}
	for i, want := range expected {
		if got := r.at(i); got != want {
			t.Errorf("at(%d) = %d, want %d", i, got, want)
		}
	}
}

// =============================================================================
// TruncateAfter Tests
// =============================================================================

// TestRing_TruncateAfter verifies suffix removal and returned order.
func TestRing_TruncateAfter(t *testing.T) {
	r := newRing[int](5)
	for i := 1; i <= 5; i++ {
		r.push(i)
	}

	removed := r.truncateAfter(2)
	if len(removed) != 2 {
		t.Fatalf("truncateAfter(2) removed %d elements, want 2", len(removed))
	}
	if removed[0] != 4 || removed[1] != 5 {
		t.Errorf("removed = %v, want [4 5]", removed)
	}
	if r.size() != 3 {
		t.Errorf("size() = %d, want 3", r.size())
	}
	for i, want := range []int{1, 2, 3} {
		if got := r.at(i); got != want {
			t.Errorf("at(%d) = %d, want %d", i, got, want)
		}
	}
}

// TestRing_TruncateAfter_NoOp verifies last-index and empty cases.
func TestRing_TruncateAfter_NoOp(t *testing.T) {
	r := newRing[int](3)
	r.push(1)
	r.push(2)

	if removed := r.truncateAfter(1); removed != nil {
		t.Errorf("truncateAfter(last) = %v, want nil", removed)
	}
	if removed := r.truncateAfter(5); removed != nil {
		t.Errorf("truncateAfter(out of range) = %v, want nil", removed)
	}
	if r.size() != 2 {
		t.Errorf("size() = %d, want 2", r.size())
	}
}

// TestRing_TruncateAfter_All verifies i == -1 removes everything.
func TestRing_TruncateAfter_All(t *testing.T) {
	r := newRing[int](3)
	r.push(1)
	r.push(2)
	r.push(3)

	removed := r.truncateAfter(-1)
	if len(removed) != 3 {
		t.Fatalf("truncateAfter(-1) removed %d elements, want 3", len(removed))
	}
	for i, want := range []int{1, 2, 3} {
		if removed[i] != want {
			t.Errorf("removed[%d] = %d, want %d", i, removed[i], want)
		}
	}
	if r.size() != 0 {
		t.Errorf("size() = %d, want 0", r.size())
	}
}

// TestRing_TruncateAfterWrapped verifies suffix removal across the wrap
// point after evictions have advanced the start index.
func TestRing_TruncateAfterWrapped(t *testing.T) {
	r := newRing[int](3)
	for i := 1; i <= 5; i++ {
		r.push(i) // contents [3, 4, 5], start is mid-buffer
	}

	removed := r.truncateAfter(0)
	if len(removed) != 2 {
		t.Fatalf("truncateAfter(0) removed %d elements, want 2", len(removed))
	}
	if removed[0] != 4 || removed[1] != 5 {
		t.Errorf("removed = %v, want [4 5]", removed)
	}
	if got := r.at(0); got != 3 {
		t.Errorf("at(0) = %d, want 3", got)
	}

	// Ring stays usable after a wrapped truncation
	r.push(6)
	r.push(7)
	for i, want := range []int{3, 6, 7} {
		if got := r.at(i); got != want {
			t.Errorf("at(%d) = %d, want %d", i, got, want)
		}
	}
}

// =============================================================================
// Drain Tests
// =============================================================================

// TestRing_Drain verifies drain empties the ring in order.
func TestRing_Drain(t *testing.T) {
	r := newRing[int](4)

	if drained := r.drain(); drained != nil {
		t.Errorf("drain() on empty = %v, want nil", drained)
	}

	for i := 1; i <= 4; i++ {
		r.push(i)
	}

	drained := r.drain()
	if len(drained) != 4 {
		t.Fatalf("drain() = %d elements, want 4", len(drained))
	}
	for i, v := range drained {
		if v != i+1 {
			t.Errorf("drained[%d] = %d, want %d", i, v, i+1)
		}
	}
	if r.size() != 0 {
		t.Errorf("size() after drain = %d, want 0", r.size())
	}

	// Reusable after drain
	r.push(9)
	if got := r.at(0); got != 9 {
		t.Errorf("at(0) after refill = %d, want 9", got)
	}
}

// =============================================================================
// GC Tests
// =============================================================================

// TestRing_ClearsRemovedSlots verifies removed pointer slots are zeroed.
func TestRing_ClearsRemovedSlots(t *testing.T) {
	r := newRing[*int](2)
	a, b, c := 1, 2, 3
	r.push(&a)
	r.push(&b)
	r.push(&c) // evicts &a

	// The evicted slot must not retain &a; walk the raw buffer.
	for i, p := range r.buffer {
		if p == &a {
			t.Errorf("buffer[%d] still references the evicted element", i)
		}
	}

	r.truncateAfter(0) // removes &c
	for i, p := range r.buffer {
		if p == &c {
			t.Errorf("buffer[%d] still references the truncated element", i)
		}
	}
}

// =============================================================================
// Benchmark Tests
// =============================================================================

func BenchmarkRing_Push(b *testing.B) {
	r := newRing[int](1000)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		r.push(i)
	}
}

func BenchmarkRing_At(b *testing.B) {
	r := newRing[int](1000)
	for i := 0; i < 1000; i++ {
		r.push(i)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = r.at(i % 1000)
	}
}
