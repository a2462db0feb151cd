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

// ring is a fixed-capacity circular buffer with indexed access.
//
// Logical index 0 is the oldest element, size()-1 the newest. Storage is
// allocated once at construction; removed slots are zeroed so released
// elements become collectable.
//
// ring is NOT thread-safe. The Journal serializes access under its own
// lock, the same way it guards the rest of its state.
type ring[T any] struct {
	buffer []T
	start  int
	count  int
}

// newRing creates an empty ring holding up to capacity elements.
// The caller validates capacity; a non-positive value is a bug here.
func newRing[T any](capacity int) *ring[T] {
	return &ring[T]{buffer: make([]T, capacity)}
}

// size returns the number of stored elements.
func (r *ring[T]) size() int {
	return r.count
}

// capacity returns the fixed maximum number of elements.
func (r *ring[T]) capacity() int {
	return len(r.buffer)
}

// at returns the element at logical index i (0 = oldest).
// The caller guarantees 0 <= i < size().
func (r *ring[T]) at(i int) T {
	return r.buffer[(r.start+i)%len(r.buffer)]
}

// push appends v as the newest element. When the ring is already full,
// the oldest element is removed to make room and returned with
// evicted == true.
func (r *ring[T]) push(v T) (removed T, evicted bool) {
	if r.count == len(r.buffer) {
		removed = r.buffer[r.start]
		var zero T
		r.buffer[r.start] = zero
		r.start = (r.start + 1) % len(r.buffer)
		r.count--
		evicted = true
	}

	r.buffer[(r.start+r.count)%len(r.buffer)] = v
	r.count++

	return removed, evicted
}

// truncateAfter removes every element with logical index > i and returns
// them oldest-first. i == -1 removes everything; i >= size()-1 removes
// nothing and returns nil.
func (r *ring[T]) truncateAfter(i int) []T {
	if i >= r.count-1 {
		return nil
	}
	if i < -1 {
		i = -1
	}

	n := r.count - (i + 1)
	removed := make([]T, n)
	var zero T

	for k := 0; k < n; k++ {
		idx := (r.start + i + 1 + k) % len(r.buffer)
		removed[k] = r.buffer[idx]
		r.buffer[idx] = zero
	}

	r.count = i + 1
	return removed
}

// drain removes and returns all elements, oldest-first.
func (r *ring[T]) drain() []T {
	return r.truncateAfter(-1)
}
