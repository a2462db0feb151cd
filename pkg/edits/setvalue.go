// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package edits provides ready-made journal.Command implementations for
// common reversible edits.
package edits

import (
	"fmt"

	"github.com/AleutianAI/rewind/pkg/journal"
)

// SetValue is a Command that overwrites a single value through a pointer,
// remembering the previous value for undo.
//
// # Description
//
// The identity hash is derived from the target's address, so two SetValue
// commands coalesce under Journal.UpdateOrAdd exactly when they write to
// the same location. Merging keeps the oldest captured value and adopts
// the newest, so one undo step reverses an entire burst of writes.
//
// # Example
//
//	width := 800
//	cmd := edits.NewSetValue(&width, 1024, "width")
//	cmd.Do()
//	journal.UpdateOrAdd(cmd)
//
// # Thread Safety
//
// Not safe for concurrent use on its own; the owning Journal serializes
// all callback invocations.
type SetValue[T any] struct {
	target *T
	oldVal T
	newVal T
	name   string
	hash   uint64
	msg    string
}

// NewSetValue builds a SetValue command without applying it.
//
// # Description
//
// Captures the target's current value as the undo state. Callers follow
// the standard flow: construct, call Do, then hand the command to a
// Journal.
//
// # Inputs
//
//   - target: Location the command writes to. Must outlive the command's
//     stay in the journal.
//   - value: The new value Do writes.
//   - name: Display name used in the history message.
func NewSetValue[T any](target *T, value T, name string) *SetValue[T] {
	c := &SetValue[T]{
		target: target,
		oldVal: *target,
		newVal: value,
		name:   name,
		hash:   journal.Identity("edits.SetValue", fmt.Sprintf("%p", target)),
	}
	c.msg = fmt.Sprintf("set %s to %v", name, value)
	return c
}

// Do writes the new value into the target.
func (c *SetValue[T]) Do() {
	*c.target = c.newVal
}

// Undo restores the value captured at construction.
func (c *SetValue[T]) Undo() {
	*c.target = c.oldVal
}

// Merge adopts next's new value and keeps the original old value, so the
// merged command still undoes to the state before the first edit. A
// partner of a different concrete type is ignored; equal hashes already
// imply the same variant and target.
func (c *SetValue[T]) Merge(next journal.Command) {
	other, ok := next.(*SetValue[T])
	if !ok {
		return
	}
	c.newVal = other.newVal
	c.msg = fmt.Sprintf("set %s to %v", c.name, c.newVal)
}

// Destroy drops the target reference and owned values so an evicted
// history entry cannot pin host state.
func (c *SetValue[T]) Destroy() {
	var zero T
	c.target = nil
	c.oldVal = zero
	c.newVal = zero
	c.msg = ""
}

// Hash returns the variant+target identity computed at construction.
func (c *SetValue[T]) Hash() uint64 {
	return c.hash
}

// Message returns the display description of this edit.
func (c *SetValue[T]) Message() string {
	return c.msg
}

var _ journal.Command = (*SetValue[int])(nil)
