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

import "hash/fnv"

// =============================================================================
// Command Interface
// =============================================================================

// Command is a reversible unit of state change owning its own
// before/after state.
//
// # Description
//
// A Command captures everything needed to apply an edit and to reverse
// it: the target it mutates, the old value present before the edit, and
// the new value it writes. Concrete variants are defined outside this
// package; the Journal only ever sees this interface.
//
// The expected production flow is: construct the command (capturing the
// old state), call Do to apply it, then hand it to Journal.Add or
// Journal.UpdateOrAdd. From that point the Journal owns the command and
// drives every further call.
//
// # Contract
//
// Implementations must guarantee:
//
//   - Undo after Do restores the target to its pre-Do state. This must
//     hold after any number of Merge calls: Merge adopts the incoming
//     command's new state but preserves the receiver's original old
//     state, so one undo step reverses the whole coalesced burst.
//   - Merge regenerates the receiver's Message from the merged state.
//     The Journal invokes Merge only when both commands report the same
//     Hash, and destroys the absorbed command immediately afterwards.
//   - Destroy releases owned state exactly once. The Journal never calls
//     it twice on the same command.
//   - Hash is computed once at construction from the variant and the
//     target's identity, never from the old or new values, so two
//     edits to the same target compare equal regardless of payload.
//     Use Identity to build it.
//   - Do, Undo, and Merge are infallible. The Journal performs no
//     rollback; a variant that can fail must handle the failure
//     internally before the command reaches the Journal.
//
// # Thread Safety
//
// Commands owned by a Journal are only invoked under that Journal's
// lock, one call at a time. Do, Undo, and Merge therefore MUST NOT call
// back into the owning Journal (the lock is not reentrant) and should
// return quickly, since a stalled callback blocks every other operation
// on that Journal.
//
// # Example
//
//	cmd := edits.NewSetValue(&width, 42, "width")
//	cmd.Do()
//	j.UpdateOrAdd(cmd) // journal owns cmd now
type Command interface {
	// Do applies the command's new state to its target.
	Do()

	// Undo restores the old state captured at construction time.
	Undo()

	// Merge absorbs next's new state while keeping the receiver's
	// original old state, then regenerates the message. Only called
	// with a command whose Hash equals the receiver's.
	Merge(next Command)

	// Destroy releases the message and owned state. Called exactly once,
	// when the command leaves the journal (eviction, truncation, clear,
	// dispose) or when its state has been absorbed by a merge.
	Destroy()

	// Hash returns the 64-bit identity of "this variant applied to this
	// target". Stable across instances; independent of old/new values.
	Hash() uint64

	// Message returns the human-readable description of the edit.
	Message() string
}

// =============================================================================
// Identity Hash
// =============================================================================

// Identity computes a Command identity hash from a variant discriminant
// and a target key.
//
// # Description
//
// The variant names the command kind (conventionally the qualified type
// name, e.g. "edits.SetValue") and the target identifies the specific
// destination being edited (an address rendered as a string, a document
// key, a property path). Same variant + same target always produces the
// same hash; differing variants or targets produce different hashes with
// overwhelming probability (FNV-1a, 64-bit).
//
// # Inputs
//
//   - variant: Stable per-variant discriminant. Must not change between
//     releases if persisted comparisons matter to the caller.
//   - target: Stable identifier of the edit destination.
//
// # Outputs
//
//   - uint64: The identity hash.
//
// # Example
//
//	hash := journal.Identity("edits.SetValue", fmt.Sprintf("%p", target))
func Identity(variant, target string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(variant))
	h.Write([]byte{0}) // separator keeps ("ab","c") distinct from ("a","bc")
	h.Write([]byte(target))
	return h.Sum64()
}
