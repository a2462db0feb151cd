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
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// noHead is the cursor sentinel for "no command is currently applied",
// the conceptual state before the first entry.
const noHead = -1

// =============================================================================
// Journal
// =============================================================================

// Journal is a bounded, ordered history of Commands with an undo/redo
// cursor.
//
// # Description
//
// Entries are ordered oldest (index 0) to newest. The head cursor marks
// the most recently applied command; everything past the head is redo
// history. The journal enforces three structural rules:
//
//  1. Capacity eviction: appending beyond maxDepth destroys the oldest
//     entry (strict FIFO).
//  2. Redo truncation: any append after one or more undos destroys the
//     abandoned redo branch past the head.
//  3. Coalescing: UpdateOrAdd merges a command into the head entry
//     instead of appending when it targets the same destination within
//     the update window.
//
// The journal owns every command handed to Add or UpdateOrAdd and calls
// Destroy exactly once when an entry leaves the history (eviction,
// truncation, clear, dispose) or when a merge absorbs it.
//
// # Thread Safety
//
// Safe for concurrent use. A single exclusive lock serializes every
// operation; command callbacks run while the lock is held, so commands
// must not call back into their owning journal (see Command).
type Journal struct {
	mu           sync.Mutex
	entries      *ring[Command]
	head         int
	maxDepth     int
	updateWindow time.Duration
	lastAppend   time.Time // zero until the first append
	disposed     bool

	id      string
	logger  *slog.Logger
	clock   Clock
	metrics *Metrics
}

// New creates a journal holding up to maxDepth entries.
//
// # Description
//
// Backing storage for maxDepth entries is reserved up front; the
// capacity cannot change later. Construction is the only operation in
// this package that can fail.
//
// # Inputs
//
//   - maxDepth: History capacity. Must be positive.
//   - opts: Optional configuration (nil uses DefaultOptions).
//
// # Outputs
//
//   - *Journal: Ready-to-use journal with head unset.
//   - error: ErrInvalidDepth when maxDepth is not positive.
//
// # Example
//
//	j, err := journal.New(64, nil)
//	if err != nil {
//	    return err
//	}
//	defer j.Dispose()
func New(maxDepth int, opts *Options) (*Journal, error) {
	if maxDepth <= 0 {
		return nil, fmt.Errorf("journal: max depth %d: %w", maxDepth, ErrInvalidDepth)
	}

	var o Options
	if opts != nil {
		o = *opts
	}
	o = o.withDefaults()

	id := uuid.NewString()
	j := &Journal{
		entries:      newRing[Command](maxDepth),
		head:         noHead,
		maxDepth:     maxDepth,
		updateWindow: o.UpdateWindow,
		id:           id,
		logger:       o.Logger.With("journal_id", id),
		clock:        o.Clock,
		metrics:      o.Metrics,
	}

	j.logger.Info("journal: created",
		"max_depth", maxDepth,
		"update_window", o.UpdateWindow,
	)
	return j, nil
}

// ID returns the journal's generated instance id, as tagged on its logs.
func (j *Journal) ID() string {
	return j.id // Immutable, no lock needed
}

// MaxDepth returns the fixed history capacity.
func (j *Journal) MaxDepth() int {
	return j.maxDepth // Immutable, no lock needed
}

// =============================================================================
// Mutating Operations
// =============================================================================

// Add appends cmd as the new head entry. Ownership of cmd transfers to
// the journal.
//
// # Description
//
// The caller is expected to have already applied cmd (called Do).
// Appending always makes cmd the head:
//
//  1. If one or more undos left redo history past the head, that branch
//     is destroyed first. With no applied head at all, the entire
//     surviving history is redo history and all of it is destroyed.
//  2. cmd is appended. If that exceeds maxDepth, the oldest entry is
//     evicted and destroyed; the length never exceeds maxDepth.
//
// A nil cmd is ignored. After Dispose, cmd is destroyed immediately:
// ownership still transfers, but a disposed journal holds nothing.
//
// # Inputs
//
//   - cmd: The applied command to record. The journal owns it afterwards.
func (j *Journal) Add(cmd Command) {
	if cmd == nil {
		j.logger.Warn("journal: ignoring nil command")
		return
	}

	j.mu.Lock()
	defer j.mu.Unlock()

	if j.disposed {
		j.logger.Warn("journal: add after dispose, destroying command",
			"message", cmd.Message(),
		)
		cmd.Destroy()
		return
	}

	j.addLocked(cmd)
}

// UpdateOrAdd appends cmd, or coalesces it into the head entry when the
// same target was edited within the update window. Ownership of cmd
// transfers to the journal unconditionally.
//
// # Description
//
// Coalescing is eligible only when all of these hold:
//
//   - a previous append or merge happened,
//   - it happened no longer than the update window ago,
//   - a head command exists, and
//   - the head command's identity hash equals cmd's.
//
// When eligible the head absorbs cmd (Merge), the window timestamp is
// refreshed, and cmd is destroyed; its state lives on in the head
// entry. Otherwise this behaves exactly like Add. Bursts of fine-grained
// edits to one target (dragging a slider, typing into a field) collapse
// into a single undo step this way.
//
// # Inputs
//
//   - cmd: The applied command to record or absorb. The journal owns it
//     afterwards.
func (j *Journal) UpdateOrAdd(cmd Command) {
	if cmd == nil {
		j.logger.Warn("journal: ignoring nil command")
		return
	}

	j.mu.Lock()
	defer j.mu.Unlock()

	if j.disposed {
		j.logger.Warn("journal: add after dispose, destroying command",
			"message", cmd.Message(),
		)
		cmd.Destroy()
		return
	}

	now := j.clock.Now()
	if j.canMergeLocked(cmd, now) {
		head := j.entries.at(j.head)
		head.Merge(cmd)
		j.lastAppend = now
		cmd.Destroy()

		if j.metrics != nil {
			j.metrics.MergesTotal.Inc()
		}
		j.logger.Debug("journal: merged command into head",
			"head", j.head,
			"message", head.Message(),
		)
		return
	}

	j.addLocked(cmd)
}

// Undo reverses the head command and retreats the cursor.
//
// # Description
//
// Invokes Undo on the head entry, then moves the head to the previous
// entry (or to the unset state when the oldest entry was just undone).
// A journal with no entries or no applied head is a no-op, never an
// error.
func (j *Journal) Undo() {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.disposed || j.entries.size() == 0 || j.head == noHead {
		return
	}

	j.entries.at(j.head).Undo()
	j.head--

	if j.metrics != nil {
		j.metrics.UndosTotal.Inc()
	}
	j.logger.Debug("journal: undid command", "head", j.head)
}

// Redo re-applies the command after the head and advances the cursor.
//
// # Description
//
// With no applied head, redo re-applies the oldest entry. At the newest
// entry the cursor clamps: no re-invocation, no error. An empty journal
// is a no-op.
func (j *Journal) Redo() {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.disposed || j.entries.size() == 0 {
		return
	}
	if j.head == j.entries.size()-1 {
		return // already at the newest entry
	}

	next := j.head + 1 // 0 when no head is applied
	j.entries.at(next).Do()
	j.head = next

	if j.metrics != nil {
		j.metrics.RedosTotal.Inc()
	}
	j.logger.Debug("journal: redid command", "head", j.head)
}

// Truncate destroys every entry past index and moves the head there.
//
// # Description
//
// An index at or beyond the current length is a silent no-op. A negative
// index is the "no index" form and behaves as Clear. Truncation moves
// the cursor without invoking any command callbacks; it is bookkeeping
// for hosts that discard history, not an undo.
//
// # Inputs
//
//   - index: Position of the entry that becomes the new head, or any
//     negative value to drop the entire history.
func (j *Journal) Truncate(index int) {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.disposed {
		return
	}
	if index < 0 {
		j.clearLocked()
		return
	}
	if index >= j.entries.size() {
		return // out of range: silent no-op
	}

	j.destroyAllLocked(j.entries.truncateAfter(index))
	j.head = index

	if j.metrics != nil {
		j.metrics.Depth.Set(float64(j.entries.size()))
	}
	j.logger.Debug("journal: truncated",
		"head", j.head,
		"len", j.entries.size(),
	)
}

// Clear destroys all entries and unsets the head.
func (j *Journal) Clear() {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.disposed {
		return
	}
	j.clearLocked()
}

// Dispose clears the journal and releases its backing storage.
//
// # Description
//
// Every remaining entry is destroyed. Afterwards all operations are
// no-ops, except that Add and UpdateOrAdd still destroy the command
// handed to them: ownership transfers unconditionally and a disposed
// journal cannot hold it. Dispose is idempotent.
func (j *Journal) Dispose() {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.disposed {
		return
	}

	j.clearLocked()
	j.entries = nil
	j.disposed = true
	j.logger.Info("journal: disposed")
}

// =============================================================================
// Queries
// =============================================================================

// CanUndo reports whether an applied command exists to reverse.
func (j *Journal) CanUndo() bool {
	j.mu.Lock()
	defer j.mu.Unlock()
	return !j.disposed && j.head != noHead
}

// CanRedo reports whether an entry past the head exists to re-apply.
func (j *Journal) CanRedo() bool {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.disposed {
		return false
	}
	return j.entries.size() > 0 && j.head < j.entries.size()-1
}

// Len returns the current number of history entries.
func (j *Journal) Len() int {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.disposed {
		return 0
	}
	return j.entries.size()
}

// Head returns the index of the most recently applied command.
// ok is false when no command is applied.
func (j *Journal) Head() (index int, ok bool) {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.disposed || j.head == noHead {
		return 0, false
	}
	return j.head, true
}

// Messages returns a snapshot of all entry messages, oldest first.
// Returns nil when the journal is empty.
func (j *Journal) Messages() []string {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.disposed || j.entries.size() == 0 {
		return nil
	}

	out := make([]string, j.entries.size())
	for i := range out {
		out[i] = j.entries.at(i).Message()
	}
	return out
}

// UndoMessage returns the message of the command the next Undo would
// reverse. ok is false when nothing can be undone.
func (j *Journal) UndoMessage() (msg string, ok bool) {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.disposed || j.head == noHead {
		return "", false
	}
	return j.entries.at(j.head).Message(), true
}

// RedoMessage returns the message of the command the next Redo would
// re-apply. ok is false when nothing can be redone.
func (j *Journal) RedoMessage() (msg string, ok bool) {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.disposed || j.entries.size() == 0 || j.head >= j.entries.size()-1 {
		return "", false
	}
	return j.entries.at(j.head + 1).Message(), true
}

// =============================================================================
// Internal Helpers
// =============================================================================

// addLocked appends cmd as the new head. Caller holds j.mu.
func (j *Journal) addLocked(cmd Command) {
	// Divergent edit: the redo branch past the head is abandoned. With
	// no applied head, every surviving entry is redo history.
	if j.head < j.entries.size()-1 {
		j.destroyAllLocked(j.entries.truncateAfter(j.head))
	}

	if removed, evicted := j.entries.push(cmd); evicted {
		removed.Destroy()
		if j.metrics != nil {
			j.metrics.EvictionsTotal.Inc()
		}
		j.logger.Debug("journal: evicted oldest entry")
	}

	j.head = j.entries.size() - 1
	j.lastAppend = j.clock.Now()

	if j.metrics != nil {
		j.metrics.AppendsTotal.Inc()
		j.metrics.Depth.Set(float64(j.entries.size()))
	}
	j.logger.Debug("journal: appended command",
		"message", cmd.Message(),
		"len", j.entries.size(),
		"head", j.head,
	)
}

// canMergeLocked reports whether cmd may coalesce into the head entry.
// Caller holds j.mu.
func (j *Journal) canMergeLocked(cmd Command, now time.Time) bool {
	if j.lastAppend.IsZero() {
		return false // nothing appended yet
	}
	if now.Sub(j.lastAppend) > j.updateWindow {
		return false
	}
	if j.head == noHead {
		return false
	}
	return j.entries.at(j.head).Hash() == cmd.Hash()
}

// clearLocked destroys all entries and resets the cursor and window
// timestamp. Caller holds j.mu.
func (j *Journal) clearLocked() {
	j.destroyAllLocked(j.entries.drain())
	j.head = noHead
	j.lastAppend = time.Time{} // UpdateOrAdd must not merge across a clear

	if j.metrics != nil {
		j.metrics.Depth.Set(0)
	}
	j.logger.Debug("journal: cleared")
}

// destroyAllLocked destroys removed entries and accounts for them.
// Caller holds j.mu.
func (j *Journal) destroyAllLocked(removed []Command) {
	for _, cmd := range removed {
		cmd.Destroy()
	}
	if j.metrics != nil && len(removed) > 0 {
		j.metrics.TruncatedTotal.Add(float64(len(removed)))
	}
}
