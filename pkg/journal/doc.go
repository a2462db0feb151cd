// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package journal provides a bounded, in-memory undo/redo history of
// reversible commands.
//
// A [Command] is a reversible unit of state change that owns its own
// before/after state. A [Journal] is the bounded, ordered history of
// such commands: it tracks an undo/redo cursor (the head), evicts the
// oldest entry once the capacity is reached, discards abandoned redo
// history whenever a new edit diverges from it, and optionally coalesces
// rapid same-target edits into a single history entry.
//
// # Overview
//
// The package provides:
//
//   - Command: the contract concrete edit variants implement
//   - Identity: the 64-bit variant+target hash used for coalescing
//   - Journal: the bounded history with add / undo / redo / truncate /
//     clear / dispose operations
//   - Options: coalescing window, logger, clock, and metrics injection
//   - Clock / ManualClock: injectable time source for the window
//   - Metrics: optional Prometheus instrumentation
//
// # Usage
//
// The host applies an edit, then records it:
//
//	j, err := journal.New(64, nil)
//	if err != nil {
//	    return err
//	}
//	defer j.Dispose()
//
//	cmd := edits.NewSetValue(&doc.Width, 800, "width")
//	cmd.Do()
//	j.UpdateOrAdd(cmd) // bursts within 250ms coalesce into one entry
//
//	j.Undo() // doc.Width back to its previous value
//	j.Redo() // doc.Width == 800 again
//
// # Ownership
//
// Commands handed to [Journal.Add] or [Journal.UpdateOrAdd] belong to
// the journal from that point on. The journal calls Undo/Do on them in
// place as the cursor moves, and calls Destroy exactly once when an
// entry leaves the history (by capacity eviction, redo truncation,
// Truncate, Clear, or Dispose) or when a merge absorbs the command.
// Callers must not retain or invoke a command after handing it over.
//
// # Thread Safety
//
// [Journal] is safe for concurrent use: one exclusive lock per journal
// serializes every operation, so operations are totally ordered and
// never partially visible. The flip side is a documented hazard for
// command implementors: Do, Undo, and Merge execute while that lock is
// held. A command must not call back into its owning journal (the lock
// is not reentrant), and a slow callback stalls every other operation
// on the journal. [ManualClock] and [Metrics] are independently
// thread-safe.
//
// # Design Principles
//
//  1. History is purely in-memory; nothing survives the process.
//  2. Only construction fails. Every other operation is total: undo on
//     an empty journal, redo at the newest entry, and out-of-range
//     truncation are silent no-ops.
//  3. The journal never inspects command payloads, only the four
//     operations, the identity hash, and the message.
//  4. Linear history only: one cursor, no branches. A divergent edit
//     permanently discards the redo branch it abandons.
package journal
