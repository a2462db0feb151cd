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

import "errors"

// Sentinel errors for journal construction.
//
// Construction is the only fallible operation in this package. Every
// other operation (Add, UpdateOrAdd, Undo, Redo, Truncate, Clear,
// Dispose) is defined to succeed: out-of-range indexes and empty-journal
// calls are silent no-ops, never errors.
var (
	// ErrInvalidDepth is returned by New when maxDepth is not positive.
	// The journal pre-reserves storage for maxDepth entries, so a
	// non-positive capacity cannot be honored.
	ErrInvalidDepth = errors.New("journal depth must be positive")
)
