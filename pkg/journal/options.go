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
	"log/slog"
	"time"
)

// DefaultUpdateWindow is the coalescing window applied when Options
// leaves UpdateWindow unset. Edits to the same target arriving within
// this window of the previous append or merge collapse into one entry.
const DefaultUpdateWindow = 250 * time.Millisecond

// Options configures a Journal.
type Options struct {
	// UpdateWindow is the coalescing window for UpdateOrAdd. A command
	// whose identity hash matches the head entry merges into it instead
	// of appending when it arrives within this window of the most recent
	// append or merge.
	// Default: DefaultUpdateWindow (250ms)
	UpdateWindow time.Duration

	// Logger receives structured operational logs. Each journal tags its
	// records with a generated journal_id attribute.
	// Default: slog.Default()
	Logger *slog.Logger

	// Clock supplies the time source for the coalescing window. Tests
	// inject a ManualClock to drive window expiry deterministically.
	// Default: NewSystemClock()
	Clock Clock

	// Metrics enables Prometheus instrumentation when non-nil.
	// Default: nil (instrumentation disabled)
	Metrics *Metrics
}

// DefaultOptions returns sensible defaults.
func DefaultOptions() Options {
	return Options{
		UpdateWindow: DefaultUpdateWindow,
		Logger:       slog.Default(),
		Clock:        NewSystemClock(),
	}
}

// withDefaults fills unset fields so the journal never has to nil-check
// its collaborators on the hot path.
func (o Options) withDefaults() Options {
	if o.UpdateWindow <= 0 {
		o.UpdateWindow = DefaultUpdateWindow
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	if o.Clock == nil {
		o.Clock = NewSystemClock()
	}
	return o
}
