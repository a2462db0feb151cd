// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package main

import (
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AleutianAI/rewind/pkg/journal"
)

// newTestModel builds a demo model around a fresh journal with a huge
// coalescing window, so merge behavior is deterministic regardless of how
// fast the test runs. The model is sized so the history pane is ready.
func newTestModel(t *testing.T) (demoModel, *journal.Journal) {
	t.Helper()

	j, err := journal.New(16, &journal.Options{
		UpdateWindow: time.Hour,
		Logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	require.NoError(t, err)
	t.Cleanup(j.Dispose)

	model, _ := newDemoModel(j).Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return model.(demoModel), j
}

func press(m demoModel, msg tea.KeyMsg) demoModel {
	model, _ := m.Update(msg)
	return model.(demoModel)
}

func pressRune(m demoModel, r rune) demoModel {
	return press(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
}

func typeText(m demoModel, s string) demoModel {
	for _, r := range s {
		m = pressRune(m, r)
	}
	return m
}

// =============================================================================
// Construction and Layout
// =============================================================================

func TestDemoModel_Init(t *testing.T) {
	m, _ := newTestModel(t)

	assert.NotNil(t, m.Init())
}

func TestDemoModel_ViewBeforeResize(t *testing.T) {
	j, err := journal.New(4, &journal.Options{
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	require.NoError(t, err)
	t.Cleanup(j.Dispose)

	m := newDemoModel(j)

	assert.Equal(t, "Loading...\n", m.View())
}

func TestDemoModel_InitialView(t *testing.T) {
	m, _ := newTestModel(t)

	view := m.View()

	assert.Contains(t, view, "rewind demo")
	assert.Contains(t, view, "history 0/16")
	assert.Contains(t, view, "history is empty")
	assert.Contains(t, view, "counter: 0")
	assert.Contains(t, view, "no entries yet")
}

// =============================================================================
// Counter Editing
// =============================================================================

func TestDemoModel_CounterIncrementCoalesces(t *testing.T) {
	m, j := newTestModel(t)

	m = pressRune(m, '+')
	m = pressRune(m, '+')
	m = pressRune(m, '+')

	assert.Equal(t, 3, m.state.counter)
	assert.Equal(t, 1, j.Len())
	assert.Equal(t, []string{"set counter to 3"}, j.Messages())
}

func TestDemoModel_CounterDecrement(t *testing.T) {
	m, j := newTestModel(t)

	m = pressRune(m, '+')
	m = pressRune(m, '-')

	assert.Equal(t, 0, m.state.counter)
	assert.Equal(t, 1, j.Len())
	assert.Equal(t, []string{"set counter to 0"}, j.Messages())
}

func TestDemoModel_UndoRedoCounter(t *testing.T) {
	m, j := newTestModel(t)
	m = pressRune(m, '+')
	m = pressRune(m, '+')

	m = press(m, tea.KeyMsg{Type: tea.KeyCtrlZ})
	assert.Equal(t, 0, m.state.counter)
	assert.False(t, j.CanUndo())
	assert.True(t, j.CanRedo())

	m = press(m, tea.KeyMsg{Type: tea.KeyCtrlR})
	assert.Equal(t, 2, m.state.counter)
	assert.True(t, j.CanUndo())
	assert.False(t, j.CanRedo())
}

// =============================================================================
// Text Editing
// =============================================================================

func TestDemoModel_TextTypingCoalesces(t *testing.T) {
	m, j := newTestModel(t)

	m = press(m, tea.KeyMsg{Type: tea.KeyTab})
	m = typeText(m, "hi")

	assert.Equal(t, "hi", m.state.text)
	assert.Equal(t, "hi", m.input.Value())
	assert.Equal(t, 1, j.Len())
	assert.Equal(t, []string{"set text to hi"}, j.Messages())
}

func TestDemoModel_TextUndoSyncsInput(t *testing.T) {
	m, _ := newTestModel(t)
	m = press(m, tea.KeyMsg{Type: tea.KeyTab})
	m = typeText(m, "hi")

	m = press(m, tea.KeyMsg{Type: tea.KeyCtrlZ})

	assert.Equal(t, "", m.state.text)
	assert.Equal(t, "", m.input.Value())
}

func TestDemoModel_CounterAndTextAreSeparateEntries(t *testing.T) {
	m, j := newTestModel(t)

	m = pressRune(m, '+')
	m = press(m, tea.KeyMsg{Type: tea.KeyTab})
	m = typeText(m, "a")

	assert.Equal(t, 2, j.Len())
	assert.Equal(t, []string{"set counter to 1", "set text to a"}, j.Messages())
}

func TestDemoModel_QTypesIntoFocusedTextField(t *testing.T) {
	m, j := newTestModel(t)

	m = press(m, tea.KeyMsg{Type: tea.KeyTab})
	m = pressRune(m, 'q')

	assert.False(t, m.quitting)
	assert.Equal(t, "q", m.state.text)
	assert.Equal(t, 1, j.Len())
}

// =============================================================================
// Truncation
// =============================================================================

func TestDemoModel_TruncateDropsRedoBranch(t *testing.T) {
	m, j := newTestModel(t)
	m = pressRune(m, '+')
	m = press(m, tea.KeyMsg{Type: tea.KeyTab})
	m = typeText(m, "a")
	m = press(m, tea.KeyMsg{Type: tea.KeyTab})
	m = pressRune(m, '+')
	require.Equal(t, 3, j.Len())

	m = press(m, tea.KeyMsg{Type: tea.KeyCtrlZ})
	require.True(t, j.CanRedo())

	m = press(m, tea.KeyMsg{Type: tea.KeyCtrlX})

	assert.Equal(t, 2, j.Len())
	assert.False(t, j.CanRedo())
	assert.Equal(t, 1, m.state.counter)
}

func TestDemoModel_TruncateWhenFullyUndoneClears(t *testing.T) {
	m, j := newTestModel(t)
	m = pressRune(m, '+')
	m = press(m, tea.KeyMsg{Type: tea.KeyCtrlZ})

	m = press(m, tea.KeyMsg{Type: tea.KeyCtrlX})

	assert.Equal(t, 0, j.Len())
	assert.Equal(t, 0, m.state.counter)

	// The journal stays usable afterwards.
	m = pressRune(m, '+')
	assert.Equal(t, 1, j.Len())
	assert.Equal(t, 1, m.state.counter)
}

// =============================================================================
// History Pane
// =============================================================================

func TestDemoModel_HistoryMarksHeadRow(t *testing.T) {
	m, _ := newTestModel(t)
	m = pressRune(m, '+')
	m = press(m, tea.KeyMsg{Type: tea.KeyTab})
	m = typeText(m, "a")

	m = press(m, tea.KeyMsg{Type: tea.KeyCtrlZ})

	history := m.renderHistory()
	lines := strings.Split(strings.TrimRight(history, "\n"), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "> "), "head row should be marked: %q", lines[0])
	assert.False(t, strings.HasPrefix(lines[1], "> "), "redo row should not be marked: %q", lines[1])
}

func TestDemoModel_ScrollKeysLeaveJournalAlone(t *testing.T) {
	m, j := newTestModel(t)
	m = pressRune(m, '+')

	m = press(m, tea.KeyMsg{Type: tea.KeyUp})
	m = press(m, tea.KeyMsg{Type: tea.KeyDown})
	m = pressRune(m, 'k')
	m = pressRune(m, 'j')

	assert.Equal(t, 1, j.Len())
	assert.Equal(t, 1, m.state.counter)
}

// =============================================================================
// Quitting
// =============================================================================

func TestDemoModel_QuitDisposesJournal(t *testing.T) {
	m, j := newTestModel(t)
	m = pressRune(m, '+')

	model, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	m = model.(demoModel)

	assert.True(t, m.quitting)
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())

	// Disposed journal reports empty and ignores further use.
	assert.Equal(t, 0, j.Len())
	assert.False(t, j.CanUndo())
	assert.Empty(t, m.View())
}

func TestDemoModel_CtrlCQuitsFromTextFocus(t *testing.T) {
	m, j := newTestModel(t)
	m = press(m, tea.KeyMsg{Type: tea.KeyTab})
	m = typeText(m, "abc")

	m = press(m, tea.KeyMsg{Type: tea.KeyCtrlC})

	assert.True(t, m.quitting)
	assert.Equal(t, 0, j.Len())
}
