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
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/AleutianAI/rewind/pkg/edits"
	"github.com/AleutianAI/rewind/pkg/journal"
	"github.com/AleutianAI/rewind/pkg/logging"
)

// =============================================================================
// Model
// =============================================================================

// focusArea identifies which pane receives keystrokes.
type focusArea int

const (
	focusCounter focusArea = iota
	focusText
)

// demoState is the document the demo edits. It lives behind a pointer so the
// command targets stay stable while bubbletea copies the model by value, and
// so coalescing sees the same target address across keystrokes.
type demoState struct {
	counter int
	text    string
}

// demoModel is the bubbletea model for the interactive journal demo.
//
// # Description
//
// Two values are edited through the journal: a counter driven by +/- and a
// free-text field driven by the text input. Every change is applied first and
// then handed to UpdateOrAdd, so rapid edits against the same value coalesce
// into a single history entry. The history pane shows the journal contents
// with the cursor row marked.
type demoModel struct {
	journal *journal.Journal
	state   *demoState

	input   textinput.Model
	history viewport.Model

	focus    focusArea
	width    int
	height   int
	ready    bool
	quitting bool
}

// newDemoModel creates the demo model around an existing journal.
func newDemoModel(j *journal.Journal) demoModel {
	ti := textinput.New()
	ti.Placeholder = "press tab, then type"
	ti.CharLimit = 120
	ti.Width = 40

	return demoModel{
		journal: j,
		state:   &demoState{},
		input:   ti,
		focus:   focusCounter,
	}
}

// Init implements tea.Model.
func (m demoModel) Init() tea.Cmd {
	return textinput.Blink
}

// =============================================================================
// Update
// =============================================================================

// Update implements tea.Model.
func (m demoModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		chromeHeight := lipgloss.Height(m.headerView()) +
			lipgloss.Height(m.inputView()) +
			lipgloss.Height(m.helpView()) + 3
		historyHeight := msg.Height - chromeHeight
		if historyHeight < 3 {
			historyHeight = 3
		}

		if !m.ready {
			m.history = viewport.New(msg.Width, historyHeight)
			m.ready = true
		} else {
			m.history.Width = msg.Width
			m.history.Height = historyHeight
		}
		m.syncHistory()
		return m, nil
	}

	return m, nil
}

func (m demoModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Global keys work regardless of focus.
	switch msg.String() {
	case "ctrl+c":
		return m.quit()

	case "ctrl+z":
		m.journal.Undo()
		m.syncFromState()
		return m, nil

	case "ctrl+r":
		m.journal.Redo()
		m.syncFromState()
		return m, nil

	case "ctrl+x":
		// Drop the redo branch, or everything when fully undone.
		if head, ok := m.journal.Head(); ok {
			m.journal.Truncate(head)
		} else {
			m.journal.Clear()
		}
		m.syncHistory()
		return m, nil

	case "tab":
		cmd := m.toggleFocus()
		return m, cmd
	}

	if m.focus == focusCounter {
		switch msg.String() {
		case "q":
			return m.quit()
		case "+", "=":
			m.adjustCounter(1)
		case "-", "_":
			m.adjustCounter(-1)
		case "up", "k":
			m.history.LineUp(1)
		case "down", "j":
			m.history.LineDown(1)
		}
		return m, nil
	}

	// Text focus: let the input process the keystroke, then journal the
	// resulting change so it can be undone.
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if v := m.input.Value(); v != m.state.text {
		edit := edits.NewSetValue(&m.state.text, v, "text")
		edit.Do()
		m.journal.UpdateOrAdd(edit)
		m.syncHistory()
	}
	return m, cmd
}

// =============================================================================
// Actions
// =============================================================================

func (m *demoModel) adjustCounter(delta int) {
	edit := edits.NewSetValue(&m.state.counter, m.state.counter+delta, "counter")
	edit.Do()
	m.journal.UpdateOrAdd(edit)
	m.syncHistory()
}

func (m *demoModel) toggleFocus() tea.Cmd {
	if m.focus == focusCounter {
		m.focus = focusText
		m.input.Focus()
		return textinput.Blink
	}
	m.focus = focusCounter
	m.input.Blur()
	return nil
}

// syncFromState pushes the journal-restored values back into the widgets
// after the cursor moved.
func (m *demoModel) syncFromState() {
	m.input.SetValue(m.state.text)
	m.input.CursorEnd()
	m.syncHistory()
}

func (m *demoModel) syncHistory() {
	if !m.ready {
		return
	}
	m.history.SetContent(m.renderHistory())
	m.history.GotoBottom()
}

func (m demoModel) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	m.journal.Dispose()
	return m, tea.Quit
}

// =============================================================================
// View
// =============================================================================

// View implements tea.Model.
func (m demoModel) View() string {
	if m.quitting {
		return ""
	}

	if !m.ready {
		return "Loading...\n"
	}

	var b strings.Builder
	b.WriteString(m.headerView())
	b.WriteString("\n")
	b.WriteString(m.history.View())
	b.WriteString("\n")
	b.WriteString(m.inputView())
	b.WriteString("\n")
	b.WriteString(m.helpView())

	return b.String()
}

func (m demoModel) headerView() string {
	title := titleStyle.Render("rewind demo")
	stats := statsStyle.Render(fmt.Sprintf("history %d/%d", m.journal.Len(), m.journal.MaxDepth()))

	var cursor string
	if msg, ok := m.journal.UndoMessage(); ok {
		cursor = statsStyle.Render("undo: " + msg)
	} else if msg, ok := m.journal.RedoMessage(); ok {
		cursor = statsStyle.Render("redo: " + msg)
	} else {
		cursor = statsStyle.Render("history is empty")
	}

	header := lipgloss.JoinHorizontal(lipgloss.Center, title, "  ", stats, "  ", cursor)
	values := valueStyle.Render(fmt.Sprintf("counter: %d", m.state.counter)) +
		"   " +
		valueStyle.Render(fmt.Sprintf("text: %q", m.state.text))

	return header + "\n" + values
}

func (m demoModel) renderHistory() string {
	messages := m.journal.Messages()
	if len(messages) == 0 {
		return emptyStyle.Render("no entries yet")
	}

	head, hasHead := m.journal.Head()

	var b strings.Builder
	for i, msg := range messages {
		line := fmt.Sprintf("%3d  %s", i+1, msg)
		switch {
		case hasHead && i == head:
			b.WriteString(headEntryStyle.Render("> " + line))
		case hasHead && i < head:
			b.WriteString(entryStyle.Render("  " + line))
		default:
			// Entries past the cursor are reachable only through redo.
			b.WriteString(redoEntryStyle.Render("  " + line))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m demoModel) inputView() string {
	label := "text "
	if m.focus == focusText {
		label = focusedLabelStyle.Render(label)
	} else {
		label = blurredLabelStyle.Render(label)
	}
	return label + m.input.View()
}

func (m demoModel) helpView() string {
	keys := [][2]string{
		{"+/-", "counter"},
		{"tab", "focus"},
		{"ctrl+z", "undo"},
		{"ctrl+r", "redo"},
		{"ctrl+x", "drop redo"},
		{"q", "quit"},
	}

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, helpKeyStyle.Render(k[0])+" "+helpDescStyle.Render(k[1]))
	}
	return strings.Join(parts, "   ")
}

// =============================================================================
// Runner
// =============================================================================

// runDemo starts the interactive demo.
func runDemo(cmd *cobra.Command, args []string) {
	logger := appLogger
	if isatty.IsTerminal(os.Stderr.Fd()) {
		// The TUI owns the terminal, so console logging would corrupt the
		// display. Keep the file mirror if one is configured.
		level, _ := logging.ParseLevel(config.LogLevel)
		logger = logging.New(logging.Config{
			Level:   level,
			LogDir:  config.LogDir,
			Service: "rewind",
			JSON:    true,
			Quiet:   true,
		})
		defer func() { _ = logger.Close() }()
	}

	j, err := journal.New(config.MaxDepth, &journal.Options{
		UpdateWindow: config.UpdateWindow,
		Logger:       logger.Slog(),
	})
	if err != nil {
		log.Fatalf("Error creating journal: %v", err)
	}
	defer j.Dispose()

	p := tea.NewProgram(newDemoModel(j), tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		log.Fatalf("Error running demo: %v", err)
	}

	if _, ok := finalModel.(demoModel); !ok {
		logger.Warn("unexpected model type returned from demo")
	}
	logger.Info("demo session finished")
}

// =============================================================================
// Styles
// =============================================================================

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	statsStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("212"))

	emptyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true)

	headEntryStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("42"))

	entryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("250"))

	redoEntryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	focusedLabelStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("39"))

	blurredLabelStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("241"))

	helpKeyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")).
			Bold(true)

	helpDescStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("250"))
)
