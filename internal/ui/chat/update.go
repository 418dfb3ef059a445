// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/entropy-tui/internal/pipeline"
)

// =============================================================================
// UPDATE LOOP
// =============================================================================

// Update handles all incoming Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		m.syncComponents()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case pipeline.ThinkingTickMsg,
		pipeline.TurnResponseMsg,
		pipeline.TurnFailedMsg,
		pipeline.RevealTickMsg:
		cmd := m.pipe.Update(msg)
		m.syncComponents()
		return m, cmd

	case pipeline.TurnCommittedMsg:
		m.syncComponents()
		return m, nil
	}

	// Everything else (blink, spinner frames) goes to the focused widgets.
	var cmds []tea.Cmd

	var spinnerCmd tea.Cmd
	m.spinner, spinnerCmd = m.spinner.Update(msg)
	cmds = append(cmds, spinnerCmd)

	if m.focus == focusInput {
		var inputCmd tea.Cmd
		m.input, inputCmd = m.input.Update(msg)
		cmds = append(cmds, inputCmd)
	}

	return m, tea.Batch(cmds...)
}

// =============================================================================
// KEY HANDLING
// =============================================================================

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Quit always works.
	if key.Matches(msg, m.keyMap.Quit) {
		return m, tea.Quit
	}

	switch m.focus {
	case focusSelector:
		return m.handleSelectorKey(msg)
	case focusSidebar:
		return m.handleSidebarKey(msg)
	default:
		return m.handleInputKey(msg)
	}
}

// handleInputKey handles keys while the message input has focus.
func (m *Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keyMap.Submit):
		return m.submit()

	case key.Matches(msg, m.keyMap.NewChat):
		m.store.NewConversation()
		m.sidebar.Cursor = 0
		m.syncComponents()
		return m, nil

	case key.Matches(msg, m.keyMap.CycleModel):
		m.selector.SetSelected(m.store.SelectedModel())
		m.selector.Show()
		m.focus = focusSelector
		return m, nil

	case key.Matches(msg, m.keyMap.ToggleSidebar):
		if m.sidebarVisible() {
			m.focus = focusSidebar
			m.input.Blur()
		}
		return m, nil

	case key.Matches(msg, m.keyMap.PageUp):
		m.viewport.HalfViewUp()
		return m, nil

	case key.Matches(msg, m.keyMap.PageDown):
		m.viewport.HalfViewDown()
		return m, nil

	case key.Matches(msg, m.keyMap.Up):
		m.viewport.LineUp(1)
		return m, nil

	case key.Matches(msg, m.keyMap.Down):
		m.viewport.LineDown(1)
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// handleSelectorKey handles keys while the model selector overlay is open.
func (m *Model) handleSelectorKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keyMap.CycleModel), key.Matches(msg, m.keyMap.Down):
		m.selector.Cycle()
		return m, nil

	case key.Matches(msg, m.keyMap.Submit):
		m.store.SetSelectedModel(m.selector.Selected)
		m.closeSelector()
		return m, nil

	case key.Matches(msg, m.keyMap.Cancel):
		m.closeSelector()
		return m, nil
	}
	return m, nil
}

// handleSidebarKey handles keys while the sidebar has focus.
func (m *Model) handleSidebarKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keyMap.Up):
		m.sidebar.MoveCursor(-1)
		return m, nil

	case key.Matches(msg, m.keyMap.Down):
		m.sidebar.MoveCursor(1)
		return m, nil

	case key.Matches(msg, m.keyMap.Submit):
		if id := m.sidebar.CursorID(); id != "" {
			m.store.Select(id)
		}
		m.focusInput()
		m.syncComponents()
		return m, nil

	case key.Matches(msg, m.keyMap.NewChat):
		m.store.NewConversation()
		m.sidebar.Cursor = 0
		m.focusInput()
		m.syncComponents()
		return m, nil

	case key.Matches(msg, m.keyMap.ToggleSidebar), key.Matches(msg, m.keyMap.Cancel):
		m.focusInput()
		return m, nil
	}
	return m, nil
}

// =============================================================================
// ACTIONS
// =============================================================================

// submit hands the input text to the response pipeline. The input is
// cleared only when the pipeline accepts the turn, so text typed while a
// reply is in flight is never lost.
func (m *Model) submit() (tea.Model, tea.Cmd) {
	if m.store.Current() == nil {
		m.store.NewConversation()
	}

	cmd := m.pipe.Submit(m.input.Value())
	if cmd == nil {
		return m, nil
	}

	m.input.Reset()
	m.spinner.SetMessage(m.pipe.ThinkingIndicator())
	spinnerCmd := m.spinner.Start()
	m.syncComponents()
	m.viewport.GotoBottom()

	return m, tea.Batch(cmd, spinnerCmd)
}

func (m *Model) closeSelector() {
	m.selector.Hide()
	m.focusInput()
	m.syncComponents()
}

func (m *Model) focusInput() {
	m.focus = focusInput
	m.input.Focus()
}
