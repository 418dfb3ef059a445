// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/entropy-tui/internal/pipeline"
	"github.com/jeranaias/entropy-tui/internal/ui/styles"
)

// =============================================================================
// VIEW
// =============================================================================

// View renders the full application frame.
func (m *Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	var main string
	if m.showWelcome() {
		main = m.welcome.View()
	} else {
		main = m.renderTranscript()
	}

	if m.focus == focusSelector {
		main = m.renderSelectorOverlay(main)
	}

	columns := main
	if m.sidebarVisible() {
		columns = lipgloss.JoinHorizontal(lipgloss.Top, m.sidebar.View(), main)
	}

	rows := []string{
		columns,
		m.renderThinkingLine(),
		m.renderInputLine(),
		m.statusBar.View(),
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// showWelcome reports whether the welcome screen replaces the transcript.
// It is shown until the current conversation has its first message.
func (m *Model) showWelcome() bool {
	if m.pipe.Phase() != pipeline.PhaseIdle {
		return false
	}
	conv := m.store.Current()
	return conv == nil || conv.IsEmpty()
}

// renderTranscript renders the scrolling message history.
func (m *Model) renderTranscript() string {
	return lipgloss.NewStyle().
		Padding(0, 1).
		Render(m.viewport.View())
}

// renderSelectorOverlay centers the model selector over the transcript.
func (m *Model) renderSelectorOverlay(under string) string {
	overlay := m.selector.View()
	if overlay == "" {
		return under
	}

	return lipgloss.Place(
		lipgloss.Width(under), lipgloss.Height(under),
		lipgloss.Center, lipgloss.Center,
		overlay,
	)
}

// renderThinkingLine renders the spinner row. Kept as a dedicated row so
// the layout doesn't jump when thinking starts and stops.
func (m *Model) renderThinkingLine() string {
	if !m.spinner.IsActive() {
		return ""
	}
	return lipgloss.NewStyle().
		Padding(0, 2).
		Render(m.spinner.View())
}

// renderInputLine renders the prompt and text input.
func (m *Model) renderInputLine() string {
	prompt := lipgloss.NewStyle().
		Foreground(styles.Cyan).
		Bold(true).
		Render("> ")

	return lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderTop(true).
		BorderForeground(styles.Overlay).
		Width(m.width).
		Padding(0, 1).
		Render(prompt + m.input.View())
}
