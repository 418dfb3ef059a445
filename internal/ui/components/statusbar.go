// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/entropy-tui/internal/personality"
	"github.com/jeranaias/entropy-tui/internal/pipeline"
	"github.com/jeranaias/entropy-tui/internal/ui/styles"
)

// =============================================================================
// STATUS BAR COMPONENT
// =============================================================================

// StatusBar is the bottom bar showing the selected model, turn phase, and
// keyboard shortcuts.
type StatusBar struct {
	Model             personality.ModelID
	Phase             pipeline.Phase
	ConversationCount int
	Width             int
	ShowShortcuts     bool

	theme *styles.Theme
}

// NewStatusBar creates a new StatusBar component.
func NewStatusBar(theme *styles.Theme) *StatusBar {
	return &StatusBar{
		Model:         personality.Default(),
		Phase:         pipeline.PhaseIdle,
		Width:         80,
		ShowShortcuts: true,
		theme:         theme,
	}
}

// SetWidth updates the status bar width.
func (s *StatusBar) SetWidth(width int) {
	s.Width = width
}

// SetModel updates the model badge.
func (s *StatusBar) SetModel(id personality.ModelID) {
	s.Model = id
}

// SetPhase updates the turn phase display.
func (s *StatusBar) SetPhase(phase pipeline.Phase) {
	s.Phase = phase
}

// SetConversationCount updates the conversation counter.
func (s *StatusBar) SetConversationCount(n int) {
	s.ConversationCount = n
}

// phaseText returns the user-facing label for the current phase.
func (s *StatusBar) phaseText() string {
	switch s.Phase {
	case pipeline.PhaseIdle, pipeline.PhaseCommitted:
		return "Ready"
	case pipeline.PhaseSubmitted, pipeline.PhaseAwaitingRemote:
		return "Waiting..."
	case pipeline.PhaseThinking:
		return "Thinking..."
	case pipeline.PhaseRevealing:
		return "Replying..."
	case pipeline.PhaseError:
		return "Error"
	default:
		return "Unknown"
	}
}

// phaseStyle returns the style for the current phase label.
func (s *StatusBar) phaseStyle() lipgloss.Style {
	switch s.Phase {
	case pipeline.PhaseError:
		return lipgloss.NewStyle().Foreground(styles.Rose).Bold(true)
	case pipeline.PhaseIdle, pipeline.PhaseCommitted:
		return lipgloss.NewStyle().Foreground(styles.Emerald)
	default:
		return lipgloss.NewStyle().Foreground(styles.Amber)
	}
}

// modelBadge renders the selected personality's badge. Turbo gets the
// amber treatment so nobody accidentally waits eight seconds unwarned.
func (s *StatusBar) modelBadge() string {
	bg := styles.Purple
	if s.Model == personality.ModelTurbo {
		bg = styles.Amber
	}

	name := s.Model.String()
	if p, ok := personality.Lookup(s.Model); ok {
		name = p.Name
	}

	return lipgloss.NewStyle().
		Foreground(styles.TextInverse).
		Background(bg).
		Bold(true).
		Padding(0, 1).
		Render(name)
}

// renderShortcuts renders the shortcut hints.
func (s *StatusBar) renderShortcuts() string {
	keyStyle := lipgloss.NewStyle().Foreground(styles.Cyan).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(styles.TextMuted)

	shortcuts := []struct{ key, desc string }{
		{"^N", "new"},
		{"^J", "model"},
		{"Tab", "sidebar"},
		{"^C", "quit"},
	}

	var parts []string
	for _, sc := range shortcuts {
		parts = append(parts, keyStyle.Render(sc.key)+descStyle.Render(" "+sc.desc))
	}
	return strings.Join(parts, "  ")
}

// View renders the status bar.
func (s *StatusBar) View() string {
	if s.Width < 60 {
		return s.viewNarrow()
	}
	return s.viewWide()
}

// viewNarrow renders a compact bar: badge + phase only.
func (s *StatusBar) viewNarrow() string {
	separator := lipgloss.NewStyle().Foreground(styles.Overlay).Render(" ")

	result := s.modelBadge() + separator + s.phaseStyle().Render(s.phaseText())

	return lipgloss.NewStyle().
		Background(styles.SurfaceDim).
		Foreground(styles.TextSecondary).
		Width(s.Width).
		Render(result)
}

// viewWide renders the full bar: badge | phase | count ... shortcuts.
func (s *StatusBar) viewWide() string {
	separator := lipgloss.NewStyle().Foreground(styles.Overlay).Render(" | ")

	parts := []string{
		s.modelBadge(),
		s.phaseStyle().Render(s.phaseText()),
	}

	if s.ConversationCount > 0 {
		countStyle := lipgloss.NewStyle().Foreground(styles.TextMuted)
		label := "conversations"
		if s.ConversationCount == 1 {
			label = "conversation"
		}
		parts = append(parts, countStyle.Render(strconv.Itoa(s.ConversationCount)+" "+label))
	}

	left := strings.Join(parts, separator)

	right := ""
	if s.ShowShortcuts {
		right = s.renderShortcuts()
	}

	// Pad the middle so shortcuts sit flush right.
	gap := s.Width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}

	return lipgloss.NewStyle().
		Background(styles.SurfaceDim).
		Foreground(styles.TextSecondary).
		Padding(0, 1).
		Width(s.Width).
		Render(left + strings.Repeat(" ", gap) + right)
}
