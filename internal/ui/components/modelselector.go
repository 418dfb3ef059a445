// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/entropy-tui/internal/personality"
	"github.com/jeranaias/entropy-tui/internal/ui/styles"
)

// =============================================================================
// MODEL SELECTOR COMPONENT
// =============================================================================

// ModelSelector is the personality picker overlay. The catalog is fixed,
// so the selector simply lists every personality with its description.
type ModelSelector struct {
	Selected personality.ModelID
	Visible  bool
	Width    int

	theme *styles.Theme
}

// NewModelSelector creates a selector starting at the given personality.
func NewModelSelector(selected personality.ModelID, theme *styles.Theme) *ModelSelector {
	if !personality.IsValid(selected) {
		selected = personality.Default()
	}
	return &ModelSelector{
		Selected: selected,
		Width:    48,
		theme:    theme,
	}
}

// Show makes the overlay visible.
func (ms *ModelSelector) Show() {
	ms.Visible = true
}

// Hide dismisses the overlay.
func (ms *ModelSelector) Hide() {
	ms.Visible = false
}

// Cycle advances the highlighted personality, wrapping at the end.
func (ms *ModelSelector) Cycle() {
	ms.Selected = personality.Next(ms.Selected)
}

// SetSelected moves the highlight to the given personality.
func (ms *ModelSelector) SetSelected(id personality.ModelID) {
	if personality.IsValid(id) {
		ms.Selected = id
	}
}

// View renders the selector overlay. Returns "" when hidden.
func (ms *ModelSelector) View() string {
	if !ms.Visible {
		return ""
	}

	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(styles.Purple).
		Render("Select a model")

	var rows []string
	rows = append(rows, title, "")

	for _, p := range personality.All() {
		marker := "  "
		nameStyle := ms.theme.SelectorItem
		if p.ID == ms.Selected {
			marker = "> "
			nameStyle = ms.theme.SelectorItemSelected
		}

		rows = append(rows, marker+nameStyle.Render(p.Name))
		rows = append(rows, "  "+ms.theme.SelectorDesc.Render(p.Description))
	}

	rows = append(rows, "")
	hint := lipgloss.NewStyle().Foreground(styles.TextMuted).Render("^J next  enter select  esc cancel")
	rows = append(rows, hint)

	return ms.theme.SelectorBox.
		Width(ms.Width).
		Render(strings.Join(rows, "\n"))
}
