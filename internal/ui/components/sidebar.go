// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/entropy-tui/internal/model"
	"github.com/jeranaias/entropy-tui/internal/ui/styles"
	"github.com/jeranaias/entropy-tui/internal/util"
)

// =============================================================================
// SIDEBAR COMPONENT - Conversation list panel
// =============================================================================

// Sidebar renders the conversation list, most recent first. The entry for
// the current conversation is highlighted; a cursor row tracks keyboard
// navigation independently of the selection.
type Sidebar struct {
	Conversations []*model.Conversation
	CurrentID     string
	Cursor        int
	Width         int
	Height        int

	theme *styles.Theme
}

// NewSidebar creates a new sidebar.
func NewSidebar(theme *styles.Theme) *Sidebar {
	return &Sidebar{
		Width:  28,
		Height: 24,
		theme:  theme,
	}
}

// SetConversations replaces the displayed list.
func (sb *Sidebar) SetConversations(convs []*model.Conversation, currentID string) {
	sb.Conversations = convs
	sb.CurrentID = currentID
	if sb.Cursor >= len(convs) {
		sb.Cursor = len(convs) - 1
	}
	if sb.Cursor < 0 {
		sb.Cursor = 0
	}
}

// SetSize updates the sidebar dimensions.
func (sb *Sidebar) SetSize(width, height int) {
	sb.Width = width
	sb.Height = height
}

// MoveCursor moves the navigation cursor by delta, clamped to the list.
func (sb *Sidebar) MoveCursor(delta int) {
	sb.Cursor += delta
	if sb.Cursor < 0 {
		sb.Cursor = 0
	}
	if sb.Cursor >= len(sb.Conversations) {
		sb.Cursor = len(sb.Conversations) - 1
	}
}

// CursorID returns the conversation id under the cursor, or "" when the
// list is empty.
func (sb *Sidebar) CursorID() string {
	if sb.Cursor < 0 || sb.Cursor >= len(sb.Conversations) {
		return ""
	}
	return sb.Conversations[sb.Cursor].ID
}

// View renders the sidebar panel.
func (sb *Sidebar) View() string {
	title := sb.theme.SidebarTitle.Render("Conversations")

	var rows []string
	rows = append(rows, title, "")

	if len(sb.Conversations) == 0 {
		empty := lipgloss.NewStyle().
			Foreground(styles.TextMuted).
			Italic(true).
			Render("none yet")
		rows = append(rows, empty)
	}

	// Two rows per entry: title line plus timestamp line.
	maxEntries := (sb.Height - 3) / 2
	if maxEntries < 1 {
		maxEntries = 1
	}

	// Keep the cursor row visible when the list is longer than the panel.
	start := 0
	if sb.Cursor >= maxEntries {
		start = sb.Cursor - maxEntries + 1
	}

	innerWidth := sb.Width - 4
	if innerWidth < 8 {
		innerWidth = 8
	}

	for i := start; i < len(sb.Conversations) && i < start+maxEntries; i++ {
		conv := sb.Conversations[i]

		label := util.TruncateWidth(conv.Title, innerWidth-2)
		itemStyle := sb.theme.SidebarItem
		if i == sb.Cursor {
			itemStyle = sb.theme.SidebarItemSelected
		} else if conv.ID == sb.CurrentID {
			itemStyle = sb.theme.SidebarItem.Foreground(styles.Purple).Bold(true)
		}

		rows = append(rows, itemStyle.Render(label))
		rows = append(rows, sb.theme.SidebarItemTimestamp.Render("  "+relativeTime(conv.UpdatedAt)))
	}

	content := strings.Join(rows, "\n")

	return sb.theme.Sidebar.
		Width(sb.Width).
		Height(sb.Height).
		Render(content)
}

// relativeTime formats a timestamp as a short relative age.
func relativeTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}

	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return strconv.Itoa(int(d.Minutes())) + "m ago"
	case d < 24*time.Hour:
		return strconv.Itoa(int(d.Hours())) + "h ago"
	default:
		return t.Format("Jan 2")
	}
}
