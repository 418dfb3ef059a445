// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/entropy-tui/internal/model"
	"github.com/jeranaias/entropy-tui/internal/ui/styles"
)

// =============================================================================
// MESSAGE BUBBLE COMPONENT
// =============================================================================

// MessageBubble renders a single chat message as a styled bubble.
type MessageBubble struct {
	Message       *model.Message
	Width         int
	ShowTimestamp bool

	// Revealing marks a bubble whose text is still being typed out.
	// A blinking cursor is appended after the content.
	Revealing bool

	// IsError marks the canned failure reply so it renders in the
	// error palette instead of the assistant palette.
	IsError bool

	theme *styles.Theme
}

// NewMessageBubble creates a bubble for the given message.
func NewMessageBubble(msg *model.Message, theme *styles.Theme) *MessageBubble {
	if msg == nil {
		msg = &model.Message{Role: model.RoleAssistant}
	}
	return &MessageBubble{
		Message:       msg,
		Width:         80,
		ShowTimestamp: true,
		theme:         theme,
	}
}

// SetWidth sets the bubble width.
func (b *MessageBubble) SetWidth(width int) {
	b.Width = width
}

// View renders the message bubble.
func (b *MessageBubble) View() string {
	if b.Message.Role == model.RoleUser {
		return b.renderUserBubble()
	}
	return b.renderAssistantBubble()
}

// ==========================================================================
// USER BUBBLE - Blue tones, right-aligned
// ==========================================================================

func (b *MessageBubble) renderUserBubble() string {
	content := b.Message.Content
	if content == "" {
		content = "..."
	}

	maxContentWidth := b.Width - 12
	if maxContentWidth < 20 {
		maxContentWidth = 20
	}
	wrapped := wordWrap(content, maxContentWidth)
	contentWidth := minInt(maxLineWidth(wrapped)+4, b.Width-8)

	bubble := lipgloss.NewStyle().
		Foreground(styles.UserBubbleFg).
		Background(styles.UserBubbleBg).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(styles.UserBubbleBorder).
		Padding(0, 2).
		Width(contentWidth).
		Render(wrapped)

	header := b.renderHeader("you")

	// Right-align the bubble with a left margin.
	leftMargin := b.Width - contentWidth - 4
	if leftMargin < 0 {
		leftMargin = 0
	}
	marginStyle := lipgloss.NewStyle().MarginLeft(leftMargin)

	return lipgloss.JoinVertical(
		lipgloss.Right,
		marginStyle.Render(header),
		marginStyle.Render(bubble),
	)
}

// ==========================================================================
// ASSISTANT BUBBLE - Purple tones, left-aligned
// ==========================================================================

func (b *MessageBubble) renderAssistantBubble() string {
	content := b.Message.Content
	if b.Revealing {
		content += b.renderRevealCursor()
	}
	if content == "" {
		content = "..."
	}

	maxContentWidth := b.Width - 12
	if maxContentWidth < 20 {
		maxContentWidth = 20
	}

	// Fenced code gets chroma highlighting; the highlighted output
	// carries ANSI sequences that plain word wrapping would mangle, so
	// those replies skip the wrap.
	var wrapped string
	if strings.Contains(content, "```") && !b.Revealing {
		wrapped = ParseCodeBlocks(content, maxContentWidth)
	} else {
		wrapped = wordWrap(content, maxContentWidth)
	}
	contentWidth := minInt(maxLineWidth(wrapped)+4, b.Width-8)

	fg, bg, border := styles.AssistantBubbleFg, styles.AssistantBubbleBg, styles.AssistantBubbleBorder
	if b.IsError {
		fg, bg, border = styles.Rose, styles.SurfaceDim, styles.Rose
	}

	bubble := lipgloss.NewStyle().
		Foreground(fg).
		Background(bg).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 2).
		Width(contentWidth).
		MarginRight(4).
		Render(wrapped)

	roleName := "entropy"
	if b.Message.Model != "" {
		roleName = b.Message.Model
	}
	header := b.renderHeader(roleName)

	return lipgloss.JoinVertical(lipgloss.Left, header, bubble)
}

// ==========================================================================
// HELPER METHODS
// ==========================================================================

// renderHeader renders the role indicator plus optional timestamp.
func (b *MessageBubble) renderHeader(role string) string {
	roleStyle := lipgloss.NewStyle().
		Foreground(styles.TextMuted).
		Italic(true)

	parts := []string{roleStyle.Render(role)}
	if b.ShowTimestamp {
		if ts := b.renderTimestamp(); ts != "" {
			parts = append(parts, ts)
		}
	}
	return strings.Join(parts, " ")
}

// renderTimestamp renders a dimmed timestamp.
func (b *MessageBubble) renderTimestamp() string {
	ts := b.Message.Timestamp
	if ts.IsZero() {
		return ""
	}

	now := time.Now()
	var formatted string
	if ts.Year() == now.Year() && ts.YearDay() == now.YearDay() {
		formatted = ts.Format("3:04 PM")
	} else {
		formatted = ts.Format("Jan 2, 3:04 PM")
	}

	return lipgloss.NewStyle().
		Foreground(styles.TextMuted).
		Italic(true).
		Render(formatted)
}

// renderRevealCursor renders the blinking cursor shown while text types out.
func (b *MessageBubble) renderRevealCursor() string {
	return lipgloss.NewStyle().
		Foreground(styles.Purple).
		Blink(true).
		Render("_")
}

// ==========================================================================
// UTILITY FUNCTIONS
// ==========================================================================

// wordWrap wraps text to fit within the specified width. Existing line
// breaks are preserved.
func wordWrap(text string, width int) string {
	if width <= 0 {
		return text
	}

	var result strings.Builder
	for lineIdx, line := range strings.Split(text, "\n") {
		if lineIdx > 0 {
			result.WriteString("\n")
		}

		words := strings.Fields(line)
		if len(words) == 0 {
			continue
		}

		currentLine := words[0]
		for _, word := range words[1:] {
			if runeLen(currentLine)+1+runeLen(word) <= width {
				currentLine += " " + word
			} else {
				result.WriteString(currentLine)
				result.WriteString("\n")
				currentLine = word
			}
		}
		result.WriteString(currentLine)
	}

	return result.String()
}

// maxLineWidth returns the width of the longest line in runes.
func maxLineWidth(text string) int {
	maxWidth := 0
	for _, line := range strings.Split(text, "\n") {
		if w := runeLen(line); w > maxWidth {
			maxWidth = w
		}
	}
	return maxWidth
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// runeLen returns the number of runes in a string. len() would return the
// byte count and misbehave on non-ASCII text.
func runeLen(s string) int {
	return len([]rune(s))
}

// =============================================================================
// MESSAGE LIST COMPONENT
// =============================================================================

// MessageList renders a conversation transcript as a stack of bubbles.
type MessageList struct {
	Messages       []*model.Message
	Width          int
	ShowTimestamps bool

	// RevealOverride replaces the content of the final assistant message
	// while a reply is typing out. Empty means render messages as-is.
	RevealOverride string
	Revealing      bool

	// ErrorText is the canned failure reply; matching assistant messages
	// render in the error palette.
	ErrorText string

	theme *styles.Theme
}

// NewMessageList creates a new MessageList.
func NewMessageList(theme *styles.Theme) *MessageList {
	return &MessageList{
		Width:          80,
		ShowTimestamps: true,
		theme:          theme,
	}
}

// SetMessages sets the messages to display.
func (ml *MessageList) SetMessages(messages []*model.Message) {
	ml.Messages = messages
}

// SetWidth sets the list width.
func (ml *MessageList) SetWidth(width int) {
	ml.Width = width
}

// View renders all messages.
func (ml *MessageList) View() string {
	if len(ml.Messages) == 0 && !ml.Revealing {
		return lipgloss.NewStyle().
			Foreground(styles.TextMuted).
			Italic(true).
			Width(ml.Width).
			Align(lipgloss.Center).
			Padding(2, 0).
			Render("No messages yet. Type something and hope for the best.")
	}

	var bubbles []string
	for _, msg := range ml.Messages {
		bubble := NewMessageBubble(msg, ml.theme)
		bubble.SetWidth(ml.Width)
		bubble.ShowTimestamp = ml.ShowTimestamps
		bubble.IsError = msg.Role == model.RoleAssistant &&
			ml.ErrorText != "" && msg.Content == ml.ErrorText
		bubbles = append(bubbles, bubble.View())
	}

	// A reply mid-reveal is not in the store yet; render it as a
	// trailing in-progress bubble.
	if ml.Revealing {
		partial := &model.Message{
			Role:      model.RoleAssistant,
			Content:   ml.RevealOverride,
			Timestamp: time.Now(),
		}
		bubble := NewMessageBubble(partial, ml.theme)
		bubble.SetWidth(ml.Width)
		bubble.ShowTimestamp = false
		bubble.Revealing = true
		bubbles = append(bubbles, bubble.View())
	}

	return strings.Join(bubbles, "\n")
}
