// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/entropy-tui/internal/personality"
	"github.com/jeranaias/entropy-tui/internal/ui/styles"
)

// =============================================================================
// WELCOME SCREEN MODEL
// =============================================================================

// Welcome is the start screen shown before the first message is sent.
type Welcome struct {
	version   string
	modelName string
	width     int
	height    int

	theme *styles.Theme
}

// NewWelcome creates a new welcome screen.
func NewWelcome(theme *styles.Theme) Welcome {
	return Welcome{
		version:   "dev",
		modelName: personality.MustLookup(personality.Default()).Name,
		theme:     theme,
	}
}

// SetVersion sets the version string.
func (w *Welcome) SetVersion(version string) {
	w.version = version
}

// SetModelName sets the displayed model name.
func (w *Welcome) SetModelName(name string) {
	w.modelName = name
}

// SetSize updates the dimensions.
func (w *Welcome) SetSize(width, height int) {
	w.width = width
	w.height = height
}

// Init initializes the welcome screen.
func (w Welcome) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (w Welcome) Update(msg tea.Msg) (Welcome, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		w.width = size.Width
		w.height = size.Height
	}
	return w, nil
}

// View renders the welcome screen, centered in the available space.
func (w Welcome) View() string {
	width := w.width
	if width == 0 {
		width = 80
	}
	height := w.height
	if height == 0 {
		height = 24
	}

	boxWidth := 56
	if boxWidth > width-4 {
		boxWidth = width - 4
	}
	if boxWidth < 36 {
		boxWidth = 36
	}

	var content string
	if height >= 18 {
		content = w.renderLogo() + "\n\n" +
			w.renderVersion() + "\n\n" +
			w.renderInfo() + "\n\n" +
			w.renderPressKey()
	} else {
		content = w.renderLogoCompact() + "\n" +
			w.renderVersion() + "\n" +
			w.renderInfo() + "\n" +
			w.renderPressKey()
	}

	box := lipgloss.NewStyle().
		BorderStyle(lipgloss.DoubleBorder()).
		BorderForeground(styles.Purple).
		Padding(1, 4).
		Width(boxWidth).
		Align(lipgloss.Center).
		Render(content)

	return lipgloss.Place(
		width, height,
		lipgloss.Center, lipgloss.Center,
		box,
	)
}

// =============================================================================
// RENDER HELPERS
// =============================================================================

func (w Welcome) renderLogo() string {
	logo := ` _____ _   _ _____ ____   ___  ______   __
| ____| \ | |_   _|  _ \ / _ \|  _ \ \ / /
|  _| |  \| | | | | |_) | | | | |_) \ V /
| |___| |\  | | | |  _ <| |_| |  __/ | |
|_____|_| \_| |_| |_| \_\\___/|_|    |_|`

	return w.theme.WelcomeLogo.Render(logo)
}

func (w Welcome) renderLogoCompact() string {
	return w.theme.WelcomeLogo.Render("E N T R O P Y")
}

func (w Welcome) renderVersion() string {
	return w.theme.WelcomeVersion.Render("v" + w.version + " - reliably unreliable")
}

func (w Welcome) renderInfo() string {
	label := lipgloss.NewStyle().Foreground(styles.TextMuted)
	value := lipgloss.NewStyle().Foreground(styles.TextSecondary)

	return label.Render("Model: ") + value.Render(w.modelName)
}

func (w Welcome) renderPressKey() string {
	return w.theme.WelcomeInfo.Render("Type a message and press ") +
		w.theme.WelcomeKey.Render("enter") +
		w.theme.WelcomeInfo.Render(" to begin")
}
