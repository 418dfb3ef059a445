// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/entropy-tui/internal/cloud"
	"github.com/jeranaias/entropy-tui/internal/personality"
	"github.com/jeranaias/entropy-tui/internal/pipeline"
	"github.com/jeranaias/entropy-tui/internal/store"
	"github.com/jeranaias/entropy-tui/internal/ui/components"
	"github.com/jeranaias/entropy-tui/internal/ui/styles"
)

// =============================================================================
// FOCUS STATE
// =============================================================================

// focus identifies which pane receives keyboard input.
type focus int

const (
	focusInput focus = iota
	focusSidebar
	focusSelector
)

// =============================================================================
// CHAT MODEL
// =============================================================================

// Model is the root Bubble Tea model for the entropy TUI.
type Model struct {
	// Domain state
	store *store.Store
	pipe  *pipeline.Pipeline

	// Styling
	theme *styles.Theme

	// Dimensions
	width  int
	height int
	ready  bool

	// Focus
	focus focus

	// UI components
	viewport  viewport.Model
	input     textinput.Model
	spinner   components.Spinner
	statusBar *components.StatusBar
	sidebar   *components.Sidebar
	selector  *components.ModelSelector
	welcome   components.Welcome

	// Key bindings
	keyMap KeyMap

	// Display options
	version     string
	showSidebar bool
}

// Option configures the chat model.
type Option func(*Model)

// WithVersion sets the version string shown on the welcome screen.
func WithVersion(version string) Option {
	return func(m *Model) {
		m.version = version
	}
}

// WithSidebar controls whether the conversation sidebar starts visible.
func WithSidebar(show bool) Option {
	return func(m *Model) {
		m.showSidebar = show
	}
}

// New creates the chat model. The store must already be loaded; the
// completer is handed to the response pipeline unchanged.
func New(st *store.Store, completer cloud.Completer, opts ...Option) *Model {
	theme := styles.NewTheme()

	input := textinput.New()
	input.Placeholder = "Start a new chat to begin"
	input.CharLimit = 4000
	input.Focus()

	m := &Model{
		store:       st,
		pipe:        pipeline.New(st, completer),
		theme:       theme,
		input:       input,
		spinner:     components.NewSpinner(),
		statusBar:   components.NewStatusBar(theme),
		sidebar:     components.NewSidebar(theme),
		selector:    components.NewModelSelector(st.SelectedModel(), theme),
		welcome:     components.NewWelcome(theme),
		keyMap:      DefaultKeyMap(),
		version:     "dev",
		showSidebar: true,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.welcome.SetVersion(m.version)
	m.syncComponents()
	return m
}

// Init starts the cursor blink.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Pipeline exposes the response pipeline, mainly for tests.
func (m *Model) Pipeline() *pipeline.Pipeline {
	return m.pipe
}

// =============================================================================
// STATE SYNC
// =============================================================================

// syncComponents refreshes every component from the store and pipeline.
// Called after any message that could have changed domain state.
func (m *Model) syncComponents() {
	convs := m.store.Conversations()

	m.sidebar.SetConversations(convs, m.store.CurrentID())
	m.statusBar.SetModel(m.store.SelectedModel())
	m.statusBar.SetPhase(m.pipe.Phase())
	m.statusBar.SetConversationCount(len(convs))

	if p, ok := personality.Lookup(m.store.SelectedModel()); ok {
		m.welcome.SetModelName(p.Name)
	}

	if m.store.Current() != nil {
		m.input.Placeholder = "Message Entropy AI..."
	} else {
		m.input.Placeholder = "Start a new chat to begin"
	}

	// The spinner runs only while a reply is pending; once text begins
	// revealing (or the turn settles) it goes away.
	switch m.pipe.Phase() {
	case pipeline.PhaseSubmitted, pipeline.PhaseAwaitingRemote, pipeline.PhaseThinking:
		m.spinner.SetMessage(m.pipe.ThinkingIndicator())
	default:
		m.spinner.Stop()
	}

	m.refreshTranscript()
}

// refreshTranscript re-renders the viewport from the current conversation
// plus any reply still typing out.
func (m *Model) refreshTranscript() {
	if !m.ready {
		return
	}

	ml := components.NewMessageList(m.theme)
	ml.SetWidth(m.viewport.Width)
	ml.ErrorText = pipeline.ErrorMessageText

	conv := m.store.Current()
	if conv != nil {
		ml.SetMessages(conv.Messages)
	}

	// The revealed prefix belongs to the conversation captured at
	// submit time; only show it when that conversation is on screen.
	if m.pipe.Phase() == pipeline.PhaseRevealing {
		if turn := m.pipe.ActiveTurn(); turn != nil && conv != nil && turn.ConversationID == conv.ID {
			ml.Revealing = true
			ml.RevealOverride = m.pipe.RevealedText()
		}
	}

	atBottom := m.viewport.AtBottom()
	m.viewport.SetContent(ml.View())
	if atBottom {
		m.viewport.GotoBottom()
	}
}

// layout recomputes component dimensions after a resize.
func (m *Model) layout() {
	m.theme.SetSize(m.width, m.height)

	sidebarWidth := 0
	if m.sidebarVisible() {
		sidebarWidth = 30
	}

	// One row each for the thinking line, input, and status bar.
	contentHeight := m.height - 3
	if contentHeight < 1 {
		contentHeight = 1
	}

	mainWidth := m.width - sidebarWidth
	if mainWidth < 20 {
		mainWidth = 20
	}

	if !m.ready {
		m.viewport = viewport.New(mainWidth-2, contentHeight)
		m.ready = true
	} else {
		m.viewport.Width = mainWidth - 2
		m.viewport.Height = contentHeight
	}

	m.input.Width = mainWidth - 6
	m.statusBar.SetWidth(m.width)
	m.sidebar.SetSize(sidebarWidth, contentHeight)
	m.welcome.SetSize(mainWidth, contentHeight)
}

// sidebarVisible reports whether the sidebar fits and is enabled.
func (m *Model) sidebarVisible() bool {
	return m.showSidebar && m.theme.GetLayoutMode() == styles.LayoutWide
}
