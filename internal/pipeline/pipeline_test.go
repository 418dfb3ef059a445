// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package pipeline

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/entropy-tui/internal/cloud"
	"github.com/jeranaias/entropy-tui/internal/model"
	"github.com/jeranaias/entropy-tui/internal/personality"
	"github.com/jeranaias/entropy-tui/internal/storage"
	"github.com/jeranaias/entropy-tui/internal/store"
)

const haikuReply = "Code language for web\nMakes websites interactive\nLearn it if you must"

// stubCompleter returns a canned response or error and records the request.
type stubCompleter struct {
	response string
	err      error
	gotReq   cloud.CompletionRequest
}

func (s *stubCompleter) Complete(_ context.Context, req cloud.CompletionRequest) (cloud.CompletionResponse, error) {
	s.gotReq = req
	if s.err != nil {
		return cloud.CompletionResponse{}, s.err
	}
	return cloud.CompletionResponse{Response: s.response}, nil
}

func newTestPipeline(t *testing.T, completer cloud.Completer) (*Pipeline, *store.Store) {
	t.Helper()
	slots, err := storage.NewFileSlotsWithDir(t.TempDir())
	require.NoError(t, err)
	st := store.New(slots)
	st.LoadFromStorage()
	return New(st, completer), st
}

// settle executes a command returned by Submit and routes the resulting
// messages back through the pipeline, skipping timer-based commands so
// tests stay fast and deterministic.
func settle(t *testing.T, p *Pipeline, cmd tea.Cmd) {
	t.Helper()
	require.NotNil(t, cmd)
	msgs := []tea.Msg{cmd()}
	for len(msgs) > 0 {
		msg := msgs[0]
		msgs = msgs[1:]
		switch m := msg.(type) {
		case tea.BatchMsg:
			for _, c := range m {
				// Skip the thinking tick; it sleeps and only animates.
				msgs = append(msgs, c())
			}
		case ThinkingTickMsg:
			// Drop instead of re-scheduling.
		case TurnResponseMsg, TurnFailedMsg:
			p.Update(m)
		}
	}
}

// drainReveal feeds reveal ticks until the pipeline returns to idle.
func drainReveal(t *testing.T, p *Pipeline) {
	t.Helper()
	turn := p.ActiveTurn()
	require.NotNil(t, turn)
	for i := 0; i < 10000; i++ {
		cmd := p.Update(RevealTickMsg{TurnID: turn.ID})
		if p.Phase() == PhaseIdle {
			require.NotNil(t, cmd)
			committed, ok := cmd().(TurnCommittedMsg)
			require.True(t, ok)
			assert.Equal(t, turn.ID, committed.Turn.ID)
			return
		}
	}
	t.Fatal("reveal never completed")
}

func TestSubmitRejectsEmptyInput(t *testing.T) {
	p, st := newTestPipeline(t, &stubCompleter{})
	st.NewConversation()

	assert.Nil(t, p.Submit(""))
	assert.Nil(t, p.Submit("   \n\t  "))
	assert.False(t, st.IsLoading())
	assert.Equal(t, PhaseIdle, p.Phase())
	assert.True(t, st.Current().IsEmpty())
}

func TestSubmitRejectsWithoutCurrentConversation(t *testing.T) {
	p, st := newTestPipeline(t, &stubCompleter{})

	assert.Nil(t, p.Submit("hello"))
	assert.False(t, st.IsLoading())
}

func TestSubmitRejectsWhileTurnInFlight(t *testing.T) {
	p, st := newTestPipeline(t, &stubCompleter{response: "ok"})
	st.NewConversation()

	require.NotNil(t, p.Submit("first"))
	assert.True(t, st.IsLoading())

	// Guarded: no new message, no state change.
	assert.Nil(t, p.Submit("second"))
	assert.Equal(t, 1, st.Current().MessageCount())
	assert.Equal(t, PhaseAwaitingRemote, p.Phase())
}

func TestSubmitAppendsUserMessageAndDerivesTitle(t *testing.T) {
	p, st := newTestPipeline(t, &stubCompleter{response: "ok"})
	st.NewConversation()

	require.NotNil(t, p.Submit("  What is JavaScript?  "))

	conv := st.Current()
	require.Equal(t, 1, conv.MessageCount())
	assert.Equal(t, model.RoleUser, conv.Messages[0].Role)
	assert.Equal(t, "What is JavaScript?", conv.Messages[0].Content)
	assert.Equal(t, "What is JavaScript?", conv.Title)
}

func TestEndToEndSuccessfulTurn(t *testing.T) {
	completer := &stubCompleter{response: haikuReply}
	p, st := newTestPipeline(t, completer)
	st.NewConversation()
	st.SetSelectedModel(personality.ModelHaiku)

	settle(t, p, p.Submit("What is JavaScript?"))
	require.Equal(t, PhaseRevealing, p.Phase())
	drainReveal(t, p)

	// The boundary saw the normalized prompt and the selected model.
	assert.Equal(t, "What is JavaScript?", completer.gotReq.Message)
	assert.Equal(t, personality.ModelHaiku, completer.gotReq.Model)

	conv := st.Current()
	require.Equal(t, 2, conv.MessageCount())
	assert.Equal(t, model.RoleUser, conv.Messages[0].Role)
	assert.Equal(t, model.RoleAssistant, conv.Messages[1].Role)
	assert.Equal(t, haikuReply, conv.Messages[1].Content)
	assert.Equal(t, "What is JavaScript?", conv.Title)
	assert.False(t, st.IsLoading())
	assert.Equal(t, PhaseIdle, p.Phase())
}

func TestEndToEndFailedTurn(t *testing.T) {
	p, st := newTestPipeline(t, &stubCompleter{err: errors.New("upstream down")})
	st.NewConversation()

	settle(t, p, p.Submit("hello"))

	conv := st.Current()
	require.Equal(t, 2, conv.MessageCount())
	assert.Equal(t, model.RoleAssistant, conv.Messages[1].Role)
	assert.Equal(t, ErrorMessageText, conv.Messages[1].Content)
	assert.False(t, st.IsLoading())
	assert.Equal(t, PhaseIdle, p.Phase())
}

func TestRevealProgressesPrefixwise(t *testing.T) {
	p, st := newTestPipeline(t, &stubCompleter{response: "abcde"})
	st.NewConversation()

	settle(t, p, p.Submit("hi"))
	turn := p.ActiveTurn()
	require.NotNil(t, turn)

	assert.Equal(t, "", p.RevealedText())
	p.Update(RevealTickMsg{TurnID: turn.ID})
	assert.Equal(t, "a", p.RevealedText())
	p.Update(RevealTickMsg{TurnID: turn.ID})
	assert.Equal(t, "ab", p.RevealedText())

	drainReveal(t, p)
	assert.Equal(t, "abcde", st.Current().LastMessage().Content)
}

func TestEmptyResponseCommitsImmediately(t *testing.T) {
	p, st := newTestPipeline(t, &stubCompleter{response: ""})
	st.NewConversation()

	settle(t, p, p.Submit("hi"))
	drainReveal(t, p)

	conv := st.Current()
	require.Equal(t, 2, conv.MessageCount())
	assert.Equal(t, "", conv.Messages[1].Content)
	assert.False(t, st.IsLoading())
}

func TestStaleRevealTickIgnored(t *testing.T) {
	p, st := newTestPipeline(t, &stubCompleter{response: "abc"})
	st.NewConversation()

	settle(t, p, p.Submit("hi"))
	assert.Nil(t, p.Update(RevealTickMsg{TurnID: "some-other-turn"}))
	assert.Equal(t, "", p.RevealedText())
	assert.Equal(t, PhaseRevealing, p.Phase())
}

func TestResponseForSupersededTurnIgnored(t *testing.T) {
	p, st := newTestPipeline(t, &stubCompleter{response: "abc"})
	st.NewConversation()

	settle(t, p, p.Submit("hi"))
	superseded := p.ActiveTurn()
	drainReveal(t, p)
	before := st.Current().MessageCount()

	assert.Nil(t, p.Update(TurnResponseMsg{Turn: superseded, Text: "late"}))
	assert.Nil(t, p.Update(TurnFailedMsg{Turn: superseded, Err: errors.New("late")}))
	assert.Equal(t, before, st.Current().MessageCount())
}

func TestCommitLandsInCapturedConversation(t *testing.T) {
	p, st := newTestPipeline(t, &stubCompleter{response: "answer"})
	first := st.NewConversation()

	settle(t, p, p.Submit("question"))
	require.Equal(t, PhaseRevealing, p.Phase())

	// User navigates to a new conversation mid-reveal.
	second := st.NewConversation()
	drainReveal(t, p)

	captured := st.Find(first.ID)
	require.Equal(t, 2, captured.MessageCount())
	assert.Equal(t, "answer", captured.Messages[1].Content)
	assert.True(t, st.Find(second.ID).IsEmpty())
	assert.False(t, st.IsLoading())
}

func TestThinkingIndicator(t *testing.T) {
	p, st := newTestPipeline(t, &stubCompleter{response: "ok"})
	st.NewConversation()
	st.SetSelectedModel(personality.ModelHaiku)

	assert.Equal(t, "", p.ThinkingIndicator())

	require.NotNil(t, p.Submit("hi"))
	turn := p.ActiveTurn()
	assert.Equal(t, "Composing haiku", p.ThinkingIndicator())

	p.Update(ThinkingTickMsg{TurnID: turn.ID})
	assert.Equal(t, PhaseThinking, p.Phase())
	assert.Equal(t, "Composing haiku.", p.ThinkingIndicator())
	p.Update(ThinkingTickMsg{TurnID: turn.ID})
	assert.Equal(t, "Composing haiku..", p.ThinkingIndicator())
}
