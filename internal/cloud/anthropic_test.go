// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cloud

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/entropy-tui/internal/personality"
)

const haikuReply = "Code language for web\nMakes websites interactive\nLearn it if you must"

// newTestClient points a client at a stub server with delays disabled.
func newTestClient(serverURL string) *AnthropicClient {
	return NewAnthropicClient("sk-ant-test-key").
		WithBaseURL(serverURL).
		WithArtificialDelay(false).
		WithRateLimit(nil)
}

func textResponse(text string) string {
	return `{"content":[{"type":"text","text":` + mustJSON(text) + `}]}`
}

func mustJSON(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}

func TestCompleteSuccess(t *testing.T) {
	var gotBody messagesRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/messages", r.URL.Path)
		assert.Equal(t, "sk-ant-test-key", r.Header.Get("x-api-key"))
		assert.Equal(t, anthropicVersion, r.Header.Get("anthropic-version"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Write([]byte(textResponse(haikuReply)))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	resp, err := client.Complete(context.Background(), CompletionRequest{
		Message: "What is JavaScript?",
		Model:   personality.ModelHaiku,
	})

	require.NoError(t, err)
	assert.Equal(t, haikuReply, resp.Response)

	// The boundary attaches the personality system prompt and pins the
	// upstream model.
	assert.Equal(t, upstreamModel, gotBody.Model)
	assert.Equal(t, maxTokens, gotBody.MaxTokens)
	assert.Equal(t, personality.MustLookup(personality.ModelHaiku).SystemPrompt, gotBody.System)
	require.Len(t, gotBody.Messages, 1)
	assert.Equal(t, "user", gotBody.Messages[0].Role)
	assert.Equal(t, "What is JavaScript?", gotBody.Messages[0].Content)
}

func TestCompleteUnknownModelFallsBackToDefault(t *testing.T) {
	var gotBody messagesRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Write([]byte(textResponse("ok")))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.Complete(context.Background(), CompletionRequest{
		Message: "hi",
		Model:   personality.ModelID("entropy-imaginary"),
	})

	require.NoError(t, err)
	assert.Equal(t, personality.MustLookup(personality.Default()).SystemPrompt, gotBody.System)
}

func TestCompleteNoTextSegment(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"content":[{"type":"tool_use"}]}`))
	}))
	defer server.Close()

	resp, err := newTestClient(server.URL).Complete(context.Background(), CompletionRequest{
		Message: "hi",
		Model:   personality.ModelStandard,
	})

	require.NoError(t, err)
	assert.Equal(t, "", resp.Response)
}

func TestCompleteNotConfigured(t *testing.T) {
	client := NewAnthropicClient("").WithArtificialDelay(false)

	_, err := client.Complete(context.Background(), CompletionRequest{
		Message: "hi",
		Model:   personality.ModelStandard,
	})

	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestCompleteAuthFailureNotRetried(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":{"type":"authentication_error","message":"invalid x-api-key"}}`))
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).Complete(context.Background(), CompletionRequest{
		Message: "hi",
		Model:   personality.ModelStandard,
	})

	assert.ErrorIs(t, err, ErrAuthFailed)
	assert.Equal(t, int32(1), hits.Load())
}

func TestCompleteRetriesServerErrors(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{"error":{"type":"api_error","message":"overloaded"}}`))
			return
		}
		w.Write([]byte(textResponse("recovered")))
	}))
	defer server.Close()

	resp, err := newTestClient(server.URL).Complete(context.Background(), CompletionRequest{
		Message: "hi",
		Model:   personality.ModelStandard,
	})

	require.NoError(t, err)
	assert.Equal(t, "recovered", resp.Response)
	assert.Equal(t, int32(2), hits.Load())
}

func TestCompleteRetriesRateLimits(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			w.Write([]byte(`{"error":{"type":"rate_limit_error","message":"slow down"}}`))
			return
		}
		w.Write([]byte(textResponse("ok")))
	}))
	defer server.Close()

	resp, err := newTestClient(server.URL).Complete(context.Background(), CompletionRequest{
		Message: "hi",
		Model:   personality.ModelStandard,
	})

	require.NoError(t, err)
	assert.Equal(t, "ok", resp.Response)
}

func TestCompleteRetriesExhausted(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":{"type":"api_error","message":"down"}}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL).WithMaxRetries(2)
	_, err := client.Complete(context.Background(), CompletionRequest{
		Message: "hi",
		Model:   personality.ModelStandard,
	})

	require.Error(t, err)
	assert.Equal(t, int32(2), hits.Load())
}

func TestCompleteArtificialDelayHonorsContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("delayed request must not reach the server after cancellation")
	}))
	defer server.Close()

	client := NewAnthropicClient("sk-ant-test-key").WithBaseURL(server.URL)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.Complete(ctx, CompletionRequest{
		Message: "hi",
		Model:   personality.ModelTurbo,
	})

	assert.ErrorIs(t, err, context.Canceled)
}

func TestAPIKeyMasked(t *testing.T) {
	client := NewAnthropicClient("sk-ant-secret")
	masked := client.APIKeyMasked()
	assert.NotContains(t, masked, "secret")
	assert.Contains(t, masked, "REDACTED")

	assert.Equal(t, "[not set]", NewAnthropicClient("").APIKeyMasked())
}
