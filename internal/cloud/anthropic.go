// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cloud

import (
	"bytes"
	"context"
	"crypto/sha256"
	"crypto/tls"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/jeranaias/entropy-tui/internal/personality"
)

// Configuration constants for the Anthropic Messages API.
const (
	// DefaultAnthropicURL is the base URL for the Anthropic API.
	DefaultAnthropicURL = "https://api.anthropic.com"

	// anthropicVersion is the required API version header value.
	anthropicVersion = "2023-06-01"

	// upstreamModel is the actual model serving every Entropy personality.
	upstreamModel = "claude-3-haiku-20240307"

	// maxTokens caps each completion.
	maxTokens = 1000

	// DefaultTimeout is the default timeout for API requests.
	DefaultTimeout = 60 * time.Second

	// DefaultMaxRetries is the default number of attempts for transient errors.
	DefaultMaxRetries = 3

	// retryBaseDelay is the base delay for exponential backoff.
	retryBaseDelay = 500 * time.Millisecond

	// retryMaxDelay is the maximum delay for exponential backoff.
	retryMaxDelay = 10 * time.Second

	// MaxResponseSize is the maximum allowed response body size.
	// SECURITY: Response size limit prevents memory exhaustion attacks.
	MaxResponseSize = 10 * 1024 * 1024 // 10MB limit
)

// PERFORMANCE: Connection pooling reduces TCP handshake overhead.
// Shared HTTP client with connection pooling for all Anthropic requests.
// SECURITY: TLS verification required for production
var sharedHTTPClient = &http.Client{
	Transport: &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
		TLSClientConfig: &tls.Config{
			MinVersion:         tls.VersionTLS12,
			InsecureSkipVerify: false,
		},
	},
	Timeout: DefaultTimeout,
}

// Error variables for common completion errors.
var (
	// ErrNotConfigured indicates the API key is not set.
	ErrNotConfigured = errors.New("Anthropic API key not configured")

	// ErrAuthFailed indicates authentication failed (invalid or expired API key).
	ErrAuthFailed = errors.New("authentication failed")

	// ErrRateLimited indicates too many requests were made.
	ErrRateLimited = errors.New("rate limited")
)

// APIError represents an error response from the Anthropic API.
type APIError struct {
	Type    string
	Message string
	Status  int
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Type != "" {
		return fmt.Sprintf("Anthropic error [%s] (HTTP %d): %s", e.Type, e.Status, e.Message)
	}
	return fmt.Sprintf("Anthropic error (HTTP %d): %s", e.Status, e.Message)
}

// =============================================================================
// WIRE TYPES
// =============================================================================

// apiMessage is one message in a Messages API request.
type apiMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// messagesRequest is the request body for POST /v1/messages.
type messagesRequest struct {
	Model     string       `json:"model"`
	MaxTokens int          `json:"max_tokens"`
	System    string       `json:"system,omitempty"`
	Messages  []apiMessage `json:"messages"`
}

// messagesResponse is the response body from POST /v1/messages.
type messagesResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
}

// textContent returns the first text segment, or "" when none exists.
func (r *messagesResponse) textContent() string {
	for _, block := range r.Content {
		if block.Type == "text" {
			return block.Text
		}
	}
	return ""
}

// apiErrorResponse is the error envelope from the Anthropic API.
type apiErrorResponse struct {
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// =============================================================================
// ANTHROPIC CLIENT
// =============================================================================

// AnthropicClient calls the Anthropic Messages API on behalf of the
// Entropy personalities. Safe for concurrent use.
type AnthropicClient struct {
	apiKey     string
	baseURL    string
	maxRetries int

	// limiter smooths bursts toward the upstream API.
	limiter *rate.Limiter

	// artificialDelay applies each personality's fixed pre-response
	// delay. Disabled in tests.
	artificialDelay bool
}

// NewAnthropicClient creates a client with the given API key.
//
// If the key is empty the client is still created, but Complete fails
// with ErrNotConfigured.
func NewAnthropicClient(apiKey string) *AnthropicClient {
	return &AnthropicClient{
		apiKey:          strings.TrimSpace(apiKey),
		baseURL:         DefaultAnthropicURL,
		maxRetries:      DefaultMaxRetries,
		limiter:         rate.NewLimiter(rate.Every(time.Second), 2),
		artificialDelay: true,
	}
}

// WithBaseURL sets a custom base URL for the API.
func (c *AnthropicClient) WithBaseURL(url string) *AnthropicClient {
	c.baseURL = strings.TrimSuffix(url, "/")
	return c
}

// WithMaxRetries sets the maximum number of attempts.
func (c *AnthropicClient) WithMaxRetries(maxRetries int) *AnthropicClient {
	c.maxRetries = maxRetries
	return c
}

// WithArtificialDelay enables or disables the personality pre-delay.
func (c *AnthropicClient) WithArtificialDelay(enabled bool) *AnthropicClient {
	c.artificialDelay = enabled
	return c
}

// WithRateLimit replaces the default request rate limiter.
func (c *AnthropicClient) WithRateLimit(limiter *rate.Limiter) *AnthropicClient {
	c.limiter = limiter
	return c
}

// IsConfigured returns true if the client has an API key.
func (c *AnthropicClient) IsConfigured() bool {
	return c.apiKey != ""
}

// APIKeyMasked returns a masked version of the API key for display.
// SECURITY: Never exposes key fragments - uses a fingerprint instead.
func (c *AnthropicClient) APIKeyMasked() string {
	if c.apiKey == "" {
		return "[not set]"
	}
	return fmt.Sprintf("[REDACTED, length=%d, fingerprint=%s]", len(c.apiKey), c.keyFingerprint())
}

// keyFingerprint returns a SHA-256 based identifier for logging.
func (c *AnthropicClient) keyFingerprint() string {
	h := sha256.Sum256([]byte(c.apiKey))
	return hex.EncodeToString(h[:4])
}

// =============================================================================
// COMPLETION
// =============================================================================

// Complete implements Completer.
//
// It waits out the personality's artificial delay, then posts the user
// text with the personality's system prompt attached, retrying transient
// failures with exponential backoff.
func (c *AnthropicClient) Complete(ctx context.Context, req CompletionRequest) (CompletionResponse, error) {
	if !c.IsConfigured() {
		return CompletionResponse{}, ErrNotConfigured
	}

	p := personality.MustLookup(req.Model)

	if c.artificialDelay && p.Delay > 0 {
		select {
		case <-ctx.Done():
			return CompletionResponse{}, ctx.Err()
		case <-time.After(p.Delay):
		}
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return CompletionResponse{}, err
		}
	}

	body := messagesRequest{
		Model:     upstreamModel,
		MaxTokens: maxTokens,
		System:    p.SystemPrompt,
		Messages:  []apiMessage{{Role: "user", Content: req.Message}},
	}

	var lastErr error
	for attempt := 0; attempt < c.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return CompletionResponse{}, ctx.Err()
			case <-time.After(calculateBackoff(attempt)):
			}
		}

		text, err := c.doRequest(ctx, body)
		if err != nil {
			if isRetryable(err) {
				lastErr = err
				continue
			}
			return CompletionResponse{}, err
		}
		return CompletionResponse{Response: text}, nil
	}

	return CompletionResponse{}, fmt.Errorf("max retries exceeded: %w", lastErr)
}

// doRequest performs a single Messages API call.
//
// SECURITY: Clears the key header after the request to prevent logging.
// PERFORMANCE: Uses the shared HTTP client with connection pooling.
func (c *AnthropicClient) doRequest(ctx context.Context, body messagesRequest) (string, error) {
	bodyBytes, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	url := c.baseURL + "/v1/messages"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("anthropic-version", anthropicVersion)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "entropy/0.1.0")

	log.Printf("API Request: %s %s", req.Method, req.URL.Path)
	start := time.Now()
	resp, err := sharedHTTPClient.Do(req)
	req.Header.Del("x-api-key")
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	log.Printf("API Response: %d %s (%v)", resp.StatusCode, resp.Status, time.Since(start))

	respBody, err := readResponse(resp)
	if err != nil {
		return "", err
	}

	if resp.StatusCode != http.StatusOK {
		return "", handleErrorResponse(resp.StatusCode, respBody)
	}

	var parsed messagesResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}
	return parsed.textContent(), nil
}

// readResponse reads the body with a size limit.
//
// SECURITY: Response size limit prevents memory exhaustion attacks.
func readResponse(resp *http.Response) ([]byte, error) {
	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if int64(len(body)) == MaxResponseSize {
		return nil, fmt.Errorf("response exceeded maximum size of %d bytes", MaxResponseSize)
	}
	return body, nil
}

// handleErrorResponse converts HTTP error responses to Go errors.
func handleErrorResponse(statusCode int, body []byte) error {
	var apiErr apiErrorResponse
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Error.Message != "" {
		wrapped := &APIError{
			Type:    apiErr.Error.Type,
			Message: apiErr.Error.Message,
			Status:  statusCode,
		}
		switch statusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			return fmt.Errorf("%w: %s", ErrAuthFailed, wrapped.Message)
		case http.StatusTooManyRequests:
			return fmt.Errorf("%w: %s", ErrRateLimited, wrapped.Message)
		default:
			return wrapped
		}
	}

	switch statusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrAuthFailed
	case http.StatusTooManyRequests:
		return ErrRateLimited
	default:
		return &APIError{Message: string(body), Status: statusCode}
	}
}

// isRetryable determines if an error should trigger a retry.
func isRetryable(err error) bool {
	if errors.Is(err, ErrRateLimited) {
		return true
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status >= 500 && apiErr.Status < 600
	}
	return false
}

// calculateBackoff returns the delay before the next retry.
func calculateBackoff(attempt int) time.Duration {
	delay := retryBaseDelay * time.Duration(1<<uint(attempt))
	if delay > retryMaxDelay {
		delay = retryMaxDelay
	}
	return delay
}
