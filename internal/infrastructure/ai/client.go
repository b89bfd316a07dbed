package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/macromate/macromate/internal/domain"
	"github.com/macromate/macromate/internal/ports"
)

const (
	defaultEndpoint       = "https://api.openai.com/v1/chat/completions"
	defaultModel          = "gpt-4o-mini"
	defaultTemperature    = 0.7
	defaultHistoryTurns   = 10
	defaultMaxAttempts    = 3
	defaultBackoff        = time.Second
	defaultConnectTimeout = 30 * time.Second
	defaultReadTimeout    = 60 * time.Second
)

// Client speaks the OpenAI-style chat-completion protocol with a
// JSON-object-constrained response mode. Malformed model output is retried
// with a fixed backoff; transport and auth failures abort immediately.
type Client struct {
	endpoint     string
	model        string
	apiKey       string
	temperature  float64
	historyTurns int
	maxAttempts  int
	backoff      time.Duration
	httpClient   *http.Client
	profiles     ports.ProfileRepository
	history      ports.ChatHistoryRepository
	clock        ports.Clock
	log          ports.Logger
}

// NewClient builds a Client from configuration. A missing api_key falls back
// to MACROMATE_API_KEY, then OPENAI_API_KEY.
func NewClient(
	cfg domain.Config,
	profiles ports.ProfileRepository,
	history ports.ChatHistoryRepository,
	clk ports.Clock,
	log ports.Logger,
) *Client {
	connect := secondsOrDefault(cfg.Chat.ConnectTimeoutSeconds, defaultConnectTimeout)
	read := secondsOrDefault(cfg.Chat.ReadTimeoutSeconds, defaultReadTimeout)

	return &Client{
		endpoint:     valueOrDefault(cfg.API.Endpoint, defaultEndpoint),
		model:        valueOrDefault(cfg.API.Model, defaultModel),
		apiKey:       resolveKey(cfg.API.APIKey),
		temperature:  floatOrDefault(cfg.Chat.Temperature, defaultTemperature),
		historyTurns: intOrDefault(cfg.Chat.HistoryTurns, defaultHistoryTurns),
		maxAttempts:  intOrDefault(cfg.Chat.MaxAttempts, defaultMaxAttempts),
		backoff:      millisOrDefault(cfg.Chat.RetryBackoffMS, defaultBackoff),
		httpClient: &http.Client{
			Timeout: read,
			Transport: &http.Transport{
				DialContext:         (&net.Dialer{Timeout: connect}).DialContext,
				TLSHandshakeTimeout: connect,
			},
		},
		profiles: profiles,
		history:  history,
		clock:    clk,
		log:      log,
	}
}

// Complete implements ports.CompletionClient. History is re-fetched fresh on
// every attempt so a retry sees the same conversation state the first attempt
// did.
func (c *Client) Complete(ctx context.Context, userMessage string, opts ports.CompletionOptions) (string, error) {
	if c.apiKey == "" {
		return "", ErrNoAPIKey
	}

	var lastErr error
	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		content, err := c.requestOnce(ctx, userMessage)
		if err != nil {
			return "", err
		}

		if err := checkJSONObject(content); err != nil {
			lastErr = err
			if !IsRetryableParseError(err) {
				return "", fmt.Errorf("model output is not a JSON object: %w", err)
			}
			c.log.Warn("model returned malformed JSON", map[string]interface{}{
				"attempt": attempt,
			})
			if attempt < c.maxAttempts {
				if err := sleep(ctx, c.backoff); err != nil {
					return "", err
				}
			}
			continue
		}

		if !opts.SkipHistory {
			c.appendHistory(ctx, userMessage, content)
		}
		return content, nil
	}
	return "", fmt.Errorf("model returned malformed JSON after %d attempts: %w", c.maxAttempts, lastErr)
}

func (c *Client) requestOnce(ctx context.Context, userMessage string) (string, error) {
	messages, err := c.buildMessages(ctx, userMessage)
	if err != nil {
		return "", err
	}

	payload := chatCompletionRequest{
		Model:          c.model,
		Messages:       messages,
		Temperature:    c.temperature,
		ResponseFormat: &responseFormat{Type: "json_object"},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("completion request failed: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return "", ErrInvalidCredential
	case resp.StatusCode == http.StatusTooManyRequests:
		return "", ErrRateLimited
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", &HTTPError{Status: resp.StatusCode, Body: string(raw)}
	}

	var decoded chatCompletionResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("decode completion envelope: %w", err)
	}
	content := decoded.FirstMessage()
	if content == "" {
		return "", ErrEmptyCompletion
	}
	return content, nil
}

// buildMessages assembles system prompt, trailing history (oldest first) and
// the in-flight user turn.
func (c *Client) buildMessages(ctx context.Context, userMessage string) ([]chatMessage, error) {
	profile, err := c.profiles.Profile(ctx)
	if err != nil {
		c.log.Warn("profile unavailable for prompt", map[string]interface{}{"error": err.Error()})
		profile = nil
	}

	turns, err := c.history.LastTurns(ctx, c.historyTurns)
	if err != nil {
		return nil, fmt.Errorf("load chat history: %w", err)
	}

	messages := make([]chatMessage, 0, len(turns)+2)
	messages = append(messages, chatMessage{Role: domain.RoleSystem, Content: systemPrompt(profile)})
	for _, turn := range turns {
		messages = append(messages, chatMessage{Role: turn.Role, Content: turn.Content})
	}
	messages = append(messages, chatMessage{Role: domain.RoleUser, Content: userMessage})
	return messages, nil
}

func (c *Client) appendHistory(ctx context.Context, userMessage, reply string) {
	now := c.clock.Now()
	for _, turn := range []domain.ChatTurn{
		{Role: domain.RoleUser, Content: userMessage, CreatedAt: now},
		{Role: domain.RoleAssistant, Content: reply, CreatedAt: now},
	} {
		if err := c.history.Append(ctx, turn); err != nil {
			c.log.Warn("append chat history failed", map[string]interface{}{
				"role":  turn.Role,
				"error": err.Error(),
			})
		}
	}
}

// checkJSONObject gates the retry loop: the response mode demands a JSON
// object, so anything that fails to decode as one is model misbehavior.
func checkJSONObject(content string) error {
	var probe map[string]json.RawMessage
	return json.Unmarshal([]byte(content), &probe)
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func resolveKey(configured string) string {
	if configured != "" {
		return configured
	}
	if key := os.Getenv("MACROMATE_API_KEY"); key != "" {
		return key
	}
	return os.Getenv("OPENAI_API_KEY")
}

func valueOrDefault(value, def string) string {
	if value == "" {
		return def
	}
	return value
}

func intOrDefault(value, def int) int {
	if value <= 0 {
		return def
	}
	return value
}

func floatOrDefault(value, def float64) float64 {
	if value <= 0 {
		return def
	}
	return value
}

func secondsOrDefault(value int, def time.Duration) time.Duration {
	if value <= 0 {
		return def
	}
	return time.Duration(value) * time.Second
}

func millisOrDefault(value int, def time.Duration) time.Duration {
	if value <= 0 {
		return def
	}
	return time.Duration(value) * time.Millisecond
}
