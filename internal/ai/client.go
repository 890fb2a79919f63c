// Package ai provides the language-model call capability used by the
// curation stages.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	// DefaultAPIBase is the OpenAI-compatible endpoint used when no
	// override is configured.
	DefaultAPIBase = "https://open.bigmodel.cn/api/paas/v4"
	DefaultModel   = "glm-4.7"
)

// Caller sends one text prompt to a language model and returns its text
// reply. Exactly one implementation talks HTTP; tests substitute fakes.
type Caller interface {
	Call(ctx context.Context, prompt string) (string, error)
}

// Client talks to any chat/completions-style API with bearer-token auth.
type Client struct {
	apiKey  string
	apiBase string
	model   string
	client  *http.Client
}

var _ Caller = (*Client)(nil)

func NewClient(apiKey, apiBase, model string) *Client {
	if apiBase == "" {
		apiBase = DefaultAPIBase
	}
	if model == "" {
		model = InferModel(apiBase)
	}
	return &Client{
		apiKey:  apiKey,
		apiBase: strings.TrimSuffix(apiBase, "/"),
		model:   model,
		client:  &http.Client{Timeout: 120 * time.Second},
	}
}

// InferModel picks a default model name for a given API base.
func InferModel(apiBase string) string {
	if strings.Contains(strings.ToLower(apiBase), "deepseek") {
		return "deepseek-chat"
	}
	return DefaultModel
}

// Model reports the model name the client will request.
func (c *Client) Model() string { return c.model }

// APIBase reports the endpoint base the client will post to.
func (c *Client) APIBase() string { return c.apiBase }

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	TopP        float64       `json:"top_p"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content json.RawMessage `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Call posts the prompt as a single user message and returns the first
// choice's content. Non-200 responses and transport errors propagate to the
// caller, which decides how to degrade.
func (c *Client) Call(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model:       c.model,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		Temperature: 0.3,
		TopP:        0.8,
	})
	if err != nil {
		return "", fmt.Errorf("ai: failed to marshal request: %w", err)
	}

	url := c.apiBase + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("ai: failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("ai: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", fmt.Errorf("ai: API error %s: %s", resp.Status, strings.TrimSpace(string(snippet)))
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("ai: failed to parse response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("ai: empty response")
	}

	return decodeContent(parsed.Choices[0].Message.Content)
}

// decodeContent handles both content shapes the API may return: a plain
// string, or an array of typed parts.
func decodeContent(raw json.RawMessage) (string, error) {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, nil
	}

	var parts []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	}
	if err := json.Unmarshal(raw, &parts); err != nil {
		return "", fmt.Errorf("ai: unrecognized content shape: %w", err)
	}

	var texts []string
	for _, p := range parts {
		if p.Type == "text" {
			texts = append(texts, p.Text)
		}
	}
	return strings.Join(texts, "\n"), nil
}
