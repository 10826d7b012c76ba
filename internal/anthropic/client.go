// Package anthropic is a minimal client for the Anthropic messages API,
// implementing the llm.Completer capability.
package anthropic

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/outboundhq/scribe/internal/llm"
)

const defaultBaseURL = "https://api.anthropic.com"

type Client struct {
	apiKey      string
	model       string
	temperature float64
	baseURL     string
	client      *http.Client
}

func NewClient(apiKey, model string, temperature float64) *Client {
	return &Client{
		apiKey:      apiKey,
		model:       model,
		temperature: temperature,
		baseURL:     defaultBaseURL,
		client:      &http.Client{Timeout: 120 * time.Second},
	}
}

// SetBaseURL points the client at a different API host. Used by tests to
// target an httptest server.
func (c *Client) SetBaseURL(url string) {
	c.baseURL = url
}

type apiMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type request struct {
	Model       string       `json:"model"`
	MaxTokens   int          `json:"max_tokens"`
	Temperature float64      `json:"temperature,omitempty"`
	System      string       `json:"system,omitempty"`
	Messages    []apiMessage `json:"messages"`
}

type response struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	StopReason string `json:"stop_reason"`
	Usage      struct {
		InputTokens  int `json:"input_tokens"`
		OutputTokens int `json:"output_tokens"`
	} `json:"usage"`
}

type errorResponse struct {
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// Complete sends the conversation to the messages API and returns the text
// of the first content block.
func (c *Client) Complete(ctx context.Context, system string, messages []llm.Message, maxTokens int) (string, error) {
	apiMessages := make([]apiMessage, 0, len(messages))
	for _, m := range messages {
		role := m.Role
		if role == llm.RoleHuman {
			role = "user"
		}
		apiMessages = append(apiMessages, apiMessage{Role: role, Content: m.Content})
	}

	reqBody := request{
		Model:       c.model,
		MaxTokens:   maxTokens,
		Temperature: c.temperature,
		System:      system,
		Messages:    apiMessages,
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/messages", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("anthropic-version", "2023-06-01")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("api call: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errResp errorResponse
		if json.Unmarshal(respBody, &errResp) == nil && errResp.Error.Type != "" {
			return "", fmt.Errorf("api error %d: %s - %s", resp.StatusCode, errResp.Error.Type, errResp.Error.Message)
		}
		return "", fmt.Errorf("api error %d: %s", resp.StatusCode, string(respBody))
	}

	var apiResp response
	if err := json.Unmarshal(respBody, &apiResp); err != nil {
		return "", fmt.Errorf("unmarshal response: %w", err)
	}

	if len(apiResp.Content) == 0 {
		return "", fmt.Errorf("empty response content")
	}

	return apiResp.Content[0].Text, nil
}
