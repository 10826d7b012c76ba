// Package openai adapts the OpenAI chat completion API to the llm.Completer
// capability, as an alternative provider to internal/anthropic.
package openai

import (
	"context"
	"fmt"

	goopenai "github.com/sashabaranov/go-openai"

	"github.com/outboundhq/scribe/internal/llm"
)

type Client struct {
	client      *goopenai.Client
	model       string
	temperature float32
}

func NewClient(apiKey, model string, temperature float64) *Client {
	return &Client{
		client:      goopenai.NewClient(apiKey),
		model:       model,
		temperature: float32(temperature),
	}
}

func (c *Client) Complete(ctx context.Context, system string, messages []llm.Message, maxTokens int) (string, error) {
	chatMessages := make([]goopenai.ChatCompletionMessage, 0, len(messages)+1)
	if system != "" {
		chatMessages = append(chatMessages, goopenai.ChatCompletionMessage{
			Role:    goopenai.ChatMessageRoleSystem,
			Content: system,
		})
	}
	for _, m := range messages {
		role := goopenai.ChatMessageRoleUser
		if m.Role == llm.RoleSystem {
			role = goopenai.ChatMessageRoleSystem
		}
		chatMessages = append(chatMessages, goopenai.ChatCompletionMessage{
			Role:    role,
			Content: m.Content,
		})
	}

	resp, err := c.client.CreateChatCompletion(ctx, goopenai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    chatMessages,
		MaxTokens:   maxTokens,
		Temperature: c.temperature,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("empty response choices")
	}

	return resp.Choices[0].Message.Content, nil
}
