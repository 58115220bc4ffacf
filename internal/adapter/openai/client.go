// Package openai implements the worker port on an OpenAI-compatible chat
// completion API. Each triage worker is a prompt specialization of the same
// underlying client.
package openai

import (
	"context"
	"fmt"

	"github.com/sashabaranov/go-openai"

	"github.com/casepilot/casepilot/internal/config"
	"github.com/casepilot/casepilot/internal/resilience"
)

// Client wraps the chat completion API behind a circuit breaker shared by
// all workers. A provider outage trips the breaker once instead of five
// times per triage run.
type Client struct {
	api         *openai.Client
	model       string
	temperature float32
	maxTokens   int
	breaker     *resilience.Breaker
}

// NewClient builds a Client from the LLM config. breaker may be nil.
func NewClient(cfg config.LLM, breaker *resilience.Breaker) *Client {
	apiCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		apiCfg.BaseURL = cfg.BaseURL
	}
	return &Client{
		api:         openai.NewClientWithConfig(apiCfg),
		model:       cfg.Model,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
		breaker:     breaker,
	}
}

// complete runs one chat completion and returns the raw assistant message.
// The model is instructed to reply with a single JSON object.
func (c *Client) complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	req := openai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: c.temperature,
		MaxTokens:   c.maxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	}

	var content string
	call := func() error {
		resp, err := c.api.CreateChatCompletion(ctx, req)
		if err != nil {
			return err
		}
		if len(resp.Choices) == 0 {
			return fmt.Errorf("no completion choices returned")
		}
		content = resp.Choices[0].Message.Content
		return nil
	}

	if c.breaker != nil {
		if err := c.breaker.Execute(call); err != nil {
			return "", err
		}
		return content, nil
	}
	if err := call(); err != nil {
		return "", err
	}
	return content, nil
}
