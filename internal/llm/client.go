// Package llm relays OCR text to a chat-completion service for spelling
// correction and answer evaluation.
package llm

import (
	"Go_Scan/internal/logging"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
)

var (
	ErrEmptyInput = errors.New("empty input")
	ErrNoChoices  = errors.New("chat completion returned no choices")
)

// ChatCompleter is satisfied by *openai.Client.
type ChatCompleter interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

type Options struct {
	Model       string
	Temperature float32
}

type Client struct {
	api    ChatCompleter
	opts   Options
	logger logging.Logger
}

func NewClient(api ChatCompleter, opts Options, logger logging.Logger) *Client {
	if opts.Model == "" {
		opts.Model = openai.GPT4
	}
	return &Client{api: api, opts: opts, logger: logger}
}

// NewOpenAIClient talks to an OpenAI compatible endpoint at baseURL.
func NewOpenAIClient(apiKey, baseURL string, opts Options, logger logging.Logger) *Client {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = strings.TrimRight(baseURL, "/")
	}
	return NewClient(openai.NewClientWithConfig(cfg), opts, logger)
}

// Correct returns text with spelling fixed and marked up as HTML.
func (c *Client) Correct(ctx context.Context, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyInput
	}
	return c.complete(ctx, "correct", correctInstruction, text)
}

// Evaluate grades an answer to question against the marking rubric. The
// reply is passed through as the model wrote it.
func (c *Client) Evaluate(ctx context.Context, text, question string) (string, error) {
	if strings.TrimSpace(text) == "" || strings.TrimSpace(question) == "" {
		return "", ErrEmptyInput
	}
	return c.complete(ctx, "evaluate", evaluateInstruction(question), text)
}

func (c *Client) complete(ctx context.Context, task, instruction, text string) (string, error) {
	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.opts.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: instruction},
			{Role: openai.ChatMessageRoleUser, Content: text},
		},
		N:           1,
		Temperature: c.opts.Temperature,
	})
	if err != nil {
		c.logger.Error(ctx, "chat completion failed", "task", task, "error", err)
		return "", fmt.Errorf("%s text: %w", task, err)
	}
	if len(resp.Choices) == 0 {
		return "", ErrNoChoices
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
