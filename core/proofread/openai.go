// Package proofread calls the upstream language model.
package proofread

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/gaurav-prasanna/proofpipe/core"
)

// SystemInstruction is sent with every request.
const SystemInstruction = "You are a proofreader. Return the complete input text with every " +
	"spelling, grammar and punctuation error marked using HTML. Mark each deleted " +
	`text with <b style="color:red">…</b> and each inserted text with ` +
	`<b style="color:green">…</b>. If there are no errors, return the text ` +
	"unchanged. Never return conversational text, explanations or questions."

// Fixed decoding parameters.
const (
	Temperature  = 0.2
	TopP         = 0.4
	DefaultModel = "gpt-4"
)

// Config holds configuration for the OpenAI proofreader.
type Config struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

// OpenAIProofreader implements core.Proofreader with a chat completion.
type OpenAIProofreader struct {
	client *openai.Client
	model  string
	logger *slog.Logger
}

// NewOpenAI creates a proofreader from configuration.
func NewOpenAI(cfg Config, logger *slog.Logger) *OpenAIProofreader {
	config := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		config.BaseURL = cfg.BaseURL
	}
	if cfg.Timeout > 0 {
		config.HTTPClient = &http.Client{Timeout: cfg.Timeout}
	}

	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &OpenAIProofreader{
		client: openai.NewClientWithConfig(config),
		model:  model,
		logger: logger,
	}
}

// Model returns the chat model identifier.
func (p *OpenAIProofreader) Model() string { return p.model }

// Proofread sends one chat completion. There is no retry; any failure is
// wrapped in core.ErrUpstream.
func (p *OpenAIProofreader) Proofread(ctx context.Context, prompt string) (string, error) {
	req := openai.ChatCompletionRequest{
		Model:       p.model,
		Temperature: Temperature,
		TopP:        TopP,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: SystemInstruction},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	}

	start := time.Now()
	resp, err := p.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", wrapError(err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices in response", core.ErrUpstream)
	}

	p.logger.DebugContext(ctx, "chat completion",
		"model", p.model,
		"prompt_tokens", resp.Usage.PromptTokens,
		"completion_tokens", resp.Usage.CompletionTokens,
		"finish_reason", string(resp.Choices[0].FinishReason),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return resp.Choices[0].Message.Content, nil
}

func wrapError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("%w: status %d: %s", core.ErrUpstream, apiErr.HTTPStatusCode, apiErr.Message)
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return fmt.Errorf("%w: status %d: %w", core.ErrUpstream, reqErr.HTTPStatusCode, err)
	}

	return fmt.Errorf("%w: %w", core.ErrUpstream, err)
}

var _ core.Proofreader = (*OpenAIProofreader)(nil)
