package client

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sphere-core/internal/domain/entity"

	openai "github.com/sashabaranov/go-openai"
)

// ChatCompleter is the slice of the go-openai client this adapter uses.
type ChatCompleter interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

type OpenAIClient struct {
	client ChatCompleter
}

// NewOpenAIClient builds a client for apiKey; baseURL may point at any
// OpenAI-compatible endpoint.
func NewOpenAIClient(apiKey, baseURL string) (*OpenAIClient, error) {
	if apiKey == "" {
		return nil, entity.E(entity.KindNotConfigured, "openai", entity.ErrProviderNotReady)
	}
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &OpenAIClient{client: openai.NewClientWithConfig(cfg)}, nil
}

func NewOpenAIClientFromClient(c ChatCompleter) *OpenAIClient {
	return &OpenAIClient{client: c}
}

func (o *OpenAIClient) Name() string { return "openai" }

func (o *OpenAIClient) Complete(ctx context.Context, req entity.CompletionRequest) (*entity.CompletionResult, error) {
	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: req.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: req.Persona},
			{Role: openai.ChatMessageRoleUser, Content: req.Prompt},
		},
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	})
	if err != nil {
		return nil, classifyOpenAIError(err)
	}
	if len(resp.Choices) == 0 {
		return nil, entity.E(entity.KindUpstreamUnavailable, "openai", entity.ErrEmptyCompletion)
	}

	return &entity.CompletionResult{
		Content:    resp.Choices[0].Message.Content,
		Model:      resp.Model,
		Provider:   o.Name(),
		TokenCount: resp.Usage.TotalTokens,
	}, nil
}

// classifyOpenAIError maps vendor failures onto retryable and terminal kinds.
func classifyOpenAIError(err error) error {
	status := 0
	var apiErr *openai.APIError
	var reqErr *openai.RequestError
	switch {
	case errors.As(err, &apiErr):
		status = apiErr.HTTPStatusCode
	case errors.As(err, &reqErr):
		status = reqErr.HTTPStatusCode
	}

	var netErr net.Error
	switch {
	case status == http.StatusTooManyRequests, status >= http.StatusInternalServerError:
		return entity.E(entity.KindUpstreamUnavailable, "openai", err)
	case status >= http.StatusBadRequest:
		return entity.E(entity.KindUpstreamRejected, "openai", err)
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled), errors.As(err, &netErr):
		return entity.E(entity.KindUpstreamUnavailable, "openai", err)
	default:
		return entity.E(entity.KindUpstreamUnavailable, "openai", fmt.Errorf("transport: %w", err))
	}
}
