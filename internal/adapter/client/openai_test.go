package client

import (
	"context"
	"errors"
	"net/http"
	"sphere-core/internal/domain/entity"
	"testing"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCompleter struct {
	got  openai.ChatCompletionRequest
	resp openai.ChatCompletionResponse
	err  error
}

func (f *fakeCompleter) CreateChatCompletion(_ context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	f.got = req
	return f.resp, f.err
}

func TestOpenAIClientComplete(t *testing.T) {
	fake := &fakeCompleter{resp: openai.ChatCompletionResponse{
		Model: "gpt-4-turbo-preview",
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: "plan"}},
		},
		Usage: openai.Usage{TotalTokens: 128},
	}}
	c := NewOpenAIClientFromClient(fake)

	res, err := c.Complete(context.Background(), entity.CompletionRequest{
		Model: "gpt-4-turbo-preview", Persona: "You are a consultant.", Prompt: "Write a plan",
		Temperature: 0.7, MaxTokens: 4000,
	})
	require.NoError(t, err)
	assert.Equal(t, "plan", res.Content)
	assert.Equal(t, "openai", res.Provider)
	assert.Equal(t, 128, res.TokenCount)

	require.Len(t, fake.got.Messages, 2)
	assert.Equal(t, openai.ChatMessageRoleSystem, fake.got.Messages[0].Role)
	assert.Equal(t, "You are a consultant.", fake.got.Messages[0].Content)
	assert.Equal(t, openai.ChatMessageRoleUser, fake.got.Messages[1].Role)
	assert.Equal(t, "Write a plan", fake.got.Messages[1].Content)
	assert.Equal(t, float32(0.7), fake.got.Temperature)
	assert.Equal(t, 4000, fake.got.MaxTokens)
}

func TestOpenAIClientNoChoices(t *testing.T) {
	c := NewOpenAIClientFromClient(&fakeCompleter{})
	_, err := c.Complete(context.Background(), entity.CompletionRequest{})
	require.Error(t, err)
	assert.Equal(t, entity.KindUpstreamUnavailable, entity.KindOf(err))
}

func TestNewOpenAIClientRequiresKey(t *testing.T) {
	_, err := NewOpenAIClient("", "")
	assert.Equal(t, entity.KindNotConfigured, entity.KindOf(err))
}

func TestClassifyOpenAIError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want entity.Kind
	}{
		{"rate limited", &openai.APIError{HTTPStatusCode: http.StatusTooManyRequests}, entity.KindUpstreamUnavailable},
		{"server error", &openai.APIError{HTTPStatusCode: http.StatusBadGateway}, entity.KindUpstreamUnavailable},
		{"bad request", &openai.APIError{HTTPStatusCode: http.StatusBadRequest}, entity.KindUpstreamRejected},
		{"unauthorized", &openai.RequestError{HTTPStatusCode: http.StatusUnauthorized, Err: errors.New("no")}, entity.KindUpstreamRejected},
		{"deadline", context.DeadlineExceeded, entity.KindUpstreamUnavailable},
		{"unknown", errors.New("connection reset"), entity.KindUpstreamUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, entity.KindOf(classifyOpenAIError(tt.err)))
		})
	}
}

func TestClassifyGeminiError(t *testing.T) {
	assert.Equal(t, entity.KindUpstreamUnavailable, entity.KindOf(classifyGeminiError(errors.New("Error 503, Service Unavailable"))))
	assert.Equal(t, entity.KindUpstreamRejected, entity.KindOf(classifyGeminiError(errors.New("Error 400, invalid argument"))))
	assert.Equal(t, entity.KindUpstreamUnavailable, entity.KindOf(classifyGeminiError(errors.New("boom"))))
}
