package client

import (
	"context"
	"sphere-core/internal/domain/entity"
	"strings"

	"google.golang.org/genai"
)

// GeminiClient serves as the fallback tier. It ignores the requested model
// and always answers with its own.
type GeminiClient struct {
	client *genai.Client
	model  string
}

// NewGeminiClient uses Vertex AI when projectID is set, the Gemini API key
// otherwise.
func NewGeminiClient(ctx context.Context, apiKey, projectID, location, model string) (*GeminiClient, error) {
	cfg := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	if projectID != "" {
		cfg = &genai.ClientConfig{
			Project:  projectID,
			Location: location,
			Backend:  genai.BackendVertexAI,
		}
	}
	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, entity.E(entity.KindNotConfigured, "gemini", err)
	}
	return &GeminiClient{client: client, model: model}, nil
}

func NewGeminiClientFromClient(c *genai.Client, model string) *GeminiClient {
	return &GeminiClient{
		client: c,
		model:  model,
	}
}

func (g *GeminiClient) Name() string { return "gemini" }

func (g *GeminiClient) Complete(ctx context.Context, req entity.CompletionRequest) (*entity.CompletionResult, error) {
	config := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(req.Persona, genai.RoleUser),
		Temperature:       genai.Ptr(req.Temperature),
		MaxOutputTokens:   int32(req.MaxTokens),
	}

	result, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(req.Prompt), config)
	if err != nil {
		return nil, classifyGeminiError(err)
	}

	text := result.Text()
	if text == "" {
		return nil, entity.E(entity.KindUpstreamUnavailable, "gemini", entity.ErrEmptyCompletion)
	}

	tokens := 0
	if result.UsageMetadata != nil {
		tokens = int(result.UsageMetadata.TotalTokenCount)
	}
	return &entity.CompletionResult{
		Content:    text,
		Model:      g.model,
		Provider:   g.Name(),
		TokenCount: tokens,
	}, nil
}

// classifyGeminiError sniffs the message; the SDK reports status codes in
// its error text.
func classifyGeminiError(err error) error {
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "429"),
		strings.Contains(msg, "500"),
		strings.Contains(msg, "503"),
		strings.Contains(msg, "overloaded"),
		strings.Contains(msg, "deadline"),
		strings.Contains(msg, "unavailable"):
		return entity.E(entity.KindUpstreamUnavailable, "gemini", err)
	case strings.Contains(msg, "400"),
		strings.Contains(msg, "401"),
		strings.Contains(msg, "403"),
		strings.Contains(msg, "404"):
		return entity.E(entity.KindUpstreamRejected, "gemini", err)
	default:
		return entity.E(entity.KindUpstreamUnavailable, "gemini", err)
	}
}
