package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"sphere-core/internal/domain/entity"

	"golang.org/x/sync/errgroup"
)

// maxChatbotSamples is how many common questions get a pre-generated answer.
const maxChatbotSamples = 5

const chatbotScriptURL = "https://cdn.sphere-ai.com/chatbot.js"

var chatbotRespondSpec = ToolSpec{
	Tool:        ToolChatbot,
	Operation:   "chatbot_respond",
	Tier:        TierFast,
	Persona:     "You are a helpful business assistant. Be friendly and professional.",
	Temperature: 0.7,
	MaxTokens:   300,
}

func chatbotSampleSpec(systemPrompt string) ToolSpec {
	return ToolSpec{
		Tool:        ToolChatbot,
		Operation:   "chatbot_sample",
		Tier:        TierFast,
		Persona:     systemPrompt,
		Temperature: 0.7,
		MaxTokens:   200,
	}
}

type ChatbotConfig struct {
	BotName         string            `json:"bot_name"`
	SystemPrompt    string            `json:"system_prompt"`
	SampleResponses map[string]string `json:"sample_responses"`
	EmbeddingCode   string            `json:"-"`
}

type ChatReply struct {
	Text      string
	Timestamp string
}

// CreateChatbotConfig renders the bot's system prompt and answers up to five
// of its common questions in parallel. Any failed sample fails the whole
// configuration and cancels the others.
func (t *Toolkit) CreateChatbotConfig(ctx context.Context, req entity.ChatbotConfigRequest) (*ChatbotConfig, error) {
	systemPrompt, err := renderChatbotSystemPrompt(req)
	if err != nil {
		return nil, entity.E(entity.KindInternal, "create_chatbot_config", err)
	}

	questions := req.CommonQuestions
	if len(questions) > maxChatbotSamples {
		questions = questions[:maxChatbotSamples]
	}

	spec := chatbotSampleSpec(systemPrompt)
	answers := make([]string, len(questions))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(t.sampleConcurrency)
	for i, q := range questions {
		g.Go(func() error {
			resp, err := t.orchestrator.Execute(gctx, spec, renderChatbotSample(req, q))
			if err != nil {
				return err
			}
			answers[i] = resp.Content
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	samples := make(map[string]string, len(questions))
	for i, q := range questions {
		samples[q] = answers[i]
	}

	return &ChatbotConfig{
		BotName:         req.BotName,
		SystemPrompt:    systemPrompt,
		SampleResponses: samples,
		EmbeddingCode:   renderEmbedSnippet(req),
	}, nil
}

// ChatbotRespond is single-turn: no history is kept between calls.
func (t *Toolkit) ChatbotRespond(ctx context.Context, req entity.ChatMessageRequest) (*ChatReply, error) {
	resp, err := t.orchestrator.Execute(ctx, chatbotRespondSpec, req.Message)
	if err != nil {
		return nil, err
	}
	return &ChatReply{
		Text:      resp.Content,
		Timestamp: t.now().UTC().Format("2006-01-02T15:04:05Z"),
	}, nil
}

func renderChatbotSystemPrompt(req entity.ChatbotConfigRequest) (string, error) {
	questions, err := json.MarshalIndent(req.CommonQuestions, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode questions: %w", err)
	}
	return fmt.Sprintf(`You are %s, an AI assistant for %s.

Business Description: %s

Your role:
- Answer customer questions about %s
- Be %s in your responses
- Communicate in %s
- Provide helpful, accurate information
- If you don't know something, say so and offer to connect them with a human

Common Questions You Should Know:
%s

Always be polite, helpful, and represent %s professionally.
`,
		req.BotName,
		req.BusinessName,
		req.BusinessDescription,
		req.BusinessName,
		req.Tone,
		req.Language,
		questions,
		req.BusinessName,
	), nil
}

func renderChatbotSample(req entity.ChatbotConfigRequest, question string) string {
	return fmt.Sprintf("As %s for %s, answer this question in a %s tone: %s",
		req.BotName, req.BusinessName, req.Tone, question)
}

func renderEmbedSnippet(req entity.ChatbotConfigRequest) string {
	return fmt.Sprintf(`<!-- Add this to your website -->
<script>
  window.sphereAIChatbot = {
    botName: %q,
    businessName: %q,
    configId: "your-config-id-here"
  };
</script>
<script src="%s"></script>
`, req.BotName, req.BusinessName, chatbotScriptURL)
}
