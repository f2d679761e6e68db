package usecase

import (
	"strings"
	"time"
)

// Tool identifiers returned in response envelopes.
const (
	ToolBusinessPlan    = "business_plan_generator"
	ToolMarketResearch  = "market_research"
	ToolFinancial       = "financial_forecast"
	ToolPitchDeck       = "pitch_deck_creator"
	ToolContent         = "content_generator"
	ToolChatbot         = "chatbot_builder"
	ToolCustomerSupport = "customer_support_ai"
	ToolTaskManager     = "task_manager_ai"
	ToolTimeManagement  = "time_management_ai"
)

// Toolkit renders the prompt of every tool and runs it through the
// orchestrator.
type Toolkit struct {
	orchestrator      *Orchestrator
	sampleConcurrency int
	now               func() time.Time
}

type ToolkitOption func(*Toolkit)

// WithSampleConcurrency bounds the chatbot sample fan-out.
func WithSampleConcurrency(n int) ToolkitOption {
	return func(t *Toolkit) {
		if n > 0 {
			t.sampleConcurrency = n
		}
	}
}

// WithClock replaces time.Now for timestamped envelopes.
func WithClock(now func() time.Time) ToolkitOption {
	return func(t *Toolkit) { t.now = now }
}

func NewToolkit(orch *Orchestrator, opts ...ToolkitOption) *Toolkit {
	t := &Toolkit{
		orchestrator:      orch,
		sampleConcurrency: maxChatbotSamples,
		now:               time.Now,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func wordCount(s string) int {
	return len(strings.Fields(s))
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}
