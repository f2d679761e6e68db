package usecase

import (
	"context"
	"fmt"
	"sphere-core/internal/domain/entity"
)

var (
	supportTicketSpec = ToolSpec{
		Tool:        ToolCustomerSupport,
		Operation:   "analyze_support_ticket",
		Persona:     "You are a customer support expert who analyzes tickets and provides actionable insights.",
		Temperature: 0.6,
		MaxTokens:   1000,
	}
	supportResponseSpec = ToolSpec{
		Tool:        ToolCustomerSupport,
		Operation:   "generate_support_response",
		Persona:     "You are an expert customer support representative known for excellent service.",
		Temperature: 0.7,
		MaxTokens:   500,
	}
)

type TicketAnalysis struct {
	Analysis  string
	Sentiment string
}

func (t *Toolkit) AnalyzeSupportTicket(ctx context.Context, req entity.SupportTicketRequest) (*TicketAnalysis, error) {
	resp, err := t.orchestrator.Execute(ctx, supportTicketSpec, renderSupportTicket(req))
	if err != nil {
		return nil, err
	}
	return &TicketAnalysis{
		Analysis:  resp.Content,
		Sentiment: ClassifySentiment(resp.Content),
	}, nil
}

func (t *Toolkit) GenerateSupportResponse(ctx context.Context, req entity.SupportResponseRequest) (string, error) {
	resp, err := t.orchestrator.Execute(ctx, supportResponseSpec, renderSupportResponse(req))
	if err != nil {
		return "", err
	}
	return resp.Content, nil
}

func renderSupportTicket(req entity.SupportTicketRequest) string {
	return fmt.Sprintf(`Analyze this customer support ticket:

From: %s (%s)
Subject: %s
Priority: %s

Message:
%s

Provide:
1. Sentiment Analysis (positive, neutral, negative, angry)
2. Category (technical, billing, feature_request, complaint, question)
3. Priority Assessment (low, medium, high, urgent)
4. Suggested Response (professional, empathetic, helpful)
5. Required Actions (specific steps to resolve)
6. Escalation Needed? (yes/no and why)

Format your analysis clearly with sections.
`,
		req.CustomerName,
		req.CustomerEmail,
		req.Subject,
		orDefault(req.Priority, "medium"),
		req.Message,
	)
}

func renderSupportResponse(req entity.SupportResponseRequest) string {
	return fmt.Sprintf(`Generate a professional, empathetic customer support response for this issue:

Customer Issue:
%s

Requirements:
- Be empathetic and understanding
- Provide clear solution steps
- Use professional but friendly tone
- Include next steps or timeline
- Offer additional help
- End with positive note

Format as email response.
`, req.Message)
}
