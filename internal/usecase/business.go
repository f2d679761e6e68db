package usecase

import (
	"context"
	"fmt"
	"sphere-core/internal/domain/entity"
)

var (
	businessPlanSpec = ToolSpec{
		Tool:        ToolBusinessPlan,
		Operation:   "generate_business_plan",
		Persona:     "You are an expert business consultant who creates professional, investor-ready business plans.",
		Temperature: 0.7,
		MaxTokens:   4000,
	}
	marketResearchSpec = ToolSpec{
		Tool:        ToolMarketResearch,
		Operation:   "market_research",
		Persona:     "You are a market research analyst with deep industry knowledge and access to market data.",
		Temperature: 0.6,
		MaxTokens:   3000,
	}
	pitchDeckSpec = ToolSpec{
		Tool:        ToolPitchDeck,
		Operation:   "generate_pitch_deck",
		Persona:     "You are a pitch deck expert who has helped raise millions for startups. Create compelling, investor-ready content.",
		Temperature: 0.7,
		MaxTokens:   3500,
	}
)

// PitchDeckSlides is the number of slides the pitch deck template asks for.
const PitchDeckSlides = 10

type BusinessPlan struct {
	Text      string
	WordCount int
}

func (t *Toolkit) GenerateBusinessPlan(ctx context.Context, req entity.BusinessPlanRequest) (*BusinessPlan, error) {
	resp, err := t.orchestrator.Execute(ctx, businessPlanSpec, renderBusinessPlan(req))
	if err != nil {
		return nil, err
	}
	return &BusinessPlan{Text: resp.Content, WordCount: wordCount(resp.Content)}, nil
}

func (t *Toolkit) ConductMarketResearch(ctx context.Context, req entity.MarketResearchRequest) (string, error) {
	resp, err := t.orchestrator.Execute(ctx, marketResearchSpec, renderMarketResearch(req))
	if err != nil {
		return "", err
	}
	return resp.Content, nil
}

func (t *Toolkit) GeneratePitchDeck(ctx context.Context, req entity.PitchDeckRequest) (string, error) {
	resp, err := t.orchestrator.Execute(ctx, pitchDeckSpec, renderPitchDeck(req))
	if err != nil {
		return "", err
	}
	return resp.Content, nil
}

func renderBusinessPlan(req entity.BusinessPlanRequest) string {
	return fmt.Sprintf(`Create a comprehensive business plan for:

Business Name: %s
Industry: %s
Description: %s
Target Market: %s
Revenue Model: %s
Funding Needed: %s

Generate a detailed business plan with the following sections:

1. EXECUTIVE SUMMARY (2-3 paragraphs)
2. COMPANY DESCRIPTION (detailed overview)
3. MARKET ANALYSIS
   - Target Market Size
   - Customer Demographics
   - Market Trends
   - Competitive Landscape
4. ORGANIZATION & MANAGEMENT
   - Organizational Structure
   - Key Team Members Needed
5. PRODUCTS/SERVICES
   - Detailed Description
   - Unique Value Proposition
   - Competitive Advantages
6. MARKETING & SALES STRATEGY
   - Marketing Channels
   - Customer Acquisition Strategy
   - Sales Funnel
7. FINANCIAL PROJECTIONS (5 years)
   - Revenue Projections
   - Cost Structure
   - Break-even Analysis
   - Funding Requirements
8. RISK ANALYSIS
   - Key Risks
   - Mitigation Strategies

Make it professional, data-driven, and investor-ready. Use real market insights.
Format with clear headings and bullet points where appropriate.
`,
		req.BusinessName,
		req.Industry,
		req.Description,
		req.TargetMarket,
		req.RevenueModel,
		orDefault(req.FundingNeeded, "Not specified"),
	)
}

func renderMarketResearch(req entity.MarketResearchRequest) string {
	return fmt.Sprintf(`Conduct comprehensive market research for:

Industry: %s
Target Market: %s
Geography: %s
Focus: %s

Provide detailed analysis on:
1. Market Size & Growth (TAM, SAM, SOM)
2. Key Market Trends (2025-2030)
3. Customer Demographics & Psychographics
4. Top 5-10 Competitors Analysis
5. Market Entry Barriers
6. Opportunities & Threats
7. Pricing Landscape
8. Distribution Channels
9. Regulatory Considerations
10. Market Forecast

Use latest 2025 data and provide specific numbers where possible.
Format with clear sections and bullet points.
`,
		req.Industry,
		req.TargetMarket,
		req.Geography,
		req.ResearchFocus,
	)
}

func renderPitchDeck(req entity.PitchDeckRequest) string {
	return fmt.Sprintf(`Create a compelling 10-slide investor pitch deck for:

Business: %s
Tagline: %s
Problem: %s
Solution: %s
Target Market: %s
Business Model: %s
Competition: %s
Traction: %s
Team: %s
Funding Ask: %s

Generate content for these 10 slides with compelling copy:

SLIDE 1: COVER
- Company name, tagline, presenter info

SLIDE 2: PROBLEM
- What problem are you solving?
- Why is it important?
- Market pain points

SLIDE 3: SOLUTION
- Your product/service
- How it solves the problem
- Key features/benefits

SLIDE 4: MARKET OPPORTUNITY
- TAM, SAM, SOM
- Market size and growth
- Target customer segments

SLIDE 5: PRODUCT/DEMO
- Product screenshots/demo description
- Key functionality
- User experience highlights

SLIDE 6: BUSINESS MODEL
- How you make money
- Pricing strategy
- Unit economics

SLIDE 7: TRACTION
- Current metrics (users, revenue, growth)
- Milestones achieved
- Customer testimonials/case studies

SLIDE 8: COMPETITION
- Competitive landscape
- Your unique advantages
- Market positioning

SLIDE 9: TEAM
- Founder backgrounds
- Key team members
- Advisors/investors

SLIDE 10: FUNDING ASK
- Amount raising
- Use of funds breakdown
- Projected milestones

For each slide, provide:
- Headline (catchy and clear)
- 3-5 bullet points with compelling copy
- Data points or statistics where relevant
- Call-to-action or key takeaway

Make it investor-ready, data-driven, and persuasive.
`,
		req.BusinessName,
		req.Tagline,
		req.Problem,
		req.Solution,
		req.TargetMarket,
		req.BusinessModel,
		req.Competition,
		req.Traction,
		req.Team,
		req.FundingAsk,
	)
}
