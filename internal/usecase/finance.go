package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"sphere-core/internal/domain/entity"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var financialForecastSpec = ToolSpec{
	Tool:        ToolFinancial,
	Operation:   "financial_forecast",
	Persona:     "You are a financial analyst specializing in startup finance and forecasting.",
	Temperature: 0.5,
	MaxTokens:   2000,
}

// promptedRows caps how much of the table is embedded in the prompt.
const promptedRows = 12

type FinancialForecast struct {
	Projections []entity.ForecastRow
	Analysis    string
	Summary     entity.ForecastSummary
}

// GenerateFinancialForecast computes the table locally, then asks the model
// to analyse it.
func (t *Toolkit) GenerateFinancialForecast(ctx context.Context, req entity.FinancialForecastRequest) (*FinancialForecast, error) {
	proj := ProjectFinancials(figure(req.MonthlyRevenueMonth1), figure(req.MonthlyCosts), figure(req.GrowthRate), req.ForecastMonths)

	prompt, err := renderFinancialForecast(req, proj.Rows)
	if err != nil {
		return nil, entity.E(entity.KindInternal, financialForecastSpec.Operation, err)
	}

	resp, err := t.orchestrator.Execute(ctx, financialForecastSpec, prompt)
	if err != nil {
		return nil, err
	}

	return &FinancialForecast{
		Projections: proj.Rows,
		Analysis:    resp.Content,
		Summary: entity.ForecastSummary{
			BreakEvenMonth:       BreakEvenMonth(proj.Rows, figure(req.InitialInvestment)),
			TotalRevenueForecast: proj.TotalRevenue,
			TotalProfitForecast:  proj.TotalProfit,
		},
	}, nil
}

func renderFinancialForecast(req entity.FinancialForecastRequest, rows []entity.ForecastRow) (string, error) {
	head := rows
	if len(head) > promptedRows {
		head = head[:promptedRows]
	}
	table, err := json.MarshalIndent(head, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode projections: %w", err)
	}

	money := message.NewPrinter(language.English)
	return fmt.Sprintf(`Analyze this financial forecast for %s in %s:

Initial Investment: ₹%s
Starting Monthly Revenue: ₹%s
Monthly Costs: ₹%s
Growth Rate: %g%% per month
Forecast Period: %d months

Financial Projections (First 12 months):
%s

Provide:
1. Break-even Analysis (when will they break even?)
2. Cash Flow Analysis
3. Key Financial Metrics (ROI, Profit Margin, Burn Rate)
4. Risk Assessment
5. Recommendations for financial health
6. Scenario Analysis (Best, Realistic, Worst case)

Be specific with numbers and actionable insights.
`,
		req.BusinessName,
		req.Industry,
		money.Sprintf("%.2f", figure(req.InitialInvestment)),
		money.Sprintf("%.2f", figure(req.MonthlyRevenueMonth1)),
		money.Sprintf("%.2f", figure(req.MonthlyCosts)),
		figure(req.GrowthRate),
		req.ForecastMonths,
		table,
	), nil
}

// figure dereferences a required amount; nil reads as zero.
func figure(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}
