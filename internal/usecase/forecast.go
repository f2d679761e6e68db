package usecase

import (
	"math"
	"sphere-core/internal/domain/entity"
)

// costInflation is the fixed month-over-month cost growth.
const costInflation = 1.02

// Projection is the closed-form result of ProjectFinancials.
type Projection struct {
	Rows         []entity.ForecastRow
	TotalRevenue float64
	TotalProfit  float64
}

// ProjectFinancials compounds revenue by growthPct per month and costs by 2%
// per month over the horizon. Cumulative totals accumulate unrounded; only
// reported values are rounded.
func ProjectFinancials(revenue1, costs1, growthPct float64, months int) Projection {
	if months < 0 {
		months = 0
	}
	rows := make([]entity.ForecastRow, 0, months)
	growth := 1 + growthPct/100

	var cumRevenue, cumCosts float64
	for m := 1; m <= months; m++ {
		revenue := revenue1 * math.Pow(growth, float64(m-1))
		costs := costs1 * math.Pow(costInflation, float64(m-1))
		cumRevenue += revenue
		cumCosts += costs

		rows = append(rows, entity.ForecastRow{
			Month:             m,
			Revenue:           round2(revenue),
			Costs:             round2(costs),
			Profit:            round2(revenue - costs),
			CumulativeRevenue: round2(cumRevenue),
			CumulativeProfit:  round2(cumRevenue - cumCosts),
		})
	}

	return Projection{
		Rows:         rows,
		TotalRevenue: round2(cumRevenue),
		TotalProfit:  round2(cumRevenue - cumCosts),
	}
}

// BreakEvenMonth returns the first month whose cumulative profit is strictly
// above investment, or nil.
func BreakEvenMonth(rows []entity.ForecastRow, investment float64) *int {
	for _, r := range rows {
		if r.CumulativeProfit > investment {
			m := r.Month
			return &m
		}
	}
	return nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
