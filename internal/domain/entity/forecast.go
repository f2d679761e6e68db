package entity

// ForecastRow is one month of a financial projection. Money values are
// rounded to two decimals.
type ForecastRow struct {
	Month             int     `json:"month"`
	Revenue           float64 `json:"revenue"`
	Costs             float64 `json:"costs"`
	Profit            float64 `json:"profit"`
	CumulativeRevenue float64 `json:"cumulative_revenue"`
	CumulativeProfit  float64 `json:"cumulative_profit"`
}

type ForecastSummary struct {
	BreakEvenMonth       *int    `json:"break_even_month"` // nil when not reached within the horizon
	TotalRevenueForecast float64 `json:"total_revenue_forecast"`
	TotalProfitForecast  float64 `json:"total_profit_forecast"`
}
