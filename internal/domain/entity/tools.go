package entity

// Tool request schemas. Each is decoded from the JSON body of its route and
// validated before a prompt is rendered from it.

type BusinessPlanRequest struct {
	BusinessName  string `json:"business_name" validate:"required"`
	Industry      string `json:"industry" validate:"required"`
	Description   string `json:"description" validate:"required"`
	TargetMarket  string `json:"target_market" validate:"required"`
	RevenueModel  string `json:"revenue_model" validate:"required"`
	FundingNeeded string `json:"funding_needed,omitempty"`
}

type MarketResearchRequest struct {
	Industry      string `json:"industry" validate:"required"`
	TargetMarket  string `json:"target_market" validate:"required"`
	Geography     string `json:"geography" validate:"required"`
	ResearchFocus string `json:"research_focus" validate:"required"` // competitor, customer, trends, market_size
}

type FinancialForecastRequest struct {
	BusinessName         string   `json:"business_name" validate:"required"`
	Industry             string   `json:"industry" validate:"required"`
	InitialInvestment    *float64 `json:"initial_investment" validate:"required,gte=0"`
	MonthlyRevenueMonth1 *float64 `json:"monthly_revenue_month1" validate:"required,gte=0"`
	MonthlyCosts         *float64 `json:"monthly_costs" validate:"required,gte=0"`
	GrowthRate           *float64 `json:"growth_rate" validate:"required,gt=-100"` // percent per month
	ForecastMonths       int      `json:"forecast_months" validate:"gte=1,lte=600"`
}

type PitchDeckRequest struct {
	BusinessName  string `json:"business_name" validate:"required"`
	Tagline       string `json:"tagline" validate:"required"`
	Problem       string `json:"problem" validate:"required"`
	Solution      string `json:"solution" validate:"required"`
	TargetMarket  string `json:"target_market" validate:"required"`
	BusinessModel string `json:"business_model" validate:"required"`
	Competition   string `json:"competition" validate:"required"`
	Traction      string `json:"traction" validate:"required"`
	Team          string `json:"team" validate:"required"`
	FundingAsk    string `json:"funding_ask" validate:"required"`
}

type ContentRequest struct {
	ContentType    string `json:"content_type" validate:"required"` // blog, social, email, product_description, website
	Topic          string `json:"topic" validate:"required"`
	Tone           string `json:"tone" validate:"required"`
	Length         string `json:"length" validate:"required"` // short, medium, long
	Keywords       string `json:"keywords,omitempty"`
	TargetAudience string `json:"target_audience,omitempty"`
}

type ChatbotConfigRequest struct {
	BotName             string   `json:"bot_name" validate:"required"`
	BusinessName        string   `json:"business_name" validate:"required"`
	BusinessDescription string   `json:"business_description" validate:"required"`
	CommonQuestions     []string `json:"common_questions" validate:"required,dive,required"`
	Tone                string   `json:"tone" validate:"required"`
	Language            string   `json:"language" validate:"required"`
}

type ChatMessageRequest struct {
	Message     string `json:"message" validate:"required"`
	BotConfigID int    `json:"bot_config_id"`
}

type SupportTicketRequest struct {
	CustomerName  string `json:"customer_name" validate:"required"`
	CustomerEmail string `json:"customer_email" validate:"required"`
	Subject       string `json:"subject" validate:"required"`
	Message       string `json:"message" validate:"required"`
	Priority      string `json:"priority,omitempty"` // low, medium, high, urgent
}

type SupportResponseRequest struct {
	Message string `json:"message" validate:"required"`
}

type Task struct {
	Title          string   `json:"title" validate:"required"`
	Description    string   `json:"description,omitempty"`
	Deadline       string   `json:"deadline,omitempty"`
	Priority       string   `json:"priority,omitempty"`
	EstimatedHours *float64 `json:"estimated_hours,omitempty"`
}

type TaskListRequest struct {
	Tasks []Task `json:"tasks" validate:"required,min=1,dive"`
}

type WorkPatternRequest struct {
	TypicalWorkHours     string   `json:"typical_work_hours" validate:"required"`
	MainResponsibilities []string `json:"main_responsibilities" validate:"required"`
	CommonDistractions   []string `json:"common_distractions" validate:"required"`
	Goals                string   `json:"goals" validate:"required"`
}

type CalendarRequest struct {
	Meetings  []any  `json:"meetings"`
	WorkStyle string `json:"work_style,omitempty"` // maker, manager, mixed
}
