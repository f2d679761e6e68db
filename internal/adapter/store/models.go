package store

import "time"

// The relational schema. Only usage_logs and subscriptions are written;
// users is read to link a paid subscription to its account and
// generated_content is declared for the billing front end.

type User struct {
	ID               uint   `gorm:"primaryKey"`
	Email            string `gorm:"uniqueIndex"`
	FullName         string
	HashedPassword   string
	IsActive         bool   `gorm:"default:true"`
	SubscriptionTier string `gorm:"default:free"` // free, starter, growth, enterprise
	CreatedAt        time.Time

	UsageLogs     []UsageLog
	Subscriptions []Subscription
}

type Subscription struct {
	ID                    uint   `gorm:"primaryKey"`
	UserID                *uint  `gorm:"index"`
	PlanName              string
	Status                string `gorm:"default:active"` // active, cancelled, expired
	Amount                float64
	Currency              string
	BillingCycle          string    // monthly, annual
	PaymentGateway        string    `gorm:"index:idx_gateway_subscription"` // razorpay, stripe
	GatewaySubscriptionID *string   `gorm:"index:idx_gateway_subscription"`
	StartDate             time.Time `gorm:"autoCreateTime"`
	EndDate               *time.Time
	AutoRenew             bool `gorm:"default:true"`
}

type UsageLog struct {
	ID          uint   `gorm:"primaryKey"`
	UserID      *uint  `gorm:"index"`
	ToolName    string `gorm:"index"`
	Action      string
	CreditsUsed int       `gorm:"default:1"`
	Timestamp   time.Time `gorm:"index"`
	Metadata    string    `gorm:"type:text"`
}

type GeneratedContent struct {
	ID        uint  `gorm:"primaryKey"`
	UserID    *uint `gorm:"index"`
	ToolName  string
	Title     string
	Content   string `gorm:"type:text"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (GeneratedContent) TableName() string { return "generated_content" }

// AllModels lists every table for migration.
func AllModels() []any {
	return []any{&User{}, &Subscription{}, &UsageLog{}, &GeneratedContent{}}
}
