package entity

// PaymentRequest is the body of both order and intent creation routes.
// Amount is in major currency units; gateways receive it in minor units.
type PaymentRequest struct {
	Amount    int64  `json:"amount" validate:"gt=0"`
	Currency  string `json:"currency,omitempty"`
	PlanName  string `json:"plan_name"`
	UserEmail string `json:"user_email"`
}

type RazorpayVerifyRequest struct {
	OrderID   string `json:"razorpay_order_id" validate:"required"`
	PaymentID string `json:"razorpay_payment_id" validate:"required"`
	Signature string `json:"razorpay_signature" validate:"required"`
}

type Order struct {
	ID       string `json:"order_id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	KeyID    string `json:"key_id"`
}

type PaymentIntent struct {
	ID             string `json:"id"`
	ClientSecret   string `json:"client_secret"`
	PublishableKey string `json:"publishable_key"`
}

// Webhook event types dispatched by the gateway.
const (
	EventPaymentSucceeded    = "payment_intent.succeeded"
	EventPaymentFailed       = "payment_intent.payment_failed"
	EventSubscriptionDeleted = "customer.subscription.deleted"
)

// PaymentEvent is a verified webhook event reduced to what dispatch needs.
type PaymentEvent struct {
	ID          string
	Type        string
	ObjectID    string
	AmountMinor int64
	Currency    string
	Metadata    map[string]string
}

// SubscriptionActivation describes the plan a succeeded payment pays for.
// Amount is in major currency units.
type SubscriptionActivation struct {
	Gateway   string
	GatewayID string
	PlanName  string
	UserEmail string
	Amount    float64
	Currency  string
}

// Subscription statuses written by webhook dispatch.
const (
	SubscriptionActive    = "active"
	SubscriptionCancelled = "cancelled"
)
