package repository

import (
	"context"
	"sphere-core/internal/domain/entity"
)

type AIProvider interface {
	Name() string
	Complete(ctx context.Context, req entity.CompletionRequest) (*entity.CompletionResult, error)
}

type UsageRecorder interface {
	RecordUsage(ctx context.Context, ev entity.UsageEvent) error
}

type OrderGateway interface {
	KeyID() string
	CreateOrder(ctx context.Context, amountMinor int64, currency, receipt string, notes map[string]string) (*entity.Order, error)
	VerifySignature(orderID, paymentID, signature string) bool
}

type IntentGateway interface {
	CreateIntent(ctx context.Context, amountMinor int64, currency string, metadata map[string]string) (*entity.PaymentIntent, error)
	ParseWebhook(payload []byte, signatureHeader string) (*entity.PaymentEvent, error)
}

type SubscriptionStore interface {
	// ActivateSubscription creates the subscription of a.GatewayID, or marks
	// an existing one active. It reports whether a row was created.
	ActivateSubscription(ctx context.Context, a entity.SubscriptionActivation) (bool, error)
	UpdateSubscriptionStatus(ctx context.Context, gateway, gatewayID, status string) (int64, error)
}

// EventDeduper remembers webhook event ids so redelivered events are not
// dispatched twice. Forget releases an id whose dispatch failed.
type EventDeduper interface {
	FirstDelivery(ctx context.Context, gateway, eventID string) (bool, error)
	Forget(ctx context.Context, gateway, eventID string) error
}
