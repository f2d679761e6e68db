package client

import (
	"context"
	"errors"
	"net/http"
	"sphere-core/internal/domain/entity"

	"github.com/stripe/stripe-go/v76"
	stripeclient "github.com/stripe/stripe-go/v76/client"
	"github.com/stripe/stripe-go/v76/webhook"
)

// IntentCreator is the slice of the Stripe API used to open intents.
type IntentCreator interface {
	New(params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error)
}

type StripeClient struct {
	intents        IntentCreator
	publishableKey string
	webhookSecret  string
}

func NewStripeClient(secretKey, publishableKey, webhookSecret string) (*StripeClient, error) {
	if secretKey == "" {
		return nil, entity.E(entity.KindNotConfigured, "stripe", entity.ErrGatewayNotReady)
	}
	sc := stripeclient.New(secretKey, nil)
	return &StripeClient{
		intents:        sc.PaymentIntents,
		publishableKey: publishableKey,
		webhookSecret:  webhookSecret,
	}, nil
}

func NewStripeClientFromIntents(intents IntentCreator, publishableKey, webhookSecret string) *StripeClient {
	return &StripeClient{intents: intents, publishableKey: publishableKey, webhookSecret: webhookSecret}
}

func (s *StripeClient) CreateIntent(ctx context.Context, amountMinor int64, currency string, metadata map[string]string) (*entity.PaymentIntent, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amountMinor),
		Currency: stripe.String(currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.Context = ctx
	for k, v := range metadata {
		params.AddMetadata(k, v)
	}

	pi, err := s.intents.New(params)
	if err != nil {
		return nil, classifyStripeError(err)
	}
	return &entity.PaymentIntent{
		ID:             pi.ID,
		ClientSecret:   pi.ClientSecret,
		PublishableKey: s.publishableKey,
	}, nil
}

// ParseWebhook verifies the Stripe-Signature header against the shared
// secret before decoding the event.
func (s *StripeClient) ParseWebhook(payload []byte, signatureHeader string) (*entity.PaymentEvent, error) {
	if s.webhookSecret == "" {
		return nil, entity.E(entity.KindNotConfigured, "stripe_webhook", errors.New("webhook secret is not configured"))
	}
	// Only fields stable across API versions are read, so events from an
	// account pinned to another version are accepted.
	event, err := webhook.ConstructEventWithOptions(payload, signatureHeader, s.webhookSecret, webhook.ConstructEventOptions{
		Tolerance:                webhook.DefaultTolerance,
		IgnoreAPIVersionMismatch: true,
	})
	if err != nil {
		return nil, entity.E(entity.KindSignatureInvalid, "stripe_webhook", err)
	}

	out := &entity.PaymentEvent{
		ID:       event.ID,
		Type:     string(event.Type),
		Metadata: map[string]string{},
	}
	if event.Data != nil && event.Data.Object != nil {
		if id, ok := event.Data.Object["id"].(string); ok {
			out.ObjectID = id
		}
		if amount, ok := event.Data.Object["amount"].(float64); ok {
			out.AmountMinor = int64(amount)
		}
		if currency, ok := event.Data.Object["currency"].(string); ok {
			out.Currency = currency
		}
		if md, ok := event.Data.Object["metadata"].(map[string]interface{}); ok {
			for k, v := range md {
				if sv, ok := v.(string); ok {
					out.Metadata[k] = sv
				}
			}
		}
	}
	return out, nil
}

func classifyStripeError(err error) error {
	var se *stripe.Error
	if errors.As(err, &se) {
		if se.HTTPStatusCode == http.StatusTooManyRequests || se.HTTPStatusCode >= http.StatusInternalServerError {
			return entity.E(entity.KindUpstreamUnavailable, "stripe", err)
		}
		if se.HTTPStatusCode >= http.StatusBadRequest {
			return entity.E(entity.KindUpstreamRejected, "stripe", err)
		}
	}
	return entity.E(entity.KindUpstreamUnavailable, "stripe", err)
}
