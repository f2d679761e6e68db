package client

import (
	"context"
	"fmt"
	"sphere-core/internal/domain/entity"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v76"
)

const testWebhookSecret = "whsec_test"

type fakeIntentCreator struct {
	got *stripe.PaymentIntentParams
}

func (f *fakeIntentCreator) New(params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error) {
	f.got = params
	return &stripe.PaymentIntent{ID: "pi_1", ClientSecret: "pi_1_secret_x"}, nil
}

func signedStripeHeader(payload []byte, secret string, ts time.Time) string {
	unix := ts.Unix()
	return fmt.Sprintf("t=%d,v1=%s", unix, sign(secret, fmt.Sprintf("%d.%s", unix, payload)))
}

func stripeEvent(id, typ, objectID string) []byte {
	return stripeEventAt(stripe.APIVersion, id, typ, objectID)
}

func stripeEventAt(apiVersion, id, typ, objectID string) []byte {
	return []byte(fmt.Sprintf(`{
  "id": %q,
  "object": "event",
  "api_version": %q,
  "type": %q,
  "data": {"object": {"id": %q, "object": "payment_intent", "amount": 2900, "currency": "usd", "metadata": {"plan_name": "growth", "user_email": "a@b.co"}}}
}`, id, apiVersion, typ, objectID))
}

func TestStripeCreateIntent(t *testing.T) {
	fake := &fakeIntentCreator{}
	c := NewStripeClientFromIntents(fake, "pk_test", testWebhookSecret)

	intent, err := c.CreateIntent(context.Background(), 2900, "usd", map[string]string{"plan_name": "starter"})
	require.NoError(t, err)
	assert.Equal(t, &entity.PaymentIntent{ID: "pi_1", ClientSecret: "pi_1_secret_x", PublishableKey: "pk_test"}, intent)

	require.NotNil(t, fake.got)
	assert.Equal(t, int64(2900), *fake.got.Amount)
	assert.Equal(t, "usd", *fake.got.Currency)
	assert.True(t, *fake.got.AutomaticPaymentMethods.Enabled)
	assert.Equal(t, "starter", fake.got.Metadata["plan_name"])
}

func TestStripeParseWebhook(t *testing.T) {
	c := NewStripeClientFromIntents(nil, "pk_test", testWebhookSecret)
	payload := stripeEvent("evt_1", entity.EventPaymentSucceeded, "pi_1")

	event, err := c.ParseWebhook(payload, signedStripeHeader(payload, testWebhookSecret, time.Now()))
	require.NoError(t, err)
	assert.Equal(t, "evt_1", event.ID)
	assert.Equal(t, entity.EventPaymentSucceeded, event.Type)
	assert.Equal(t, "pi_1", event.ObjectID)
	assert.Equal(t, int64(2900), event.AmountMinor)
	assert.Equal(t, "usd", event.Currency)
	assert.Equal(t, "growth", event.Metadata["plan_name"])
}

func TestStripeParseWebhookAcceptsOtherAPIVersions(t *testing.T) {
	c := NewStripeClientFromIntents(nil, "pk_test", testWebhookSecret)

	for _, version := range []string{"2020-08-27", "2024-06-20"} {
		t.Run(version, func(t *testing.T) {
			payload := stripeEventAt(version, "evt_old", entity.EventPaymentSucceeded, "pi_7")

			event, err := c.ParseWebhook(payload, signedStripeHeader(payload, testWebhookSecret, time.Now()))
			require.NoError(t, err)
			assert.Equal(t, "evt_old", event.ID)
			assert.Equal(t, "pi_7", event.ObjectID)
			assert.Equal(t, "a@b.co", event.Metadata["user_email"])
		})
	}
}

func TestStripeParseWebhookRejectsForgery(t *testing.T) {
	c := NewStripeClientFromIntents(nil, "pk_test", testWebhookSecret)
	payload := stripeEvent("evt_1", entity.EventPaymentSucceeded, "pi_1")

	tests := map[string]string{
		"wrong secret": signedStripeHeader(payload, "whsec_other", time.Now()),
		"stale":        signedStripeHeader(payload, testWebhookSecret, time.Now().Add(-time.Hour)),
		"garbage":      "nonsense",
		"missing":      "",
	}
	for name, header := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := c.ParseWebhook(payload, header)
			require.Error(t, err)
			assert.Equal(t, entity.KindSignatureInvalid, entity.KindOf(err))
		})
	}
}

func TestStripeParseWebhookWithoutSecret(t *testing.T) {
	c := NewStripeClientFromIntents(nil, "pk_test", "")
	_, err := c.ParseWebhook([]byte("{}"), "t=1,v1=00")
	assert.Equal(t, entity.KindNotConfigured, entity.KindOf(err))
}

func TestClassifyStripeError(t *testing.T) {
	assert.Equal(t, entity.KindUpstreamRejected, entity.KindOf(classifyStripeError(&stripe.Error{HTTPStatusCode: 402})))
	assert.Equal(t, entity.KindUpstreamUnavailable, entity.KindOf(classifyStripeError(&stripe.Error{HTTPStatusCode: 429})))
	assert.Equal(t, entity.KindUpstreamUnavailable, entity.KindOf(classifyStripeError(&stripe.Error{HTTPStatusCode: 500})))
}
