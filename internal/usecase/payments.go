package usecase

import (
	"context"
	"fmt"
	"sphere-core/internal/domain/entity"
	"sphere-core/internal/domain/repository"
	"sphere-core/internal/metrics"
	"strings"

	"go.uber.org/zap"
)

const (
	GatewayRazorpay = "razorpay"
	GatewayStripe   = "stripe"
)

// PaymentDeps are the collaborators of PaymentService. Any of them may be
// nil; the matching routes then fail with KindNotConfigured.
type PaymentDeps struct {
	Razorpay      repository.OrderGateway
	Stripe        repository.IntentGateway
	Subscriptions repository.SubscriptionStore
	Deduper       repository.EventDeduper
}

type PaymentService struct {
	deps PaymentDeps
	log  *zap.Logger
}

func NewPaymentService(deps PaymentDeps, log *zap.Logger) *PaymentService {
	if log == nil {
		log = zap.NewNop()
	}
	return &PaymentService{deps: deps, log: log}
}

// CreateRazorpayOrder converts rupees to paise and opens an order.
func (s *PaymentService) CreateRazorpayOrder(ctx context.Context, req entity.PaymentRequest) (*entity.Order, error) {
	const op = "create_razorpay_order"
	if s.deps.Razorpay == nil {
		return nil, entity.E(entity.KindNotConfigured, op, entity.ErrGatewayNotReady)
	}

	currency := orDefault(req.Currency, "INR")
	receipt := fmt.Sprintf("receipt_%s_%s", req.PlanName, req.UserEmail)
	notes := map[string]string{
		"plan_name":  req.PlanName,
		"user_email": req.UserEmail,
	}

	order, err := s.deps.Razorpay.CreateOrder(ctx, req.Amount*100, currency, receipt, notes)
	if err != nil {
		metrics.PaymentEventsTotal.WithLabelValues(GatewayRazorpay, "order_failed").Inc()
		return nil, wrapKind(op, err)
	}
	order.KeyID = s.deps.Razorpay.KeyID()
	metrics.PaymentEventsTotal.WithLabelValues(GatewayRazorpay, "order_created").Inc()
	s.log.Info("razorpay order created", zap.String("order_id", order.ID), zap.String("plan", req.PlanName))
	return order, nil
}

// VerifyRazorpayPayment rejects tampered tokens with KindSignatureInvalid.
func (s *PaymentService) VerifyRazorpayPayment(_ context.Context, req entity.RazorpayVerifyRequest) error {
	const op = "verify_razorpay_payment"
	if s.deps.Razorpay == nil {
		return entity.E(entity.KindNotConfigured, op, entity.ErrGatewayNotReady)
	}
	if !s.deps.Razorpay.VerifySignature(req.OrderID, req.PaymentID, req.Signature) {
		metrics.PaymentEventsTotal.WithLabelValues(GatewayRazorpay, "signature_rejected").Inc()
		s.log.Warn("razorpay signature rejected", zap.String("order_id", req.OrderID))
		return entity.E(entity.KindSignatureInvalid, op, entity.ErrInvalidSignature)
	}
	metrics.PaymentEventsTotal.WithLabelValues(GatewayRazorpay, "payment_verified").Inc()
	return nil
}

// CreateStripeIntent converts dollars to cents and opens a payment intent.
func (s *PaymentService) CreateStripeIntent(ctx context.Context, req entity.PaymentRequest) (*entity.PaymentIntent, error) {
	const op = "create_stripe_intent"
	if s.deps.Stripe == nil {
		return nil, entity.E(entity.KindNotConfigured, op, entity.ErrGatewayNotReady)
	}

	metadata := map[string]string{
		"plan_name":  req.PlanName,
		"user_email": req.UserEmail,
	}
	intent, err := s.deps.Stripe.CreateIntent(ctx, req.Amount*100, strings.ToLower(orDefault(req.Currency, "usd")), metadata)
	if err != nil {
		metrics.PaymentEventsTotal.WithLabelValues(GatewayStripe, "intent_failed").Inc()
		return nil, wrapKind(op, err)
	}
	metrics.PaymentEventsTotal.WithLabelValues(GatewayStripe, "intent_created").Inc()
	return intent, nil
}

// HandleStripeWebhook verifies, de-duplicates and dispatches one event. An
// event whose dispatch fails is released so the gateway's redelivery is
// applied.
func (s *PaymentService) HandleStripeWebhook(ctx context.Context, payload []byte, signatureHeader string) error {
	const op = "stripe_webhook"
	if s.deps.Stripe == nil {
		return entity.E(entity.KindNotConfigured, op, entity.ErrGatewayNotReady)
	}

	event, err := s.deps.Stripe.ParseWebhook(payload, signatureHeader)
	if err != nil {
		metrics.PaymentEventsTotal.WithLabelValues(GatewayStripe, "signature_rejected").Inc()
		return wrapKind(op, err)
	}

	claimed := false
	if s.deps.Deduper != nil {
		first, err := s.deps.Deduper.FirstDelivery(ctx, GatewayStripe, event.ID)
		switch {
		case err != nil:
			// Dispatch is idempotent per subscription row; carry on.
			s.log.Warn("webhook dedupe unavailable", zap.String("event_id", event.ID), zap.Error(err))
		case !first:
			s.log.Info("duplicate webhook ignored", zap.String("event_id", event.ID), zap.String("type", event.Type))
			return nil
		default:
			claimed = true
		}
	}

	metrics.PaymentEventsTotal.WithLabelValues(GatewayStripe, event.Type).Inc()
	if err := s.dispatch(ctx, op, event); err != nil {
		if claimed {
			if ferr := s.deps.Deduper.Forget(context.WithoutCancel(ctx), GatewayStripe, event.ID); ferr != nil {
				s.log.Error("webhook release failed", zap.String("event_id", event.ID), zap.Error(ferr))
			}
		}
		return err
	}
	return nil
}

func (s *PaymentService) dispatch(ctx context.Context, op string, event *entity.PaymentEvent) error {
	switch event.Type {
	case entity.EventPaymentSucceeded:
		return s.activateSubscription(ctx, op, event)
	case entity.EventPaymentFailed:
		s.log.Warn("stripe payment failed",
			zap.String("intent_id", event.ObjectID),
			zap.String("plan", event.Metadata["plan_name"]),
			zap.String("email", event.Metadata["user_email"]),
		)
	case entity.EventSubscriptionDeleted:
		return s.setSubscriptionStatus(ctx, op, event, entity.SubscriptionCancelled)
	default:
		s.log.Debug("unhandled webhook event", zap.String("type", event.Type))
	}
	return nil
}

// activateSubscription records the plan paid for by a succeeded intent,
// keyed by the intent id.
func (s *PaymentService) activateSubscription(ctx context.Context, op string, event *entity.PaymentEvent) error {
	if s.deps.Subscriptions == nil {
		return nil
	}
	created, err := s.deps.Subscriptions.ActivateSubscription(ctx, entity.SubscriptionActivation{
		Gateway:   GatewayStripe,
		GatewayID: event.ObjectID,
		PlanName:  event.Metadata["plan_name"],
		UserEmail: event.Metadata["user_email"],
		Amount:    float64(event.AmountMinor) / 100,
		Currency:  event.Currency,
	})
	if err != nil {
		return entity.E(entity.KindInternal, op, err)
	}
	s.log.Info("subscription activated",
		zap.String("event_id", event.ID),
		zap.String("gateway_id", event.ObjectID),
		zap.String("plan", event.Metadata["plan_name"]),
		zap.Bool("created", created),
	)
	return nil
}

func (s *PaymentService) setSubscriptionStatus(ctx context.Context, op string, event *entity.PaymentEvent, status string) error {
	if s.deps.Subscriptions == nil {
		return nil
	}
	n, err := s.deps.Subscriptions.UpdateSubscriptionStatus(ctx, GatewayStripe, event.ObjectID, status)
	if err != nil {
		return entity.E(entity.KindInternal, op, err)
	}
	s.log.Info("subscription status updated",
		zap.String("event_id", event.ID),
		zap.String("gateway_id", event.ObjectID),
		zap.String("status", status),
		zap.Int64("rows", n),
	)
	return nil
}

// wrapKind keeps an adapter's classification and adds the operation.
func wrapKind(op string, err error) error {
	return &entity.Error{Kind: entity.KindOf(err), Op: op, Err: err}
}
