package api

import (
	"sphere-core/internal/domain/entity"
	"sphere-core/internal/usecase"

	"github.com/gofiber/fiber/v2"
)

type PaymentHandler struct {
	payments *usecase.PaymentService
}

func NewPaymentHandler(payments *usecase.PaymentService) *PaymentHandler {
	return &PaymentHandler{payments: payments}
}

func (h *PaymentHandler) CreateRazorpayOrder(c *fiber.Ctx) error {
	var req entity.PaymentRequest
	if err := bind(c, "create_razorpay_order", &req); err != nil {
		return err
	}
	order, err := h.payments.CreateRazorpayOrder(c.UserContext(), req)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success":  true,
		"order_id": order.ID,
		"amount":   order.Amount,
		"currency": order.Currency,
		"key_id":   order.KeyID,
	})
}

func (h *PaymentHandler) VerifyRazorpayPayment(c *fiber.Ctx) error {
	var req entity.RazorpayVerifyRequest
	if err := bind(c, "verify_razorpay_payment", &req); err != nil {
		return err
	}
	if err := h.payments.VerifyRazorpayPayment(c.UserContext(), req); err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success":    true,
		"message":    "Payment verified successfully",
		"payment_id": req.PaymentID,
	})
}

func (h *PaymentHandler) CreateStripeIntent(c *fiber.Ctx) error {
	var req entity.PaymentRequest
	if err := bind(c, "create_stripe_intent", &req); err != nil {
		return err
	}
	intent, err := h.payments.CreateStripeIntent(c.UserContext(), req)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success":         true,
		"client_secret":   intent.ClientSecret,
		"publishable_key": intent.PublishableKey,
	})
}

// StripeWebhook needs the raw body; the signature covers its exact bytes.
func (h *PaymentHandler) StripeWebhook(c *fiber.Ctx) error {
	payload := append([]byte(nil), c.Body()...)
	if err := h.payments.HandleStripeWebhook(c.UserContext(), payload, c.Get("Stripe-Signature")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"status": "success"})
}
