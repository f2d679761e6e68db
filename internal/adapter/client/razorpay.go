package client

import (
	"context"
	"fmt"
	"sphere-core/internal/domain/entity"
	"strings"

	razorpay "github.com/razorpay/razorpay-go"
	"github.com/razorpay/razorpay-go/utils"
)

// OrderCreator is the slice of razorpay-go's order resource used here.
type OrderCreator interface {
	Create(data map[string]interface{}, extraHeaders map[string]string) (map[string]interface{}, error)
}

type RazorpayClient struct {
	orders    OrderCreator
	keyID     string
	keySecret string
}

func NewRazorpayClient(keyID, keySecret string) (*RazorpayClient, error) {
	if keyID == "" || keySecret == "" {
		return nil, entity.E(entity.KindNotConfigured, "razorpay", entity.ErrGatewayNotReady)
	}
	rc := razorpay.NewClient(keyID, keySecret)
	return &RazorpayClient{orders: rc.Order, keyID: keyID, keySecret: keySecret}, nil
}

func NewRazorpayClientFromOrders(orders OrderCreator, keyID, keySecret string) *RazorpayClient {
	return &RazorpayClient{orders: orders, keyID: keyID, keySecret: keySecret}
}

func (r *RazorpayClient) KeyID() string { return r.keyID }

// CreateOrder takes the amount in paise. The SDK call is not
// context-aware; ctx is checked before the call is made.
func (r *RazorpayClient) CreateOrder(ctx context.Context, amountMinor int64, currency, receipt string, notes map[string]string) (*entity.Order, error) {
	if err := ctx.Err(); err != nil {
		return nil, entity.E(entity.KindUpstreamUnavailable, "razorpay", err)
	}

	noteMap := make(map[string]interface{}, len(notes))
	for k, v := range notes {
		noteMap[k] = v
	}
	data := map[string]interface{}{
		"amount":   amountMinor,
		"currency": currency,
		"receipt":  receipt,
		"notes":    noteMap,
	}

	body, err := r.orders.Create(data, nil)
	if err != nil {
		return nil, classifyRazorpayError(err)
	}

	order := &entity.Order{
		Amount:   amountMinor,
		Currency: currency,
	}
	if id, ok := body["id"].(string); ok {
		order.ID = id
	}
	if amt, ok := body["amount"].(float64); ok {
		order.Amount = int64(amt)
	}
	if cur, ok := body["currency"].(string); ok {
		order.Currency = cur
	}
	if order.ID == "" {
		return nil, entity.E(entity.KindUpstreamUnavailable, "razorpay", fmt.Errorf("order response carried no id"))
	}
	return order, nil
}

// VerifySignature checks HMAC-SHA256(order_id|payment_id) against signature
// using the key secret.
func (r *RazorpayClient) VerifySignature(orderID, paymentID, signature string) bool {
	params := map[string]interface{}{
		"razorpay_order_id":   orderID,
		"razorpay_payment_id": paymentID,
	}
	return utils.VerifyPaymentSignature(params, signature, r.keySecret)
}

// classifyRazorpayError: the SDK returns typed errors whose text carries the
// vendor's error code.
func classifyRazorpayError(err error) error {
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "bad_request"), strings.Contains(msg, "authentication"):
		return entity.E(entity.KindUpstreamRejected, "razorpay", err)
	default:
		return entity.E(entity.KindUpstreamUnavailable, "razorpay", err)
	}
}
