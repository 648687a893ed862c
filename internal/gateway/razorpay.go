// Package gateway wraps the payment gateway: order creation, the two
// confirmation signature schemes, and webhook payload parsing.
package gateway

import (
	"context"

	civic_errors "civicwatch/pkg/errors"
	"civicwatch/pkg/logger"

	razorpay "github.com/razorpay/razorpay-go"
)

// OrderCreator requests a gateway order before a PaymentIntent row is
// persisted. A failure here fails the initiating request closed: no
// order, no row.
type OrderCreator interface {
	CreateOrder(ctx context.Context, amount int64, currency, receipt string, notes map[string]interface{}) (string, error)
}

type RazorpayClient struct {
	client *razorpay.Client
	log    *logger.Logger
}

func NewRazorpayClient(keyID, keySecret string, log *logger.Logger) *RazorpayClient {
	return &RazorpayClient{
		client: razorpay.NewClient(keyID, keySecret),
		log:    log,
	}
}

// CreateOrder creates a gateway order for the given amount in paise.
// The SDK call is synchronous and does not accept a context; the ctx
// parameter is kept for interface symmetry with the rest of the
// pipeline.
func (c *RazorpayClient) CreateOrder(ctx context.Context, amount int64, currency, receipt string, notes map[string]interface{}) (string, error) {
	data := map[string]interface{}{
		"amount":   amount,
		"currency": currency,
		"receipt":  receipt,
	}
	if len(notes) > 0 {
		data["notes"] = notes
	}

	order, err := c.client.Order.Create(data, nil)
	if err != nil {
		if c.log != nil {
			c.log.Errorf("gateway order creation failed: %s", err.Error())
		}
		return "", civic_errors.ErrGatewayUnavailable
	}

	orderID, ok := order["id"].(string)
	if !ok || orderID == "" {
		if c.log != nil {
			c.log.Errorf("gateway order response missing id: %v", order)
		}
		return "", civic_errors.ErrGatewayUnavailable
	}
	return orderID, nil
}
