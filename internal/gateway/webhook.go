package gateway

import (
	"encoding/json"
)

// Webhook events the pipeline acts on. All other event types are
// acknowledged and ignored to stop gateway retries.
const (
	EventPaymentCaptured = "payment.captured"
	EventOrderPaid       = "order.paid"
)

// Notes is the gateway's free-form metadata echoed back on entities.
// Initiation stamps artifact ids here so confirmation can correlate
// without falling back to recency heuristics.
type Notes map[string]string

// UnmarshalJSON tolerates the gateway's habit of sending [] instead of
// {} when no notes were set.
func (n *Notes) UnmarshalJSON(b []byte) error {
	var m map[string]string
	if err := json.Unmarshal(b, &m); err == nil {
		*n = m
		return nil
	}
	*n = nil
	return nil
}

// PaymentEntity is payload.payment.entity on payment.captured events.
type PaymentEntity struct {
	ID      string `json:"id"`
	OrderID string `json:"order_id"`
	Notes   Notes  `json:"notes"`
}

// OrderEntity is payload.order.entity on order.paid events.
type OrderEntity struct {
	ID    string `json:"id"`
	Notes Notes  `json:"notes"`
}

// WebhookEvent is the gateway's webhook envelope. Only the fields the
// pipeline reads are declared.
type WebhookEvent struct {
	Event   string `json:"event"`
	Payload struct {
		Payment struct {
			Entity *PaymentEntity `json:"entity"`
		} `json:"payment"`
		Order struct {
			Entity *OrderEntity `json:"entity"`
		} `json:"order"`
	} `json:"payload"`
}

// ParseWebhook decodes a verified webhook body. Callers must verify the
// signature over the raw bytes first.
func ParseWebhook(body []byte) (WebhookEvent, error) {
	var event WebhookEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return WebhookEvent{}, err
	}
	return event, nil
}

// OrderID extracts the order identifier, whichever entity carries it.
func (e WebhookEvent) OrderID() string {
	if e.Payload.Payment.Entity != nil && e.Payload.Payment.Entity.OrderID != "" {
		return e.Payload.Payment.Entity.OrderID
	}
	if e.Payload.Order.Entity != nil {
		return e.Payload.Order.Entity.ID
	}
	return ""
}

// PaymentID extracts the gateway payment identifier, if present.
// order.paid deliveries may not carry one.
func (e WebhookEvent) PaymentID() string {
	if e.Payload.Payment.Entity != nil {
		return e.Payload.Payment.Entity.ID
	}
	return ""
}

// Notes returns whichever entity's metadata is present.
func (e WebhookEvent) Notes() Notes {
	if e.Payload.Payment.Entity != nil && e.Payload.Payment.Entity.Notes != nil {
		return e.Payload.Payment.Entity.Notes
	}
	if e.Payload.Order.Entity != nil {
		return e.Payload.Order.Entity.Notes
	}
	return nil
}
