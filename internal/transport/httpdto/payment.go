package httpdto

// VerifyPaymentRequest is the browser's checkout callback payload.
type VerifyPaymentRequest struct {
	OrderID   string `json:"orderId" binding:"required"`
	PaymentID string `json:"paymentId" binding:"required"`
	Signature string `json:"signature" binding:"required"`
}

// CheckoutDTO tells the client what to hand the checkout widget.
type CheckoutDTO struct {
	OrderID  string `json:"order_id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

// WebhookAck is returned to the gateway for every delivery that passed
// signature verification and parsing, matched record or not.
type WebhookAck struct {
	Received bool `json:"received"`
}
