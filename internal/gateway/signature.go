package gateway

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"

	civic_errors "civicwatch/pkg/errors"
)

// Verifier authenticates inbound payment confirmations. Two schemes,
// two secrets, never interchangeable:
//
//   - checkout: the browser returns (orderID, paymentID, signature);
//     the signed bytes are orderID + "|" + paymentID, keyed by the API
//     key secret.
//   - webhook: the gateway POSTs a JSON body plus a signature header;
//     the signed bytes are the raw body exactly as received, keyed by
//     the webhook secret. Verification happens before parsing so that
//     canonicalization can never diverge from what was signed.
//
// Both signatures are lowercase hex HMAC-SHA256.
type Verifier struct {
	keySecret     []byte
	webhookSecret []byte
}

func NewVerifier(keySecret, webhookSecret string) *Verifier {
	return &Verifier{
		keySecret:     []byte(keySecret),
		webhookSecret: []byte(webhookSecret),
	}
}

// VerifyCheckout validates a client-callback confirmation.
func (v *Verifier) VerifyCheckout(orderID, paymentID, signature string) error {
	return verify(v.keySecret, []byte(orderID+"|"+paymentID), signature)
}

// VerifyWebhook validates a webhook delivery over the untouched body
// bytes.
func (v *Verifier) VerifyWebhook(body []byte, signature string) error {
	return verify(v.webhookSecret, body, signature)
}

func verify(secret, signed []byte, signature string) error {
	provided, err := hex.DecodeString(signature)
	if err != nil {
		return civic_errors.ErrInvalidSignature
	}

	mac := hmac.New(sha256.New, secret)
	mac.Write(signed)
	if !hmac.Equal(mac.Sum(nil), provided) {
		return civic_errors.ErrInvalidSignature
	}
	return nil
}

// Sign computes the checkout-scheme signature. Test helper; the real
// signer is the gateway's checkout widget.
func (v *Verifier) Sign(orderID, paymentID string) string {
	mac := hmac.New(sha256.New, v.keySecret)
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}
