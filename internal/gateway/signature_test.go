package gateway

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"testing"

	civic_errors "civicwatch/pkg/errors"
)

func TestVerifyCheckout(t *testing.T) {
	v := NewVerifier("key-secret", "webhook-secret")

	sig := v.Sign("order_abc", "pay_xyz")
	if err := v.VerifyCheckout("order_abc", "pay_xyz", sig); err != nil {
		t.Fatalf("valid signature rejected: %v", err)
	}

	cases := map[string]struct {
		orderID, paymentID, signature string
	}{
		"tampered order":   {"order_abd", "pay_xyz", sig},
		"tampered payment": {"order_abc", "pay_xyy", sig},
		"truncated":        {"order_abc", "pay_xyz", sig[:len(sig)-2]},
		"non-hex":          {"order_abc", "pay_xyz", "zz" + sig[2:]},
		"empty":            {"order_abc", "pay_xyz", ""},
	}
	for name, tc := range cases {
		err := v.VerifyCheckout(tc.orderID, tc.paymentID, tc.signature)
		if !errors.Is(err, civic_errors.ErrInvalidSignature) {
			t.Errorf("%s: expected ErrInvalidSignature, got %v", name, err)
		}
	}
}

func TestVerifyWebhook(t *testing.T) {
	v := NewVerifier("key-secret", "webhook-secret")
	body := []byte(`{"event":"payment.captured","payload":{}}`)

	mac := hmac.New(sha256.New, []byte("webhook-secret"))
	mac.Write(body)
	sig := hex.EncodeToString(mac.Sum(nil))

	if err := v.VerifyWebhook(body, sig); err != nil {
		t.Fatalf("valid signature rejected: %v", err)
	}

	// A single altered body byte must invalidate the signature.
	altered := append([]byte(nil), body...)
	altered[0] = ' '
	if err := v.VerifyWebhook(altered, sig); !errors.Is(err, civic_errors.ErrInvalidSignature) {
		t.Fatalf("expected ErrInvalidSignature for altered body, got %v", err)
	}

	if err := v.VerifyWebhook(body, "not-hex"); !errors.Is(err, civic_errors.ErrInvalidSignature) {
		t.Fatalf("expected ErrInvalidSignature for non-hex signature, got %v", err)
	}
}

// The two schemes use different secrets. A signature computed under one
// must never verify under the other, even over identical bytes.
func TestSchemesNotInterchangeable(t *testing.T) {
	v := NewVerifier("key-secret", "webhook-secret")
	payload := "order_abc|pay_xyz"

	checkoutSig := v.Sign("order_abc", "pay_xyz")
	if err := v.VerifyWebhook([]byte(payload), checkoutSig); !errors.Is(err, civic_errors.ErrInvalidSignature) {
		t.Fatalf("checkout signature accepted by the webhook scheme: %v", err)
	}

	mac := hmac.New(sha256.New, []byte("webhook-secret"))
	mac.Write([]byte(payload))
	webhookSig := hex.EncodeToString(mac.Sum(nil))
	if err := v.VerifyCheckout("order_abc", "pay_xyz", webhookSig); !errors.Is(err, civic_errors.ErrInvalidSignature) {
		t.Fatalf("webhook signature accepted by the checkout scheme: %v", err)
	}
}

func TestVerifyWebhook_SameSecretsStillDistinct(t *testing.T) {
	// Operators sometimes configure the same string for both secrets.
	// Verification must still work per scheme.
	v := NewVerifier("shared", "shared")
	if err := v.VerifyCheckout("o", "p", v.Sign("o", "p")); err != nil {
		t.Fatalf("valid signature rejected: %v", err)
	}
}
