package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"civicwatch/internal/domain"

	"github.com/google/uuid"
)

func seedRTI(f *handlerFixture, userID uuid.UUID, status domain.RTIStatus) domain.RTIRequest {
	rti := domain.RTIRequest{
		ID:       uuid.New(),
		UserID:   userID,
		Subject:  "Ward works",
		BodyText: "Please provide the list of works sanctioned for ward 7.",
		Status:   status,
	}
	f.rtis.Create(context.Background(), &rti)
	return rti
}

func TestCreateRTIEndpoint(t *testing.T) {
	f := newHandlerFixture()
	userID := uuid.New()

	body := []byte(`{"subject":"Road contracts","authority":"PWD Karnataka","body_text":"Please provide contract copies."}`)
	rec := doJSON(f, http.MethodPost, "/v1/rti", bearerToken(userID), body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			RTI struct {
				ID     string `json:"id"`
				Status string `json:"status"`
			} `json:"rti"`
			Checkout struct {
				OrderID  string `json:"order_id"`
				Amount   int64  `json:"amount"`
				Currency string `json:"currency"`
			} `json:"checkout"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unparseable response: %v", err)
	}
	if !resp.Success || resp.Data.RTI.Status != "DRAFT" {
		t.Fatalf("unexpected response %s", rec.Body.String())
	}
	if resp.Data.Checkout.OrderID == "" || resp.Data.Checkout.Amount != 1100 || resp.Data.Checkout.Currency != "INR" {
		t.Fatalf("unexpected checkout block %+v", resp.Data.Checkout)
	}

	// The pending intent must exist under the returned order id.
	intent, err := f.intents.GetByOrderID(context.Background(), resp.Data.Checkout.OrderID)
	if err != nil {
		t.Fatalf("no intent for returned order: %v", err)
	}
	if intent.Status != domain.PaymentPending {
		t.Fatalf("expected PENDING intent, got %s", intent.Status)
	}
}

func TestCreateRTIEndpoint_MissingSubject(t *testing.T) {
	f := newHandlerFixture()
	rec := doJSON(f, http.MethodPost, "/v1/rti", bearerToken(uuid.New()),
		[]byte(`{"body_text":"text"}`))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestRTIDocumentEndpoint_PaymentRequiredForDraft(t *testing.T) {
	f := newHandlerFixture()
	userID := uuid.New()
	rti := seedRTI(f, userID, domain.RTIDraft)

	rec := doJSON(f, http.MethodGet, "/v1/rti/"+rti.ID.String()+"/document", bearerToken(userID), nil)
	if rec.Code != http.StatusPaymentRequired {
		t.Fatalf("expected 402, got %d: %s", rec.Code, rec.Body.String())
	}
	if code := errorCodeOf(t, rec.Body.Bytes()); code != "PAYMENT_REQUIRED" {
		t.Fatalf("expected PAYMENT_REQUIRED, got %s", code)
	}
}

func TestRTIDocumentEndpoint_ServesPaidDocument(t *testing.T) {
	f := newHandlerFixture()
	userID := uuid.New()
	rti := seedRTI(f, userID, domain.RTIPaid)

	rec := doJSON(f, http.MethodGet, "/v1/rti/"+rti.ID.String()+"/document", bearerToken(userID), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Fatalf("expected application/pdf, got %s", ct)
	}
	if !bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF")) {
		t.Fatal("response body is not a PDF")
	}
}

func TestRTIDocumentEndpoint_ForeignRequestForbidden(t *testing.T) {
	f := newHandlerFixture()
	rti := seedRTI(f, uuid.New(), domain.RTIPaid)

	rec := doJSON(f, http.MethodGet, "/v1/rti/"+rti.ID.String()+"/document", bearerToken(uuid.New()), nil)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestRTIDocumentEndpoint_UnknownID(t *testing.T) {
	f := newHandlerFixture()
	rec := doJSON(f, http.MethodGet, "/v1/rti/"+uuid.NewString()+"/document", bearerToken(uuid.New()), nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestRTIGetEndpoint(t *testing.T) {
	f := newHandlerFixture()
	userID := uuid.New()
	rti := seedRTI(f, userID, domain.RTIDraft)

	rec := doJSON(f, http.MethodGet, "/v1/rti/"+rti.ID.String(), bearerToken(userID), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Data struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil || resp.Data.ID != rti.ID.String() {
		t.Fatalf("unexpected body %s", rec.Body.String())
	}
}
