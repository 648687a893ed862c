package handler

import (
	"context"
	"sync"
	"time"

	"civicwatch/internal/domain"
	"civicwatch/internal/gateway"
	"civicwatch/internal/middleware"
	"civicwatch/internal/services"
	civic_errors "civicwatch/pkg/errors"
	"civicwatch/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	testJWTSecret     = "handler-test-jwt-secret"
	testKeySecret     = "handler-test-key-secret"
	testWebhookSecret = "handler-test-webhook-secret"
)

type stubIntentRepo struct {
	mu       sync.Mutex
	intents  map[string]*domain.PaymentIntent
	markErr  error
	fetchErr error
}

func newStubIntentRepo() *stubIntentRepo {
	return &stubIntentRepo{intents: make(map[string]*domain.PaymentIntent)}
}

func (r *stubIntentRepo) Create(ctx context.Context, intent *domain.PaymentIntent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *intent
	r.intents[intent.OrderID] = &cp
	return nil
}

func (r *stubIntentRepo) GetByOrderID(ctx context.Context, orderID string) (domain.PaymentIntent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fetchErr != nil {
		return domain.PaymentIntent{}, r.fetchErr
	}
	intent, ok := r.intents[orderID]
	if !ok {
		return domain.PaymentIntent{}, civic_errors.ErrNotFound
	}
	return *intent, nil
}

func (r *stubIntentRepo) GetByPaymentID(ctx context.Context, paymentID string) (domain.PaymentIntent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, intent := range r.intents {
		if intent.PaymentID != nil && *intent.PaymentID == paymentID {
			return *intent, nil
		}
	}
	return domain.PaymentIntent{}, civic_errors.ErrNotFound
}

func (r *stubIntentRepo) MarkSucceeded(ctx context.Context, orderID, paymentID string) (domain.Transition, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.markErr != nil {
		return "", r.markErr
	}
	intent, ok := r.intents[orderID]
	if !ok {
		return "", civic_errors.ErrNotFound
	}
	if intent.Status == domain.PaymentSucceeded {
		return domain.TransitionAlreadySucceeded, nil
	}
	intent.Status = domain.PaymentSucceeded
	if paymentID != "" {
		intent.PaymentID = &paymentID
	}
	return domain.TransitionPerformed, nil
}

type stubOrders struct {
	mu  sync.Mutex
	seq int
}

func (o *stubOrders) CreateOrder(ctx context.Context, amount int64, currency, receipt string, notes map[string]interface{}) (string, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.seq++
	return "order_handler_" + uuid.NewString()[:8], nil
}

type nopDispatcher struct {
	mu    sync.Mutex
	calls int
}

func (d *nopDispatcher) Dispatch(ctx context.Context, intent domain.PaymentIntent, notes gateway.Notes) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.calls++
	return nil
}

type stubRTIRepo struct {
	mu   sync.Mutex
	rtis map[uuid.UUID]*domain.RTIRequest
}

func newStubRTIRepo() *stubRTIRepo {
	return &stubRTIRepo{rtis: make(map[uuid.UUID]*domain.RTIRequest)}
}

func (r *stubRTIRepo) Create(ctx context.Context, req *domain.RTIRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *req
	r.rtis[req.ID] = &cp
	return nil
}

func (r *stubRTIRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.RTIRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	req, ok := r.rtis[id]
	if !ok {
		return domain.RTIRequest{}, civic_errors.ErrNotFound
	}
	return *req, nil
}

func (r *stubRTIRepo) GetLatestDraft(ctx context.Context, userID uuid.UUID, createdAfter time.Time) (domain.RTIRequest, error) {
	return domain.RTIRequest{}, civic_errors.ErrNotFound
}

func (r *stubRTIRepo) MarkPaid(ctx context.Context, id uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	req, ok := r.rtis[id]
	if !ok {
		return false, civic_errors.ErrNotFound
	}
	if req.Status != domain.RTIDraft {
		return false, nil
	}
	req.Status = domain.RTIPaid
	return true, nil
}

func (r *stubRTIRepo) SetDocumentURL(ctx context.Context, id uuid.UUID, url string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	req, ok := r.rtis[id]
	if !ok {
		return civic_errors.ErrNotFound
	}
	req.DocumentURL = &url
	return nil
}

type handlerFixture struct {
	router  *gin.Engine
	intents *stubIntentRepo
	rtis    *stubRTIRepo
	payment *services.PaymentService
}

func newHandlerFixture() *handlerFixture {
	gin.SetMode(gin.TestMode)

	intents := newStubIntentRepo()
	rtis := newStubRTIRepo()
	verifier := gateway.NewVerifier(testKeySecret, testWebhookSecret)
	log := logger.New(logger.DevelopmentMode)
	payment := services.NewPaymentService(intents, &stubOrders{}, verifier, &nopDispatcher{}, log)
	rtiSvc := services.NewRTIService(rtis, payment)

	paymentHandler := NewPaymentHandler(payment)
	rtiHandler := NewRTIHandler(rtiSvc)

	router := gin.New()
	v1 := router.Group("/v1")
	v1.POST("/payments/webhook", paymentHandler.Webhook)

	authed := v1.Group("")
	authed.Use(middleware.AuthMiddleware(testJWTSecret))
	authed.POST("/payments/verify", paymentHandler.Verify)
	authed.POST("/rti", rtiHandler.Create)
	authed.GET("/rti/:id", rtiHandler.Get)
	authed.GET("/rti/:id/document", rtiHandler.Document)

	return &handlerFixture{router: router, intents: intents, rtis: rtis, payment: payment}
}

func bearerToken(userID uuid.UUID) string {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": userID.String(),
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(testJWTSecret))
	if err != nil {
		panic(err)
	}
	return "Bearer " + signed
}
