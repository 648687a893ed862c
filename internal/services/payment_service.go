package services

import (
	"context"
	"errors"

	"civicwatch/internal/domain"
	"civicwatch/internal/gateway"
	"civicwatch/internal/repository"
	civic_errors "civicwatch/pkg/errors"
	"civicwatch/pkg/logger"

	"github.com/google/uuid"
)

// Task prices in paise.
const (
	PriceComplaintFiling int64 = 9900
	PriceRTIDrafting     int64 = 1100
	PriceDeveloperAPIPro int64 = 49900
)

// Dispatcher routes a succeeded payment to its fulfillment handler.
// Implemented by FulfillmentService; an interface here so the
// confirmation paths can be tested without side effects.
type Dispatcher interface {
	Dispatch(ctx context.Context, intent domain.PaymentIntent, notes gateway.Notes) error
}

// PaymentService owns the confirmation pipeline: intent creation
// against the gateway, and the two racing confirmation paths. Both
// paths funnel through the repository's conditional transition, and
// only the caller that performed the transition dispatches fulfillment.
type PaymentService struct {
	intents    repository.PaymentIntentRepository
	orders     gateway.OrderCreator
	verifier   *gateway.Verifier
	dispatcher Dispatcher
	log        *logger.Logger
}

func NewPaymentService(
	intents repository.PaymentIntentRepository,
	orders gateway.OrderCreator,
	verifier *gateway.Verifier,
	dispatcher Dispatcher,
	log *logger.Logger,
) *PaymentService {
	return &PaymentService{
		intents:    intents,
		orders:     orders,
		verifier:   verifier,
		dispatcher: dispatcher,
		log:        log,
	}
}

// CreateIntent requests a gateway order and persists the pending
// intent. Gateway failure fails the whole operation: no order, no row.
func (s *PaymentService) CreateIntent(ctx context.Context, userID uuid.UUID, taskType domain.TaskType, paymentType domain.PaymentType, amount int64, notes map[string]interface{}) (domain.PaymentIntent, error) {
	receipt := uuid.NewString()
	orderID, err := s.orders.CreateOrder(ctx, amount, "INR", receipt, notes)
	if err != nil {
		return domain.PaymentIntent{}, err
	}

	intent := domain.PaymentIntent{
		ID:          uuid.New(),
		UserID:      userID,
		OrderID:     orderID,
		PaymentType: paymentType,
		TaskType:    taskType,
		Amount:      amount,
		Currency:    "INR",
		Status:      domain.PaymentPending,
	}
	if err := s.intents.Create(ctx, &intent); err != nil {
		return domain.PaymentIntent{}, err
	}
	return intent, nil
}

type VerifyInput struct {
	OrderID   string
	PaymentID string
	Signature string
}

// Verify handles the synchronous browser callback after checkout.
// Idempotent: an intent that already succeeded (the webhook won the
// race) returns success without re-verifying or re-dispatching.
func (s *PaymentService) Verify(ctx context.Context, userID uuid.UUID, in VerifyInput) error {
	intent, err := s.intents.GetByOrderID(ctx, in.OrderID)
	if err != nil {
		return err
	}
	if intent.UserID != userID {
		return civic_errors.ErrForbidden
	}
	if intent.Status == domain.PaymentSucceeded {
		return nil
	}

	if err := s.verifier.VerifyCheckout(in.OrderID, in.PaymentID, in.Signature); err != nil {
		s.log.Warnf("rejected checkout callback for order %s: %s", in.OrderID, err.Error())
		return err
	}

	transition, err := s.intents.MarkSucceeded(ctx, in.OrderID, in.PaymentID)
	if err != nil {
		return err
	}
	if transition == domain.TransitionPerformed {
		intent.Status = domain.PaymentSucceeded
		intent.PaymentID = &in.PaymentID
		s.dispatch(ctx, intent, nil)
	}
	return nil
}

// HandleWebhook handles an asynchronous gateway delivery. Signature
// verification over the raw body is the only authentication. Once the
// body verifies and parses, the delivery is acknowledged even when no
// local record matches, so the gateway stops retrying.
func (s *PaymentService) HandleWebhook(ctx context.Context, body []byte, signature string) error {
	if err := s.verifier.VerifyWebhook(body, signature); err != nil {
		s.log.Warnf("rejected webhook delivery: %s", err.Error())
		return err
	}

	event, err := gateway.ParseWebhook(body)
	if err != nil {
		return civic_errors.ErrInvalidInput
	}

	if event.Event != gateway.EventPaymentCaptured && event.Event != gateway.EventOrderPaid {
		return nil
	}

	orderID := event.OrderID()
	paymentID := event.PaymentID()
	if orderID == "" && paymentID == "" {
		s.log.Warnf("webhook %s carried no identifiers", event.Event)
		return nil
	}

	var intent domain.PaymentIntent
	if orderID != "" {
		intent, err = s.intents.GetByOrderID(ctx, orderID)
	} else {
		intent, err = s.intents.GetByPaymentID(ctx, paymentID)
	}
	if err != nil {
		if errors.Is(err, civic_errors.ErrNotFound) {
			// May arrive before the local order-creation commit; the
			// gateway will redeliver, or the client path will confirm.
			s.log.Warnf("webhook %s for unknown order %q payment %q", event.Event, orderID, paymentID)
			return nil
		}
		return err
	}

	transition, err := s.intents.MarkSucceeded(ctx, intent.OrderID, paymentID)
	if err != nil {
		if errors.Is(err, civic_errors.ErrNotFound) {
			return nil
		}
		return err
	}
	if transition == domain.TransitionPerformed {
		intent.Status = domain.PaymentSucceeded
		if paymentID != "" {
			intent.PaymentID = &paymentID
		}
		s.dispatch(ctx, intent, event.Notes())
	}
	return nil
}

// dispatch runs fulfillment fire-and-log. The payment genuinely
// succeeded whether or not the side effect could be delivered, so a
// fulfillment failure never surfaces as a confirmation failure.
func (s *PaymentService) dispatch(ctx context.Context, intent domain.PaymentIntent, notes gateway.Notes) {
	if err := s.dispatcher.Dispatch(ctx, intent, notes); err != nil {
		s.log.Errorf("fulfillment failed for order %s (task %s): %s", intent.OrderID, intent.TaskType, err.Error())
	}
}
