package services

import (
	"context"

	"civicwatch/internal/domain"
	"civicwatch/internal/render"
	"civicwatch/internal/repository"
	civic_errors "civicwatch/pkg/errors"

	"github.com/google/uuid"
)

// RTIService handles RTI draft initiation and on-demand document
// regeneration. The document endpoint renders through the same layout
// engine the fulfillment path uses, so both always produce identical
// output for the same draft.
type RTIService struct {
	rtis     repository.RTIRepository
	payments *PaymentService

	renderPDF func(string) ([]byte, error)
}

func NewRTIService(rtis repository.RTIRepository, payments *PaymentService) *RTIService {
	return &RTIService{
		rtis:      rtis,
		payments:  payments,
		renderPDF: render.GeneratePDF,
	}
}

type CreateRTIInput struct {
	Subject   string
	Authority string
	BodyText  string
}

func (s *RTIService) Create(ctx context.Context, userID uuid.UUID, in CreateRTIInput) (domain.RTIRequest, CheckoutInfo, error) {
	if in.Subject == "" {
		return domain.RTIRequest{}, CheckoutInfo{}, civic_errors.ErrInvalidInput
	}

	id := uuid.New()
	intent, err := s.payments.CreateIntent(ctx, userID, domain.TaskRTIDrafting, domain.PaymentTypeOneTime, PriceRTIDrafting, map[string]interface{}{
		"rti_id":    id.String(),
		"task_type": string(domain.TaskRTIDrafting),
	})
	if err != nil {
		return domain.RTIRequest{}, CheckoutInfo{}, err
	}

	rti := domain.RTIRequest{
		ID:        id,
		UserID:    userID,
		Subject:   in.Subject,
		Authority: in.Authority,
		BodyText:  in.BodyText,
		OrderID:   intent.OrderID,
		Status:    domain.RTIDraft,
	}
	if err := s.rtis.Create(ctx, &rti); err != nil {
		return domain.RTIRequest{}, CheckoutInfo{}, err
	}

	return rti, CheckoutInfo{OrderID: intent.OrderID, Amount: intent.Amount}, nil
}

func (s *RTIService) GetByID(ctx context.Context, userID, id uuid.UUID) (domain.RTIRequest, error) {
	rti, err := s.rtis.GetByID(ctx, id)
	if err != nil {
		return domain.RTIRequest{}, err
	}
	if rti.UserID != userID {
		return domain.RTIRequest{}, civic_errors.ErrForbidden
	}
	return rti, nil
}

// Document regenerates the paid application on demand. Access requires
// the request to be exactly in the PAID state; drafts answer with a
// payment-required error instead of content.
func (s *RTIService) Document(ctx context.Context, userID, id uuid.UUID) ([]byte, error) {
	rti, err := s.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if rti.Status != domain.RTIPaid {
		return nil, civic_errors.ErrPaymentRequired
	}
	return s.renderPDF(rti.BodyText)
}
