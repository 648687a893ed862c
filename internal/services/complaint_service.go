package services

import (
	"context"

	"civicwatch/internal/domain"
	"civicwatch/internal/repository"
	civic_errors "civicwatch/pkg/errors"

	"github.com/google/uuid"
)

// ComplaintService handles complaint initiation: the artifact id is
// generated up front so the gateway order can carry it in notes, the
// order is created, and only then are the rows persisted. A gateway
// failure leaves nothing behind.
type ComplaintService struct {
	complaints repository.ComplaintRepository
	payments   *PaymentService
}

func NewComplaintService(complaints repository.ComplaintRepository, payments *PaymentService) *ComplaintService {
	return &ComplaintService{complaints: complaints, payments: payments}
}

type CreateComplaintInput struct {
	Title       string
	Description string
	Location    string
	Department  string
	DeptEmail   string
}

type CheckoutInfo struct {
	OrderID string
	Amount  int64
}

func (s *ComplaintService) Create(ctx context.Context, userID uuid.UUID, in CreateComplaintInput) (domain.Complaint, CheckoutInfo, error) {
	if in.Title == "" || in.Description == "" {
		return domain.Complaint{}, CheckoutInfo{}, civic_errors.ErrInvalidInput
	}

	id := uuid.New()
	intent, err := s.payments.CreateIntent(ctx, userID, domain.TaskComplaintFiling, domain.PaymentTypeOneTime, PriceComplaintFiling, map[string]interface{}{
		"complaint_id": id.String(),
		"task_type":    string(domain.TaskComplaintFiling),
	})
	if err != nil {
		return domain.Complaint{}, CheckoutInfo{}, err
	}

	complaint := domain.Complaint{
		ID:          id,
		UserID:      userID,
		Title:       in.Title,
		Description: in.Description,
		Location:    in.Location,
		Department:  in.Department,
		DeptEmail:   in.DeptEmail,
		OrderID:     intent.OrderID,
		Status:      domain.ComplaintPending,
	}
	if err := s.complaints.Create(ctx, &complaint); err != nil {
		return domain.Complaint{}, CheckoutInfo{}, err
	}

	return complaint, CheckoutInfo{OrderID: intent.OrderID, Amount: intent.Amount}, nil
}

func (s *ComplaintService) List(ctx context.Context, userID uuid.UUID, page, limit int) ([]domain.Complaint, int64, error) {
	return s.complaints.ListByUser(ctx, userID, page, limit)
}

func (s *ComplaintService) GetByID(ctx context.Context, userID, id uuid.UUID) (domain.Complaint, error) {
	complaint, err := s.complaints.GetByID(ctx, id)
	if err != nil {
		return domain.Complaint{}, err
	}
	if complaint.UserID != userID {
		return domain.Complaint{}, civic_errors.ErrForbidden
	}
	return complaint, nil
}
