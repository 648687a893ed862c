package services

import (
	"context"

	"civicwatch/internal/domain"
	"civicwatch/internal/repository"

	"github.com/google/uuid"
)

// APIKeyService exposes the developer credential minted by fulfillment
// and lets a user start the pro upgrade checkout.
type APIKeyService struct {
	keys     repository.APIKeyRepository
	payments *PaymentService
}

func NewAPIKeyService(keys repository.APIKeyRepository, payments *PaymentService) *APIKeyService {
	return &APIKeyService{keys: keys, payments: payments}
}

func (s *APIKeyService) StartUpgrade(ctx context.Context, userID uuid.UUID) (CheckoutInfo, error) {
	intent, err := s.payments.CreateIntent(ctx, userID, domain.TaskDeveloperAPIPro, domain.PaymentTypeSubscription, PriceDeveloperAPIPro, map[string]interface{}{
		"task_type": string(domain.TaskDeveloperAPIPro),
	})
	if err != nil {
		return CheckoutInfo{}, err
	}
	return CheckoutInfo{OrderID: intent.OrderID, Amount: intent.Amount}, nil
}

func (s *APIKeyService) GetKey(ctx context.Context, userID uuid.UUID) (domain.APIKey, error) {
	return s.keys.GetByUserID(ctx, userID)
}
