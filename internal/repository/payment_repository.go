package repository

import (
	"context"
	"errors"
	"time"

	"civicwatch/internal/domain"
	civic_errors "civicwatch/pkg/errors"

	"gorm.io/gorm"
)

type PostgresPaymentIntentRepository struct {
	db *gorm.DB
}

func NewPaymentIntentRepository(db *gorm.DB) PaymentIntentRepository {
	return &PostgresPaymentIntentRepository{db: db}
}

func (r *PostgresPaymentIntentRepository) Create(ctx context.Context, intent *domain.PaymentIntent) error {
	res := r.db.WithContext(ctx).Create(intent)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
			return civic_errors.ErrAlreadyExists
		}
		return res.Error
	}
	return nil
}

func (r *PostgresPaymentIntentRepository) GetByOrderID(ctx context.Context, orderID string) (domain.PaymentIntent, error) {
	var intent domain.PaymentIntent
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		First(&intent).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.PaymentIntent{}, civic_errors.ErrNotFound
		}
		return domain.PaymentIntent{}, err
	}
	return intent, nil
}

func (r *PostgresPaymentIntentRepository) GetByPaymentID(ctx context.Context, paymentID string) (domain.PaymentIntent, error) {
	var intent domain.PaymentIntent
	err := r.db.WithContext(ctx).
		Where("payment_id = ?", paymentID).
		First(&intent).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.PaymentIntent{}, civic_errors.ErrNotFound
		}
		return domain.PaymentIntent{}, err
	}
	return intent, nil
}

// MarkSucceeded is a compare-and-swap on the status column. The WHERE
// clause carries both the order id and the PENDING status so that two
// racing confirmations resolve at the database, not in application
// code: the row's status field is the lock.
func (r *PostgresPaymentIntentRepository) MarkSucceeded(ctx context.Context, orderID, paymentID string) (domain.Transition, error) {
	updates := map[string]interface{}{
		"status":     domain.PaymentSucceeded,
		"updated_at": time.Now(),
	}
	// order.paid deliveries may not carry a payment id; never overwrite
	// a backfilled id with an empty one.
	if paymentID != "" {
		updates["payment_id"] = paymentID
	}

	res := r.db.WithContext(ctx).
		Model(&domain.PaymentIntent{}).
		Where("order_id = ? AND status = ?", orderID, domain.PaymentPending).
		Updates(updates)
	if res.Error != nil {
		return "", res.Error
	}
	if res.RowsAffected == 1 {
		return domain.TransitionPerformed, nil
	}

	// No row transitioned: either the intent already succeeded (a
	// racing confirmation won) or the order id is unknown.
	intent, err := r.GetByOrderID(ctx, orderID)
	if err != nil {
		return "", err
	}
	if intent.Status == domain.PaymentSucceeded {
		return domain.TransitionAlreadySucceeded, nil
	}
	return "", civic_errors.ErrConflict
}
