package repository

import (
	"context"
	"errors"
	"time"

	"civicwatch/internal/domain"
	civic_errors "civicwatch/pkg/errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PostgresRTIRepository struct {
	db *gorm.DB
}

func NewRTIRepository(db *gorm.DB) RTIRepository {
	return &PostgresRTIRepository{db: db}
}

func (r *PostgresRTIRepository) Create(ctx context.Context, req *domain.RTIRequest) error {
	return r.db.WithContext(ctx).Create(req).Error
}

func (r *PostgresRTIRepository) GetByID(ctx context.Context, id uuid.UUID) (domain.RTIRequest, error) {
	var req domain.RTIRequest
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&req).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.RTIRequest{}, civic_errors.ErrNotFound
		}
		return domain.RTIRequest{}, err
	}
	return req, nil
}

func (r *PostgresRTIRepository) GetLatestDraft(ctx context.Context, userID uuid.UUID, createdAfter time.Time) (domain.RTIRequest, error) {
	var req domain.RTIRequest
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND status = ? AND created_at >= ?", userID, domain.RTIDraft, createdAfter).
		Order("created_at DESC").
		First(&req).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.RTIRequest{}, civic_errors.ErrNotFound
		}
		return domain.RTIRequest{}, err
	}
	return req, nil
}

func (r *PostgresRTIRepository) MarkPaid(ctx context.Context, id uuid.UUID) (bool, error) {
	now := time.Now()
	res := r.db.WithContext(ctx).
		Model(&domain.RTIRequest{}).
		Where("id = ? AND status = ?", id, domain.RTIDraft).
		Updates(map[string]interface{}{
			"status":     domain.RTIPaid,
			"paid_at":    now,
			"updated_at": now,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *PostgresRTIRepository) SetDocumentURL(ctx context.Context, id uuid.UUID, url string) error {
	res := r.db.WithContext(ctx).
		Model(&domain.RTIRequest{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"document_url": url,
			"updated_at":   time.Now(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return civic_errors.ErrNotFound
	}
	return nil
}
