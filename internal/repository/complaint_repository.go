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

type PostgresComplaintRepository struct {
	db *gorm.DB
}

func NewComplaintRepository(db *gorm.DB) ComplaintRepository {
	return &PostgresComplaintRepository{db: db}
}

func (r *PostgresComplaintRepository) Create(ctx context.Context, c *domain.Complaint) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *PostgresComplaintRepository) GetByID(ctx context.Context, id uuid.UUID) (domain.Complaint, error) {
	var c domain.Complaint
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&c).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Complaint{}, civic_errors.ErrNotFound
		}
		return domain.Complaint{}, err
	}
	return c, nil
}

func (r *PostgresComplaintRepository) GetByOrderID(ctx context.Context, userID uuid.UUID, orderID string) (domain.Complaint, error) {
	var c domain.Complaint
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND order_id = ?", userID, orderID).
		Order("created_at DESC").
		First(&c).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Complaint{}, civic_errors.ErrNotFound
		}
		return domain.Complaint{}, err
	}
	return c, nil
}

func (r *PostgresComplaintRepository) ListByUser(ctx context.Context, userID uuid.UUID, page, limit int) ([]domain.Complaint, int64, error) {
	var complaints []domain.Complaint
	var total int64

	q := r.db.WithContext(ctx).
		Model(&domain.Complaint{}).
		Where("user_id = ?", userID)

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit

	if err := q.
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&complaints).Error; err != nil {
		return nil, 0, err
	}

	return complaints, total, nil
}

func (r *PostgresComplaintRepository) MarkFiled(ctx context.Context, id uuid.UUID) (bool, error) {
	now := time.Now()
	res := r.db.WithContext(ctx).
		Model(&domain.Complaint{}).
		Where("id = ? AND status = ?", id, domain.ComplaintPending).
		Updates(map[string]interface{}{
			"status":     domain.ComplaintFiled,
			"filed_at":   now,
			"updated_at": now,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}
