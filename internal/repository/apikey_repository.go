package repository

import (
	"context"
	"errors"

	"civicwatch/internal/domain"
	civic_errors "civicwatch/pkg/errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PostgresAPIKeyRepository struct {
	db *gorm.DB
}

func NewAPIKeyRepository(db *gorm.DB) APIKeyRepository {
	return &PostgresAPIKeyRepository{db: db}
}

func (r *PostgresAPIKeyRepository) Upsert(ctx context.Context, key *domain.APIKey) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"key", "plan", "quota_limit", "quota_used", "quota_reset_at", "updated_at",
			}),
		}).
		Create(key).Error
}

func (r *PostgresAPIKeyRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (domain.APIKey, error) {
	var key domain.APIKey
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&key).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.APIKey{}, civic_errors.ErrNotFound
		}
		return domain.APIKey{}, err
	}
	return key, nil
}
