package repository

import (
	"context"
	"errors"

	"civicwatch/internal/domain"
	civic_errors "civicwatch/pkg/errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PostgresUserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &PostgresUserRepository{db: db}
}

func (r *PostgresUserRepository) GetByID(ctx context.Context, id uuid.UUID) (domain.User, error) {
	var u domain.User
	err := r.db.WithContext(ctx).
		Where("id = ? AND is_active = true", id).
		First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.User{}, civic_errors.ErrNotFound
		}
		return domain.User{}, err
	}
	return u, nil
}
