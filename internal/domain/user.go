package domain

import (
	"time"

	"github.com/google/uuid"
)

// User is the minimal profile the payment pipeline needs: identity and
// the address fulfillment emails go to. Account management lives in a
// separate service.
type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Email     string    `gorm:"type:citext;not null;uniqueIndex" json:"email"`
	Name      string    `gorm:"type:varchar(120);not null" json:"name"`
	IsActive  bool      `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

// TableName returns the database table name
func (User) TableName() string {
	return "users"
}
