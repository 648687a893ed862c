package domain

import (
	"time"

	"github.com/google/uuid"
)

// APIKey is a developer credential minted when a developer_api_pro
// payment settles. One active key per user; re-minting rotates the key
// and resets the quota window.
type APIKey struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	Key          string    `gorm:"type:varchar(96);not null;uniqueIndex" json:"key"`
	Plan         string    `gorm:"type:varchar(20);not null;default:'pro'" json:"plan"`
	QuotaLimit   int       `gorm:"not null;default:10000" json:"quota_limit"`
	QuotaUsed    int       `gorm:"not null;default:0" json:"quota_used"`
	QuotaResetAt time.Time `gorm:"not null" json:"quota_reset_at"`
	CreatedAt    time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt    time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

// TableName returns the database table name
func (APIKey) TableName() string {
	return "api_keys"
}
