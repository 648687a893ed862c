package domain

import (
	"time"

	"github.com/google/uuid"
)

// RTIStatus tracks a request-for-information draft. DRAFT rows are
// editable; PAID rows are rendered and dispatched; RESPONSE_RECEIVED is
// set later by unrelated flows when the authority replies.
type RTIStatus string

const (
	RTIDraft            RTIStatus = "DRAFT"
	RTIPaid             RTIStatus = "PAID"
	RTIResponseReceived RTIStatus = "RESPONSE_RECEIVED"
)

// RTIRequest is a generated right-to-information application. BodyText
// is the free-form legal text the renderer lays out. DocumentURL, once
// set, points at the on-demand regeneration endpoint.
type RTIRequest struct {
	ID          uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID      uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	Subject     string     `gorm:"type:varchar(200);not null" json:"subject"`
	Authority   string     `gorm:"type:varchar(200)" json:"authority"`
	BodyText    string     `gorm:"type:text" json:"body_text"`
	OrderID     string     `gorm:"type:varchar(64);index" json:"order_id"`
	Status      RTIStatus  `gorm:"type:varchar(24);not null;default:'DRAFT';index" json:"status"`
	DocumentURL *string    `gorm:"type:text" json:"document_url,omitempty"`
	PaidAt      *time.Time `json:"paid_at,omitempty"`
	CreatedAt   time.Time  `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"not null;default:now()" json:"updated_at"`
}

// TableName returns the database table name
func (RTIRequest) TableName() string {
	return "rti_requests"
}
