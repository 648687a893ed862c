package domain

import (
	"time"

	"github.com/google/uuid"
)

// ComplaintStatus tracks a complaint from creation to dispatch.
type ComplaintStatus string

const (
	ComplaintPending ComplaintStatus = "PENDING"
	ComplaintFiled   ComplaintStatus = "FILED"
)

// Complaint is a citizen grievance addressed to a civic department.
// OrderID correlates the complaint to the payment that funds its
// filing; it is stamped at creation time.
type Complaint struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID      uuid.UUID       `gorm:"type:uuid;not null;index" json:"user_id"`
	Title       string          `gorm:"type:varchar(200);not null" json:"title"`
	Description string          `gorm:"type:text;not null" json:"description"`
	Location    string          `gorm:"type:varchar(200)" json:"location"`
	Department  string          `gorm:"type:varchar(120)" json:"department"`
	DeptEmail   string          `gorm:"type:varchar(200)" json:"dept_email"`
	OrderID     string          `gorm:"type:varchar(64);index" json:"order_id"`
	Status      ComplaintStatus `gorm:"type:varchar(20);not null;default:'PENDING'" json:"status"`
	FiledAt     *time.Time      `json:"filed_at,omitempty"`
	CreatedAt   time.Time       `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"not null;default:now()" json:"updated_at"`
}

// TableName returns the database table name
func (Complaint) TableName() string {
	return "complaints"
}
