package domain

import (
	"time"

	"github.com/google/uuid"
)

// PaymentStatus is the settlement state of a checkout attempt. The
// lattice only moves forward: PENDING -> SUCCEEDED.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "PENDING"
	PaymentSucceeded PaymentStatus = "SUCCEEDED"
)

// PaymentType distinguishes one-off task payments from subscriptions.
type PaymentType string

const (
	PaymentTypeOneTime      PaymentType = "ONE_TIME"
	PaymentTypeSubscription PaymentType = "SUBSCRIPTION"
)

// TaskType names the fulfillment action a payment unlocks. The set is
// open; unknown values are acknowledged and skipped by the dispatcher.
type TaskType string

const (
	TaskComplaintFiling TaskType = "complaint_filing"
	TaskRTIDrafting     TaskType = "rti_drafting"
	TaskDeveloperAPIPro TaskType = "developer_api_pro"
)

// Transition reports the outcome of the conditional PENDING->SUCCEEDED
// update. Only the caller that observes TransitionPerformed may dispatch
// fulfillment.
type Transition string

const (
	TransitionPerformed        Transition = "TRANSITIONED"
	TransitionAlreadySucceeded Transition = "ALREADY_SUCCEEDED"
)

// PaymentIntent stores one checkout attempt against the gateway.
// OrderID is assigned at order creation; PaymentID is backfilled by
// whichever confirmation path wins the transition race.
type PaymentIntent struct {
	ID          uuid.UUID     `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID      uuid.UUID     `gorm:"type:uuid;not null;index" json:"user_id"`
	OrderID     string        `gorm:"type:varchar(64);not null;uniqueIndex" json:"order_id"`
	PaymentID   *string       `gorm:"type:varchar(64);index" json:"payment_id,omitempty"`
	PaymentType PaymentType   `gorm:"type:varchar(20);not null;default:'ONE_TIME'" json:"payment_type"`
	TaskType    TaskType      `gorm:"type:varchar(32);not null" json:"task_type"`
	Amount      int64         `gorm:"not null" json:"amount"` // paise
	Currency    string        `gorm:"type:varchar(8);not null;default:'INR'" json:"currency"`
	Status      PaymentStatus `gorm:"type:varchar(20);not null;default:'PENDING';index" json:"status"`
	CreatedAt   time.Time     `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt   time.Time     `gorm:"not null;default:now()" json:"updated_at"`
}

// TableName returns the database table name
func (PaymentIntent) TableName() string {
	return "payment_intents"
}
