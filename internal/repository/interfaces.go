package repository

import (
	"context"
	"time"

	"civicwatch/internal/domain"

	"github.com/google/uuid"
)

// PaymentIntentRepository is the durable record of checkout attempts.
// MarkSucceeded is the synchronization primitive for the whole
// confirmation pipeline: a single conditional update on the status
// column, safe under concurrent callers across processes.
type PaymentIntentRepository interface {
	Create(ctx context.Context, intent *domain.PaymentIntent) error
	GetByOrderID(ctx context.Context, orderID string) (domain.PaymentIntent, error)
	GetByPaymentID(ctx context.Context, paymentID string) (domain.PaymentIntent, error)
	// MarkSucceeded atomically moves PENDING -> SUCCEEDED and backfills
	// the gateway payment id. Exactly one concurrent caller observes
	// TransitionPerformed; later callers observe
	// TransitionAlreadySucceeded. Unknown order ids return ErrNotFound.
	MarkSucceeded(ctx context.Context, orderID, paymentID string) (domain.Transition, error)
}

type ComplaintRepository interface {
	Create(ctx context.Context, c *domain.Complaint) error
	GetByID(ctx context.Context, id uuid.UUID) (domain.Complaint, error)
	GetByOrderID(ctx context.Context, userID uuid.UUID, orderID string) (domain.Complaint, error)
	ListByUser(ctx context.Context, userID uuid.UUID, page, limit int) ([]domain.Complaint, int64, error)
	// MarkFiled flips PENDING -> FILED; returns false if the complaint
	// was already filed. Defensive per-artifact guard for fulfillment.
	MarkFiled(ctx context.Context, id uuid.UUID) (bool, error)
}

type RTIRepository interface {
	Create(ctx context.Context, r *domain.RTIRequest) error
	GetByID(ctx context.Context, id uuid.UUID) (domain.RTIRequest, error)
	// GetLatestDraft returns the most recent DRAFT for the user created
	// at or after the given time. Fallback correlation only; explicit
	// ids from confirmation metadata are preferred.
	GetLatestDraft(ctx context.Context, userID uuid.UUID, createdAfter time.Time) (domain.RTIRequest, error)
	// MarkPaid flips DRAFT -> PAID; returns false if the request was
	// already paid.
	MarkPaid(ctx context.Context, id uuid.UUID) (bool, error)
	SetDocumentURL(ctx context.Context, id uuid.UUID, url string) error
}

type APIKeyRepository interface {
	// Upsert replaces the user's key in place, rotating credential and
	// quota together.
	Upsert(ctx context.Context, key *domain.APIKey) error
	GetByUserID(ctx context.Context, userID uuid.UUID) (domain.APIKey, error)
}

type UserRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (domain.User, error)
}
