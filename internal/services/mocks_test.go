package services

import (
	"context"
	"sync"
	"time"

	"civicwatch/internal/domain"
	"civicwatch/internal/gateway"
	"civicwatch/internal/notify"
	civic_errors "civicwatch/pkg/errors"
	"civicwatch/pkg/logger"

	"github.com/google/uuid"
)

func testLogger() *logger.Logger {
	return logger.New(logger.DevelopmentMode)
}

// --- payment intents ---

type fakeIntentRepo struct {
	mu      sync.Mutex
	intents map[string]*domain.PaymentIntent // keyed by order id
}

func newFakeIntentRepo() *fakeIntentRepo {
	return &fakeIntentRepo{intents: make(map[string]*domain.PaymentIntent)}
}

func (r *fakeIntentRepo) Create(ctx context.Context, intent *domain.PaymentIntent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.intents[intent.OrderID]; ok {
		return civic_errors.ErrAlreadyExists
	}
	if intent.CreatedAt.IsZero() {
		intent.CreatedAt = time.Now()
	}
	cp := *intent
	r.intents[intent.OrderID] = &cp
	return nil
}

func (r *fakeIntentRepo) GetByOrderID(ctx context.Context, orderID string) (domain.PaymentIntent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	intent, ok := r.intents[orderID]
	if !ok {
		return domain.PaymentIntent{}, civic_errors.ErrNotFound
	}
	return *intent, nil
}

func (r *fakeIntentRepo) GetByPaymentID(ctx context.Context, paymentID string) (domain.PaymentIntent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, intent := range r.intents {
		if intent.PaymentID != nil && *intent.PaymentID == paymentID {
			return *intent, nil
		}
	}
	return domain.PaymentIntent{}, civic_errors.ErrNotFound
}

// MarkSucceeded mirrors the storage-level compare-and-swap: the check
// and the write happen under one lock.
func (r *fakeIntentRepo) MarkSucceeded(ctx context.Context, orderID, paymentID string) (domain.Transition, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	intent, ok := r.intents[orderID]
	if !ok {
		return "", civic_errors.ErrNotFound
	}
	if intent.Status == domain.PaymentSucceeded {
		return domain.TransitionAlreadySucceeded, nil
	}
	intent.Status = domain.PaymentSucceeded
	if paymentID != "" {
		intent.PaymentID = &paymentID
	}
	return domain.TransitionPerformed, nil
}

// --- gateway ---

type fakeOrders struct {
	mu    sync.Mutex
	seq   int
	fail  bool
	notes []map[string]interface{}
}

func (o *fakeOrders) CreateOrder(ctx context.Context, amount int64, currency, receipt string, notes map[string]interface{}) (string, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.fail {
		return "", civic_errors.ErrGatewayUnavailable
	}
	o.seq++
	o.notes = append(o.notes, notes)
	return "order_test_" + uuid.NewString()[:8], nil
}

// --- dispatcher ---

type dispatchCall struct {
	intent domain.PaymentIntent
	notes  gateway.Notes
}

type recordingDispatcher struct {
	mu    sync.Mutex
	calls []dispatchCall
	err   error
}

func (d *recordingDispatcher) Dispatch(ctx context.Context, intent domain.PaymentIntent, notes gateway.Notes) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.calls = append(d.calls, dispatchCall{intent: intent, notes: notes})
	return d.err
}

func (d *recordingDispatcher) count() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.calls)
}

// --- notification channel ---

type fakeSender struct {
	mu   sync.Mutex
	sent []notify.Message
	fail bool
}

func (s *fakeSender) Send(ctx context.Context, msg notify.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail {
		return civic_errors.ErrServiceUnavailable
	}
	s.sent = append(s.sent, msg)
	return nil
}

func (s *fakeSender) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sent)
}

// --- complaints ---

type fakeComplaintRepo struct {
	mu         sync.Mutex
	complaints map[uuid.UUID]*domain.Complaint
}

func newFakeComplaintRepo() *fakeComplaintRepo {
	return &fakeComplaintRepo{complaints: make(map[uuid.UUID]*domain.Complaint)}
}

func (r *fakeComplaintRepo) Create(ctx context.Context, c *domain.Complaint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now()
	}
	cp := *c
	r.complaints[c.ID] = &cp
	return nil
}

func (r *fakeComplaintRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Complaint, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.complaints[id]
	if !ok {
		return domain.Complaint{}, civic_errors.ErrNotFound
	}
	return *c, nil
}

func (r *fakeComplaintRepo) GetByOrderID(ctx context.Context, userID uuid.UUID, orderID string) (domain.Complaint, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var latest *domain.Complaint
	for _, c := range r.complaints {
		if c.UserID == userID && c.OrderID == orderID {
			if latest == nil || c.CreatedAt.After(latest.CreatedAt) {
				latest = c
			}
		}
	}
	if latest == nil {
		return domain.Complaint{}, civic_errors.ErrNotFound
	}
	return *latest, nil
}

func (r *fakeComplaintRepo) ListByUser(ctx context.Context, userID uuid.UUID, page, limit int) ([]domain.Complaint, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Complaint
	for _, c := range r.complaints {
		if c.UserID == userID {
			out = append(out, *c)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeComplaintRepo) MarkFiled(ctx context.Context, id uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.complaints[id]
	if !ok {
		return false, civic_errors.ErrNotFound
	}
	if c.Status == domain.ComplaintFiled {
		return false, nil
	}
	c.Status = domain.ComplaintFiled
	c.FiledAt = civic_errors.NowPtr()
	return true, nil
}

// --- rti ---

type fakeRTIRepo struct {
	mu   sync.Mutex
	rtis map[uuid.UUID]*domain.RTIRequest
}

func newFakeRTIRepo() *fakeRTIRepo {
	return &fakeRTIRepo{rtis: make(map[uuid.UUID]*domain.RTIRequest)}
}

func (r *fakeRTIRepo) Create(ctx context.Context, req *domain.RTIRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if req.CreatedAt.IsZero() {
		req.CreatedAt = time.Now()
	}
	cp := *req
	r.rtis[req.ID] = &cp
	return nil
}

func (r *fakeRTIRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.RTIRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	req, ok := r.rtis[id]
	if !ok {
		return domain.RTIRequest{}, civic_errors.ErrNotFound
	}
	return *req, nil
}

func (r *fakeRTIRepo) GetLatestDraft(ctx context.Context, userID uuid.UUID, createdAfter time.Time) (domain.RTIRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var latest *domain.RTIRequest
	for _, req := range r.rtis {
		if req.UserID == userID && req.Status == domain.RTIDraft && !req.CreatedAt.Before(createdAfter) {
			if latest == nil || req.CreatedAt.After(latest.CreatedAt) {
				latest = req
			}
		}
	}
	if latest == nil {
		return domain.RTIRequest{}, civic_errors.ErrNotFound
	}
	return *latest, nil
}

func (r *fakeRTIRepo) MarkPaid(ctx context.Context, id uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	req, ok := r.rtis[id]
	if !ok {
		return false, civic_errors.ErrNotFound
	}
	if req.Status != domain.RTIDraft {
		return false, nil
	}
	req.Status = domain.RTIPaid
	req.PaidAt = civic_errors.NowPtr()
	return true, nil
}

func (r *fakeRTIRepo) SetDocumentURL(ctx context.Context, id uuid.UUID, url string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	req, ok := r.rtis[id]
	if !ok {
		return civic_errors.ErrNotFound
	}
	req.DocumentURL = &url
	return nil
}

// --- users ---

type fakeUserRepo struct {
	users map[uuid.UUID]domain.User
}

func newFakeUserRepo(users ...domain.User) *fakeUserRepo {
	m := make(map[uuid.UUID]domain.User, len(users))
	for _, u := range users {
		m[u.ID] = u
	}
	return &fakeUserRepo{users: m}
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return domain.User{}, civic_errors.ErrNotFound
	}
	return u, nil
}

// --- api keys ---

type fakeKeyRepo struct {
	mu   sync.Mutex
	keys map[uuid.UUID]domain.APIKey // keyed by user id
}

func newFakeKeyRepo() *fakeKeyRepo {
	return &fakeKeyRepo{keys: make(map[uuid.UUID]domain.APIKey)}
}

func (r *fakeKeyRepo) Upsert(ctx context.Context, key *domain.APIKey) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.keys[key.UserID] = *key
	return nil
}

func (r *fakeKeyRepo) GetByUserID(ctx context.Context, userID uuid.UUID) (domain.APIKey, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key, ok := r.keys[userID]
	if !ok {
		return domain.APIKey{}, civic_errors.ErrNotFound
	}
	return key, nil
}
