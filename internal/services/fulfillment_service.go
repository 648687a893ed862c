package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"civicwatch/internal/domain"
	"civicwatch/internal/gateway"
	"civicwatch/internal/notify"
	"civicwatch/internal/render"
	"civicwatch/internal/repository"
	civic_errors "civicwatch/pkg/errors"
	"civicwatch/pkg/logger"

	"github.com/google/uuid"
)

// DocumentArchive stores a copy of a rendered document. Optional;
// archival failures are logged and ignored.
type DocumentArchive interface {
	PutDocument(ctx context.Context, id string, content []byte) (string, error)
}

type FulfillmentConfig struct {
	FallbackDeptEmail string
	BaseURL           string
}

// FulfillmentService routes a succeeded payment to its task-specific
// side effect. The dispatcher is only ever invoked by the confirmation
// path that won the intent transition; each handler additionally checks
// its artifact's own status before acting.
type FulfillmentService struct {
	complaints repository.ComplaintRepository
	rtis       repository.RTIRepository
	users      repository.UserRepository
	keys       repository.APIKeyRepository
	sender     notify.Sender
	archive    DocumentArchive
	cfg        FulfillmentConfig
	log        *logger.Logger

	renderPDF func(string) ([]byte, error)
}

func NewFulfillmentService(
	complaints repository.ComplaintRepository,
	rtis repository.RTIRepository,
	users repository.UserRepository,
	keys repository.APIKeyRepository,
	sender notify.Sender,
	archive DocumentArchive,
	cfg FulfillmentConfig,
	log *logger.Logger,
) *FulfillmentService {
	return &FulfillmentService{
		complaints: complaints,
		rtis:       rtis,
		users:      users,
		keys:       keys,
		sender:     sender,
		archive:    archive,
		cfg:        cfg,
		log:        log,
		renderPDF:  render.GeneratePDF,
	}
}

// Dispatch routes by task type. Unknown task types are logged and
// skipped: the confirmation must still succeed when fulfillment
// metadata is malformed.
func (s *FulfillmentService) Dispatch(ctx context.Context, intent domain.PaymentIntent, notes gateway.Notes) error {
	switch intent.TaskType {
	case domain.TaskComplaintFiling:
		return s.fulfillComplaint(ctx, intent, notes)
	case domain.TaskRTIDrafting:
		return s.fulfillRTI(ctx, intent, notes)
	case domain.TaskDeveloperAPIPro:
		return s.fulfillDeveloperAPI(ctx, intent)
	default:
		s.log.Warnf("unknown task type %q for order %s, skipping fulfillment", intent.TaskType, intent.OrderID)
		return nil
	}
}

// resolveComplaint prefers the explicit id echoed back in gateway
// notes; the order-id lookup is the fallback.
func (s *FulfillmentService) resolveComplaint(ctx context.Context, intent domain.PaymentIntent, notes gateway.Notes) (domain.Complaint, error) {
	if raw, ok := notes["complaint_id"]; ok {
		if id, err := uuid.Parse(raw); err == nil {
			c, err := s.complaints.GetByID(ctx, id)
			if err == nil && c.UserID == intent.UserID {
				return c, nil
			}
		}
	}
	return s.complaints.GetByOrderID(ctx, intent.UserID, intent.OrderID)
}

func (s *FulfillmentService) fulfillComplaint(ctx context.Context, intent domain.PaymentIntent, notes gateway.Notes) error {
	complaint, err := s.resolveComplaint(ctx, intent, notes)
	if err != nil {
		return fmt.Errorf("resolve complaint for order %s: %w", intent.OrderID, err)
	}
	if complaint.Status == domain.ComplaintFiled {
		s.log.Infof("complaint %s already filed, skipping", complaint.ID)
		return nil
	}

	filer := intent.UserID.String()
	if user, err := s.users.GetByID(ctx, intent.UserID); err == nil {
		filer = fmt.Sprintf("%s <%s>", user.Name, user.Email)
	}

	to := complaint.DeptEmail
	if to == "" {
		to = s.cfg.FallbackDeptEmail
	}

	msg := notify.Message{
		To:       to,
		Subject:  fmt.Sprintf("Citizen complaint: %s", complaint.Title),
		HTMLBody: complaintBody(complaint, filer),
	}
	if err := s.sender.Send(ctx, msg); err != nil {
		// The payment stays settled; the complaint stays PENDING so a
		// manual retry can re-run this handler.
		s.log.Errorf("notification send failure for complaint %s: %s", complaint.ID, err.Error())
		return nil
	}

	performed, err := s.complaints.MarkFiled(ctx, complaint.ID)
	if err != nil {
		return err
	}
	if !performed {
		s.log.Infof("complaint %s was filed concurrently", complaint.ID)
	}
	return nil
}

// resolveRTI prefers the explicit id from gateway notes, then falls
// back to the most recent draft created at or after the intent. The
// recency fallback is a known weakness; initiation always stamps
// rti_id into order notes so it should rarely be exercised.
func (s *FulfillmentService) resolveRTI(ctx context.Context, intent domain.PaymentIntent, notes gateway.Notes) (domain.RTIRequest, error) {
	if raw, ok := notes["rti_id"]; ok {
		if id, err := uuid.Parse(raw); err == nil {
			r, err := s.rtis.GetByID(ctx, id)
			if err == nil && r.UserID == intent.UserID {
				return r, nil
			}
		}
	}
	return s.rtis.GetLatestDraft(ctx, intent.UserID, intent.CreatedAt)
}

func (s *FulfillmentService) fulfillRTI(ctx context.Context, intent domain.PaymentIntent, notes gateway.Notes) error {
	rti, err := s.resolveRTI(ctx, intent, notes)
	if err != nil {
		return fmt.Errorf("resolve rti for order %s: %w", intent.OrderID, err)
	}

	if strings.TrimSpace(rti.BodyText) == "" {
		s.log.Errorf("rti %s has an empty draft, aborting fulfillment", rti.ID)
		return civic_errors.ErrEmptyDraft
	}

	performed, err := s.rtis.MarkPaid(ctx, rti.ID)
	if err != nil {
		return err
	}
	if !performed {
		s.log.Infof("rti %s already paid, skipping", rti.ID)
		return nil
	}

	document, err := s.renderPDF(rti.BodyText)
	if err != nil {
		return fmt.Errorf("render rti %s: %w", rti.ID, err)
	}

	if rti.DocumentURL == nil {
		url := fmt.Sprintf("%s/v1/rti/%s/document", s.cfg.BaseURL, rti.ID)
		if err := s.rtis.SetDocumentURL(ctx, rti.ID, url); err != nil {
			s.log.Errorf("failed to set document url for rti %s: %s", rti.ID, err.Error())
		}
	}

	if s.archive != nil {
		if _, err := s.archive.PutDocument(ctx, rti.ID.String(), document); err != nil {
			s.log.Errorf("failed to archive document for rti %s: %s", rti.ID, err.Error())
		}
	}

	user, err := s.users.GetByID(ctx, rti.UserID)
	if err != nil {
		return fmt.Errorf("resolve user for rti %s: %w", rti.ID, err)
	}

	msg := notify.Message{
		To:       user.Email,
		Subject:  fmt.Sprintf("Your RTI application: %s", rti.Subject),
		HTMLBody: rtiBody(rti, user.Name),
		Attachments: []notify.Attachment{{
			Filename: "rti-application.pdf",
			MIMEType: "application/pdf",
			Content:  document,
		}},
	}
	if err := s.sender.Send(ctx, msg); err != nil {
		s.log.Errorf("notification send failure for rti %s: %s", rti.ID, err.Error())
	}
	return nil
}

func (s *FulfillmentService) fulfillDeveloperAPI(ctx context.Context, intent domain.PaymentIntent) error {
	key, err := generateAPIKey()
	if err != nil {
		return err
	}

	now := time.Now()
	return s.keys.Upsert(ctx, &domain.APIKey{
		ID:           uuid.New(),
		UserID:       intent.UserID,
		Key:          key,
		Plan:         "pro",
		QuotaLimit:   10000,
		QuotaUsed:    0,
		QuotaResetAt: now.AddDate(0, 1, 0),
	})
}

func generateAPIKey() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return "cwk_" + hex.EncodeToString(buf), nil
}

func complaintBody(c domain.Complaint, filer string) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("<h3>%s</h3>", c.Title))
	b.WriteString(fmt.Sprintf("<p>%s</p>", c.Description))
	if c.Location != "" {
		b.WriteString(fmt.Sprintf("<p><b>Location:</b> %s</p>", c.Location))
	}
	b.WriteString(fmt.Sprintf("<p><b>Filed by:</b> %s</p>", filer))
	b.WriteString(fmt.Sprintf("<p>Reference: %s</p>", c.ID))
	return b.String()
}

func rtiBody(r domain.RTIRequest, name string) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("<p>Dear %s,</p>", name))
	b.WriteString("<p>Your RTI application is attached as a PDF. Print, sign and submit it to the public information officer of the concerned authority, or file it online.</p>")
	if r.Authority != "" {
		b.WriteString(fmt.Sprintf("<p><b>Authority:</b> %s</p>", r.Authority))
	}
	b.WriteString(fmt.Sprintf("<p>Reference: %s</p>", r.ID))
	return b.String()
}
