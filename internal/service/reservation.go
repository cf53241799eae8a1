package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"petreserve-backend/internal/domain"
	"petreserve-backend/internal/logger"
	"petreserve-backend/internal/repository"

	"github.com/google/uuid"
)

type reservationService struct {
	repo        repository.ReservationRepository
	transitions TransitionService
	emailSvc    EmailService
}

func NewReservationService(repo repository.ReservationRepository, transitions TransitionService, emailSvc EmailService) ReservationService {
	return &reservationService{
		repo:        repo,
		transitions: transitions,
		emailSvc:    emailSvc,
	}
}

func (s *reservationService) Create(ctx context.Context, in CreateReservationInput) (*domain.Reservation, error) {
	if !domain.ValidKind(in.Kind) {
		return nil, fmt.Errorf("unknown reservation kind %q", in.Kind)
	}

	taken, err := s.repo.HasActiveForSubject(ctx, in.SubjectRef)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, fmt.Errorf("subject %s: %w", in.SubjectRef, domain.ErrSubjectUnavailable)
	}

	currency := in.Currency
	if currency == "" {
		currency = "INR"
	}

	rv := &domain.Reservation{
		ReservationCode: newReservationCode(),
		SubjectRef:      in.SubjectRef,
		RequesterRef:    in.RequesterRef,
		ContactName:     in.ContactName,
		ContactEmail:    in.ContactEmail,
		Kind:            in.Kind,
		Status:          in.Kind.InitialStatus(),
		Payment: domain.PaymentInfo{
			AmountCents: in.AmountCents,
			Currency:    currency,
		},
	}

	entry := &domain.TimelineEntry{
		Status:     rv.Status,
		Actor:      in.RequesterRef,
		Notes:      strings.TrimSpace("reservation created. " + in.Notes),
		OccurredAt: time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, rv, entry); err != nil {
		return nil, err
	}

	if rv.ContactEmail != "" {
		if err := s.emailSvc.SendReservationReceived(ctx, rv.ContactEmail, rv.ContactName, rv.ReservationCode, rv.Kind); err != nil {
			logger.Warn("failed to send reservation confirmation email", "reservation_code", rv.ReservationCode, "error", err)
		}
	}
	return rv, nil
}

func (s *reservationService) GetByCode(ctx context.Context, code string) (*domain.Reservation, error) {
	return s.repo.GetByCode(ctx, code)
}

func (s *reservationService) List(ctx context.Context, requesterRef string, status domain.ReservationStatus, page, pageSize int32) ([]domain.Reservation, int32, error) {
	return s.repo.ListByRequester(ctx, requesterRef, status, page, pageSize)
}

func (s *reservationService) ListForManager(ctx context.Context, status domain.ReservationStatus, page, pageSize int32) ([]domain.Reservation, int32, error) {
	return s.repo.ListByStatus(ctx, status, page, pageSize)
}

// Decide records the manager's disposition. A reservation still sitting in
// pending is pulled into manager_review first, so both writes stay on table
// edges.
func (s *reservationService) Decide(ctx context.Context, id int32, action, reviewer, notes string) (*domain.Reservation, error) {
	var target domain.ReservationStatus
	switch action {
	case "approve":
		target = domain.StatusApproved
	case "reject":
		target = domain.StatusRejected
	default:
		return nil, fmt.Errorf("unknown decision action %q", action)
	}

	rv, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rv.Status == domain.StatusPending {
		if _, err := s.transitions.Apply(ctx, id, domain.StatusManagerReview, reviewer, "review started"); err != nil {
			return nil, err
		}
	}

	rv, err = s.transitions.ApplyWith(ctx, id, target, reviewer, "manager decision: "+action,
		func(r *domain.Reservation, entry *domain.TimelineEntry) error {
			r.Decision = &domain.ManagerDecision{
				Action:    action,
				Reviewer:  reviewer,
				Notes:     notes,
				DecidedAt: time.Now().UTC(),
			}
			return nil
		})
	if err != nil {
		return nil, err
	}

	if rv.ContactEmail != "" {
		if err := s.emailSvc.SendDecisionNotification(ctx, rv.ContactEmail, rv.ContactName, rv.ReservationCode, action, notes); err != nil {
			logger.Warn("failed to send decision email", "reservation_code", rv.ReservationCode, "error", err)
		}
	}
	return rv, nil
}

// CreatePaymentOrder records the external processor's order against the
// reservation and opens the payment window. The processor computes and
// verifies the actual charge; this core only keeps the reference to match
// the later confirmation against.
func (s *reservationService) CreatePaymentOrder(ctx context.Context, id int32, processorRef string, amountCents int64, currency, actor string) (*domain.Reservation, error) {
	return s.transitions.ApplyWith(ctx, id, domain.StatusPaymentPending, actor, "payment order created",
		func(r *domain.Reservation, entry *domain.TimelineEntry) error {
			r.Payment.ProcessorRef = processorRef
			if amountCents > 0 {
				r.Payment.AmountCents = amountCents
			}
			if currency != "" {
				r.Payment.Currency = currency
			}
			return nil
		})
}

// ConfirmPayment is the manager's confirmation that funds cleared with the
// external processor. The confirmed details must match the recorded order.
func (s *reservationService) ConfirmPayment(ctx context.Context, id int32, processorRef string, amountCents int64, actor string) (*domain.Reservation, error) {
	rv, err := s.transitions.ApplyWith(ctx, id, domain.StatusPaid, actor, "payment confirmed",
		func(r *domain.Reservation, entry *domain.TimelineEntry) error {
			if r.Payment.ProcessorRef != processorRef || r.Payment.AmountCents != amountCents {
				return fmt.Errorf("confirmed %s/%d against recorded %s/%d: %w",
					processorRef, amountCents, r.Payment.ProcessorRef, r.Payment.AmountCents, domain.ErrPaymentMismatch)
			}
			now := time.Now().UTC()
			r.Payment.PaidAt = &now
			return nil
		})
	if err != nil {
		return nil, err
	}

	if rv.ContactEmail != "" {
		if err := s.emailSvc.SendPaymentReceipt(ctx, rv.ContactEmail, rv.ContactName, rv.ReservationCode, rv.Payment.AmountCents, rv.Payment.Currency); err != nil {
			logger.Warn("failed to send payment receipt email", "reservation_code", rv.ReservationCode, "error", err)
		}
	}
	return rv, nil
}

func (s *reservationService) Cancel(ctx context.Context, id int32, actor, reason string) (*domain.Reservation, error) {
	notes := "reservation cancelled"
	if reason != "" {
		notes += ": " + reason
	}
	return s.transitions.Apply(ctx, id, domain.StatusCancelled, actor, notes)
}

func (s *reservationService) CancelByCode(ctx context.Context, code, actor, reason string) (*domain.Reservation, error) {
	rv, err := s.repo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	return s.Cancel(ctx, rv.ID, actor, reason)
}

func (s *reservationService) Timeline(ctx context.Context, id int32) ([]domain.TimelineEntry, error) {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return s.repo.ListTimeline(ctx, id)
}

func newReservationCode() string {
	return "RSV-" + strings.ToUpper(uuid.NewString()[:8])
}
