package service

import (
	"context"
	"fmt"
	"time"

	"petreserve-backend/internal/domain"
	"petreserve-backend/internal/logger"
	"petreserve-backend/internal/otp"
	"petreserve-backend/internal/repository"
)

type handoverService struct {
	repo        repository.ReservationRepository
	transitions TransitionService
	emailSvc    EmailService
	codeTTL     time.Duration
	maxAttempts int32
}

func NewHandoverService(repo repository.ReservationRepository, transitions TransitionService, emailSvc EmailService, codeTTL time.Duration, maxAttempts int32) HandoverService {
	if codeTTL <= 0 {
		codeTTL = otp.DefaultTTL
	}
	if maxAttempts <= 0 {
		maxAttempts = otp.DefaultMaxAttempts
	}
	return &handoverService{
		repo:        repo,
		transitions: transitions,
		emailSvc:    emailSvc,
		codeTTL:     codeTTL,
		maxAttempts: maxAttempts,
	}
}

// Schedule fixes the exchange window for one leg. Scheduling the pickup leg
// of a paid reservation is what moves it to ready_pickup; rescheduling later
// leaves the status alone.
func (s *handoverService) Schedule(ctx context.Context, id int32, leg domain.LegKind, in ScheduleInput, actor string) (*domain.Reservation, error) {
	if !domain.ValidLegKind(leg) {
		return nil, fmt.Errorf("unknown handover leg %q", leg)
	}

	rv, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	mutate := func(r *domain.Reservation, entry *domain.TimelineEntry) error {
		if err := s.checkScheduleEligibility(r, leg); err != nil {
			return err
		}
		l := r.Leg(leg)
		window := in.Window
		l.ScheduledFor = &window
		l.Location = in.Location
		l.Notes = in.Notes
		return nil
	}

	notes := fmt.Sprintf("%s scheduled for %s", legLabel(leg), in.Window.Format(time.RFC3339))
	if leg == domain.LegPickup && rv.Status == domain.StatusPaid {
		return s.transitions.ApplyWith(ctx, id, domain.StatusReadyPickup, actor, notes, mutate)
	}
	return s.transitions.Mutate(ctx, id, actor, notes, mutate)
}

func (s *handoverService) checkScheduleEligibility(r *domain.Reservation, leg domain.LegKind) error {
	switch leg {
	case domain.LegPickup:
		if r.Status != domain.StatusPaid && r.Status != domain.StatusReadyPickup {
			return fmt.Errorf("pickup requires a paid reservation, have %s: %w", r.Status, domain.ErrWrongReservationState)
		}
	case domain.LegDropOff:
		if !r.Kind.HasDropOffLeg() {
			return fmt.Errorf("%s reservations have no drop-off leg: %w", r.Kind, domain.ErrWrongReservationState)
		}
		switch r.Status {
		case domain.StatusApproved, domain.StatusPaymentPending, domain.StatusPaid:
		default:
			return fmt.Errorf("drop-off requires an approved reservation, have %s: %w", r.Status, domain.ErrWrongReservationState)
		}
	}
	if r.Leg(leg).CompletedAt != nil {
		return fmt.Errorf("%s already completed: %w", legLabel(leg), domain.ErrWrongReservationState)
	}
	return nil
}

// IssueCode mints a fresh code for the leg and returns the plaintext exactly
// once. Any prior unverified code is invalidated by the overwrite.
func (s *handoverService) IssueCode(ctx context.Context, id int32, leg domain.LegKind, actor string) (string, time.Time, error) {
	if !domain.ValidLegKind(leg) {
		return "", time.Time{}, fmt.Errorf("unknown handover leg %q", leg)
	}

	rec, code, err := otp.Issue(time.Now().UTC(), s.codeTTL)
	if err != nil {
		return "", time.Time{}, err
	}

	rv, err := s.transitions.Mutate(ctx, id, actor, legLabel(leg)+" code issued",
		func(r *domain.Reservation, entry *domain.TimelineEntry) error {
			l := r.Leg(leg)
			if l.ScheduledFor == nil {
				return fmt.Errorf("%s: %w", legLabel(leg), domain.ErrLegNotScheduled)
			}
			if l.CompletedAt != nil {
				return fmt.Errorf("%s already completed: %w", legLabel(leg), domain.ErrAlreadyVerified)
			}
			cp := *rec
			l.OTP = &cp
			return nil
		})
	if err != nil {
		return "", time.Time{}, err
	}

	if rv.ContactEmail != "" {
		if err := s.emailSvc.SendHandoverCode(ctx, rv.ContactEmail, rv.ContactName, rv.ReservationCode, leg, code, rec.ExpiresAt); err != nil {
			logger.Warn("failed to send handover code email", "reservation_code", rv.ReservationCode, "leg", leg, "error", err)
		}
	}
	return code, rec.ExpiresAt, nil
}

// Verify settles a candidate code against the leg's issued record. Every
// failed comparison is persisted before the failure surfaces, so the attempt
// ceiling holds across racing callers and restarts. A successful match seals
// the leg; pickup-leg completion then drives the reservation to completed.
func (s *handoverService) Verify(ctx context.Context, id int32, leg domain.LegKind, candidate, actor string) (*domain.Reservation, error) {
	if !domain.ValidLegKind(leg) {
		return nil, fmt.Errorf("unknown handover leg %q", leg)
	}

	var mismatch error
	rv, err := s.transitions.Mutate(ctx, id, actor, legLabel(leg)+" code verification",
		func(r *domain.Reservation, entry *domain.TimelineEntry) error {
			mismatch = nil
			l := r.Leg(leg)
			rec := l.OTP
			if rec == nil {
				return fmt.Errorf("%s: %w", legLabel(leg), domain.ErrCodeNotIssued)
			}
			if rec.VerifiedAt != nil {
				return fmt.Errorf("%s: %w", legLabel(leg), domain.ErrAlreadyVerified)
			}
			now := time.Now().UTC()
			if now.After(rec.ExpiresAt) {
				return fmt.Errorf("%s: %w", legLabel(leg), domain.ErrCodeExpired)
			}
			if rec.Attempts >= s.maxAttempts {
				return fmt.Errorf("%s: %w", legLabel(leg), domain.ErrTooManyAttempts)
			}
			if !otp.Matches(rec, candidate) {
				rec.Attempts++
				mismatch = fmt.Errorf("%s: %w", legLabel(leg), domain.ErrInvalidCode)
				entry.Notes = fmt.Sprintf("%s code rejected (attempt %d)", legLabel(leg), rec.Attempts)
				return nil // persist the attempt count, then fail below
			}
			rec.VerifiedAt = &now
			rec.Attempts = 0
			l.CompletedAt = &now
			l.CompletedBy = actor
			entry.Notes = legLabel(leg) + " code accepted, leg completed"
			return nil
		})
	if err != nil {
		return nil, err
	}
	if mismatch != nil {
		return nil, mismatch
	}

	if leg == domain.LegPickup && rv.Status == domain.StatusReadyPickup {
		rv, err = s.transitions.Apply(ctx, id, domain.StatusCompleted, actor, "pickup handover completed")
		if err != nil {
			return nil, err
		}
	}

	if rv.ContactEmail != "" {
		if err := s.emailSvc.SendHandoverCompleted(ctx, rv.ContactEmail, rv.ContactName, rv.ReservationCode, leg); err != nil {
			logger.Warn("failed to send handover completion email", "reservation_code", rv.ReservationCode, "leg", leg, "error", err)
		}
	}
	return rv, nil
}

func legLabel(leg domain.LegKind) string {
	if leg == domain.LegDropOff {
		return "drop-off"
	}
	return "pickup"
}
