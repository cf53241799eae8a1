package repository

import (
	"context"
	"time"

	"petreserve-backend/internal/domain"
)

// StaleCodeRef identifies one handover leg whose unverified code expired long
// enough ago to be flagged for reporting.
type StaleCodeRef struct {
	ReservationID int32
	Leg           domain.LegKind
}

type ReservationRepository interface {
	// Create persists a new reservation and its opening timeline entry in one
	// transaction. The reservation's ID and Revision are filled in.
	Create(ctx context.Context, r *domain.Reservation, entry *domain.TimelineEntry) error

	GetByID(ctx context.Context, id int32) (*domain.Reservation, error)
	GetByCode(ctx context.Context, code string) (*domain.Reservation, error)

	// Update writes the full aggregate back conditioned on the revision it was
	// read at, and appends the timeline entry in the same transaction. Returns
	// domain.ErrConcurrentModification if the row moved underneath the caller.
	// On success the reservation's Revision is bumped.
	Update(ctx context.Context, r *domain.Reservation, entry *domain.TimelineEntry) error

	ListByRequester(ctx context.Context, requesterRef string, status domain.ReservationStatus, page, pageSize int32) ([]domain.Reservation, int32, error)
	ListByStatus(ctx context.Context, status domain.ReservationStatus, page, pageSize int32) ([]domain.Reservation, int32, error)
	ListTimeline(ctx context.Context, reservationID int32) ([]domain.TimelineEntry, error)

	// HasActiveForSubject reports whether the subject is already claimed by a
	// reservation in a non-terminal state.
	HasActiveForSubject(ctx context.Context, subjectRef string) (bool, error)

	// Hygiene queries for the cron jobs.
	ListExpiredUnverifiedCodes(ctx context.Context, before time.Time) ([]StaleCodeRef, error)
	ListIDsByStatusOlderThan(ctx context.Context, status domain.ReservationStatus, before time.Time) ([]int32, error)
}

type StaffRepository interface {
	Create(ctx context.Context, s *domain.Staff) error
	GetByEmail(ctx context.Context, email string) (*domain.Staff, error)
}
