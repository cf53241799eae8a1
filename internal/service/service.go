package service

import (
	"context"
	"time"

	"petreserve-backend/internal/domain"
)

// MutateFunc edits the reservation aggregate inside one guarded
// read-modify-write. It may adjust the timeline entry's notes; it must not
// touch Status, which only the transition service assigns.
type MutateFunc func(r *domain.Reservation, entry *domain.TimelineEntry) error

// TransitionService is the single component allowed to mutate a reservation's
// status. It also owns the optimistic-write retry discipline, so other
// services route every aggregate mutation through it.
type TransitionService interface {
	// Apply moves the reservation along one edge of the transition table.
	Apply(ctx context.Context, id int32, target domain.ReservationStatus, actor, notes string) (*domain.Reservation, error)
	// ApplyWith additionally runs mutate on the loaded aggregate before the
	// edge is validated and written, all within the same atomic update.
	ApplyWith(ctx context.Context, id int32, target domain.ReservationStatus, actor, notes string, mutate MutateFunc) (*domain.Reservation, error)
	// Mutate edits the aggregate without a status change (leg and payment
	// bookkeeping); the timeline entry records the status at the time.
	Mutate(ctx context.Context, id int32, actor, notes string, mutate MutateFunc) (*domain.Reservation, error)
}

type CreateReservationInput struct {
	SubjectRef   string
	RequesterRef string
	ContactName  string
	ContactEmail string
	Kind         domain.ReservationKind
	AmountCents  int64
	Currency     string
	Notes        string
}

type ReservationService interface {
	Create(ctx context.Context, in CreateReservationInput) (*domain.Reservation, error)
	GetByCode(ctx context.Context, code string) (*domain.Reservation, error)
	List(ctx context.Context, requesterRef string, status domain.ReservationStatus, page, pageSize int32) ([]domain.Reservation, int32, error)
	ListForManager(ctx context.Context, status domain.ReservationStatus, page, pageSize int32) ([]domain.Reservation, int32, error)
	Decide(ctx context.Context, id int32, action, reviewer, notes string) (*domain.Reservation, error)
	CreatePaymentOrder(ctx context.Context, id int32, processorRef string, amountCents int64, currency, actor string) (*domain.Reservation, error)
	ConfirmPayment(ctx context.Context, id int32, processorRef string, amountCents int64, actor string) (*domain.Reservation, error)
	Cancel(ctx context.Context, id int32, actor, reason string) (*domain.Reservation, error)
	CancelByCode(ctx context.Context, code, actor, reason string) (*domain.Reservation, error)
	Timeline(ctx context.Context, id int32) ([]domain.TimelineEntry, error)
}

type ScheduleInput struct {
	Window   time.Time
	Location string
	Notes    string
}

type HandoverService interface {
	Schedule(ctx context.Context, id int32, leg domain.LegKind, in ScheduleInput, actor string) (*domain.Reservation, error)
	// IssueCode generates a fresh one-time code for the leg. The plaintext is
	// returned exactly once; re-issuing invalidates any prior unverified code.
	IssueCode(ctx context.Context, id int32, leg domain.LegKind, actor string) (code string, expiresAt time.Time, err error)
	// Verify checks a candidate code, seals the leg on success, and advances
	// the reservation when the leg's completion is sufficient to do so.
	Verify(ctx context.Context, id int32, leg domain.LegKind, candidate, actor string) (*domain.Reservation, error)
}

type AuthService interface {
	Login(ctx context.Context, email, password string) (token string, staff *domain.Staff, err error)
}

type EmailService interface {
	SendReservationReceived(ctx context.Context, email, name, code string, kind domain.ReservationKind) error
	SendDecisionNotification(ctx context.Context, email, name, code, action, notes string) error
	SendPaymentReceipt(ctx context.Context, email, name, code string, amountCents int64, currency string) error
	SendHandoverCode(ctx context.Context, email, name, code string, leg domain.LegKind, otpCode string, expiresAt time.Time) error
	SendHandoverCompleted(ctx context.Context, email, name, code string, leg domain.LegKind) error
}
