package domain

import "errors"

// Failure taxonomy for the reservation core. All of these are terminal,
// caller-visible failures; only ErrConcurrentModification is retried, and
// only by the transition authority itself.
var (
	ErrNotFound               = errors.New("reservation not found")
	ErrInvalidTransition      = errors.New("invalid status transition")
	ErrHandoverNotVerified    = errors.New("handover leg not verified")
	ErrLegNotScheduled        = errors.New("handover leg not scheduled")
	ErrWrongReservationState  = errors.New("reservation not in an eligible state")
	ErrCodeNotIssued          = errors.New("no code issued for this leg")
	ErrCodeExpired            = errors.New("code expired")
	ErrInvalidCode            = errors.New("invalid code")
	ErrAlreadyVerified        = errors.New("code already verified")
	ErrTooManyAttempts        = errors.New("too many failed attempts")
	ErrPaymentMismatch        = errors.New("payment details do not match recorded order")
	ErrConcurrentModification = errors.New("reservation was modified concurrently")
	ErrSubjectUnavailable     = errors.New("subject already has an active reservation")
)
