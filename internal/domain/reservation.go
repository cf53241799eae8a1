package domain

import "time"

type ReservationStatus string

const (
	StatusPending        ReservationStatus = "pending"
	StatusManagerReview  ReservationStatus = "manager_review"
	StatusApproved       ReservationStatus = "approved"
	StatusRejected       ReservationStatus = "rejected"
	StatusPaymentPending ReservationStatus = "payment_pending"
	StatusPaid           ReservationStatus = "paid"
	StatusReadyPickup    ReservationStatus = "ready_pickup"
	StatusAtOwner        ReservationStatus = "at_owner"
	StatusDelivered      ReservationStatus = "delivered"
	StatusCompleted      ReservationStatus = "completed"
	StatusCancelled      ReservationStatus = "cancelled"
)

type ReservationKind string

const (
	KindMarketplace         ReservationKind = "marketplace"
	KindCareBooking         ReservationKind = "care_booking"
	KindOnlineBooking       ReservationKind = "online_booking"
	KindOfflineVerification ReservationKind = "offline_verification"
)

type LegKind string

const (
	LegDropOff LegKind = "drop_off"
	LegPickup  LegKind = "pickup"
)

// HandoverOTP is the at-rest record of an issued one-time code. Only the
// salted hash is persisted; the plaintext code exists once, in the response
// to the issuing caller.
type HandoverOTP struct {
	CodeHash   string     `json:"code_hash"`
	Salt       string     `json:"salt"`
	IssuedAt   time.Time  `json:"issued_at"`
	ExpiresAt  time.Time  `json:"expires_at"`
	VerifiedAt *time.Time `json:"verified_at,omitempty"`
	Attempts   int32      `json:"attempts"`
	Stale      bool       `json:"stale,omitempty"`
}

// HandoverLeg is one side of the physical exchange (drop-off or pickup).
// Legs are owned by the Reservation aggregate and are never addressed or
// mutated outside its atomic-update boundary.
type HandoverLeg struct {
	OTP          *HandoverOTP `json:"otp,omitempty"`
	ScheduledFor *time.Time   `json:"scheduled_for,omitempty"`
	CompletedAt  *time.Time   `json:"completed_at,omitempty"`
	CompletedBy  string       `json:"completed_by,omitempty"`
	Location     string       `json:"location,omitempty"`
	Notes        string       `json:"notes,omitempty"`
}

type PaymentInfo struct {
	AmountCents  int64      `json:"amount_cents"`
	Currency     string     `json:"currency"`
	ProcessorRef string     `json:"processor_ref,omitempty"`
	PaidAt       *time.Time `json:"paid_at,omitempty"`
}

type ManagerDecision struct {
	Action    string    `json:"action"` // "approve" or "reject"
	Reviewer  string    `json:"reviewer"`
	Notes     string    `json:"notes,omitempty"`
	DecidedAt time.Time `json:"decided_at"`
}

type TimelineEntry struct {
	ID            int32             `json:"id"`
	ReservationID int32             `json:"reservation_id"`
	Status        ReservationStatus `json:"status"`
	Actor         string            `json:"actor"`
	Notes         string            `json:"notes,omitempty"`
	OccurredAt    time.Time         `json:"occurred_at"`
}

type Reservation struct {
	ID              int32             `json:"id"`
	ReservationCode string            `json:"reservation_code"`
	SubjectRef      string            `json:"subject_ref"`
	RequesterRef    string            `json:"requester_ref"`
	ContactName     string            `json:"contact_name"`
	ContactEmail    string            `json:"contact_email"`
	Kind            ReservationKind   `json:"kind"`
	Status          ReservationStatus `json:"status"`
	Payment         PaymentInfo       `json:"payment"`
	Decision        *ManagerDecision  `json:"decision,omitempty"`
	DropOff         HandoverLeg       `json:"drop_off"`
	Pickup          HandoverLeg       `json:"pickup"`
	Revision        int32             `json:"revision"`
	CreatedOn       time.Time         `json:"created_on"`
	UpdatedOn       time.Time         `json:"updated_on"`
	Timeline        []TimelineEntry   `json:"timeline,omitempty"`
}

// Leg returns the addressed handover leg of the aggregate. Callers mutate the
// returned leg only inside a repository-guarded read-modify-write.
func (r *Reservation) Leg(kind LegKind) *HandoverLeg {
	if kind == LegDropOff {
		return &r.DropOff
	}
	return &r.Pickup
}

// HasDropOffLeg reports whether this reservation kind involves the customer
// bringing the subject to the facility first.
func (k ReservationKind) HasDropOffLeg() bool {
	return k == KindCareBooking
}

// InitialStatus is where a fresh reservation of this kind starts. Offline
// verification flows skip straight to manager review.
func (k ReservationKind) InitialStatus() ReservationStatus {
	if k == KindOfflineVerification {
		return StatusManagerReview
	}
	return StatusPending
}

func ValidKind(k ReservationKind) bool {
	switch k {
	case KindMarketplace, KindCareBooking, KindOnlineBooking, KindOfflineVerification:
		return true
	}
	return false
}

func ValidLegKind(k LegKind) bool {
	return k == LegDropOff || k == LegPickup
}

// Staff is a facility operator account. Staff identity backs the actor field
// on manager-driven mutations; customers are identified by requester ref.
type Staff struct {
	ID           int32     `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedOn    time.Time `json:"created_on"`
}
