package domain

// transitionTable is the closed set of legal status edges. The transition
// authority rejects anything not listed here, regardless of caller intent.
// Terminal states carry no outbound edges.
var transitionTable = map[ReservationStatus][]ReservationStatus{
	StatusPending:        {StatusManagerReview, StatusCancelled},
	StatusManagerReview:  {StatusApproved, StatusRejected, StatusCancelled},
	StatusApproved:       {StatusPaymentPending, StatusCancelled},
	StatusPaymentPending: {StatusPaid, StatusCancelled},
	StatusPaid:           {StatusReadyPickup, StatusAtOwner, StatusCancelled},
	StatusReadyPickup:    {StatusCompleted, StatusCancelled},
	StatusAtOwner:        {StatusDelivered, StatusCancelled},
	StatusDelivered:      {StatusCompleted},
	StatusRejected:       {},
	StatusCancelled:      {},
	StatusCompleted:      {},
}

// AllowedTargets returns the set of statuses reachable from the given one.
func AllowedTargets(from ReservationStatus) []ReservationStatus {
	return transitionTable[from]
}

// CanTransition reports whether from -> to is an edge in the table.
func CanTransition(from, to ReservationStatus) bool {
	for _, t := range transitionTable[from] {
		if t == to {
			return true
		}
	}
	return false
}

// IsTerminal reports whether the status has no outbound edges.
func (s ReservationStatus) IsTerminal() bool {
	return len(transitionTable[s]) == 0
}

func ValidStatus(s ReservationStatus) bool {
	_, ok := transitionTable[s]
	return ok
}

// GatedLeg returns the handover leg whose completion must be proven before
// the given edge is taken. Only the OTP-gated pickup path has such a gate;
// the home-delivery path (at_owner -> delivered -> completed) carries no
// code-based proof in the current protocol.
func GatedLeg(from, to ReservationStatus) (LegKind, bool) {
	if from == StatusReadyPickup && to == StatusCompleted {
		return LegPickup, true
	}
	return "", false
}
