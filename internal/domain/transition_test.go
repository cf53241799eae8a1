package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTransitionTable(t *testing.T) {
	cases := []struct {
		from    ReservationStatus
		allowed []ReservationStatus
	}{
		{StatusPending, []ReservationStatus{StatusManagerReview, StatusCancelled}},
		{StatusManagerReview, []ReservationStatus{StatusApproved, StatusRejected, StatusCancelled}},
		{StatusApproved, []ReservationStatus{StatusPaymentPending, StatusCancelled}},
		{StatusPaymentPending, []ReservationStatus{StatusPaid, StatusCancelled}},
		{StatusPaid, []ReservationStatus{StatusReadyPickup, StatusAtOwner, StatusCancelled}},
		{StatusReadyPickup, []ReservationStatus{StatusCompleted, StatusCancelled}},
		{StatusAtOwner, []ReservationStatus{StatusDelivered, StatusCancelled}},
		{StatusDelivered, []ReservationStatus{StatusCompleted}},
		{StatusRejected, nil},
		{StatusCancelled, nil},
		{StatusCompleted, nil},
	}

	all := []ReservationStatus{
		StatusPending, StatusManagerReview, StatusApproved, StatusRejected,
		StatusPaymentPending, StatusPaid, StatusReadyPickup, StatusAtOwner,
		StatusDelivered, StatusCompleted, StatusCancelled,
	}

	for _, tc := range cases {
		allowed := map[ReservationStatus]bool{}
		for _, to := range tc.allowed {
			allowed[to] = true
			assert.True(t, CanTransition(tc.from, to), "%s -> %s should be legal", tc.from, to)
		}
		for _, to := range all {
			if !allowed[to] {
				assert.False(t, CanTransition(tc.from, to), "%s -> %s should be rejected", tc.from, to)
			}
		}
	}
}

func TestTerminalStates(t *testing.T) {
	for _, s := range []ReservationStatus{StatusCompleted, StatusRejected, StatusCancelled} {
		assert.True(t, s.IsTerminal(), "%s is terminal", s)
		assert.Empty(t, AllowedTargets(s))
	}
	for _, s := range []ReservationStatus{StatusPending, StatusManagerReview, StatusApproved, StatusPaymentPending, StatusPaid, StatusReadyPickup, StatusAtOwner, StatusDelivered} {
		assert.False(t, s.IsTerminal(), "%s is not terminal", s)
	}
}

func TestGatedLeg(t *testing.T) {
	leg, gated := GatedLeg(StatusReadyPickup, StatusCompleted)
	assert.True(t, gated)
	assert.Equal(t, LegPickup, leg)

	// The delivery path has no code-based gate.
	_, gated = GatedLeg(StatusDelivered, StatusCompleted)
	assert.False(t, gated)
	_, gated = GatedLeg(StatusAtOwner, StatusDelivered)
	assert.False(t, gated)
}

func TestValidStatus(t *testing.T) {
	assert.True(t, ValidStatus(StatusPaid))
	assert.False(t, ValidStatus(ReservationStatus("shipped")))
}

func TestKindDefaults(t *testing.T) {
	assert.Equal(t, StatusManagerReview, KindOfflineVerification.InitialStatus())
	assert.Equal(t, StatusPending, KindMarketplace.InitialStatus())
	assert.True(t, KindCareBooking.HasDropOffLeg())
	assert.False(t, KindMarketplace.HasDropOffLeg())
	assert.True(t, ValidKind(KindOnlineBooking))
	assert.False(t, ValidKind(ReservationKind("walk_in")))
	assert.True(t, ValidLegKind(LegDropOff))
	assert.False(t, ValidLegKind(LegKind("return")))
}
