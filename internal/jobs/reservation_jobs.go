package jobs

import (
	"context"
	"fmt"
	"time"

	"petreserve-backend/internal/domain"
	"petreserve-backend/internal/logger"
)

// MarkStaleHandoverCodes flags unverified codes that expired long ago so
// reports can tell "customer never showed" apart from "code still live".
func (jr *JobRunner) MarkStaleHandoverCodes() {
	jr.runWithRecovery("mark-stale-handover-codes", func() {
		ctx := context.Background()
		cutoff := time.Now().UTC().Add(-time.Duration(jr.config.Scheduler.StaleCodeAfterHours) * time.Hour)

		refs, err := jr.repo.ListExpiredUnverifiedCodes(ctx, cutoff)
		if err != nil {
			logger.Error("listing expired unverified codes failed", "error", err)
			return
		}
		if len(refs) == 0 {
			logger.Info("no stale handover codes found")
			return
		}

		for _, ref := range refs {
			leg := ref.Leg
			_, err := jr.transitions.Mutate(ctx, ref.ReservationID, "system",
				fmt.Sprintf("%s code marked stale (expired unverified)", leg),
				func(r *domain.Reservation, entry *domain.TimelineEntry) error {
					rec := r.Leg(leg).OTP
					if rec == nil || rec.VerifiedAt != nil || rec.Stale {
						return domain.ErrConcurrentModification // raced with a fresh issue; skip
					}
					rec.Stale = true
					return nil
				})
			if err != nil {
				logger.Warn("failed to mark code stale", "reservation_id", ref.ReservationID, "leg", leg, "error", err)
				continue
			}
			logger.Info("marked handover code stale", "reservation_id", ref.ReservationID, "leg", leg)
		}
	})
}

// CancelAbandonedPayments cancels reservations that have sat in
// payment_pending beyond the configured age.
func (jr *JobRunner) CancelAbandonedPayments() {
	jr.runWithRecovery("cancel-abandoned-payments", func() {
		ctx := context.Background()
		cutoff := time.Now().UTC().Add(-time.Duration(jr.config.Scheduler.AbandonedAfterHours) * time.Hour)

		ids, err := jr.repo.ListIDsByStatusOlderThan(ctx, domain.StatusPaymentPending, cutoff)
		if err != nil {
			logger.Error("listing abandoned payment windows failed", "error", err)
			return
		}
		if len(ids) == 0 {
			logger.Info("no abandoned payment windows found")
			return
		}

		for _, id := range ids {
			_, err := jr.transitions.Apply(ctx, id, domain.StatusCancelled, "system",
				fmt.Sprintf("payment window abandoned for over %dh", jr.config.Scheduler.AbandonedAfterHours))
			if err != nil {
				logger.Warn("failed to cancel abandoned reservation", "reservation_id", id, "error", err)
				continue
			}
			logger.Info("cancelled abandoned reservation", "reservation_id", id)
		}
	})
}
