package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"petreserve-backend/internal/domain"
	"petreserve-backend/internal/logger"
	"petreserve-backend/internal/repository"
)

// maxWriteRetries bounds how often a lost optimistic write is retried before
// ErrConcurrentModification surfaces to the caller. Conflicts are an artifact
// of the conditional-write discipline and expected to be transient.
const maxWriteRetries = 3

type transitionService struct {
	repo repository.ReservationRepository
}

func NewTransitionService(repo repository.ReservationRepository) TransitionService {
	return &transitionService{repo: repo}
}

func (s *transitionService) Apply(ctx context.Context, id int32, target domain.ReservationStatus, actor, notes string) (*domain.Reservation, error) {
	return s.ApplyWith(ctx, id, target, actor, notes, nil)
}

func (s *transitionService) ApplyWith(ctx context.Context, id int32, target domain.ReservationStatus, actor, notes string, mutate MutateFunc) (*domain.Reservation, error) {
	if !domain.ValidStatus(target) {
		return nil, fmt.Errorf("unknown status %q: %w", target, domain.ErrInvalidTransition)
	}

	var lastErr error
	for attempt := 0; attempt < maxWriteRetries; attempt++ {
		rv, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}

		entry := &domain.TimelineEntry{
			Status:     target,
			Actor:      actor,
			Notes:      notes,
			OccurredAt: time.Now().UTC(),
		}
		if mutate != nil {
			if err := mutate(rv, entry); err != nil {
				return nil, err
			}
		}

		if !domain.CanTransition(rv.Status, target) {
			return nil, fmt.Errorf("%s -> %s: %w", rv.Status, target, domain.ErrInvalidTransition)
		}
		if leg, gated := domain.GatedLeg(rv.Status, target); gated {
			if rv.Leg(leg).CompletedAt == nil {
				return nil, fmt.Errorf("%s leg: %w", leg, domain.ErrHandoverNotVerified)
			}
		}

		rv.Status = target
		entry.Status = target

		err = s.repo.Update(ctx, rv, entry)
		if err == nil {
			return rv, nil
		}
		if !errors.Is(err, domain.ErrConcurrentModification) {
			return nil, err
		}
		lastErr = err
		logger.Debug("retrying lost optimistic write", "reservation_id", id, "target", target, "attempt", attempt+1)
	}
	return nil, lastErr
}

func (s *transitionService) Mutate(ctx context.Context, id int32, actor, notes string, mutate MutateFunc) (*domain.Reservation, error) {
	var lastErr error
	for attempt := 0; attempt < maxWriteRetries; attempt++ {
		rv, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}

		entry := &domain.TimelineEntry{
			Actor:      actor,
			Notes:      notes,
			OccurredAt: time.Now().UTC(),
		}
		if err := mutate(rv, entry); err != nil {
			return nil, err
		}
		entry.Status = rv.Status

		err = s.repo.Update(ctx, rv, entry)
		if err == nil {
			return rv, nil
		}
		if !errors.Is(err, domain.ErrConcurrentModification) {
			return nil, err
		}
		lastErr = err
		logger.Debug("retrying lost optimistic write", "reservation_id", id, "attempt", attempt+1)
	}
	return nil, lastErr
}
