package api

import (
	"context"
	"time"

	"petreserve-backend/internal/domain"
	"petreserve-backend/internal/service"

	"github.com/stretchr/testify/mock"
)

// MockReservationService
type MockReservationService struct {
	mock.Mock
}

func (m *MockReservationService) Create(ctx context.Context, in service.CreateReservationInput) (*domain.Reservation, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}
func (m *MockReservationService) GetByCode(ctx context.Context, code string) (*domain.Reservation, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}
func (m *MockReservationService) List(ctx context.Context, requesterRef string, status domain.ReservationStatus, page, pageSize int32) ([]domain.Reservation, int32, error) {
	args := m.Called(ctx, requesterRef, status, page, pageSize)
	return args.Get(0).([]domain.Reservation), args.Get(1).(int32), args.Error(2)
}
func (m *MockReservationService) ListForManager(ctx context.Context, status domain.ReservationStatus, page, pageSize int32) ([]domain.Reservation, int32, error) {
	args := m.Called(ctx, status, page, pageSize)
	return args.Get(0).([]domain.Reservation), args.Get(1).(int32), args.Error(2)
}
func (m *MockReservationService) Decide(ctx context.Context, id int32, action, reviewer, notes string) (*domain.Reservation, error) {
	args := m.Called(ctx, id, action, reviewer, notes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}
func (m *MockReservationService) CreatePaymentOrder(ctx context.Context, id int32, processorRef string, amountCents int64, currency, actor string) (*domain.Reservation, error) {
	args := m.Called(ctx, id, processorRef, amountCents, currency, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}
func (m *MockReservationService) ConfirmPayment(ctx context.Context, id int32, processorRef string, amountCents int64, actor string) (*domain.Reservation, error) {
	args := m.Called(ctx, id, processorRef, amountCents, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}
func (m *MockReservationService) Cancel(ctx context.Context, id int32, actor, reason string) (*domain.Reservation, error) {
	args := m.Called(ctx, id, actor, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}
func (m *MockReservationService) CancelByCode(ctx context.Context, code, actor, reason string) (*domain.Reservation, error) {
	args := m.Called(ctx, code, actor, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}
func (m *MockReservationService) Timeline(ctx context.Context, id int32) ([]domain.TimelineEntry, error) {
	args := m.Called(ctx, id)
	return args.Get(0).([]domain.TimelineEntry), args.Error(1)
}

// MockHandoverService
type MockHandoverService struct {
	mock.Mock
}

func (m *MockHandoverService) Schedule(ctx context.Context, id int32, leg domain.LegKind, in service.ScheduleInput, actor string) (*domain.Reservation, error) {
	args := m.Called(ctx, id, leg, in, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}
func (m *MockHandoverService) IssueCode(ctx context.Context, id int32, leg domain.LegKind, actor string) (string, time.Time, error) {
	args := m.Called(ctx, id, leg, actor)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}
func (m *MockHandoverService) Verify(ctx context.Context, id int32, leg domain.LegKind, candidate, actor string) (*domain.Reservation, error) {
	args := m.Called(ctx, id, leg, candidate, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}

// MockTransitionService
type MockTransitionService struct {
	mock.Mock
}

func (m *MockTransitionService) Apply(ctx context.Context, id int32, target domain.ReservationStatus, actor, notes string) (*domain.Reservation, error) {
	args := m.Called(ctx, id, target, actor, notes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}
func (m *MockTransitionService) ApplyWith(ctx context.Context, id int32, target domain.ReservationStatus, actor, notes string, mutate service.MutateFunc) (*domain.Reservation, error) {
	args := m.Called(ctx, id, target, actor, notes, mutate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}
func (m *MockTransitionService) Mutate(ctx context.Context, id int32, actor, notes string, mutate service.MutateFunc) (*domain.Reservation, error) {
	args := m.Called(ctx, id, actor, notes, mutate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}

// MockAuthService
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (string, *domain.Staff, error) {
	args := m.Called(ctx, email, password)
	if args.Get(1) == nil {
		return args.String(0), nil, args.Error(2)
	}
	return args.String(0), args.Get(1).(*domain.Staff), args.Error(2)
}
