package service

import (
	"context"
	"time"

	"petreserve-backend/internal/domain"
	"petreserve-backend/internal/repository"

	"github.com/stretchr/testify/mock"
)

// MockReservationRepo
type MockReservationRepo struct {
	mock.Mock
}

func (m *MockReservationRepo) Create(ctx context.Context, r *domain.Reservation, entry *domain.TimelineEntry) error {
	args := m.Called(ctx, r, entry)
	return args.Error(0)
}
func (m *MockReservationRepo) GetByID(ctx context.Context, id int32) (*domain.Reservation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}
func (m *MockReservationRepo) GetByCode(ctx context.Context, code string) (*domain.Reservation, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}
func (m *MockReservationRepo) Update(ctx context.Context, r *domain.Reservation, entry *domain.TimelineEntry) error {
	args := m.Called(ctx, r, entry)
	return args.Error(0)
}
func (m *MockReservationRepo) ListByRequester(ctx context.Context, requesterRef string, status domain.ReservationStatus, page, pageSize int32) ([]domain.Reservation, int32, error) {
	args := m.Called(ctx, requesterRef, status, page, pageSize)
	return args.Get(0).([]domain.Reservation), args.Get(1).(int32), args.Error(2)
}
func (m *MockReservationRepo) ListByStatus(ctx context.Context, status domain.ReservationStatus, page, pageSize int32) ([]domain.Reservation, int32, error) {
	args := m.Called(ctx, status, page, pageSize)
	return args.Get(0).([]domain.Reservation), args.Get(1).(int32), args.Error(2)
}
func (m *MockReservationRepo) ListTimeline(ctx context.Context, reservationID int32) ([]domain.TimelineEntry, error) {
	args := m.Called(ctx, reservationID)
	return args.Get(0).([]domain.TimelineEntry), args.Error(1)
}
func (m *MockReservationRepo) HasActiveForSubject(ctx context.Context, subjectRef string) (bool, error) {
	args := m.Called(ctx, subjectRef)
	return args.Bool(0), args.Error(1)
}
func (m *MockReservationRepo) ListExpiredUnverifiedCodes(ctx context.Context, before time.Time) ([]repository.StaleCodeRef, error) {
	args := m.Called(ctx, before)
	return args.Get(0).([]repository.StaleCodeRef), args.Error(1)
}
func (m *MockReservationRepo) ListIDsByStatusOlderThan(ctx context.Context, status domain.ReservationStatus, before time.Time) ([]int32, error) {
	args := m.Called(ctx, status, before)
	return args.Get(0).([]int32), args.Error(1)
}

// MockStaffRepo
type MockStaffRepo struct {
	mock.Mock
}

func (m *MockStaffRepo) Create(ctx context.Context, s *domain.Staff) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}
func (m *MockStaffRepo) GetByEmail(ctx context.Context, email string) (*domain.Staff, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Staff), args.Error(1)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendReservationReceived(ctx context.Context, email, name, code string, kind domain.ReservationKind) error {
	args := m.Called(ctx, email, name, code, kind)
	return args.Error(0)
}
func (m *MockEmailService) SendDecisionNotification(ctx context.Context, email, name, code, action, notes string) error {
	args := m.Called(ctx, email, name, code, action, notes)
	return args.Error(0)
}
func (m *MockEmailService) SendPaymentReceipt(ctx context.Context, email, name, code string, amountCents int64, currency string) error {
	args := m.Called(ctx, email, name, code, amountCents, currency)
	return args.Error(0)
}
func (m *MockEmailService) SendHandoverCode(ctx context.Context, email, name, code string, leg domain.LegKind, otpCode string, expiresAt time.Time) error {
	args := m.Called(ctx, email, name, code, leg, otpCode, expiresAt)
	return args.Error(0)
}
func (m *MockEmailService) SendHandoverCompleted(ctx context.Context, email, name, code string, leg domain.LegKind) error {
	args := m.Called(ctx, email, name, code, leg)
	return args.Error(0)
}
