package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"rentalops-backend/internal/domain"
	"rentalops-backend/internal/messaging"
)

// MockBookingRepo
type MockBookingRepo struct {
	mock.Mock
}

func (m *MockBookingRepo) Create(ctx context.Context, b *domain.Booking) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}
func (m *MockBookingRepo) GetByRef(ctx context.Context, ref string) (*domain.Booking, error) {
	args := m.Called(ctx, ref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}
func (m *MockBookingRepo) UpdateVersioned(ctx context.Context, b *domain.Booking) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}
func (m *MockBookingRepo) ApplyPayment(ctx context.Context, b *domain.Booking, p *domain.Payment) error {
	args := m.Called(ctx, b, p)
	return args.Error(0)
}
func (m *MockBookingRepo) ApplyExtension(ctx context.Context, b *domain.Booking, e *domain.Extension) error {
	args := m.Called(ctx, b, e)
	return args.Error(0)
}
func (m *MockBookingRepo) Settle(ctx context.Context, b *domain.Booking, finalPayment *domain.Payment) error {
	args := m.Called(ctx, b, finalPayment)
	return args.Error(0)
}
func (m *MockBookingRepo) ListActive(ctx context.Context) ([]domain.Booking, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Booking), args.Error(1)
}
func (m *MockBookingRepo) ListOverdue(ctx context.Context, asOf time.Time) ([]domain.Booking, error) {
	args := m.Called(ctx, asOf)
	return args.Get(0).([]domain.Booking), args.Error(1)
}
func (m *MockBookingRepo) ListOpen(ctx context.Context) ([]domain.Booking, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Booking), args.Error(1)
}
func (m *MockBookingRepo) NextRef(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

// MockPaymentRepo
type MockPaymentRepo struct {
	mock.Mock
}

func (m *MockPaymentRepo) ListByBooking(ctx context.Context, bookingID int64) ([]domain.Payment, error) {
	args := m.Called(ctx, bookingID)
	return args.Get(0).([]domain.Payment), args.Error(1)
}
func (m *MockPaymentRepo) SumCompleted(ctx context.Context, bookingID int64) (int64, error) {
	args := m.Called(ctx, bookingID)
	return args.Get(0).(int64), args.Error(1)
}

// MockExtensionRepo
type MockExtensionRepo struct {
	mock.Mock
}

func (m *MockExtensionRepo) ListByBooking(ctx context.Context, bookingID int64) ([]domain.Extension, error) {
	args := m.Called(ctx, bookingID)
	return args.Get(0).([]domain.Extension), args.Error(1)
}
func (m *MockExtensionRepo) SumAdditional(ctx context.Context, bookingID int64) (int64, error) {
	args := m.Called(ctx, bookingID)
	return args.Get(0).(int64), args.Error(1)
}

// MockReminderLogRepo
type MockReminderLogRepo struct {
	mock.Mock
}

func (m *MockReminderLogRepo) Create(ctx context.Context, r *domain.ReminderLog) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}
func (m *MockReminderLogRepo) SentSince(ctx context.Context, bookingID int64, since time.Time) (bool, error) {
	args := m.Called(ctx, bookingID, since)
	return args.Bool(0), args.Error(1)
}

// MockCustomerRepo
type MockCustomerRepo struct {
	mock.Mock
}

func (m *MockCustomerRepo) GetByID(ctx context.Context, id int64) (*domain.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}

// MockVehicleRepo
type MockVehicleRepo struct {
	mock.Mock
}

func (m *MockVehicleRepo) GetByID(ctx context.Context, id int64) (*domain.Vehicle, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Vehicle), args.Error(1)
}

// MockSettingsRepo backs its Get off a plain map; tests that need errors or
// malformed values use MockSettingsRepoErr instead.
type MockSettingsRepo struct {
	values map[string]string
}

func (m *MockSettingsRepo) Get(_ context.Context, key string) (string, bool, error) {
	v, ok := m.values[key]
	return v, ok, nil
}

// MockMessenger
type MockMessenger struct {
	mock.Mock
}

func (m *MockMessenger) SendReturnReminder(ctx context.Context, phone string, msg messaging.ReminderMessage) error {
	args := m.Called(ctx, phone, msg)
	return args.Error(0)
}
