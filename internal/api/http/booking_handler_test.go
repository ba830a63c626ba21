package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"rentalops-backend/internal/domain"
	"rentalops-backend/internal/service"
)

// MockBookingService
type MockBookingService struct {
	mock.Mock
}

func (m *MockBookingService) Intake(ctx context.Context, in service.IntakeInput) (*domain.Booking, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}
func (m *MockBookingService) Get(ctx context.Context, ref string) (*domain.Booking, error) {
	args := m.Called(ctx, ref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}
func (m *MockBookingService) Confirm(ctx context.Context, ref string) (*domain.Booking, error) {
	args := m.Called(ctx, ref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}
func (m *MockBookingService) StartRental(ctx context.Context, ref string) (*domain.Booking, error) {
	args := m.Called(ctx, ref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}
func (m *MockBookingService) Cancel(ctx context.Context, ref, reason string) (*domain.Booking, error) {
	args := m.Called(ctx, ref, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}
func (m *MockBookingService) Extend(ctx context.Context, in service.ExtendInput) (*domain.Booking, *domain.Extension, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.Booking), args.Get(1).(*domain.Extension), args.Error(2)
}
func (m *MockBookingService) Complete(ctx context.Context, in service.CompleteInput) (*domain.Booking, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}
func (m *MockBookingService) ListExtensions(ctx context.Context, ref string) ([]domain.Extension, error) {
	args := m.Called(ctx, ref)
	return args.Get(0).([]domain.Extension), args.Error(1)
}

// MockPaymentService
type MockPaymentService struct {
	mock.Mock
}

func (m *MockPaymentService) RecordPayment(ctx context.Context, in service.RecordPaymentInput) (*domain.Payment, *domain.Booking, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.Payment), args.Get(1).(*domain.Booking), args.Error(2)
}
func (m *MockPaymentService) ListPayments(ctx context.Context, ref string) ([]domain.Payment, error) {
	args := m.Called(ctx, ref)
	return args.Get(0).([]domain.Payment), args.Error(1)
}
func (m *MockPaymentService) Reconcile(ctx context.Context) ([]domain.LedgerMismatch, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.LedgerMismatch), args.Error(1)
}

func newTestRouter(bookings *MockBookingService, payments *MockPaymentService) *httptest.Server {
	h := NewHandler(bookings, payments, nil)
	return httptest.NewServer(NewRouter(h))
}

func TestCreateBooking(t *testing.T) {
	bookings := new(MockBookingService)
	srv := newTestRouter(bookings, new(MockPaymentService))
	defer srv.Close()

	t.Run("Success", func(t *testing.T) {
		var captured service.IntakeInput
		bookings.On("Intake", mock.Anything, mock.AnythingOfType("service.IntakeInput")).
			Run(func(args mock.Arguments) {
				captured = args.Get(1).(service.IntakeInput)
			}).
			Return(&domain.Booking{Ref: "BK-000042", Status: domain.BookingStatusPending}, nil).Once()

		body := `{
			"customer_id": 1, "vehicle_id": 2,
			"start_date": "2026-09-14", "pickup_time": "10:00",
			"end_date": "2026-09-16", "dropoff_time": "18:30",
			"booking_amount": 200000, "security_deposit": 100000,
			"contact_phone": "+919900112233"
		}`
		resp, err := http.Post(srv.URL+"/api/bookings", "application/json", bytes.NewBufferString(body))
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusCreated, resp.StatusCode)

		// the two date/time parts arrive merged as one UTC instant
		assert.Equal(t, time.Date(2026, 9, 14, 10, 0, 0, 0, time.UTC), captured.StartAt)
		assert.Equal(t, time.Date(2026, 9, 16, 18, 30, 0, 0, time.UTC), captured.EndAt)

		var got domain.Booking
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
		assert.Equal(t, "BK-000042", got.Ref)
	})

	t.Run("MissingFieldsRejected", func(t *testing.T) {
		resp, err := http.Post(srv.URL+"/api/bookings", "application/json", bytes.NewBufferString(`{"customer_id": 1}`))
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		bookings.AssertNumberOfCalls(t, "Intake", 1)
	})

	t.Run("BadDateRejected", func(t *testing.T) {
		body := `{
			"customer_id": 1, "vehicle_id": 2,
			"start_date": "14/09/2026", "pickup_time": "10:00",
			"end_date": "2026-09-16", "dropoff_time": "18:30"
		}`
		resp, err := http.Post(srv.URL+"/api/bookings", "application/json", bytes.NewBufferString(body))
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestGetBookingNotFound(t *testing.T) {
	bookings := new(MockBookingService)
	srv := newTestRouter(bookings, new(MockPaymentService))
	defer srv.Close()

	bookings.On("Get", mock.Anything, "BK-999999").
		Return(nil, &domain.NotFoundError{Entity: "booking", Ref: "BK-999999"})

	resp, err := http.Get(srv.URL + "/api/bookings/BK-999999")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestConfirmIllegalTransitionConflicts(t *testing.T) {
	bookings := new(MockBookingService)
	srv := newTestRouter(bookings, new(MockPaymentService))
	defer srv.Close()

	bookings.On("Confirm", mock.Anything, "BK-000007").
		Return(nil, &domain.StateTransitionError{From: domain.BookingStatusCompleted, To: domain.BookingStatusConfirmed})

	resp, err := http.Post(srv.URL+"/api/bookings/BK-000007/confirm", "application/json", nil)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestRecordPaymentErrors(t *testing.T) {
	payments := new(MockPaymentService)
	srv := newTestRouter(new(MockBookingService), payments)
	defer srv.Close()

	t.Run("OverpaymentRejected", func(t *testing.T) {
		payments.On("RecordPayment", mock.Anything, mock.AnythingOfType("service.RecordPaymentInput")).
			Return(nil, nil, domain.NewValidationError("amount 200000 exceeds remaining balance 150000")).Once()

		body := `{"amount": 200000, "mode": "upi"}`
		resp, err := http.Post(srv.URL+"/api/bookings/BK-000011/payments", "application/json", bytes.NewBufferString(body))
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("LostRaceConflicts", func(t *testing.T) {
		payments.On("RecordPayment", mock.Anything, mock.AnythingOfType("service.RecordPaymentInput")).
			Return(nil, nil, &domain.ConflictError{Entity: "booking", Ref: "BK-000011"}).Once()

		body := `{"amount": 100, "mode": "cash"}`
		resp, err := http.Post(srv.URL+"/api/bookings/BK-000011/payments", "application/json", bytes.NewBufferString(body))
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusConflict, resp.StatusCode)
	})
}
