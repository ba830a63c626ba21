package service

import (
	"context"
	"time"

	"rentalops-backend/internal/domain"
)

// IntakeInput creates a new booking.
type IntakeInput struct {
	CustomerID      int64
	VehicleID       int64
	StartAt         time.Time
	EndAt           time.Time
	BookingAmount   int64
	SecurityDeposit int64
	ContactPhone    string
	// Confirmed intakes skip the pending stage (walk-in bookings).
	Confirmed bool
}

// ExtendInput lengthens a booking's rental period.
type ExtendInput struct {
	Ref      string
	NewEndAt time.Time
	// AdditionalAmount nil means "derive from the extension fee policy".
	AdditionalAmount *int64
	Reason           string
	Actor            string
}

// CompleteInput settles a booking at vehicle return.
type CompleteInput struct {
	Ref            string
	DamageCharges  int64
	DamageNote     string
	VehicleRemarks string
	// FinalPaymentMode is required when a balance is still outstanding;
	// completion never writes off a balance silently.
	FinalPaymentMode domain.PaymentMode
	Actor            string
}

// RecordPaymentInput appends one payment to a booking's ledger.
type RecordPaymentInput struct {
	Ref    string
	Amount int64
	Mode   domain.PaymentMode
	Actor  string
}

type BookingService interface {
	Intake(ctx context.Context, in IntakeInput) (*domain.Booking, error)
	Get(ctx context.Context, ref string) (*domain.Booking, error)
	Confirm(ctx context.Context, ref string) (*domain.Booking, error)
	StartRental(ctx context.Context, ref string) (*domain.Booking, error)
	Cancel(ctx context.Context, ref, reason string) (*domain.Booking, error)
	Extend(ctx context.Context, in ExtendInput) (*domain.Booking, *domain.Extension, error)
	Complete(ctx context.Context, in CompleteInput) (*domain.Booking, error)
	ListExtensions(ctx context.Context, ref string) ([]domain.Extension, error)
}

type PaymentService interface {
	RecordPayment(ctx context.Context, in RecordPaymentInput) (*domain.Payment, *domain.Booking, error)
	ListPayments(ctx context.Context, ref string) ([]domain.Payment, error)
	// Reconcile re-derives every open booking's paid-to-date from its
	// payment rows and reports mismatches. It never repairs the cache:
	// a mismatch is a data-integrity fault for a human to investigate.
	Reconcile(ctx context.Context) ([]domain.LedgerMismatch, error)
}

type ReminderService interface {
	Run(ctx context.Context) (*domain.ReminderRunSummary, error)
}
