package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"rentalops-backend/internal/billing"
	"rentalops-backend/internal/domain"
	"rentalops-backend/internal/logger"
	"rentalops-backend/internal/repository"
)

type paymentService struct {
	bookingRepo   repository.BookingRepository
	paymentRepo   repository.PaymentRepository
	extensionRepo repository.ExtensionRepository
}

func NewPaymentService(
	bookingRepo repository.BookingRepository,
	paymentRepo repository.PaymentRepository,
	extensionRepo repository.ExtensionRepository,
) PaymentService {
	return &paymentService{
		bookingRepo:   bookingRepo,
		paymentRepo:   paymentRepo,
		extensionRepo: extensionRepo,
	}
}

func (s *paymentService) RecordPayment(ctx context.Context, in RecordPaymentInput) (*domain.Payment, *domain.Booking, error) {
	if in.Amount <= 0 {
		return nil, nil, domain.NewValidationError("payment amount must be positive")
	}
	if !domain.ValidPaymentMode(in.Mode) {
		return nil, nil, domain.NewValidationError("unknown payment mode %q", in.Mode)
	}

	b, err := s.bookingRepo.GetByRef(ctx, in.Ref)
	if err != nil {
		return nil, nil, err
	}
	if b.Status.Terminal() {
		return nil, nil, domain.NewValidationError("no payments can be recorded on a %s booking", b.Status)
	}

	quote := billing.Compute(b)
	if in.Amount > quote.Remaining {
		return nil, nil, domain.NewValidationError("amount %d exceeds remaining balance %d", in.Amount, quote.Remaining)
	}

	p := &domain.Payment{
		Ref:        uuid.NewString(),
		BookingID:  b.ID,
		Amount:     in.Amount,
		Mode:       in.Mode,
		Status:     domain.PaymentStatusCompleted,
		RecordedBy: in.Actor,
		PaidOn:     time.Now(),
	}

	b.PaidToDate += in.Amount
	b.PaymentStatus = billing.Compute(b).PaymentState

	// Version-guarded: a concurrent write to the same booking fails here
	// with ConflictError and nothing is recorded. The caller re-reads and
	// retries; the server never re-applies a possibly stale amount.
	if err := s.bookingRepo.ApplyPayment(ctx, b, p); err != nil {
		return nil, nil, err
	}

	logger.Info("payment recorded",
		"ref", b.Ref,
		"payment_ref", p.Ref,
		"amount", p.Amount,
		"mode", p.Mode,
		"payment_status", b.PaymentStatus)
	return p, b, nil
}

func (s *paymentService) ListPayments(ctx context.Context, ref string) ([]domain.Payment, error) {
	b, err := s.bookingRepo.GetByRef(ctx, ref)
	if err != nil {
		return nil, err
	}
	return s.paymentRepo.ListByBooking(ctx, b.ID)
}

// Reconcile compares each open booking's cached paid_to_date against the sum
// of its completed payment rows, and its extension_fee against the sum of
// its extension history. Mismatches are reported, never repaired: the cache
// disagreeing with the ledger is a data-integrity fault.
func (s *paymentService) Reconcile(ctx context.Context) ([]domain.LedgerMismatch, error) {
	bookings, err := s.bookingRepo.ListOpen(ctx)
	if err != nil {
		return nil, err
	}

	var mismatches []domain.LedgerMismatch
	for i := range bookings {
		b := &bookings[i]

		ledger, err := s.paymentRepo.SumCompleted(ctx, b.ID)
		if err != nil {
			return nil, err
		}
		if ledger != b.PaidToDate {
			logger.Error("ledger mismatch",
				"ref", b.Ref,
				"cached_paid_to_date", b.PaidToDate,
				"ledger_sum", ledger)
			mismatches = append(mismatches, domain.LedgerMismatch{
				BookingRef: b.Ref,
				Cached:     b.PaidToDate,
				Ledger:     ledger,
			})
		}

		extSum, err := s.extensionRepo.SumAdditional(ctx, b.ID)
		if err != nil {
			return nil, err
		}
		if extSum != b.ExtensionFee {
			logger.Error("extension fee mismatch",
				"ref", b.Ref,
				"cached_extension_fee", b.ExtensionFee,
				"history_sum", extSum)
			mismatches = append(mismatches, domain.LedgerMismatch{
				BookingRef: b.Ref,
				Cached:     b.ExtensionFee,
				Ledger:     extSum,
			})
		}
	}
	return mismatches, nil
}
