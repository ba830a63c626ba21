package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"rentalops-backend/internal/billing"
	"rentalops-backend/internal/config"
	"rentalops-backend/internal/domain"
	"rentalops-backend/internal/logger"
	"rentalops-backend/internal/repository"
)

type bookingService struct {
	bookingRepo   repository.BookingRepository
	extensionRepo repository.ExtensionRepository
	settingsRepo  repository.SettingsRepository
	feeDefaults   config.FeeConfig
}

func NewBookingService(
	bookingRepo repository.BookingRepository,
	extensionRepo repository.ExtensionRepository,
	settingsRepo repository.SettingsRepository,
	feeDefaults config.FeeConfig,
) BookingService {
	return &bookingService{
		bookingRepo:   bookingRepo,
		extensionRepo: extensionRepo,
		settingsRepo:  settingsRepo,
		feeDefaults:   feeDefaults,
	}
}

func (s *bookingService) Intake(ctx context.Context, in IntakeInput) (*domain.Booking, error) {
	if in.BookingAmount < 0 || in.SecurityDeposit < 0 {
		return nil, domain.NewValidationError("booking amount and security deposit must not be negative")
	}
	if !in.EndAt.After(in.StartAt) {
		return nil, domain.NewValidationError("end time must be after start time")
	}

	ref, err := s.bookingRepo.NextRef(ctx)
	if err != nil {
		return nil, err
	}

	status := domain.BookingStatusPending
	if in.Confirmed {
		status = domain.BookingStatusConfirmed
	}

	b := &domain.Booking{
		Ref:             ref,
		CustomerID:      in.CustomerID,
		VehicleID:       in.VehicleID,
		StartAt:         in.StartAt,
		EndAt:           in.EndAt,
		BookingAmount:   in.BookingAmount,
		SecurityDeposit: in.SecurityDeposit,
		PaymentStatus:   domain.PaymentStatePending,
		Status:          status,
		ContactPhone:    in.ContactPhone,
	}
	if err := s.bookingRepo.Create(ctx, b); err != nil {
		return nil, err
	}

	logger.Info("booking created", "ref", b.Ref, "status", b.Status, "amount", b.BookingAmount)
	return b, nil
}

func (s *bookingService) Get(ctx context.Context, ref string) (*domain.Booking, error) {
	return s.bookingRepo.GetByRef(ctx, ref)
}

func (s *bookingService) Confirm(ctx context.Context, ref string) (*domain.Booking, error) {
	return s.transition(ctx, ref, domain.BookingStatusConfirmed, func(b *domain.Booking) error {
		return nil
	})
}

func (s *bookingService) StartRental(ctx context.Context, ref string) (*domain.Booking, error) {
	return s.transition(ctx, ref, domain.BookingStatusInUse, func(b *domain.Booking) error {
		if time.Now().Before(b.StartAt) {
			return domain.NewValidationError("pickup is not permitted before the scheduled start %s", b.StartAt.Format(time.RFC3339))
		}
		return nil
	})
}

func (s *bookingService) Cancel(ctx context.Context, ref, reason string) (*domain.Booking, error) {
	// Cancellation does not auto-refund; refunds are a separate manual step.
	return s.transition(ctx, ref, domain.BookingStatusCancelled, func(b *domain.Booking) error {
		b.CancelReason = reason
		return nil
	})
}

// transition applies one status change after checking it against the state
// machine, then writes version-guarded.
func (s *bookingService) transition(ctx context.Context, ref string, to domain.BookingStatus, mutate func(*domain.Booking) error) (*domain.Booking, error) {
	b, err := s.bookingRepo.GetByRef(ctx, ref)
	if err != nil {
		return nil, err
	}
	if !b.Status.CanTransitionTo(to) {
		return nil, &domain.StateTransitionError{From: b.Status, To: to}
	}
	if err := mutate(b); err != nil {
		return nil, err
	}
	from := b.Status
	b.Status = to
	if err := s.bookingRepo.UpdateVersioned(ctx, b); err != nil {
		return nil, err
	}
	logger.Info("booking transitioned", "ref", b.Ref, "from", from, "to", to)
	return b, nil
}

func (s *bookingService) Extend(ctx context.Context, in ExtendInput) (*domain.Booking, *domain.Extension, error) {
	b, err := s.bookingRepo.GetByRef(ctx, in.Ref)
	if err != nil {
		return nil, nil, err
	}
	if b.Status != domain.BookingStatusConfirmed && b.Status != domain.BookingStatusInUse {
		return nil, nil, domain.NewValidationError("booking %s cannot be extended while %s", b.Ref, b.Status)
	}
	if !in.NewEndAt.After(b.EndAt) {
		return nil, nil, domain.NewValidationError("new end %s must be after current end %s",
			in.NewEndAt.Format(time.RFC3339), b.EndAt.Format(time.RFC3339))
	}

	additional, err := s.extensionCharge(ctx, b, in)
	if err != nil {
		return nil, nil, err
	}

	ext := &domain.Extension{
		BookingID:        b.ID,
		PreviousEndAt:    b.EndAt,
		NewEndAt:         in.NewEndAt,
		AdditionalAmount: additional,
		Reason:           in.Reason,
		RecordedBy:       in.Actor,
		CreatedOn:        time.Now(),
	}

	b.EndAt = in.NewEndAt
	b.ExtensionFee += additional
	b.PaymentStatus = billing.Compute(b).PaymentState

	if err := s.bookingRepo.ApplyExtension(ctx, b, ext); err != nil {
		return nil, nil, err
	}

	logger.Info("booking extended", "ref", b.Ref, "new_end", b.EndAt, "additional", additional)
	return b, ext, nil
}

// extensionCharge resolves the fee for one extension: the caller's explicit
// amount if given, otherwise the configured flat fee once the added time
// exceeds the free threshold.
func (s *bookingService) extensionCharge(ctx context.Context, b *domain.Booking, in ExtendInput) (int64, error) {
	if in.AdditionalAmount != nil {
		if *in.AdditionalAmount < 0 {
			return 0, domain.NewValidationError("extension amount must not be negative")
		}
		return *in.AdditionalAmount, nil
	}
	fees, err := LoadFeeSettings(ctx, s.settingsRepo, s.feeDefaults)
	if err != nil {
		return 0, err
	}
	if in.NewEndAt.Sub(b.EndAt) > fees.ExtensionThreshold {
		return fees.ExtensionFeeAmount, nil
	}
	return 0, nil
}

func (s *bookingService) Complete(ctx context.Context, in CompleteInput) (*domain.Booking, error) {
	if in.DamageCharges < 0 {
		return nil, domain.NewValidationError("damage charges must not be negative")
	}

	b, err := s.bookingRepo.GetByRef(ctx, in.Ref)
	if err != nil {
		return nil, err
	}
	if b.Status != domain.BookingStatusInUse {
		return nil, &domain.StateTransitionError{From: b.Status, To: domain.BookingStatusCompleted}
	}

	fees, err := LoadFeeSettings(ctx, s.settingsRepo, s.feeDefaults)
	if err != nil {
		return nil, err
	}

	now := time.Now()

	// The outstanding balance is assessed on the booking as it stood before
	// return: completion-time damage and late fee settle against the deposit
	// through the refund, never as a second collection.
	quote := billing.Compute(b)
	var finalPayment *domain.Payment
	if quote.Remaining > 0 {
		if in.FinalPaymentMode == "" {
			return nil, domain.NewValidationError("outstanding balance of %d must be collected before completion", quote.Remaining)
		}
		if !domain.ValidPaymentMode(in.FinalPaymentMode) {
			return nil, domain.NewValidationError("unknown payment mode %q", in.FinalPaymentMode)
		}
		finalPayment = &domain.Payment{
			Ref:        uuid.NewString(),
			BookingID:  b.ID,
			Amount:     quote.Remaining,
			Mode:       in.FinalPaymentMode,
			Status:     domain.PaymentStatusCompleted,
			RecordedBy: in.Actor,
			PaidOn:     now,
		}
		b.PaidToDate += quote.Remaining
	}

	b.DamageCharges = in.DamageCharges
	b.DamageNote = in.DamageNote
	b.VehicleRemarks = in.VehicleRemarks
	b.LateFee = billing.LateFee(b.EndAt, now, fees.GracePeriod, fees.LateFeeAmount)

	b.Status = domain.BookingStatusCompleted
	b.CompletedAt = &now
	b.RefundAmount = billing.DepositRefund(b)
	b.PaymentStatus = billing.Compute(b).PaymentState

	if err := s.bookingRepo.Settle(ctx, b, finalPayment); err != nil {
		return nil, err
	}

	logger.Info("booking settled",
		"ref", b.Ref,
		"damage_charges", b.DamageCharges,
		"late_fee", b.LateFee,
		"refund", b.RefundAmount)
	return b, nil
}

func (s *bookingService) ListExtensions(ctx context.Context, ref string) ([]domain.Extension, error) {
	b, err := s.bookingRepo.GetByRef(ctx, ref)
	if err != nil {
		return nil, err
	}
	return s.extensionRepo.ListByBooking(ctx, b.ID)
}
