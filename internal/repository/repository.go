package repository

import (
	"context"
	"time"

	"rentalops-backend/internal/domain"
)

type BookingRepository interface {
	Create(ctx context.Context, b *domain.Booking) error
	GetByRef(ctx context.Context, ref string) (*domain.Booking, error)
	// UpdateVersioned writes all mutable fields conditioned on the version
	// the caller read; a stale version fails with domain.ConflictError.
	UpdateVersioned(ctx context.Context, b *domain.Booking) error
	// ApplyPayment atomically writes the booking's updated payment figures
	// and appends the payment row. Version-guarded like UpdateVersioned.
	ApplyPayment(ctx context.Context, b *domain.Booking, p *domain.Payment) error
	// ApplyExtension atomically writes the booking's new end time and fee
	// total and appends the extension history row. Version-guarded.
	ApplyExtension(ctx context.Context, b *domain.Booking, e *domain.Extension) error
	// Settle finalizes the booking, additionally conditioned on the row
	// still reading in_use so two concurrent completions cannot both win.
	// A non-nil finalPayment is inserted in the same transaction.
	Settle(ctx context.Context, b *domain.Booking, finalPayment *domain.Payment) error
	// ListActive returns in_use bookings with a known end time, the
	// reminder scheduler's scan set.
	ListActive(ctx context.Context) ([]domain.Booking, error)
	// ListOverdue returns in_use bookings whose end time is before asOf.
	ListOverdue(ctx context.Context, asOf time.Time) ([]domain.Booking, error)
	// ListOpen returns non-terminal bookings, the reconciliation scan set.
	ListOpen(ctx context.Context) ([]domain.Booking, error)
	NextRef(ctx context.Context) (string, error)
}

type PaymentRepository interface {
	ListByBooking(ctx context.Context, bookingID int64) ([]domain.Payment, error)
	// SumCompleted re-derives paid-to-date from the ledger rows.
	SumCompleted(ctx context.Context, bookingID int64) (int64, error)
}

type ExtensionRepository interface {
	ListByBooking(ctx context.Context, bookingID int64) ([]domain.Extension, error)
	SumAdditional(ctx context.Context, bookingID int64) (int64, error)
}

type ReminderLogRepository interface {
	Create(ctx context.Context, r *domain.ReminderLog) error
	// SentSince reports whether any reminder for the booking was logged at
	// or after the given instant (the dedup lookback check).
	SentSince(ctx context.Context, bookingID int64, since time.Time) (bool, error)
}

type CustomerRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Customer, error)
}

type VehicleRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Vehicle, error)
}

// SettingsRepository is the key/value configuration collaborator. The second
// return value reports whether the key exists; callers fall back to their
// configured defaults when it does not.
type SettingsRepository interface {
	Get(ctx context.Context, key string) (string, bool, error)
}
