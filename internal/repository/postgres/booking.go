package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"rentalops-backend/internal/domain"
	"rentalops-backend/internal/repository"
)

const bookingColumns = `id, ref, customer_id, vehicle_id, start_at, end_at, booking_amount, security_deposit,
	damage_charges, late_fee, extension_fee, paid_to_date, payment_status, refund_amount, status,
	contact_phone, damage_note, vehicle_remarks, cancel_reason, completed_at, version, created_on, updated_on`

const bookingUpdateSet = `UPDATE bookings SET end_at=$1, damage_charges=$2, late_fee=$3, extension_fee=$4,
	paid_to_date=$5, payment_status=$6, refund_amount=$7, status=$8, contact_phone=$9, damage_note=$10,
	vehicle_remarks=$11, cancel_reason=$12, completed_at=$13, version=version+1, updated_on=$14
	WHERE id=$15 AND version=$16`

type bookingRepository struct {
	db *sql.DB
}

func NewBookingRepository(db *sql.DB) repository.BookingRepository {
	return &bookingRepository{db: db}
}

func (r *bookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	query := `INSERT INTO bookings (ref, customer_id, vehicle_id, start_at, end_at, booking_amount, security_deposit,
	          paid_to_date, payment_status, status, contact_phone, version, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, 1, $12, $13) RETURNING id, version`
	now := time.Now()
	return r.db.QueryRowContext(ctx, query,
		b.Ref, b.CustomerID, b.VehicleID, b.StartAt, b.EndAt, b.BookingAmount, b.SecurityDeposit,
		b.PaidToDate, b.PaymentStatus, b.Status, b.ContactPhone, now, now,
	).Scan(&b.ID, &b.Version)
}

func (r *bookingRepository) GetByRef(ctx context.Context, ref string) (*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE ref = $1`
	b, err := scanBooking(r.db.QueryRowContext(ctx, query, ref))
	if err == sql.ErrNoRows {
		return nil, &domain.NotFoundError{Entity: "booking", Ref: ref}
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (r *bookingRepository) UpdateVersioned(ctx context.Context, b *domain.Booking) error {
	result, err := r.db.ExecContext(ctx, bookingUpdateSet, bookingUpdateArgs(b)...)
	if err != nil {
		return err
	}
	return confirmVersionedWrite(result, b)
}

func (r *bookingRepository) ApplyPayment(ctx context.Context, b *domain.Booking, p *domain.Payment) error {
	return r.inTx(ctx, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, bookingUpdateSet, bookingUpdateArgs(b)...)
		if err != nil {
			return err
		}
		if err := confirmVersionedWrite(result, b); err != nil {
			return err
		}
		return insertPaymentTx(ctx, tx, p)
	})
}

func (r *bookingRepository) ApplyExtension(ctx context.Context, b *domain.Booking, e *domain.Extension) error {
	return r.inTx(ctx, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, bookingUpdateSet, bookingUpdateArgs(b)...)
		if err != nil {
			return err
		}
		if err := confirmVersionedWrite(result, b); err != nil {
			return err
		}
		query := `INSERT INTO extensions (booking_id, previous_end_at, new_end_at, additional_amount, reason, recorded_by, created_on)
		          VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
		return tx.QueryRowContext(ctx, query,
			e.BookingID, e.PreviousEndAt, e.NewEndAt, e.AdditionalAmount, e.Reason, e.RecordedBy, e.CreatedOn,
		).Scan(&e.ID)
	})
}

func (r *bookingRepository) Settle(ctx context.Context, b *domain.Booking, finalPayment *domain.Payment) error {
	return r.inTx(ctx, func(tx *sql.Tx) error {
		// check-and-set on status: only a row still reading in_use settles
		result, err := tx.ExecContext(ctx, bookingUpdateSet+` AND status='in_use'`, bookingUpdateArgs(b)...)
		if err != nil {
			return err
		}
		if err := confirmVersionedWrite(result, b); err != nil {
			return err
		}
		if finalPayment != nil {
			return insertPaymentTx(ctx, tx, finalPayment)
		}
		return nil
	})
}

func (r *bookingRepository) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}

func bookingUpdateArgs(b *domain.Booking) []interface{} {
	return []interface{}{
		b.EndAt, b.DamageCharges, b.LateFee, b.ExtensionFee,
		b.PaidToDate, b.PaymentStatus, b.RefundAmount, b.Status, b.ContactPhone, b.DamageNote,
		b.VehicleRemarks, b.CancelReason, b.CompletedAt, time.Now(), b.ID, b.Version,
	}
}

func confirmVersionedWrite(result sql.Result, b *domain.Booking) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return &domain.ConflictError{Entity: "booking", Ref: b.Ref}
	}
	b.Version++
	return nil
}

func insertPaymentTx(ctx context.Context, tx *sql.Tx, p *domain.Payment) error {
	query := `INSERT INTO payments (ref, booking_id, amount, mode, status, recorded_by, paid_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	return tx.QueryRowContext(ctx, query,
		p.Ref, p.BookingID, p.Amount, p.Mode, p.Status, p.RecordedBy, p.PaidOn,
	).Scan(&p.ID)
}

func (r *bookingRepository) ListActive(ctx context.Context) ([]domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE status = 'in_use' AND end_at IS NOT NULL ORDER BY end_at`
	return r.list(ctx, query)
}

func (r *bookingRepository) ListOverdue(ctx context.Context, asOf time.Time) ([]domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE status = 'in_use' AND end_at < $1 ORDER BY end_at`
	return r.list(ctx, query, asOf)
}

func (r *bookingRepository) ListOpen(ctx context.Context) ([]domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE status NOT IN ('completed', 'cancelled') ORDER BY id`
	return r.list(ctx, query)
}

func (r *bookingRepository) NextRef(ctx context.Context) (string, error) {
	var seq int64
	if err := r.db.QueryRowContext(ctx, `SELECT nextval('booking_ref_seq')`).Scan(&seq); err != nil {
		return "", err
	}
	return fmt.Sprintf("BK-%06d", seq), nil
}

func (r *bookingRepository) list(ctx context.Context, query string, args ...interface{}) ([]domain.Booking, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookings []domain.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, *b)
	}
	return bookings, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	b := &domain.Booking{}
	var contactPhone, damageNote, vehicleRemarks, cancelReason sql.NullString
	var completedAt sql.NullTime
	err := row.Scan(
		&b.ID, &b.Ref, &b.CustomerID, &b.VehicleID, &b.StartAt, &b.EndAt, &b.BookingAmount, &b.SecurityDeposit,
		&b.DamageCharges, &b.LateFee, &b.ExtensionFee, &b.PaidToDate, &b.PaymentStatus, &b.RefundAmount, &b.Status,
		&contactPhone, &damageNote, &vehicleRemarks, &cancelReason, &completedAt, &b.Version, &b.CreatedOn, &b.UpdatedOn,
	)
	if err != nil {
		return nil, err
	}
	b.ContactPhone = contactPhone.String
	b.DamageNote = damageNote.String
	b.VehicleRemarks = vehicleRemarks.String
	b.CancelReason = cancelReason.String
	if completedAt.Valid {
		b.CompletedAt = &completedAt.Time
	}
	return b, nil
}
