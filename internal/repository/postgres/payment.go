package postgres

import (
	"context"
	"database/sql"

	"rentalops-backend/internal/domain"
	"rentalops-backend/internal/repository"
)

type paymentRepository struct {
	db *sql.DB
}

func NewPaymentRepository(db *sql.DB) repository.PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) ListByBooking(ctx context.Context, bookingID int64) ([]domain.Payment, error) {
	query := `SELECT id, ref, booking_id, amount, mode, status, recorded_by, paid_on
	          FROM payments WHERE booking_id = $1 ORDER BY paid_on`
	rows, err := r.db.QueryContext(ctx, query, bookingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []domain.Payment
	for rows.Next() {
		var p domain.Payment
		if err := rows.Scan(&p.ID, &p.Ref, &p.BookingID, &p.Amount, &p.Mode, &p.Status, &p.RecordedBy, &p.PaidOn); err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}

func (r *paymentRepository) SumCompleted(ctx context.Context, bookingID int64) (int64, error) {
	var sum int64
	query := `SELECT COALESCE(SUM(amount), 0) FROM payments WHERE booking_id = $1 AND status = 'completed'`
	err := r.db.QueryRowContext(ctx, query, bookingID).Scan(&sum)
	return sum, err
}
