package postgres

import (
	"context"
	"database/sql"

	"rentalops-backend/internal/domain"
	"rentalops-backend/internal/repository"
)

type extensionRepository struct {
	db *sql.DB
}

func NewExtensionRepository(db *sql.DB) repository.ExtensionRepository {
	return &extensionRepository{db: db}
}

func (r *extensionRepository) ListByBooking(ctx context.Context, bookingID int64) ([]domain.Extension, error) {
	query := `SELECT id, booking_id, previous_end_at, new_end_at, additional_amount, reason, recorded_by, created_on
	          FROM extensions WHERE booking_id = $1 ORDER BY created_on`
	rows, err := r.db.QueryContext(ctx, query, bookingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var extensions []domain.Extension
	for rows.Next() {
		var e domain.Extension
		var reason sql.NullString
		if err := rows.Scan(&e.ID, &e.BookingID, &e.PreviousEndAt, &e.NewEndAt, &e.AdditionalAmount, &reason, &e.RecordedBy, &e.CreatedOn); err != nil {
			return nil, err
		}
		e.Reason = reason.String
		extensions = append(extensions, e)
	}
	return extensions, rows.Err()
}

func (r *extensionRepository) SumAdditional(ctx context.Context, bookingID int64) (int64, error) {
	var sum int64
	query := `SELECT COALESCE(SUM(additional_amount), 0) FROM extensions WHERE booking_id = $1`
	err := r.db.QueryRowContext(ctx, query, bookingID).Scan(&sum)
	return sum, err
}
