package postgres

import (
	"context"
	"database/sql"
	"time"

	"rentalops-backend/internal/domain"
	"rentalops-backend/internal/repository"
)

type reminderLogRepository struct {
	db *sql.DB
}

func NewReminderLogRepository(db *sql.DB) repository.ReminderLogRepository {
	return &reminderLogRepository{db: db}
}

func (r *reminderLogRepository) Create(ctx context.Context, rl *domain.ReminderLog) error {
	query := `INSERT INTO reminder_log (booking_id, interval_hours, channel, sent_at)
	          VALUES ($1, $2, $3, $4) RETURNING id`
	if rl.SentAt.IsZero() {
		rl.SentAt = time.Now()
	}
	return r.db.QueryRowContext(ctx, query,
		rl.BookingID, rl.IntervalHours, rl.Channel, rl.SentAt,
	).Scan(&rl.ID)
}

func (r *reminderLogRepository) SentSince(ctx context.Context, bookingID int64, since time.Time) (bool, error) {
	var count int
	query := `SELECT count(*) FROM reminder_log WHERE booking_id = $1 AND sent_at >= $2`
	if err := r.db.QueryRowContext(ctx, query, bookingID, since).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}
