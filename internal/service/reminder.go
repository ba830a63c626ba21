package service

import (
	"context"
	"fmt"
	"time"

	"rentalops-backend/internal/config"
	"rentalops-backend/internal/domain"
	"rentalops-backend/internal/logger"
	"rentalops-backend/internal/messaging"
	"rentalops-backend/internal/repository"
)

type reminderService struct {
	bookingRepo  repository.BookingRepository
	customerRepo repository.CustomerRepository
	vehicleRepo  repository.VehicleRepository
	reminderRepo repository.ReminderLogRepository
	settingsRepo repository.SettingsRepository
	messenger    messaging.Messenger
	defaults     config.ReminderConfig
}

func NewReminderService(
	bookingRepo repository.BookingRepository,
	customerRepo repository.CustomerRepository,
	vehicleRepo repository.VehicleRepository,
	reminderRepo repository.ReminderLogRepository,
	settingsRepo repository.SettingsRepository,
	messenger messaging.Messenger,
	defaults config.ReminderConfig,
) ReminderService {
	return &reminderService{
		bookingRepo:  bookingRepo,
		customerRepo: customerRepo,
		vehicleRepo:  vehicleRepo,
		reminderRepo: reminderRepo,
		settingsRepo: settingsRepo,
		messenger:    messenger,
		defaults:     defaults,
	}
}

// Run is one scheduler pass over the active bookings. Repeated invocations
// inside the same window are no-ops thanks to the dedup lookback, so the
// pass is safe to trigger as often as the cron cadence requires. A failure
// to load settings or the booking list aborts the run; a failure on one
// booking is recorded in the summary and the pass continues.
func (s *reminderService) Run(ctx context.Context) (*domain.ReminderRunSummary, error) {
	settings, err := LoadReminderSettings(ctx, s.settingsRepo, s.defaults)
	if err != nil {
		return nil, err
	}

	summary := &domain.ReminderRunSummary{}
	if !settings.Enabled {
		logger.Info("return reminders disabled, nothing to do")
		return summary, nil
	}

	bookings, err := s.bookingRepo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading active bookings: %w", err)
	}
	summary.Scanned = len(bookings)

	now := time.Now()
	for i := range bookings {
		b := &bookings[i]

		interval, ok := matchInterval(now, b.EndAt, settings.IntervalsHours)
		if !ok {
			continue
		}
		summary.Processed++

		outcome := s.remind(ctx, b, interval, now, settings)
		summary.Outcomes = append(summary.Outcomes, outcome)
		if outcome.Status == domain.ReminderOutcomeSent {
			summary.Sent++
		}

		// pace external sends; the gateway rate-limits us
		if i < len(bookings)-1 {
			select {
			case <-ctx.Done():
				return summary, ctx.Err()
			case <-time.After(settings.SendGap):
			}
		}
	}

	logger.Info("reminder run finished",
		"scanned", summary.Scanned,
		"processed", summary.Processed,
		"sent", summary.Sent)
	return summary, nil
}

// matchInterval finds the configured interval whose one-hour trailing window
// contains the time left until return: interval-1 < hoursUntil <= interval.
// Overdue bookings (negative hours) never match.
func matchInterval(now, endAt time.Time, intervals []int) (int, bool) {
	hoursUntil := endAt.Sub(now).Hours()
	for _, iv := range intervals {
		if float64(iv-1) < hoursUntil && hoursUntil <= float64(iv) {
			return iv, true
		}
	}
	return 0, false
}

func (s *reminderService) remind(ctx context.Context, b *domain.Booking, interval int, now time.Time, settings ReminderSettings) domain.ReminderOutcome {
	outcome := domain.ReminderOutcome{BookingRef: b.Ref, IntervalHours: interval}

	sent, err := s.reminderRepo.SentSince(ctx, b.ID, now.Add(-settings.Lookback))
	if err != nil {
		logger.Error("dedup check failed", "ref", b.Ref, "error", err)
		outcome.Status = domain.ReminderOutcomeFailed
		outcome.Reason = err.Error()
		return outcome
	}
	if sent {
		outcome.Status = domain.ReminderOutcomeSkipped
		outcome.Reason = domain.ReminderReasonAlreadySent
		return outcome
	}

	phone := s.resolvePhone(ctx, b)
	if phone == "" {
		outcome.Status = domain.ReminderOutcomeSkipped
		outcome.Reason = domain.ReminderReasonNoPhone
		return outcome
	}

	msg := messaging.ReminderMessage{
		BookingRef: b.Ref,
		ReturnTime: b.EndAt,
	}
	if v, err := s.vehicleRepo.GetByID(ctx, b.VehicleID); err == nil {
		msg.VehicleModel = v.Model
		msg.RegistrationNo = v.RegistrationNo
		msg.ReturnLocation = v.Location
	} else {
		logger.Warn("vehicle lookup failed, sending reminder without vehicle details", "ref", b.Ref, "error", err)
	}

	if err := s.messenger.SendReturnReminder(ctx, phone, msg); err != nil {
		logger.Error("reminder dispatch failed", "ref", b.Ref, "error", err)
		outcome.Status = domain.ReminderOutcomeFailed
		outcome.Reason = err.Error()
		return outcome
	}

	entry := &domain.ReminderLog{
		BookingID:     b.ID,
		IntervalHours: interval,
		Channel:       domain.ReminderChannelSMS,
		SentAt:        now,
	}
	if err := s.reminderRepo.Create(ctx, entry); err != nil {
		// the reminder went out; a missing log entry only weakens dedup
		logger.Error("failed to log sent reminder", "ref", b.Ref, "error", err)
	}

	outcome.Status = domain.ReminderOutcomeSent
	return outcome
}

// resolvePhone prefers the booking's own contact number and falls back to
// the linked customer record.
func (s *reminderService) resolvePhone(ctx context.Context, b *domain.Booking) string {
	if b.ContactPhone != "" {
		return b.ContactPhone
	}
	c, err := s.customerRepo.GetByID(ctx, b.CustomerID)
	if err != nil {
		logger.Warn("customer lookup failed", "ref", b.Ref, "customer_id", b.CustomerID, "error", err)
		return ""
	}
	return c.Phone
}
