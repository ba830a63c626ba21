package jobs

import (
	"context"
	"errors"
	"sync/atomic"

	"rentalops-backend/internal/config"
	"rentalops-backend/internal/logger"
	"rentalops-backend/internal/messaging"
	"rentalops-backend/internal/repository"
	"rentalops-backend/internal/service"
)

// ErrJobRunning is returned when a job is triggered while its previous run
// is still executing. Overlapping runs are rejected, never queued.
var ErrJobRunning = errors.New("previous run is still executing")

// JobRunner coordinates all scheduled jobs
type JobRunner struct {
	reminders service.ReminderService
	payments  service.PaymentService
	bookings  repository.BookingRepository
	email     messaging.EmailSender
	cfg       *config.Config

	reminderRunning  int32
	reconcileRunning int32
	overdueRunning   int32
}

// NewJobRunner creates a new job runner with all dependencies
func NewJobRunner(
	reminders service.ReminderService,
	payments service.PaymentService,
	bookings repository.BookingRepository,
	email messaging.EmailSender,
	cfg *config.Config,
) *JobRunner {
	return &JobRunner{
		reminders: reminders,
		payments:  payments,
		bookings:  bookings,
		email:     email,
		cfg:       cfg,
	}
}

// guarded wraps one job run with panic recovery, a reentrancy guard and the
// configured wall-clock timeout. The guard keeps a slow run from overlapping
// the next scheduled invocation of the same job.
func (jr *JobRunner) guarded(jobName string, flag *int32, fn func(ctx context.Context) error) error {
	log := logger.WithJob(jobName)
	if !atomic.CompareAndSwapInt32(flag, 0, 1) {
		log.Warn("previous run still executing, skipping")
		return ErrJobRunning
	}
	defer atomic.StoreInt32(flag, 0)
	defer func() {
		if r := recover(); r != nil {
			log.Error("job panicked", "panic", r)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), jr.cfg.RunTimeout())
	defer cancel()

	log.Info("starting job")
	if err := fn(ctx); err != nil {
		log.Error("job failed", "error", err)
		return err
	}
	log.Info("job completed")
	return nil
}
