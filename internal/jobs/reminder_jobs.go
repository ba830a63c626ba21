package jobs

import (
	"context"

	"rentalops-backend/internal/domain"
)

// TriggerReturnReminders runs one reminder pass and returns its summary.
// Called from the HTTP trigger endpoint; ErrJobRunning when a pass is
// already in flight.
func (jr *JobRunner) TriggerReturnReminders() (*domain.ReminderRunSummary, error) {
	var summary *domain.ReminderRunSummary
	err := jr.guarded("return_reminders", &jr.reminderRunning, func(ctx context.Context) error {
		var err error
		summary, err = jr.reminders.Run(ctx)
		return err
	})
	return summary, err
}

// SendReturnReminders is the cron entrypoint; the summary is logged by the
// reminder service itself.
func (jr *JobRunner) SendReturnReminders() {
	jr.TriggerReturnReminders()
}
