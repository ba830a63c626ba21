package jobs

import (
	"context"
	"fmt"
	"strings"
	"time"

	"rentalops-backend/internal/domain"
	"rentalops-backend/internal/logger"
)

// TriggerReconcileLedger re-derives every open booking's paid-to-date from
// its payment rows and reports mismatches. The cache is never rewritten; a
// mismatch is evidence of a fault to investigate, not to paper over.
func (jr *JobRunner) TriggerReconcileLedger() ([]domain.LedgerMismatch, error) {
	var mismatches []domain.LedgerMismatch
	err := jr.guarded("reconcile_ledger", &jr.reconcileRunning, func(ctx context.Context) error {
		var err error
		mismatches, err = jr.payments.Reconcile(ctx)
		if err != nil {
			return err
		}
		if len(mismatches) > 0 {
			logger.Error("ledger reconciliation found mismatches", "count", len(mismatches))
		}
		return nil
	})
	return mismatches, err
}

// ReconcileLedger is the cron entrypoint.
func (jr *JobRunner) ReconcileLedger() {
	jr.TriggerReconcileLedger()
}

// SendOverdueAlerts mails the back office a digest of in_use bookings past
// their scheduled return time.
func (jr *JobRunner) SendOverdueAlerts() {
	jr.guarded("overdue_alerts", &jr.overdueRunning, func(ctx context.Context) error {
		overdue, err := jr.bookings.ListOverdue(ctx, time.Now())
		if err != nil {
			return err
		}
		if len(overdue) == 0 {
			logger.Info("no overdue bookings")
			return nil
		}

		to := jr.cfg.Email.AlertEmail
		if to == "" {
			logger.Warn("overdue bookings found but no alert email configured", "count", len(overdue))
			return nil
		}

		var sb strings.Builder
		sb.WriteString("The following bookings are past their scheduled return time:\n\n")
		for _, b := range overdue {
			fmt.Fprintf(&sb, "  %s  due %s  paid %d of booking amount %d\n",
				b.Ref, b.EndAt.Format("2006-01-02 15:04"), b.PaidToDate, b.BookingAmount)
		}

		subject := fmt.Sprintf("Overdue vehicle returns: %d booking(s)", len(overdue))
		if err := jr.email.Send(ctx, to, subject, sb.String()); err != nil {
			return err
		}
		logger.Info("overdue alert sent", "count", len(overdue), "to", to)
		return nil
	})
}
