package http

import (
	"net/http"

	"rentalops-backend/internal/domain"
)

// TriggerReturnReminders runs one reminder pass synchronously and returns
// the run summary. Re-running inside the same window is harmless: the dedup
// lookback turns repeats into skips.
func (h *Handler) TriggerReturnReminders(w http.ResponseWriter, r *http.Request) {
	summary, err := h.jobs.TriggerReturnReminders()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (h *Handler) TriggerReconcileLedger(w http.ResponseWriter, r *http.Request) {
	mismatches, err := h.jobs.TriggerReconcileLedger()
	if err != nil {
		writeError(w, err)
		return
	}
	if mismatches == nil {
		mismatches = []domain.LedgerMismatch{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"mismatches": mismatches,
	})
}
