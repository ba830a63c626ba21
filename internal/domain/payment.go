package domain

import "time"

type PaymentMode string

const (
	PaymentModeCash         PaymentMode = "cash"
	PaymentModeUPI          PaymentMode = "upi"
	PaymentModeCard         PaymentMode = "card"
	PaymentModeBankTransfer PaymentMode = "bank_transfer"
)

func ValidPaymentMode(m PaymentMode) bool {
	switch m {
	case PaymentModeCash, PaymentModeUPI, PaymentModeCard, PaymentModeBankTransfer:
		return true
	}
	return false
}

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
)

// Payment is one customer payment event against a booking. Rows are
// append-only; corrections are new compensating rows, never edits.
type Payment struct {
	ID         int64         `json:"id"`
	Ref        string        `json:"ref"`
	BookingID  int64         `json:"booking_id"`
	Amount     int64         `json:"amount"`
	Mode       PaymentMode   `json:"mode"`
	Status     PaymentStatus `json:"status"`
	RecordedBy string        `json:"recorded_by"`
	PaidOn     time.Time     `json:"paid_on"`
}

// LedgerMismatch reports a booking whose cached paid_to_date disagrees with
// the sum of its completed payment rows.
type LedgerMismatch struct {
	BookingRef string `json:"booking_ref"`
	Cached     int64  `json:"cached"`
	Ledger     int64  `json:"ledger"`
}
