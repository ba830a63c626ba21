package domain

import "time"

const ReminderChannelSMS = "sms"

// ReminderLog is one successful return-reminder dispatch. It doubles as the
// dedup record: at most one row per booking, return event and interval bucket.
type ReminderLog struct {
	ID            int64     `json:"id"`
	BookingID     int64     `json:"booking_id"`
	IntervalHours int       `json:"interval_hours"`
	Channel       string    `json:"channel"`
	SentAt        time.Time `json:"sent_at"`
}

const (
	ReminderOutcomeSent    = "sent"
	ReminderOutcomeSkipped = "skipped"
	ReminderOutcomeFailed  = "failed"
)

const (
	ReminderReasonAlreadySent = "already_sent"
	ReminderReasonNoPhone     = "no_phone"
)

// ReminderOutcome is the per-booking result of one scheduler pass.
type ReminderOutcome struct {
	BookingRef    string `json:"booking_ref"`
	IntervalHours int    `json:"interval_hours"`
	Status        string `json:"status"`
	Reason        string `json:"reason,omitempty"`
}

// ReminderRunSummary is returned by every scheduler pass: how many active
// bookings were scanned, how many fell inside a notification window, and
// what happened to each of those.
type ReminderRunSummary struct {
	Scanned   int               `json:"scanned"`
	Processed int               `json:"processed"`
	Sent      int               `json:"sent"`
	Outcomes  []ReminderOutcome `json:"outcomes"`
}
