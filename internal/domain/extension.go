package domain

import "time"

// Extension records one lengthening of a booking's rental period.
// Invariant: NewEndAt is never before PreviousEndAt, and the sum of
// AdditionalAmount over a booking's extensions equals its extension_fee.
type Extension struct {
	ID               int64     `json:"id"`
	BookingID        int64     `json:"booking_id"`
	PreviousEndAt    time.Time `json:"previous_end_at"`
	NewEndAt         time.Time `json:"new_end_at"`
	AdditionalAmount int64     `json:"additional_amount"`
	Reason           string    `json:"reason,omitempty"`
	RecordedBy       string    `json:"recorded_by"`
	CreatedOn        time.Time `json:"created_on"`
}
