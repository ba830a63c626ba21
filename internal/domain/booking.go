package domain

import (
	"fmt"
	"time"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusInUse     BookingStatus = "in_use"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

type PaymentState string

const (
	PaymentStatePending PaymentState = "pending"
	PaymentStatePartial PaymentState = "partial"
	PaymentStateFull    PaymentState = "full"
)

// transitions lists the legal next statuses for each booking status.
// completed and cancelled are terminal.
var transitions = map[BookingStatus][]BookingStatus{
	BookingStatusPending:   {BookingStatusConfirmed, BookingStatusCancelled},
	BookingStatusConfirmed: {BookingStatusInUse, BookingStatusCancelled},
	BookingStatusInUse:     {BookingStatusCompleted},
	BookingStatusCompleted: {},
	BookingStatusCancelled: {},
}

// CanTransitionTo reports whether moving from s to next is a legal transition.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	for _, t := range transitions[s] {
		if t == next {
			return true
		}
	}
	return false
}

// Terminal reports whether no further transitions are possible from s.
func (s BookingStatus) Terminal() bool {
	return s == BookingStatusCompleted || s == BookingStatusCancelled
}

// Booking is one rental contract. All amounts are integer paise.
// PaidToDate is a cached aggregate; the payment rows are the source of truth.
type Booking struct {
	ID              int64         `json:"id"`
	Ref             string        `json:"ref"`
	CustomerID      int64         `json:"customer_id"`
	VehicleID       int64         `json:"vehicle_id"`
	StartAt         time.Time     `json:"start_at"`
	EndAt           time.Time     `json:"end_at"`
	BookingAmount   int64         `json:"booking_amount"`
	SecurityDeposit int64         `json:"security_deposit"`
	DamageCharges   int64         `json:"damage_charges"`
	LateFee         int64         `json:"late_fee"`
	ExtensionFee    int64         `json:"extension_fee"`
	PaidToDate      int64         `json:"paid_to_date"`
	PaymentStatus   PaymentState  `json:"payment_status"`
	RefundAmount    int64         `json:"refund_amount"`
	Status          BookingStatus `json:"status"`
	ContactPhone    string        `json:"contact_phone,omitempty"`
	DamageNote      string        `json:"damage_note,omitempty"`
	VehicleRemarks  string        `json:"vehicle_remarks,omitempty"`
	CancelReason    string        `json:"cancel_reason,omitempty"`
	CompletedAt     *time.Time    `json:"completed_at,omitempty"`
	Version         int64         `json:"version"`
	CreatedOn       time.Time     `json:"created_on"`
	UpdatedOn       time.Time     `json:"updated_on"`
}

// CombineDateTime merges a "2006-01-02" date and a "15:04" clock into one
// UTC instant. Date and time parts arrive separately from intake forms and
// are normalized here, at a single boundary.
func CombineDateTime(date, clock string) (time.Time, error) {
	t, err := time.Parse("2006-01-02 15:04", fmt.Sprintf("%s %s", date, clock))
	if err != nil {
		return time.Time{}, &ValidationError{Reason: fmt.Sprintf("invalid date/time %q %q", date, clock)}
	}
	return t.UTC(), nil
}
