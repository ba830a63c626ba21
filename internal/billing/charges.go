// Package billing holds the pure charge calculations for a booking. Nothing
// here touches storage; every function is deterministic in its inputs so the
// same booking always yields the same figures.
package billing

import (
	"time"

	"rentalops-backend/internal/domain"
)

// Quote is the derived monetary position of a booking.
type Quote struct {
	TotalPayable int64
	PaidToDate   int64
	Remaining    int64
	PaymentState domain.PaymentState
}

// Compute derives total payable, remaining balance and payment state.
//
// Before completion the payable total is
// booking_amount + security_deposit + damage_charges + late_fee + extension_fee.
// Once completed the security deposit drops out of the payable side (it is
// settled via the refund instead). Remaining is clamped at zero: overpayment
// is representable on the booking but never produces a negative balance.
func Compute(b *domain.Booking) Quote {
	payable := b.BookingAmount + b.DamageCharges + b.LateFee + b.ExtensionFee
	if b.Status != domain.BookingStatusCompleted {
		payable += b.SecurityDeposit
	}

	remaining := payable - b.PaidToDate
	if remaining < 0 {
		remaining = 0
	}

	state := domain.PaymentStatePending
	switch {
	case remaining == 0:
		state = domain.PaymentStateFull
	case b.PaidToDate > 0:
		state = domain.PaymentStatePartial
	}

	return Quote{
		TotalPayable: payable,
		PaidToDate:   b.PaidToDate,
		Remaining:    remaining,
		PaymentState: state,
	}
}

// DepositRefund is the security deposit net of accrued charges, clamped at
// zero. Charges beyond the deposit are collected as payable, not as a
// negative refund.
func DepositRefund(b *domain.Booking) int64 {
	refund := b.SecurityDeposit - b.DamageCharges - b.LateFee - b.ExtensionFee
	if refund < 0 {
		return 0
	}
	return refund
}

// TotalRevenue is the booking's earned amount after completion; the deposit
// is excluded since it is held, not earned.
func TotalRevenue(b *domain.Booking) int64 {
	return b.BookingAmount + b.DamageCharges + b.LateFee + b.ExtensionFee
}

// LateFee returns the configured flat fee when the actual return is past the
// scheduled end plus the grace period, zero otherwise. The flat (rather than
// prorated) policy is configuration, not hard-coded business logic.
func LateFee(scheduledEnd, returnedAt time.Time, grace time.Duration, flatFee int64) int64 {
	if returnedAt.After(scheduledEnd.Add(grace)) {
		return flatFee
	}
	return 0
}
