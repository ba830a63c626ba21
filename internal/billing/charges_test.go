package billing

import (
	"testing"
	"time"

	"rentalops-backend/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestCompute_BeforeCompletion(t *testing.T) {
	b := &domain.Booking{
		BookingAmount:   200000,
		SecurityDeposit: 100000,
		DamageCharges:   5000,
		LateFee:         2000,
		ExtensionFee:    3000,
		PaidToDate:      0,
		Status:          domain.BookingStatusInUse,
	}

	q := Compute(b)
	assert.Equal(t, int64(310000), q.TotalPayable)
	assert.Equal(t, int64(310000), q.Remaining)
	assert.Equal(t, domain.PaymentStatePending, q.PaymentState)
}

func TestCompute_PartialPayments(t *testing.T) {
	// booking 2000, deposit 1000, pay 1500 then 1500
	b := &domain.Booking{
		BookingAmount:   200000,
		SecurityDeposit: 100000,
		Status:          domain.BookingStatusInUse,
	}

	b.PaidToDate = 150000
	q := Compute(b)
	assert.Equal(t, int64(300000), q.TotalPayable)
	assert.Equal(t, int64(150000), q.Remaining)
	assert.Equal(t, domain.PaymentStatePartial, q.PaymentState)

	b.PaidToDate = 300000
	q = Compute(b)
	assert.Equal(t, int64(0), q.Remaining)
	assert.Equal(t, domain.PaymentStateFull, q.PaymentState)
}

func TestCompute_AfterCompletion(t *testing.T) {
	b := &domain.Booking{
		BookingAmount:   200000,
		SecurityDeposit: 100000,
		DamageCharges:   30000,
		PaidToDate:      300000,
		Status:          domain.BookingStatusCompleted,
	}

	q := Compute(b)
	// deposit excluded from payable once completed
	assert.Equal(t, int64(230000), q.TotalPayable)
	assert.Equal(t, int64(0), q.Remaining)
	assert.Equal(t, domain.PaymentStateFull, q.PaymentState)
	assert.Equal(t, int64(230000), TotalRevenue(b))
}

func TestCompute_OverpaymentClampsRemaining(t *testing.T) {
	b := &domain.Booking{
		BookingAmount: 100000,
		PaidToDate:    120000,
		Status:        domain.BookingStatusConfirmed,
	}

	q := Compute(b)
	assert.Equal(t, int64(0), q.Remaining)
	assert.Equal(t, domain.PaymentStateFull, q.PaymentState)
}

func TestCompute_Deterministic(t *testing.T) {
	b := &domain.Booking{
		BookingAmount:   200000,
		SecurityDeposit: 100000,
		PaidToDate:      50000,
		Status:          domain.BookingStatusInUse,
	}

	first := Compute(b)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, Compute(b))
	}
}

func TestDepositRefund(t *testing.T) {
	tests := []struct {
		name     string
		deposit  int64
		damage   int64
		lateFee  int64
		extFee   int64
		expected int64
	}{
		{"no charges", 100000, 0, 0, 0, 100000},
		{"partial damage", 100000, 30000, 0, 0, 70000},
		{"charges exceed deposit", 100000, 120000, 0, 0, 0},
		{"all charge types", 100000, 40000, 20000, 10000, 30000},
		{"exactly consumed", 100000, 50000, 30000, 20000, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := &domain.Booking{
				SecurityDeposit: tt.deposit,
				DamageCharges:   tt.damage,
				LateFee:         tt.lateFee,
				ExtensionFee:    tt.extFee,
			}
			assert.Equal(t, tt.expected, DepositRefund(b))
		})
	}
}

func TestLateFee(t *testing.T) {
	end := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	grace := 2 * time.Hour
	flat := int64(50000)

	t.Run("returned before end", func(t *testing.T) {
		assert.Equal(t, int64(0), LateFee(end, end.Add(-30*time.Minute), grace, flat))
	})

	t.Run("returned inside grace window", func(t *testing.T) {
		assert.Equal(t, int64(0), LateFee(end, end.Add(grace), grace, flat))
	})

	t.Run("returned past grace window", func(t *testing.T) {
		assert.Equal(t, flat, LateFee(end, end.Add(grace+time.Minute), grace, flat))
	})

	t.Run("fee is flat regardless of delay", func(t *testing.T) {
		assert.Equal(t, flat, LateFee(end, end.Add(72*time.Hour), grace, flat))
	})
}
