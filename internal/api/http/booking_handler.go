package http

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"rentalops-backend/internal/domain"
	"rentalops-backend/internal/service"
)

type createBookingRequest struct {
	CustomerID      int64  `json:"customer_id" validate:"required"`
	VehicleID       int64  `json:"vehicle_id" validate:"required"`
	StartDate       string `json:"start_date" validate:"required"`
	PickupTime      string `json:"pickup_time" validate:"required"`
	EndDate         string `json:"end_date" validate:"required"`
	DropoffTime     string `json:"dropoff_time" validate:"required"`
	BookingAmount   int64  `json:"booking_amount" validate:"gte=0"`
	SecurityDeposit int64  `json:"security_deposit" validate:"gte=0"`
	ContactPhone    string `json:"contact_phone"`
	Confirmed       bool   `json:"confirmed"`
}

type cancelRequest struct {
	Reason string `json:"reason"`
}

type recordPaymentRequest struct {
	Amount     int64  `json:"amount" validate:"required,gt=0"`
	Mode       string `json:"mode" validate:"required"`
	RecordedBy string `json:"recorded_by"`
}

type extendRequest struct {
	EndDate          string `json:"end_date" validate:"required"`
	DropoffTime      string `json:"dropoff_time" validate:"required"`
	AdditionalAmount *int64 `json:"additional_amount"`
	Reason           string `json:"reason"`
	RecordedBy       string `json:"recorded_by"`
}

type completeRequest struct {
	DamageCharges    int64  `json:"damage_charges" validate:"gte=0"`
	DamageNote       string `json:"damage_note"`
	VehicleRemarks   string `json:"vehicle_remarks"`
	FinalPaymentMode string `json:"final_payment_mode"`
	RecordedBy       string `json:"recorded_by"`
}

// decode parses and validates a JSON request body.
func (h *Handler) decode(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return domain.NewValidationError("invalid request body: %v", err)
	}
	if err := h.validate.Struct(dst); err != nil {
		return domain.NewValidationError("%v", err)
	}
	return nil
}

func (h *Handler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var req createBookingRequest
	if err := h.decode(r, &req); err != nil {
		writeError(w, err)
		return
	}

	startAt, err := domain.CombineDateTime(req.StartDate, req.PickupTime)
	if err != nil {
		writeError(w, err)
		return
	}
	endAt, err := domain.CombineDateTime(req.EndDate, req.DropoffTime)
	if err != nil {
		writeError(w, err)
		return
	}

	b, err := h.bookings.Intake(r.Context(), service.IntakeInput{
		CustomerID:      req.CustomerID,
		VehicleID:       req.VehicleID,
		StartAt:         startAt,
		EndAt:           endAt,
		BookingAmount:   req.BookingAmount,
		SecurityDeposit: req.SecurityDeposit,
		ContactPhone:    req.ContactPhone,
		Confirmed:       req.Confirmed,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, b)
}

func (h *Handler) GetBooking(w http.ResponseWriter, r *http.Request) {
	b, err := h.bookings.Get(r.Context(), mux.Vars(r)["ref"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

func (h *Handler) ConfirmBooking(w http.ResponseWriter, r *http.Request) {
	b, err := h.bookings.Confirm(r.Context(), mux.Vars(r)["ref"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

func (h *Handler) StartRental(w http.ResponseWriter, r *http.Request) {
	b, err := h.bookings.StartRental(r.Context(), mux.Vars(r)["ref"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

func (h *Handler) CancelBooking(w http.ResponseWriter, r *http.Request) {
	var req cancelRequest
	if err := h.decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	b, err := h.bookings.Cancel(r.Context(), mux.Vars(r)["ref"], req.Reason)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

func (h *Handler) RecordPayment(w http.ResponseWriter, r *http.Request) {
	var req recordPaymentRequest
	if err := h.decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	p, b, err := h.payments.RecordPayment(r.Context(), service.RecordPaymentInput{
		Ref:    mux.Vars(r)["ref"],
		Amount: req.Amount,
		Mode:   domain.PaymentMode(req.Mode),
		Actor:  req.RecordedBy,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"payment": p,
		"booking": b,
	})
}

func (h *Handler) ListPayments(w http.ResponseWriter, r *http.Request) {
	payments, err := h.payments.ListPayments(r.Context(), mux.Vars(r)["ref"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, payments)
}

func (h *Handler) ExtendBooking(w http.ResponseWriter, r *http.Request) {
	var req extendRequest
	if err := h.decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	newEnd, err := domain.CombineDateTime(req.EndDate, req.DropoffTime)
	if err != nil {
		writeError(w, err)
		return
	}
	b, ext, err := h.bookings.Extend(r.Context(), service.ExtendInput{
		Ref:              mux.Vars(r)["ref"],
		NewEndAt:         newEnd,
		AdditionalAmount: req.AdditionalAmount,
		Reason:           req.Reason,
		Actor:            req.RecordedBy,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"booking":   b,
		"extension": ext,
	})
}

func (h *Handler) ListExtensions(w http.ResponseWriter, r *http.Request) {
	extensions, err := h.bookings.ListExtensions(r.Context(), mux.Vars(r)["ref"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, extensions)
}

func (h *Handler) CompleteBooking(w http.ResponseWriter, r *http.Request) {
	var req completeRequest
	if err := h.decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	b, err := h.bookings.Complete(r.Context(), service.CompleteInput{
		Ref:              mux.Vars(r)["ref"],
		DamageCharges:    req.DamageCharges,
		DamageNote:       req.DamageNote,
		VehicleRemarks:   req.VehicleRemarks,
		FinalPaymentMode: domain.PaymentMode(req.FinalPaymentMode),
		Actor:            req.RecordedBy,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}
