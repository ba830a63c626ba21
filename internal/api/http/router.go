// Package http exposes the back-office JSON API and the job trigger
// endpoints consumed by an external cron.
package http

import (
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"rentalops-backend/internal/jobs"
	"rentalops-backend/internal/service"
)

type Handler struct {
	bookings service.BookingService
	payments service.PaymentService
	jobs     *jobs.JobRunner
	validate *validator.Validate
}

func NewHandler(bookings service.BookingService, payments service.PaymentService, jobRunner *jobs.JobRunner) *Handler {
	return &Handler{
		bookings: bookings,
		payments: payments,
		jobs:     jobRunner,
		validate: validator.New(),
	}
}

func NewRouter(h *Handler) *mux.Router {
	r := mux.NewRouter()
	api := r.PathPrefix("/api").Subrouter()

	api.HandleFunc("/bookings", h.CreateBooking).Methods("POST")
	api.HandleFunc("/bookings/{ref}", h.GetBooking).Methods("GET")
	api.HandleFunc("/bookings/{ref}/confirm", h.ConfirmBooking).Methods("POST")
	api.HandleFunc("/bookings/{ref}/pickup", h.StartRental).Methods("POST")
	api.HandleFunc("/bookings/{ref}/cancel", h.CancelBooking).Methods("POST")
	api.HandleFunc("/bookings/{ref}/payments", h.RecordPayment).Methods("POST")
	api.HandleFunc("/bookings/{ref}/payments", h.ListPayments).Methods("GET")
	api.HandleFunc("/bookings/{ref}/extensions", h.ExtendBooking).Methods("POST")
	api.HandleFunc("/bookings/{ref}/extensions", h.ListExtensions).Methods("GET")
	api.HandleFunc("/bookings/{ref}/complete", h.CompleteBooking).Methods("POST")

	// external cron triggers these; GET with no body, JSON summary back
	api.HandleFunc("/jobs/return-reminders", h.TriggerReturnReminders).Methods("GET")
	api.HandleFunc("/jobs/reconcile-ledger", h.TriggerReconcileLedger).Methods("GET")

	return r
}
