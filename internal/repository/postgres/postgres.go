package postgres

import (
	"database/sql"

	"rentalops-backend/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.BookingRepository
	repository.PaymentRepository
	repository.ExtensionRepository
	repository.ReminderLogRepository
	repository.CustomerRepository
	repository.VehicleRepository
	repository.SettingsRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                    db,
		BookingRepository:     NewBookingRepository(db),
		PaymentRepository:     NewPaymentRepository(db),
		ExtensionRepository:   NewExtensionRepository(db),
		ReminderLogRepository: NewReminderLogRepository(db),
		CustomerRepository:    NewCustomerRepository(db),
		VehicleRepository:     NewVehicleRepository(db),
		SettingsRepository:    NewSettingsRepository(db),
	}
}
