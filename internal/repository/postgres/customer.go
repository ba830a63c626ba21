package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"rentalops-backend/internal/domain"
	"rentalops-backend/internal/repository"
)

type customerRepository struct {
	db *sql.DB
}

func NewCustomerRepository(db *sql.DB) repository.CustomerRepository {
	return &customerRepository{db: db}
}

func (r *customerRepository) GetByID(ctx context.Context, id int64) (*domain.Customer, error) {
	c := &domain.Customer{}
	var phone, email sql.NullString
	query := `SELECT id, name, phone, email FROM customers WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&c.ID, &c.Name, &phone, &email)
	if err == sql.ErrNoRows {
		return nil, &domain.NotFoundError{Entity: "customer", Ref: fmt.Sprintf("%d", id)}
	}
	if err != nil {
		return nil, err
	}
	c.Phone = phone.String
	c.Email = email.String
	return c, nil
}

type vehicleRepository struct {
	db *sql.DB
}

func NewVehicleRepository(db *sql.DB) repository.VehicleRepository {
	return &vehicleRepository{db: db}
}

func (r *vehicleRepository) GetByID(ctx context.Context, id int64) (*domain.Vehicle, error) {
	v := &domain.Vehicle{}
	var location sql.NullString
	query := `SELECT id, model, registration_no, location FROM vehicles WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&v.ID, &v.Model, &v.RegistrationNo, &location)
	if err == sql.ErrNoRows {
		return nil, &domain.NotFoundError{Entity: "vehicle", Ref: fmt.Sprintf("%d", id)}
	}
	if err != nil {
		return nil, err
	}
	v.Location = location.String
	return v, nil
}
