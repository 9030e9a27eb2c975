package postgres

import (
	"github.com/jmoiron/sqlx"

	"github.com/jwalitptl/hms-api/internal/repository"
)

type theaterRepository struct {
	db *sqlx.DB
}

type bookingRepository struct {
	db *sqlx.DB
}

type surgeryRequestRepository struct {
	db *sqlx.DB
}

type patientRepository struct {
	db *sqlx.DB
}

type clinicianRepository struct {
	db *sqlx.DB
}

type outboxRepository struct {
	db *sqlx.DB
}

func NewTheaterRepository(db *sqlx.DB) repository.TheaterRepository {
	return &theaterRepository{db: db}
}

func NewBookingRepository(db *sqlx.DB) repository.BookingRepository {
	return &bookingRepository{db: db}
}

func NewSurgeryRequestRepository(db *sqlx.DB) repository.SurgeryRequestRepository {
	return &surgeryRequestRepository{db: db}
}

func NewPatientRepository(db *sqlx.DB) repository.PatientRepository {
	return &patientRepository{db: db}
}

func NewClinicianRepository(db *sqlx.DB) repository.ClinicianRepository {
	return &clinicianRepository{db: db}
}

func NewOutboxRepository(db *sqlx.DB) repository.OutboxRepository {
	return &outboxRepository{db: db}
}
