package model

import (
	"database/sql/driver"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusScheduled BookingStatus = "scheduled"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

type StaffAssignment struct {
	Name string `json:"name"`
	Role string `json:"role"`
}

type StaffList []StaffAssignment

func (s StaffList) Value() (driver.Value, error) { return jsonbValue(s) }
func (s *StaffList) Scan(src interface{}) error  { return jsonbScan(src, s) }

// CompletionDetails records the facts attached when a case closes out.
type CompletionDetails struct {
	InTime        string `json:"in_time"`
	OutTime       string `json:"out_time"`
	CompletedOn   string `json:"completed_on"`
	Outcome       string `json:"outcome"`
	Note          string `json:"note,omitempty"`
	PatientStatus string `json:"patient_status"`
}

func (c CompletionDetails) Value() (driver.Value, error) { return jsonbValue(c) }
func (c *CompletionDetails) Scan(src interface{}) error  { return jsonbScan(src, c) }

// Booking is a confirmed reservation of a theater slot. Within one tenant
// at most one non-cancelled booking may hold a (theater, date, time)
// triple; a partial unique index backs the in-process check.
type Booking struct {
	Base
	TenantID           uuid.UUID          `db:"tenant_id" json:"tenant_id"`
	Theater            string             `db:"theater" json:"theater"`
	Date               string             `db:"date" json:"date"`
	Time               string             `db:"time" json:"time"`
	BookedBy           uuid.UUID          `db:"booked_by" json:"booked_by"`
	PatientName        string             `db:"patient_name" json:"patient_name"`
	Procedure          string             `db:"procedure_name" json:"procedure"`
	SurgicalAssistants StaffList          `db:"surgical_assistants" json:"surgical_assistants"`
	ScrubNurses        StaffList          `db:"scrub_nurses" json:"scrub_nurses"`
	CirculatingNurses  StaffList          `db:"circulating_nurses" json:"circulating_nurses"`
	Anesthetists       StaffList          `db:"anesthetists" json:"anesthetists"`
	Technicians        StaffList          `db:"technicians" json:"technicians"`
	Status             BookingStatus      `db:"status" json:"status"`
	Completion         *CompletionDetails `db:"completion" json:"completion,omitempty"`
}

type CreateBookingRequest struct {
	Theater            string     `json:"theater" validate:"required"`
	Date               string     `json:"date" validate:"required,caldate"`
	Time               string     `json:"time" validate:"required,hhmm"`
	PatientName        string     `json:"patient_name" validate:"required"`
	Procedure          string     `json:"procedure" validate:"required"`
	SurgicalAssistants StaffList  `json:"surgical_assistants"`
	ScrubNurses        StaffList  `json:"scrub_nurses"`
	CirculatingNurses  StaffList  `json:"circulating_nurses"`
	Anesthetists       StaffList  `json:"anesthetists"`
	Technicians        StaffList  `json:"technicians"`
	RequestID          *uuid.UUID `json:"request_id"`
}

type UpdateBookingRequest struct {
	Theater            *string    `json:"theater"`
	Date               *string    `json:"date" validate:"omitempty,caldate"`
	Time               *string    `json:"time" validate:"omitempty,hhmm"`
	PatientName        *string    `json:"patient_name"`
	Procedure          *string    `json:"procedure"`
	SurgicalAssistants *StaffList `json:"surgical_assistants"`
	ScrubNurses        *StaffList `json:"scrub_nurses"`
	CirculatingNurses  *StaffList `json:"circulating_nurses"`
	Anesthetists       *StaffList `json:"anesthetists"`
	Technicians        *StaffList `json:"technicians"`
}

type CompleteBookingRequest struct {
	InTime        string `json:"in_time" validate:"required,hhmm"`
	OutTime       string `json:"out_time" validate:"required,hhmm"`
	CompletedOn   string `json:"completed_on" validate:"required,caldate"`
	Outcome       string `json:"outcome" validate:"required"`
	Note          string `json:"note"`
	PatientStatus string `json:"patient_status" validate:"required"`
}

type BookingFilters struct {
	Theater string
	Date    string
	Status  BookingStatus
}
