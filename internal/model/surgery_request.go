package model

import (
	"github.com/google/uuid"
)

type SurgeryRequestStatus string

const (
	SurgeryRequestStatusPending       SurgeryRequestStatus = "pending"
	SurgeryRequestStatusTimeSuggested SurgeryRequestStatus = "time_suggested"
	SurgeryRequestStatusInProgress    SurgeryRequestStatus = "in_progress"
	SurgeryRequestStatusOTUnavailable SurgeryRequestStatus = "ot_unavailable"
)

// SurgeryRequest is a clinician's pending ask for a theater slot. The
// patient fields are a snapshot taken at creation, not a live reference.
type SurgeryRequest struct {
	Base
	TenantID      uuid.UUID            `db:"tenant_id" json:"tenant_id"`
	Theater       *string              `db:"theater" json:"theater,omitempty"`
	PatientID     uuid.UUID            `db:"patient_id" json:"patient_id"`
	PatientName   string               `db:"patient_name" json:"patient_name"`
	PatientAge    int                  `db:"patient_age" json:"patient_age"`
	PatientGender string               `db:"patient_gender" json:"patient_gender"`
	PreferredDate string               `db:"preferred_date" json:"preferred_date"`
	PreferredTime string               `db:"preferred_time" json:"preferred_time"`
	Procedure     string               `db:"procedure_name" json:"procedure"`
	RequestedBy   uuid.UUID            `db:"requested_by" json:"requested_by"`
	Status        SurgeryRequestStatus `db:"status" json:"status"`
}

type CreateSurgeryRequestRequest struct {
	PatientID     uuid.UUID `json:"patient_id" validate:"required"`
	PreferredDate string    `json:"preferred_date" validate:"required,caldate"`
	PreferredTime string    `json:"preferred_time" validate:"required,hhmm"`
	Procedure     string    `json:"procedure" validate:"required"`
}
