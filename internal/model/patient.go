package model

import (
	"github.com/google/uuid"
)

type PatientStatus string

const (
	PatientStatusAdmitted   PatientStatus = "admitted"
	PatientStatusDischarged PatientStatus = "discharged"
)

// Patient is a read-only data source for the scheduling core: surgery
// request intake verifies the patient is admitted under the requesting
// clinician before accepting a request.
type Patient struct {
	Base
	TenantID           uuid.UUID     `db:"tenant_id" json:"tenant_id"`
	Name               string        `db:"name" json:"name"`
	Age                int           `db:"age" json:"age"`
	Gender             string        `db:"gender" json:"gender"`
	Status             PatientStatus `db:"status" json:"status"`
	AttendingClinician uuid.UUID     `db:"attending_clinician" json:"attending_clinician"`
}
