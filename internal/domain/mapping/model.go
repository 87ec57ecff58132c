// Package mapping persists the selection of an ICD code for a patient
// visit: the write side of the terminology bridge.
package mapping

import (
	"time"

	"github.com/google/uuid"
)

// SavedMapping records one diagnosis mapping saved to a patient record.
type SavedMapping struct {
	ID          uuid.UUID `db:"id" json:"id"`
	PatientID   string    `db:"patient_id" json:"patientId"`
	VisitID     string    `db:"visit_id" json:"visitId"`
	NamasteCode string    `db:"namaste_code" json:"namasteCode"`
	ICD10Code   string    `db:"icd10_code" json:"icd10Code"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
}

// SaveRequest is the JSON body for POST /api/save.
type SaveRequest struct {
	PatientID   string `json:"patientId"`
	VisitID     string `json:"visitId"`
	NamasteCode string `json:"namasteCode"`
	ICD10Code   string `json:"icd10Code"`
}

// SaveResponse confirms a saved mapping.
type SaveResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}
