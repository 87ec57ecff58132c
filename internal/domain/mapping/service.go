package mapping

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

var (
	// ErrMissingField is returned when a required request field is blank.
	ErrMissingField = errors.New("patientId, visitId, namasteCode and icd10Code are required")
	// ErrUnknownCode is returned when the referenced code is not in the catalog.
	ErrUnknownCode = errors.New("unknown namaste code")
)

// CodeResolver answers whether a terminology code exists.
type CodeResolver interface {
	Exists(ctx context.Context, code string) bool
}

// AuditRecorder records mapping events into the audit trail.
type AuditRecorder interface {
	Record(action, sessionID string, data map[string]any)
}

// Service validates and persists diagnosis mappings.
type Service struct {
	repo     Repository
	resolver CodeResolver
	audit    AuditRecorder
}

// NewService creates a mapping service. resolver and audit may be nil.
func NewService(repo Repository, resolver CodeResolver, audit AuditRecorder) *Service {
	return &Service{repo: repo, resolver: resolver, audit: audit}
}

// Save validates the request, persists the mapping and returns a
// confirmation message naming the patient and the saved code.
func (s *Service) Save(ctx context.Context, req SaveRequest, sessionID string) (*SaveResponse, error) {
	if req.PatientID == "" || req.VisitID == "" || req.NamasteCode == "" || req.ICD10Code == "" {
		return nil, ErrMissingField
	}
	if s.resolver != nil && !s.resolver.Exists(ctx, req.NamasteCode) {
		return nil, ErrUnknownCode
	}

	m := &SavedMapping{
		ID:          uuid.New(),
		PatientID:   req.PatientID,
		VisitID:     req.VisitID,
		NamasteCode: req.NamasteCode,
		ICD10Code:   req.ICD10Code,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.repo.Insert(ctx, m); err != nil {
		return nil, err
	}

	log.Info().
		Str("patient_id", m.PatientID).
		Str("namaste_code", m.NamasteCode).
		Str("icd10_code", m.ICD10Code).
		Msg("mapping saved")

	if s.audit != nil {
		s.audit.Record("mapping_saved", sessionID, map[string]any{
			"patientId":   m.PatientID,
			"visitId":     m.VisitID,
			"namasteCode": m.NamasteCode,
			"icd10Code":   m.ICD10Code,
		})
	}

	return &SaveResponse{
		Status:  "success",
		Message: fmt.Sprintf("ICD-10 code %s saved for patient %s", m.ICD10Code, m.PatientID),
	}, nil
}

// History returns the most recent mappings saved for a patient.
func (s *Service) History(ctx context.Context, patientID string, limit int) ([]*SavedMapping, error) {
	if patientID == "" {
		return nil, ErrMissingField
	}
	return s.repo.ListByPatient(ctx, patientID, limit)
}
