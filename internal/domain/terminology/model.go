package terminology

// SystemType identifies the traditional-medicine system a record belongs to.
type SystemType string

const (
	SystemAyurveda SystemType = "Ayurveda"
	SystemSiddha   SystemType = "Siddha"
	SystemUnani    SystemType = "Unani"

	// FilterAll disables system-type filtering in search.
	FilterAll = "all"
)

// SynonymGroup holds synonym terms for a record in one language.
type SynonymGroup struct {
	Language string   `json:"language"`
	Terms    []string `json:"terms"`
}

// Record is an immutable catalog entry mapping a NAMASTE traditional-medicine
// code to its ICD-11 classification. The catalog is loaded once at startup
// and never mutated at runtime.
type Record struct {
	Code           string         `db:"namaste_code" json:"namasteCode"`
	DisplayEnglish string         `db:"display_english" json:"diseaseEnglish"`
	DisplayLocal   string         `db:"display_local" json:"diseaseLocal"`
	System         SystemType     `db:"system_type" json:"systemType"`
	Synonyms       []SynonymGroup `db:"-" json:"synonyms,omitempty"`
	MappedCode     string         `db:"mapped_code" json:"icd11Code"`
	MappedDisplay  string         `db:"mapped_display" json:"icd11Display"`
	Description    string         `db:"description" json:"description,omitempty"`
	Confidence     float64        `db:"confidence" json:"confidence"`
	UsageCount     int            `db:"usage_count" json:"usage"`
}

// ScoredRecord is a Record plus its search relevance score. Produced only as
// a query result, never persisted.
type ScoredRecord struct {
	Record
	Score float64 `json:"searchScore"`
}

// SearchResult is the wire shape exchanged with a peer terminology service:
// identifier code, plain diagnosis text, and the mapped classification.
type SearchResult struct {
	NamasteCode  string `json:"namaste_code"`
	Diagnosis    string `json:"diagnosis"`
	ICD10Code    string `json:"icd10_code"`
	ICD10Display string `json:"icd_diagnosis_name"`
}
