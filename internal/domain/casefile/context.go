// Package casefile defines the structured metadata extracted from raw case
// text by the enrichment pass.
package casefile

// Field is a single extracted value with the extractor's confidence in it.
type Field struct {
	Value      string  `json:"value"`
	Confidence float64 `json:"confidence"`
}

// Found reports whether the extractor produced a value for this field.
func (f Field) Found() bool { return f.Value != "" }

// Context holds the metadata extracted from a case file. Fields the extractor
// could not find carry an empty value and zero confidence.
type Context struct {
	ClientName       Field   `json:"client_name"`
	CaseNumber       Field   `json:"case_number"`
	CaseType         Field   `json:"case_type"`
	InsuranceCarrier Field   `json:"insurance_carrier"`
	IncidentDate     Field   `json:"incident_date"`
	MedicalProviders []Field `json:"medical_providers,omitempty"`
}
