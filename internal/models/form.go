// internal/models/form.go
package models

// GeneratedForm is one populated ACORD form for a submission. Fields maps
// ACORD field names to their resolved string values; fields with no value
// are absent from the map, never present as empty strings.
type GeneratedForm struct {
	ID           string            `json:"id,omitempty"`
	SubmissionID string            `json:"submissionId,omitempty"`
	FormType     string            `json:"formType"` // e.g. "ACORD 125"
	FormName     string            `json:"formName"`
	Fields       map[string]string `json:"fields"`
	GeneratedAt  string            `json:"generatedAt"`
}

// FieldCount returns the number of populated fields.
func (f *GeneratedForm) FieldCount() int {
	return len(f.Fields)
}
