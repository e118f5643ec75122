// internal/models/document.go
package models

// Document is a rendered artifact (PDF or workbook) tied to a submission.
type Document struct {
	ID           string `json:"id"`
	SubmissionID string `json:"submissionId"`
	FormType     string `json:"formType,omitempty"` // empty for exports
	Kind         string `json:"kind"`               // "pdf", "xlsx"
	RemoteID     string `json:"remoteId,omitempty"` // render-service document id
	URL          string `json:"url,omitempty"`
	Status       string `json:"status"` // "pending", "rendered", "failed"
	CreatedAt    string `json:"createdAt"`
}
