// internal/models/submission.go
package models

// ClientType restricts which coverage types and questions apply.
type ClientType string

const (
	ClientTypePersonal ClientType = "personal"
	ClientTypeBusiness ClientType = "business"
	ClientTypeBoth     ClientType = "both"
)

// SubmissionStatus is the lifecycle state of an intake submission.
type SubmissionStatus string

const (
	StatusDraft          SubmissionStatus = "draft"
	StatusSubmitted      SubmissionStatus = "submitted"
	StatusInReview       SubmissionStatus = "in_review"
	StatusFormsGenerated SubmissionStatus = "forms_generated"
	StatusCompleted      SubmissionStatus = "completed"
	StatusDeclined       SubmissionStatus = "declined"
)

// validTransitions lists the allowed next states per status.
var validTransitions = map[SubmissionStatus][]SubmissionStatus{
	StatusDraft:          {StatusSubmitted},
	StatusSubmitted:      {StatusInReview, StatusFormsGenerated, StatusDeclined},
	StatusInReview:       {StatusFormsGenerated, StatusDeclined},
	StatusFormsGenerated: {StatusCompleted, StatusInReview, StatusDeclined},
	StatusCompleted:      {},
	StatusDeclined:       {},
}

// CanTransition reports whether moving from one status to another is allowed.
func CanTransition(from, to SubmissionStatus) bool {
	for _, next := range validTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Submission is a customer intake submission captured by the wizard.
type Submission struct {
	ID            string                 `json:"id"`
	AgencyID      string                 `json:"agencyId"`
	ProducerID    string                 `json:"producerId"`
	ClientType    ClientType             `json:"clientType"`
	Status        SubmissionStatus       `json:"status"`
	Business      BusinessInfo           `json:"business"`
	Contact       ContactInfo            `json:"contact"`
	CoverageTypes []string               `json:"coverageTypes"`
	Answers       map[string]interface{} `json:"coverageAnswers"`
	SubmittedAt   string                 `json:"submittedAt,omitempty"`
	CreatedAt     string                 `json:"createdAt"`
	UpdatedAt     string                 `json:"updatedAt"`
}

type BusinessInfo struct {
	LegalName       string  `json:"legalName"`
	DBA             string  `json:"dba,omitempty"`
	FEIN            string  `json:"fein,omitempty"`
	EntityType      string  `json:"entityType,omitempty"` // "sole_proprietor", "partnership", "llc", "corporation"
	YearsInBusiness int     `json:"yearsInBusiness,omitempty"`
	AnnualRevenue   float64 `json:"annualRevenue,omitempty"`
	EmployeeCount   int     `json:"employeeCount,omitempty"`
	NAICSCode       string  `json:"naicsCode,omitempty"`
	Description     string  `json:"description,omitempty"`
	Website         string  `json:"website,omitempty"`
	Address         Address `json:"address"`
}

type ContactInfo struct {
	FirstName string   `json:"firstName"`
	LastName  string   `json:"lastName"`
	Email     string   `json:"email"`
	Phone     string   `json:"phone"`
	Address   *Address `json:"address,omitempty"`
}

type Address struct {
	Line1   string `json:"line1"`
	Line2   string `json:"line2,omitempty"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zipCode"`
}
