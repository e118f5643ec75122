package acord

import (
	"testing"

	"acord-intake/internal/catalog"
	"acord-intake/internal/common/validation"
	"acord-intake/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

func createTestSubmission() *models.Submission {
	return &models.Submission{
		ID:         "sub-1001",
		AgencyID:   "agency-01",
		ProducerID: "user-07",
		ClientType: models.ClientTypeBusiness,
		Status:     models.StatusSubmitted,
		Business: models.BusinessInfo{
			LegalName:       "Lakeside Machining LLC",
			DBA:             "Lakeside Precision",
			FEIN:            "31-4482917",
			EntityType:      "llc",
			YearsInBusiness: 12,
			AnnualRevenue:   2400000,
			EmployeeCount:   18,
			NAICSCode:       "332710",
			Description:     "CNC machining and metal fabrication for aerospace suppliers",
			Website:         "https://lakesidemachining.example.com",
			Address: models.Address{
				Line1:   "770 Foundry Road",
				City:    "Cleveland",
				State:   "OH",
				ZipCode: "44113",
			},
		},
		Contact: models.ContactInfo{
			FirstName: "Dana",
			LastName:  "Whitfield",
			Email:     "dana.whitfield@lakesidemachining.example.com",
			Phone:     "(216) 555-0142",
		},
		CoverageTypes: []string{"general-liability", "workers-compensation"},
		Answers: map[string]interface{}{
			"gl-operations-description": "CNC machining and metal fabrication",
			"gl-gross-receipts":         2400000.0,
			"gl-occurrence-limit":       "1000000",
			"gl-prior-claims":           "No",
			"wc-employee-count":         18.0,
			"wc-annual-payroll":         1150000.0,
			"wc-states":                 "OH, PA",
		},
		CreatedAt: "2025-03-14T10:00:00Z",
		UpdatedAt: "2025-03-14T10:05:00Z",
	}
}

func createTestValidator() *Validator {
	return NewValidator(catalog.New())
}

func hasIssue(list []validation.ValidationError, field, code string) bool {
	for _, e := range list {
		if e.Field == field && (code == "" || e.Code == code) {
			return true
		}
	}
	return false
}

// ==========================
// Completeness Tests
// ==========================

func TestValidator_Validate_CompleteSubmission(t *testing.T) {
	v := createTestValidator()

	res := v.Validate(createTestSubmission())

	assert.True(t, res.IsValid)
	assert.Empty(t, res.Errors)
	assert.Empty(t, res.Warnings)
}

func TestValidator_Validate_MissingBusinessFields(t *testing.T) {
	tests := []struct {
		name          string
		mutate        func(*models.Submission)
		expectedField string
	}{
		{
			name:          "missing business name",
			mutate:        func(s *models.Submission) { s.Business.LegalName = "" },
			expectedField: "business.legalName",
		},
		{
			name:          "missing tax ID",
			mutate:        func(s *models.Submission) { s.Business.FEIN = "" },
			expectedField: "business.fein",
		},
		{
			name:          "missing entity type",
			mutate:        func(s *models.Submission) { s.Business.EntityType = "" },
			expectedField: "business.entityType",
		},
		{
			name:          "missing description",
			mutate:        func(s *models.Submission) { s.Business.Description = "" },
			expectedField: "business.description",
		},
		{
			name:          "missing mailing address",
			mutate:        func(s *models.Submission) { s.Business.Address.Line1 = "" },
			expectedField: "business.address.line1",
		},
		{
			name:          "missing city",
			mutate:        func(s *models.Submission) { s.Business.Address.City = "" },
			expectedField: "business.address.city",
		},
		{
			name:          "missing state",
			mutate:        func(s *models.Submission) { s.Business.Address.State = "" },
			expectedField: "business.address.state",
		},
		{
			name:          "missing postal code",
			mutate:        func(s *models.Submission) { s.Business.Address.ZipCode = "" },
			expectedField: "business.address.zipCode",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := createTestValidator()
			sub := createTestSubmission()
			tt.mutate(sub)

			res := v.Validate(sub)

			assert.False(t, res.IsValid)
			assert.True(t, hasIssue(res.Errors, tt.expectedField, "required"))
		})
	}
}

func TestValidator_Validate_MissingContactFields(t *testing.T) {
	tests := []struct {
		name          string
		mutate        func(*models.Submission)
		expectedField string
	}{
		{
			name:          "missing first name",
			mutate:        func(s *models.Submission) { s.Contact.FirstName = "" },
			expectedField: "contact.firstName",
		},
		{
			name:          "missing last name",
			mutate:        func(s *models.Submission) { s.Contact.LastName = "" },
			expectedField: "contact.lastName",
		},
		{
			name:          "missing email",
			mutate:        func(s *models.Submission) { s.Contact.Email = "" },
			expectedField: "contact.email",
		},
		{
			name:          "missing phone",
			mutate:        func(s *models.Submission) { s.Contact.Phone = "" },
			expectedField: "contact.phone",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := createTestValidator()
			sub := createTestSubmission()
			tt.mutate(sub)

			res := v.Validate(sub)

			assert.False(t, res.IsValid)
			assert.True(t, hasIssue(res.Errors, tt.expectedField, "required"))
		})
	}
}

func TestValidator_Validate_NoCoverageSelected(t *testing.T) {
	v := createTestValidator()
	sub := createTestSubmission()
	sub.CoverageTypes = nil
	sub.Answers = nil

	res := v.Validate(sub)

	assert.False(t, res.IsValid)
	assert.True(t, hasIssue(res.Errors, "coverageTypes", "no_coverage_selected"))
}

func TestValidator_Validate_MissingRequiredAnswer(t *testing.T) {
	v := createTestValidator()
	sub := createTestSubmission()
	delete(sub.Answers, "gl-operations-description")

	res := v.Validate(sub)

	assert.False(t, res.IsValid)
	assert.True(t, hasIssue(res.Errors, "coverageAnswers.gl-operations-description", "required"))
}

func TestValidator_Validate_BlankAnswerTreatedAsMissing(t *testing.T) {
	v := createTestValidator()
	sub := createTestSubmission()
	sub.Answers["gl-operations-description"] = "   "

	res := v.Validate(sub)

	assert.False(t, res.IsValid)
	assert.True(t, hasIssue(res.Errors, "coverageAnswers.gl-operations-description", "required"))
}

func TestValidator_Validate_CriticalAnswerRequiredEvenWhenOptional(t *testing.T) {
	cat := catalog.NewFromTypes([]catalog.CoverageType{
		{
			ID:          "equipment-breakdown",
			Name:        "Equipment Breakdown",
			Category:    "additional",
			ClientTypes: []models.ClientType{models.ClientTypeBusiness},
			Forms:       []string{"ACORD 125"},
			Questions: []catalog.Question{
				{ID: "eb-equipment-value", Text: "Total equipment value", Type: catalog.QuestionNumber, Required: false, Critical: true},
			},
		},
	})
	v := NewValidator(cat)
	sub := createTestSubmission()
	sub.CoverageTypes = []string{"equipment-breakdown"}
	sub.Answers = map[string]interface{}{}

	res := v.Validate(sub)

	assert.False(t, res.IsValid)
	assert.True(t, hasIssue(res.Errors, "coverageAnswers.eb-equipment-value", "required"))
}

// ==========================
// Answer Handling Tests
// ==========================

func TestValidator_Validate_OrphanedAnswersIgnored(t *testing.T) {
	v := createTestValidator()
	sub := createTestSubmission()
	sub.CoverageTypes = []string{"general-liability"}
	// Workers' comp answers stay behind after the coverage was deselected.
	sub.Answers["wc-employee-count"] = 18.0
	sub.Answers["wc-annual-payroll"] = 1150000.0

	res := v.Validate(sub)

	assert.True(t, res.IsValid)
	assert.Empty(t, res.Errors)
	for _, w := range res.Warnings {
		assert.NotContains(t, w.Field, "wc-")
	}
}

func TestValidator_Validate_UnknownCoverageWarns(t *testing.T) {
	v := createTestValidator()
	sub := createTestSubmission()
	sub.CoverageTypes = append(sub.CoverageTypes, "spaceship-hull")

	res := v.Validate(sub)

	assert.True(t, res.IsValid)
	assert.True(t, hasIssue(res.Warnings, "coverageTypes", "unknown_coverage"))
}

func TestValidator_Validate_NormalizesCoverageReferences(t *testing.T) {
	v := createTestValidator()
	sub := createTestSubmission()
	sub.CoverageTypes = []string{"GL", "Workers' Compensation"}

	res := v.Validate(sub)

	assert.True(t, res.IsValid)
	assert.Empty(t, res.Errors)
}

func TestValidator_Validate_AnswerFormatWarnings(t *testing.T) {
	tests := []struct {
		name          string
		mutate        func(*models.Submission)
		expectedField string
		expectedCode  string
	}{
		{
			name:          "text answer to numeric question",
			mutate:        func(s *models.Submission) { s.Answers["gl-gross-receipts"] = "lots" },
			expectedField: "coverageAnswers.gl-gross-receipts",
			expectedCode:  "invalid_type",
		},
		{
			name:          "unlisted select option",
			mutate:        func(s *models.Submission) { s.Answers["gl-occurrence-limit"] = "750000" },
			expectedField: "coverageAnswers.gl-occurrence-limit",
			expectedCode:  "invalid_option",
		},
		{
			name:          "number below minimum",
			mutate:        func(s *models.Submission) { s.Answers["wc-employee-count"] = 0.0 },
			expectedField: "coverageAnswers.wc-employee-count",
			expectedCode:  "out_of_range",
		},
		{
			name:          "malformed contact email",
			mutate:        func(s *models.Submission) { s.Contact.Email = "not-an-email" },
			expectedField: "contact.email",
			expectedCode:  "invalid_format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := createTestValidator()
			sub := createTestSubmission()
			tt.mutate(sub)

			res := v.Validate(sub)

			assert.True(t, res.IsValid, "format problems must not block generation")
			assert.True(t, hasIssue(res.Warnings, tt.expectedField, tt.expectedCode))
		})
	}
}

func TestValidator_Validate_RecommendedFieldWarnings(t *testing.T) {
	v := createTestValidator()
	sub := createTestSubmission()
	sub.Business.Website = ""
	sub.Business.YearsInBusiness = 0
	sub.Business.AnnualRevenue = 0
	sub.Business.NAICSCode = ""

	res := v.Validate(sub)

	assert.True(t, res.IsValid)
	assert.True(t, hasIssue(res.Warnings, "business.website", "recommended"))
	assert.True(t, hasIssue(res.Warnings, "business.yearsInBusiness", "recommended"))
	assert.True(t, hasIssue(res.Warnings, "business.annualRevenue", "recommended"))
	assert.True(t, hasIssue(res.Warnings, "business.naicsCode", "recommended"))
}

func TestValidator_Validate_ClientTypeFiltersQuestions(t *testing.T) {
	v := createTestValidator()
	sub := createTestSubmission()
	sub.ClientType = models.ClientTypePersonal
	sub.CoverageTypes = []string{"professional-liability"}
	sub.Answers = map[string]interface{}{
		"pl-profession": "Independent actuarial consulting",
	}

	res := v.Validate(sub)

	// pl-entity-endorsement only applies to business clients, so its
	// absence must not surface at all for a personal client.
	assert.True(t, res.IsValid)
	for _, e := range res.Errors {
		assert.NotContains(t, e.Field, "pl-entity-endorsement")
	}
}

// ==========================
// Result Consistency
// ==========================

func TestValidator_Validate_IsValidMatchesErrorCount(t *testing.T) {
	mutations := []func(*models.Submission){
		func(s *models.Submission) {},
		func(s *models.Submission) { s.Business.LegalName = "" },
		func(s *models.Submission) { s.Contact.Email = "" },
		func(s *models.Submission) { s.CoverageTypes = nil },
		func(s *models.Submission) { delete(s.Answers, "wc-employee-count") },
		func(s *models.Submission) { s.Business.Website = "" },
	}

	v := createTestValidator()
	for i, mutate := range mutations {
		sub := createTestSubmission()
		mutate(sub)

		res := v.Validate(sub)

		require.Equal(t, len(res.Errors) == 0, res.IsValid, "mutation %d", i)
	}
}

func TestValidator_Validate_Deterministic(t *testing.T) {
	v := createTestValidator()
	sub := createTestSubmission()
	sub.Business.LegalName = ""
	delete(sub.Answers, "gl-gross-receipts")

	first := v.Validate(sub)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, v.Validate(sub))
	}
}
