package acord

import (
	"testing"
	"time"

	"acord-intake/internal/catalog"
	"acord-intake/internal/common/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock() time.Time {
	return time.Date(2025, 3, 14, 15, 30, 0, 0, time.UTC)
}

func createTestPopulator(t *testing.T) *Populator {
	return NewPopulator(catalog.New(), NewFormCatalog(), logger.NewTestLogger(t)).WithClock(fixedClock)
}

// ==========================
// Single Form Tests
// ==========================

func TestPopulator_Populate_Acord125(t *testing.T) {
	p := createTestPopulator(t)
	sub := createTestSubmission()

	form := p.Populate("ACORD 125", sub)

	assert.Equal(t, "ACORD 125", form.FormType)
	assert.Equal(t, "Commercial Insurance Application", form.FormName)
	assert.Equal(t, "2025-03-14T15:30:00Z", form.GeneratedAt)

	// Producer boilerplate is fixed regardless of submission content.
	assert.Equal(t, "Hartwell Insurance Group", form.Fields["producerName"])
	assert.Equal(t, "HIG-4821", form.Fields["producerCode"])

	assert.Equal(t, "Lakeside Machining LLC", form.Fields["applicantName"])
	assert.Equal(t, "Lakeside Precision", form.Fields["dba"])
	assert.Equal(t, "31-4482917", form.Fields["feinOrSocSec"])
	assert.Equal(t, "770 Foundry Road", form.Fields["mailingAddress"])
	assert.Equal(t, "Cleveland", form.Fields["mailingCity"])
	assert.Equal(t, "2400000", form.Fields["annualRevenue"])
	assert.Equal(t, "12", form.Fields["yearsInBusiness"])
	assert.Equal(t, "sub-1001", form.Fields["agencyCustomerId"])

	// Computed fields.
	assert.Equal(t, "03/14/2025", form.Fields["date"])
	assert.Equal(t, "Dana Whitfield", form.Fields["contactName"])
	assert.Equal(t, "General Liability, Workers' Compensation", form.Fields["linesOfBusiness"])
}

func TestPopulator_Populate_Acord126_UsesCoverageAnswers(t *testing.T) {
	p := createTestPopulator(t)
	sub := createTestSubmission()

	form := p.Populate("ACORD 126", sub)

	assert.Equal(t, "Commercial General Liability Section", form.FormName)
	assert.Equal(t, "CNC machining and metal fabrication", form.Fields["descriptionOfOperations"])
	assert.Equal(t, "2400000", form.Fields["annualGrossSales"])
	assert.Equal(t, "1000000", form.Fields["eachOccurrenceLimit"])
	assert.Equal(t, "No", form.Fields["priorClaims"])
	assert.Equal(t, "OCCURRENCE", form.Fields["coverageForm"])

	// gl-aggregate-limit was never answered, so the field is absent.
	_, present := form.Fields["generalAggregateLimit"]
	assert.False(t, present)
}

func TestPopulator_Populate_OmitsEmptyFields(t *testing.T) {
	p := createTestPopulator(t)
	sub := createTestSubmission()
	sub.Business.DBA = ""
	sub.Business.Website = ""
	sub.Business.Address.Line2 = ""

	form := p.Populate("ACORD 125", sub)

	_, present := form.Fields["dba"]
	assert.False(t, present)
	_, present = form.Fields["websiteAddress"]
	assert.False(t, present)
	_, present = form.Fields["mailingAddress2"]
	assert.False(t, present)

	for name, value := range form.Fields {
		assert.NotEmpty(t, value, "field %s must never be empty", name)
	}
}

func TestPopulator_Populate_UnknownFormType(t *testing.T) {
	p := createTestPopulator(t)
	sub := createTestSubmission()

	form := p.Populate("ACORD 999", sub)

	require.NotNil(t, form)
	assert.Equal(t, "ACORD 999", form.FormType)
	assert.Equal(t, "ACORD 999", form.FormName)
	assert.Empty(t, form.Fields)
	assert.Equal(t, "2025-03-14T15:30:00Z", form.GeneratedAt)
}

func TestPopulator_Populate_ValueFormatting(t *testing.T) {
	forms := NewFormCatalogFromSpecs([]FormSpec{
		{
			FormType: "TEST 1",
			Name:     "Formatting Probe",
			Fields: []FieldSource{
				{Field: "flag", Path: "coverageAnswers.test-flag"},
				{Field: "list", Path: "coverageAnswers.test-list"},
				{Field: "whole", Path: "coverageAnswers.test-whole"},
				{Field: "fraction", Path: "coverageAnswers.test-fraction"},
			},
		},
	})
	p := NewPopulator(catalog.New(), forms, logger.NewTestLogger(t)).WithClock(fixedClock)
	sub := createTestSubmission()
	sub.Answers = map[string]interface{}{
		"test-flag":     true,
		"test-list":     []interface{}{"general-liability", "commercial-auto"},
		"test-whole":    2400000.0,
		"test-fraction": 0.85,
	}

	form := p.Populate("TEST 1", sub)

	assert.Equal(t, "Yes", form.Fields["flag"])
	assert.Equal(t, "general-liability, commercial-auto", form.Fields["list"])
	assert.Equal(t, "2400000", form.Fields["whole"])
	assert.Equal(t, "0.85", form.Fields["fraction"])
}

// ==========================
// PopulateAll Tests
// ==========================

func TestPopulator_PopulateAll_SkipsUnmappedForms(t *testing.T) {
	p := createTestPopulator(t)
	sub := createTestSubmission()

	forms := p.PopulateAll(sub, []string{"ACORD 126", "ACORD 999", "ACORD 125"})

	require.Len(t, forms, 2)
	assert.Equal(t, "ACORD 126", forms[0].FormType)
	assert.Equal(t, "ACORD 125", forms[1].FormType)
}

func TestPopulator_PopulateAll_Deterministic(t *testing.T) {
	p := createTestPopulator(t)
	sub := createTestSubmission()
	formTypes := []string{"ACORD 126", "ACORD 125", "ACORD 130"}

	first := p.PopulateAll(sub, formTypes)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, p.PopulateAll(sub, formTypes))
	}
}

func TestPopulator_PopulateAll_EmptyFormTypes(t *testing.T) {
	p := createTestPopulator(t)

	forms := p.PopulateAll(createTestSubmission(), nil)

	assert.NotNil(t, forms)
	assert.Empty(t, forms)
}

// ==========================
// Path Resolution Tests
// ==========================

func TestLookupPath(t *testing.T) {
	doc := submissionDocument(createTestSubmission())

	tests := []struct {
		name     string
		path     string
		expected interface{}
	}{
		{name: "top-level scalar", path: "id", expected: "sub-1001"},
		{name: "nested business field", path: "business.legalName", expected: "Lakeside Machining LLC"},
		{name: "deeply nested address field", path: "business.address.city", expected: "Cleveland"},
		{name: "hyphenated answer key", path: "coverageAnswers.gl-occurrence-limit", expected: "1000000"},
		{name: "missing leaf", path: "business.parkingSpaces", expected: nil},
		{name: "missing branch", path: "warehouse.location", expected: nil},
		{name: "path through scalar", path: "business.legalName.first", expected: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, lookupPath(doc, tt.path))
		})
	}
}

func TestFormatValue(t *testing.T) {
	tests := []struct {
		name     string
		value    interface{}
		expected string
	}{
		{name: "nil", value: nil, expected: ""},
		{name: "string", value: "  Cleveland ", expected: "Cleveland"},
		{name: "blank string", value: "   ", expected: ""},
		{name: "true", value: true, expected: "Yes"},
		{name: "false", value: false, expected: "No"},
		{name: "whole float", value: 1000000.0, expected: "1000000"},
		{name: "fractional float", value: 0.5, expected: "0.5"},
		{name: "int", value: 42, expected: "42"},
		{name: "list", value: []interface{}{"a", "", "b"}, expected: "a, b"},
		{name: "object", value: map[string]interface{}{"k": "v"}, expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, formatValue(tt.value))
		})
	}
}
