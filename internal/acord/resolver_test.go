package acord

import (
	"testing"

	"acord-intake/internal/catalog"

	"github.com/stretchr/testify/assert"
)

func createTestResolver() *Resolver {
	return NewResolver(catalog.New())
}

func TestResolver_ResolveFormTypes_GeneralLiability(t *testing.T) {
	r := createTestResolver()

	got := r.ResolveFormTypes([]string{"general-liability"})

	assert.Equal(t, []string{"ACORD 126", "ACORD 125"}, got)
}

func TestResolver_ResolveFormTypes_SharedFormsDeduplicated(t *testing.T) {
	r := createTestResolver()

	got := r.ResolveFormTypes([]string{"general-liability", "workers-compensation"})

	// ACORD 125 appears in both coverages' form lists but only once in
	// the result, at its first-seen position.
	assert.Equal(t, []string{"ACORD 126", "ACORD 125", "ACORD 130"}, got)
}

func TestResolver_ResolveFormTypes_OrderFollowsSelection(t *testing.T) {
	r := createTestResolver()

	got := r.ResolveFormTypes([]string{"workers-compensation", "general-liability"})

	assert.Equal(t, []string{"ACORD 130", "ACORD 125", "ACORD 126"}, got)
}

func TestResolver_ResolveFormTypes_EmptySelection(t *testing.T) {
	r := createTestResolver()

	got := r.ResolveFormTypes(nil)

	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestResolver_ResolveFormTypes_SkipsUnknownCoverage(t *testing.T) {
	r := createTestResolver()

	got := r.ResolveFormTypes([]string{"general-liability", "martian-liability"})

	assert.Equal(t, []string{"ACORD 126", "ACORD 125"}, got)
}

func TestResolver_ResolveFormTypes_NormalizesReferences(t *testing.T) {
	r := createTestResolver()

	got := r.ResolveFormTypes([]string{"GL", "Workers' Compensation"})

	assert.Equal(t, []string{"ACORD 126", "ACORD 125", "ACORD 130"}, got)
}

func TestResolver_ResolveFormTypes_Deterministic(t *testing.T) {
	r := createTestResolver()
	selection := []string{"commercial-auto", "general-liability", "commercial-property"}

	first := r.ResolveFormTypes(selection)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, r.ResolveFormTypes(selection))
	}
}

func TestResolver_ResolveFormTypes_AllCoverages(t *testing.T) {
	r := createTestResolver()

	got := r.ResolveFormTypes([]string{
		"general-liability",
		"workers-compensation",
		"commercial-property",
		"commercial-auto",
		"business-owners-policy",
		"professional-liability",
		"cyber-liability",
		"umbrella-liability",
	})

	assert.Equal(t, []string{
		"ACORD 126",
		"ACORD 125",
		"ACORD 130",
		"ACORD 140",
		"ACORD 24",
		"ACORD 127",
		"ACORD 129",
		"ACORD 137",
		"ACORD 160",
	}, got)
}
