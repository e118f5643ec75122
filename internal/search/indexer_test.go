// internal/search/indexer_test.go
package search

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"acord-intake/internal/models"
)

func createIndexableSubmission() *models.Submission {
	return &models.Submission{
		ID:         "sub-2001",
		AgencyID:   "agency-1",
		ProducerID: "user-9",
		ClientType: models.ClientTypeBusiness,
		Status:     models.StatusSubmitted,
		Business: models.BusinessInfo{
			LegalName:   "Lakeside Machining LLC",
			DBA:         "Lakeside Precision",
			NAICSCode:   "332710",
			Description: "CNC machine shop producing custom metal parts",
			Address: models.Address{
				Line1:   "900 Foundry Road",
				City:    "Sandusky",
				State:   "OH",
				ZipCode: "44870",
			},
		},
		Contact: models.ContactInfo{
			FirstName: "Dana",
			LastName:  "Whitfield",
			Email:     "dana@lakesidemachining.example",
			Phone:     "(419) 555-0144",
		},
		CoverageTypes: []string{"general-liability", "workers-comp"},
		CreatedAt:     "2025-03-14T15:30:00Z",
		UpdatedAt:     "2025-03-14T15:30:00Z",
	}
}

// ==========================
// Index Tests
// ==========================

func TestSearcher_IndexSubmission(t *testing.T) {
	var gotMethod, gotPath string
	var gotDoc map[string]interface{}

	searcher := newTestSearcher(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &gotDoc))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"result": "created"}`))
	})

	err := searcher.IndexSubmission(context.Background(), createIndexableSubmission())

	require.NoError(t, err)
	assert.Equal(t, http.MethodPut, gotMethod)
	assert.Equal(t, "/submissions/_doc/sub-2001", gotPath)
	assert.Equal(t, "Lakeside Machining LLC", gotDoc["businessName"])
	assert.Equal(t, "Dana Whitfield", gotDoc["contactName"])
	assert.Equal(t, "OH", gotDoc["state"])
}

func TestSearcher_IndexSubmission_ServerError(t *testing.T) {
	searcher := newTestSearcher(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"error": {"type": "cluster_block_exception"}}`))
	})

	err := searcher.IndexSubmission(context.Background(), createIndexableSubmission())

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrIndexWriteFailed)
	assert.Contains(t, err.Error(), "sub-2001")
}

func TestSearcher_DeleteSubmission(t *testing.T) {
	var gotMethod, gotPath string

	searcher := newTestSearcher(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"result": "deleted"}`))
	})

	err := searcher.DeleteSubmission(context.Background(), "sub-2001")

	require.NoError(t, err)
	assert.Equal(t, http.MethodDelete, gotMethod)
	assert.Equal(t, "/submissions/_doc/sub-2001", gotPath)
}

func TestSearcher_DeleteSubmission_MissingDocument(t *testing.T) {
	searcher := newTestSearcher(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"result": "not_found"}`))
	})

	err := searcher.DeleteSubmission(context.Background(), "sub-gone")

	assert.NoError(t, err)
}

// ==========================
// Document Builder Tests
// ==========================

func TestBuildDocument(t *testing.T) {
	doc := buildDocument(createIndexableSubmission())

	assert.Equal(t, "sub-2001", doc["id"])
	assert.Equal(t, "business", doc["clientType"])
	assert.Equal(t, "submitted", doc["status"])
	assert.Equal(t, "Lakeside Precision", doc["dba"])
	assert.Equal(t, "332710", doc["naicsCode"])
	assert.Equal(t, "Sandusky", doc["city"])
	assert.Equal(t, []string{"general-liability", "workers-comp"}, doc["coverageTypes"])
}

func TestBuildDocument_OmitsEmptyOptionalFields(t *testing.T) {
	sub := createIndexableSubmission()
	sub.Business.DBA = ""
	sub.Business.Description = ""
	sub.Business.NAICSCode = ""
	sub.Business.Address.City = ""
	sub.Business.Address.State = ""

	doc := buildDocument(sub)

	assert.NotContains(t, doc, "dba")
	assert.NotContains(t, doc, "description")
	assert.NotContains(t, doc, "naicsCode")
	assert.NotContains(t, doc, "city")
	assert.NotContains(t, doc, "state")
	assert.Equal(t, "Lakeside Machining LLC", doc["businessName"])
}
