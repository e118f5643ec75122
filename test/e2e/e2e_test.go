// test/e2e/e2e_test.go
package e2e

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"acord-intake/internal/acord"
	"acord-intake/internal/api"
	"acord-intake/internal/cache"
	"acord-intake/internal/catalog"
	"acord-intake/internal/common/config"
	"acord-intake/internal/common/errors"
	"acord-intake/internal/common/logger"
	"acord-intake/internal/models"
	"acord-intake/internal/repository"
)

// ==========================
// Test Environment
// ==========================

// newIntakeServer wires the full HTTP stack the way cmd/intake-server
// does, against a mocked Postgres and an in-process Redis.
func newIntakeServer(t *testing.T) (*gin.Engine, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)
	redisClient := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { redisClient.Close() })

	log := logger.NewTestLogger(t)
	errHandler := errors.NewErrorHandler(log)

	coverageCatalog := catalog.New()
	engine := acord.NewEngine(coverageCatalog, acord.NewFormCatalog(), log)

	submissionRepo := repository.NewSubmissionRepository(db, log)
	formRepo := repository.NewFormRepository(db, log)
	documentRepo := repository.NewDocumentRepository(db, log)
	agencyRepo := repository.NewAgencyRepository(db, log)
	userRepo := repository.NewUserRepository(db, log)
	notificationRepo := repository.NewNotificationRepository(db, log)

	handlers := api.Handlers{
		Submissions: api.NewSubmissionHandler(api.SubmissionHandlerDeps{
			Submissions: submissionRepo,
			Forms:       formRepo,
			Documents:   documentRepo,
			Users:       userRepo,
			Engine:      engine,
			Cache:       cache.NewFormCache(redisClient, time.Minute, log),
		}, errHandler, log),
		CoverageTypes: api.NewCoverageTypeHandler(coverageCatalog, errHandler, log),
		Agencies:      api.NewAgencyHandler(agencyRepo, errHandler, log),
		Users:         api.NewUserHandler(userRepo, errHandler, log),
		Notifications: api.NewNotificationHandler(notificationRepo, errHandler, log),
		Admin:         api.NewAdminHandler(engine, "", errHandler, log),
	}

	cfg := &config.Config{
		App: config.AppConfig{
			Name:        "acord-intake",
			Version:     "e2e",
			Environment: "test",
		},
		Server: config.ServerConfig{Host: "127.0.0.1", Port: 0},
	}

	srv := api.NewServer(cfg, log, nil, handlers, db, redisClient)
	return srv.Router(), mock
}

func intakeSubmission(id string, status models.SubmissionStatus, withAnswers bool) *models.Submission {
	sub := &models.Submission{
		ID:         id,
		AgencyID:   "agency-e2e",
		ProducerID: "producer-e2e",
		ClientType: models.ClientTypeBusiness,
		Status:     status,
		Business: models.BusinessInfo{
			LegalName:       "Harborline Logistics LLC",
			FEIN:            "34-5561208",
			EntityType:      "llc",
			YearsInBusiness: 9,
			AnnualRevenue:   3100000,
			EmployeeCount:   24,
			NAICSCode:       "488510",
			Description:     "Freight forwarding and warehousing on the Cuyahoga river docks",
			Address: models.Address{
				Line1:   "18 Dock Street",
				City:    "Cleveland",
				State:   "OH",
				ZipCode: "44114",
			},
		},
		Contact: models.ContactInfo{
			FirstName: "Ruth",
			LastName:  "Calloway",
			Email:     "ruth.calloway@harborline.example.com",
			Phone:     "(216) 555-0188",
		},
		CoverageTypes: []string{"general-liability", "workers-compensation"},
		CreatedAt:     "2025-04-02T09:00:00Z",
		UpdatedAt:     "2025-04-02T09:00:00Z",
	}
	if withAnswers {
		sub.Answers = map[string]interface{}{
			"gl-operations-description": "Freight forwarding and warehousing",
			"gl-gross-receipts":         3100000.0,
			"gl-occurrence-limit":       "1000000",
			"gl-prior-claims":           "No",
			"wc-employee-count":         24.0,
			"wc-annual-payroll":         1480000.0,
			"wc-states":                 "OH",
		}
	}
	return sub
}

var submissionColumns = []string{
	"id", "agency_id", "producer_id", "client_type", "status",
	"business", "contact", "coverage_types", "coverage_answers",
	"submitted_at", "created_at", "updated_at",
}

func submissionRows(t *testing.T, sub *models.Submission) *sqlmock.Rows {
	t.Helper()
	businessJSON, err := json.Marshal(sub.Business)
	require.NoError(t, err)
	contactJSON, err := json.Marshal(sub.Contact)
	require.NoError(t, err)
	coveragesJSON, err := json.Marshal(sub.CoverageTypes)
	require.NoError(t, err)
	answersJSON, err := json.Marshal(sub.Answers)
	require.NoError(t, err)

	var submittedAt interface{}
	if sub.SubmittedAt != "" {
		submittedAt = sub.SubmittedAt
	}
	return sqlmock.NewRows(submissionColumns).AddRow(
		sub.ID, sub.AgencyID, sub.ProducerID, string(sub.ClientType), string(sub.Status),
		businessJSON, contactJSON, coveragesJSON, answersJSON,
		submittedAt, sub.CreatedAt, sub.UpdatedAt,
	)
}

func perform(router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

// ==========================
// Full Intake Journey
// ==========================

// TestFullIntakeJourney walks the producer workflow end to end over the
// real router: directory setup, draft submission, answer validation,
// submit, form generation with caching, and decline.
func TestFullIntakeJourney(t *testing.T) {
	router, mock := newIntakeServer(t)

	// --- 0. Service is up ---
	w := perform(router, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, w.Code)
	t.Log("✅ Service healthy")

	// --- 1. Browse the coverage catalog ---
	w = perform(router, http.MethodGet, "/api/v1/coverage-types?clientType=business", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, float64(8), body["count"])

	w = perform(router, http.MethodGet, "/api/v1/coverage-types/questions?ids=gl,workers-comp", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body = decode(t, w)
	assert.Equal(t, float64(11), body["count"])
	t.Log("✅ Coverage catalog browsed")

	// --- 2. Directory: agency and producer ---
	mock.ExpectExec(`INSERT INTO agencies`).
		WithArgs(sqlmock.AnyArg(), "Harborline Insurance Partners", "", "desk@harborline-ins.example", "", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	w = perform(router, http.MethodPost, "/api/v1/agencies", map[string]interface{}{
		"name":  "Harborline Insurance Partners",
		"email": "desk@harborline-ins.example",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	agencyID := decode(t, w)["id"].(string)
	require.NotEmpty(t, agencyID)

	mock.ExpectExec(`INSERT INTO users`).
		WithArgs(sqlmock.AnyArg(), agencyID, "mel.osei@harborline-ins.example", "Mel", "Osei", "producer", true, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	w = perform(router, http.MethodPost, "/api/v1/users", map[string]interface{}{
		"agencyId":  agencyID,
		"email":     "mel.osei@harborline-ins.example",
		"firstName": "Mel",
		"lastName":  "Osei",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	producerID := decode(t, w)["id"].(string)
	t.Log("✅ Agency and producer created")

	// --- 3. Start a draft submission ---
	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs(agencyID, "Harborline Logistics LLC").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectExec(`INSERT INTO submissions`).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(`INSERT INTO audit_log`).
		WillReturnResult(sqlmock.NewResult(1, 1))

	w = perform(router, http.MethodPost, "/api/v1/submissions", map[string]interface{}{
		"agencyId":   agencyID,
		"producerId": producerID,
		"clientType": "business",
		"business": map[string]interface{}{
			"legalName":       "Harborline Logistics LLC",
			"fein":            "34-5561208",
			"entityType":      "llc",
			"yearsInBusiness": 9,
			"annualRevenue":   3100000,
			"employeeCount":   24,
			"naicsCode":       "488510",
			"description":     "Freight forwarding and warehousing on the Cuyahoga river docks",
			"address": map[string]interface{}{
				"line1":   "18 Dock Street",
				"city":    "Cleveland",
				"state":   "OH",
				"zipCode": "44114",
			},
		},
		"contact": map[string]interface{}{
			"firstName": "Ruth",
			"lastName":  "Calloway",
			"email":     "ruth.calloway@harborline.example.com",
			"phone":     "(216) 555-0188",
		},
		"coverageTypes": []string{"GL", "workers-comp"},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode(t, w)
	subID := created["id"].(string)
	require.NotEmpty(t, subID)
	assert.Equal(t, "draft", created["status"])
	assert.Equal(t, []interface{}{"general-liability", "workers-compensation"},
		created["coverageTypes"])
	t.Logf("✅ Draft submission started: %s", subID)

	// Fixture rows reuse the server-assigned ids from here on.
	draft := intakeSubmission(subID, models.StatusDraft, false)
	draft.AgencyID = agencyID
	draft.ProducerID = producerID

	// --- 4. Dry-run validation flags the unanswered questions ---
	mock.ExpectQuery(`SELECT .+ FROM submissions`).
		WithArgs(subID).
		WillReturnRows(submissionRows(t, draft))

	w = perform(router, http.MethodPost, "/api/v1/submissions/"+subID+"/validate", nil)
	require.Equal(t, http.StatusOK, w.Code)
	validation := decode(t, w)
	assert.Equal(t, false, validation["isValid"])
	assert.NotEmpty(t, validation["errors"])
	t.Log("✅ Validation reported the missing answers")

	// --- 5. Fill in the coverage answers ---
	mock.ExpectQuery(`SELECT .+ FROM submissions`).
		WithArgs(subID).
		WillReturnRows(submissionRows(t, draft))
	mock.ExpectExec(`UPDATE submissions`).
		WithArgs(subID, "business", sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	answered := intakeSubmission(subID, models.StatusDraft, true)
	answered.AgencyID = agencyID
	answered.ProducerID = producerID

	w = perform(router, http.MethodPut, "/api/v1/submissions/"+subID, map[string]interface{}{
		"coverageAnswers": answered.Answers,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	t.Log("✅ Coverage answers saved")

	// --- 6. Submit ---
	submitted := intakeSubmission(subID, models.StatusSubmitted, true)
	submitted.AgencyID = agencyID
	submitted.ProducerID = producerID
	submitted.SubmittedAt = "2025-04-02T09:30:00Z"

	mock.ExpectQuery(`SELECT .+ FROM submissions`).
		WithArgs(subID).
		WillReturnRows(submissionRows(t, answered))
	mock.ExpectQuery(`SELECT status FROM submissions`).
		WithArgs(subID).
		WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("draft"))
	mock.ExpectExec(`UPDATE submissions SET status = \$2, submitted_at`).
		WithArgs(subID, "submitted", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO audit_log`).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectQuery(`SELECT .+ FROM submissions`).
		WithArgs(subID).
		WillReturnRows(submissionRows(t, submitted))

	w = perform(router, http.MethodPost, "/api/v1/submissions/"+subID+"/submit", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body = decode(t, w)
	assert.Equal(t, "submitted", body["submission"].(map[string]interface{})["status"])
	assert.Equal(t, true, body["validation"].(map[string]interface{})["isValid"])
	t.Log("✅ Submission submitted")

	// --- 7. Generate the ACORD forms ---
	mock.ExpectQuery(`SELECT .+ FROM submissions`).
		WithArgs(subID).
		WillReturnRows(submissionRows(t, submitted))
	mock.ExpectQuery(`SELECT .+ FROM generated_forms`).
		WithArgs(subID).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "submission_id", "form_type", "form_name", "fields", "generated_at",
		}))
	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM generated_forms`).
		WithArgs(subID).
		WillReturnResult(sqlmock.NewResult(0, 0))
	for i := 0; i < 3; i++ {
		mock.ExpectExec(`INSERT INTO generated_forms`).
			WillReturnResult(sqlmock.NewResult(1, 1))
	}
	mock.ExpectCommit()
	mock.ExpectExec(`INSERT INTO audit_log`).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectQuery(`SELECT status FROM submissions`).
		WithArgs(subID).
		WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("submitted"))
	mock.ExpectExec(`UPDATE submissions SET status`).
		WithArgs(subID, "forms_generated", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO audit_log`).
		WillReturnResult(sqlmock.NewResult(1, 1))

	w = perform(router, http.MethodGet, "/api/v1/submissions/"+subID+"/forms", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body = decode(t, w)
	assert.Equal(t, "generated", body["source"])
	items := body["items"].([]interface{})
	require.Len(t, items, 3)
	var formTypes []string
	for _, item := range items {
		formTypes = append(formTypes, item.(map[string]interface{})["formType"].(string))
	}
	assert.Equal(t, []string{"ACORD 126", "ACORD 125", "ACORD 130"}, formTypes)
	t.Log("✅ Forms generated: ACORD 126, 125, 130")

	// --- 8. Second fetch is served from cache ---
	generated := intakeSubmission(subID, models.StatusFormsGenerated, true)
	generated.AgencyID = agencyID
	generated.ProducerID = producerID
	generated.SubmittedAt = "2025-04-02T09:30:00Z"

	mock.ExpectQuery(`SELECT .+ FROM submissions`).
		WithArgs(subID).
		WillReturnRows(submissionRows(t, generated))

	w = perform(router, http.MethodGet, "/api/v1/submissions/"+subID+"/forms", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body = decode(t, w)
	assert.Equal(t, "cache", body["source"])
	assert.Equal(t, float64(3), body["count"])
	t.Log("✅ Second fetch served from cache")

	// --- 9. Underwriting declines the risk ---
	declined := intakeSubmission(subID, models.StatusDeclined, true)
	declined.AgencyID = agencyID
	declined.ProducerID = producerID
	declined.SubmittedAt = "2025-04-02T09:30:00Z"

	mock.ExpectQuery(`SELECT .+ FROM submissions`).
		WithArgs(subID).
		WillReturnRows(submissionRows(t, generated))
	mock.ExpectQuery(`SELECT status FROM submissions`).
		WithArgs(subID).
		WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("forms_generated"))
	mock.ExpectExec(`UPDATE submissions SET status`).
		WithArgs(subID, "declined", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO audit_log`).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectQuery(`SELECT .+ FROM submissions`).
		WithArgs(subID).
		WillReturnRows(submissionRows(t, declined))

	w = perform(router, http.MethodPost, "/api/v1/submissions/"+subID+"/status", map[string]interface{}{
		"status": "declined",
		"reason": "exposure outside carrier appetite",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "declined", decode(t, w)["status"])
	t.Log("✅ Submission declined")

	// --- 10. Catalog consistency over the admin surface ---
	w = perform(router, http.MethodGet, "/api/v1/admin/catalog-check", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decode(t, w)["clean"])

	assert.NoError(t, mock.ExpectationsWereMet())
	t.Log("✅ Full intake journey complete")
}

// ==========================
// Duplicate Guard
// ==========================

func TestIntakeJourney_DuplicateSubmissionRejected(t *testing.T) {
	router, mock := newIntakeServer(t)

	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs("agency-e2e", "Harborline Logistics LLC").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	w := perform(router, http.MethodPost, "/api/v1/submissions", map[string]interface{}{
		"agencyId":   "agency-e2e",
		"clientType": "business",
		"business":   map[string]interface{}{"legalName": "Harborline Logistics LLC"},
		"contact":    map[string]interface{}{"firstName": "Ruth", "lastName": "Calloway"},
	})

	require.Equal(t, http.StatusConflict, w.Code, w.Body.String())
	body := decode(t, w)
	errObj := body["error"].(map[string]interface{})
	assert.Equal(t, "DUPLICATE_SUBMISSION", errObj["code"])
	assert.NoError(t, mock.ExpectationsWereMet())
}
