// internal/api/directory_test.go
package api

import (
	"database/sql"
	"net/http"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"acord-intake/internal/common/errors"
	"acord-intake/internal/common/logger"
	"acord-intake/internal/repository"
)

func newDirectoryRouter(t *testing.T, db *sql.DB) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log := logger.NewTestLogger(t)
	errHandler := errors.NewErrorHandler(log)

	router := gin.New()
	router.Use(RequestID())
	api := router.Group("/api/v1")
	NewAgencyHandler(repository.NewAgencyRepository(db, log), errHandler, log).RegisterRoutes(api)
	NewUserHandler(repository.NewUserRepository(db, log), errHandler, log).RegisterRoutes(api)
	NewNotificationHandler(repository.NewNotificationRepository(db, log), errHandler, log).RegisterRoutes(api)
	return router
}

// ==========================
// Agency Endpoint Tests
// ==========================

func TestAgencyHandler_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`INSERT INTO agencies`).
		WithArgs(sqlmock.AnyArg(), "Hartwell Insurance Group", "Mara Ellison", "mara@hartwell.example", "216-555-0144", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	router := newDirectoryRouter(t, db)
	w := performRequest(router, http.MethodPost, "/api/v1/agencies", map[string]interface{}{
		"name":        "Hartwell Insurance Group",
		"contactName": "Mara Ellison",
		"email":       "mara@hartwell.example",
		"phone":       "216-555-0144",
		"address": map[string]interface{}{
			"line1":   "55 Public Square",
			"city":    "Cleveland",
			"state":   "OH",
			"zipCode": "44113",
		},
	})

	assert.Equal(t, http.StatusCreated, w.Code)
	body := decodeBody(t, w)
	assert.NotEmpty(t, body["id"])
	assert.Equal(t, "Hartwell Insurance Group", body["name"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAgencyHandler_Create_RejectsBadEmail(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	router := newDirectoryRouter(t, db)
	w := performRequest(router, http.MethodPost, "/api/v1/agencies", map[string]interface{}{
		"name":  "Hartwell Insurance Group",
		"email": "not-an-email",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_REQUEST", errorCode(t, w))
}

func TestAgencyHandler_Get(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "name", "contact_name", "email", "phone", "address", "created_at"}).
		AddRow("agency-01", "Hartwell Insurance Group", "Mara Ellison", "mara@hartwell.example", "216-555-0144",
			[]byte(`{"line1":"55 Public Square","city":"Cleveland","state":"OH","zipCode":"44113"}`), "2025-01-10T09:00:00Z")
	mock.ExpectQuery(`SELECT .+ FROM agencies`).WithArgs("agency-01").WillReturnRows(rows)

	router := newDirectoryRouter(t, db)
	w := performRequest(router, http.MethodGet, "/api/v1/agencies/agency-01", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "agency-01", body["id"])
	address := body["address"].(map[string]interface{})
	assert.Equal(t, "Cleveland", address["city"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAgencyHandler_Get_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT .+ FROM agencies`).
		WithArgs("agency-missing").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "contact_name", "email", "phone", "address", "created_at"}))

	router := newDirectoryRouter(t, db)
	w := performRequest(router, http.MethodGet, "/api/v1/agencies/agency-missing", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "RESOURCE_NOT_FOUND", errorCode(t, w))
}

func TestAgencyHandler_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "name", "contact_name", "email", "phone", "address", "created_at"}).
		AddRow("agency-01", "Hartwell Insurance Group", "Mara Ellison", "mara@hartwell.example", "",
			[]byte(`{}`), "2025-01-10T09:00:00Z").
		AddRow("agency-02", "Lakefront Brokers", "", "desk@lakefront.example", "",
			[]byte(`{}`), "2025-02-03T09:00:00Z")
	mock.ExpectQuery(`SELECT .+ FROM agencies`).WillReturnRows(rows)

	router := newDirectoryRouter(t, db)
	w := performRequest(router, http.MethodGet, "/api/v1/agencies", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, float64(2), body["count"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

// ==========================
// User Endpoint Tests
// ==========================

func TestUserHandler_Create_DefaultsRole(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`INSERT INTO users`).
		WithArgs(sqlmock.AnyArg(), "agency-01", "dana@hartwell.example", "Dana", "Whitfield", "producer", true, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	router := newDirectoryRouter(t, db)
	w := performRequest(router, http.MethodPost, "/api/v1/users", map[string]interface{}{
		"agencyId":  "agency-01",
		"email":     "dana@hartwell.example",
		"firstName": "Dana",
		"lastName":  "Whitfield",
	})

	assert.Equal(t, http.StatusCreated, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "producer", body["role"])
	assert.Equal(t, true, body["active"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserHandler_List_ByAgency(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "agency_id", "email", "first_name", "last_name", "role", "active", "created_at"}).
		AddRow("user-01", "agency-01", "dana@hartwell.example", "Dana", "Whitfield", "producer", true, "2025-01-12T09:00:00Z")
	mock.ExpectQuery(`SELECT .+ FROM users WHERE agency_id = \$1`).WithArgs("agency-01").WillReturnRows(rows)

	router := newDirectoryRouter(t, db)
	w := performRequest(router, http.MethodGet, "/api/v1/users?agencyId=agency-01", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, float64(1), body["count"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserHandler_List_ByEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "agency_id", "email", "first_name", "last_name", "role", "active", "created_at"}).
		AddRow("user-01", "agency-01", "dana@hartwell.example", "Dana", "Whitfield", "producer", true, "2025-01-12T09:00:00Z")
	mock.ExpectQuery(`SELECT .+ FROM users WHERE email = \$1`).WithArgs("dana@hartwell.example").WillReturnRows(rows)

	router := newDirectoryRouter(t, db)
	w := performRequest(router, http.MethodGet, "/api/v1/users?email=dana@hartwell.example", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, float64(1), body["count"])
	items := body["items"].([]interface{})
	first := items[0].(map[string]interface{})
	assert.Equal(t, "user-01", first["id"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserHandler_List_RequiresFilter(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	router := newDirectoryRouter(t, db)
	w := performRequest(router, http.MethodGet, "/api/v1/users", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_FILTER_FORMAT", errorCode(t, w))
}

// ==========================
// Notification Log Tests
// ==========================

func TestNotificationHandler_ListRecent(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "recipient_id", "recipient_type", "type", "channel", "status", "payload", "sent_at", "created_at"}).
		AddRow("notif-01", "user-01", "producer", "forms_generated", "email", "sent",
			[]byte(`{"submissionId":"sub-1001"}`), "2025-03-01T10:00:00Z", "2025-03-01T10:00:00Z")
	mock.ExpectQuery(`SELECT .+ FROM notifications`).WithArgs(25).WillReturnRows(rows)

	router := newDirectoryRouter(t, db)
	w := performRequest(router, http.MethodGet, "/api/v1/notifications?limit=25", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, float64(1), body["count"])
	items := body["items"].([]interface{})
	first := items[0].(map[string]interface{})
	assert.Equal(t, "forms_generated", first["type"])
	assert.Equal(t, "sent", first["status"])
	assert.NoError(t, mock.ExpectationsWereMet())
}
