// internal/repository/repository.go
// Package repository persists intake entities in PostgreSQL. Structured
// blocks (business, contact, answers, form fields) live in JSONB
// columns; everything filtered on is a plain column.
package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"acord-intake/internal/common/logger"
)

var (
	ErrNotFound            = errors.New("RESOURCE_NOT_FOUND")
	ErrDuplicateSubmission = errors.New("DUPLICATE_SUBMISSION")
	ErrDatabaseInsert      = errors.New("DATABASE_INSERT_FAILED")
	ErrQueryFailed         = errors.New("QUERY_EXECUTION_FAILED")
	ErrInvalidTransition   = errors.New("INVALID_STATUS_TRANSITION")
)

// writeAudit records an audit trail entry. Audit writes are
// non-critical: failures are logged and swallowed so they never fail
// the operation they describe.
func writeAudit(ctx context.Context, db *sql.DB, log logger.Logger, eventType, resourceType, resourceID string, details map[string]interface{}) {
	detailsJSON, err := json.Marshal(details)
	if err != nil {
		log.Warn("failed to marshal audit log details", map[string]interface{}{
			"error": err,
		})
		detailsJSON = []byte("{}")
	}

	_, err = db.ExecContext(ctx, `
		INSERT INTO audit_log (event_type, resource_type, resource_id, details, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		eventType,
		resourceType,
		resourceID,
		detailsJSON,
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		log.Warn("audit log insert failed", map[string]interface{}{
			"error":      err,
			"resourceId": resourceID,
			"eventType":  eventType,
		})
	}
}
