// internal/repository/forms.go
package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"acord-intake/internal/common/logger"
	"acord-intake/internal/models"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type FormRepository struct {
	db     *sql.DB
	logger logger.Logger
}

func NewFormRepository(db *sql.DB, log logger.Logger) *FormRepository {
	return &FormRepository{
		db:     db,
		logger: log.WithFields(map[string]interface{}{"component": "form-repository"}),
	}
}

// SaveForms replaces the stored forms of a submission with a freshly
// generated set. Delete and insert run in one transaction so a partial
// failure never leaves a mixed generation behind.
func (r *FormRepository) SaveForms(ctx context.Context, submissionID string, forms []*models.GeneratedForm) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: begin transaction: %w", ErrDatabaseInsert, err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM generated_forms WHERE submission_id = $1`, submissionID); err != nil {
		return fmt.Errorf("%w: clear previous forms: %w", ErrDatabaseInsert, err)
	}

	for position, form := range forms {
		if form.ID == "" {
			form.ID = uuid.New().String()
		}
		form.SubmissionID = submissionID

		fieldsJSON, err := json.Marshal(form.Fields)
		if err != nil {
			return fmt.Errorf("%w: marshal fields for %s: %w", ErrDatabaseInsert, form.FormType, err)
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO generated_forms (id, submission_id, position, form_type, form_name, fields, generated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			form.ID,
			submissionID,
			position,
			form.FormType,
			form.FormName,
			fieldsJSON,
			form.GeneratedAt,
		)
		if err != nil {
			return fmt.Errorf("%w: insert form %s: %w", ErrDatabaseInsert, form.FormType, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit: %w", ErrDatabaseInsert, err)
	}

	writeAudit(ctx, r.db, r.logger, "forms_generated", "submission", submissionID, map[string]interface{}{
		"formCount": len(forms),
	})

	r.logger.Info("stored generated forms", map[string]interface{}{
		"submissionId": submissionID,
		"formCount":    len(forms),
	})
	return nil
}

// ListBySubmission returns the stored forms in generation order.
func (r *FormRepository) ListBySubmission(ctx context.Context, submissionID string) ([]*models.GeneratedForm, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, submission_id, form_type, form_name, fields, generated_at
		FROM generated_forms
		WHERE submission_id = $1
		ORDER BY position`, submissionID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrQueryFailed, err)
	}
	defer rows.Close()

	var forms []*models.GeneratedForm
	for rows.Next() {
		var form models.GeneratedForm
		var fieldsJSON []byte
		if err := rows.Scan(&form.ID, &form.SubmissionID, &form.FormType, &form.FormName, &fieldsJSON, &form.GeneratedAt); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrQueryFailed, err)
		}
		if err := json.Unmarshal(fieldsJSON, &form.Fields); err != nil {
			return nil, fmt.Errorf("%w: unmarshal fields: %w", ErrQueryFailed, err)
		}
		forms = append(forms, &form)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrQueryFailed, err)
	}
	return forms, nil
}

// CountsForSubmissions returns the stored form count per submission id.
// Submissions without forms are absent from the map.
func (r *FormRepository) CountsForSubmissions(ctx context.Context, submissionIDs []string) (map[string]int, error) {
	counts := make(map[string]int, len(submissionIDs))
	if len(submissionIDs) == 0 {
		return counts, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT submission_id, COUNT(*)
		FROM generated_forms
		WHERE submission_id = ANY($1)
		GROUP BY submission_id`, pq.Array(submissionIDs))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrQueryFailed, err)
	}
	defer rows.Close()

	for rows.Next() {
		var id string
		var count int
		if err := rows.Scan(&id, &count); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrQueryFailed, err)
		}
		counts[id] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrQueryFailed, err)
	}
	return counts, nil
}
