// internal/repository/documents.go
package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"acord-intake/internal/common/logger"
	"acord-intake/internal/models"

	"github.com/google/uuid"
)

type DocumentRepository struct {
	db     *sql.DB
	logger logger.Logger
}

func NewDocumentRepository(db *sql.DB, log logger.Logger) *DocumentRepository {
	return &DocumentRepository{
		db:     db,
		logger: log.WithFields(map[string]interface{}{"component": "document-repository"}),
	}
}

func (r *DocumentRepository) Create(ctx context.Context, doc *models.Document) error {
	if doc.ID == "" {
		doc.ID = uuid.New().String()
	}
	if doc.Status == "" {
		doc.Status = "pending"
	}
	doc.CreatedAt = time.Now().UTC().Format(time.RFC3339)

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO documents (id, submission_id, form_type, kind, remote_id, url, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		doc.ID,
		doc.SubmissionID,
		doc.FormType,
		doc.Kind,
		doc.RemoteID,
		doc.URL,
		doc.Status,
		doc.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("%w: insert failed: %w", ErrDatabaseInsert, err)
	}
	return nil
}

// UpdateStatus records the outcome of a render attempt.
func (r *DocumentRepository) UpdateStatus(ctx context.Context, id, status, remoteID, url string) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE documents SET status = $2, remote_id = $3, url = $4 WHERE id = $1`,
		id, status, remoteID, url)
	if err != nil {
		return fmt.Errorf("%w: update failed: %w", ErrQueryFailed, err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return fmt.Errorf("%w: document %s", ErrNotFound, id)
	}
	return nil
}

func (r *DocumentRepository) ListBySubmission(ctx context.Context, submissionID string) ([]*models.Document, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, submission_id, form_type, kind, remote_id, url, status, created_at
		FROM documents
		WHERE submission_id = $1
		ORDER BY created_at DESC`, submissionID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrQueryFailed, err)
	}
	defer rows.Close()

	var docs []*models.Document
	for rows.Next() {
		var doc models.Document
		if err := rows.Scan(&doc.ID, &doc.SubmissionID, &doc.FormType, &doc.Kind, &doc.RemoteID, &doc.URL, &doc.Status, &doc.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrQueryFailed, err)
		}
		docs = append(docs, &doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrQueryFailed, err)
	}
	return docs, nil
}
