// internal/repository/submissions.go
package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"acord-intake/internal/common/logger"
	"acord-intake/internal/models"

	"github.com/google/uuid"
)

type SubmissionRepository struct {
	db     *sql.DB
	logger logger.Logger
}

func NewSubmissionRepository(db *sql.DB, log logger.Logger) *SubmissionRepository {
	return &SubmissionRepository{
		db:     db,
		logger: log.WithFields(map[string]interface{}{"component": "submission-repository"}),
	}
}

// SubmissionFilter narrows List results. Zero values mean no filter.
type SubmissionFilter struct {
	AgencyID   string
	ProducerID string
	Status     string
	ClientType string
	Limit      int
	Offset     int
}

const submissionColumns = `id, agency_id, producer_id, client_type, status, business, contact, coverage_types, coverage_answers, submitted_at, created_at, updated_at`

// Create inserts a new submission. An open submission for the same
// agency and business name is rejected as a duplicate.
func (r *SubmissionRepository) Create(ctx context.Context, sub *models.Submission) error {
	var exists bool
	err := r.db.QueryRowContext(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM submissions
			WHERE agency_id = $1
			  AND lower(business->>'legalName') = lower($2)
			  AND status NOT IN ('completed', 'declined')
		)`, sub.AgencyID, sub.Business.LegalName).Scan(&exists)
	if err != nil {
		return fmt.Errorf("%w: duplicate check failed: %w", ErrDatabaseInsert, err)
	}
	if exists {
		return fmt.Errorf("%w: open submission already exists for %q at agency %s",
			ErrDuplicateSubmission, sub.Business.LegalName, sub.AgencyID)
	}

	if sub.ID == "" {
		sub.ID = uuid.New().String()
	}
	if sub.Status == "" {
		sub.Status = models.StatusDraft
	}
	now := time.Now().UTC().Format(time.RFC3339)
	sub.CreatedAt = now
	sub.UpdatedAt = now

	businessJSON, contactJSON, coveragesJSON, answersJSON, err := marshalSubmissionBlocks(sub)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrDatabaseInsert, err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO submissions (
			id, agency_id, producer_id, client_type, status,
			business, contact, coverage_types, coverage_answers,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $10)`,
		sub.ID,
		sub.AgencyID,
		sub.ProducerID,
		string(sub.ClientType),
		string(sub.Status),
		businessJSON,
		contactJSON,
		coveragesJSON,
		answersJSON,
		now,
	)
	if err != nil {
		return fmt.Errorf("%w: insert failed: %w", ErrDatabaseInsert, err)
	}

	writeAudit(ctx, r.db, r.logger, "submission_created", "submission", sub.ID, map[string]interface{}{
		"agencyId":   sub.AgencyID,
		"producerId": sub.ProducerID,
		"clientType": sub.ClientType,
	})

	r.logger.Info("submission record created", map[string]interface{}{
		"submissionId": sub.ID,
		"agencyId":     sub.AgencyID,
	})
	return nil
}

// GetByID loads one submission.
func (r *SubmissionRepository) GetByID(ctx context.Context, id string) (*models.Submission, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+submissionColumns+`
		FROM submissions
		WHERE id = $1`, id)

	sub, err := scanSubmission(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: submission %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrQueryFailed, err)
	}
	return sub, nil
}

// List returns submissions matching the filter, newest first.
func (r *SubmissionRepository) List(ctx context.Context, filter SubmissionFilter) ([]*models.Submission, error) {
	var conditions []string
	var args []interface{}

	addCondition := func(column, value string) {
		if value == "" {
			return
		}
		args = append(args, value)
		conditions = append(conditions, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	addCondition("agency_id", filter.AgencyID)
	addCondition("producer_id", filter.ProducerID)
	addCondition("status", filter.Status)
	addCondition("client_type", filter.ClientType)

	query := `SELECT ` + submissionColumns + ` FROM submissions`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY created_at DESC"

	limit := filter.Limit
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	args = append(args, limit)
	query += fmt.Sprintf(" LIMIT $%d", len(args))
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrQueryFailed, err)
	}
	defer rows.Close()

	var subs []*models.Submission
	for rows.Next() {
		sub, err := scanSubmission(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrQueryFailed, err)
		}
		subs = append(subs, sub)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrQueryFailed, err)
	}
	return subs, nil
}

// Update replaces the editable blocks of a submission and bumps
// updated_at. Status is not touched here; use UpdateStatus.
func (r *SubmissionRepository) Update(ctx context.Context, sub *models.Submission) error {
	businessJSON, contactJSON, coveragesJSON, answersJSON, err := marshalSubmissionBlocks(sub)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrDatabaseInsert, err)
	}
	sub.UpdatedAt = time.Now().UTC().Format(time.RFC3339)

	result, err := r.db.ExecContext(ctx, `
		UPDATE submissions
		SET client_type = $2, business = $3, contact = $4,
		    coverage_types = $5, coverage_answers = $6, updated_at = $7
		WHERE id = $1`,
		sub.ID,
		string(sub.ClientType),
		businessJSON,
		contactJSON,
		coveragesJSON,
		answersJSON,
		sub.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("%w: update failed: %w", ErrQueryFailed, err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return fmt.Errorf("%w: submission %s", ErrNotFound, sub.ID)
	}
	return nil
}

// UpdateStatus moves a submission through its lifecycle. Disallowed
// transitions are rejected before anything is written.
func (r *SubmissionRepository) UpdateStatus(ctx context.Context, id string, to models.SubmissionStatus) error {
	var current string
	err := r.db.QueryRowContext(ctx, `SELECT status FROM submissions WHERE id = $1`, id).Scan(&current)
	if err == sql.ErrNoRows {
		return fmt.Errorf("%w: submission %s", ErrNotFound, id)
	}
	if err != nil {
		return fmt.Errorf("%w: %w", ErrQueryFailed, err)
	}

	from := models.SubmissionStatus(current)
	if !models.CanTransition(from, to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
	}

	now := time.Now().UTC().Format(time.RFC3339)
	if to == models.StatusSubmitted {
		_, err = r.db.ExecContext(ctx, `
			UPDATE submissions SET status = $2, submitted_at = $3, updated_at = $3 WHERE id = $1`,
			id, string(to), now)
	} else {
		_, err = r.db.ExecContext(ctx, `
			UPDATE submissions SET status = $2, updated_at = $3 WHERE id = $1`,
			id, string(to), now)
	}
	if err != nil {
		return fmt.Errorf("%w: status update failed: %w", ErrQueryFailed, err)
	}

	writeAudit(ctx, r.db, r.logger, "submission_status_changed", "submission", id, map[string]interface{}{
		"from": string(from),
		"to":   string(to),
	})
	return nil
}

// Delete removes a draft. Submissions past draft are never deleted.
func (r *SubmissionRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `
		DELETE FROM submissions WHERE id = $1 AND status = 'draft'`, id)
	if err != nil {
		return fmt.Errorf("%w: delete failed: %w", ErrQueryFailed, err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return fmt.Errorf("%w: draft submission %s", ErrNotFound, id)
	}
	return nil
}

func marshalSubmissionBlocks(sub *models.Submission) ([]byte, []byte, []byte, []byte, error) {
	businessJSON, err := json.Marshal(sub.Business)
	if err != nil {
		return nil, nil, nil, nil, fmt.Errorf("marshal business: %v", err)
	}
	contactJSON, err := json.Marshal(sub.Contact)
	if err != nil {
		return nil, nil, nil, nil, fmt.Errorf("marshal contact: %v", err)
	}
	coverages := sub.CoverageTypes
	if coverages == nil {
		coverages = []string{}
	}
	coveragesJSON, err := json.Marshal(coverages)
	if err != nil {
		return nil, nil, nil, nil, fmt.Errorf("marshal coverage types: %v", err)
	}
	answers := sub.Answers
	if answers == nil {
		answers = map[string]interface{}{}
	}
	answersJSON, err := json.Marshal(answers)
	if err != nil {
		return nil, nil, nil, nil, fmt.Errorf("marshal coverage answers: %v", err)
	}
	return businessJSON, contactJSON, coveragesJSON, answersJSON, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSubmission(row rowScanner) (*models.Submission, error) {
	var sub models.Submission
	var clientType, status string
	var businessJSON, contactJSON, coveragesJSON, answersJSON []byte
	var submittedAt sql.NullString

	err := row.Scan(
		&sub.ID,
		&sub.AgencyID,
		&sub.ProducerID,
		&clientType,
		&status,
		&businessJSON,
		&contactJSON,
		&coveragesJSON,
		&answersJSON,
		&submittedAt,
		&sub.CreatedAt,
		&sub.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	sub.ClientType = models.ClientType(clientType)
	sub.Status = models.SubmissionStatus(status)
	if submittedAt.Valid {
		sub.SubmittedAt = submittedAt.String
	}
	if err := json.Unmarshal(businessJSON, &sub.Business); err != nil {
		return nil, fmt.Errorf("unmarshal business: %v", err)
	}
	if err := json.Unmarshal(contactJSON, &sub.Contact); err != nil {
		return nil, fmt.Errorf("unmarshal contact: %v", err)
	}
	if err := json.Unmarshal(coveragesJSON, &sub.CoverageTypes); err != nil {
		return nil, fmt.Errorf("unmarshal coverage types: %v", err)
	}
	if err := json.Unmarshal(answersJSON, &sub.Answers); err != nil {
		return nil, fmt.Errorf("unmarshal coverage answers: %v", err)
	}
	return &sub, nil
}
