// internal/repository/agencies.go
package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"acord-intake/internal/common/logger"
	"acord-intake/internal/models"

	"github.com/google/uuid"
)

type AgencyRepository struct {
	db     *sql.DB
	logger logger.Logger
}

func NewAgencyRepository(db *sql.DB, log logger.Logger) *AgencyRepository {
	return &AgencyRepository{
		db:     db,
		logger: log.WithFields(map[string]interface{}{"component": "agency-repository"}),
	}
}

func (r *AgencyRepository) Create(ctx context.Context, agency *models.Agency) error {
	if agency.ID == "" {
		agency.ID = uuid.New().String()
	}
	agency.CreatedAt = time.Now().UTC().Format(time.RFC3339)

	addressJSON, err := json.Marshal(agency.Address)
	if err != nil {
		return fmt.Errorf("%w: marshal address: %w", ErrDatabaseInsert, err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO agencies (id, name, contact_name, email, phone, address, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		agency.ID,
		agency.Name,
		agency.ContactName,
		agency.Email,
		agency.Phone,
		addressJSON,
		agency.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("%w: insert failed: %w", ErrDatabaseInsert, err)
	}

	r.logger.Info("agency created", map[string]interface{}{"agencyId": agency.ID})
	return nil
}

func (r *AgencyRepository) GetByID(ctx context.Context, id string) (*models.Agency, error) {
	var agency models.Agency
	var addressJSON []byte

	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, contact_name, email, phone, address, created_at
		FROM agencies
		WHERE id = $1`, id).Scan(
		&agency.ID,
		&agency.Name,
		&agency.ContactName,
		&agency.Email,
		&agency.Phone,
		&addressJSON,
		&agency.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: agency %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrQueryFailed, err)
	}
	if err := json.Unmarshal(addressJSON, &agency.Address); err != nil {
		return nil, fmt.Errorf("%w: unmarshal address: %w", ErrQueryFailed, err)
	}
	return &agency, nil
}

func (r *AgencyRepository) List(ctx context.Context) ([]*models.Agency, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, contact_name, email, phone, address, created_at
		FROM agencies
		ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrQueryFailed, err)
	}
	defer rows.Close()

	var agencies []*models.Agency
	for rows.Next() {
		var agency models.Agency
		var addressJSON []byte
		if err := rows.Scan(&agency.ID, &agency.Name, &agency.ContactName, &agency.Email, &agency.Phone, &addressJSON, &agency.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrQueryFailed, err)
		}
		if err := json.Unmarshal(addressJSON, &agency.Address); err != nil {
			return nil, fmt.Errorf("%w: unmarshal address: %w", ErrQueryFailed, err)
		}
		agencies = append(agencies, &agency)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrQueryFailed, err)
	}
	return agencies, nil
}
