// internal/repository/users.go
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

type UserRepository struct {
	db     *sql.DB
	logger logger.Logger
}

func NewUserRepository(db *sql.DB, log logger.Logger) *UserRepository {
	return &UserRepository{
		db:     db,
		logger: log.WithFields(map[string]interface{}{"component": "user-repository"}),
	}
}

func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if user.Role == "" {
		user.Role = "producer"
	}
	user.CreatedAt = time.Now().UTC().Format(time.RFC3339)

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (id, agency_id, email, first_name, last_name, role, active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		user.ID,
		user.AgencyID,
		user.Email,
		user.FirstName,
		user.LastName,
		user.Role,
		user.Active,
		user.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("%w: insert failed: %w", ErrDatabaseInsert, err)
	}

	r.logger.Info("user created", map[string]interface{}{
		"userId":   user.ID,
		"agencyId": user.AgencyID,
		"role":     user.Role,
	})
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	return r.getByColumn(ctx, "id", id)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.getByColumn(ctx, "email", email)
}

func (r *UserRepository) getByColumn(ctx context.Context, column, value string) (*models.User, error) {
	var user models.User
	err := r.db.QueryRowContext(ctx, `
		SELECT id, agency_id, email, first_name, last_name, role, active, created_at
		FROM users
		WHERE `+column+` = $1`, value).Scan(
		&user.ID,
		&user.AgencyID,
		&user.Email,
		&user.FirstName,
		&user.LastName,
		&user.Role,
		&user.Active,
		&user.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: user %s", ErrNotFound, value)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrQueryFailed, err)
	}
	return &user, nil
}

func (r *UserRepository) ListByAgency(ctx context.Context, agencyID string) ([]*models.User, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, agency_id, email, first_name, last_name, role, active, created_at
		FROM users
		WHERE agency_id = $1
		ORDER BY last_name, first_name`, agencyID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrQueryFailed, err)
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		var user models.User
		if err := rows.Scan(&user.ID, &user.AgencyID, &user.Email, &user.FirstName, &user.LastName, &user.Role, &user.Active, &user.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrQueryFailed, err)
		}
		users = append(users, &user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrQueryFailed, err)
	}
	return users, nil
}
