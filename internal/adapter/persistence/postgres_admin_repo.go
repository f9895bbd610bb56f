package persistence

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/driveline/driveline/internal/domain"
	"github.com/driveline/driveline/internal/ports"
)

// PostgresAdminRepository implements AdminRepository using PostgreSQL
type PostgresAdminRepository struct {
	db *sql.DB
}

// NewPostgresAdminRepository creates a new PostgreSQL admin repository
func NewPostgresAdminRepository(db *sql.DB) ports.AdminRepository {
	return &PostgresAdminRepository{db: db}
}

// Create saves a new admin account
func (r *PostgresAdminRepository) Create(ctx context.Context, admin *domain.Admin) error {
	query := `
		INSERT INTO admins (id, email, name, password_hash, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.ExecContext(ctx, query,
		admin.ID,
		admin.Email,
		admin.Name,
		admin.PasswordHash,
		admin.Role,
		admin.CreatedAt,
		admin.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create admin: %w", err)
	}

	return nil
}

// FindByID retrieves an admin by ID
func (r *PostgresAdminRepository) FindByID(ctx context.Context, id string) (*domain.Admin, error) {
	return r.findOne(ctx, "id", id)
}

// FindByEmail retrieves an admin by email
func (r *PostgresAdminRepository) FindByEmail(ctx context.Context, email string) (*domain.Admin, error) {
	return r.findOne(ctx, "email", email)
}

func (r *PostgresAdminRepository) findOne(ctx context.Context, column, value string) (*domain.Admin, error) {
	query := fmt.Sprintf(`
		SELECT id, email, name, password_hash, role, created_at, updated_at
		FROM admins WHERE %s = $1
	`, column)

	var admin domain.Admin
	err := r.db.QueryRowContext(ctx, query, value).Scan(
		&admin.ID,
		&admin.Email,
		&admin.Name,
		&admin.PasswordHash,
		&admin.Role,
		&admin.CreatedAt,
		&admin.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrAdminNotFound
		}
		return nil, fmt.Errorf("failed to find admin: %w", err)
	}

	return &admin, nil
}
