package repository

import (
	"context"
	"fmt"

	"soundhub/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// employeeRepository implements the EmployeeRepository interface using PostgreSQL.
type employeeRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewEmployeeRepository creates a new PostgreSQL-backed employee repository.
func NewEmployeeRepository(pool *pgxpool.Pool, logger zerolog.Logger) EmployeeRepository {
	return &employeeRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "employee").Logger(),
	}
}

// GetByEmail retrieves an employee by email. Returns nil when absent.
func (r *employeeRepository) GetByEmail(ctx context.Context, email string) (*model.Employee, error) {
	query := `
		SELECT id, full_name, email, password_hash, role, status, created_at
		FROM employees
		WHERE email = $1
	`

	var e model.Employee
	err := r.pool.QueryRow(ctx, query, email).Scan(
		&e.ID,
		&e.FullName,
		&e.Email,
		&e.PasswordHash,
		&e.Role,
		&e.Status,
		&e.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Str("email", email).Msg("employee not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("email", email).Msg("failed to query employee")
		return nil, fmt.Errorf("failed to query employee: %w", err)
	}

	return &e, nil
}

// Insert creates an employee.
func (r *employeeRepository) Insert(ctx context.Context, e *model.Employee) (int64, error) {
	query := `
		INSERT INTO employees (full_name, email, password_hash, role, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	var id int64
	err := r.pool.QueryRow(ctx, query,
		e.FullName, e.Email, e.PasswordHash, e.Role, e.Status,
	).Scan(&id)
	if err != nil {
		r.logger.Error().Err(err).Str("email", e.Email).Msg("failed to insert employee")
		return 0, fmt.Errorf("failed to insert employee: %w", err)
	}

	return id, nil
}

// FindAdminID returns the ID of any employee with the admin role, or 0 when
// none exists.
func (r *employeeRepository) FindAdminID(ctx context.Context) (int64, error) {
	query := `
		SELECT id
		FROM employees
		WHERE role = $1
		ORDER BY id
		LIMIT 1
	`

	var id int64
	err := r.pool.QueryRow(ctx, query, model.RoleAdmin).Scan(&id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return 0, nil
		}
		r.logger.Error().Err(err).Msg("failed to query admin employee")
		return 0, fmt.Errorf("failed to query admin employee: %w", err)
	}

	return id, nil
}
