package repository

import (
	"context"
	"fmt"

	"soundhub/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// customerRepository implements the CustomerRepository interface using PostgreSQL.
type customerRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewCustomerRepository creates a new PostgreSQL-backed customer repository.
func NewCustomerRepository(pool *pgxpool.Pool, logger zerolog.Logger) CustomerRepository {
	return &customerRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "customer").Logger(),
	}
}

const customerColumns = `id, full_name, email, phone, address, password_hash, status, created_at, updated_at`

func scanCustomer(row pgx.Row, c *model.Customer) error {
	return row.Scan(
		&c.ID,
		&c.FullName,
		&c.Email,
		&c.Phone,
		&c.Address,
		&c.PasswordHash,
		&c.Status,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
}

// GetByEmail retrieves a customer by email. Returns nil when absent.
func (r *customerRepository) GetByEmail(ctx context.Context, email string) (*model.Customer, error) {
	query := `
		SELECT ` + customerColumns + `
		FROM customers
		WHERE email = $1
	`

	var c model.Customer
	err := scanCustomer(r.pool.QueryRow(ctx, query, email), &c)
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Str("email", email).Msg("customer not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("email", email).Msg("failed to query customer")
		return nil, fmt.Errorf("failed to query customer: %w", err)
	}

	return &c, nil
}

// GetByID retrieves a customer by ID. Returns nil when absent.
func (r *customerRepository) GetByID(ctx context.Context, id int64) (*model.Customer, error) {
	query := `
		SELECT ` + customerColumns + `
		FROM customers
		WHERE id = $1
	`

	var c model.Customer
	err := scanCustomer(r.pool.QueryRow(ctx, query, id), &c)
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Int64("customer_id", id).Msg("customer not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Int64("customer_id", id).Msg("failed to query customer")
		return nil, fmt.Errorf("failed to query customer: %w", err)
	}

	return &c, nil
}

// ListByIDs retrieves multiple customers by their IDs.
func (r *customerRepository) ListByIDs(ctx context.Context, ids []int64) ([]model.Customer, error) {
	if len(ids) == 0 {
		return []model.Customer{}, nil
	}

	query := `
		SELECT ` + customerColumns + `
		FROM customers
		WHERE id = ANY($1)
		ORDER BY full_name
	`

	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		r.logger.Error().Err(err).Int("count", len(ids)).Msg("failed to query customers by IDs")
		return nil, fmt.Errorf("failed to query customers by IDs: %w", err)
	}
	defer rows.Close()

	var customers []model.Customer
	for rows.Next() {
		var c model.Customer
		if err := scanCustomer(rows, &c); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan customer row")
			return nil, fmt.Errorf("failed to scan customer: %w", err)
		}
		customers = append(customers, c)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating customer rows")
		return nil, fmt.Errorf("error iterating customers: %w", err)
	}

	return customers, nil
}

// Insert creates a customer outside any transaction (registration path).
func (r *customerRepository) Insert(ctx context.Context, c *model.Customer) (int64, error) {
	query := `
		INSERT INTO customers (full_name, email, phone, address, password_hash, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	var id int64
	err := r.pool.QueryRow(ctx, query,
		c.FullName, c.Email, c.Phone, c.Address, c.PasswordHash, c.Status,
	).Scan(&id)
	if err != nil {
		r.logger.Error().Err(err).Str("email", c.Email).Msg("failed to insert customer")
		return 0, fmt.Errorf("failed to insert customer: %w", err)
	}

	r.logger.Debug().Int64("customer_id", id).Msg("customer inserted")

	return id, nil
}

// Create inserts a customer within the provided transaction.
func (r *customerRepository) Create(ctx context.Context, tx pgx.Tx, c *model.Customer) (int64, error) {
	query := `
		INSERT INTO customers (full_name, email, phone, address, password_hash, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	var id int64
	err := tx.QueryRow(ctx, query,
		c.FullName, c.Email, c.Phone, c.Address, c.PasswordHash, c.Status,
	).Scan(&id)
	if err != nil {
		r.logger.Error().Err(err).Str("email", c.Email).Msg("failed to create customer")
		return 0, fmt.Errorf("failed to create customer: %w", err)
	}

	r.logger.Debug().Int64("customer_id", id).Msg("customer created")

	return id, nil
}

// UpdateContact overwrites the stored name/phone/address within the provided transaction.
func (r *customerRepository) UpdateContact(ctx context.Context, tx pgx.Tx, id int64, name, phone, address string) error {
	query := `
		UPDATE customers
		SET full_name = $1, phone = $2, address = $3, updated_at = NOW()
		WHERE id = $4
	`

	_, err := tx.Exec(ctx, query, name, phone, address, id)
	if err != nil {
		r.logger.Error().Err(err).Int64("customer_id", id).Msg("failed to update customer contact")
		return fmt.Errorf("failed to update customer contact: %w", err)
	}

	return nil
}
