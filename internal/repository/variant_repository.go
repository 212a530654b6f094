package repository

import (
	"context"
	"fmt"

	"soundhub/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// variantRepository implements the VariantRepository interface using PostgreSQL.
type variantRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewVariantRepository creates a new PostgreSQL-backed variant repository.
func NewVariantRepository(pool *pgxpool.Pool, logger zerolog.Logger) VariantRepository {
	return &variantRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "variant").Logger(),
	}
}

// GetByID retrieves a variant within the provided transaction. Returns nil
// when absent.
func (r *variantRepository) GetByID(ctx context.Context, tx pgx.Tx, id int64) (*model.Variant, error) {
	query := `
		SELECT id, product_id, name_variant, color, power, connection_type,
		       has_microphone, price, stock, image
		FROM variants
		WHERE id = $1
	`

	var v model.Variant
	err := tx.QueryRow(ctx, query, id).Scan(
		&v.ID,
		&v.ProductID,
		&v.NameVariant,
		&v.Color,
		&v.Power,
		&v.ConnectionType,
		&v.HasMicrophone,
		&v.Price,
		&v.Stock,
		&v.Image,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Int64("variant_id", id).Msg("variant not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Int64("variant_id", id).Msg("failed to query variant")
		return nil, fmt.Errorf("failed to query variant: %w", err)
	}

	return &v, nil
}

// DecrementStock conditionally subtracts quantity from a variant's stock
// within the provided transaction. The WHERE clause carries the floor check so
// concurrent checkouts cannot drive stock negative.
func (r *variantRepository) DecrementStock(ctx context.Context, tx pgx.Tx, id int64, quantity int) (bool, error) {
	query := `
		UPDATE variants
		SET stock = stock - $1
		WHERE id = $2 AND stock >= $1
	`

	tag, err := tx.Exec(ctx, query, quantity, id)
	if err != nil {
		r.logger.Error().
			Err(err).
			Int64("variant_id", id).
			Int("quantity", quantity).
			Msg("failed to decrement variant stock")
		return false, fmt.Errorf("failed to decrement variant stock: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}
